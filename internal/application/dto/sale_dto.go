package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de sale_date en la API.
const DateLayout = "2006-01-02"

// CreateSaleRequest entrada para registrar una venta. UnitPrice vacío = precio actual del producto.
// Cualquier total enviado por el cliente se ignora.
type CreateSaleRequest struct {
	ProductID    int64            `json:"product_id" validate:"required"`
	CustomerID   *int64           `json:"customer_id"`
	Quantity     int              `json:"quantity" validate:"required,min=1"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	SaleDate     string           `json:"sale_date"` // YYYY-MM-DD; por defecto hoy (UTC)
	CustomerName string           `json:"customer_name"`
	Region       string           `json:"region"`
	Salesperson  string           `json:"salesperson"`
}

// UpdateSaleRequest entrada para actualizar una venta; solo se aplican los campos presentes.
type UpdateSaleRequest struct {
	ProductID    *int64           `json:"product_id"`
	CustomerID   *int64           `json:"customer_id"`
	Quantity     *int             `json:"quantity" validate:"omitempty,min=1"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	SaleDate     *string          `json:"sale_date"`
	CustomerName *string          `json:"customer_name"`
	Region       *string          `json:"region"`
	Salesperson  *string          `json:"salesperson"`
}

// SaleResponse salida de una venta. TotalAmount se calcula al leer;
// ProfitMargin es null para usuarios sin acceso financiero.
type SaleResponse struct {
	ID           int64            `json:"id"`
	ProductID    int64            `json:"product_id"`
	ProductName  string           `json:"product_name"`
	CustomerID   *int64           `json:"customer_id"`
	Quantity     int              `json:"quantity"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	SaleDate     string           `json:"sale_date"`
	CustomerName string           `json:"customer_name"`
	Region       string           `json:"region"`
	Salesperson  string           `json:"salesperson"`
	ProfitMargin *decimal.Decimal `json:"profit_margin"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
