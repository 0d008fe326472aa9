package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Category      string          `json:"category" validate:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"min=0"`
	CostPrice     decimal.Decimal `json:"cost_price" validate:"min=0"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	Description   string          `json:"description"`
}

// UpdateProductRequest entrada para actualizar un producto; solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string          `json:"category"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	StockQuantity *int             `json:"stock_quantity"`
	Description   *string          `json:"description"`
}

// ProductResponse salida de un producto. CostPrice y ProfitMargin son null
// para usuarios sin acceso financiero.
type ProductResponse struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	ProfitMargin  *decimal.Decimal `json:"profit_margin"`
	StockQuantity int              `json:"stock_quantity"`
	Description   string           `json:"description"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
