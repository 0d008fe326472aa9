package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta de un producto. UnitPrice es el precio capturado al vender
// y puede diferir del precio actual del producto.
type Sale struct {
	ID           int64
	ProductID    int64
	ProductName  string // join con products; vacío si el producto ya no existe
	CustomerID   *int64
	Quantity     int
	UnitPrice    decimal.Decimal
	SaleDate     time.Time // solo fecha (UTC)
	CustomerName string
	Region       string
	Salesperson  string
	ProfitMargin decimal.Decimal // derivado del costo del producto al registrar la venta
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalAmount quantity * unit_price; nunca se toma del cliente.
func (s *Sale) TotalAmount() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}
