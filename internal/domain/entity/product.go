package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Product representa un producto del catálogo.
type Product struct {
	ID            int64
	Name          string
	Category      string
	UnitPrice     decimal.Decimal // precio de venta
	CostPrice     decimal.Decimal // costo unitario
	StockQuantity int
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProfitMargin (unit_price - cost_price) / unit_price * 100, redondeado a 2 decimales.
// Se calcula siempre al vuelo; 0 si el precio es 0.
func (p *Product) ProfitMargin() decimal.Decimal {
	return MarginPercent(p.UnitPrice, p.CostPrice)
}

// MarginPercent margen porcentual de vender a price algo que cuesta cost.
func MarginPercent(price, cost decimal.Decimal) decimal.Decimal {
	if price.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost).Div(price).Mul(hundred).Round(2)
}
