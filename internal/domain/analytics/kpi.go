// Package analytics implementa el motor de agregación de KPIs de ventas.
//
// Es un servicio de dominio puro: recibe las colecciones completas de ventas y
// productos, no filtra ni muta nada y no mantiene estado entre llamadas.
package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// NoTopProduct etiqueta de top_selling_product cuando no hay ventas.
const NoTopProduct = "N/A"

var hundred = decimal.NewFromInt(100)

// Options parámetros de negocio del cálculo.
type Options struct {
	OperatingExpenseRate decimal.Decimal // fracción de ingresos, p.ej. 0.10
	RevenueGrowth        decimal.Decimal // valor provisional reportado tal cual
}

// Financials cifras de costo y utilidad; solo visibles con acceso financiero.
type Financials struct {
	TotalCOGS         decimal.Decimal
	GrossProfit       decimal.Decimal
	OperatingExpenses decimal.Decimal
	NetProfit         decimal.Decimal
	GrossProfitMargin decimal.Decimal // %
	NetProfitMargin   decimal.Decimal // %
}

// Report resultado completo del cálculo.
type Report struct {
	TotalRevenue      decimal.Decimal
	TotalSales        int
	TotalProducts     int
	AverageOrderValue decimal.Decimal
	TopSellingProduct string
	TopProductID      int64 // 0 si no hay ventas
	RevenueGrowth     decimal.Decimal
	Financials        *Financials // nil tras Redact sin acceso financiero
}

// Compute calcula todos los KPIs sobre las colecciones completas.
//
//	total_revenue       = Σ quantity × unit_price
//	average_order_value = total_revenue / total_sales (0 sin ventas)
//	top_selling_product = argmax Σ quantity por producto; empate → menor id
//	total_cogs          = Σ quantity × cost_price del producto
//	operating_expenses  = total_revenue × rate
//	net_profit_margin   = net_profit / total_revenue × 100 (0 sin ingresos)
func Compute(sales []*entity.Sale, products []*entity.Product, opts Options) *Report {
	byID := make(map[int64]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	revenue := decimal.Zero
	cogs := decimal.Zero
	qtyByProduct := make(map[int64]int64)
	for _, s := range sales {
		qty := decimal.NewFromInt(int64(s.Quantity))
		revenue = revenue.Add(qty.Mul(s.UnitPrice))
		if p, ok := byID[s.ProductID]; ok {
			cogs = cogs.Add(qty.Mul(p.CostPrice))
		}
		qtyByProduct[s.ProductID] = addSaturating(qtyByProduct[s.ProductID], int64(s.Quantity))
	}

	report := &Report{
		TotalRevenue:      revenue,
		TotalSales:        len(sales),
		TotalProducts:     len(products),
		AverageOrderValue: decimal.Zero,
		TopSellingProduct: NoTopProduct,
		RevenueGrowth:     opts.RevenueGrowth,
	}
	if len(sales) > 0 {
		report.AverageOrderValue = revenue.Div(decimal.NewFromInt(int64(len(sales))))
	}

	if id, ok := topProduct(qtyByProduct); ok {
		report.TopProductID = id
		if p, found := byID[id]; found {
			report.TopSellingProduct = p.Name
		} else {
			report.TopSellingProduct = productNameFromSales(sales, id)
		}
	}

	gross := revenue.Sub(cogs)
	opex := revenue.Mul(opts.OperatingExpenseRate)
	net := gross.Sub(opex)
	report.Financials = &Financials{
		TotalCOGS:         cogs,
		GrossProfit:       gross,
		OperatingExpenses: opex,
		NetProfit:         net,
		GrossProfitMargin: percentOf(gross, revenue),
		NetProfitMargin:   percentOf(net, revenue),
	}
	return report
}

// Redact devuelve una copia del reporte sin cifras financieras si financial es false.
// Se aplica por petición, después del cálculo.
func Redact(r *Report, financial bool) *Report {
	if r == nil {
		return nil
	}
	out := *r
	if !financial {
		out.Financials = nil
	} else if r.Financials != nil {
		f := *r.Financials
		out.Financials = &f
	}
	return &out
}

// topProduct argmax de cantidades; empate → menor id (determinista).
func topProduct(qty map[int64]int64) (int64, bool) {
	var (
		bestID  int64
		bestQty int64
		found   bool
	)
	for id, q := range qty {
		if !found || q > bestQty || (q == bestQty && id < bestID) {
			bestID, bestQty, found = id, q, true
		}
	}
	return bestID, found
}

// productNameFromSales usa el nombre desnormalizado si el producto ya no existe.
func productNameFromSales(sales []*entity.Sale, id int64) string {
	for _, s := range sales {
		if s.ProductID == id && s.ProductName != "" {
			return s.ProductName
		}
	}
	return NoTopProduct
}

// addSaturating suma cantidades sin desbordar; se queda en math.MaxInt64.
func addSaturating(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func percentOf(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}
