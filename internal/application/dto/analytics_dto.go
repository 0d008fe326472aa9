package dto

import "github.com/shopspring/decimal"

// KPIResponse métricas agregadas del dashboard.
//
// ProfitMargin (margen neto %) es null sin acceso financiero; el resto de cifras
// financieras se omiten por completo en ese caso.
type KPIResponse struct {
	TotalRevenue      decimal.Decimal  `json:"total_revenue"`
	TotalSales        int              `json:"total_sales"`
	TotalProducts     int              `json:"total_products"`
	AverageOrderValue decimal.Decimal  `json:"average_order_value"`
	TopSellingProduct string           `json:"top_selling_product"`
	RevenueGrowth     decimal.Decimal  `json:"revenue_growth"` // valor provisional configurado
	ProfitMargin      *decimal.Decimal `json:"profit_margin"`

	TotalCOGS         *decimal.Decimal `json:"total_cogs,omitempty"`
	GrossProfit       *decimal.Decimal `json:"gross_profit,omitempty"`
	OperatingExpenses *decimal.Decimal `json:"operating_expenses,omitempty"`
	NetProfit         *decimal.Decimal `json:"net_profit,omitempty"`
	GrossProfitMargin *decimal.Decimal `json:"gross_profit_margin,omitempty"`
	NetProfitMargin   *decimal.Decimal `json:"net_profit_margin,omitempty"`
}

// HealthResponse salida de /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Store     string `json:"store"`
}

// ServiceInfoResponse salida de GET /.
type ServiceInfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
	Docs    string `json:"docs,omitempty"`
}
