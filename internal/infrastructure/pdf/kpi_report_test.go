package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-analytics-api/internal/domain/analytics"
)

func sampleReport() *analytics.Report {
	return &analytics.Report{
		TotalRevenue:      decimal.RequireFromString("1234567.5"),
		TotalSales:        3,
		TotalProducts:     2,
		AverageOrderValue: decimal.RequireFromString("411522.5"),
		TopSellingProduct: "Laptop Pro",
		RevenueGrowth:     decimal.RequireFromString("15.5"),
		Financials: &analytics.Financials{
			TotalCOGS:         decimal.RequireFromString("900000"),
			GrossProfit:       decimal.RequireFromString("334567.5"),
			OperatingExpenses: decimal.RequireFromString("123456.75"),
			NetProfit:         decimal.RequireFromString("211110.75"),
			GrossProfitMargin: decimal.RequireFromString("27.1"),
			NetProfitMargin:   decimal.RequireFromString("17.1"),
		},
	}
}

func TestRenderKPIReport_GeneraPDF(t *testing.T) {
	g := NewMarotoKPIReport("Sales Analytics")

	full, err := g.RenderKPIReport(context.Background(), sampleReport(), time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(full, []byte("%PDF")), "debe ser un documento PDF")

	redacted := analytics.Redact(sampleReport(), false)
	short, err := g.RenderKPIReport(context.Background(), redacted, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(short, []byte("%PDF")))
}

func TestRenderKPIReport_Nil(t *testing.T) {
	_, err := NewMarotoKPIReport("x").RenderKPIReport(context.Background(), nil, time.Now())
	assert.Error(t, err)
}

func TestMoneyYPercent(t *testing.T) {
	g := NewMarotoKPIReport("x")
	assert.Equal(t, "$1,234,567.50", g.money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "$0.00", g.money(decimal.Zero))
	assert.Equal(t, "15.50%", g.percent(decimal.RequireFromString("15.5")))
}
