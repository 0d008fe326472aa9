package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/sales-analytics-api/internal/application/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/application/ports"
	domanalytics "github.com/jhoicas/sales-analytics-api/internal/domain/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/memory"
)

var cfg = appanalytics.KPIConfig{OperatingExpenseRate: 0.10, RevenueGrowth: 15.5}

type captureRenderer struct {
	got *domanalytics.Report
}

func (r *captureRenderer) RenderKPIReport(_ context.Context, report *domanalytics.Report, _ time.Time) ([]byte, error) {
	r.got = report
	return []byte("%PDF-fake"), nil
}

type failingRepo struct{}

func (failingRepo) AllSales(context.Context) ([]*entity.Sale, error) {
	return nil, errors.New("conexión perdida")
}
func (failingRepo) AllProducts(context.Context) ([]*entity.Product, error) { return nil, nil }

func seeded(t *testing.T) *repository.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore().Repositories()
	p := &entity.Product{Name: "Laptop", UnitPrice: decimal.NewFromInt(100), CostPrice: decimal.NewFromInt(60)}
	require.NoError(t, store.Products.Create(ctx, p))
	for _, s := range []struct {
		qty   int
		price int64
	}{{2, 100}, {1, 75}} {
		require.NoError(t, store.Sales.Create(ctx, &entity.Sale{ProductID: p.ID, Quantity: s.qty, UnitPrice: decimal.NewFromInt(s.price)}))
	}
	return store
}

func TestKPIUseCase_Get(t *testing.T) {
	store := seeded(t)
	uc := appanalytics.NewKPIUseCase(store.Analytics, &captureRenderer{}, ports.NopMetrics{}, cfg)
	ctx := context.Background()

	full, err := uc.Get(ctx, &entity.User{Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "275", full.TotalRevenue.String())
	assert.Equal(t, 2, full.TotalSales)
	assert.Equal(t, "137.5", full.AverageOrderValue.String())
	assert.Equal(t, "Laptop", full.TopSellingProduct)
	assert.Equal(t, "15.5", full.RevenueGrowth.String())
	require.NotNil(t, full.ProfitMargin)
	require.NotNil(t, full.TotalCOGS)
	assert.Equal(t, "180", full.TotalCOGS.String())

	red, err := uc.Get(ctx, &entity.User{Role: entity.RoleViewer})
	require.NoError(t, err)
	assert.Equal(t, "275", red.TotalRevenue.String())
	assert.Nil(t, red.ProfitMargin)
	assert.Nil(t, red.TotalCOGS)
	assert.Nil(t, red.NetProfit)
}

func TestKPIUseCase_ReportRedactado(t *testing.T) {
	renderer := &captureRenderer{}
	uc := appanalytics.NewKPIUseCase(seeded(t).Analytics, renderer, ports.NopMetrics{}, cfg)

	pdf, err := uc.Report(context.Background(), &entity.User{Role: entity.RoleViewer})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	require.NotNil(t, renderer.got)
	assert.Nil(t, renderer.got.Financials, "el PDF de un viewer no lleva cifras financieras")
}

func TestKPIUseCase_ErrorDeRepositorio(t *testing.T) {
	uc := appanalytics.NewKPIUseCase(failingRepo{}, &captureRenderer{}, ports.NopMetrics{}, cfg)
	_, err := uc.Get(context.Background(), &entity.User{Role: entity.RoleAdmin})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kpi: ventas")
}
