// Package analytics contiene el caso de uso de KPIs del dashboard de ventas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/application/ports"
	"github.com/jhoicas/sales-analytics-api/internal/domain/access"
	domanalytics "github.com/jhoicas/sales-analytics-api/internal/domain/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

// KPIConfig parámetros de negocio del cálculo.
type KPIConfig struct {
	OperatingExpenseRate float64
	RevenueGrowth        float64
}

// KPIUseCase calcula los KPIs sobre todo el histórico en cada petición.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// La redacción financiera se aplica después del cálculo, por petición; nada se cachea.
type KPIUseCase struct {
	repo     repository.AnalyticsRepository
	renderer ports.KPIReportRenderer
	metrics  ports.Metrics
	opts     domanalytics.Options
	now      func() time.Time
}

// NewKPIUseCase construye el caso de uso.
func NewKPIUseCase(
	repo repository.AnalyticsRepository,
	renderer ports.KPIReportRenderer,
	metrics ports.Metrics,
	cfg KPIConfig,
) *KPIUseCase {
	return &KPIUseCase{
		repo:     repo,
		renderer: renderer,
		metrics:  metrics,
		opts: domanalytics.Options{
			OperatingExpenseRate: decimal.NewFromFloat(cfg.OperatingExpenseRate),
			RevenueGrowth:        decimal.NewFromFloat(cfg.RevenueGrowth),
		},
		now: time.Now,
	}
}

// Get devuelve los KPIs visibles para viewer.
func (uc *KPIUseCase) Get(ctx context.Context, viewer *entity.User) (*dto.KPIResponse, error) {
	report, err := uc.compute(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return dto.NewKPIResponse(report), nil
}

// Report genera el PDF de KPIs visible para viewer.
func (uc *KPIUseCase) Report(ctx context.Context, viewer *entity.User) ([]byte, error) {
	report, err := uc.compute(ctx, viewer)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.renderer.RenderKPIReport(ctx, report, uc.now())
	if err != nil {
		return nil, fmt.Errorf("kpi: generar reporte: %w", err)
	}
	return pdf, nil
}

// compute lee ventas y productos en paralelo, agrega y redacta según el usuario.
func (uc *KPIUseCase) compute(ctx context.Context, viewer *entity.User) (*domanalytics.Report, error) {
	type salesResult struct {
		sales []*entity.Sale
		err   error
	}
	type productsResult struct {
		products []*entity.Product
		err      error
	}

	salesCh := make(chan salesResult, 1)
	productsCh := make(chan productsResult, 1)

	go func() {
		s, err := uc.repo.AllSales(ctx)
		salesCh <- salesResult{s, err}
	}()
	go func() {
		p, err := uc.repo.AllProducts(ctx)
		productsCh <- productsResult{p, err}
	}()

	sales := <-salesCh
	products := <-productsCh

	if sales.err != nil {
		return nil, fmt.Errorf("kpi: ventas: %w", sales.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("kpi: productos: %w", products.err)
	}

	financial := access.HasFinancialAccess(viewer)
	full := domanalytics.Compute(sales.sales, products.products, uc.opts)
	uc.metrics.KPIComputed(financial)
	return domanalytics.Redact(full, financial), nil
}
