package ports

import (
	"context"
	"time"

	"github.com/jhoicas/sales-analytics-api/internal/domain/analytics"
)

// KPIReportRenderer genera la representación imprimible (PDF) de un reporte de KPIs.
// El reporte llega ya redactado: si Financials es nil no se imprime esa sección.
type KPIReportRenderer interface {
	RenderKPIReport(ctx context.Context, report *analytics.Report, generatedAt time.Time) ([]byte, error)
}
