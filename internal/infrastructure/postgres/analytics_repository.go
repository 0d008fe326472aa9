package postgres

import (
	"context"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el cálculo de KPIs.
// Devuelve las tablas completas; la agregación se hace en el dominio.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// AllSales todas las ventas con product_name resuelto.
func (r *AnalyticsRepo) AllSales(ctx context.Context) ([]*entity.Sale, error) {
	return querySales(ctx, r.q, selectSales+` ORDER BY s.id`)
}

// AllProducts todo el catálogo.
func (r *AnalyticsRepo) AllProducts(ctx context.Context) ([]*entity.Product, error) {
	return queryProducts(ctx, r.q, `SELECT `+productColumns+` FROM products ORDER BY id`)
}
