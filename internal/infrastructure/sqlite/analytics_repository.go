package sqlite

import (
	"context"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo lecturas completas para el cálculo de KPIs.
type AnalyticsRepo struct {
	db DBTX
}

// NewAnalyticsRepository construye el repositorio.
func NewAnalyticsRepository(db DBTX) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

func (r *AnalyticsRepo) AllSales(ctx context.Context) ([]*entity.Sale, error) {
	return querySales(ctx, r.db, selectSales+` ORDER BY s.id`)
}

func (r *AnalyticsRepo) AllProducts(ctx context.Context) ([]*entity.Product, error) {
	return queryProducts(ctx, r.db, `SELECT `+productColumns+` FROM products ORDER BY id`)
}
