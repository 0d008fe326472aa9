package memory

import (
	"context"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// AnalyticsRepository lecturas completas para el cálculo de KPIs.
type AnalyticsRepository struct {
	s *Store
}

func (r *AnalyticsRepository) AllSales(_ context.Context) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := page(r.s.sales, 0, 0)
	out := make([]*entity.Sale, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.cloneSale(r.s.sales[id]))
	}
	return out, nil
}

func (r *AnalyticsRepository) AllProducts(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := page(r.s.products, 0, 0)
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneProduct(r.s.products[id]))
	}
	return out, nil
}
