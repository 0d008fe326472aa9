package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// SaleRepository implementa repository.SaleRepository en memoria.
type SaleRepository struct {
	s *Store
}

// checkRefs emula las claves foráneas del esquema relacional. Requiere s.mu tomado.
func (r *SaleRepository) checkRefs(sale *entity.Sale) error {
	if _, ok := r.s.products[sale.ProductID]; !ok {
		return fmt.Errorf("%w: producto %d no existe", domain.ErrInvalidInput, sale.ProductID)
	}
	if sale.CustomerID != nil {
		if _, ok := r.s.customers[*sale.CustomerID]; !ok {
			return fmt.Errorf("%w: cliente %d no existe", domain.ErrInvalidInput, *sale.CustomerID)
		}
	}
	return nil
}

func (r *SaleRepository) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkRefs(sale); err != nil {
		return err
	}
	r.s.nextSaleID++
	sale.ID = r.s.nextSaleID
	stored := r.s.cloneSale(sale)
	r.s.sales[sale.ID] = stored
	sale.ProductName = stored.ProductName
	return nil
}

func (r *SaleRepository) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sa, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return r.s.cloneSale(sa), nil
}

func (r *SaleRepository) Update(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.checkRefs(sale); err != nil {
		return err
	}
	stored := r.s.cloneSale(sale)
	r.s.sales[sale.ID] = stored
	sale.ProductName = stored.ProductName
	return nil
}

func (r *SaleRepository) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := page(r.s.sales, limit, offset)
	out := make([]*entity.Sale, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.cloneSale(r.s.sales[id]))
	}
	return out, nil
}

func (r *SaleRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.sales, id)
	return nil
}
