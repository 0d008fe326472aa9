package repository

import (
	"context"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale.
// Las lecturas rellenan ProductName con el nombre actual del producto.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
	Delete(ctx context.Context, id int64) error
}
