package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/access"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El margen se calcula en cada lectura
// y costo y margen se ocultan a quien no tiene acceso financiero.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, viewer *entity.User, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now().UTC()
	product := &entity.Product{
		Name:          in.Name,
		Category:      in.Category,
		UnitPrice:     in.UnitPrice,
		CostPrice:     in.CostPrice,
		StockQuantity: in.StockQuantity,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product, access.HasFinancialAccess(viewer)), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, viewer *entity.User, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewProductResponse(product, access.HasFinancialAccess(viewer)), nil
}

// Update aplica los campos presentes en la petición.
func (uc *ProductUseCase) Update(ctx context.Context, viewer *entity.User, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.UnitPrice != nil {
		product.UnitPrice = *in.UnitPrice
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.StockQuantity != nil {
		product.StockQuantity = *in.StockQuantity
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product, access.HasFinancialAccess(viewer)), nil
}

// List lista productos con paginación skip/limit.
func (uc *ProductUseCase) List(ctx context.Context, viewer *entity.User, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	financial := access.HasFinancialAccess(viewer)
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.NewProductResponse(p, financial))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: page.Skip, Limit: page.Limit, Count: len(items)},
	}, nil
}

// Delete elimina un producto por ID. Falla con ErrReferenced si tiene ventas.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func validateProduct(p *entity.Product) error {
	if err := requireText("name", p.Name, 200); err != nil {
		return err
	}
	if err := requireText("category", p.Category, 100); err != nil {
		return err
	}
	if err := requireNonNegative("unit_price", p.UnitPrice); err != nil {
		return err
	}
	if err := requireNonNegative("cost_price", p.CostPrice); err != nil {
		return err
	}
	return requireQuantity("stock_quantity", p.StockQuantity, 0)
}
