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

// SaleUseCase casos de uso CRUD para ventas.
//
// El total nunca se persiste ni se acepta del cliente: se recalcula al leer.
// El margen de la venta se deriva del costo del producto al momento de escribirla.
// Leer el producto y guardar la venta son dos operaciones independientes, sin transacción.
type SaleUseCase struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	now       func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
) *SaleUseCase {
	return &SaleUseCase{sales: sales, products: products, customers: customers, now: time.Now}
}

// Create registra una venta. Sin unit_price se usa el precio actual del producto.
func (uc *SaleUseCase) Create(ctx context.Context, viewer *entity.User, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	product, err := uc.loadProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if err := requireQuantity("quantity", in.Quantity, 1); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	sale := &entity.Sale{
		ProductID:    product.ID,
		Quantity:     in.Quantity,
		UnitPrice:    product.UnitPrice,
		SaleDate:     truncateDay(now),
		CustomerName: in.CustomerName,
		Region:       in.Region,
		Salesperson:  in.Salesperson,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.UnitPrice != nil {
		sale.UnitPrice = *in.UnitPrice
	}
	if in.SaleDate != "" {
		if sale.SaleDate, err = parseSaleDate(in.SaleDate); err != nil {
			return nil, err
		}
	}
	if err := uc.attachCustomer(ctx, sale, in.CustomerID); err != nil {
		return nil, err
	}
	if err := requireNonNegative("unit_price", sale.UnitPrice); err != nil {
		return nil, err
	}
	sale.ProfitMargin = entity.MarginPercent(sale.UnitPrice, product.CostPrice)

	if err := uc.sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	sale.ProductName = product.Name
	return dto.NewSaleResponse(sale, access.HasFinancialAccess(viewer)), nil
}

// GetByID obtiene una venta por ID.
func (uc *SaleUseCase) GetByID(ctx context.Context, viewer *entity.User, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewSaleResponse(sale, access.HasFinancialAccess(viewer)), nil
}

// Update aplica los campos presentes y vuelve a derivar el margen con el costo actual del producto.
func (uc *SaleUseCase) Update(ctx context.Context, viewer *entity.User, id int64, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	productID := sale.ProductID
	if in.ProductID != nil {
		productID = *in.ProductID
	}
	product, err := uc.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	sale.ProductID = product.ID

	if in.Quantity != nil {
		if err := requireQuantity("quantity", *in.Quantity, 1); err != nil {
			return nil, err
		}
		sale.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		if err := requireNonNegative("unit_price", *in.UnitPrice); err != nil {
			return nil, err
		}
		sale.UnitPrice = *in.UnitPrice
	}
	if in.SaleDate != nil {
		if sale.SaleDate, err = parseSaleDate(*in.SaleDate); err != nil {
			return nil, err
		}
	}
	if in.CustomerName != nil {
		sale.CustomerName = *in.CustomerName
	}
	if in.Region != nil {
		sale.Region = *in.Region
	}
	if in.Salesperson != nil {
		sale.Salesperson = *in.Salesperson
	}
	if in.CustomerID != nil {
		if err := uc.attachCustomer(ctx, sale, in.CustomerID); err != nil {
			return nil, err
		}
	}
	sale.ProfitMargin = entity.MarginPercent(sale.UnitPrice, product.CostPrice)
	sale.UpdatedAt = uc.now().UTC()

	if err := uc.sales.Update(ctx, sale); err != nil {
		return nil, err
	}
	sale.ProductName = product.Name
	return dto.NewSaleResponse(sale, access.HasFinancialAccess(viewer)), nil
}

// List lista ventas con paginación skip/limit.
func (uc *SaleUseCase) List(ctx context.Context, viewer *entity.User, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	list, err := uc.sales.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	financial := access.HasFinancialAccess(viewer)
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *dto.NewSaleResponse(s, financial))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: page.Skip, Limit: page.Limit, Count: len(items)},
	}, nil
}

// Delete elimina una venta por ID.
func (uc *SaleUseCase) Delete(ctx context.Context, id int64) error {
	return uc.sales.Delete(ctx, id)
}

func (uc *SaleUseCase) loadProduct(ctx context.Context, id int64) (*entity.Product, error) {
	if id <= 0 {
		return nil, invalid("product_id es obligatorio")
	}
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, invalid("producto %d no existe", id)
	}
	return product, nil
}

// attachCustomer vincula el cliente; customer_name toma su nombre si venía vacío.
func (uc *SaleUseCase) attachCustomer(ctx context.Context, sale *entity.Sale, customerID *int64) error {
	if customerID == nil {
		return nil
	}
	customer, err := uc.customers.GetByID(ctx, *customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return invalid("cliente %d no existe", *customerID)
	}
	id := customer.ID
	sale.CustomerID = &id
	if sale.CustomerName == "" {
		sale.CustomerName = customer.Name
	}
	return nil
}

func parseSaleDate(s string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, invalid("sale_date debe tener formato YYYY-MM-DD")
	}
	return t, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
