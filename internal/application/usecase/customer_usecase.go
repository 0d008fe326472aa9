package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente registrando como creador al usuario autenticado.
func (uc *CustomerUseCase) Create(ctx context.Context, creator *entity.User, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	now := time.Now().UTC()
	customer := &entity.Customer{
		Name:         in.Name,
		Email:        strings.TrimSpace(in.Email),
		Phone:        in.Phone,
		Company:      in.Company,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		Country:      in.Country,
		PostalCode:   in.PostalCode,
		CustomerType: in.CustomerType,
		Status:       in.Status,
		CreditLimit:  in.CreditLimit,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if customer.CustomerType == "" {
		customer.CustomerType = entity.CustomerTypeIndividual
	}
	if customer.Status == "" {
		customer.Status = entity.CustomerStatusActive
	}
	if creator != nil {
		id := creator.ID
		customer.CreatedBy = &id
	}
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewCustomerResponse(customer), nil
}

// Update aplica los campos presentes en la petición.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	setString(&c.Name, in.Name)
	setString(&c.Email, in.Email)
	setString(&c.Phone, in.Phone)
	setString(&c.Company, in.Company)
	setString(&c.Address, in.Address)
	setString(&c.City, in.City)
	setString(&c.State, in.State)
	setString(&c.Country, in.Country)
	setString(&c.PostalCode, in.PostalCode)
	setString(&c.CustomerType, in.CustomerType)
	setString(&c.Status, in.Status)
	setString(&c.Notes, in.Notes)
	if in.CreditLimit != nil {
		c.CreditLimit = *in.CreditLimit
	}
	c.Email = strings.TrimSpace(c.Email)
	if err := validateCustomer(c); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

// List lista clientes con paginación skip/limit.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.NewCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: page.Skip, Limit: page.Limit, Count: len(items)},
	}, nil
}

// Delete elimina un cliente; sus ventas pierden el vínculo pero conservan customer_name.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func validateCustomer(c *entity.Customer) error {
	if err := requireText("name", c.Name, 255); err != nil {
		return err
	}
	if c.Email != "" && !validEmail(c.Email) {
		return invalid("email inválido")
	}
	return requireNonNegative("credit_limit", c.CreditLimit)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
