package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name         string          `json:"name" validate:"required"`
	Email        string          `json:"email" validate:"omitempty,email"`
	Phone        string          `json:"phone"`
	Company      string          `json:"company"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	Country      string          `json:"country"`
	PostalCode   string          `json:"postal_code"`
	CustomerType string          `json:"customer_type"` // individual por defecto
	Status       string          `json:"status"`        // active por defecto
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	Notes        string          `json:"notes"`
}

// UpdateCustomerRequest entrada para actualizar un cliente; solo se aplican los campos presentes.
type UpdateCustomerRequest struct {
	Name         *string          `json:"name"`
	Email        *string          `json:"email"`
	Phone        *string          `json:"phone"`
	Company      *string          `json:"company"`
	Address      *string          `json:"address"`
	City         *string          `json:"city"`
	State        *string          `json:"state"`
	Country      *string          `json:"country"`
	PostalCode   *string          `json:"postal_code"`
	CustomerType *string          `json:"customer_type"`
	Status       *string          `json:"status"`
	CreditLimit  *decimal.Decimal `json:"credit_limit"`
	Notes        *string          `json:"notes"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Company      string          `json:"company"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	Country      string          `json:"country"`
	PostalCode   string          `json:"postal_code"`
	CustomerType string          `json:"customer_type"`
	Status       string          `json:"status"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	Notes        string          `json:"notes"`
	CreatedBy    *int64          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
