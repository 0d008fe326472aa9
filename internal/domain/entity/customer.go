package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados y tipos de cliente por defecto.
const (
	CustomerStatusActive   = "active"
	CustomerTypeIndividual = "individual"
)

// Customer representa un cliente; puede estar referenciado por varias ventas.
type Customer struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Company      string
	Address      string
	City         string
	State        string
	Country      string
	PostalCode   string
	CustomerType string
	Status       string
	CreditLimit  decimal.Decimal
	Notes        string
	CreatedBy    *int64 // usuario que lo creó
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
