package usecase

import (
	"fmt"
	"math"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-analytics-api/internal/domain"
)

// invalid envuelve ErrInvalidInput con un mensaje apto para el cliente.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func requireText(field, value string, max int) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return invalid("%s es obligatorio", field)
	}
	if max > 0 && len([]rune(v)) > max {
		return invalid("%s supera %d caracteres", field, max)
	}
	return nil
}

func requireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid("%s no puede ser negativo", field)
	}
	return nil
}

// MaxQuantity límite de cantidades y existencias; coincide con INTEGER en las tablas.
const MaxQuantity = math.MaxInt32

func requireQuantity(field string, v, lower int) error {
	if v < lower {
		if lower == 0 {
			return invalid("%s no puede ser negativo", field)
		}
		return invalid("%s debe ser mayor que cero", field)
	}
	if v > MaxQuantity {
		return invalid("%s no puede superar %d", field, MaxQuantity)
	}
	return nil
}
