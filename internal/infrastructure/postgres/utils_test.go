package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

func TestViolaciones(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
}

func TestToCapabilities(t *testing.T) {
	caps := toCapabilities([]string{"financial", "sales"})
	assert.Equal(t, []entity.Capability{entity.CapFinancial, entity.CapSales}, caps)
	assert.Empty(t, toCapabilities(nil))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	v := nullIfEmpty("a@b.c")
	if assert.NotNil(t, v) {
		assert.Equal(t, "a@b.c", *v)
	}
}
