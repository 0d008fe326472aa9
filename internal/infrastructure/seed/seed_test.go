package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sales-analytics-api/internal/application/auth"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/memory"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/seed"
)

func TestDefault_Parse(t *testing.T) {
	ds, err := seed.Default()
	require.NoError(t, err)
	assert.Len(t, ds.Users, 3)
	assert.NotEmpty(t, ds.Products)
	assert.NotEmpty(t, ds.Sales)
	assert.Equal(t, "1200", ds.Products[0].UnitPrice.String())
}

func TestApply_Memoria(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	ds, err := seed.Default()
	require.NoError(t, err)

	res, err := seed.Apply(ctx, repos, ds, bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, len(ds.Users), res.Users)
	assert.Equal(t, len(ds.Sales), res.Sales)

	admin, err := repos.Users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "admin123"))

	sales, err := repos.Analytics.AllSales(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sales)
	assert.Equal(t, "Laptop Pro", sales[0].ProductName)
	assert.Equal(t, "25", sales[0].ProfitMargin.String())
	require.NotNil(t, sales[0].CustomerID)

	// Segunda pasada: nada nuevo.
	res, err = seed.Apply(ctx, repos, ds, bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{}, *res)
}

func TestParse_ProductoDesconocido(t *testing.T) {
	ds, err := seed.Parse([]byte(`
sales:
  - product: Inexistente
    quantity: 1
    unit_price: "10"
    sale_date: "2024-01-01"
`))
	require.NoError(t, err)
	_, err = seed.Apply(context.Background(), memory.NewStore().Repositories(), ds, bcrypt.MinCost)
	assert.Error(t, err)
}

func TestParse_YAMLInvalido(t *testing.T) {
	_, err := seed.Parse([]byte("users: [unclosed"))
	assert.Error(t, err)
}
