//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/postgres"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/seed"
	"github.com/jhoicas/sales-analytics-api/pkg/config"
)

// openTestStore levanta PostgreSQL en un contenedor y devuelve el almacén migrado.
func openTestStore(t *testing.T) *repository.Store {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("sales_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "no se pudo iniciar el contenedor PostgreSQL")
	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = container.Terminate(cleanupCtx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := postgres.Open(ctx, config.DBConfig{DatabaseURL: connStr})
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestPostgresStore_SeedYKPI(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ds, err := seed.Default()
	require.NoError(t, err)
	res, err := seed.Apply(ctx, store, ds, bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, len(ds.Sales), res.Sales)

	admin, err := store.Users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.ElementsMatch(t, entity.AllCapabilities, admin.Permissions)

	sales, err := store.Analytics.AllSales(ctx)
	require.NoError(t, err)
	products, err := store.Analytics.AllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, sales, len(ds.Sales))
	assert.NotEmpty(t, sales[0].ProductName)

	report := analytics.Compute(sales, products, analytics.Options{OperatingExpenseRate: decimal.NewFromFloat(0.10)})
	assert.True(t, report.TotalRevenue.IsPositive())

	// Segunda ejecución: no duplica nada.
	again, err := seed.Apply(ctx, store, ds, bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, &seed.Result{}, again)
}

func TestPostgresStore_ReglasDeIntegridad(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := &entity.User{Email: "ops@example.com", Name: "Ops", Role: entity.RoleViewer, PasswordHash: "x", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Users.Create(ctx, user))
	dup := *user
	assert.ErrorIs(t, store.Users.Create(ctx, &dup), domain.ErrEmailAlreadyExists)

	product := &entity.Product{Name: "Cable", Category: "Accessories", UnitPrice: decimal.NewFromInt(10), CostPrice: decimal.NewFromInt(4), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Products.Create(ctx, product))

	customer := &entity.Customer{Name: "Initech", CustomerType: entity.CustomerTypeIndividual, Status: entity.CustomerStatusActive, CreatedBy: &user.ID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Customers.Create(ctx, customer))
	// Dos clientes sin email no chocan con la restricción única.
	other := &entity.Customer{Name: "Hooli", CustomerType: entity.CustomerTypeIndividual, Status: entity.CustomerStatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Customers.Create(ctx, other))

	sale := &entity.Sale{ProductID: product.ID, CustomerID: &customer.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(10), SaleDate: now.Truncate(24 * time.Hour), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Sales.Create(ctx, sale))
	assert.Equal(t, "Cable", sale.ProductName)

	bad := &entity.Sale{ProductID: 9999, Quantity: 1, UnitPrice: decimal.NewFromInt(1), SaleDate: now, CreatedAt: now, UpdatedAt: now}
	assert.ErrorIs(t, store.Sales.Create(ctx, bad), domain.ErrInvalidInput)

	assert.ErrorIs(t, store.Products.Delete(ctx, product.ID), domain.ErrReferenced)

	require.NoError(t, store.Customers.Delete(ctx, customer.ID))
	got, err := store.Sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CustomerID)

	assert.ErrorIs(t, store.Sales.Delete(ctx, 9999), domain.ErrNotFound)
	assert.ErrorIs(t, store.Users.Update(ctx, &entity.User{ID: 9999}), domain.ErrNotFound)
}
