package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/memory"
)

func TestUserRepository_EmailUnico(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	u := &entity.User{Email: "a@example.com", Name: "A", Role: entity.RoleViewer, IsActive: true}
	require.NoError(t, repos.Users.Create(ctx, u))
	assert.Equal(t, int64(1), u.ID)

	dup := &entity.User{Email: "a@example.com", Name: "B", Role: entity.RoleViewer}
	assert.ErrorIs(t, repos.Users.Create(ctx, dup), domain.ErrEmailAlreadyExists)

	other := &entity.User{Email: "b@example.com", Name: "B", Role: entity.RoleViewer}
	require.NoError(t, repos.Users.Create(ctx, other))
	other.Email = "a@example.com"
	assert.ErrorIs(t, repos.Users.Update(ctx, other), domain.ErrEmailAlreadyExists)
}

func TestUserRepository_CopiaDefensiva(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	u := &entity.User{Email: "a@example.com", Permissions: []entity.Capability{entity.CapSales}}
	require.NoError(t, repos.Users.Create(ctx, u))

	got, err := repos.Users.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	got.Permissions[0] = entity.CapFinancial
	got.Name = "mutado"

	again, err := repos.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []entity.Capability{entity.CapSales}, again.Permissions)
	assert.Empty(t, again.Name)
}

func TestUserRepository_NoEncontrado(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	u, err := repos.Users.GetByID(ctx, 42)
	assert.NoError(t, err)
	assert.Nil(t, u)
	assert.ErrorIs(t, repos.Users.Delete(ctx, 42), domain.ErrNotFound)
	assert.ErrorIs(t, repos.Users.Update(ctx, &entity.User{ID: 42}), domain.ErrNotFound)
}

func TestList_Paginacion(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	for i := 0; i < 5; i++ {
		require.NoError(t, repos.Products.Create(ctx, &entity.Product{Name: fmt.Sprintf("P%d", i)}))
	}

	list, err := repos.Products.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "P1", list[0].Name)
	assert.Equal(t, "P2", list[1].Name)

	list, err = repos.Products.List(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaleRepository_JoinYReferencias(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	p := &entity.Product{Name: "Laptop", UnitPrice: decimal.NewFromInt(100)}
	require.NoError(t, repos.Products.Create(ctx, p))

	bad := &entity.Sale{ProductID: 99, Quantity: 1}
	assert.ErrorIs(t, repos.Sales.Create(ctx, bad), domain.ErrInvalidInput)

	s := &entity.Sale{ProductID: p.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(100), SaleDate: time.Now()}
	require.NoError(t, repos.Sales.Create(ctx, s))
	assert.Equal(t, "Laptop", s.ProductName)

	p.Name = "Laptop Pro"
	require.NoError(t, repos.Products.Update(ctx, p))
	got, err := repos.Sales.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", got.ProductName, "el nombre se resuelve al leer")

	assert.ErrorIs(t, repos.Products.Delete(ctx, p.ID), domain.ErrReferenced)
	require.NoError(t, repos.Sales.Delete(ctx, s.ID))
	assert.NoError(t, repos.Products.Delete(ctx, p.ID))
}

func TestCustomerRepository_DeleteDesvinculaVentas(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	p := &entity.Product{Name: "Mouse"}
	require.NoError(t, repos.Products.Create(ctx, p))
	c := &entity.Customer{Name: "John", Email: "john@example.com"}
	require.NoError(t, repos.Customers.Create(ctx, c))
	assert.ErrorIs(t, repos.Customers.Create(ctx, &entity.Customer{Email: "john@example.com"}), domain.ErrDuplicate)

	s := &entity.Sale{ProductID: p.ID, CustomerID: &c.ID, Quantity: 1, CustomerName: "John"}
	require.NoError(t, repos.Sales.Create(ctx, s))

	require.NoError(t, repos.Customers.Delete(ctx, c.ID))
	got, err := repos.Sales.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CustomerID)
	assert.Equal(t, "John", got.CustomerName)
}

func TestStore_EscriturasConcurrentes(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repos.Users.Create(ctx, &entity.User{Email: fmt.Sprintf("u%d@example.com", i)})
			_, _ = repos.Analytics.AllSales(ctx)
		}(i)
	}
	wg.Wait()

	list, err := repos.Users.List(ctx, 1000, 0)
	require.NoError(t, err)
	assert.Len(t, list, n)
	seen := make(map[int64]bool)
	for _, u := range list {
		assert.False(t, seen[u.ID], "id duplicado %d", u.ID)
		seen[u.ID] = true
	}
}
