package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
	"github.com/jhoicas/sales-analytics-api/pkg/config"
)

//go:embed schema.sql
var schema string

// Migrate aplica el esquema dentro de una transacción. Es idempotente.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return NewTxRunner(pool).Run(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, schema); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
		return nil
	})
}

// Repositories agrupa los repositorios sobre el pool. Close cierra el pool.
func Repositories(pool *pgxpool.Pool) *repository.Store {
	return &repository.Store{
		Users:     NewUserRepository(pool),
		Products:  NewProductRepository(pool),
		Sales:     NewSaleRepository(pool),
		Customers: NewCustomerRepository(pool),
		Analytics: NewAnalyticsRepository(pool),
		Name:      config.StorePostgres,
		Close:     pool.Close,
	}
}

// Open conecta, migra y devuelve el almacén PostgreSQL.
func Open(ctx context.Context, cfg config.DBConfig) (*repository.Store, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return Repositories(pool), nil
}
