// Package sqlite implementa los repositorios sobre un archivo SQLite (modernc.org/sqlite,
// sin cgo). Pensado para un solo nodo: una conexión, claves foráneas activas.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
	"github.com/jhoicas/sales-analytics-api/pkg/config"
)

//go:embed schema.sql
var schema string

// DBTX es lo común entre *sql.DB y *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// OpenDB abre la base en path (":memory:" para tests) con claves foráneas activas.
func OpenDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Una sola conexión persistente: ":memory:" y los PRAGMA son por conexión.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configurar sqlite: %w", err)
	}
	return db, nil
}

// Migrate aplica el esquema. Es idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("aplicar esquema sqlite: %w", err)
	}
	return nil
}

// Repositories agrupa los repositorios sobre db. Close cierra la base.
func Repositories(db *sql.DB) *repository.Store {
	return &repository.Store{
		Users:     NewUserRepository(db),
		Products:  NewProductRepository(db),
		Sales:     NewSaleRepository(db),
		Customers: NewCustomerRepository(db),
		Analytics: NewAnalyticsRepository(db),
		Name:      config.StoreSQLite,
		Close:     func() { _ = db.Close() },
	}
}

// Open abre, migra y devuelve el almacén SQLite.
func Open(ctx context.Context, path string) (*repository.Store, error) {
	db, err := OpenDB(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return Repositories(db), nil
}
