// Package datastore elige el backend de datos según STORE_DRIVER.
package datastore

import (
	"context"
	"fmt"

	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/memory"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/postgres"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/sales-analytics-api/pkg/config"
)

// Open abre (y migra, si aplica) el almacén configurado.
func Open(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return memory.NewStore().Repositories(), nil
	case config.StorePostgres:
		return postgres.Open(ctx, cfg.DB)
	case config.StoreSQLite:
		return sqlite.Open(ctx, cfg.Store.SQLitePath)
	default:
		return nil, fmt.Errorf("datastore: driver desconocido %q", cfg.Store.Driver)
	}
}
