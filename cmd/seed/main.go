// seed carga un dataset YAML (usuarios, productos, clientes y ventas) en el almacén
// configurado por STORE_DRIVER. Es idempotente: los usuarios existentes se omiten y el
// catálogo solo se carga si está vacío.
//
// Uso: go run ./cmd/seed [ruta/dataset.yaml]
// Sin argumento usa el dataset de ejemplo embebido.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/datastore"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/seed"
	"github.com/jhoicas/sales-analytics-api/pkg/config"
	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	if cfg.Store.Driver == config.StoreMemory {
		fmt.Fprintln(os.Stderr, "STORE_DRIVER=memory no persiste nada; usar postgres o sqlite")
		os.Exit(1)
	}

	var ds *seed.Dataset
	if len(os.Args) > 1 {
		ds, err = seed.FromFile(os.Args[1])
	} else {
		ds, err = seed.Default()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer dataset: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := datastore.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de datos")
	}
	defer store.Close()

	res, err := seed.Apply(ctx, store, ds, 0)
	if err != nil {
		log.Error().Err(err).Msg("sembrar datos")
		store.Close()
		os.Exit(1)
	}
	log.Info().
		Str("store", store.Name).
		Int("users", res.Users).
		Int("products", res.Products).
		Int("customers", res.Customers).
		Int("sales", res.Sales).
		Msg("dataset cargado")
}
