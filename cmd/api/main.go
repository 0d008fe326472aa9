package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	appanalytics "github.com/jhoicas/sales-analytics-api/internal/application/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/application/auth"
	"github.com/jhoicas/sales-analytics-api/internal/application/usecase"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/cache"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/datastore"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/sales-analytics-api/internal/infrastructure/pdf"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/sales-analytics-api/internal/interfaces/http"
	"github.com/jhoicas/sales-analytics-api/pkg/config"
	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := datastore.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("abrir almacén de datos")
	}
	defer store.Close()

	// El almacén en memoria arranca vacío: siempre se siembra.
	if cfg.Store.Driver == config.StoreMemory || cfg.Store.SeedSample {
		ds, err := seed.Default()
		if err != nil {
			log.Fatal().Err(err).Msg("datos de ejemplo")
		}
		res, err := seed.Apply(ctx, store, ds, 0)
		if err != nil {
			log.Fatal().Err(err).Msg("sembrar datos de ejemplo")
		}
		log.Info().
			Int("users", res.Users).
			Int("products", res.Products).
			Int("customers", res.Customers).
			Int("sales", res.Sales).
			Msg("datos de ejemplo cargados")
	}

	sessions := cache.Open(ctx, cfg.Redis.URL, cfg.Redis.SessionTTL, log)
	defer sessions.Close()
	m := metrics.New()

	authUC := auth.NewAuthUseCase(store.Users, sessions, m, auth.JWTConfig{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		AccessTTL:      cfg.JWT.AccessTTL,
		RefreshTTL:     cfg.JWT.RefreshTTL,
		ReuseDetection: cfg.JWT.RefreshReuseDetection,
	}, log)
	kpiUC := appanalytics.NewKPIUseCase(store.Analytics, infrapdf.NewMarotoKPIReport(cfg.App.Name), m,
		appanalytics.KPIConfig{
			OperatingExpenseRate: cfg.KPI.OperatingExpenseRate,
			RevenueGrowth:        cfg.KPI.RevenueGrowth,
		})

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		AppName:        cfg.App.Name,
		AllowedOrigins: cfg.Security.AllowedOrigins,
		AllowedHosts:   cfg.Security.AllowedHosts,
		Log:            log,
		Recorder:       m,
	})

	// Swagger UI fuera de producción: http://localhost:<port>/docs
	docsPath := ""
	if !cfg.App.IsProduction() && httpRouter.MountDocs(app, cfg.App.DocsPath, cfg.App.Name) {
		docsPath = "/docs"
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  usecase.NewProductUseCase(store.Products),
		SaleUC:     usecase.NewSaleUseCase(store.Sales, store.Products, store.Customers),
		UserUC:     usecase.NewUserUseCase(store.Users, 0),
		CustomerUC: usecase.NewCustomerUseCase(store.Customers),
		KPIUC:      kpiUC,
		Health:     httpRouter.NewHealthHandler(cfg.App.Name, cfg.App.Version, store.Name, docsPath),
		Metrics:    m.Handler(),
		RateLimit:  cfg.Security.RateLimitEnabled,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
