package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/sales-analytics-api/internal/application/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/application/auth"
	"github.com/jhoicas/sales-analytics-api/internal/application/usecase"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// Límites por minuto y por IP.
const (
	loginRatePerMinute   = 5
	refreshRatePerMinute = 10
	logoutRatePerMinute  = 10
	kpiRatePerMinute     = 30
	listRatePerMinute    = 60
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	SaleUC     *usecase.SaleUseCase
	UserUC     *usecase.UserUseCase
	CustomerUC *usecase.CustomerUseCase
	KPIUC      *appanalytics.KPIUseCase
	Health     *HealthHandler
	Metrics    nethttp.Handler // nil = sin /metrics
	RateLimit  bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	rl := NewRateLimiter(deps.RateLimit)

	app.Get("/", deps.Health.Info)
	app.Get("/health", deps.Health.Health)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", rl.PerMinute(loginRatePerMinute), authHandler.Login)
	authGroup.Post("/refresh", rl.PerMinute(refreshRatePerMinute), authHandler.Refresh)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", rl.PerMinute(logoutRatePerMinute), authHandler.Logout)

	// Analytics
	analyticsHandler := NewAnalyticsHandler(deps.KPIUC)
	kpiLimit := rl.PerMinute(kpiRatePerMinute)
	analytics := protected.Group("/analytics")
	analytics.Get("/kpi", kpiLimit, analyticsHandler.GetKPIs)
	analytics.Get("/kpis", kpiLimit, analyticsHandler.GetKPIs)
	analytics.Get("/kpi/report", kpiLimit, analyticsHandler.GetKPIReport)

	// Products: lectura autenticada, escritura con capacidad products
	productHandler := NewProductHandler(deps.ProductUC)
	canProducts := RequireCapability(entity.CapProducts)
	products := protected.Group("/products")
	products.Get("/", rl.PerMinute(listRatePerMinute), productHandler.List)
	products.Post("/", canProducts, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", canProducts, productHandler.Update)
	products.Delete("/:id", canProducts, productHandler.Delete)

	// Sales: lectura autenticada, escritura con capacidad sales
	saleHandler := NewSaleHandler(deps.SaleUC)
	canSales := RequireCapability(entity.CapSales)
	sales := protected.Group("/sales")
	sales.Get("/", rl.PerMinute(listRatePerMinute), saleHandler.List)
	sales.Post("/", canSales, saleHandler.Create)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", canSales, saleHandler.Update)
	sales.Delete("/:id", canSales, saleHandler.Delete)

	// Users (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequireAdmin())
	users.Get("/", rl.PerMinute(listRatePerMinute), userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Customers (cualquier usuario autenticado)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers")
	customers.Get("/", rl.PerMinute(listRatePerMinute), customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
}
