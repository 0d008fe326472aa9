package http

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

// ServerConfig opciones de la aplicación Fiber.
type ServerConfig struct {
	AppName        string
	AllowedOrigins []string
	AllowedHosts   []string
	Log            *logger.Logger
	Recorder       RequestRecorder // nil = sin métricas HTTP
}

// NewApp crea la aplicación Fiber con timeouts, manejo central de errores y
// middlewares globales. El panic recuperado llega al observador como error 500.
func NewApp(cfg ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: NewErrorHandler(cfg.Log),
	})

	app.Use(requestid.New())
	app.Use(RequestObserver(cfg.Log, cfg.Recorder))
	app.Use(recover.New())
	app.Use(TrustedHosts(cfg.AllowedHosts))
	app.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	return app
}

// corsConfig con orígenes explícitos admite credenciales; con "*" no.
func corsConfig(origins []string) cors.Config {
	wildcard := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	cfg := cors.Config{
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}
	if wildcard {
		cfg.AllowOrigins = "*"
		return cfg
	}
	cfg.AllowOrigins = strings.Join(origins, ",")
	cfg.AllowCredentials = true
	return cfg
}

// MountDocs sirve la documentación OpenAPI en /docs si el archivo existe.
// Devuelve false cuando no se monta.
func MountDocs(app *fiber.App, filePath, title string) bool {
	if _, err := os.Stat(filePath); err != nil {
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	}))
	return true
}
