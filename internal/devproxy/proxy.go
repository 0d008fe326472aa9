// Package devproxy es un proxy de desarrollo que reenvía peticiones al API desplegado
// añadiendo cabeceras CORS permisivas, para probar un frontend local sin tocar el servidor.
package devproxy

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"

	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

// Prefix ruta explícita: /proxy/<url absoluta o ruta relativa al destino>.
const Prefix = "/proxy/"

const userAgent = "CORS-Proxy/1.0"

// Config destino y logger del proxy.
type Config struct {
	Target string // URL base sin barra final, p.ej. https://api.example.com
	Log    *logger.Logger
}

// New construye la app Fiber del proxy.
func New(cfg Config) *fiber.App {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	target := strings.TrimRight(cfg.Target, "/")

	app := fiber.New(fiber.Config{
		AppName:               "cors-proxy",
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})
	app.Use(permissiveCORS)

	// Preflight: se responde aquí, nunca llega al destino.
	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.All("/*", func(c *fiber.Ctx) error {
		url := Resolve(target, c.OriginalURL())
		if len(c.Request().Header.UserAgent()) == 0 {
			c.Request().Header.SetUserAgent(userAgent)
		}
		log.Info().Str("method", c.Method()).Str("target", url).Msg("proxy")

		if err := proxy.Do(c, url); err != nil {
			log.Error().Err(err).Str("target", url).Msg("proxy: fallo al reenviar")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return nil
	})
	return app
}

// Resolve calcula la URL destino a partir del request URI original (ruta + query).
func Resolve(target, requestURI string) string {
	rest, ok := strings.CutPrefix(requestURI, Prefix)
	if !ok {
		return target + requestURI
	}
	if strings.HasPrefix(rest, "http://") || strings.HasPrefix(rest, "https://") {
		return rest
	}
	return target + "/" + rest
}

// permissiveCORS se aplica después del handler para pisar las cabeceras del destino.
func permissiveCORS(c *fiber.Ctx) error {
	err := c.Next()

	origin := c.Get(fiber.HeaderOrigin)
	if origin == "" {
		origin = "*"
	}
	h := &c.Response().Header
	h.Set(fiber.HeaderAccessControlAllowOrigin, origin)
	h.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
	h.Set(fiber.HeaderAccessControlAllowHeaders, "*")
	if origin != "*" {
		h.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		h.Add(fiber.HeaderVary, fiber.HeaderOrigin)
	}
	return err
}
