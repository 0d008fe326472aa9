package http

import (
	"net"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

// RequestRecorder registra la métrica de cada petición atendida.
type RequestRecorder interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// requestID devuelve el id asignado por el middleware requestid (vacío si no está montado).
func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}

// RequestObserver registra en log y métricas método, ruta, status, latencia y request id.
// Resuelve el error de la cadena aquí para conocer el status final.
func RequestObserver(log *logger.Logger, rec RequestRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		route := c.Route().Path
		if rec != nil {
			rec.ObserveRequest(c.Method(), route, status, elapsed)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Str("request_id", requestID(c)).
			Str("ip", c.IP()).
			Msg("petición atendida")
		return nil
	}
}

// TrustedHosts rechaza con 400 las peticiones cuyo Host no está en la lista.
// "*" acepta cualquiera; "*.dominio" acepta subdominios.
func TrustedHosts(allowed []string) fiber.Handler {
	for _, h := range allowed {
		if h == "*" {
			return func(c *fiber.Ctx) error { return c.Next() }
		}
	}
	return func(c *fiber.Ctx) error {
		host := c.Hostname()
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		host = strings.ToLower(host)
		for _, pattern := range allowed {
			if hostMatches(strings.ToLower(pattern), host) {
				return c.Next()
			}
		}
		return writeError(c, fiber.StatusBadRequest, CodeInvalidHost, "host no permitido")
	}
}

func hostMatches(pattern, host string) bool {
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	return pattern == host
}

// RateLimiter fábrica de limitadores por IP; deshabilitado devuelve middlewares de paso.
type RateLimiter struct {
	enabled bool
}

// NewRateLimiter construye la fábrica.
func NewRateLimiter(enabled bool) RateLimiter {
	return RateLimiter{enabled: enabled}
}

// PerMinute limita a max peticiones por minuto y por IP cliente.
func (r RateLimiter) PerMinute(max int) fiber.Handler {
	if !r.enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return writeError(c, fiber.StatusTooManyRequests, CodeRateLimited, "demasiadas peticiones, intente más tarde")
		},
	})
}
