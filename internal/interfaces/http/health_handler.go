package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
)

// HealthHandler endpoints públicos de estado del servicio.
type HealthHandler struct {
	name    string
	version string
	store   string
	docs    string
}

// NewHealthHandler construye el handler. docs vacío si la documentación no se sirve.
func NewHealthHandler(name, version, store, docs string) *HealthHandler {
	return &HealthHandler{name: name, version: version, store: store, docs: docs}
}

// Info godoc
// @Summary      Información del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.ServiceInfoResponse
// @Router       / [get]
func (h *HealthHandler) Info(c *fiber.Ctx) error {
	return c.JSON(dto.ServiceInfoResponse{
		Name:    h.name,
		Version: h.version,
		Status:  "running",
		Docs:    h.docs,
	})
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Store:     h.store,
	})
}
