package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/sales-analytics-api/internal/application/analytics"
)

// AnalyticsHandler maneja los endpoints de KPIs.
type AnalyticsHandler struct {
	uc *appanalytics.KPIUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.KPIUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetKPIs godoc
// @Summary      KPIs del dashboard
// @Description  Se calculan sobre todas las ventas y productos en cada petición.
// @Description  Sin acceso financiero profit_margin es null y se omiten costos y utilidades.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.KPIResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/analytics/kpi [get]
func (h *AnalyticsHandler) GetKPIs(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetKPIReport godoc
// @Summary      Reporte PDF de KPIs
// @Description  La sección financiera solo se incluye con acceso financiero.
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/analytics/kpi/report [get]
func (h *AnalyticsHandler) GetKPIReport(c *fiber.Ctx) error {
	pdf, err := h.uc.Report(c.UserContext(), CurrentUser(c))
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("kpi-report-%s.pdf", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
