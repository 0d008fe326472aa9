package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
)

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo inválido")
}

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, CodeValidation, "id inválido")
}

// pageQuery lee ?skip=&limit= aplicando los valores por defecto.
func pageQuery(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, fiber.NewError(fiber.StatusBadRequest, "skip y limit deben ser enteros")
	}
	page.DefaultPage()
	return page, nil
}
