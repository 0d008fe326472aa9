package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

// Códigos de error de la API.
const (
	CodeInvalidBody  = "INVALID_BODY"
	CodeValidation   = "VALIDATION"
	CodeMissingToken = "MISSING_TOKEN"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInvalidHost  = "INVALID_HOST"
	CodeInternal     = "INTERNAL"
)

// writeError escribe el cuerpo de error estándar.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// NewErrorHandler traduce los errores devueltos por handlers al cuerpo estándar.
// Los errores no reconocidos son 500 con mensaje genérico; el detalle solo va al log.
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		switch {
		case errors.Is(err, domain.ErrInvalidToken):
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return writeError(c, fiber.StatusUnauthorized, CodeInvalidToken, domain.ErrInvalidToken.Error())
		case errors.Is(err, domain.ErrUnauthorized):
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, err.Error())
		case errors.Is(err, domain.ErrForbidden):
			return writeError(c, fiber.StatusForbidden, CodeForbidden, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			return writeError(c, fiber.StatusNotFound, CodeNotFound, err.Error())
		case errors.Is(err, domain.ErrInvalidInput):
			return writeError(c, fiber.StatusBadRequest, CodeValidation, err.Error())
		case errors.Is(err, domain.ErrEmailAlreadyExists),
			errors.Is(err, domain.ErrDuplicate),
			errors.Is(err, domain.ErrReferenced):
			return writeError(c, fiber.StatusConflict, CodeConflict, err.Error())
		case errors.As(err, &fe):
			return writeError(c, fe.Code, fiberCode(fe.Code), fe.Message)
		}
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg("error interno")
		return writeError(c, fiber.StatusInternalServerError, CodeInternal, "error interno del servidor")
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusBadRequest:
		return CodeValidation
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusForbidden:
		return CodeForbidden
	case fiber.StatusTooManyRequests:
		return CodeRateLimited
	}
	if status >= 500 {
		return CodeInternal
	}
	return strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(status), " ", "_"))
}
