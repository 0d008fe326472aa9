package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-analytics-api/internal/domain/access"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// LocalUser clave de c.Locals con el usuario autenticado (*entity.User).
const LocalUser = "user"

// Authenticator resuelve un access token al usuario activo que lo porta.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token y carga el usuario en c.Locals.
func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return writeError(c, fiber.StatusUnauthorized, CodeMissingToken, "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return writeError(c, fiber.StatusUnauthorized, CodeInvalidToken, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return writeError(c, fiber.StatusUnauthorized, CodeMissingToken, "token vacío")
		}
		user, err := auth.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			return err
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// CurrentUser devuelve el usuario autenticado (nil fuera de rutas protegidas).
func CurrentUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// RequireAdmin permite el paso solo a usuarios con rol admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !access.IsAdmin(CurrentUser(c)) {
			return writeError(c, fiber.StatusForbidden, CodeForbidden, "se requiere rol admin")
		}
		return c.Next()
	}
}

// RequireCapability permite el paso a quien tenga la capacidad (admin las tiene todas).
func RequireCapability(capability entity.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !access.Can(CurrentUser(c), capability) {
			return writeError(c, fiber.StatusForbidden, CodeForbidden, "permiso requerido: "+string(capability))
		}
		return c.Next()
	}
}
