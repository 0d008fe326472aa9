package ports

import (
	"context"
	"time"
)

// Session registro de una sesión activa en la caché.
// Es informativo: la verificación del token nunca lo consulta.
type Session struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	LoginTime time.Time `json:"login_time"`
}

// SessionCache puerto de salida para la caché de sesiones (Redis o noop).
// Los errores de la caché nunca deben impedir un login o un logout.
type SessionCache interface {
	// Start registra la sesión con el TTL configurado en el adaptador.
	Start(ctx context.Context, s Session) error

	// End elimina la sesión del usuario (logout).
	End(ctx context.Context, userID int64) error

	// MarkRefreshUsed marca un jti de refresh como consumido hasta ttl.
	// Devuelve false si ya estaba marcado (reutilización).
	MarkRefreshUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error)

	// Enabled indica si hay un backend real detrás.
	Enabled() bool

	Close() error
}
