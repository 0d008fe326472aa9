package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Clases de token. Un token sin clase o con clase desconocida es inválido.
const (
	ClassAccess  = "access"
	ClassRefresh = "refresh"
)

// ErrInvalidToken agrupa cualquier fallo de verificación: firma, expiración o clase.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims incluye los claims estándar JWT más la clase del token.
// El subject es el email del usuario.
type Claims struct {
	jwt.RegisteredClaims
	Type string `json:"type"`
}

// Generate genera un token HS256 firmado para subject con la clase y duración indicadas.
func Generate(secret, subject, class, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if !validClass(class) {
		return "", fmt.Errorf("jwt: clase de token desconocida %q", class)
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type: class,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma, expiración y clase del token y devuelve sus claims.
// No consulta revocación: un token no expirado con firma válida siempre verifica.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: subject vacío", ErrInvalidToken)
	}
	if !validClass(claims.Type) {
		return nil, fmt.Errorf("%w: clase %q", ErrInvalidToken, claims.Type)
	}
	return claims, nil
}

// ParseClass es Parse exigiendo además una clase exacta (p.ej. refresh en /auth/refresh).
func ParseClass(secret, tokenString, class string) (*Claims, error) {
	claims, err := Parse(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != class {
		return nil, fmt.Errorf("%w: se esperaba clase %q", ErrInvalidToken, class)
	}
	return claims, nil
}

func validClass(class string) bool {
	return class == ClassAccess || class == ClassRefresh
}
