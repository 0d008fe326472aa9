package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/application/ports"
	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
	"github.com/jhoicas/sales-analytics-api/pkg/jwt"
	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

// TokenTypeBearer valor fijo de token_type.
const TokenTypeBearer = "bearer"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// ReuseDetection rechaza un refresh token ya consumido (requiere caché de sesiones).
	ReuseDetection bool
}

// AuthUseCase casos de uso de autenticación: login, refresh, logout y verificación de bearer.
type AuthUseCase struct {
	userRepo repository.UserRepository
	sessions ports.SessionCache
	metrics  ports.Metrics
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. sessions y metrics son obligatorios
// (usar los adaptadores noop si no hay backend).
func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessions ports.SessionCache,
	metrics ports.Metrics,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		sessions: sessions,
		metrics:  metrics,
		jwtCfg:   jwtCfg,
		log:      log.Component("auth"),
	}
}

// NormalizeEmail forma canónica con la que se guardan y buscan los emails.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifica email/password y emite un par access + refresh.
// Usuario inexistente, password incorrecto o cuenta inactiva devuelven ErrUnauthorized sin distinguir.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	hash := dummyHash()
	if user != nil {
		hash = user.PasswordHash
	}
	matches := checkPassword(hash, in.Password)
	if user == nil || !matches || !user.IsActive {
		uc.metrics.LoginAttempt(false)
		return nil, domain.ErrUnauthorized
	}

	tokens, err := uc.issuePair(user.Email)
	if err != nil {
		return nil, err
	}
	uc.metrics.LoginAttempt(true)

	if err := uc.sessions.Start(ctx, ports.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		LoginTime: time.Now().UTC(),
	}); err != nil {
		uc.log.Warn().Err(err).Int64("user_id", user.ID).Msg("no se pudo registrar la sesión en caché")
	}
	return tokens, nil
}

// Refresh canjea un refresh token por un par nuevo. Un access token aquí es ErrInvalidToken.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, domain.ErrInvalidToken
	}
	claims, err := jwt.ParseClass(uc.jwtCfg.Secret, refreshToken, jwt.ClassRefresh)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	if uc.jwtCfg.ReuseDetection && uc.sessions.Enabled() {
		ttl := time.Until(claims.ExpiresAt.Time)
		first, err := uc.sessions.MarkRefreshUsed(ctx, claims.ID, ttl)
		switch {
		case err != nil:
			uc.log.Warn().Err(err).Msg("no se pudo verificar reutilización de refresh token")
		case !first:
			uc.log.Warn().Str("sub", claims.Subject).Str("jti", claims.ID).Msg("refresh token reutilizado")
			return nil, fmt.Errorf("%w: refresh token ya utilizado", domain.ErrInvalidToken)
		}
	}

	user, err := uc.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return uc.issuePair(user.Email)
}

// Authenticate resuelve el usuario de un access token (bearer).
// No consulta la caché de sesiones: un token revocado pero no expirado sigue siendo válido.
func (uc *AuthUseCase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := jwt.ParseClass(uc.jwtCfg.Secret, accessToken, jwt.ClassAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	user, err := uc.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// Logout elimina la sesión de la caché. Los tokens emitidos siguen vigentes hasta expirar.
func (uc *AuthUseCase) Logout(ctx context.Context, user *entity.User) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	if err := uc.sessions.End(ctx, user.ID); err != nil {
		uc.log.Warn().Err(err).Int64("user_id", user.ID).Msg("no se pudo eliminar la sesión de caché")
	}
	return nil
}

// Me perfil del usuario autenticado.
func (uc *AuthUseCase) Me(user *entity.User) *dto.UserResponse {
	return dto.NewUserResponse(user)
}

func (uc *AuthUseCase) issuePair(subject string) (*dto.TokenResponse, error) {
	access, err := jwt.Generate(uc.jwtCfg.Secret, subject, jwt.ClassAccess, uc.jwtCfg.Issuer, uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: generar access token: %w", err)
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, subject, jwt.ClassRefresh, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: generar refresh token: %w", err)
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    TokenTypeBearer,
		ExpiresIn:    int(uc.jwtCfg.AccessTTL.Seconds()),
	}, nil
}
