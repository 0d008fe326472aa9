package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sales-analytics-api/internal/application/auth"
	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/application/ports"
	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/cache"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/memory"
	"github.com/jhoicas/sales-analytics-api/pkg/jwt"
	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

const secret = "auth-usecase-test-secret"

type countingMetrics struct {
	ok, failed int
}

func (m *countingMetrics) LoginAttempt(success bool) {
	if success {
		m.ok++
	} else {
		m.failed++
	}
}
func (m *countingMetrics) KPIComputed(bool) {}

func newUseCase(t *testing.T, sessions ports.SessionCache, m ports.Metrics, reuse bool) (*auth.AuthUseCase, repository.UserRepository) {
	t.Helper()
	users := memory.NewStore().Repositories().Users
	hash, err := auth.HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	for _, u := range []*entity.User{
		{Email: "ana@example.com", Name: "Ana", Role: entity.RoleAnalyst, PasswordHash: hash, IsActive: true},
		{Email: "off@example.com", Name: "Off", Role: entity.RoleViewer, PasswordHash: hash, IsActive: false},
	} {
		require.NoError(t, users.Create(context.Background(), u))
	}
	uc := auth.NewAuthUseCase(users, sessions, m, auth.JWTConfig{
		Secret:         secret,
		Issuer:         "test",
		AccessTTL:      30 * time.Minute,
		RefreshTTL:     24 * time.Hour,
		ReuseDetection: reuse,
	}, logger.Nop())
	return uc, users
}

func TestLogin_TokenVerificaConSubject(t *testing.T) {
	m := &countingMetrics{}
	uc, _ := newUseCase(t, cache.NoopSessionCache{}, m, false)

	tokens, err := uc.Login(context.Background(), dto.LoginRequest{Email: " ANA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, auth.TokenTypeBearer, tokens.TokenType)
	assert.Equal(t, 1800, tokens.ExpiresIn)

	claims, err := jwt.ParseClass(secret, tokens.AccessToken, jwt.ClassAccess)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Subject)
	assert.Equal(t, 1, m.ok)
}

func TestLogin_Rechazos(t *testing.T) {
	m := &countingMetrics{}
	uc, _ := newUseCase(t, cache.NoopSessionCache{}, m, false)
	ctx := context.Background()

	for _, in := range []dto.LoginRequest{
		{Email: "ana@example.com", Password: "mala"},
		{Email: "nadie@example.com", Password: "secret123"},
		{Email: "off@example.com", Password: "secret123"},
	} {
		_, err := uc.Login(ctx, in)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, in.Email)
	}
	assert.Equal(t, 3, m.failed)
	assert.Zero(t, m.ok)
}

func TestAuthenticate(t *testing.T) {
	uc, users := newUseCase(t, cache.NoopSessionCache{}, ports.NopMetrics{}, false)
	ctx := context.Background()

	tokens, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	user, err := uc.Authenticate(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	_, err = uc.Authenticate(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "un refresh no sirve como bearer")

	expired, err := jwt.Generate(secret, "ana@example.com", jwt.ClassAccess, "test", -time.Second)
	require.NoError(t, err)
	_, err = uc.Authenticate(ctx, expired)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	// Usuario desactivado tras emitir el token.
	user.IsActive = false
	require.NoError(t, users.Update(ctx, user))
	_, err = uc.Authenticate(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_Rotacion(t *testing.T) {
	uc, _ := newUseCase(t, cache.NoopSessionCache{}, ports.NopMetrics{}, false)
	ctx := context.Background()

	tokens, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	next, err := uc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, next.RefreshToken)

	// Sin detección de reutilización el refresh anterior sigue valiendo.
	_, err = uc.Refresh(ctx, tokens.RefreshToken)
	assert.NoError(t, err)

	_, err = uc.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	_, err = uc.Refresh(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRefresh_DeteccionDeReutilizacion(t *testing.T) {
	mr := miniredis.RunT(t)
	sessions, err := cache.NewRedisSessionCache(context.Background(), "redis://"+mr.Addr(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	uc, _ := newUseCase(t, sessions, ports.NopMetrics{}, true)
	ctx := context.Background()

	tokens, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("session:1"), "el login registra la sesión")

	_, err = uc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	_, err = uc.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	user, err := uc.Authenticate(ctx, tokens.AccessToken)
	require.NoError(t, err)
	require.NoError(t, uc.Logout(ctx, user))
	assert.False(t, mr.Exists("session:1"))

	// El access token sigue siendo válido tras logout.
	_, err = uc.Authenticate(ctx, tokens.AccessToken)
	assert.NoError(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := auth.HashPassword("pw", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(hash, "pw"))
	assert.False(t, auth.CheckPassword(hash, "otra"))
	assert.False(t, auth.CheckPassword("no-es-un-hash", "pw"))
	assert.Equal(t, "a@b.com", auth.NormalizeEmail("  A@B.com "))
}
