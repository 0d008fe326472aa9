// Package cache implementa la caché de sesiones sobre Redis, con un adaptador noop
// cuando Redis no está configurado o no responde.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/sales-analytics-api/internal/application/ports"
	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

const (
	sessionKeyPrefix = "session:"
	refreshKeyPrefix = "refresh_used:"
	pingTimeout      = 3 * time.Second
)

// RedisSessionCache implementa ports.SessionCache con Redis.
type RedisSessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionCache conecta a Redis (redis://...) y verifica la conexión con PING.
func NewRedisSessionCache(ctx context.Context, url string, ttl time.Duration) (*RedisSessionCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: REDIS_URL inválida: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping redis: %w", err)
	}
	return &RedisSessionCache{client: client, ttl: ttl}, nil
}

// Open devuelve la caché Redis o, si url está vacía o Redis no responde, la noop.
// La caché es opcional: su ausencia solo se registra como advertencia.
func Open(ctx context.Context, url string, ttl time.Duration, log *logger.Logger) ports.SessionCache {
	if url == "" {
		log.Info().Msg("caché de sesiones deshabilitada (REDIS_URL vacío)")
		return NoopSessionCache{}
	}
	c, err := NewRedisSessionCache(ctx, url, ttl)
	if err != nil {
		log.Warn().Err(err).Msg("redis no disponible, se continúa sin caché de sesiones")
		return NoopSessionCache{}
	}
	log.Info().Dur("ttl", ttl).Msg("caché de sesiones redis conectada")
	return c
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}

// Start guarda session:{user_id} como JSON con el TTL configurado.
func (c *RedisSessionCache) Start(ctx context.Context, s ports.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionKey(s.UserID), payload, c.ttl).Err()
}

// End elimina la sesión; no es error si no existía.
func (c *RedisSessionCache) End(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, sessionKey(userID)).Err()
}

// MarkRefreshUsed SETNX sobre el jti: solo la primera llamada devuelve true.
func (c *RedisSessionCache) MarkRefreshUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Second
	}
	return c.client.SetNX(ctx, refreshKeyPrefix+jti, 1, ttl).Result()
}

func (c *RedisSessionCache) Enabled() bool { return true }

func (c *RedisSessionCache) Close() error { return c.client.Close() }

// NoopSessionCache no persiste nada. MarkRefreshUsed siempre responde "primer uso".
type NoopSessionCache struct{}

func (NoopSessionCache) Start(context.Context, ports.Session) error { return nil }
func (NoopSessionCache) End(context.Context, int64) error           { return nil }
func (NoopSessionCache) MarkRefreshUsed(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}
func (NoopSessionCache) Enabled() bool { return false }
func (NoopSessionCache) Close() error  { return nil }
