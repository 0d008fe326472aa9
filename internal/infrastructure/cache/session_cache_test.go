package cache_test

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-analytics-api/internal/application/ports"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/cache"
	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

func setupRedis(t *testing.T) (*cache.RedisSessionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.NewRedisSessionCache(context.Background(), "redis://"+mr.Addr(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

// readSession decodifica session:{id} directamente de miniredis; nil si no existe.
func readSession(t *testing.T, mr *miniredis.Miniredis, userID int64) *ports.Session {
	t.Helper()
	key := "session:" + strconv.FormatInt(userID, 10)
	if !mr.Exists(key) {
		return nil
	}
	raw, err := mr.Get(key)
	require.NoError(t, err)
	var s ports.Session
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	return &s
}

func TestRedisSessionCache_StartEnd(t *testing.T) {
	ctx := context.Background()
	c, mr := setupRedis(t)

	login := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, c.Start(ctx, ports.Session{UserID: 7, Email: "a@example.com", Role: "admin", LoginTime: login}))

	assert.True(t, mr.Exists("session:7"))
	assert.Equal(t, time.Hour, mr.TTL("session:7"))

	s := readSession(t, mr, 7)
	require.NotNil(t, s)
	assert.Equal(t, "a@example.com", s.Email)
	assert.True(t, login.Equal(s.LoginTime))

	require.NoError(t, c.End(ctx, 7))
	assert.False(t, mr.Exists("session:7"))
	assert.Nil(t, readSession(t, mr, 7))
}

func TestRedisSessionCache_Expira(t *testing.T) {
	ctx := context.Background()
	c, mr := setupRedis(t)

	require.NoError(t, c.Start(ctx, ports.Session{UserID: 1}))
	require.NotNil(t, readSession(t, mr, 1))
	mr.FastForward(time.Hour + time.Second)

	assert.Nil(t, readSession(t, mr, 1))
}

func TestRedisSessionCache_MarkRefreshUsed(t *testing.T) {
	ctx := context.Background()
	c, _ := setupRedis(t)

	first, err := c.MarkRefreshUsed(ctx, "jti-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := c.MarkRefreshUsed(ctx, "jti-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, again)
}

func TestOpen_SinRedis(t *testing.T) {
	c := cache.Open(context.Background(), "", time.Hour, logger.Nop())
	assert.False(t, c.Enabled())

	c = cache.Open(context.Background(), "redis://127.0.0.1:1", time.Hour, logger.Nop())
	assert.False(t, c.Enabled(), "redis caído degrada a noop")

	ok, err := c.MarkRefreshUsed(context.Background(), "x", time.Minute)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestOpen_ConRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.Open(context.Background(), "redis://"+mr.Addr(), time.Hour, logger.Nop())
	defer c.Close()
	assert.True(t, c.Enabled())
}
