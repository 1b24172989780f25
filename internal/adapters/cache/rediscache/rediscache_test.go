package rediscache_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/go-operation-service/internal/adapters/cache/rediscache"
	"github.com/jsamuelsen11/go-operation-service/internal/domain"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/config"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/guard"
)

func guardConfig() *config.GuardConfig {
	return &config.GuardConfig{
		CircuitBreaker: config.CircuitBreakerConfig{MaxFailures: 1, Timeout: time.Minute, HalfOpenLimit: 1},
	}
}

func newCache(t *testing.T) (*rediscache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return cacheFor(t, mr), mr
}

func cacheFor(t *testing.T, mr *miniredis.Miniredis) *rediscache.Cache {
	t.Helper()
	client, err := rediscache.Dial("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.DiscardHandler)
	return rediscache.New(client, "cache:", guard.New(guardConfig(), "redis-cache", logger), logger)
}

func TestCache_SetGetClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache, mr := newCache(t)

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "b", []byte("2"), 0))

	got, err := mr.Get("cache:a")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
	assert.Equal(t, time.Minute, mr.TTL("cache:a"))

	values, err := cache.Get(ctx, "a", "missing", "b")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("1"), nil, []byte("2")}, values)

	require.NoError(t, cache.Clear(ctx, "a", "missing"))
	assert.False(t, mr.Exists("cache:a"))
	assert.True(t, mr.Exists("cache:b"))
}

func TestCache_EmptyKeys(t *testing.T) {
	t.Parallel()

	cache, _ := newCache(t)

	values, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, values)
	assert.NoError(t, cache.Clear(context.Background()))
}

func TestCache_ClientSharesStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache, _ := newCache(t)
	require.NoError(t, cache.Set(ctx, "a", []byte("1"), 0))

	scoped := cache.Client(slog.New(slog.DiscardHandler))
	values, err := scoped.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("1")}, values)
}

func TestCache_OutageOpensBreaker(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cache := cacheFor(t, mr)
	require.NoError(t, cache.HealthCheck(ctx))

	mr.Close()

	require.Error(t, cache.Clear(ctx, "a"))
	err = cache.Clear(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Error(t, cache.HealthCheck(ctx))
}

func TestDial_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := rediscache.Dial("http://localhost")
	assert.Error(t, err)
}

func TestCache_Name(t *testing.T) {
	t.Parallel()

	cache := rediscache.New(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "",
		guard.New(guardConfig(), "redis-cache", nil), nil)
	assert.Equal(t, "redis-cache", cache.Name())
}
