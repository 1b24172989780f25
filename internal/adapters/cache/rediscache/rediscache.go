// Package rediscache implements the cache port on Redis. Keys are namespaced
// with a prefix and every call runs through a guard.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen11/go-operation-service/internal/platform/guard"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.Cache         = (*Cache)(nil)
	_ ports.CacheFactory  = (*Cache)(nil)
	_ ports.HealthChecker = (*Cache)(nil)
)

// Dial parses a redis:// URL and returns a client. No connection is made
// until the first command.
func Dial(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Cache stores raw values in Redis.
type Cache struct {
	client *redis.Client
	prefix string
	guard  *guard.Guard
	logger *slog.Logger
}

// New creates a Cache. A nil logger falls back to slog.Default().
func New(client *redis.Client, prefix string, g *guard.Guard, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{client: client, prefix: prefix, guard: g, logger: logger}
}

// Client returns a Cache that logs through logger and shares the connection
// pool and guard.
func (c *Cache) Client(logger *slog.Logger) ports.Cache {
	cp := *c
	if logger != nil {
		cp.logger = logger
	}
	return &cp
}

// Get returns one entry per key in key order; a missing key yields nil.
func (c *Cache) Get(ctx context.Context, keys ...string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	var values []any
	err := c.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		values, err = c.client.MGet(ctx, c.keys(keys)...).Result()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	out := make([][]byte, len(values))
	for i, v := range values {
		if s, ok := v.(string); ok {
			out[i] = []byte(s)
		}
	}
	return out, nil
}

// Set stores value under key. A zero ttl keeps the entry until cleared.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.guard.Do(ctx, func(ctx context.Context) error {
		return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Clear deletes keys. Missing keys are ignored.
func (c *Cache) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	var removed int64
	err := c.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		removed, err = c.client.Del(ctx, c.keys(keys)...).Result()
		return err
	})
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	c.logger.DebugContext(ctx, "cache cleared",
		slog.Int("requested", len(keys)),
		slog.Int64("removed", removed),
	)
	return nil
}

// Name implements ports.HealthChecker.
func (c *Cache) Name() string {
	return c.guard.Name()
}

// HealthCheck reports the breaker state, then pings Redis.
func (c *Cache) HealthCheck(ctx context.Context) error {
	if err := c.guard.HealthCheck(ctx); err != nil {
		return err
	}
	if err := c.client.Ping(ctx).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%s: ping: %w", c.Name(), err)
	}
	return nil
}

func (c *Cache) keys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = c.prefix + k
	}
	return out
}
