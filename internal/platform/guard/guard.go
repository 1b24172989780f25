// Package guard wraps collaborator calls (cache, notifier, dispatcher) in a
// circuit breaker and an optional token-bucket rate limiter.
//
// The call pipeline is:
//
//	Circuit Breaker → Rate Limiter → fn
//
// Construction:
//
//	g := guard.New(&cfg.Guard, "redis-cache", logger)
//	err := g.Do(ctx, func(ctx context.Context) error { ... })
//
// A Guard also satisfies ports.HealthChecker by reporting the breaker state.
package guard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/go-operation-service/internal/domain"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/config"
)

// Guard protects calls to one collaborator.
type Guard struct {
	name    string
	breaker *gobreaker.CircuitBreaker[struct{}]
	limiter *rate.Limiter // nil when rate limiting is disabled
}

// New creates a Guard named after the collaborator it protects.
// A nil logger falls back to slog.Default().
func New(cfg *config.GuardConfig, name string, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: toUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.BurstSize)
	}

	return &Guard{name: name, breaker: cb, limiter: limiter}
}

// Do runs fn through the breaker and limiter. Breaker rejections are
// reported as domain.ErrUnavailable.
func (g *Guard) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := g.breaker.Execute(func() (struct{}, error) {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, fn(ctx)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w: %w", g.name, domain.ErrUnavailable, err)
	}
	return err
}

// Name returns the protected collaborator's name.
func (g *Guard) Name() string {
	return g.name
}

// HealthCheck reports the collaborator's availability from the breaker state.
// No call is made to the collaborator itself.
func (g *Guard) HealthCheck(_ context.Context) error {
	state := g.breaker.State()
	switch state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", g.name)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", g.name)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", g.name, state)
	}
}

// toUint32 converts a non-negative int to uint32, clamping at the uint32
// maximum. Negative values are treated as zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
