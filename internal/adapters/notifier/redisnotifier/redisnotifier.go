// Package redisnotifier implements the notifier port on Redis Pub/Sub. Each
// batch is published as one JSON message on the channel prefix+target.
package redisnotifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen11/go-operation-service/internal/domain"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/guard"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.Notifier        = (*Notifier)(nil)
	_ ports.NotifierFactory = (*Notifier)(nil)
)

// Message is the JSON published for one batch.
type Message struct {
	Target  string       `json:"target"`
	Notices []NoticeBody `json:"notices"`
}

// NoticeBody is one notice inside a Message.
type NoticeBody struct {
	Event   string         `json:"event,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Notifier publishes notice batches.
type Notifier struct {
	client *redis.Client
	prefix string
	guard  *guard.Guard
	logger *slog.Logger
}

// New creates a Notifier. A nil logger falls back to slog.Default().
func New(client *redis.Client, prefix string, g *guard.Guard, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{client: client, prefix: prefix, guard: g, logger: logger}
}

// Client returns a Notifier that logs through logger.
func (n *Notifier) Client(logger *slog.Logger) ports.Notifier {
	cp := *n
	if logger != nil {
		cp.logger = logger
	}
	return &cp
}

// Channel returns the Pub/Sub channel for target.
func (n *Notifier) Channel(target string) string {
	return n.prefix + target
}

// Send publishes notices as one message. An empty batch is not published.
func (n *Notifier) Send(ctx context.Context, target string, notices []domain.Notice) error {
	if len(notices) == 0 {
		return nil
	}

	msg := Message{Target: target, Notices: make([]NoticeBody, 0, len(notices))}
	for _, notice := range notices {
		msg.Notices = append(msg.Notices, NoticeBody{Event: notice.Event, Payload: notice.Payload})
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding notices for %s: %w", target, err)
	}

	var receivers int64
	err = n.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		receivers, err = n.client.Publish(ctx, n.Channel(target), body).Result()
		return err
	})
	if err != nil {
		return fmt.Errorf("redis publish %s: %w", target, err)
	}

	n.logger.DebugContext(ctx, "notices published",
		slog.String("target", target),
		slog.Int("count", len(notices)),
		slog.Int64("receivers", receivers),
	)
	return nil
}

// Name implements ports.HealthChecker.
func (n *Notifier) Name() string {
	return n.guard.Name()
}

// HealthCheck reports the breaker state.
func (n *Notifier) HealthCheck(ctx context.Context) error {
	return n.guard.HealthCheck(ctx)
}
