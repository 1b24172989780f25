// Package amqpdispatcher implements the dispatcher port on an AMQP work
// queue. Each task becomes one persistent message whose type is the task
// name.
package amqpdispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/jsamuelsen11/go-operation-service/internal/domain"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/guard"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.Dispatcher        = (*Dispatcher)(nil)
	_ ports.DispatcherFactory = (*Dispatcher)(nil)
	_ ports.HealthChecker     = (*Dispatcher)(nil)
)

// DelayHeader carries the task delay in milliseconds, as read by the
// delayed-message exchange plugin.
const DelayHeader = "x-delay"

// Channel is the subset of *amqp.Channel the dispatcher uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Dial connects to the broker and opens a channel. The caller closes both.
func Dial(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dialing amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("opening amqp channel: %w", err)
	}
	return conn, ch, nil
}

// Body is the JSON body of a task message.
type Body struct {
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Dispatcher publishes tasks to one queue.
type Dispatcher struct {
	ch     Channel
	queue  string
	guard  *guard.Guard
	logger *slog.Logger
	now    func() time.Time

	// mu serializes publishes; AMQP channels are not safe for concurrent use.
	mu *sync.Mutex
}

// New declares the durable queue and returns a Dispatcher publishing to it.
func New(ch Channel, queue string, g *guard.Guard, logger *slog.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declaring queue %s: %w", queue, err)
	}
	return &Dispatcher{
		ch:     ch,
		queue:  queue,
		guard:  g,
		logger: logger,
		now:    time.Now,
		mu:     &sync.Mutex{},
	}, nil
}

// Client returns a Dispatcher that logs through logger and shares the
// channel.
func (d *Dispatcher) Client(logger *slog.Logger) ports.Dispatcher {
	cp := *d
	if logger != nil {
		cp.logger = logger
	}
	return &cp
}

// Send publishes every task in order. It stops at the first failure; tasks
// published before it stay published.
func (d *Dispatcher) Send(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	msgs := make([]amqp.Publishing, 0, len(tasks))
	for _, t := range tasks {
		msg, err := d.publishing(t)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	err := d.guard.Do(ctx, func(ctx context.Context) error {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, msg := range msgs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := d.ch.Publish("", d.queue, false, false, msg); err != nil {
				return fmt.Errorf("publishing task %s: %w", tasks[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	d.logger.DebugContext(ctx, "tasks dispatched",
		slog.String("queue", d.queue),
		slog.Int("count", len(tasks)),
	)
	return nil
}

func (d *Dispatcher) publishing(t domain.Task) (amqp.Publishing, error) {
	body, err := json.Marshal(Body{Name: t.Name, Payload: t.Payload})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encoding task %s: %w", t.Name, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         t.Name,
		Timestamp:    d.now(),
		Body:         body,
	}
	if t.Delay > 0 {
		msg.Headers = amqp.Table{DelayHeader: t.Delay.Milliseconds()}
	}
	if t.TTL > 0 {
		msg.Expiration = strconv.FormatInt(t.TTL.Milliseconds(), 10)
	}
	return msg, nil
}

// Name implements ports.HealthChecker.
func (d *Dispatcher) Name() string {
	return d.guard.Name()
}

// HealthCheck reports the breaker state.
func (d *Dispatcher) HealthCheck(ctx context.Context) error {
	return d.guard.HealthCheck(ctx)
}
