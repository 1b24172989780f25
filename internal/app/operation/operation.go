package operation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-operation-service/internal/platform/logging"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

const tracerName = "github.com/jsamuelsen11/go-operation-service/internal/app/operation"

// State is a lifecycle stage of an Operation.
type State int

// Lifecycle stages, in order.
const (
	StateInitialized State = iota
	StateStarted
	StateSealed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateStarted:
		return "started"
	case StateSealed:
		return "sealed"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config identifies an operation and lists its pipeline.
type Config struct {
	ID      string
	Name    string
	Origin  string
	Actions []*Action
}

// Services are the collaborators an operation may use. Every field is
// optional; a nil field means the collaborator is not wired.
type Services struct {
	Dao        ports.Dao
	Cache      ports.Cache
	Notifier   ports.Notifier
	Dispatcher ports.Dispatcher
}

// Option configures an Operation.
type Option func(*Operation)

// WithServices wires the operation's collaborators.
func WithServices(s Services) Option {
	return func(o *Operation) {
		o.services = s
	}
}

// WithLogger sets the base logger. The operation logs through a child
// logger carrying its identity. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Operation) {
		o.logger = logger
	}
}

// WithMetrics enables metric recording. Nil disables it.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(o *Operation) {
		o.metrics = m
	}
}

// WithMaxConcurrency bounds how many deferred actions and flush sends run at
// once. n <= 0 means unbounded.
func WithMaxConcurrency(n int) Option {
	return func(o *Operation) {
		o.maxConcurrency = n
	}
}

// WithClock overrides the clock used for Timestamp and durations.
func WithClock(now func() time.Time) Option {
	return func(o *Operation) {
		o.now = now
	}
}

// Operation is one execution of a pipeline. It is created per request and
// must not be reused. Registration methods (Defer, Notify, Dispatch) are safe
// for concurrent use.
type Operation struct {
	id        string
	name      string
	origin    string
	timestamp time.Time
	actions   []*Action

	services       Services
	logger         *slog.Logger
	metrics        *telemetry.Metrics
	tracer         trace.Tracer
	maxConcurrency int
	now            func() time.Time

	mu      sync.Mutex
	state   State
	flushed bool
	queue   *deferredQueue
	notices *noticeBuffer
	tasks   *taskBuffer
}

// New validates cfg and builds an operation in the initialized state. All
// configuration problems are reported together, wrapped in ErrConfig. No
// collaborator is called.
func New(cfg Config, opts ...Option) (*Operation, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	o := &Operation{
		id:      strings.TrimSpace(cfg.ID),
		name:    strings.TrimSpace(cfg.Name),
		origin:  strings.TrimSpace(cfg.Origin),
		actions: append([]*Action(nil), cfg.Actions...),
		now:     time.Now,
		queue:   newDeferredQueue(),
		notices: newNoticeBuffer(),
		tasks:   &taskBuffer{},
	}
	for _, opt := range opts {
		opt(o)
	}

	o.timestamp = o.now()
	o.logger = logging.ForOperation(o.logger, o.id, o.name, o.origin)
	o.tracer = otel.GetTracerProvider().Tracer(tracerName)

	return o, nil
}

func (c *Config) validate() error {
	var errs []error

	if strings.TrimSpace(c.ID) == "" {
		errs = append(errs, fmt.Errorf("%w: operation id is missing or blank", ErrConfig))
	}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, fmt.Errorf("%w: operation name is missing or blank", ErrConfig))
	}
	if strings.TrimSpace(c.Origin) == "" {
		errs = append(errs, fmt.Errorf("%w: operation origin is missing or blank", ErrConfig))
	}
	for i, a := range c.Actions {
		switch {
		case a == nil:
			errs = append(errs, fmt.Errorf("%w: action %d is nil", ErrConfig, i))
		case a.run == nil:
			errs = append(errs, fmt.Errorf("%w: action %d (%s) has no run func", ErrConfig, i, a.name))
		}
	}

	return errors.Join(errs...)
}

// ID returns the operation identifier.
func (o *Operation) ID() string { return o.id }

// Name returns the operation name.
func (o *Operation) Name() string { return o.name }

// Origin returns where the operation was requested from.
func (o *Operation) Origin() string { return o.origin }

// Timestamp returns the construction time.
func (o *Operation) Timestamp() time.Time { return o.timestamp }

// Logger returns the operation's logger.
func (o *Operation) Logger() *slog.Logger { return o.logger }

// State returns the current lifecycle stage.
func (o *Operation) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// IsSealed reports whether the operation is sealed or closed.
func (o *Operation) IsSealed() bool {
	return o.State() >= StateSealed
}

// IsClosed reports whether the operation is closed.
func (o *Operation) IsClosed() bool {
	return o.State() == StateClosed
}

// Dao returns the transactional data-access handle.
func (o *Operation) Dao() (ports.Dao, error) {
	if o.services.Dao == nil {
		return nil, fmt.Errorf("%w: dao", ErrServiceNotConfigured)
	}
	return o.services.Dao, nil
}

// Cache returns the cache service.
func (o *Operation) Cache() (ports.Cache, error) {
	if o.services.Cache == nil {
		return nil, fmt.Errorf("%w: cache", ErrServiceNotConfigured)
	}
	return o.services.Cache, nil
}

// Run invokes action synchronously within this operation and returns its
// result. It does not change the lifecycle state.
func (o *Operation) Run(ctx context.Context, action *Action, input any) (any, error) {
	if action == nil || action.run == nil {
		return nil, ErrNilAction
	}
	return o.invoke(ctx, action, input)
}

// invoke runs one action with logging, tracing and panic recovery. Errors
// returned by the action pass through unchanged.
func (o *Operation) invoke(ctx context.Context, action *Action, input any) (out any, err error) {
	ctx, span := o.tracer.Start(ctx, "action "+action.name,
		trace.WithAttributes(telemetry.AttrOperation.String(o.name)),
	)
	defer span.End()

	start := o.now()
	o.logger.DebugContext(ctx, "executing action", slog.String("action", action.name))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrActionPanic, action.name, r)
		}
		if err != nil {
			span.RecordError(err)
			o.logger.DebugContext(ctx, "action failed",
				slog.String("action", action.name),
				slog.Any("error", err),
			)
			return
		}
		o.logger.DebugContext(ctx, "executed action",
			slog.String("action", action.name),
			slog.Int64("duration_ms", o.now().Sub(start).Milliseconds()),
		)
	}()

	return action.run(ctx, o, input)
}
