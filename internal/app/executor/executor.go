// Package executor drives operations whose pipeline is chosen per call. It
// builds each operation's collaborators from factories, runs the actions,
// and closes the operation according to how the pipeline ended.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-operation-service/internal/app/operation"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

// Config holds the collaborator factories. Database is required; the other
// factories are optional.
type Config struct {
	Database   ports.Database
	Cache      ports.CacheFactory
	Notifier   ports.NotifierFactory
	Dispatcher ports.DispatcherFactory
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger handed to factories and operations.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithMetrics enables operation metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

// WithMaxConcurrency bounds deferred-action and flush concurrency for every
// operation the executor creates.
func WithMaxConcurrency(n int) Option {
	return func(e *Executor) {
		e.maxConcurrency = n
	}
}

// Executor creates, runs and closes operations.
type Executor struct {
	cfg            Config
	logger         *slog.Logger
	metrics        *telemetry.Metrics
	maxConcurrency int
}

// New creates an Executor. A missing Database is a configuration error.
func New(cfg Config, opts ...Option) (*Executor, error) {
	if cfg.Database == nil {
		return nil, fmt.Errorf("%w: executor database is required", operation.ErrConfig)
	}

	e := &Executor{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// CreateContext builds an operation for cfg with services from the
// factories. The Dao begins its transaction here. cfg.Actions is ignored:
// the pipeline is passed to Execute. A blank ID is replaced with a UUID.
func (e *Executor) CreateContext(ctx context.Context, cfg operation.Config) (*operation.Operation, error) {
	if strings.TrimSpace(cfg.ID) == "" {
		cfg.ID = uuid.NewString()
	}
	cfg.Actions = nil

	dao, err := e.cfg.Database.Client(ctx, e.logger)
	if err != nil {
		return nil, &operation.CollaboratorError{Service: "dao", Op: "begin", Err: err}
	}

	services := operation.Services{Dao: dao}
	if e.cfg.Cache != nil {
		services.Cache = e.cfg.Cache.Client(e.logger)
	}
	if e.cfg.Notifier != nil {
		services.Notifier = e.cfg.Notifier.Client(e.logger)
	}
	if e.cfg.Dispatcher != nil {
		services.Dispatcher = e.cfg.Dispatcher.Client(e.logger)
	}

	op, err := operation.New(cfg,
		operation.WithServices(services),
		operation.WithLogger(e.logger),
		operation.WithMetrics(e.metrics),
		operation.WithMaxConcurrency(e.maxConcurrency),
	)
	if err != nil {
		if dao.IsActive() {
			err = errors.Join(err, dao.Close(ctx, ports.Rollback))
		}
		return nil, err
	}
	return op, nil
}

// Execute starts op, runs actions in order (each output feeding the next)
// and seals op. An action that fails with an error built by Continue stops
// the pipeline but keeps its effects: op is still sealed and the error is
// returned together with the last successful output.
//
// Execute never closes op; pass the returned error to CloseContext.
func (e *Executor) Execute(ctx context.Context, actions []*operation.Action, input any, op *operation.Operation) (any, error) {
	if err := op.Start(); err != nil {
		return nil, err
	}

	result := input
	for _, action := range actions {
		out, err := op.Run(ctx, action, result)
		if err != nil {
			if !IsContinuable(err) {
				return nil, err
			}
			if sealErr := op.Seal(ctx); sealErr != nil {
				return nil, sealErr
			}
			return result, err
		}
		result = out
	}

	if err := op.Seal(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// CloseContext finishes op after Execute. A nil or continuable err runs the
// deferred actions and flushes; any other err aborts op, rolling back its
// transaction. The returned error is err joined with any close failure.
func (e *Executor) CloseContext(ctx context.Context, op *operation.Operation, err error) error {
	if op.IsClosed() {
		return err
	}
	if err != nil && !IsContinuable(err) {
		return op.Abort(ctx, err)
	}
	if closeErr := op.Close(ctx); closeErr != nil {
		return errors.Join(err, closeErr)
	}
	return err
}

// Run creates an operation for cfg, executes actions and closes it. The
// output is returned alongside a continuable error only when the close
// succeeded; a failed commit or flush yields a nil output.
func (e *Executor) Run(ctx context.Context, cfg operation.Config, actions []*operation.Action, input any) (any, error) {
	op, err := e.CreateContext(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ctx = httpclient.WithCorrelationID(ctx, op.ID())

	result, execErr := e.Execute(ctx, actions, input, op)
	err = e.CloseContext(ctx, op, execErr)
	switch {
	case err == nil:
		return result, nil
	case err == execErr && IsContinuable(err): //nolint:errorlint // unchanged means the close succeeded
		return result, err
	default:
		return nil, err
	}
}
