package operation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-operation-service/internal/app/fanout"
	"github.com/jsamuelsen11/go-operation-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-operation-service/internal/ports"
)

// Execute runs the whole lifecycle: Start, the pipeline, Seal and Close.
// Each action receives the previous action's output; the first receives
// input. The last output is returned once the operation has closed.
//
// If an action fails the operation is aborted: the Dao is rolled back,
// deferred actions and the flush are skipped, and the action's error is
// returned unchanged.
func (o *Operation) Execute(ctx context.Context, input any) (any, error) {
	if err := o.Start(); err != nil {
		return nil, err
	}

	ctx, span := o.tracer.Start(ctx, "operation "+o.name,
		trace.WithAttributes(
			telemetry.AttrOperation.String(o.name),
			telemetry.AttrOrigin.String(o.origin),
		),
	)
	defer span.End()

	start := o.now()
	result, err := o.execute(ctx, input)

	outcome := "success"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	o.record(ctx, start, outcome)

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (o *Operation) execute(ctx context.Context, input any) (any, error) {
	result := input
	for i, action := range o.actions {
		out, err := o.invoke(ctx, action, result)
		if err != nil {
			o.logger.ErrorContext(ctx, "pipeline failed, rolling back",
				slog.Int("failed_step", i+1),
				slog.Int("total", len(o.actions)),
				slog.String("action", action.name),
				slog.Any("error", err),
			)
			return nil, o.Abort(ctx, err)
		}
		result = out
	}

	if err := o.Seal(ctx); err != nil {
		return nil, err
	}
	if err := o.Close(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// Start moves the operation from initialized to started.
func (o *Operation) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateInitialized:
		o.state = StateStarted
		return nil
	case StateClosed:
		return ErrAlreadyClosed
	default:
		return ErrAlreadyStarted
	}
}

// Seal resolves the transaction and moves the operation from started to
// sealed. An active Dao is committed; a Dao that is no longer active is a
// protocol violation. If sealing fails the operation is aborted.
func (o *Operation) Seal(ctx context.Context) error {
	o.mu.Lock()
	state := o.state
	o.mu.Unlock()

	switch state {
	case StateStarted:
	case StateInitialized:
		return ErrNotStarted
	case StateClosed:
		return ErrAlreadyClosed
	default:
		return ErrSealed
	}

	if dao := o.services.Dao; dao != nil {
		if !dao.IsActive() {
			return o.Abort(ctx, ErrDaoClosedOutOfBand)
		}
		o.logger.DebugContext(ctx, "committing")
		if err := dao.Close(ctx, ports.Commit); err != nil {
			return o.Abort(ctx, collaboratorErr("dao", "commit", err))
		}
	}

	o.mu.Lock()
	o.state = StateSealed
	o.mu.Unlock()
	return nil
}

// Abort rolls back an active Dao and closes the operation without running
// deferred actions or flushing. It returns cause unchanged when the rollback
// succeeds or is not needed, and cause joined with the rollback failure
// otherwise. Aborting a closed operation only returns cause.
func (o *Operation) Abort(ctx context.Context, cause error) error {
	o.mu.Lock()
	if o.state == StateClosed {
		o.mu.Unlock()
		return cause
	}
	o.mu.Unlock()

	var rollbackErr error
	if dao := o.services.Dao; dao != nil && dao.IsActive() {
		o.logger.DebugContext(ctx, "rolling back")
		if err := dao.Close(ctx, ports.Rollback); err != nil {
			rollbackErr = collaboratorErr("dao", "rollback", err)
			o.logger.ErrorContext(ctx, "rollback failed", slog.Any("error", err))
		}
	}

	o.markClosed()

	if rollbackErr != nil {
		return errors.Join(cause, rollbackErr)
	}
	return cause
}

// Close runs the deferred actions, flushes pending notices and tasks, and
// moves the operation from sealed to closed. The operation is closed even
// when a deferred action or a send fails; the first failure is returned and
// a failing deferred action skips the flush.
func (o *Operation) Close(ctx context.Context) error {
	o.mu.Lock()
	switch o.state {
	case StateSealed:
	case StateClosed:
		o.mu.Unlock()
		return ErrAlreadyClosed
	default:
		o.mu.Unlock()
		return ErrNotSealed
	}
	envelopes := o.queue.drain()
	o.mu.Unlock()

	defer o.markClosed()

	if err := o.runDeferred(ctx, envelopes); err != nil {
		return err
	}
	return o.flush(ctx)
}

func (o *Operation) markClosed() {
	o.mu.Lock()
	o.state = StateClosed
	o.mu.Unlock()
}

func (o *Operation) runDeferred(ctx context.Context, envelopes []*envelope) error {
	if len(envelopes) == 0 {
		return nil
	}

	o.logger.DebugContext(ctx, "executing deferred actions", slog.Int("count", len(envelopes)))
	if o.metrics != nil {
		o.metrics.DeferredTotal.Add(ctx, int64(len(envelopes)),
			metric.WithAttributes(telemetry.AttrOperation.String(o.name)))
	}

	err := fanout.Each(ctx, o.maxConcurrency, envelopes, func(ctx context.Context, env *envelope) error {
		_, err := o.invoke(ctx, env.action, env.input)
		return err
	})
	if err != nil {
		o.logger.ErrorContext(ctx, "deferred action failed", slog.Any("error", err))
		return err
	}

	o.logger.DebugContext(ctx, "executed deferred actions", slog.Int("count", len(envelopes)))
	return nil
}

// flush swaps out the pending buffers under the lock and sends one batch per
// notice target plus one task batch, all concurrently.
func (o *Operation) flush(ctx context.Context) error {
	o.mu.Lock()
	batches := o.notices.take()
	tasks := o.tasks.take()
	o.flushed = true
	o.mu.Unlock()

	sends := make([]func(context.Context) error, 0, len(batches)+1)
	noticeCount := 0
	for _, b := range batches {
		noticeCount += len(b.notices)
		sends = append(sends, func(ctx context.Context) error {
			return o.sendNotices(ctx, b.target, b.notices)
		})
	}
	if len(tasks) > 0 {
		sends = append(sends, func(ctx context.Context) error {
			return o.sendTasks(ctx, tasks)
		})
	}
	if len(sends) == 0 {
		return nil
	}

	o.recordFlush(ctx, "notice", noticeCount)
	o.recordFlush(ctx, "task", len(tasks))

	err := fanout.Each(ctx, o.maxConcurrency, sends, func(ctx context.Context, send func(context.Context) error) error {
		return send(ctx)
	})
	if err != nil {
		o.logger.ErrorContext(ctx, "flush failed", slog.Any("error", err))
	}
	return err
}

func (o *Operation) record(ctx context.Context, start time.Time, outcome string) {
	if o.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		telemetry.AttrOperation.String(o.name),
		telemetry.AttrOrigin.String(o.origin),
		telemetry.AttrResult.String(outcome),
	)
	o.metrics.OperationDuration.Record(ctx, o.now().Sub(start).Seconds(), attrs)
	o.metrics.OperationTotal.Add(ctx, 1, attrs)
}

func (o *Operation) recordFlush(ctx context.Context, kind string, n int) {
	if o.metrics == nil || n == 0 {
		return
	}
	o.metrics.FlushItems.Add(ctx, int64(n), metric.WithAttributes(
		telemetry.AttrOperation.String(o.name),
		telemetry.AttrKind.String(kind),
	))
}
