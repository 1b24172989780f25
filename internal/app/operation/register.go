package operation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/go-operation-service/internal/domain"
)

// Defer queues action to run with input after the operation is sealed.
// If the action has a merge rule and an envelope of the same action accepts
// the input, the input is folded into it instead of queuing a second run.
//
// Returns ErrNilAction for a nil action, ErrSealed once the operation is
// sealed or closed.
func (o *Operation) Defer(action *Action, input any) error {
	if action == nil || action.run == nil {
		return ErrNilAction
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state >= StateSealed {
		return fmt.Errorf("%w: cannot defer %s", ErrSealed, action.name)
	}
	if o.queue.add(action, input) {
		o.logger.Debug("merged deferred input", slog.String("action", action.name))
	}
	return nil
}

// Notify registers a notice for target. An immediate notice is sent before
// Notify returns; otherwise it is merged into the target's pending batch and
// sent when the operation closes.
//
// The notice's Target is set to target. A notice already addressed to a
// different target is rejected.
func (o *Operation) Notify(ctx context.Context, target string, notice domain.Notice, immediate bool) error {
	if notice.Target != "" && notice.Target != target {
		return &domain.ValidationError{Fields: map[string]string{
			"target": fmt.Sprintf("notice addressed to %q, registered for %q", notice.Target, target),
		}}
	}
	notice.Target = target
	if err := notice.Validate(); err != nil {
		return err
	}
	if o.services.Notifier == nil {
		return ErrNotifierMissing
	}

	if immediate {
		if err := o.checkOpen(); err != nil {
			return err
		}
		return o.sendNotices(ctx, target, []domain.Notice{notice})
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateClosed || o.flushed {
		return ErrClosed
	}
	o.notices.add(notice)
	return nil
}

// Dispatch registers a task. An immediate task is sent before Dispatch
// returns; otherwise it is merged into the pending task batch and sent when
// the operation closes.
func (o *Operation) Dispatch(ctx context.Context, task domain.Task, immediate bool) error {
	if err := task.Validate(); err != nil {
		return err
	}
	if o.services.Dispatcher == nil {
		return ErrDispatcherMissing
	}

	if immediate {
		if err := o.checkOpen(); err != nil {
			return err
		}
		return o.sendTasks(ctx, []domain.Task{task})
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateClosed || o.flushed {
		return ErrClosed
	}
	o.tasks.add(task)
	return nil
}

func (o *Operation) checkOpen() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateClosed {
		return ErrClosed
	}
	return nil
}

func (o *Operation) sendNotices(ctx context.Context, target string, notices []domain.Notice) error {
	o.logger.DebugContext(ctx, "sending notices",
		slog.String("target", target),
		slog.Int("count", len(notices)),
	)
	err := o.services.Notifier.Send(ctx, target, notices)
	return collaboratorErr("notifier", "send", err)
}

func (o *Operation) sendTasks(ctx context.Context, tasks []domain.Task) error {
	o.logger.DebugContext(ctx, "sending tasks", slog.Int("count", len(tasks)))
	err := o.services.Dispatcher.Send(ctx, tasks)
	return collaboratorErr("dispatcher", "send", err)
}
