package operation

import (
	"context"
	"fmt"
)

// RunFunc is the body of an action. It receives the output of the previous
// pipeline step (or the deferred input) and the operation it runs in.
type RunFunc func(ctx context.Context, op *Operation, input any) (any, error)

// MergeFunc combines a newly deferred input with an input already queued for
// the same action. It returns false when the two must run separately.
type MergeFunc func(incoming, existing any) (any, bool)

// Action is a named pipeline step with an optional merge rule for its
// deferred inputs. Actions are compared by pointer: deferring the same
// *Action twice makes the two inputs merge candidates.
type Action struct {
	name  string
	run   RunFunc
	merge MergeFunc
}

// ActionOption configures an Action.
type ActionOption func(*Action)

// WithMerge attaches a merge rule to the action.
func WithMerge(fn MergeFunc) ActionOption {
	return func(a *Action) {
		a.merge = fn
	}
}

// NewAction creates an action. A nil run func is reported when the action
// is handed to New.
func NewAction(name string, run RunFunc, opts ...ActionOption) *Action {
	a := &Action{name: name, run: run}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the action's name.
func (a *Action) Name() string {
	return a.name
}

// Mergeable reports whether deferred inputs of this action may be combined.
func (a *Action) Mergeable() bool {
	return a.merge != nil
}

// Func builds an action from a typed function. The untyped input is asserted
// to IN before fn runs; a nil input becomes the zero IN.
func Func[IN, OUT any](name string, fn func(ctx context.Context, op *Operation, in IN) (OUT, error), opts ...ActionOption) *Action {
	run := func(ctx context.Context, op *Operation, input any) (any, error) {
		in, err := As[IN](name, input)
		if err != nil {
			return nil, err
		}
		return fn(ctx, op, in)
	}
	return NewAction(name, run, opts...)
}

// MergeAs adapts a typed merge rule. Inputs of another type never merge.
func MergeAs[IN any](fn func(incoming, existing IN) (IN, bool)) ActionOption {
	return WithMerge(func(incoming, existing any) (any, bool) {
		in, err := As[IN]("", incoming)
		if err != nil {
			return nil, false
		}
		ex, err := As[IN]("", existing)
		if err != nil {
			return nil, false
		}
		return fn(in, ex)
	})
}

// As asserts an action input to T. A nil input yields the zero T.
func As[T any](action string, input any) (T, error) {
	var zero T
	if input == nil {
		return zero, nil
	}
	v, ok := input.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s expects %T, got %T", ErrInputType, action, zero, input)
	}
	return v, nil
}
