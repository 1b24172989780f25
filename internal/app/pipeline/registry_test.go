package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/jsamuelsen11/go-operation-service/internal/app/operation"
	"github.com/jsamuelsen11/go-operation-service/internal/app/pipeline"
	"github.com/jsamuelsen11/go-operation-service/internal/domain"
)

func noopAction(name string) *operation.Action {
	return operation.Func(name, func(_ context.Context, _ *operation.Operation, in any) (any, error) {
		return in, nil
	})
}

// --- Registry tests ---

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	r := pipeline.NewRegistry()
	if err := r.Register(pipeline.Pipeline{Name: " b ", Actions: []*operation.Action{noopAction("one"), noopAction("two")}}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(pipeline.Pipeline{Name: "a"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	p, err := r.Get("b")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got := p.ActionNames(); !slices.Equal(got, []string{"one", "two"}) {
		t.Errorf("ActionNames() = %v, want [one two]", got)
	}

	var names []string
	for _, p := range r.List() {
		names = append(names, p.Name)
	}
	if !slices.Equal(names, []string{"a", "b"}) {
		t.Errorf("List() = %v, want [a b]", names)
	}
}

func TestRegistry_Errors(t *testing.T) {
	t.Parallel()

	r := pipeline.NewRegistry()
	if err := r.Register(pipeline.Pipeline{Name: "x"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "duplicate", err: r.Register(pipeline.Pipeline{Name: "x"}), want: domain.ErrConflict},
		{name: "blank name", err: r.Register(pipeline.Pipeline{Name: "  "}), want: domain.ErrValidation},
		{name: "nil action", err: r.Register(pipeline.Pipeline{Name: "y", Actions: []*operation.Action{nil}}), want: domain.ErrValidation},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.want) {
			t.Errorf("%s: error = %v, want %v", tt.name, tt.err, tt.want)
		}
	}

	if _, err := r.Get("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestPipeline_DecodeInput(t *testing.T) {
	t.Parallel()

	var p pipeline.Pipeline

	got, err := p.DecodeInput(nil)
	if err != nil || got != nil {
		t.Errorf("DecodeInput(nil) = (%v, %v), want (nil, nil)", got, err)
	}

	got, err = p.DecodeInput(json.RawMessage(`{"a":1}`))
	if err != nil {
		t.Fatalf("DecodeInput() error = %v", err)
	}
	if m, ok := got.(map[string]any); !ok || m["a"] != float64(1) {
		t.Errorf("DecodeInput() = %#v, want map with a=1", got)
	}

	if _, err := p.DecodeInput(json.RawMessage(`{`)); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("DecodeInput(bad json) error = %v, want ErrValidation", err)
	}
}

func TestRegisterBuiltins(t *testing.T) {
	t.Parallel()

	r := pipeline.NewRegistry()
	if err := pipeline.RegisterBuiltins(r); err != nil {
		t.Fatalf("RegisterBuiltins() error = %v", err)
	}
	for _, name := range []string{
		pipeline.CacheInvalidate, pipeline.TaskEnqueue, pipeline.NoticePublish,
		pipeline.RecordPut, pipeline.RecordGet,
	} {
		if _, err := r.Get(name); err != nil {
			t.Errorf("Get(%q) error = %v", name, err)
		}
	}

	if err := pipeline.RegisterBuiltins(r); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second RegisterBuiltins() error = %v, want ErrConflict", err)
	}
}
