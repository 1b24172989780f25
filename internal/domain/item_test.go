package domain

import (
	"errors"
	"testing"
	"time"
)

// --- Task tests ---

func TestTask_Merge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming Task
		existing Task
		wantOK   bool
		wantName string
	}{
		{
			name:     "no merger never combines",
			incoming: Task{Name: "reindex"},
			existing: Task{Name: "reindex"},
			wantOK:   false,
		},
		{
			name:     "same name replaces",
			incoming: Task{Name: "reindex", Payload: map[string]any{"v": 2}, Merger: ReplaceSameTask},
			existing: Task{Name: "reindex", Payload: map[string]any{"v": 1}},
			wantOK:   true,
			wantName: "reindex",
		},
		{
			name:     "different name kept apart",
			incoming: Task{Name: "reindex", Merger: ReplaceSameTask},
			existing: Task{Name: "email"},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tt.incoming.Merge(tt.existing)
			if ok != tt.wantOK {
				t.Fatalf("Merge() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Name != tt.wantName {
				t.Errorf("Merge() name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Merger == nil {
				t.Error("Merge() dropped the merger")
			}
		})
	}
}

func TestTask_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		task       Task
		wantFields []string
	}{
		{name: "valid", task: Task{Name: "reindex", Delay: time.Second}},
		{name: "blank name", task: Task{Name: "  "}, wantFields: []string{"name"}},
		{name: "negative durations", task: Task{Name: "x", Delay: -1, TTL: -1}, wantFields: []string{"delay", "ttl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.task.Validate()
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("error should wrap ErrValidation")
			}
			for _, f := range tt.wantFields {
				if _, ok := verr.Fields[f]; !ok {
					t.Errorf("missing field %q in %v", f, verr.Fields)
				}
			}
		})
	}
}

// --- Notice tests ---

func TestNotice_Merge(t *testing.T) {
	t.Parallel()

	t.Run("replace same target and event", func(t *testing.T) {
		t.Parallel()
		in := Notice{Target: "users", Event: "updated", Payload: map[string]any{"id": 2}, Merger: ReplaceSameNotice}
		got, ok := in.Merge(Notice{Target: "users", Event: "updated", Payload: map[string]any{"id": 1}})
		if !ok {
			t.Fatal("expected merge")
		}
		if got.Payload["id"] != 2 {
			t.Errorf("payload id = %v, want 2", got.Payload["id"])
		}
	})

	t.Run("different event kept apart", func(t *testing.T) {
		t.Parallel()
		in := Notice{Target: "users", Event: "deleted", Merger: ReplaceSameNotice}
		if _, ok := in.Merge(Notice{Target: "users", Event: "updated"}); ok {
			t.Error("expected no merge")
		}
	})

	t.Run("union payload", func(t *testing.T) {
		t.Parallel()
		in := Notice{Target: "cache", Event: "evict", Payload: map[string]any{"b": 2, "c": 3}, Merger: UnionNoticePayload}
		existing := Notice{Target: "cache", Event: "evict", Payload: map[string]any{"a": 1, "b": 1}}
		got, ok := in.Merge(existing)
		if !ok {
			t.Fatal("expected merge")
		}
		if len(got.Payload) != 3 || got.Payload["a"] != 1 || got.Payload["b"] != 2 {
			t.Errorf("payload = %v", got.Payload)
		}
		if len(existing.Payload) != 2 {
			t.Error("existing payload was mutated")
		}
	})
}

func TestNotice_Validate(t *testing.T) {
	t.Parallel()

	if err := (Notice{Target: "users"}).Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if err := (Notice{}).Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("Validate() = %v, want ErrValidation", err)
	}
}

func TestValidationError_Error_Sorted(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Fields: map[string]string{"ttl": MsgNegative, "delay": MsgNegative}}
	want := "validation error: delay: must not be negative; ttl: must not be negative"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
