package domain

import (
	"strings"
	"time"
)

// TaskMerger combines t with an already buffered task. It returns false when
// the two tasks must be kept apart.
type TaskMerger func(t, existing Task) (Task, bool)

// Task is a unit of deferred work handed to a Dispatcher when the operation
// closes.
type Task struct {
	Name    string
	Payload map[string]any
	Delay   time.Duration
	TTL     time.Duration
	Merger  TaskMerger `json:"-"`
}

// Merge tries to combine t with an existing task. Tasks without a merger never
// combine.
func (t Task) Merge(existing Task) (Task, bool) {
	if t.Merger == nil {
		return Task{}, false
	}
	merged, ok := t.Merger(t, existing)
	if !ok {
		return Task{}, false
	}
	if merged.Merger == nil {
		merged.Merger = t.Merger
	}
	return merged, true
}

// Validate checks that the task can be dispatched.
func (t Task) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Name) == "" {
		fields["name"] = MsgRequired
	}
	if t.Delay < 0 {
		fields["delay"] = MsgNegative
	}
	if t.TTL < 0 {
		fields["ttl"] = MsgNegative
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ReplaceSameTask lets the incoming task replace a buffered task with the same
// name, so only the latest request per name is dispatched.
func ReplaceSameTask(t, existing Task) (Task, bool) {
	if t.Name != existing.Name {
		return Task{}, false
	}
	return t, true
}
