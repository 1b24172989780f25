// Package pipeline keeps the named pipelines the service can run. A pipeline
// is an ordered list of actions plus a decoder that turns a JSON request body
// into the first action's input.
package pipeline

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/jsamuelsen11/go-operation-service/internal/app/operation"
	"github.com/jsamuelsen11/go-operation-service/internal/domain"
)

// DecodeFunc converts a raw JSON input into a pipeline's first input. An
// empty raw input is passed as nil.
type DecodeFunc func(raw json.RawMessage) (any, error)

// Pipeline is a named, registered sequence of actions.
type Pipeline struct {
	Name        string
	Description string
	Actions     []*operation.Action
	Decode      DecodeFunc
}

// ActionNames lists the pipeline's action names in order.
func (p Pipeline) ActionNames() []string {
	names := make([]string, 0, len(p.Actions))
	for _, a := range p.Actions {
		names = append(names, a.Name())
	}
	return names
}

// DecodeInput runs the pipeline's decoder. Without a decoder the raw JSON is
// decoded into a generic value.
func (p Pipeline) DecodeInput(raw json.RawMessage) (any, error) {
	if p.Decode != nil {
		return p.Decode(raw)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, invalidInput(err)
	}
	return v, nil
}

// Registry is a concurrency-safe set of pipelines keyed by name.
type Registry struct {
	mu        sync.RWMutex
	pipelines map[string]Pipeline
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{pipelines: make(map[string]Pipeline)}
}

// Register adds p. A blank name or a nil action is a validation error; a name
// already taken wraps domain.ErrConflict.
func (r *Registry) Register(p Pipeline) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return &domain.ValidationError{Fields: map[string]string{"name": domain.MsgRequired}}
	}
	if slices.Contains(p.Actions, nil) {
		return &domain.ValidationError{Fields: map[string]string{"actions": "must not contain nil"}}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pipelines[p.Name]; ok {
		return fmt.Errorf("pipeline %q: %w", p.Name, domain.ErrConflict)
	}
	r.pipelines[p.Name] = p
	return nil
}

// Get returns the named pipeline or an error wrapping domain.ErrNotFound.
func (r *Registry) Get(name string) (Pipeline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pipelines[name]
	if !ok {
		return Pipeline{}, fmt.Errorf("pipeline %q: %w", name, domain.ErrNotFound)
	}
	return p, nil
}

// List returns every pipeline sorted by name.
func (r *Registry) List() []Pipeline {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Pipeline, 0, len(r.pipelines))
	for _, p := range r.pipelines {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Pipeline) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

func invalidInput(err error) error {
	return &domain.ValidationError{Fields: map[string]string{"input": err.Error()}}
}

// decodeJSON decodes raw into a T. Empty input yields the zero T.
func decodeJSON[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, invalidInput(err)
	}
	return v, nil
}
