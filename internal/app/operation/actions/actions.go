// Package actions provides common actions meant to be deferred: cache
// invalidation, task dispatch and notice delivery. Each carries a merge rule,
// so deferring one of them many times during a pipeline results in a single
// run over the combined input.
package actions

import (
	"context"
	"slices"

	"github.com/jsamuelsen11/go-operation-service/internal/app/operation"
	"github.com/jsamuelsen11/go-operation-service/internal/domain"
)

// ClearCache removes the given keys from the operation's cache. Deferred
// inputs merge into their ordered union.
var ClearCache = operation.Func("clear-cache", clearCache, operation.MergeAs(MergeKeys))

// Dispatch registers the given tasks with the operation. Deferred inputs
// merge task by task.
var Dispatch = operation.Func("dispatch", dispatch, operation.MergeAs(MergeTasks))

// Notify registers the given notices with the operation, each for its own
// target. Deferred inputs merge notice by notice.
var Notify = operation.Func("notify", notify, operation.MergeAs(MergeNotices))

// Keys builds a ClearCache input.
func Keys(keys ...string) []string { return keys }

// Tasks builds a Dispatch input.
func Tasks(tasks ...domain.Task) []domain.Task { return tasks }

// Notices builds a Notify input.
func Notices(notices ...domain.Notice) []domain.Notice { return notices }

func clearCache(ctx context.Context, op *operation.Operation, keys []string) (any, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	cache, err := op.Cache()
	if err != nil {
		return nil, err
	}
	return nil, cache.Clear(ctx, keys...)
}

func dispatch(ctx context.Context, op *operation.Operation, tasks []domain.Task) (any, error) {
	for _, t := range tasks {
		if err := op.Dispatch(ctx, t, false); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func notify(ctx context.Context, op *operation.Operation, notices []domain.Notice) (any, error) {
	for _, n := range notices {
		if err := op.Notify(ctx, n.Target, n, false); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// MergeKeys returns the union of both key lists, incoming keys first, without
// duplicates. A nil side yields the other.
func MergeKeys(incoming, existing []string) ([]string, bool) {
	switch {
	case incoming == nil:
		return existing, true
	case existing == nil:
		return incoming, true
	}

	merged := make([]string, 0, len(incoming)+len(existing))
	seen := make(map[string]struct{}, cap(merged))
	for _, k := range slices.Concat(incoming, existing) {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		merged = append(merged, k)
	}
	return merged, true
}

// MergeTasks folds existing into a copy of incoming: each existing task
// replaces the first task it merges with, or is appended.
func MergeTasks(incoming, existing []domain.Task) ([]domain.Task, bool) {
	return foldItems(incoming, existing), true
}

// MergeNotices folds existing into a copy of incoming the same way
// MergeTasks does.
func MergeNotices(incoming, existing []domain.Notice) ([]domain.Notice, bool) {
	return foldItems(incoming, existing), true
}

type mergeable[T any] interface {
	Merge(existing T) (T, bool)
}

func foldItems[T mergeable[T]](incoming, existing []T) []T {
	switch {
	case incoming == nil:
		return existing
	case existing == nil:
		return incoming
	}

	merged := slices.Clone(incoming)
	for _, item := range existing {
		placed := false
		for i, m := range merged {
			if out, ok := pairMerge(m, item); ok {
				merged[i] = out
				placed = true
				break
			}
		}
		if !placed {
			merged = append(merged, item)
		}
	}
	return merged
}

// pairMerge lets either side's merger combine the pair.
func pairMerge[T mergeable[T]](a, b T) (T, bool) {
	if out, ok := a.Merge(b); ok {
		return out, true
	}
	return b.Merge(a)
}
