// Package fanout provides a bounded-concurrency fan-out helper for
// application-layer orchestration. It runs a function across a slice of items
// on an errgroup, waits for every call to finish, and reports the first
// failure in input order.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Each calls fn for every item concurrently, using at most limit goroutines
// at a time. A limit <= 0 runs all items at once.
//
// Each never cancels in-flight calls when one of them fails: every call runs
// to completion and Each returns once all have returned. The returned error
// is that of the lowest-indexed failing item, or nil.
//
// If ctx is canceled before an item is started, that item records ctx.Err()
// and fn is not called for it.
func Each[T any](ctx context.Context, limit int, items []T, fn func(context.Context, T) error) error {
	if len(items) == 0 {
		return nil
	}

	errs := make([]error, len(items))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = fn(ctx, item)
			return nil
		})
	}

	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
