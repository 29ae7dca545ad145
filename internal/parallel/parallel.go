// Package parallel runs independent jobs with bounded concurrency.
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Collect runs fn for each index [0, n) with at most concurrency calls in
// flight, collecting results into a slice that preserves index order. Once
// ctx is done, indexes that have not started are skipped and keep their
// zero value; fn is expected to report cancellation itself.
func Collect[T any](ctx context.Context, n, concurrency int, fn func(ctx context.Context, i int) T) []T {
	if n == 0 {
		return nil
	}

	results := make([]T, n)
	var g errgroup.Group
	g.SetLimit(max(concurrency, 1))

	for i := range n {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
