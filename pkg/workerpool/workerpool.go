// Package workerpool provides bounded concurrent processing utilities.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Process runs process for every item on at most workerCount goroutines.
// The first error cancels the context passed to the remaining calls and is returned.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
) error {
	_, err := Map(ctx, workerCount, items, func(ctx context.Context, item T) (struct{}, error) {
		return struct{}{}, process(ctx, item)
	})
	return err
}

// Map runs fn for every item on at most workerCount goroutines and returns the results in
// item order. The first error cancels the remaining work and is returned with a nil slice.
func Map[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	fn func(context.Context, T) (R, error),
) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workerCount <= 0 {
		workerCount = 1
	}

	results := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	for i := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fn(gctx, items[i])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
