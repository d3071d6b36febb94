package setintersect

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pair is one intersection job: two sorted sets.
type Pair struct {
	A, B []uint32
}

type batchOptions struct {
	parallelism int
	algorithm   Algorithm
}

// BatchOption configures IntersectPairs.
type BatchOption func(*batchOptions)

// WithParallelism bounds the number of concurrently running kernels.
// Defaults to GOMAXPROCS; the kernels are CPU-bound, more workers only
// add scheduling overhead.
func WithParallelism(n int) BatchOption {
	return func(o *batchOptions) {
		if n > 0 {
			o.parallelism = n
		}
	}
}

// WithAlgorithm selects the kernel for the whole batch.
func WithAlgorithm(algo Algorithm) BatchOption {
	return func(o *batchOptions) {
		o.algorithm = algo
	}
}

// IntersectPairs intersects many pairs concurrently and returns one
// result slice per pair, in input order. This is the shape of the inner
// loop of graph pattern matching, where every candidate edge asks for
// the common neighbors of its two endpoints.
func IntersectPairs(ctx context.Context, pairs []Pair, opts ...BatchOption) ([][]uint32, error) {
	o := batchOptions{
		parallelism: runtime.GOMAXPROCS(0),
		algorithm:   activeAlgorithm,
	}
	for _, opt := range opts {
		opt(&o)
	}

	results := make([][]uint32, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)
	for i, p := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf := make([]uint32, min(len(p.A), len(p.B)))
			n := IntersectAlgorithm(o.algorithm, p.A, p.B, buf)
			results[i] = buf[:n]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
