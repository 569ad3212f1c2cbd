package seqs

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Collector is a mutable reduction: Supplier creates a container,
// Accumulator adds one element, Combiner merges two containers and Finisher
// turns the container into the result. Combiner is only needed by
// ParallelCollect; a nil Finisher requires A and R to be the same type.
type Collector[T, A, R any] struct {
	Supplier    func() A
	Accumulator func(acc A, v T) A
	Combiner    func(left, right A) A
	Finisher    func(A) R
}

func (c Collector[T, A, R]) finish(acc A) (R, error) {
	if c.Finisher != nil {
		return c.Finisher(acc), nil
	}
	r, ok := any(acc).(R)
	if !ok {
		return r, fmt.Errorf("%w: collector without finisher", ErrInvalidArgument)
	}
	return r, nil
}

// ToSliceCollector collects into a slice.
func ToSliceCollector[T any]() Collector[T, []T, []T] {
	return Collector[T, []T, []T]{
		Supplier:    func() []T { return nil },
		Accumulator: func(acc []T, v T) []T { return append(acc, v) },
		Combiner:    func(l, r []T) []T { return append(l, r...) },
	}
}

// Collect runs c over the sequence.
func Collect[T, A, R any](s Seq[T], c Collector[T, A, R]) (R, error) {
	acc := c.Supplier()
	for v, err := range s.All() {
		if err != nil {
			var zero R
			return zero, err
		}
		acc = c.Accumulator(acc, v)
	}
	return c.finish(acc)
}

// parallelThreshold is the size under which ParallelCollect runs serially.
const parallelThreshold = 256

// ParallelCollect materializes the sequence, accumulates contiguous chunks
// on up to workers goroutines (GOMAXPROCS when workers <= 0) and combines
// the partial containers left to right, so an order-sensitive Combiner still
// sees the original order.
func ParallelCollect[T, A, R any](ctx context.Context, s Seq[T], c Collector[T, A, R], workers int) (R, error) {
	var zero R
	if c.Combiner == nil {
		return zero, fmt.Errorf("%w: parallel collect needs a combiner", ErrInvalidArgument)
	}
	values, err := s.ToSlice()
	if err != nil {
		return zero, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if len(values) < parallelThreshold || workers == 1 {
		return Collect(Of(values...), c)
	}

	chunkSize := (len(values) + workers - 1) / workers
	parts := make([]A, 0, workers)
	for start := 0; start < len(values); start += chunkSize {
		parts = append(parts, c.Supplier())
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range parts {
		start := i * chunkSize
		end := min(start+chunkSize, len(values))
		g.Go(func() error {
			acc := parts[i]
			for _, v := range values[start:end] {
				if err := ctx.Err(); err != nil {
					return err
				}
				acc = c.Accumulator(acc, v)
			}
			parts[i] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zero, err
	}

	acc := parts[0]
	for _, part := range parts[1:] {
		acc = c.Combiner(acc, part)
	}
	return c.finish(acc)
}

// CollectAll reads the whole sequence, keeping the successful elements and
// combining every element error into one.
func (s Seq[T]) CollectAll() ([]T, error) {
	var (
		out  []T
		errs error
	)
	for v, err := range s.All() {
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, v)
	}
	return out, errs
}
