package seqs

import (
	"math/rand/v2"
	"slices"
)

// Reverse yields the elements last to first.
//
// A sequence over a slice, a list or a range (see Reversible) is reversed in
// O(1) by inverting its cursor; the source is never copied. Any other
// sequence is fully materialized on first pull, which costs O(n) memory and
// never finishes for an infinite sequence.
func (s Seq[T]) Reverse() Seq[T] {
	if s.Reversible() {
		return fromCursor(s.cur.Invert())
	}
	return wrap(func(yield func(T, error) bool) {
		buf := s.materialize()
		for i := len(buf) - 1; i >= 0; i-- {
			if !yield(buf[i].v, buf[i].err) {
				return
			}
		}
	})
}

// Shuffle yields the elements in random order. It materializes the sequence.
func (s Seq[T]) Shuffle(opts ...TimeOption) Seq[T] {
	cfg := newTimeConfig(opts)
	return wrap(func(yield func(T, error) bool) {
		buf := s.materialize()
		cfg.rand.Shuffle(len(buf), func(i, j int) {
			buf[i], buf[j] = buf[j], buf[i]
		})
		for _, it := range buf {
			if !yield(it.v, it.err) {
				return
			}
		}
	})
}

// Sorted yields the elements ordered by cmp. The sort is stable.
// Failed elements are yielded first, in their original order.
func (s Seq[T]) Sorted(cmp func(a, b T) int) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		var values []T
		for v, err := range s.All() {
			if err != nil {
				if !yield(v, err) {
					return
				}
				continue
			}
			values = append(values, v)
		}
		slices.SortStableFunc(values, cmp)
		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	})
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
