package seqs

import (
	"strand/cursor"
)

// Range returns the ints in [start, end). The result reverses in O(1).
// start > end fails immediately with ErrInvalidRange.
func Range(start, end int) (Seq[int], error) {
	r, err := cursor.OfRange(start, end)
	if err != nil {
		return Seq[int]{}, err
	}
	return fromCursor[int](r), nil
}

// RangeLong is Range over int64.
func RangeLong(start, end int64) (Seq[int64], error) {
	r, err := cursor.OfRange(start, end)
	if err != nil {
		return Seq[int64]{}, err
	}
	return fromCursor[int64](r), nil
}

// Iterate returns the infinite sequence seed, f(seed), f(f(seed)), ...
func Iterate[T any](seed T, f func(T) T) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		for v := seed; ; v = f(v) {
			if !yield(v, nil) {
				return
			}
		}
	})
}

// Generate returns the infinite sequence of supplier results.
func Generate[T any](supplier func() T) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		for {
			if !yield(supplier(), nil) {
				return
			}
		}
	})
}

// Repeat yields value count times. A negative count repeats forever.
func Repeat[T any](value T, count int) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		for i := 0; count < 0 || i < count; i++ {
			if !yield(value, nil) {
				return
			}
		}
	})
}
