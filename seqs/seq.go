package seqs

import (
	"iter"

	"strand/cursor"
	"strand/lists"
)

// Seq is a lazy, single-pass, pull-based sequence.
//
// Elements travel together with an optional per-element error, the same
// (value, error) pairing the Try* helpers use. Combinators pass element
// errors through untouched; Recover and RecoverAs replace them and terminal
// operations report the first one they meet.
//
// A Seq built from a slice, a list or a numeric range also remembers its
// traversal cursor, which lets Reverse run in O(1) without copying the
// source. The zero Seq is empty.
type Seq[T any] struct {
	src iter.Seq2[T, error]
	cur cursor.Cursor[T]
}

// item is a buffered element together with its error.
type item[T any] struct {
	v   T
	err error
}

func wrap[T any](src iter.Seq2[T, error]) Seq[T] {
	return Seq[T]{src: src}
}

func fromCursor[T any](c cursor.Cursor[T]) Seq[T] {
	return Seq[T]{
		cur: c,
		src: func(yield func(T, error) bool) {
			for {
				v, ok := c.Next()
				if !ok || !yield(v, nil) {
					return
				}
			}
		},
	}
}

// All exposes the sequence for range-over-func loops.
func (s Seq[T]) All() iter.Seq2[T, error] {
	if s.src == nil {
		return func(func(T, error) bool) {}
	}
	return s.src
}

// Values drops element errors and yields plain values. Failed elements are skipped.
func (s Seq[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, err := range s.All() {
			if err != nil {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Reversible reports whether Reverse runs in O(1) without materializing elements.
func (s Seq[T]) Reversible() bool {
	return s.cur != nil && cursor.Reversible(s.cur)
}

// Size returns the number of remaining elements when it is known without consuming anything.
func (s Seq[T]) Size() (int64, bool) {
	if s.cur == nil {
		return 0, false
	}
	return s.cur.Remaining()
}

// Of returns a sequence over values. The slice is not copied.
func Of[T any](values ...T) Seq[T] {
	return fromCursor[T](cursor.OfSlice(values))
}

// ReversedOf returns values last to first without copying them.
func ReversedOf[T any](values ...T) Seq[T] {
	return fromCursor(cursor.OfSlice(values).Invert())
}

// FromSlice is Of for an existing slice.
func FromSlice[T any](values []T) Seq[T] {
	return Of(values...)
}

// FromList returns a sequence over l that reads it in place.
func FromList[T any](l lists.List[T]) Seq[T] {
	return fromCursor(cursor.OfList(l))
}

// ReversedList returns the elements of l last to first.
func ReversedList[T any](l lists.List[T]) Seq[T] {
	return fromCursor(cursor.OfList(l).Invert())
}

// From adapts a standard iterator.
func From[T any](seq iter.Seq[T]) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		for v := range seq {
			if !yield(v, nil) {
				return
			}
		}
	})
}

// FromTry adapts an iterator whose elements may carry errors.
func FromTry[T any](seq iter.Seq2[T, error]) Seq[T] {
	return wrap(seq)
}

// FromIterator adapts a pull-style producer. next reports false once exhausted.
func FromIterator[T any](next func() (T, bool)) Seq[T] {
	return fromCursor[T](cursor.OfFunc(next, nil))
}

// FromChannel yields values received from ch until it is closed.
func FromChannel[T any](ch <-chan T) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		for v := range ch {
			if !yield(v, nil) {
				return
			}
		}
	})
}

// Empty returns a sequence with no elements.
func Empty[T any]() Seq[T] {
	return Of[T]()
}

// Concat chains sequences one after another.
func Concat[T any](seqs ...Seq[T]) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		for _, s := range seqs {
			for v, err := range s.All() {
				if !yield(v, err) {
					return
				}
			}
		}
	})
}

// materialize drains s into a slice of items, keeping element errors in place.
func (s Seq[T]) materialize() []item[T] {
	var out []item[T]
	for v, err := range s.All() {
		out = append(out, item[T]{v, err})
	}
	return out
}
