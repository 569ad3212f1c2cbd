package seqs

import "fmt"

// Optional holds at most one value.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Optional[T]) IsPresent() bool {
	return o.present
}

// OrElse returns the value, or fallback when empty.
func (o Optional[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// Seq returns a sequence of zero or one element.
func (o Optional[T]) Seq() Seq[T] {
	if !o.present {
		return Empty[T]()
	}
	return Of(o.value)
}

func (o Optional[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

type Pair[T1, T2 any] struct {
	V1 T1
	V2 T2
}

type Triple[T1, T2, T3 any] struct {
	V1 T1
	V2 T2
	V3 T3
}

type Quad[T1, T2, T3, T4 any] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
}
