package seqs

// Monoid is an identity value with a binary combiner. Folds apply Combine in
// sequence order and never assume it is commutative.
type Monoid[T any] struct {
	Zero    T
	Combine func(a, b T) T
}

func NewMonoid[T any](zero T, combine func(a, b T) T) Monoid[T] {
	return Monoid[T]{Zero: zero, Combine: combine}
}

func SumMonoid[T Number]() Monoid[T] {
	return NewMonoid(T(0), func(a, b T) T { return a + b })
}

func ProductMonoid[T Number]() Monoid[T] {
	return NewMonoid(T(1), func(a, b T) T { return a * b })
}

// ConcatMonoid joins strings. It is associative, not commutative.
func ConcatMonoid() Monoid[string] {
	return NewMonoid("", func(a, b string) string { return a + b })
}

func SliceMonoid[T any]() Monoid[[]T] {
	return NewMonoid[[]T](nil, func(a, b []T) []T {
		return append(append(make([]T, 0, len(a)+len(b)), a...), b...)
	})
}

// Reduce combines all elements from the left. An empty sequence gives None.
// The first failed element aborts the reduction.
func Reduce[T any](s Seq[T], combine func(acc, v T) T) (Optional[T], error) {
	var acc T
	found := false
	for v, err := range s.All() {
		if err != nil {
			return None[T](), err
		}
		if !found {
			acc, found = v, true
			continue
		}
		acc = combine(acc, v)
	}
	if !found {
		return None[T](), nil
	}
	return Some(acc), nil
}

// ReduceWith folds all elements into m starting from m.Zero.
func ReduceWith[T any](s Seq[T], m Monoid[T]) (T, error) {
	return FoldLeft(s, m.Zero, m.Combine)
}

// ReduceAll folds the sequence with every monoid. The sequence is
// materialized once and folded len(ms) times; results follow ms order.
func ReduceAll[T any](s Seq[T], ms ...Monoid[T]) ([]T, error) {
	values, err := s.ToSlice()
	if err != nil {
		return nil, err
	}
	out := make([]T, len(ms))
	for i, m := range ms {
		acc := m.Zero
		for _, v := range values {
			acc = m.Combine(acc, v)
		}
		out[i] = acc
	}
	return out, nil
}

// FoldLeft computes f(...f(f(seed, e0), e1)..., en).
func FoldLeft[T, R any](s Seq[T], seed R, f func(acc R, v T) R) (R, error) {
	acc := seed
	for v, err := range s.All() {
		if err != nil {
			return acc, err
		}
		acc = f(acc, v)
	}
	return acc, nil
}

// FoldLeftWith is FoldLeft with a monoid.
func FoldLeftWith[T any](s Seq[T], m Monoid[T]) (T, error) {
	return FoldLeft(s, m.Zero, m.Combine)
}

// FoldRight computes f(e0, f(e1, ...f(en, seed))). It materializes the sequence.
func FoldRight[T, R any](s Seq[T], seed R, f func(v T, acc R) R) (R, error) {
	values, err := s.ToSlice()
	if err != nil {
		return seed, err
	}
	acc := seed
	for i := len(values) - 1; i >= 0; i-- {
		acc = f(values[i], acc)
	}
	return acc, nil
}

// FoldRightWith is FoldRight with a monoid.
func FoldRightWith[T any](s Seq[T], m Monoid[T]) (T, error) {
	return FoldRight(s, m.Zero, m.Combine)
}

// MapReduce maps every element and folds the results into m.
func MapReduce[T, R any](s Seq[T], f func(T) R, m Monoid[R]) (R, error) {
	return FoldLeft(s, m.Zero, func(acc R, v T) R { return m.Combine(acc, f(v)) })
}

// ScanLeft yields seed followed by every intermediate FoldLeft state.
// A failed element is passed on and leaves the state unchanged.
func ScanLeft[T, R any](s Seq[T], seed R, f func(acc R, v T) R) Seq[R] {
	return wrap(func(yield func(R, error) bool) {
		acc := seed
		if !yield(acc, nil) {
			return
		}
		for v, err := range s.All() {
			if err != nil {
				var zero R
				if !yield(zero, err) {
					return
				}
				continue
			}
			acc = f(acc, v)
			if !yield(acc, nil) {
				return
			}
		}
	})
}

// ScanLeftMonoid is ScanLeft with a monoid.
func ScanLeftMonoid[T any](s Seq[T], m Monoid[T]) Seq[T] {
	return ScanLeft(s, m.Zero, m.Combine)
}

// ScanRight scans from the last element to the first, starting with seed.
//
//	ScanRight([1 2 3], 0, +) == [0 3 5 6]
func ScanRight[T, R any](s Seq[T], seed R, f func(v T, acc R) R) Seq[R] {
	return ScanLeft(s.Reverse(), seed, func(acc R, v T) R { return f(v, acc) })
}

// ScanRightMonoid is ScanRight with a monoid.
func ScanRightMonoid[T any](s Seq[T], m Monoid[T]) Seq[T] {
	return ScanRight(s, m.Zero, m.Combine)
}
