package seqs

import "cmp"

type Number interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

func Sum[T Number](s Seq[T]) (T, error) {
	return ReduceWith(s, SumMonoid[T]())
}

// Min returns the smallest element, or ErrNoElements.
func Min[T cmp.Ordered](s Seq[T]) (T, error) {
	return s.MinBy(cmp.Compare[T])
}

// Max returns the largest element, or ErrNoElements.
func Max[T cmp.Ordered](s Seq[T]) (T, error) {
	return s.MaxBy(cmp.Compare[T])
}

// MinBy returns the first of the smallest elements under compare.
func (s Seq[T]) MinBy(compare func(a, b T) int) (T, error) {
	return s.best(func(v, best T) bool { return compare(v, best) < 0 })
}

// MaxBy returns the first of the largest elements under compare.
func (s Seq[T]) MaxBy(compare func(a, b T) int) (T, error) {
	return s.best(func(v, best T) bool { return compare(v, best) > 0 })
}

func (s Seq[T]) best(better func(v, best T) bool) (T, error) {
	var best T
	first := true
	for v, err := range s.All() {
		if err != nil {
			var zero T
			return zero, err
		}
		if first || better(v, best) {
			best = v
			first = false
		}
	}
	if first {
		return best, ErrNoElements
	}
	return best, nil
}
