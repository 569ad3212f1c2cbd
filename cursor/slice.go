package cursor

// Slice is a cursor over a borrowed slice. The remaining elements are the
// half-open physical window [lo, hi); a forward cursor reads at lo, an
// inverted one at hi-1, which maps logical index i to physical size-1-i.
type Slice[T any] struct {
	data     []T
	lo, hi   int
	reversed bool
}

// OfSlice returns a forward cursor over data. The slice is not copied; the
// caller must not mutate it while the cursor is in use.
func OfSlice[T any](data []T) *Slice[T] {
	return &Slice[T]{data: data, hi: len(data)}
}

func (s *Slice[T]) Next() (v T, ok bool) {
	if s.lo >= s.hi {
		return v, false
	}
	if s.reversed {
		s.hi--
		return s.data[s.hi], true
	}
	v = s.data[s.lo]
	s.lo++
	return v, true
}

func (s *Slice[T]) Invert() Cursor[T] {
	return &Slice[T]{data: s.data, lo: s.lo, hi: s.hi, reversed: !s.reversed}
}

func (s *Slice[T]) Remaining() (int64, bool) {
	return int64(s.hi - s.lo), true
}

// Reversed reports whether the cursor currently reads back to front.
func (s *Slice[T]) Reversed() bool { return s.reversed }
