package cursor

import "math"

// Integer is the element type of a Range cursor.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Range is a cursor over the integers [start, end). Nothing is allocated per
// element: forward reads advance lo, inverted reads retreat hi, which is the
// same as swapping the bounds and negating the step.
type Range[N Integer] struct {
	lo, hi   N
	reversed bool
}

// OfRange returns a cursor over [start, end) in ascending order.
// start == end is an empty range; start > end fails with ErrInvalidRange.
func OfRange[N Integer](start, end N) (*Range[N], error) {
	if start > end {
		return nil, invalidRange(start, end)
	}
	return &Range[N]{lo: start, hi: end}, nil
}

func (r *Range[N]) Next() (v N, ok bool) {
	if r.lo >= r.hi {
		return v, false
	}
	if r.reversed {
		r.hi--
		return r.hi, true
	}
	v = r.lo
	r.lo++
	return v, true
}

func (r *Range[N]) Invert() Cursor[N] {
	return &Range[N]{lo: r.lo, hi: r.hi, reversed: !r.reversed}
}

// Remaining is unknown when the width does not fit in an int64.
func (r *Range[N]) Remaining() (int64, bool) {
	// hi >= lo, so the wrapped uint64 difference is exact for signed N too.
	w := uint64(r.hi) - uint64(r.lo)
	if w > math.MaxInt64 {
		return 0, false
	}
	return int64(w), true
}

func (r *Range[N]) reversible() bool { return true }
