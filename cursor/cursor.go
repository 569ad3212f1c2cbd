// Package cursor implements the traversal cursors that back sequences built
// from finite sources.
//
// A Cursor hands out the remaining elements of its source one at a time.
// Cursors over slices, lists and integer ranges borrow their source and
// reverse in O(1) by flipping the end they read from; no element is copied.
// The Producer cursor wraps an arbitrary pull function: it cannot be
// reversed without seeing every element, so its Invert drains the producer
// into memory first. Reversible reports which of the two a cursor is.
package cursor

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when a range is constructed with start > end.
var ErrInvalidRange = errors.New("cursor: invalid range")

// Cursor is a stateful position over a source.
type Cursor[T any] interface {
	// Next returns the next element in the current direction.
	// ok is false once the cursor is exhausted; it stays exhausted.
	Next() (v T, ok bool)
	// Invert returns a cursor over the same remaining elements in the
	// opposite order. The receiver must not be used afterwards.
	Invert() Cursor[T]
	// Remaining reports how many elements are left, when that is known
	// without consuming the source.
	Remaining() (n int64, known bool)
}

// Reversible reports whether c inverts in O(1) without materializing its source.
func Reversible[T any](c Cursor[T]) bool {
	switch c := c.(type) {
	case *Producer[T]:
		return false
	case interface{ reversible() bool }:
		return c.reversible()
	default:
		_, known := c.Remaining()
		return known
	}
}

func invalidRange[N any](start, end N) error {
	return fmt.Errorf("%w: start %v > end %v", ErrInvalidRange, start, end)
}
