package cursor

import "strand/lists"

// List is a cursor over a borrowed lists.List read by index. It is O(1) per
// step for index-addressable lists such as lists.ArrayList; OfList picks the
// node-walking Linked cursor for linked lists instead.
type List[T any] struct {
	list     lists.List[T]
	lo, hi   int
	reversed bool
}

// OfList returns a forward cursor over l without copying it.
func OfList[T any](l lists.List[T]) Cursor[T] {
	if ll, ok := l.(*lists.LinkedList[T]); ok {
		return OfLinkedList(ll)
	}
	return &List[T]{list: l, hi: l.Size()}
}

func (c *List[T]) Next() (v T, ok bool) {
	for c.lo < c.hi {
		var (
			got T
			err error
		)
		if c.reversed {
			c.hi--
			got, err = c.list.Get(c.hi)
		} else {
			got, err = c.list.Get(c.lo)
			c.lo++
		}
		if err == nil {
			return got, true
		}
		// the list shrank underneath us: treat the rest as exhausted
		c.lo, c.hi = 0, 0
	}
	return v, false
}

func (c *List[T]) Invert() Cursor[T] {
	return &List[T]{list: c.list, lo: c.lo, hi: c.hi, reversed: !c.reversed}
}

func (c *List[T]) Remaining() (int64, bool) {
	return int64(c.hi - c.lo), true
}

// Linked walks a lists.LinkedList from both ends at once: front and back
// bracket the remaining nodes and left counts them, so inversion only
// swaps which end Next reads from.
type Linked[T any] struct {
	front, back *lists.LinkedListCursor[T]
	left        int
	reversed    bool
}

// OfLinkedList returns a forward cursor over l without copying it.
func OfLinkedList[T any](l *lists.LinkedList[T]) *Linked[T] {
	return &Linked[T]{front: l.FrontCursor(), back: l.BackCursor(), left: l.Size()}
}

func (c *Linked[T]) Next() (v T, ok bool) {
	if c.left <= 0 {
		return v, false
	}
	at := c.front
	if c.reversed {
		at = c.back
	}
	if !at.IsValid() {
		c.left = 0
		return v, false
	}
	v = at.Value()
	if c.reversed {
		at.Prev()
	} else {
		at.Next()
	}
	c.left--
	return v, true
}

func (c *Linked[T]) Invert() Cursor[T] {
	return &Linked[T]{front: c.front.Clone(), back: c.back.Clone(), left: c.left, reversed: !c.reversed}
}

func (c *Linked[T]) Remaining() (int64, bool) {
	return int64(c.left), true
}
