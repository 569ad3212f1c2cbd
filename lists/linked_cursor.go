package lists

// LinkedListCursor is a bidirectional position inside a LinkedList.
// Moving past either end parks the cursor on the sentinel, from which the
// opposite move recovers, so a cursor can walk off an end and come back.
type LinkedListCursor[T any] struct {
	current *node[T]
	list    *LinkedList[T]
}

// IsValid reports whether the cursor points at a live element.
// A node removed from the list has nil links and is never valid again.
func (llc *LinkedListCursor[T]) IsValid() bool {
	return llc.current != nil && llc.current.next != nil && llc.list != nil &&
		llc.current != llc.list.headSentinel && llc.current != llc.list.tailSentinel
}

// Value returns the element under the cursor, or the zero value if invalid.
func (llc *LinkedListCursor[T]) Value() (val T) {
	if !llc.IsValid() {
		return val
	}
	return llc.current.val
}

func (llc *LinkedListCursor[T]) Next() {
	if llc.current == nil || llc.current == llc.list.tailSentinel {
		return
	}
	llc.current = llc.current.next
}

func (llc *LinkedListCursor[T]) Prev() {
	if llc.current == nil || llc.current == llc.list.headSentinel {
		return
	}
	llc.current = llc.current.prev
}

// Clone creates a copy of the cursor at the same position.
func (llc *LinkedListCursor[T]) Clone() *LinkedListCursor[T] {
	return &LinkedListCursor[T]{current: llc.current, list: llc.list}
}

// FrontCursor returns a cursor at the first element.
// On an empty list it sits on the tail sentinel and is invalid.
func (ll *LinkedList[T]) FrontCursor() *LinkedListCursor[T] {
	return &LinkedListCursor[T]{current: ll.headSentinel.next, list: ll}
}

// BackCursor returns a cursor at the last element.
// On an empty list it sits on the head sentinel and is invalid.
func (ll *LinkedList[T]) BackCursor() *LinkedListCursor[T] {
	return &LinkedListCursor[T]{current: ll.tailSentinel.prev, list: ll}
}
