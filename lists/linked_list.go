package lists

import (
	"fmt"
	"strings"
)

type node[T any] struct {
	prev *node[T]
	next *node[T]
	val  T
}

// LinkedList is a doubly linked List with sentinel nodes at both ends.
// Random access is O(n); use FrontCursor/BackCursor to walk it in O(1) per step.
type LinkedList[T any] struct {
	headSentinel *node[T]
	tailSentinel *node[T]
	size         int
}

func NewLinkedList[T any]() *LinkedList[T] {
	ll := &LinkedList[T]{
		headSentinel: &node[T]{},
		tailSentinel: &node[T]{},
	}
	ll.headSentinel.next = ll.tailSentinel
	ll.tailSentinel.prev = ll.headSentinel
	return ll
}

// insertNodeAt insert newNode after indexNode
// Bounds checking should be done by the caller.
func (ll *LinkedList[T]) insertNodeAt(indexNode *node[T], newNode *node[T]) {
	newNode.prev = indexNode
	newNode.next = indexNode.next
	indexNode.next.prev = newNode
	indexNode.next = newNode
	ll.size++
}

// findNodeAt returns the node at index, walking from whichever end is closer.
// Assumes 0 <= index < ll.size.
func (ll *LinkedList[T]) findNodeAt(index int) *node[T] {
	if index < ll.size/2 {
		current := ll.headSentinel.next
		for range index {
			current = current.next
		}
		return current
	}
	current := ll.tailSentinel.prev
	for i := ll.size - 1; i > index; i-- {
		current = current.prev
	}
	return current
}

func (ll *LinkedList[T]) Add(values ...T) {
	for _, value := range values {
		ll.insertNodeAt(ll.tailSentinel.prev, &node[T]{val: value})
	}
}

func (ll *LinkedList[T]) Get(index int) (val T, err error) {
	if index < 0 || index >= ll.size {
		return val, ErrIndexOutOfBounds
	}
	return ll.findNodeAt(index).val, nil
}

func (ll *LinkedList[T]) Size() int {
	return ll.size
}

func (ll *LinkedList[T]) IsEmpty() bool {
	return ll.size == 0
}

func (ll *LinkedList[T]) Clear() {
	// unlink every node so that outstanding cursors become invalid
	current := ll.headSentinel.next
	for current != ll.tailSentinel {
		next := current.next
		current.prev, current.next = nil, nil
		current = next
	}
	ll.headSentinel.next = ll.tailSentinel
	ll.tailSentinel.prev = ll.headSentinel
	ll.size = 0
}

func (ll *LinkedList[T]) ToSlice() []T {
	out := make([]T, 0, ll.size)
	for current := ll.headSentinel.next; current != ll.tailSentinel; current = current.next {
		out = append(out, current.val)
	}
	return out
}

func (ll *LinkedList[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	current := ll.headSentinel.next
	for current != ll.tailSentinel {
		sb.WriteString(fmt.Sprintf("%v", current.val))
		if current.next != ll.tailSentinel {
			sb.WriteString(", ")
		}
		current = current.next
	}
	sb.WriteString("]")
	return sb.String()
}
