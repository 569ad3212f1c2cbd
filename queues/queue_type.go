package queues

import "fmt"

var (
	ErrQueueClosed = fmt.Errorf("queue is closed")
)

// Queue is a FIFO buffer of T.
type Queue[T any] interface {
	// puts an element at the end of the queue
	Enqueue(value T)
	// removes and returns the element at the front of the queue
	Dequeue() (value T, ok bool)
	// returns the number of elements in the queue
	Size() int
	// returns true if the queue is empty
	IsEmpty() bool
	// removes all elements from the queue
	Clear()
}

var _ Queue[int] = (*ArrayQueue[int])(nil)
