package queues

import "math/bits"

// ArrayQueue is a FIFO ring buffer whose capacity is always a power of two,
// so positions wrap with a mask instead of a modulo. AppendTo snapshots the
// contents front to back without dequeuing, which is what sliding windows
// need.
type ArrayQueue[T any] struct {
	buf  []T // backing array, length == capacity (power of two)
	head int // index of the first element
	size int // number of elements in the queue
	mask int // capacity - 1
}

// NewArrayQueue creates an ArrayQueue able to hold initialCapacity elements
// before growing. Non-positive capacities default to 16.
func NewArrayQueue[T any](initialCapacity int) *ArrayQueue[T] {
	if initialCapacity <= 0 {
		initialCapacity = 16
	}
	capacity := ceilPow2(initialCapacity)
	return &ArrayQueue[T]{
		buf:  make([]T, capacity),
		mask: capacity - 1,
	}
}

func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << uint(bits.Len(uint(n-1)))
}

// grow doubles the buffer (or more, to fit extra) and unwraps the contents to index 0.
func (aq *ArrayQueue[T]) grow(extra int) {
	newBuf := make([]T, ceilPow2(aq.size+extra))
	aq.AppendTo(newBuf[:0])
	clear(aq.buf)
	aq.buf = newBuf
	aq.head = 0
	aq.mask = len(newBuf) - 1
}

func (aq *ArrayQueue[T]) Enqueue(value T) {
	if aq.size == len(aq.buf) {
		aq.grow(len(aq.buf))
	}
	aq.buf[(aq.head+aq.size)&aq.mask] = value
	aq.size++
}

func (aq *ArrayQueue[T]) Dequeue() (value T, ok bool) {
	if aq.size == 0 {
		return value, false
	}
	value = aq.buf[aq.head]
	var zero T
	aq.buf[aq.head] = zero // clear reference
	aq.head = (aq.head + 1) & aq.mask
	aq.size--
	return value, true
}

// AppendTo appends the queued elements, front to back, to dst.
func (aq *ArrayQueue[T]) AppendTo(dst []T) []T {
	if aq.head+aq.size <= len(aq.buf) {
		return append(dst, aq.buf[aq.head:aq.head+aq.size]...)
	}
	// wrapped around
	dst = append(dst, aq.buf[aq.head:]...)
	return append(dst, aq.buf[:(aq.head+aq.size)&aq.mask]...)
}

func (aq *ArrayQueue[T]) Size() int {
	return aq.size
}

func (aq *ArrayQueue[T]) IsEmpty() bool {
	return aq.size == 0
}

func (aq *ArrayQueue[T]) Clear() {
	clear(aq.buf)
	aq.head = 0
	aq.size = 0
}
