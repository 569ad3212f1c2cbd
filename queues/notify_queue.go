package queues

import (
	"context"
	"sync"
)

// NotifyQueue is a mutex-guarded ArrayQueue that signals readiness through
// a channel, so a consumer can wait on it inside a select. A positive limit
// bounds the queue: EnqueueDropOldest evicts the front element to make room,
// so producers never block.
type NotifyQueue[T any] struct {
	mu       sync.Mutex
	q        *ArrayQueue[T]
	notEmpty chan struct{}
	limit    int
	closed   bool
	doneCh   chan struct{} // Closed when the queue is closed
}

// NewNotifyQueue creates a new NotifyQueue with the specified capacity.
// If limit <= 0, the queue is unbounded.
func NewNotifyQueue[T any](capacity int, limit int) *NotifyQueue[T] {
	return &NotifyQueue[T]{
		q:        NewArrayQueue[T](capacity),
		limit:    limit,
		notEmpty: make(chan struct{}, 1),
		doneCh:   make(chan struct{}),
	}
}

// signal refreshes the notEmpty token.
// Must be called with lock held.
func (nq *NotifyQueue[T]) signal() {
	if nq.q.Size() > 0 {
		select {
		case nq.notEmpty <- struct{}{}:
		default:
		}
	}
}

// EnqueueDropOldest adds value without ever blocking. When the queue is at
// its limit the front element is discarded first and dropped is true.
func (nq *NotifyQueue[T]) EnqueueDropOldest(value T) (dropped bool, err error) {
	nq.mu.Lock()
	defer nq.mu.Unlock()
	if nq.closed {
		return false, ErrQueueClosed
	}
	if nq.limit > 0 && nq.q.Size() >= nq.limit {
		nq.q.Dequeue()
		dropped = true
	}
	nq.q.Enqueue(value)
	nq.signal()
	return dropped, nil
}

// TryDequeue removes and returns the front element, if any.
func (nq *NotifyQueue[T]) TryDequeue() (T, bool) {
	nq.mu.Lock()
	defer nq.mu.Unlock()
	val, ok := nq.q.Dequeue()
	if ok {
		nq.signal()
	}
	return val, ok
}

// DequeueOrWait removes and returns the front element, blocking while the
// queue is empty. It returns false once the queue is closed and drained, or
// when ctx is done.
func (nq *NotifyQueue[T]) DequeueOrWait(ctx context.Context) (T, bool) {
	for {
		val, ok := nq.TryDequeue()
		if ok {
			return val, true
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, false
		case <-nq.doneCh:
			// elements enqueued before Close are still delivered
			return nq.TryDequeue()
		case <-nq.notEmpty:
			// Retry
		}
	}
}

// Close stops further enqueues. Already queued elements can still be dequeued.
func (nq *NotifyQueue[T]) Close() {
	nq.mu.Lock()
	defer nq.mu.Unlock()
	if nq.closed {
		return
	}
	nq.closed = true
	close(nq.doneCh)
}

// Discard closes the queue and drops everything still queued.
func (nq *NotifyQueue[T]) Discard() {
	nq.mu.Lock()
	defer nq.mu.Unlock()
	nq.q.Clear()
	if !nq.closed {
		nq.closed = true
		close(nq.doneCh)
	}
}
