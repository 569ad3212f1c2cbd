package seqs

import (
	"time"

	"strand/clock"
	"strand/queues"
)

// CloseReason tells why a window was closed.
type CloseReason int

const (
	ClosedBySize CloseReason = iota + 1
	ClosedByPredicate
	ClosedByTime
	ClosedBySlide
	ClosedAtEnd
)

func (r CloseReason) String() string {
	switch r {
	case ClosedBySize:
		return "size"
	case ClosedByPredicate:
		return "predicate"
	case ClosedByTime:
		return "time"
	case ClosedBySlide:
		return "slide"
	case ClosedAtEnd:
		return "end"
	}
	return "unknown"
}

// Window is a closed batch. Items is never modified after the window is emitted.
// Opened and Closed are only set by time-bounded policies.
type Window[T any] struct {
	Items  []T
	Reason CloseReason
	Opened time.Time
	Closed time.Time
}

// batchPolicy decides where batches end.
type batchPolicy[T any] interface {
	// expired reports whether the open batch must close before v is added.
	// Only time-bounded policies return true.
	expired(opened, now time.Time) bool
	// closesWith reports whether the batch closes right after v is added.
	// open holds the batch without v.
	closesWith(open []T, v T) (bool, CloseReason)
}

type sizePolicy[T any] struct {
	size int
}

func (sizePolicy[T]) expired(time.Time, time.Time) bool { return false }

func (p sizePolicy[T]) closesWith(open []T, _ T) (bool, CloseReason) {
	return p.size > 0 && len(open)+1 >= p.size, ClosedBySize
}

type timePolicy[T any] struct {
	sizePolicy[T]
	d time.Duration
}

func (p timePolicy[T]) expired(opened, now time.Time) bool {
	return now.Sub(opened) >= p.d
}

type predicatePolicy[T any] struct {
	stays func(open []T, v T) bool
}

func (predicatePolicy[T]) expired(time.Time, time.Time) bool { return false }

func (p predicatePolicy[T]) closesWith(open []T, v T) (bool, CloseReason) {
	return !p.stays(open, v), ClosedByPredicate
}

// windows runs the batching state machine. Failed elements are passed on as
// failed windows and leave the open batch untouched. clk is nil for policies
// that ignore time.
func windows[T any](s Seq[T], policy batchPolicy[T], clk clock.Clock) Seq[Window[T]] {
	return wrap(func(yield func(Window[T], error) bool) {
		var (
			open   []T
			opened time.Time
		)
		emit := func(reason CloseReason) bool {
			w := Window[T]{Items: open, Reason: reason, Opened: opened}
			if clk != nil {
				w.Closed = clk.Now()
			}
			open = nil
			return yield(w, nil)
		}
		for v, err := range s.All() {
			if err != nil {
				if !yield(Window[T]{}, err) {
					return
				}
				continue
			}
			var now time.Time
			if clk != nil {
				now = clk.Now()
				if len(open) > 0 && policy.expired(opened, now) && !emit(ClosedByTime) {
					return
				}
			}
			if len(open) == 0 {
				opened = now
			}
			closes, reason := policy.closesWith(open, v)
			open = append(open, v)
			if closes && !emit(reason) {
				return
			}
		}
		if len(open) > 0 {
			emit(ClosedAtEnd)
		}
	})
}

func items[T any](w Window[T]) []T { return w.Items }

func into[T, C any](f func([]T) C) func(Window[T]) C {
	return func(w Window[T]) C { return f(w.Items) }
}

func checkSize(op string, n int) {
	if n <= 0 {
		invalidArgument("%s: size %d must be positive", op, n)
	}
}

func checkDuration(op string, d time.Duration) {
	if d <= 0 {
		invalidArgument("%s: duration %v must be positive", op, d)
	}
}

// WindowBySize groups consecutive elements into windows of n. The last window may be shorter.
func WindowBySize[T any](s Seq[T], n int) Seq[Window[T]] {
	checkSize("batchBySize", n)
	return windows[T](s, sizePolicy[T]{n}, nil)
}

// BatchBySize groups consecutive elements into slices of n. The last one may be shorter.
func BatchBySize[T any](s Seq[T], n int) Seq[[]T] {
	return Map(WindowBySize(s, n), items[T])
}

// BatchBySizeInto is BatchBySize with a custom batch container.
func BatchBySizeInto[T, C any](s Seq[T], n int, f func([]T) C) Seq[C] {
	return Map(WindowBySize(s, n), into(f))
}

// Grouped is BatchBySize.
func Grouped[T any](s Seq[T], n int) Seq[[]T] {
	return BatchBySize(s, n)
}

// WindowByTime closes a window once d has passed since it opened. The clock
// is read when an element is pulled: an element arriving after the window
// expired opens the next one.
func WindowByTime[T any](s Seq[T], d time.Duration, opts ...TimeOption) Seq[Window[T]] {
	checkDuration("batchByTime", d)
	cfg := newTimeConfig(opts)
	return windows[T](s, timePolicy[T]{d: d}, cfg.clock)
}

// BatchByTime groups the elements pulled within each d-long window.
func BatchByTime[T any](s Seq[T], d time.Duration, opts ...TimeOption) Seq[[]T] {
	return Map(WindowByTime(s, d, opts...), items[T])
}

// WindowBySizeAndTime closes a window when it holds n elements or d has
// passed since it opened, whichever happens first.
func WindowBySizeAndTime[T any](s Seq[T], n int, d time.Duration, opts ...TimeOption) Seq[Window[T]] {
	checkSize("batchBySizeAndTime", n)
	checkDuration("batchBySizeAndTime", d)
	cfg := newTimeConfig(opts)
	return windows[T](s, timePolicy[T]{sizePolicy[T]{n}, d}, cfg.clock)
}

// BatchBySizeAndTime is WindowBySizeAndTime yielding plain slices.
func BatchBySizeAndTime[T any](s Seq[T], n int, d time.Duration, opts ...TimeOption) Seq[[]T] {
	return Map(WindowBySizeAndTime(s, n, d, opts...), items[T])
}

// BatchBySizeAndTimeInto is BatchBySizeAndTime with a custom batch container.
func BatchBySizeAndTimeInto[T, C any](s Seq[T], n int, d time.Duration, f func([]T) C, opts ...TimeOption) Seq[C] {
	return Map(WindowBySizeAndTime(s, n, d, opts...), into(f))
}

// WindowWhile keeps a window open while predicate holds. The first element
// that fails it is the last element of its window; the next element opens a
// new one.
func WindowWhile[T any](s Seq[T], predicate func(T) bool) Seq[Window[T]] {
	return WindowStatefullyWhile(s, func(_ []T, v T) bool { return predicate(v) })
}

// BatchWhile is WindowWhile yielding plain slices.
func BatchWhile[T any](s Seq[T], predicate func(T) bool) Seq[[]T] {
	return Map(WindowWhile(s, predicate), items[T])
}

// BatchWhileInto is BatchWhile with a custom batch container.
func BatchWhileInto[T, C any](s Seq[T], predicate func(T) bool, f func([]T) C) Seq[C] {
	return Map(WindowWhile(s, predicate), into(f))
}

// WindowUntil closes a window with the first element that satisfies predicate.
//
//	BatchUntil(1..6, i%3 == 0) == [[1 2 3] [4 5 6]]
func WindowUntil[T any](s Seq[T], predicate func(T) bool) Seq[Window[T]] {
	return WindowWhile(s, not(predicate))
}

// BatchUntil is WindowUntil yielding plain slices.
func BatchUntil[T any](s Seq[T], predicate func(T) bool) Seq[[]T] {
	return Map(WindowUntil(s, predicate), items[T])
}

// BatchUntilInto is BatchUntil with a custom batch container.
func BatchUntilInto[T, C any](s Seq[T], predicate func(T) bool, f func([]T) C) Seq[C] {
	return Map(WindowUntil(s, predicate), into(f))
}

// WindowStatefullyWhile is WindowWhile with a predicate that also sees the
// batch accumulated so far (without the candidate). The slice must not be
// retained or modified.
func WindowStatefullyWhile[T any](s Seq[T], predicate func(batch []T, v T) bool) Seq[Window[T]] {
	return windows[T](s, predicatePolicy[T]{predicate}, nil)
}

// BatchStatefullyWhile is WindowStatefullyWhile yielding plain slices.
func BatchStatefullyWhile[T any](s Seq[T], predicate func(batch []T, v T) bool) Seq[[]T] {
	return Map(WindowStatefullyWhile(s, predicate), items[T])
}

// WindowSliding emits the last size elements every step elements, starting
// once size elements have been seen. A sequence shorter than size yields
// nothing. With step > size the elements between windows are skipped.
func WindowSliding[T any](s Seq[T], size, step int) Seq[Window[T]] {
	checkSize("sliding", size)
	checkSize("sliding increment", step)
	return wrap(func(yield func(Window[T], error) bool) {
		ring := queues.NewArrayQueue[T](size)
		since := 0 // elements seen since the last emitted window
		emitted := false
		for v, err := range s.All() {
			if err != nil {
				if !yield(Window[T]{}, err) {
					return
				}
				continue
			}
			if ring.Size() == size {
				ring.Dequeue()
			}
			ring.Enqueue(v)
			since++
			if ring.Size() < size || (emitted && since < step) {
				continue
			}
			emitted = true
			since = 0
			w := Window[T]{Items: ring.AppendTo(make([]T, 0, size)), Reason: ClosedBySlide}
			if !yield(w, nil) {
				return
			}
		}
	})
}

// Sliding is WindowSliding yielding plain slices.
func Sliding[T any](s Seq[T], size, step int) Seq[[]T] {
	return Map(WindowSliding(s, size, step), items[T])
}

// SlidingInto is Sliding with a custom batch container.
func SlidingInto[T, C any](s Seq[T], size, step int, f func([]T) C) Seq[C] {
	return Map(WindowSliding(s, size, step), into(f))
}
