package seqs

import (
	"iter"
	"runtime"
	"sync"

	"github.com/eapache/queue"
)

// shared is the buffer behind duplicated sequences.
//
// Every view keeps an absolute read offset. A view that reads past the tail
// pulls one element from upstream and appends it; the head is evicted as soon
// as every live view has moved past it, so the buffer only holds the gap
// between the slowest and the fastest reader. Views that finished, stopped
// early or were garbage collected stop counting.
//
// mu guards everything below it against dropped views, which detach from a
// cleanup goroutine. It does not make concurrent draining of views meaningful.
type shared[T any] struct {
	mu sync.Mutex

	src  iter.Seq2[T, error]
	next func() (T, error, bool)
	stop func()
	done bool

	buf     *queue.Queue // of item[T]
	base    int          // absolute offset of buf's head
	offsets []int
	live    []bool
}

func newShared[T any](src iter.Seq2[T, error], n int) *shared[T] {
	live := make([]bool, n)
	for i := range live {
		live[i] = true
	}
	return &shared[T]{
		src:     src,
		buf:     queue.New(),
		offsets: make([]int, n),
		live:    live,
	}
}

func (sh *shared[T]) read(reader int) (item[T], bool) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if !sh.live[reader] {
		return item[T]{}, false
	}
	pos := sh.offsets[reader]
	for pos-sh.base >= sh.buf.Length() {
		if sh.done {
			return item[T]{}, false
		}
		if sh.next == nil {
			sh.next, sh.stop = iter.Pull2(sh.src)
		}
		v, err, ok := sh.next()
		if !ok {
			sh.release()
			return item[T]{}, false
		}
		sh.buf.Add(item[T]{v, err})
	}
	it := sh.buf.Get(pos - sh.base).(item[T])
	sh.offsets[reader]++
	sh.evict()
	return it, true
}

// evict drops the buffered elements every live view has read. mu must be held.
func (sh *shared[T]) evict() {
	low := -1
	for i, off := range sh.offsets {
		if sh.live[i] && (low < 0 || off < low) {
			low = off
		}
	}
	if low < 0 {
		low = sh.base + sh.buf.Length()
	}
	for sh.base < low && sh.buf.Length() > 0 {
		sh.buf.Remove()
		sh.base++
	}
}

func (sh *shared[T]) detach(reader int) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if !sh.live[reader] {
		return
	}
	sh.live[reader] = false
	sh.evict()
	for _, l := range sh.live {
		if l {
			return
		}
	}
	sh.release()
}

// release stops the upstream pull; no view will ever need another element.
// mu must be held.
func (sh *shared[T]) release() {
	sh.done = true
	if sh.stop != nil {
		sh.stop()
		sh.stop = nil
	}
}

// viewHandle is what a view's sequence holds on to. Once it is unreachable
// the view can never be read again, so its reader detaches.
type viewHandle[T any] struct {
	sh     *shared[T]
	reader int
}

func (sh *shared[T]) view(reader int) Seq[T] {
	h := &viewHandle[T]{sh: sh, reader: reader}
	// Detaching may wait for another view's upstream pull; keep the
	// cleanup goroutine free.
	runtime.AddCleanup(h, func(reader int) { go sh.detach(reader) }, reader)
	return wrap(func(yield func(T, error) bool) {
		defer h.sh.detach(h.reader)
		for {
			it, ok := h.sh.read(h.reader)
			if !ok || !yield(it.v, it.err) {
				return
			}
		}
	})
}

func (sh *shared[T]) views() []Seq[T] {
	out := make([]Seq[T], len(sh.offsets))
	for i := range out {
		out[i] = sh.view(i)
	}
	return out
}

// DuplicateN returns n sequences over the same elements. Each can be consumed
// at its own pace and in any order relative to the others. See Duplicate.
func (s Seq[T]) DuplicateN(n int) []Seq[T] {
	if n <= 0 {
		invalidArgument("duplicate count %d must be positive", n)
	}
	return newShared(s.All(), n).views()
}

// Duplicate returns two sequences that each yield every element of s.
//
// Elements one copy has read and the other has not are buffered. Copies may
// overtake each other freely, and a copy that stops early (for example after
// Limit) or is dropped without being read releases its claim on the buffer.
// Once no copy is left the upstream is stopped. Drive the copies from a single
// goroutine, or guard them with your own lock.
func (s Seq[T]) Duplicate() (Seq[T], Seq[T]) {
	v := s.DuplicateN(2)
	return v[0], v[1]
}

// Triplicate is Duplicate with three copies.
func (s Seq[T]) Triplicate() (Seq[T], Seq[T], Seq[T]) {
	v := s.DuplicateN(3)
	return v[0], v[1], v[2]
}

// Quadruplicate is Duplicate with four copies.
func (s Seq[T]) Quadruplicate() (Seq[T], Seq[T], Seq[T], Seq[T]) {
	v := s.DuplicateN(4)
	return v[0], v[1], v[2], v[3]
}

// SplitAt returns the first n elements and the rest as two sequences.
func (s Seq[T]) SplitAt(n int) (Seq[T], Seq[T]) {
	head, tail := s.Duplicate()
	return head.Limit(n), tail.Skip(n)
}

// SplitBy returns the leading run of elements satisfying predicate and everything after it.
func (s Seq[T]) SplitBy(predicate func(T) bool) (Seq[T], Seq[T]) {
	head, tail := s.Duplicate()
	return head.LimitWhile(predicate), tail.SkipWhile(predicate)
}

// Partition returns the elements that satisfy predicate and those that do not.
// Failed elements go to both sides.
func (s Seq[T]) Partition(predicate func(T) bool) (Seq[T], Seq[T]) {
	in, out := s.Duplicate()
	return in.Filter(predicate), out.Filter(not(predicate))
}

// SplitAtHead pulls the first element and returns it with a sequence of the rest.
func (s Seq[T]) SplitAtHead() (Optional[T], Seq[T], error) {
	head, tail := s.Duplicate()
	first, err := head.FirstOptional()
	return first, tail.Skip(1), err
}

// Get returns the element at index together with a sequence over all of s.
func (s Seq[T]) Get(index int) (T, Seq[T], error) {
	lookup, full := s.Duplicate()
	v, err := lookup.ElementAt(index)
	return v, full, err
}
