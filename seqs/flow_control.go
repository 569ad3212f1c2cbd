package seqs

import (
	"strand/queues"
)

// Positional operators (Limit, Skip, Slice, InsertAt, ...) count failed
// elements like any other. Predicate operators never call the predicate on a
// failed element: it is passed downstream as is.

// Filter keeps the elements that satisfy predicate.
func (s Seq[T]) Filter(predicate func(T) bool) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		for v, err := range s.All() {
			if err == nil && !predicate(v) {
				continue
			}
			if !yield(v, err) {
				return
			}
		}
	})
}

// TryFilter is Filter with a fallible predicate.
// A predicate error is yielded with the element that caused it and iteration continues.
func (s Seq[T]) TryFilter(predicate func(T) (bool, error)) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		for v, err := range s.All() {
			if err == nil {
				keep, perr := predicate(v)
				if perr != nil {
					err = perr
				} else if !keep {
					continue
				}
			}
			if !yield(v, err) {
				return
			}
		}
	})
}

// Peek performs action on each element as it passes. It is useful for debugging.
func (s Seq[T]) Peek(action func(T)) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		for v, err := range s.All() {
			if err == nil {
				action(v)
			}
			if !yield(v, err) {
				return
			}
		}
	})
}

// Limit keeps at most the first n elements. Upstream is not pulled past the nth.
func (s Seq[T]) Limit(n int) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		if n <= 0 {
			return
		}
		count := 0
		for v, err := range s.All() {
			if !yield(v, err) {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	})
}

// Skip drops the first n elements.
func (s Seq[T]) Skip(n int) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		skipped := 0
		for v, err := range s.All() {
			if skipped < n {
				skipped++
				continue
			}
			if !yield(v, err) {
				return
			}
		}
	})
}

// LimitWhile yields elements as long as predicate holds.
func (s Seq[T]) LimitWhile(predicate func(T) bool) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		for v, err := range s.All() {
			if err == nil && !predicate(v) {
				return
			}
			if !yield(v, err) {
				return
			}
		}
	})
}

// LimitUntil yields elements until predicate first holds.
func (s Seq[T]) LimitUntil(predicate func(T) bool) Seq[T] {
	return s.LimitWhile(not(predicate))
}

// SkipWhile drops elements as long as predicate holds, then yields the rest.
func (s Seq[T]) SkipWhile(predicate func(T) bool) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		dropping := true
		for v, err := range s.All() {
			if dropping && err == nil {
				if predicate(v) {
					continue
				}
				dropping = false
			}
			if !yield(v, err) {
				return
			}
		}
	})
}

// SkipUntil drops elements until predicate first holds.
func (s Seq[T]) SkipUntil(predicate func(T) bool) Seq[T] {
	return s.SkipWhile(not(predicate))
}

// LimitLast keeps only the last n elements. It has to read all of upstream.
func (s Seq[T]) LimitLast(n int) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		if n <= 0 {
			return
		}
		last := queues.NewArrayQueue[item[T]](n)
		for v, err := range s.All() {
			if last.Size() == n {
				last.Dequeue()
			}
			last.Enqueue(item[T]{v, err})
		}
		for {
			it, ok := last.Dequeue()
			if !ok || !yield(it.v, it.err) {
				return
			}
		}
	})
}

// SkipLast drops the last n elements. Elements are delayed by n positions.
func (s Seq[T]) SkipLast(n int) Seq[T] {
	if n <= 0 {
		return s
	}
	return wrap(func(yield func(T, error) bool) {
		pending := queues.NewArrayQueue[item[T]](n + 1)
		for v, err := range s.All() {
			pending.Enqueue(item[T]{v, err})
			if pending.Size() > n {
				it, _ := pending.Dequeue()
				if !yield(it.v, it.err) {
					return
				}
			}
		}
	})
}

// Slice keeps the elements at positions [from, to).
func (s Seq[T]) Slice(from, to int) Seq[T] {
	return s.Skip(from).Limit(to - from)
}

// Cycle repeats the sequence n times. The first pass is buffered for the replays.
func (s Seq[T]) Cycle(n int) Seq[T] {
	return s.cycle(func(pass int) bool { return pass < n })
}

// CycleForever repeats the sequence endlessly. An empty sequence stays empty.
func (s Seq[T]) CycleForever() Seq[T] {
	return s.cycle(func(int) bool { return true })
}

// CycleWhile repeats the sequence while predicate holds for the emitted elements.
func (s Seq[T]) CycleWhile(predicate func(T) bool) Seq[T] {
	return s.CycleForever().LimitWhile(predicate)
}

// CycleUntil repeats the sequence until predicate holds for an element.
func (s Seq[T]) CycleUntil(predicate func(T) bool) Seq[T] {
	return s.CycleForever().LimitUntil(predicate)
}

func (s Seq[T]) cycle(again func(pass int) bool) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		if !again(0) {
			return
		}
		var seen []item[T]
		for v, err := range s.All() {
			seen = append(seen, item[T]{v, err})
			if !yield(v, err) {
				return
			}
		}
		if len(seen) == 0 {
			return
		}
		for pass := 1; again(pass); pass++ {
			for _, it := range seen {
				if !yield(it.v, it.err) {
					return
				}
			}
		}
	})
}

// Concat appends others after s.
func (s Seq[T]) Concat(others ...Seq[T]) Seq[T] {
	return Concat(append([]Seq[T]{s}, others...)...)
}

// Append adds values after the last element.
func (s Seq[T]) Append(values ...T) Seq[T] {
	return Concat(s, Of(values...))
}

// Prepend adds values before the first element.
func (s Seq[T]) Prepend(values ...T) Seq[T] {
	return Concat(Of(values...), s)
}

// InsertAt inserts values before position pos. A short sequence gets them appended.
// The cost is O(pos): the first pos elements are pulled before anything is inserted.
func (s Seq[T]) InsertAt(pos int, values ...T) Seq[T] {
	return s.InsertSeqAt(pos, Of(values...))
}

// InsertSeqAt inserts every element of other before position pos.
func (s Seq[T]) InsertSeqAt(pos int, other Seq[T]) Seq[T] {
	pos = max(pos, 0)
	return wrap(func(yield func(T, error) bool) {
		i := 0
		inserted := false
		insert := func() bool {
			inserted = true
			for v, err := range other.All() {
				if !yield(v, err) {
					return false
				}
			}
			return true
		}
		for v, err := range s.All() {
			if i == pos && !insert() {
				return
			}
			if !yield(v, err) {
				return
			}
			i++
		}
		if !inserted {
			insert()
		}
	})
}

// DeleteBetween removes the elements at positions [start, end).
func (s Seq[T]) DeleteBetween(start, end int) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		i := 0
		for v, err := range s.All() {
			if i >= start && i < end {
				i++
				continue
			}
			i++
			if !yield(v, err) {
				return
			}
		}
	})
}

// Intersperse places sep between every two adjacent elements.
func (s Seq[T]) Intersperse(sep T) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		first := true
		for v, err := range s.All() {
			if !first && !yield(sep, nil) {
				return
			}
			first = false
			if !yield(v, err) {
				return
			}
		}
	})
}

// OnEmpty yields value if s turns out to be empty.
func (s Seq[T]) OnEmpty(value T) Seq[T] {
	return s.OnEmptySwitch(func() Seq[T] { return Of(value) })
}

// OnEmptyGet yields supplier() if s turns out to be empty.
func (s Seq[T]) OnEmptyGet(supplier func() T) Seq[T] {
	return s.OnEmptySwitch(func() Seq[T] { return Of(supplier()) })
}

// OnEmptyError yields a single failed element carrying supplier() if s is empty.
func (s Seq[T]) OnEmptyError(supplier func() error) Seq[T] {
	return s.OnEmptySwitch(func() Seq[T] {
		return wrap(func(yield func(T, error) bool) {
			var zero T
			yield(zero, supplier())
		})
	})
}

// OnEmptySwitch continues with the sequence returned by fallback if s is empty.
func (s Seq[T]) OnEmptySwitch(fallback func() Seq[T]) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		empty := true
		for v, err := range s.All() {
			empty = false
			if !yield(v, err) {
				return
			}
		}
		if !empty {
			return
		}
		for v, err := range fallback().All() {
			if !yield(v, err) {
				return
			}
		}
	})
}

func not[T any](predicate func(T) bool) func(T) bool {
	return func(v T) bool { return !predicate(v) }
}
