package cursor

// Producer is the opaque cursor: it pulls from an arbitrary function and
// knows neither its size nor how to walk it backwards.
type Producer[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

// OfFunc wraps a pull function. stop, if not nil, is called once the
// producer is exhausted or materialized.
func OfFunc[T any](next func() (T, bool), stop func()) *Producer[T] {
	return &Producer[T]{next: next, stop: stop}
}

func (p *Producer[T]) Next() (v T, ok bool) {
	if p.done {
		return v, false
	}
	if v, ok = p.next(); !ok {
		p.finish()
	}
	return v, ok
}

func (p *Producer[T]) finish() {
	p.done = true
	if p.stop != nil {
		p.stop()
	}
}

// Invert drains every remaining element into a slice and returns an inverted
// Slice cursor over it. This is O(n) time and memory and never returns for
// an infinite producer.
func (p *Producer[T]) Invert() Cursor[T] {
	return OfSlice(p.Drain()).Invert()
}

// Drain pulls all remaining elements.
func (p *Producer[T]) Drain() []T {
	var out []T
	for {
		v, ok := p.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func (p *Producer[T]) Remaining() (int64, bool) {
	if p.done {
		return 0, true
	}
	return 0, false
}
