package cursor

// Mapped projects every element of an inner cursor through f. Projection
// commutes with reversal, so a Mapped cursor inverts as cheaply as its inner one.
type Mapped[S, T any] struct {
	inner Cursor[S]
	f     func(S) T
}

func Map[S, T any](c Cursor[S], f func(S) T) *Mapped[S, T] {
	return &Mapped[S, T]{inner: c, f: f}
}

func (m *Mapped[S, T]) Next() (v T, ok bool) {
	s, ok := m.inner.Next()
	if !ok {
		return v, false
	}
	return m.f(s), true
}

func (m *Mapped[S, T]) Invert() Cursor[T] {
	return &Mapped[S, T]{inner: m.inner.Invert(), f: m.f}
}

func (m *Mapped[S, T]) Remaining() (int64, bool) {
	return m.inner.Remaining()
}

func (m *Mapped[S, T]) reversible() bool {
	return Reversible(m.inner)
}
