package seqs

import (
	"iter"

	"strand/cursor"
)

// Map applies transform to each element. Mapping a sequence that reverses in
// O(1) keeps that property.
func Map[T, R any](s Seq[T], transform func(T) R) Seq[R] {
	if s.cur != nil {
		return fromCursor[R](cursor.Map(s.cur, transform))
	}
	return wrap(func(yield func(R, error) bool) {
		for v, err := range s.All() {
			var r R
			if err == nil {
				r = transform(v)
			}
			if !yield(r, err) {
				return
			}
		}
	})
}

// TryMap applies a fallible transform. A transform error becomes the error of
// that element (with a zero value) and iteration continues.
func TryMap[T, R any](s Seq[T], transform func(T) (R, error)) Seq[R] {
	return wrap(func(yield func(R, error) bool) {
		for v, err := range s.All() {
			var r R
			if err == nil {
				r, err = transform(v)
			}
			if !yield(r, err) {
				return
			}
		}
	})
}

// FlatMap replaces each element with the sequence f returns for it.
func FlatMap[T, R any](s Seq[T], f func(T) Seq[R]) Seq[R] {
	return FlatMapIter(s, func(v T) iter.Seq2[R, error] { return f(v).All() })
}

// FlatMapSlice replaces each element with the elements of a slice.
func FlatMapSlice[T, R any](s Seq[T], f func(T) []R) Seq[R] {
	return FlatMap(s, func(v T) Seq[R] { return Of(f(v)...) })
}

// FlatMapOptional replaces each element with zero or one value.
func FlatMapOptional[T, R any](s Seq[T], f func(T) Optional[R]) Seq[R] {
	return FlatMap(s, func(v T) Seq[R] { return f(v).Seq() })
}

// FlatMapIter replaces each element with the elements of an iterator.
func FlatMapIter[T, R any](s Seq[T], f func(T) iter.Seq2[R, error]) Seq[R] {
	return wrap(func(yield func(R, error) bool) {
		for v, err := range s.All() {
			if err != nil {
				var zero R
				if !yield(zero, err) {
					return
				}
				continue
			}
			for r, rerr := range f(v) {
				if !yield(r, rerr) {
					return
				}
			}
		}
	})
}

// Zip pairs elements from both sequences and stops at the shorter one.
// A pair built from a failed element carries that element's error.
func Zip[A, B any](a Seq[A], b Seq[B]) Seq[Pair[A, B]] {
	return ZipWith(a, b, func(x A, y B) Pair[A, B] { return Pair[A, B]{x, y} })
}

// ZipWith combines elements pairwise with f and stops at the shorter sequence.
func ZipWith[A, B, R any](a Seq[A], b Seq[B], f func(A, B) R) Seq[R] {
	return wrap(func(yield func(R, error) bool) {
		nextB, stopB := iter.Pull2(b.All())
		defer stopB()

		for x, errA := range a.All() {
			y, errB, ok := nextB()
			if !ok {
				return
			}
			var r R
			err := firstErr(errA, errB)
			if err == nil {
				r = f(x, y)
			}
			if !yield(r, err) {
				return
			}
		}
	})
}

// Zip3 is Zip over three sequences.
func Zip3[A, B, C any](a Seq[A], b Seq[B], c Seq[C]) Seq[Triple[A, B, C]] {
	return wrap(func(yield func(Triple[A, B, C], error) bool) {
		nextB, stopB := iter.Pull2(b.All())
		defer stopB()
		nextC, stopC := iter.Pull2(c.All())
		defer stopC()

		for x, errA := range a.All() {
			y, errB, ok := nextB()
			if !ok {
				return
			}
			z, errC, ok := nextC()
			if !ok {
				return
			}
			if !yield(Triple[A, B, C]{x, y, z}, firstErr(errA, errB, errC)) {
				return
			}
		}
	})
}

// Zip4 is Zip over four sequences.
func Zip4[A, B, C, D any](a Seq[A], b Seq[B], c Seq[C], d Seq[D]) Seq[Quad[A, B, C, D]] {
	return wrap(func(yield func(Quad[A, B, C, D], error) bool) {
		nextB, stopB := iter.Pull2(b.All())
		defer stopB()
		nextC, stopC := iter.Pull2(c.All())
		defer stopC()
		nextD, stopD := iter.Pull2(d.All())
		defer stopD()

		for x, errA := range a.All() {
			y, errB, ok := nextB()
			if !ok {
				return
			}
			z, errC, ok := nextC()
			if !ok {
				return
			}
			w, errD, ok := nextD()
			if !ok {
				return
			}
			if !yield(Quad[A, B, C, D]{x, y, z, w}, firstErr(errA, errB, errC, errD)) {
				return
			}
		}
	})
}

// ZipWithIndex pairs every element with its zero-based position.
func ZipWithIndex[T any](s Seq[T]) Seq[Pair[T, int]] {
	return wrap(func(yield func(Pair[T, int], error) bool) {
		i := 0
		for v, err := range s.All() {
			if !yield(Pair[T, int]{v, i}, err) {
				return
			}
			i++
		}
	})
}

// Unzip splits a sequence of pairs into two sequences. Both read the same
// upstream through a shared buffer (see Duplicate).
func Unzip[A, B any](s Seq[Pair[A, B]]) (Seq[A], Seq[B]) {
	a, b := s.Duplicate()
	return Map(a, func(p Pair[A, B]) A { return p.V1 }),
		Map(b, func(p Pair[A, B]) B { return p.V2 })
}

// Unzip3 splits a sequence of triples into three sequences.
func Unzip3[A, B, C any](s Seq[Triple[A, B, C]]) (Seq[A], Seq[B], Seq[C]) {
	a, b, c := s.Triplicate()
	return Map(a, func(t Triple[A, B, C]) A { return t.V1 }),
		Map(b, func(t Triple[A, B, C]) B { return t.V2 }),
		Map(c, func(t Triple[A, B, C]) C { return t.V3 })
}

// Unzip4 splits a sequence of quads into four sequences.
func Unzip4[A, B, C, D any](s Seq[Quad[A, B, C, D]]) (Seq[A], Seq[B], Seq[C], Seq[D]) {
	a, b, c, d := s.Quadruplicate()
	return Map(a, func(q Quad[A, B, C, D]) A { return q.V1 }),
		Map(b, func(q Quad[A, B, C, D]) B { return q.V2 }),
		Map(c, func(q Quad[A, B, C, D]) C { return q.V3 }),
		Map(d, func(q Quad[A, B, C, D]) D { return q.V4 })
}

// OfType keeps the elements whose dynamic type is R and drops the others.
func OfType[R, T any](s Seq[T]) Seq[R] {
	return wrap(func(yield func(R, error) bool) {
		for v, err := range s.All() {
			var r R
			if err == nil {
				var ok bool
				if r, ok = any(v).(R); !ok {
					continue
				}
			}
			if !yield(r, err) {
				return
			}
		}
	})
}

// Cast converts every element to R. An element of another type is not
// dropped: it becomes a *TypeMismatchError, which matches ErrTypeMismatch.
func Cast[R, T any](s Seq[T]) Seq[R] {
	return wrap(func(yield func(R, error) bool) {
		for v, err := range s.All() {
			var r R
			if err == nil {
				var ok bool
				if r, ok = any(v).(R); !ok {
					err = newTypeMismatch[R](v)
				}
			}
			if !yield(r, err) {
				return
			}
		}
	})
}

// Distinct drops elements seen before. Memory grows with the number of unique elements.
func Distinct[T comparable](s Seq[T]) Seq[T] {
	return DistinctBy(s, func(v T) T { return v })
}

// DistinctBy drops elements whose key was seen before.
func DistinctBy[T any, K comparable](s Seq[T], key func(T) K) Seq[T] {
	return wrap(func(yield func(T, error) bool) {
		seen := make(map[K]struct{})
		for v, err := range s.All() {
			if err == nil {
				k := key(v)
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
			}
			if !yield(v, err) {
				return
			}
		}
	})
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
