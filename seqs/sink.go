package seqs

import (
	"errors"
	"fmt"
	"strings"

	"strand/lists"
)

// Terminal operations pull the sequence and stop at the first failed element,
// returning its error.

func (s Seq[T]) ToSlice() ([]T, error) {
	var out []T
	for v, err := range s.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s Seq[T]) ToList() (*lists.ArrayList[T], error) {
	values, err := s.ToSlice()
	if err != nil {
		return nil, err
	}
	return lists.Of(values...), nil
}

// ToOptional returns every element, or None for an empty sequence.
func ToOptional[T any](s Seq[T]) (Optional[[]T], error) {
	values, err := s.ToSlice()
	if err != nil || len(values) == 0 {
		return None[[]T](), err
	}
	return Some(values), nil
}

func ToSet[T comparable](s Seq[T]) (map[T]struct{}, error) {
	set := make(map[T]struct{})
	for v, err := range s.All() {
		if err != nil {
			return nil, err
		}
		set[v] = struct{}{}
	}
	return set, nil
}

// GroupBy collects the elements into lists keyed by key, keeping their order.
func GroupBy[T any, K comparable](s Seq[T], key func(T) K) (map[K][]T, error) {
	groups := make(map[K][]T)
	for v, err := range s.All() {
		if err != nil {
			return nil, err
		}
		k := key(v)
		groups[k] = append(groups[k], v)
	}
	return groups, nil
}

func (s Seq[T]) ForEach(action func(T)) error {
	for v, err := range s.All() {
		if err != nil {
			return err
		}
		action(v)
	}
	return nil
}

func (s Seq[T]) Count() (int, error) {
	n := 0
	for _, err := range s.All() {
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// First returns the first element, or ErrNoElements.
func (s Seq[T]) First() (T, error) {
	for v, err := range s.All() {
		return v, err
	}
	var zero T
	return zero, ErrNoElements
}

func (s Seq[T]) FirstOptional() (Optional[T], error) {
	for v, err := range s.All() {
		if err != nil {
			return None[T](), err
		}
		return Some(v), nil
	}
	return None[T](), nil
}

// Last returns the last element, or ErrNoElements.
func (s Seq[T]) Last() (T, error) {
	var last T
	found := false
	for v, err := range s.All() {
		if err != nil {
			var zero T
			return zero, err
		}
		last, found = v, true
	}
	if !found {
		return last, ErrNoElements
	}
	return last, nil
}

// Single returns the only element. It fails with ErrNoElements for an empty
// sequence and ErrTooManyElements for a longer one; both match ErrEmptySequence.
func (s Seq[T]) Single() (T, error) {
	var single T
	n := 0
	for v, err := range s.All() {
		if err != nil {
			return single, err
		}
		if n++; n > 1 {
			var zero T
			return zero, ErrTooManyElements
		}
		single = v
	}
	if n == 0 {
		return single, ErrNoElements
	}
	return single, nil
}

// SingleOptional returns the only element, or None when there are zero or several.
func (s Seq[T]) SingleOptional() (Optional[T], error) {
	v, err := s.Single()
	switch {
	case err == nil:
		return Some(v), nil
	case errors.Is(err, ErrEmptySequence):
		return None[T](), nil
	default:
		return None[T](), err
	}
}

// ElementAt returns the element at position index.
func (s Seq[T]) ElementAt(index int) (T, error) {
	var zero T
	if index < 0 {
		return zero, fmt.Errorf("%w: negative index %d", ErrInvalidArgument, index)
	}
	i := 0
	for v, err := range s.All() {
		if i == index {
			return v, err
		}
		i++
	}
	return zero, fmt.Errorf("%w: index %d out of %d", ErrNoElements, index, i)
}

// HeadAndTail returns the first element and a sequence of the remaining ones.
func (s Seq[T]) HeadAndTail() (T, Seq[T], error) {
	head, tail, err := s.SplitAtHead()
	if err != nil {
		var zero T
		return zero, tail, err
	}
	v, ok := head.Get()
	if !ok {
		return v, tail, ErrNoElements
	}
	return v, tail, nil
}

func (s Seq[T]) AnyMatch(predicate func(T) bool) (bool, error) {
	for v, err := range s.All() {
		if err != nil {
			return false, err
		}
		if predicate(v) {
			return true, nil
		}
	}
	return false, nil
}

func (s Seq[T]) AllMatch(predicate func(T) bool) (bool, error) {
	found, err := s.AnyMatch(not(predicate))
	return !found && err == nil, err
}

func (s Seq[T]) NoneMatch(predicate func(T) bool) (bool, error) {
	found, err := s.AnyMatch(predicate)
	return !found && err == nil, err
}

// XMatch reports whether exactly n elements satisfy predicate.
func (s Seq[T]) XMatch(n int, predicate func(T) bool) (bool, error) {
	matched, err := s.Filter(predicate).Limit(n + 1).Count()
	return matched == n && err == nil, err
}

// StartsWith reports whether the sequence begins with prefix.
func StartsWith[T comparable](s Seq[T], prefix ...T) (bool, error) {
	i := 0
	for v, err := range s.Limit(len(prefix)).All() {
		if err != nil {
			return false, err
		}
		if v != prefix[i] {
			return false, nil
		}
		i++
	}
	return i == len(prefix), nil
}

// EndsWith reports whether the sequence ends with suffix. It reads all of s.
func EndsWith[T comparable](s Seq[T], suffix ...T) (bool, error) {
	tail, err := s.LimitLast(len(suffix)).ToSlice()
	if err != nil {
		return false, err
	}
	if len(tail) != len(suffix) {
		return false, nil
	}
	for i := range tail {
		if tail[i] != suffix[i] {
			return false, nil
		}
	}
	return true, nil
}

// Join formats the elements with %v and joins them with sep.
func (s Seq[T]) Join(sep string) (string, error) {
	var b strings.Builder
	first := true
	for v, err := range s.All() {
		if err != nil {
			return "", err
		}
		if !first {
			b.WriteString(sep)
		}
		first = false
		fmt.Fprint(&b, v)
	}
	return b.String(), nil
}
