package seqs_test

import (
	"errors"
	"slices"
	"testing"

	"strand/seqs"
)

func isEven(i int) bool { return i%2 == 0 }

func TestFlowControl(t *testing.T) {
	less := func(n int) func(int) bool { return func(i int) bool { return i < n } }

	tests := []struct {
		name string
		seq  seqs.Seq[int]
		want []int
	}{
		{"Filter", seqs.Of(1, 2, 3, 4).Filter(isEven), []int{2, 4}},
		{"Limit", seqs.Of(1, 2, 3).Limit(2), []int{1, 2}},
		{"LimitZero", seqs.Of(1, 2, 3).Limit(0), nil},
		{"Skip", seqs.Of(1, 2, 3).Skip(1), []int{2, 3}},
		{"SkipPastEnd", seqs.Of(1, 2, 3).Skip(5), nil},
		{"LimitWhile", seqs.Of(1, 2, 3, 1).LimitWhile(less(3)), []int{1, 2}},
		{"LimitUntil", seqs.Of(1, 2, 3, 1).LimitUntil(isEven), []int{1}},
		{"SkipWhile", seqs.Of(1, 2, 3, 1).SkipWhile(less(3)), []int{3, 1}},
		{"SkipUntil", seqs.Of(1, 3, 4, 5).SkipUntil(isEven), []int{4, 5}},
		{"LimitLast", seqs.Of(1, 2, 3, 4).LimitLast(2), []int{3, 4}},
		{"LimitLastLonger", seqs.Of(1, 2).LimitLast(5), []int{1, 2}},
		{"SkipLast", seqs.Of(1, 2, 3, 4).SkipLast(2), []int{1, 2}},
		{"SkipLastAll", seqs.Of(1, 2).SkipLast(3), nil},
		{"Slice", seqs.Of(0, 1, 2, 3, 4).Slice(1, 3), []int{1, 2}},
		{"Cycle", seqs.Of(1, 2).Cycle(3), []int{1, 2, 1, 2, 1, 2}},
		{"CycleEmpty", seqs.Empty[int]().CycleForever(), nil},
		{"CycleWhile", seqs.Of(1, 2, 3).CycleWhile(less(3)), []int{1, 2}},
		{"CycleUntil", seqs.Of(1, 2, 3).CycleForever().Skip(1).LimitUntil(func(i int) bool { return i == 1 }), []int{2, 3}},
		{"Append", seqs.Of(1).Append(2, 3), []int{1, 2, 3}},
		{"Prepend", seqs.Of(3).Prepend(1, 2), []int{1, 2, 3}},
		{"ConcatMethod", seqs.Of(1).Concat(seqs.Of(2), seqs.Of(3)), []int{1, 2, 3}},
		{"InsertAt", seqs.Of(1, 2, 3).InsertAt(1, 100, 200), []int{1, 100, 200, 2, 3}},
		{"InsertAtEnd", seqs.Of(1, 2).InsertAt(10, 3), []int{1, 2, 3}},
		{"InsertSeqAt", seqs.Of(1, 4).InsertSeqAt(1, seqs.Of(2, 3)), []int{1, 2, 3, 4}},
		{"DeleteBetween", seqs.Of(0, 1, 2, 3, 4).DeleteBetween(1, 3), []int{0, 3, 4}},
		{"Intersperse", seqs.Of(1, 2, 3).Intersperse(0), []int{1, 0, 2, 0, 3}},
		{"IntersperseSingle", seqs.Of(1).Intersperse(0), []int{1}},
		{"OnEmpty", seqs.Empty[int]().OnEmpty(9), []int{9}},
		{"OnEmptyNotEmpty", seqs.Of(1).OnEmpty(9), []int{1}},
		{"OnEmptyGet", seqs.Empty[int]().OnEmptyGet(func() int { return 8 }), []int{8}},
		{"OnEmptySwitch", seqs.Empty[int]().OnEmptySwitch(func() seqs.Seq[int] { return seqs.Of(1, 2) }), []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(t, tt.seq); !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCycleUntil(t *testing.T) {
	got := collect(t, seqs.Of(1, 2, 3).CycleUntil(func(i int) bool { return i == 3 }))
	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("expected [1 2], got %v", got)
	}
}

func TestLimit_StopsPulling(t *testing.T) {
	pulled := 0
	s := seqs.Generate(func() int { pulled++; return pulled })
	got := collect(t, s.Limit(3))
	if !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("expected [1 2 3], got %v", got)
	}
	if pulled != 3 {
		t.Errorf("expected 3 pulls, got %d", pulled)
	}
}

func TestLazy_NothingRunsUntilPulled(t *testing.T) {
	calls := 0
	s := seqs.Map(seqs.Of(1, 2, 3).Filter(func(int) bool { calls++; return true }), func(i int) int {
		calls++
		return i
	}).Intersperse(0).Cycle(2)
	if calls != 0 {
		t.Fatalf("pipeline ran %d callbacks before a terminal operation", calls)
	}
	if _, err := s.Count(); err != nil {
		t.Fatal(err)
	}
	if calls != 6 {
		t.Errorf("expected 6 callbacks, got %d", calls)
	}
}

func TestOnEmptyError(t *testing.T) {
	boom := errors.New("empty")
	_, err := seqs.Empty[int]().OnEmptyError(func() error { return boom }).ToSlice()
	if !errors.Is(err, boom) {
		t.Errorf("expected supplied error, got %v", err)
	}
}

func TestFilter_PassesFailures(t *testing.T) {
	boom := errors.New("boom")
	s := seqs.FromTry(func(yield func(int, error) bool) {
		_ = yield(1, nil) && yield(0, boom) && yield(2, nil)
	})

	var errs []error
	var values []int
	for v, err := range s.Filter(isEven).All() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values = append(values, v)
	}
	if len(errs) != 1 || !errors.Is(errs[0], boom) {
		t.Errorf("expected the failed element to pass the filter, got %v", errs)
	}
	if !slices.Equal(values, []int{2}) {
		t.Errorf("expected [2], got %v", values)
	}
}

func TestTryFilter(t *testing.T) {
	bad := errors.New("bad")
	s := seqs.Of(1, 2, 3, 4).TryFilter(func(i int) (bool, error) {
		if i == 3 {
			return false, bad
		}
		return isEven(i), nil
	})
	out, err := s.CollectAll()
	if !slices.Equal(out, []int{2, 4}) {
		t.Errorf("expected [2 4], got %v", out)
	}
	if !errors.Is(err, bad) {
		t.Errorf("expected predicate error, got %v", err)
	}
}

func TestPeek(t *testing.T) {
	var seen []int
	got := collect(t, seqs.Of(1, 2, 3).Peek(func(i int) { seen = append(seen, i) }).Limit(2))
	if !slices.Equal(got, []int{1, 2}) || !slices.Equal(seen, []int{1, 2}) {
		t.Errorf("got %v, peeked %v", got, seen)
	}
}
