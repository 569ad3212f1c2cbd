package seqs_test

import (
	"errors"
	"slices"
	"strconv"
	"testing"

	"strand/seqs"
)

func TestFolds(t *testing.T) {
	left, err := seqs.FoldLeft(seqs.Of("a", "b", "c"), "", func(acc, v string) string { return acc + v })
	if err != nil || left != "abc" {
		t.Errorf("FoldLeft = %q, %v", left, err)
	}

	right, err := seqs.FoldRight(seqs.Of("a", "b", "c"), "", func(v, acc string) string { return acc + v })
	if err != nil || right != "cba" {
		t.Errorf("FoldRight = %q, %v", right, err)
	}

	// a non-commutative monoid must be applied in sequence order
	concat, err := seqs.FoldLeftWith(seqs.Of("x", "y", "z"), seqs.ConcatMonoid())
	if err != nil || concat != "xyz" {
		t.Errorf("FoldLeftWith = %q, %v", concat, err)
	}
	concat, err = seqs.FoldRightWith(seqs.Of("x", "y", "z"), seqs.ConcatMonoid())
	if err != nil || concat != "xyz" {
		t.Errorf("FoldRightWith = %q, %v", concat, err)
	}

	digits, err := seqs.MapReduce(seqs.Of(1, 2, 3), strconv.Itoa, seqs.ConcatMonoid())
	if err != nil || digits != "123" {
		t.Errorf("MapReduce = %q, %v", digits, err)
	}
}

func TestReduce(t *testing.T) {
	got, err := seqs.Reduce(seqs.Of(1, 2, 3, 4), func(acc, v int) int { return acc*10 + v })
	if v, ok := got.Get(); err != nil || !ok || v != 1234 {
		t.Errorf("Reduce = %v, %v", got, err)
	}

	empty, err := seqs.Reduce(seqs.Empty[int](), func(acc, v int) int { return acc + v })
	if err != nil || empty.IsPresent() {
		t.Errorf("expected None for an empty sequence, got %v, %v", empty, err)
	}

	product, err := seqs.ReduceWith(upTo(5), seqs.ProductMonoid[int]())
	if err != nil || product != 120 {
		t.Errorf("ReduceWith = %d, %v", product, err)
	}
}

func TestReduceAll(t *testing.T) {
	got, err := seqs.ReduceAll(upTo(4), seqs.SumMonoid[int](), seqs.ProductMonoid[int](), seqs.NewMonoid(0, func(a, b int) int { return max(a, b) }))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{10, 24, 4}) {
		t.Errorf("expected [10 24 4], got %v", got)
	}
}

func TestReduce_StopsAtFailure(t *testing.T) {
	boom := errors.New("boom")
	src := seqs.FromTry(func(yield func(int, error) bool) {
		_ = yield(1, nil) && yield(0, boom) && yield(3, nil)
	})
	if _, err := seqs.ReduceWith(src, seqs.SumMonoid[int]()); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestScans(t *testing.T) {
	plus := func(acc, v int) int { return acc + v }

	if got := collect(t, seqs.ScanLeft(seqs.Of(1, 2, 3), 0, plus)); !slices.Equal(got, []int{0, 1, 3, 6}) {
		t.Errorf("ScanLeft = %v", got)
	}
	if got := collect(t, seqs.ScanRight(seqs.Of(1, 2, 3), 0, plus)); !slices.Equal(got, []int{0, 3, 5, 6}) {
		t.Errorf("ScanRight = %v", got)
	}
	if got := collect(t, seqs.ScanLeftMonoid(seqs.Of("a", "b"), seqs.ConcatMonoid())); !slices.Equal(got, []string{"", "a", "ab"}) {
		t.Errorf("ScanLeftMonoid = %v", got)
	}
	if got := collect(t, seqs.ScanRightMonoid(seqs.Of("a", "b"), seqs.ConcatMonoid())); !slices.Equal(got, []string{"", "b", "ab"}) {
		t.Errorf("ScanRightMonoid = %v", got)
	}
	if got := collect(t, seqs.ScanLeft(seqs.Empty[int](), 7, plus)); !slices.Equal(got, []int{7}) {
		t.Errorf("expected only the seed, got %v", got)
	}
}

func TestSliceMonoid(t *testing.T) {
	got, err := seqs.ReduceWith(seqs.Of([]int{1}, []int{2, 3}, nil), seqs.SliceMonoid[int]())
	if err != nil || !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("SliceMonoid = %v, %v", got, err)
	}
}

func TestMath(t *testing.T) {
	if sum, err := seqs.Sum(seqs.Of(1.5, 2.5)); err != nil || sum != 4 {
		t.Errorf("Sum = %v, %v", sum, err)
	}
	if sum, err := seqs.Sum(seqs.Empty[int]()); err != nil || sum != 0 {
		t.Errorf("Sum of nothing = %v, %v", sum, err)
	}
	if lo, err := seqs.Min(seqs.Of(3, 1, 2)); err != nil || lo != 1 {
		t.Errorf("Min = %v, %v", lo, err)
	}
	if hi, err := seqs.Max(seqs.Of("pear", "apple", "plum")); err != nil || hi != "plum" {
		t.Errorf("Max = %v, %v", hi, err)
	}
	if _, err := seqs.Min(seqs.Empty[int]()); !errors.Is(err, seqs.ErrNoElements) {
		t.Errorf("expected ErrNoElements, got %v", err)
	}

	byLen := func(a, b string) int { return len(a) - len(b) }
	if v, err := seqs.Of("bb", "a", "cc", "d").MinBy(byLen); err != nil || v != "a" {
		t.Errorf("MinBy = %v, %v", v, err)
	}
	if v, err := seqs.Of("bb", "a", "cc").MaxBy(byLen); err != nil || v != "bb" {
		t.Errorf("MaxBy must keep the first of equals, got %v, %v", v, err)
	}
}
