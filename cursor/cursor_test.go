package cursor_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"strand/cursor"
	"strand/lists"
)

func drain[T any](c cursor.Cursor[T]) []T {
	var out []T
	for {
		v, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestCursors_InvertRoundTrip(t *testing.T) {
	linked := lists.NewLinkedList[int]()
	linked.Add(1, 2, 3, 4)
	rng, err := cursor.OfRange(1, 5)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		make func() cursor.Cursor[int]
	}{
		{"Slice", func() cursor.Cursor[int] { return cursor.OfSlice([]int{1, 2, 3, 4}) }},
		{"ArrayList", func() cursor.Cursor[int] { return cursor.OfList[int](lists.Of(1, 2, 3, 4)) }},
		{"LinkedList", func() cursor.Cursor[int] { return cursor.OfList[int](linked) }},
		{"Range", func() cursor.Cursor[int] { r := *rng; return &r }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := drain(tt.make()); !slices.Equal(got, []int{1, 2, 3, 4}) {
				t.Errorf("forward = %v", got)
			}
			if got := drain(tt.make().Invert()); !slices.Equal(got, []int{4, 3, 2, 1}) {
				t.Errorf("inverted = %v", got)
			}
			if got := drain(tt.make().Invert().Invert()); !slices.Equal(got, []int{1, 2, 3, 4}) {
				t.Errorf("double inverted = %v", got)
			}
			if !cursor.Reversible(tt.make()) {
				t.Error("expected O(1) reversible cursor")
			}
		})
	}
}

func TestSlice_InvertMidway(t *testing.T) {
	c := cursor.OfSlice([]string{"a", "b", "c", "d"})
	c.Next() // a

	inv := c.Invert()
	if n, known := inv.Remaining(); !known || n != 3 {
		t.Fatalf("Remaining = %d, %v; want 3, true", n, known)
	}
	if got := drain(inv); !slices.Equal(got, []string{"d", "c", "b"}) {
		t.Errorf("got %v", got)
	}
}

func TestSlice_DoesNotCopy(t *testing.T) {
	data := []int{1, 2, 3}
	c := cursor.OfSlice(data).Invert()
	data[2] = 30
	if v, _ := c.Next(); v != 30 {
		t.Errorf("cursor should read the borrowed slice, got %d", v)
	}
}

func TestEmptySources(t *testing.T) {
	empty, err := cursor.OfRange[int64](7, 7)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []cursor.Cursor[int64]{empty, empty.Invert(), cursor.OfSlice([]int64{}).Invert()} {
		if _, ok := c.Next(); ok {
			t.Error("expected exhausted cursor")
		}
	}
}

func TestOfRange_Invalid(t *testing.T) {
	_, err := cursor.OfRange(5, 1)
	if !errors.Is(err, cursor.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestRange_RemainingWidth(t *testing.T) {
	full, _ := cursor.OfRange[int64](math.MinInt64, math.MaxInt64)
	if n, ok := full.Remaining(); ok {
		t.Errorf("expected unknown size for the full int64 range, got %d", n)
	}
	if !cursor.Reversible[int64](full) {
		t.Error("a range of unknown size should still invert in place")
	}
	if v, _ := full.Invert().Next(); v != math.MaxInt64-1 {
		t.Errorf("expected %d first after Invert, got %d", int64(math.MaxInt64-1), v)
	}
	huge, _ := cursor.OfRange[uint64](0, math.MaxUint64)
	if n, ok := huge.Remaining(); ok {
		t.Errorf("expected unknown size for a uint64 range wider than int64, got %d", n)
	}

	tests := []struct {
		name string
		c    interface{ Remaining() (int64, bool) }
		want int64
	}{
		{"int8 full", mustRange[int8](math.MinInt8, math.MaxInt8), 255},
		{"int64 widest", mustRange[int64](-1, math.MaxInt64), math.MaxInt64},
		{"int negative", mustRange(-10, -3), 7},
		{"uint64 high", mustRange[uint64](math.MaxUint64-5, math.MaxUint64), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n, ok := tt.c.Remaining(); !ok || n != tt.want {
				t.Errorf("expected %d, got %d (ok=%v)", tt.want, n, ok)
			}
		})
	}
}

func mustRange[N cursor.Integer](start, end N) *cursor.Range[N] {
	r, err := cursor.OfRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func TestProducer_InvertMaterializes(t *testing.T) {
	i := 0
	p := cursor.OfFunc(func() (int, bool) {
		i++
		return i, i <= 3
	}, nil)

	if cursor.Reversible[int](p) {
		t.Error("producer must not report O(1) reversal")
	}
	if _, known := p.Remaining(); known {
		t.Error("producer size should be unknown")
	}
	if got := drain(p.Invert()); !slices.Equal(got, []int{3, 2, 1}) {
		t.Errorf("got %v", got)
	}
}

func TestProducer_StopCalledOnce(t *testing.T) {
	stops := 0
	p := cursor.OfFunc(func() (int, bool) { return 0, false }, func() { stops++ })
	p.Next()
	p.Next()
	if stops != 1 {
		t.Errorf("stop called %d times", stops)
	}
}

func TestMap_PreservesReversal(t *testing.T) {
	m := cursor.Map[int, string](cursor.OfSlice([]int{1, 2, 3}), func(v int) string {
		return string(rune('a' + v - 1))
	})
	if !cursor.Reversible[string](m) {
		t.Error("mapped slice cursor should stay reversible")
	}
	if got := drain(m.Invert()); !slices.Equal(got, []string{"c", "b", "a"}) {
		t.Errorf("got %v", got)
	}
}
