package lists_test

import (
	"errors"
	"slices"
	"testing"

	"strand/lists"
)

// runListTests is a reusable suite for any lists.List[int] implementation.
func runListTests(t *testing.T, name string, factory func(vals ...int) lists.List[int]) {
	t.Helper()

	t.Run(name+"/Basic", func(t *testing.T) {
		l := factory()
		if !l.IsEmpty() || l.Size() != 0 {
			t.Fatalf("new list should be empty, size %d", l.Size())
		}

		l.Add(10, 20, 30)
		if l.Size() != 3 {
			t.Errorf("Size should be 3, got %d", l.Size())
		}
		if v, err := l.Get(1); err != nil || v != 20 {
			t.Errorf("Get(1) = %d, %v; want 20, nil", v, err)
		}
		if got := l.ToSlice(); !slices.Equal(got, []int{10, 20, 30}) {
			t.Errorf("ToSlice = %v, want [10 20 30]", got)
		}

		l.Clear()
		if !l.IsEmpty() {
			t.Error("list should be empty after Clear")
		}
	})

	t.Run(name+"/OutOfBounds", func(t *testing.T) {
		l := factory(1)
		if _, err := l.Get(1); !errors.Is(err, lists.ErrIndexOutOfBounds) {
			t.Errorf("Get(1) should fail, got %v", err)
		}
		if _, err := l.Get(-1); !errors.Is(err, lists.ErrIndexOutOfBounds) {
			t.Errorf("Get(-1) should fail, got %v", err)
		}
	})

	t.Run(name+"/GetFromEitherEnd", func(t *testing.T) {
		l := factory(1, 2, 3, 4, 5)
		for i := range 5 {
			if v, err := l.Get(i); err != nil || v != i+1 {
				t.Errorf("Get(%d) = %d, %v; want %d, nil", i, v, err, i+1)
			}
		}
	})
}

func TestLists(t *testing.T) {
	runListTests(t, "ArrayList", func(vals ...int) lists.List[int] {
		return lists.Of(vals...)
	})
	runListTests(t, "LinkedList", func(vals ...int) lists.List[int] {
		l := lists.NewLinkedList[int]()
		l.Add(vals...)
		return l
	})
}

func TestLinkedList_String(t *testing.T) {
	l := lists.NewLinkedList[int]()
	l.Add(1, 2, 3)
	if s := l.String(); s != "[1, 2, 3]" {
		t.Errorf("String() = %q", s)
	}
}
