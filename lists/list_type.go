package lists

// List is an indexable, ordered source that sequences can be built from and
// collected into. The cursor package reads it by index (ArrayList) or by
// walking nodes from both ends (LinkedList), never by copying it.
type List[T any] interface {
	// Add appends one or more elements to the end of the list.
	Add(values ...T)

	// Get returns the element at index.
	// Returns ErrIndexOutOfBounds if the index is out of bounds.
	Get(index int) (T, error)

	// Size returns the current number of elements.
	Size() int

	IsEmpty() bool

	// Clear removes all elements and releases their references.
	Clear()

	// ToSlice copies the list into a fresh slice.
	ToSlice() []T
}

// Of builds an ArrayList holding values.
func Of[T any](values ...T) *ArrayList[T] {
	l := NewArrayList[T](len(values))
	l.Add(values...)
	return l
}
