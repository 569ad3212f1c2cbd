package seqs

import (
	"errors"
	"fmt"
	"reflect"

	"strand/cursor"
)

var (
	// ErrInvalidRange is returned by Range and RangeLong when start > end.
	ErrInvalidRange = cursor.ErrInvalidRange

	// ErrTypeMismatch is the element error produced by Cast.
	ErrTypeMismatch = errors.New("seqs: type mismatch")

	// ErrEmptySequence is the base error for operations that need a specific element count.
	ErrEmptySequence = errors.New("seqs: element count violation")

	// ErrNoElements is returned when an operation needs at least one element and got none.
	ErrNoElements = fmt.Errorf("%w: no elements", ErrEmptySequence)

	// ErrTooManyElements is returned by Single when more than one element is present.
	ErrTooManyElements = fmt.Errorf("%w: more than one element", ErrEmptySequence)

	// ErrInvalidArgument marks bad window, batch and rate parameters.
	ErrInvalidArgument = errors.New("seqs: invalid argument")

	// ErrRetryExhausted is returned when every Retry attempt failed.
	ErrRetryExhausted = errors.New("seqs: retry attempts exhausted")

	// ErrHotStreamStopped is reported by Hot.Err when the stream was stopped before upstream ended.
	ErrHotStreamStopped = errors.New("seqs: hot stream stopped")
)

// TypeMismatchError describes an element that Cast could not convert.
type TypeMismatchError struct {
	Value any
	Want  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%v: %T is not %s", ErrTypeMismatch, e.Value, e.Want)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

func newTypeMismatch[T any](v any) error {
	return &TypeMismatchError{Value: v, Want: reflect.TypeFor[T]().String()}
}

// invalidArgument panics. Parameter errors are programming errors, caught at construction.
func invalidArgument(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...)))
}

// PanicError wraps a value recovered from a panicking callback.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("seqs: recovered panic: %v", e.Value)
}
