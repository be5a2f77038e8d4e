// Package fallible provides Result, a value-or-error wrapper meant to be checked
// before use. The resultful analyzer enforces the discipline:
//
//	r := load()
//	if !r.IsOk() {
//	    return fallible.Fail[int](r.Err())
//	}
//	use(r.Data())
//
// Data must only be called on a path where IsOk is known to be true and Err on a
// path where it is known to be false. A Result must not be dropped unchecked.
package fallible

import (
	"errors"
	"fmt"
)

// ErrNotOk is returned by Must-like helpers when data is requested from a failed result.
var ErrNotOk = errors.New("result is not ok")

// Result holds either a value of type T or an error.
type Result[T any] struct {
	data T
	err  error
}

// Ok creates a successful result.
func Ok[T any](v T) Result[T] {
	return Result[T]{data: v}
}

// Fail creates a failed result. A nil err is replaced with ErrNotOk so
// a failed result can never look successful.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = ErrNotOk
	}

	return Result[T]{err: err}
}

// Of builds a result from the conventional (value, error) pair.
func Of[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}

	return Ok(v)
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// Data returns the held value. It panics on a failed result: call it only
// after IsOk returned true.
func (r Result[T]) Data() T {
	if r.err != nil {
		panic(fmt.Errorf("data of a failed result: %w", r.err))
	}

	return r.data
}

// Err returns the held error. It panics on a successful result: call it only
// after IsOk returned false.
func (r Result[T]) Err() error {
	if r.err == nil {
		panic(ErrNotOk)
	}

	return r.err
}

// Get unpacks the result into the conventional (value, error) pair.
func (r Result[T]) Get() (T, error) {
	if !r.IsOk() {
		var zero T
		return zero, r.Err()
	}

	return r.Data(), nil
}
