// Package fallible mirrors the result type for analyzer tests.
package fallible

import "errors"

var ErrNotOk = errors.New("result is not ok")

type Result[T any] struct {
	data T
	err  error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{data: v}
}

func Fail[T any](err error) Result[T] {
	if err == nil {
		err = ErrNotOk
	}

	return Result[T]{err: err}
}

func Of[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}

	return Ok(v)
}

func (r Result[T]) IsOk() bool {
	return r.err == nil
}

func (r Result[T]) Data() T {
	if r.err != nil {
		panic(r.err)
	}

	return r.data
}

func (r Result[T]) Err() error {
	if r.err == nil {
		panic(ErrNotOk)
	}

	return r.err
}
