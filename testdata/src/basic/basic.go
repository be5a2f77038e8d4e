package basic

import (
	"strconv"

	"github.com/sirkon/resultful/fallible"
)

func parse(s string) fallible.Result[int] {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallible.Fail[int](err)
	}

	return fallible.Ok(n)
}

func checked(s string) int {
	r := parse(s)
	if !r.IsOk() {
		return 0
	}

	return r.Data()
}

func unchecked(s string) int {
	r := parse(s)
	return r.Data() // want `RES010: result is accessed without checking IsOk`
}

func errorUnchecked(s string) error {
	r := parse(s)
	return r.Err() // want `RES010: result is accessed without checking IsOk`
}

func errorOnOkPath(s string) error {
	r := parse(s)
	if r.IsOk() {
		return r.Err() // want `RES021: result error is accessed on a path where it may be ok`
	}

	return nil
}

func dataOnNotOkPath(s string) int {
	r := parse(s)
	if r.IsOk() {
		return 1
	}

	return r.Data() // want `RES020: result data is accessed on a path where it may be not ok`
}

func dropped(s string) {
	parse(s) // want `RES030: result is dropped without being checked`
}

func droppedVariable(s string) {
	r := parse(s) // want `RES030: result is dropped without being checked`
	_ = r
}

func passedOn(s string) fallible.Result[int] {
	return parse(s)
}

func convert(s string) fallible.Result[string] {
	r := parse(s)
	if !r.IsOk() {
		return fallible.Fail[string](r.Err())
	}

	return fallible.Ok(strconv.Itoa(r.Data() * 2))
}

func sum(items []string) int {
	var total int
	for _, s := range items {
		r := parse(s)
		if !r.IsOk() {
			continue
		}
		total += r.Data()
	}

	return total
}

func droppedInLoop(items []string) {
	for _, s := range items {
		parse(s) // want `RES030: result is dropped without being checked`
	}
}

func wrapped(s string) fallible.Result[int] {
	return fallible.Of(strconv.Atoi(s))
}

func methodValue(s string) int {
	r := parse(s)
	ok := r.IsOk
	if !ok() {
		return 0
	}
	get := r.Data
	return get()
}

func methodValueUnchecked(s string) int {
	r := parse(s)
	get := r.Data
	return get() // want `RES010: result is accessed without checking IsOk`
}

func comparedWithBool(s string) int {
	r := parse(s)
	if r.IsOk() == false {
		return 0
	}

	return r.Data()
}
