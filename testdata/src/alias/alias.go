package alias

import (
	"fmt"
	"os"

	"github.com/sirkon/resultful/fallible"
)

func read(path string) fallible.Result[[]byte] {
	return fallible.Of(os.ReadFile(path))
}

func viaPointer(path string) int {
	r := read(path)
	p := &r
	if p.IsOk() {
		return len(p.Data())
	}

	return 0
}

func viaPointerUnchecked(path string) int {
	r := read(path)
	p := &r
	return len(p.Data()) // want `RES010: result is accessed without checking IsOk`
}

func valid(r fallible.Result[[]byte]) bool {
	return r.IsOk()
}

func checkedByHelper(path string) int {
	r := read(path)
	if valid(r) {
		return len(r.Data())
	}

	return 0
}

func merged(primary bool, path string) int {
	var r fallible.Result[[]byte]
	if primary {
		r = read(path)
	} else {
		r = read(path + ".bak")
	}
	if r.IsOk() {
		return len(r.Data())
	}

	return -1
}

func checkedInClosure(path string) int {
	r := read(path)
	ok := func() bool { return r.IsOk() }
	if ok() {
		return len(r.Data())
	}

	return 0
}

func overwritten(path string) int {
	r := read(path) // want `RES030: result is dropped without being checked`
	r = read(path + ".bak")
	if r.IsOk() {
		return len(r.Data())
	}

	return 0
}

func described(path string) string {
	r := read(path)
	return fmt.Sprint(r)
}

var last fallible.Result[[]byte]

func remembered(path string) {
	last = read(path)
}

func copiedAfterCheck(path string) int {
	r := read(path)
	if !r.IsOk() {
		return 0
	}
	c := r
	p := &c
	return len(p.Data())
}
