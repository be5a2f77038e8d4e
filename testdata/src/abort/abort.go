package abort

import (
	"fmt"
	"log"
	"os"

	"github.com/sirkon/resultful/fallible"
)

func load(path string) fallible.Result[[]byte] {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err) // want `RES040: process is terminated inside a function returning a result`
	}

	return fallible.Ok(data)
}

func run(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(data))
}

func length(s string) fallible.Result[int] {
	fatal := func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(2) // want `RES040: process is terminated inside a function returning a result`
	}
	if s == "" {
		fatal("empty input")
	}

	return fallible.Ok(len(s))
}

func inner() {
	get := func(n int) fallible.Result[int] {
		if n < 0 {
			os.Exit(1) // want `RES040: process is terminated inside a function returning a result`
		}
		return fallible.Ok(n)
	}
	r := get(1)
	if r.IsOk() {
		fmt.Println(r.Data())
	}
}

func panics(s string) fallible.Result[int] {
	if s == "" {
		panic("empty input")
	}
	if len(s) > 64 {
		log.Panicf("input too long: %d", len(s))
	}

	return fallible.Ok(len(s))
}

type Loader struct{}

func (Loader) Must(path string) fallible.Result[[]byte] {
	data, err := os.ReadFile(path)
	if err != nil {
		os.Exit(1) // want `RES040: process is terminated inside a function returning a result`
	}

	return fallible.Ok(data)
}
