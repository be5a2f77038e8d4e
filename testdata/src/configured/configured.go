package configured

import (
	"fmt"
	"log"
	"os"

	"github.com/sirkon/resultful/fallible"
)

func die(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func load(path string) fallible.Result[[]byte] {
	data, err := os.ReadFile(path)
	if err != nil {
		die(err.Error()) // want `RES040: process is terminated inside a function returning a result`
	}

	return fallible.Ok(data)
}

func panics(s string) fallible.Result[int] {
	if s == "" {
		panic("empty input") // want `RES040: process is terminated inside a function returning a result`
	}

	return fallible.Ok(len(s))
}

func logPanics(s string) fallible.Result[int] {
	if len(s) > 64 {
		log.Panicf("input too long: %d", len(s)) // want `RES040: process is terminated inside a function returning a result`
	}

	return fallible.Ok(len(s))
}

func plain(path string) {
	if _, err := os.Stat(path); err != nil {
		die(err.Error())
	}
}

type Checker struct{}

func (Checker) Must(path string) fallible.Result[[]byte] {
	data, err := os.ReadFile(path)
	if err != nil {
		die(err.Error())
	}

	return fallible.Ok(data)
}

type Loader struct{}

func (Loader) Must(path string) fallible.Result[[]byte] {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err) // want `RES040: process is terminated inside a function returning a result`
	}

	return fallible.Ok(data)
}
