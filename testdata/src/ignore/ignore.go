package ignore

import (
	"strconv"

	"github.com/sirkon/resultful/fallible"
)

func parse(s string) fallible.Result[int] {
	return fallible.Of(strconv.Atoi(s))
}

func sameLine(s string) int {
	r := parse(s)
	return r.Data() //resultful:ignore RES010
}

func lineAbove(s string) {
	//resultful:ignore UnusedUnchecked - fire and forget
	parse(s)
}

// wholeFunction does not care.
//
//resultful:ignore
func wholeFunction(s string) int {
	r := parse(s)
	parse(s)
	return r.Data()
}

func otherRule(s string) {
	//resultful:ignore RES010 // want `unused resultful:ignore directive for rule\(s\): RES010`
	parse(s) // want `RES030: result is dropped without being checked`
}

func nothingToIgnore(s string) int {
	r := parse(s)
	if !r.IsOk() {
		return 0
	}
	//resultful:ignore // want `unused resultful:ignore directive`
	return r.Data()
}
