// Command resultful is a linter that checks results are validated before use.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/sirkon/resultful"
)

func main() {
	singlechecker.Main(resultful.Analyzer)
}
