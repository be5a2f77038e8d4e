// Package resultful provides a go/analysis based analyzer checking that
// results are validated before their data or error is pulled out, and are
// never dropped unchecked.
package resultful

import (
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/ssa"

	"github.com/sirkon/resultful/internal/directive/ignore"
	"github.com/sirkon/resultful/internal/tracing"
)

const doc = `resultful checks usage of result types

A result must be validated with its ok-check before its data or error is
accessed, each accessor is only allowed on the matching branch of the check,
a result must not be dropped unchecked, and a function returning a result
must not terminate the process.`

// Flags for the analyzer.
var (
	configPath string
	trace      bool
)

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "", "path to the YAML config, the embedded default is used when empty")
	Analyzer.Flags.BoolVar(&trace, "trace", false, "log path exploration to stderr and print a findings summary")
}

// Analyzer is the main entry point for the linter.
var Analyzer = &analysis.Analyzer{
	Name:     "resultful",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer, buildssa.Analyzer},
	Run:      run,
	Flags:    flag.FlagSet{},
}

var (
	ErrNoInspector = errors.New("inspector analyzer result not found")
	ErrNoSSA       = errors.New("buildssa analyzer result not found")
)

func run(pass *analysis.Pass) (any, error) {
	pector, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, ErrNoInspector
	}
	ssainfo, ok := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)
	if !ok {
		return nil, ErrNoSSA
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	classifier, err := tracing.NewClassifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup classifier: %w", err)
	}

	log := newLogger(trace).With(zap.String("package", pass.Pkg.Path()))
	defer func() {
		_ = log.Sync()
	}()

	var reporter tracing.Reporter
	explorer := tracing.NewExplorer(cfg, classifier, tracing.NewEmitter(&reporter, log), log)

	// Generated files are neither checked nor scanned for directives.
	ignores := ignore.New(pass.Fset)
	generated := map[*token.File]bool{}
	for _, file := range pass.Files {
		if ast.IsGenerated(file) {
			generated[pass.Fset.File(file.Pos())] = true
			continue
		}
		ignores.Add(file)
	}

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
	}

	pector.Preorder(nodeFilter, func(node ast.Node) {
		n := node.(*ast.FuncDecl) // No need to assert check since we only get func decls.
		if n.Body == nil || generated[pass.Fset.File(n.Pos())] {
			return
		}

		obj, ok := pass.TypesInfo.Defs[n.Name].(*types.Func)
		if !ok {
			return
		}
		checkResultUsage(ssainfo.Pkg.Prog.FuncValue(obj), explorer)
	})

	publish(pass, reporter.Reports(), ignores)

	if trace {
		if err := reporter.PrintSummary(os.Stderr, pass.Fset); err != nil {
			return nil, fmt.Errorf("print summary: %w", err)
		}
	}

	return nil, nil
}

// checkResultUsage explores the function and every closure declared in it.
// Closures are explored on their own too: captured results are unknown there,
// results they produce are not.
func checkResultUsage(fn *ssa.Function, explorer *tracing.Explorer) {
	if fn == nil {
		return
	}

	explorer.InterpretSSA(fn)
	for _, anon := range fn.AnonFuncs {
		checkResultUsage(anon, explorer)
	}
}

func publish(pass *analysis.Pass, reports []tracing.Report, ignores *ignore.Index) {
	for _, rep := range reports {
		if ignores.ShouldIgnore(rep.Pos, rep.RuleCode) {
			continue
		}

		diag := analysis.Diagnostic{
			Pos:      rep.Pos,
			Category: rep.RuleCode.Name(),
			Message:  fmt.Sprintf("%s: %s", rep.RuleCode.Code(), rep.Message),
		}
		if rep.Related.IsValid() {
			msg := "validated here"
			if rep.Phase == tracing.ReportScope {
				msg = "scope ends here"
			}
			diag.Related = []analysis.RelatedInformation{{Pos: rep.Related, Message: msg}}
		}
		pass.Report(diag)
	}

	for _, unused := range ignores.Unused() {
		if len(unused.Rules) == 0 {
			pass.Reportf(unused.Pos, "unused resultful:ignore directive")
			continue
		}
		pass.Reportf(unused.Pos, "unused resultful:ignore directive for rule(s): %s", strings.Join(unused.Rules, ", "))
	}
}

// newLogger returns a console logger for tracing or a no-op one.
func newLogger(enabled bool) *zap.Logger {
	if !enabled {
		return zap.NewNop()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return log.Named("resultful")
}
