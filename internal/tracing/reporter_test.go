package tracing

import (
	"bytes"
	"go/token"
	"strings"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/sirkon/resultful/internal/resrules"
)

// testFile registers a file of n lines, ten bytes each.
func testFile(fset *token.FileSet, name string, n int) *token.File {
	content := []byte(strings.Repeat("123456789\n", n))
	f := fset.AddFile(name, fset.Base(), len(content))
	f.SetLinesForContent(content)
	return f
}

func TestReporter_ReportPhases(t *testing.T) {
	fset := token.NewFileSet()
	file := testFile(fset, "check.go", 50)

	tests := []struct {
		name  string
		phase ReportPhase
		rule  resrules.Rule
		line  int
	}{
		{
			name:  "access without check",
			phase: ReportAccess,
			rule:  resrules.AccessedWithoutCheck(),
			line:  10,
		},
		{
			name:  "dropped result",
			phase: ReportScope,
			rule:  resrules.UnusedUnchecked(),
			line:  20,
		},
		{
			name:  "abort",
			phase: ReportAbort,
			rule:  resrules.AbortInFallibleContext(),
			line:  42,
		},
	}

	var r Reporter

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.Phase(tt.phase).Report(tt.rule, file.LineStart(tt.line), token.NoPos)
		})
	}

	reps := r.Reports()
	if len(reps) != len(tests) {
		t.Fatalf("expected %d reports, got %d", len(tests), len(reps))
	}

	for i, rep := range reps {
		want := tests[i]
		if rep.Phase != want.phase {
			t.Errorf("[%s] phase mismatch: got %v, want %v", want.name, rep.Phase, want.phase)
		}
		if rep.RuleCode != want.rule {
			t.Errorf("[%s] rule mismatch: got %v, want %v", want.name, rep.RuleCode, want.rule)
		}
		if rep.Message != want.rule.Description() {
			t.Errorf("[%s] message mismatch: got %q", want.name, rep.Message)
		}
		if line := fset.Position(rep.Pos).Line; line != want.line {
			t.Errorf("[%s] line mismatch: got %d, want %d", want.name, line, want.line)
		}
	}
}

func TestReporter_CollapsesPaths(t *testing.T) {
	var r Reporter

	// The same finding reached by three different paths.
	for range 3 {
		r.Phase(ReportAccess).Report(resrules.AccessedOnNotOkPath(), 100, 90)
	}
	r.Phase(ReportAccess).Report(resrules.AccessedWithoutCheck(), 100, token.NoPos)

	reps := r.Reports()
	if len(reps) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reps))
	}
	if reps[0].RuleCode != resrules.AccessedWithoutCheck() || reps[1].RuleCode != resrules.AccessedOnNotOkPath() {
		t.Errorf("unexpected order: %s, %s", reps[0].RuleCode, reps[1].RuleCode)
	}
	if reps[1].Related != 90 {
		t.Errorf("related position lost: %d", reps[1].Related)
	}
}

func TestReporter_ConcurrencySafety(t *testing.T) {
	const n = 500
	var (
		r  Reporter
		wg sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Report(Report{
				Phase:    ReportAccess,
				RuleCode: resrules.AccessedWithoutCheck(),
				Message:  "parallel add",
				Pos:      token.Pos(i + 1),
			})
		}(i)
	}
	wg.Wait()

	reps := r.Reports()
	if len(reps) != n {
		t.Fatalf("expected %d reports, got %d", n, len(reps))
	}
	reps[0].Message = "changed"
	reps2 := r.Reports()
	if reps2[0].Message == "changed" {
		t.Fatalf("Reports() returned shared slice, expected copy")
	}
}

func TestReporter_PrintSummary(t *testing.T) {
	fset := token.NewFileSet()
	file := testFile(fset, "/tmp/project/loader.go", 40)

	var r Reporter
	r.Phase(ReportScope).Report(resrules.UnusedUnchecked(), file.LineStart(31), file.LineStart(35))
	r.Phase(ReportAccess).Report(resrules.AccessedWithoutCheck(), file.LineStart(7), token.NoPos)
	r.Phase(ReportAccess).Report(resrules.AccessedOnNotOkPath(), file.LineStart(12), file.LineStart(9))
	r.Phase(ReportAccess).Report(resrules.AccessedOnOkPath(), file.LineStart(15), file.LineStart(9))
	r.Phase(ReportAbort).Report(resrules.AbortInFallibleContext(), file.LineStart(24), token.NoPos)

	var buf bytes.Buffer
	if err := r.PrintSummary(&buf, fset); err != nil {
		t.Fatal(err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "summary", buf.Bytes())
}
