package tracing

import (
	"cmp"
	"fmt"
	"go/token"
	"io"
	"path/filepath"
	"slices"
	"sync"

	"github.com/sirkon/resultful/internal/resrules"
)

// Reporter collects findings of all explored paths. The same rule at the same
// position is kept once, no matter how many paths lead to it.
type Reporter struct {
	mu      sync.Mutex
	reports []Report
	seen    map[findingKey]struct{}
}

// Report represents a single diagnostic entry.
type Report struct {
	Phase    ReportPhase
	RuleCode resrules.Rule
	Pos      token.Pos
	Message  string

	// Related is the position of the validation call for wrong branch
	// findings and the scope exit for dropped results. May be token.NoPos.
	Related token.Pos
}

// ReportPhase marks the exploration event where a report was generated.
type ReportPhase int

const (
	reportPhaseInvalid ReportPhase = iota
	ReportAccess                   // accessor calls
	ReportScope                    // scope exits
	ReportAbort                    // process termination
)

func (p ReportPhase) String() string {
	switch p {
	case ReportAccess:
		return "access"
	case ReportScope:
		return "scope"
	case ReportAbort:
		return "abort"
	default:
		return fmt.Sprintf("unknown-phase(%d)", p)
	}
}

// ReporterPhase binds a Reporter to a fixed phase.
type ReporterPhase struct {
	parent *Reporter
	phase  ReportPhase
}

// Phase returns a reporter that sets the given phase for every report made through it.
func (r *Reporter) Phase(p ReportPhase) *ReporterPhase {
	return &ReporterPhase{parent: r, phase: p}
}

// Report adds a new record unless the same rule was already reported at the position.
func (r *Reporter) Report(rep Report) {
	key := findingKey{rule: rep.RuleCode, pos: rep.Pos}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seen == nil {
		r.seen = map[findingKey]struct{}{}
	}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	r.reports = append(r.reports, rep)
}

// Report records a rule violation under the bound phase.
func (rp *ReporterPhase) Report(rule resrules.Rule, pos, related token.Pos) {
	rp.parent.Report(Report{
		Phase:    rp.phase,
		RuleCode: rule,
		Pos:      pos,
		Message:  rule.Description(),
		Related:  related,
	})
}

// Reports returns a snapshot of all collected records ordered by position.
func (r *Reporter) Reports() []Report {
	r.mu.Lock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	r.mu.Unlock()

	slices.SortStableFunc(out, func(a, b Report) int {
		if c := cmp.Compare(a.Pos, b.Pos); c != 0 {
			return c
		}
		return cmp.Compare(a.RuleCode, b.RuleCode)
	})
	return out
}

// PrintSummary writes all collected reports in a compact, human-readable form.
func (r *Reporter) PrintSummary(w io.Writer, fset *token.FileSet) error {
	for _, rep := range r.Reports() {
		pos := fset.Position(rep.Pos)
		if _, err := fmt.Fprintf(w, "[%s] %s: %s (%s:%d)\n",
			rep.Phase,
			rep.RuleCode,
			rep.Message,
			filepath.Base(pos.Filename),
			pos.Line,
		); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	return nil
}

type findingKey struct {
	rule resrules.Rule
	pos  token.Pos
}
