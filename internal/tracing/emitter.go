package tracing

import (
	"go/token"

	"go.uber.org/zap"

	"github.com/sirkon/resultful/internal/resrules"
)

// Emitter turns violations found on a path into reports, once per rule and
// position on that path.
type Emitter struct {
	reporter *Reporter
	log      *zap.Logger
}

// NewEmitter creates an emitter publishing into the reporter.
func NewEmitter(reporter *Reporter, log *zap.Logger) *Emitter {
	return &Emitter{
		reporter: reporter,
		log:      log,
	}
}

// Report publishes the finding unless it is already in seen and returns the
// updated set of the path.
func (e *Emitter) Report(
	seen Seen,
	phase ReportPhase,
	rule resrules.Rule,
	pos token.Pos,
	related token.Pos,
) Seen {
	key := findingKey{rule: rule, pos: pos}
	if seen.has(key) {
		return seen
	}

	e.log.Debug("finding",
		zap.Stringer("phase", phase),
		zap.Stringer("rule", rule),
		zap.Int("pos", int(pos)),
	)
	e.reporter.Phase(phase).Report(rule, pos, related)

	return seen.add(key)
}
