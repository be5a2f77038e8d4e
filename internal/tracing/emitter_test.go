package tracing

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sirkon/resultful/internal/resrules"
)

func TestEmitterDeduplicatesPerPath(t *testing.T) {
	var r Reporter
	e := NewEmitter(&r, zap.NewNop())

	var seen Seen
	seen = e.Report(seen, ReportAccess, resrules.AccessedWithoutCheck(), 10, 0)
	seen = e.Report(seen, ReportAccess, resrules.AccessedWithoutCheck(), 10, 0)
	require.Equal(t, 1, seen.Len())

	// The same position under another rule is a different finding.
	seen = e.Report(seen, ReportScope, resrules.UnusedUnchecked(), 10, 20)
	require.Equal(t, 2, seen.Len())

	require.Len(t, r.Reports(), 2)
}

func TestEmitterForkedPaths(t *testing.T) {
	var r Reporter
	e := NewEmitter(&r, zap.NewNop())

	base := e.Report(Seen{}, ReportAccess, resrules.AccessedWithoutCheck(), 10, 0)
	left := e.Report(base, ReportAccess, resrules.AccessedOnNotOkPath(), 30, 25)
	right := e.Report(base, ReportAccess, resrules.AccessedOnOkPath(), 40, 25)

	require.Equal(t, 1, base.Len())
	require.Equal(t, 2, left.Len())
	require.Equal(t, 2, right.Len())
	require.False(t, left.has(findingKey{rule: resrules.AccessedOnOkPath(), pos: 40}))

	// Both paths reaching the same point produce a single report.
	e.Report(left, ReportScope, resrules.UnusedUnchecked(), 50, 60)
	e.Report(right, ReportScope, resrules.UnusedUnchecked(), 50, 60)
	require.Len(t, r.Reports(), 4)
}
