// Package resrules defines the canonical rule codes (RES-series) enforced by resultful.
// Each rule represents a distinct violation of the result usage discipline.
//
// Rule numbering scheme:
//
//	010–019  Access without validation
//	020–029  Access on the wrong branch
//	030–039  Dropped results
//	040–049  Process termination discipline
package resrules

import (
	"encoding"
	"fmt"
	"strings"
)

// Rule represents a resultful rule code (RES-series).
type Rule int

const (
	ruleInvalid Rule = iota

	RES010AccessedWithoutCheck
	RES020AccessedOnNotOkPath
	RES021AccessedOnOkPath
	RES030UnusedUnchecked
	RES040AbortInFallibleContext
)

var ruleCodes = map[Rule]string{
	RES010AccessedWithoutCheck:   "RES010",
	RES020AccessedOnNotOkPath:    "RES020",
	RES021AccessedOnOkPath:       "RES021",
	RES030UnusedUnchecked:        "RES030",
	RES040AbortInFallibleContext: "RES040",
}

var ruleNames = map[Rule]string{
	RES010AccessedWithoutCheck:   "AccessedWithoutCheck",
	RES020AccessedOnNotOkPath:    "AccessedOnNotOkPath",
	RES021AccessedOnOkPath:       "AccessedOnOkPath",
	RES030UnusedUnchecked:        "UnusedUnchecked",
	RES040AbortInFallibleContext: "AbortInFallibleContext",
}

// All returns every valid rule in numbering order.
func All() []Rule {
	return []Rule{
		RES010AccessedWithoutCheck,
		RES020AccessedOnNotOkPath,
		RES021AccessedOnOkPath,
		RES030UnusedUnchecked,
		RES040AbortInFallibleContext,
	}
}

// Code returns the bare code, e.g. "RES010".
func (r Rule) Code() string {
	if v, ok := ruleCodes[r]; ok {
		return v
	}

	return fmt.Sprintf("RES???(%d)", int(r))
}

// Name returns the short rule name, e.g. "AccessedWithoutCheck".
func (r Rule) Name() string {
	if v, ok := ruleNames[r]; ok {
		return v
	}

	return fmt.Sprintf("rule-unknown(%d)", int(r))
}

// String returns the canonical code and short name of the rule.
// Example: "RES010: AccessedWithoutCheck"
func (r Rule) String() string {
	if _, ok := ruleCodes[r]; !ok {
		return fmt.Sprintf("rule-unknown(%d)", int(r))
	}

	return r.Code() + ": " + r.Name()
}

// Description returns the human-readable explanation of the rule. It is used
// as the diagnostic message.
func (r Rule) Description() string {
	switch r {
	case RES010AccessedWithoutCheck:
		return "result is accessed without checking IsOk"
	case RES020AccessedOnNotOkPath:
		return "result data is accessed on a path where it may be not ok"
	case RES021AccessedOnOkPath:
		return "result error is accessed on a path where it may be ok"
	case RES030UnusedUnchecked:
		return "result is dropped without being checked"
	case RES040AbortInFallibleContext:
		return "process is terminated inside a function returning a result"
	default:
		return fmt.Sprintf("unknown-rule(%d)", int(r))
	}
}

var _ encoding.TextUnmarshaler = (*Rule)(nil)

// UnmarshalText accepts either a code ("RES010") or a short name ("AccessedWithoutCheck").
func (r *Rule) UnmarshalText(b []byte) error {
	text := strings.TrimSpace(string(b))
	for _, rule := range All() {
		if strings.EqualFold(text, rule.Code()) || text == rule.Name() {
			*r = rule
			return nil
		}
	}

	return fmt.Errorf("unknown rule %q", text)
}

// Canonical constructors, for readability and stable call sites.

func AccessedWithoutCheck() Rule   { return RES010AccessedWithoutCheck }
func AccessedOnNotOkPath() Rule    { return RES020AccessedOnNotOkPath }
func AccessedOnOkPath() Rule       { return RES021AccessedOnOkPath }
func UnusedUnchecked() Rule        { return RES030UnusedUnchecked }
func AbortInFallibleContext() Rule { return RES040AbortInFallibleContext }
