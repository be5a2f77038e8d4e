// Package resrules defines the canonical RES-series rule codes enforced by resultful.
//
// Each rule is a verifiable invariant of how a fallible result value may be
// used along one execution path. The RES-series gives every rule a stable
// numeric and textual identity, so findings can be reported, filtered and
// suppressed consistently.
//
// # Purpose
//
// The resrules package is the single source of truth for rule codes. It is used by:
//   - the transition engine, to classify violations;
//   - the emitter, to render diagnostics and deduplicate them;
//   - ignore directives, to name the rules being suppressed.
//
// # Structure
//
// Rule codes follow the format “RES<NNN>: <Name>”:
//
//	RES010: AccessedWithoutCheck     data or error pulled from a never validated result
//	RES020: AccessedOnNotOkPath      data pulled where the result may be not ok
//	RES021: AccessedOnOkPath         error pulled where the result may be ok
//	RES030: UnusedUnchecked          result dropped without validation or use
//	RES040: AbortInFallibleContext   process terminated inside a result-returning function
//
// # Usage
//
//	//resultful:ignore RES030
//	_ = produce()
//
// # Notes
//
//   - Rule identifiers are stable; never renumber existing codes.
//   - Unknown codes render as "rule-unknown(N)".
package resrules
