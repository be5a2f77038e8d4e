// Package ignore provides //resultful:ignore directive parsing.
//
// # Directive Placement
//
// The directive can appear on the line before a finding or on the same line:
//
//	//resultful:ignore
//	use(r.Data())  // Finding suppressed
//
//	use(r.Data())  //resultful:ignore  // Also works
//
// In a function doc comment it covers the whole function:
//
//	// load reads the config.
//	//
//	//resultful:ignore RES030
//	func load() { ... }
//
// # Rule-Specific Ignores
//
// Rules are given by code or by name, comma separated:
//
//	//resultful:ignore RES010
//	//resultful:ignore RES020,UnusedUnchecked
//
// Anything after " - " is a free form reason:
//
//	//resultful:ignore RES030 - the result is logged by the callee
//
// # Unused Directives
//
// Directives suppressing nothing, and unknown rules, are reported back
// so they do not pile up.
package ignore
