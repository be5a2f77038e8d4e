// Package tracing drives result usage checks over SSA form.
//
// It walks every feasible path of a function the way a symbolic executor
// would, though with a very limited notion of "symbolic": the only facts it
// keeps about values are the outcomes of boolean branches taken so far.
// Everything else is delegated to the transition engine.
//
// Core components:
//
//   - Explorer
//     Depth-first path enumeration over basic blocks. Each path carries a
//     persistent state (alias store, frame stack, branch assumptions, visit
//     counts, already reported findings), so forking a path is a value copy.
//     Calls into same-package functions and closures are followed inline up
//     to a depth limit; other calls are classified by the Classifier.
//
//   - Classifier
//     Maps a callee to what it does to a result: produce, validate, give
//     away data or error, terminate the process, or nothing of interest.
//
//   - Handles
//     Interns region identities (activation, SSA value, field path) into
//     compact locations and conditions the transition engine understands.
//
//   - Emitter and Reporter
//     Per path deduplication of findings and a shared, mutex guarded sink
//     collapsing them across paths.
//
// Exploration is bounded: by path count, by inlining depth and by the number
// of times a single block may be entered on one path. Hitting a bound
// abandons the path silently.
package tracing
