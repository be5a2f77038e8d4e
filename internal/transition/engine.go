// Package transition computes result usage state changes for observed program events.
//
// Every operation is pure: it takes the current alias store, returns the next
// one and the violations the event causes. Reporting and deduplication are up
// to the caller.
package transition

import (
	"go/token"

	"github.com/sirkon/resultful/internal/aliasstore"
	"github.com/sirkon/resultful/internal/resrules"
)

// Feasibility answers path constraint queries for the path being explored.
type Feasibility interface {
	// AssumeFeasible reports whether cond == polarity is consistent with the
	// constraints accumulated along the path.
	AssumeFeasible(cond aliasstore.Condition, polarity bool) bool
}

// Violation is a detected breach of the usage discipline.
type Violation struct {
	Rule resrules.Rule
	Loc  aliasstore.Location

	// State is the state of the location at the moment of the violation.
	State aliasstore.State
}

// Related returns the position of the validation call for wrong-branch
// violations and token.NoPos otherwise.
func (v Violation) Related() token.Pos {
	switch v.Rule {
	case resrules.AccessedOnNotOkPath(), resrules.AccessedOnOkPath():
		return v.State.CheckedAt
	default:
		return token.NoPos
	}
}

// OnValueProduced marks a location as holding a fresh unchecked result unless
// something is tracked there already.
func OnValueProduced(loc aliasstore.Location, pos token.Pos, store aliasstore.Store) aliasstore.Store {
	if _, ok := store.Get(loc); ok {
		return store
	}

	return store.Set(loc, aliasstore.Initial(pos))
}

// OnCopyConstruct makes dst a copy of src. Copying keeps the checked status;
// an untracked source makes dst a freshly produced result.
func OnCopyConstruct(dst, src aliasstore.Location, pos token.Pos, store aliasstore.Store) aliasstore.Store {
	if state, ok := store.Get(src); ok {
		return store.Set(dst, state)
	}

	return OnValueProduced(dst, pos, store)
}

// OnBind propagates the state of src into dst verbatim, untracked source included.
func OnBind(dst, src aliasstore.Location, store aliasstore.Store) aliasstore.Store {
	if state, ok := store.Get(src); ok {
		return store.Set(dst, state)
	}

	return store.Delete(dst)
}

// OnValidate records the validation outcome. Only Initialized results change:
// revalidation keeps the first recorded condition.
func OnValidate(
	loc aliasstore.Location,
	cond aliasstore.Condition,
	pos token.Pos,
	store aliasstore.Store,
) aliasstore.Store {
	state, ok := store.Get(loc)
	if !ok || state.Kind != aliasstore.Initialized {
		return store
	}

	return store.Set(loc, state.WithCheck(cond, pos))
}

// OnDataAccess checks a data accessor call. The data is only safe where the
// path constraints alone prove the ok-condition.
func OnDataAccess(
	loc aliasstore.Location,
	store aliasstore.Store,
	feas Feasibility,
) (aliasstore.Store, []Violation) {
	return onAccess(loc, store, feas, false, resrules.AccessedOnNotOkPath())
}

// OnErrorAccess checks an error accessor call. The error is only safe where
// the path constraints alone prove the ok-condition false.
func OnErrorAccess(
	loc aliasstore.Location,
	store aliasstore.Store,
	feas Feasibility,
) (aliasstore.Store, []Violation) {
	return onAccess(loc, store, feas, true, resrules.AccessedOnOkPath())
}

// onAccess is shared by both accessors. unsafe is the ok-condition polarity
// where the access is wrong.
func onAccess(
	loc aliasstore.Location,
	store aliasstore.Store,
	feas Feasibility,
	unsafe bool,
	wrongBranch resrules.Rule,
) (aliasstore.Store, []Violation) {
	state, ok := store.Get(loc)
	if !ok {
		return store, nil
	}

	var res []Violation
	switch state.Kind {
	case aliasstore.Initialized:
		res = append(res, Violation{Rule: resrules.AccessedWithoutCheck(), Loc: loc, State: state})
	case aliasstore.Checked:
		if feas.AssumeFeasible(state.Cond, unsafe) {
			res = append(res, Violation{Rule: wrongBranch, Loc: loc, State: state})
		}
	}

	if !state.Consumed {
		state.Consumed = true
		store = store.Set(loc, state)
	}

	return store, res
}

// OnScopeExit checks a location whose lifetime ends.
func OnScopeExit(loc aliasstore.Location, store aliasstore.Store) []Violation {
	state, ok := store.Get(loc)
	if !ok || state.Kind != aliasstore.Initialized || state.Consumed {
		return nil
	}

	return []Violation{{Rule: resrules.UnusedUnchecked(), Loc: loc, State: state}}
}

// OnEscape forgets a location whose value left the analyzed code.
func OnEscape(loc aliasstore.Location, store aliasstore.Store) aliasstore.Store {
	return store.Delete(loc)
}
