// Package aliasstore keeps result usage states per storage location.
//
// A Store is persistent: every update returns a new Store and leaves the
// receiver intact, so forking an exploration path is a plain value copy and
// no sibling path can observe another's mutations.
package aliasstore

import (
	"fmt"
	"go/token"

	"github.com/benbjohnson/immutable"
)

// Location is an opaque identity of a storage location for one explored path.
// Zero is never a valid location.
type Location uint32

// Condition identifies the symbolic boolean produced by a validation call.
// Zero means no condition.
type Condition uint32

// Kind is the tag of a result usage state.
type Kind int

const (
	// Uninitialized means no tracked result lives at the location. Absence
	// of an entry is equivalent.
	Uninitialized Kind = iota

	// Initialized means a result was produced here and was not validated yet.
	Initialized

	// Checked means the result was validated, Cond holds the validation outcome.
	Checked
)

func (k Kind) String() string {
	switch k {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Checked:
		return "checked"
	default:
		return fmt.Sprintf("kind-invalid(%d)", int(k))
	}
}

// State is the usage state of a result at some location.
type State struct {
	Kind Kind

	// Cond is the exact value returned by the validation accessor. Set for Checked only.
	Cond Condition

	// CheckedAt is the position of the validation call. Set for Checked only.
	CheckedAt token.Pos

	// ProducedAt is where the result was produced.
	ProducedAt token.Pos

	// Consumed is set once the data or the error was pulled out of the result.
	Consumed bool
}

// Initial returns a freshly produced unchecked state.
func Initial(pos token.Pos) State {
	return State{Kind: Initialized, ProducedAt: pos}
}

// WithCheck returns the state turned into Checked with the given condition.
func (s State) WithCheck(cond Condition, pos token.Pos) State {
	s.Kind = Checked
	s.Cond = cond
	s.CheckedAt = pos
	return s
}

// Store maps locations to states. The zero value is an empty store.
type Store struct {
	m *immutable.Map[Location, State]
}

// New returns an empty store.
func New() Store {
	return Store{m: immutable.NewMap[Location, State](locationHasher{})}
}

// Get returns the state at the location. Unknown locations report false.
func (s Store) Get(loc Location) (State, bool) {
	if s.m == nil {
		return State{}, false
	}

	v, ok := s.m.Get(loc)
	if !ok || v.Kind == Uninitialized {
		return State{}, false
	}

	return v, true
}

// Set returns a store with the state placed at the location. Setting
// Uninitialized is the same as Delete.
func (s Store) Set(loc Location, state State) Store {
	if state.Kind == Uninitialized {
		return s.Delete(loc)
	}
	if s.m == nil {
		s = New()
	}

	return Store{m: s.m.Set(loc, state)}
}

// Delete returns a store without an entry for the location.
func (s Store) Delete(loc Location) Store {
	if s.m == nil {
		return s
	}

	return Store{m: s.m.Delete(loc)}
}

// Len returns the number of tracked locations.
func (s Store) Len() int {
	if s.m == nil {
		return 0
	}

	return s.m.Len()
}

// Each calls f for every tracked location until f returns false. The order is unspecified.
func (s Store) Each(f func(loc Location, state State) bool) {
	if s.m == nil {
		return
	}

	itr := s.m.Iterator()
	for !itr.Done() {
		loc, state, ok := itr.Next()
		if !ok {
			return
		}
		if !f(loc, state) {
			return
		}
	}
}

type locationHasher struct{}

// Hash spreads sequential identities over the hash space (Knuth's multiplicative hashing).
func (locationHasher) Hash(key Location) uint32 {
	return uint32(key) * 2654435761
}

func (locationHasher) Equal(a, b Location) bool {
	return a == b
}
