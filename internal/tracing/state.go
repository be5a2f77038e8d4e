package tracing

import (
	"github.com/benbjohnson/immutable"

	"github.com/sirkon/resultful/internal/aliasstore"
	"github.com/sirkon/resultful/internal/stackctx"
	"github.com/sirkon/resultful/internal/transition"
)

// pathState is everything known on one exploration path. All fields are
// persistent: copying the struct forks the path.
type pathState struct {
	store aliasstore.Store
	stack stackctx.Tracker

	// assumed keeps branch outcomes taken so far.
	assumed *immutable.Map[aliasstore.Condition, bool]

	// aliases redirect raw value identities to locations of another frame or
	// of an incoming phi edge.
	aliases *immutable.Map[aliasstore.Location, aliasstore.Location]

	// visits counts block entries per activation.
	visits *immutable.Map[uint32, int]

	seen Seen
}

var _ transition.Feasibility = pathState{}

func newPathState() pathState {
	return pathState{
		store:   aliasstore.New(),
		assumed: immutable.NewMap[aliasstore.Condition, bool](idHasher[aliasstore.Condition]{}),
		aliases: immutable.NewMap[aliasstore.Location, aliasstore.Location](idHasher[aliasstore.Location]{}),
		visits:  immutable.NewMap[uint32, int](idHasher[uint32]{}),
	}
}

// AssumeFeasible reports whether cond == polarity does not contradict branches taken on the path.
func (s pathState) AssumeFeasible(cond aliasstore.Condition, polarity bool) bool {
	v, ok := s.assumed.Get(cond)
	return !ok || v == polarity
}

// assume returns false when the assumption contradicts the path.
func (s *pathState) assume(cond aliasstore.Condition, polarity bool) bool {
	if !s.AssumeFeasible(cond, polarity) {
		return false
	}

	s.assumed = s.assumed.Set(cond, polarity)
	return true
}

func (s *pathState) forget(cond aliasstore.Condition) {
	if _, ok := s.assumed.Get(cond); ok {
		s.assumed = s.assumed.Delete(cond)
	}
}

func (s pathState) decided(cond aliasstore.Condition) bool {
	_, ok := s.assumed.Get(cond)
	return ok
}

func (s pathState) resolve(raw aliasstore.Location) aliasstore.Location {
	if loc, ok := s.aliases.Get(raw); ok {
		return loc
	}

	return raw
}

func (s *pathState) alias(raw, loc aliasstore.Location) {
	s.aliases = s.aliases.Set(raw, loc)
}

func (s *pathState) unalias(raw aliasstore.Location) {
	if _, ok := s.aliases.Get(raw); ok {
		s.aliases = s.aliases.Delete(raw)
	}
}

// visit counts one more entry and returns the new count.
func (s *pathState) visit(key uint32) int {
	n, _ := s.visits.Get(key)
	n++
	s.visits = s.visits.Set(key, n)
	return n
}

// Seen is a persistent set of findings already reported on a path. The zero value is empty.
type Seen struct {
	set immutable.Set[findingKey]
	ok  bool
}

func (s Seen) has(key findingKey) bool {
	return s.ok && s.set.Has(key)
}

func (s Seen) add(key findingKey) Seen {
	if !s.ok {
		return Seen{set: immutable.NewSet[findingKey](findingHasher{}, key), ok: true}
	}

	return Seen{set: s.set.Add(key), ok: true}
}

func (s Seen) Len() int {
	if !s.ok {
		return 0
	}

	return s.set.Len()
}

type idHasher[T ~uint32] struct{}

func (idHasher[T]) Hash(key T) uint32 {
	return uint32(key) * 2654435761
}

func (idHasher[T]) Equal(a, b T) bool {
	return a == b
}

type findingHasher struct{}

func (findingHasher) Hash(key findingKey) uint32 {
	return uint32(key.pos)*2654435761 ^ uint32(key.rule)
}

func (findingHasher) Equal(a, b findingKey) bool {
	return a == b
}
