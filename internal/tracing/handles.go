package tracing

import (
	"golang.org/x/tools/go/ssa"

	"github.com/sirkon/resultful/internal/aliasstore"
)

// handles interns region identities into dense ids. Ids are shared by all
// paths of one exploration: the same key always maps to the same id.
//
// Every id also remembers the activation owning it, zero for storage living
// outside of any activation (globals, memory reached through foreign pointers).
type handles struct {
	ids    map[any]aliasstore.Location
	owners []uint32
}

func newHandles() *handles {
	return &handles{
		ids:    map[any]aliasstore.Location{},
		owners: []uint32{0},
	}
}

type (
	// valueKey is an SSA value within an activation.
	valueKey struct {
		frame uint32
		v     ssa.Value
	}

	// fieldKey is a struct field or tuple component of a location.
	fieldKey struct {
		base  aliasstore.Location
		field int
	}

	// indexKey is an element of an array. Negative index stands for any element.
	indexKey struct {
		base  aliasstore.Location
		index int64
	}

	// blockKey is a basic block within an activation.
	blockKey struct {
		frame uint32
		block *ssa.BasicBlock
	}
)

// intern returns the id of the key. The owner is fixed on the first call.
func (h *handles) intern(key any, owner uint32) aliasstore.Location {
	if id, ok := h.ids[key]; ok {
		return id
	}

	id := aliasstore.Location(len(h.owners))
	h.ids[key] = id
	h.owners = append(h.owners, owner)
	return id
}

func (h *handles) owner(id aliasstore.Location) uint32 {
	if int(id) >= len(h.owners) {
		return 0
	}

	return h.owners[id]
}
