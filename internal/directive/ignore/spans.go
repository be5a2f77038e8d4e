package ignore

import (
	"go/token"

	"github.com/sirkon/rbtree"
)

// span stores a [start,end] position range of a directive and spans fully
// contained in it.
type span struct {
	start token.Pos
	end   token.Pos

	entry    *Entry
	children *spans
}

// Cmp orders spans as "disjoint by position": -1 if s ends before other starts,
// 1 if s starts after other ends and 0 if they overlap in any way.
//
// Overlapping spans must be in a strict containment relationship, so 0 means
// either a superspan or a subspan.
func (s *span) Cmp(other *span) int {
	if s.end < other.start {
		return -1
	}
	if s.start > other.end {
		return 1
	}
	return 0
}

func (s *span) contains(o *span) bool {
	return s.start <= o.start && s.end >= o.end
}

func (s *span) covers(pos token.Pos) bool {
	return s.start <= pos && pos <= s.end
}

// spans is a set of disjoint spans, the inner one of two overlapping spans is
// kept as a child of the outer one.
type spans struct {
	tree *rbtree.Tree[*span]
}

func newSpans() *spans {
	return &spans{tree: rbtree.New[*span]()}
}

func (t *spans) add(start, end token.Pos, entry *Entry) {
	t.attach(&span{start: start, end: end, entry: entry})
}

// attach inserts s using the following containment rules:
//   - If no span overlaps s, it is inserted as a sibling.
//   - If an existing span contains s, s goes into its children.
//   - An existing span contained in s is moved into children of s, and s is
//     attached again as it may cover more siblings.
func (t *spans) attach(s *span) {
	for {
		r := t.tree.InsertReturn(s)
		if r == s {
			return
		}

		switch {
		case r.contains(s):
			if r.children == nil {
				r.children = newSpans()
			}
			r.children.attach(s)
			return

		case s.contains(r):
			t.tree.Delete(r)
			if s.children == nil {
				s.children = newSpans()
			}
			s.children.attach(r)

		default:
			panic("attach: partial-overlap spans are not supported")
		}
	}
}

// find returns entries of spans covering pos, innermost first.
func (t *spans) find(pos token.Pos) []*Entry {
	for s := range t.tree.Iter() {
		if s.start > pos {
			break
		}
		if !s.covers(pos) {
			continue
		}

		var res []*Entry
		if s.children != nil {
			res = s.children.find(pos)
		}
		return append(res, s.entry)
	}

	return nil
}
