// Package stackctx tracks the call frames active on an exploration path.
package stackctx

import (
	"github.com/benbjohnson/immutable"
)

// Frame describes one active call frame.
type Frame struct {
	// Fallible is set when the function returns a result type.
	Fallible bool

	// CheckWrapper marks assertion helpers: anonymous functions taking
	// a single message string. They never count as fallible context.
	CheckWrapper bool

	// Owner is the qualified name of the type the function belongs to,
	// e.g. "github.com/sirkon/resultful/fallible.Result". Empty for plain
	// functions. Closures inherit the owner of the declaring method.
	Owner string

	// Name is a human readable function name, for tracing only.
	Name string
}

// Tracker is a persistent frame stack. The zero value is an empty stack.
type Tracker struct {
	frames *immutable.List[Frame]
}

// Push returns a tracker with the frame on top.
func (t Tracker) Push(f Frame) Tracker {
	if t.frames == nil {
		return Tracker{frames: immutable.NewList(f)}
	}

	return Tracker{frames: t.frames.Append(f)}
}

// Pop returns a tracker without the top frame. Popping an empty stack is a no-op.
func (t Tracker) Pop() Tracker {
	n := t.Depth()
	if n == 0 {
		return t
	}
	if n == 1 {
		return Tracker{}
	}

	return Tracker{frames: t.frames.Slice(0, n-1)}
}

// Depth returns the number of active frames.
func (t Tracker) Depth() int {
	if t.frames == nil {
		return 0
	}

	return t.frames.Len()
}

// Top returns the innermost frame.
func (t Tracker) Top() (Frame, bool) {
	n := t.Depth()
	if n == 0 {
		return Frame{}, false
	}

	return t.frames.Get(n - 1), true
}

// InFallibleContext reports whether any active frame other than a check
// wrapper is fallible.
func (t Tracker) InFallibleContext() bool {
	_, ok := t.InnermostFallible()
	return ok
}

// InnermostFallible returns the closest fallible frame that is not a check wrapper.
func (t Tracker) InnermostFallible() (Frame, bool) {
	for i := t.Depth() - 1; i >= 0; i-- {
		f := t.frames.Get(i)
		if f.Fallible && !f.CheckWrapper {
			return f, true
		}
	}

	return Frame{}, false
}
