package tracing

import (
	"fmt"
	"go/types"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/tools/go/ssa"
)

const classifierCacheSize = 4096

// Classifier resolves what callees do to results. Results per function are memoised.
type Classifier struct {
	resultTypes map[string]struct{}
	allowList   map[string]struct{}

	validateName string
	dataName     string
	errorName    string

	terminators     *knownTerminators
	panicTerminates bool

	cache *lru.Cache[*ssa.Function, CalleeKind]
}

// NewClassifier creates a classifier for the given config.
func NewClassifier(cfg Config) (*Classifier, error) {
	cache, err := lru.New[*ssa.Function, CalleeKind](classifierCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create classification cache: %w", err)
	}

	c := &Classifier{
		resultTypes:     map[string]struct{}{},
		allowList:       map[string]struct{}{},
		validateName:    cfg.Validate,
		dataName:        cfg.Data,
		errorName:       cfg.Error,
		terminators:     newKnownTerminators(cfg.Terminators),
		panicTerminates: cfg.PanicTerminates,
		cache:           cache,
	}
	for _, ref := range cfg.ResultTypes {
		c.resultTypes[ref.qualified()] = struct{}{}
	}
	for _, ref := range cfg.AllowList {
		c.allowList[ref.qualified()] = struct{}{}
	}

	return c, nil
}

// Classify returns what the call does. Dynamic calls can only produce results.
func (c *Classifier) Classify(call *ssa.CallCommon) CalleeKind {
	if call.IsInvoke() {
		return c.classifySignature(call.Signature())
	}
	if _, ok := call.Value.(*ssa.Builtin); ok {
		return CalleeUnrelated
	}

	fn := call.StaticCallee()
	if fn == nil {
		return c.classifySignature(call.Signature())
	}

	kind, ok := c.cache.Get(fn)
	if !ok {
		kind = c.classifyFunc(fn)
		c.cache.Add(fn, kind)
	}

	switch kind {
	case CalleeValidates, CalleeAccessesData, CalleeAccessesError:
		if _, ok := receiver(call); !ok {
			return CalleeUnrelated
		}
	}

	return kind
}

// receiver returns the value a method is called on. A method value
// (r.IsOk) is a closure over a bound wrapper carrying the receiver as its only binding.
func receiver(call *ssa.CallCommon) (ssa.Value, bool) {
	if len(call.Args) > 0 {
		return call.Args[0], true
	}
	if mc, ok := call.Value.(*ssa.MakeClosure); ok && len(mc.Bindings) == 1 {
		return mc.Bindings[0], true
	}

	return nil, false
}

func (c *Classifier) classifyFunc(fn *ssa.Function) CalleeKind {
	if obj, ok := fn.Object().(*types.Func); ok {
		obj = obj.Origin()
		sig := obj.Type().(*types.Signature)

		var qualified string
		if recv := sig.Recv(); recv != nil {
			owner := typeName(recv.Type())
			if _, isResult := c.resultTypes[owner]; isResult {
				switch obj.Name() {
				case c.validateName:
					return CalleeValidates
				case c.dataName:
					return CalleeAccessesData
				case c.errorName:
					return CalleeAccessesError
				}
			}
			qualified = owner + "." + obj.Name()
		} else if obj.Pkg() != nil {
			qualified = obj.Pkg().Path() + "." + obj.Name()
		}

		if kind, ok := c.terminators.lookup(qualified); ok {
			if kind == terminatorExit || c.panicTerminates {
				return CalleeTerminates
			}
		}
	}

	if c.IsCheckWrapper(fn) {
		return CalleeCheckWrapper
	}

	return c.classifySignature(fn.Signature)
}

func (c *Classifier) classifySignature(sig *types.Signature) CalleeKind {
	if c.IsFallible(sig) {
		return CalleeProduces
	}

	return CalleeUnrelated
}

// IsResult reports whether t is one of the result types, instantiated or not.
func (c *Classifier) IsResult(t types.Type) bool {
	if _, ok := types.Unalias(t).(*types.Pointer); ok {
		return false
	}
	name := typeName(t)
	if name == "" {
		return false
	}

	_, ok := c.resultTypes[name]
	return ok
}

// IsFallible reports whether the signature returns a result.
func (c *Classifier) IsFallible(sig *types.Signature) bool {
	res := sig.Results()
	for i := range res.Len() {
		if c.IsResult(res.At(i).Type()) {
			return true
		}
	}

	return false
}

// IsCheckWrapper reports whether fn is an anonymous function taking a single string.
func (c *Classifier) IsCheckWrapper(fn *ssa.Function) bool {
	if fn.Parent() == nil {
		return false
	}

	params := fn.Signature.Params()
	if params.Len() != 1 {
		return false
	}
	basic, ok := params.At(0).Type().Underlying().(*types.Basic)
	return ok && basic.Kind() == types.String
}

// Owner returns the qualified name of the type whose method declares fn,
// looking through closures. Empty for plain functions.
func (c *Classifier) Owner(fn *ssa.Function) string {
	for fn.Parent() != nil {
		fn = fn.Parent()
	}

	recv := fn.Signature.Recv()
	if recv == nil {
		return ""
	}

	return typeName(recv.Type())
}

// Exempt reports whether methods of the owner type may terminate the process.
func (c *Classifier) Exempt(owner string) bool {
	if owner == "" {
		return false
	}
	if _, ok := c.resultTypes[owner]; ok {
		return true
	}

	_, ok := c.allowList[owner]
	return ok
}

// typeName returns "pkg/path.Name" of a named type or a pointer to it.
// Instantiated generics are reduced to their origin.
func typeName(t types.Type) string {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}

	named, ok := t.(*types.Named)
	if !ok {
		return ""
	}
	obj := named.Origin().Obj()
	if obj.Pkg() == nil {
		return ""
	}

	return obj.Pkg().Path() + "." + obj.Name()
}
