package tracing

import (
	"go/constant"
	"go/token"
	"go/types"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/tools/go/ssa"

	"github.com/sirkon/resultful/internal/aliasstore"
	"github.com/sirkon/resultful/internal/resrules"
	"github.com/sirkon/resultful/internal/stackctx"
	"github.com/sirkon/resultful/internal/transition"
)

// Explorer checks result usage over SSA functions.
type Explorer struct {
	cfg        Config
	classifier *Classifier
	emitter    *Emitter
	log        *zap.Logger
}

// NewExplorer creates an explorer. The config is expected to be validated.
func NewExplorer(cfg Config, classifier *Classifier, emitter *Emitter, log *zap.Logger) *Explorer {
	return &Explorer{
		cfg:        cfg,
		classifier: classifier,
		emitter:    emitter,
		log:        log,
	}
}

// activation is a function body being executed on a path: the root function
// or an inlined callee. Activations are never mutated once created.
type activation struct {
	parent *activation
	fn     *ssa.Function
	id     uint32
	depth  int

	// call is the instruction of the parent being inlined and
	// block/index is where the parent resumes.
	call  *ssa.Call
	block *ssa.BasicBlock
	index int
}

type path struct {
	act   *activation
	block *ssa.BasicBlock
	pred  *ssa.BasicBlock
	index int
	st    pathState
}

// interpretation is a single InterpretSSA run.
type interpretation struct {
	*Explorer

	pkg    *ssa.Package
	fset   *token.FileSet
	h      *handles
	log    *zap.Logger
	frames uint32
	paths  int
}

// InterpretSSA explores paths of fn using an explicit DFS stack.
// Each path is explored once with an isolated state.
func (e *Explorer) InterpretSSA(fn *ssa.Function) {
	if fn == nil || len(fn.Blocks) == 0 {
		return
	}

	it := &interpretation{
		Explorer: e,
		pkg:      fn.Pkg,
		fset:     fn.Prog.Fset,
		h:        newHandles(),
		log:      e.log.With(zap.Stringer("func", fn)),
	}

	start := &path{
		act: it.newActivation(nil, fn, nil, nil, 0),
		st:  newPathState(),
	}
	it.onFunctionEntry(start)
	if !it.enter(start, fn.Blocks[0]) {
		return
	}

	stack := []*path{start}
	for len(stack) > 0 {
		if it.paths >= it.cfg.MaxPaths {
			it.log.Debug("path budget exhausted", zap.Int("paths", it.paths), zap.Int("pending", len(stack)))
			return
		}

		n := len(stack) - 1
		p := stack[n]
		stack = stack[:n]

		forks := it.walk(p)
		for i := len(forks) - 1; i >= 0; i-- {
			stack = append(stack, forks[i])
		}
	}

	it.log.Debug("done", zap.Int("paths", it.paths))
}

func (it *interpretation) newActivation(
	parent *activation,
	fn *ssa.Function,
	call *ssa.Call,
	block *ssa.BasicBlock,
	index int,
) *activation {
	it.frames++
	act := &activation{
		parent: parent,
		fn:     fn,
		id:     it.frames,
		call:   call,
		block:  block,
		index:  index,
	}
	if parent != nil {
		act.depth = parent.depth + 1
	}

	return act
}

// walk interprets the path until it ends or forks.
func (it *interpretation) walk(p *path) []*path {
	for p.index < len(p.block.Instrs) {
		switch instr := p.block.Instrs[p.index].(type) {
		case *ssa.If:
			return it.branch(p, instr)

		case *ssa.Jump:
			if !it.enter(p, p.block.Succs[0]) {
				return nil
			}
			continue

		case *ssa.Return:
			if !it.onPreReturn(p, instr) {
				return nil
			}
			continue

		case *ssa.Panic:
			if it.cfg.PanicTerminates {
				it.onTerminate(p, instr.Pos())
			} else {
				it.finish(p, "panic")
			}
			return nil

		case *ssa.Call:
			switch it.call(p, instr) {
			case callInlined:
				continue
			case callEnded:
				return nil
			}

		default:
			it.interpret(p, instr)
		}

		p.index++
	}

	it.finish(p, "no terminator")
	return nil
}

// enter moves the path into the block, p.block becomes its predecessor.
func (it *interpretation) enter(p *path, to *ssa.BasicBlock) bool {
	key := it.h.intern(blockKey{frame: p.act.id, block: to}, p.act.id)
	n := p.st.visit(uint32(key))
	if n > it.cfg.LoopBound {
		it.abandon(p, "loop bound")
		return false
	}
	if n > 1 {
		// Values of the block are computed anew, branch outcomes on them are stale.
		for _, instr := range to.Instrs {
			if v, ok := instr.(ssa.Value); ok && isBool(v.Type()) {
				p.st.forget(aliasstore.Condition(it.raw(p.act, v)))
			}
		}
	}

	p.pred, p.block, p.index = p.block, to, 0
	it.resolvePhis(p)
	return true
}

// resolvePhis binds phi values of the current block for the incoming edge.
func (it *interpretation) resolvePhis(p *path) {
	edge := slices.Index(p.block.Preds, p.pred)

	var (
		phis []*ssa.Phi
		srcs []aliasstore.Location
	)
	for ; p.index < len(p.block.Instrs); p.index++ {
		phi, ok := p.block.Instrs[p.index].(*ssa.Phi)
		if !ok {
			break
		}
		if edge < 0 {
			continue
		}
		phis = append(phis, phi)
		srcs = append(srcs, it.loc(p, phi.Edges[edge]))
	}

	// All edges are read before any phi is assigned.
	for i, phi := range phis {
		raw := it.raw(p.act, phi)
		if srcs[i] != 0 {
			p.st.alias(raw, srcs[i])
			continue
		}

		p.st.unalias(raw)
		if it.classifier.IsResult(phi.Type()) {
			p.st.store = p.st.store.Delete(raw)
		}
	}
}

func (it *interpretation) branch(p *path, instr *ssa.If) []*path {
	cond, neg, value, isConst := it.condition(p, instr.Cond)

	var forks []*path
	for i, to := range p.block.Succs[:2] {
		taken := i == 0
		next := *p

		switch {
		case isConst:
			if value != taken {
				continue
			}
		case cond != 0:
			if !next.st.assume(cond, taken != neg) {
				continue
			}
		}

		if !it.enter(&next, to) {
			continue
		}
		forks = append(forks, &next)
	}

	return forks
}

// condition normalises a branch condition to a handle and a negation flag.
func (it *interpretation) condition(p *path, v ssa.Value) (cond aliasstore.Condition, neg bool, value bool, isConst bool) {
	for {
		if u, ok := v.(*ssa.UnOp); ok && u.Op == token.NOT {
			neg = !neg
			v = u.X
			continue
		}
		if x, want, ok := comparedToBool(v); ok {
			// x == false and x != true hold when x does not.
			if !want {
				neg = !neg
			}
			v = x
			continue
		}
		break
	}

	if c, ok := v.(*ssa.Const); ok && c.Value != nil && c.Value.Kind() == constant.Bool {
		return 0, false, constant.BoolVal(c.Value) != neg, true
	}

	return aliasstore.Condition(it.loc(p, v)), neg, false, false
}

// comparedToBool unpacks x == c and x != c with a boolean constant c into x
// and the value of x the comparison holds for.
func comparedToBool(v ssa.Value) (x ssa.Value, want bool, ok bool) {
	b, isBinOp := v.(*ssa.BinOp)
	if !isBinOp || (b.Op != token.EQL && b.Op != token.NEQ) {
		return nil, false, false
	}

	x = b.X
	c, isConst := b.Y.(*ssa.Const)
	if !isConst {
		c, isConst = b.X.(*ssa.Const)
		x = b.Y
	}
	if !isConst || c.Value == nil || c.Value.Kind() != constant.Bool {
		return nil, false, false
	}

	want = constant.BoolVal(c.Value)
	if b.Op == token.NEQ {
		want = !want
	}
	return x, want, true
}

type callOutcome int

const (
	callContinue callOutcome = iota
	callInlined
	callEnded
)

func (it *interpretation) call(p *path, call *ssa.Call) callOutcome {
	common := call.Common()
	kind := it.classifier.Classify(common)
	it.onPreCall(p, call)

	switch kind {
	case CalleeValidates:
		it.onValidate(p, call)
		return callContinue

	case CalleeAccessesData, CalleeAccessesError:
		if !it.onAccess(p, call, kind) {
			it.finish(p, "wrong branch")
			return callEnded
		}
		return callContinue

	case CalleeTerminates:
		it.onTerminate(p, call.Pos())
		return callEnded
	}

	if fn, ok := it.inlinable(p, common); ok {
		if !it.inline(p, call, fn) {
			return callEnded
		}
		return callInlined
	}

	it.onPostCall(p, call, kind)
	return callContinue
}

func (it *interpretation) onFunctionEntry(p *path) {
	fn := p.act.fn
	p.st.stack = p.st.stack.Push(stackctx.Frame{
		Fallible:     it.classifier.IsFallible(fn.Signature),
		CheckWrapper: it.classifier.IsCheckWrapper(fn),
		Owner:        it.classifier.Owner(fn),
		Name:         fn.Name(),
	})

	if p.act.parent == nil {
		it.log.Debug("start")
		return
	}
	it.log.Debug("inline", zap.String("callee", fn.Name()), zap.Int("depth", p.act.depth))
}

func (it *interpretation) onPreCall(p *path, call *ssa.Call) {
	for i, arg := range call.Common().Args {
		if it.classifier.IsResult(arg.Type()) || it.classifier.IsResult(deref(arg.Type())) {
			it.log.Debug("call with arg",
				it.at(call.Pos()),
				zap.Int("arg", i),
				zap.Uint32("loc", uint32(it.loc(p, arg))),
			)
		}
	}
}

func (it *interpretation) onValidate(p *path, call *ssa.Call) {
	recv, _ := receiver(call.Common())
	loc := it.loc(p, recv)
	cond := aliasstore.Condition(it.raw(p.act, call))
	p.st.store = transition.OnValidate(loc, cond, call.Pos(), p.st.store)
	it.log.Debug("checked", it.at(call.Pos()), zap.Uint32("loc", uint32(loc)))
}

// onAccess returns false when the path must not go further.
func (it *interpretation) onAccess(p *path, call *ssa.Call, kind CalleeKind) bool {
	recv, _ := receiver(call.Common())
	loc := it.loc(p, recv)

	var vs []transition.Violation
	if kind == CalleeAccessesData {
		p.st.store, vs = transition.OnDataAccess(loc, p.st.store, p.st)
		it.log.Debug("get data", it.at(call.Pos()), zap.Uint32("loc", uint32(loc)))
	} else {
		p.st.store, vs = transition.OnErrorAccess(loc, p.st.store, p.st)
		it.log.Debug("get error", it.at(call.Pos()), zap.Uint32("loc", uint32(loc)))
	}

	alive := true
	for _, v := range vs {
		it.report(p, ReportAccess, v.Rule, call.Pos(), v.Related())
		if v.Rule == resrules.AccessedWithoutCheck() {
			continue
		}

		// The access is wrong only on one branch of the check. Stop if the path is
		// already on it, go on with the other one otherwise.
		if p.st.decided(v.State.Cond) {
			alive = false
			continue
		}
		p.st.assume(v.State.Cond, v.Rule == resrules.AccessedOnNotOkPath())
	}

	return alive
}

func (it *interpretation) onTerminate(p *path, pos token.Pos) {
	frame, ok := p.st.stack.InnermostFallible()
	if ok && !it.classifier.Exempt(frame.Owner) {
		it.report(p, ReportAbort, resrules.AbortInFallibleContext(), pos, token.NoPos)
		it.log.Debug("abort", it.at(pos), zap.String("frame", frame.Name))
	}

	it.finish(p, "terminated")
}

func (it *interpretation) inlinable(p *path, common *ssa.CallCommon) (*ssa.Function, bool) {
	if common.IsInvoke() || p.act.depth >= it.cfg.MaxDepth {
		return nil, false
	}

	fn := common.StaticCallee()
	if fn == nil || len(fn.Blocks) == 0 || len(fn.Params) != len(common.Args) {
		return nil, false
	}
	pkg := fn.Pkg
	if pkg == nil && fn.Origin() != nil {
		pkg = fn.Origin().Pkg
	}
	if pkg == nil || pkg != it.pkg {
		return nil, false
	}

	for a := p.act; a != nil; a = a.parent {
		if a.fn == fn {
			return nil, false
		}
	}

	return fn, true
}

// inline enters the callee body. Parameters are aliased to the caller's
// locations, so a helper checking its argument checks the caller's result.
func (it *interpretation) inline(p *path, call *ssa.Call, fn *ssa.Function) bool {
	common := call.Common()
	act := it.newActivation(p.act, fn, call, p.block, p.index)

	for i, param := range fn.Params {
		if src := it.loc(p, common.Args[i]); src != 0 {
			p.st.alias(it.raw(act, param), src)
		}
	}

	if mc, ok := common.Value.(*ssa.MakeClosure); ok {
		for i, fv := range fn.FreeVars {
			if src := it.loc(p, mc.Bindings[i]); src != 0 {
				p.st.alias(it.raw(act, fv), src)
			}
		}
	}

	p.act = act
	p.block = nil
	it.onFunctionEntry(p)
	return it.enter(p, fn.Blocks[0])
}

// onPostCall handles a call nobody looks into: arguments are gone, produced results are fresh.
func (it *interpretation) onPostCall(p *path, call *ssa.Call, kind CalleeKind) {
	common := call.Common()
	for _, arg := range common.Args {
		it.escape(p, arg)
	}
	if mc, ok := common.Value.(*ssa.MakeClosure); ok {
		for _, b := range mc.Bindings {
			it.escape(p, b)
		}
	}

	if kind != CalleeProduces {
		return
	}

	base := it.raw(p.act, call)
	p.st.unalias(base)
	if tuple, ok := call.Type().(*types.Tuple); ok {
		for i := range tuple.Len() {
			if it.classifier.IsResult(tuple.At(i).Type()) {
				it.define(p, it.member(p, base, fieldKey{field: i}), call.Pos())
			}
		}
		return
	}
	if it.classifier.IsResult(call.Type()) {
		it.define(p, base, call.Pos())
	}
}

// onPreReturn checks the scope exit of the current activation and hands
// the returned values over to the caller. It returns false if the path ended.
func (it *interpretation) onPreReturn(p *path, ret *ssa.Return) bool {
	act := p.act
	pos := ret.Pos()
	if !pos.IsValid() {
		pos = endPos(act.fn)
	}

	kept := map[aliasstore.Location]struct{}{}
	for _, v := range ret.Results {
		loc := it.loc(p, v)
		if it.classifier.IsResult(v.Type()) {
			it.log.Debug("return", it.at(pos), zap.Uint32("loc", uint32(loc)))
		}
		if loc != 0 {
			kept[loc] = struct{}{}
		}
	}

	if act.parent != nil {
		it.handOver(p, ret)
	}

	var owned []aliasstore.Location
	p.st.store.Each(func(loc aliasstore.Location, _ aliasstore.State) bool {
		if it.h.owner(loc) == act.id {
			owned = append(owned, loc)
		}
		return true
	})
	slices.Sort(owned)
	for _, loc := range owned {
		if _, ok := kept[loc]; ok {
			p.st.store = p.st.store.Delete(loc)
			continue
		}
		it.onScopeExit(p, loc, pos)
	}

	p.st.stack = p.st.stack.Pop()
	if act.parent == nil {
		it.finish(p, "returned")
		return false
	}

	p.act, p.block, p.index = act.parent, act.block, act.index+1
	return true
}

// handOver binds returned values to the call value of the caller.
func (it *interpretation) handOver(p *path, ret *ssa.Return) {
	call := p.act.call
	base := it.raw(p.act.parent, call)
	p.st.unalias(base)

	if len(ret.Results) == 1 {
		it.handOverValue(p, ret.Results[0], base, call.Pos())
		return
	}
	for i, v := range ret.Results {
		dst := it.h.intern(fieldKey{base: base, field: i}, it.h.owner(base))
		p.st.unalias(dst)
		it.handOverValue(p, v, dst, call.Pos())
	}
}

func (it *interpretation) handOverValue(p *path, v ssa.Value, dst aliasstore.Location, pos token.Pos) {
	src := it.loc(p, v)
	if !it.classifier.IsResult(v.Type()) {
		if src != 0 {
			p.st.alias(dst, src)
		}
		return
	}

	it.onScopeExit(p, dst, pos)
	if src != 0 && it.h.owner(src) != p.act.id {
		// The callee returns what it was given.
		p.st.alias(dst, src)
		return
	}
	p.st.store = transition.OnCopyConstruct(dst, src, pos, p.st.store)
	// For the caller the result comes from the call.
	if state, ok := p.st.store.Get(dst); ok && state.ProducedAt != pos {
		state.ProducedAt = pos
		p.st.store = p.st.store.Set(dst, state)
	}
	it.log.Debug("copy constructed", it.at(pos), zap.Uint32("loc", uint32(dst)), zap.Uint32("from", uint32(src)))
}

// onScopeExit ends the lifetime of a location, reporting it if it was dropped unchecked.
func (it *interpretation) onScopeExit(p *path, loc aliasstore.Location, exit token.Pos) {
	if _, ok := p.st.store.Get(loc); !ok {
		return
	}

	for _, v := range transition.OnScopeExit(loc, p.st.store) {
		pos := v.State.ProducedAt
		if !pos.IsValid() {
			pos = exit
		}
		it.report(p, ReportScope, v.Rule, pos, exit)
	}
	p.st.store = p.st.store.Delete(loc)
	it.log.Debug("scope exit", it.at(exit), zap.Uint32("loc", uint32(loc)))
}

// onBind assigns src to dst. Temporaries are moved, variables are copied.
func (it *interpretation) onBind(p *path, dst, src aliasstore.Location, v ssa.Value) {
	p.st.store = transition.OnBind(dst, src, p.st.store)
	if src != 0 && src != dst && isTemp(v) {
		p.st.store = p.st.store.Delete(src)
	}
	it.log.Debug("bind", zap.Uint32("loc", uint32(dst)), zap.Uint32("from", uint32(src)))
}

// define places a freshly produced result at loc.
func (it *interpretation) define(p *path, loc aliasstore.Location, pos token.Pos) {
	it.onScopeExit(p, loc, pos)
	p.st.store = transition.OnValueProduced(loc, pos, p.st.store)
	it.log.Debug("produced", it.at(pos), zap.Uint32("loc", uint32(loc)))
}

func (it *interpretation) interpret(p *path, instr ssa.Instruction) {
	switch v := instr.(type) {
	case *ssa.Store:
		it.onStore(p, v)
	case *ssa.Alloc:
		it.onAlloc(p, v)
	case *ssa.MakeInterface:
		it.escape(p, v.X)
	case *ssa.Send:
		it.escape(p, v.X)
	case *ssa.MapUpdate:
		it.escape(p, v.Key)
		it.escape(p, v.Value)
	case *ssa.Go:
		it.escapeArgs(p, v.Common())
	case *ssa.Defer:
		it.escapeArgs(p, v.Common())
	case *ssa.MakeClosure:
		it.onMakeClosure(p, v)
	}
}

func (it *interpretation) onStore(p *path, s *ssa.Store) {
	if !it.classifier.IsResult(s.Val.Type()) {
		return
	}

	dst := it.loc(p, s.Addr)
	if dst == 0 || it.h.owner(dst) == 0 {
		// The memory lives beyond the analyzed frames.
		it.escape(p, s.Val)
		if dst != 0 {
			p.st.store = transition.OnEscape(dst, p.st.store)
		}
		return
	}

	// A stored literal constructs a new result in place.
	if _, ok := s.Val.(*ssa.Const); ok {
		it.define(p, dst, s.Pos())
		return
	}

	src := it.loc(p, s.Val)
	if src == dst {
		return
	}
	it.onScopeExit(p, dst, s.Pos())
	it.onBind(p, dst, src, s.Val)
}

func (it *interpretation) onAlloc(p *path, a *ssa.Alloc) {
	if !it.classifier.IsResult(deref(a.Type())) {
		return
	}

	loc := it.loc(p, a)
	if a.Comment == "complit" {
		it.define(p, loc, a.Pos())
		return
	}
	// A variable declared anew.
	it.onScopeExit(p, loc, a.Pos())
}

func (it *interpretation) onMakeClosure(p *path, mc *ssa.MakeClosure) {
	if refs := mc.Referrers(); refs != nil {
		direct := true
		for _, ref := range *refs {
			call, ok := ref.(*ssa.Call)
			if !ok || call.Common().Value != mc {
				direct = false
				break
			}
		}
		if direct {
			// Bindings are dealt with at the call.
			return
		}
	}

	for _, b := range mc.Bindings {
		it.escape(p, b)
	}
}

func (it *interpretation) escapeArgs(p *path, common *ssa.CallCommon) {
	for _, arg := range common.Args {
		it.escape(p, arg)
	}
}

// escape forgets a value handed to code nobody looks into.
func (it *interpretation) escape(p *path, v ssa.Value) {
	if !it.classifier.IsResult(v.Type()) && !isPointer(v.Type()) {
		return
	}

	loc := it.loc(p, v)
	if loc == 0 {
		return
	}
	if _, ok := p.st.store.Get(loc); !ok {
		return
	}

	p.st.store = transition.OnEscape(loc, p.st.store)
	it.log.Debug("escaped", zap.Uint32("loc", uint32(loc)))
}

func (it *interpretation) report(p *path, phase ReportPhase, rule resrules.Rule, pos, related token.Pos) {
	p.st.seen = it.emitter.Report(p.st.seen, phase, rule, pos, related)
}

func (it *interpretation) finish(p *path, reason string) {
	it.paths++
	it.log.Debug("path finished", zap.String("reason", reason), zap.Int("path", it.paths))
}

func (it *interpretation) abandon(p *path, reason string) {
	it.paths++
	it.log.Debug("path abandoned", zap.String("reason", reason), zap.Int("path", it.paths))
}

func (it *interpretation) at(pos token.Pos) zap.Field {
	return zap.Stringer("at", it.fset.Position(pos))
}

// loc returns the location of a value in the current activation.
func (it *interpretation) loc(p *path, v ssa.Value) aliasstore.Location {
	return it.locIn(p, p.act, v)
}

// locIn returns the location of a value. The location of a pointer is the region it points to.
func (it *interpretation) locIn(p *path, act *activation, v ssa.Value) aliasstore.Location {
	if isPointer(v.Type()) {
		return it.regionIn(p, act, v)
	}

	switch v := v.(type) {
	case *ssa.Const:
		return 0
	case *ssa.UnOp:
		if v.Op == token.MUL {
			return it.regionIn(p, act, v.X)
		}
	case *ssa.Field:
		return it.member(p, it.locIn(p, act, v.X), fieldKey{field: v.Field})
	case *ssa.Extract:
		return it.member(p, it.locIn(p, act, v.Tuple), fieldKey{field: v.Index})
	}

	return p.st.resolve(it.raw(act, v))
}

func (it *interpretation) regionIn(p *path, act *activation, ptr ssa.Value) aliasstore.Location {
	switch ptr := ptr.(type) {
	case *ssa.Const:
		return 0

	case *ssa.FieldAddr:
		return it.member(p, it.regionIn(p, act, ptr.X), fieldKey{field: ptr.Field})

	case *ssa.IndexAddr:
		index := int64(-1)
		if c, ok := ptr.Index.(*ssa.Const); ok && c.Value != nil {
			if i, exact := constant.Int64Val(constant.ToInt(c.Value)); exact {
				index = i
			}
		}
		if isPointer(ptr.X.Type()) {
			return it.member(p, it.regionIn(p, act, ptr.X), indexKey{index: index})
		}

		// Slice elements live in a backing array nobody owns.
		base := it.locIn(p, act, ptr.X)
		if base == 0 {
			return 0
		}
		return p.st.resolve(it.h.intern(indexKey{base: base, index: index}, 0))
	}

	return p.st.resolve(it.raw(act, ptr))
}

// member returns the location of a field or an element of base.
func (it *interpretation) member(p *path, base aliasstore.Location, key any) aliasstore.Location {
	if base == 0 {
		return 0
	}

	switch k := key.(type) {
	case fieldKey:
		k.base = base
		key = k
	case indexKey:
		k.base = base
		key = k
	}

	return p.st.resolve(it.h.intern(key, it.h.owner(base)))
}

// raw returns the identity of a value in the activation, aliases are not followed.
func (it *interpretation) raw(act *activation, v ssa.Value) aliasstore.Location {
	if g, ok := v.(*ssa.Global); ok {
		return it.h.intern(valueKey{v: g}, 0)
	}

	owner := act.id
	if _, ok := v.(*ssa.Alloc); !ok {
		switch v.(type) {
		case *ssa.Parameter, *ssa.FreeVar:
			// Arguments of the root function come from nowhere we know.
			if act.parent == nil {
				owner = 0
			}
		}
		// Memory behind pointers of unknown origin.
		if isPointer(v.Type()) {
			owner = 0
		}
	}

	return it.h.intern(valueKey{frame: act.id, v: v}, owner)
}

// isTemp tells whether v is a temporary dying at its only use.
func isTemp(v ssa.Value) bool {
	switch v := v.(type) {
	case *ssa.Const, *ssa.Global, *ssa.Parameter, *ssa.FreeVar, *ssa.Field:
		return false
	case *ssa.UnOp:
		if v.Op == token.MUL {
			return false
		}
	}

	refs := v.Referrers()
	return refs != nil && len(*refs) <= 1
}

func isPointer(t types.Type) bool {
	_, ok := t.Underlying().(*types.Pointer)
	return ok
}

func isBool(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsBoolean != 0
}

func deref(t types.Type) types.Type {
	if ptr, ok := t.Underlying().(*types.Pointer); ok {
		return ptr.Elem()
	}

	return t
}

func endPos(fn *ssa.Function) token.Pos {
	if syntax := fn.Syntax(); syntax != nil {
		return syntax.End()
	}

	return fn.Pos()
}
