package comb

import "sync/atomic"

type rule struct {
	kind    RuleKind
	arity   int
	rewrite func(args []Term) Term
}

// rules maps each combinator to its derivation schema:
//
//	Ix   -> x
//	Kxy  -> x
//	Wxy  -> xyy
//	Sxyz -> xz(yz)
//	Bxyz -> x(yz)
//	Cxyz -> xzy
//
// Terms are immutable, so a rewrite may share an argument between several
// positions of its result.
var rules = map[byte]rule{
	'I': {RuleI, 1, func(a []Term) Term { return a[0] }},
	'K': {RuleK, 2, func(a []Term) Term { return a[0] }},
	'W': {RuleW, 2, func(a []Term) Term { return Apply(a[0], a[1], a[1]) }},
	'S': {RuleS, 3, func(a []Term) Term { return Apply(a[0], a[2], App{Fun: a[1], Arg: a[2]}) }},
	'B': {RuleB, 3, func(a []Term) Term { return App{Fun: a[0], Arg: App{Fun: a[1], Arg: a[2]}} }},
	'C': {RuleC, 3, func(a []Term) Term { return Apply(a[0], a[2], a[1]) }},
}

// Arity returns the number of arguments combinator sym needs before it can
// be rewritten. ok is false for free variables and unknown symbols.
func Arity(sym byte) (n int, ok bool) {
	r, ok := rules[sym]
	return r.arity, ok
}

// Reducer performs single rewrite steps and keeps per-rule statistics.
// The zero value is ready to use.
type Reducer struct {
	ops    uint64
	counts [numRules]uint64

	traceBuf []TraceEvent
	traceCap uint64
	traceIdx uint64
	traceOn  uint32
}

// Stats holds rewrite statistics.
type Stats struct {
	TotalReductions uint64
	I               uint64
	K               uint64
	W               uint64
	S               uint64
	B               uint64
	C               uint64
}

func NewReducer() *Reducer {
	return &Reducer{}
}

func (r *Reducer) GetStats() Stats {
	return Stats{
		TotalReductions: atomic.LoadUint64(&r.ops),
		I:               atomic.LoadUint64(&r.counts[RuleI]),
		K:               atomic.LoadUint64(&r.counts[RuleK]),
		W:               atomic.LoadUint64(&r.counts[RuleW]),
		S:               atomic.LoadUint64(&r.counts[RuleS]),
		B:               atomic.LoadUint64(&r.counts[RuleB]),
		C:               atomic.LoadUint64(&r.counts[RuleC]),
	}
}

// Reduce rewrites the innermost redex of t, trying the function side before
// the argument side before the node itself. At most one rewrite happens; a
// term without redexes comes back unchanged.
func (r *Reducer) Reduce(t Term) Term {
	out, _ := r.step(t)
	return out
}

func (r *Reducer) step(t Term) (Term, bool) {
	app, ok := t.(App)
	if !ok {
		return t, false
	}
	if fun, ok := r.step(app.Fun); ok {
		return App{Fun: fun, Arg: app.Arg}, true
	}
	if arg, ok := r.step(app.Arg); ok {
		return App{Fun: app.Fun, Arg: arg}, true
	}

	rl, args, ok := match(app)
	if !ok {
		return t, false
	}
	out := rl.rewrite(args)
	r.record(rl.kind, t, out)
	return out, true
}

// match reports whether t is a saturated redex: a combinator head with
// exactly its arity of arguments. Longer spines hold the saturated node in
// their function side.
func match(t Term) (rule, []Term, bool) {
	head, args := Spine(t)
	leaf, ok := head.(Leaf)
	if !ok {
		return rule{}, nil, false
	}
	rl, ok := rules[leaf.Sym]
	if !ok || len(args) != rl.arity {
		return rule{}, nil, false
	}
	return rl, args, true
}

func (r *Reducer) record(kind RuleKind, redex, result Term) {
	if r == nil {
		return
	}
	atomic.AddUint64(&r.ops, 1)
	atomic.AddUint64(&r.counts[kind], 1)
	r.recordTrace(kind, redex, result)
}

// Reduce performs one rewrite step without collecting statistics.
func Reduce(t Term) Term {
	var r *Reducer
	return r.Reduce(t)
}
