package comb

// Redex describes one saturated redex inside a term.
type Redex struct {
	// Path leads from the root to the redex, one byte per step:
	// 'L' for the function side and 'R' for the argument side.
	Path       string
	Combinator byte
	Term       Term
	// Consumed holds the arguments the rewrite duplicates (z for S, y for W).
	Consumed []Term
	// Ejected holds what the rewrite drops from the term: the combinator
	// leaf, plus the discarded argument for K.
	Ejected []Term
}

// Redexes lists every redex in t in the order Reduce would visit them, so
// the first entry is the one Reduce rewrites.
func Redexes(t Term) []Redex {
	var out []Redex
	var walk func(t Term, path []byte)
	walk = func(t Term, path []byte) {
		app, ok := t.(App)
		if !ok {
			return
		}
		walk(app.Fun, append(path, 'L'))
		walk(app.Arg, append(path, 'R'))

		rl, args, ok := match(app)
		if !ok {
			return
		}
		head, _ := Spine(app)
		sym := head.(Leaf).Sym
		rx := Redex{
			Path:       string(path),
			Combinator: sym,
			Term:       app,
			Ejected:    []Term{Leaf{Sym: sym}},
		}
		switch rl.kind {
		case RuleS:
			rx.Consumed = []Term{args[2]}
		case RuleW:
			rx.Consumed = []Term{args[1]}
		case RuleK:
			rx.Ejected = append(rx.Ejected, args[1])
		}
		out = append(out, rx)
	}
	walk(t, nil)
	return out
}

// Contract rewrites the redex rx inside t, leaving the rest of t as is.
// rx must come from Redexes(t).
func Contract(t Term, rx Redex) Term {
	rl, args, ok := match(rx.Term)
	if !ok {
		panic("comb: contract of a non-redex " + rx.Term.String())
	}
	return replaceAt(t, rx.Path, rl.rewrite(args))
}

func replaceAt(t Term, path string, sub Term) Term {
	if path == "" {
		return sub
	}
	app := t.(App)
	if path[0] == 'L' {
		return App{Fun: replaceAt(app.Fun, path[1:], sub), Arg: app.Arg}
	}
	return App{Fun: app.Fun, Arg: replaceAt(app.Arg, path[1:], sub)}
}
