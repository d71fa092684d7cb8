package comb

import "strings"

// Term represents a combinator term.
type Term interface {
	String() string
	// Size reports the number of leaves in the term.
	Size() int
}

// Leaf is an atomic term. Uppercase letters are combinators and lowercase
// letters are free variables.
type Leaf struct {
	Sym byte
}

func (l Leaf) String() string {
	return string(l.Sym)
}

func (l Leaf) Size() int { return 1 }

// IsCombinator reports whether the leaf names one of the known combinators.
func (l Leaf) IsCombinator() bool {
	_, ok := rules[l.Sym]
	return ok
}

// App represents an application of Fun to Arg.
type App struct {
	Fun Term
	Arg Term
}

// String prints the canonical form: application is left-associative, so the
// function side is never bracketed and the argument side is bracketed only
// when it is itself an application.
func (a App) String() string {
	var b strings.Builder
	writeTerm(&b, a)
	return b.String()
}

func (a App) Size() int { return a.Fun.Size() + a.Arg.Size() }

func writeTerm(b *strings.Builder, t Term) {
	switch v := t.(type) {
	case Leaf:
		b.WriteByte(v.Sym)
	case App:
		writeTerm(b, v.Fun)
		if _, ok := v.Arg.(App); ok {
			b.WriteByte('(')
			writeTerm(b, v.Arg)
			b.WriteByte(')')
		} else {
			writeTerm(b, v.Arg)
		}
	default:
		panic("comb: unknown term type")
	}
}

// Bracketed prints a term with every non-leaf child wrapped in parentheses,
// so "S(Kx)y" prints as "(S(Kx))y". It parses back to the same term as String.
func Bracketed(t Term) string {
	var b strings.Builder
	writeBracketed(&b, t)
	return b.String()
}

func writeBracketed(b *strings.Builder, t Term) {
	switch v := t.(type) {
	case Leaf:
		b.WriteByte(v.Sym)
	case App:
		for _, child := range [2]Term{v.Fun, v.Arg} {
			if _, ok := child.(App); ok {
				b.WriteByte('(')
				writeBracketed(b, child)
				b.WriteByte(')')
			} else {
				writeBracketed(b, child)
			}
		}
	default:
		panic("comb: unknown term type")
	}
}

// Apply folds args onto fun left-associatively: Apply(f, x, y) is (f x) y.
func Apply(fun Term, args ...Term) Term {
	for _, a := range args {
		fun = App{Fun: fun, Arg: a}
	}
	return fun
}

// Spine unwinds the left spine of t, returning its head and the arguments
// applied to it in order.
func Spine(t Term) (Term, []Term) {
	var args []Term
	for {
		app, ok := t.(App)
		if !ok {
			break
		}
		args = append(args, app.Arg)
		t = app.Fun
	}
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	return t, args
}
