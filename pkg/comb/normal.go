package comb

import (
	"errors"
	"hash/fnv"
)

// DefaultCutoff bounds the number of rewrite steps BetaNormal attempts.
const DefaultCutoff = 10000

// ErrCutoffExceeded is returned by Normalize when no fixpoint was reached
// within the step budget. It does not prove the term diverges.
var ErrCutoffExceeded = errors.New("comb: cutoff exceeded before normal form")

// Equal reports whether two terms print identically.
func Equal(a, b Term) bool {
	return a.String() == b.String()
}

// Hash returns the FNV-1a hash of the canonical form of t.
func Hash(t Term) uint64 {
	h := fnv.New64a()
	h.Write([]byte(t.String()))
	return h.Sum64()
}

// IsBetaNormal reports whether t has no redex.
func IsBetaNormal(t Term) bool {
	return Equal(Reduce(t), t)
}

// BetaNormal reduces t until two consecutive terms print identically.
// If cutoff steps pass without a fixpoint it returns (nil, false).
func (r *Reducer) BetaNormal(t Term, cutoff int) (Term, bool) {
	cur := t
	curStr := cur.String()
	for i := 0; i < cutoff; i++ {
		next := r.Reduce(cur)
		nextStr := next.String()
		if nextStr == curStr {
			return next, true
		}
		cur, curStr = next, nextStr
	}
	return nil, false
}

func BetaNormal(t Term, cutoff int) (Term, bool) {
	var r *Reducer
	return r.BetaNormal(t, cutoff)
}

// Normalize is BetaNormal with the failure reported as ErrCutoffExceeded.
func Normalize(t Term, cutoff int) (Term, error) {
	nf, ok := BetaNormal(t, cutoff)
	if !ok {
		return nil, ErrCutoffExceeded
	}
	return nf, nil
}
