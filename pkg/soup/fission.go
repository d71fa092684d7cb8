package soup

import (
	"math/rand"

	"github.com/vic/combsoup/pkg/comb"
)

// Fissioner splits a term into one or two terms.
type Fissioner interface {
	Split(t comb.Term, rng *rand.Rand) []comb.Term
}

// SplitPoints returns the offsets of the letters that sit outside every
// parenthesis, excluding the first and last character. Cutting before one
// of them leaves both halves balanced.
func SplitPoints(s string) []int {
	var points []int
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		default:
			if depth == 0 && i > 0 && i < len(s)-1 {
				points = append(points, i)
			}
		}
	}
	return points
}

// BoundarySplitPoints returns every offset 0 < i < len(s) at which all
// parentheses opened before i are closed. It is a superset of SplitPoints
// that also cuts in front of a group and before the last letter.
func BoundarySplitPoints(s string) []int {
	var points []int
	depth := 0
	for i := 0; i < len(s); i++ {
		if i > 0 && depth == 0 {
			points = append(points, i)
		}
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return points
}

// SingleSplit cuts at one split point chosen uniformly at random.
// Points defaults to SplitPoints.
type SingleSplit struct {
	Points func(string) []int
}

func (p SingleSplit) Split(t comb.Term, rng *rand.Rand) []comb.Term {
	s := t.String()
	points := pointsFunc(p.Points)(s)
	if len(points) == 0 {
		return []comb.Term{t}
	}
	return splitAt(s, points[rng.Intn(len(points))])
}

// ProbabilisticSplit walks the split points left to right and cuts at the
// first one whose coin flip lands under PBreak. Points defaults to
// SplitPoints.
type ProbabilisticSplit struct {
	PBreak float64
	Points func(string) []int
}

func (p ProbabilisticSplit) Split(t comb.Term, rng *rand.Rand) []comb.Term {
	s := t.String()
	for _, i := range pointsFunc(p.Points)(s) {
		if rng.Float64() < p.PBreak {
			return splitAt(s, i)
		}
	}
	return []comb.Term{t}
}

func pointsFunc(f func(string) []int) func(string) []int {
	if f == nil {
		return SplitPoints
	}
	return f
}

// splitAt reparses both halves. Split points sit at depth 0, so a parse
// failure here is a bug and panics.
func splitAt(s string, i int) []comb.Term {
	return []comb.Term{comb.MustParse(s[:i]), comb.MustParse(s[i:])}
}

// Fuse applies other to current: the result is other's text followed by
// current's text, reparsed as one term.
func Fuse(current, other comb.Term) comb.Term {
	return comb.MustParse(other.String() + current.String())
}

func newFissioner(cfg Config) Fissioner {
	points := SplitPoints
	if cfg.SplitAt == SplitAtBoundaries {
		points = BoundarySplitPoints
	}
	if cfg.Fission == FissionProbabilistic {
		return ProbabilisticSplit{PBreak: cfg.PBreak, Points: points}
	}
	return SingleSplit{Points: points}
}
