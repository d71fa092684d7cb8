package gentests

import (
	_ "embed"
	"math/rand"
	"testing"

	"github.com/vic/combsoup/pkg/comb"
)

//go:embed input.comb
var input string

//go:embed output.comb
var output string

// Test_103_confluence checks that contracting redexes in arbitrary order
// reaches the same normal form as the innermost strategy, for a term whose
// every reduction path terminates.
func Test_103_confluence(t *testing.T) {
	term, err := comb.Parse(input)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	expected, err := comb.Parse(output)
	if err != nil {
		t.Fatalf("Parse error for expected output: %v", err)
	}

	innermost, ok := comb.BetaNormal(term, comb.DefaultCutoff)
	if !ok {
		t.Fatalf("innermost strategy did not converge")
	}
	if !comb.Equal(innermost, expected) {
		t.Fatalf("innermost normal form = %s, want %s", innermost, expected)
	}

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		cur := term
		steps := 0
		for ; steps < 1000; steps++ {
			rs := comb.Redexes(cur)
			if len(rs) == 0 {
				break
			}
			cur = comb.Contract(cur, rs[rng.Intn(len(rs))])
		}
		if !comb.Equal(cur, expected) {
			t.Errorf("seed %d: random strategy reached %s after %d steps, want %s", seed, cur, steps, expected)
		}
	}
}
