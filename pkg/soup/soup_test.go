package soup

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/vic/combsoup/pkg/comb"
)

func terms(t *testing.T, texts ...string) []comb.Term {
	t.Helper()
	out := make([]comb.Term, len(texts))
	for i, s := range texts {
		term, err := comb.Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		out[i] = term
	}
	return out
}

func onlyConfig(reduce, fission, fusion float64) Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.PAction = 1
	cfg.PReduce = reduce
	cfg.PFission = fission
	cfg.PFusion = fusion
	return cfg
}

func sortedTexts(s *Soup) []string {
	var out []string
	for _, t := range s.Terms() {
		out = append(out, t.String())
	}
	sort.Strings(out)
	return out
}

func TestNewSoup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.Population = 50
	cfg.Alphabet = "BCKW"

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Len() != 50 {
		t.Fatalf("Len = %d, want 50", s.Len())
	}
	for _, term := range s.Terms() {
		leaf, ok := term.(comb.Leaf)
		if !ok || !strings.ContainsRune(cfg.Alphabet, rune(leaf.Sym)) {
			t.Errorf("initial term %v is not an alphabet atom", term)
		}
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PAction = 2
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected error for p_action = 2")
	}
	if _, err := NewWithTerms(cfg, nil); err == nil {
		t.Fatalf("expected error for p_action = 2")
	}
}

func TestStepDeterministicWithSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	a, _ := New(cfg)
	b, _ := New(cfg)
	for i := 0; i < 30; i++ {
		a.Step()
		b.Step()
	}
	if a.String() != b.String() {
		t.Fatalf("same seed diverged:\n%s\n%s", a, b)
	}
}

func TestStepConservesAlphabet(t *testing.T) {
	for _, alphabet := range []string{"SKI", "BCKW", "SKIBCW"} {
		cfg := DefaultConfig()
		cfg.Seed = 7
		cfg.Population = 60
		cfg.Alphabet = alphabet
		s, err := New(cfg)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		for i := 0; i < 100; i++ {
			pre := s.Count()
			s.Step()
			post := s.Count()
			for j := 0; j < len(alphabet); j++ {
				c := alphabet[j]
				if post[c] < pre[c] {
					t.Fatalf("%s step %d: count of %c fell from %d to %d", alphabet, i, c, pre[c], post[c])
				}
			}
		}
		t.Logf("%s after 100 steps: %d terms, stats %+v", alphabet, s.Len(), s.Stats())
	}
}

func TestStepWithoutActionsKeepsPopulation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 3
	cfg.PAction = 0
	s, err := NewWithTerms(cfg, terms(t, "SKI", "K(SI)", "x", "SII(SII)"))
	if err != nil {
		t.Fatalf("NewWithTerms: %v", err)
	}
	before := sortedTexts(s)
	s.Step()
	after := sortedTexts(s)
	if strings.Join(before, " ") != strings.Join(after, " ") {
		t.Fatalf("population changed: %v -> %v", before, after)
	}
	if st := s.Stats(); st.PassThrough != 4 || st.Steps != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestStepReductionInjectsDeficit(t *testing.T) {
	s, err := NewWithTerms(onlyConfig(1, 0, 0), terms(t, "Ix"))
	if err != nil {
		t.Fatalf("NewWithTerms: %v", err)
	}
	s.Step()
	if got := s.String(); got != "[x, I]" {
		t.Fatalf("soup = %s, want [x, I]", got)
	}
	if st := s.Stats(); st.Reductions != 1 || st.Injected != 1 {
		t.Errorf("stats = %+v", st)
	}
	if rs := s.RuleStats(); rs.I != 1 {
		t.Errorf("rule stats = %+v", rs)
	}
}

func TestStepKeepsSurplus(t *testing.T) {
	cfg := onlyConfig(1, 0, 0)
	cfg.Alphabet = "Sz"
	s, err := NewWithTerms(cfg, terms(t, "Sxyz"))
	if err != nil {
		t.Fatalf("NewWithTerms: %v", err)
	}
	s.Step()
	if got := s.String(); got != "[xz(yz), S]" {
		t.Fatalf("soup = %s, want [xz(yz), S]", got)
	}
	if n := s.Count()['z']; n != 2 {
		t.Errorf("z count = %d, want 2", n)
	}
}

// fusedOrder replays the shuffle Step starts with: the last term after the
// shuffle is processed first and fuses with the one before it.
func fusedOrder(seed int64, texts []string) (current, other string) {
	shuffled := append([]string(nil), texts...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	n := len(shuffled)
	return shuffled[n-1], shuffled[n-2]
}

func TestStepFusion(t *testing.T) {
	texts := []string{"ab", "c(de)"}
	cfg := onlyConfig(0, 0, 1)
	s, err := NewWithTerms(cfg, terms(t, texts...))
	if err != nil {
		t.Fatalf("NewWithTerms: %v", err)
	}
	s.Step()
	if s.Len() != 1 {
		t.Fatalf("soup = %s, want one fused term", s)
	}
	current, other := fusedOrder(cfg.Seed, texts)
	want := comb.MustParse(other + current).String()
	if got := s.Terms()[0].String(); got != want {
		t.Errorf("fused term = %s, want %s (other %s applied to current %s)", got, want, other, current)
	}

	// The last term of an odd population has no partner and is kept.
	s, _ = NewWithTerms(onlyConfig(0, 0, 1), terms(t, "a", "b", "c"))
	s.Step()
	if s.Len() != 2 {
		t.Fatalf("soup = %s, want two terms", s)
	}
	if st := s.Stats(); st.Fusions != 1 || st.PassThrough != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestStepFission(t *testing.T) {
	s, err := NewWithTerms(onlyConfig(0, 1, 0), terms(t, "abc"))
	if err != nil {
		t.Fatalf("NewWithTerms: %v", err)
	}
	s.Step()
	if got := strings.Join(sortedTexts(s), " "); got != "a bc" {
		t.Fatalf("soup after fission = %s, want a and bc", s)
	}
	if st := s.Stats(); st.Fissions != 1 || st.Splits != 1 || st.Injected != 0 {
		t.Errorf("stats = %+v", st)
	}

	// Two-letter terms only split under the boundary rule.
	s, _ = NewWithTerms(onlyConfig(0, 1, 0), terms(t, "SK"))
	s.Step()
	if got := s.String(); got != "[SK]" {
		t.Errorf("letters rule: soup = %s, want [SK]", got)
	}
	cfg := onlyConfig(0, 1, 0)
	cfg.SplitAt = SplitAtBoundaries
	s, _ = NewWithTerms(cfg, terms(t, "SK"))
	s.Step()
	if got := s.String(); got != "[S, K]" {
		t.Errorf("boundaries rule: soup = %s, want [S, K]", got)
	}
}

func TestStepProbabilisticFission(t *testing.T) {
	cfg := onlyConfig(0, 1, 0)
	cfg.Fission = FissionProbabilistic
	cfg.PBreak = 1
	s, err := NewWithTerms(cfg, terms(t, "SKI(SK)K"))
	if err != nil {
		t.Fatalf("NewWithTerms: %v", err)
	}
	s.Step()
	if got := s.String(); got != "[S, KI(SK)K]" {
		t.Fatalf("soup = %s, want [S, KI(SK)K]", got)
	}
}

func TestImmortals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cutoff = 50
	s, err := NewWithTerms(cfg, terms(t, "SII(SII)", "SKKx", "x", "WI(WI)"))
	if err != nil {
		t.Fatalf("NewWithTerms: %v", err)
	}
	var got []string
	for _, term := range s.Immortals() {
		got = append(got, term.String())
	}
	if strings.Join(got, " ") != "SII(SII) WI(WI)" {
		t.Fatalf("immortals = %v", got)
	}
}

func TestImmortalsParallelMatchesSerial(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5
	cfg.Population = 80
	cfg.Cutoff = 200
	base, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 40; i++ {
		base.Step()
	}
	population := base.Terms()
	population = append(population, terms(t, "SII(SII)", "WI(WI)")...)

	var want []string
	for _, term := range population {
		if _, ok := comb.BetaNormal(term, cfg.Cutoff); !ok {
			want = append(want, term.String())
		}
	}

	for _, workers := range []int{0, 1, 3, 16} {
		c := cfg
		c.Workers = workers
		s, err := NewWithTerms(c, population)
		if err != nil {
			t.Fatalf("NewWithTerms: %v", err)
		}
		var got []string
		for _, term := range s.Immortals() {
			got = append(got, term.String())
		}
		if strings.Join(got, " ") != strings.Join(want, " ") {
			t.Errorf("workers=%d: immortals = %v, want %v", workers, got, want)
		}
	}
	t.Logf("%d of %d terms immortal", len(want), len(population))

	empty, _ := NewWithTerms(cfg, nil)
	if got := empty.Immortals(); len(got) != 0 {
		t.Errorf("empty soup immortals = %v", got)
	}
}

func TestCountIgnoresParens(t *testing.T) {
	s, _ := NewWithTerms(DefaultConfig(), terms(t, "S(KI)", "SS"))
	c := s.Count()
	if c['S'] != 3 || c['K'] != 1 || c['I'] != 1 || c['('] != 0 || len(c) != 3 {
		t.Fatalf("count = %v", c)
	}
}
