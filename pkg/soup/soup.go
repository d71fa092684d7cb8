// Package soup evolves a population of combinator terms under random
// reduction, fission and fusion, topping up any combinator that a step
// used up so the population never runs dry.
package soup

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/vic/combsoup/pkg/comb"
)

var soupDebug = os.Getenv("COMB_DEBUG") != ""

// Stats counts what the soup has done since it was created.
type Stats struct {
	Steps       uint64
	Reductions  uint64
	Fissions    uint64
	Splits      uint64 // fissions that actually produced two terms
	Fusions     uint64
	PassThrough uint64
	Injected    uint64
}

// Soup is an ordered multiset of terms. It is not safe for concurrent use;
// Immortals fans out internally but only reads the population.
type Soup struct {
	cfg     Config
	terms   []comb.Term
	rng     *rand.Rand
	reducer *comb.Reducer
	fission Fissioner
	stats   Stats
}

// New builds a soup of cfg.Population atoms drawn uniformly from cfg.Alphabet.
func New(cfg Config) (*Soup, error) {
	s, err := newSoup(cfg)
	if err != nil {
		return nil, err
	}
	s.terms = make([]comb.Term, 0, cfg.Population)
	for i := 0; i < cfg.Population; i++ {
		s.terms = append(s.terms, comb.Leaf{Sym: cfg.Alphabet[s.rng.Intn(len(cfg.Alphabet))]})
	}
	return s, nil
}

// NewWithTerms builds a soup holding the given terms instead of random atoms.
func NewWithTerms(cfg Config, terms []comb.Term) (*Soup, error) {
	s, err := newSoup(cfg)
	if err != nil {
		return nil, err
	}
	s.terms = append([]comb.Term(nil), terms...)
	return s, nil
}

func newSoup(cfg Config) (*Soup, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Soup{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		reducer: comb.NewReducer(),
		fission: newFissioner(cfg),
	}, nil
}

func (s *Soup) Config() Config { return s.cfg }

func (s *Soup) Len() int { return len(s.terms) }

// Terms returns a copy of the current population.
func (s *Soup) Terms() []comb.Term {
	return append([]comb.Term(nil), s.terms...)
}

func (s *Soup) Stats() Stats { return s.stats }

// RuleStats reports the rewrites performed by reduction actions.
func (s *Soup) RuleStats() comb.Stats { return s.reducer.GetStats() }

func (s *Soup) String() string {
	parts := make([]string, len(s.terms))
	for i, t := range s.terms {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Count returns how many times each symbol occurs across all terms.
// Parentheses are not counted.
func (s *Soup) Count() map[byte]int {
	return count(s.terms)
}

func count(terms []comb.Term) map[byte]int {
	counts := make(map[byte]int)
	for _, t := range terms {
		str := t.String()
		for i := 0; i < len(str); i++ {
			if c := str[i]; c != '(' && c != ')' {
				counts[c]++
			}
		}
	}
	return counts
}

// Step runs one round of the simulation. The population is shuffled and
// drained; each term reacts with probability PAction, picking reduction,
// fission or fusion by their shares. Afterwards every alphabet symbol that
// ended up below its starting count is replenished with fresh atoms.
// Surpluses, such as copies made by S and W, are kept.
func (s *Soup) Step() {
	s.rng.Shuffle(len(s.terms), func(i, j int) {
		s.terms[i], s.terms[j] = s.terms[j], s.terms[i]
	})
	pre := count(s.terms)

	pool := s.terms
	pop := func() comb.Term {
		t := pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		return t
	}

	next := make([]comb.Term, 0, len(s.terms))
	for len(pool) > 0 {
		term := pop()
		if s.rng.Float64() >= s.cfg.PAction {
			next = append(next, term)
			s.stats.PassThrough++
			continue
		}

		p := s.rng.Float64()
		switch {
		case p < s.cfg.PReduce:
			next = append(next, s.reducer.Reduce(term))
			s.stats.Reductions++
		case p < s.cfg.PReduce+s.cfg.PFission:
			parts := s.fission.Split(term, s.rng)
			next = append(next, parts...)
			s.stats.Fissions++
			if len(parts) == 2 {
				s.stats.Splits++
			}
		default:
			if len(pool) == 0 {
				next = append(next, term)
				s.stats.PassThrough++
				continue
			}
			next = append(next, Fuse(term, pop()))
			s.stats.Fusions++
		}
	}
	s.terms = next

	post := count(s.terms)
	injected := 0
	seen := make(map[byte]bool)
	for i := 0; i < len(s.cfg.Alphabet); i++ {
		c := s.cfg.Alphabet[i]
		if seen[c] {
			continue
		}
		seen[c] = true
		for deficit := pre[c] - post[c]; deficit > 0; deficit-- {
			s.terms = append(s.terms, comb.Leaf{Sym: c})
			injected++
		}
	}
	s.stats.Injected += uint64(injected)
	s.stats.Steps++

	if soupDebug {
		fmt.Fprintf(os.Stderr, "soup: step=%d terms=%d injected=%d\n", s.stats.Steps, len(s.terms), injected)
	}
}

// Immortals returns the terms that do not reach a normal form within
// cfg.Cutoff rewrite steps, in soup order. Terms are checked in parallel by
// cfg.Workers goroutines.
func (s *Soup) Immortals() []comb.Term {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(s.terms) {
		workers = len(s.terms)
	}

	immortal := make([]bool, len(s.terms))
	jobs := make(chan int, len(s.terms))
	for i := range s.terms {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				_, ok := comb.BetaNormal(s.terms[i], s.cfg.Cutoff)
				immortal[i] = !ok
			}
		}()
	}
	wg.Wait()

	var out []comb.Term
	for i, t := range s.terms {
		if immortal[i] {
			out = append(out, t)
		}
	}
	return out
}
