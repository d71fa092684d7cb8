package soup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vic/combsoup/pkg/comb"
)

// Fission policy names accepted in Config.Fission.
const (
	FissionSingle        = "single"
	FissionProbabilistic = "probabilistic"
)

// Split candidate rules accepted in Config.SplitAt.
const (
	SplitAtLetters    = "letters"    // SplitPoints
	SplitAtBoundaries = "boundaries" // BoundarySplitPoints
)

// Config controls a soup's population and reaction probabilities.
type Config struct {
	Population int    `yaml:"population"`
	Alphabet   string `yaml:"alphabet"`
	Seed       int64  `yaml:"seed"` // 0 seeds from the clock

	PAction  float64 `yaml:"p_action"`  // chance a term reacts at all
	PReduce  float64 `yaml:"p_reduce"`  // share of reactions that reduce
	PFission float64 `yaml:"p_fission"` // share of reactions that split
	PFusion  float64 `yaml:"p_fusion"`  // share of reactions that fuse
	PBreak   float64 `yaml:"p_break"`   // per-candidate split chance for the probabilistic policy

	Fission string `yaml:"fission"`
	SplitAt string `yaml:"split_at"`
	Cutoff  int    `yaml:"cutoff"`  // step budget for Immortals
	Workers int    `yaml:"workers"` // Immortals parallelism, 0 means one per CPU
}

func DefaultConfig() Config {
	return Config{
		Population: 100,
		Alphabet:   "SKI",
		PAction:    0.4,
		PReduce:    0.75,
		PFission:   0.125,
		PFusion:    0.125,
		PBreak:     0.25,
		Fission:    FissionSingle,
		SplitAt:    SplitAtLetters,
		Cutoff:     comb.DefaultCutoff,
	}
}

func (c Config) Validate() error {
	if c.Population < 0 {
		return fmt.Errorf("soup: negative population %d", c.Population)
	}
	if c.Alphabet == "" {
		return fmt.Errorf("soup: empty alphabet")
	}
	for i := 0; i < len(c.Alphabet); i++ {
		if _, err := comb.Parse(c.Alphabet[i : i+1]); err != nil {
			return fmt.Errorf("soup: alphabet %q: %w", c.Alphabet, err)
		}
	}
	probs := []struct {
		name string
		p    float64
	}{
		{"p_action", c.PAction},
		{"p_reduce", c.PReduce},
		{"p_fission", c.PFission},
		{"p_fusion", c.PFusion},
		{"p_break", c.PBreak},
	}
	for _, pr := range probs {
		if pr.p < 0 || pr.p > 1 || math.IsNaN(pr.p) {
			return fmt.Errorf("soup: %s = %v is not a probability", pr.name, pr.p)
		}
	}
	if sum := c.PReduce + c.PFission + c.PFusion; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("soup: p_reduce + p_fission + p_fusion = %v, want 1", sum)
	}
	if c.Fission != FissionSingle && c.Fission != FissionProbabilistic {
		return fmt.Errorf("soup: unknown fission policy %q", c.Fission)
	}
	if c.SplitAt != SplitAtLetters && c.SplitAt != SplitAtBoundaries {
		return fmt.Errorf("soup: unknown split rule %q", c.SplitAt)
	}
	if c.Workers < 0 {
		return fmt.Errorf("soup: negative workers %d", c.Workers)
	}
	if c.Cutoff <= 0 {
		return fmt.Errorf("soup: cutoff must be positive, got %d", c.Cutoff)
	}
	return nil
}

// LoadConfig reads a YAML config. Keys missing from the file keep their
// DefaultConfig values; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, fmt.Errorf("soup config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return cfg, fmt.Errorf("soup config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("soup config: parse %s: %w", abs, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("soup config: %s: %w", abs, err)
	}
	return cfg, nil
}

// WriteConfig serialises cfg as YAML.
func WriteConfig(cfg Config, path string) error {
	if path == "" {
		return fmt.Errorf("soup config: missing path")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("soup config: marshal %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("soup config: encoder close: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("soup config: write %s: %w", path, err)
	}
	return nil
}
