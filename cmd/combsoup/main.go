package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vic/combsoup/pkg/soup"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML config file")
		writeConfig = flag.String("write-config", "", "write the effective config to this file and exit")
		steps       = flag.Int("steps", 1000, "number of steps to run")
		every       = flag.Int("every", 100, "print the soup every N steps (0 disables)")
		immortals   = flag.Bool("immortals", false, "print immortal terms with each snapshot")
		population  = flag.Int("population", 0, "override the population size")
		alphabet    = flag.String("alphabet", "", "override the alphabet")
		seed        = flag.Int64("seed", 0, "override the random seed")
		splitAt     = flag.String("split-at", "", "override the fission split rule (letters or boundaries)")
		workers     = flag.Int("workers", 0, "override the immortal check workers")
	)
	flag.Parse()

	cfg := soup.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = soup.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *population > 0 {
		cfg.Population = *population
	}
	if *alphabet != "" {
		cfg.Alphabet = *alphabet
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *splitAt != "" {
		cfg.SplitAt = *splitAt
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	if *writeConfig != "" {
		if err := soup.WriteConfig(cfg, *writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	s, err := soup.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	for i := 0; i < *steps; i++ {
		s.Step()
		if *every > 0 && i%*every == 0 {
			fmt.Printf("STEP %d: %s\n", i, s)
			if *immortals {
				fmt.Printf("  immortals: %v\n", s.Immortals())
			}
		}
	}
	elapsed := time.Since(start)

	stats := s.Stats()
	rules := s.RuleStats()
	fmt.Fprintf(os.Stderr, "\nStats:\n")
	fmt.Fprintf(os.Stderr, "Time: %v\n", elapsed)
	fmt.Fprintf(os.Stderr, "Steps: %d, final population: %d\n", stats.Steps, s.Len())
	fmt.Fprintf(os.Stderr, "  Reductions:   %8d\n", stats.Reductions)
	fmt.Fprintf(os.Stderr, "  Fissions:     %8d (%d split)\n", stats.Fissions, stats.Splits)
	fmt.Fprintf(os.Stderr, "  Fusions:      %8d\n", stats.Fusions)
	fmt.Fprintf(os.Stderr, "  Pass-through: %8d\n", stats.PassThrough)
	fmt.Fprintf(os.Stderr, "  Injected:     %8d\n", stats.Injected)
	fmt.Fprintf(os.Stderr, "\nRewrites: %d\n", rules.TotalReductions)
	fmt.Fprintf(os.Stderr, "  S: %6d  K: %6d  I: %6d\n", rules.S, rules.K, rules.I)
	fmt.Fprintf(os.Stderr, "  B: %6d  C: %6d  W: %6d\n", rules.B, rules.C, rules.W)
}
