package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/vic/combsoup/pkg/comb"
)

const (
	historyFile = ".comb_history"
	prompt      = "comb> "
	usage       = `usage:
  comb reduce TERM             rewrite the innermost redex once
  comb beta [-trace N] TERM    print every step until normal form
  comb redexes TERM            list redexes in rewrite order
  comb                         interactive mode`
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(repl())
	}

	cmd := os.Args[1]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	traceN := 0
	if cmd == "beta" {
		fs.IntVar(&traceN, "trace", 0, "record and print the first N rewrites")
	}
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	term, err := comb.Parse(strings.TrimSpace(fs.Arg(0)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case "reduce":
		fmt.Println(term)
		fmt.Printf("  -> %s\n", comb.Reduce(term))
	case "beta":
		if err := beta(os.Stdout, os.Stderr, term, comb.DefaultCutoff, traceN); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	case "redexes":
		for _, rx := range comb.Redexes(term) {
			path := rx.Path
			if path == "" {
				path = "."
			}
			fmt.Printf("%-8s %c  %s  consumes=%v ejects=%v\n", path, rx.Combinator, rx.Term, rx.Consumed, rx.Ejected)
		}
	default:
		fs.Usage()
		os.Exit(2)
	}
}

// beta prints term and each rewrite of it until a fixpoint. Rule statistics
// and, when traceN > 0, the first traceN recorded rewrites go to errw.
func beta(w, errw io.Writer, term comb.Term, cutoff, traceN int) error {
	r := comb.NewReducer()
	if traceN > 0 {
		r.EnableTrace(traceN)
	}
	fmt.Fprintln(w, term)

	start := time.Now()
	cur := term
	converged := false
	for i := 0; i < cutoff; i++ {
		next := r.Reduce(cur)
		if comb.Equal(next, cur) {
			converged = true
			break
		}
		fmt.Fprintf(w, "  -> %s\n", next)
		cur = next
	}
	elapsed := time.Since(start)

	stats := r.GetStats()
	fmt.Fprintf(errw, "\nStats:\n")
	fmt.Fprintf(errw, "Time: %v\n", elapsed)
	fmt.Fprintf(errw, "Total Reductions: %d\n", stats.TotalReductions)
	fmt.Fprintf(errw, "  S: %6d  K: %6d  I: %6d\n", stats.S, stats.K, stats.I)
	fmt.Fprintf(errw, "  B: %6d  C: %6d  W: %6d\n", stats.B, stats.C, stats.W)

	if events := r.TraceSnapshot(); len(events) > 0 {
		fmt.Fprintf(errw, "\nTrace:\n")
		for _, ev := range events {
			fmt.Fprintf(errw, "%4d %s  %s -> %s\n", ev.Step, ev.Rule, ev.Redex, ev.Result)
		}
	}

	if !converged {
		return fmt.Errorf("beta %s: %w (%d steps)", term, comb.ErrCutoffExceeded, cutoff)
	}
	return nil
}

func repl() int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// Without a home directory the session runs without history.
	if histPath, ok := historyPath(); ok {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Println("Combinator REPL. Enter a term to normalise it, Ctrl+D exits.")
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "read error: %v\n", err)
			return 1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		term, err := comb.Parse(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		nf, err := comb.Normalize(term, comb.DefaultCutoff)
		if err != nil {
			fmt.Printf("%s: %v\n", term, err)
			continue
		}
		fmt.Println(nf)
	}
}

func historyPath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return filepath.Join(home, historyFile), true
}
