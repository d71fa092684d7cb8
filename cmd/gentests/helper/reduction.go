package gentests

import (
	"strings"
	"testing"
	"time"

	"github.com/vic/combsoup/pkg/comb"
)

func CheckReduction(t *testing.T, testName string, inputStr string, outputStr string) {
	expectedTerm, err := comb.Parse(strings.TrimSpace(outputStr))
	if err != nil {
		t.Fatalf("Parse error for expected output: %v", err)
	}

	term, err := comb.Parse(strings.TrimSpace(inputStr))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	r := comb.NewReducer()
	start := time.Now()
	actualTerm, ok := r.BetaNormal(term, comb.DefaultCutoff)
	elapsed := time.Since(start)
	if !ok {
		t.Fatalf("%s: no normal form within %d steps", testName, comb.DefaultCutoff)
	}

	if !comb.Equal(actualTerm, expectedTerm) {
		t.Errorf("Mismatch in %s:\nInput: %s\nExpected: %s\nActual:   %s", testName, inputStr, expectedTerm, actualTerm)
	}

	stats := r.GetStats()
	t.Logf("%s: %d reductions in %v", testName, stats.TotalReductions, elapsed)
}
