package main

import (
	"fmt"
	"go/format"
	"os"
	"path/filepath"

	"github.com/vic/combsoup/pkg/comb"
)

type TestCase struct {
	Name   string
	Input  string
	Output string
}

const testTemplate = `package gentests

import (
	_ "embed"
	"testing"

	"github.com/vic/combsoup/cmd/gentests/helper"
)

//go:embed input.comb
var input string

//go:embed output.comb
var output string

func Test_%s_Reduction(t *testing.T) {
	gentests.CheckReduction(t, "%s", input, output)
}
`

func main() {
	tests := []TestCase{
		// Single rules
		{"001_i", "Ix", "x"},
		{"002_k", "Kxy", "x"},
		{"003_s", "Sxyz", "xz(yz)"},
		{"004_b", "Bxyz", "x(yz)"},
		{"005_c", "Cxyz", "xzy"},
		{"006_w", "Wxy", "xyy"},

		// Identities
		{"010_skk", "SKKx", "x"},
		{"011_sks", "SKSx", "x"},
		{"020_b_from_s", "S(KS)Kxyz", "x(yz)"},
		{"021_ck", "CKxy", "y"},

		// Inert and nested
		{"030_inert", "x(Ky)", "x(Ky)"},
		{"040_nested", "K(Ixy)z", "xy"},
	}

	baseDir := "cmd/gentests/generated"
	for _, tc := range tests {
		if err := generate(baseDir, tc); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", tc.Name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Generated %d tests\n", len(tests))
}

// generate writes the normalized input and output terms of tc and a gofmt'd
// test file that checks one against the other.
func generate(baseDir string, tc TestCase) error {
	inTerm, err := comb.Parse(tc.Input)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}
	outTerm, err := comb.Parse(tc.Output)
	if err != nil {
		return fmt.Errorf("parsing output: %w", err)
	}
	src, err := renderTest(tc.Name)
	if err != nil {
		return err
	}

	dir := filepath.Join(baseDir, tc.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	files := map[string][]byte{
		"input.comb":        []byte(inTerm.String()),
		"output.comb":       []byte(outTerm.String()),
		"reduction_test.go": src,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return err
		}
	}
	return nil
}

func renderTest(name string) ([]byte, error) {
	src, err := format.Source([]byte(fmt.Sprintf(testTemplate, name, name)))
	if err != nil {
		return nil, fmt.Errorf("formatting test for %s: %w", name, err)
	}
	return src, nil
}
