// Package treeio round-trips a Newick string emitted by
// internal/treebuild through gotree's parser to check it parses as valid
// Newick and describes the expected tip set.
package treeio

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/evolbioinfo/gotree/tree"
)

// ErrTipMismatch is returned when a round-tripped tree's tip names don't
// match the expected set exactly.
var ErrTipMismatch = fmt.Errorf("round-tripped tree has an unexpected tip set")

// Parse parses a Newick string with gotree.
func Parse(nwk string) (*tree.Tree, error) {
	tre, err := newick.NewParser(bytes.NewReader([]byte(nwk))).Parse()
	if err != nil {
		return nil, fmt.Errorf("parsing newick: %w", err)
	}
	return tre, nil
}

// TipNames returns a tree's tip names, sorted for stable comparison.
func TipNames(tre *tree.Tree) []string {
	tips := tre.Tips()
	names := make([]string, len(tips))
	for i, t := range tips {
		names[i] = t.Name()
	}
	sort.Strings(names)
	return names
}

// Validate parses nwk and checks its tip names exactly match want: the
// emitted Newick must parse back to a tree whose tip set equals the
// input color universe.
func Validate(nwk string, want []string) error {
	tre, err := Parse(nwk)
	if err != nil {
		return err
	}
	got := TipNames(tre)
	wantSorted := append([]string(nil), want...)
	sort.Strings(wantSorted)
	if len(got) != len(wantSorted) {
		return fmt.Errorf("%w: got %d tips, want %d", ErrTipMismatch, len(got), len(wantSorted))
	}
	for i := range got {
		if got[i] != wantSorted[i] {
			return fmt.Errorf("%w: got %v, want %v", ErrTipMismatch, got, wantSorted)
		}
	}
	return nil
}
