// Package filter implements the three greedy compatible-subset filters
// by walking a weight-ordered splits.List and testing each candidate
// against internal/compat's predicates, materialising internal/treebuild
// trees for the strict and n-tree variants.
package filter

import (
	"fmt"

	"splitgraph/internal/colorset"
	"splitgraph/internal/compat"
	"splitgraph/internal/splits"
	"splitgraph/internal/treebuild"
)

// Result is one accepted split, kept around after filtering for
// diagnostics and for feeding the Newick emitters.
type Result struct {
	Weight float64
	Color  colorset.Set
}

// Strict greedily accepts splits in descending weight order, keeping a
// candidate iff it is strictly compatible with everything accepted so
// far. Result order is acceptance order, the only order
// treebuild.Tree.Refine may assume.
func Strict(list *splits.List) []Result {
	var accepted []colorset.Set
	var out []Result
	for _, s := range list.Splits() {
		if compat.Strict(s.Color, accepted) {
			accepted = append(accepted, s.Color)
			out = append(out, Result{Weight: s.Weight, Color: s.Color})
		}
	}
	return out
}

// Weakly greedily accepts splits in descending weight order, keeping a
// candidate iff no two already-accepted splits together with it form a
// forbidden triple. The result is a split system, not generally
// realisable as a single tree; no Newick emitter is offered for it.
func Weakly(list *splits.List) []Result {
	var accepted []colorset.Set
	var out []Result
	for _, s := range list.Splits() {
		if compat.Weakly(s.Color, accepted) {
			accepted = append(accepted, s.Color)
			out = append(out, Result{Weight: s.Weight, Color: s.Color})
		}
	}
	return out
}

// NTree maintains n disjoint accepted lists; a candidate joins the
// first list it is strictly compatible with, or is discarded if none
// admit it.
func NTree(list *splits.List, n int) [][]Result {
	trees := make([][]colorset.Set, n)
	out := make([][]Result, n)
	for _, s := range list.Splits() {
		for i := 0; i < n; i++ {
			if compat.Strict(s.Color, trees[i]) {
				trees[i] = append(trees[i], s.Color)
				out[i] = append(out[i], Result{Weight: s.Weight, Color: s.Color})
				break
			}
		}
	}
	return out
}

// Newick materialises accepted (in acceptance order, as returned by
// Strict or one tree's results from NTree) into a refinement tree
// rooted at universe and serialises it.
func Newick(universe colorset.Set, accepted []Result, names map[int]string) (string, error) {
	tree := treebuild.New(universe)
	for _, r := range accepted {
		if err := tree.Refine(r.Color, r.Weight); err != nil {
			return "", fmt.Errorf("materialising tree: %w", err)
		}
	}
	return tree.Newick(names), nil
}

// NTreeNewick renders each of NTree's n result lists to Newick,
// concatenated by newlines in filter order.
func NTreeNewick(universe colorset.Set, trees [][]Result, names map[int]string) (string, error) {
	out := ""
	for i, accepted := range trees {
		nwk, err := Newick(universe, accepted, names)
		if err != nil {
			return "", fmt.Errorf("tree %d: %w", i, err)
		}
		if i > 0 {
			out += "\n"
		}
		out += nwk
	}
	return out, nil
}
