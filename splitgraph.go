// Package splitgraph implements the split graph engine's public contract:
// construct an Engine with Init, feed it DNA with AddKmers, fold the
// index into a ranked split list with AddWeights, then pull a compatible
// subset (and, for the tree-producing filters, its Newick serialisation)
// with FilterStrict, FilterWeakly, or FilterNTree.
//
// This package and everything it imports directly (internal/kmer,
// internal/colorset, internal/index, internal/splits, internal/compat,
// internal/treebuild, internal/filter, internal/reducer, internal/report)
// never imports
// internal/seqio or cmd/splitgraph: FASTA/FASTQ parsing and CLI argument
// handling are collaborators supplied at the edges.
package splitgraph

import (
	"fmt"
	"log"

	"splitgraph/internal/colorset"
	"splitgraph/internal/filter"
	"splitgraph/internal/index"
	"splitgraph/internal/reducer"
	"splitgraph/internal/report"
	"splitgraph/internal/splits"
)

// Engine owns the process-wide state of a single run: kmer_table/
// color_table (via internal/index.Index), the split list, and the
// capacity/color-count scalars fixed at Init.
type Engine struct {
	ix   *index.Index
	list *splits.List
	n    int
}

// Init builds an empty engine for k-mers of length k over n colors, with
// a split list of capacity t; call it before any AddKmers. A non-positive
// t means unbounded.
func Init(k, n, t int) (*Engine, error) {
	ix, err := index.New(k, n)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	return &Engine{ix: ix, list: splits.NewList(t), n: n}, nil
}

// N returns the configured number of colors.
func (e *Engine) N() int { return e.n }

// AddKmers scans seq's k-mers into the index under color, canonicalising
// each k-mer to min(K, reverse_complement(K)) when canonicalise is true.
// IUPAC ambiguity codes are expanded with no multiplicity cap beyond 1
// (i.e. disabled): use AddKmersIUPAC for bounded expansion.
func (e *Engine) AddKmers(seq []byte, color int, canonicalise bool) error {
	return e.ix.AddKmers(seq, color, canonicalise, 1)
}

// AddKmersIUPAC is AddKmers with IUPAC ambiguity expansion bounded by
// maxIUPAC, a multiplicative cap on how many concrete k-mers one window
// of ambiguous bases may expand to.
func (e *Engine) AddKmersIUPAC(seq []byte, color int, canonicalise bool, maxIUPAC uint) error {
	return e.ix.AddKmers(seq, color, canonicalise, maxIUPAC)
}

// AddKmersParallel shards a batch of (sequence, color) records across
// nprocs goroutines.
func (e *Engine) AddKmersParallel(records []index.Record, canonicalise bool, maxIUPAC uint, nprocs int) error {
	return e.ix.AddKmersParallel(records, canonicalise, maxIUPAC, nprocs)
}

// AddWeights folds the index into the split list using reduce. Ingestion
// must be complete first; after this call the index is drained and every
// further filter call reads the same populated split list.
func (e *Engine) AddWeights(reduce reducer.Func, verbose bool) {
	e.ix.AddWeights(reduce, e.list, verbose)
}

// Universe returns the full color set {0, ..., N-1}, the root taxa of any
// tree this engine's filters materialise.
func (e *Engine) Universe() (colorset.Set, error) {
	cf, err := colorset.NewFactory(e.n)
	if err != nil {
		return nil, err
	}
	return cf.Empty().Complement(), nil
}

// WriteWeightSpectrum writes a rank-vs-weight diagnostic plot of the
// split list accumulated so far to "<prefix>.png"; a plot showing the
// weight spectrum trailing off near the list's capacity is a visible
// sign that raising the split-list capacity might recover more splits.
// Must be called after AddWeights.
func (e *Engine) WriteWeightSpectrum(prefix string) error {
	return report.WeightSpectrum(e.list, prefix)
}

// FilterStrict runs the strict greedy filter over the split list and
// materialises the accepted splits into a Newick tree. names maps a
// color index to its display name; pass nil for integer-indexed leaves.
func (e *Engine) FilterStrict(names map[int]string, verbose bool) ([]filter.Result, string, error) {
	if verbose {
		log.Printf("filter_strict: scanning %d candidate splits", e.list.Len())
	}
	accepted := filter.Strict(e.list)
	universe, err := e.Universe()
	if err != nil {
		return nil, "", err
	}
	nwk, err := filter.Newick(universe, accepted, names)
	if err != nil {
		return nil, "", err
	}
	if verbose {
		log.Printf("filter_strict: accepted %d of %d splits", len(accepted), e.list.Len())
	}
	return accepted, nwk, nil
}

// FilterWeakly runs the weak-compatibility greedy filter. No Newick is
// offered for a weakly compatible split system: it is not in general
// realisable as a single tree.
func (e *Engine) FilterWeakly(verbose bool) []filter.Result {
	if verbose {
		log.Printf("filter_weakly: scanning %d candidate splits", e.list.Len())
	}
	accepted := filter.Weakly(e.list)
	if verbose {
		log.Printf("filter_weakly: accepted %d of %d splits", len(accepted), e.list.Len())
	}
	return accepted
}

// FilterNTree runs the n-disjoint-trees greedy filter and materialises
// each tree's Newick, separated by newlines in filter order.
func (e *Engine) FilterNTree(n int, names map[int]string, verbose bool) ([][]filter.Result, string, error) {
	if verbose {
		log.Printf("filter_n_tree: scanning %d candidate splits across %d trees", e.list.Len(), n)
	}
	trees := filter.NTree(e.list, n)
	universe, err := e.Universe()
	if err != nil {
		return nil, "", err
	}
	nwk, err := filter.NTreeNewick(universe, trees, names)
	if err != nil {
		return nil, "", err
	}
	if verbose {
		total := 0
		for _, t := range trees {
			total += len(t)
		}
		log.Printf("filter_n_tree: accepted %d of %d splits across %d trees", total, e.list.Len(), n)
	}
	return trees, nwk, nil
}
