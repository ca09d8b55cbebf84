// Package index implements the two hash tables at the core of the
// engine: kmer_table (k-mer -> color set) and color_table (color set ->
// occurrences, total), plus the add_kmers and add_weights passes over
// them.
package index

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"

	"golang.org/x/sync/errgroup"

	"splitgraph/internal/colorset"
	"splitgraph/internal/kmer"
	"splitgraph/internal/reducer"
	"splitgraph/internal/splits"
)

// ErrColorOutOfRange is returned when add_kmers is given a color index
// that does not fit the universe size N the index was built for.
var ErrColorOutOfRange = fmt.Errorf("color index out of range")

// kmerEntry is one kmer_table row: the colors the k-mer was seen in, and
// the multiplicity contribution it carries into color_table.total. The
// contribution is fixed the first time the k-mer is inserted and left
// untouched on every later insertion, concrete or ambiguous, of the same
// k-mer: re-adding a (k-mer, color) pair is idempotent, and extending
// that idempotency to the multiplicity keeps a k-mer's weight a property
// of the k-mer itself rather than of how many times or in what order it
// was observed.
type kmerEntry struct {
	colors       colorset.Set
	contribution float64
}

// accum is the weight accumulator for one color set: occurrences
// (number of k-mers whose presence pattern equals this color) and total
// (sum of per-k-mer multiplicity contributions).
type accum struct {
	color       colorset.Set
	occurrences uint32
	total       float64
}

// Index is the process-wide kmer_table/color_table pair: one run
// instantiates exactly one. It grows monotonically during ingestion and
// is drained by AddWeights.
type Index struct {
	kFactory *kmer.Factory
	cFactory *colorset.Factory

	kmerTable map[string]*kmerEntry
}

// New builds an empty index for k-mers of length k over n colors.
func New(k, n int) (*Index, error) {
	kf, err := kmer.NewFactory(k)
	if err != nil {
		return nil, err
	}
	cf, err := colorset.NewFactory(n)
	if err != nil {
		return nil, err
	}
	return &Index{
		kFactory:  kf,
		cFactory:  cf,
		kmerTable: make(map[string]*kmerEntry),
	}, nil
}

// N returns the configured number of colors.
func (ix *Index) N() int { return ix.cFactory.N() }

// K returns the configured k-mer length.
func (ix *Index) K() int { return ix.kFactory.K() }

// Len returns the number of distinct k-mers currently indexed.
func (ix *Index) Len() int { return len(ix.kmerTable) }

// AddKmers scans dna left to right with a rolling window of length k,
// recording color at every k-mer whose window contains no unknown base.
// If canonicalise is true, each k-mer is folded onto
// min(K, reverse_complement(K)) before insertion, so kmer_table never
// holds both a k-mer and its reverse complement as separate keys.
// maxIUPAC bounds the multiplicity of ambiguous-base expansion per
// window; pass 1 to disable IUPAC expansion entirely (every ambiguous
// base resets the window, same as an unknown base).
func (ix *Index) AddKmers(dna []byte, color int, canonicalise bool, maxIUPAC uint) error {
	ops, err := ix.extractOps(dna, color, canonicalise, maxIUPAC)
	if err != nil {
		return err
	}
	for _, op := range ops {
		ix.insertKey(op.key, op.color, op.contribution)
	}
	return nil
}

// insertOp is one candidate (kmer, color, contribution) triple, produced
// by extractOps before anything is written to a kmer_table. Keeping
// extraction and insertion as separate steps is what lets
// AddKmersParallel shard work by k-mer key without a data race: the
// extraction phase touches no shared state, and the sharding phase below
// only ever routes a given key to one shard.
type insertOp struct {
	key          string
	color        int
	contribution float64
}

// extractOps runs dna through the same IUPAC-aware rolling window
// AddKmers uses, but returns the resulting candidate insertions instead
// of applying them, in window order.
func (ix *Index) extractOps(dna []byte, color int, canonicalise bool, maxIUPAC uint) ([]insertOp, error) {
	if color < 0 || color >= ix.N() {
		return nil, fmt.Errorf("%w: color %d, N=%d", ErrColorOutOfRange, color, ix.N())
	}
	w := newWindow(ix.kFactory, maxIUPAC)
	var ops []insertOp
	for i := 0; i < len(dna); i++ {
		w.push(dna[i])
		for _, cand := range w.Ready() {
			k := cand.kmer
			if canonicalise {
				k = kmer.Canonical(k)
			}
			ops = append(ops, insertOp{key: k.Key(), color: color, contribution: cand.contribution})
		}
	}
	return ops, nil
}

// Record is one (sequence, color) pair to ingest; AddKmersParallel takes
// a batch of these instead of one at a time so it has enough work to
// shard across goroutines.
type Record struct {
	DNA   []byte
	Color int
}

// AddKmersParallel shards add_kmers across up to nprocs goroutines by
// k-mer hash: a given k-mer key is routed to exactly one shard, so
// shards never contend for the same kmerEntry and the merge at the end
// is a disjoint-key map copy rather than a conflict resolution. This is
// what makes the result bit-identical to sequential ingestion regardless
// of goroutine scheduling — unlike sharding by record (which lets the
// same k-mer arrive concretely from one record and IUPAC-expanded from
// another, racing over which contribution gets fixed first).
//
// Extraction (record -> candidate insertions) runs in a bounded fan-out
// pass using errgroup.SetLimit; ops are gathered in record order so
// that, once partitioned by key, each shard sees its k-mers in the same
// relative order sequential AddKmers would have, preserving the
// fixed-at-first-insertion contribution rule.
func (ix *Index) AddKmersParallel(records []Record, canonicalise bool, maxIUPAC uint, nprocs int) error {
	if nprocs <= 0 {
		nprocs = 1
	}

	perRecord := make([][]insertOp, len(records))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(nprocs)
	for i := range records {
		i := i
		rec := records[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ops, err := ix.extractOps(rec.DNA, rec.Color, canonicalise, maxIUPAC)
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			perRecord[i] = ops
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	shards := make([][]insertOp, nprocs)
	for _, ops := range perRecord {
		for _, op := range ops {
			s := shardOf(op.key, nprocs)
			shards[s] = append(shards[s], op)
		}
	}

	tables := make([]map[string]*kmerEntry, nprocs)
	g2, ctx2 := errgroup.WithContext(context.Background())
	g2.SetLimit(nprocs)
	for s := range shards {
		s := s
		g2.Go(func() error {
			if err := ctx2.Err(); err != nil {
				return err
			}
			table := make(map[string]*kmerEntry, len(shards[s]))
			for _, op := range shards[s] {
				e, ok := table[op.key]
				if !ok {
					e = &kmerEntry{colors: ix.cFactory.Empty(), contribution: op.contribution}
					table[op.key] = e
				}
				e.colors = e.colors.Set(op.color)
			}
			tables[s] = table
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return err
	}

	for _, table := range tables {
		for key, e := range table {
			ix.kmerTable[key] = e
		}
	}
	return nil
}

// shardOf routes a k-mer key to one of nprocs shards by hash-and-mod.
func shardOf(key string, nprocs int) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(nprocs))
}

func (ix *Index) insertKey(key string, color int, contribution float64) {
	e, ok := ix.kmerTable[key]
	if !ok {
		e = &kmerEntry{colors: ix.cFactory.Empty(), contribution: contribution}
		ix.kmerTable[key] = e
	}
	e.colors = e.colors.Set(color)
}

// AddWeights folds kmer_table into color_table, applies reduce to each
// accumulated (occurrences, total) pair, normalises the color to its
// split form, and offers (weight, split) to list. color_table is
// consumed by this pass; this implementation clears kmer_table too,
// since nothing else needs it once weighting is done. verbose gates
// progress logging, the same on/off pattern used for the other
// long-running passes in this codebase.
func (ix *Index) AddWeights(reduce reducer.Func, list *splits.List, verbose bool) {
	colorTable := make(map[string]*accum)
	if verbose {
		log.Printf("add_weights: folding %d distinct k-mers into color table", len(ix.kmerTable))
	}
	for _, e := range ix.kmerTable {
		key := e.colors.Key()
		a, ok := colorTable[key]
		if !ok {
			a = &accum{color: e.colors}
			colorTable[key] = a
		}
		a.occurrences++
		a.total += e.contribution
	}
	if verbose {
		log.Printf("add_weights: computing weights for %d distinct colors", len(colorTable))
	}
	for _, a := range colorTable {
		weight := reduce(a.occurrences, a.total)
		normalised, ok := colorset.Canonical(a.color)
		if !ok {
			continue // trivial color (empty or full): not a split
		}
		list.Offer(weight, normalised)
	}
	ix.kmerTable = make(map[string]*kmerEntry)
}
