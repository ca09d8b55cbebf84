package index

import (
	"errors"
	"testing"

	"splitgraph/internal/reducer"
	"splitgraph/internal/splits"
)

// TestAddKmersThenAddWeightsProducesThreeDistinctSplits ingests one k-mer
// (k=2) shared with a different second color each time, producing three
// pairwise non-complementary 2-2 splits of a 4-genome universe (the only
// three that exist), and checks add_weights folds them into exactly
// those three entries.
func TestAddKmersThenAddWeightsProducesThreeDistinctSplits(t *testing.T) {
	ix, err := New(2, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ix.AddKmers([]byte("ACGT"), 0, false, 1); err != nil {
		t.Fatalf("AddKmers color 0: %v", err)
	}
	if err := ix.AddKmers([]byte("AC"), 1, false, 1); err != nil {
		t.Fatalf("AddKmers color 1: %v", err)
	}
	if err := ix.AddKmers([]byte("GT"), 2, false, 1); err != nil {
		t.Fatalf("AddKmers color 2: %v", err)
	}
	if err := ix.AddKmers([]byte("CG"), 3, false, 1); err != nil {
		t.Fatalf("AddKmers color 3: %v", err)
	}
	if ix.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (AC, CG, GT)", ix.Len())
	}

	list := splits.NewList(0)
	ix.AddWeights(reducer.Occurrences, list, false)
	got := list.Splits()
	if len(got) != 3 {
		t.Fatalf("got %d splits, want 3: %v", len(got), got)
	}
	for _, s := range got {
		if s.Weight != 1 {
			t.Errorf("split %v has weight %v, want 1", s.Color, s.Weight)
		}
	}
	seen := make(map[string]bool)
	for _, s := range got {
		seen[s.Color.Key()] = true
	}
	if len(seen) != 3 {
		t.Errorf("splits are not pairwise distinct: %v", got)
	}
}

func TestAddKmersRejectsOutOfRangeColor(t *testing.T) {
	ix, err := New(2, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ix.AddKmers([]byte("AC"), 5, false, 1); !errors.Is(err, ErrColorOutOfRange) {
		t.Errorf("err = %v, want ErrColorOutOfRange", err)
	}
	if err := ix.AddKmers([]byte("AC"), -1, false, 1); !errors.Is(err, ErrColorOutOfRange) {
		t.Errorf("err = %v, want ErrColorOutOfRange", err)
	}
}

// TestAddKmersParallelMatchesSequential checks that sharding the same
// records across goroutines produces a kmer_table with the same distinct
// key count and the same per-key color union as adding them one at a
// time in-process.
func TestAddKmersParallelMatchesSequential(t *testing.T) {
	records := []Record{
		{DNA: []byte("ACGT"), Color: 0},
		{DNA: []byte("AC"), Color: 1},
		{DNA: []byte("GT"), Color: 2},
		{DNA: []byte("CG"), Color: 3},
	}

	sequential, err := New(2, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, r := range records {
		if err := sequential.AddKmers(r.DNA, r.Color, false, 1); err != nil {
			t.Fatalf("AddKmers: %v", err)
		}
	}

	parallel, err := New(2, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := parallel.AddKmersParallel(records, false, 1, 4); err != nil {
		t.Fatalf("AddKmersParallel: %v", err)
	}

	if parallel.Len() != sequential.Len() {
		t.Fatalf("Len() = %d, want %d", parallel.Len(), sequential.Len())
	}
	for key, wantEntry := range sequential.kmerTable {
		gotEntry, ok := parallel.kmerTable[key]
		if !ok {
			t.Fatalf("parallel index missing key %q", key)
		}
		if !gotEntry.colors.Equal(wantEntry.colors) {
			t.Errorf("key %q: colors = %v, want %v", key, gotEntry.colors, wantEntry.colors)
		}
	}
}

// TestAddKmersParallelContributionMatchesSequentialUnderIUPAC exercises
// the case sequential-only equivalence checks miss: the same k-mer
// arising concretely from one record (contribution 1.0) and via IUPAC
// expansion from another (contribution 0.5, k=4, max_iupac=2). The
// concrete record comes first in record order, so its "ACGT" is the
// first insertion of that k-mer and the fixed-at-first-insertion
// contribution must be 1.0 regardless of how many goroutines or in what
// order they finish.
func TestAddKmersParallelContributionMatchesSequentialUnderIUPAC(t *testing.T) {
	records := []Record{
		{DNA: []byte("ACGT"), Color: 0},
		{DNA: []byte("ACRT"), Color: 1},
	}

	sequential, err := New(4, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, r := range records {
		if err := sequential.AddKmers(r.DNA, r.Color, false, 2); err != nil {
			t.Fatalf("AddKmers: %v", err)
		}
	}

	for procs := 1; procs <= 4; procs++ {
		parallel, err := New(4, 2)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if err := parallel.AddKmersParallel(records, false, 2, procs); err != nil {
			t.Fatalf("AddKmersParallel(nprocs=%d): %v", procs, err)
		}
		if parallel.Len() != sequential.Len() {
			t.Fatalf("nprocs=%d: Len() = %d, want %d", procs, parallel.Len(), sequential.Len())
		}
		for key, wantEntry := range sequential.kmerTable {
			gotEntry, ok := parallel.kmerTable[key]
			if !ok {
				t.Fatalf("nprocs=%d: parallel index missing key %q", procs, key)
			}
			if gotEntry.contribution != wantEntry.contribution {
				t.Errorf("nprocs=%d: key %q contribution = %v, want %v (sequential, first-insertion)",
					procs, key, gotEntry.contribution, wantEntry.contribution)
			}
			if !gotEntry.colors.Equal(wantEntry.colors) {
				t.Errorf("nprocs=%d: key %q colors = %v, want %v", procs, key, gotEntry.colors, wantEntry.colors)
			}
		}
	}
}
