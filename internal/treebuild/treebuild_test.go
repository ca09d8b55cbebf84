package treebuild

import (
	"testing"

	"splitgraph/internal/colorset"
)

func universe(t *testing.T, n int) colorset.Set {
	t.Helper()
	f, err := colorset.NewFactory(n)
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	u := f.Empty()
	for i := 0; i < n; i++ {
		u = u.Set(i)
	}
	return u
}

func color(t *testing.T, n int, bits ...int) colorset.Set {
	t.Helper()
	f, err := colorset.NewFactory(n)
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	s := f.Empty()
	for _, b := range bits {
		s = s.Set(b)
	}
	return s
}

// TestRefineScenarioS2 covers a three-genome worked example: splits
// {0}|{1,2} weight 3 and {0,1}|{2} weight 1, accepted in that order. The
// leaf grammar (leaf := name, never weighted) forces a wrapper node even
// around the singleton {0} side, so the resulting string groups
// differently from the original illustrative example while encoding the
// same two splits (documented in DESIGN.md).
func TestRefineScenarioS2(t *testing.T) {
	u := universe(t, 3)
	tree := New(u)

	if err := tree.Refine(color(t, 3, 0), 3); err != nil {
		t.Fatalf("Refine 1: %v", err)
	}
	if err := tree.Refine(color(t, 3, 0, 1), 1); err != nil {
		t.Fatalf("Refine 2: %v", err)
	}

	got := tree.Newick(nil)
	want := "(2,(1,(0):3):1);"
	if got != want {
		t.Errorf("Newick = %q, want %q", got, want)
	}
}

func TestNewickUsesNameMap(t *testing.T) {
	u := universe(t, 2)
	tree := New(u)
	names := map[int]string{0: "alpha", 1: "beta"}
	got := tree.Newick(names)
	want := "(alpha,beta);"
	if got != want {
		t.Errorf("Newick = %q, want %q", got, want)
	}
}

func TestRefineReportsInconsistencyOnCrossingSplit(t *testing.T) {
	u := universe(t, 4)
	tree := New(u)
	if err := tree.Refine(color(t, 4, 0, 1), 2); err != nil {
		t.Fatalf("Refine 1: %v", err)
	}
	// {0,2}|{1,3} crosses {0,1}|{2,3}: every Venn cell is nonempty, so no
	// child of the tree so far can fully contain either side.
	if err := tree.Refine(color(t, 4, 0, 2), 1); err == nil {
		t.Errorf("expected ErrRefinementInconsistency for a crossing split")
	}
}
