package report

import (
	"os"
	"path/filepath"
	"testing"

	"splitgraph/internal/colorset"
	"splitgraph/internal/splits"
)

func set(t *testing.T, n int, bits ...int) colorset.Set {
	t.Helper()
	cf, err := colorset.NewFactory(n)
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	c := cf.Empty()
	for _, b := range bits {
		c = c.Set(b)
	}
	norm, ok := colorset.Canonical(c)
	if !ok {
		t.Fatalf("colorset %v is trivial, not a split", bits)
	}
	return norm
}

func TestWeightSpectrumWritesNonEmptyPNG(t *testing.T) {
	list := splits.NewList(0)
	list.Offer(3, set(t, 4, 0))
	list.Offer(1, set(t, 4, 0, 1))
	list.Offer(2, set(t, 4, 0, 2))

	prefix := filepath.Join(t.TempDir(), "spectrum")
	if err := WeightSpectrum(list, prefix); err != nil {
		t.Fatalf("WeightSpectrum: %v", err)
	}

	info, err := os.Stat(prefix + ".png")
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected a non-empty PNG file")
	}
}

func TestWeightSpectrumHandlesEmptyList(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "empty")
	if err := WeightSpectrum(splits.NewList(0), prefix); err != nil {
		t.Fatalf("WeightSpectrum on empty list: %v", err)
	}
	if _, err := os.Stat(prefix + ".png"); err != nil {
		t.Fatalf("stat output: %v", err)
	}
}
