package index

import (
	"testing"

	"splitgraph/internal/kmer"
)

func factory(t *testing.T, k int) *kmer.Factory {
	t.Helper()
	f, err := kmer.NewFactory(k)
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	return f
}

func pushAll(w *window, s string) [][]candidate {
	var out [][]candidate
	for i := 0; i < len(s); i++ {
		w.push(s[i])
		out = append(out, w.Ready())
	}
	return out
}

func TestWindowConcreteEmitsOneCandidatePerPosition(t *testing.T) {
	w := newWindow(factory(t, 4), 1)
	ready := pushAll(w, "ACGTAC")
	for i, r := range ready {
		if i < 3 {
			if r != nil {
				t.Fatalf("position %d: got %d candidates before window filled, want none", i, len(r))
			}
			continue
		}
		if len(r) != 1 {
			t.Fatalf("position %d: got %d candidates, want 1", i, len(r))
		}
		if r[0].contribution != 1 {
			t.Errorf("position %d: contribution = %f, want 1", i, r[0].contribution)
		}
	}
}

func TestWindowUnknownBaseResetsWindow(t *testing.T) {
	w := newWindow(factory(t, 4), 1)
	pushAll(w, "ACG")
	w.push('X') // not a recognised IUPAC code at all
	if w.Ready() != nil {
		t.Fatalf("expected no ready k-mers right after a reset")
	}
	// refill from scratch
	ready := pushAll(w, "TAC")
	last := ready[len(ready)-1]
	if len(last) != 1 {
		t.Fatalf("after refilling window, got %d candidates, want 1", len(last))
	}
}

// TestWindowIUPACExpansionSplitsContribution exercises scenario S4: a
// single ambiguous base (R = A or G) inside an otherwise concrete window
// of length 4, with max_iupac=2, yields exactly two candidates, each
// contributing 0.5.
func TestWindowIUPACExpansionSplitsContribution(t *testing.T) {
	w := newWindow(factory(t, 4), 2)
	ready := pushAll(w, "ACRT")
	last := ready[len(ready)-1]
	if len(last) != 2 {
		t.Fatalf("got %d candidates, want 2", len(last))
	}
	for _, c := range last {
		if c.contribution != 0.5 {
			t.Errorf("contribution = %f, want 0.5", c.contribution)
		}
	}
	seen := map[string]bool{}
	for _, c := range last {
		seen[c.kmer.String()] = true
	}
	if !seen["ACAT"] || !seen["ACGT"] {
		t.Errorf("candidates = %v, want {ACAT, ACGT}", seen)
	}
}

func TestWindowProductExceedingMaxIUPACAbortsWindow(t *testing.T) {
	w := newWindow(factory(t, 3), 2)
	// R then Y inside the same 3-wide window: product 2*2=4 > max_iupac=2.
	ready := pushAll(w, "RYA")
	for i, r := range ready {
		if r != nil {
			t.Fatalf("position %d: got ready candidates %v, want none (window should have aborted)", i, r)
		}
	}
}

func TestWindowAgesOutOldFactorWhenFull(t *testing.T) {
	// R (fan-out 2) ages out of the window by the time it is k positions
	// back, so a second ambiguous base afterwards should not be blocked
	// by a product computed from both.
	w := newWindow(factory(t, 3), 2)
	pushAll(w, "RAC") // R at position 0, ages out after these 3 pushes' window is [R,A,C]... still inside
	ready := pushAll(w, "GTY")
	last := ready[len(ready)-1]
	if len(last) != 2 {
		t.Fatalf("got %d candidates, want 2 (R should have aged out before Y arrived)", len(last))
	}
}
