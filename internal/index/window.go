package index

import "splitgraph/internal/kmer"

// candidate is one concrete realisation of the current k-mer window,
// together with the multiplicity contribution it should receive if it
// survives to readiness: 1 for a window with no ambiguous positions,
// 1/product when max_iupac-bounded expansion is in play.
type candidate struct {
	kmer         kmer.Kmer
	contribution float64
}

// window is the IUPAC-aware rolling k-mer window add_kmers scans dna
// through. It holds, at any time, the set of concrete k-mers consistent
// with the last min(k, positions-seen-since-reset) input bases, bounded
// by maxIUPAC on the multiplicative fan-out of the ambiguous positions
// currently inside the window.
//
// An unknown character, or a product that would exceed maxIUPAC, resets
// the window: the running candidate set and factor history are
// discarded and accumulation restarts at the next position.
type window struct {
	factory  *kmer.Factory
	k        int
	maxIUPAC uint64

	factors []uint64 // fan-out of each of the last <=k bases, oldest first
	product uint64

	cands []candidate
	ready []candidate // populated by push, valid until the next push
}

func newWindow(f *kmer.Factory, maxIUPAC uint) *window {
	if maxIUPAC == 0 {
		maxIUPAC = 1
	}
	return &window{factory: f, k: f.K(), maxIUPAC: uint64(maxIUPAC), product: 1}
}

func (w *window) reset() {
	w.factors = w.factors[:0]
	w.product = 1
	w.cands = nil
	w.ready = nil
}

// push advances the window by one base of input. Call Ready immediately
// afterwards to collect any k-mers that became valid at this position.
func (w *window) push(b byte) {
	w.ready = nil
	expansion, ok := kmer.Expand(b)
	if !ok {
		w.reset()
		return
	}
	fanOut := uint64(len(expansion))
	newProduct := w.product * fanOut
	full := len(w.factors) == w.k
	if full {
		newProduct /= w.factors[0]
	}
	if newProduct > w.maxIUPAC {
		w.reset()
		return
	}
	if full {
		w.factors = w.factors[1:]
	}
	w.factors = append(w.factors, fanOut)
	w.product = newProduct

	var shifted []kmer.Kmer
	if len(w.cands) == 0 {
		for _, base := range expansion {
			shifted = append(shifted, w.factory.Zero().ShiftLeft(base))
		}
	} else {
		for _, c := range w.cands {
			for _, base := range expansion {
				shifted = append(shifted, c.kmer.ShiftLeft(base))
			}
		}
	}
	// Two paths through different historical ambiguous bases can land on
	// the identical bit pattern once the base they disagreed on ages out
	// of the k-wide window (ShiftLeft only retains the last k bases), so
	// the cross product above over-counts; collapse back down to one
	// candidate per distinct k-mer before assigning contributions.
	seen := make(map[string]kmer.Kmer, len(shifted))
	order := make([]string, 0, len(shifted))
	for _, k := range shifted {
		key := k.Key()
		if _, ok := seen[key]; !ok {
			seen[key] = k
			order = append(order, key)
		}
	}
	contribution := 1 / float64(w.product)
	next := make([]candidate, 0, len(order))
	for _, key := range order {
		next = append(next, candidate{kmer: seen[key], contribution: contribution})
	}
	w.cands = next
	if len(w.factors) == w.k {
		w.ready = w.cands
	}
}

// Ready returns the k-mers that completed a full, IUPAC-bounded window
// at the most recent push, or nil if the window is not yet full.
func (w *window) Ready() []candidate { return w.ready }
