// Package colorset implements bit-packed sets over the N input genomes
// ("colors") an index was built from.
//
// As with internal/kmer, two backings exist depending on N: a single
// machine word for N<=64, and a github.com/bits-and-blooms/bitset-backed
// wide set otherwise. Both satisfy the Set interface, so index and
// filter code never branches on which is active.
package colorset

import "fmt"

// MaxWordN is the largest N whose bits fit in a uint64.
const MaxWordN = 64

// ErrBadSize is returned by NewFactory when N is non-positive. Set
// methods do not check that a bit index lies in [0, N).
var ErrBadSize = fmt.Errorf("invalid color set size")

// Set is a subset of {0, ..., N-1}.
type Set interface {
	// Set returns a copy with bit i set.
	Set(i int) Set
	// Clear returns a copy with bit i cleared.
	Clear(i int) Set
	// Test reports whether bit i is set.
	Test(i int) bool
	// Complement returns the bitwise complement over the full N bits.
	Complement() Set
	// Union returns the union with other.
	Union(other Set) Set
	// Intersection returns the intersection with other.
	Intersection(other Set) Set
	// Count returns the population count (number of set bits).
	Count() int
	// Len returns N, the universe size this set was built against.
	Len() int
	// Equal reports bit-for-bit equality.
	Equal(other Set) bool
	// Less reports whether this set sorts before other under the
	// lexicographic bit ordering used to normalise splits.
	Less(other Set) bool
	// Key returns a comparable, hashable representation suitable for use
	// as a Go map key.
	Key() string
	// IsEmpty reports whether no bits are set.
	IsEmpty() bool
	// IsFull reports whether every bit in [0, N) is set.
	IsFull() bool
}

// Factory produces empty color sets of a fixed universe size n and
// backing, chosen once at construction time.
type Factory struct {
	n    int
	wide bool
}

// NewFactory selects the color-set backing for n inputs: a machine word
// for n<=64, a bits-and-blooms/bitset-backed wide set otherwise.
func NewFactory(n int) (*Factory, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: N must be positive, got %d", ErrBadSize, n)
	}
	return &Factory{n: n, wide: n > MaxWordN}, nil
}

// N returns the configured universe size.
func (f *Factory) N() int { return f.n }

// Empty returns the empty set over [0, N).
func (f *Factory) Empty() Set {
	if f.wide {
		return newWideSet(f.n)
	}
	return newWordSet(f.n)
}

// Canonical returns the smaller of c and its complement, the normalised
// form of a split color. Reports ok=false if c is trivial (empty or
// full), since a trivial color does not describe a split.
func Canonical(c Set) (normalised Set, ok bool) {
	if c.IsEmpty() || c.IsFull() {
		return nil, false
	}
	comp := c.Complement()
	if comp.Less(c) {
		return comp, true
	}
	return c, true
}
