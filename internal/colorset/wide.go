package colorset

import "github.com/bits-and-blooms/bitset"

// wideSet packs a color set (n>MaxWordN) into a *bitset.BitSet: New, Set,
// Clear, Test, Clone, Complement, Union and Intersection map directly
// onto the operations this type needs.
type wideSet struct {
	bits *bitset.BitSet
	n    int
}

func newWideSet(n int) wideSet {
	return wideSet{bits: bitset.New(uint(n)), n: n}
}

func (s wideSet) Set(i int) Set {
	return wideSet{bits: s.bits.Clone().Set(uint(i)), n: s.n}
}

func (s wideSet) Clear(i int) Set {
	return wideSet{bits: s.bits.Clone().Clear(uint(i)), n: s.n}
}

func (s wideSet) Test(i int) bool { return s.bits.Test(uint(i)) }

func (s wideSet) Complement() Set {
	return wideSet{bits: s.bits.Clone().Complement(), n: s.n}
}

func (s wideSet) Union(other Set) Set {
	o := other.(wideSet)
	return wideSet{bits: s.bits.Union(o.bits), n: s.n}
}

func (s wideSet) Intersection(other Set) Set {
	o := other.(wideSet)
	return wideSet{bits: s.bits.Intersection(o.bits), n: s.n}
}

func (s wideSet) Count() int { return int(s.bits.Count()) }
func (s wideSet) Len() int   { return s.n }

func (s wideSet) Equal(other Set) bool {
	o, ok := other.(wideSet)
	return ok && o.n == s.n && s.bits.Equal(o.bits)
}

// Less compares the two sets lexicographically, most-significant bit
// (highest color index) first, matching the normalisation order used
// for split canonicalisation.
func (s wideSet) Less(other Set) bool {
	o := other.(wideSet)
	for i := s.n - 1; i >= 0; i-- {
		a, b := s.bits.Test(uint(i)), o.bits.Test(uint(i))
		if a != b {
			return !a && b
		}
	}
	return false
}

func (s wideSet) Key() string { return s.bits.DumpAsBits() }

func (s wideSet) IsEmpty() bool { return s.bits.None() }
func (s wideSet) IsFull() bool  { return s.bits.Count() == uint(s.n) }
