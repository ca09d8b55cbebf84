package kmer

import "strings"

// wideKmer packs a k-mer (k>MaxWordK) into a little-endian array of
// uint64 words, two bits per base. words[0] holds the lowest (most
// recently shifted-in) bases; the bit layout mirrors what
// github.com/bits-and-blooms/bitset does internally for the color-set
// backend, so the two wide backings in this codebase share one mental
// model even though this one needs shift operations bitset doesn't
// expose.
type wideKmer struct {
	words []uint64
	k     int
}

func newWideKmer(k int) wideKmer {
	return wideKmer{words: make([]uint64, nWords(k)), k: k}
}

func nWords(k int) int { return (2*k + 63) / 64 }

func (w wideKmer) clone() wideKmer {
	words := make([]uint64, len(w.words))
	copy(words, w.words)
	return wideKmer{words: words, k: w.k}
}

// topBits is the number of meaningful bits in the highest-index word.
func (w wideKmer) topBits() uint {
	used := uint(2 * w.k)
	full := uint(len(w.words)-1) * 64
	return used - full
}

func (w wideKmer) maskTop() {
	last := len(w.words) - 1
	bits := w.topBits()
	if bits >= 64 {
		return
	}
	w.words[last] &= (uint64(1) << bits) - 1
}

func (w wideKmer) ShiftLeft(base byte) Kmer {
	nw := w.clone()
	carry := uint64(baseCode(base))
	for i := 0; i < len(nw.words); i++ {
		out := nw.words[i] >> 62
		nw.words[i] = (nw.words[i] << 2) | carry
		carry = out
	}
	nw.maskTop()
	return nw
}

func (w wideKmer) ShiftRight(base byte) Kmer {
	nw := w.clone()
	var carry uint64
	for i := len(nw.words) - 1; i >= 0; i-- {
		out := nw.words[i] & 0x3
		nw.words[i] = (nw.words[i] >> 2) | (carry << 62)
		carry = out
	}
	code := complementCode(baseCode(base))
	topBitPos := 2 * (nw.k - 1)
	wordIdx, bitOff := topBitPos/64, uint(topBitPos%64)
	nw.words[wordIdx] &^= uint64(0x3) << bitOff
	nw.words[wordIdx] |= uint64(code) << bitOff
	nw.maskTop()
	return nw
}

func (w wideKmer) codeAt(i int) byte {
	pos := 2 * i
	return byte(w.words[pos/64]>>uint(pos%64)) & 0x3
}

func (w wideKmer) ReverseComplement() Kmer {
	rc := newWideKmer(w.k)
	for i := 0; i < w.k; i++ {
		code := complementCode(w.codeAt(i))
		for j := 0; j < len(rc.words); j++ {
			out := rc.words[j] >> 62
			rc.words[j] = (rc.words[j] << 2) | uint64(code)
			code = byte(out)
		}
	}
	rc.maskTop()
	return rc
}

func (w wideKmer) Less(other Kmer) bool {
	o := other.(wideKmer)
	for i := len(w.words) - 1; i >= 0; i-- {
		if w.words[i] != o.words[i] {
			return w.words[i] < o.words[i]
		}
	}
	return false
}

func (w wideKmer) Equal(other Kmer) bool {
	o, ok := other.(wideKmer)
	if !ok || o.k != w.k || len(o.words) != len(w.words) {
		return false
	}
	for i := range w.words {
		if w.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

func (w wideKmer) Key() string {
	buf := make([]byte, 8*len(w.words))
	for i, word := range w.words {
		for b := 0; b < 8; b++ {
			buf[i*8+b] = byte(word >> uint(8*b))
		}
	}
	return string(buf)
}

func (w wideKmer) String() string {
	var b strings.Builder
	b.Grow(w.k)
	for i := w.k - 1; i >= 0; i-- {
		b.WriteByte(codeBase(w.codeAt(i)))
	}
	return b.String()
}
