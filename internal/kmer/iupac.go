package kmer

// iupacBases maps each IUPAC nucleotide code (uppercase) to the concrete
// bases it stands for. Ambiguity codes expand to 2-4 bases; concrete
// bases expand to themselves. Absent entries (anything else, including
// gaps and 'N'-adjacent punctuation some FASTA dialects use) are unknown
// and reset the rolling ingestion window.
var iupacBases = map[byte][]byte{
	'A': {'A'}, 'C': {'C'}, 'G': {'G'}, 'T': {'T'}, 'U': {'T'},
	'R': {'A', 'G'},
	'Y': {'C', 'T'},
	'S': {'C', 'G'},
	'W': {'A', 'T'},
	'K': {'G', 'T'},
	'M': {'A', 'C'},
	'B': {'C', 'G', 'T'},
	'D': {'A', 'G', 'T'},
	'H': {'A', 'C', 'T'},
	'V': {'A', 'C', 'G'},
	'N': {'A', 'C', 'G', 'T'},
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// Expand returns the concrete bases an IUPAC code stands for, and
// whether the code was recognised at all.
func Expand(b byte) ([]byte, bool) {
	bs, ok := iupacBases[upper(b)]
	return bs, ok
}

// IsUnknown reports whether b is not a recognised IUPAC code at all.
func IsUnknown(b byte) bool {
	_, ok := Expand(b)
	return !ok
}
