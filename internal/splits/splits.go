// Package splits implements the bounded, weight-ordered split list that
// add_weights populates and the filters consume.
package splits

import (
	"sort"

	"splitgraph/internal/colorset"
)

// Split pairs a normalised split color with the weight add_weights
// computed for it.
type Split struct {
	Weight float64
	Color  colorset.Set
}

// List is a multimap keyed by weight in descending order, capacity t.
// Offering beyond capacity silently evicts the lowest-weight entry;
// ties in weight preserve insertion order.
type List struct {
	cap     int
	entries []entry
	seq     int
}

type entry struct {
	split Split
	seq   int // insertion order, for stable weight ties
}

// NewList returns an empty split list with the given top-list capacity
// t. A non-positive capacity means unbounded.
func NewList(t int) *List {
	return &List{cap: t}
}

// Offer adds (weight, color) to the list. color must already be
// normalised (colorset.Canonical); Offer does not re-normalise. If an
// entry for the same color already exists, the two are merged by
// keeping the larger weight — this is defensive only, since
// normalisation is a function of the unordered pair and should never
// produce two entries for the same split.
func (l *List) Offer(weight float64, color colorset.Set) {
	for i := range l.entries {
		if l.entries[i].split.Color.Equal(color) {
			if weight > l.entries[i].split.Weight {
				l.entries[i].split.Weight = weight
			}
			l.resort()
			return
		}
	}
	l.entries = append(l.entries, entry{split: Split{Weight: weight, Color: color}, seq: l.seq})
	l.seq++
	l.resort()
	if l.cap > 0 && len(l.entries) > l.cap {
		l.entries = l.entries[:l.cap]
	}
}

func (l *List) resort() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		if l.entries[i].split.Weight != l.entries[j].split.Weight {
			return l.entries[i].split.Weight > l.entries[j].split.Weight
		}
		return l.entries[i].seq < l.entries[j].seq
	})
}

// Len returns the current number of entries (<=capacity).
func (l *List) Len() int { return len(l.entries) }

// Splits returns the entries in descending weight order, ties broken by
// insertion order. The returned slice is a caller-owned copy.
func (l *List) Splits() []Split {
	out := make([]Split, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.split
	}
	return out
}
