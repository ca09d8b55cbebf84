// Package treebuild materialises a strict (or n-tree) accepted split
// list into an explicit unrooted multifurcating tree and serialises it
// to Newick.
package treebuild

import (
	"fmt"
	"strconv"
	"strings"

	"splitgraph/internal/colorset"
)

// ErrRefinementInconsistency is returned when a split that passed
// test_strict still fails to refine the tree: a programmer error, since
// strict compatibility is supposed to guarantee this never happens.
var ErrRefinementInconsistency = fmt.Errorf("split does not refine the tree")

// node is an arena-indexed tree node: children reference other nodes by
// integer id rather than pointer. id 0 is always the root.
type node struct {
	taxa     colorset.Set
	weight   float64
	children []int // indices into Tree.nodes, insertion order
}

// Tree is an unrooted multifurcating refinement tree over a fixed
// universe of colors, built by folding in accepted splits one at a
// time.
type Tree struct {
	nodes []node
}

// New builds the initial star tree: a root with taxa = the full
// universe (all bits set) and one leaf per color, in color order.
func New(universe colorset.Set) *Tree {
	n := universe.Len()
	t := &Tree{nodes: make([]node, 0, n+1)}
	root := node{taxa: universe}
	t.nodes = append(t.nodes, root) // index 0
	for i := 0; i < n; i++ {
		leaf := node{taxa: leafColor(universe, i)}
		idx := len(t.nodes)
		t.nodes = append(t.nodes, leaf)
		t.nodes[0].children = append(t.nodes[0].children, idx)
	}
	return t
}

func leafColor(universe colorset.Set, i int) colorset.Set {
	return universe.Complement().Set(i) // universe is all-bits-set, so its complement is empty
}

// Refine folds split s (with the given weight) into the tree by a
// recursion starting at the root.
func (t *Tree) Refine(s colorset.Set, weight float64) error {
	return t.refine(0, s, weight)
}

func (t *Tree) refine(v int, s colorset.Set, weight float64) error {
	taxa := t.nodes[v].taxa
	notS := s.Complement()
	a := s.Intersection(taxa)
	b := notS.Intersection(taxa)
	if a.IsEmpty() || b.IsEmpty() {
		// s does not cut this node's taxa on both sides; descend into
		// whichever child's taxa fully contains s or notS, if any.
		for _, c := range t.nodes[v].children {
			ct := t.nodes[c].taxa
			if contains(ct, s) || contains(ct, notS) {
				return t.refine(c, s, weight)
			}
		}
		return fmt.Errorf("%w: colors=%s", ErrRefinementInconsistency, s.Key())
	}

	// A split accepted earlier may already have grouped some of v's
	// taxa into a child whose own taxa strictly contains a or b: s cuts
	// across that child's subtree, not across v's children directly, so
	// route into it instead of partitioning at this level. a and b are
	// unchanged by the descent since a child that strictly contains a
	// (say) still intersects s in exactly a, the rest of the child
	// falling in b. A child that merely overlaps both sides without
	// fully containing either is a genuine conflict, not a deeper nest.
	var aSide, bSide []int
	for _, c := range t.nodes[v].children {
		ct := t.nodes[c].taxa
		switch {
		case contains(a, ct):
			aSide = append(aSide, c)
		case contains(b, ct):
			bSide = append(bSide, c)
		case contains(ct, a), contains(ct, b):
			return t.refine(c, s, weight)
		default:
			return fmt.Errorf("%w: child taxa crosses colors=%s", ErrRefinementInconsistency, s.Key())
		}
	}
	if len(aSide) == 0 {
		return fmt.Errorf("%w: empty A-side at refinement of colors=%s", ErrRefinementInconsistency, s.Key())
	}

	// Wrap unconditionally, even when aSide is a single existing leaf:
	// per the Newick grammar a leaf never carries a weight suffix, so the
	// only place this split's weight can be recorded is on a
	// parenthesised node, even a degenerate single-child one.
	u := node{taxa: a, weight: weight, children: aSide}
	uIdx := len(t.nodes)
	t.nodes = append(t.nodes, u)

	newChildren := make([]int, 0, len(bSide)+1)
	newChildren = append(newChildren, bSide...)
	newChildren = append(newChildren, uIdx)
	t.nodes[v].children = newChildren
	return nil
}

// contains reports whether sup is a (non-strict) superset of sub.
func contains(sup, sub colorset.Set) bool {
	return sub.Intersection(sup).Equal(sub)
}

// Newick renders the tree per the standard Newick grammar. names maps a
// leaf's color index to its display name; when nil, the integer index
// is printed.
func (t *Tree) Newick(names map[int]string) string {
	var b strings.Builder
	t.writeNode(&b, 0, names)
	b.WriteByte(';')
	return b.String()
}

func (t *Tree) writeNode(b *strings.Builder, idx int, names map[int]string) {
	n := t.nodes[idx]
	if len(n.children) == 0 {
		b.WriteString(leafName(n.taxa, names))
		return
	}
	b.WriteByte('(')
	for i, c := range n.children {
		if i > 0 {
			b.WriteByte(',')
		}
		t.writeNode(b, c, names)
	}
	b.WriteByte(')')
	if idx != 0 {
		b.WriteByte(':')
		b.WriteString(formatWeight(n.weight))
	}
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}

func leafName(taxa colorset.Set, names map[int]string) string {
	idx := soleBit(taxa)
	if name, ok := names[idx]; ok {
		return name
	}
	return strconv.Itoa(idx)
}

func soleBit(c colorset.Set) int {
	for i := 0; i < c.Len(); i++ {
		if c.Test(i) {
			return i
		}
	}
	return -1
}
