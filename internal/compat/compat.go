// Package compat implements the strict and weak compatibility
// predicates the greedy filters test each candidate split against. Both
// operate purely on colorset.Set bit representations; neither needs a
// tree.
package compat

import "splitgraph/internal/colorset"

// Strict reports whether candidate is strictly compatible with every
// split already in accepted: for each accepted split A, at least one of
// the four Venn cells candidate∩A, candidate∩¬A, ¬candidate∩A,
// ¬candidate∩¬A must be empty.
func Strict(candidate colorset.Set, accepted []colorset.Set) bool {
	for _, a := range accepted {
		if !pairwiseStrict(candidate, a) {
			return false
		}
	}
	return true
}

func pairwiseStrict(s, a colorset.Set) bool {
	notS := s.Complement()
	notA := a.Complement()
	return s.Intersection(a).IsEmpty() ||
		s.Intersection(notA).IsEmpty() ||
		notS.Intersection(a).IsEmpty() ||
		notS.Intersection(notA).IsEmpty()
}

// Weakly reports whether candidate can join accepted without forming a
// forbidden triple: for every pair of already-accepted splits (A, B), at
// least one of the three cells candidate∩A∩B, candidate∩A∩¬B,
// candidate∩¬A∩B must be empty. Pairs already present in accepted are
// assumed to have passed this test when they were accepted, so only
// triples that include candidate need checking.
func Weakly(candidate colorset.Set, accepted []colorset.Set) bool {
	for i := 0; i < len(accepted); i++ {
		for j := i + 1; j < len(accepted); j++ {
			if !tripleWeak(candidate, accepted[i], accepted[j]) {
				return false
			}
		}
	}
	return true
}

func tripleWeak(s, a, b colorset.Set) bool {
	notA := a.Complement()
	notB := b.Complement()
	sa := s.Intersection(a)
	return sa.Intersection(b).IsEmpty() ||
		sa.Intersection(notB).IsEmpty() ||
		s.Intersection(notA).Intersection(b).IsEmpty()
}
