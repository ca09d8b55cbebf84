// Package reducer provides the caller-supplied weight functions
// add_weights folds occurrences/total counts through.
package reducer

import "math"

// Func reduces a color set's accumulated (occurrences, total) pair to a
// split weight. It must be pure: no side effects, same inputs always
// produce the same output. Modelled on the original engine's
// double mean(uint32_t&, uint32_t&) signature, minus the by-reference
// mutability neither shipped reducer ever used. total is float64 rather
// than uint32: IUPAC expansion contributes fractional multiplicity, so
// the counter it accumulates into cannot be an exact integer in general.
type Func func(occurrences uint32, total float64) float64

// Arithmetic is the arithmetic mean of occurrences and total.
func Arithmetic(occurrences uint32, total float64) float64 {
	return (float64(occurrences) + total) / 2
}

// Geometric is the geometric mean of occurrences and total.
func Geometric(occurrences uint32, total float64) float64 {
	return math.Sqrt(float64(occurrences) * total)
}

// Occurrences ignores total and weighs splits purely by how many distinct
// k-mers produced them.
func Occurrences(occurrences uint32, _ float64) float64 {
	return float64(occurrences)
}

// ByName maps a reducer's CLI/config name to its implementation, mirroring
// the string-keyed dispatch table pattern used elsewhere in this codebase
// for other small option sets.
var ByName = map[string]Func{
	"arithmetic":  Arithmetic,
	"geometric":   Geometric,
	"occurrences": Occurrences,
}
