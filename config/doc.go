// Package config holds the functional-options configuration shared by
// the checker and bisim packages: which FSM-checking mode to use,
// whether refinement/coarsening are enabled, the k-Tails window, and
// the deterministic RNG seed bisim's coarsening-order shuffling derives
// from.
//
// Grounded on the teacher's functional-options convention (private
// struct, unexported defaults, With* constructors applied left to
// right) and its tsp package's seeded, derivable *rand.Rand helpers.
package config
