// Package bisim implements the bisimulation refinement/coarsening loop
// (C6): Refine splits partitions until every mined invariant holds,
// Coarsen then greedily re-merges partitions a k-Tails equivalence
// test shows are behaviorally indistinguishable, without reintroducing
// any invariant violation.
//
// The two passes share one Engine and operate purely through
// partition.Graph.Apply, so every split or merge they perform is
// reversible and sanity-checked the same way a caller's own Apply call
// would be.
package bisim
