// Package synoptic mines finite-state models from system execution
// logs. Given a set of totally- or partially-ordered traces, it:
//
//  1. builds a trace graph over the parsed events (event.BuildTraceGraph),
//  2. mines temporal invariants holding across every trace (invariant.Miner),
//  3. builds an initial partition graph, one partition per event type
//     (partition.New), and
//  4. refines that partition graph until every invariant holds, then
//     coarsens it back down to the smallest model that still satisfies
//     them (bisim.Engine).
//
// Run wires these four stages together behind one call; each stage's
// package also works standalone for callers who want to drive the
// pipeline themselves (e.g. to inspect the mined invariants before
// refining, or to run only the checker against a hand-built partition
// graph).
package synoptic
