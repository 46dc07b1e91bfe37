// Package invariant mines the binary temporal invariants (C3) that hold
// across a trace graph: AlwaysFollowedBy, AlwaysPrecedes, and
// NeverFollowedBy, plus the "x is eventual" invariants reconstructed
// from INITIAL. Mining is over-approximated from the transitive
// closure — it never omits an invariant that holds, and is exact for
// acyclic traces.
package invariant
