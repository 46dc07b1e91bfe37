// Package partition implements the mutable partition graph (C4): a set
// of Partitions, each owning a set of event nodes, with edges induced
// from the underlying trace graph's event-level transitions.
//
// The only way to mutate a Graph is through an Operation (Split,
// MultiSplit, Merge, MultiMerge) applied via Graph.Apply, which returns
// the operation's inverse so a caller can rewind. The adjacency cache is
// invalidated, and initial/accept flags re-derived, synchronously inside
// Apply;
// Graph carries no locks — per the spec's concurrency model, all
// mutation happens on one logical thread (the bisim engine), so there
// is nothing to protect here that the caller doesn't already serialize.
package partition
