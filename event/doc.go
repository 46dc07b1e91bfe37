// Package event defines the trace graph model: EventType, EventNode,
// Transition and TraceGraph.
//
// A TraceGraph is built once, by BuildTraceGraph, from a ParsedLog handed
// in by a parser collaborator (out of scope here — see the package-level
// notes on ParsedLog). Once built it is read-only: apart from
// EventNode.SetPartitionID, which only writes the PartitionID slot, no
// exported method mutates a node, a transition, or the node arena. This
// mirrors the
// "fully constructed by the parser and thereafter read-only" contract
// the model requires, and is why — unlike a general-purpose mutable
// graph — EventNode and TraceGraph carry no locks: there is nothing to
// race on after construction, and construction itself happens on one
// goroutine before the graph is ever shared.
//
// Nodes are held in a flat arena (TraceGraph.nodes) and referenced by
// NodeID (an index into that arena) rather than by pointer, so that
// Partition (in the partition package) can hold sets of NodeID without
// creating an import cycle or an ownership cycle back into this package.
package event
