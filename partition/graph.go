package partition

import (
	"fmt"

	"github.com/synoptic-core/synoptic/event"
	"github.com/synoptic-core/synoptic/invariant"
)

// Graph is the mutable partition graph (C4): a set of Partitions whose
// edges are induced from the underlying (read-only) trace graph's
// event-level transitions. Graph caches partition->adjacent-partitions
// per relation for speed, invalidated in full on every applied
// Operation (the "safe default" the design notes call for over
// per-partition incremental signaling).
type Graph struct {
	trace *event.TraceGraph

	partitions map[ID]*Partition
	owner      map[event.NodeID]ID

	adjCache map[ID]map[event.Relation]map[ID]struct{}

	Invariants invariant.Set
	history    []Operation
}

// New builds the initial partition graph: every event node is grouped
// by event type, each group becomes one partition. The dummy INITIAL
// event and dummy TERMINAL event each get their own singleton
// partition. Initial/accept flags go to the partitions owning INITIAL's
// direct successors and TERMINAL's direct predecessors, so the INITIAL
// and TERMINAL partitions themselves are neither initial nor accepting.
func New(trace *event.TraceGraph, invs invariant.Set) (*Graph, error) {
	if trace == nil {
		return nil, ErrGraphNil
	}

	g := &Graph{
		trace:      trace,
		partitions: make(map[ID]*Partition),
		owner:      make(map[event.NodeID]ID),
		adjCache:   make(map[ID]map[event.Relation]map[ID]struct{}),
		Invariants: invs,
	}

	byType := trace.NodesByType()
	for typ, nodeIDs := range byType {
		p := &Partition{ID: newID(), Type: typ, events: make(map[event.NodeID]struct{}, len(nodeIDs))}
		for _, nid := range nodeIDs {
			p.events[nid] = struct{}{}
			g.owner[nid] = p.ID
		}
		g.partitions[p.ID] = p
	}

	g.recomputeInitialAccept()

	return g, nil
}

// recomputeInitialAccept refreshes every partition's Initial()/Accept()
// flags from the trace graph's dummy INITIAL/TERMINAL transitions. It
// is cheap (O(trace-size)) and is only ever called after a structural
// change, never per-query.
func (g *Graph) recomputeInitialAccept() {
	for _, p := range g.partitions {
		p.initial = false
		p.accept = false
	}

	initNode, err := g.trace.Node(g.trace.Initial())
	if err == nil {
		for _, t := range initNode.Transitions[event.DefaultRelation] {
			if pid, ok := g.owner[t.Target]; ok {
				g.partitions[pid].initial = true
			}
		}
	}

	termID := g.trace.Terminal()
	for _, n := range g.trace.Nodes() {
		for _, t := range n.Transitions[event.DefaultRelation] {
			if t.Target == termID {
				if pid, ok := g.owner[n.ID]; ok {
					g.partitions[pid].accept = true
				}
			}
		}
	}
}

// Partitions returns every partition in the graph, in no particular order.
func (g *Graph) Partitions() []*Partition {
	out := make([]*Partition, 0, len(g.partitions))
	for _, p := range g.partitions {
		out = append(out, p)
	}
	return out
}

// Partition looks up a partition by ID.
func (g *Graph) Partition(id ID) (*Partition, error) {
	p, ok := g.partitions[id]
	if !ok {
		return nil, ErrPartitionNotFound
	}
	return p, nil
}

// Owner returns the partition ID currently owning event node nid.
func (g *Graph) Owner(nid event.NodeID) (ID, bool) {
	id, ok := g.owner[nid]
	return id, ok
}

// Trace returns the read-only trace graph this partition graph was
// built from.
func (g *Graph) Trace() *event.TraceGraph { return g.trace }

// Successors returns the set of partitions P has an induced transition
// to on relation r: { parent(t.target) | e in P, t in e.Transitions, relation(t) = r }.
// Results are cached per (P, r) until invalidated by a mutating Operation.
func (g *Graph) Successors(p ID, r event.Relation) ([]ID, error) {
	part, ok := g.partitions[p]
	if !ok {
		return nil, ErrPartitionNotFound
	}

	if byRel, ok := g.adjCache[p]; ok {
		if cached, ok := byRel[r]; ok {
			return idSetToSlice(cached), nil
		}
	}

	out := make(map[ID]struct{})
	for e := range part.events {
		node, err := g.trace.Node(e)
		if err != nil {
			continue
		}
		for _, t := range node.Transitions[r] {
			if owner, ok := g.owner[t.Target]; ok {
				out[owner] = struct{}{}
			}
		}
	}

	if g.adjCache[p] == nil {
		g.adjCache[p] = make(map[event.Relation]map[ID]struct{})
	}
	g.adjCache[p][r] = out

	return idSetToSlice(out), nil
}

func idSetToSlice(m map[ID]struct{}) []ID {
	out := make([]ID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}

// invalidate flushes the cached adjacency for every partition (the
// documented full-invalidation-on-write policy: correct and simple,
// accepting the rebuild cost over unsafe per-partition signaling).
func (g *Graph) invalidate() {
	g.adjCache = make(map[ID]map[event.Relation]map[ID]struct{})
}

// Apply mutates the graph via op and returns op's inverse. The caller
// decides when (or whether) to apply the inverse to rewind. Apply
// invalidates adjacency caches and re-derives initial/accept flags
// before running CheckSanity.
func (g *Graph) Apply(op Operation) (Operation, error) {
	inverse, err := op.apply(g)
	if err != nil {
		return nil, err
	}
	g.invalidate()
	g.recomputeInitialAccept()
	g.history = append(g.history, op)

	if err := g.CheckSanity(); err != nil {
		return inverse, &InconsistencyError{Op: op, Inverse: inverse, Reason: err.Error()}
	}

	return inverse, nil
}

// History returns the ordered stack of applied operations (most recent
// last). Applying their inverses in reverse order restores the
// original partition set.
func (g *Graph) History() []Operation {
	out := make([]Operation, len(g.history))
	copy(out, g.history)
	return out
}

// CheckSanity validates the model invariants: every partition is
// non-empty, the union of events across partitions equals the trace
// graph's full node set with no overlap.
func (g *Graph) CheckSanity() error {
	seen := make(map[event.NodeID]ID, len(g.owner))
	for _, p := range g.partitions {
		if p.Len() == 0 {
			return fmt.Errorf("partition %s is empty", p.ID)
		}
		for e := range p.events {
			if prior, dup := seen[e]; dup {
				return fmt.Errorf("event %d owned by both %s and %s", e, prior, p.ID)
			}
			seen[e] = p.ID
		}
	}
	if len(seen) != g.trace.NumNodes() {
		return fmt.Errorf("partition union has %d events, trace graph has %d", len(seen), g.trace.NumNodes())
	}
	return nil
}
