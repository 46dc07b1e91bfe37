package invariant

import (
	"github.com/synoptic-core/synoptic/closure"
	"github.com/synoptic-core/synoptic/event"
)

// Miner extracts binary temporal invariants from a trace graph and its
// transitive closure. UseWarshall selects closure.ComputeWarshall over
// closure.ComputeRecursive for every relation the miner examines.
type Miner struct {
	UseWarshall bool
}

// NewMiner returns a Miner configured per useWarshall.
func NewMiner(useWarshall bool) *Miner {
	return &Miner{UseWarshall: useWarshall}
}

// Mine extracts every AFby/AP/NFby invariant over non-special event
// type pairs, for every relation present in g, plus the "INITIAL AFby
// x" eventual-reachability invariants for g's default relation.
func (m *Miner) Mine(g *event.TraceGraph) (Set, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	byType := g.NodesByType()
	types := make([]event.EventType, 0, len(byType))
	for t := range byType {
		if !t.IsSpecial() {
			types = append(types, t)
		}
	}

	result := NewSet()
	relations := collectRelations(g)
	var defaultTC *closure.Matrix

	for _, r := range relations {
		tc, err := m.computeClosure(g, r)
		if err != nil {
			return nil, err
		}
		if r == event.DefaultRelation {
			defaultTC = tc
		}
		mineTypePairs(result, types, byType, tc, r)
	}

	if defaultTC == nil {
		var err error
		defaultTC, err = m.computeClosure(g, event.DefaultRelation)
		if err != nil {
			return nil, err
		}
	}
	mineInitialEventual(result, g, defaultTC)

	return result, nil
}

// computeClosure picks the configured strategy.
func (m *Miner) computeClosure(g *event.TraceGraph, r event.Relation) (*closure.Matrix, error) {
	if m.UseWarshall {
		return closure.ComputeWarshall(g, r)
	}
	return closure.ComputeRecursive(g, r)
}

// collectRelations scans every node's transition map and returns the
// distinct relation names used, always including DefaultRelation even
// if the graph happens to carry no transitions on it (a graph of dummy
// INITIAL/TERMINAL nodes alone is never produced by BuildTraceGraph, so
// this is purely defensive).
func collectRelations(g *event.TraceGraph) []event.Relation {
	seen := map[event.Relation]bool{event.DefaultRelation: true}
	for _, n := range g.Nodes() {
		for r := range n.Transitions {
			seen[r] = true
		}
	}
	out := make([]event.Relation, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	return out
}

// mineTypePairs implements §4.2's per-(A,B)-pair derivation over tc.
func mineTypePairs(result Set, types []event.EventType, byType map[event.EventType][]event.NodeID, tc *closure.Matrix, r event.Relation) {
	for _, a := range types {
		for _, b := range types {
			nfby, afby := evalNeverAndAlwaysFollowedBy(byType[a], byType[b], tc)
			if nfby {
				result.Add(BinaryInvariant{Kind: NFby, A: a, B: b, Relation: r})
			}
			if afby {
				result.Add(BinaryInvariant{Kind: AFby, A: a, B: b, Relation: r})
			}
			if a != b && evalAlwaysPrecedes(byType[a], byType[b], tc) {
				result.Add(BinaryInvariant{Kind: AP, A: a, B: b, Relation: r})
			}
		}
	}
}

// evalNeverAndAlwaysFollowedBy computes both NeverFollowedBy and
// AlwaysFollowedBy for one (A,B) type pair in a single pass over the A
// nodes, since both only need, for each a, whether some b is reachable.
func evalNeverAndAlwaysFollowedBy(as, bs []event.NodeID, tc *closure.Matrix) (neverFollowedBy, alwaysFollowedBy bool) {
	if len(as) == 0 {
		// Vacuously true for both: no A events exist to violate either.
		return true, true
	}
	neverFollowedBy = true
	alwaysFollowedBy = true
	for _, a := range as {
		reachesSomeB := false
		for _, b := range bs {
			if tc.IsReachable(a, b) {
				reachesSomeB = true
				break
			}
		}
		if reachesSomeB {
			neverFollowedBy = false
		} else {
			alwaysFollowedBy = false
		}
		if !neverFollowedBy && !alwaysFollowedBy {
			break
		}
	}
	return neverFollowedBy, alwaysFollowedBy
}

// evalAlwaysPrecedes reports whether every b in bs is reachable from
// some a in as.
func evalAlwaysPrecedes(as, bs []event.NodeID, tc *closure.Matrix) bool {
	if len(bs) == 0 {
		return true // vacuously true: no B events to violate it
	}
	for _, b := range bs {
		precededByA := false
		for _, a := range as {
			if tc.IsReachable(a, b) {
				precededByA = true
				break
			}
		}
		if !precededByA {
			return false
		}
	}
	return true
}

// mineInitialEventual reconstructs "INITIAL AFby x": intersect, across
// all traces, the set of event types of each trace's first event and of
// every event reachable from it, excluding TERMINAL.
func mineInitialEventual(result Set, g *event.TraceGraph, tc *closure.Matrix) {
	firstByTrace := traceFirstNodes(g)
	if len(firstByTrace) == 0 {
		return
	}

	var intersection map[event.EventType]bool
	for _, first := range firstByTrace {
		reachableTypes := make(map[event.EventType]bool)
		for _, n := range g.Nodes() {
			if n.Type == event.TerminalType {
				continue
			}
			if n.ID == first || tc.IsReachable(first, n.ID) {
				reachableTypes[n.Type] = true
			}
		}
		if intersection == nil {
			intersection = reachableTypes
			continue
		}
		for t := range intersection {
			if !reachableTypes[t] {
				delete(intersection, t)
			}
		}
	}

	for t := range intersection {
		if t.IsSpecial() {
			continue
		}
		result.Add(BinaryInvariant{Kind: AFby, A: event.InitialType, B: t, Relation: event.DefaultRelation})
	}
}

// traceFirstNodes returns, for every trace id, the NodeID of the event
// INITIAL transitions directly into (the trace's first event).
func traceFirstNodes(g *event.TraceGraph) map[string]event.NodeID {
	out := make(map[string]event.NodeID)
	initNode, err := g.Node(g.Initial())
	if err != nil {
		return out
	}
	for _, t := range initNode.Transitions[event.DefaultRelation] {
		target, err := g.Node(t.Target)
		if err != nil {
			continue
		}
		out[target.TraceID] = target.ID
	}
	return out
}
