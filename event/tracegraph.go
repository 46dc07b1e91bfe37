package event

import (
	"fmt"
	"sort"
)

// Shape distinguishes the two trace-graph topologies the spec names:
// a totally-ordered chain (at most one successor per node on the
// default relation) or a partially-ordered DAG (vector time).
type Shape int

const (
	ShapeChain Shape = iota
	ShapeDAG
)

func (s Shape) String() string {
	if s == ShapeChain {
		return "chain"
	}
	return "dag"
}

// RawEdge is a direct-temporal edge between two ParsedLog node indices,
// as handed in by a parser collaborator.
type RawEdge struct {
	From      int
	To        int
	Relation  Relation
	DeltaTime TimeDelta
}

// ParsedLogNode is one event occurrence as handed in by a parser
// collaborator, before dummy INITIAL/TERMINAL nodes are added and
// before NodeID assignment.
type ParsedLogNode struct {
	Type    EventType
	TraceID string
	Line    int
	Time    Time
}

// ParsedLog is the C1 boundary input: a sequence of event-node records
// plus an ordered list of direct-temporal edges, and a time-type
// discriminator fixed for the whole run. This is the one seam where a
// future log-parsing collaborator attaches; nothing past
// BuildTraceGraph ever looks at raw log lines again.
type ParsedLog struct {
	Nodes    []ParsedLogNode
	Edges    []RawEdge
	TimeKind TimeKind
}

// TraceGraph is an immutable container of EventNodes, fully constructed
// by BuildTraceGraph and read-only thereafter. It adds one dummy
// INITIAL node and one dummy TERMINAL node per constructed graph: every
// per-trace first event gets an INITIAL predecessor, every per-trace
// last event gets a TERMINAL successor.
type TraceGraph struct {
	nodes    []*EventNode
	timeKind TimeKind
	shape    Shape
	traceIDs []string

	initial NodeID
	terminal NodeID
}

// BuildTraceGraph validates and freezes a ParsedLog into a TraceGraph.
// It is the only function in the event package that constructs nodes;
// everything downstream of it treats the result as read-only.
func BuildTraceGraph(log ParsedLog) (*TraceGraph, error) {
	if len(log.Nodes) == 0 {
		return nil, fmt.Errorf("%w: empty node list", ErrMalformedLog)
	}

	g := &TraceGraph{timeKind: log.TimeKind}

	// Arena: copy parsed nodes in order, assigning NodeID = slice index.
	g.nodes = make([]*EventNode, 0, len(log.Nodes)+2*countTraces(log.Nodes))
	traceOrder := make([]string, 0)
	traceSeen := make(map[string]bool)
	traceFirst := make(map[string]NodeID)
	traceLast := make(map[string]NodeID)

	for _, pn := range log.Nodes {
		if pn.TraceID == "" {
			return nil, fmt.Errorf("%w: node at line %d has empty trace id", ErrMalformedLog, pn.Line)
		}
		if pn.Time != nil && pn.Time.Kind() != log.TimeKind {
			return nil, fmt.Errorf("%w: node at line %d has time kind %s, graph is %s",
				ErrMalformedLog, pn.Line, pn.Time.Kind(), log.TimeKind)
		}
		id := NodeID(len(g.nodes))
		g.nodes = append(g.nodes, &EventNode{
			ID:          id,
			Type:        pn.Type,
			TraceID:     pn.TraceID,
			Line:        pn.Line,
			Time:        pn.Time,
			Transitions: make(map[Relation][]Transition),
		})
		if !traceSeen[pn.TraceID] {
			traceSeen[pn.TraceID] = true
			traceOrder = append(traceOrder, pn.TraceID)
			traceFirst[pn.TraceID] = id
		}
		traceLast[pn.TraceID] = id
	}

	// Wire direct-temporal edges from the parser.
	for _, e := range log.Edges {
		if e.From < 0 || e.From >= len(log.Nodes) || e.To < 0 || e.To >= len(log.Nodes) {
			return nil, fmt.Errorf("%w: edge references out-of-range node index", ErrMalformedLog)
		}
		rel := e.Relation
		if rel == "" {
			rel = DefaultRelation
		}
		src := g.nodes[e.From]
		src.Transitions[rel] = append(src.Transitions[rel], Transition{
			Relation:  rel,
			Target:    NodeID(e.To),
			DeltaTime: e.DeltaTime,
		})
	}

	sort.Strings(traceOrder)
	g.traceIDs = traceOrder

	// Append one dummy INITIAL and one dummy TERMINAL node, connecting
	// INITIAL to every trace's first event and every trace's last event
	// to TERMINAL, on DefaultRelation.
	initID := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &EventNode{ID: initID, Type: InitialType, Transitions: make(map[Relation][]Transition)})
	termID := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &EventNode{ID: termID, Type: TerminalType, Transitions: make(map[Relation][]Transition)})
	g.initial = initID
	g.terminal = termID

	initNode := g.nodes[initID]
	for _, tid := range traceOrder {
		first := traceFirst[tid]
		last := traceLast[tid]
		initNode.Transitions[DefaultRelation] = append(initNode.Transitions[DefaultRelation], Transition{
			Relation: DefaultRelation,
			Target:   first,
		})
		lastNode := g.nodes[last]
		lastNode.Transitions[DefaultRelation] = append(lastNode.Transitions[DefaultRelation], Transition{
			Relation: DefaultRelation,
			Target:   termID,
		})
	}

	g.shape = detectShape(g)

	return g, nil
}

func countTraces(nodes []ParsedLogNode) int {
	seen := make(map[string]bool)
	for _, n := range nodes {
		seen[n.TraceID] = true
	}
	return len(seen)
}

// detectShape reports ShapeChain iff every node has at most one outgoing
// transition on DefaultRelation, i.e. traces are totally ordered.
func detectShape(g *TraceGraph) Shape {
	for _, n := range g.nodes {
		if len(n.Transitions[DefaultRelation]) > 1 {
			return ShapeDAG
		}
	}
	return ShapeChain
}

// TimeKind returns the fixed timestamp representation for this graph.
func (g *TraceGraph) TimeKind() TimeKind { return g.timeKind }

// Shape reports whether traces are totally ordered (chain) or partially
// ordered (dag).
func (g *TraceGraph) Shape() Shape { return g.shape }

// Initial returns the dummy INITIAL node's id.
func (g *TraceGraph) Initial() NodeID { return g.initial }

// Terminal returns the dummy TERMINAL node's id.
func (g *TraceGraph) Terminal() NodeID { return g.terminal }

// TraceIDs returns the sorted, deduplicated list of trace ids.
func (g *TraceGraph) TraceIDs() []string { return g.traceIDs }

// NumNodes returns the total node count, including the two dummy nodes.
func (g *TraceGraph) NumNodes() int { return len(g.nodes) }

// Node returns the node at id, or ErrNodeNotFound if id is out of range.
func (g *TraceGraph) Node(id NodeID) (*EventNode, error) {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil, ErrNodeNotFound
	}
	return g.nodes[id], nil
}

// Nodes returns the full node arena, in NodeID order. Callers must not
// mutate the returned slice's elements.
func (g *TraceGraph) Nodes() []*EventNode { return g.nodes }

// NodesByType groups every node's id by its EventType.
func (g *TraceGraph) NodesByType() map[EventType][]NodeID {
	out := make(map[EventType][]NodeID)
	for _, n := range g.nodes {
		out[n.Type] = append(out[n.Type], n.ID)
	}
	return out
}

// Successors returns the NodeIDs reachable from id via one transition on
// relation r.
func (g *TraceGraph) Successors(id NodeID, r Relation) ([]NodeID, error) {
	n, err := g.Node(id)
	if err != nil {
		return nil, err
	}
	ts := n.transitionsOn(r)
	out := make([]NodeID, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Target)
	}
	return out, nil
}
