package closure_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synoptic-core/synoptic/closure"
	"github.com/synoptic-core/synoptic/event"
)

func diamondLog() event.ParsedLog {
	a := event.NewEventType("a")
	b := event.NewEventType("b")
	c := event.NewEventType("c")
	d := event.NewEventType("d")
	return event.ParsedLog{
		TimeKind: event.CounterKind,
		Nodes: []event.ParsedLogNode{
			{Type: a, TraceID: "t1", Line: 1, Time: event.CounterTime(0)},
			{Type: b, TraceID: "t1", Line: 2, Time: event.CounterTime(1)},
			{Type: c, TraceID: "t1", Line: 3, Time: event.CounterTime(1)},
			{Type: d, TraceID: "t1", Line: 4, Time: event.CounterTime(2)},
		},
		Edges: []event.RawEdge{
			{From: 0, To: 1},
			{From: 0, To: 2},
			{From: 1, To: 3},
			{From: 2, To: 3},
		},
	}
}

func TestComputeWarshall_MatchesRecursive(t *testing.T) {
	t.Parallel()

	g, err := event.BuildTraceGraph(diamondLog())
	require.NoError(t, err)

	mw, err := closure.ComputeWarshall(g, event.DefaultRelation)
	require.NoError(t, err)
	mr, err := closure.ComputeRecursive(g, event.DefaultRelation)
	require.NoError(t, err)

	require.Equal(t, mw.N(), mr.N())
	for u := 0; u < mw.N(); u++ {
		for v := 0; v < mw.N(); v++ {
			require.Equalf(t, mw.IsReachable(event.NodeID(u), event.NodeID(v)), mr.IsReachable(event.NodeID(u), event.NodeID(v)),
				"mismatch at (%d,%d)", u, v)
		}
	}

	// a reaches d through both branches; d does not reach a.
	require.True(t, mw.IsReachable(0, 3))
	require.False(t, mw.IsReachable(3, 0))

	// no node in this acyclic graph reaches itself: the closure is
	// exact reachability, never seeded reflexively.
	for u := 0; u < mw.N(); u++ {
		require.Falsef(t, mw.IsReachable(event.NodeID(u), event.NodeID(u)), "node %d falsely self-reachable", u)
	}
}

// cycleGraph builds a 3-node cycle (0->1->2->0) on the default "t"
// relation and returns the graph with that relation.
func cycleGraph(t *testing.T) (*event.TraceGraph, event.Relation) {
	t.Helper()
	a := event.NewEventType("a")
	log := event.ParsedLog{
		TimeKind: event.CounterKind,
		Nodes: []event.ParsedLogNode{
			{Type: a, TraceID: "t1", Line: 1, Time: event.CounterTime(0)},
			{Type: a, TraceID: "t1", Line: 2, Time: event.CounterTime(1)},
			{Type: a, TraceID: "t1", Line: 3, Time: event.CounterTime(2)},
		},
		Edges: []event.RawEdge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 0}},
	}
	g, err := event.BuildTraceGraph(log)
	require.NoError(t, err)
	return g, event.DefaultRelation
}

func TestCompute_SelfReachableOnlyThroughRealCycle(t *testing.T) {
	t.Parallel()

	g, r := cycleGraph(t)
	mw, err := closure.ComputeWarshall(g, r)
	require.NoError(t, err)
	mr, err := closure.ComputeRecursive(g, r)
	require.NoError(t, err)

	for _, m := range []*closure.Matrix{mw, mr} {
		for u := 0; u < 3; u++ {
			require.Truef(t, m.IsReachable(event.NodeID(u), event.NodeID(u)), "node %d should reach itself via the cycle", u)
		}
	}
}

func TestComputeWarshall_NilGraph(t *testing.T) {
	t.Parallel()

	_, err := closure.ComputeWarshall(nil, event.DefaultRelation)
	require.ErrorIs(t, err, closure.ErrGraphNil)

	_, err = closure.ComputeRecursive(nil, event.DefaultRelation)
	require.ErrorIs(t, err, closure.ErrGraphNil)
}

func TestMatrix_OutOfRange(t *testing.T) {
	t.Parallel()

	g, err := event.BuildTraceGraph(diamondLog())
	require.NoError(t, err)
	m, err := closure.ComputeWarshall(g, event.DefaultRelation)
	require.NoError(t, err)
	require.False(t, m.IsReachable(event.NodeID(-1), 0))
	require.False(t, m.IsReachable(0, event.NodeID(999)))
}
