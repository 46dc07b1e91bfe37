package bisim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synoptic-core/synoptic/bisim"
	"github.com/synoptic-core/synoptic/config"
	"github.com/synoptic-core/synoptic/event"
	"github.com/synoptic-core/synoptic/invariant"
	"github.com/synoptic-core/synoptic/partition"
)

func TestNew_NilGraph(t *testing.T) {
	t.Parallel()

	c, err := config.New()
	require.NoError(t, err)
	_, err = bisim.New(nil, c, nil)
	require.ErrorIs(t, err, bisim.ErrGraphNil)
}

// twoTraceLog builds two traces, a->b and a->z, so AFby(a,b) manually
// asserted over both does not structurally hold: the a->z trace never
// reaches b on any path, and no amount of partition splitting changes
// which trace-graph edges exist.
func twoTraceLog(t *testing.T) *event.TraceGraph {
	t.Helper()
	a := event.NewEventType("a")
	b := event.NewEventType("b")
	z := event.NewEventType("z")
	log := event.ParsedLog{
		TimeKind: event.CounterKind,
		Nodes: []event.ParsedLogNode{
			{Type: a, TraceID: "t1", Line: 1, Time: event.CounterTime(0)},
			{Type: b, TraceID: "t1", Line: 2, Time: event.CounterTime(1)},
			{Type: a, TraceID: "t2", Line: 1, Time: event.CounterTime(0)},
			{Type: z, TraceID: "t2", Line: 2, Time: event.CounterTime(1)},
		},
		Edges: []event.RawEdge{{From: 0, To: 1}, {From: 2, To: 3}},
	}
	g, err := event.BuildTraceGraph(log)
	require.NoError(t, err)
	return g
}

func TestRefine_UnsatisfiableInvariantReturnsError(t *testing.T) {
	t.Parallel()

	g := twoTraceLog(t)
	a := event.NewEventType("a")
	b := event.NewEventType("b")

	invs := invariant.NewSet()
	invs.Add(invariant.BinaryInvariant{Kind: invariant.AFby, A: a, B: b, Relation: event.DefaultRelation})

	pg, err := partition.New(g, invs)
	require.NoError(t, err)

	cfg, err := config.New()
	require.NoError(t, err)
	e, err := bisim.New(pg, cfg, nil)
	require.NoError(t, err)

	err = e.Refine(context.Background())
	require.ErrorIs(t, err, bisim.ErrInvariantsUnsatisfiable)
}

func TestRefine_NoopWhenAlreadySatisfied(t *testing.T) {
	t.Parallel()

	g := twoTraceLog(t)
	a := event.NewEventType("a")
	b := event.NewEventType("b")

	invs := invariant.NewSet()
	invs.Add(invariant.BinaryInvariant{Kind: invariant.AP, A: a, B: b, Relation: event.DefaultRelation})

	pg, err := partition.New(g, invs)
	require.NoError(t, err)
	before := len(pg.Partitions())

	cfg, err := config.New()
	require.NoError(t, err)
	e, err := bisim.New(pg, cfg, nil)
	require.NoError(t, err)

	require.NoError(t, e.Refine(context.Background()))
	require.Equal(t, before, len(pg.Partitions()))
}

func TestRefine_SkippedWhenConfigured(t *testing.T) {
	t.Parallel()

	g := twoTraceLog(t)
	a := event.NewEventType("a")
	b := event.NewEventType("b")

	invs := invariant.NewSet()
	invs.Add(invariant.BinaryInvariant{Kind: invariant.AFby, A: a, B: b, Relation: event.DefaultRelation})

	pg, err := partition.New(g, invs)
	require.NoError(t, err)

	cfg, err := config.New(config.WithNoRefinement(true))
	require.NoError(t, err)
	e, err := bisim.New(pg, cfg, nil)
	require.NoError(t, err)

	require.NoError(t, e.Refine(context.Background()))
}

// twoSymmetricTracesLog builds t1: a->b and t2: a->b with two distinct
// "a" events that behave identically, so after manually splitting the
// shared "a" partition in two, Coarsen should merge them back.
func twoSymmetricTracesLog(t *testing.T) *event.TraceGraph {
	t.Helper()
	a := event.NewEventType("a")
	b := event.NewEventType("b")
	log := event.ParsedLog{
		TimeKind: event.CounterKind,
		Nodes: []event.ParsedLogNode{
			{Type: a, TraceID: "t1", Line: 1, Time: event.CounterTime(0)},
			{Type: b, TraceID: "t1", Line: 2, Time: event.CounterTime(1)},
			{Type: a, TraceID: "t2", Line: 1, Time: event.CounterTime(0)},
			{Type: b, TraceID: "t2", Line: 2, Time: event.CounterTime(1)},
		},
		Edges: []event.RawEdge{{From: 0, To: 1}, {From: 2, To: 3}},
	}
	g, err := event.BuildTraceGraph(log)
	require.NoError(t, err)
	return g
}

func TestCoarsen_RemergesKTailsEquivalentPartitions(t *testing.T) {
	t.Parallel()

	g := twoSymmetricTracesLog(t)
	pg, err := partition.New(g, invariant.NewSet())
	require.NoError(t, err)

	var aPart partition.ID
	for _, p := range pg.Partitions() {
		if p.Has(0) {
			aPart = p.ID
		}
	}
	require.NotEmpty(t, aPart)

	before := len(pg.Partitions())
	_, err = pg.Apply(&partition.MultiSplit{Partition: aPart, Cells: [][]event.NodeID{{0}, {2}}})
	require.NoError(t, err)
	require.Len(t, pg.Partitions(), before+1)

	cfg, err := config.New(config.WithKTailsK(1))
	require.NoError(t, err)
	e, err := bisim.New(pg, cfg, nil)
	require.NoError(t, err)

	require.NoError(t, e.Coarsen(context.Background()))
	require.Equal(t, before, len(pg.Partitions()))
}

func TestCoarsen_SkippedWhenConfigured(t *testing.T) {
	t.Parallel()

	g := twoSymmetricTracesLog(t)
	pg, err := partition.New(g, invariant.NewSet())
	require.NoError(t, err)

	var aPart partition.ID
	for _, p := range pg.Partitions() {
		if p.Has(0) {
			aPart = p.ID
		}
	}
	before := len(pg.Partitions())
	_, err = pg.Apply(&partition.MultiSplit{Partition: aPart, Cells: [][]event.NodeID{{0}, {2}}})
	require.NoError(t, err)

	cfg, err := config.New(config.WithNoCoarsening(true))
	require.NoError(t, err)
	e, err := bisim.New(pg, cfg, nil)
	require.NoError(t, err)

	require.NoError(t, e.Coarsen(context.Background()))
	require.Equal(t, before+1, len(pg.Partitions()))
}
