package checker

import (
	"context"

	"github.com/synoptic-core/synoptic/event"
	"github.com/synoptic-core/synoptic/invariant"
	"github.com/synoptic-core/synoptic/partition"
)

// historyNode is a persistent, backward-linked walk record: each step
// through the partition graph allocates one, pointing at its
// predecessor, so two states that share a prefix share its nodes
// instead of copying them.
type historyNode struct {
	partition   partition.ID
	predecessor *historyNode
	length      int
}

// path reconstructs the forward-ordered partition sequence this node
// terminates, oldest first.
func (h *historyNode) path() []partition.ID {
	if h == nil {
		return nil
	}
	out := make([]partition.ID, h.length)
	for n, i := h, h.length-1; n != nil && i >= 0; n, i = n.predecessor, i-1 {
		out[i] = n.partition
	}
	return out
}

// tracingStateSet tracks exactly one invariant's automaton state plus
// the shortest history chain that reached it, so TracingChecker
// reconstructs a minimal CounterExamplePath on FAIL.
type tracingStateSet struct {
	inv     invariant.BinaryInvariant
	state   autoState
	history *historyNode
}

func newTracingStateSet(inv invariant.BinaryInvariant) *tracingStateSet {
	return &tracingStateSet{inv: inv}
}

func (s *tracingStateSet) Copy() IStateSet {
	cp := *s
	return &cp
}

// SetInitial resets to the pristine pre-entry state (nil state, no
// history yet). RunFixpoint immediately follows with a Transition into
// the partition itself, which is what actually records it in history —
// so the seed partition's own type reaches transitionOne exactly like
// any other step, instead of being silently skipped.
func (s *tracingStateSet) SetInitial(partition.ID) IStateSet {
	return &tracingStateSet{inv: s.inv}
}

func (s *tracingStateSet) Transition(targetID partition.ID, target event.EventType, isAccept bool) IStateSet {
	next := transitionOne(s.inv, s.state, target, isAccept)
	nextLen := 1
	if s.history != nil {
		nextLen = s.history.length + 1
	}
	return &tracingStateSet{
		inv:     s.inv,
		state:   next,
		history: &historyNode{partition: targetID, predecessor: s.history, length: nextLen},
	}
}

// Subset reports whether merging s into other would leave other
// unchanged. On a state tie this must also compare history length —
// not just the automaton state — or the worklist driver would
// short-circuit on a same-state candidate that actually carries a
// shorter (better) witness, letting a longer FAIL path win the race
// depending on queue order and weakening the shortest-counter-example
// guarantee.
func (s *tracingStateSet) Subset(otherSet IStateSet) bool {
	other := otherSet.(*tracingStateSet)
	if s.state != other.state {
		return s.state < other.state
	}
	return historyLen(s.history) >= historyLen(other.history)
}

func historyLen(h *historyNode) int {
	if h == nil {
		return 0
	}
	return h.length
}

// Merge keeps whichever of the two carries the more advanced (or, on a
// tie, the shorter) witness — the driver only calls Merge when Subset
// above has already determined other strictly improves on s.
func (s *tracingStateSet) Merge(otherSet IStateSet) IStateSet {
	other := otherSet.(*tracingStateSet)
	if other.state > s.state {
		return other
	}
	if other.state == s.state && historyLen(other.history) < historyLen(s.history) {
		return other
	}
	return s
}

func (s *tracingStateSet) IsFail() bool { return s.state == stateFail }

// TracingChecker evaluates one invariant at a time against a partition
// graph, annotating every automaton step with the partition it stepped
// into so a FAIL can be replayed as a shortest counter-example path.
type TracingChecker struct{}

// Check runs inv's automaton over g and returns its CounterExamplePath.
// Holds is true and Path is nil when the invariant was not violated.
func (TracingChecker) Check(ctx context.Context, g *partition.Graph, inv invariant.BinaryInvariant) (*CounterExamplePath, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	final, err := RunFixpoint(ctx, g, inv.Relation, func() IStateSet { return newTracingStateSet(inv) })
	if err != nil {
		return nil, err
	}

	var best *tracingStateSet
	for pid, stIface := range final {
		st := stIface.(*tracingStateSet)
		if st.state != stateFail {
			continue
		}
		p, err := g.Partition(pid)
		if err != nil || !p.Accept() {
			continue
		}
		if best == nil || (st.history != nil && (best.history == nil || st.history.length < best.history.length)) {
			best = st
		}
	}

	if best == nil {
		return &CounterExamplePath{Invariant: inv, Holds: true}, nil
	}
	return &CounterExamplePath{Invariant: inv, Holds: false, Path: best.history.path()}, nil
}

// CheckTracing runs TracingChecker across every invariant in invs,
// returning one CounterExamplePath per invariant that fails.
func CheckTracing(ctx context.Context, g *partition.Graph, invs invariant.Set) (map[invariant.BinaryInvariant]*CounterExamplePath, error) {
	var tc TracingChecker
	out := make(map[invariant.BinaryInvariant]*CounterExamplePath)
	for inv := range invs {
		cep, err := tc.Check(ctx, g, inv)
		if err != nil {
			return nil, err
		}
		if !cep.Holds {
			out[inv] = cep
		}
	}
	return out, nil
}
