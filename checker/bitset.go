package checker

import (
	"context"

	"github.com/synoptic-core/synoptic/event"
	"github.com/synoptic-core/synoptic/invariant"
	"github.com/synoptic-core/synoptic/partition"
)

// fastStateSet tracks every invariant's automaton state side by side,
// one byte per invariant, so a single RunFixpoint pass answers every
// invariant sharing a relation at once. invs is a shared read-only
// ordering reference across every instance produced by one CheckFast
// call; states is the only field that varies per-partition.
type fastStateSet struct {
	invs   []invariant.BinaryInvariant
	states []autoState
}

func newFastStateSet(invs []invariant.BinaryInvariant) *fastStateSet {
	return &fastStateSet{invs: invs, states: make([]autoState, len(invs))}
}

func (s *fastStateSet) Copy() IStateSet {
	cp := make([]autoState, len(s.states))
	copy(cp, s.states)
	return &fastStateSet{invs: s.invs, states: cp}
}

// SetInitial is a no-op: NIL is already every automaton's initial state.
func (s *fastStateSet) SetInitial(partition.ID) IStateSet { return s }

func (s *fastStateSet) Transition(_ partition.ID, target event.EventType, isAccept bool) IStateSet {
	out := s.Copy().(*fastStateSet)
	for i, inv := range s.invs {
		out.states[i] = transitionOne(inv, s.states[i], target, isAccept)
	}
	return out
}

// Subset reports that s carries no state other hasn't already recorded
// for any automaton (monotone: NIL < sawA < fail).
func (s *fastStateSet) Subset(otherSet IStateSet) bool {
	other := otherSet.(*fastStateSet)
	for i := range s.states {
		if s.states[i] > other.states[i] {
			return false
		}
	}
	return true
}

func (s *fastStateSet) Merge(otherSet IStateSet) IStateSet {
	other := otherSet.(*fastStateSet)
	out := make([]autoState, len(s.states))
	for i := range s.states {
		out[i] = s.states[i]
		if other.states[i] > out[i] {
			out[i] = other.states[i]
		}
	}
	return &fastStateSet{invs: s.invs, states: out}
}

func (s *fastStateSet) IsFail() bool {
	for _, st := range s.states {
		if st == stateFail {
			return true
		}
	}
	return false
}

// CheckFast evaluates every invariant in invs against g in one fixpoint
// pass per distinct relation, returning the subset that fails. It never
// produces a CounterExamplePath; use CheckTracing for that.
func CheckFast(ctx context.Context, g *partition.Graph, invs invariant.Set) (invariant.Set, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	byRel := make(map[event.Relation][]invariant.BinaryInvariant)
	for inv := range invs {
		byRel[inv.Relation] = append(byRel[inv.Relation], inv)
	}

	failed := invariant.NewSet()
	for rel, list := range byRel {
		list := list
		final, err := RunFixpoint(ctx, g, rel, func() IStateSet { return newFastStateSet(list) })
		if err != nil {
			return nil, err
		}
		for pid, st := range final {
			p, err := g.Partition(pid)
			if err != nil || !p.Accept() {
				continue
			}
			fss := st.(*fastStateSet)
			for i, inv := range list {
				if fss.states[i] == stateFail {
					failed.Add(inv)
				}
			}
		}
	}

	return failed, nil
}
