package checker

import (
	"context"

	"github.com/synoptic-core/synoptic/event"
	"github.com/synoptic-core/synoptic/partition"
)

// RunFixpoint drives any IStateSet implementation to quiescence over g's
// induced partition graph on relation r. Every partition starts with a
// fresh zero-value state from newState; initial partitions additionally
// get SetInitial and seed the worklist. The first candidate state to
// arrive at a not-yet-reached partition replaces its fresh state
// outright; later candidates are merged only when they are not a Subset
// of what is already recorded.
//
// Grounded on the teacher's BFS walker (queue, enqueue, dequeue, a
// single cancellation check per loop iteration) generalized from a
// one-pass visited-set traversal to a dataflow worklist: a partition is
// re-enqueued whenever merging a candidate state into its current one
// actually changes it, since a cycle in the partition graph may need
// several rounds before every automaton state stops growing.
//
// ctx is checked once per dequeue; on cancellation RunFixpoint returns
// whatever partial states it has computed along with ctx.Err().
func RunFixpoint(ctx context.Context, g *partition.Graph, r event.Relation, newState func() IStateSet) (map[partition.ID]IStateSet, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	states := make(map[partition.ID]IStateSet)
	queue := make([]partition.ID, 0)
	inQueue := make(map[partition.ID]bool)
	reached := make(map[partition.ID]bool)

	for _, p := range g.Partitions() {
		states[p.ID] = newState()
	}
	for _, p := range g.Partitions() {
		if p.Initial() {
			// SetInitial resets to the pristine pre-entry state; the
			// Transition that follows walks into p itself so p's own
			// type reaches the automaton the same way every later step
			// does. Without it, a trace's very first event (often type
			// A of some AFby/NFby/AP invariant) would never register —
			// nothing ever transitions "into" the seed partition from
			// outside.
			states[p.ID] = states[p.ID].SetInitial(p.ID).Transition(p.ID, p.Type, p.Accept())
			queue = append(queue, p.ID)
			inQueue[p.ID] = true
			reached[p.ID] = true
		}
	}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return states, ctx.Err()
		default:
		}

		n := queue[0]
		queue = queue[1:]
		inQueue[n] = false

		succs, err := g.Successors(n, r)
		if err != nil {
			continue
		}
		for _, m := range succs {
			mPart, err := g.Partition(m)
			if err != nil {
				continue
			}
			candidate := states[n].Copy().Transition(m, mPart.Type, mPart.Accept())
			switch {
			case !reached[m]:
				// A fresh state and a reached NIL state look alike to
				// Subset, so the first arrival is taken as is; otherwise a
				// walk still in NIL would stop at its first step.
				reached[m] = true
				states[m] = candidate
			case candidate.Subset(states[m]):
				continue
			default:
				states[m] = states[m].Merge(candidate)
			}
			if !inQueue[m] {
				queue = append(queue, m)
				inQueue[m] = true
			}
		}
	}

	return states, nil
}
