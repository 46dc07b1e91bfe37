package checker

import (
	"github.com/synoptic-core/synoptic/event"
	"github.com/synoptic-core/synoptic/invariant"
	"github.com/synoptic-core/synoptic/partition"
)

// Mode selects which of the two fixpoint strategies a Result was
// produced by.
type Mode int

const (
	// FastMode packs every invariant's automaton state per partition and
	// answers only "does it hold", in one fixpoint pass per relation.
	FastMode Mode = iota
	// TracingMode runs one invariant at a time and threads a history
	// chain so a FAIL can be replayed into a CounterExamplePath.
	TracingMode
)

func (m Mode) String() string {
	switch m {
	case FastMode:
		return "fast"
	case TracingMode:
		return "tracing"
	default:
		return "unknown"
	}
}

// CounterExamplePath is the ordered sequence of partitions a violating
// walk through the partition graph passed through, shortest-first. An
// empty Path with Holds true means the invariant was not violated.
type CounterExamplePath struct {
	Invariant invariant.BinaryInvariant
	Holds     bool
	Path      []partition.ID
}

// Result is the outcome of checking one invariant.Set against one
// partition.Graph.
type Result struct {
	Mode Mode

	// Failed holds every invariant found false, regardless of mode.
	Failed invariant.Set

	// CounterExamples is populated only in TracingMode, one entry per
	// failed invariant.
	CounterExamples map[invariant.BinaryInvariant]*CounterExamplePath
}

// IStateSet is the automaton-state-per-partition contract the fixpoint
// driver operates over. Implementations decide what "state" means: a
// packed slice of per-invariant automaton states (fastStateSet) or a
// single automaton state plus a history chain (tracingStateSet).
type IStateSet interface {
	// Copy returns an independent value the driver may mutate via
	// Transition without affecting the receiver.
	Copy() IStateSet

	// SetInitial resets the state set to its pristine pre-entry value for
	// seeding the worklist at initial partition id. It does not fold in
	// id's own type: RunFixpoint immediately follows it with a Transition
	// into id itself, so the seed partition is registered the same way
	// every other step is.
	SetInitial(id partition.ID) IStateSet

	// Transition advances the state set across an edge into partition
	// targetID (of type target), whether or not that partition is an
	// accepting one.
	Transition(targetID partition.ID, target event.EventType, isAccept bool) IStateSet

	// Subset reports whether the receiver carries no information the
	// worklist driver hasn't already recorded in other — i.e. merging
	// the receiver into other would not change it. The driver stops
	// propagating once every successor reaches this fixpoint.
	Subset(other IStateSet) bool

	// Merge folds other's information into the receiver, returning the
	// (possibly new) merged value.
	Merge(other IStateSet) IStateSet

	// IsFail reports whether any tracked automaton has reached FAIL.
	IsFail() bool
}
