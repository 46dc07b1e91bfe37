package partition

import (
	"github.com/google/uuid"
	"github.com/synoptic-core/synoptic/event"
)

// ID uniquely identifies a Partition within a Graph. Fresh IDs are
// minted with uuid so Split/MultiSplit never need a caller-supplied
// allocator and never collide across concurrent bisim runs sharing a
// process.
type ID string

// newID mints a fresh, collision-free partition ID.
func newID() ID {
	return ID(uuid.NewString())
}

// Partition is a non-empty set of EventNodes sharing one event type.
type Partition struct {
	ID   ID
	Type event.EventType

	events map[event.NodeID]struct{}

	initial bool // some event in this partition is INITIAL's direct successor
	accept  bool // some event in this partition transitions directly to TERMINAL
}

// Events returns the set of NodeIDs this partition currently owns, as a
// freshly allocated slice (callers may not mutate partition state via
// it).
func (p *Partition) Events() []event.NodeID {
	out := make([]event.NodeID, 0, len(p.events))
	for id := range p.events {
		out = append(out, id)
	}
	return out
}

// Len returns the number of events this partition owns.
func (p *Partition) Len() int { return len(p.events) }

// Has reports whether id belongs to this partition.
func (p *Partition) Has(id event.NodeID) bool {
	_, ok := p.events[id]
	return ok
}

// Initial reports whether this partition contains some event node that
// is a direct successor of the trace graph's dummy INITIAL node.
func (p *Partition) Initial() bool { return p.initial }

// Accept reports whether this partition contains some event node that
// directly transitions to the trace graph's dummy TERMINAL node.
func (p *Partition) Accept() bool { return p.accept }
