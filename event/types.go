package event

import "fmt"

// Relation names a family of transitions between events. The default
// temporal relation used by mining and checking is "t"; other relations
// may coexist on the same trace graph (e.g. a distributed "process
// order" relation alongside the total "t" order).
type Relation string

// DefaultRelation is the temporal successor relation every trace graph
// carries.
const DefaultRelation Relation = "t"

// EventType identifies a kind of event: either a plain label, or — for
// distributed traces — a (label, process-id) pair. Equality is
// structural (comparable struct), so EventType values may be used
// directly as map keys.
type EventType struct {
	Label     string
	ProcessID string // empty for non-distributed traces
}

// NewEventType constructs a plain (non-distributed) EventType.
func NewEventType(label string) EventType {
	return EventType{Label: label}
}

// NewProcessEventType constructs a distributed (label, process-id) EventType.
func NewProcessEventType(label, processID string) EventType {
	return EventType{Label: label, ProcessID: processID}
}

// InitialType and TerminalType are the two distinguished event types
// every trace graph carries: INITIAL precedes every trace's first
// event, TERMINAL follows every trace's last event.
var (
	InitialType  = EventType{Label: "INITIAL"}
	TerminalType = EventType{Label: "TERMINAL"}
)

// IsSpecial reports whether t is the distinguished INITIAL or TERMINAL type.
func (t EventType) IsSpecial() bool {
	return t == InitialType || t == TerminalType
}

func (t EventType) String() string {
	if t.ProcessID == "" {
		return t.Label
	}
	return fmt.Sprintf("%s@%s", t.Label, t.ProcessID)
}

// NodeID is an index into a TraceGraph's node arena. Partitions and
// other consumers hold sets of NodeID rather than *EventNode pointers,
// keeping ownership one-directional (TraceGraph owns EventNodes; nobody
// else does).
type NodeID int

// invalidNodeID marks "no node" (e.g. an unset parent link).
const invalidNodeID NodeID = -1

// Transition is a directed edge, labelled by Relation, from the event
// node it is attached to (implicit: the owning EventNode.Transitions
// map) to Target. DeltaTime carries the single time delta for this
// edge; Deltas optionally carries a longer series of deltas accumulated
// across partition-level merges (see partition.Partition's induced
// transition metadata).
type Transition struct {
	Relation  Relation
	Target    NodeID
	DeltaTime TimeDelta
	Deltas    []TimeDelta
}

// EventNode is a single observed event occurrence.
//
// PartitionID is a slot for a weak back-reference to the owning
// Partition, written only through SetPartitionID; event never reads or
// interprets it. It is a plain string rather than a
// *partition.Partition to avoid an import cycle between event and
// partition. The partition package does not set it: it tracks event
// ownership in partition.Graph (see Graph.Owner) instead.
type EventNode struct {
	ID          NodeID
	Type        EventType
	TraceID     string
	Line        int
	Time        Time
	Transitions map[Relation][]Transition

	PartitionID string
}

// SetPartitionID updates the weak back-reference to the owning partition.
func (n *EventNode) SetPartitionID(id string) {
	n.PartitionID = id
}

// transitionsOn returns n's outgoing transitions for relation r (nil if none).
func (n *EventNode) transitionsOn(r Relation) []Transition {
	if n.Transitions == nil {
		return nil
	}
	return n.Transitions[r]
}
