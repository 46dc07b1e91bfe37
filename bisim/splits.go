package bisim

import (
	"github.com/synoptic-core/synoptic/event"
	"github.com/synoptic-core/synoptic/partition"
)

// outgoingSplit groups pid's events by the partition their next
// transition on r lands in (events with no such transition form their
// own group, keyed by the zero ID). It reports ok=false when every
// event already agrees, i.e. no split would result.
func outgoingSplit(g *partition.Graph, pid partition.ID, r event.Relation) (*partition.MultiSplit, bool) {
	p, err := g.Partition(pid)
	if err != nil {
		return nil, false
	}

	groups := make(map[partition.ID][]event.NodeID)
	for _, e := range p.Events() {
		node, err := g.Trace().Node(e)
		if err != nil {
			continue
		}
		var key partition.ID
		if ts := node.Transitions[r]; len(ts) > 0 {
			if owner, ok := g.Owner(ts[0].Target); ok {
				key = owner
			}
		}
		groups[key] = append(groups[key], e)
	}

	return groupsToSplit(pid, groups)
}

// incomingSplit groups pid's events by the partition their direct
// predecessor on r belongs to (events with no predecessor on r form
// their own group, keyed by the zero ID; on the default relation a
// trace's first event has the dummy INITIAL node as predecessor). This
// requires a reverse scan of the trace graph since event.TraceGraph
// only exposes forward transitions.
func incomingSplit(g *partition.Graph, pid partition.ID, r event.Relation) (*partition.MultiSplit, bool) {
	p, err := g.Partition(pid)
	if err != nil {
		return nil, false
	}

	member := make(map[event.NodeID]bool, p.Len())
	for _, e := range p.Events() {
		member[e] = true
	}

	groups := make(map[partition.ID][]event.NodeID)
	assigned := make(map[event.NodeID]bool, p.Len())
	for _, node := range g.Trace().Nodes() {
		for _, t := range node.Transitions[r] {
			if !member[t.Target] || assigned[t.Target] {
				continue
			}
			var key partition.ID
			if owner, ok := g.Owner(node.ID); ok {
				key = owner
			}
			groups[key] = append(groups[key], t.Target)
			assigned[t.Target] = true
		}
	}
	var orphans []event.NodeID
	for _, e := range p.Events() {
		if !assigned[e] {
			orphans = append(orphans, e)
		}
	}
	if len(orphans) > 0 {
		groups[""] = append(groups[""], orphans...)
	}

	return groupsToSplit(pid, groups)
}

func groupsToSplit(pid partition.ID, groups map[partition.ID][]event.NodeID) (*partition.MultiSplit, bool) {
	if len(groups) < 2 {
		return nil, false
	}
	cells := make([][]event.NodeID, 0, len(groups))
	for _, members := range groups {
		cells = append(cells, members)
	}
	return &partition.MultiSplit{Partition: pid, Cells: cells}, true
}
