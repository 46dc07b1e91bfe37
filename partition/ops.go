package partition

import "github.com/synoptic-core/synoptic/event"

// Operation is a reversible graph mutation. apply is unexported so only
// this package's four concrete operations (Split, MultiSplit, Merge,
// MultiMerge) can participate — the engine never mutates a Graph except
// through Graph.Apply(Operation), which is the only path into this
// package's state and therefore the only place caches need flushing.
type Operation interface {
	apply(g *Graph) (Operation, error)
}

// Split carves Subset out of Partition into a new partition. Illegal if
// Subset is empty or equals the whole of Partition. NewID is populated
// by apply with the freshly minted partition's ID.
type Split struct {
	Partition ID
	Subset    []event.NodeID

	NewID ID
}

func (s *Split) apply(g *Graph) (Operation, error) {
	src, ok := g.partitions[s.Partition]
	if !ok {
		return nil, ErrPartitionNotFound
	}
	if len(s.Subset) == 0 {
		return nil, ErrEmptySubset
	}
	if len(s.Subset) == src.Len() {
		return nil, ErrWholePartition
	}
	for _, e := range s.Subset {
		if !src.Has(e) {
			return nil, ErrForeignEvent
		}
	}

	newPart := &Partition{ID: newID(), Type: src.Type, events: make(map[event.NodeID]struct{}, len(s.Subset))}
	for _, e := range s.Subset {
		delete(src.events, e)
		newPart.events[e] = struct{}{}
		g.owner[e] = newPart.ID
	}
	g.partitions[newPart.ID] = newPart
	s.NewID = newPart.ID

	return &Merge{Into: s.Partition, Other: newPart.ID}, nil
}

// MultiSplit generalizes Split: it partitions Partition's events into
// k >= 2 non-empty cells. Cells[0] is retained in Partition; each
// remaining cell becomes a new partition. NewIDs[i] corresponds to
// Cells[i+1] after apply.
type MultiSplit struct {
	Partition ID
	Cells     [][]event.NodeID

	NewIDs []ID
}

// Incorporate refines m's planned partitioning by intersecting it with
// other's, dropping any resulting empty cell. Both MultiSplits must
// target the same Partition and must not yet have been applied. This
// lets the bisimulation engine fold several invariant-driven candidate
// splits of the same partition into one operation before calling Apply.
func (m *MultiSplit) Incorporate(other *MultiSplit) error {
	if m.Partition != other.Partition {
		return ErrPartitionNotFound
	}

	refined := make([][]event.NodeID, 0, len(m.Cells)*len(other.Cells))
	for _, a := range m.Cells {
		aSet := toNodeSet(a)
		for _, b := range other.Cells {
			var cell []event.NodeID
			for _, e := range b {
				if aSet[e] {
					cell = append(cell, e)
				}
			}
			if len(cell) > 0 {
				refined = append(refined, cell)
			}
		}
	}
	m.Cells = refined
	return nil
}

func toNodeSet(ids []event.NodeID) map[event.NodeID]bool {
	out := make(map[event.NodeID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func (m *MultiSplit) apply(g *Graph) (Operation, error) {
	src, ok := g.partitions[m.Partition]
	if !ok {
		return nil, ErrPartitionNotFound
	}

	nonEmpty := make([][]event.NodeID, 0, len(m.Cells))
	for _, cell := range m.Cells {
		if len(cell) > 0 {
			nonEmpty = append(nonEmpty, cell)
		}
	}
	if len(nonEmpty) < 2 {
		return nil, ErrTooFewCells
	}
	for _, cell := range nonEmpty {
		for _, e := range cell {
			if !src.Has(e) {
				return nil, ErrForeignEvent
			}
		}
	}

	// Cells[0] stays in src; the rest become fresh partitions.
	m.NewIDs = make([]ID, 0, len(nonEmpty)-1)
	for _, cell := range nonEmpty[1:] {
		newPart := &Partition{ID: newID(), Type: src.Type, events: make(map[event.NodeID]struct{}, len(cell))}
		for _, e := range cell {
			delete(src.events, e)
			newPart.events[e] = struct{}{}
			g.owner[e] = newPart.ID
		}
		g.partitions[newPart.ID] = newPart
		m.NewIDs = append(m.NewIDs, newPart.ID)
	}

	return &MultiMerge{Into: m.Partition, Others: m.NewIDs}, nil
}

// Merge moves Other's events into Into and deletes Other.
type Merge struct {
	Into  ID
	Other ID
}

func (mg *Merge) apply(g *Graph) (Operation, error) {
	if mg.Into == mg.Other {
		return nil, ErrSelfMerge
	}
	into, ok := g.partitions[mg.Into]
	if !ok {
		return nil, ErrPartitionNotFound
	}
	other, ok := g.partitions[mg.Other]
	if !ok {
		return nil, ErrPartitionNotFound
	}

	moved := other.Events()
	for _, e := range moved {
		delete(other.events, e)
		into.events[e] = struct{}{}
		g.owner[e] = into.ID
	}
	delete(g.partitions, mg.Other)

	return &Split{Partition: mg.Into, Subset: moved}, nil
}

// MultiMerge moves every partition in Others into Into and deletes them.
type MultiMerge struct {
	Into   ID
	Others []ID
}

func (mm *MultiMerge) apply(g *Graph) (Operation, error) {
	into, ok := g.partitions[mm.Into]
	if !ok {
		return nil, ErrPartitionNotFound
	}

	cells := make([][]event.NodeID, 0, len(mm.Others)+1)
	retained := into.Events()
	cells = append(cells, retained)

	for _, otherID := range mm.Others {
		if otherID == mm.Into {
			return nil, ErrSelfMerge
		}
		other, ok := g.partitions[otherID]
		if !ok {
			return nil, ErrPartitionNotFound
		}
		moved := other.Events()
		for _, e := range moved {
			delete(other.events, e)
			into.events[e] = struct{}{}
			g.owner[e] = into.ID
		}
		delete(g.partitions, otherID)
		cells = append(cells, moved)
	}

	return &MultiSplit{Partition: mm.Into, Cells: cells}, nil
}
