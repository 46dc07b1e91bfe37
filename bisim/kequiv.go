package bisim

import (
	"github.com/synoptic-core/synoptic/event"
	"github.com/synoptic-core/synoptic/partition"
)

// tristate is a coinductive memo cell: inProgress lets a cyclic
// comparison assume equivalence optimistically (the standard
// bisimulation up-to-congruence trick) rather than looping forever.
type tristate uint8

const (
	tsUnknown tristate = iota
	tsInProgress
	tsTrue
	tsFalse
)

type pairKey struct{ a, b partition.ID }

func canonicalPair(a, b partition.ID) pairKey {
	if a <= b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// kEquals reports whether u and v are k-Tails equivalent: same event
// type, same initial/accept status, and (if k > 0) every successor of
// one has a k-1-equivalent successor of the other, on relation r, in
// both directions. memo persists across the whole Coarsen run so
// repeated sub-comparisons are O(1) after the first.
func kEquals(g *partition.Graph, u, v partition.ID, k int, r event.Relation, memo map[pairKey]tristate) bool {
	if u == v {
		return true
	}
	key := canonicalPair(u, v)
	switch memo[key] {
	case tsInProgress:
		return true
	case tsTrue:
		return true
	case tsFalse:
		return false
	}

	up, errU := g.Partition(u)
	vp, errV := g.Partition(v)
	if errU != nil || errV != nil {
		memo[key] = tsFalse
		return false
	}
	if up.Type != vp.Type || up.Initial() != vp.Initial() || up.Accept() != vp.Accept() {
		memo[key] = tsFalse
		return false
	}
	if k <= 0 {
		memo[key] = tsTrue
		return true
	}

	memo[key] = tsInProgress
	ok := matchSuccessors(g, u, v, k, r, memo) && matchSuccessors(g, v, u, k, r, memo)
	if ok {
		memo[key] = tsTrue
	} else {
		memo[key] = tsFalse
	}
	return ok
}

// matchSuccessors reports whether every successor of u (on r) has some
// still-unmatched successor of v that is (k-1)-equivalent to it. The
// greedy first-fit matching is an approximation of full bipartite
// matching: sufficient to converge on well-separated partition graphs,
// documented as a simplification rather than an exact bisimulation
// decision procedure.
func matchSuccessors(g *partition.Graph, u, v partition.ID, k int, r event.Relation, memo map[pairKey]tristate) bool {
	succU, err := g.Successors(u, r)
	if err != nil {
		return false
	}
	succV, err := g.Successors(v, r)
	if err != nil {
		return false
	}

	used := make(map[partition.ID]bool, len(succV))
	for _, su := range succU {
		matched := false
		for _, sv := range succV {
			if used[sv] {
				continue
			}
			if kEquals(g, su, sv, k-1, r, memo) {
				used[sv] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
