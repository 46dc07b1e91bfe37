// Adapted from the teacher's depth-first traversal (dfsWalker/traverse):
// same visited-set-guarded recursive exploration and context-free
// single-pass-per-source shape, stripped of hooks/depth-limits/filters
// that have no role in a transitive-closure computer, and run once per
// source node to mark everything that source reaches.
package closure

import "github.com/synoptic-core/synoptic/event"

// ComputeRecursive builds the reachability Matrix for relation r over g
// using depth-first marking from every node: for each source, a DFS
// marks every node it can reach. Complexity: O(n*(n+e)) time.
func ComputeRecursive(g *event.TraceGraph, r event.Relation) (*Matrix, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	n := g.NumNodes()
	m := newMatrix(n)
	nodes := g.Nodes()

	visited := make([]bool, n)
	for _, src := range nodes {
		for i := range visited {
			visited[i] = false
		}
		// source itself is marked visited (to bound the recursion) but
		// is not seeded reachable — only an actual cycle back to source,
		// discovered via a transition below, sets that bit.
		visited[src.ID] = true
		for _, t := range nodes[src.ID].Transitions[r] {
			markReachable(nodes, r, src.ID, t.Target, m, visited)
		}
	}

	return m, nil
}

// markReachable marks cur as reachable from source, then — unless cur
// was already visited in this source's pass — recurses across cur's
// outgoing transitions. The reachability bit is set before the visited
// check so a cycle back to source (or to any other already-visited
// node) is still recorded, even though the recursion itself stops
// there; this is what makes self-reachability exact: true only when a
// real cycle exists, never seeded.
func markReachable(nodes []*event.EventNode, r event.Relation, source, cur event.NodeID, m *Matrix, visited []bool) {
	m.set(source, cur)
	if visited[cur] {
		return
	}
	visited[cur] = true

	for _, t := range nodes[cur].Transitions[r] {
		markReachable(nodes, r, source, t.Target, m, visited)
	}
}
