package closure

import "github.com/synoptic-core/synoptic/event"

// NodeIndex is the dense index a Matrix is addressed by. It is an alias
// of event.NodeID, so a trace graph's node ids index a Matrix directly,
// with no conversion.
type NodeIndex = event.NodeID

// Matrix is a bit-packed reachability matrix: one bit per (u, v) pair,
// row-major, 64 cells per uint64 word. For N nodes it costs N²/64
// words — the O(N²/8) bound the resource model names.
type Matrix struct {
	n    int
	bits []uint64
}

func newMatrix(n int) *Matrix {
	words := (n*n + 63) / 64
	return &Matrix{n: n, bits: make([]uint64, words)}
}

func (m *Matrix) index(u, v NodeIndex) (word int, bit uint) {
	flat := int(u)*m.n + int(v)
	return flat / 64, uint(flat % 64)
}

func (m *Matrix) set(u, v NodeIndex) {
	w, b := m.index(u, v)
	m.bits[w] |= 1 << b
}

func (m *Matrix) get(u, v NodeIndex) bool {
	w, b := m.index(u, v)
	return m.bits[w]&(1<<b) != 0
}

// IsReachable reports whether v is reachable from u in O(1).
func (m *Matrix) IsReachable(u, v NodeIndex) bool {
	if int(u) < 0 || int(u) >= m.n || int(v) < 0 || int(v) >= m.n {
		return false
	}
	return m.get(u, v)
}

// N returns the matrix order (number of nodes it was built over).
func (m *Matrix) N() int { return m.n }
