package invariant

import (
	"fmt"

	"github.com/synoptic-core/synoptic/event"
)

// Kind tags which of the three binary temporal shapes an invariant has.
// A tagged-struct enum rather than an interface hierarchy, per the
// design note against dynamic dispatch over invariant kinds: one
// switch at each consumer (the checker's automaton selector) picks the
// right behavior, no inheritance needed.
type Kind int

const (
	AFby Kind = iota // AlwaysFollowedBy(A, B): after every A there is eventually a B
	AP               // AlwaysPrecedes(A, B): every B is preceded by some A
	NFby             // NeverFollowedBy(A, B): after any A, B never occurs
)

func (k Kind) String() string {
	switch k {
	case AFby:
		return "AFby"
	case AP:
		return "AP"
	case NFby:
		return "NFby"
	default:
		return "unknown"
	}
}

// BinaryInvariant is a single mined temporal property over an ordered
// pair of event types. Structural equality is by (Kind, A, B, Relation),
// which Go gives us for free since every field is comparable — so a
// BinaryInvariant value may be used directly as a map key.
type BinaryInvariant struct {
	Kind     Kind
	A        event.EventType
	B        event.EventType
	Relation event.Relation
}

func (inv BinaryInvariant) String() string {
	return fmt.Sprintf("%s(%s, %s)[%s]", inv.Kind, inv.A, inv.B, inv.Relation)
}

// Set is an unordered collection of BinaryInvariants.
type Set map[BinaryInvariant]struct{}

// NewSet returns an empty Set.
func NewSet() Set { return make(Set) }

// Add inserts inv into s.
func (s Set) Add(inv BinaryInvariant) { s[inv] = struct{}{} }

// Contains reports whether inv is in s.
func (s Set) Contains(inv BinaryInvariant) bool {
	_, ok := s[inv]
	return ok
}

// Slice returns s's members as a slice, in no particular order; callers
// that need determinism should sort the result (e.g. by String()).
func (s Set) Slice() []BinaryInvariant {
	out := make([]BinaryInvariant, 0, len(s))
	for inv := range s {
		out = append(out, inv)
	}
	return out
}
