package bisim

import "errors"

var (
	// ErrGraphNil is returned when a nil *partition.Graph is passed to New.
	ErrGraphNil = errors.New("bisim: partition graph is nil")

	// ErrInvariantsUnsatisfiable is returned by Refine when no further
	// candidate split can make progress against the remaining failed
	// invariants.
	ErrInvariantsUnsatisfiable = errors.New("bisim: invariants cannot be satisfied by further refinement")
)
