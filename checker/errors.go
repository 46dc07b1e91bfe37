package checker

import "errors"

var (
	// ErrGraphNil is returned when a nil *partition.Graph is passed to a checker.
	ErrGraphNil = errors.New("checker: partition graph is nil")

	// ErrNoSuchInvariant indicates a tracing check was asked to evaluate
	// an invariant absent from the graph's invariant set.
	ErrNoSuchInvariant = errors.New("checker: invariant not present in graph")
)
