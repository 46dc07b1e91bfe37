package invariant

import "errors"

// ErrNilGraph is returned when Mine is called with a nil trace graph.
var ErrNilGraph = errors.New("invariant: graph is nil")
