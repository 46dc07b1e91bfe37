package closure

import "errors"

// ErrGraphNil is returned when a nil *event.TraceGraph is passed to a
// closure computer.
var ErrGraphNil = errors.New("closure: graph is nil")
