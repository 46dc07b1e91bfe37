package event

import "errors"

// Sentinel errors for trace-graph construction and lookup.
var (
	// ErrMalformedLog indicates the parsed log handed across the C1 boundary
	// is structurally invalid (dangling edge endpoint, unknown trace id,
	// mismatched time kinds, ...). Never raised by any component downstream
	// of BuildTraceGraph; the core rejects bad input here and only here.
	ErrMalformedLog = errors.New("event: malformed parsed log")

	// ErrNodeNotFound indicates a NodeID outside the graph's arena.
	ErrNodeNotFound = errors.New("event: node not found")

	// ErrEmptyLabel indicates an EventType was constructed with an empty label.
	ErrEmptyLabel = errors.New("event: event type label is empty")

	// ErrMixedTimeKinds indicates two Time values of incompatible TimeKind
	// were compared or differenced.
	ErrMixedTimeKinds = errors.New("event: mixed time kinds")
)
