// Package checker implements the FSM invariant checker (C5): a
// finite-state-machine driver that evaluates invariants against a
// partition graph, returning either a summary fail-set (fast mode) or a
// shortest counter-example path (tracing mode). Fast mode keeps one
// byte of automaton state per invariant per partition; it does not pack
// states into bits.
//
// Both modes share one worklist driver (RunFixpoint), grounded on the
// teacher's BFS walker: a visited/enqueued worklist processed until
// quiescence, with a cooperative context.Context cancellation check
// once per dequeue. Fast mode tracks every invariant's automaton state
// simultaneously per partition; tracing mode runs one invariant at a
// time and additionally threads a persistent, copy-on-merge history
// chain so a FAIL can be replayed into a CounterExamplePath.
package checker
