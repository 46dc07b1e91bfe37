package checker

import (
	"context"

	"github.com/synoptic-core/synoptic/invariant"
	"github.com/synoptic-core/synoptic/partition"
)

// Check evaluates invs against g under mode, returning a Result.
// FastMode only populates Failed; TracingMode additionally populates
// CounterExamples for every failed invariant, at the cost of one
// fixpoint pass per invariant instead of one pass per relation.
func Check(ctx context.Context, g *partition.Graph, invs invariant.Set, mode Mode) (*Result, error) {
	switch mode {
	case FastMode:
		failed, err := CheckFast(ctx, g, invs)
		if err != nil {
			return nil, err
		}
		return &Result{Mode: mode, Failed: failed}, nil

	case TracingMode:
		examples, err := CheckTracing(ctx, g, invs)
		if err != nil {
			return nil, err
		}
		failed := invariant.NewSet()
		for inv := range examples {
			failed.Add(inv)
		}
		return &Result{Mode: mode, Failed: failed, CounterExamples: examples}, nil

	default:
		failed, err := CheckFast(ctx, g, invs)
		if err != nil {
			return nil, err
		}
		return &Result{Mode: FastMode, Failed: failed}, nil
	}
}
