package synoptic

import (
	"context"

	"github.com/synoptic-core/synoptic/bisim"
	"github.com/synoptic-core/synoptic/checker"
	"github.com/synoptic-core/synoptic/config"
	"github.com/synoptic-core/synoptic/event"
	"github.com/synoptic-core/synoptic/invariant"
	"github.com/synoptic-core/synoptic/partition"
	"github.com/synoptic-core/synoptic/synopticlog"
)

// Result is the full output of a Run: the final partition graph, the
// invariants it was refined/coarsened against, and (if any remain
// after refinement failed to converge) a counter-example per
// still-failing invariant.
type Result struct {
	Graph           *partition.Graph
	Invariants      invariant.Set
	CounterExamples map[invariant.BinaryInvariant]*checker.CounterExamplePath
}

// Run executes the full pipeline: parse -> mine invariants -> build
// partition graph -> refine -> coarsen.
//
// It returns config.ErrExternalCheckerUnsupported immediately if cfg
// requests the (out-of-scope) external LTL checker, event.ErrMalformedLog
// (wrapped) if log fails to parse, and bisim.ErrInvariantsUnsatisfiable
// or partition.ErrInternalInconsistency (wrapped) if refinement cannot
// converge — the three outcomes a CLI wrapper would map to exit codes
// 1, 2, and 2 respectively; nil maps to exit code 0.
func Run(ctx context.Context, log event.ParsedLog, cfg *config.Config, logger synopticlog.Logger) (*Result, error) {
	if !cfg.UseFSMChecker() {
		return nil, config.ErrExternalCheckerUnsupported
	}
	if logger == nil {
		logger = synopticlog.Noop()
	}

	trace, err := event.BuildTraceGraph(log)
	if err != nil {
		return nil, err
	}
	logger.Info("trace graph built", synopticlog.Fields{
		"nodes":  trace.NumNodes(),
		"shape":  trace.Shape().String(),
		"traces": len(trace.TraceIDs()),
	})

	miner := invariant.NewMiner(cfg.WarshallClosure())
	invs, err := miner.Mine(trace)
	if err != nil {
		return nil, err
	}
	logger.Info("invariants mined", synopticlog.Fields{"count": len(invs)})

	pg, err := partition.New(trace, invs)
	if err != nil {
		return nil, err
	}

	engine, err := bisim.New(pg, cfg, logger)
	if err != nil {
		return nil, err
	}

	var counterExamples map[invariant.BinaryInvariant]*checker.CounterExamplePath
	if err := engine.Refine(ctx); err != nil {
		if err == bisim.ErrInvariantsUnsatisfiable {
			res, cerr := checker.Check(ctx, pg, invs, checker.TracingMode)
			if cerr == nil {
				counterExamples = res.CounterExamples
			}
		}
		return &Result{Graph: pg, Invariants: invs, CounterExamples: counterExamples}, err
	}

	if err := engine.Coarsen(ctx); err != nil {
		return &Result{Graph: pg, Invariants: invs}, err
	}

	return &Result{Graph: pg, Invariants: invs}, nil
}
