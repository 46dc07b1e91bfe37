package bisim

import (
	"context"
	"math/rand"

	"github.com/synoptic-core/synoptic/checker"
	"github.com/synoptic-core/synoptic/config"
	"github.com/synoptic-core/synoptic/event"
	"github.com/synoptic-core/synoptic/invariant"
	"github.com/synoptic-core/synoptic/partition"
	"github.com/synoptic-core/synoptic/synopticlog"
)

// defaultCoarsenRelation is the relation k-Tails equivalence is
// evaluated over; invariants may span several relations, but the
// partition graph's structural shape is always driven by the default
// "t" (total/time) relation every event carries.
const defaultCoarsenRelation = event.DefaultRelation

// Engine drives the refinement/coarsening loop over one partition.Graph.
type Engine struct {
	Graph *partition.Graph
	Cfg   *config.Config
	Log   synopticlog.Logger

	rng *rand.Rand
}

// New builds an Engine over g using cfg's tunables. A nil log is
// replaced with synopticlog.Noop().
func New(g *partition.Graph, cfg *config.Config, log synopticlog.Logger) (*Engine, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if log == nil {
		log = synopticlog.Noop()
	}
	return &Engine{Graph: g, Cfg: cfg, Log: log, rng: cfg.RNG()}, nil
}

// Refine splits partitions until every invariant in e.Graph.Invariants
// holds, or returns ErrInvariantsUnsatisfiable if no further candidate
// split makes progress. It is a no-op if cfg.NoRefinement() is set.
func (e *Engine) Refine(ctx context.Context) error {
	if e.Cfg.NoRefinement() {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		res, err := checker.Check(ctx, e.Graph, e.Graph.Invariants, checker.FastMode)
		if err != nil {
			return err
		}
		if len(res.Failed) == 0 {
			e.Log.Info("refinement converged", synopticlog.Fields{"partitions": len(e.Graph.Partitions())})
			return nil
		}

		if progressed, err := e.refineOneStep(ctx, res.Failed); err != nil {
			return err
		} else if !progressed {
			return ErrInvariantsUnsatisfiable
		}
	}
}

// refineOneStep picks one failed invariant, walks its shortest
// counter-example, and applies the first candidate split found along
// that path. It returns progressed=false only when no partition on any
// failing invariant's counter-example path can be split further.
func (e *Engine) refineOneStep(ctx context.Context, failed invariant.Set) (bool, error) {
	var tc checker.TracingChecker
	for inv := range failed {
		cep, err := tc.Check(ctx, e.Graph, inv)
		if err != nil {
			return false, err
		}
		if cep.Holds {
			continue
		}

		for _, pid := range cep.Path {
			ms, ok := outgoingSplit(e.Graph, pid, inv.Relation)
			if e.Cfg.IncomingTransitionSplit() {
				if ms2, ok2 := incomingSplit(e.Graph, pid, inv.Relation); ok2 {
					if ok {
						_ = ms.Incorporate(ms2)
					} else {
						ms, ok = ms2, true
					}
				}
			}
			if !ok {
				continue
			}

			if _, err := e.Graph.Apply(ms); err != nil {
				return false, err
			}
			e.Log.Debug("refinement split applied", synopticlog.Fields{
				"invariant": inv.String(),
				"partition": string(pid),
				"cells":     len(ms.Cells),
			})
			return true, nil
		}
	}
	return false, nil
}

// Coarsen greedily re-merges partitions a k-Tails equivalence test
// shows are behaviorally indistinguishable, rejecting (and
// blacklisting) any merge that reintroduces an invariant violation. It
// is a no-op if cfg.NoCoarsening() is set.
func (e *Engine) Coarsen(ctx context.Context) error {
	if e.Cfg.NoCoarsening() {
		return nil
	}

	blacklist := make(map[pairKey]bool)
	memo := make(map[pairKey]tristate)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		merged, err := e.coarsenOnePass(ctx, blacklist, memo)
		if err != nil {
			return err
		}
		if !merged {
			e.Log.Info("coarsening converged", synopticlog.Fields{"partitions": len(e.Graph.Partitions())})
			return nil
		}
	}
}

func (e *Engine) coarsenOnePass(ctx context.Context, blacklist map[pairKey]bool, memo map[pairKey]tristate) (bool, error) {
	parts := e.Graph.Partitions()
	ids := make([]partition.ID, len(parts))
	for i, p := range parts {
		ids[i] = p.ID
	}
	config.ShuffleInPlace(ids, e.rng)

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			u, v := ids[i], ids[j]
			key := canonicalPair(u, v)
			if blacklist[key] {
				continue
			}
			up, errU := e.Graph.Partition(u)
			vp, errV := e.Graph.Partition(v)
			if errU != nil || errV != nil || up.Type != vp.Type {
				continue
			}
			if !kEquals(e.Graph, u, v, e.Cfg.KTailsK(), defaultCoarsenRelation, memo) {
				continue
			}

			ok, err := e.tryMerge(ctx, u, v)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
			blacklist[key] = true
			// Merging changed nothing; the memo may still reference u/v
			// safely since IDs are never reused.
		}
	}
	return false, nil
}

// tryMerge applies Merge(u, v), re-checks every invariant, and rewinds
// via Apply's returned inverse if the merge broke one.
func (e *Engine) tryMerge(ctx context.Context, u, v partition.ID) (bool, error) {
	inverse, err := e.Graph.Apply(&partition.Merge{Into: u, Other: v})
	if err != nil {
		return false, err
	}

	res, err := checker.Check(ctx, e.Graph, e.Graph.Invariants, checker.FastMode)
	if err != nil {
		return false, err
	}
	if len(res.Failed) > 0 {
		if _, rerr := e.Graph.Apply(inverse); rerr != nil {
			return false, rerr
		}
		return false, nil
	}

	e.Log.Debug("coarsening merge applied", synopticlog.Fields{"into": string(u), "other": string(v)})
	return true, nil
}
