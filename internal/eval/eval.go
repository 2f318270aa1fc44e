package eval

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rfielding/mvgrn-ctl/internal/ctl"
	"github.com/rfielding/mvgrn-ctl/internal/errs"
	"github.com/rfielding/mvgrn-ctl/internal/hamming"
	"github.com/rfielding/mvgrn-ctl/internal/stg"
)

// Evaluator runs the quantitative CTL labeling passes over a single,
// immutable STG.
type Evaluator struct {
	graph   *stg.Graph
	states  []stg.State
	maxima  []int
	weights []float64
	labels  *Labeling
	logger  *zap.Logger
}

// New constructs an Evaluator over g. logger may be nil.
func New(g *stg.Graph, logger *zap.Logger) *Evaluator {
	varNames, maxActivities := g.Variables()
	maxima := make([]int, len(varNames))
	for i, v := range varNames {
		maxima[i] = maxActivities[v]
	}
	states := g.States()
	return &Evaluator{
		graph:   g,
		states:  states,
		maxima:  maxima,
		weights: hamming.Weights(varNames, maxActivities),
		labels:  NewLabeling(states),
		logger:  logger,
	}
}

// Evaluate runs the driver of spec.md §4.F: formula must already be in PNF.
// For each sub-formula in post-order, it dispatches to the operator's
// evaluate; the precondition of every dispatch is that every direct
// sub-formula's key is already fully labeled, which SubFormulas' ordering
// guarantees.
func (e *Evaluator) Evaluate(ctx context.Context, formula *ctl.Formula) (*Labeling, error) {
	subs := ctl.SubFormulas(formula)
	for _, f := range subs {
		start := time.Now()
		if err := e.evaluateOne(ctx, f); err != nil {
			return nil, err
		}
		if e.logger != nil {
			e.logger.Debug("labeled sub-formula",
				zap.String("sub_formula", f.Key()),
				zap.Duration("duration", time.Since(start)),
				zap.Int("states_labeled", len(e.states)),
			)
		}
	}
	return e.labels, nil
}

func (e *Evaluator) evaluateOne(ctx context.Context, f *ctl.Formula) error {
	switch f.Kind {
	case ctl.BooleanKind:
		return e.evaluateBooleanParallel(ctx, f)
	case ctl.AtomicLiftKind:
		return e.evaluateAtomic(f)
	case ctl.ConjunctionKind:
		return e.evaluateBinaryMinMaxParallel(ctx, f, minOp)
	case ctl.DisjunctionKind:
		return e.evaluateBinaryMinMaxParallel(ctx, f, maxOp)
	case ctl.AXKind:
		return e.evaluateNextParallel(ctx, f, minOp)
	case ctl.EXKind:
		return e.evaluateNextParallel(ctx, f, maxOp)
	case ctl.AGKind:
		return e.evaluateAG(f)
	case ctl.EGKind:
		return e.evaluateEG(f)
	case ctl.AFKind:
		return e.evaluateAF(f)
	case ctl.EFKind:
		return e.evaluateEF(f)
	case ctl.AUKind:
		return e.evaluateAU(f)
	case ctl.EUKind:
		return e.evaluateEU(f)
	case ctl.AWKind:
		return e.evaluateWeakUntil(f, ctl.AG(f.Left).Key(), ctl.AU(f.Left, f.Right).Key())
	case ctl.EWKind:
		return e.evaluateWeakUntil(f, ctl.EG(f.Left).Key(), ctl.EU(f.Left, f.Right).Key())
	}
	return fmt.Errorf("%w: unknown formula kind for %q", errs.ErrInternalInvariant, f.Key())
}

func minOp(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxOp(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// requireLabel reads a finalized child label, failing with
// ErrInternalInvariant if the precondition (child already labeled) was
// violated.
func (e *Evaluator) requireLabel(s stg.State, key string) (float64, error) {
	v, ok := e.labels.Get(s, key)
	if !ok {
		return 0, fmt.Errorf("%w: label for %q at state %v is unset", errs.ErrInternalInvariant, key, s.Values())
	}
	return v, nil
}

// forEachStateParallel runs fn(state) for every state, fanning out across
// golang.org/x/sync/errgroup — spec.md §5 explicitly sanctions parallel
// per-state work for Boolean/Conjunction/Disjunction/AX/EX since each is a
// pure read of already-finalized child columns (a map, not a fixed point).
func (e *Evaluator) forEachStateParallel(ctx context.Context, fn func(s stg.State) error) error {
	g, _ := errgroup.WithContext(ctx)
	for _, s := range e.states {
		s := s
		g.Go(func() error { return fn(s) })
	}
	return g.Wait()
}

func (e *Evaluator) evaluateBooleanParallel(ctx context.Context, f *ctl.Formula) error {
	key := f.Key()
	v := -1.0
	if f.BoolValue {
		v = 1.0
	}
	return e.forEachStateParallel(ctx, func(s stg.State) error {
		e.labels.Set(s, key, v)
		return nil
	})
}

func (e *Evaluator) evaluateBinaryMinMaxParallel(ctx context.Context, f *ctl.Formula, op func(a, b float64) float64) error {
	key := f.Key()
	leftKey, rightKey := f.Left.Key(), f.Right.Key()
	return e.forEachStateParallel(ctx, func(s stg.State) error {
		l, err := e.requireLabel(s, leftKey)
		if err != nil {
			return err
		}
		r, err := e.requireLabel(s, rightKey)
		if err != nil {
			return err
		}
		e.labels.Set(s, key, op(l, r))
		return nil
	})
}

// evaluateNextParallel implements AX (op=min, universal) and EX (op=max,
// existential): L[s] = op_{t in succ(s)} L[t][child].
func (e *Evaluator) evaluateNextParallel(ctx context.Context, f *ctl.Formula, op func(a, b float64) float64) error {
	key := f.Key()
	childKey := f.Left.Key()
	// Each goroutine reads its successors' rows, so results are collected
	// per state and written only after every goroutine has finished.
	pos := make(map[stg.State]int, len(e.states))
	for i, s := range e.states {
		pos[s] = i
	}
	results := make([]float64, len(e.states))
	if err := e.forEachStateParallel(ctx, func(s stg.State) error {
		succ := e.graph.Successors(s)
		best, err := e.requireLabel(succ[0], childKey)
		if err != nil {
			return err
		}
		for _, t := range succ[1:] {
			v, err := e.requireLabel(t, childKey)
			if err != nil {
				return err
			}
			best = op(best, v)
		}
		results[pos[s]] = best
		return nil
	}); err != nil {
		return err
	}
	for i, s := range e.states {
		e.labels.Set(s, key, results[i])
	}
	return nil
}

// evaluateWeakUntil implements AW/EW: L[s][φ W ψ] = max(L[s][G φ], L[s][φ U ψ]).
// The two fixed points are computed separately by earlier sub-formulae
// (never interleaved — spec.md §4.F explains why: optimistically overwriting
// AU with a locally-better AG candidate can later be invalidated when AG
// converges downward, destroying information) and only combined here.
func (e *Evaluator) evaluateWeakUntil(f *ctl.Formula, gKey, untilKey string) error {
	key := f.Key()
	for _, s := range e.states {
		g, err := e.requireLabel(s, gKey)
		if err != nil {
			return err
		}
		u, err := e.requireLabel(s, untilKey)
		if err != nil {
			return err
		}
		e.labels.Set(s, key, maxOp(g, u))
	}
	return nil
}
