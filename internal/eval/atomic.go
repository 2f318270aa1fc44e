package eval

import (
	"fmt"
	"math"

	"github.com/rfielding/mvgrn-ctl/internal/ctl"
	"github.com/rfielding/mvgrn-ctl/internal/dov"
	"github.com/rfielding/mvgrn-ctl/internal/errs"
	"github.com/rfielding/mvgrn-ctl/internal/hamming"
	"github.com/rfielding/mvgrn-ctl/internal/stg"
	"go.uber.org/zap"
)

// computeDoV computes the domain of validity of a (already PNF'd, so
// negation-free) atomic-stratum formula, per spec.md §4.C.
func computeDoV(g *stg.Graph, a *ctl.Atomic) (dov.Set, error) {
	switch a.Kind {
	case ctl.APKind:
		if a.Op != dov.GTE && a.Op != dov.LTE {
			return nil, fmt.Errorf("%w: atomic operator %v", errs.ErrInvalidOperator, a.Op)
		}
		return dov.AtomicProposition(g, a.Variable, a.Op, a.Threshold), nil
	case ctl.UnionKind:
		l, err := computeDoV(g, a.A)
		if err != nil {
			return nil, err
		}
		r, err := computeDoV(g, a.B)
		if err != nil {
			return nil, err
		}
		return dov.Union(l, r), nil
	case ctl.IntersectionKind:
		l, err := computeDoV(g, a.A)
		if err != nil {
			return nil, err
		}
		r, err := computeDoV(g, a.B)
		if err != nil {
			return nil, err
		}
		return dov.Intersection(l, r), nil
	case ctl.NegationKind:
		// PNF eliminates every Negation node before evaluation runs.
		return nil, fmt.Errorf("%w: Negation reached evaluator for %q", errs.ErrInternalInvariant, a.Key())
	}
	return nil, fmt.Errorf("%w: unknown atomic kind for %q", errs.ErrInternalInvariant, a.Key())
}

// evaluateAtomic labels every state for a lifted atomic-stratum formula,
// following the quantitative AP semantics of spec.md §4.D:
//
//  1. D = DoV(φ), D' = coDoV(φ).
//  2. (B_in, B_out) = border(D), coborder(D).
//  3. max_dov_depth   = extreme depth of D from B_out.
//     max_codov_depth = extreme depth of D' from B_in.
//  4. s in D:     L[s] = wd(s, B_out) / max_dov_depth   (or +1 if max_dov_depth is 0 or +Inf)
//     s not in D: L[s] = -wd(s, B_in) / max_codov_depth (or -1 if max_codov_depth is 0 or +Inf)
func (e *Evaluator) evaluateAtomic(f *ctl.Formula) error {
	key := f.Key()
	d, err := computeDoV(e.graph, f.Atomic)
	if err != nil {
		return err
	}
	dPrime := dov.Complement(d, e.states)

	bIn, bOut := hamming.GetBorderStates(d, e.maxima, e.weights)
	maxDovDepth, dovWitness := hamming.FindExtremeDepth(d, bOut, e.maxima, e.weights)
	maxCodovDepth, codovWitness := hamming.FindExtremeDepth(dPrime, bIn, e.maxima, e.weights)

	for _, s := range e.states {
		var v float64
		if d.Contains(s) {
			if math.IsInf(maxDovDepth, 1) || maxDovDepth == 0 {
				v = 1
			} else {
				v = hamming.WeightedDistance(s, bOut, e.maxima, e.weights) / maxDovDepth
			}
		} else {
			if math.IsInf(maxCodovDepth, 1) || maxCodovDepth == 0 {
				v = -1
			} else {
				v = -hamming.WeightedDistance(s, bIn, e.maxima, e.weights) / maxCodovDepth
			}
		}
		e.labels.Set(s, key, v)
	}

	if e.logger != nil {
		e.logger.Debug("evaluated atomic sub-formula",
			zap.String("sub_formula", key),
			zap.Int("dov_size", d.Len()),
			zap.Float64("max_dov_depth", maxDovDepth),
			zap.Float64("max_codov_depth", maxCodovDepth),
			zap.String("max_dov_depth_state", string(dovWitness)),
			zap.String("max_codov_depth_state", string(codovWitness)),
		)
	}
	return nil
}
