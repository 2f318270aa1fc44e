package eval

import (
	"fmt"

	"github.com/rfielding/mvgrn-ctl/internal/ctl"
	"github.com/rfielding/mvgrn-ctl/internal/errs"
	"github.com/rfielding/mvgrn-ctl/internal/pqueue"
	"github.com/rfielding/mvgrn-ctl/internal/stg"
)

// The path operators are computed as the quantitative Knaster-Tarski
// fixed points of spec.md §4.F:
//
//	AG φ: Z(s) = min(φ(s), min_{t∈succ(s)} Z(t))   greatest fixed point
//	EG φ: Z(s) = min(φ(s), max_{t∈succ(s)} Z(t))   greatest fixed point
//	AF φ: Z(s) = max(φ(s), min_{t∈succ(s)} Z(t))   least fixed point
//	EF φ: Z(s) = max(φ(s), max_{t∈succ(s)} Z(t))   least fixed point
//	A[φ U ψ]: Z(s) = max(ψ(s), min(φ(s), min_{t} Z(t)))  least fixed point
//	E[φ U ψ]: Z(s) = max(ψ(s), min(φ(s), max_{t} Z(t)))  least fixed point
//
// Each is solved by a single backward relaxation pass rather than repeated
// Kleene iteration over the whole state set: the greatest fixed points start
// every state at its own operand value (the point reached after one downward
// step from the top element, +1) and only ever decrease from there; the
// least fixed points start every state at its base term (reached after one
// upward step from the bottom element, -1) and only ever increase. Because
// every subsequent update strictly improves a single state's label, and a
// state is only re-examined when one of its successors just improved,
// internal/pqueue's decrease_key/increase_key heap does the bookkeeping a
// textbook Dijkstra relaxation would: this is the same backward-propagation
// shape as _examples/rfielding-kripke-ctl/kripke/ctl.go's boolean
// SAT_EG/SAT_EU (predecessor counting over a satisfaction set), generalized
// from set membership to a real-valued label.
func reduceMin(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func reduceMax(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func (e *Evaluator) successorValues(s stg.State, key string) ([]float64, error) {
	succ := e.graph.Successors(s)
	vals := make([]float64, len(succ))
	for i, t := range succ {
		v, err := e.requireLabel(t, key)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// evaluateGFPUnary solves AG (reduce=reduceMin) and EG (reduce=reduceMax).
func (e *Evaluator) evaluateGFPUnary(f *ctl.Formula, reduce func([]float64) float64) error {
	key := f.Key()
	childKey := f.Left.Key()

	q := pqueue.NewMinQueue[stg.State]()
	for _, s := range e.states {
		phi, err := e.requireLabel(s, childKey)
		if err != nil {
			return err
		}
		e.labels.Set(s, key, phi)
		if err := q.PushOrDecrease(s, phi); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInternalInvariant, err)
		}
	}

	recompute := func(p stg.State) (float64, error) {
		phiP, err := e.requireLabel(p, childKey)
		if err != nil {
			return 0, err
		}
		vals, err := e.successorValues(p, key)
		if err != nil {
			return 0, err
		}
		return minOp(phiP, reduce(vals)), nil
	}

	for !q.IsEmpty() {
		s, _, _ := q.PopMin()
		for _, p := range e.graph.Predecessors(s) {
			cand, err := recompute(p)
			if err != nil {
				return err
			}
			cur, _ := e.labels.Get(p, key)
			if cand < cur {
				e.labels.Set(p, key, cand)
				if err := q.PushOrDecrease(p, cand); err != nil {
					return fmt.Errorf("%w: %v", errs.ErrInternalInvariant, err)
				}
			}
		}
	}
	return nil
}

// evaluateLFPUnary solves AF (reduce=reduceMin) and EF (reduce=reduceMax).
func (e *Evaluator) evaluateLFPUnary(f *ctl.Formula, reduce func([]float64) float64) error {
	key := f.Key()
	childKey := f.Left.Key()

	q := pqueue.NewMaxQueue[stg.State]()
	for _, s := range e.states {
		phi, err := e.requireLabel(s, childKey)
		if err != nil {
			return err
		}
		e.labels.Set(s, key, phi)
		if err := q.PushOrIncrease(s, phi); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInternalInvariant, err)
		}
	}

	recompute := func(p stg.State) (float64, error) {
		phiP, err := e.requireLabel(p, childKey)
		if err != nil {
			return 0, err
		}
		vals, err := e.successorValues(p, key)
		if err != nil {
			return 0, err
		}
		return maxOp(phiP, reduce(vals)), nil
	}

	for !q.IsEmpty() {
		s, _, _ := q.PopMax()
		for _, p := range e.graph.Predecessors(s) {
			cand, err := recompute(p)
			if err != nil {
				return err
			}
			cur, _ := e.labels.Get(p, key)
			if cand > cur {
				e.labels.Set(p, key, cand)
				if err := q.PushOrIncrease(p, cand); err != nil {
					return fmt.Errorf("%w: %v", errs.ErrInternalInvariant, err)
				}
			}
		}
	}
	return nil
}

// evaluateLFPUntil solves A[φ U ψ] (reduce=reduceMin) and E[φ U ψ]
// (reduce=reduceMax).
func (e *Evaluator) evaluateLFPUntil(f *ctl.Formula, reduce func([]float64) float64) error {
	key := f.Key()
	phiKey, psiKey := f.Left.Key(), f.Right.Key()

	q := pqueue.NewMaxQueue[stg.State]()
	for _, s := range e.states {
		psi, err := e.requireLabel(s, psiKey)
		if err != nil {
			return err
		}
		e.labels.Set(s, key, psi)
		if err := q.PushOrIncrease(s, psi); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInternalInvariant, err)
		}
	}

	recompute := func(p stg.State) (float64, error) {
		psiP, err := e.requireLabel(p, psiKey)
		if err != nil {
			return 0, err
		}
		phiP, err := e.requireLabel(p, phiKey)
		if err != nil {
			return 0, err
		}
		vals, err := e.successorValues(p, key)
		if err != nil {
			return 0, err
		}
		return maxOp(psiP, minOp(phiP, reduce(vals))), nil
	}

	for !q.IsEmpty() {
		s, _, _ := q.PopMax()
		for _, p := range e.graph.Predecessors(s) {
			cand, err := recompute(p)
			if err != nil {
				return err
			}
			cur, _ := e.labels.Get(p, key)
			if cand > cur {
				e.labels.Set(p, key, cand)
				if err := q.PushOrIncrease(p, cand); err != nil {
					return fmt.Errorf("%w: %v", errs.ErrInternalInvariant, err)
				}
			}
		}
	}
	return nil
}

func (e *Evaluator) evaluateAG(f *ctl.Formula) error { return e.evaluateGFPUnary(f, reduceMin) }
func (e *Evaluator) evaluateEG(f *ctl.Formula) error { return e.evaluateGFPUnary(f, reduceMax) }
func (e *Evaluator) evaluateAF(f *ctl.Formula) error { return e.evaluateLFPUnary(f, reduceMin) }
func (e *Evaluator) evaluateEF(f *ctl.Formula) error { return e.evaluateLFPUnary(f, reduceMax) }
func (e *Evaluator) evaluateAU(f *ctl.Formula) error { return e.evaluateLFPUntil(f, reduceMin) }
func (e *Evaluator) evaluateEU(f *ctl.Formula) error { return e.evaluateLFPUntil(f, reduceMax) }
