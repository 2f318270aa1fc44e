// Package network implements the MvGRN model itself: variable declarations,
// regulations, and the deterministic, context-driven successor rule that
// drives internal/stg.Build. It sits alongside the quantitative CTL core as
// the component that turns a declared network into a concrete
// stg.SuccessorFunc, with sentinel errors for every malformed-network case.
package network

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/rfielding/mvgrn-ctl/internal/errs"
	"github.com/rfielding/mvgrn-ctl/internal/stg"
)

// IntervalSpec is one position of a context's interval list: either a
// specific 1-based interval index, or the wildcard "don't care".
type IntervalSpec struct {
	Wildcard bool
	Index    int // 1-based; meaningless if Wildcard
}

// Regulator names a gene whose activity gates a regulation, with the
// ascending thresholds that carve its activity range into intervals.
type Regulator struct {
	Variable   string
	Thresholds []int
}

// Context is one row of a regulation's truth table: if every regulator's
// current interval matches Intervals (wildcards always match), the target
// variable is driven toward TargetValue.
type Context struct {
	Intervals   []IntervalSpec
	TargetValue int
}

// Regulation describes how a single target variable's next value is
// decided from its regulators' current activity.
type Regulation struct {
	Target     string
	Regulators []Regulator
	Contexts   []Context
}

// Network is a validated MvGRN: a set of bounded-activity variables plus
// the regulations that drive them.
type Network struct {
	variableOrder []string
	maxActivity   map[string]int
	regulations   map[string]Regulation // keyed by target; at most one per target
}

// New validates variables and regulations and constructs a Network.
// variables maps variable name to its maximum activity (must be >= 1).
// Every regulator/target named in regulations must be declared in
// variables; thresholds must be strictly ascending within [1, max]; every
// context's interval length must match its regulation's regulator count,
// and every interval index must be within [1, len(thresholds)+1].
func New(variables map[string]int, regulations []Regulation) (*Network, error) {
	var errc error

	for name, max := range variables {
		if max <= 0 {
			errc = multierr.Append(errc, fmt.Errorf("%w: variable %q has non-positive max activity %d", errs.ErrMalformedNetwork, name, max))
		}
	}

	order := make([]string, 0, len(variables))
	for name := range variables {
		order = append(order, name)
	}
	sort.Strings(order)

	byTarget := make(map[string]Regulation, len(regulations))
	for _, reg := range regulations {
		if _, ok := variables[reg.Target]; !ok {
			errc = multierr.Append(errc, fmt.Errorf("%w: regulation target %q is not a declared variable", errs.ErrMalformedNetwork, reg.Target))
			continue
		}
		if _, dup := byTarget[reg.Target]; dup {
			errc = multierr.Append(errc, fmt.Errorf("%w: target %q has more than one regulation", errs.ErrMalformedNetwork, reg.Target))
			continue
		}

		for _, r := range reg.Regulators {
			max, ok := variables[r.Variable]
			if !ok {
				errc = multierr.Append(errc, fmt.Errorf("%w: regulator %q of target %q is not a declared variable", errs.ErrMalformedNetwork, r.Variable, reg.Target))
				continue
			}
			prev := 0
			for i, t := range r.Thresholds {
				if t < 1 || t > max {
					errc = multierr.Append(errc, fmt.Errorf("%w: threshold %d of regulator %q is outside [1,%d]", errs.ErrMalformedNetwork, t, r.Variable, max))
				}
				if i > 0 && t <= prev {
					errc = multierr.Append(errc, fmt.Errorf("%w: thresholds of regulator %q are not strictly ascending", errs.ErrMalformedNetwork, r.Variable))
				}
				prev = t
			}
		}

		targetMax := variables[reg.Target]
		for _, ctx := range reg.Contexts {
			if ctx.TargetValue < 0 || ctx.TargetValue > targetMax {
				errc = multierr.Append(errc, fmt.Errorf("%w: context target_value %d for %q is outside [0,%d]", errs.ErrMalformedNetwork, ctx.TargetValue, reg.Target, targetMax))
			}
			if len(ctx.Intervals) != len(reg.Regulators) {
				errc = multierr.Append(errc, fmt.Errorf("%w: context for %q has %d intervals, want %d", errs.ErrMalformedNetwork, reg.Target, len(ctx.Intervals), len(reg.Regulators)))
				continue
			}
			for i, iv := range ctx.Intervals {
				if iv.Wildcard {
					continue
				}
				n := len(reg.Regulators[i].Thresholds) + 1
				if iv.Index < 1 || iv.Index > n {
					errc = multierr.Append(errc, fmt.Errorf("%w: context interval index %d at position %d for %q is outside [1,%d]", errs.ErrMalformedNetwork, iv.Index, i, reg.Target, n))
				}
			}
		}

		byTarget[reg.Target] = reg
	}

	if errc != nil {
		return nil, errc
	}

	return &Network{
		variableOrder: order,
		maxActivity:   variables,
		regulations:   byTarget,
	}, nil
}

// Variables returns the declared variable order and their maximum activity.
func (n *Network) Variables() ([]string, map[string]int) {
	return append([]string(nil), n.variableOrder...), n.maxActivity
}

// intervalIndex returns the 1-based interval a regulator value falls into,
// given its ascending thresholds: value < thresholds[0] -> 1, thresholds[0]
// <= value < thresholds[1] -> 2, ..., value >= thresholds[last] -> len+1.
func intervalIndex(thresholds []int, value int) int {
	idx := 1
	for _, t := range thresholds {
		if value >= t {
			idx++
		}
	}
	return idx
}

func contextMatches(ctx Context, reg Regulation, regulatorValues []int) bool {
	for i, iv := range ctx.Intervals {
		if iv.Wildcard {
			continue
		}
		if intervalIndex(reg.Regulators[i].Thresholds, regulatorValues[i]) != iv.Index {
			return false
		}
	}
	return true
}

// Successors computes the direct regulator-driven successors of state,
// values in the declared variable order. Each regulated variable whose
// first-matching context drives it toward a different value contributes
// one successor state, stepping that single coordinate by exactly ±1
// (never jumping straight to the target value) — asynchronous MvGRN update
// semantics. A variable with no regulation, or whose matching context
// target equals its current value, contributes no successor. If no
// variable changes, the caller (internal/stg.Build) supplies the
// totality-invariant self-loop.
func (n *Network) Successors(values []int) [][]int {
	var out [][]int

	for varIdx, name := range n.variableOrder {
		reg, ok := n.regulations[name]
		if !ok {
			continue
		}

		regulatorValues := make([]int, len(reg.Regulators))
		for i, r := range reg.Regulators {
			ri := n.indexOf(r.Variable)
			regulatorValues[i] = values[ri]
		}

		for _, ctx := range reg.Contexts {
			if !contextMatches(ctx, reg, regulatorValues) {
				continue
			}
			delta := ctx.TargetValue - values[varIdx]
			if delta == 0 {
				break
			}
			next := append([]int(nil), values...)
			if delta > 0 {
				next[varIdx]++
			} else {
				next[varIdx]--
			}
			out = append(out, next)
			break
		}
	}

	return out
}

// Build enumerates the full state-transition graph over this network's
// declared variables.
func (n *Network) Build() (*stg.Graph, error) {
	return stg.Build(n.variableOrder, n.maxActivity, func(s stg.State) []stg.State {
		raw := n.Successors(s.Values())
		out := make([]stg.State, len(raw))
		for i, v := range raw {
			out[i] = stg.NewState(v...)
		}
		return out
	})
}

func (n *Network) indexOf(name string) int {
	for i, v := range n.variableOrder {
		if v == name {
			return i
		}
	}
	return -1
}
