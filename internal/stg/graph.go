package stg

import (
	"fmt"
	"sort"

	"github.com/rfielding/mvgrn-ctl/internal/errs"
)

// SuccessorFunc computes the regulator-driven successors of a state. It may
// return zero or more states; the biology behind it is external to this
// package (internal/network implements the MvGRN version). Graph only
// requires that it is deterministic and that every returned state lies
// within the declared space.
type SuccessorFunc func(s State) []State

// Graph is a total directed graph over the Cartesian product
// ∏ {0,...,m_i} of the declared variables. Every state has at least one
// outgoing edge: a state with no regulator-driven successor is given a
// self-loop. Graph is immutable after Build returns.
type Graph struct {
	varNames []string
	maxAct   map[string]int
	states   []State
	succ     map[State][]State
	pred     map[State][]State
}

// Build enumerates the full state space in the given variable order,
// computes successors via fn, enforces the totality invariant (self-loop on
// states with no regulator-driven successor), and builds the predecessor
// index. Variable order is fixed by varNames and is the source of truth for
// coordinate indices thereafter.
//
// Build fails with errs.ErrMalformedNetwork if fn produces a successor state
// outside the declared space.
func Build(varNames []string, maxActivities map[string]int, fn SuccessorFunc) (*Graph, error) {
	g := &Graph{
		varNames: append([]string(nil), varNames...),
		maxAct:   maxActivities,
		succ:     make(map[State][]State),
		pred:     make(map[State][]State),
	}

	g.states = cartesianProduct(varNames, maxActivities)
	inSpace := make(map[State]struct{}, len(g.states))
	for _, s := range g.states {
		inSpace[s] = struct{}{}
	}

	for _, s := range g.states {
		next := fn(s)
		for _, t := range next {
			if _, ok := inSpace[t]; !ok {
				return nil, fmt.Errorf("%w: successor %v of state %v is outside the declared state space",
					errs.ErrMalformedNetwork, t.Values(), s.Values())
			}
		}
		if len(next) == 0 {
			next = []State{s} // totality: self-loop on states with no driven successor
		}
		g.succ[s] = next
		for _, t := range next {
			g.pred[t] = append(g.pred[t], s)
		}
	}

	return g, nil
}

func cartesianProduct(varNames []string, maxActivities map[string]int) []State {
	n := len(varNames)
	maxima := make([]int, n)
	for i, v := range varNames {
		maxima[i] = maxActivities[v]
	}

	total := 1
	for _, m := range maxima {
		total *= m + 1
	}

	states := make([]State, 0, total)
	values := make([]int, n)
	var emit func(idx int)
	emit = func(idx int) {
		if idx == n {
			cp := append([]int(nil), values...)
			states = append(states, key(cp))
			return
		}
		for v := 0; v <= maxima[idx]; v++ {
			values[idx] = v
			emit(idx + 1)
		}
	}
	emit(0)
	return states
}

// States returns all states in deterministic order.
func (g *Graph) States() []State {
	out := make([]State, len(g.states))
	copy(out, g.states)
	return out
}

// Successors returns the direct successors of s (always non-empty).
func (g *Graph) Successors(s State) []State {
	return g.succ[s]
}

// Predecessors returns the direct predecessors of s (possibly empty only
// for states that are never a successor of anything, i.e. sources; with
// self-loops on sinks, every reachable state has at least one predecessor).
func (g *Graph) Predecessors(s State) []State {
	return g.pred[s]
}

// Variables returns the ordered variable names and their maximum activity.
func (g *Graph) Variables() ([]string, map[string]int) {
	return append([]string(nil), g.varNames...), g.maxAct
}

// VariableIndex returns the coordinate index of name, or -1 if undeclared.
func (g *Graph) VariableIndex(name string) int {
	for i, v := range g.varNames {
		if v == name {
			return i
		}
	}
	return -1
}

// SortedVariableNames returns the declared variable names in lexical order,
// independent of construction order; used for stable diagnostic output.
func (g *Graph) SortedVariableNames() []string {
	out := append([]string(nil), g.varNames...)
	sort.Strings(out)
	return out
}
