// Package eval implements the quantitative CTL evaluator: the per-operator
// labeling passes driven by internal/pqueue's priority queues, using
// internal/dov and internal/hamming for atomic propositions.
//
// The boolean fixed-point structure (AG/EG via De Morgan duals, EU-style
// least-fixed-point iteration) is grounded on
// _examples/rfielding-kripke-ctl/kripke/ctl.go's Sat() implementations and
// the root model_checker.go's switch-based dispatcher; here each operator's
// evaluate is generalized from a boolean membership test to a real-valued
// label propagated through internal/pqueue, per spec.md §4.F.
package eval

import "github.com/rfielding/mvgrn-ctl/internal/stg"

// Labeling is L: State × SubFormulaKey -> value. All cells are unset until
// written; after the evaluator completes every reachable (state, key) pair
// named in the sub-formula list holds a value in [-1, +1].
type Labeling struct {
	values map[stg.State]map[string]float64
}

// NewLabeling creates a labeling table with all cells unset for the given
// states.
func NewLabeling(states []stg.State) *Labeling {
	l := &Labeling{values: make(map[stg.State]map[string]float64, len(states))}
	for _, s := range states {
		l.values[s] = make(map[string]float64)
	}
	return l
}

// Get returns the label of (s, key), and whether it has been set.
func (l *Labeling) Get(s stg.State, key string) (float64, bool) {
	row, ok := l.values[s]
	if !ok {
		return 0, false
	}
	v, ok := row[key]
	return v, ok
}

// Set writes the label of (s, key).
func (l *Labeling) Set(s stg.State, key string, v float64) {
	l.values[s][key] = v
}

// Root returns the labels of every state for the given sub-formula key.
func (l *Labeling) Root(key string) map[stg.State]float64 {
	out := make(map[stg.State]float64, len(l.values))
	for s, row := range l.values {
		if v, ok := row[key]; ok {
			out[s] = v
		}
	}
	return out
}
