// Package report formats a quantitative CTL run's result: worst and best
// satisfaction degree over the initial states (each with a witness state),
// and the mean. The markdown-table renderer follows the same
// strings.Builder-plus-fixed-header shape used for other tabular reports
// in this codebase, generalized from counters/throughput rows to a single
// summary row.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rfielding/mvgrn-ctl/internal/stg"
)

// Summary is the result of scoring a root formula over a set of initial
// states.
type Summary struct {
	Formula    string
	Min        float64
	MinState   stg.State
	Max        float64
	MaxState   stg.State
	Mean       float64
	NumStates  int
}

// Summarize computes min/max/mean satisfaction degree, with witness
// states for the extremes, over initialStates using the given per-state
// labels (L[s][root]). initialStates must be non-empty.
func Summarize(formula string, labels map[stg.State]float64, initialStates []stg.State) Summary {
	s := Summary{Formula: formula, Min: math.Inf(1), Max: math.Inf(-1), NumStates: len(initialStates)}
	var sum float64
	for _, state := range initialStates {
		v := labels[state]
		if v < s.Min {
			s.Min, s.MinState = v, state
		}
		if v > s.Max {
			s.Max, s.MaxState = v, state
		}
		sum += v
	}
	if s.NumStates > 0 {
		s.Mean = sum / float64(s.NumStates)
	}
	return s
}

// Text renders the plain-text summary printed to stdout: formula text,
// worst/best (state, value), and the mean.
func (s Summary) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Formula: %s\n", s.Formula)
	fmt.Fprintf(&sb, "Worst value %.4f in state %v\n", s.Min, s.MinState.Values())
	fmt.Fprintf(&sb, "Best value %.4f in state %v\n", s.Max, s.MaxState.Values())
	fmt.Fprintf(&sb, "Average value among initial states: %.4f\n", s.Mean)
	return sb.String()
}

// Markdown renders the same summary as a single-row markdown table.
func (s Summary) Markdown() string {
	var sb strings.Builder
	sb.WriteString("| Formula | Worst | Worst State | Best | Best State | Mean | # Initial States |\n")
	sb.WriteString("|---------|-------|-------------|------|------------|------|-------------------|\n")
	fmt.Fprintf(&sb, "| %s | %.4f | %v | %.4f | %v | %.4f | %d |\n",
		s.Formula, s.Min, s.MinState.Values(), s.Max, s.MaxState.Values(), s.Mean, s.NumStates)
	return sb.String()
}

// SubFormulaTable renders every sub-formula's per-state min/max/mean over
// the given labels, sorted by key. The mvgrnctl command does not print it;
// its --verbose flag only lowers the log level.
func SubFormulaTable(root map[string]map[stg.State]float64) string {
	keys := make([]string, 0, len(root))
	for k := range root {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("| Sub-formula | Min | Max | Mean |\n")
	sb.WriteString("|-------------|-----|-----|------|\n")
	for _, k := range keys {
		row := root[k]
		min, max, sum := math.Inf(1), math.Inf(-1), 0.0
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			sum += v
		}
		mean := 0.0
		if len(row) > 0 {
			mean = sum / float64(len(row))
		}
		fmt.Fprintf(&sb, "| %s | %.4f | %.4f | %.4f |\n", k, min, max, mean)
	}
	return sb.String()
}
