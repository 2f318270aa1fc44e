// Package orchestrator wires the boundary packages (loader, formula,
// network) to the quantitative CTL core (ctl, eval) and the result
// formatter (report) — component G of spec.md §4.G. It is grounded on
// _examples/original_source/src/main.py's main()/generate_initial_states,
// generalized from a single hard-coded script into a reusable Run
// function the cmd/mvgrnctl entry point and tests both call.
package orchestrator

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/rfielding/mvgrn-ctl/internal/ctl"
	"github.com/rfielding/mvgrn-ctl/internal/errs"
	"github.com/rfielding/mvgrn-ctl/internal/eval"
	"github.com/rfielding/mvgrn-ctl/internal/formula"
	"github.com/rfielding/mvgrn-ctl/internal/loader"
	"github.com/rfielding/mvgrn-ctl/internal/report"
	"github.com/rfielding/mvgrn-ctl/internal/stg"
)

// Result is the full outcome of one orchestrator run: the root formula's
// summary over the initial states, plus the labeling of every sub-formula
// over every state.
type Result struct {
	Summary report.Summary
	Labels  *eval.Labeling
	Root    *ctl.Formula
}

// Run executes spec.md §4.G's seven steps against the document read from
// r: parse the formula, rewrite to PNF, build the STG, materialise the
// initial-state set, evaluate, and summarise.
func Run(ctx context.Context, r io.Reader, logger *zap.Logger) (*Result, error) {
	doc, err := loader.Load(r)
	if err != nil {
		return nil, err
	}

	varNames, _ := doc.Network.Variables()
	known := make(map[string]bool, len(varNames))
	for _, v := range varNames {
		known[v] = true
	}

	ast, err := formula.Parse(doc.Formula, known)
	if err != nil {
		return nil, err
	}
	root := ctl.PNF(ast)

	graph, err := doc.Network.Build()
	if err != nil {
		return nil, err
	}

	initialStates, err := materializeInitialStates(graph, doc.InitStates)
	if err != nil {
		return nil, err
	}

	e := eval.New(graph, logger)
	labels, err := e.Evaluate(ctx, root)
	if err != nil {
		return nil, err
	}

	rootLabels := labels.Root(root.Key())
	summary := report.Summarize(doc.Formula, rootLabels, initialStates)

	if logger != nil {
		logger.Info("run complete",
			zap.String("formula", doc.Formula),
			zap.Int("states", len(graph.States())),
			zap.Int("initial_states", len(initialStates)),
			zap.Float64("min", summary.Min),
			zap.Float64("max", summary.Max),
			zap.Float64("mean", summary.Mean),
		)
	}

	return &Result{Summary: summary, Labels: labels, Root: root}, nil
}

// materializeInitialStates implements spec.md §4.G step 4: each region is
// a mapping from variable to its admissible values; the full set is the
// union, over regions, of the per-region Cartesian product. A missing or
// empty spec means all states.
func materializeInitialStates(graph *stg.Graph, regions []loader.InitRegion) ([]stg.State, error) {
	if len(regions) == 0 {
		return graph.States(), nil
	}

	varNames, maxActivities := graph.Variables()
	seen := make(map[stg.State]struct{})
	var out []stg.State

	for _, region := range regions {
		domains := make([][]int, len(varNames))
		for i, name := range varNames {
			if vals, ok := region[name]; ok {
				domains[i] = vals
			} else {
				max := maxActivities[name]
				full := make([]int, max+1)
				for v := 0; v <= max; v++ {
					full[v] = v
				}
				domains[i] = full
			}
		}

		for _, s := range cartesianProductOf(domains) {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: init_states produced an empty initial-state set", errs.ErrMalformedFormula)
	}
	return out, nil
}

func cartesianProductOf(domains [][]int) []stg.State {
	n := len(domains)
	values := make([]int, n)
	var out []stg.State
	var emit func(idx int)
	emit = func(idx int) {
		if idx == n {
			out = append(out, stg.NewState(values...))
			return
		}
		for _, v := range domains[idx] {
			values[idx] = v
			emit(idx + 1)
		}
	}
	emit(0)
	return out
}
