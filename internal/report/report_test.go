package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rfielding/mvgrn-ctl/internal/stg"
)

func TestSummarize_MinMaxMean(t *testing.T) {
	labels := map[stg.State]float64{
		stg.NewState(0): -1.0,
		stg.NewState(1): 0.0,
		stg.NewState(2): 1.0,
	}
	states := []stg.State{stg.NewState(0), stg.NewState(1), stg.NewState(2)}

	s := Summarize("x >= 2", labels, states)
	require.Equal(t, -1.0, s.Min)
	require.Equal(t, stg.NewState(0), s.MinState)
	require.Equal(t, 1.0, s.Max)
	require.Equal(t, stg.NewState(2), s.MaxState)
	require.InDelta(t, 0.0, s.Mean, 1e-9)
	require.Equal(t, 3, s.NumStates)
}

func TestSummary_TextAndMarkdownContainFormula(t *testing.T) {
	s := Summarize("x >= 2", map[stg.State]float64{stg.NewState(0): 1.0}, []stg.State{stg.NewState(0)})
	require.True(t, strings.Contains(s.Text(), "x >= 2"))
	require.True(t, strings.Contains(s.Markdown(), "x >= 2"))
}

func TestSubFormulaTable_SortedByKey(t *testing.T) {
	root := map[string]map[stg.State]float64{
		"zeta": {stg.NewState(0): 1.0},
		"alpha": {stg.NewState(0): -1.0},
	}
	table := SubFormulaTable(root)
	require.True(t, strings.Index(table, "alpha") < strings.Index(table, "zeta"))
}
