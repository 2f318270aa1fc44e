package network

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rfielding/mvgrn-ctl/internal/errs"
	"github.com/rfielding/mvgrn-ctl/internal/stg"
)

func TestNew_RejectsNonPositiveMaxActivity(t *testing.T) {
	_, err := New(map[string]int{"x": 0}, nil)
	require.ErrorIs(t, err, errs.ErrMalformedNetwork)
}

func TestNew_RejectsUnknownTarget(t *testing.T) {
	_, err := New(map[string]int{"x": 1}, []Regulation{{Target: "y"}})
	require.ErrorIs(t, err, errs.ErrMalformedNetwork)
}

func TestNew_RejectsNonAscendingThresholds(t *testing.T) {
	_, err := New(map[string]int{"x": 2, "y": 2}, []Regulation{
		{
			Target:     "y",
			Regulators: []Regulator{{Variable: "x", Thresholds: []int{2, 1}}},
			Contexts:   []Context{{Intervals: []IntervalSpec{{Index: 1}}, TargetValue: 1}},
		},
	})
	require.ErrorIs(t, err, errs.ErrMalformedNetwork)
}

func TestNew_RejectsBadIntervalLength(t *testing.T) {
	_, err := New(map[string]int{"x": 2, "y": 2}, []Regulation{
		{
			Target:     "y",
			Regulators: []Regulator{{Variable: "x", Thresholds: []int{1}}},
			Contexts:   []Context{{Intervals: []IntervalSpec{{Index: 1}, {Index: 1}}, TargetValue: 1}},
		},
	})
	require.ErrorIs(t, err, errs.ErrMalformedNetwork)
}

// chainNetwork is a single self-regulated variable x:2 that increments by
// one every step, self-looping once it reaches its ceiling.
func chainNetwork(t *testing.T) *Network {
	t.Helper()
	n, err := New(map[string]int{"x": 2}, []Regulation{
		{
			Target:     "x",
			Regulators: []Regulator{{Variable: "x", Thresholds: []int{1, 2}}},
			Contexts: []Context{
				{Intervals: []IntervalSpec{{Index: 1}}, TargetValue: 1},
				{Intervals: []IntervalSpec{{Index: 2}}, TargetValue: 2},
				{Intervals: []IntervalSpec{{Index: 3}}, TargetValue: 2},
			},
		},
	})
	require.NoError(t, err)
	return n
}

func TestSuccessors_ChainAdvancesOneStepTowardTarget(t *testing.T) {
	n := chainNetwork(t)
	require.Equal(t, [][]int{{1}}, n.Successors([]int{0}))
	require.Equal(t, [][]int{{2}}, n.Successors([]int{1}))
	require.Empty(t, n.Successors([]int{2}))
}

func TestBuild_TotalityAndChainShape(t *testing.T) {
	n := chainNetwork(t)
	g, err := n.Build()
	require.NoError(t, err)

	require.Equal(t, []stg.State{stg.NewState(1)}, g.Successors(stg.NewState(0)))
	require.Equal(t, []stg.State{stg.NewState(2)}, g.Successors(stg.NewState(1)))
	require.Equal(t, []stg.State{stg.NewState(2)}, g.Successors(stg.NewState(2))) // self-loop sink
}

func TestContextMatchesWildcard(t *testing.T) {
	n, err := New(map[string]int{"a": 1, "b": 1, "c": 1}, []Regulation{
		{
			Target: "c",
			Regulators: []Regulator{
				{Variable: "a", Thresholds: []int{1}},
				{Variable: "b", Thresholds: []int{1}},
			},
			Contexts: []Context{
				{Intervals: []IntervalSpec{{Wildcard: true}, {Index: 2}}, TargetValue: 1},
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, 1, 1}}, n.Successors([]int{0, 1, 0}))
	require.Empty(t, n.Successors([]int{0, 0, 0}))
}
