package hamming

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rfielding/mvgrn-ctl/internal/dov"
	"github.com/rfielding/mvgrn-ctl/internal/stg"
)

// chainSetup models a single variable x:2.
func chainSetup() ([]int, []float64) {
	maxima := []int{2}
	weights := Weights([]string{"x"}, map[string]int{"x": 2})
	return maxima, weights
}

func TestGetBorderStates_SingletonDoV(t *testing.T) {
	maxima, weights := chainSetup()
	d := dov.NewSet()
	d.Add(stg.NewState(2))

	border, coborder := GetBorderStates(d, maxima, weights)
	require.True(t, border.Contains(stg.NewState(2)))
	require.Equal(t, 1, border.Len())
	require.True(t, coborder.Contains(stg.NewState(1)))
	require.Equal(t, 1, coborder.Len())
}

func TestWeightedDistance_ChainExample(t *testing.T) {
	maxima, weights := chainSetup()
	border := dov.NewSet()
	border.Add(stg.NewState(1))

	require.Equal(t, 0.5, WeightedDistance(stg.NewState(2), border, maxima, weights))

	coBorder := dov.NewSet()
	coBorder.Add(stg.NewState(2))
	require.Equal(t, 0.5, WeightedDistance(stg.NewState(1), coBorder, maxima, weights))
	require.Equal(t, 1.0, WeightedDistance(stg.NewState(0), coBorder, maxima, weights))
}

func TestWeightedDistance_Unreachable(t *testing.T) {
	maxima := []int{1}
	weights := []float64{1.0}
	empty := dov.NewSet()
	require.True(t, math.IsInf(WeightedDistance(stg.NewState(0), empty, maxima, weights), 1))
}

func TestFindExtremeDepth_ChainExample(t *testing.T) {
	maxima, weights := chainSetup()

	d := dov.NewSet()
	d.Add(stg.NewState(2))
	bOut := dov.NewSet()
	bOut.Add(stg.NewState(1))

	maxDovDepth, witness := FindExtremeDepth(d, bOut, maxima, weights)
	require.Equal(t, 0.5, maxDovDepth)
	require.Equal(t, stg.NewState(2), witness)

	dPrime := dov.NewSet()
	dPrime.Add(stg.NewState(0))
	dPrime.Add(stg.NewState(1))
	bIn := dov.NewSet()
	bIn.Add(stg.NewState(2))

	maxCodovDepth, _ := FindExtremeDepth(dPrime, bIn, maxima, weights)
	require.Equal(t, 1.0, maxCodovDepth)
}
