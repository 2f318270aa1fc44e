package dov

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rfielding/mvgrn-ctl/internal/stg"
)

func chainGraph(t *testing.T) *stg.Graph {
	t.Helper()
	g, err := stg.Build([]string{"x"}, map[string]int{"x": 2}, func(s stg.State) []stg.State {
		v := s.Values()[0]
		if v < 2 {
			return []stg.State{stg.NewState(v + 1)}
		}
		return []stg.State{stg.NewState(v)}
	})
	require.NoError(t, err)
	return g
}

func TestAtomicProposition_GTE(t *testing.T) {
	g := chainGraph(t)
	d := AtomicProposition(g, "x", GTE, 2)
	require.True(t, d.Contains(stg.NewState(2)))
	require.False(t, d.Contains(stg.NewState(1)))
	require.False(t, d.Contains(stg.NewState(0)))
}

func TestAtomicProposition_LTE(t *testing.T) {
	g := chainGraph(t)
	d := AtomicProposition(g, "x", LTE, 0)
	require.True(t, d.Contains(stg.NewState(0)))
	require.False(t, d.Contains(stg.NewState(1)))
}

func TestUnionIntersectionComplement(t *testing.T) {
	g := chainGraph(t)
	ge2 := AtomicProposition(g, "x", GTE, 2)
	le0 := AtomicProposition(g, "x", LTE, 0)

	u := Union(ge2, le0)
	require.Equal(t, 2, u.Len())

	in := Intersection(ge2, le0)
	require.Equal(t, 0, in.Len())

	co := Complement(ge2, g.States())
	require.True(t, co.Contains(stg.NewState(0)))
	require.True(t, co.Contains(stg.NewState(1)))
	require.False(t, co.Contains(stg.NewState(2)))
}
