package formula

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rfielding/mvgrn-ctl/internal/ctl"
	"github.com/rfielding/mvgrn-ctl/internal/dov"
)

var xy = map[string]bool{"x": true, "y": true}

func TestParse_AtomicProposition(t *testing.T) {
	f, err := Parse("x >= 2", xy)
	require.NoError(t, err)
	require.Equal(t, ctl.Lift(ctl.AP("x", dov.GTE, 2)).Key(), f.Key())
}

func TestParse_BooleanConstants(t *testing.T) {
	f, err := Parse("true", xy)
	require.NoError(t, err)
	require.Equal(t, ctl.Boolean(true).Key(), f.Key())

	f, err = Parse("false", xy)
	require.NoError(t, err)
	require.Equal(t, ctl.Boolean(false).Key(), f.Key())
}

func TestParse_TemporalUnary(t *testing.T) {
	f, err := Parse("AG (x >= 1)", xy)
	require.NoError(t, err)
	require.Equal(t, ctl.AG(ctl.Lift(ctl.AP("x", dov.GTE, 1))).Key(), f.Key())
}

func TestParse_UntilAndWeakUntil(t *testing.T) {
	f, err := Parse("A x >= 1 U y <= 0", xy)
	require.NoError(t, err)
	want := ctl.AU(ctl.Lift(ctl.AP("x", dov.GTE, 1)), ctl.Lift(ctl.AP("y", dov.LTE, 0)))
	require.Equal(t, want.Key(), f.Key())

	f, err = Parse("E x >= 1 W y <= 0", xy)
	require.NoError(t, err)
	wantW := ctl.EW(ctl.Lift(ctl.AP("x", dov.GTE, 1)), ctl.Lift(ctl.AP("y", dov.LTE, 0)))
	require.Equal(t, wantW.Key(), f.Key())
}

func TestParse_AtomicStratumNegationAndConnectives(t *testing.T) {
	f, err := Parse("!(x >= 1 & y <= 0)", xy)
	require.NoError(t, err)
	want := ctl.Lift(ctl.Negate(ctl.AtomicIntersection(ctl.AP("x", dov.GTE, 1), ctl.AP("y", dov.LTE, 0))))
	require.Equal(t, want.Key(), f.Key())
}

func TestParse_StateConjunctionDisjunction(t *testing.T) {
	f, err := Parse("AG (x >= 1) && EF (y <= 0)", xy)
	require.NoError(t, err)
	want := ctl.Conjunction(ctl.AG(ctl.Lift(ctl.AP("x", dov.GTE, 1))), ctl.EF(ctl.Lift(ctl.AP("y", dov.LTE, 0))))
	require.Equal(t, want.Key(), f.Key())
}

func TestParse_UndeclaredVariableFails(t *testing.T) {
	_, err := Parse("z >= 1", xy)
	require.Error(t, err)
}

func TestParse_SyntaxErrorFails(t *testing.T) {
	_, err := Parse("x >=", xy)
	require.Error(t, err)
}

func TestParse_TrailingInputFails(t *testing.T) {
	_, err := Parse("true true", xy)
	require.Error(t, err)
}
