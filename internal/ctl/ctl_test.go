package ctl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rfielding/mvgrn-ctl/internal/dov"
)

func TestPNFAtomic_APNegation(t *testing.T) {
	require.Equal(t, AP("x", dov.LTE, 1).Key(), PNFAtomic(Negate(AP("x", dov.GTE, 2))).Key())
	require.Equal(t, AP("x", dov.GTE, 3).Key(), PNFAtomic(Negate(AP("x", dov.LTE, 2))).Key())
}

func TestPNFAtomic_DeMorgan(t *testing.T) {
	a := AP("x", dov.GTE, 1)
	b := AP("y", dov.LTE, 1)

	gotUnion := PNFAtomic(Negate(AtomicUnion(a, b)))
	wantUnion := AtomicIntersection(PNFAtomic(Negate(a)), PNFAtomic(Negate(b)))
	require.Equal(t, wantUnion.Key(), gotUnion.Key())

	gotInter := PNFAtomic(Negate(AtomicIntersection(a, b)))
	wantInter := AtomicUnion(PNFAtomic(Negate(a)), PNFAtomic(Negate(b)))
	require.Equal(t, wantInter.Key(), gotInter.Key())
}

func TestPNFAtomic_DoubleNegation(t *testing.T) {
	a := AP("x", dov.GTE, 1)
	require.Equal(t, a.Key(), PNFAtomic(Negate(Negate(a))).Key())
}

func TestPNF_Idempotent(t *testing.T) {
	f := AU(Lift(Negate(AP("x", dov.GTE, 1))), Lift(AtomicUnion(AP("y", dov.LTE, 2), Negate(AP("z", dov.GTE, 0)))))
	once := PNF(f)
	twice := PNF(once)
	require.Equal(t, once.Key(), twice.Key())
}

func TestSubFormulas_PostOrderAndDedup(t *testing.T) {
	p := Lift(AP("x", dov.GTE, 1))
	f := Conjunction(p, p) // shared sub-expression, identical key

	subs := SubFormulas(f)
	// p's key should appear exactly once, before the conjunction.
	var pIdx, fIdx = -1, -1
	for i, s := range subs {
		if s.Key() == p.Key() {
			pIdx = i
		}
		if s.Key() == f.Key() {
			fIdx = i
		}
	}
	require.NotEqual(t, -1, pIdx)
	require.NotEqual(t, -1, fIdx)
	require.Less(t, pIdx, fIdx)

	count := 0
	for _, s := range subs {
		if s.Key() == p.Key() {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestSubFormulas_WeakUntilExpandsToAGAndAU(t *testing.T) {
	phi := Lift(AP("x", dov.GTE, 0))
	psi := Boolean(false)
	f := AW(phi, psi)

	subs := SubFormulas(f)
	wantAG := AG(phi).Key()
	wantAU := AU(phi, psi).Key()

	hasAG, hasAU := false, false
	for _, s := range subs {
		if s.Key() == wantAG {
			hasAG = true
		}
		if s.Key() == wantAU {
			hasAU = true
		}
	}
	require.True(t, hasAG)
	require.True(t, hasAU)
	require.Equal(t, f.Key(), subs[len(subs)-1].Key())
}
