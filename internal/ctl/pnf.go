package ctl

import "github.com/rfielding/mvgrn-ctl/internal/dov"

// PNFAtomic rewrites an atomic-stratum formula into positive normal form:
// negation is pushed down to the leaves and eliminated there:
//
//	!AP(v,>=,k)      -> AP(v,<=,k-1)
//	!AP(v,<=,k)      -> AP(v,>=,k+1)
//	!Union(a,b)      -> Intersection(!a,!b), then recurse
//	!Intersection(a,b) -> Union(!a,!b), then recurse
//	!!x              -> x, then recurse
//
// The result never contains a NegationKind node.
func PNFAtomic(a *Atomic) *Atomic {
	switch a.Kind {
	case APKind:
		return a
	case NegationKind:
		return negate(a.A)
	case UnionKind:
		return AtomicUnion(PNFAtomic(a.A), PNFAtomic(a.B))
	case IntersectionKind:
		return AtomicIntersection(PNFAtomic(a.A), PNFAtomic(a.B))
	}
	return a
}

// negate returns the positive-normal-form equivalent of ¬a.
func negate(a *Atomic) *Atomic {
	switch a.Kind {
	case APKind:
		if a.Op == dov.GTE {
			return AP(a.Variable, dov.LTE, a.Threshold-1)
		}
		return AP(a.Variable, dov.GTE, a.Threshold+1)
	case NegationKind:
		return PNFAtomic(a.A)
	case UnionKind:
		return AtomicIntersection(negate(a.A), negate(a.B))
	case IntersectionKind:
		return AtomicUnion(negate(a.A), negate(a.B))
	}
	return a
}

// PNF rewrites a state-stratum formula into positive normal form by
// recursively normalizing every lifted atomic sub-formula. The Formula sum
// type has no state-stratum NegationKind variant, so the "no Negation node
// reachable from the root" invariant holds by construction; PNF only needs
// to push negation elimination through the atomic stratum.
func PNF(f *Formula) *Formula {
	switch f.Kind {
	case BooleanKind:
		return f
	case AtomicLiftKind:
		return Lift(PNFAtomic(f.Atomic))
	case ConjunctionKind:
		return Conjunction(PNF(f.Left), PNF(f.Right))
	case DisjunctionKind:
		return Disjunction(PNF(f.Left), PNF(f.Right))
	case AGKind:
		return AG(PNF(f.Left))
	case EGKind:
		return EG(PNF(f.Left))
	case AFKind:
		return AF(PNF(f.Left))
	case EFKind:
		return EF(PNF(f.Left))
	case AXKind:
		return AX(PNF(f.Left))
	case EXKind:
		return EX(PNF(f.Left))
	case AUKind:
		return AU(PNF(f.Left), PNF(f.Right))
	case EUKind:
		return EU(PNF(f.Left), PNF(f.Right))
	case AWKind:
		return AW(PNF(f.Left), PNF(f.Right))
	case EWKind:
		return EW(PNF(f.Left), PNF(f.Right))
	}
	return f
}
