// Package ctl implements the CTL formula AST as a two-stratum algebraic data
// type: the atomic stratum, closed under negation/union/intersection, and
// the state stratum, closed under the boolean and temporal operators. Each
// stratum is a single sum type discriminated by a Kind tag rather than
// twenty concrete classes, so PNF and sub-formula ordering are total
// functions over a switch instead of runtime type tests.
package ctl

import (
	"fmt"

	"github.com/rfielding/mvgrn-ctl/internal/dov"
)

// AtomicKind discriminates the atomic-stratum variants.
type AtomicKind int

const (
	APKind AtomicKind = iota
	NegationKind
	UnionKind
	IntersectionKind
)

// Atomic is an atomic-stratum formula: AP, Negation, Union, or Intersection.
// Only the fields relevant to Kind are populated: AP uses Variable/Op/
// Threshold; Negation uses A; Union/Intersection use A and B.
type Atomic struct {
	Kind      AtomicKind
	Variable  string
	Op        dov.Operator
	Threshold int
	A, B      *Atomic
}

// AP constructs an atomic proposition (variable, operator, threshold).
func AP(variable string, op dov.Operator, threshold int) *Atomic {
	return &Atomic{Kind: APKind, Variable: variable, Op: op, Threshold: threshold}
}

// Negate constructs ¬a.
func Negate(a *Atomic) *Atomic { return &Atomic{Kind: NegationKind, A: a} }

// AtomicUnion constructs a ∪ b.
func AtomicUnion(a, b *Atomic) *Atomic { return &Atomic{Kind: UnionKind, A: a, B: b} }

// AtomicIntersection constructs a ∩ b.
func AtomicIntersection(a, b *Atomic) *Atomic { return &Atomic{Kind: IntersectionKind, A: a, B: b} }

// Key returns a stable textual normal form, used both as the sub-formula
// memoization key and to detect structurally identical sub-trees.
func (a *Atomic) Key() string {
	if a == nil {
		return ""
	}
	switch a.Kind {
	case APKind:
		op := ">="
		if a.Op == dov.LTE {
			op = "<="
		}
		return fmt.Sprintf("(%s %s %d)", a.Variable, op, a.Threshold)
	case NegationKind:
		return fmt.Sprintf("!%s", a.A.Key())
	case UnionKind:
		return fmt.Sprintf("(%s | %s)", a.A.Key(), a.B.Key())
	case IntersectionKind:
		return fmt.Sprintf("(%s & %s)", a.A.Key(), a.B.Key())
	}
	return "?"
}

// StateKind discriminates the state-stratum variants.
type StateKind int

const (
	BooleanKind StateKind = iota
	ConjunctionKind
	DisjunctionKind
	AtomicLiftKind
	AGKind
	EGKind
	AFKind
	EFKind
	AXKind
	EXKind
	AUKind
	EUKind
	AWKind // sugar: max(AG(Left), A[Left U Right])
	EWKind // sugar: max(EG(Left), E[Left U Right])
)

// Formula is a state-stratum CTL formula. Only the fields relevant to Kind
// are populated:
//   - BooleanKind uses BoolValue.
//   - AtomicLiftKind uses Atomic (an atomic-stratum formula lifted into the
//     state stratum).
//   - Unary operators (AG, EG, AF, EF, AX, EX) use Left.
//   - Binary operators (Conjunction, Disjunction, AU, EU, AW, EW) use Left
//     and Right.
type Formula struct {
	Kind      StateKind
	BoolValue bool
	Atomic    *Atomic
	Left      *Formula
	Right     *Formula
}

func Boolean(v bool) *Formula { return &Formula{Kind: BooleanKind, BoolValue: v} }
func Lift(a *Atomic) *Formula { return &Formula{Kind: AtomicLiftKind, Atomic: a} }
func Conjunction(l, r *Formula) *Formula {
	return &Formula{Kind: ConjunctionKind, Left: l, Right: r}
}
func Disjunction(l, r *Formula) *Formula {
	return &Formula{Kind: DisjunctionKind, Left: l, Right: r}
}
func AG(f *Formula) *Formula { return &Formula{Kind: AGKind, Left: f} }
func EG(f *Formula) *Formula { return &Formula{Kind: EGKind, Left: f} }
func AF(f *Formula) *Formula { return &Formula{Kind: AFKind, Left: f} }
func EF(f *Formula) *Formula { return &Formula{Kind: EFKind, Left: f} }
func AX(f *Formula) *Formula { return &Formula{Kind: AXKind, Left: f} }
func EX(f *Formula) *Formula { return &Formula{Kind: EXKind, Left: f} }
func AU(l, r *Formula) *Formula { return &Formula{Kind: AUKind, Left: l, Right: r} }
func EU(l, r *Formula) *Formula { return &Formula{Kind: EUKind, Left: l, Right: r} }
func AW(l, r *Formula) *Formula { return &Formula{Kind: AWKind, Left: l, Right: r} }
func EW(l, r *Formula) *Formula { return &Formula{Kind: EWKind, Left: l, Right: r} }

// Key returns a stable textual normal form, used as the sub-formula
// memoization key in the labeling table.
func (f *Formula) Key() string {
	if f == nil {
		return ""
	}
	switch f.Kind {
	case BooleanKind:
		if f.BoolValue {
			return "true"
		}
		return "false"
	case AtomicLiftKind:
		return f.Atomic.Key()
	case ConjunctionKind:
		return fmt.Sprintf("(%s && %s)", f.Left.Key(), f.Right.Key())
	case DisjunctionKind:
		return fmt.Sprintf("(%s || %s)", f.Left.Key(), f.Right.Key())
	case AGKind:
		return fmt.Sprintf("AG(%s)", f.Left.Key())
	case EGKind:
		return fmt.Sprintf("EG(%s)", f.Left.Key())
	case AFKind:
		return fmt.Sprintf("AF(%s)", f.Left.Key())
	case EFKind:
		return fmt.Sprintf("EF(%s)", f.Left.Key())
	case AXKind:
		return fmt.Sprintf("AX(%s)", f.Left.Key())
	case EXKind:
		return fmt.Sprintf("EX(%s)", f.Left.Key())
	case AUKind:
		return fmt.Sprintf("A[%s U %s]", f.Left.Key(), f.Right.Key())
	case EUKind:
		return fmt.Sprintf("E[%s U %s]", f.Left.Key(), f.Right.Key())
	case AWKind:
		return fmt.Sprintf("A[%s W %s]", f.Left.Key(), f.Right.Key())
	case EWKind:
		return fmt.Sprintf("E[%s W %s]", f.Left.Key(), f.Right.Key())
	}
	return "?"
}
