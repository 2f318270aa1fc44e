package ctl

// SubFormulas returns the post-order, left-before-right list of distinct
// sub-formulae of root (which must already be in PNF): every sub-formula
// appears after all of its proper sub-formulae, atomics are leaves, and
// duplicate keys collapse to their first occurrence (memoisation of shared
// sub-expressions).
//
// AW/EW are sugar: before a weak-until node, its constituent AG/AU (resp.
// EG/EU) sub-formulae are enumerated so the evaluator can read both columns
// when it computes the max-of-two identity.
func SubFormulas(root *Formula) []*Formula {
	seen := make(map[string]bool)
	var out []*Formula
	var visit func(f *Formula)
	visit = func(f *Formula) {
		if f == nil {
			return
		}
		key := f.Key()
		if seen[key] {
			return
		}
		switch f.Kind {
		case BooleanKind, AtomicLiftKind:
			// leaves
		case ConjunctionKind, DisjunctionKind, AUKind, EUKind:
			visit(f.Left)
			visit(f.Right)
		case AGKind, EGKind, AFKind, EFKind, AXKind, EXKind:
			visit(f.Left)
		case AWKind:
			visit(AG(f.Left))
			visit(AU(f.Left, f.Right))
		case EWKind:
			visit(EG(f.Left))
			visit(EU(f.Left, f.Right))
		}
		seen[key] = true
		out = append(out, f)
	}
	visit(root)
	return out
}
