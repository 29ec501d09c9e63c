// Package unify implements the Huet-style higher-order pre-unification
// search of spec §4.F: a depth-bounded, recursive case analysis over a FIFO
// list of term-pair equations, branching over imitation/projection bindings
// at flex-rigid and flex-bound pairs and carrying unresolved flex-flex pairs
// as a residual.
package unify

import (
	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/bindings"
	"codeberg.org/TauCeti/mangle-go/subst"
	"codeberg.org/TauCeti/mangle-go/term"
)

// Eq is an equation between two terms to be unified.
type Eq struct {
	L, R term.Term
}

// FlexPair is an unresolved flex-flex equation left in a solution's residual.
type FlexPair struct {
	L, R term.Term
}

// Solution is one way to make every input equation hold.
type Solution struct {
	Substitutions subst.List
	FlexList      []FlexPair
}

// Result is the outcome of a full unification search.
type Result struct {
	Solutions            []Solution
	MaxDepthReachedCount int
}

// DefaultMaxDepth is the depth budget used when a caller does not specify
// one explicitly.
const DefaultMaxDepth = 10

// Unify searches for substitutions making every equation in eqs hold. If
// findAll is false, the search stops at the first branch that yields a
// complete solution.
func Unify(eqs []Eq, findAll bool, maxDepth int) Result {
	st := state{eqs: append([]Eq{}, eqs...), depth: maxDepth}
	sols, hits := solve(st, findAll)
	return Result{Solutions: sols, MaxDepthReachedCount: hits}
}

type state struct {
	eqs   []Eq
	sub   subst.List
	flex  []FlexPair
	depth int
}

// caseInfo is the result of classifying one equation: which case applies,
// and (for the binding cases) the flex variable and the decl/term it must
// be reconciled against.
type caseInfo struct {
	kind      kind
	fv        ast.FreeVar // valid for kindBind, kindFlexRigid, kindFlexBound
	rigidHead ast.Decl    // valid for kindFlexRigid, kindFlexBound
	bindTo    term.Term   // valid for kindBind
}

func solve(st state, findAll bool) ([]Solution, int) {
	if len(st.eqs) == 0 {
		return []Solution{{Substitutions: subst.Filtered(st.sub), FlexList: append([]FlexPair{}, st.flex...)}}, 0
	}
	cur := st.eqs[0]
	rest := st.eqs[1:]
	l, r := cur.L, cur.R
	info := classify(l, r)

	switch info.kind {
	case kindTrivial:
		return solve(state{eqs: rest, sub: st.sub, flex: st.flex, depth: st.depth}, findAll)

	case kindTypeMismatch, kindPrune:
		return nil, 0

	case kindDecompose:
		newEqs := append(append([]Eq{}, rest...), decompose(l, r)...)
		return solve(state{eqs: newEqs, sub: st.sub, flex: st.flex, depth: st.depth}, findAll)

	case kindFlexFlex:
		newFlex := append(append([]FlexPair{}, st.flex...), FlexPair{l, r})
		return solve(state{eqs: rest, sub: st.sub, flex: newFlex, depth: st.depth}, findAll)

	case kindBind:
		if info.bindTo.FVars.Contains(info.fv) {
			return nil, 0 // occurs check
		}
		s := subst.Sub{FVar: info.fv, Term: info.bindTo}
		newSub := subst.AddSubst(st.sub, s)
		newRest := applyToEqs(s, rest)
		newFlex, reopened := applyToFlex(s, st.flex)
		newEqs := append(newRest, reopened...)
		return solve(state{eqs: newEqs, sub: newSub, flex: newFlex, depth: st.depth}, findAll)

	case kindFlexRigid, kindFlexBound:
		if st.depth <= 0 {
			return nil, 1
		}
		var cands []subst.Sub
		if info.kind == kindFlexRigid {
			cands = bindings.Candidates(info.fv, info.rigidHead)
		} else {
			cands = bindings.Projections(info.fv, info.rigidHead)
		}
		var sols []Solution
		hits := 0
		for _, cand := range cands {
			newSub := subst.AddSubst(st.sub, cand)
			newRest := applyToEqs(cand, rest)
			curL := subst.Apply(cand, l)
			curR := subst.Apply(cand, r)
			newFlex, reopened := applyToFlex(cand, st.flex)
			newEqs := append([]Eq{{curL, curR}}, append(newRest, reopened...)...)
			subSols, subHits := solve(state{eqs: newEqs, sub: newSub, flex: newFlex, depth: st.depth - 1}, findAll)
			sols = append(sols, subSols...)
			hits += subHits
			if !findAll && len(sols) > 0 {
				return sols, hits
			}
		}
		return sols, hits

	default:
		return nil, 0
	}
}

type kind int

const (
	kindTrivial kind = iota
	kindTypeMismatch
	kindDecompose
	kindFlexFlex
	kindBind
	kindFlexRigid
	kindFlexBound
	kindPrune
)

// classify inspects the pair (l, r) against spec §4.F's case table, in
// table order: trivial, type mismatch, constant/constant, bound/bound,
// flex-flex, bind, flex-rigid, flex-bound, prune.
func classify(l, r term.Term) caseInfo {
	if l.Equals(r) {
		return caseInfo{kind: kindTrivial}
	}
	if !l.Typ.Equals(r.Typ) {
		return caseInfo{kind: kindTypeMismatch}
	}

	lFv, lFvOk := l.Head.(ast.FreeVar)
	rFv, rFvOk := r.Head.(ast.FreeVar)
	_, lCoOk := l.Head.(ast.Const)
	_, rCoOk := r.Head.(ast.Const)
	lBv, lBvOk := l.Head.(ast.BoundVar)
	rBv, rBvOk := r.Head.(ast.BoundVar)

	switch {
	case lCoOk && rCoOk:
		if l.Head.Equals(r.Head) {
			return caseInfo{kind: kindDecompose}
		}
		return caseInfo{kind: kindPrune}

	case lBvOk && rBvOk:
		if l.MaxNum-lBv.Index == r.MaxNum-rBv.Index {
			return caseInfo{kind: kindDecompose}
		}
		return caseInfo{kind: kindPrune}

	case lFvOk && rFvOk:
		return caseInfo{kind: kindFlexFlex}

	case lFvOk && isBare(l):
		return caseInfo{kind: kindBind, fv: lFv, bindTo: r}
	case rFvOk && isBare(r):
		return caseInfo{kind: kindBind, fv: rFv, bindTo: l}

	case lFvOk && rCoOk:
		return caseInfo{kind: kindFlexRigid, fv: lFv, rigidHead: r.Head}
	case rFvOk && lCoOk:
		return caseInfo{kind: kindFlexRigid, fv: rFv, rigidHead: l.Head}

	case lFvOk && rBvOk:
		return caseInfo{kind: kindFlexBound, fv: lFv, rigidHead: r.Head}
	case rFvOk && lBvOk:
		return caseInfo{kind: kindFlexBound, fv: rFv, rigidHead: l.Head}

	default:
		return caseInfo{kind: kindPrune}
	}
}

func isBare(t term.Term) bool {
	return t.Typ.IsBase() && len(t.BVars) == 0 && len(t.Args) == 0
}

// decompose pushes one equation per argument pair, each side wrapped in its
// parent's binders: (lambda bvars_L. arg_i_L, lambda bvars_R. arg_i_R).
// Without the wrapping, an argument referencing a parent binder would be
// compared against its own MaxNum instead of the parent's, and the
// bound-bound depth-offset check would misclassify.
func decompose(l, r term.Term) []Eq {
	out := make([]Eq, 0, len(l.Args))
	for i := range l.Args {
		out = append(out, Eq{L: wrapBinders(l.Args[i], l.BVars), R: wrapBinders(r.Args[i], r.BVars)})
	}
	return out
}

// wrapBinders rebinds t under the parent binders bvars. The parent's
// indices are strictly greater than any index inside t, so the merged
// binder list stays ordered; AdjustOuterBoundVars then restores the
// contiguity invariant for the new outermost layer.
func wrapBinders(t term.Term, bvars []ast.BoundVar) term.Term {
	if len(bvars) == 0 {
		return t
	}
	types := make([]ast.Type, len(bvars))
	for i, bv := range bvars {
		types[i] = bv.Ty()
	}
	merged := make([]ast.BoundVar, 0, len(bvars)+len(t.BVars))
	merged = append(merged, bvars...)
	merged = append(merged, t.BVars...)
	maxNum := t.MaxNum
	for _, bv := range bvars {
		if bv.Index > maxNum {
			maxNum = bv.Index
		}
	}
	return term.AdjustOuterBoundVars(term.Term{
		BVars:  merged,
		Head:   t.Head,
		Args:   t.Args,
		Typ:    ast.Compose(t.Typ, types...),
		FVars:  t.FVars,
		MaxNum: maxNum,
	})
}

func applyToEqs(s subst.Sub, eqs []Eq) []Eq {
	out := make([]Eq, len(eqs))
	for i, e := range eqs {
		out[i] = Eq{L: subst.Apply(s, e.L), R: subst.Apply(s, e.R)}
	}
	return out
}

// applyToFlex applies s to every flex pair; any pair whose head stops being
// flex (free-variable-headed) on either side after substitution is moved
// back into the equation list, per spec §4.F's Bind action.
func applyToFlex(s subst.Sub, flex []FlexPair) (remaining []FlexPair, reopened []Eq) {
	for _, p := range flex {
		nl, nr := subst.Apply(s, p.L), subst.Apply(s, p.R)
		if nl.IsFlex() && nr.IsFlex() {
			remaining = append(remaining, FlexPair{nl, nr})
		} else {
			reopened = append(reopened, Eq{L: nl, R: nr})
		}
	}
	return remaining, reopened
}
