// Package term builds and manipulates higher-order terms kept always in
// β-normal, η-long form, following the representation invariants of the
// shared term model (bound variables carry absolute, contiguous indices
// rather than binder-relative de Bruijn depths).
package term

import (
	"errors"
	"fmt"

	"codeberg.org/TauCeti/mangle-go/ast"
)

// maxIndexBudget bounds how large a bound-variable index AdjustAllBoundVars
// will tolerate before it gives up; beyond this the term is almost certainly
// the result of a runaway construction rather than legitimate work.
const maxIndexBudget = 1_000_000_000

// ErrCapture names a variable capture during abstraction or substitution.
// No function in this package returns it: MkAbstrTerm does not check for
// capture.
var ErrCapture = errors.New("term: variable capture")

// ErrTypeMismatch is the error text MkApplTerm panics with when its
// precondition fails: the function term's first argument type does not
// match the argument term's type.
var ErrTypeMismatch = errors.New("term: type mismatch in application")

// ErrIndexOverflow is returned when canonicalizing a term would require more
// bound-variable indices than maxIndexBudget allows.
var ErrIndexOverflow = errors.New("term: bound variable index overflow")

// Term is a β-normal, η-long higher-order term: λ bvars . head args.
type Term struct {
	BVars  []ast.BoundVar
	Head   ast.Decl
	Args   []Term
	Typ    ast.Type
	FVars  ast.FreeVarSet
	MaxNum int
}

// MkTerm constructs the canonical η-long term for the given declaration: if
// head's type is a base type the result is a bare leaf; otherwise head is
// eta-expanded by applying it to one fresh helper variable per argument
// type and wrapping the whole thing in as many abstractions.
func MkTerm(head ast.Decl) Term {
	argTypes := head.Ty().Args
	if len(argTypes) == 0 {
		return leaf(head)
	}
	helpers := make([]ast.FreeVar, len(argTypes))
	argTerms := make([]Term, len(argTypes))
	for i, at := range argTypes {
		helpers[i] = ast.MkFreshHelperVar(at)
		argTerms[i] = MkTerm(helpers[i])
	}
	fv := ast.NewFreeVarSet()
	if hv, ok := head.(ast.FreeVar); ok {
		fv.Add(hv)
	}
	maxNum := 0
	for i, at := range argTerms {
		fv = fv.Union(at.FVars)
		fv.Add(helpers[i])
		if at.MaxNum > maxNum {
			maxNum = at.MaxNum
		}
	}
	body := Term{
		Head:   head,
		Args:   argTerms,
		Typ:    ast.NewType(head.Ty().Goal),
		FVars:  fv,
		MaxNum: maxNum,
	}
	cur := body
	for i := len(helpers) - 1; i >= 0; i-- {
		cur = MkAbstrTerm(cur, helpers[i])
	}
	return cur
}

// MkFreeVarTerm is convenience composition: mk_term(mk_free_var(name, ty)).
func MkFreeVarTerm(name string, ty ast.Type) Term {
	return MkTerm(ast.MkFreeVar(name, ty))
}

// MkConstTerm is convenience composition: mk_term(mk_const(name, ty)).
func MkConstTerm(name string, ty ast.Type) Term {
	return MkTerm(ast.MkConst(name, ty))
}

func leaf(head ast.Decl) Term {
	fv := ast.NewFreeVarSet()
	selfMax := 0
	switch d := head.(type) {
	case ast.FreeVar:
		fv.Add(d)
	case ast.BoundVar:
		selfMax = d.Index
	}
	return Term{Head: head, Typ: head.Ty(), FVars: fv, MaxNum: selfMax}
}

// MkAbstrTerm abstracts the free variable v out of T, following spec §4.B:
// if v occurs free, a fresh bound index one greater than T's current
// max_num is allocated, every free occurrence of v is rewritten to that
// bound variable, and the new binder is pushed onto the front of bvars; if
// v does not occur free, a vacuous binder is still introduced so the result
// is typed exactly as `v.Ty() -> T.Typ`.
func MkAbstrTerm(t Term, v ast.FreeVar) Term {
	k := t.MaxNum + 1
	bv := ast.MkBoundVar(k, v.Ty())
	newTyp := ast.Compose(t.Typ, v.Ty())

	if !t.FVars.Contains(v) {
		return Term{
			BVars:  prependBV(bv, t.BVars),
			Head:   t.Head,
			Args:   t.Args,
			Typ:    newTyp,
			FVars:  t.FVars,
			MaxNum: k,
		}
	}

	body := Term{Head: t.Head, Args: t.Args, Typ: ast.NewType(t.Typ.Goal, t.Typ.Args...), FVars: t.FVars}
	sub := substFreeAsBound(body, v, bv)
	return Term{
		BVars:  prependBV(bv, t.BVars),
		Head:   sub.Head,
		Args:   sub.Args,
		Typ:    newTyp,
		FVars:  sub.FVars,
		MaxNum: k,
	}
}

func prependBV(bv ast.BoundVar, rest []ast.BoundVar) []ast.BoundVar {
	out := make([]ast.BoundVar, 0, len(rest)+1)
	out = append(out, bv)
	out = append(out, rest...)
	return out
}

// substFreeAsBound rewrites every occurrence of v as head into bv, leaving
// t's own bvars alone (those belong to a different, already-established
// scope than the one being introduced by the caller).
func substFreeAsBound(t Term, v ast.FreeVar, bv ast.BoundVar) Term {
	if !t.FVars.Contains(v) {
		return t
	}
	newHead := t.Head
	replaced := false
	if fv, ok := t.Head.(ast.FreeVar); ok && fv.Equals(v) {
		newHead = bv
		replaced = true
	}
	newArgs := make([]Term, len(t.Args))
	for i, a := range t.Args {
		newArgs[i] = substFreeAsBound(a, v, bv)
	}
	newFVars := ast.NewFreeVarSet()
	if fv, ok := newHead.(ast.FreeVar); ok {
		newFVars.Add(fv)
	}
	maxNum := 0
	if replaced {
		maxNum = bv.Index
	}
	for _, na := range newArgs {
		newFVars = newFVars.Union(na.FVars)
		if na.MaxNum > maxNum {
			maxNum = na.MaxNum
		}
	}
	return Term{BVars: t.BVars, Head: newHead, Args: newArgs, Typ: t.Typ, FVars: newFVars, MaxNum: maxNum}
}

// MkApplTerm applies L to R, returning a β-normal, η-long result. Requires
// L.Typ.Args to be non-empty and its first entry to equal R.Typ.
func MkApplTerm(l, r Term) Term {
	if len(l.Typ.Args) == 0 {
		panic(fmt.Sprintf("%v: function term %v has no remaining argument slot", ErrTypeMismatch, l))
	}
	if !l.Typ.Args[0].Equals(r.Typ) {
		panic(fmt.Sprintf("%v: %v expects %v, got %v", ErrTypeMismatch, l, l.Typ.Args[0], r.Typ))
	}
	if len(l.BVars) == 0 {
		panic(fmt.Sprintf("term: malformed function term %v has argument slots but no binders", l))
	}

	rRaised := raiseBoundIndices(r, l.MaxNum)
	idx := l.BVars[0].Index
	body := Term{Head: l.Head, Args: l.Args, Typ: ast.NewType(l.Typ.Goal, l.Typ.Args[1:]...)}
	reduced := substBoundAsTerm(body, idx, rRaised)

	result := Term{
		BVars:  l.BVars[1:],
		Head:   reduced.Head,
		Args:   reduced.Args,
		Typ:    ast.Compose(ast.NewType(l.Typ.Goal), l.Typ.Args[1:]...),
		FVars:  reduced.FVars,
		MaxNum: maxInt(reduced.MaxNum, maxBVIndex(l.BVars[1:])),
	}
	return AdjustOuterBoundVars(result)
}

// substBoundAsTerm replaces every occurrence of the bound variable idx (as a
// term head, including partially-applied occurrences consuming t's args) by
// repl, re-establishing η-long, β-normal form via MkApplTerm.
func substBoundAsTerm(t Term, idx int, repl Term) Term {
	newArgs := make([]Term, len(t.Args))
	for i, a := range t.Args {
		newArgs[i] = substBoundAsTerm(a, idx, repl)
	}
	if bv, ok := t.Head.(ast.BoundVar); ok && bv.Index == idx {
		out := repl
		for _, a := range newArgs {
			out = MkApplTerm(out, a)
		}
		return wrapBVars(out, t.BVars)
	}
	return rebuildWithArgs(t, newArgs)
}

func wrapBVars(body Term, bvars []ast.BoundVar) Term {
	if len(bvars) == 0 {
		return body
	}
	types := make([]ast.Type, len(bvars))
	for i, bv := range bvars {
		types[i] = bv.Ty()
	}
	return Term{
		BVars:  bvars,
		Head:   body.Head,
		Args:   body.Args,
		Typ:    ast.Compose(body.Typ, types...),
		FVars:  body.FVars,
		MaxNum: maxInt(body.MaxNum, maxBVIndex(bvars)),
	}
}

func rebuildWithArgs(t Term, newArgs []Term) Term {
	fv := ast.NewFreeVarSet()
	if hv, ok := t.Head.(ast.FreeVar); ok {
		fv.Add(hv)
	}
	maxNum := maxBVIndex(t.BVars)
	if bv, ok := t.Head.(ast.BoundVar); ok && bv.Index > maxNum {
		maxNum = bv.Index
	}
	for _, a := range newArgs {
		fv = fv.Union(a.FVars)
		if a.MaxNum > maxNum {
			maxNum = a.MaxNum
		}
	}
	return Term{BVars: t.BVars, Head: t.Head, Args: newArgs, Typ: t.Typ, FVars: fv, MaxNum: maxNum}
}

// raiseBoundIndices shifts every bound index occurring in t by delta. Used
// to make two previously-independent terms' bound-variable ranges disjoint
// before combining them (mk_appl_term step 1).
func raiseBoundIndices(t Term, delta int) Term {
	if delta == 0 || t.MaxNum == 0 {
		return t
	}
	newBVars := make([]ast.BoundVar, len(t.BVars))
	for i, bv := range t.BVars {
		newBVars[i] = ast.MkBoundVar(bv.Index+delta, bv.Ty())
	}
	newHead := t.Head
	if bv, ok := t.Head.(ast.BoundVar); ok {
		newHead = ast.MkBoundVar(bv.Index+delta, bv.Ty())
	}
	newArgs := make([]Term, len(t.Args))
	for i, a := range t.Args {
		newArgs[i] = raiseBoundIndices(a, delta)
	}
	return Term{BVars: newBVars, Head: newHead, Args: newArgs, Typ: t.Typ, FVars: t.FVars, MaxNum: t.MaxNum + delta}
}

func maxBVIndex(bvars []ast.BoundVar) int {
	if len(bvars) == 0 {
		return 0
	}
	return bvars[0].Index
}

// maxBoundIn returns the largest index bound by a binder anywhere inside
// args. References to binders outside args are not counted.
func maxBoundIn(args []Term) int {
	m := 0
	for _, a := range args {
		for _, bv := range a.BVars {
			if bv.Index > m {
				m = bv.Index
			}
		}
		if n := maxBoundIn(a.Args); n > m {
			m = n
		}
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// AdjustOuterBoundVars shifts this node's own bvars (and every reference to
// them inside head/args) so that the smallest bound bvars index is exactly
// one greater than the largest index bound within args. It assumes args are
// already internally well-formed; it only touches the outermost layer.
func AdjustOuterBoundVars(t Term) Term {
	if len(t.BVars) == 0 {
		return t
	}
	wantSmallest := maxBoundIn(t.Args) + 1
	haveSmallest := t.BVars[len(t.BVars)-1].Index
	delta := wantSmallest - haveSmallest
	if delta == 0 {
		return t
	}
	mapping := make(map[int]int, len(t.BVars))
	newBVars := make([]ast.BoundVar, len(t.BVars))
	for i, bv := range t.BVars {
		ni := bv.Index + delta
		mapping[bv.Index] = ni
		newBVars[i] = ast.MkBoundVar(ni, bv.Ty())
	}
	newHead := remapHead(t.Head, mapping)
	newArgs := make([]Term, len(t.Args))
	for i, a := range t.Args {
		newArgs[i] = remap(a, mapping)
	}
	return Term{
		BVars:  newBVars,
		Head:   newHead,
		Args:   newArgs,
		Typ:    t.Typ,
		FVars:  t.FVars,
		MaxNum: newBVars[0].Index,
	}
}

func remapHead(h ast.Decl, mapping map[int]int) ast.Decl {
	if bv, ok := h.(ast.BoundVar); ok {
		if ni, ok := mapping[bv.Index]; ok {
			return ast.MkBoundVar(ni, bv.Ty())
		}
	}
	return h
}

// remap rewrites only the specific bound indices present in mapping; it does
// not touch a subterm's own bvars, since those belong to a locally
// established, disjoint scope.
func remap(t Term, mapping map[int]int) Term {
	newHead := remapHead(t.Head, mapping)
	newArgs := make([]Term, len(t.Args))
	for i, a := range t.Args {
		newArgs[i] = remap(a, mapping)
	}
	maxNum := maxBVIndex(t.BVars)
	if bv, ok := newHead.(ast.BoundVar); ok && bv.Index > maxNum {
		maxNum = bv.Index
	}
	for _, a := range newArgs {
		if a.MaxNum > maxNum {
			maxNum = a.MaxNum
		}
	}
	return Term{BVars: t.BVars, Head: newHead, Args: newArgs, Typ: t.Typ, FVars: t.FVars, MaxNum: maxNum}
}

// AdjustAllBoundVars canonicalizes every bound index in t bottom-up: each
// subterm's own bvars are renumbered to start right after the largest index
// used in its (already canonical) args, recursively. It rejects terms that
// would need more than one billion distinct indices.
func AdjustAllBoundVars(t Term) (Term, error) {
	canon, highest := adjustAll(t)
	if highest > maxIndexBudget {
		return Term{}, fmt.Errorf("%w: would require index %d", ErrIndexOverflow, highest)
	}
	return canon, nil
}

func adjustAll(t Term) (Term, int) {
	newArgs := make([]Term, len(t.Args))
	argsMax := 0
	for i, a := range t.Args {
		ca, m := adjustAll(a)
		newArgs[i] = ca
		if m > argsMax {
			argsMax = m
		}
	}
	rebuilt := rebuildWithArgs(Term{BVars: t.BVars, Head: t.Head, Typ: t.Typ}, newArgs)
	adjusted := AdjustOuterBoundVars(rebuilt)
	highest := adjusted.MaxNum
	if highest < argsMax {
		highest = argsMax
	}
	return adjusted, highest
}

// String renders t in a lambda-calculus-ish debug form.
func (t Term) String() string {
	s := t.Head.String()
	for _, a := range t.Args {
		s = s + " " + a.parenString()
	}
	for i := len(t.BVars) - 1; i >= 0; i-- {
		s = fmt.Sprintf("\\bv%d.%s", t.BVars[i].Index, s)
	}
	return s
}

func (t Term) parenString() string {
	if len(t.Args) == 0 && len(t.BVars) == 0 {
		return t.Head.String()
	}
	return "(" + t.String() + ")"
}

// Equals is structural term equality: same bvars indices, same head, same
// args, same type.
func (t Term) Equals(u Term) bool {
	if len(t.BVars) != len(u.BVars) || !t.Typ.Equals(u.Typ) {
		return false
	}
	for i, bv := range t.BVars {
		if !bv.Equals(u.BVars[i]) {
			return false
		}
	}
	if !t.Head.Equals(u.Head) || len(t.Args) != len(u.Args) {
		return false
	}
	for i, a := range t.Args {
		if !a.Equals(u.Args[i]) {
			return false
		}
	}
	return true
}

// IsFlex reports whether t's head is a free variable, whatever its bvars and
// args -- used by the unifier to tell whether a flex-flex pair is still flex
// after a substitution.
func (t Term) IsFlex() bool {
	_, ok := t.Head.(ast.FreeVar)
	return ok
}
