// Package bindings generates the Huet-style imitation and projection
// substitutions used by the unifier at flex-rigid and flex-bound pairs
// (spec §4.E).
package bindings

import (
	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/subst"
	"codeberg.org/TauCeti/mangle-go/term"
)

// Imitation builds the imitation binding for the flex variable x against
// the rigid head y, if their goal types match. It returns (Sub, true) on
// success, or the zero value and false if y's goal type differs from x's
// goal type (imitation is not applicable).
//
// x: alpha with alpha = {goal: g, args: [a1..an]}. y has arity m and result
// type matching g. The binding is x |-> lambda X1..Xn. y (H1 X1..Xn) ... (Hm
// X1..Xn), where each Hi is a fresh helper of type [a1..an] -> bi (bi being
// y's i-th argument type).
func Imitation(x ast.FreeVar, y ast.Decl) (subst.Sub, bool) {
	alpha := x.Ty()
	if alpha.Goal != y.Ty().Goal {
		return subst.Sub{}, false
	}
	helpers := make([]ast.FreeVar, len(alpha.Args))
	helperTerms := make([]term.Term, len(alpha.Args))
	for i, at := range alpha.Args {
		helpers[i] = ast.MkFreshHelperVar(at)
		helperTerms[i] = term.MkTerm(helpers[i])
	}

	yBody := term.MkTerm(y)
	result := yBody
	for _, bi := range y.Ty().Args {
		hi := ast.MkFreshHelperVar(ast.Compose(bi, alpha.Args...))
		hiApplied := applyToAll(term.MkTerm(hi), helperTerms)
		result = term.MkApplTerm(result, hiApplied)
	}

	binding := wrapInBinders(result, helpers)
	return subst.Sub{FVar: x, Term: binding}, true
}

// Projections builds one projection binding for every argument slot of x
// whose goal type matches y's goal type. For the i-th eligible slot, the
// binding is x |-> lambda X1..Xn. Xi (H1 X1..Xn) ... (Hk X1..Xn), where Xi
// has arity k.
func Projections(x ast.FreeVar, y ast.Decl) []subst.Sub {
	alpha := x.Ty()
	helpers := make([]ast.FreeVar, len(alpha.Args))
	helperTerms := make([]term.Term, len(alpha.Args))
	for i, at := range alpha.Args {
		helpers[i] = ast.MkFreshHelperVar(at)
		helperTerms[i] = term.MkTerm(helpers[i])
	}

	var out []subst.Sub
	for _, xi := range helpers {
		if xi.Ty().Goal != y.Ty().Goal {
			continue
		}
		result := term.MkTerm(xi)
		for _, bk := range xi.Ty().Args {
			hk := ast.MkFreshHelperVar(ast.Compose(bk, alpha.Args...))
			hkApplied := applyToAll(term.MkTerm(hk), helperTerms)
			result = term.MkApplTerm(result, hkApplied)
		}
		binding := wrapInBinders(result, helpers)
		out = append(out, subst.Sub{FVar: x, Term: binding})
	}
	return out
}

// Candidates returns the full, ordered list of candidate bindings for a
// flex-rigid pair: imitation first (if applicable), then all eligible
// projections, matching the fixed branching order of spec §5.
func Candidates(x ast.FreeVar, y ast.Decl) []subst.Sub {
	var out []subst.Sub
	if im, ok := Imitation(x, y); ok {
		out = append(out, im)
	}
	out = append(out, Projections(x, y)...)
	return out
}

func applyToAll(fn term.Term, args []term.Term) term.Term {
	result := fn
	for _, a := range args {
		result = term.MkApplTerm(result, a)
	}
	return result
}

func wrapInBinders(body term.Term, vars []ast.FreeVar) term.Term {
	cur := body
	for i := len(vars) - 1; i >= 0; i-- {
		cur = term.MkAbstrTerm(cur, vars[i])
	}
	return cur
}
