// Package subst implements capture-avoiding substitution of free variables
// by terms, and the idempotent substitution-list bookkeeping the unifier
// builds up incrementally (spec §4.C).
package subst

import (
	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/term"
)

// Sub is a single binding from a free variable to a term of the same type.
type Sub struct {
	FVar ast.FreeVar
	Term term.Term
}

// Apply rewrites every free occurrence of s.FVar in t by s.Term. Per
// spec §4.C this is defined canonically via the term builder: abstract the
// variable out, then re-apply the replacement term, which keeps β/η
// normalization automatic. If the variable does not occur free, t is
// returned unchanged (a cheap, purely observable optimization: the two
// branches of this "if" are semantically equivalent, abstract-then-apply on
// a variable that never occurs is just an eta/beta no-op, but skipping it
// avoids needless allocation on every substitution list walk).
func Apply(s Sub, t term.Term) term.Term {
	if !t.FVars.Contains(s.FVar) {
		return t
	}
	return term.MkApplTerm(term.MkAbstrTerm(t, s.FVar), s.Term)
}

// List is an idempotent, append-only substitution list: applying it in full
// to any of its own right-hand sides is a no-op, mirroring the teacher's
// ast.ConstSubstList but generalized to arbitrary term right-hand sides.
type List []Sub

// Get returns the term bound to v, or the zero Term and false if v is not
// in the domain.
func (l List) Get(v ast.FreeVar) (term.Term, bool) {
	for _, s := range l {
		if s.FVar.Equals(v) {
			return s.Term, true
		}
	}
	return term.Term{}, false
}

// ApplyList folds Apply over l from left to right.
func ApplyList(l List, t term.Term) term.Term {
	for _, s := range l {
		t = Apply(s, t)
	}
	return t
}

// AddSubst extends l with a new binding, preserving idempotence: every
// existing right-hand side is first rewritten by the new binding, and the
// binding itself is then prepended -- unless its variable is an opaque
// helper (ast.IsHelperName), in which case only the rewriting happens and
// the helper binding itself is dropped so it never leaks into a caller's
// substitution list.
func AddSubst(l List, s Sub) List {
	rewritten := make(List, len(l))
	for i, old := range l {
		rewritten[i] = Sub{FVar: old.FVar, Term: Apply(s, old.Term)}
	}
	if s.FVar.IsHelper() {
		return rewritten
	}
	out := make(List, 0, len(rewritten)+1)
	out = append(out, s)
	out = append(out, rewritten...)
	return out
}

// Filtered returns a copy of l with every binding whose variable is an
// opaque helper removed -- the post-processing step spec §4.F's "Bind" case
// and §4.C's add_subst both rely on to keep helper variables from ever
// appearing in a solution reported to a caller.
func Filtered(l List) List {
	out := make(List, 0, len(l))
	for _, s := range l {
		if s.FVar.IsHelper() {
			continue
		}
		out = append(out, s)
	}
	return out
}
