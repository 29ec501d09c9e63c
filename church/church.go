// Package church builds Church-numeral terms and the standard successor,
// addition, and multiplication combinators over them (spec §4.D). These
// serve both as algebraic fixtures for the unifier's test suite and as
// worked examples of higher-order terms elsewhere in this module.
package church

import (
	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/term"
)

// NumType is the Church-numeral type (i->i)->i->i, parametrized by the base
// individual type i.
func NumType(base ast.Type) ast.Type {
	fType := ast.Compose(base, base) // i -> i
	return ast.Compose(ast.Compose(base, base), fType)
}

// MkNum builds the Church numeral for n: λf.λx. f^n x.
func MkNum(n int, base ast.Type) term.Term {
	fType := ast.Compose(base, base)
	f := ast.MkFreeVar("f", fType)
	x := ast.MkFreeVar("x", base)

	body := term.MkTerm(x)
	fTerm := term.MkTerm(f)
	for i := 0; i < n; i++ {
		body = term.MkApplTerm(fTerm, body)
	}
	return term.MkAbstrTerm(term.MkAbstrTerm(body, x), f)
}

// SuccTerm builds λn.λf.λx. f (n f x), the Church successor combinator.
func SuccTerm(base ast.Type) term.Term {
	fType := ast.Compose(base, base)
	numType := NumType(base)
	n := ast.MkFreeVar("n", numType)
	f := ast.MkFreeVar("f", fType)
	x := ast.MkFreeVar("x", base)

	nTerm := term.MkTerm(n)
	fTerm := term.MkTerm(f)
	xTerm := term.MkTerm(x)

	nfx := term.MkApplTerm(term.MkApplTerm(nTerm, fTerm), xTerm)
	body := term.MkApplTerm(fTerm, nfx)
	return term.MkAbstrTerm(term.MkAbstrTerm(term.MkAbstrTerm(body, x), f), n)
}

// PlusTerm builds λm.λn.λf.λx. m f (n f x), Church addition.
func PlusTerm(base ast.Type) term.Term {
	fType := ast.Compose(base, base)
	numType := NumType(base)
	m := ast.MkFreeVar("m", numType)
	n := ast.MkFreeVar("n", numType)
	f := ast.MkFreeVar("f", fType)
	x := ast.MkFreeVar("x", base)

	mTerm, nTerm, fTerm, xTerm := term.MkTerm(m), term.MkTerm(n), term.MkTerm(f), term.MkTerm(x)

	nfx := term.MkApplTerm(term.MkApplTerm(nTerm, fTerm), xTerm)
	body := term.MkApplTerm(term.MkApplTerm(mTerm, fTerm), nfx)
	return term.MkAbstrTerm(term.MkAbstrTerm(term.MkAbstrTerm(term.MkAbstrTerm(body, x), f), n), m)
}

// MultTerm builds λm.λn.λf. m (n f), Church multiplication.
func MultTerm(base ast.Type) term.Term {
	fType := ast.Compose(base, base)
	numType := NumType(base)
	m := ast.MkFreeVar("m", numType)
	n := ast.MkFreeVar("n", numType)
	f := ast.MkFreeVar("f", fType)

	mTerm, nTerm, fTerm := term.MkTerm(m), term.MkTerm(n), term.MkTerm(f)

	nf := term.MkApplTerm(nTerm, fTerm)
	body := term.MkApplTerm(mTerm, nf)
	return term.MkAbstrTerm(term.MkAbstrTerm(term.MkAbstrTerm(body, f), n), m)
}

// Succ applies the successor combinator to t.
func Succ(t term.Term, base ast.Type) term.Term {
	return term.MkApplTerm(SuccTerm(base), t)
}

// Plus applies the addition combinator to a and b.
func Plus(a, b term.Term, base ast.Type) term.Term {
	return term.MkApplTerm(term.MkApplTerm(PlusTerm(base), a), b)
}

// Mult applies the multiplication combinator to a and b.
func Mult(a, b term.Term, base ast.Type) term.Term {
	return term.MkApplTerm(term.MkApplTerm(MultTerm(base), a), b)
}
