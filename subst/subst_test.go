package subst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/subst"
	"codeberg.org/TauCeti/mangle-go/term"
)

func TestApplyReplacesFreeVariable(t *testing.T) {
	x := ast.MkFreeVar("X", ast.Individual)
	a := term.MkTerm(ast.MkConst("a", ast.Individual))
	xTerm := term.MkTerm(x)

	result := subst.Apply(subst.Sub{FVar: x, Term: a}, xTerm)
	assert.True(t, result.Equals(a))
}

func TestApplyNoopWhenVariableAbsent(t *testing.T) {
	x := ast.MkFreeVar("X", ast.Individual)
	y := ast.MkFreeVar("Y", ast.Individual)
	a := term.MkTerm(ast.MkConst("a", ast.Individual))
	yTerm := term.MkTerm(y)

	result := subst.Apply(subst.Sub{FVar: x, Term: a}, yTerm)
	assert.True(t, result.Equals(yTerm))
}

func TestAddSubstKeepsListIdempotent(t *testing.T) {
	x := ast.MkFreeVar("X", ast.Individual)
	y := ast.MkFreeVar("Y", ast.Individual)
	a := term.MkTerm(ast.MkConst("a", ast.Individual))

	l := subst.List{{FVar: y, Term: term.MkTerm(x)}}
	l = subst.AddSubst(l, subst.Sub{FVar: x, Term: a})

	yVal, ok := l.Get(y)
	assert.True(t, ok)
	assert.True(t, yVal.Equals(a), "expected y's RHS to be rewritten through the new binding")

	applied := subst.ApplyList(l, subst.ApplyList(l, term.MkTerm(y)))
	onceApplied := subst.ApplyList(l, term.MkTerm(y))
	assert.True(t, applied.Equals(onceApplied), "applying an idempotent list twice must equal applying it once")
}

func TestAddSubstDropsHelperBindings(t *testing.T) {
	h := ast.MkFreshHelperVar(ast.Individual)
	a := term.MkTerm(ast.MkConst("a", ast.Individual))

	l := subst.AddSubst(nil, subst.Sub{FVar: h, Term: a})
	assert.Empty(t, l, "helper-variable bindings must never appear in the resulting list")
}
