package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/term"
)

var (
	iType  = ast.Individual
	iiType = ast.NewType(ast.Iota, ast.Individual)
)

func TestMkTermLeafHasNoBinders(t *testing.T) {
	a := ast.MkConst("a", iType)
	tm := term.MkTerm(a)
	assert.Empty(t, tm.BVars)
	assert.Empty(t, tm.Args)
	assert.True(t, tm.Typ.Equals(iType))
}

func TestMkTermEtaExpandsFunctional(t *testing.T) {
	f := ast.MkConst("f", iiType)
	tm := term.MkTerm(f)
	// f: i->i must be eta-expanded to one binder applying f to it.
	assert.Len(t, tm.BVars, 1)
	assert.Len(t, tm.Args, 1)
	assert.Equal(t, "f", tm.Head.Name())
}

func TestMkAbstrTermVacuous(t *testing.T) {
	a := term.MkTerm(ast.MkConst("a", iType))
	v := ast.MkFreeVar("X", iType)
	abstracted := term.MkAbstrTerm(a, v)
	assert.Len(t, abstracted.BVars, 1)
	assert.Equal(t, 0, a.FVars.Len())
}

func TestMkApplTermReducesIdentity(t *testing.T) {
	// (\x. x) a == a
	x := ast.MkFreeVar("X", iType)
	idBody := term.MkTerm(x)
	idFn := term.MkAbstrTerm(idBody, x)
	a := term.MkTerm(ast.MkConst("a", iType))

	result := term.MkApplTerm(idFn, a)
	assert.True(t, result.Equals(a), "expected identity applied to a to reduce to a, got %v", result)
}

func TestAdjustAllBoundVarsIsIdempotent(t *testing.T) {
	f := ast.MkConst("f", iiType)
	tm := term.MkTerm(f)
	canon1, err := term.AdjustAllBoundVars(tm)
	assert.NoError(t, err)
	canon2, err := term.AdjustAllBoundVars(canon1)
	assert.NoError(t, err)
	assert.True(t, canon1.Equals(canon2))
}
