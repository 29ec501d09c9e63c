package hol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/hol"
)

func TestLowerPredicateLetterIsConstant(t *testing.T) {
	n, err := hol.Lower(ast.Var{Name: "P"})
	assert.NoError(t, err)
	assert.Equal(t, hol.KindTerm, n.Kind)
	if _, ok := n.Term.Head.(ast.Const); !ok {
		t.Fatalf("expected P to lower to a constant, got %#v", n.Term.Head)
	}
}

func TestLowerOtherUppercaseIsVariable(t *testing.T) {
	n, err := hol.Lower(ast.Var{Name: "X"})
	assert.NoError(t, err)
	if _, ok := n.Term.Head.(ast.FreeVar); !ok {
		t.Fatalf("expected X to lower to a free variable, got %#v", n.Term.Head)
	}
}

func TestLowerLowercaseIdentIsFunctionConstant(t *testing.T) {
	n, err := hol.Lower(ast.Ident{Name: "succ"})
	assert.NoError(t, err)
	assert.True(t, n.Term.Typ.Equals(ast.Compose(ast.Individual, ast.Individual)))
}

func TestLowerCPrefixedIsIndividualConstant(t *testing.T) {
	n, err := hol.Lower(ast.Ident{Name: "c_zero"})
	assert.NoError(t, err)
	assert.True(t, n.Term.Typ.Equals(ast.Individual))
}

func TestLowerSkolemMarkerIsIndividualConstant(t *testing.T) {
	n, err := hol.Lower(ast.Ident{Name: "x_sk_1"})
	assert.NoError(t, err)
	assert.True(t, n.Term.Typ.Equals(ast.Individual))
}

func TestLowerNegationAndConjunction(t *testing.T) {
	// X and Y are propositional variables; P..T would be i -> o predicates.
	e := ast.Negation{Operand: ast.BinOp{Op: ast.And, Left: ast.Var{Name: "X"}, Right: ast.Var{Name: "Y"}}}
	n, err := hol.Lower(e)
	assert.NoError(t, err)
	assert.Equal(t, hol.KindTerm, n.Kind)
	assert.True(t, n.Term.Typ.Equals(ast.Prop))
}

func TestLowerIllTypedQuantifierBodyIsUnknown(t *testing.T) {
	// forall x: x x juxtaposes a bound base-typed variable with itself,
	// which is ill-typed (x has no arrow type) and degrades to unknown
	// rather than panicking.
	e := ast.Quant{Kind: ast.Forall, Var: ast.Var{Name: "X"}, Body: ast.App{Fun: ast.Var{Name: "X"}, Arg: ast.Var{Name: "X"}}}
	n, err := hol.Lower(e)
	assert.Error(t, err)
	assert.Equal(t, hol.KindUnknown, n.Kind)
}

func TestLowerLambdaIdentityAbstraction(t *testing.T) {
	e := ast.Lambda{Var: ast.TypedVar{VarExpr: ast.Var{Name: "X"}, TypeExpr: ast.Ident{Name: "i"}}, Body: ast.Var{Name: "X"}}
	n, err := hol.Lower(e)
	assert.NoError(t, err)
	assert.True(t, n.Term.Typ.Equals(ast.Compose(ast.Individual, ast.Individual)))
}
