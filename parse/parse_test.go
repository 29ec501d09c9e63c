package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/parse"
)

func TestParseSimpleConjunction(t *testing.T) {
	got, err := parse.Formula("P ∧ Q")
	assert.NoError(t, err)
	want := ast.BinOp{Op: ast.And, Left: ast.Var{Name: "P"}, Right: ast.Var{Name: "Q"}}
	assert.True(t, got.Equals(want))
}

func TestParseNegationBindsTighterThanConjunction(t *testing.T) {
	got, err := parse.Formula("¬P ∧ Q")
	assert.NoError(t, err)
	want := ast.BinOp{
		Op:    ast.And,
		Left:  ast.Negation{Operand: ast.Var{Name: "P"}},
		Right: ast.Var{Name: "Q"},
	}
	assert.True(t, got.Equals(want))
}

func TestParseApplicationIsLeftAssociativeCurrying(t *testing.T) {
	got, err := parse.Formula("f a b")
	assert.NoError(t, err)
	want := ast.App{
		Fun: ast.App{Fun: ast.Ident{Name: "f"}, Arg: ast.Ident{Name: "a"}},
		Arg: ast.Ident{Name: "b"},
	}
	assert.True(t, got.Equals(want))
}

func TestParseImplicationIsLeftFolded(t *testing.T) {
	got, err := parse.Formula("P → Q → R")
	assert.NoError(t, err)
	want := ast.BinOp{
		Op:   ast.Implies,
		Left: ast.BinOp{Op: ast.Implies, Left: ast.Var{Name: "P"}, Right: ast.Var{Name: "Q"}},
		Right: ast.Var{Name: "R"},
	}
	assert.True(t, got.Equals(want), "got %s want %s", got, want)
}

func TestParseExistsUniqueMatchesBeforeExists(t *testing.T) {
	got, err := parse.Formula("∃!X. P X")
	assert.NoError(t, err)
	q, ok := got.(ast.Quant)
	assert.True(t, ok)
	assert.Equal(t, ast.ExistsUnique, q.Kind)
}

func TestParseTypedVariableBinder(t *testing.T) {
	got, err := parse.Formula("∀X:i. P X")
	assert.NoError(t, err)
	q, ok := got.(ast.Quant)
	if assert.True(t, ok) {
		tv, ok := q.Var.(ast.TypedVar)
		assert.True(t, ok)
		assert.Equal(t, "X", tv.VarExpr.(ast.Var).Name)
		assert.Equal(t, "i", tv.TypeExpr.(ast.Ident).Name)
	}
}

func TestParseCompositionThenApplication(t *testing.T) {
	// (f ∘ g)(x) parses as App((f ∘ g), x).
	got, err := parse.Formula("(f ∘ g) x")
	assert.NoError(t, err)
	want := ast.App{
		Fun: ast.BinOp{Op: ast.ComposeOp, Left: ast.Ident{Name: "f"}, Right: ast.Ident{Name: "g"}},
		Arg: ast.Ident{Name: "x"},
	}
	assert.True(t, got.Equals(want))
}

func TestParseTrailingGarbageIsError(t *testing.T) {
	_, err := parse.Formula("P ∧ Q )")
	assert.Error(t, err)
}

func TestStringifyRoundTripsStructurally(t *testing.T) {
	e, err := parse.Formula("¬(P ∧ Q) ↔ (¬P ∨ ¬Q)")
	assert.NoError(t, err)
	reparsed, err := parse.Formula(parse.Stringify(e))
	assert.NoError(t, err)
	assert.True(t, e.Equals(reparsed), "stringify/parse round trip changed structure: %s vs %s", e, reparsed)
}
