package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"codeberg.org/TauCeti/mangle-go/ast"
)

func TestExprEqualsStructural(t *testing.T) {
	a := ast.BinOp{Op: ast.And, Left: ast.Var{Name: "P"}, Right: ast.Var{Name: "Q"}}
	b := ast.BinOp{Op: ast.And, Left: ast.Var{Name: "P"}, Right: ast.Var{Name: "Q"}}
	c := ast.BinOp{Op: ast.Or, Left: ast.Var{Name: "P"}, Right: ast.Var{Name: "Q"}}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestExprStringRendersCanonicalForm(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"negation", ast.Negation{Operand: ast.Var{Name: "P"}}, "¬P"},
		{
			"implication",
			ast.BinOp{Op: ast.Implies, Left: ast.Var{Name: "P"}, Right: ast.Var{Name: "Q"}},
			"(P → Q)",
		},
		{
			"forall",
			ast.Quant{Kind: ast.Forall, Var: ast.Var{Name: "X"}, Body: ast.Var{Name: "P"}},
			"(∀X.P)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.expr.String()); diff != "" {
				t.Errorf("String() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarkerWrapsOriginal(t *testing.T) {
	orig := ast.Quant{Kind: ast.Forall, Var: ast.Var{Name: "X"}, Body: ast.Var{Name: "P"}}
	m := ast.Marker{Kind: ast.InstantiatedForall, Original: orig}
	assert.True(t, m.Original.Equals(orig))
}
