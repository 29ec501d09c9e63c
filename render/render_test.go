package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/render"
)

func TestVisualizeExpressionTreeLabelsConnectives(t *testing.T) {
	e := ast.BinOp{Op: ast.And, Left: ast.Var{Name: "P"}, Right: ast.Negation{Operand: ast.Var{Name: "Q"}}}
	got := render.VisualizeExpressionTree(e)
	assert.True(t, strings.Contains(got, "AND (∧)"))
	assert.True(t, strings.Contains(got, "NOT (¬)"))
	assert.True(t, strings.Contains(got, "VAR Q"))
}

func TestBuildTreeNodeListsDerivedFormulas(t *testing.T) {
	block := render.BuildTreeNode("alpha", "(P ∧ Q)", "P", "Q")
	assert.True(t, strings.HasPrefix(block, "[ALPHA] (P ∧ Q)\n"))
	assert.True(t, strings.Contains(block, "-> P"))
	assert.True(t, strings.Contains(block, "-> Q"))
}

func TestProcessStepsRenumbersSequentially(t *testing.T) {
	prefix := []render.Step{{Kind: "parse", Description: "parsed input"}}
	prover := []render.Step{{Kind: "alpha", Description: "split conjunction"}, {Kind: "closure", Description: "branch closed"}}
	got := render.ProcessSteps(prefix, prover)
	if assert.Len(t, got, 3) {
		assert.Equal(t, 1, got[0].Num)
		assert.Equal(t, 2, got[1].Num)
		assert.Equal(t, 3, got[2].Num)
	}
}
