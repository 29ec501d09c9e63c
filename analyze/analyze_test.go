package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/TauCeti/mangle-go/diag"
	"codeberg.org/TauCeti/mangle-go/tableau"
)

func TestAnalyzeDeMorganTautology(t *testing.T) {
	o := New(diag.Discard())
	res, err := o.Analyze("¬(P ∧ Q) ↔ (¬P ∨ ¬Q)")
	require.NoError(t, err)

	assert.Equal(t, tableau.Tautology, res.Status)
	assert.NotEmpty(t, res.Tree)
	assert.NotEmpty(t, res.Visualization)

	require.GreaterOrEqual(t, len(res.Steps), 2)
	assert.Equal(t, "parse", res.Steps[0].Kind)
	assert.Equal(t, "lowering", res.Steps[1].Kind)
	for i, s := range res.Steps {
		assert.Equal(t, i+1, s.Num)
	}
}

func TestAnalyzeContingent(t *testing.T) {
	o := New(nil)
	res, err := o.Analyze("P ∧ Q")
	require.NoError(t, err)
	assert.Equal(t, tableau.Contingent, res.Status)
}

func TestAnalyzeParseErrorAbortsPipeline(t *testing.T) {
	o := New(diag.Discard())
	res, err := o.Analyze("((P")
	require.Error(t, err)
	assert.Nil(t, res.Parsed)
	assert.Empty(t, res.Steps)
}
