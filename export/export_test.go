package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/church"
	"codeberg.org/TauCeti/mangle-go/term"
	"codeberg.org/TauCeti/mangle-go/unify"
)

func TestProblemRendersDeclsAndConjecture(t *testing.T) {
	ind := ast.Individual
	a := term.MkConstTerm("a", ind)
	fTy := ast.Compose(ind, ind, ind)
	f := term.MkTerm(ast.MkConst("f", fTy))
	x := term.MkTerm(ast.MkFreeVar("x", fTy))

	lhs := term.MkApplTerm(term.MkApplTerm(x, a), a)
	rhs := term.MkApplTerm(term.MkApplTerm(f, a), a)
	text := Problem("xaa_faa", []unify.Eq{{L: lhs, R: rhs}})

	assert.Contains(t, text, "thf(a_type, type, 'a': $i).")
	assert.Contains(t, text, "thf(f_type, type, 'f': $i > $i > $i).")
	assert.Contains(t, text, "thf(xaa_faa, conjecture,")
	assert.Contains(t, text, "? [X: $i > $i > $i]")
	assert.Contains(t, text, "= ('f' @ 'a' @ 'a')")
}

func TestProblemRendersLambdaBinders(t *testing.T) {
	two := church.MkNum(2, ast.Individual)
	text := Problem("two", []unify.Eq{{L: two, R: two}})

	assert.Contains(t, text, "^ [BV_")
	assert.Contains(t, text, "$i > $i")
	// The numeral is closed, so no existential binder list appears.
	assert.NotContains(t, text, "? [")
}

func TestWriteProblemCreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exported_problems")
	a := term.MkConstTerm("a", ast.Individual)
	x := term.MkTerm(ast.MkFreeVar("x", ast.Individual))

	require.NoError(t, WriteProblem(dir, "bind", []unify.Eq{{L: x, R: a}}))

	raw, err := os.ReadFile(filepath.Join(dir, "bind.p"))
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "% Problem: bind"))
	assert.Contains(t, text, "( X = 'a' )")
}
