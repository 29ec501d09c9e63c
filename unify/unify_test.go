package unify_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/church"
	"codeberg.org/TauCeti/mangle-go/export"
	"codeberg.org/TauCeti/mangle-go/term"
	"codeberg.org/TauCeti/mangle-go/unify"
)

// exportProblem writes the scenario to the problem-export directory as a
// diagnostic artifact, and doubles as an end-to-end check of the exporter.
func exportProblem(t *testing.T, name string, eqs []unify.Eq) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "exported_problems")
	if err := export.WriteProblem(dir, name, eqs); err != nil {
		t.Fatalf("exporting %s: %v", name, err)
	}
	if _, err := os.Stat(filepath.Join(dir, name+".p")); err != nil {
		t.Fatalf("exported problem missing: %v", err)
	}
}

var (
	i  = ast.Individual
	ff = ast.Compose(i, i, i) // i -> i -> i
)

// I6: unifying a term with itself yields exactly one solution with an
// empty substitution and an empty flex list.
func TestUnifySelfIsTrivial(t *testing.T) {
	a := term.MkConstTerm("a", i)
	res := unify.Unify([]unify.Eq{{L: a, R: a}}, true, unify.DefaultMaxDepth)
	assert.Equal(t, 0, res.MaxDepthReachedCount)
	if assert.Len(t, res.Solutions, 1) {
		assert.Empty(t, res.Solutions[0].Substitutions)
		assert.Empty(t, res.Solutions[0].FlexList)
	}
}

// Scenario: succ(x) = 2 has exactly one solution, x |-> 1.
func TestUnifySuccUnknownSolvesToPredecessor(t *testing.T) {
	x := term.MkFreeVarTerm("X", church.NumType(i))
	lhs := church.Succ(x, i)
	rhs := church.MkNum(2, i)
	eqs := []unify.Eq{{L: lhs, R: rhs}}
	exportProblem(t, "succ_unknown", eqs)
	res := unify.Unify(eqs, true, unify.DefaultMaxDepth)
	one := church.MkNum(1, i)
	found := false
	for _, sol := range res.Solutions {
		bound, ok := sol.Substitutions.Get(x.Head.(ast.FreeVar))
		if ok && bound.Equals(one) {
			found = true
		}
	}
	assert.True(t, found, "expected a solution binding X to 1, got %+v", res.Solutions)
}

// Scenario: succ(x) = 0 has no solutions -- no numeral has 0 as a successor.
func TestUnifySuccUnknownAgainstZeroFails(t *testing.T) {
	x := term.MkFreeVarTerm("X", church.NumType(i))
	lhs := church.Succ(x, i)
	rhs := church.MkNum(0, i)
	res := unify.Unify([]unify.Eq{{L: lhs, R: rhs}}, true, unify.DefaultMaxDepth)
	assert.Empty(t, res.Solutions)
}

// Scenario: a small linear system, solved by two sequential bind steps.
func TestUnifyLinearSystem(t *testing.T) {
	a := term.MkConstTerm("a", i)
	b := term.MkConstTerm("b", i)
	x := term.MkFreeVarTerm("X", i)
	y := term.MkFreeVarTerm("Y", i)
	res := unify.Unify([]unify.Eq{
		{L: x, R: a},
		{L: y, R: x},
	}, true, unify.DefaultMaxDepth)
	if assert.Len(t, res.Solutions, 1) {
		sol := res.Solutions[0]
		xb, _ := sol.Substitutions.Get(x.Head.(ast.FreeVar))
		yb, _ := sol.Substitutions.Get(y.Head.(ast.FreeVar))
		assert.True(t, xb.Equals(a))
		assert.True(t, yb.Equals(a))
	}
	_ = b
}

// Scenario: f(x) = f(y) decomposes (same rigid head f) into the flex-flex
// pair x = y, which is left unresolved in the flex residual rather than
// forced to bind.
func TestUnifyFlexFlexDecomposesIntoResidual(t *testing.T) {
	fi := ast.Compose(i, i) // i -> i
	f := term.MkConstTerm("f", fi)
	x := term.MkFreeVarTerm("X", i)
	y := term.MkFreeVarTerm("Y", i)
	res := unify.Unify([]unify.Eq{{L: term.MkApplTerm(f, x), R: term.MkApplTerm(f, y)}}, true, unify.DefaultMaxDepth)
	if assert.Len(t, res.Solutions, 1) {
		assert.Empty(t, res.Solutions[0].Substitutions)
		assert.Len(t, res.Solutions[0].FlexList, 1)
	}
}

// Decomposition keeps parent binders around each argument pair, so two
// abstractions projecting different binders are recognized as distinct:
// λx.λy. c y and λx.λy. c x must not unify.
func TestUnifyDecompositionScopesParentBinders(t *testing.T) {
	c := term.MkTerm(ast.MkConst("c", ast.Compose(i, i)))
	x := ast.MkFreeVar("x", i)
	y := ast.MkFreeVar("y", i)
	l := term.MkAbstrTerm(term.MkAbstrTerm(term.MkApplTerm(c, term.MkTerm(y)), y), x)
	r := term.MkAbstrTerm(term.MkAbstrTerm(term.MkApplTerm(c, term.MkTerm(x)), y), x)
	res := unify.Unify([]unify.Eq{{L: l, R: r}}, true, unify.DefaultMaxDepth)
	assert.Empty(t, res.Solutions)

	same := unify.Unify([]unify.Eq{{L: l, R: l}}, true, unify.DefaultMaxDepth)
	assert.Len(t, same.Solutions, 1)
}

// Scenario: x(a,a) = f(a,a), with x: i->i->i, f: i->i->i, expects exactly
// 9 solutions per spec §8: only the imitation of f survives, and each of
// f's two argument equations is then solved three ways (imitating a, or
// projecting onto either argument), 3x3.
func TestUnifyFlexRigidXaaEqualsFaa(t *testing.T) {
	a := term.MkConstTerm("a", i)
	f := term.MkConstTerm("f", ff)
	x := term.MkFreeVarTerm("X", ff)
	lhs := term.MkApplTerm(term.MkApplTerm(x, a), a)
	rhs := term.MkApplTerm(term.MkApplTerm(f, a), a)
	eqs := []unify.Eq{{L: lhs, R: rhs}}
	exportProblem(t, "xaa_faa", eqs)
	res := unify.Unify(eqs, true, unify.DefaultMaxDepth)
	assert.Len(t, res.Solutions, 9, "expected 9 solutions for x a a = f a a, got %d", len(res.Solutions))
}

// I7: unify({L=R}) and unify({R=L}) agree as solution sets; checked here by
// solution count, and by X's binding in each reversed solution, on the
// successor scenario.
func TestUnifyIsSymmetric(t *testing.T) {
	x := term.MkFreeVarTerm("X", church.NumType(i))
	lhs := church.Succ(x, i)
	rhs := church.MkNum(2, i)
	fwd := unify.Unify([]unify.Eq{{L: lhs, R: rhs}}, true, unify.DefaultMaxDepth)
	rev := unify.Unify([]unify.Eq{{L: rhs, R: lhs}}, true, unify.DefaultMaxDepth)
	assert.Equal(t, len(fwd.Solutions), len(rev.Solutions))
	for _, sol := range rev.Solutions {
		bound, ok := sol.Substitutions.Get(x.Head.(ast.FreeVar))
		if ok {
			assert.True(t, bound.Equals(church.MkNum(1, i)))
		}
	}
}
