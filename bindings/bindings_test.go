package bindings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/bindings"
)

var (
	i  = ast.Individual
	ff = ast.Compose(i, i, i) // i -> i -> i
)

func TestImitationRequiresMatchingGoal(t *testing.T) {
	x := ast.MkFreeVar("X", ff)
	mismatched := ast.MkConst("p", ast.Compose(ast.Prop, i))
	_, ok := bindings.Imitation(x, mismatched)
	assert.False(t, ok)
}

func TestImitationBuildsApplicationOfRigidHead(t *testing.T) {
	x := ast.MkFreeVar("X", ff) // i -> i -> i
	f := ast.MkConst("f", ff)   // i -> i -> i
	sub, ok := bindings.Imitation(x, f)
	assert.True(t, ok)
	assert.True(t, sub.FVar.Equals(x))
	assert.Len(t, sub.Term.BVars, 2, "imitation binding should bind X1, X2")
}

func TestProjectionsOnlyTargetMatchingArgSlots(t *testing.T) {
	x := ast.MkFreeVar("X", ff) // i -> i -> i, both args of type i
	a := ast.MkConst("a", i)
	subs := bindings.Projections(x, a)
	// both argument slots have goal i, matching a's goal type.
	assert.Len(t, subs, 2)
}

func TestCandidatesOrdersImitationBeforeProjection(t *testing.T) {
	x := ast.MkFreeVar("X", ff)
	f := ast.MkConst("f", ff)
	cands := bindings.Candidates(x, f)
	// imitation applicable (goal matches) plus 2 projections = 3 total,
	// imitation first per the fixed branching order.
	assert.Len(t, cands, 3)
}
