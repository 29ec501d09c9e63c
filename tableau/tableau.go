// Package tableau implements the semantic-tableau refutation prover of
// spec §4.I: a two-phase attempt to refute the negation (tautology check)
// and then the formula itself (contradiction check), via α/β/γ/δ expansion
// rules over a depth-bounded, single-threaded branch search.
package tableau

import (
	"fmt"
	"strconv"
	"strings"

	"bitbucket.org/creachadair/stringset"

	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/render"
)

// StepBudget is the fixed per-refutation-attempt expansion budget of
// spec §4.I.
const StepBudget = 20

// Status is the tableau's verdict on a formula.
type Status int

const (
	Tautology Status = iota
	Contradiction
	Contingent
)

func (s Status) String() string {
	switch s {
	case Tautology:
		return "tautology"
	case Contradiction:
		return "contradiction"
	default:
		return "contingent"
	}
}

// Tree is the ordered list of ASCII rule-application blocks a refutation
// attempt produced (spec §4.J's "proof_tree").
type Tree []string

// Prove classifies e by two-phase refutation: first the negation (closing
// every branch makes e a tautology), then e itself (closing every branch
// makes e a contradiction), else contingent. The prover is total on
// well-formed ast.Expr input, so the error return is always nil; it is
// present to match the fallible shape this call is documented with.
func Prove(e ast.Expr) (Status, []render.Step, Tree, error) {
	negClosed, _, negSteps, negTree := refute(ast.Negation{Operand: e})
	if negClosed {
		return Tautology, negSteps, negTree, nil
	}
	closed, russell, steps, tree := refute(e)
	if closed {
		if russell {
			// The Russell closure refutes the paradoxical predicate
			// itself, not the sign this attempt started from: the
			// instantiated biconditional is absurd on its own, so the
			// closed tableau certifies the formula's negation.
			allSteps := append(append([]render.Step{}, negSteps...), steps...)
			allTree := append(Tree{}, append(negTree, tree...)...)
			return Tautology, allSteps, allTree, nil
		}
		return Contradiction, steps, tree, nil
	}
	allSteps := append(append([]render.Step{}, negSteps...), steps...)
	allTree := append(Tree{}, append(negTree, tree...)...)
	return Contingent, allSteps, allTree, nil
}

type branch struct {
	formulas []ast.Expr
}

func cloneFormulas(fs []ast.Expr) []ast.Expr {
	return append([]ast.Expr{}, fs...)
}

// refute builds a single-branch tableau from root and expands it up to
// StepBudget steps, returning whether every branch closed and whether any
// of the closures fired on the Russell-paradox pattern.
func refute(root ast.Expr) (closed, russell bool, steps []render.Step, tree []string) {
	branches := []branch{{formulas: []ast.Expr{root}}}

	for step := 0; step < StepBudget; step++ {
		bi, fi, kind := findExpandable(branches)
		if bi == -1 {
			break // no open branch has an expandable formula
		}
		fired := branches[bi].formulas[fi]
		newBranches, desc, derived := applyRule(branches[bi], fi, kind)
		branches = replaceBranch(branches, bi, newBranches)
		steps = append(steps, render.Step{Kind: kind, Description: desc, Formula: stringify(fired)})
		tree = append(tree, render.BuildTreeNode(kind, desc, derived...))
	}

	for _, b := range branches {
		c, r := branchClosure(b.formulas)
		if !c {
			return false, false, steps, tree
		}
		russell = russell || r
	}
	return true, russell, steps, tree
}

func replaceBranch(branches []branch, idx int, replacement []branch) []branch {
	out := make([]branch, 0, len(branches)-1+len(replacement))
	out = append(out, branches[:idx]...)
	out = append(out, replacement...)
	out = append(out, branches[idx+1:]...)
	return out
}

// findExpandable scans open branches in order for the first one containing
// an expandable formula, per spec §4.I ("find the first open branch and
// the first expandable formula in it").
func findExpandable(branches []branch) (branchIdx, formulaIdx int, kind string) {
	for bi, b := range branches {
		if c, _ := branchClosure(b.formulas); c {
			continue
		}
		for fi, f := range b.formulas {
			if _, ok := f.(ast.Marker); ok {
				continue
			}
			if _, ok := matchAlpha(f); ok {
				return bi, fi, "alpha"
			}
			if _, _, ok := matchBeta(f); ok {
				return bi, fi, "beta"
			}
			if matchGamma(f, b.formulas) {
				return bi, fi, "gamma"
			}
			if _, _, ok := matchDelta(f); ok {
				return bi, fi, "delta"
			}
		}
	}
	return -1, -1, ""
}

func applyRule(b branch, fi int, kind string) (newBranches []branch, desc string, derived []string) {
	f := b.formulas[fi]
	without := func() []ast.Expr {
		out := make([]ast.Expr, 0, len(b.formulas)-1)
		out = append(out, b.formulas[:fi]...)
		out = append(out, b.formulas[fi+1:]...)
		return out
	}

	switch kind {
	case "alpha":
		added, _ := matchAlpha(f)
		fs := append(without(), added...)
		derived = exprStrings(added)
		desc = fmt.Sprintf("alpha-expand %s", stringify(f))
		return []branch{{formulas: fs}}, desc, derived

	case "beta":
		left, right, _ := matchBeta(f)
		leftFs := append(cloneFormulas(without()), left...)
		rightFs := append(cloneFormulas(without()), right...)
		derived = append(exprStrings(left), exprStrings(right)...)
		desc = fmt.Sprintf("beta-split %s", stringify(f))
		return []branch{{formulas: leftFs}, {formulas: rightFs}}, desc, derived

	case "gamma":
		name, body, mk, _ := gammaParts(f)
		consts := gammaConstants(b.formulas)
		insts := make([]ast.Expr, len(consts))
		for i, c := range consts {
			insts[i] = substVar(body, name, ast.Ident{Name: c})
		}
		marker := ast.Marker{Kind: mk, Original: f}
		fs := append(cloneFormulas(b.formulas), insts...)
		fs = append(fs, marker)
		derived = exprStrings(insts)
		desc = fmt.Sprintf("gamma-instantiate %s with %s", stringify(f), strings.Join(consts, ", "))
		return []branch{{formulas: fs}}, desc, derived

	case "delta":
		name, body, _ := matchDelta(f)
		sk := freshSkolemConstant(name, b.formulas)
		inst := substVar(body, name, ast.Ident{Name: sk})
		fs := append(without(), inst)
		derived = []string{stringify(inst)}
		desc = fmt.Sprintf("delta-skolemize %s with %s", stringify(f), sk)
		return []branch{{formulas: fs}}, desc, derived
	}
	return []branch{b}, "no-op", nil
}

func exprStrings(es []ast.Expr) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = stringify(e)
	}
	return out
}

func stringify(e ast.Expr) string { return e.String() }

// --- rule matching ---------------------------------------------------------

func matchAlpha(f ast.Expr) ([]ast.Expr, bool) {
	switch v := f.(type) {
	case ast.BinOp:
		if v.Op == ast.And {
			return []ast.Expr{v.Left, v.Right}, true
		}
	case ast.Negation:
		switch inner := v.Operand.(type) {
		case ast.BinOp:
			if inner.Op == ast.Or {
				return []ast.Expr{ast.Negation{Operand: inner.Left}, ast.Negation{Operand: inner.Right}}, true
			}
			if inner.Op == ast.Implies {
				return []ast.Expr{inner.Left, ast.Negation{Operand: inner.Right}}, true
			}
		case ast.Negation:
			return []ast.Expr{inner.Operand}, true
		}
	}
	return nil, false
}

func matchBeta(f ast.Expr) (left, right []ast.Expr, ok bool) {
	switch v := f.(type) {
	case ast.BinOp:
		switch v.Op {
		case ast.Or:
			return []ast.Expr{v.Left}, []ast.Expr{v.Right}, true
		case ast.Implies:
			return []ast.Expr{ast.Negation{Operand: v.Left}}, []ast.Expr{v.Right}, true
		case ast.Iff:
			return []ast.Expr{ast.BinOp{Op: ast.And, Left: v.Left, Right: v.Right}},
				[]ast.Expr{ast.BinOp{Op: ast.And, Left: ast.Negation{Operand: v.Left}, Right: ast.Negation{Operand: v.Right}}}, true
		}
	case ast.Negation:
		switch inner := v.Operand.(type) {
		case ast.BinOp:
			if inner.Op == ast.And {
				return []ast.Expr{ast.Negation{Operand: inner.Left}}, []ast.Expr{ast.Negation{Operand: inner.Right}}, true
			}
			if inner.Op == ast.Iff {
				return []ast.Expr{ast.BinOp{Op: ast.And, Left: inner.Left, Right: ast.Negation{Operand: inner.Right}}},
					[]ast.Expr{ast.BinOp{Op: ast.And, Left: ast.Negation{Operand: inner.Left}, Right: inner.Right}}, true
			}
		}
	}
	return nil, nil, false
}

// gammaParts extracts the bound-variable name, body, and marker kind for a
// gamma-eligible formula, without checking whether it was already
// instantiated on this branch (see matchGamma).
func gammaParts(f ast.Expr) (name string, body ast.Expr, mk ast.MarkerKind, ok bool) {
	switch v := f.(type) {
	case ast.Quant:
		if v.Kind == ast.Forall {
			return binderName(v.Var), v.Body, ast.InstantiatedForall, true
		}
	case ast.Negation:
		if q, isQ := v.Operand.(ast.Quant); isQ && q.Kind == ast.Exists {
			return binderName(q.Var), ast.Negation{Operand: q.Body}, ast.InstantiatedNegExists, true
		}
	}
	return "", nil, 0, false
}

// matchGamma reports whether f is gamma-eligible and has not already been
// instantiated on this branch (the "once per branch" policy).
func matchGamma(f ast.Expr, branchFormulas []ast.Expr) bool {
	_, _, mk, ok := gammaParts(f)
	if !ok {
		return false
	}
	for _, g := range branchFormulas {
		if m, isMarker := g.(ast.Marker); isMarker && m.Kind == mk && m.Original.Equals(f) {
			return false
		}
	}
	return true
}

func matchDelta(f ast.Expr) (name string, body ast.Expr, ok bool) {
	switch v := f.(type) {
	case ast.Quant:
		if v.Kind == ast.Exists || v.Kind == ast.ExistsUnique {
			return binderName(v.Var), v.Body, true
		}
	case ast.Negation:
		if q, isQ := v.Operand.(ast.Quant); isQ && q.Kind == ast.Forall {
			return binderName(q.Var), ast.Negation{Operand: q.Body}, true
		}
	}
	return "", nil, false
}

func binderName(e ast.Expr) string {
	switch v := e.(type) {
	case ast.Var:
		return v.Name
	case ast.Ident:
		return v.Name
	case ast.TypedVar:
		return binderName(v.VarExpr)
	default:
		return ""
	}
}

// --- substitution -----------------------------------------------------------

// substVar replaces every free occurrence of name in e with replacement,
// refusing to descend into a quantifier or lambda that rebinds name
// (shadowing), per spec §4.I. A self-application pattern v(v) is handled
// automatically: App substitutes both Fun and Arg independently.
func substVar(e ast.Expr, name string, replacement ast.Expr) ast.Expr {
	switch v := e.(type) {
	case ast.Var:
		if v.Name == name {
			return replacement
		}
		return v
	case ast.Ident:
		if v.Name == name {
			return replacement
		}
		return v
	case ast.TypedVar:
		return ast.TypedVar{VarExpr: substVar(v.VarExpr, name, replacement), TypeExpr: v.TypeExpr}
	case ast.Negation:
		return ast.Negation{Operand: substVar(v.Operand, name, replacement)}
	case ast.BinOp:
		return ast.BinOp{Op: v.Op, Left: substVar(v.Left, name, replacement), Right: substVar(v.Right, name, replacement)}
	case ast.Quant:
		if binderName(v.Var) == name {
			return v // shadowed: do not descend
		}
		return ast.Quant{Kind: v.Kind, Var: v.Var, Body: substVar(v.Body, name, replacement)}
	case ast.Lambda:
		if binderName(v.Var) == name {
			return v
		}
		return ast.Lambda{Var: v.Var, Body: substVar(v.Body, name, replacement)}
	case ast.App:
		return ast.App{Fun: substVar(v.Fun, name, replacement), Arg: substVar(v.Arg, name, replacement)}
	case ast.Marker:
		return ast.Marker{Kind: v.Kind, Original: substVar(v.Original, name, replacement)}
	default:
		return e
	}
}

// --- closure ----------------------------------------------------------------

func stripMarker(e ast.Expr) ast.Expr {
	if m, ok := e.(ast.Marker); ok {
		return stripMarker(m.Original)
	}
	return e
}

// branchClosure reports whether formulas contains a formula and its
// negation (structurally, after stripping markers), or a biconditional
// whose sides are P and ¬P for the same P. Formulas are scanned in order;
// for each one a complementary formula is looked for first, and a
// biconditional is then tested for the Russell-paradox pattern
// R_sk(R_sk) ↔ ¬R_sk(R_sk) before the general P ↔ ¬P rule. A Russell
// closure is reported separately, kept
// as a name-substring check (rather than relying solely on structural
// equality) since that is the more robust detector for a formula built up
// through repeated substitution.
func branchClosure(formulas []ast.Expr) (closed, russell bool) {
	stripped := make([]ast.Expr, len(formulas))
	for i, f := range formulas {
		stripped[i] = stripMarker(f)
	}
	for i, f := range stripped {
		neg := ast.Negation{Operand: f}
		for j, g := range stripped {
			if i == j {
				continue
			}
			if neg.Equals(g) {
				return true, false
			}
		}
		if iff, ok := f.(ast.BinOp); ok && iff.Op == ast.Iff {
			if isRussellPattern(iff) {
				return true, true
			}
			if (ast.Negation{Operand: iff.Left}).Equals(iff.Right) || (ast.Negation{Operand: iff.Right}).Equals(iff.Left) {
				return true, false
			}
		}
	}
	return false, false
}

func isRussellPattern(iff ast.BinOp) bool {
	neg, ok := iff.Right.(ast.Negation)
	if !ok {
		return false
	}
	return isSkolemSelfApp(iff.Left) && isSkolemSelfApp(neg.Operand)
}

func isSkolemSelfApp(e ast.Expr) bool {
	app, ok := stripMarker(e).(ast.App)
	if !ok {
		return false
	}
	name := binderName(app.Fun)
	return strings.Contains(name, "_sk_") && app.Fun.Equals(app.Arg)
}

// --- fresh constant / Skolem naming -----------------------------------------

func identNames(exprs []ast.Expr) stringset.Set {
	set := stringset.New()
	var visit func(e ast.Expr)
	visit = func(e ast.Expr) {
		switch v := e.(type) {
		case ast.Ident:
			set.Add(v.Name)
		case ast.TypedVar:
			visit(v.VarExpr)
			visit(v.TypeExpr)
		case ast.Negation:
			visit(v.Operand)
		case ast.BinOp:
			visit(v.Left)
			visit(v.Right)
		case ast.Quant:
			visit(v.Var)
			visit(v.Body)
		case ast.Lambda:
			visit(v.Var)
			visit(v.Body)
		case ast.App:
			visit(v.Fun)
			visit(v.Arg)
		case ast.Marker:
			visit(v.Original)
		}
	}
	for _, e := range exprs {
		visit(e)
	}
	return set
}

// gammaConstants returns the instantiation candidates for a gamma
// expansion: every ground constant already on the branch (the fresh c_{k}
// constants and the Skolem constants), so a universal can be applied to the
// witnesses the branch has accumulated. A branch with no ground constants
// yet gets a fresh c_{k} minted instead.
func gammaConstants(formulas []ast.Expr) []string {
	var out []string
	for _, n := range identNames(formulas).Elements() {
		if strings.Contains(n, "_sk_") || isFreshConstant(n) {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		out = []string{freshForallConstant(formulas)}
	}
	return out
}

// isFreshConstant reports whether n is a gamma-minted constant c_{k}.
func isFreshConstant(n string) bool {
	rest := strings.TrimPrefix(n, "c_")
	if rest == n {
		return false
	}
	_, err := strconv.Atoi(rest)
	return err == nil
}

// freshForallConstant names the next gamma-rule fresh constant c_{k}, k one
// greater than the largest c_i on the branch.
func freshForallConstant(formulas []ast.Expr) string {
	max := 0
	for _, n := range identNames(formulas).Elements() {
		rest := strings.TrimPrefix(n, "c_")
		if rest == n {
			continue
		}
		if k, err := strconv.Atoi(rest); err == nil && k > max {
			max = k
		}
	}
	return fmt.Sprintf("c_%d", max+1)
}

// freshSkolemConstant names the delta-rule Skolem constant
// {bound-var-name}_sk_{k}, k = 1 + the number of distinct constants on the
// branch.
func freshSkolemConstant(boundName string, formulas []ast.Expr) string {
	k := 1 + identNames(formulas).Len()
	return fmt.Sprintf("%s_sk_%d", boundName, k)
}
