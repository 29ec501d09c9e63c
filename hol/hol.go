// Package hol lowers the surface AST (package ast's Expr tree) into the
// typed higher-order term model (package term), per spec §4.H's symbol
// classification table. Shapes the table does not cover become an Unknown
// node rather than an error; every Unknown encountered during a Lower call
// is collected into the returned multierr so callers can surface it as a
// soft diagnostic without aborting the rest of the lowering.
package hol

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/term"
)

// predicateLetters is the fixed set of single uppercase letters that denote
// predicate constants of type i -> o rather than propositional variables,
// per spec §4.H.
var predicateLetters = map[string]bool{"P": true, "Q": true, "R": true, "S": true, "T": true}

// Kind distinguishes a fully lowered term node from an unsupported shape.
type Kind int

const (
	// KindTerm is a node with a valid typed term.
	KindTerm Kind = iota
	// KindUnknown is a node the classification table does not cover.
	KindUnknown
)

// Node is one lowered AST node.
type Node struct {
	Kind     Kind
	Term     term.Term // valid iff Kind == KindTerm
	Original ast.Expr
}

func (n Node) String() string {
	if n.Kind == KindUnknown {
		return fmt.Sprintf("unknown(%s)", n.Original)
	}
	return n.Term.String()
}

// env tracks the free variables a Lambda or Quant has bound on the way
// down, keyed by surface name, so nested Var/Ident occurrences of the same
// name resolve to the same ast.FreeVar (required for correct MkAbstrTerm
// capture) instead of being reclassified from scratch.
type env map[string]ast.FreeVar

// Lower maps a parsed formula to its typed HOL term. The returned error is
// a multierr aggregate of "unknown node" notices; it is non-nil exactly
// when some sub-expression fell outside the classification table, but the
// returned Node is still populated as completely as possible.
func Lower(e ast.Expr) (Node, error) {
	return lower(e, env{})
}

func lower(e ast.Expr, nv env) (Node, error) {
	switch v := e.(type) {
	case ast.Var:
		return lowerVar(v, nv)
	case ast.Ident:
		return lowerIdent(v, nv)
	case ast.TypedVar:
		return lowerTypedVar(v, nv)
	case ast.Negation:
		return lowerNegation(v, nv)
	case ast.BinOp:
		return lowerBinOp(v, nv)
	case ast.Quant:
		return lowerQuant(v, nv)
	case ast.Lambda:
		return lowerLambda(v, nv)
	case ast.App:
		return lowerApp(v, nv)
	default:
		return Node{Kind: KindUnknown, Original: e}, fmt.Errorf("hol: unknown expr shape %T", e)
	}
}

func lowerVar(v ast.Var, nv env) (Node, error) {
	if fv, ok := nv[v.Name]; ok {
		return Node{Kind: KindTerm, Term: term.MkTerm(fv), Original: v}, nil
	}
	if predicateLetters[v.Name] {
		t := term.MkConstTerm(v.Name, ast.Compose(ast.Prop, ast.Individual))
		return Node{Kind: KindTerm, Term: t, Original: v}, nil
	}
	t := term.MkFreeVarTerm(v.Name, ast.Prop)
	return Node{Kind: KindTerm, Term: t, Original: v}, nil
}

func lowerIdent(id ast.Ident, nv env) (Node, error) {
	if fv, ok := nv[id.Name]; ok {
		return Node{Kind: KindTerm, Term: term.MkTerm(fv), Original: id}, nil
	}
	ty := classifyIdentType(id.Name)
	t := term.MkConstTerm(id.Name, ty)
	return Node{Kind: KindTerm, Term: t, Original: id}, nil
}

// classifyIdentType implements spec §4.H's identifier rules, in priority
// order: a Skolem marker anywhere in the name, then the c_ individual-
// constant prefix, then the capitalized-vs-lowercase predicate/function
// split.
func classifyIdentType(name string) ast.Type {
	switch {
	case strings.Contains(name, "_sk_"):
		return ast.Individual
	case strings.HasPrefix(name, "c_"):
		return ast.Individual
	case len(name) > 0 && isUpperFirst(name):
		return ast.Compose(ast.Prop, ast.Individual) // predicate i -> o
	default:
		return ast.Compose(ast.Individual, ast.Individual) // function i -> i
	}
}

func isUpperFirst(name string) bool {
	r := []rune(name)[0]
	return r >= 'A' && r <= 'Z'
}

func varName(e ast.Expr) string {
	switch v := e.(type) {
	case ast.Var:
		return v.Name
	case ast.Ident:
		return v.Name
	default:
		return ""
	}
}

// resolveTypeExpr maps a type annotation's identifier to a concrete type;
// "i"/"ι" is individuals, "o"/"ο" is propositions, anything else defaults
// to individuals (the common case for quantified bound variables).
func resolveTypeExpr(e ast.Expr) ast.Type {
	name := varName(e)
	switch name {
	case "o", "ο":
		return ast.Prop
	default:
		return ast.Individual
	}
}

func lowerTypedVar(v ast.TypedVar, nv env) (Node, error) {
	name := varName(v.VarExpr)
	if fv, ok := nv[name]; ok {
		return Node{Kind: KindTerm, Term: term.MkTerm(fv), Original: v}, nil
	}
	ty := resolveTypeExpr(v.TypeExpr)
	fv := ast.MkFreeVar(name, ty)
	return Node{Kind: KindTerm, Term: term.MkTerm(fv), Original: v}, nil
}

func lowerNegation(n ast.Negation, nv env) (Node, error) {
	sub, err := lower(n.Operand, nv)
	if sub.Kind == KindUnknown {
		return Node{Kind: KindUnknown, Original: n}, multierr.Append(err, fmt.Errorf("hol: unknown operand of negation %s", n))
	}
	negConst := term.MkConstTerm("¬", ast.Compose(ast.Prop, ast.Prop))
	applied, ok := safeApply(negConst, sub.Term)
	if !ok {
		return Node{Kind: KindUnknown, Original: n}, multierr.Append(err, fmt.Errorf("hol: ill-typed negation %s", n))
	}
	return Node{Kind: KindTerm, Term: applied, Original: n}, err
}

// binOpConstType returns the arrow type of the curried constant
// representing op, per spec §4.H's table.
func binOpConstType(op ast.BinOpKind) (string, ast.Type) {
	switch op {
	case ast.Iff:
		return "↔", ast.Compose(ast.Prop, ast.Prop, ast.Prop)
	case ast.Implies:
		return "→", ast.Compose(ast.Prop, ast.Prop, ast.Prop)
	case ast.Or:
		return "∨", ast.Compose(ast.Prop, ast.Prop, ast.Prop)
	case ast.And:
		return "∧", ast.Compose(ast.Prop, ast.Prop, ast.Prop)
	case ast.Eq:
		return "=", ast.Compose(ast.Prop, ast.Individual, ast.Individual)
	case ast.Add:
		return "+", ast.Compose(ast.Individual, ast.Individual, ast.Individual)
	case ast.Mul:
		return "×", ast.Compose(ast.Individual, ast.Individual, ast.Individual)
	case ast.ComposeOp:
		fnType := ast.Compose(ast.Individual, ast.Individual) // i -> i
		return "∘", ast.Compose(ast.Individual, fnType, fnType)
	default:
		return "?", ast.Type{}
	}
}

func lowerBinOp(b ast.BinOp, nv env) (Node, error) {
	left, lerr := lower(b.Left, nv)
	right, rerr := lower(b.Right, nv)
	err := multierr.Append(lerr, rerr)
	if left.Kind == KindUnknown || right.Kind == KindUnknown {
		return Node{Kind: KindUnknown, Original: b}, multierr.Append(err, fmt.Errorf("hol: unknown operand in %s", b))
	}
	name, ty := binOpConstType(b.Op)
	opConst := term.MkConstTerm(name, ty)
	applied, ok := safeApply(opConst, left.Term)
	if ok {
		applied, ok = safeApply(applied, right.Term)
	}
	if !ok {
		return Node{Kind: KindUnknown, Original: b}, multierr.Append(err, fmt.Errorf("hol: ill-typed operator application %s", b))
	}
	return Node{Kind: KindTerm, Term: applied, Original: b}, err
}

func quantConstName(k ast.QuantKind) string {
	switch k {
	case ast.Forall:
		return "∀"
	case ast.Exists:
		return "∃"
	case ast.ExistsUnique:
		return "∃!"
	default:
		return "?"
	}
}

func lowerQuant(q ast.Quant, nv env) (Node, error) {
	name := varName(q.Var)
	ty := ast.Individual
	if tv, ok := q.Var.(ast.TypedVar); ok {
		name = varName(tv.VarExpr)
		ty = resolveTypeExpr(tv.TypeExpr)
	}
	fv := ast.MkFreeVar(name, ty)
	inner := cloneEnv(nv)
	inner[name] = fv

	body, err := lower(q.Body, inner)
	if body.Kind == KindUnknown {
		return Node{Kind: KindUnknown, Original: q}, multierr.Append(err, fmt.Errorf("hol: unknown body of %s", q))
	}
	abstr := term.MkAbstrTerm(body.Term, fv)
	predType := ast.Compose(ast.Prop, ty)
	quantConst := term.MkConstTerm(quantConstName(q.Kind), ast.Compose(ast.Prop, predType))
	applied, ok := safeApply(quantConst, abstr)
	if !ok {
		return Node{Kind: KindUnknown, Original: q}, multierr.Append(err, fmt.Errorf("hol: ill-typed quantifier %s", q))
	}
	return Node{Kind: KindTerm, Term: applied, Original: q}, err
}

func lowerLambda(l ast.Lambda, nv env) (Node, error) {
	name := varName(l.Var)
	ty := ast.Individual
	if tv, ok := l.Var.(ast.TypedVar); ok {
		name = varName(tv.VarExpr)
		ty = resolveTypeExpr(tv.TypeExpr)
	}
	fv := ast.MkFreeVar(name, ty)
	inner := cloneEnv(nv)
	inner[name] = fv

	body, err := lower(l.Body, inner)
	if body.Kind == KindUnknown {
		return Node{Kind: KindUnknown, Original: l}, multierr.Append(err, fmt.Errorf("hol: unknown body of %s", l))
	}
	abstr := term.MkAbstrTerm(body.Term, fv)
	return Node{Kind: KindTerm, Term: abstr, Original: l}, err
}

func lowerApp(a ast.App, nv env) (Node, error) {
	fn, ferr := lower(a.Fun, nv)
	arg, aerr := lower(a.Arg, nv)
	err := multierr.Append(ferr, aerr)
	if fn.Kind == KindUnknown || arg.Kind == KindUnknown {
		return Node{Kind: KindUnknown, Original: a}, multierr.Append(err, fmt.Errorf("hol: unknown operand in %s", a))
	}
	applied, ok := safeApply(fn.Term, arg.Term)
	if !ok {
		return Node{Kind: KindUnknown, Original: a}, multierr.Append(err, fmt.Errorf("hol: ill-typed application %s", a))
	}
	return Node{Kind: KindTerm, Term: applied, Original: a}, err
}

func cloneEnv(nv env) env {
	out := make(env, len(nv)+1)
	for k, v := range nv {
		out[k] = v
	}
	return out
}

// safeApply wraps term.MkApplTerm, converting its type-mismatch panic into
// a false return: an arbitrary user-supplied formula can easily apply a
// non-functional head (e.g. two propositional variables juxtaposed), which
// is an unknown-node condition here rather than a programmer bug.
func safeApply(fn, arg term.Term) (result term.Term, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return term.MkApplTerm(fn, arg), true
}
