package ast

import "fmt"

// BinOpKind enumerates the surface binary connectives and operators, in the
// order the grammar in spec §4.G recognizes them (lowest to highest
// precedence): biconditional, implication, disjunction, conjunction,
// equality, composition, addition, multiplication.
type BinOpKind int

const (
	// Iff is the biconditional connective (↔ or ⇔).
	Iff BinOpKind = iota
	// Implies is material implication (→ or ⇒).
	Implies
	// Or is disjunction.
	Or
	// And is conjunction.
	And
	// Eq is equality.
	Eq
	// ComposeOp is function composition.
	ComposeOp
	// Add is addition.
	Add
	// Mul is multiplication.
	Mul
)

func (k BinOpKind) symbol() string {
	switch k {
	case Iff:
		return "↔"
	case Implies:
		return "→"
	case Or:
		return "∨"
	case And:
		return "∧"
	case Eq:
		return "="
	case ComposeOp:
		return "∘"
	case Add:
		return "+"
	case Mul:
		return "×"
	default:
		return "?"
	}
}

// QuantKind enumerates the quantifier kinds.
type QuantKind int

const (
	// Forall is universal quantification.
	Forall QuantKind = iota
	// Exists is existential quantification.
	Exists
	// ExistsUnique is unique existential quantification.
	ExistsUnique
)

func (k QuantKind) symbol() string {
	switch k {
	case Forall:
		return "∀"
	case Exists:
		return "∃"
	case ExistsUnique:
		return "∃!"
	default:
		return "?"
	}
}

// MarkerKind distinguishes the tableau prover's branch-internal annotations
// (spec §3, "Markers are prover-internal").
type MarkerKind int

const (
	// InstantiatedForall marks a branch where a universal has already been
	// instantiated once (the gamma-rule "once per branch" policy).
	InstantiatedForall MarkerKind = iota
	// InstantiatedNegExists marks the negated-existential analogue used by
	// the not-exists gamma rule. A negated universal needs no marker kind:
	// it is consumed by the delta rule rather than annotated.
	InstantiatedNegExists
)

// Expr is the surface abstract syntax tree produced by the parser (package
// parse) and consumed by the HOL lowering (package hol) and the tableau
// prover (package tableau). It is a closed interface: every concrete node
// below is the only Go types implementing it, following the teacher's
// Term/isTerm marker-method idiom (ast/ast.go).
type Expr interface {
	// Marker method.
	isExpr()

	// Equals is structural (not alpha-aware) equality.
	Equals(Expr) bool

	String() string
}

// Var is a single-uppercase-letter propositional or individual variable.
type Var struct{ Name string }

func (Var) isExpr() {}
func (v Var) Equals(e Expr) bool { u, ok := e.(Var); return ok && v.Name == u.Name }
func (v Var) String() string     { return v.Name }

// Ident is a multi-character identifier (function/predicate/individual
// constant name, or a Skolem/fresh-constant name).
type Ident struct{ Name string }

func (Ident) isExpr() {}
func (i Ident) Equals(e Expr) bool { u, ok := e.(Ident); return ok && i.Name == u.Name }
func (i Ident) String() string     { return i.Name }

// TypedVar annotates a variable or identifier with an explicit type,
// written `v : ty` in the surface grammar.
type TypedVar struct {
	VarExpr  Expr
	TypeExpr Expr
}

func (TypedVar) isExpr() {}
func (t TypedVar) Equals(e Expr) bool {
	u, ok := e.(TypedVar)
	return ok && t.VarExpr.Equals(u.VarExpr) && t.TypeExpr.Equals(u.TypeExpr)
}
func (t TypedVar) String() string {
	return fmt.Sprintf("(%s:%s)", t.VarExpr, t.TypeExpr)
}

// Negation is logical negation, `not A`.
type Negation struct{ Operand Expr }

func (Negation) isExpr() {}
func (n Negation) Equals(e Expr) bool {
	u, ok := e.(Negation)
	return ok && n.Operand.Equals(u.Operand)
}
func (n Negation) String() string { return "¬" + n.Operand.String() }

// BinOp is a binary connective or operator application.
type BinOp struct {
	Op    BinOpKind
	Left  Expr
	Right Expr
}

func (BinOp) isExpr() {}
func (b BinOp) Equals(e Expr) bool {
	u, ok := e.(BinOp)
	return ok && b.Op == u.Op && b.Left.Equals(u.Left) && b.Right.Equals(u.Right)
}
func (b BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op.symbol(), b.Right)
}

// Quant is a quantified formula, `Q v . body`.
type Quant struct {
	Kind QuantKind
	Var  Expr
	Body Expr
}

func (Quant) isExpr() {}
func (q Quant) Equals(e Expr) bool {
	u, ok := e.(Quant)
	return ok && q.Kind == u.Kind && q.Var.Equals(u.Var) && q.Body.Equals(u.Body)
}
func (q Quant) String() string {
	return fmt.Sprintf("(%s%s.%s)", q.Kind.symbol(), q.Var, q.Body)
}

// Lambda is a lambda abstraction, `λ v . body`.
type Lambda struct {
	Var  Expr
	Body Expr
}

func (Lambda) isExpr() {}
func (l Lambda) Equals(e Expr) bool {
	u, ok := e.(Lambda)
	return ok && l.Var.Equals(u.Var) && l.Body.Equals(u.Body)
}
func (l Lambda) String() string {
	return fmt.Sprintf("(λ%s.%s)", l.Var, l.Body)
}

// App is function/predicate application, left-associative currying.
type App struct {
	Fun Expr
	Arg Expr
}

func (App) isExpr() {}
func (a App) Equals(e Expr) bool {
	u, ok := e.(App)
	return ok && a.Fun.Equals(u.Fun) && a.Arg.Equals(u.Arg)
}
func (a App) String() string {
	return fmt.Sprintf("(%s %s)", a.Fun, a.Arg)
}

// Marker annotates a branch formula produced by the gamma rule, recording
// which original universal it instantiates so the tableau can refuse to
// expand the same universal twice on one branch.
type Marker struct {
	Kind     MarkerKind
	Original Expr
}

func (Marker) isExpr() {}
func (m Marker) Equals(e Expr) bool {
	u, ok := e.(Marker)
	return ok && m.Kind == u.Kind && m.Original.Equals(u.Original)
}
func (m Marker) String() string {
	return fmt.Sprintf("#marker(%s)", m.Original)
}
