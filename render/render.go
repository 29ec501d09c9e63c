// Package render turns AST nodes and tableau rule applications into the
// human-readable ASCII reports spec §4.J describes: an indented expression
// tree, one ASCII block per rule application, and an ordered pipeline step
// log.
package render

import (
	"fmt"
	"strings"

	"codeberg.org/TauCeti/mangle-go/ast"
)

// Step is one record in the pipeline's step log (spec §4.J's
// process_steps): a phase of parsing, lowering, or tableau expansion.
type Step struct {
	Num         int
	Kind        string // "parse", "lowering", "alpha", "beta", "gamma", "delta", "closure", "done"
	Description string
	Formula     string
}

func nodeLabel(e ast.Expr) string {
	switch v := e.(type) {
	case ast.Var:
		return fmt.Sprintf("VAR %s", v.Name)
	case ast.Ident:
		return fmt.Sprintf("IDENT %s", v.Name)
	case ast.TypedVar:
		return "TYPED_VAR"
	case ast.Negation:
		return "NOT (¬)"
	case ast.BinOp:
		switch v.Op {
		case ast.Iff:
			return "IFF (↔)"
		case ast.Implies:
			return "IMPLIES (→)"
		case ast.Or:
			return "OR (∨)"
		case ast.And:
			return "AND (∧)"
		case ast.Eq:
			return "EQ (=)"
		case ast.ComposeOp:
			return "COMPOSE (∘)"
		case ast.Add:
			return "ADD (+)"
		case ast.Mul:
			return "MUL (×)"
		}
		return "BINOP"
	case ast.Quant:
		switch v.Kind {
		case ast.Forall:
			return "FORALL (∀)"
		case ast.Exists:
			return "EXISTS (∃)"
		case ast.ExistsUnique:
			return "EXISTS_UNIQUE (∃!)"
		}
		return "QUANT"
	case ast.Lambda:
		return "LAMBDA (λ)"
	case ast.App:
		return "APPLY"
	case ast.Marker:
		return "#MARKER"
	default:
		return "?"
	}
}

func children(e ast.Expr) []ast.Expr {
	switch v := e.(type) {
	case ast.TypedVar:
		return []ast.Expr{v.VarExpr, v.TypeExpr}
	case ast.Negation:
		return []ast.Expr{v.Operand}
	case ast.BinOp:
		return []ast.Expr{v.Left, v.Right}
	case ast.Quant:
		return []ast.Expr{v.Var, v.Body}
	case ast.Lambda:
		return []ast.Expr{v.Var, v.Body}
	case ast.App:
		return []ast.Expr{v.Fun, v.Arg}
	case ast.Marker:
		return []ast.Expr{v.Original}
	default:
		return nil
	}
}

// VisualizeExpressionTree renders e as an indented ASCII tree with symbolic
// node labels, per spec §4.J.
func VisualizeExpressionTree(e ast.Expr) string {
	var sb strings.Builder
	writeTree(&sb, e, 0)
	return sb.String()
}

func writeTree(sb *strings.Builder, e ast.Expr, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(nodeLabel(e))
	sb.WriteString("\n")
	for _, c := range children(e) {
		writeTree(sb, c, depth+1)
	}
}

// BuildTreeNode builds one ASCII block describing a single tableau rule
// application: kind distinguishes alpha/beta/gamma/delta/closure, formula is
// the formula the rule fired on, and derived lists the formula(s) it
// produced.
func BuildTreeNode(kind, formula string, derived ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s\n", strings.ToUpper(kind), formula)
	for _, d := range derived {
		fmt.Fprintf(&sb, "  -> %s\n", d)
	}
	return sb.String()
}

// ProcessSteps concatenates prefix (parsing/lowering records prepended by
// the orchestrator) with the prover's own step log, renumbering Num
// sequentially from 1.
func ProcessSteps(prefix []Step, proverSteps []Step) []Step {
	out := make([]Step, 0, len(prefix)+len(proverSteps))
	out = append(out, prefix...)
	out = append(out, proverSteps...)
	for i := range out {
		out[i].Num = i + 1
	}
	return out
}
