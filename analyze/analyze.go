// Package analyze is the end-to-end orchestrator: parse a surface formula,
// lower it to a typed HOL term, run the tableau prover, and render the
// expression tree and step log. It is the single entry point the CLI and
// the REPL call.
package analyze

import (
	"fmt"

	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/diag"
	"codeberg.org/TauCeti/mangle-go/hol"
	"codeberg.org/TauCeti/mangle-go/parse"
	"codeberg.org/TauCeti/mangle-go/render"
	"codeberg.org/TauCeti/mangle-go/tableau"
)

// Result is the complete outcome of one analysis.
type Result struct {
	Expression    string
	Parsed        ast.Expr
	HOL           hol.Node
	Status        tableau.Status
	Steps         []render.Step
	Tree          tableau.Tree
	Visualization string
	// Notices aggregates soft lowering problems (unknown HOL nodes). A
	// non-nil value does not stop the pipeline; the prover still runs on
	// the parsed AST.
	Notices error
}

// Orchestrator runs the pipeline, reporting progress to its sink.
type Orchestrator struct {
	sink diag.Sink
}

// New returns an Orchestrator reporting to sink. A nil sink discards.
func New(sink diag.Sink) Orchestrator {
	if sink == nil {
		sink = diag.Discard()
	}
	return Orchestrator{sink: sink}
}

// Analyze runs parse -> lower -> prove -> render on input. The first hard
// error (a parse failure) aborts the pipeline; lowering problems are
// soft and end up in Result.Notices instead.
func (o Orchestrator) Analyze(input string) (Result, error) {
	o.sink.Debug("analyze: parsing %q", input)
	parsed, err := parse.Formula(input)
	if err != nil {
		o.sink.Warning("analyze: parse failed: %v", err)
		return Result{Expression: input}, fmt.Errorf("parsing %q: %w", input, err)
	}

	o.sink.Debug("analyze: lowering %s", parsed)
	node, notices := hol.Lower(parsed)
	if notices != nil {
		o.sink.Notice("analyze: lowering notices: %v", notices)
	}

	status, proverSteps, tree, err := tableau.Prove(parsed)
	if err != nil {
		return Result{Expression: input, Parsed: parsed, HOL: node, Notices: notices}, err
	}
	o.sink.Info("analyze: %s is a %s", parsed, status)

	prefix := []render.Step{
		{Kind: "parse", Description: "parsed surface formula", Formula: parsed.String()},
		{Kind: "lowering", Description: "lowered to typed HOL term", Formula: node.String()},
	}
	return Result{
		Expression:    input,
		Parsed:        parsed,
		HOL:           node,
		Status:        status,
		Steps:         render.ProcessSteps(prefix, proverSteps),
		Tree:          tree,
		Visualization: render.VisualizeExpressionTree(parsed),
		Notices:       notices,
	}, nil
}
