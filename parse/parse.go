// Package parse implements the hand-written lexer and recursive-descent
// parser for the surface Unicode formula grammar of spec §4.G: connectives
// ¬∧∨→↔=+×∘, quantifiers ∀∃∃!, the λ binder, and typed variables.
package parse

import (
	"fmt"
	"strings"
	"unicode"

	"codeberg.org/TauCeti/mangle-go/ast"
)

// Error is a single parser diagnostic, without the full source echoed back.
type Error struct {
	Message string
	Line    int // 1-based line number within source.
	Column  int // 0-based column number within source.
}

func (e Error) String() string {
	return fmt.Sprintf("%d:%d %s", e.Line, e.Column, e.Message)
}

// Holds errors accumulated during a parse, mirroring the teacher's
// errorsList (parse/parse.go) one-entry-per-diagnostic shape.
type errorsList struct {
	errors []Error
}

func (e *errorsList) add(msg string, line, col int) {
	e.errors = append(e.errors, Error{Message: msg, Line: line, Column: col})
}

// Parser holds the lexer cursor and the accumulated error list for one
// parse. Construct with New; callers normally use the package-level Formula
// helper instead.
type Parser struct {
	src    []rune
	pos    int
	line   int
	col    int
	errors *errorsList
}

// New returns a Parser positioned at the start of src.
func New(src string) *Parser {
	return &Parser{src: []rune(src), line: 1, col: 0, errors: &errorsList{}}
}

// Formula parses a single formula from src. On success it returns the
// parsed Expr and a nil error. On failure the error carries the (line,
// column) at which parsing stopped; only the trailing-input error also
// quotes the unparsed remainder.
func Formula(src string) (ast.Expr, error) {
	p := New(src)
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.atEOF() {
		return nil, p.errAt("unexpected trailing input: %q", string(p.src[p.pos:]))
	}
	return e, nil
}

// Stringify produces the canonical printed form of e (spec §4.G's
// `stringify`): parentheses around every binary operator and quantifier or
// lambda body, via Expr's own String method.
func Stringify(e ast.Expr) string {
	return e.String()
}

// --- lexer-level helpers -------------------------------------------------

func (p *Parser) atEOF() bool { return p.pos >= len(p.src) }

func (p *Parser) peekRune() (rune, bool) {
	if p.atEOF() {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *Parser) advance() rune {
	r := p.src[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
		p.col = 0
	} else {
		p.col++
	}
	return r
}

func (p *Parser) skipSpace() {
	for {
		r, ok := p.peekRune()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		p.advance()
	}
}

func (p *Parser) errAt(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	p.errors.add(msg, p.line, p.col)
	return fmt.Errorf("%d:%d %s", p.line, p.col, msg)
}

// expect consumes r if it is next (after skipping space), reporting an
// error otherwise.
func (p *Parser) expect(r rune) error {
	p.skipSpace()
	got, ok := p.peekRune()
	if !ok || got != r {
		return p.errAt("expected %q", string(r))
	}
	p.advance()
	return nil
}

// tryConsume consumes r if it is next (no space-skip side effect reported
// as an error); returns whether it matched.
func (p *Parser) tryConsume(r rune) bool {
	p.skipSpace()
	got, ok := p.peekRune()
	if !ok || got != r {
		return false
	}
	p.advance()
	return true
}

// --- grammar: expr := quantified | lambda | biconditional ----------------

func (p *Parser) parseExpr() (ast.Expr, error) {
	p.skipSpace()
	r, ok := p.peekRune()
	if !ok {
		return nil, p.errAt("unexpected end of input")
	}
	switch {
	case r == '∀' || r == '∃':
		return p.parseQuantified()
	case r == 'λ':
		return p.parseLambda()
	default:
		return p.parseBiconditional()
	}
}

func (p *Parser) parseQuantified() (ast.Expr, error) {
	kind, err := p.consumeQuantSymbol()
	if err != nil {
		return nil, err
	}
	v, err := p.parseBinder()
	if err != nil {
		return nil, err
	}
	if err := p.expect('.'); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.Quant{Kind: kind, Var: v, Body: body}, nil
}

// consumeQuantSymbol matches ∃! before ∃, per spec §4.G.
func (p *Parser) consumeQuantSymbol() (ast.QuantKind, error) {
	p.skipSpace()
	r, ok := p.peekRune()
	if !ok {
		return 0, p.errAt("expected a quantifier")
	}
	switch r {
	case '∀':
		p.advance()
		return ast.Forall, nil
	case '∃':
		p.advance()
		if nr, ok := p.peekRune(); ok && nr == '!' {
			p.advance()
			return ast.ExistsUnique, nil
		}
		return ast.Exists, nil
	default:
		return 0, p.errAt("expected a quantifier")
	}
}

func (p *Parser) parseLambda() (ast.Expr, error) {
	if err := p.expect('λ'); err != nil {
		return nil, err
	}
	v, err := p.parseBinder()
	if err != nil {
		return nil, err
	}
	if err := p.expect('.'); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.Lambda{Var: v, Body: body}, nil
}

// binder := typed_variable | variable | identifier.
func (p *Parser) parseBinder() (ast.Expr, error) {
	return p.parseVarOrIdentMaybeTyped()
}

// --- left-folded binary operator levels, lowest to highest precedence ----

func (p *Parser) parseBiconditional() (ast.Expr, error) {
	return p.parseLeftFold(ast.Iff, []rune{'↔', '⇔'}, (*Parser).parseImplication)
}

func (p *Parser) parseImplication() (ast.Expr, error) {
	return p.parseLeftFold(ast.Implies, []rune{'→', '⇒'}, (*Parser).parseDisjunction)
}

func (p *Parser) parseDisjunction() (ast.Expr, error) {
	return p.parseLeftFold(ast.Or, []rune{'∨'}, (*Parser).parseConjunction)
}

func (p *Parser) parseConjunction() (ast.Expr, error) {
	return p.parseLeftFold(ast.And, []rune{'∧'}, (*Parser).parseEquality)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseLeftFold(ast.Eq, []rune{'='}, (*Parser).parseComposition)
}

func (p *Parser) parseComposition() (ast.Expr, error) {
	return p.parseLeftFold(ast.ComposeOp, []rune{'∘'}, (*Parser).parseAddition)
}

func (p *Parser) parseAddition() (ast.Expr, error) {
	return p.parseLeftFold(ast.Add, []rune{'+'}, (*Parser).parseMultiplication)
}

func (p *Parser) parseMultiplication() (ast.Expr, error) {
	return p.parseLeftFold(ast.Mul, []rune{'×', '*'}, (*Parser).parseTerm)
}

// parseLeftFold parses one operand via next, then repeatedly consumes any
// symbol in syms followed by another operand, folding left: every level of
// spec §4.G's grammar -- including implication -- is left-associative.
func (p *Parser) parseLeftFold(op ast.BinOpKind, syms []rune, next func(*Parser) (ast.Expr, error)) (ast.Expr, error) {
	left, err := next(p)
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		r, ok := p.peekRune()
		if !ok || !runeIn(r, syms) {
			return left, nil
		}
		p.advance()
		right, err := next(p)
		if err != nil {
			return nil, err
		}
		left = ast.BinOp{Op: op, Left: left, Right: right}
	}
}

func runeIn(r rune, set []rune) bool {
	for _, s := range set {
		if r == s {
			return true
		}
	}
	return false
}

// --- term := negation | application ---------------------------------------

func (p *Parser) parseTerm() (ast.Expr, error) {
	p.skipSpace()
	if r, ok := p.peekRune(); ok && r == '¬' {
		p.advance()
		operand, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.Negation{Operand: operand}, nil
	}
	return p.parseApplication()
}

// application := atom (atom)*, left-associative currying.
func (p *Parser) parseApplication() (ast.Expr, error) {
	fn, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.startsAtom() {
			return fn, nil
		}
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		fn = ast.App{Fun: fn, Arg: arg}
	}
}

func (p *Parser) startsAtom() bool {
	p.skipSpace()
	r, ok := p.peekRune()
	if !ok {
		return false
	}
	if r == '(' {
		return true
	}
	return isIdentRune(r)
}

// atom := '(' expr ')' | typed_variable | variable | identifier.
func (p *Parser) parseAtom() (ast.Expr, error) {
	p.skipSpace()
	r, ok := p.peekRune()
	if !ok {
		return nil, p.errAt("unexpected end of input")
	}
	if r == '(' {
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return e, nil
	}
	return p.parseVarOrIdentMaybeTyped()
}

// parseVarOrIdentMaybeTyped parses a variable or identifier, and if
// immediately followed by ':' parses a second variable-or-identifier as its
// type annotation (typed_variable).
func (p *Parser) parseVarOrIdentMaybeTyped() (ast.Expr, error) {
	head, err := p.parseVarOrIdent()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if r, ok := p.peekRune(); ok && r == ':' {
		p.advance()
		ty, err := p.parseVarOrIdent()
		if err != nil {
			return nil, err
		}
		return ast.TypedVar{VarExpr: head, TypeExpr: ty}, nil
	}
	return head, nil
}

func isIdentRune(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
		return true
	}
	return r >= 'α' && r <= 'ω'
}

// parseVarOrIdent scans a maximal run of identifier runes and classifies it:
// exactly one uppercase ASCII letter is a variable; anything else (longer
// runs, lowercase, Greek) is an identifier.
func (p *Parser) parseVarOrIdent() (ast.Expr, error) {
	p.skipSpace()
	var b strings.Builder
	for {
		r, ok := p.peekRune()
		if !ok || !isIdentRune(r) {
			break
		}
		b.WriteRune(p.advance())
	}
	name := b.String()
	if name == "" {
		return nil, p.errAt("expected a variable or identifier")
	}
	runes := []rune(name)
	if len(runes) == 1 && runes[0] >= 'A' && runes[0] <= 'Z' {
		return ast.Var{Name: name}, nil
	}
	return ast.Ident{Name: name}, nil
}
