// Package export writes unification problems to disk in a TPTP-like
// textual form, one .p file per problem: a thf type declaration per
// constant, followed by an existential conjecture equating each pair.
// The files are diagnostic artifacts; nothing in the pipeline reads them
// back.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codeberg.org/TauCeti/mangle-go/ast"
	"codeberg.org/TauCeti/mangle-go/term"
	"codeberg.org/TauCeti/mangle-go/unify"
)

// WriteProblem writes eqs to <dir>/<name>.p, creating dir if needed.
func WriteProblem(dir, name string, eqs []unify.Eq) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, name+".p")
	if err := os.WriteFile(path, []byte(Problem(name, eqs)), 0o644); err != nil {
		return fmt.Errorf("export: writing %s: %w", path, err)
	}
	return nil
}

// Problem renders eqs as the text of a single TPTP-like problem file.
func Problem(name string, eqs []unify.Eq) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%% Problem: %s\n", name)

	consts := collectConsts(eqs)
	for _, c := range consts {
		fmt.Fprintf(&sb, "thf(%s_type, type, %s: %s).\n", declBase(c.Name()), constName(c.Name()), tptpType(c.Ty()))
	}

	fvars := collectFreeVars(eqs)
	binders := make([]string, len(fvars))
	for i, v := range fvars {
		binders[i] = fmt.Sprintf("%s: %s", freeVarName(v.Name()), tptpType(v.Ty()))
	}
	conjs := make([]string, len(eqs))
	for i, e := range eqs {
		conjs[i] = fmt.Sprintf("%s = %s", renderTerm(e.L), renderTerm(e.R))
	}

	fmt.Fprintf(&sb, "thf(%s, conjecture,\n", declBase(name))
	if len(binders) > 0 {
		fmt.Fprintf(&sb, "  ? [%s] :\n", strings.Join(binders, ", "))
	}
	fmt.Fprintf(&sb, "  ( %s )).\n", strings.Join(conjs, "\n  & "))
	return sb.String()
}

// tptpType flattens a curried type to a >-separated arrow with $-prefixed
// atom names, parenthesizing functional argument positions.
func tptpType(t ast.Type) string {
	if t.IsBase() {
		return "$" + string(t.Goal)
	}
	parts := make([]string, 0, len(t.Args)+1)
	for _, a := range t.Args {
		if a.IsBase() {
			parts = append(parts, tptpType(a))
		} else {
			parts = append(parts, "("+tptpType(a)+")")
		}
	}
	parts = append(parts, "$"+string(t.Goal))
	return strings.Join(parts, " > ")
}

func renderTerm(t term.Term) string {
	body := headName(t.Head)
	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = renderTerm(a)
		}
		body = "(" + body + " @ " + strings.Join(args, " @ ") + ")"
	}
	for i := len(t.BVars) - 1; i >= 0; i-- {
		bv := t.BVars[i]
		body = fmt.Sprintf("(^ [BV_%d: %s] : %s)", bv.Index, tptpType(bv.Ty()), body)
	}
	return body
}

func headName(d ast.Decl) string {
	switch h := d.(type) {
	case ast.BoundVar:
		return fmt.Sprintf("BV_%d", h.Index)
	case ast.FreeVar:
		return freeVarName(h.Name())
	default:
		return constName(d.Name())
	}
}

// freeVarName uppercases a free variable, the TPTP convention for
// existentially bound problem variables.
func freeVarName(name string) string {
	return strings.ToUpper(strings.TrimLeft(name, "$"))
}

func constName(name string) string {
	return "'" + name + "'"
}

// declBase sanitizes a name for use inside a thf(...) declaration label.
func declBase(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

func collectConsts(eqs []unify.Eq) []ast.Const {
	seen := map[string]ast.Const{}
	for _, e := range eqs {
		walkConsts(e.L, seen)
		walkConsts(e.R, seen)
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]ast.Const, len(names))
	for i, n := range names {
		out[i] = seen[n]
	}
	return out
}

func walkConsts(t term.Term, seen map[string]ast.Const) {
	if c, ok := t.Head.(ast.Const); ok {
		seen[c.Name()] = c
	}
	for _, a := range t.Args {
		walkConsts(a, seen)
	}
}

func collectFreeVars(eqs []unify.Eq) []ast.FreeVar {
	set := ast.NewFreeVarSet()
	for _, e := range eqs {
		set = set.Union(e.L.FVars)
		set = set.Union(e.R.FVars)
	}
	vars := set.Slice()
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name() < vars[j].Name() })
	return vars
}
