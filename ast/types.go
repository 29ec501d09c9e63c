// Package ast contains the shared type and declaration model used by the
// term builder, the unifier and the surface parser: simply-typed atoms,
// and the three kinds of named symbol (free variable, bound variable,
// constant) that terms are built from.
package ast

import "strings"

// Symbol is an atomic name, such as a type goal (i, o) or a constant name.
type Symbol string

// Type is a simply-typed arrow type, curried into one constructor:
// { goal: Symbol, args: [Type] } denotes args[0] -> args[1] -> ... -> goal.
type Type struct {
	Goal Symbol
	Args []Type
}

// NewType builds a type with the given goal and argument types. Composing
// an existing type {g, A} with extra leading arguments B yields {g, B++A}:
// extra arguments are always prepended.
func NewType(goal Symbol, args ...Type) Type {
	return Type{Goal: goal, Args: args}
}

// Compose extends t with additional leading argument types, implementing
// mk_type({g, A}, B) = {g, B++A}.
func Compose(t Type, extra ...Type) Type {
	if len(extra) == 0 {
		return t
	}
	args := make([]Type, 0, len(extra)+len(t.Args))
	args = append(args, extra...)
	args = append(args, t.Args...)
	return Type{Goal: t.Goal, Args: args}
}

// Arity is the number of arguments a symbol of this type still expects.
func (t Type) Arity() int {
	return len(t.Args)
}

// IsBase reports whether t takes no arguments.
func (t Type) IsBase() bool {
	return len(t.Args) == 0
}

// Equals is structural type equality.
func (t Type) Equals(u Type) bool {
	if t.Goal != u.Goal || len(t.Args) != len(u.Args) {
		return false
	}
	for i, a := range t.Args {
		if !a.Equals(u.Args[i]) {
			return false
		}
	}
	return true
}

// String renders a type as a curried arrow expression.
func (t Type) String() string {
	var sb strings.Builder
	for _, a := range t.Args {
		sb.WriteString(a.parenString())
		sb.WriteString(" -> ")
	}
	sb.WriteString(string(t.Goal))
	return sb.String()
}

func (t Type) parenString() string {
	if t.IsBase() {
		return string(t.Goal)
	}
	return "(" + t.String() + ")"
}

// Common base type goals used throughout the examples and tests.
const (
	Iota    Symbol = "i" // individuals
	Omicron Symbol = "o" // propositions
)

// Individual is the base type of individuals.
var Individual = Type{Goal: Iota}

// Prop is the base type of propositions.
var Prop = Type{Goal: Omicron}
