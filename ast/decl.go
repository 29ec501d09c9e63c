package ast

import (
	"fmt"
	"sync/atomic"

	"bitbucket.org/creachadair/stringset"
)

// Decl is an atomic, typed symbol: a free variable, a bound variable, or a
// constant. It is the closed interface every term head is built from,
// mirroring the teacher's BaseTerm/isBaseTerm marker-method idiom.
type Decl interface {
	// Marker method.
	isDecl()

	// Name is the symbol's printable name.
	Name() string

	// Ty is the symbol's declared type.
	Ty() Type

	// Equals is structural equality.
	Equals(Decl) bool

	String() string
}

// helperPrefix marks the opaque identity of internally-created helper
// variables; add_subst and substitution composition strip these from any
// substitution list that would otherwise leak them to callers.
const helperPrefix = "$h"

var helperCounter uint64

// FreeVar is a free variable, either user-named or an internally-created
// opaque helper (see mk_fresh_helper_var).
type FreeVar struct {
	name string
	typ  Type
}

// MkFreeVar constructs a user-named free variable.
func MkFreeVar(name string, typ Type) FreeVar {
	return FreeVar{name: name, typ: typ}
}

// MkFreshHelperVar allocates a free variable with an opaque, implementer
// generated name. Helper variables never appear in user-visible
// substitutions; see IsHelperName.
func MkFreshHelperVar(typ Type) FreeVar {
	n := atomic.AddUint64(&helperCounter, 1)
	return FreeVar{name: fmt.Sprintf("%s%d", helperPrefix, n), typ: typ}
}

// IsHelperName reports whether name is an opaque helper-variable identity.
func IsHelperName(name string) bool {
	return len(name) > len(helperPrefix) && name[:len(helperPrefix)] == helperPrefix
}

func (v FreeVar) isDecl()         {}
func (v FreeVar) Name() string    { return v.name }
func (v FreeVar) Ty() Type        { return v.typ }
func (v FreeVar) IsHelper() bool  { return IsHelperName(v.name) }
func (v FreeVar) Equals(d Decl) bool {
	u, ok := d.(FreeVar)
	return ok && v.name == u.name && v.typ.Equals(u.typ)
}
func (v FreeVar) String() string { return v.name }

// Const is a constant symbol.
type Const struct {
	name string
	typ  Type
}

// MkConst constructs a constant declaration.
func MkConst(name string, typ Type) Const {
	return Const{name: name, typ: typ}
}

func (c Const) isDecl()      {}
func (c Const) Name() string { return c.name }
func (c Const) Ty() Type     { return c.typ }
func (c Const) Equals(d Decl) bool {
	u, ok := d.(Const)
	return ok && c.name == u.name && c.typ.Equals(u.typ)
}
func (c Const) String() string { return c.name }

// BoundVar is a bound variable, de Bruijn-like but with an index that is
// absolute within the enclosing term rather than relative to binder depth
// (see spec §3, representation invariant 7 on contiguity).
type BoundVar struct {
	Index int
	typ   Type
}

// MkBoundVar constructs a bound-variable reference with the given absolute
// index. index must be a positive integer; each abstraction reserves an
// index strictly greater than any already used in its body.
func MkBoundVar(index int, typ Type) BoundVar {
	if index <= 0 {
		panic(fmt.Sprintf("ast: bound variable index must be positive, got %d", index))
	}
	return BoundVar{Index: index, typ: typ}
}

func (b BoundVar) isDecl()      {}
func (b BoundVar) Name() string { return fmt.Sprintf("bv%d", b.Index) }
func (b BoundVar) Ty() Type     { return b.typ }
func (b BoundVar) Equals(d Decl) bool {
	u, ok := d.(BoundVar)
	return ok && b.Index == u.Index && b.typ.Equals(u.typ)
}
func (b BoundVar) String() string { return b.Name() }

// FreeVarSet is a set of free variables, keyed by name (names are unique
// within a well-formed term, per the fvars invariant of spec §3).
type FreeVarSet struct {
	names stringset.Set
	byName map[string]FreeVar
}

// NewFreeVarSet builds an empty free-variable set.
func NewFreeVarSet() FreeVarSet {
	return FreeVarSet{names: stringset.New(), byName: map[string]FreeVar{}}
}

// Add inserts v, a no-op if v is already present.
func (s *FreeVarSet) Add(v FreeVar) {
	if s.byName == nil {
		*s = NewFreeVarSet()
	}
	s.names.Add(v.name)
	s.byName[v.name] = v
}

// Union returns the union of s and other, without mutating either.
func (s FreeVarSet) Union(other FreeVarSet) FreeVarSet {
	out := NewFreeVarSet()
	for n, v := range s.byName {
		out.names.Add(n)
		out.byName[n] = v
	}
	for n, v := range other.byName {
		out.names.Add(n)
		out.byName[n] = v
	}
	return out
}

// Contains reports whether v (by name) is in the set.
func (s FreeVarSet) Contains(v FreeVar) bool {
	return s.names.Contains(v.name)
}

// Slice returns the set's elements in an unspecified but stable order.
func (s FreeVarSet) Slice() []FreeVar {
	out := make([]FreeVar, 0, len(s.byName))
	for _, n := range s.names.Elements() {
		out = append(out, s.byName[n])
	}
	return out
}

// Len returns the number of elements.
func (s FreeVarSet) Len() int { return s.names.Len() }
