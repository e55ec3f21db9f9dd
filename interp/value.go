// Package interp implements Ruchy's tree-walking interpreter: a
// lexically-scoped environment stack, the Value taxonomy, and the
// class/closure/pattern-matching semantics described in spec §4.4.
package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paiml/ruchy-sub004/ast"
)

// Value is implemented by every runtime value the interpreter
// produces. Concrete types mirror spec §3's taxonomy; Go's garbage
// collector stands in for the source's Arc-based reference counting,
// so List/Tuple/String share their backing storage the way Arc<str>
// and Arc<Vec> do without any explicit refcounting code.
type Value interface {
	Type() string
	String() string
}

// Integer is a 64-bit signed integer value.
type Integer int64

func (Integer) Type() string     { return "Integer" }
func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

// Float is a 64-bit floating point value.
type Float float64

func (Float) Type() string { return "Float" }
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// Bool is a boolean value.
type Bool bool

func (Bool) Type() string     { return "Bool" }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Char is a single Unicode scalar value.
type Char rune

func (Char) Type() string     { return "Char" }
func (c Char) String() string { return string(rune(c)) }

// String is an immutable UTF-8 string, the Go equivalent of spec §3's
// `Arc<str>` — Go strings are themselves immutable and share their
// backing array on slice/assignment, so no explicit sharing wrapper is
// needed.
type String string

func (String) Type() string     { return "String" }
func (s String) String() string { return string(s) }

// Nil is the explicit absence-of-value sentinel (spec §3
// distinguishes it from Unit: Nil is a user-visible "no value",
// while Unit is the type of statements/blocks with no result).
type Nil struct{}

func (Nil) Type() string   { return "Nil" }
func (Nil) String() string { return "nil" }

// Unit is the zero-information value returned by statements, one-armed
// `if`, and empty blocks.
type Unit struct{}

func (Unit) Type() string   { return "Unit" }
func (Unit) String() string { return "()" }

// List is a mutable-length sequence value. Go's slice already gives
// Arc<Vec>-like sharing semantics on copy (the header is copied, the
// backing array is shared), so List is a plain slice wrapper rather
// than an explicit reference-counted cell.
type List struct {
	Elems []Value
}

func (*List) Type() string { return "List" }
func (l *List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Tuple is a fixed-arity heterogeneous sequence.
type Tuple struct {
	Elems []Value
}

func (*Tuple) Type() string { return "Tuple" }
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Closure is a user-defined function or lambda value, capturing the
// environment active at its definition site. Params reuses ast.Param
// directly (name, optional default expression, variadic flag) rather
// than re-declaring an equivalent shape.
type Closure struct {
	Name    string // "" for an anonymous lambda
	Params  []ast.Param
	Body    ast.Expr
	Env     *Environment
	IsAsync bool
}

func (*Closure) Type() string { return "Function" }
func (c *Closure) String() string {
	if c.Name != "" {
		return fmt.Sprintf("<fn %s>", c.Name)
	}
	return "<lambda>"
}

// BuiltinFunction wraps a Go function as a callable Ruchy value.
type BuiltinFunction struct {
	Name string
	Fn   func(interp *Interpreter, args []Value) (Value, error)
}

func (*BuiltinFunction) Type() string     { return "BuiltinFunction" }
func (b *BuiltinFunction) String() string { return fmt.Sprintf("<builtin %s>", b.Name) }

// ValuesEqual implements the structural equality `==` uses, matching
// across Integer/Float the way the teacher's NumericValue comparison
// does, per spec §4.3's conservative numeric-mixing note (equality
// still compares across the two representations; it is arithmetic
// unification that is strict).
func ValuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case Integer:
		switch bv := b.(type) {
		case Integer:
			return av == bv
		case Float:
			return Float(av) == bv
		}
		return false
	case Float:
		switch bv := b.(type) {
		case Integer:
			return av == Float(bv)
		case Float:
			return av == bv
		}
		return false
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Char:
		bv, ok := b.(Char)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Unit:
		_, ok := b.(Unit)
		return ok
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !ValuesEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !ValuesEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Truthy reports whether v is considered true in a boolean context
// (conditions, guards, logical operators).
func Truthy(v Value) bool {
	switch b := v.(type) {
	case Bool:
		return bool(b)
	case Nil:
		return false
	default:
		return true
	}
}

// IsNumeric reports whether v is an Integer or Float.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Integer, Float:
		return true
	default:
		return false
	}
}
