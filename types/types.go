// Package types implements Ruchy's Hindley–Milner-style type
// inferencer: MonoType representation, a unifier with occurs-check, a
// fresh-variable generator, TypeScheme generalization/instantiation,
// and the InferenceContext that drives structural inference over the
// AST (spec §4.3).
package types

import (
	"fmt"
	"strings"
)

// Kind tags which concrete MonoType shape a value is.
type Kind int

const (
	KInt Kind = iota
	KFloat
	KBool
	KString
	KChar
	KUnit
	KVar
	KFunction
	KList
	KTuple
	KOptional
	KResult
	KDataFrame
	KSeries
	KNamed
)

// MonoType is the inferencer's internal type representation — distinct
// from ast.TypeExpr, the syntactic annotation a user wrote.
type MonoType struct {
	Kind Kind

	// KVar
	VarID int

	// KFunction
	Arg *MonoType
	Ret *MonoType

	// KList, KOptional, KSeries
	Elem *MonoType

	// KTuple
	Elements []*MonoType

	// KResult
	Ok  *MonoType
	Err *MonoType

	// KDataFrame: named, opaque columns (documentation only, spec §4.3)
	Columns []DataFrameColumn

	// KNamed: a user-declared nominal type (class/struct/enum name)
	Name string
}

// DataFrameColumn names one opaque DataFrame/Series column.
type DataFrameColumn struct {
	Name string
	Type *MonoType
}

var (
	Int    = &MonoType{Kind: KInt}
	Float  = &MonoType{Kind: KFloat}
	Bool   = &MonoType{Kind: KBool}
	String = &MonoType{Kind: KString}
	Char   = &MonoType{Kind: KChar}
	Unit   = &MonoType{Kind: KUnit}
)

func Var(id int) *MonoType                { return &MonoType{Kind: KVar, VarID: id} }
func Function(arg, ret *MonoType) *MonoType { return &MonoType{Kind: KFunction, Arg: arg, Ret: ret} }
func List(elem *MonoType) *MonoType        { return &MonoType{Kind: KList, Elem: elem} }
func Tuple(elems []*MonoType) *MonoType    { return &MonoType{Kind: KTuple, Elements: elems} }
func Optional(elem *MonoType) *MonoType    { return &MonoType{Kind: KOptional, Elem: elem} }
func Result(ok, err *MonoType) *MonoType   { return &MonoType{Kind: KResult, Ok: ok, Err: err} }
func Named(name string) *MonoType          { return &MonoType{Kind: KNamed, Name: name} }
func Series(elem *MonoType) *MonoType      { return &MonoType{Kind: KSeries, Elem: elem} }
func DataFrame(cols []DataFrameColumn) *MonoType {
	return &MonoType{Kind: KDataFrame, Columns: cols}
}

// String renders t in Rust-like notation for diagnostics, per spec
// §4.3's Display rule (`i32`, `f64`, `(T1, T2)`, `[T]`, `T?`, `Result<T,E>`).
func (t *MonoType) String() string {
	if t == nil {
		return "?"
	}
	switch t.Kind {
	case KInt:
		return "i32"
	case KFloat:
		return "f64"
	case KBool:
		return "bool"
	case KString:
		return "String"
	case KChar:
		return "char"
	case KUnit:
		return "()"
	case KVar:
		return fmt.Sprintf("t%d", t.VarID)
	case KFunction:
		return fmt.Sprintf("(%s) -> %s", t.Arg, t.Ret)
	case KList:
		return fmt.Sprintf("[%s]", t.Elem)
	case KTuple:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KOptional:
		return t.Elem.String() + "?"
	case KResult:
		return fmt.Sprintf("Result<%s,%s>", t.Ok, t.Err)
	case KDataFrame:
		cols := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cols[i] = c.Name + ": " + c.Type.String()
		}
		return "DataFrame<" + strings.Join(cols, ", ") + ">"
	case KSeries:
		return fmt.Sprintf("Series<%s>", t.Elem)
	case KNamed:
		return t.Name
	default:
		return "?"
	}
}

// TypeScheme is a (possibly) universally-quantified type: `forall
// vars. body`. Monomorphic types are schemes with no bound variables.
type TypeScheme struct {
	Vars []int
	Body *MonoType
}
