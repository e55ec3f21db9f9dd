package ast

// TypeExprKind tags the payload of a TypeExpr (a *syntactic* type
// annotation, as written by the user — distinct from types.MonoType,
// the inferencer's internal representation built by resolving these).
type TypeExprKind int

const (
	TypeNamed TypeExprKind = iota
	TypeList
	TypeTuple
	TypeOptional
	TypeResult
	TypeFunction
	TypeDataFrame
)

// TypeExpr is the syntactic form of a type annotation, e.g. `i32`,
// `[T]`, `(T1, T2)`, `T?`, `Result<T,E>`, `(T1, T2) -> T3`.
type TypeExpr struct {
	Kind TypeExprKind

	// TypeNamed
	Name       string
	TypeArgs   []*TypeExpr // generic instantiation, e.g. List<T>

	// TypeList, TypeOptional: single element type
	Elem *TypeExpr

	// TypeTuple
	Elements []*TypeExpr

	// TypeResult
	Ok  *TypeExpr
	Err *TypeExpr

	// TypeFunction
	Params []*TypeExpr
	Return *TypeExpr

	// TypeDataFrame: named columns, type carried for documentation only
	Columns []DataFrameColumn
}

// DataFrameColumn names one opaque DataFrame/Series column.
type DataFrameColumn struct {
	Name string
	Type *TypeExpr
}
