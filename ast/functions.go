package ast

import "github.com/paiml/ruchy-sub004/token"

// Param is one function/lambda parameter.
type Param struct {
	Name           string
	TypeAnnotation *TypeExpr // nil if not annotated
	Default        Expr      // nil if no default
	IsVariadic     bool      // `...rest`
}

// Function is a named function/method declaration.
type Function struct {
	Base
	Name       string
	TypeParams []string
	Params     []Param
	ReturnType *TypeExpr
	Body       Expr
	IsAsync    bool
	IsPub      bool
	IsStatic   bool
	IsOverride bool
}

// Lambda is an anonymous function literal (`|x, y| x + y`).
type Lambda struct {
	Base
	Params []Param
	Body   Expr
}

// Call invokes Func with Args.
type Call struct {
	Base
	Func Expr
	Args []Expr
}

func NewCall(sp token.Span, fn Expr, args []Expr) *Call {
	return &Call{Base: mkBase(KCall, sp), Func: fn, Args: args}
}

// MethodCall invokes Method on Receiver.
type MethodCall struct {
	Base
	Receiver Expr
	Method   string
	Args     []Expr
	Optional bool // `?.method(...)`
}

// FieldAccess reads a field/property off Receiver.
type FieldAccess struct {
	Base
	Receiver Expr
	Field    string
	Optional bool // `?.field`
}

// IndexAccess reads `Receiver[Index]`.
type IndexAccess struct {
	Base
	Receiver Expr
	Index    Expr
}

// List is a literal list/array: `[1, 2, 3]`.
type List struct {
	Base
	Elements []Expr
}

// Tuple is a literal tuple: `(1, "a", true)`.
type Tuple struct {
	Base
	Elements []Expr
}

// Range is `start..end` (exclusive) or `start..=end` (inclusive).
type Range struct {
	Base
	Start     Expr
	End       Expr
	Inclusive bool
}

// StringPartKind tags the payload carried by a StringPart.
type StringPartKind int

const (
	PartText StringPartKind = iota
	PartExpr
	PartExprWithFormat
)

// StringPart is one piece of an f-string template: literal text, a
// bare interpolated expression, or an expression with a format spec.
type StringPart struct {
	Kind       StringPartKind
	Text       string
	Expr       Expr
	FormatSpec string
}

// StringInterpolation is the parsed form of an f-string literal.
type StringInterpolation struct {
	Base
	Parts []StringPart
}

// Spread is `...expr` used in call arguments, list literals, or struct
// literals to splice a collection's elements/fields in place.
type Spread struct {
	Base
	Value Expr
}

// Pipeline is `lhs |> rhs`, sugar for calling rhs with lhs prepended
// as its first argument.
type Pipeline struct {
	Base
	Left  Expr
	Right Expr
}

// AssignOp enumerates compound-assignment operators; Assign itself
// uses the zero value "=".
type AssignOp string

const (
	AssignPlain AssignOp = "="
	AssignAdd   AssignOp = "+="
	AssignSub   AssignOp = "-="
	AssignMul   AssignOp = "*="
	AssignDiv   AssignOp = "/="
)

// Assign is a plain or compound assignment to an lvalue (identifier,
// field access, or index access).
type Assign struct {
	Base
	Op     AssignOp
	Target Expr
	Value  Expr
}

// IncDecKind distinguishes ++/-- and prefix/postfix position.
type IncDecKind int

const (
	PreIncrement IncDecKind = iota
	PreDecrement
	PostIncrement
	PostDecrement
)

// IncDec is a `++x`, `x++`, `--x`, or `x--` expression.
type IncDec struct {
	Base
	Kind_   IncDecKind
	Operand Expr
}
