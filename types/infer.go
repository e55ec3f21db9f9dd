package types

import (
	"fmt"

	"github.com/paiml/ruchy-sub004/ast"
)

// Infer performs structural type inference over e under env, applying
// and extending ctx.Subst as it goes. It implements spec §4.3's
// per-construct rules; unhandled/advanced constructs (actors, effects,
// modules — out of scope per spec §1) infer to Unit.
func Infer(ctx *InferenceContext, env *Env, e ast.Expr) (*MonoType, error) {
	defer ctx.enter()()

	switch n := e.(type) {
	case *ast.Literal:
		return inferLiteral(n), nil
	case *ast.Identifier:
		return inferIdentifier(ctx, env, n)
	case *ast.Binary:
		return inferBinary(ctx, env, n)
	case *ast.Unary:
		return inferUnary(ctx, env, n)
	case *ast.If:
		return inferIf(ctx, env, n)
	case *ast.IfLet:
		return inferIfLet(ctx, env, n)
	case *ast.Let:
		return inferLet(ctx, env, n)
	case *ast.LetPattern:
		return inferLetPattern(ctx, env, n)
	case *ast.Block:
		return inferBlock(ctx, env, n)
	case *ast.Lambda:
		return inferLambda(ctx, env, n)
	case *ast.Function:
		return inferFunction(ctx, env, n)
	case *ast.Call:
		return inferCall(ctx, env, n)
	case *ast.MethodCall:
		return inferMethodCall(ctx, env, n)
	case *ast.List:
		return inferList(ctx, env, n)
	case *ast.Tuple:
		return inferTuple(ctx, env, n)
	case *ast.Match:
		return inferMatch(ctx, env, n)
	case *ast.For:
		return inferFor(ctx, env, n)
	case *ast.While, *ast.WhileLet, *ast.Loop:
		return inferLoopLike(ctx, env, n)
	case *ast.StringInterpolation:
		return inferStringInterpolation(ctx, env, n)
	case *ast.Range:
		return inferRange(ctx, env, n)
	case *ast.FieldAccess:
		if _, err := Infer(ctx, env, n.Receiver); err != nil {
			return nil, err
		}
		return ctx.Fresh(), nil
	case *ast.IndexAccess:
		recv, err := Infer(ctx, env, n.Receiver)
		if err != nil {
			return nil, err
		}
		if _, err := Infer(ctx, env, n.Index); err != nil {
			return nil, err
		}
		if recv.Kind == KList {
			return recv.Elem, nil
		}
		return ctx.Fresh(), nil
	case *ast.Assign:
		return Infer(ctx, env, n.Value)
	case *ast.Return:
		if n.Value != nil {
			return Infer(ctx, env, n.Value)
		}
		return Unit, nil
	case *ast.Break, *ast.Continue:
		return Unit, nil
	case *ast.Throw:
		if _, err := Infer(ctx, env, n.Value); err != nil {
			return nil, err
		}
		return ctx.Fresh(), nil
	case *ast.TryCatch:
		return inferTryCatch(ctx, env, n)
	case *ast.Await:
		return Infer(ctx, env, n.Value)
	case *ast.Pipeline:
		return inferPipeline(ctx, env, n)
	default:
		return Unit, nil
	}
}

func inferLiteral(n *ast.Literal) *MonoType {
	switch n.Value.Kind {
	case ast.LitInt:
		return Int
	case ast.LitFloat:
		return Float
	case ast.LitBool:
		return Bool
	case ast.LitString:
		return String
	case ast.LitChar:
		return Char
	default:
		return Unit
	}
}

func inferIdentifier(ctx *InferenceContext, env *Env, n *ast.Identifier) (*MonoType, error) {
	sc, ok := env.Lookup(n.Name)
	if !ok {
		return nil, &InferenceError{Message: fmt.Sprintf("unknown identifier %q at %s", n.Name, n.Span().Start)}
	}
	return ctx.Instantiate(sc), nil
}

func inferBinary(ctx *InferenceContext, env *Env, n *ast.Binary) (*MonoType, error) {
	l, err := Infer(ctx, env, n.Left)
	if err != nil {
		return nil, err
	}
	r, err := Infer(ctx, env, n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpEq, ast.OpNotEq, ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq:
		if err := ctx.unify(l, r); err != nil {
			return nil, err
		}
		return Bool, nil
	case ast.OpAnd, ast.OpOr:
		if err := ctx.unify(l, Bool); err != nil {
			return nil, err
		}
		if err := ctx.unify(r, Bool); err != nil {
			return nil, err
		}
		return Bool, nil
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr:
		if err := ctx.unify(l, Int); err != nil {
			return nil, err
		}
		if err := ctx.unify(r, Int); err != nil {
			return nil, err
		}
		return Int, nil
	case ast.OpCoalesce:
		return r, nil
	default: // arithmetic family: Int/Float must unify, strict per DESIGN.md
		if err := ctx.unify(l, r); err != nil {
			return nil, err
		}
		return ctx.Subst.Apply(l), nil
	}
}

func inferUnary(ctx *InferenceContext, env *Env, n *ast.Unary) (*MonoType, error) {
	t, err := Infer(ctx, env, n.Operand)
	if err != nil {
		return nil, err
	}
	if n.Op == ast.OpNot {
		if err := ctx.unify(t, Bool); err != nil {
			return nil, err
		}
		return Bool, nil
	}
	return t, nil
}

func inferIf(ctx *InferenceContext, env *Env, n *ast.If) (*MonoType, error) {
	cond, err := Infer(ctx, env, n.Condition)
	if err != nil {
		return nil, err
	}
	if err := ctx.unify(cond, Bool); err != nil {
		return nil, err
	}
	thenT, err := Infer(ctx, env, n.Then)
	if err != nil {
		return nil, err
	}
	if n.Else == nil {
		return Unit, nil
	}
	elseT, err := Infer(ctx, env, n.Else)
	if err != nil {
		return nil, err
	}
	if err := ctx.unify(thenT, elseT); err != nil {
		return nil, err
	}
	return ctx.Subst.Apply(thenT), nil
}

func inferIfLet(ctx *InferenceContext, env *Env, n *ast.IfLet) (*MonoType, error) {
	if _, err := Infer(ctx, env, n.Expr); err != nil {
		return nil, err
	}
	child := env.Child()
	bindPatternFresh(ctx, child, n.Pattern)
	thenT, err := Infer(ctx, child, n.Then)
	if err != nil {
		return nil, err
	}
	if n.Else == nil {
		return Unit, nil
	}
	elseT, err := Infer(ctx, env, n.Else)
	if err != nil {
		return nil, err
	}
	if err := ctx.unify(thenT, elseT); err != nil {
		return nil, err
	}
	return ctx.Subst.Apply(thenT), nil
}

// bindPatternFresh defines every name a pattern can bind with a fresh
// type variable, used where a precise destructured type isn't tracked.
func bindPatternFresh(ctx *InferenceContext, env *Env, pat *ast.Pattern) {
	if pat == nil {
		return
	}
	switch pat.Kind {
	case ast.PatIdentifier:
		if pat.Name != "_" {
			env.Define(pat.Name, &TypeScheme{Body: ctx.Fresh()})
		}
	case ast.PatAtBinding:
		if pat.Name != "" {
			env.Define(pat.Name, &TypeScheme{Body: ctx.Fresh()})
		}
		bindPatternFresh(ctx, env, pat.Inner)
	case ast.PatWithDefault:
		bindPatternFresh(ctx, env, pat.Inner)
	case ast.PatTuple, ast.PatList:
		for _, el := range pat.Elements {
			bindPatternFresh(ctx, env, el)
		}
		if pat.RestName != "" {
			env.Define(pat.RestName, &TypeScheme{Body: List(ctx.Fresh())})
		}
	case ast.PatStruct:
		for _, f := range pat.Fields {
			if f.Pattern != nil {
				bindPatternFresh(ctx, env, f.Pattern)
			} else {
				env.Define(f.Name, &TypeScheme{Body: ctx.Fresh()})
			}
		}
	case ast.PatSome, ast.PatOk, ast.PatErr:
		bindPatternFresh(ctx, env, pat.Inner)
	case ast.PatOr:
		for _, alt := range pat.Alternatives {
			bindPatternFresh(ctx, env, alt)
		}
	}
}

// inferLet implements let-polymorphism: value's type is generalized at
// the binding point before the body is inferred under the extended
// environment (spec §4.3).
func inferLet(ctx *InferenceContext, env *Env, n *ast.Let) (*MonoType, error) {
	valT, err := Infer(ctx, env, n.Value)
	if err != nil {
		return nil, err
	}
	if n.TypeAnnotation != nil {
		annot := Resolve(n.TypeAnnotation)
		if err := ctx.unify(valT, annot); err != nil {
			return nil, err
		}
	}
	sc := ctx.Generalize(env, valT)

	if isUnitLiteral(n.Body) {
		env.Define(n.Name, sc)
		return Unit, nil
	}
	child := env.Child()
	child.Define(n.Name, sc)
	return Infer(ctx, child, n.Body)
}

func inferLetPattern(ctx *InferenceContext, env *Env, n *ast.LetPattern) (*MonoType, error) {
	valT, err := Infer(ctx, env, n.Value)
	if err != nil {
		return nil, err
	}
	_ = valT
	if isUnitLiteral(n.Body) {
		bindPatternFresh(ctx, env, n.Pattern)
		return Unit, nil
	}
	child := env.Child()
	bindPatternFresh(ctx, child, n.Pattern)
	return Infer(ctx, child, n.Body)
}

func isUnitLiteral(e ast.Expr) bool {
	lit, ok := e.(*ast.Literal)
	return ok && lit.Value.Kind == ast.LitUnit
}

// inferBlock evaluates each expression's type in the same scope (no
// new frame), returning the last expression's type or Unit if empty,
// matching the interpreter's no-new-frame Block semantics exactly so
// the inferencer and evaluator never disagree about visibility.
func inferBlock(ctx *InferenceContext, env *Env, n *ast.Block) (*MonoType, error) {
	var last *MonoType = Unit
	for _, sub := range n.Exprs {
		t, err := Infer(ctx, env, sub)
		if err != nil {
			return nil, err
		}
		last = t
	}
	return last, nil
}

func inferLambda(ctx *InferenceContext, env *Env, n *ast.Lambda) (*MonoType, error) {
	child := env.Child()
	paramTypes := make([]*MonoType, len(n.Params))
	for i, p := range n.Params {
		var pt *MonoType
		if p.TypeAnnotation != nil {
			pt = Resolve(p.TypeAnnotation)
		} else {
			pt = ctx.Fresh()
		}
		paramTypes[i] = pt
		child.Define(p.Name, &TypeScheme{Body: pt})
	}
	bodyT, err := Infer(ctx, child, n.Body)
	if err != nil {
		return nil, err
	}
	return rightAssocArrow(paramTypes, bodyT), nil
}

func inferFunction(ctx *InferenceContext, env *Env, n *ast.Function) (*MonoType, error) {
	child := env.Child()
	paramTypes := make([]*MonoType, len(n.Params))
	for i, p := range n.Params {
		var pt *MonoType
		if p.TypeAnnotation != nil {
			pt = Resolve(p.TypeAnnotation)
		} else {
			pt = ctx.Fresh()
		}
		paramTypes[i] = pt
		child.Define(p.Name, &TypeScheme{Body: pt})
	}
	fnType := rightAssocArrow(paramTypes, ctx.Fresh())
	env.Define(n.Name, &TypeScheme{Body: fnType}) // allow self-recursion
	bodyT, err := Infer(ctx, child, n.Body)
	if err != nil {
		return nil, err
	}
	if n.ReturnType != nil {
		if err := ctx.unify(bodyT, Resolve(n.ReturnType)); err != nil {
			return nil, err
		}
	}
	inferred := rightAssocArrow(paramTypes, bodyT)
	env.Define(n.Name, ctx.Generalize(env, inferred))
	return Unit, nil
}

func rightAssocArrow(params []*MonoType, ret *MonoType) *MonoType {
	t := ret
	for i := len(params) - 1; i >= 0; i-- {
		t = Function(params[i], t)
	}
	return t
}

func inferCall(ctx *InferenceContext, env *Env, n *ast.Call) (*MonoType, error) {
	fnT, err := Infer(ctx, env, n.Func)
	if err != nil {
		return nil, err
	}
	argTypes := make([]*MonoType, len(n.Args))
	for i, a := range n.Args {
		at, err := Infer(ctx, env, a)
		if err != nil {
			return nil, err
		}
		argTypes[i] = at
	}
	ret := ctx.Fresh()
	expected := rightAssocArrow(argTypes, ret)
	if err := ctx.unify(fnT, expected); err != nil {
		return nil, err
	}
	return ctx.Subst.Apply(ret), nil
}

// inferMethodCall emits a deferred MethodConstraint per spec §4.3
// rather than unifying against a concrete method table (built-in and
// user-defined methods are resolved by the interpreter/linter's own
// tables, not the type layer).
func inferMethodCall(ctx *InferenceContext, env *Env, n *ast.MethodCall) (*MonoType, error) {
	recvT, err := Infer(ctx, env, n.Receiver)
	if err != nil {
		return nil, err
	}
	argTypes := make([]*MonoType, len(n.Args))
	for i, a := range n.Args {
		at, err := Infer(ctx, env, a)
		if err != nil {
			return nil, err
		}
		argTypes[i] = at
	}
	ctx.Constraints = append(ctx.Constraints, MethodConstraint{Receiver: recvT, Method: n.Method, Args: argTypes})
	return ctx.Fresh(), nil
}

func inferList(ctx *InferenceContext, env *Env, n *ast.List) (*MonoType, error) {
	elem := ctx.Fresh()
	for _, e := range n.Elements {
		t, err := Infer(ctx, env, e)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(elem, t); err != nil {
			return nil, err
		}
	}
	return List(ctx.Subst.Apply(elem)), nil
}

func inferTuple(ctx *InferenceContext, env *Env, n *ast.Tuple) (*MonoType, error) {
	elems := make([]*MonoType, len(n.Elements))
	for i, e := range n.Elements {
		t, err := Infer(ctx, env, e)
		if err != nil {
			return nil, err
		}
		elems[i] = t
	}
	return Tuple(elems), nil
}

// inferMatch unifies the scrutinee's type against each arm's pattern
// type (approximated structurally) and unifies all arm bodies
// together, per spec §4.3.
func inferMatch(ctx *InferenceContext, env *Env, n *ast.Match) (*MonoType, error) {
	scrutT, err := Infer(ctx, env, n.Scrutinee)
	if err != nil {
		return nil, err
	}
	var resultT *MonoType
	for _, arm := range n.Arms {
		child := env.Child()
		patT := inferPatternType(ctx, child, arm.Pattern)
		if err := ctx.unify(scrutT, patT); err != nil {
			return nil, err
		}
		if arm.Guard != nil {
			guardT, err := Infer(ctx, child, arm.Guard)
			if err != nil {
				return nil, err
			}
			if err := ctx.unify(guardT, Bool); err != nil {
				return nil, err
			}
		}
		bodyT, err := Infer(ctx, child, arm.Body)
		if err != nil {
			return nil, err
		}
		if resultT == nil {
			resultT = bodyT
		} else if err := ctx.unify(resultT, bodyT); err != nil {
			return nil, err
		}
	}
	if resultT == nil {
		return Unit, nil
	}
	return ctx.Subst.Apply(resultT), nil
}

// inferPatternType approximates a pattern's type structurally, binding
// any names it introduces into env as fresh variables.
func inferPatternType(ctx *InferenceContext, env *Env, pat *ast.Pattern) *MonoType {
	if pat == nil {
		return ctx.Fresh()
	}
	switch pat.Kind {
	case ast.PatWildcard:
		return ctx.Fresh()
	case ast.PatIdentifier:
		t := ctx.Fresh()
		if pat.Name != "_" {
			env.Define(pat.Name, &TypeScheme{Body: t})
		}
		return t
	case ast.PatLiteral:
		return inferLiteral(&ast.Literal{Value: *pat.Literal})
	case ast.PatRange:
		return Int
	case ast.PatTuple:
		elems := make([]*MonoType, len(pat.Elements))
		for i, el := range pat.Elements {
			elems[i] = inferPatternType(ctx, env, el)
		}
		return Tuple(elems)
	case ast.PatList:
		elem := ctx.Fresh()
		for _, el := range pat.Elements {
			et := inferPatternType(ctx, env, el)
			_, _ = Unify(ctx.Subst, elem, et)
		}
		if pat.RestName != "" {
			env.Define(pat.RestName, &TypeScheme{Body: List(elem)})
		}
		return List(elem)
	case ast.PatOr:
		var t *MonoType
		for _, alt := range pat.Alternatives {
			at := inferPatternType(ctx, env, alt)
			if t == nil {
				t = at
			}
		}
		return t
	case ast.PatAtBinding:
		t := inferPatternType(ctx, env, pat.Inner)
		if pat.Name != "" {
			env.Define(pat.Name, &TypeScheme{Body: t})
		}
		return t
	case ast.PatWithDefault:
		return inferPatternType(ctx, env, pat.Inner)
	case ast.PatSome:
		inner := ctx.Fresh()
		if pat.Inner != nil {
			inner = inferPatternType(ctx, env, pat.Inner)
		}
		return Optional(inner)
	case ast.PatNone:
		return Optional(ctx.Fresh())
	case ast.PatOk, ast.PatErr:
		ok, errT := ctx.Fresh(), ctx.Fresh()
		if pat.Inner != nil {
			if pat.Kind == ast.PatOk {
				ok = inferPatternType(ctx, env, pat.Inner)
			} else {
				errT = inferPatternType(ctx, env, pat.Inner)
			}
		}
		return Result(ok, errT)
	case ast.PatStruct:
		for _, f := range pat.Fields {
			if f.Pattern != nil {
				inferPatternType(ctx, env, f.Pattern)
			} else {
				env.Define(f.Name, &TypeScheme{Body: ctx.Fresh()})
			}
		}
		return Named(pat.StructName)
	case ast.PatQualifiedName:
		return ctx.Fresh()
	default:
		return ctx.Fresh()
	}
}

// inferFor emits an Iterable(container, element) constraint: the
// container's element type flows into the loop-variable binding, and
// the body is typed under that extended environment (spec §4.3).
func inferFor(ctx *InferenceContext, env *Env, n *ast.For) (*MonoType, error) {
	iterT, err := Infer(ctx, env, n.Iterable)
	if err != nil {
		return nil, err
	}
	elem := ctx.Fresh()
	if iterT.Kind == KList {
		elem = iterT.Elem
	} else {
		_ = ctx.unify(iterT, List(elem))
	}
	child := env.Child()
	bindPatternPrecise(child, n.Pattern, elem)
	if _, err := Infer(ctx, child, n.Body); err != nil {
		return nil, err
	}
	return Unit, nil
}

func bindPatternPrecise(env *Env, pat *ast.Pattern, t *MonoType) {
	if pat != nil && pat.Kind == ast.PatIdentifier && pat.Name != "_" {
		env.Define(pat.Name, &TypeScheme{Body: t})
		return
	}
}

func inferLoopLike(ctx *InferenceContext, env *Env, e ast.Expr) (*MonoType, error) {
	switch n := e.(type) {
	case *ast.While:
		condT, err := Infer(ctx, env, n.Condition)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(condT, Bool); err != nil {
			return nil, err
		}
		if _, err := Infer(ctx, env, n.Body); err != nil {
			return nil, err
		}
	case *ast.WhileLet:
		if _, err := Infer(ctx, env, n.Expr); err != nil {
			return nil, err
		}
		child := env.Child()
		bindPatternFresh(ctx, child, n.Pattern)
		if _, err := Infer(ctx, child, n.Body); err != nil {
			return nil, err
		}
	case *ast.Loop:
		if _, err := Infer(ctx, env, n.Body); err != nil {
			return nil, err
		}
	}
	return Unit, nil
}

func inferStringInterpolation(ctx *InferenceContext, env *Env, n *ast.StringInterpolation) (*MonoType, error) {
	for _, part := range n.Parts {
		if part.Expr != nil {
			if _, err := Infer(ctx, env, part.Expr); err != nil {
				return nil, err
			}
		}
	}
	return String, nil
}

func inferRange(ctx *InferenceContext, env *Env, n *ast.Range) (*MonoType, error) {
	startT, err := Infer(ctx, env, n.Start)
	if err != nil {
		return nil, err
	}
	if err := ctx.unify(startT, Int); err != nil {
		return nil, err
	}
	if n.End != nil {
		endT, err := Infer(ctx, env, n.End)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(endT, Int); err != nil {
			return nil, err
		}
	}
	return List(Int), nil
}

func inferTryCatch(ctx *InferenceContext, env *Env, n *ast.TryCatch) (*MonoType, error) {
	tryT, err := Infer(ctx, env, n.TryBlock)
	if err != nil {
		return nil, err
	}
	result := tryT
	for _, c := range n.Catches {
		child := env.Child()
		bindPatternFresh(ctx, child, c.Pattern)
		bodyT, err := Infer(ctx, child, c.Body)
		if err != nil {
			return nil, err
		}
		_, _ = Unify(ctx.Subst, result, bodyT)
	}
	if n.Finally != nil {
		if _, err := Infer(ctx, env, n.Finally); err != nil {
			return nil, err
		}
	}
	return ctx.Subst.Apply(result), nil
}

func inferPipeline(ctx *InferenceContext, env *Env, n *ast.Pipeline) (*MonoType, error) {
	leftT, err := Infer(ctx, env, n.Left)
	if err != nil {
		return nil, err
	}
	rightT, err := Infer(ctx, env, n.Right)
	if err != nil {
		return nil, err
	}
	ret := ctx.Fresh()
	expected := Function(leftT, ret)
	if err := ctx.unify(rightT, expected); err != nil {
		return nil, err
	}
	return ctx.Subst.Apply(ret), nil
}

// Resolve converts a syntactic ast.TypeExpr annotation into the
// inferencer's internal MonoType representation.
func Resolve(te *ast.TypeExpr) *MonoType {
	if te == nil {
		return Unit
	}
	switch te.Kind {
	case ast.TypeNamed:
		switch te.Name {
		case "i32", "i64", "int", "Int":
			return Int
		case "f32", "f64", "float", "Float":
			return Float
		case "bool", "Bool":
			return Bool
		case "String", "str", "string":
			return String
		case "char", "Char":
			return Char
		case "unit", "Unit", "()":
			return Unit
		default:
			return Named(te.Name)
		}
	case ast.TypeList:
		return List(Resolve(te.Elem))
	case ast.TypeTuple:
		elems := make([]*MonoType, len(te.Elements))
		for i, e := range te.Elements {
			elems[i] = Resolve(e)
		}
		return Tuple(elems)
	case ast.TypeOptional:
		return Optional(Resolve(te.Elem))
	case ast.TypeResult:
		return Result(Resolve(te.Ok), Resolve(te.Err))
	case ast.TypeFunction:
		ret := Resolve(te.Return)
		params := make([]*MonoType, len(te.Params))
		for i, p := range te.Params {
			params[i] = Resolve(p)
		}
		return rightAssocArrow(params, ret)
	case ast.TypeDataFrame:
		cols := make([]DataFrameColumn, len(te.Columns))
		for i, c := range te.Columns {
			cols[i] = DataFrameColumn{Name: c.Name, Type: Resolve(c.Type)}
		}
		return DataFrame(cols)
	default:
		return Unit
	}
}
