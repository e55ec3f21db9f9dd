package interp

import (
	"io"
	"os"

	"github.com/paiml/ruchy-sub004/ast"
)

// Interpreter is the tree-walking evaluator: a global Environment, the
// built-in table, and the class/trait/enum definitions accumulated as
// top-level declarations are evaluated. One Interpreter corresponds to
// one REPL Session (see session.go) or one script run.
type Interpreter struct {
	Global  *Environment
	Stdout  io.Writer
	cfg     config
	Classes map[string]*ClassDef
	Structs map[string]*ast.Struct
	Traits  map[string]*ast.Trait
	Actors  map[string]*ActorDef
	Enums   map[string]*ast.Enum
}

// New builds an Interpreter with builtins installed and stdout
// defaulted to os.Stdout, applying opts afterward.
func New(opts ...Option) *Interpreter {
	cfg := config{stdout: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}
	interp := &Interpreter{
		Global:  NewEnvironment(),
		Stdout:  cfg.stdout,
		cfg:     cfg,
		Classes: map[string]*ClassDef{},
		Structs: map[string]*ast.Struct{},
		Traits:  map[string]*ast.Trait{},
		Actors:  map[string]*ActorDef{},
		Enums:   map[string]*ast.Enum{},
	}
	registerBuiltins(interp.Global)
	return interp
}

// Run evaluates every top-level expression of prog in sequence against
// the Interpreter's global environment, returning the last value (Unit
// for an empty program).
func (in *Interpreter) Run(prog *ast.Program) (Value, error) {
	var last Value = Unit{}
	for _, e := range prog.Exprs {
		v, err := in.eval(in.Global, e)
		if err != nil {
			return nil, unwrapTopLevel(err)
		}
		last = v
	}
	return last, nil
}

// unwrapTopLevel turns a stray break/continue/return signal that
// escaped every enclosing loop/function into a RuntimeError, the way a
// top-level `return` or `break` is diagnosed rather than silently
// swallowed.
func unwrapTopLevel(err error) error {
	switch err.(type) {
	case *breakSignal:
		return newRuntimeError("SyntaxError", "break outside of a loop")
	case *continueSignal:
		return newRuntimeError("SyntaxError", "continue outside of a loop")
	case *returnSignal:
		return newRuntimeError("SyntaxError", "return outside of a function")
	default:
		return err
	}
}

// eval is the single dispatch point, mirroring parser.parsePrefix's
// one-switch structure: every ast.Expr variant has exactly one case
// here (or falls into the class.go/actor.go helpers for the
// declaration-shaped nodes).
func (in *Interpreter) eval(env *Environment, e ast.Expr) (Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return evalLiteral(n), nil
	case *ast.Identifier:
		return in.resolveIdentifier(env, n.Name)
	case *ast.Binary:
		return in.evalBinary(env, n)
	case *ast.Unary:
		return in.evalUnary(env, n)
	case *ast.Let:
		return in.evalLet(env, n)
	case *ast.LetPattern:
		return in.evalLetPattern(env, n)
	case *ast.Block:
		return in.evalBlock(env, n)
	case *ast.If:
		return in.evalIf(env, n)
	case *ast.IfLet:
		return in.evalIfLet(env, n)
	case *ast.Match:
		return in.evalMatch(env, n)
	case *ast.While:
		return in.evalWhile(env, n)
	case *ast.WhileLet:
		return in.evalWhileLet(env, n)
	case *ast.For:
		return in.evalFor(env, n)
	case *ast.Loop:
		return in.evalLoop(env, n)
	case *ast.Break:
		var v Value = Unit{}
		if n.Value != nil {
			var err error
			v, err = in.eval(env, n.Value)
			if err != nil {
				return nil, err
			}
		}
		return nil, &breakSignal{Value: v}
	case *ast.Continue:
		return nil, &continueSignal{}
	case *ast.Return:
		var v Value = Unit{}
		if n.Value != nil {
			var err error
			v, err = in.eval(env, n.Value)
			if err != nil {
				return nil, err
			}
		}
		return nil, &returnSignal{Value: v}
	case *ast.Function:
		fn := &Closure{Name: n.Name, Params: n.Params, Body: n.Body, Env: env, IsAsync: n.IsAsync}
		env.Define(n.Name, fn)
		return Unit{}, nil
	case *ast.Lambda:
		return &Closure{Params: n.Params, Body: n.Body, Env: env}, nil
	case *ast.Call:
		return in.evalCall(env, n)
	case *ast.MethodCall:
		return in.evalMethodCall(env, n)
	case *ast.FieldAccess:
		return in.evalFieldAccess(env, n)
	case *ast.IndexAccess:
		return in.evalIndexAccess(env, n)
	case *ast.List:
		return in.evalList(env, n)
	case *ast.Tuple:
		elems, err := in.evalExprs(env, n.Elements)
		if err != nil {
			return nil, err
		}
		return &Tuple{Elems: elems}, nil
	case *ast.StringInterpolation:
		return in.evalStringInterpolation(env, n)
	case *ast.Range:
		return in.evalRange(env, n)
	case *ast.Spread:
		return in.eval(env, n.Value)
	case *ast.Pipeline:
		return in.evalPipeline(env, n)
	case *ast.Assign:
		return in.evalAssign(env, n)
	case *ast.IncDec:
		return in.evalIncDec(env, n)
	case *ast.StructLiteral:
		return in.evalStructLiteral(env, n)
	case *ast.Class:
		in.defineClass(n)
		env.Define(n.Name, in.Classes[n.Name].AsObject())
		return Unit{}, nil
	case *ast.Struct:
		in.Structs[n.Name] = n
		return Unit{}, nil
	case *ast.Trait:
		in.Traits[n.Name] = n
		return Unit{}, nil
	case *ast.Impl:
		in.applyImpl(n)
		return Unit{}, nil
	case *ast.Enum:
		in.Enums[n.Name] = n
		in.defineEnumConstructors(env, n)
		return Unit{}, nil
	case *ast.Actor:
		in.defineActor(n)
		return Unit{}, nil
	case *ast.Spawn:
		return in.evalSpawn(env, n)
	case *ast.Send:
		return in.evalSend(env, n)
	case *ast.Effect:
		return Unit{}, nil
	case *ast.Handle:
		return in.eval(env, n.Body)
	case *ast.TryCatch:
		return in.evalTryCatch(env, n)
	case *ast.Throw:
		v, err := in.eval(env, n.Value)
		if err != nil {
			return nil, err
		}
		return nil, &ThrownValue{Value: v}
	case *ast.Await:
		return in.eval(env, n.Value)
	case *ast.Module:
		return in.eval(env, n.Body)
	case *ast.Import, *ast.ImportAll, *ast.ImportDefault:
		return Unit{}, nil
	default:
		return nil, newRuntimeError("InternalError", "unhandled expression node %T", e)
	}
}

func evalLiteral(n *ast.Literal) Value {
	switch n.Value.Kind {
	case ast.LitInt:
		return Integer(n.Value.Int)
	case ast.LitFloat:
		return Float(n.Value.Float)
	case ast.LitBool:
		return Bool(n.Value.Bool)
	case ast.LitString:
		return String(n.Value.Str)
	case ast.LitChar:
		return Char(n.Value.Char)
	case ast.LitNil:
		return Nil{}
	default:
		return Unit{}
	}
}

func (in *Interpreter) evalExprs(env *Environment, exprs []ast.Expr) ([]Value, error) {
	out := make([]Value, 0, len(exprs))
	for _, e := range exprs {
		if spread, ok := e.(*ast.Spread); ok {
			v, err := in.eval(env, spread.Value)
			if err != nil {
				return nil, err
			}
			list, ok := v.(*List)
			if !ok {
				return nil, typeError("spread requires a List, got %s", v.Type())
			}
			out = append(out, list.Elems...)
			continue
		}
		v, err := in.eval(env, e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (in *Interpreter) evalLet(env *Environment, n *ast.Let) (Value, error) {
	v, err := in.eval(env, n.Value)
	if err != nil {
		return nil, err
	}
	if isUnitBody(n.Body) {
		env.Define(n.Name, v)
		return Unit{}, nil
	}
	child := NewEnclosedEnvironment(env)
	child.Define(n.Name, v)
	return in.eval(child, n.Body)
}

func (in *Interpreter) evalLetPattern(env *Environment, n *ast.LetPattern) (Value, error) {
	v, err := in.eval(env, n.Value)
	if err != nil {
		return nil, err
	}
	if isUnitBody(n.Body) {
		if !matchPattern(env, n.Pattern, v) {
			return nil, valueError("pattern did not match let binding")
		}
		return Unit{}, nil
	}
	child := NewEnclosedEnvironment(env)
	if !matchPattern(child, n.Pattern, v) {
		return nil, valueError("pattern did not match let binding")
	}
	return in.eval(child, n.Body)
}

func isUnitBody(e ast.Expr) bool {
	lit, ok := e.(*ast.Literal)
	return ok && lit.Value.Kind == ast.LitUnit
}

// evalBlock evaluates every sub-expression in sequence within env
// itself — no child frame is pushed, so a statement-level `let` inside
// the block remains visible to later siblings, matching the
// inferencer's inferBlock.
func (in *Interpreter) evalBlock(env *Environment, n *ast.Block) (Value, error) {
	var last Value = Unit{}
	for _, sub := range n.Exprs {
		v, err := in.eval(env, sub)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (in *Interpreter) evalIf(env *Environment, n *ast.If) (Value, error) {
	cond, err := in.eval(env, n.Condition)
	if err != nil {
		return nil, err
	}
	if Truthy(cond) {
		return in.eval(NewEnclosedEnvironment(env), n.Then)
	}
	if n.Else != nil {
		return in.eval(NewEnclosedEnvironment(env), n.Else)
	}
	return Unit{}, nil
}

func (in *Interpreter) evalIfLet(env *Environment, n *ast.IfLet) (Value, error) {
	v, err := in.eval(env, n.Expr)
	if err != nil {
		return nil, err
	}
	child := NewEnclosedEnvironment(env)
	if matchPattern(child, n.Pattern, v) {
		return in.eval(child, n.Then)
	}
	if n.Else != nil {
		return in.eval(NewEnclosedEnvironment(env), n.Else)
	}
	return Unit{}, nil
}

func (in *Interpreter) evalMatch(env *Environment, n *ast.Match) (Value, error) {
	scrutinee, err := in.eval(env, n.Scrutinee)
	if err != nil {
		return nil, err
	}
	for _, arm := range n.Arms {
		child := NewEnclosedEnvironment(env)
		if !matchPattern(child, arm.Pattern, scrutinee) {
			continue
		}
		if arm.Guard != nil {
			g, err := in.eval(child, arm.Guard)
			if err != nil {
				return nil, err
			}
			if !Truthy(g) {
				continue
			}
		}
		return in.eval(child, arm.Body)
	}
	if in.cfg.nonExhaustiveMatchIsUnit {
		return Unit{}, nil
	}
	return nil, newRuntimeError("NonExhaustiveMatch", "no arm of this match matched %s", scrutinee.String())
}

func (in *Interpreter) evalWhile(env *Environment, n *ast.While) (Value, error) {
	for {
		cond, err := in.eval(env, n.Condition)
		if err != nil {
			return nil, err
		}
		if !Truthy(cond) {
			return Unit{}, nil
		}
		if _, err := in.eval(NewEnclosedEnvironment(env), n.Body); err != nil {
			if stop, v := handleLoopSignal(err, n.Label); stop {
				return v, nil
			} else if err != nil && !isContinue(err, n.Label) {
				return nil, err
			}
		}
	}
}

func (in *Interpreter) evalWhileLet(env *Environment, n *ast.WhileLet) (Value, error) {
	for {
		v, err := in.eval(env, n.Expr)
		if err != nil {
			return nil, err
		}
		child := NewEnclosedEnvironment(env)
		if !matchPattern(child, n.Pattern, v) {
			return Unit{}, nil
		}
		if _, err := in.eval(child, n.Body); err != nil {
			if stop, ret := handleLoopSignal(err, n.Label); stop {
				return ret, nil
			} else if err != nil && !isContinue(err, n.Label) {
				return nil, err
			}
		}
	}
}

func (in *Interpreter) evalFor(env *Environment, n *ast.For) (Value, error) {
	iterable, err := in.eval(env, n.Iterable)
	if err != nil {
		return nil, err
	}
	elems, err := iterableElems(iterable)
	if err != nil {
		return nil, err
	}
	for _, elem := range elems {
		child := NewEnclosedEnvironment(env)
		matchPattern(child, n.Pattern, elem)
		if _, err := in.eval(child, n.Body); err != nil {
			if stop, ret := handleLoopSignal(err, n.Label); stop {
				return ret, nil
			} else if err != nil && !isContinue(err, n.Label) {
				return nil, err
			}
		}
	}
	return Unit{}, nil
}

func (in *Interpreter) evalLoop(env *Environment, n *ast.Loop) (Value, error) {
	for {
		if _, err := in.eval(NewEnclosedEnvironment(env), n.Body); err != nil {
			if stop, ret := handleLoopSignal(err, n.Label); stop {
				return ret, nil
			} else if err != nil && !isContinue(err, n.Label) {
				return nil, err
			}
		}
	}
}

// handleLoopSignal reports whether err is a breakSignal (stop == true,
// with its carried value), leaving continueSignal and any other error
// for the caller to deal with. The label is not consulted: any break or
// continue, labelled or not, acts on the innermost enclosing loop.
func handleLoopSignal(err error, label string) (stop bool, value Value) {
	if b, ok := err.(*breakSignal); ok {
		return true, b.Value
	}
	return false, nil
}

func isContinue(err error, label string) bool {
	_, ok := err.(*continueSignal)
	return ok
}

func iterableElems(v Value) ([]Value, error) {
	switch it := v.(type) {
	case *List:
		return it.Elems, nil
	case *Tuple:
		return it.Elems, nil
	case String:
		runes := []rune(string(it))
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = Char(r)
		}
		return out, nil
	case *RangeValue:
		return it.Elems(), nil
	default:
		return nil, typeError("%s is not iterable", v.Type())
	}
}

func (in *Interpreter) evalList(env *Environment, n *ast.List) (Value, error) {
	elems, err := in.evalExprs(env, n.Elements)
	if err != nil {
		return nil, err
	}
	return &List{Elems: elems}, nil
}

func (in *Interpreter) evalRange(env *Environment, n *ast.Range) (Value, error) {
	start, err := in.eval(env, n.Start)
	if err != nil {
		return nil, err
	}
	end, err := in.eval(env, n.End)
	if err != nil {
		return nil, err
	}
	lo, ok1 := start.(Integer)
	hi, ok2 := end.(Integer)
	if !ok1 || !ok2 {
		return nil, typeError("range bounds must be Integer")
	}
	return &RangeValue{Start: lo, End: hi, Inclusive: n.Inclusive}, nil
}

// RangeValue is the lazily-describable `a..b` / `a..=b` value; Elems
// materializes it for iteration (`for`) or indexing.
type RangeValue struct {
	Start     Integer
	End       Integer
	Inclusive bool
}

func (*RangeValue) Type() string { return "Range" }
func (r *RangeValue) String() string {
	if r.Inclusive {
		return fmt2(r.Start) + "..=" + fmt2(r.End)
	}
	return fmt2(r.Start) + ".." + fmt2(r.End)
}

func fmt2(i Integer) string { return i.String() }

func (r *RangeValue) Elems() []Value {
	hi := int64(r.End)
	if r.Inclusive {
		hi++
	}
	out := make([]Value, 0, hi-int64(r.Start))
	for n := int64(r.Start); n < hi; n++ {
		out = append(out, Integer(n))
	}
	return out
}

func (in *Interpreter) evalStringInterpolation(env *Environment, n *ast.StringInterpolation) (Value, error) {
	var b []byte
	for _, part := range n.Parts {
		switch part.Kind {
		case ast.PartText:
			b = append(b, part.Text...)
		case ast.PartExpr, ast.PartExprWithFormat:
			v, err := in.eval(env, part.Expr)
			if err != nil {
				return nil, err
			}
			text, err := applyFormatSpec(v, part.FormatSpec)
			if err != nil {
				return nil, err
			}
			b = append(b, text...)
		}
	}
	return String(b), nil
}

func (in *Interpreter) evalPipeline(env *Environment, n *ast.Pipeline) (Value, error) {
	left, err := in.eval(env, n.Left)
	if err != nil {
		return nil, err
	}
	fn, err := in.eval(env, n.Right)
	if err != nil {
		return nil, err
	}
	return in.callValue(env, fn, []Value{left})
}

func (in *Interpreter) evalStructLiteral(env *Environment, n *ast.StructLiteral) (Value, error) {
	fields := map[string]Value{}
	for _, f := range n.Fields {
		if f.Value == nil {
			v, ok := env.Get(f.Name)
			if !ok {
				return nil, nameError("no binding %q in scope for struct-literal shorthand", f.Name)
			}
			fields[f.Name] = v
			continue
		}
		v, err := in.eval(env, f.Value)
		if err != nil {
			return nil, err
		}
		fields[f.Name] = v
	}
	if cls, ok := in.Classes[n.Name]; ok {
		return in.instantiateWithFields(cls, fields)
	}
	return NewObject(fields), nil
}
