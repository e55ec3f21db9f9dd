package interp

import (
	"github.com/paiml/ruchy-sub004/ast"
)

func (in *Interpreter) evalBinary(env *Environment, n *ast.Binary) (Value, error) {
	left, err := in.eval(env, n.Left)
	if err != nil {
		return nil, err
	}
	// Short-circuit operators evaluate Right only when needed.
	if n.Op == ast.OpAnd {
		if !Truthy(left) {
			return Bool(false), nil
		}
		right, err := in.eval(env, n.Right)
		if err != nil {
			return nil, err
		}
		return Bool(Truthy(right)), nil
	}
	if n.Op == ast.OpOr {
		if Truthy(left) {
			return Bool(true), nil
		}
		right, err := in.eval(env, n.Right)
		if err != nil {
			return nil, err
		}
		return Bool(Truthy(right)), nil
	}
	if n.Op == ast.OpCoalesce {
		if _, isNil := left.(Nil); !isNil {
			return left, nil
		}
		return in.eval(env, n.Right)
	}

	right, err := in.eval(env, n.Right)
	if err != nil {
		return nil, err
	}
	return applyBinary(n.Op, left, right)
}

func applyBinary(op ast.BinaryOp, left, right Value) (Value, error) {
	switch op {
	case ast.OpEq:
		return Bool(ValuesEqual(left, right)), nil
	case ast.OpNotEq:
		return Bool(!ValuesEqual(left, right)), nil
	case ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq:
		return compareOp(op, left, right)
	}
	if ls, ok := left.(String); ok && op == ast.OpAdd {
		rs, ok := right.(String)
		if !ok {
			return nil, typeError("cannot add String and %s", right.Type())
		}
		return ls + rs, nil
	}
	if ll, ok := left.(*List); ok && op == ast.OpAdd {
		rl, ok := right.(*List)
		if !ok {
			return nil, typeError("cannot add List and %s", right.Type())
		}
		return &List{Elems: append(append([]Value{}, ll.Elems...), rl.Elems...)}, nil
	}
	return arithOp(op, left, right)
}

func compareOp(op ast.BinaryOp, left, right Value) (Value, error) {
	less, err := lessThan(left, right)
	if err != nil {
		return nil, err
	}
	eq := ValuesEqual(left, right)
	switch op {
	case ast.OpLt:
		return Bool(less), nil
	case ast.OpLtEq:
		return Bool(less || eq), nil
	case ast.OpGt:
		return Bool(!less && !eq), nil
	case ast.OpGtEq:
		return Bool(!less), nil
	}
	return nil, typeError("unsupported comparison operator %s", op)
}

// arithOp implements spec §4.3's strict-coercion policy: Integer and
// Float never mix implicitly. Both operands must already share a
// numeric type (the type checker is expected to have rejected a
// mismatched program before this ever runs interactively without
// inference).
func arithOp(op ast.BinaryOp, left, right Value) (Value, error) {
	switch l := left.(type) {
	case Integer:
		r, ok := right.(Integer)
		if !ok {
			return nil, typeError("cannot apply %s between Integer and %s", op, right.Type())
		}
		return integerOp(op, l, r)
	case Float:
		r, ok := right.(Float)
		if !ok {
			return nil, typeError("cannot apply %s between Float and %s", op, right.Type())
		}
		return floatOp(op, l, r)
	default:
		return nil, typeError("%s does not support %s", left.Type(), op)
	}
}

func integerOp(op ast.BinaryOp, l, r Integer) (Value, error) {
	switch op {
	case ast.OpAdd:
		return l + r, nil
	case ast.OpSub:
		return l - r, nil
	case ast.OpMul:
		return l * r, nil
	case ast.OpDiv:
		if r == 0 {
			return nil, valueError("division by zero")
		}
		return l / r, nil
	case ast.OpMod:
		if r == 0 {
			return nil, valueError("division by zero")
		}
		return l % r, nil
	case ast.OpPow:
		return integerPow(l, r), nil
	case ast.OpBitAnd:
		return l & r, nil
	case ast.OpBitOr:
		return l | r, nil
	case ast.OpBitXor:
		return l ^ r, nil
	case ast.OpShl:
		return l << uint(r), nil
	case ast.OpShr:
		return l >> uint(r), nil
	default:
		return nil, typeError("unsupported Integer operator %s", op)
	}
}

func integerPow(base, exp Integer) Integer {
	if exp < 0 {
		return 0
	}
	result := Integer(1)
	for ; exp > 0; exp-- {
		result *= base
	}
	return result
}

func floatOp(op ast.BinaryOp, l, r Float) (Value, error) {
	switch op {
	case ast.OpAdd:
		return l + r, nil
	case ast.OpSub:
		return l - r, nil
	case ast.OpMul:
		return l * r, nil
	case ast.OpDiv:
		return l / r, nil
	default:
		return nil, typeError("unsupported Float operator %s", op)
	}
}

func (in *Interpreter) evalUnary(env *Environment, n *ast.Unary) (Value, error) {
	v, err := in.eval(env, n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNeg:
		switch x := v.(type) {
		case Integer:
			return -x, nil
		case Float:
			return -x, nil
		default:
			return nil, typeError("cannot negate %s", v.Type())
		}
	case ast.OpNot:
		return Bool(!Truthy(v)), nil
	case ast.OpAwait:
		return v, nil
	default:
		return nil, typeError("unsupported unary operator %s", n.Op)
	}
}

func (in *Interpreter) evalCall(env *Environment, n *ast.Call) (Value, error) {
	fn, err := in.eval(env, n.Func)
	if err != nil {
		return nil, err
	}
	args, err := in.evalExprs(env, n.Args)
	if err != nil {
		return nil, err
	}
	return in.callValue(env, fn, args)
}

func (in *Interpreter) callValue(env *Environment, fn Value, args []Value) (Value, error) {
	switch f := fn.(type) {
	case *BuiltinFunction:
		return f.Fn(in, args)
	case *Closure:
		return in.callClosure(f, args)
	default:
		return nil, typeError("%s is not callable", fn.Type())
	}
}

// callClosure binds args to f.Params (applying defaults and absorbing
// a trailing variadic parameter into a List) in a frame enclosed by
// the closure's captured Env, then evaluates the body there, unwrapping
// a returnSignal into a plain value.
func (in *Interpreter) callClosure(f *Closure, args []Value) (Value, error) {
	frame := NewEnclosedEnvironment(f.Env)
	if err := bindParams(in, frame, f.Params, args); err != nil {
		return nil, err
	}
	v, err := in.eval(frame, f.Body)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			return ret.Value, nil
		}
		return nil, err
	}
	return v, nil
}

func bindParams(in *Interpreter, frame *Environment, params []ast.Param, args []Value) error {
	variadic := false
	for _, p := range params {
		if p.IsVariadic {
			variadic = true
			break
		}
	}
	if !variadic && len(args) > len(params) {
		return valueError("expected %d argument(s), got %d", len(params), len(args))
	}
	for i, p := range params {
		if p.IsVariadic {
			rest := append([]Value{}, args[i:]...)
			frame.Define(p.Name, &List{Elems: rest})
			return nil
		}
		if i < len(args) {
			frame.Define(p.Name, args[i])
			continue
		}
		if p.Default != nil {
			v, err := in.eval(frame, p.Default)
			if err != nil {
				return err
			}
			frame.Define(p.Name, v)
			continue
		}
		return valueError("missing argument %q", p.Name)
	}
	return nil
}

func (in *Interpreter) evalFieldAccess(env *Environment, n *ast.FieldAccess) (Value, error) {
	recv, err := in.eval(env, n.Receiver)
	if err != nil {
		return nil, err
	}
	if n.Optional {
		if _, isNil := recv.(Nil); isNil {
			return Nil{}, nil
		}
	}
	fields, ok := objectFields(recv)
	if !ok {
		return nil, typeError("%s has no field %q", recv.Type(), n.Field)
	}
	v, present := fields[n.Field]
	if !present {
		return nil, nameError("no field %q on %s", n.Field, recv.Type())
	}
	return v, nil
}

func (in *Interpreter) evalIndexAccess(env *Environment, n *ast.IndexAccess) (Value, error) {
	recv, err := in.eval(env, n.Receiver)
	if err != nil {
		return nil, err
	}
	idx, err := in.eval(env, n.Index)
	if err != nil {
		return nil, err
	}
	switch r := recv.(type) {
	case *List:
		i, ok := idx.(Integer)
		if !ok {
			return nil, typeError("List index must be an Integer")
		}
		if int(i) < 0 || int(i) >= len(r.Elems) {
			return nil, indexError("index %d out of bounds for a List of length %d", i, len(r.Elems))
		}
		return r.Elems[i], nil
	case *Tuple:
		i, ok := idx.(Integer)
		if !ok {
			return nil, typeError("Tuple index must be an Integer")
		}
		if int(i) < 0 || int(i) >= len(r.Elems) {
			return nil, indexError("index %d out of bounds for a Tuple of length %d", i, len(r.Elems))
		}
		return r.Elems[i], nil
	case String:
		i, ok := idx.(Integer)
		if !ok {
			return nil, typeError("String index must be an Integer")
		}
		runes := []rune(string(r))
		if int(i) < 0 || int(i) >= len(runes) {
			return nil, indexError("index %d out of bounds for a String of length %d", i, len(runes))
		}
		return Char(runes[i]), nil
	default:
		return nil, typeError("%s is not indexable", recv.Type())
	}
}

func (in *Interpreter) evalAssign(env *Environment, n *ast.Assign) (Value, error) {
	rhs, err := in.eval(env, n.Value)
	if err != nil {
		return nil, err
	}
	switch target := n.Target.(type) {
	case *ast.Identifier:
		if n.Op != ast.AssignPlain {
			cur, ok := env.Get(target.Name)
			if !ok {
				return nil, nameError("undefined name %q", target.Name)
			}
			rhs, err = applyBinary(compoundOp(n.Op), cur, rhs)
			if err != nil {
				return nil, err
			}
		}
		if !env.Set(target.Name, rhs) {
			return nil, nameError("undefined name %q", target.Name)
		}
		return rhs, nil
	case *ast.FieldAccess:
		recv, err := in.eval(env, target.Receiver)
		if err != nil {
			return nil, err
		}
		if n.Op != ast.AssignPlain {
			fields, ok := objectFields(recv)
			cur, present := fields[target.Field]
			if !ok || !present {
				return nil, nameError("no field %q on %s", target.Field, recv.Type())
			}
			rhs, err = applyBinary(compoundOp(n.Op), cur, rhs)
			if err != nil {
				return nil, err
			}
		}
		if err := setField(recv, target.Field, rhs); err != nil {
			return nil, err
		}
		return rhs, nil
	case *ast.IndexAccess:
		recv, err := in.eval(env, target.Receiver)
		if err != nil {
			return nil, err
		}
		idx, err := in.eval(env, target.Index)
		if err != nil {
			return nil, err
		}
		list, ok := recv.(*List)
		if !ok {
			return nil, typeError("cannot index-assign into %s", recv.Type())
		}
		i, ok := idx.(Integer)
		if !ok || int(i) < 0 || int(i) >= len(list.Elems) {
			return nil, indexError("index assignment out of bounds")
		}
		list.Elems[i] = rhs
		return rhs, nil
	default:
		return nil, typeError("invalid assignment target")
	}
}

func compoundOp(op ast.AssignOp) ast.BinaryOp {
	switch op {
	case ast.AssignAdd:
		return ast.OpAdd
	case ast.AssignSub:
		return ast.OpSub
	case ast.AssignMul:
		return ast.OpMul
	case ast.AssignDiv:
		return ast.OpDiv
	default:
		return ast.OpAdd
	}
}

func setField(recv Value, field string, v Value) error {
	switch r := recv.(type) {
	case *ObjectMut:
		r.Set(field, v)
		return nil
	case *ClassInstance:
		r.Set(field, v)
		return nil
	case *Object:
		r.Fields[field] = v
		return nil
	default:
		return typeError("%s has no mutable field %q", recv.Type(), field)
	}
}

func (in *Interpreter) evalIncDec(env *Environment, n *ast.IncDec) (Value, error) {
	ident, ok := n.Operand.(*ast.Identifier)
	if !ok {
		return nil, typeError("++/-- requires an identifier operand")
	}
	cur, ok := env.Get(ident.Name)
	if !ok {
		return nil, nameError("undefined name %q", ident.Name)
	}
	i, ok := cur.(Integer)
	if !ok {
		return nil, typeError("++/-- requires an Integer, got %s", cur.Type())
	}
	var next Integer
	switch n.Kind_ {
	case ast.PreIncrement, ast.PostIncrement:
		next = i + 1
	case ast.PreDecrement, ast.PostDecrement:
		next = i - 1
	}
	env.Set(ident.Name, next)
	switch n.Kind_ {
	case ast.PreIncrement, ast.PreDecrement:
		return next, nil
	default:
		return i, nil
	}
}
