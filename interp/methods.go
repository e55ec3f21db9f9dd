package interp

import (
	"strings"

	"github.com/paiml/ruchy-sub004/ast"
)

// evalMethodCall dispatches `receiver.method(args)`. Class instances
// resolve against the class's __methods table (rejecting a static
// method called on an instance, per spec §4.4's dispatch rule); List
// and String receivers resolve against a small built-in method set
// (`map`, `filter`, `push`, ...) since the language has no way for user
// code to extend those types.
func (in *Interpreter) evalMethodCall(env *Environment, n *ast.MethodCall) (Value, error) {
	recv, err := in.eval(env, n.Receiver)
	if err != nil {
		return nil, err
	}
	if n.Optional {
		if _, isNil := recv.(Nil); isNil {
			return Nil{}, nil
		}
	}
	args, err := in.evalExprs(env, n.Args)
	if err != nil {
		return nil, err
	}

	switch r := recv.(type) {
	case *List:
		if v, ok, err := in.listMethod(r, n.Method, args); ok {
			return v, err
		}
	case String:
		if v, ok, err := stringMethod(r, n.Method, args); ok {
			return v, err
		}
	}

	className := classNameOf(recv)
	if className == "" {
		return nil, nameError("no method %q on %s", n.Method, recv.Type())
	}
	def := in.Classes[className]
	if def != nil {
		if m, ok := def.Methods[n.Method]; ok {
			if m.IsStatic {
				return nil, typeError("%q is a static method; call it on the class, not an instance", n.Method)
			}
			return in.callMethod(m.Fn, recv, args)
		}
	}
	if fn, ok := in.findMethod(className, n.Method); ok {
		return in.callMethod(fn, recv, args)
	}
	return nil, nameError("class %q has no method %q", className, n.Method)
}

func (in *Interpreter) listMethod(l *List, name string, args []Value) (Value, bool, error) {
	switch name {
	case "map":
		fn, err := oneCallableArg(args, "map")
		if err != nil {
			return nil, true, err
		}
		out := make([]Value, len(l.Elems))
		for i, e := range l.Elems {
			v, err := in.callValue(nil, fn, []Value{e})
			if err != nil {
				return nil, true, err
			}
			out[i] = v
		}
		return &List{Elems: out}, true, nil
	case "filter":
		fn, err := oneCallableArg(args, "filter")
		if err != nil {
			return nil, true, err
		}
		var out []Value
		for _, e := range l.Elems {
			v, err := in.callValue(nil, fn, []Value{e})
			if err != nil {
				return nil, true, err
			}
			if Truthy(v) {
				out = append(out, e)
			}
		}
		return &List{Elems: out}, true, nil
	case "reduce", "fold":
		if len(args) != 2 {
			return nil, true, valueError("%s expects 2 arguments, got %d", name, len(args))
		}
		acc := args[0]
		fn := args[1]
		for _, e := range l.Elems {
			v, err := in.callValue(nil, fn, []Value{acc, e})
			if err != nil {
				return nil, true, err
			}
			acc = v
		}
		return acc, true, nil
	case "forEach", "for_each":
		fn, err := oneCallableArg(args, name)
		if err != nil {
			return nil, true, err
		}
		for _, e := range l.Elems {
			if _, err := in.callValue(nil, fn, []Value{e}); err != nil {
				return nil, true, err
			}
		}
		return Unit{}, true, nil
	case "push":
		if len(args) != 1 {
			return nil, true, valueError("push expects 1 argument, got %d", len(args))
		}
		return &List{Elems: append(append([]Value{}, l.Elems...), args[0])}, true, nil
	case "len":
		return Integer(len(l.Elems)), true, nil
	case "first":
		if len(l.Elems) == 0 {
			return Nil{}, true, nil
		}
		return l.Elems[0], true, nil
	case "last":
		if len(l.Elems) == 0 {
			return Nil{}, true, nil
		}
		return l.Elems[len(l.Elems)-1], true, nil
	case "contains":
		if len(args) != 1 {
			return nil, true, valueError("contains expects 1 argument, got %d", len(args))
		}
		for _, e := range l.Elems {
			if ValuesEqual(e, args[0]) {
				return Bool(true), true, nil
			}
		}
		return Bool(false), true, nil
	case "reverse":
		out := make([]Value, len(l.Elems))
		for i, e := range l.Elems {
			out[len(l.Elems)-1-i] = e
		}
		return &List{Elems: out}, true, nil
	case "join":
		sep := ""
		if len(args) == 1 {
			s, ok := args[0].(String)
			if !ok {
				return nil, true, typeError("join expects a String separator")
			}
			sep = string(s)
		}
		parts := make([]string, len(l.Elems))
		for i, e := range l.Elems {
			parts[i] = e.String()
		}
		return String(strings.Join(parts, sep)), true, nil
	default:
		return nil, false, nil
	}
}

func oneCallableArg(args []Value, name string) (Value, error) {
	if len(args) != 1 {
		return nil, valueError("%s expects 1 argument, got %d", name, len(args))
	}
	return args[0], nil
}

func stringMethod(s String, name string, args []Value) (Value, bool, error) {
	str := string(s)
	switch name {
	case "len":
		return Integer(len([]rune(str))), true, nil
	case "to_upper", "toUpperCase":
		return String(strings.ToUpper(str)), true, nil
	case "to_lower", "toLowerCase":
		return String(strings.ToLower(str)), true, nil
	case "trim":
		return String(strings.TrimSpace(str)), true, nil
	case "split":
		sep := ""
		if len(args) == 1 {
			a, ok := args[0].(String)
			if !ok {
				return nil, true, typeError("split expects a String separator")
			}
			sep = string(a)
		}
		var parts []string
		if sep == "" {
			parts = strings.Fields(str)
		} else {
			parts = strings.Split(str, sep)
		}
		elems := make([]Value, len(parts))
		for i, p := range parts {
			elems[i] = String(p)
		}
		return &List{Elems: elems}, true, nil
	case "contains":
		a, err := oneStringArg(args, "contains")
		if err != nil {
			return nil, true, err
		}
		return Bool(strings.Contains(str, a)), true, nil
	case "starts_with":
		a, err := oneStringArg(args, "starts_with")
		if err != nil {
			return nil, true, err
		}
		return Bool(strings.HasPrefix(str, a)), true, nil
	case "ends_with":
		a, err := oneStringArg(args, "ends_with")
		if err != nil {
			return nil, true, err
		}
		return Bool(strings.HasSuffix(str, a)), true, nil
	case "replace":
		if len(args) != 2 {
			return nil, true, valueError("replace expects 2 arguments, got %d", len(args))
		}
		from, ok1 := args[0].(String)
		to, ok2 := args[1].(String)
		if !ok1 || !ok2 {
			return nil, true, typeError("replace expects two String arguments")
		}
		return String(strings.ReplaceAll(str, string(from), string(to))), true, nil
	default:
		return nil, false, nil
	}
}

func oneStringArg(args []Value, name string) (string, error) {
	if len(args) != 1 {
		return "", valueError("%s expects 1 argument, got %d", name, len(args))
	}
	s, ok := args[0].(String)
	if !ok {
		return "", typeError("%s expects a String argument", name)
	}
	return string(s), nil
}
