package interp

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// registerBuiltins installs the small intrinsic set spec §4.3's
// Prelude reserves names for, matching types.Prelude's name list plus
// the string/list/math helpers the linter exempts from unused/unknown
// checks. Each is a *BuiltinFunction Value so user code calls them
// exactly like any other function value.
func registerBuiltins(env *Environment) {
	define := func(name string, fn func(i *Interpreter, args []Value) (Value, error)) {
		env.Define(name, &BuiltinFunction{Name: name, Fn: fn})
	}

	define("println", func(i *Interpreter, args []Value) (Value, error) {
		fmt.Fprintln(i.Stdout, joinArgs(args))
		return Unit{}, nil
	})
	define("print", func(i *Interpreter, args []Value) (Value, error) {
		fmt.Fprint(i.Stdout, joinArgs(args))
		return Unit{}, nil
	})
	define("len", func(i *Interpreter, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, valueError("len expects 1 argument, got %d", len(args))
		}
		switch v := args[0].(type) {
		case String:
			return Integer(len([]rune(string(v)))), nil
		case *List:
			return Integer(len(v.Elems)), nil
		case *Tuple:
			return Integer(len(v.Elems)), nil
		default:
			return nil, typeError("len is not defined for %s", v.Type())
		}
	})
	define("range", func(i *Interpreter, args []Value) (Value, error) {
		var lo, hi int64
		switch len(args) {
		case 1:
			n, ok := args[0].(Integer)
			if !ok {
				return nil, typeError("range expects Integer arguments")
			}
			hi = int64(n)
		case 2:
			loV, ok1 := args[0].(Integer)
			hiV, ok2 := args[1].(Integer)
			if !ok1 || !ok2 {
				return nil, typeError("range expects Integer arguments")
			}
			lo, hi = int64(loV), int64(hiV)
		default:
			return nil, valueError("range expects 1 or 2 arguments, got %d", len(args))
		}
		elems := make([]Value, 0, hi-lo)
		for n := lo; n < hi; n++ {
			elems = append(elems, Integer(n))
		}
		return &List{Elems: elems}, nil
	})
	define("push", func(i *Interpreter, args []Value) (Value, error) {
		if len(args) != 2 {
			return nil, valueError("push expects 2 arguments, got %d", len(args))
		}
		list, ok := args[0].(*List)
		if !ok {
			return nil, typeError("push expects a List as its first argument")
		}
		out := append(append([]Value{}, list.Elems...), args[1])
		return &List{Elems: out}, nil
	})
	define("abs", func(i *Interpreter, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, valueError("abs expects 1 argument, got %d", len(args))
		}
		switch n := args[0].(type) {
		case Integer:
			if n < 0 {
				return -n, nil
			}
			return n, nil
		case Float:
			return Float(math.Abs(float64(n))), nil
		default:
			return nil, typeError("abs is not defined for %s", n.Type())
		}
	})
	define("sqrt", func(i *Interpreter, args []Value) (Value, error) {
		n, err := requireFloat(args, "sqrt")
		if err != nil {
			return nil, err
		}
		return Float(math.Sqrt(n)), nil
	})
	define("floor", func(i *Interpreter, args []Value) (Value, error) {
		n, err := requireFloat(args, "floor")
		if err != nil {
			return nil, err
		}
		return Float(math.Floor(n)), nil
	})
	define("ceil", func(i *Interpreter, args []Value) (Value, error) {
		n, err := requireFloat(args, "ceil")
		if err != nil {
			return nil, err
		}
		return Float(math.Ceil(n)), nil
	})
	define("to_string", func(i *Interpreter, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, valueError("to_string expects 1 argument, got %d", len(args))
		}
		return String(args[0].String()), nil
	})
	define("parse_int", func(i *Interpreter, args []Value) (Value, error) {
		s, err := requireString(args, "parse_int")
		if err != nil {
			return nil, err
		}
		n, perr := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if perr != nil {
			return nil, valueError("cannot parse %q as an Integer", s)
		}
		return Integer(n), nil
	})
	define("sorted", func(i *Interpreter, args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, valueError("sorted expects 1 argument, got %d", len(args))
		}
		list, ok := args[0].(*List)
		if !ok {
			return nil, typeError("sorted expects a List")
		}
		out := append([]Value{}, list.Elems...)
		var sortErr error
		sort.SliceStable(out, func(a, b int) bool {
			less, err := lessThan(out[a], out[b])
			if err != nil {
				sortErr = err
			}
			return less
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return &List{Elems: out}, nil
	})
}

func joinArgs(args []Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

func requireFloat(args []Value, name string) (float64, error) {
	if len(args) != 1 {
		return 0, valueError("%s expects 1 argument, got %d", name, len(args))
	}
	return toFloat(args[0])
}

func requireString(args []Value, name string) (string, error) {
	if len(args) != 1 {
		return "", valueError("%s expects 1 argument, got %d", name, len(args))
	}
	s, ok := args[0].(String)
	if !ok {
		return "", typeError("%s expects a String, got %s", name, args[0].Type())
	}
	return string(s), nil
}

func lessThan(a, b Value) (bool, error) {
	switch av := a.(type) {
	case Integer:
		bv, ok := b.(Integer)
		if !ok {
			return false, typeError("cannot compare Integer with %s", b.Type())
		}
		return av < bv, nil
	case Float:
		bv, ok := b.(Float)
		if !ok {
			return false, typeError("cannot compare Float with %s", b.Type())
		}
		return av < bv, nil
	case String:
		bv, ok := b.(String)
		if !ok {
			return false, typeError("cannot compare String with %s", b.Type())
		}
		return av < bv, nil
	default:
		return false, typeError("%s is not orderable", a.Type())
	}
}

// BuiltinNames lists every intrinsic registerBuiltins installs, plus
// the full reserved-name surface the linter must never flag as
// undefined. spec §4.5/§8 call out `HashMap`/`fs_read`/`http_get`/
// `range` as representative examples of "etc."; the complete roster
// below is taken verbatim from the original implementation's
// `is_builtin` match arms (file I/O, env, HTTP, JSON, time, path,
// collection, math, process, regex, logging, and DataFrame intrinsics)
// so the lint-exemption surface matches the ground truth rather than
// just the handful spec.md happens to name. Only the subset
// registerBuiltins actually implements (`println`, `len`, `range`,
// ...) has runtime behavior; the rest are reserved names the linter
// exempts exactly like the original's `is_builtin` does, even with no
// backing implementation here (file/network/process I/O is out of
// scope per spec §1 Non-goals — these are external collaborators).
// The linter imports this list directly so its exemption set can never
// drift from the interpreter's own.
func BuiltinNames() []string {
	return []string{
		// implemented by registerBuiltins
		"println", "print", "len", "range", "push", "abs", "sqrt",
		"floor", "ceil", "to_string", "parse_int", "sorted",
		// output
		"eprintln", "eprint", "dbg",
		// file system
		"fs_read", "fs_write", "fs_exists", "fs_remove", "fs_metadata",
		"fs_create_dir", "fs_read_dir", "fs_copy", "fs_rename",
		// environment
		"env_var", "env_args", "env_current_dir", "env_set_var",
		// HTTP
		"http_get", "http_post", "http_put", "http_delete",
		// JSON
		"json_parse", "json_stringify",
		// time
		"time_now", "time_sleep", "time_duration",
		// path
		"path_join", "path_extension", "path_filename", "path_parent",
		// collections
		"HashMap", "HashSet",
		// math
		"pow", "sin", "cos", "tan", "round", "min", "max", "exp", "ln", "log10", "log2",
		// process
		"exit", "panic", "assert", "assert_eq", "assert_ne",
		// string
		"format",
		// regex
		"regex_new", "regex_is_match", "regex_find", "regex_replace",
		// logging
		"log_info", "log_warn", "log_error", "log_debug", "log_trace",
		// dataframe
		"col", "lit", "DataFrame",
	}
}
