package interp

import "github.com/paiml/ruchy-sub004/ast"

// matchPattern attempts to match v against pat, defining any bound
// names directly in env on success. It mirrors types.inferPatternType's
// shape-handling exactly (including PatOr's only-the-taken-arm-binds
// rule) so the inferencer and interpreter never disagree about which
// names a pattern introduces.
func matchPattern(env *Environment, pat *ast.Pattern, v Value) bool {
	switch pat.Kind {
	case ast.PatWildcard:
		return true
	case ast.PatIdentifier:
		env.Define(pat.Name, v)
		return true
	case ast.PatLiteral:
		return ValuesEqual(literalValue(pat.Literal), v)
	case ast.PatTuple:
		tup, ok := v.(*Tuple)
		if !ok {
			return false
		}
		return matchSequence(env, pat, tup.Elems)
	case ast.PatList:
		list, ok := v.(*List)
		if !ok {
			return false
		}
		return matchSequence(env, pat, list.Elems)
	case ast.PatStruct:
		return matchStructPattern(env, pat, v)
	case ast.PatOr:
		for _, alt := range pat.Alternatives {
			if matchPattern(env, alt, v) {
				return true
			}
		}
		return false
	case ast.PatRange:
		return matchRangePattern(pat, v)
	case ast.PatAtBinding:
		if !matchPattern(env, pat.Inner, v) {
			return false
		}
		env.Define(pat.Name, v)
		return true
	case ast.PatWithDefault:
		return matchPattern(env, pat.Inner, v)
	case ast.PatSome:
		// Option is modeled as a two-field Object with __tag "Some"/"None".
		obj, ok := v.(*Object)
		if !ok || obj.Fields["__tag"] != String("Some") {
			return false
		}
		return matchPattern(env, pat.Inner, obj.Fields["value"])
	case ast.PatNone:
		obj, ok := v.(*Object)
		return ok && obj.Fields["__tag"] == String("None")
	case ast.PatOk:
		obj, ok := v.(*Object)
		if !ok || obj.Fields["__tag"] != String("Ok") {
			return false
		}
		return matchPattern(env, pat.Inner, obj.Fields["value"])
	case ast.PatErr:
		obj, ok := v.(*Object)
		if !ok || obj.Fields["__tag"] != String("Err") {
			return false
		}
		return matchPattern(env, pat.Inner, obj.Fields["value"])
	case ast.PatQualifiedName:
		obj, ok := v.(*Object)
		if !ok {
			return false
		}
		name, nameOk := obj.Fields["__variant"]
		return nameOk && name == String(pat.Segments[len(pat.Segments)-1])
	default:
		return false
	}
}

func matchSequence(env *Environment, pat *ast.Pattern, elems []Value) bool {
	if !pat.HasRest {
		if len(elems) != len(pat.Elements) {
			return false
		}
		for i, sub := range pat.Elements {
			if !matchPattern(env, sub, elems[i]) {
				return false
			}
		}
		return true
	}
	before := pat.Elements[:pat.RestIndex]
	after := pat.Elements[pat.RestIndex:]
	if len(elems) < len(before)+len(after) {
		return false
	}
	for i, sub := range before {
		if !matchPattern(env, sub, elems[i]) {
			return false
		}
	}
	restElems := elems[len(before) : len(elems)-len(after)]
	if pat.RestName != "" {
		env.Define(pat.RestName, &List{Elems: append([]Value{}, restElems...)})
	}
	for i, sub := range after {
		if !matchPattern(env, sub, elems[len(elems)-len(after)+i]) {
			return false
		}
	}
	return true
}

func matchStructPattern(env *Environment, pat *ast.Pattern, v Value) bool {
	fields, ok := objectFields(v)
	if !ok {
		return false
	}
	for _, fp := range pat.Fields {
		fv, present := fields[fp.Name]
		if !present {
			return false
		}
		if fp.Pattern == nil {
			env.Define(fp.Name, fv)
			continue
		}
		if !matchPattern(env, fp.Pattern, fv) {
			return false
		}
	}
	return true
}

// objectFields extracts a field map from any instance-shaped Value,
// the three class/record representations this interpreter supports.
func objectFields(v Value) (map[string]Value, bool) {
	switch o := v.(type) {
	case *Object:
		return o.Fields, true
	case *ObjectMut:
		return o.Snapshot(), true
	case *ClassInstance:
		return o.Snapshot(), true
	default:
		return nil, false
	}
}

func matchRangePattern(pat *ast.Pattern, v Value) bool {
	i, ok := v.(Integer)
	if !ok {
		return false
	}
	lo := literalValue(pat.RangeStart)
	hi := literalValue(pat.RangeEnd)
	loI, loOk := lo.(Integer)
	hiI, hiOk := hi.(Integer)
	if !loOk || !hiOk {
		return false
	}
	if pat.Inclusive {
		return i >= loI && i <= hiI
	}
	return i >= loI && i < hiI
}

func literalValue(lv *ast.LiteralValue) Value {
	if lv == nil {
		return Nil{}
	}
	switch lv.Kind {
	case ast.LitInt:
		return Integer(lv.Int)
	case ast.LitFloat:
		return Float(lv.Float)
	case ast.LitBool:
		return Bool(lv.Bool)
	case ast.LitString:
		return String(lv.Str)
	case ast.LitChar:
		return Char(lv.Char)
	case ast.LitNil:
		return Nil{}
	default:
		return Unit{}
	}
}
