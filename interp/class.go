package interp

import (
	"strings"

	"github.com/paiml/ruchy-sub004/ast"
)

// resolveIdentifier looks up a plain name directly, then — for a
// `Class::Member`-joined name produced by the parser's qualified-path
// handling — tries the named class's constants and static methods
// before giving up. Static methods resolve to a receiver-less closure
// value so `ClassName::method(args)` can be called like any other
// function.
func (in *Interpreter) resolveIdentifier(env *Environment, name string) (Value, error) {
	if v, ok := env.Get(name); ok {
		return v, nil
	}
	idx := strings.LastIndex(name, "::")
	if idx < 0 {
		return nil, nameError("undefined name %q", name)
	}
	className, member := name[:idx], name[idx+2:]
	def, ok := in.Classes[className]
	if !ok {
		return nil, nameError("undefined name %q", name)
	}
	if c, ok := def.Constants[member]; ok {
		return c.Value, nil
	}
	if m, ok := def.Methods[member]; ok && m.IsStatic {
		return m.Fn, nil
	}
	if _, ok := def.Constructors[member]; ok {
		ctorName := member
		return &BuiltinFunction{
			Name: className + "::" + member,
			Fn: func(i *Interpreter, args []Value) (Value, error) {
				return i.instantiate(def, ctorName, args)
			},
		}, nil
	}
	return nil, nameError("class %q has no member %q", className, member)
}

// defineClass evaluates a class declaration into a ClassDef. Field
// defaults are evaluated eagerly, against the global scope, at
// class-definition time (so a default expression cannot reference
// `self`), matching spec §4.4's definition rule.
func (in *Interpreter) defineClass(n *ast.Class) {
	def := &ClassDef{
		Name:         n.Name,
		Super:        n.Super,
		Fields:       map[string]FieldMeta{},
		Constructors: map[string]*Closure{},
		Methods:      map[string]MethodMeta{},
		Constants:    map[string]ConstantMeta{},
	}
	for _, f := range n.Fields {
		typeName := ""
		if f.Type != nil {
			typeName = f.Type.Name
		}
		meta := FieldMeta{TypeName: typeName, IsPub: f.IsPub, IsMut: f.IsMut}
		if f.Default != nil {
			v, err := in.eval(in.Global, f.Default)
			if err == nil {
				meta.Default = v
			}
		}
		def.Fields[f.Name] = meta
		def.FieldOrder = append(def.FieldOrder, f.Name)
	}
	for _, c := range n.Constructors {
		name := c.Name
		if name == "" {
			name = "new"
		}
		def.Constructors[name] = &Closure{Name: name, Params: c.Params, Body: c.Body, Env: in.Global}
	}
	if len(def.Constructors) == 0 {
		def.Constructors["new"] = &Closure{Name: "new", Body: &ast.Block{}, Env: in.Global}
	}
	for _, m := range n.Methods {
		def.Methods[m.Name] = MethodMeta{
			Fn:         &Closure{Name: m.Name, Params: m.Params, Body: m.Body, Env: in.Global, IsAsync: m.IsAsync},
			IsStatic:   m.IsStatic,
			IsOverride: m.IsOverride,
		}
	}
	for _, c := range n.Constants {
		v, err := in.eval(in.Global, c.Value)
		if err != nil {
			v = Nil{}
		}
		def.Constants[c.Name] = ConstantMeta{Value: v, IsPub: c.IsPub}
	}
	in.Classes[n.Name] = def
}

// applyImpl attaches Methods from a standalone `impl Target { ... }` or
// `impl Trait for Target { ... }` block onto an already-declared class,
// the way the spec allows methods to be defined apart from the class
// body.
func (in *Interpreter) applyImpl(n *ast.Impl) {
	def, ok := in.Classes[n.Target]
	if !ok {
		def = &ClassDef{Name: n.Target, Fields: map[string]FieldMeta{}, Constructors: map[string]*Closure{}, Methods: map[string]MethodMeta{}, Constants: map[string]ConstantMeta{}}
		in.Classes[n.Target] = def
	}
	for _, m := range n.Methods {
		def.Methods[m.Name] = MethodMeta{
			Fn:         &Closure{Name: m.Name, Params: m.Params, Body: m.Body, Env: in.Global, IsAsync: m.IsAsync},
			IsStatic:   m.IsStatic,
			IsOverride: m.IsOverride,
		}
	}
}

// defineEnumConstructors binds each variant name of n as a callable (or
// nullary Object) value in env, so `Color::Red` / `Some(x)`-shaped
// construction works uniformly whether the variant carries fields.
func (in *Interpreter) defineEnumConstructors(env *Environment, n *ast.Enum) {
	for _, variant := range n.Variants {
		variant := variant
		if len(variant.Fields) == 0 {
			env.Define(variant.Name, NewObject(map[string]Value{
				"__type":    String("Enum"),
				"__enum":    String(n.Name),
				"__variant": String(variant.Name),
			}))
			continue
		}
		env.Define(variant.Name, &BuiltinFunction{
			Name: variant.Name,
			Fn: func(_ *Interpreter, args []Value) (Value, error) {
				fields := map[string]Value{
					"__type":    String("Enum"),
					"__enum":    String(n.Name),
					"__variant": String(variant.Name),
				}
				for i, a := range args {
					fields[enumFieldName(i)] = a
				}
				return NewObject(fields), nil
			},
		})
	}
}

func enumFieldName(i int) string {
	names := []string{"_0", "_1", "_2", "_3", "_4", "_5"}
	if i < len(names) {
		return names[i]
	}
	return "_n"
}

// instantiate runs def's named constructor (or "new" when empty) with
// args, choosing the mutable-instance shape the spec assigns each
// constructor name: "new" produces a mutex-guarded ObjectMut, any
// other name (conventionally "init") produces an RWMutex-guarded
// ClassInstance.
func (in *Interpreter) instantiate(def *ClassDef, ctorName string, args []Value) (Value, error) {
	if ctorName == "" {
		ctorName = "new"
	}
	ctor, ok := def.Constructors[ctorName]
	if !ok {
		return nil, nameError("class %q has no constructor %q", def.Name, ctorName)
	}
	fields := in.collectFieldDefaults(def)
	frame := NewEnclosedEnvironment(ctor.Env)
	if err := bindParams(in, frame, ctor.Params, args); err != nil {
		return nil, err
	}
	var instance Value
	if ctorName == "new" {
		instance = NewObjectMut(def.Name, fields)
	} else {
		instance = NewClassInstance(def.Name, fields)
	}
	frame.Define("self", instance)
	result, err := in.eval(frame, ctor.Body)
	if err != nil {
		ret, ok := err.(*returnSignal)
		if !ok {
			return nil, err
		}
		result = ret.Value
	}
	// spec §4.4 step 5's two valid constructor-body shapes: a body that
	// mutates `self` by field-assignment needs nothing further (the
	// frame's `self` *is* instance), but a body that instead returns an
	// object literal whose `__class` matches C (or carries none) adopts
	// that literal's fields into instance rather than the pre-built
	// field-default map.
	if fields, ok := constructorReturnFields(result, def.Name); ok {
		adoptFields(instance, fields)
	}
	return instance, nil
}

// constructorReturnFields recognizes the "returns an object literal"
// constructor shape: a plain record Object always qualifies (it has no
// class tag of its own to conflict with), while an already-classed
// ObjectMut/ClassInstance only qualifies when its class matches (or is
// the synthetic empty tag a `{...}` literal can produce).
func constructorReturnFields(v Value, className string) (map[string]Value, bool) {
	switch o := v.(type) {
	case *Object:
		return o.Fields, true
	case *ObjectMut:
		if o.Class == "" || o.Class == className {
			return o.Snapshot(), true
		}
	case *ClassInstance:
		if o.Class == "" || o.Class == className {
			return o.Snapshot(), true
		}
	}
	return nil, false
}

// adoptFields copies fields into a mutable instance shape, skipping
// internal metadata keys the way formatFields already does for display.
func adoptFields(instance Value, fields map[string]Value) {
	var set func(name string, v Value)
	switch inst := instance.(type) {
	case *ObjectMut:
		set = inst.Set
	case *ClassInstance:
		set = inst.Set
	default:
		return
	}
	for name, v := range fields {
		if strings.HasPrefix(name, "__") {
			continue
		}
		set(name, v)
	}
}

// collectFieldDefaults walks the superclass chain from the root down,
// so a child field with the same name as a parent field overrides the
// parent's default, matching spec §3's "parent fields are inserted
// first and may be overridden by child-declared fields" rule.
func (in *Interpreter) collectFieldDefaults(def *ClassDef) map[string]Value {
	var chain []*ClassDef
	for d := def; d != nil; {
		chain = append(chain, d)
		if d.Super == "" {
			break
		}
		d = in.Classes[d.Super]
	}
	fields := map[string]Value{}
	for i := len(chain) - 1; i >= 0; i-- {
		for name, meta := range chain[i].Fields {
			if meta.Default != nil {
				fields[name] = meta.Default
			} else if _, exists := fields[name]; !exists {
				fields[name] = Nil{}
			}
		}
	}
	return fields
}

// instantiateWithFields builds an instance directly from a struct
// literal's field map — `ClassName { field: value, ... }` bypasses the
// constructor and initializes fields verbatim, the shape a class used
// as a plain record literal takes.
func (in *Interpreter) instantiateWithFields(def *ClassDef, fields map[string]Value) (Value, error) {
	merged := in.collectFieldDefaults(def)
	for name, v := range fields {
		merged[name] = v
	}
	return NewObjectMut(def.Name, merged), nil
}

// findMethod looks up name on class, then its superclass chain.
func (in *Interpreter) findMethod(className, name string) (*Closure, bool) {
	for className != "" {
		def, ok := in.Classes[className]
		if !ok {
			return nil, false
		}
		if m, ok := def.Methods[name]; ok {
			return m.Fn, true
		}
		className = def.Super
	}
	return nil, false
}

// callMethod binds self to recv in the closure's frame before
// evaluating its body, the `self`-passing convention every method
// closure expects (mirroring callClosure but with the extra implicit
// first binding).
func (in *Interpreter) callMethod(fn *Closure, recv Value, args []Value) (Value, error) {
	frame := NewEnclosedEnvironment(fn.Env)
	frame.Define("self", recv)
	if err := bindParams(in, frame, fn.Params, args); err != nil {
		return nil, err
	}
	v, err := in.eval(frame, fn.Body)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			return ret.Value, nil
		}
		return nil, err
	}
	return v, nil
}

func classNameOf(v Value) string {
	switch r := v.(type) {
	case *ObjectMut:
		return r.Class
	case *ClassInstance:
		return r.Class
	default:
		return ""
	}
}
