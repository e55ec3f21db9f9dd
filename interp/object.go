package interp

import (
	"fmt"
	"strings"
	"sync"
)

// Object is the immutable, shared record-like value: used both for
// plain `Name { field: value }` record literals and for class
// metadata itself (spec §3's `__type: "Class"` shape). Per spec §9 an
// implementer may merge the two mutable shapes below into one provided
// both reference semantics and concurrent-safe mutation survive; this
// interpreter keeps the three distinct shapes the spec names, since
// they map directly onto its two constructor forms.
type Object struct {
	Fields map[string]Value
}

func NewObject(fields map[string]Value) *Object { return &Object{Fields: fields} }

func (*Object) Type() string { return "Object" }
func (o *Object) String() string {
	return formatFields(o.Fields)
}

func formatFields(fields map[string]Value) string {
	parts := make([]string, 0, len(fields))
	for k, v := range fields {
		if strings.HasPrefix(k, "__") {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.String()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ObjectMut is the mutex-protected mutable instance shape produced by
// an explicit `new`-style constructor, so that `&mut self` field
// writes are visible to every alias holding the same instance (spec
// §4.4, §5). Every lock acquisition is scoped to a single method body
// and released before any re-entrant evaluator call, matching spec
// §5's discipline note.
type ObjectMut struct {
	mu     sync.Mutex
	Class  string
	Fields map[string]Value
}

func NewObjectMut(class string, fields map[string]Value) *ObjectMut {
	return &ObjectMut{Class: class, Fields: fields}
}

func (*ObjectMut) Type() string { return "Object" }
func (o *ObjectMut) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return formatFields(o.Fields)
}

func (o *ObjectMut) Get(name string) (Value, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.Fields[name]
	return v, ok
}

func (o *ObjectMut) Set(name string, v Value) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Fields[name] = v
}

// Snapshot copies the current field map under lock, for operations
// (iteration, copying into a new instance) that must not hold the
// mutex while calling back into the evaluator.
func (o *ObjectMut) Snapshot() map[string]Value {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(map[string]Value, len(o.Fields))
	for k, v := range o.Fields {
		out[k] = v
	}
	return out
}

// ClassInstance is the reference-semantics instance shape produced by
// an `init`-style constructor: Arc<RwLock> on the field table per spec
// §3/§5, supporting multiple concurrent readers or one writer.
type ClassInstance struct {
	mu     sync.RWMutex
	Class  string
	Fields map[string]Value
}

func NewClassInstance(class string, fields map[string]Value) *ClassInstance {
	return &ClassInstance{Class: class, Fields: fields}
}

func (*ClassInstance) Type() string { return "Class" }
func (c *ClassInstance) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return formatFields(c.Fields)
}

func (c *ClassInstance) Get(name string) (Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.Fields[name]
	return v, ok
}

func (c *ClassInstance) Set(name string, v Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Fields[name] = v
}

func (c *ClassInstance) Snapshot() map[string]Value {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Value, len(c.Fields))
	for k, v := range c.Fields {
		out[k] = v
	}
	return out
}

// FieldMeta describes one declared class field: its syntactic type
// name (display only — the inferencer owns real type checking),
// visibility, mutability, and default-value expression.
type FieldMeta struct {
	TypeName string
	IsPub    bool
	IsMut    bool
	Default  Value // pre-evaluated at class-definition time; nil if none
}

// MethodMeta wraps a method's Closure with its static/override flags.
type MethodMeta struct {
	Fn         *Closure
	IsStatic   bool
	IsOverride bool
}

// ConstantMeta is a pre-evaluated class constant.
type ConstantMeta struct {
	Value Value
	IsPub bool
}

// ClassDef is the runtime representation of a class declaration (spec
// §3's class metadata object), kept as a distinct Go struct rather
// than a generic Object map for direct field access — §3 describes it
// as an Object itself (`__type: "Class"`); ClassDef.AsObject()
// produces that view for code that wants to treat it uniformly.
type ClassDef struct {
	Name         string
	Super        string
	Fields       map[string]FieldMeta
	FieldOrder   []string
	Constructors map[string]*Closure
	Methods      map[string]MethodMeta
	Constants    map[string]ConstantMeta
}

func (*ClassDef) Type() string     { return "Class" }
func (c *ClassDef) String() string { return fmt.Sprintf("<class %s>", c.Name) }

// AsObject renders the class metadata as the `__type: "Class"` Object
// shape spec §3 specifies, for introspection builtins.
func (c *ClassDef) AsObject() *Object {
	fields := map[string]Value{
		"__type": String("Class"),
		"__name": String(c.Name),
	}
	if c.Super != "" {
		fields["__superclass"] = String(c.Super)
	}
	return NewObject(fields)
}
