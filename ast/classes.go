package ast

// FieldDecl is one `name: Type [= default]` class/struct field.
type FieldDecl struct {
	Name    string
	Type    *TypeExpr
	Default Expr // nil if none
	IsPub   bool
	IsMut   bool
}

// ConstructorDecl is one named constructor (default name "new"; an
// `init`-named constructor selects the reference-semantics instance
// form described in spec §4.4).
type ConstructorDecl struct {
	Name   string
	Params []Param
	Body   Expr
	IsPub  bool
}

// MethodDecl is one instance or static method.
type MethodDecl struct {
	Name       string
	Params     []Param // excludes the implicit `self`
	ReturnType *TypeExpr
	Body       Expr
	IsPub      bool
	IsStatic   bool
	IsOverride bool
	IsFinal    bool
	IsAbstract bool
	IsAsync    bool
}

// ConstantDecl is a class-level `const NAME: Type = expr`, evaluated at
// class-definition time and additionally bound as `ClassName::NAME`.
type ConstantDecl struct {
	Name  string
	Type  *TypeExpr
	Value Expr
	IsPub bool
}

// Class is a `class Name(<TypeParams>) : Super + Trait1 + Trait2 { ... }`
// declaration. IsSealed/IsFinal/IsAbstract are carried on the node
// only: the parser always leaves them false, and the interpreter does
// not consult them to restrict instantiation or subclassing.
type Class struct {
	Base
	Name         string
	TypeParams   []string
	Super        string   // "" if none
	Traits       []string // implemented trait names
	Fields       []FieldDecl
	Constructors []ConstructorDecl
	Methods      []MethodDecl
	Constants    []ConstantDecl
	IsPub        bool
	IsSealed     bool
	IsFinal      bool
	IsAbstract   bool
}

// Struct is a plain record type: fields only, no methods/constructors.
type Struct struct {
	Base
	Name       string
	TypeParams []string
	Fields     []FieldDecl
	IsPub      bool
}

// TraitMethodSig is one method signature required by a trait.
type TraitMethodSig struct {
	Name       string
	Params     []Param
	ReturnType *TypeExpr
	Default    Expr // nil if the trait only declares, doesn't define
}

// Trait declares a set of method signatures a type may implement.
type Trait struct {
	Base
	Name    string
	Methods []TraitMethodSig
	IsPub   bool
}

// Impl attaches Methods to Target, optionally under TraitName.
type Impl struct {
	Base
	Target    string
	TraitName string // "" for an inherent impl
	Methods   []MethodDecl
}

// EnumVariant is one variant of an Enum, optionally carrying positional
// fields (`Some(T)`-style) or a discriminant value.
type EnumVariant struct {
	Name        string
	Fields      []TypeExpr // nil if a unit variant
	Discriminant Expr       // nil if not explicitly assigned
}

// Enum declares a closed set of variants.
type Enum struct {
	Base
	Name       string
	TypeParams []string
	Variants   []EnumVariant
	IsPub      bool
}

// ActorHandler is one `on Message(params) { ... }` handler within an actor.
type ActorHandler struct {
	MessageName string
	Params      []Param
	Body        Expr
}

// Actor declares synchronous message-dispatch state per spec §5: a
// state block plus a set of handlers, with no specified scheduling
// fairness (see DESIGN.md for the chosen FIFO-mailbox policy).
type Actor struct {
	Base
	Name     string
	Fields   []FieldDecl
	Handlers []ActorHandler
	IsPub    bool
}

// Effect declares an algebraic effect signature; Handle installs
// handlers for one. Both parse and survive to evaluation as tagged,
// largely inert nodes per spec §1 Non-goals (full effect handling is
// out of scope; only enough structure to parse and walk is specified).
type Effect struct {
	Base
	Name       string
	Operations []TraitMethodSig
	IsPub      bool
}

// HandleCase is one `Operation(args) => body` arm of a Handle block.
type HandleCase struct {
	Operation string
	Params    []Param
	Body      Expr
}

type Handle struct {
	Base
	EffectName string
	Cases      []HandleCase
	Body       Expr
}

// TryCatch implements spec §4.2's try/catch validation: at least one
// Catches clause or a non-nil Finally must be present, enforced by the
// parser, not this type.
type TryCatch struct {
	Base
	TryBlock Expr
	Catches  []CatchClause
	Finally  Expr // nil if absent
}

// CatchClause is one `catch (pattern) { body }` arm.
type CatchClause struct {
	Pattern *Pattern // nil binds the thrown value to no name (catch-all)
	Body    Expr
}

// Throw raises Value as a user exception.
type Throw struct {
	Base
	Value Expr
}

// Await evaluates Value; per spec §5 this is a synchronous
// pass-through, not real suspension.
type Await struct {
	Base
	Value Expr
}

// Spawn starts an Actor's synchronous state block and returns a handle
// value.
type Spawn struct {
	Base
	ActorExpr Expr
	Args      []Expr
}

// Send enqueues Message on Target's mailbox.
type Send struct {
	Base
	Target  Expr
	Message Expr
}

// Module groups a named block of declarations.
type Module struct {
	Base
	Name string
	Body Expr
}

// Import forms: `import foo::bar`, `import foo::*`, `import foo as bar`.
type Import struct {
	Base
	Path  []string
	Alias string // "" if none
}

type ImportAll struct {
	Base
	Path []string
}

type ImportDefault struct {
	Base
	Path  []string
	Alias string
}
