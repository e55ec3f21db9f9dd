package types

import "fmt"

// InferenceError is raised for an unknown identifier discovered during
// constraint generation (an arity mismatch surfaces as a
// UnificationError from unifying the call's arrow type), distinct from a
// UnificationError raised during solving (spec §7's "type errors"
// taxonomy covers both, rendered the same way).
type InferenceError struct {
	Message string
}

func (e *InferenceError) Error() string { return e.Message }

// maxRecursionDepth bounds InferenceContext's structural recursion; a
// program that exceeds it gets a soft warning, not a hard abort (spec
// §4.3: "bounded; excess is a soft warning, not a hard stop").
const maxRecursionDepth = 4096

// MethodConstraint is a deferred `(receiver_type, method_name,
// arg_types)` obligation emitted by a MethodCall (spec §4.3), to be
// resolved later against the built-in or user-defined method table.
type MethodConstraint struct {
	Receiver *MonoType
	Method   string
	Args     []*MonoType
}

// Env is a type environment: a chain of frames from name to
// TypeScheme, mirroring the interpreter's environment chain but
// carrying schemes (for let-polymorphism) instead of values.
type Env struct {
	vars  map[string]*TypeScheme
	outer *Env
}

// NewEnv creates a root type environment seeded with nothing; callers
// typically start from Prelude().
func NewEnv() *Env { return &Env{vars: map[string]*TypeScheme{}} }

func (e *Env) Child() *Env { return &Env{vars: map[string]*TypeScheme{}, outer: e} }

func (e *Env) Lookup(name string) (*TypeScheme, bool) {
	if sc, ok := e.vars[name]; ok {
		return sc, true
	}
	if e.outer != nil {
		return e.outer.Lookup(name)
	}
	return nil, false
}

func (e *Env) Define(name string, sc *TypeScheme) { e.vars[name] = sc }

// Prelude seeds a fresh root Env with a small built-in set: println and
// print, polymorphic in their argument type, and range. This is a
// subset of the interpreter's (and linter's) built-in name set; the
// other built-ins are unknown identifiers to the inferencer.
func Prelude() *Env {
	env := NewEnv()
	mono := func(t *MonoType) *TypeScheme { return &TypeScheme{Body: t} }
	poly := func(t *MonoType) *TypeScheme { return &TypeScheme{Vars: []int{-1}, Body: t} }
	env.Define("println", poly(Function(Var(-1), Unit)))
	env.Define("print", poly(Function(Var(-1), Unit)))
	env.Define("range", mono(Function(Int, List(Int))))
	return env
}

// InferenceContext drives Algorithm-W-style inference: a fresh type
// variable counter, the accumulated substitution, a queue of deferred
// MethodCall constraints, and a recursion-depth guard.
type InferenceContext struct {
	nextVar     int
	Subst       Substitution
	Constraints []MethodConstraint
	depth       int
	Warnings    []string
}

func NewInferenceContext() *InferenceContext {
	return &InferenceContext{Subst: Substitution{}}
}

func (ctx *InferenceContext) Fresh() *MonoType {
	ctx.nextVar++
	return Var(ctx.nextVar)
}

func (ctx *InferenceContext) enter() func() {
	ctx.depth++
	if ctx.depth > maxRecursionDepth {
		ctx.Warnings = append(ctx.Warnings, fmt.Sprintf("inference recursion depth exceeded %d; results may be approximate", maxRecursionDepth))
	}
	return func() { ctx.depth-- }
}

// Unify extends ctx.Subst to make a and b equal, recording a
// UnificationError (without panicking) on failure.
func (ctx *InferenceContext) unify(a, b *MonoType) error {
	s, err := Unify(ctx.Subst, a, b)
	ctx.Subst = s
	return err
}

// Instantiate replaces every quantified variable in sc with a fresh
// one, the standard let-polymorphism "use" step.
func (ctx *InferenceContext) Instantiate(sc *TypeScheme) *MonoType {
	if len(sc.Vars) == 0 {
		return sc.Body
	}
	sub := make(Substitution, len(sc.Vars))
	for _, v := range sc.Vars {
		sub[v] = ctx.Fresh()
	}
	return sub.Apply(sc.Body)
}

// Generalize closes over t by quantifying every free variable not
// already free in env, the standard let-polymorphism "define" step.
func (ctx *InferenceContext) Generalize(env *Env, t *MonoType) *TypeScheme {
	t = ctx.Subst.Apply(t)
	free := FreeVars(t)
	bound := envFreeVars(env)
	var vars []int
	for v := range free {
		if !bound[v] {
			vars = append(vars, v)
		}
	}
	return &TypeScheme{Vars: vars, Body: t}
}

func envFreeVars(env *Env) map[int]bool {
	out := map[int]bool{}
	for e := env; e != nil; e = e.outer {
		for _, sc := range e.vars {
			for v := range FreeVars(sc.Body) {
				bound := false
				for _, qv := range sc.Vars {
					if qv == v {
						bound = true
						break
					}
				}
				if !bound {
					out[v] = true
				}
			}
		}
	}
	return out
}
