package types

import "github.com/paiml/ruchy-sub004/ast"

// InferProgram runs inference over every top-level expression in prog
// in sequence, sharing one InferenceContext and top-level Env so
// earlier top-level `let`/`fun` bindings are visible to later ones —
// mirroring the interpreter's top-level evaluation order.
func InferProgram(prog *ast.Program) (*InferenceContext, []*MonoType, error) {
	ctx := NewInferenceContext()
	env := Prelude()
	var results []*MonoType
	for _, e := range prog.Exprs {
		t, err := Infer(ctx, env, e)
		if err != nil {
			return ctx, results, err
		}
		results = append(results, ctx.Subst.Apply(t))
	}
	return ctx, results, nil
}
