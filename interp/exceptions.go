package interp

import "github.com/paiml/ruchy-sub004/ast"

// evalTryCatch runs TryBlock; on a thrown value it tries each Catches
// clause in order (a nil Pattern is a catch-all), binding the thrown
// value when the clause names one. Finally always runs, and an error
// raised while running it replaces whatever result/error preceded it,
// matching ordinary try/finally semantics.
func (in *Interpreter) evalTryCatch(env *Environment, n *ast.TryCatch) (Value, error) {
	result, err := in.eval(NewEnclosedEnvironment(env), n.TryBlock)
	if err != nil {
		if thrown, ok := err.(*ThrownValue); ok {
			result, err = in.runCatch(env, n.Catches, thrown.Value)
		}
	}
	if n.Finally != nil {
		if _, ferr := in.eval(NewEnclosedEnvironment(env), n.Finally); ferr != nil {
			return nil, ferr
		}
	}
	return result, err
}

func (in *Interpreter) runCatch(env *Environment, catches []ast.CatchClause, thrown Value) (Value, error) {
	for _, c := range catches {
		child := NewEnclosedEnvironment(env)
		if c.Pattern == nil {
			return in.eval(child, c.Body)
		}
		if matchPattern(child, c.Pattern, thrown) {
			return in.eval(child, c.Body)
		}
	}
	return nil, &ThrownValue{Value: thrown}
}
