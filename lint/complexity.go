package lint

import "github.com/paiml/ruchy-sub004/ast"

// complexity computes a simple cyclomatic-style score for a function
// body: branches and loops each add to the base path count of 1, per
// spec §4.5 ("a simple cyclomatic score (branches and loops add 1-2
// each)"). Short-circuit boolean operators also introduce a branch,
// matching how they're compiled to a conditional in most
// interpreters.
func complexity(body ast.Expr) int {
	score := 1
	walkComplexity(body, &score)
	return score
}

func walkComplexity(e ast.Expr, score *int) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.If:
		*score++
		walkComplexity(n.Condition, score)
		walkComplexity(n.Then, score)
		walkComplexity(n.Else, score)
	case *ast.IfLet:
		*score++
		walkComplexity(n.Expr, score)
		walkComplexity(n.Then, score)
		walkComplexity(n.Else, score)
	case *ast.Match:
		*score += len(n.Arms)
		walkComplexity(n.Scrutinee, score)
		for _, arm := range n.Arms {
			walkComplexity(arm.Guard, score)
			walkComplexity(arm.Body, score)
		}
	case *ast.While:
		*score += 2
		walkComplexity(n.Condition, score)
		walkComplexity(n.Body, score)
	case *ast.WhileLet:
		*score += 2
		walkComplexity(n.Expr, score)
		walkComplexity(n.Body, score)
	case *ast.For:
		*score += 2
		walkComplexity(n.Iterable, score)
		walkComplexity(n.Body, score)
	case *ast.Loop:
		*score += 2
		walkComplexity(n.Body, score)
	case *ast.Binary:
		if n.Op == ast.OpAnd || n.Op == ast.OpOr {
			*score++
		}
		walkComplexity(n.Left, score)
		walkComplexity(n.Right, score)
	case *ast.Unary:
		walkComplexity(n.Operand, score)
	case *ast.Let:
		walkComplexity(n.Value, score)
		walkComplexity(n.Body, score)
	case *ast.LetPattern:
		walkComplexity(n.Value, score)
		walkComplexity(n.Body, score)
	case *ast.Block:
		for _, sub := range n.Exprs {
			walkComplexity(sub, score)
		}
	case *ast.Call:
		walkComplexity(n.Func, score)
		for _, a := range n.Args {
			walkComplexity(a, score)
		}
	case *ast.MethodCall:
		walkComplexity(n.Receiver, score)
		for _, a := range n.Args {
			walkComplexity(a, score)
		}
	case *ast.TryCatch:
		*score += len(n.Catches)
		walkComplexity(n.TryBlock, score)
		for _, c := range n.Catches {
			walkComplexity(c.Body, score)
		}
		walkComplexity(n.Finally, score)
	case *ast.Return:
		walkComplexity(n.Value, score)
	case *ast.Assign:
		walkComplexity(n.Value, score)
	}
}
