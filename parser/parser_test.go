package parser

import (
	"testing"

	"github.com/paiml/ruchy-sub004/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := ParseSource(src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func TestLiteralsAlwaysParse(t *testing.T) {
	cases := []string{"0", "-1000000", "1000000", "3.14", "true", "false", "\"hello\""}
	for _, src := range cases {
		prog := mustParse(t, src)
		if len(prog.Exprs) != 1 {
			t.Fatalf("expected exactly one top-level expr for %q, got %d", src, len(prog.Exprs))
		}
	}
}

func TestBalancedParentheses(t *testing.T) {
	for n := 0; n <= 4; n++ {
		src := ""
		for i := 0; i < n; i++ {
			src += "("
		}
		src += "1"
		for i := 0; i < n; i++ {
			src += ")"
		}
		if _, errs := ParseSource(src); len(errs) > 0 {
			t.Fatalf("n=%d: unexpected errors: %v", n, errs)
		}
	}
}

func TestOperatorPrecedenceAdditiveOverMultiplicative(t *testing.T) {
	prog := mustParse(t, "1 + 2 * 3")
	bin, ok := prog.Exprs[0].(*ast.Binary)
	if !ok {
		t.Fatalf("expected top-level Binary, got %T", prog.Exprs[0])
	}
	if bin.Op != ast.OpAdd {
		t.Fatalf("expected top-level op %q, got %q", ast.OpAdd, bin.Op)
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op != ast.OpMul {
		t.Fatalf("expected right operand to be a Mul, got %#v", bin.Right)
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	prog := mustParse(t, "2 ** 3 ** 2")
	bin, ok := prog.Exprs[0].(*ast.Binary)
	if !ok || bin.Op != ast.OpPow {
		t.Fatalf("expected top-level Pow, got %#v", prog.Exprs[0])
	}
	if _, ok := bin.Right.(*ast.Binary); !ok {
		t.Fatalf("expected right-associative nesting on the right operand, got %#v", bin.Right)
	}
	if _, ok := bin.Left.(*ast.Binary); ok {
		t.Fatalf("expected a flat left operand for right-associative **, got %#v", bin.Left)
	}
}

func TestTryAloneIsParseError(t *testing.T) {
	if _, errs := ParseSource("try { 1 }"); len(errs) == 0 {
		t.Fatalf("expected a parse error for try without catch or finally")
	}
}

func TestTryWithFinallyParses(t *testing.T) {
	if _, errs := ParseSource("try { 1 } finally { 2 }"); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestTryWithCatchParses(t *testing.T) {
	if _, errs := ParseSource("try { 1 } catch (e) { 2 }"); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestStatementLevelLetSynthesizesUnitBody(t *testing.T) {
	prog := mustParse(t, "let x = 42\nx")
	let, ok := prog.Exprs[0].(*ast.Let)
	if !ok {
		t.Fatalf("expected a Let, got %T", prog.Exprs[0])
	}
	lit, ok := let.Body.(*ast.Literal)
	if !ok || lit.Value.Kind != ast.LitUnit {
		t.Fatalf("expected a synthesized Literal(Unit) body for a statement-level let, got %#v", let.Body)
	}
}

func TestExpressionLevelLetKeepsInBody(t *testing.T) {
	prog := mustParse(t, "let x = 1 in x + 1")
	let, ok := prog.Exprs[0].(*ast.Let)
	if !ok {
		t.Fatalf("expected a Let, got %T", prog.Exprs[0])
	}
	if _, ok := let.Body.(*ast.Binary); !ok {
		t.Fatalf("expected the `in` expression as the body, got %#v", let.Body)
	}
}

func TestQualifiedConstructorCallJoinsSegments(t *testing.T) {
	prog := mustParse(t, "Color::new()")
	call, ok := prog.Exprs[0].(*ast.Call)
	if !ok {
		t.Fatalf("expected a Call, got %T", prog.Exprs[0])
	}
	ident, ok := call.Func.(*ast.Identifier)
	if !ok || ident.Name != "Color::new" {
		t.Fatalf("expected a joined qualified identifier \"Color::new\", got %#v", call.Func)
	}
}
