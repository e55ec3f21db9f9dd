package types

import (
	"testing"

	"github.com/paiml/ruchy-sub004/parser"
)

func inferSource(t *testing.T, src string) (*MonoType, error) {
	t.Helper()
	prog, errs := parser.ParseSource(src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	_, results, err := InferProgram(prog)
	if err != nil {
		return nil, err
	}
	return results[len(results)-1], nil
}

func TestInfersIntForIntegerLiteral(t *testing.T) {
	ty, err := inferSource(t, "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.String() != Int.String() {
		t.Fatalf("expected Int, got %s", ty)
	}
}

func TestInfersBoolForComparison(t *testing.T) {
	ty, err := inferSource(t, "1 < 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.String() != Bool.String() {
		t.Fatalf("expected Bool, got %s", ty)
	}
}

func TestInfersListOfIntForIntLiteralList(t *testing.T) {
	ty, err := inferSource(t, "[1, 2, 3]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := List(Int)
	if ty.String() != want.String() {
		t.Fatalf("expected %s, got %s", want, ty)
	}
}

func TestInfersIntForIfBothBranchesInt(t *testing.T) {
	ty, err := inferSource(t, "if true { 1 } else { 2 }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.String() != Int.String() {
		t.Fatalf("expected Int, got %s", ty)
	}
}

func TestLetPolymorphismGeneralizesIdentity(t *testing.T) {
	ty, err := inferSource(t, "let id = |x| x in id(42)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.String() != Int.String() {
		t.Fatalf("expected Int from id(42), got %s", ty)
	}

	ty2, err := inferSource(t, "let id = |x| x in id(true)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty2.String() != Bool.String() {
		t.Fatalf("expected Bool from a second, independent id(true), got %s", ty2)
	}
}

func TestIntPlusBoolIsATypeError(t *testing.T) {
	if _, err := inferSource(t, "1 + true"); err == nil {
		t.Fatalf("expected a unification error for 1 + true")
	}
}

func TestIfWithIntConditionIsATypeError(t *testing.T) {
	if _, err := inferSource(t, "if 42 { 1 } else { 2 }"); err == nil {
		t.Fatalf("expected a type error for a non-Bool if condition")
	}
}

func TestMixedListLiteralIsATypeError(t *testing.T) {
	if _, err := inferSource(t, "[1, true, 3]"); err == nil {
		t.Fatalf("expected a type error for a mixed-type list literal")
	}
}
