package interp

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/google/go-cmp/cmp"
	"github.com/paiml/ruchy-sub004/parser"
)

func run(t *testing.T, src string) (Value, error) {
	t.Helper()
	prog, errs := parser.ParseSource(src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return New().Run(prog)
}

func TestBlockScopeVisibility(t *testing.T) {
	v, err := run(t, "let x = 42\nx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(Integer) != 42 {
		t.Fatalf("expected 42, got %v", v)
	}
}

func TestDefaultParameterScoping(t *testing.T) {
	v, err := run(t, "fun f(a, b = a + 1) { b }\nf(10)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(Integer) != 11 {
		t.Fatalf("expected b = 11, got %v", v)
	}
}

func TestInheritedFieldDefaultViaQualifiedConstructor(t *testing.T) {
	src := `class P { x: i32 = 1 }
class C : P { }
C::new().x`
	v, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(Integer) != 1 {
		t.Fatalf("expected inherited default 1, got %v", v)
	}
}

func TestCounterFieldAssignmentRoundTrip(t *testing.T) {
	src := `class Counter {
	count: i32
	new() { self.count = 0 }
	fun increment() { self.count = self.count + 1 }
}
let c = Counter::new()
c.increment()
c.increment()
c.count`
	v, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(Integer) != 2 {
		t.Fatalf("expected count 2, got %v", v)
	}
}

func TestConstructorReturningObjectLiteralBecomesInstance(t *testing.T) {
	src := `class Point {
	x: i32 = 0
	y: i32 = 0
	new(x, y) { Point { x: x, y: y } }
}
let p = Point::new(3, 4)
p.x + p.y`
	v, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(Integer) != 7 {
		t.Fatalf("expected 7, got %v", v)
	}
}

func TestStrictNumericCoercionRejectsMixedArithmetic(t *testing.T) {
	if _, err := run(t, "1 + 1.5"); err == nil {
		t.Fatalf("expected a type error mixing Integer and Float")
	}
}

func TestNonExhaustiveMatchErrorsByDefault(t *testing.T) {
	if _, err := run(t, "match 1 { 2 => 2 }"); err == nil {
		t.Fatalf("expected a NonExhaustiveMatch runtime error")
	}
}

func TestNonExhaustiveMatchIsUnitOption(t *testing.T) {
	prog, errs := parser.ParseSource("match 1 { 2 => 2 }")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	v, err := New(WithNonExhaustiveMatchIsUnit()).Run(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.(Unit); !ok {
		t.Fatalf("expected Unit, got %v", v)
	}
}

func TestSessionCompleteMatchesPrefixAcrossScopeBuiltinsAndKeywords(t *testing.T) {
	s := NewSession()
	prog, errs := parser.ParseSource("let matching_var = 1")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if _, err := s.Eval(prog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	candidates := s.Complete("mat")
	want := map[string]bool{"matching_var": true, "match": true}
	got := map[string]bool{}
	for _, c := range candidates {
		got[c] = true
	}
	for name := range want {
		if !got[name] {
			t.Fatalf("expected %q among completions for \"mat\", got %v", name, candidates)
		}
	}
	for _, c := range candidates {
		if c[:min(3, len(c))] != "mat" {
			t.Fatalf("completion %q does not share the \"mat\" prefix", c)
		}
	}
}

func TestListValueTreeStructuralComparison(t *testing.T) {
	v, err := run(t, "[1, 2, 3].map(|x| x * 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := v.(*List)
	if !ok {
		t.Fatalf("expected *List, got %T", v)
	}
	want := &List{Elems: []Value{Integer(2), Integer(4), Integer(6)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected list contents (-want +got):\n%s", diff)
	}
}

func TestSessionPersistsBindingsAcrossEvalCalls(t *testing.T) {
	s := NewSession()
	prog1, errs := parser.ParseSource("let counter = 1")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if _, err := s.Eval(prog1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prog2, errs := parser.ParseSource("counter + 1")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	v, err := s.Eval(prog2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(Integer) != 2 {
		t.Fatalf("expected the second line to see `counter` bound by the first, got %v", v)
	}
	if s.Count() != 2 {
		t.Fatalf("expected Count() == 2, got %d", s.Count())
	}
}

func TestPrintlnOutputSnapshot(t *testing.T) {
	var buf bytes.Buffer
	prog, errs := parser.ParseSource(`println("hello, ruchy")`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if _, err := New(WithStdout(&buf)).Run(prog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, buf.String())
}
