package lint_test

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/lint"
	"github.com/paiml/ruchy-sub004/parser"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := parser.ParseSource(src)
	if len(errs) > 0 {
		t.Fatalf("parse error: %v", errs)
	}
	return prog
}

func rulesOf(diags []lint.Diagnostic) []lint.Rule {
	var out []lint.Rule
	for _, d := range diags {
		out = append(out, d.Rule)
	}
	return out
}

func hasRule(diags []lint.Diagnostic, r lint.Rule) bool {
	for _, d := range diags {
		if d.Rule == r {
			return true
		}
	}
	return false
}

func TestBlockScopeVisibilityHasNoIssues(t *testing.T) {
	prog := parseProgram(t, "let x = 42\nx")
	diags := lint.New().Lint(prog)
	if len(diags) != 0 {
		t.Fatalf("expected zero diagnostics for statement-level let use, got %v", diags)
	}
}

func TestUndefinedIdentifier(t *testing.T) {
	prog := parseProgram(t, "undefinedThing")
	diags := lint.New().Lint(prog)
	if !hasRule(diags, lint.RuleUndefined) {
		t.Fatalf("expected an undefined diagnostic, got %v", rulesOf(diags))
	}
}

func TestUnusedExpressionLevelLet(t *testing.T) {
	prog := parseProgram(t, "let x = 1 in 2")
	diags := lint.New().Lint(prog)
	if !hasRule(diags, lint.RuleUnused) {
		t.Fatalf("expected an unused diagnostic for x, got %v", rulesOf(diags))
	}
}

func TestUnderscoreNeverFlagged(t *testing.T) {
	prog := parseProgram(t, "let _ = 1 in 2")
	diags := lint.New().Lint(prog)
	if hasRule(diags, lint.RuleUnused) || hasRule(diags, lint.RuleUndefined) {
		t.Fatalf("expected _ binding to be exempt, got %v", rulesOf(diags))
	}
}

func TestBuiltinsAreNotUndefined(t *testing.T) {
	prog := parseProgram(t, `println("hi")`)
	diags := lint.New().Lint(prog)
	if hasRule(diags, lint.RuleUndefined) {
		t.Fatalf("expected println to be exempt from undefined, got %v", diags)
	}
}

func TestExtendedBuiltinsAreNotUndefined(t *testing.T) {
	prog := parseProgram(t, "HashMap\nfs_read\nhttp_get\nrange")
	diags := lint.New().Lint(prog)
	if hasRule(diags, lint.RuleUndefined) {
		t.Fatalf("expected HashMap/fs_read/http_get/range to be exempt, got %v", diags)
	}
}

func TestWithRulesRestrictsActiveCategories(t *testing.T) {
	prog := parseProgram(t, "let x = 1 in 2\nundefinedThing")

	onlyUndefined := lint.New(lint.WithRules("undefined")).Lint(prog)
	if hasRule(onlyUndefined, lint.RuleUnused) {
		t.Fatalf("expected unused diagnostics suppressed by WithRules(\"undefined\"), got %v", onlyUndefined)
	}
	if !hasRule(onlyUndefined, lint.RuleUndefined) {
		t.Fatalf("expected undefined diagnostic to still fire, got %v", onlyUndefined)
	}

	onlyUnused := lint.New(lint.WithRules("unused")).Lint(prog)
	if hasRule(onlyUnused, lint.RuleUndefined) {
		t.Fatalf("expected undefined diagnostics suppressed by WithRules(\"unused\"), got %v", onlyUnused)
	}
	if !hasRule(onlyUnused, lint.RuleUnused) {
		t.Fatalf("expected unused diagnostic to still fire, got %v", onlyUnused)
	}
}

func TestDefaultParameterScopesOverPriorParams(t *testing.T) {
	prog := parseProgram(t, "fun f(a, b = a + 1) { a + b }\nf(10)")
	diags := lint.New().Lint(prog)
	if hasRule(diags, lint.RuleUndefined) {
		t.Fatalf("default param referencing an earlier param should not be undefined, got %v", diags)
	}
}

func TestShadowWarningsOptIn(t *testing.T) {
	src := "let x = 1 in (let x = 2 in x)"
	prog := parseProgram(t, src)

	plain := lint.New().Lint(prog)
	if hasRule(plain, lint.RuleShadow) {
		t.Fatalf("shadow warnings should be off by default, got %v", plain)
	}

	withShadow := lint.New(lint.WithShadowWarnings()).Lint(prog)
	if !hasRule(withShadow, lint.RuleShadow) {
		t.Fatalf("expected a shadow diagnostic with WithShadowWarnings, got %v", rulesOf(withShadow))
	}
}

func TestStrictPromotesWarningsToErrors(t *testing.T) {
	prog := parseProgram(t, "let x = 1 in 2")
	diags := lint.New(lint.WithStrict()).Lint(prog)
	for _, d := range diags {
		if d.Rule == lint.RuleUnused && d.Severity != lint.SeverityError {
			t.Fatalf("expected strict mode to promote unused to error, got %v", d)
		}
	}
}

func TestComplexityWarningOnDeeplyBranchingFunction(t *testing.T) {
	src := `fun f(x) {
		if x == 1 { 1 }
		else if x == 2 { 2 }
		else if x == 3 { 3 }
		else if x == 4 { 4 }
		else if x == 5 { 5 }
		else if x == 6 { 6 }
		else if x == 7 { 7 }
		else if x == 8 { 8 }
		else if x == 9 { 9 }
		else if x == 10 { 10 }
		else { 0 }
	}`
	prog := parseProgram(t, src)
	diags := lint.New(lint.WithMaxComplexity(3)).Lint(prog)
	if !hasRule(diags, lint.RuleComplexity) {
		t.Fatalf("expected a complexity diagnostic, got %v", rulesOf(diags))
	}
}

func TestMatchArmScopesBindingsSeparately(t *testing.T) {
	src := `let pair = (1, 2) in
	match pair {
		(a, b) => a + b
	}`
	prog := parseProgram(t, src)
	diags := lint.New().Lint(prog)
	if hasRule(diags, lint.RuleUndefined) || hasRule(diags, lint.RuleUnused) {
		t.Fatalf("expected match-arm bindings a and b to be defined and used, got %v", diags)
	}
}

func TestDiagnosticJSONShapeSnapshot(t *testing.T) {
	prog := parseProgram(t, "let x = 1 in 2")
	diags := lint.New().Lint(prog)
	out, err := json.MarshalIndent(diags, "", "  ")
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	snaps.MatchSnapshot(t, string(out))
}
