package lint

import (
	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/token"
)

// isUnitBody reports whether e is the synthesized Literal(Unit) body
// the parser attaches to a statement-level let, mirroring
// interp.isUnitBody and types.isUnitLiteral exactly — the third
// consumer of this one invariant.
func isUnitBody(e ast.Expr) bool {
	lit, ok := e.(*ast.Literal)
	return ok && lit.Value.Kind == ast.LitUnit
}

// checkOrPatternBindings is a best-effort static check that every
// alternative of an or-pattern (`pat1 | pat2 | ...`) binds the same
// set of names — mismatched bindings make whichever name one
// alternative omits undefined on that branch, a footgun spec's
// Open-Question resolution flags as linter-only (the interpreter
// doesn't enforce it; this warns on the arm, not each identifier use).
func (l *Linter) checkOrPatternBindings(n *ast.Match) {
	pos := l.pos(n)
	for _, arm := range n.Arms {
		l.checkOrPattern(pos, arm.Pattern)
	}
}

func (l *Linter) checkOrPattern(pos token.Position, pat *ast.Pattern) {
	if pat == nil {
		return
	}
	if pat.Kind == ast.PatOr {
		var want map[string]bool
		for i, alt := range pat.Alternatives {
			got := nameSet(patternNames(alt))
			if i == 0 {
				want = got
				continue
			}
			if !sameNameSet(want, got) {
				l.reportAt(pos, SeverityWarning, RuleOrPatternMismatch, "pattern", "",
					"alternatives of this or-pattern bind different names",
					"bind the same set of names in every alternative")
				break
			}
		}
	}
	for _, el := range pat.Elements {
		l.checkOrPattern(pos, el)
	}
	for _, f := range pat.Fields {
		l.checkOrPattern(pos, f.Pattern)
	}
	for _, alt := range pat.Alternatives {
		l.checkOrPattern(pos, alt)
	}
	l.checkOrPattern(pos, pat.Inner)
}

func nameSet(names []string) map[string]bool {
	m := map[string]bool{}
	for _, n := range names {
		m[n] = true
	}
	return m
}

func sameNameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
