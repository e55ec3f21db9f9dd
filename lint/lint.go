// Package lint walks a parsed program with a scope chain that mirrors
// interp.Environment's nesting exactly, flagging undefined references,
// unused bindings, optional shadowing, and over-complex functions, per
// spec §4.5.
package lint

import (
	"sort"

	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/interp"
	"github.com/paiml/ruchy-sub004/token"
)

// Linter accumulates diagnostics while walking a Program.
type Linter struct {
	cfg      config
	builtins map[string]bool
	diags    []Diagnostic
}

// New creates a Linter. The built-in exemption set is taken directly
// from interp.BuiltinNames so the two packages can never drift apart.
func New(opts ...Option) *Linter {
	l := &Linter{cfg: newConfig(opts...), builtins: map[string]bool{}}
	for _, name := range interp.BuiltinNames() {
		l.builtins[name] = true
	}
	return l
}

// Lint walks prog's top-level expressions in a single global scope and
// returns every diagnostic found, sorted by source position for stable
// output.
func (l *Linter) Lint(prog *ast.Program) []Diagnostic {
	l.diags = nil
	global := NewScope(nil)
	for _, e := range prog.Exprs {
		l.visit(global, e)
	}
	l.checkUnused(global)
	sort.SliceStable(l.diags, func(i, j int) bool {
		if l.diags[i].Line != l.diags[j].Line {
			return l.diags[i].Line < l.diags[j].Line
		}
		return l.diags[i].Column < l.diags[j].Column
	})
	return l.diags
}

func (l *Linter) report(d Diagnostic) {
	l.diags = append(l.diags, d)
}

func (l *Linter) pos(e ast.Expr) token.Position {
	return e.Span().Start
}

func (l *Linter) reportAt(pos token.Position, sev Severity, rule Rule, typ, name, msg, suggestion string) {
	l.report(Diagnostic{
		Line: pos.Line, Column: pos.Column, Severity: l.cfg.severity(sev),
		Rule: rule, Message: msg, Suggestion: suggestion, Type: typ, Name: name,
	})
}

// checkUnused emits an "unused" diagnostic for every still-unread
// binding in scope; each scope is checked once, when it closes. Identifiers named
// "_" never make it into a Scope at all (Scope.Define exempts them),
// so no explicit check is needed here.
func (l *Linter) checkUnused(scope *Scope) {
	if !l.cfg.enabled("unused") {
		return
	}
	unused := scope.Unused()
	sort.Slice(unused, func(i, j int) bool { return unused[i].Name < unused[j].Name })
	for _, vi := range unused {
		l.reportAt(vi.Pos, SeverityWarning, RuleUnused, vi.Kind.String(), vi.Name,
			vi.Kind.String()+" \""+vi.Name+"\" is never used",
			"prefix with \"_\" if this is intentional")
	}
}

// defineAndCheckShadow defines name in scope, first emitting a
// "shadow" warning if it already exists in an outer scope and shadow
// warnings are enabled.
func (l *Linter) defineAndCheckShadow(scope *Scope, name string, kind VarKind, pos token.Position) {
	if name == "_" {
		return
	}
	if l.cfg.shadowWarnings && l.cfg.enabled("shadowing") && scope.ExistsOutward(name) {
		l.reportAt(pos, SeverityWarning, RuleShadow, kind.String(), name,
			kind.String()+" \""+name+"\" shadows an outer binding", "rename this binding")
	}
	scope.Define(name, kind, pos)
}

// visit dispatches on e's concrete type, following the interpreter's
// own eval switch in interpreter.go so the two walks stay structurally
// aligned.
func (l *Linter) visit(scope *Scope, e ast.Expr) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.Literal:
		// no sub-expressions, nothing to visit

	case *ast.Identifier:
		l.visitIdentifierUse(scope, n)

	case *ast.Binary:
		l.visit(scope, n.Left)
		l.visit(scope, n.Right)

	case *ast.Unary:
		l.visit(scope, n.Operand)

	case *ast.Let:
		l.visit(scope, n.Value)
		if isUnitBody(n.Body) {
			l.defineAndCheckShadow(scope, n.Name, VarLet, l.pos(n))
			return
		}
		child := NewScope(scope)
		l.defineAndCheckShadow(child, n.Name, VarLet, l.pos(n))
		l.visit(child, n.Body)
		l.checkUnused(child)

	case *ast.LetPattern:
		l.visit(scope, n.Value)
		if isUnitBody(n.Body) {
			l.defineFromPattern(scope, n.Pattern)
			return
		}
		child := NewScope(scope)
		l.defineFromPattern(child, n.Pattern)
		l.visit(child, n.Body)
		l.checkUnused(child)

	case *ast.Block:
		for _, sub := range n.Exprs {
			l.visit(scope, sub)
		}

	case *ast.If:
		l.visit(scope, n.Condition)
		l.visit(scope, n.Then)
		if n.Else != nil {
			l.visit(scope, n.Else)
		}

	case *ast.IfLet:
		l.visit(scope, n.Expr)
		child := NewScope(scope)
		l.defineFromPattern(child, n.Pattern)
		l.visit(child, n.Then)
		l.checkUnused(child)
		if n.Else != nil {
			l.visit(scope, n.Else)
		}

	case *ast.Match:
		l.visit(scope, n.Scrutinee)
		for _, arm := range n.Arms {
			child := NewScope(scope)
			l.defineFromPattern(child, arm.Pattern)
			if arm.Guard != nil {
				l.visit(child, arm.Guard)
			}
			l.visit(child, arm.Body)
			l.checkUnused(child)
		}
		l.checkOrPatternBindings(n)

	case *ast.While:
		l.visit(scope, n.Condition)
		l.visit(scope, n.Body)

	case *ast.WhileLet:
		l.visit(scope, n.Expr)
		child := NewScope(scope)
		l.defineFromPattern(child, n.Pattern)
		l.visit(child, n.Body)
		l.checkUnused(child)

	case *ast.For:
		l.visit(scope, n.Iterable)
		child := NewScope(scope)
		l.definePatternAs(child, n.Pattern, VarLoopVar)
		l.visit(child, n.Body)
		l.checkUnused(child)

	case *ast.Loop:
		l.visit(scope, n.Body)

	case *ast.Break:
		if n.Value != nil {
			l.visit(scope, n.Value)
		}

	case *ast.Continue:
		// leaf

	case *ast.Return:
		if n.Value != nil {
			l.visit(scope, n.Value)
		}

	case *ast.Function:
		scope.Define(n.Name, VarFunction, l.pos(n))
		child := NewScope(scope)
		l.defineParams(child, n.Params)
		l.visit(child, n.Body)
		score := complexity(n.Body)
		if l.cfg.enabled("complexity") && score > l.cfg.maxComplexity {
			l.reportAt(l.pos(n), SeverityWarning, RuleComplexity, "function", n.Name,
				"function \""+n.Name+"\" has cyclomatic complexity", "break this function into smaller pieces")
		}
		l.checkUnused(child)

	case *ast.Lambda:
		child := NewScope(scope)
		l.defineParams(child, n.Params)
		l.visit(child, n.Body)
		l.checkUnused(child)

	case *ast.Call:
		l.visit(scope, n.Func)
		for _, a := range n.Args {
			l.visit(scope, a)
		}

	case *ast.MethodCall:
		l.visit(scope, n.Receiver)
		for _, a := range n.Args {
			l.visit(scope, a)
		}

	case *ast.FieldAccess:
		l.visit(scope, n.Receiver)

	case *ast.IndexAccess:
		l.visit(scope, n.Receiver)
		l.visit(scope, n.Index)

	case *ast.List:
		for _, el := range n.Elements {
			l.visit(scope, el)
		}

	case *ast.Tuple:
		for _, el := range n.Elements {
			l.visit(scope, el)
		}

	case *ast.Range:
		l.visit(scope, n.Start)
		l.visit(scope, n.End)

	case *ast.StringInterpolation:
		for _, part := range n.Parts {
			if part.Expr != nil {
				l.visit(scope, part.Expr)
			}
		}

	case *ast.Spread:
		l.visit(scope, n.Value)

	case *ast.Pipeline:
		l.visit(scope, n.Left)
		l.visit(scope, n.Right)

	case *ast.Assign:
		l.visit(scope, n.Target)
		l.visit(scope, n.Value)

	case *ast.IncDec:
		l.visit(scope, n.Operand)

	case *ast.StructLiteral:
		for _, f := range n.Fields {
			if f.Value != nil {
				l.visit(scope, f.Value)
			}
		}

	case *ast.Class:
		l.visitClass(scope, n)

	case *ast.Struct:
		// field type annotations only, nothing to visit

	case *ast.Trait:
		// method signatures only, nothing to visit

	case *ast.Impl:
		for _, m := range n.Methods {
			child := NewScope(scope)
			child.Define("self", VarParam, l.pos(n))
			l.defineParams(child, m.Params)
			l.visit(child, m.Body)
			l.checkUnused(child)
		}

	case *ast.Enum:
		// variant declarations only, nothing to visit

	case *ast.Actor:
		for _, h := range n.Handlers {
			child := NewScope(scope)
			child.Define("self", VarParam, l.pos(n))
			l.defineParams(child, h.Params)
			l.visit(child, h.Body)
			l.checkUnused(child)
		}

	case *ast.Effect:
		// operation signatures only, nothing to visit

	case *ast.Handle:
		for _, c := range n.Cases {
			child := NewScope(scope)
			l.defineParams(child, c.Params)
			l.visit(child, c.Body)
			l.checkUnused(child)
		}
		l.visit(scope, n.Body)

	case *ast.TryCatch:
		l.visit(scope, n.TryBlock)
		for _, c := range n.Catches {
			child := NewScope(scope)
			if c.Pattern != nil {
				l.defineFromPattern(child, c.Pattern)
			}
			l.visit(child, c.Body)
			l.checkUnused(child)
		}
		if n.Finally != nil {
			l.visit(scope, n.Finally)
		}

	case *ast.Throw:
		l.visit(scope, n.Value)

	case *ast.Await:
		l.visit(scope, n.Value)

	case *ast.Spawn:
		l.visit(scope, n.ActorExpr)
		for _, a := range n.Args {
			l.visit(scope, a)
		}

	case *ast.Send:
		l.visit(scope, n.Target)
		l.visit(scope, n.Message)

	case *ast.Module:
		l.visit(scope, n.Body)

	case *ast.Import, *ast.ImportAll, *ast.ImportDefault:
		// nothing to resolve; module resolution is external
	}
}

func (l *Linter) visitIdentifierUse(scope *Scope, n *ast.Identifier) {
	if _, ok := scope.Lookup(n.Name); ok {
		return
	}
	if l.builtins[n.Name] {
		return
	}
	if isQualifiedName(n.Name) {
		// `Class::member` references are resolved against class
		// metadata at runtime, not the lexical scope chain; the
		// linter doesn't track class definitions, so it stays silent
		// rather than false-positive on every qualified reference.
		return
	}
	if !l.cfg.enabled("undefined") {
		return
	}
	l.reportAt(l.pos(n), SeverityError, RuleUndefined, "identifier", n.Name,
		"undefined name \""+n.Name+"\"", "check for a typo or missing import")
}

func isQualifiedName(name string) bool {
	for i := 0; i+1 < len(name); i++ {
		if name[i] == ':' && name[i+1] == ':' {
			return true
		}
	}
	return false
}

func (l *Linter) visitClass(scope *Scope, n *ast.Class) {
	classScope := NewScope(scope)
	for _, f := range n.Fields {
		if f.Default != nil {
			l.visit(scope, f.Default)
		}
	}
	for _, c := range n.Constructors {
		child := NewScope(classScope)
		child.Define("self", VarParam, l.pos(n))
		l.defineParams(child, c.Params)
		l.visit(child, c.Body)
		l.checkUnused(child)
	}
	for _, m := range n.Methods {
		child := NewScope(classScope)
		if !m.IsStatic {
			child.Define("self", VarParam, l.pos(n))
		}
		l.defineParams(child, m.Params)
		l.visit(child, m.Body)
		l.checkUnused(child)
	}
	for _, c := range n.Constants {
		l.visit(scope, c.Value)
	}
}

func (l *Linter) defineParams(scope *Scope, params []ast.Param) {
	for _, p := range params {
		if p.Default != nil {
			l.visit(scope, p.Default)
		}
		scope.Define(p.Name, VarParam, token.Position{})
	}
}

// definePatternAs binds every name a pattern introduces, all tagged
// with the same kind — used for For's loop-variable pattern.
func (l *Linter) definePatternAs(scope *Scope, pat *ast.Pattern, kind VarKind) {
	for _, name := range patternNames(pat) {
		l.defineAndCheckShadow(scope, name, kind, token.Position{})
	}
}

// defineFromPattern binds a match-arm/let/catch pattern's names as
// match bindings.
func (l *Linter) defineFromPattern(scope *Scope, pat *ast.Pattern) {
	l.definePatternAs(scope, pat, VarMatchBinding)
}

// patternNames collects every identifier a pattern binds, recursing
// into nested sub-patterns.
func patternNames(pat *ast.Pattern) []string {
	if pat == nil {
		return nil
	}
	var names []string
	switch pat.Kind {
	case ast.PatIdentifier:
		names = append(names, pat.Name)
	case ast.PatAtBinding:
		names = append(names, pat.Name)
		names = append(names, patternNames(pat.Inner)...)
	case ast.PatTuple, ast.PatList:
		for _, el := range pat.Elements {
			names = append(names, patternNames(el)...)
		}
		if pat.HasRest && pat.RestName != "" {
			names = append(names, pat.RestName)
		}
	case ast.PatStruct:
		for _, f := range pat.Fields {
			if f.Pattern != nil {
				names = append(names, patternNames(f.Pattern)...)
			} else {
				names = append(names, f.Name)
			}
		}
	case ast.PatOr:
		if len(pat.Alternatives) > 0 {
			names = append(names, patternNames(pat.Alternatives[0])...)
		}
	case ast.PatWithDefault:
		names = append(names, patternNames(pat.Inner)...)
	case ast.PatSome, ast.PatOk, ast.PatErr:
		names = append(names, patternNames(pat.Inner)...)
	}
	return names
}
