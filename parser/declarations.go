package parser

import (
	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/token"
)

// parseLetDecl parses `let`/`var`/`const` [mut] pattern [: type] = value
// [in body] [else block]. A destructuring pattern (anything but a bare
// identifier) produces a LetPattern; a bare identifier produces a Let.
// Per spec §3's central invariant, the absence of `in body` makes the
// binding statement-level: the parser synthesizes a Literal(Unit) body
// so the interpreter and linter need only inspect Body's kind.
func (p *Parser) parseLetDecl() ast.Expr {
	start := p.cur().Span.Start
	kw := p.advance() // let | var | const
	mut := kw.Kind == token.VAR
	if p.at(token.MUT) {
		p.advance()
		mut = true
	}
	pat := p.parseBindingTarget()
	var typ *ast.TypeExpr
	if p.at(token.COLON) {
		p.advance()
		typ = p.parseTypeExpr()
	}
	p.expect(token.ASSIGN)
	value := p.parseExpr(ASSIGN)

	var body ast.Expr
	if p.at(token.IN) {
		p.advance()
		body = p.parseExpr(ASSIGN)
	} else {
		body = unitLiteral(p.span(start))
	}

	var elseBlock ast.Expr
	if p.at(token.ELSE) {
		p.advance()
		elseBlock = p.parseBlock()
	}

	if pat.ident != "" {
		return &ast.Let{
			Base: newBase(ast.KLet, p.span(start)), Name: pat.ident,
			TypeAnnotation: typ, Value: value, Body: body, IsMutable: mut,
			IsConst: kw.Kind == token.CONST, ElseBlock: elseBlock,
		}
	}
	return &ast.LetPattern{
		Base: newBase(ast.KLetPattern, p.span(start)), Pattern: pat.pattern,
		Value: value, Body: body, IsMutable: mut,
	}
}

// bindingTarget is either a bare identifier (fast path, produces Let)
// or an arbitrary destructuring pattern (produces LetPattern).
type bindingTarget struct {
	ident   string
	pattern *ast.Pattern
}

func (p *Parser) parseBindingTarget() bindingTarget {
	if p.at(token.IDENT) || p.at(token.UNDERSCORE) {
		name := p.advance().Literal
		return bindingTarget{ident: name}
	}
	return bindingTarget{pattern: p.parsePatternPrimary()}
}

func unitLiteral(sp token.Span) ast.Expr {
	return ast.NewLiteral(sp, ast.LiteralValue{Kind: ast.LitUnit})
}

// parseFunction parses `["pub"] ["async"] (fun|fn) name [<T>] (params) [-> T] block`.
// isPub/isAsync let callers (parseModifiedDecl) thread modifiers
// consumed ahead of the `fun`/`fn` keyword.
func (p *Parser) parseFunction(isPub, isAsync bool) ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume fun|fn
	name := p.expect(token.IDENT).Literal
	typeParams := p.parseOptionalTypeParams()
	params := p.parseParamList()
	var ret *ast.TypeExpr
	if p.at(token.ARROW) {
		p.advance()
		ret = p.parseTypeExpr()
	}
	body := p.parseBlock()
	return &ast.Function{
		Base: newBase(ast.KFunction, p.span(start)), Name: name, TypeParams: typeParams,
		Params: params, ReturnType: ret, Body: body, IsAsync: isAsync, IsPub: isPub,
	}
}

func (p *Parser) parseOptionalTypeParams() []string {
	if !p.at(token.LT) {
		return nil
	}
	p.advance()
	var out []string
	for !p.at(token.GT) && !p.atEOF() {
		out = append(out, p.expect(token.IDENT).Literal)
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.GT)
	return out
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	for !p.at(token.RPAREN) && !p.atEOF() {
		params = append(params, p.parseParam())
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

// parseModifiedDecl handles the `pub`/`async` modifier cascade that can
// precede a function, class, struct, trait, enum, or actor declaration
// (spec §4.2's "visibility/modifier cascades").
func (p *Parser) parseModifiedDecl() ast.Expr {
	isPub := false
	isAsync := false
	isStatic := false
	isOverride := false
	isSealed := false
	isFinal := false
	isAbstract := false
	for {
		switch p.cur().Kind {
		case token.PUB:
			isPub = true
			p.advance()
		case token.ASYNC:
			isAsync = true
			p.advance()
		case token.STATIC:
			isStatic = true
			p.advance()
		case token.OVERRIDE:
			isOverride = true
			p.advance()
		default:
			goto dispatch
		}
	}
dispatch:
	switch p.cur().Kind {
	case token.FUN, token.FN:
		fn := p.parseFunction(isPub, isAsync).(*ast.Function)
		fn.IsStatic = isStatic
		fn.IsOverride = isOverride
		return fn
	case token.CLASS:
		return p.parseClass(isPub, isSealed, isFinal, isAbstract)
	case token.STRUCT:
		return p.parseStruct(isPub)
	case token.TRAIT:
		return p.parseTrait(isPub)
	case token.ENUM:
		return p.parseEnum(isPub)
	case token.ACTOR:
		return p.parseActor(isPub)
	case token.EFFECT:
		return p.parseEffect(isPub)
	default:
		p.errorf("expected a declaration after modifiers, got %s", p.cur().Kind)
		p.advance()
		return unitLiteral(p.cur().Span)
	}
}

// parseExport parses `export <decl>` by discarding the keyword and
// parsing the wrapped declaration; module resolution itself is an
// external collaborator per spec §1.
func (p *Parser) parseExport() ast.Expr {
	p.advance() // consume 'export'
	return p.parseExpr(LOWEST)
}

// parseModule parses `module name { body }`.
func (p *Parser) parseModule() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'module'
	name := p.expect(token.IDENT).Literal
	body := p.parseBlock()
	return &ast.Module{Base: newBase(ast.KModule, p.span(start)), Name: name, Body: body}
}

// parseImport handles `import`/`use` forms: `import a::b`,
// `import a::b::*`, `import a::b as c`.
func (p *Parser) parseImport() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume import|use
	segs := []string{p.expect(token.IDENT).Literal}
	for p.at(token.COLON_COLON) {
		p.advance()
		if p.at(token.STAR) {
			p.advance()
			return &ast.ImportAll{Base: newBase(ast.KImportAll, p.span(start)), Path: segs}
		}
		segs = append(segs, p.expect(token.IDENT).Literal)
	}
	if p.at(token.AS) {
		p.advance()
		alias := p.expect(token.IDENT).Literal
		return &ast.ImportDefault{Base: newBase(ast.KImportDefault, p.span(start)), Path: segs, Alias: alias}
	}
	return &ast.Import{Base: newBase(ast.KImport, p.span(start)), Path: segs}
}
