package parser

import (
	"strconv"
	"strings"

	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/token"
)

func (p *Parser) parseLiteral() ast.Expr {
	t := p.advance()
	switch t.Kind {
	case token.INT:
		n, _ := strconv.ParseInt(t.Literal, 10, 64)
		return ast.NewLiteral(t.Span, ast.LiteralValue{Kind: ast.LitInt, Int: n})
	case token.FLOAT:
		f, _ := strconv.ParseFloat(t.Literal, 64)
		return ast.NewLiteral(t.Span, ast.LiteralValue{Kind: ast.LitFloat, Float: f})
	case token.STRING:
		return ast.NewLiteral(t.Span, ast.LiteralValue{Kind: ast.LitString, Str: t.Literal})
	case token.CHAR:
		r := rune(0)
		for _, rr := range t.Literal {
			r = rr
			break
		}
		return ast.NewLiteral(t.Span, ast.LiteralValue{Kind: ast.LitChar, Char: r})
	case token.TRUE:
		return ast.NewLiteral(t.Span, ast.LiteralValue{Kind: ast.LitBool, Bool: true})
	case token.FALSE:
		return ast.NewLiteral(t.Span, ast.LiteralValue{Kind: ast.LitBool, Bool: false})
	case token.NIL:
		return ast.NewLiteral(t.Span, ast.LiteralValue{Kind: ast.LitNil})
	default:
		return ast.NewLiteral(t.Span, ast.LiteralValue{Kind: ast.LitUnit})
	}
}

// parseIdentifierOrConstructor handles IDENT tokens: plain identifiers,
// `A::B` qualified paths, and capitalized struct-literal heads.
// `Some`/`None`/`Ok`/`Err` lex as keyword tokens and are not handled
// here; parsePrefix rejects them in expression position, so they are
// accepted only as patterns (see parsePatternPrimary).
func (p *Parser) parseIdentifierOrConstructor() ast.Expr {
	t := p.advance()
	id := ast.NewIdentifier(t.Span, t.Literal)
	if p.at(token.COLON_COLON) {
		return p.parseQualifiedPath(id)
	}
	if p.at(token.LBRACE) && canStartStructLiteral(t.Literal) {
		return p.parseStructLiteral(id)
	}
	return id
}

// canStartStructLiteral is a simple heuristic: a capitalized
// identifier followed directly by `{` is treated as a struct/class
// literal head (`Point { x: 1, y: 2 }`), matching the parser's
// constructor-head grouping in spec §4.2. Lowercase identifiers never
// trigger this so that `if x {`/`for x in y {` blocks aren't swallowed
// — control-flow heads are parsed by their own sub-parsers before this
// path is ever reached.
func canStartStructLiteral(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}

func (p *Parser) parseQualifiedPath(first *ast.Identifier) ast.Expr {
	start := first.Span().Start
	segs := []string{first.Name}
	for p.at(token.COLON_COLON) {
		p.advance()
		segs = append(segs, p.expect(token.IDENT).Literal)
	}
	// `ClassName::CONST` or `module::path` — represented as a single
	// Identifier whose name is the segments joined with `::`, so the
	// interpreter's identifier lookup handles both module paths and
	// class-constant lookups uniformly.
	joined := strings.Join(segs, "::")
	return ast.NewIdentifier(p.span(start), joined)
}

func (p *Parser) parseStructLiteral(name *ast.Identifier) ast.Expr {
	start := name.Span().Start
	p.expect(token.LBRACE)
	var fields []ast.StructLiteralField
	for !p.at(token.RBRACE) && !p.atEOF() {
		fieldName := p.expect(token.IDENT).Literal
		var valueExpr ast.Expr
		if p.at(token.COLON) {
			p.advance()
			valueExpr = p.parseExpr(ASSIGN)
		}
		fields = append(fields, ast.StructLiteralField{Name: fieldName, Value: valueExpr})
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return &ast.StructLiteral{Base: newBase(ast.KCall, p.span(start)), Name: name.Name, Fields: fields}
}

func (p *Parser) parseListLiteral() ast.Expr {
	start := p.cur().Span.Start
	p.expect(token.LBRACK)
	var elems []ast.Expr
	for !p.at(token.RBRACK) && !p.atEOF() {
		elems = append(elems, p.parseExpr(ASSIGN))
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACK)
	return &ast.List{Base: newBase(ast.KList, p.span(start)), Elements: elems}
}

// parseParenTupleOrLambda disambiguates `(expr)` grouping, `(a, b)`
// tuples, `()` unit, and zero-parameter lambdas `() => body` /
// `() -> T => body`. A parenthesized list with parameters is always
// parsed as grouping or a tuple, never as a lambda head.
func (p *Parser) parseParenTupleOrLambda() ast.Expr {
	start := p.cur().Span.Start
	p.expect(token.LPAREN)
	if p.at(token.RPAREN) {
		p.advance()
		if p.at(token.FAT_ARROW) || p.at(token.ARROW) {
			return p.parseLambdaFrom(start, nil)
		}
		return ast.NewLiteral(p.span(start), ast.LiteralValue{Kind: ast.LitUnit})
	}
	first := p.parseExpr(ASSIGN)
	if p.at(token.COMMA) {
		elems := []ast.Expr{first}
		for p.at(token.COMMA) {
			p.advance()
			if p.at(token.RPAREN) {
				break
			}
			elems = append(elems, p.parseExpr(ASSIGN))
		}
		p.expect(token.RPAREN)
		return &ast.Tuple{Base: newBase(ast.KTuple, p.span(start)), Elements: elems}
	}
	p.expect(token.RPAREN)
	return first
}

// parseLambda handles `|x, y| body` closures.
func (p *Parser) parseLambda() ast.Expr {
	start := p.cur().Span.Start
	p.expect(token.PIPE)
	var params []ast.Param
	for !p.at(token.PIPE) && !p.atEOF() {
		params = append(params, p.parseParam())
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.PIPE)
	body := p.parseExpr(ASSIGN)
	return &ast.Lambda{Base: newBase(ast.KLambda, p.span(start)), Params: params, Body: body}
}

func (p *Parser) parseLambdaFrom(start token.Position, params []ast.Param) ast.Expr {
	if p.at(token.ARROW) {
		p.advance()
		p.parseTypeExpr()
	}
	p.expect(token.FAT_ARROW)
	body := p.parseExpr(ASSIGN)
	return &ast.Lambda{Base: newBase(ast.KLambda, p.span(start)), Params: params, Body: body}
}

func (p *Parser) parseParam() ast.Param {
	variadic := false
	if p.at(token.DOT_DOT_DOT) {
		p.advance()
		variadic = true
	}
	name := p.expect(token.IDENT).Literal
	var typ *ast.TypeExpr
	if p.at(token.COLON) {
		p.advance()
		typ = p.parseTypeExpr()
	}
	var def ast.Expr
	if p.at(token.ASSIGN) {
		p.advance()
		def = p.parseExpr(ASSIGN)
	}
	return ast.Param{Name: name, TypeAnnotation: typ, Default: def, IsVariadic: variadic}
}
