package parser

import (
	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/token"
)

// parseTryCatch parses `try block catch(pattern)? { } * finally? { }`,
// enforcing spec §4.2's validation rule: a bare `try { }` with neither
// a catch clause nor a finally block is rejected outright.
func (p *Parser) parseTryCatch() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'try'
	tryBlock := p.parseBlock()

	var catches []ast.CatchClause
	for p.at(token.CATCH) {
		p.advance()
		var pat *ast.Pattern
		if p.at(token.LPAREN) {
			p.advance()
			pat = p.parsePattern()
			p.expect(token.RPAREN)
		}
		body := p.parseBlock()
		catches = append(catches, ast.CatchClause{Pattern: pat, Body: body})
	}

	var finally ast.Expr
	if p.at(token.FINALLY) {
		p.advance()
		finally = p.parseBlock()
	}

	if len(catches) == 0 && finally == nil {
		p.errorf("try requires at least one catch clause or a finally block")
	}

	return &ast.TryCatch{Base: newBase(ast.KTryCatch, p.span(start)), TryBlock: tryBlock, Catches: catches, Finally: finally}
}

// parseThrow parses `throw expr`.
func (p *Parser) parseThrow() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'throw'
	val := p.parseExpr(ASSIGN)
	return &ast.Throw{Base: newBase(ast.KThrow, p.span(start)), Value: val}
}
