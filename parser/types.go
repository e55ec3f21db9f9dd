package parser

import (
	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/token"
)

// parseTypeExpr parses a syntactic type annotation: a named type with
// optional `<...>` generic args, `[T]` list, `(T1, T2)` tuple or
// function type, and any number of trailing `?` optional markers.
func (p *Parser) parseTypeExpr() *ast.TypeExpr {
	t := p.parseTypeExprPrimary()
	for p.at(token.QUESTION) {
		p.advance()
		t = &ast.TypeExpr{Kind: ast.TypeOptional, Elem: t}
	}
	return t
}

func (p *Parser) parseTypeExprPrimary() *ast.TypeExpr {
	switch p.cur().Kind {
	case token.LBRACK:
		p.advance()
		elem := p.parseTypeExpr()
		p.expect(token.RBRACK)
		return &ast.TypeExpr{Kind: ast.TypeList, Elem: elem}
	case token.LPAREN:
		p.advance()
		var elems []*ast.TypeExpr
		for !p.at(token.RPAREN) && !p.atEOF() {
			elems = append(elems, p.parseTypeExpr())
			if p.at(token.COMMA) {
				p.advance()
			} else {
				break
			}
		}
		p.expect(token.RPAREN)
		if p.at(token.ARROW) {
			p.advance()
			ret := p.parseTypeExpr()
			return &ast.TypeExpr{Kind: ast.TypeFunction, Params: elems, Return: ret}
		}
		if len(elems) == 1 {
			return elems[0]
		}
		return &ast.TypeExpr{Kind: ast.TypeTuple, Elements: elems}
	default:
		name := p.expect(token.IDENT).Literal
		var args []*ast.TypeExpr
		if p.at(token.LT) {
			p.advance()
			for !p.at(token.GT) && !p.atEOF() {
				args = append(args, p.parseTypeExpr())
				if p.at(token.COMMA) {
					p.advance()
				} else {
					break
				}
			}
			p.expect(token.GT)
		}
		if name == "Result" && len(args) == 2 {
			return &ast.TypeExpr{Kind: ast.TypeResult, Ok: args[0], Err: args[1]}
		}
		return &ast.TypeExpr{Kind: ast.TypeNamed, Name: name, TypeArgs: args}
	}
}
