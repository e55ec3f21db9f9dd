package parser

import (
	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/token"
)

// parseMatchPattern parses one full match-arm pattern, folding any
// `|`-joined alternatives (`Pat1 | Pat2 | Pat3`) into a single PatOr
// node per spec §4.2's match-arm grammar.
func (p *Parser) parseMatchPattern() *ast.Pattern {
	first := p.parsePattern()
	if !p.at(token.PIPE) {
		return first
	}
	alts := []*ast.Pattern{first}
	for p.at(token.PIPE) {
		p.advance()
		alts = append(alts, p.parsePattern())
	}
	return &ast.Pattern{Kind: ast.PatOr, Alternatives: alts}
}

// parsePattern parses one pattern plus its optional `..`/`..=` range
// suffix, `@` binding, or `= default` (used in destructured params).
func (p *Parser) parsePattern() *ast.Pattern {
	pat := p.parsePatternPrimary()
	if (p.at(token.DOT_DOT) || p.at(token.DOT_DOT_EQ)) && pat.Kind == ast.PatLiteral {
		inclusive := p.at(token.DOT_DOT_EQ)
		p.advance()
		end := p.parsePatternPrimary()
		return &ast.Pattern{Kind: ast.PatRange, RangeStart: pat.Literal, RangeEnd: end.Literal, Inclusive: inclusive}
	}
	if p.at(token.AT) {
		p.advance()
		inner := p.parsePatternPrimary()
		return &ast.Pattern{Kind: ast.PatAtBinding, Name: pat.Name, Inner: inner}
	}
	if p.at(token.ASSIGN) {
		p.advance()
		def := p.parseExpr(ASSIGN)
		return &ast.Pattern{Kind: ast.PatWithDefault, Inner: pat, Default: def}
	}
	return pat
}

func (p *Parser) parsePatternPrimary() *ast.Pattern {
	t := p.cur()
	switch t.Kind {
	case token.UNDERSCORE:
		p.advance()
		return ast.NewWildcardPattern()
	case token.INT, token.FLOAT, token.STRING, token.CHAR, token.TRUE, token.FALSE:
		lit := p.parseLiteral().(*ast.Literal)
		v := lit.Value
		return &ast.Pattern{Kind: ast.PatLiteral, Literal: &v}
	case token.MINUS:
		p.advance()
		lit := p.parseLiteral().(*ast.Literal)
		v := lit.Value
		switch v.Kind {
		case ast.LitInt:
			v.Int = -v.Int
		case ast.LitFloat:
			v.Float = -v.Float
		}
		return &ast.Pattern{Kind: ast.PatLiteral, Literal: &v}
	case token.NONE:
		p.advance()
		return &ast.Pattern{Kind: ast.PatNone}
	case token.SOME, token.OK, token.ERR:
		p.advance()
		kind := ast.PatSome
		switch t.Kind {
		case token.OK:
			kind = ast.PatOk
		case token.ERR:
			kind = ast.PatErr
		}
		var inner *ast.Pattern
		if p.at(token.LPAREN) {
			p.advance()
			inner = p.parsePattern()
			p.expect(token.RPAREN)
		}
		return &ast.Pattern{Kind: kind, Inner: inner}
	case token.LPAREN:
		p.advance()
		var elems []*ast.Pattern
		for !p.at(token.RPAREN) && !p.atEOF() {
			elems = append(elems, p.parsePattern())
			if p.at(token.COMMA) {
				p.advance()
			} else {
				break
			}
		}
		p.expect(token.RPAREN)
		return &ast.Pattern{Kind: ast.PatTuple, Elements: elems}
	case token.LBRACK:
		p.advance()
		var elems []*ast.Pattern
		restIndex := -1
		restName := ""
		hasRest := false
		for !p.at(token.RBRACK) && !p.atEOF() {
			if p.at(token.DOT_DOT_DOT) || p.at(token.DOT_DOT) {
				p.advance()
				hasRest = true
				restIndex = len(elems)
				if p.at(token.IDENT) {
					restName = p.advance().Literal
				}
			} else {
				elems = append(elems, p.parsePattern())
			}
			if p.at(token.COMMA) {
				p.advance()
			} else {
				break
			}
		}
		p.expect(token.RBRACK)
		return &ast.Pattern{Kind: ast.PatList, Elements: elems, RestIndex: restIndex, RestName: restName, HasRest: hasRest}
	case token.IDENT:
		name := p.advance().Literal
		if p.at(token.COLON_COLON) {
			segs := []string{name}
			for p.at(token.COLON_COLON) {
				p.advance()
				segs = append(segs, p.expect(token.IDENT).Literal)
			}
			joined := joinSegs(segs)
			if p.at(token.LPAREN) {
				p.advance()
				var elems []*ast.Pattern
				for !p.at(token.RPAREN) && !p.atEOF() {
					elems = append(elems, p.parsePattern())
					if p.at(token.COMMA) {
						p.advance()
					} else {
						break
					}
				}
				p.expect(token.RPAREN)
				return &ast.Pattern{Kind: ast.PatTuple, Elements: elems, Name: joined}
			}
			return &ast.Pattern{Kind: ast.PatQualifiedName, Segments: segs, Name: joined}
		}
		if p.at(token.LBRACE) && canStartStructLiteral(name) {
			p.advance()
			var fields []ast.StructFieldPattern
			rest := false
			for !p.at(token.RBRACE) && !p.atEOF() {
				if p.at(token.DOT_DOT) {
					p.advance()
					rest = true
					break
				}
				fname := p.expect(token.IDENT).Literal
				var fpat *ast.Pattern
				if p.at(token.COLON) {
					p.advance()
					fpat = p.parsePattern()
				}
				fields = append(fields, ast.StructFieldPattern{Name: fname, Pattern: fpat})
				if p.at(token.COMMA) {
					p.advance()
				} else {
					break
				}
			}
			p.expect(token.RBRACE)
			return &ast.Pattern{Kind: ast.PatStruct, StructName: name, Fields: fields, StructRest: rest}
		}
		if p.at(token.LPAREN) && canStartStructLiteral(name) {
			p.advance()
			var elems []*ast.Pattern
			for !p.at(token.RPAREN) && !p.atEOF() {
				elems = append(elems, p.parsePattern())
				if p.at(token.COMMA) {
					p.advance()
				} else {
					break
				}
			}
			p.expect(token.RPAREN)
			return &ast.Pattern{Kind: ast.PatTuple, Elements: elems, Name: name}
		}
		return ast.NewIdentifierPattern(name)
	default:
		p.errorf("unexpected token %s in pattern", t.Kind)
		p.advance()
		return ast.NewWildcardPattern()
	}
}

func joinSegs(segs []string) string {
	out := segs[0]
	for _, s := range segs[1:] {
		out += "::" + s
	}
	return out
}
