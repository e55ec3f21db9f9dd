package parser

import (
	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/token"
)

// parseBlock parses `{ expr* }`. Each expression in the block shares
// the enclosing scope at evaluation time (spec §4.4); the parser just
// collects the sequence.
func (p *Parser) parseBlock() ast.Expr {
	start := p.cur().Span.Start
	p.expect(token.LBRACE)
	var exprs []ast.Expr
	for !p.at(token.RBRACE) && !p.atEOF() {
		exprs = append(exprs, p.parseExpr(LOWEST))
		if p.at(token.SEMICOLON) {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return ast.NewBlock(p.span(start), exprs)
}

// parseIfOrIfLet disambiguates `if let pattern = expr { ... }` from a
// plain `if condition { ... }`.
func (p *Parser) parseIfOrIfLet() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'if'
	if p.at(token.LET) {
		p.advance()
		pat := p.parseMatchPattern()
		p.expect(token.ASSIGN)
		scrut := p.parseExpr(ASSIGN)
		then := p.parseBlock()
		var els ast.Expr
		if p.at(token.ELSE) {
			p.advance()
			els = p.parseElseBranch()
		}
		return &ast.IfLet{Base: newBase(ast.KIfLet, p.span(start)), Pattern: pat, Expr: scrut, Then: then, Else: els}
	}
	cond := p.parseExpr(ASSIGN)
	then := p.parseBlock()
	var els ast.Expr
	if p.at(token.ELSE) {
		p.advance()
		els = p.parseElseBranch()
	}
	return &ast.If{Base: newBase(ast.KIf, p.span(start)), Condition: cond, Then: then, Else: els}
}

func (p *Parser) parseElseBranch() ast.Expr {
	if p.at(token.IF) {
		return p.parseIfOrIfLet()
	}
	return p.parseBlock()
}

// parseMatch parses `match expr { pattern [if guard] => body, ... }`.
func (p *Parser) parseMatch() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'match'
	scrutinee := p.parseExpr(ASSIGN)
	p.expect(token.LBRACE)
	var arms []ast.MatchArm
	for !p.at(token.RBRACE) && !p.atEOF() {
		pat := p.parseMatchPattern()
		var guard ast.Expr
		if p.at(token.IF) {
			p.advance()
			guard = p.parseExpr(ASSIGN)
		}
		p.expect(token.FAT_ARROW)
		body := p.parseExpr(ASSIGN)
		arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body})
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return &ast.Match{Base: newBase(ast.KMatch, p.span(start)), Scrutinee: scrutinee, Arms: arms}
}

// parseWhileOrWhileLet disambiguates `while let pattern = expr { }`
// from a plain `while condition { }`.
func (p *Parser) parseWhileOrWhileLet() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'while'
	if p.at(token.LET) {
		p.advance()
		pat := p.parseMatchPattern()
		p.expect(token.ASSIGN)
		scrut := p.parseExpr(ASSIGN)
		body := p.parseBlock()
		return &ast.WhileLet{Base: newBase(ast.KWhileLet, p.span(start)), Pattern: pat, Expr: scrut, Body: body}
	}
	cond := p.parseExpr(ASSIGN)
	body := p.parseBlock()
	return &ast.While{Base: newBase(ast.KWhile, p.span(start)), Condition: cond, Body: body}
}

// parseFor parses `for pattern in iterable { ... }`.
func (p *Parser) parseFor() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'for'
	pat := p.parseMatchPattern()
	p.expect(token.IN)
	iterable := p.parseExpr(ASSIGN)
	body := p.parseBlock()
	return &ast.For{Base: newBase(ast.KFor, p.span(start)), Pattern: pat, Iterable: iterable, Body: body}
}

// parseLoop parses an unconditional `loop { ... }`.
func (p *Parser) parseLoop() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'loop'
	body := p.parseBlock()
	return &ast.Loop{Base: newBase(ast.KLoop, p.span(start)), Body: body}
}

func (p *Parser) parseBreak() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'break'
	var val ast.Expr
	if canStartExpr(p.cur().Kind) && !p.at(token.SEMICOLON) && !p.at(token.RBRACE) {
		val = p.parseExpr(ASSIGN)
	}
	return &ast.Break{Base: newBase(ast.KBreak, p.span(start)), Value: val}
}

func (p *Parser) parseContinue() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'continue'
	return &ast.Continue{Base: newBase(ast.KContinue, p.span(start))}
}

func (p *Parser) parseReturn() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'return'
	var val ast.Expr
	if canStartExpr(p.cur().Kind) && !p.at(token.SEMICOLON) && !p.at(token.RBRACE) {
		val = p.parseExpr(ASSIGN)
	}
	return &ast.Return{Base: newBase(ast.KReturn, p.span(start)), Value: val}
}
