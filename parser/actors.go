package parser

import (
	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/token"
)

// parseActor parses an actor's state fields and `on Message(params) { }`
// handlers. Scheduling is out of scope for the parser; it only builds
// the structure the interpreter's synchronous mailbox walks (spec §5).
func (p *Parser) parseActor(isPub bool) ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'actor'
	name := p.expect(token.IDENT).Literal
	act := &ast.Actor{Base: newBase(ast.KActor, p.span(start)), Name: name, IsPub: isPub}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.atEOF() {
		if p.at(token.IDENT) && p.cur().Literal == "on" {
			p.advance()
			msgName := p.expect(token.IDENT).Literal
			params := p.parseParamList()
			body := p.parseBlock()
			act.Handlers = append(act.Handlers, ast.ActorHandler{MessageName: msgName, Params: params, Body: body})
			continue
		}
		fname := p.expect(token.IDENT).Literal
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
		act.Fields = append(act.Fields, ast.FieldDecl{Name: fname, Type: typ, Default: def, IsMut: true})
		if p.at(token.COMMA) || p.at(token.SEMICOLON) {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return act
}

// parseEffect parses an algebraic effect signature: a named set of
// operation signatures, structurally identical to a trait's.
func (p *Parser) parseEffect(isPub bool) ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'effect'
	name := p.expect(token.IDENT).Literal
	eff := &ast.Effect{Base: newBase(ast.KEffect, p.span(start)), Name: name, IsPub: isPub}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.atEOF() {
		if p.at(token.FUN) || p.at(token.FN) {
			p.advance()
		}
		opName := p.expect(token.IDENT).Literal
		params := p.parseParamList()
		var ret *ast.TypeExpr
		if p.at(token.ARROW) {
			p.advance()
			ret = p.parseTypeExpr()
		}
		if p.at(token.SEMICOLON) {
			p.advance()
		}
		eff.Operations = append(eff.Operations, ast.TraitMethodSig{Name: opName, Params: params, ReturnType: ret})
	}
	p.expect(token.RBRACE)
	return eff
}

// parseHandle parses `handle EffectName { Operation(args) => body, ... } block`.
func (p *Parser) parseHandle() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'handle'
	effName := p.expect(token.IDENT).Literal
	h := &ast.Handle{Base: newBase(ast.KHandle, p.span(start)), EffectName: effName}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.atEOF() {
		opName := p.expect(token.IDENT).Literal
		params := p.parseParamList()
		p.expect(token.FAT_ARROW)
		body := p.parseExpr(ASSIGN)
		h.Cases = append(h.Cases, ast.HandleCase{Operation: opName, Params: params, Body: body})
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	h.Body = p.parseBlock()
	return h
}

// parseSpawn parses `spawn ActorExpr(args)`.
func (p *Parser) parseSpawn() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'spawn'
	actorExpr := p.parseExpr(POSTFIX)
	var args []ast.Expr
	if p.at(token.LPAREN) {
		args = p.parseArgList()
	}
	return &ast.Spawn{Base: newBase(ast.KSpawn, p.span(start)), ActorExpr: actorExpr, Args: args}
}

// parseSend parses `send target, message` (the mailbox push described
// in spec §5).
func (p *Parser) parseSend() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'send'
	target := p.parseExpr(ASSIGN)
	p.expect(token.COMMA)
	msg := p.parseExpr(ASSIGN)
	return &ast.Send{Base: newBase(ast.KSend, p.span(start)), Target: target, Message: msg}
}
