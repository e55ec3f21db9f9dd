package parser

import (
	"github.com/paiml/ruchy-sub004/ast"
	"github.com/paiml/ruchy-sub004/token"
)

// parseClass parses the full class grammar from spec §6's EBNF
// summary: modifiers, optional superclass/trait list, and a body of
// fields, constructors, methods, and constants in any order.
func (p *Parser) parseClass(isPub, isSealed, isFinal, isAbstract bool) ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'class'
	name := p.expect(token.IDENT).Literal
	typeParams := p.parseOptionalTypeParams()

	super := ""
	var traits []string
	if p.at(token.COLON) {
		p.advance()
		super = p.expect(token.IDENT).Literal
		for p.at(token.PLUS) {
			p.advance()
			traits = append(traits, p.expect(token.IDENT).Literal)
		}
	}

	cls := &ast.Class{
		Base: newBase(ast.KClass, p.span(start)), Name: name, TypeParams: typeParams,
		Super: super, Traits: traits, IsPub: isPub, IsSealed: isSealed,
		IsFinal: isFinal, IsAbstract: isAbstract,
	}

	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.atEOF() {
		p.parseClassMember(cls)
	}
	p.expect(token.RBRACE)
	return cls
}

// parseClassMember parses one field, constructor, method, or constant
// and appends it to cls. Dispatch is modifier-then-keyword, matching
// spec §4.2's cascading-modifier style.
func (p *Parser) parseClassMember(cls *ast.Class) {
	isPub := false
	isStatic := false
	isOverride := false
	isFinal := false
	isAbstract := false
	isAsync := false
	for {
		switch p.cur().Kind {
		case token.PUB:
			isPub = true
			p.advance()
		case token.STATIC:
			isStatic = true
			p.advance()
		case token.OVERRIDE:
			isOverride = true
			p.advance()
		case token.ASYNC:
			isAsync = true
			p.advance()
		default:
			goto dispatch
		}
	}
dispatch:
	switch p.cur().Kind {
	case token.CONST:
		p.advance()
		cname := p.expect(token.IDENT).Literal
		var typ *ast.TypeExpr
		if p.at(token.COLON) {
			p.advance()
			typ = p.parseTypeExpr()
		}
		p.expect(token.ASSIGN)
		val := p.parseExpr(ASSIGN)
		if p.at(token.SEMICOLON) {
			p.advance()
		}
		cls.Constants = append(cls.Constants, ast.ConstantDecl{Name: cname, Type: typ, Value: val, IsPub: isPub})
	case token.FUN, token.FN:
		p.advance()
		mname := p.expect(token.IDENT).Literal
		if mname == "new" || mname == "init" {
			params := p.parseConstructorParamList()
			body := p.parseBlock()
			cls.Constructors = append(cls.Constructors, ast.ConstructorDecl{Name: mname, Params: params, Body: body, IsPub: isPub})
			return
		}
		params := p.parseMethodParamList()
		var ret *ast.TypeExpr
		if p.at(token.ARROW) {
			p.advance()
			ret = p.parseTypeExpr()
		}
		body := p.parseBlock()
		cls.Methods = append(cls.Methods, ast.MethodDecl{
			Name: mname, Params: params, ReturnType: ret, Body: body, IsPub: isPub,
			IsStatic: isStatic, IsOverride: isOverride, IsFinal: isFinal,
			IsAbstract: isAbstract, IsAsync: isAsync,
		})
	default:
		// Constructor without fun/fn: name ( params ) block
		if p.at(token.IDENT) && p.peek(1).Kind == token.LPAREN {
			cname := p.advance().Literal
			params := p.parseConstructorParamList()
			body := p.parseBlock()
			cls.Constructors = append(cls.Constructors, ast.ConstructorDecl{Name: cname, Params: params, Body: body, IsPub: isPub})
			return
		}
		// Field: name [: Type] [= default]
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
		if p.at(token.SEMICOLON) {
			p.advance()
		}
		isMut := true
		cls.Fields = append(cls.Fields, ast.FieldDecl{Name: fname, Type: typ, Default: def, IsPub: isPub, IsMut: isMut})
	}
}

// parseConstructorParamList parses a constructor's parameter list,
// which never includes an explicit `self` (it is implicit).
func (p *Parser) parseConstructorParamList() []ast.Param {
	return p.parseParamList()
}

// parseMethodParamList parses a method's parameter list, skipping a
// leading `self`/`&self`/`&mut self` receiver token if present — the
// binding is implicit in the stored MethodDecl per spec §4.4.
func (p *Parser) parseMethodParamList() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	if p.at(token.SELF) {
		p.advance()
		if p.at(token.COMMA) {
			p.advance()
		}
	} else if p.at(token.AMP) {
		p.advance()
		if p.at(token.MUT) {
			p.advance()
		}
		p.expect(token.SELF)
		if p.at(token.COMMA) {
			p.advance()
		}
	}
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

// parseStruct parses a plain record type: fields only.
func (p *Parser) parseStruct(isPub bool) ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'struct'
	name := p.expect(token.IDENT).Literal
	typeParams := p.parseOptionalTypeParams()
	st := &ast.Struct{Base: newBase(ast.KStruct, p.span(start)), Name: name, TypeParams: typeParams, IsPub: isPub}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.atEOF() {
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
		st.Fields = append(st.Fields, ast.FieldDecl{Name: fname, Type: typ, Default: def, IsPub: true, IsMut: true})
		if p.at(token.COMMA) {
			p.advance()
		} else if p.at(token.SEMICOLON) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return st
}

// parseTrait parses a set of required (and optionally defaulted)
// method signatures.
func (p *Parser) parseTrait(isPub bool) ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'trait'
	name := p.expect(token.IDENT).Literal
	tr := &ast.Trait{Base: newBase(ast.KTrait, p.span(start)), Name: name, IsPub: isPub}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.atEOF() {
		if p.at(token.FUN) || p.at(token.FN) {
			p.advance()
		}
		mname := p.expect(token.IDENT).Literal
		params := p.parseMethodParamList()
		var ret *ast.TypeExpr
		if p.at(token.ARROW) {
			p.advance()
			ret = p.parseTypeExpr()
		}
		var def ast.Expr
		if p.at(token.LBRACE) {
			def = p.parseBlock()
		} else if p.at(token.SEMICOLON) {
			p.advance()
		}
		tr.Methods = append(tr.Methods, ast.TraitMethodSig{Name: mname, Params: params, ReturnType: ret, Default: def})
	}
	p.expect(token.RBRACE)
	return tr
}

// parseImpl parses `impl [Trait for] Target { methods }`.
func (p *Parser) parseImpl() ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'impl'
	first := p.expect(token.IDENT).Literal
	target := first
	traitName := ""
	if p.at(token.FOR) {
		p.advance()
		traitName = first
		target = p.expect(token.IDENT).Literal
	}
	impl := &ast.Impl{Base: newBase(ast.KImpl, p.span(start)), Target: target, TraitName: traitName}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.atEOF() {
		isStatic := false
		isOverride := false
		for p.at(token.STATIC) || p.at(token.OVERRIDE) || p.at(token.PUB) {
			if p.at(token.STATIC) {
				isStatic = true
			}
			if p.at(token.OVERRIDE) {
				isOverride = true
			}
			p.advance()
		}
		p.advance() // consume fun|fn
		mname := p.expect(token.IDENT).Literal
		params := p.parseMethodParamList()
		var ret *ast.TypeExpr
		if p.at(token.ARROW) {
			p.advance()
			ret = p.parseTypeExpr()
		}
		body := p.parseBlock()
		impl.Methods = append(impl.Methods, ast.MethodDecl{
			Name: mname, Params: params, ReturnType: ret, Body: body,
			IsStatic: isStatic, IsOverride: isOverride,
		})
	}
	p.expect(token.RBRACE)
	return impl
}

// parseEnum parses a closed set of variants, each optionally carrying
// positional fields (`Some(T)`) or an explicit discriminant.
func (p *Parser) parseEnum(isPub bool) ast.Expr {
	start := p.cur().Span.Start
	p.advance() // consume 'enum'
	name := p.expect(token.IDENT).Literal
	typeParams := p.parseOptionalTypeParams()
	en := &ast.Enum{Base: newBase(ast.KEnum, p.span(start)), Name: name, TypeParams: typeParams, IsPub: isPub}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.atEOF() {
		vname := p.expect(token.IDENT).Literal
		var fields []ast.TypeExpr
		if p.at(token.LPAREN) {
			p.advance()
			for !p.at(token.RPAREN) && !p.atEOF() {
				fields = append(fields, *p.parseTypeExpr())
				if p.at(token.COMMA) {
					p.advance()
				} else {
					break
				}
			}
			p.expect(token.RPAREN)
		}
		var disc ast.Expr
		if p.at(token.ASSIGN) {
			p.advance()
			disc = p.parseExpr(ASSIGN)
		}
		en.Variants = append(en.Variants, ast.EnumVariant{Name: vname, Fields: fields, Discriminant: disc})
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return en
}
