package parser

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/sema"
	"cbridge/internal/source"
	"cbridge/internal/token"
)

// declContext: где встречено объявление.
type declContext uint8

const (
	ctxFile    declContext = iota // внешнее объявление
	ctxBlock                      // внутри составного оператора
	ctxForInit                    // первая часть for(...)
)

// parseDeclaration разбирает объявление вместе с ';'. Возвращает группу
// объявлений, которую в блоке оборачивает DeclStmt.
func (p *Parser) parseDeclaration(ctx declContext) ([]ast.DeclID, source.Span, bool) {
	start := p.peek().Span
	p.skipExtensions()
	if p.at(token.KwStaticAssert) {
		id, ok := p.parseStaticAssert()
		if !ok {
			return nil, start.Cover(p.lastSpan), false
		}
		return []ast.DeclID{id}, start.Cover(p.lastSpan), true
	}

	specStart := p.pos
	ds := p.parseDeclSpecs(specDecl)
	if p.pos == specStart && !p.at(token.Ident) && !p.at(token.Star) && !p.at(token.LParen) {
		p.err(diag.SynUnexpectedToken, "expected external declaration")
		return nil, start, false
	}
	var group []ast.DeclID
	if ds.TagOwned {
		group = append(group, ds.Tag)
	}
	if p.at(token.Semicolon) {
		semi := p.advance()
		if ds.Base != sema.BaseTag {
			p.report(diag.SynEmptyDeclaration, diag.SevWarning, ds.Span, "declaration does not declare anything")
		} else if ds.Storage != ast.SCNone || ds.Typedef {
			p.report(diag.SynEmptyDeclaration, diag.SevWarning, ds.StorageSpan, "storage class specifier ignored on this declaration")
		}
		return group, start.Cover(semi.Span), true
	}

	for first := true; ; first = false {
		d := p.parseDeclarator(declNormal)
		if d.Name == source.NoStringID {
			return group, start.Cover(p.lastSpan), false
		}
		if first && d.IsFunction() && p.startsFunctionBody(d) {
			if ctx != ctxFile {
				p.err(diag.SynFunctionDefNotAllowed, "function definition is not allowed here")
				p.resyncUntil(token.LBrace)
				p.skipBalanced()
				return group, start.Cover(p.lastSpan), false
			}
			group = append(group, p.parseFunctionDefinition(ds, d))
			return group, start.Cover(p.lastSpan), true
		}
		if ch := d.FunctionChunk(); ch != nil && !ch.HasProto && len(ch.Params) > 0 {
			p.report(diag.SynParamListMismatch, diag.SevError, ch.Span, "a parameter list without types is only allowed in a function definition")
		}
		p.skipAsmLabel()
		p.skipAttributes()
		group = append(group, p.parseInitDeclarator(ds, d))
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	ok := p.expectSemicolon("declaration")
	return group, start.Cover(p.lastSpan), ok
}

// parseInitDeclarator объявляет сущность и разбирает `= initializer`.
func (p *Parser) parseInitDeclarator(ds *sema.DeclSpec, d *sema.Declarator) ast.DeclID {
	id := p.s.ActOnDeclarator(ds, d)
	if !p.at(token.Assign) {
		p.s.ActOnUninitialized(id)
		return id
	}
	p.advance()
	init, ok := p.parseInitializer()
	if ok {
		p.s.ActOnInitializer(id, init)
	}
	decl := p.b.Decls.Get(id)
	decl.Span = decl.Span.Cover(p.lastSpan)
	return id
}

// startsFunctionBody: за декларатором функции идёт тело или K&R-список объявлений.
func (p *Parser) startsFunctionBody(d *sema.Declarator) bool {
	if p.at(token.LBrace) {
		return true
	}
	ch := d.FunctionChunk()
	return !ch.HasProto && len(ch.Params) > 0 && p.isDeclStart(p.peek())
}

func (p *Parser) parseFunctionDefinition(ds *sema.DeclSpec, d *sema.Declarator) ast.DeclID {
	ch := d.FunctionChunk()
	fn := p.s.ActOnDeclarator(ds, d)
	if !ch.HasProto && len(ch.Params) > 0 {
		p.parseKRDeclarations(ch.Params)
	}
	p.s.ActOnStartFunctionBody(fn)
	body := p.parseCompoundStmt(false)
	p.s.ActOnFinishFunctionBody(fn, body)
	return fn
}

// parseKRDeclarations: `int f(a, b) int a; char *b; { ... }`.
func (p *Parser) parseKRDeclarations(params []ast.DeclID) {
	for !p.at(token.LBrace) && !p.at(token.EOF) {
		if !p.isDeclStart(p.peek()) {
			p.err(diag.SynUnexpectedToken, "expected '{' after function declarator")
			p.resyncUntil(token.LBrace)
			return
		}
		kds := p.parseDeclSpecs(specParam)
		for {
			kd := p.parseDeclarator(declNormal)
			if kd.Name != source.NoStringID {
				p.s.ActOnKRParamDecl(params, kds, kd)
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if !p.expectSemicolon("declaration") {
			p.resyncUntil(token.Semicolon, token.LBrace)
			if p.at(token.Semicolon) {
				p.advance()
			}
		}
	}
}

// parseStaticAssert: `_Static_assert(expr, "msg");`.
func (p *Parser) parseStaticAssert() (ast.DeclID, bool) {
	kw := p.advance()
	lp, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after '_Static_assert'")
	if !ok {
		return ast.NoDeclID, false
	}
	cond, ok := p.parseConditionalExpr()
	if !ok {
		p.resyncStatement()
		return ast.NoDeclID, false
	}
	var msg ast.StmtID
	if p.at(token.Comma) {
		p.advance()
		if !p.at(token.StringLit) {
			p.err(diag.SynUnexpectedToken, "expected string literal for diagnostic message in static_assert")
			p.resyncStatement()
			return ast.NoDeclID, false
		}
		msg = p.parseStringLiteral()
	} else if p.s.Standard() != sema.StdC23 {
		p.warn(diag.SynUnsupported, "'_Static_assert' with no message is a C23 extension")
	}
	rp, _ := p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span)
	id := p.s.ActOnStaticAssert(kw.Span.Cover(rp.Span), cond, msg)
	p.expectSemicolon("static_assert")
	return id, true
}
