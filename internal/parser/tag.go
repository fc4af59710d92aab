package parser

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/sema"
	"cbridge/internal/source"
	"cbridge/internal/token"
	"cbridge/internal/types"
)

// parseTagSpecifier: struct/union/enum, ссылка, объявление или определение.
func (p *Parser) parseTagSpecifier(ds *sema.DeclSpec) {
	kw := p.advance()
	kind := types.TagStruct
	switch kw.Kind {
	case token.KwUnion:
		kind = types.TagUnion
	case token.KwEnum:
		kind = types.TagEnum
	}
	p.skipAttributes()

	name := source.NoStringID
	var nameSpan source.Span
	if p.at(token.Ident) {
		tok := p.advance()
		name, nameSpan = p.b.Strings.Intern(tok.Text), tok.Span
	}
	p.skipAttributes()

	use := sema.TagReference
	switch {
	case p.at(token.LBrace):
		use = sema.TagDefinition
	case name == source.NoStringID:
		p.err(diag.SynExpectIdentifier, "declaration of anonymous "+kind.String()+" must be a definition")
		p.s.SetBase(ds, sema.BaseInt, kw.Span)
		return
	case p.at(token.Semicolon) && !ds.HasTypeSpecifier():
		use = sema.TagDeclaration
	}

	id, owned := p.s.ActOnTag(kind, name, nameSpan, kw.Span, use)
	p.s.SetBase(ds, sema.BaseTag, kw.Span.Cover(nameSpan))
	ds.Tag, ds.TagOwned = id, owned
	if use != sema.TagDefinition {
		return
	}
	ds.TagDefined = true
	if kind == types.TagEnum {
		p.parseEnumBody(id)
	} else {
		p.parseRecordBody(id)
	}
	p.skipAttributes()
}

// parseRecordBody: `{ member-declarations }`.
func (p *Parser) parseRecordBody(rec ast.DeclID) {
	lb := p.advance()
	saved := p.s.ActOnStartTagBody(rec)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch {
		case p.at(token.Semicolon):
			p.warn(diag.SynEmptyDeclaration, "extra ';' inside a struct or union")
			p.advance()
			continue
		case p.at(token.KwStaticAssert):
			p.parseStaticAssert()
			continue
		}
		if !p.parseMemberDeclaration() {
			p.resyncUntil(token.Semicolon, token.RBrace)
			if p.at(token.Semicolon) {
				p.advance()
			}
		}
	}
	rb, _ := p.expectClose(token.RBrace, diag.SynUnclosedBrace, lb.Span)
	p.s.ActOnFinishRecord(rec, saved, rb.Span)
}

func (p *Parser) parseMemberDeclaration() bool {
	p.skipExtensions()
	if !p.isTypeSpecStart(p.peek()) {
		p.err(diag.SynExpectType, "type name requires a specifier or qualifier")
		return false
	}
	ds := p.parseDeclSpecs(specMember)
	if p.at(token.Semicolon) {
		semi := p.advance()
		if ds.Base == sema.BaseTag && p.b.Decls.Record(ds.Tag) != nil && p.b.Decls.Get(ds.Tag).Name == source.NoStringID {
			p.s.ActOnAnonymousMember(ds)
			return true
		}
		if ds.TagDefined && p.b.Decls.Enum(ds.Tag) != nil {
			return true
		}
		p.report(diag.SynEmptyDeclaration, diag.SevWarning, ds.Span.Cover(semi.Span), "declaration does not declare anything")
		return true
	}
	for {
		d := &sema.Declarator{}
		if !p.at(token.Colon) {
			p.parseDeclaratorInto(d, declNormal)
			if d.Name == source.NoStringID {
				return false
			}
		}
		var width ast.StmtID
		if p.at(token.Colon) {
			p.advance()
			e, ok := p.parseConditionalExpr()
			if !ok {
				return false
			}
			width = e
		}
		p.skipAttributes()
		p.s.ActOnField(ds, d, width)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return p.expectSemicolon("declaration list")
}

// parseEnumBody: `{ A, B = 2, }`.
func (p *Parser) parseEnumBody(enum ast.DeclID) {
	lb := p.advance()
	saved := p.s.ActOnStartTagBody(enum)
	if p.at(token.RBrace) {
		p.err(diag.SynExpectIdentifier, "use of empty enum")
	}
	var prev ast.DeclID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			p.resyncUntil(token.Comma, token.RBrace)
			if p.at(token.Comma) {
				p.advance()
			}
			continue
		}
		p.skipAttributes()
		var init ast.StmtID
		if p.at(token.Assign) {
			p.advance()
			if e, ok := p.parseConditionalExpr(); ok {
				init = e
			}
		}
		prev = p.s.ActOnEnumConstant(enum, prev, name, nameSpan, init)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	rb, _ := p.expectClose(token.RBrace, diag.SynUnclosedBrace, lb.Span)
	p.s.ActOnFinishEnum(enum, saved, rb.Span)
}
