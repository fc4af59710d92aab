package parser

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/sema"
	"cbridge/internal/token"
)

// declMode: требуется ли имя в деклараторе.
type declMode uint8

const (
	declNormal   declMode = iota // имя обязательно
	declAbstract                 // имени нет (имя типа)
	declEither                   // параметр: имя может быть
)

func (p *Parser) parseDeclarator(mode declMode) *sema.Declarator {
	d := &sema.Declarator{}
	p.parseDeclaratorInto(d, mode)
	return d
}

// parseDeclaratorInto разбирает `* quals ... direct-declarator suffixes`.
// Chunks складываются в порядке применения к базовому типу: сначала
// указатели слева, затем суффиксы справа налево, затем вложенный декларатор.
func (p *Parser) parseDeclaratorInto(d *sema.Declarator, mode declMode) {
	start := p.peek().Span
	startPos := p.pos
	var chunks []sema.Chunk
	for p.at(token.Star) {
		star := p.advance()
		chunks = append(chunks, sema.Chunk{Kind: sema.ChunkPointer, Span: star.Span, Quals: p.parseTypeQualifiers()})
	}
	p.skipAttributes()

	var inner []sema.Chunk
	switch {
	case p.at(token.Ident) && mode != declAbstract:
		tok := p.advance()
		d.Name = p.b.Strings.Intern(tok.Text)
		d.NameSpan = tok.Span
	case p.at(token.LParen) && p.isNestedDeclarator(mode):
		lp := p.advance()
		sub := &sema.Declarator{}
		p.parseDeclaratorInto(sub, mode)
		p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span)
		d.Name, d.NameSpan = sub.Name, sub.NameSpan
		inner = sub.Chunks
	case mode == declNormal:
		p.err(diag.SynExpectDeclarator, "expected identifier or '('")
	}

	var suffixes []sema.Chunk
	for {
		if p.at(token.LBracket) {
			suffixes = append(suffixes, p.parseArrayChunk())
			continue
		}
		if p.at(token.LParen) {
			suffixes = append(suffixes, p.parseFunctionChunk())
			continue
		}
		break
	}
	for i := len(suffixes) - 1; i >= 0; i-- {
		chunks = append(chunks, suffixes[i])
	}
	d.Chunks = append(chunks, inner...)
	if p.pos > startPos {
		d.Span = start.Cover(p.lastSpan)
	}
}

// isNestedDeclarator различает `(*p)` и список параметров `(int)`.
func (p *Parser) isNestedDeclarator(mode declMode) bool {
	if mode == declNormal {
		return true
	}
	next := p.peekN(1)
	switch next.Kind {
	case token.Star, token.LParen, token.KwAttribute:
		return true
	case token.Ident:
		return mode == declEither && !p.s.IsTypeName(next.Text) && !isTypeof(next.Text)
	}
	return false
}

func (p *Parser) parseArrayChunk() sema.Chunk {
	lb := p.advance()
	ch := sema.Chunk{Kind: sema.ChunkArray}
	for {
		tok := p.peek()
		if tok.Kind == token.KwStatic {
			p.advance()
			continue
		}
		if tok.Kind == token.KwConst || tok.Kind == token.KwVolatile || tok.Kind == token.KwRestrict {
			p.advance()
			p.addQualifier(&ch.Quals, tok)
			continue
		}
		break
	}
	switch {
	case p.at(token.RBracket):
	case p.at(token.Star) && p.peekN(1).Kind == token.RBracket:
		p.advance() // [*]: массив переменной длины без размера
	default:
		if e, ok := p.parseAssignExpr(); ok {
			ch.Size = e
		}
	}
	rb, _ := p.expectClose(token.RBracket, diag.SynUnclosedBracket, lb.Span)
	ch.Span = lb.Span.Cover(rb.Span)
	return ch
}

func (p *Parser) parseFunctionChunk() sema.Chunk {
	lp := p.advance()
	ch := sema.Chunk{Kind: sema.ChunkFunction, HasProto: true}
	p.s.PushScope(sema.ScopePrototype)
	switch tok := p.peek(); {
	case tok.Kind == token.RParen:
		// в C23 `f()` означает `f(void)`
		ch.HasProto = p.s.Standard() == sema.StdC23
	case tok.Kind == token.KwVoid && p.peekN(1).Kind == token.RParen:
		p.advance()
	case tok.Kind == token.Ident && !p.s.IsTypeName(tok.Text) && !isTypeof(tok.Text):
		ch.HasProto = false
		ch.Params = p.parseIdentifierList()
	default:
		ch.Params, ch.Variadic = p.parseParamList()
	}
	p.s.PopScope()
	rp, _ := p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span)
	ch.Span = lp.Span.Cover(rp.Span)
	return ch
}

// parseParamList: список типизированных параметров; второй результат: '...'.
func (p *Parser) parseParamList() ([]ast.DeclID, bool) {
	var params []ast.DeclID
	for {
		if p.at(token.Ellipsis) {
			el := p.advance()
			if len(params) == 0 && p.s.Standard() != sema.StdC23 {
				p.report(diag.SynExpectType, diag.SevError, el.Span, "ISO C requires a named parameter before '...'")
			}
			return params, true
		}
		if !p.isDeclStart(p.peek()) {
			p.err(diag.SynExpectType, "expected parameter declarator")
			p.resyncUntil(token.Comma, token.RParen)
			if !p.at(token.Comma) {
				return params, false
			}
			p.advance()
			continue
		}
		ds := p.parseDeclSpecs(specParam)
		d := p.parseDeclarator(declEither)
		p.skipAttributes()
		if ds.Base == sema.BaseVoid && len(d.Chunks) == 0 && ds.Quals == 0 {
			p.report(diag.SynParamListMismatch, diag.SevError, ds.Span, "'void' must be the first and only parameter if specified")
		}
		params = append(params, p.s.ActOnParam(ds, d, len(params)))
		if !p.at(token.Comma) {
			return params, false
		}
		p.advance()
	}
}

// parseIdentifierList: список идентификаторов K&R-определения.
func (p *Parser) parseIdentifierList() []ast.DeclID {
	var params []ast.DeclID
	for {
		name, sp, ok := p.parseIdent()
		if !ok {
			return params
		}
		params = append(params, p.s.ActOnKRParam(name, sp, len(params)))
		if !p.at(token.Comma) {
			return params
		}
		p.advance()
	}
}
