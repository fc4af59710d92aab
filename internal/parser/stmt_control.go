package parser

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/sema"
	"cbridge/internal/source"
	"cbridge/internal/token"
)

// parseCondition: `( expr )` после if/while/switch. При ошибке
// возвращает placeholder и синхронизируется на ')'.
func (p *Parser) parseCondition(kw token.Token) (ast.StmtID, source.Span) {
	lp, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after '"+kw.Kind.String()+"'")
	if !ok {
		return p.errorOperand(kw.Span), p.lastSpan
	}
	cond, ok := p.parseExpr()
	if !ok {
		p.resyncUntil(token.RParen, token.Semicolon)
		cond = p.errorOperand(lp.Span)
	}
	rp, _ := p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span)
	return cond, rp.Span
}

func (p *Parser) parseIfStmt() ast.StmtID {
	kw := p.advance()
	cond, _ := p.parseCondition(kw)
	then := p.parseStatement()
	var els ast.StmtID
	var elseLoc source.Span
	if p.at(token.KwElse) {
		elseLoc = p.advance().Span
		els = p.parseStatement()
	}
	return p.s.ActOnIf(kw.Span, cond, then, elseLoc, els)
}

func (p *Parser) parseLoopBody() ast.StmtID {
	p.s.EnterLoop()
	defer p.s.ExitLoop()
	return p.parseStatement()
}

func (p *Parser) parseWhileStmt() ast.StmtID {
	kw := p.advance()
	cond, _ := p.parseCondition(kw)
	return p.s.ActOnWhile(kw.Span, cond, p.parseLoopBody())
}

func (p *Parser) parseDoStmt() ast.StmtID {
	kw := p.advance()
	body := p.parseLoopBody()
	wh, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' in do/while loop", func(b *diag.ReportBuilder) {
		b.WithNote(kw.Span, "to match this 'do'")
	})
	if !ok {
		p.resyncStatement()
		return p.s.ActOnDo(kw.Span, body, p.errorOperand(wh.Span), p.lastSpan)
	}
	cond, end := p.parseCondition(wh)
	p.expectSemicolon("do/while statement")
	return p.s.ActOnDo(kw.Span, body, cond, end)
}

// parseForStmt: for (init; cond; inc) body. Объявление в init живёт
// в отдельном scope вокруг всего цикла.
func (p *Parser) parseForStmt() ast.StmtID {
	kw := p.advance()
	lp, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'for'")
	if !ok {
		p.resyncStatement()
		return p.s.ActOnNull(kw.Span)
	}
	p.s.PushScope(sema.ScopeBlock)
	defer p.s.PopScope()

	var init, cond, inc ast.StmtID
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.isDeclStart(p.peek()):
		if p.s.Standard().IsC89() {
			p.warn(diag.SynUnsupported, "variable declaration in for loop is a C99-specific feature")
		}
		init = p.parseForInitDecl()
	default:
		start := p.peek().Span
		e, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.Semicolon, token.RParen)
			e = p.errorOperand(start)
		}
		init = e
		p.expectSemicolon("for-init")
	}
	if !p.at(token.Semicolon) {
		start := p.peek().Span
		e, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.Semicolon, token.RParen)
			e = p.errorOperand(start)
		}
		cond = e
	}
	p.expectSemicolon("for-condition")
	if !p.at(token.RParen) {
		start := p.peek().Span
		e, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RParen)
			e = p.errorOperand(start)
		}
		inc = e
	}
	p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span)
	body := p.parseLoopBody()
	return p.s.ActOnFor(kw.Span, init, cond, inc, body)
}

func (p *Parser) parseForInitDecl() ast.StmtID {
	group, span, ok := p.parseDeclaration(ctxForInit)
	if !ok {
		p.resyncUntil(token.Semicolon, token.RParen)
		if p.at(token.Semicolon) {
			p.advance()
		}
	}
	if len(group) == 0 {
		return ast.NoStmtID
	}
	return p.s.ActOnDeclStmt(span, group)
}

func (p *Parser) parseSwitchStmt() ast.StmtID {
	kw := p.advance()
	cond, _ := p.parseCondition(kw)
	cond = p.s.ActOnStartSwitch(cond)
	body := p.parseStatement()
	return p.s.ActOnFinishSwitch(kw.Span, cond, body)
}

// parseCaseStmt: `case expr:` и GNU `case lo ... hi:`.
func (p *Parser) parseCaseStmt() ast.StmtID {
	kw := p.advance()
	lhs, ok := p.parseConditionalExpr()
	if !ok {
		p.resyncUntil(token.Colon, token.Semicolon)
		lhs = p.errorOperand(kw.Span)
	}
	var rhs ast.StmtID
	if p.at(token.Ellipsis) {
		p.advance()
		start := p.peek().Span
		if rhs, ok = p.parseConditionalExpr(); !ok {
			p.resyncUntil(token.Colon, token.Semicolon)
			rhs = p.errorOperand(start)
		}
	}
	p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'case'")
	return p.s.ActOnCase(kw.Span, lhs, rhs, p.parseLabelSub("label"))
}

func (p *Parser) parseDefaultStmt() ast.StmtID {
	kw := p.advance()
	p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'default'")
	return p.s.ActOnDefault(kw.Span, p.parseLabelSub("label"))
}

func (p *Parser) parseGotoStmt() ast.StmtID {
	kw := p.advance()
	if p.at(token.Star) {
		p.err(diag.SynUnsupported, "indirect goto is not supported")
		p.resyncStatement()
		return p.s.ActOnNull(kw.Span)
	}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		p.resyncStatement()
		return p.s.ActOnNull(kw.Span)
	}
	p.expectSemicolon("goto statement")
	return p.s.ActOnGoto(kw.Span.Cover(nameSpan), name, nameSpan)
}

func (p *Parser) parseReturnStmt() ast.StmtID {
	kw := p.advance()
	span := kw.Span
	var value ast.StmtID
	if !p.at(token.Semicolon) {
		e, ok := p.parseExpr()
		if !ok {
			p.resyncStatement()
			return p.s.ActOnNull(kw.Span)
		}
		value = e
		span = span.Cover(p.b.Stmts.Get(e).Span)
	}
	p.expectSemicolon("return statement")
	return p.s.ActOnReturn(span, value)
}
