package parser

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/sema"
	"cbridge/internal/source"
	"cbridge/internal/token"
)

// parseCompoundStmt: `{ block-item* }`. Всегда возвращает валидный узел:
// ошибки уже отрепорчены, а Parse по ним откажет целиком.
// newScope=false используется телом функции: его scope открывает sema.
func (p *Parser) parseCompoundStmt(newScope bool) ast.StmtID {
	lb, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return p.s.ActOnCompound(lb.Span, nil)
	}
	if newScope {
		p.s.PushScope(sema.ScopeBlock)
		defer p.s.PopScope()
	}
	var items []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.opts.Enough() {
			break
		}
		before := p.pos
		if item := p.parseBlockItem(); item.IsValid() {
			items = append(items, item)
		}
		if p.pos == before {
			p.advance() // гарантируем прогресс
		}
	}
	rb, _ := p.expectClose(token.RBrace, diag.SynUnclosedBrace, lb.Span)
	return p.s.ActOnCompound(lb.Span.Cover(rb.Span), items)
}

// parseBlockItem: объявление (в DeclStmt) или оператор.
func (p *Parser) parseBlockItem() ast.StmtID {
	if p.startsLabel() || !p.isDeclStart(p.peek()) {
		return p.parseStatement()
	}
	return p.parseDeclStmt()
}

func (p *Parser) parseDeclStmt() ast.StmtID {
	group, span, ok := p.parseDeclaration(ctxBlock)
	if !ok {
		p.resyncStatement()
	}
	if len(group) == 0 {
		return ast.NoStmtID
	}
	return p.s.ActOnDeclStmt(span, group)
}

// startsLabel: `ident :`, но не `a ? b : c`.
func (p *Parser) startsLabel() bool {
	return p.at(token.Ident) && p.peekN(1).Kind == token.Colon
}

// parseStatement разбирает один оператор. Результат всегда валиден.
func (p *Parser) parseStatement() ast.StmtID {
	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		return p.parseCompoundStmt(true)
	case token.Semicolon:
		p.advance()
		return p.s.ActOnNull(tok.Span)
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwDo:
		return p.parseDoStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwSwitch:
		return p.parseSwitchStmt()
	case token.KwCase:
		return p.parseCaseStmt()
	case token.KwDefault:
		return p.parseDefaultStmt()
	case token.KwBreak:
		p.advance()
		p.expectSemicolon("break statement")
		return p.s.ActOnBreak(tok.Span)
	case token.KwContinue:
		p.advance()
		p.expectSemicolon("continue statement")
		return p.s.ActOnContinue(tok.Span)
	case token.KwGoto:
		return p.parseGotoStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwAsm:
		return p.parseAsmStmt()
	}
	if p.startsLabel() {
		return p.parseLabeledStmt()
	}
	if p.isDeclStart(tok) {
		p.err(diag.SynExpectExpression, "expected expression")
		p.resyncStatement()
		return p.s.ActOnNull(tok.Span)
	}
	return p.parseExprStmt()
}

func (p *Parser) parseExprStmt() ast.StmtID {
	start := p.peek().Span
	e, ok := p.parseExpr()
	if !ok {
		p.resyncStatement()
		return p.s.ActOnNull(start)
	}
	p.expectSemicolon("expression")
	return p.s.ActOnExprStmt(e)
}

// parseLabeledStmt: `name: statement`.
func (p *Parser) parseLabeledStmt() ast.StmtID {
	tok := p.advance()
	p.advance() // ':'
	p.skipAttributes()
	name := p.b.Strings.Intern(tok.Text)
	return p.s.ActOnLabel(name, tok.Span, p.parseLabelSub("label"))
}

// parseLabelSub: оператор после метки, case или default.
func (p *Parser) parseLabelSub(what string) ast.StmtID {
	if p.at(token.RBrace) {
		at := p.lastSpan.ZeroideToEnd()
		if p.s.Standard() != sema.StdC23 {
			p.report(diag.SynExpectExpression, diag.SevError, at, what+" at end of compound statement: expected statement")
		}
		return p.s.ActOnNull(at)
	}
	if !p.startsLabel() && p.isDeclStart(p.peek()) {
		if p.s.Standard() != sema.StdC23 {
			p.warn(diag.SynUnsupported, what+" followed by a declaration is a C23 extension")
		}
		if id := p.parseDeclStmt(); id.IsValid() {
			return id
		}
		return p.s.ActOnNull(p.lastSpan)
	}
	return p.parseStatement()
}

// parseAsmStmt пропускает GNU inline asm.
func (p *Parser) parseAsmStmt() ast.StmtID {
	kw := p.advance()
	for p.at(token.KwVolatile) || p.at(token.KwGoto) || p.at(token.KwInline) {
		p.advance()
	}
	if p.at(token.LParen) {
		p.skipBalanced()
	}
	span := kw.Span.Cover(p.lastSpan)
	p.report(diag.SynUnsupported, diag.SevWarning, span, "inline assembly is ignored")
	p.expectSemicolon("asm statement")
	return p.s.ActOnNull(span)
}

// errorOperand: placeholder при ошибке в операнде оператора.
func (p *Parser) errorOperand(start source.Span) ast.StmtID {
	return p.s.ActOnError(start.Cover(p.lastSpan))
}
