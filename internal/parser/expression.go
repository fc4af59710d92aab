package parser

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/token"
)

// parseExpr: expression с оператором запятая.
func (p *Parser) parseExpr() (ast.StmtID, bool) {
	left, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	for p.at(token.Comma) {
		comma := p.advance()
		right, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		left = p.s.ActOnBinary(ast.BinaryComma, comma.Span, left, right)
	}
	return left, true
}

// parseAssignExpr: присваивание правоассоциативно; левую часть
// проверяет sema (модифицируемое lvalue).
func (p *Parser) parseAssignExpr() (ast.StmtID, bool) {
	left, ok := p.parseConditionalExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	op, isAssign := assignOp(p.peek().Kind)
	if !isAssign {
		return left, true
	}
	opTok := p.advance()
	right, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.s.ActOnBinary(op, opTok.Span, left, right), true
}

// parseConditionalExpr: `cond ? a : b`.
func (p *Parser) parseConditionalExpr() (ast.StmtID, bool) {
	cond, ok := p.parseBinaryExpr(precLogicalOr)
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.at(token.Question) {
		return cond, true
	}
	q := p.advance()
	if p.at(token.Colon) {
		p.report(diag.SynUnsupported, diag.SevError, q.Span.Cover(p.peek().Span), "GNU conditional with omitted operand is not supported")
		return ast.NoStmtID, false
	}
	then, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':'", func(b *diag.ReportBuilder) {
		b.WithNote(q.Span, "to match this '?'")
	}); !ok {
		return ast.NoStmtID, false
	}
	els, ok := p.parseConditionalExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.s.ActOnConditional(cond, then, els), true
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.StmtID, bool) {
	left, ok := p.parseCastExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	for {
		prec := getBinaryOperatorPrec(p.peek().Kind)
		if prec < minPrec {
			break
		}
		opTok := p.advance()
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoStmtID, false
		}
		left = p.s.ActOnBinary(tokenKindToBinaryOp(opTok.Kind), opTok.Span, left, right)
	}
	return left, true
}

// startsTypeName: `(` за которой идёт имя типа: приведение, составной литерал.
func (p *Parser) startsTypeName() bool {
	return p.at(token.LParen) && p.isTypeSpecStart(p.peekN(1))
}

// parseCastExpr: `(type) cast-expr`, `(type){...}` или унарное выражение.
func (p *Parser) parseCastExpr() (ast.StmtID, bool) {
	if !p.startsTypeName() {
		return p.parseUnaryExpr()
	}
	lp := p.advance()
	ty, _, ok := p.parseTypeName()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span); !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.LBrace) {
		init, ok := p.parseBracedInitializer()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.parsePostfixExpr(p.s.ActOnCompoundLiteral(lp.Span, ty, init))
	}
	sub, ok := p.parseCastExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.s.ActOnCast(lp.Span, ty, sub), true
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.StmtID, bool) {
	tok := p.peek()
	if op, ok := getUnaryOperator(tok.Kind); ok {
		p.advance()
		var sub ast.StmtID
		if op.IsIncDec() {
			sub, ok = p.parseUnaryExpr()
		} else {
			sub, ok = p.parseCastExpr()
		}
		if !ok {
			return ast.NoStmtID, false
		}
		return p.s.ActOnUnary(op, tok.Span, sub), true
	}
	switch {
	case tok.Kind == token.KwSizeof:
		return p.parseTrait(ast.TraitSizeOf)
	case tok.Kind == token.KwAlignof:
		return p.parseTrait(ast.TraitAlignOf)
	case tok.Kind == token.AndAnd:
		p.err(diag.SynUnsupported, "address of label is not supported")
		return ast.NoStmtID, false
	case tok.Kind == token.Ident && (tok.Text == "__real__" || tok.Text == "__real"):
		return p.parseComplexPart(ast.UnaryReal)
	case tok.Kind == token.Ident && (tok.Text == "__imag__" || tok.Text == "__imag"):
		return p.parseComplexPart(ast.UnaryImag)
	}
	primary, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.parsePostfixExpr(primary)
}

func (p *Parser) parseComplexPart(op ast.UnaryOp) (ast.StmtID, bool) {
	kw := p.advance()
	sub, ok := p.parseCastExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.s.ActOnUnary(op, kw.Span, sub), true
}

// parseTrait: sizeof/_Alignof от типа или выражения.
func (p *Parser) parseTrait(kind ast.TraitKind) (ast.StmtID, bool) {
	kw := p.advance()
	if p.startsTypeName() {
		lp := p.advance()
		ty, _, ok := p.parseTypeName()
		if !ok {
			return ast.NoStmtID, false
		}
		rp, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span)
		if !ok {
			return ast.NoStmtID, false
		}
		if !p.at(token.LBrace) {
			return p.s.ActOnTraitType(kind, kw.Span.Cover(rp.Span), ty), true
		}
		// sizeof (T){...}: операнд составной литерал
		init, ok := p.parseBracedInitializer()
		if !ok {
			return ast.NoStmtID, false
		}
		e, ok := p.parsePostfixExpr(p.s.ActOnCompoundLiteral(lp.Span, ty, init))
		if !ok {
			return ast.NoStmtID, false
		}
		return p.s.ActOnTraitExpr(kind, kw.Span.Cover(p.lastSpan), e), true
	}
	sub, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.s.ActOnTraitExpr(kind, kw.Span.Cover(p.lastSpan), sub), true
}
