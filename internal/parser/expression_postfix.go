package parser

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/token"
)

// parsePostfixExpr: вызовы, индексация, доступ к полям и x++/x--.
func (p *Parser) parsePostfixExpr(expr ast.StmtID) (ast.StmtID, bool) {
	for {
		switch p.peek().Kind {
		case token.LParen:
			var ok bool
			expr, ok = p.parseCallSuffix(expr)
			if !ok {
				return ast.NoStmtID, false
			}
		case token.LBracket:
			lb := p.advance()
			idx, ok := p.parseExpr()
			if !ok {
				return ast.NoStmtID, false
			}
			rb, ok := p.expectClose(token.RBracket, diag.SynUnclosedBracket, lb.Span)
			if !ok {
				return ast.NoStmtID, false
			}
			expr = p.s.ActOnSubscript(expr, idx, rb.Span)
		case token.Dot, token.Arrow:
			op := p.advance()
			if !p.at(token.Ident) {
				p.err(diag.SynExpectIdentifier, "expected identifier after '"+op.Kind.String()+"'")
				return ast.NoStmtID, false
			}
			name := p.advance()
			expr = p.s.ActOnMember(expr, op.Kind == token.Arrow, op.Span, name.Text, name.Span)
		case token.PlusPlus:
			op := p.advance()
			expr = p.s.ActOnUnary(ast.UnaryPostInc, op.Span, expr)
		case token.MinusMinus:
			op := p.advance()
			expr = p.s.ActOnUnary(ast.UnaryPostDec, op.Span, expr)
		default:
			return expr, true
		}
	}
}

// parseCallSuffix: `(args)` после выражения.
func (p *Parser) parseCallSuffix(callee ast.StmtID) (ast.StmtID, bool) {
	lp := p.advance()
	var args []ast.StmtID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseAssignExpr()
			if !ok {
				return ast.NoStmtID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	rp, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.s.ActOnCall(callee, args, rp.Span), true
}

var predefined = map[string]ast.PredefinedKind{
	"__func__":            ast.PredefFunc,
	"__FUNCTION__":        ast.PredefFunction,
	"__PRETTY_FUNCTION__": ast.PredefPrettyFunction,
}

// parsePrimaryExpr: идентификаторы, литералы, скобки, GNU-расширения.
func (p *Parser) parsePrimaryExpr() (ast.StmtID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		if kind, ok := predefined[tok.Text]; ok {
			return p.s.ActOnPredefined(kind, tok.Span), true
		}
		return p.s.ActOnIdentifier(tok.Text, tok.Span, p.at(token.LParen)), true
	case token.IntLit:
		p.advance()
		return p.s.ActOnIntegerLiteral(tok), true
	case token.FloatLit:
		p.advance()
		return p.s.ActOnFloatLiteral(tok), true
	case token.CharLit:
		p.advance()
		return p.s.ActOnCharLiteral(tok), true
	case token.StringLit:
		return p.parseStringLiteral(), true
	case token.LParen:
		return p.parseParenExpr()
	case token.KwBuiltinVaArg:
		return p.parseVAArg()
	}
	p.err(diag.SynExpectExpression, "expected expression")
	return ast.NoStmtID, false
}

// parseStringLiteral склеивает соседние строковые литералы.
func (p *Parser) parseStringLiteral() ast.StmtID {
	var toks []token.Token
	for p.at(token.StringLit) {
		toks = append(toks, p.advance())
	}
	return p.s.ActOnStringLiteral(toks)
}

// parseParenExpr: `(expr)` или GNU statement expression `({ ... })`.
func (p *Parser) parseParenExpr() (ast.StmtID, bool) {
	lp := p.advance()
	if p.at(token.LBrace) {
		if p.s.AtFileScope() {
			p.err(diag.SynUnsupported, "statement expression not allowed at file scope")
			p.skipBalanced()
			p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span)
			return ast.NoStmtID, false
		}
		body := p.parseCompoundStmt(true)
		rp, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span)
		if !ok {
			return ast.NoStmtID, false
		}
		return p.s.ActOnStmtExpr(lp.Span.Cover(rp.Span), body), true
	}
	sub, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	rp, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.s.ActOnParen(lp.Span.Cover(rp.Span), sub), true
}

// parseVAArg: `__builtin_va_arg(ap, type)`.
func (p *Parser) parseVAArg() (ast.StmtID, bool) {
	kw := p.advance()
	lp, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after '__builtin_va_arg'")
	if !ok {
		return ast.NoStmtID, false
	}
	ap, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ','"); !ok {
		return ast.NoStmtID, false
	}
	ty, _, ok := p.parseTypeName()
	if !ok {
		return ast.NoStmtID, false
	}
	rp, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, lp.Span)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.s.ActOnVAArg(kw.Span.Cover(rp.Span), ap, ty), true
}
