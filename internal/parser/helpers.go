package parser

import (
	"cbridge/internal/diag"
	"cbridge/internal/source"
	"cbridge/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: возвращает лучший span для диагностики.
// На EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.IsValid() {
		return p.lastSpan.ZeroideToEnd()
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string, decorate ...func(*diag.ReportBuilder)) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	if !p.countError() {
		return token.Token{Kind: token.Invalid, Span: diagSpan}, false
	}
	b := diag.ReportError(p.opts.Reporter, code, diagSpan, msg)
	for _, fn := range decorate {
		fn(b)
	}
	b.Emit()
	return token.Token{Kind: token.Invalid, Span: diagSpan}, false
}

// expectSemicolon ожидает ';' и предлагает вставить его после последнего токена.
func (p *Parser) expectSemicolon(after string) bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after "+after, func(b *diag.ReportBuilder) {
		at := p.lastSpan.ZeroideToEnd()
		b.WithFix("insert ';'", diag.FixEdit{Span: at, NewText: ";"})
	})
	return ok
}

// expectClose ожидает закрывающую скобку и добавляет note на открывающую.
func (p *Parser) expectClose(k token.Kind, code diag.Code, open source.Span) (token.Token, bool) {
	return p.expect(k, code, "expected '"+k.String()+"'", func(b *diag.ReportBuilder) {
		b.WithNote(open, "to match this '"+matching(k)+"'")
	})
}

func matching(k token.Kind) string {
	switch k {
	case token.RParen:
		return "("
	case token.RBracket:
		return "["
	case token.RBrace:
		return "{"
	}
	return k.String()
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

// репортует warning и передает текущий спан
func (p *Parser) warn(code diag.Code, msg string) bool {
	return p.report(code, diag.SevWarning, p.getDiagnosticSpan(), msg)
}

// countError учитывает ошибку и сообщает, можно ли ещё репортить.
func (p *Parser) countError() bool {
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false
	}
	p.opts.CurrentErrors++
	return true
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false // нет reporter - ничего не записали
	}
	if sev == diag.SevError && !p.countError() {
		return false // достигли максимального количества ошибок
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	return true
}

// resyncUntil прокручивает токены до одного из stop (не съедая его),
// перескакивая через вложенные скобки.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) {
		if p.at_or(stop...) {
			return
		}
		switch p.peek().Kind {
		case token.LParen, token.LBracket, token.LBrace:
			p.skipBalanced()
			continue
		case token.RBrace:
			return
		}
		p.advance()
	}
}

// skipBalanced пропускает скобочную группу начиная с открывающей скобки.
func (p *Parser) skipBalanced() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		}
		if depth <= 0 {
			return
		}
	}
}

// resyncStatement: до ';' (съедая) или до '}' блока.
func (p *Parser) resyncStatement() {
	p.resyncUntil(token.Semicolon, token.RBrace)
	if p.at(token.Semicolon) {
		p.advance()
	}
}
