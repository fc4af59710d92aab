package parser

import (
	"cbridge/internal/diag"
	"cbridge/internal/sema"
	"cbridge/internal/token"
)

// parseInitializer: assignment-expression или `{ список }`.
func (p *Parser) parseInitializer() (*sema.Initializer, bool) {
	if !p.at(token.LBrace) {
		e, ok := p.parseAssignExpr()
		if !ok {
			return nil, false
		}
		return &sema.Initializer{Expr: e, Span: p.b.Stmts.Get(e).Span}, true
	}
	return p.parseBracedInitializer()
}

func (p *Parser) parseBracedInitializer() (*sema.Initializer, bool) {
	lb := p.advance()
	init := &sema.Initializer{Braced: true}
	if p.at(token.RBrace) && p.s.Standard() != sema.StdC23 {
		p.warn(diag.SynUnsupported, "use of an empty initializer is a C23 extension")
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		item, ok := p.parseInitItem()
		if !ok {
			p.resyncUntil(token.Comma, token.RBrace)
			if !p.at(token.Comma) {
				break
			}
		} else {
			init.List = append(init.List, item)
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	rb, ok := p.expectClose(token.RBrace, diag.SynUnclosedBrace, lb.Span)
	init.Span = lb.Span.Cover(rb.Span)
	return init, ok
}

// parseInitItem: designation? initializer. GNU `field: value` тоже принимаем.
func (p *Parser) parseInitItem() (sema.InitItem, bool) {
	var item sema.InitItem
	if p.at(token.Ident) && p.peekN(1).Kind == token.Colon {
		tok := p.advance()
		p.advance()
		p.report(diag.SynUnsupported, diag.SevWarning, tok.Span, "use of GNU old-style field designator extension")
		item.Designators = append(item.Designators, sema.Designator{IsField: true, Field: p.b.Strings.Intern(tok.Text), Span: tok.Span})
		return p.parseInitValue(item)
	}
	for {
		if p.at(token.Dot) {
			dot := p.advance()
			name, nameSpan, ok := p.parseIdent()
			if !ok {
				return item, false
			}
			item.Designators = append(item.Designators, sema.Designator{IsField: true, Field: name, Span: dot.Span.Cover(nameSpan)})
			continue
		}
		if p.at(token.LBracket) {
			lb := p.advance()
			idx, ok := p.parseConditionalExpr()
			if !ok {
				return item, false
			}
			rb, ok := p.expectClose(token.RBracket, diag.SynUnclosedBracket, lb.Span)
			if !ok {
				return item, false
			}
			item.Designators = append(item.Designators, sema.Designator{Index: idx, Span: lb.Span.Cover(rb.Span)})
			continue
		}
		break
	}
	if len(item.Designators) > 0 {
		if p.at(token.Assign) {
			p.advance()
		} else {
			p.warn(diag.SynUnsupported, "use of GNU 'missing =' extension in designator")
		}
	}
	return p.parseInitValue(item)
}

func (p *Parser) parseInitValue(item sema.InitItem) (sema.InitItem, bool) {
	init, ok := p.parseInitializer()
	if !ok {
		return item, false
	}
	item.Init = init
	return item, true
}
