// Package parser is a recursive-descent C parser. It does not build a tree of
// its own: every recognised construct is handed to sema, which creates the
// typed AST nodes.
package parser

import (
	"slices"

	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/lexer"
	"cbridge/internal/sema"
	"cbridge/internal/source"
	"cbridge/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	TU  ast.DeclID
	Bag *diag.Bag
}

// Parser: состояние парсера на одну единицу трансляции
type Parser struct {
	toks     []token.Token // весь поток токенов, последний: EOF
	pos      int
	s        *sema.Sema
	b        *ast.Builder
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile: входная точка для разбора одного файла.
// Лексер вычитывается целиком: C требует произвольного lookahead на
// границе объявлений и выражений.
func ParseFile(lx *lexer.Lexer, s *sema.Sema, opts Options) Result {
	res := ParseTokens(lx.All(), s, opts)
	s.Finish()
	return res
}

// ParseTokens разбирает уже готовый поток токенов (последний: EOF).
// Sema.Finish остаётся за вызывающим: драйвер меряет его отдельной фазой.
func ParseTokens(toks []token.Token, s *sema.Sema, opts Options) Result {
	p := Parser{
		toks: toks,
		s:    s,
		b:    s.Builder(),
		opts: opts,
	}
	p.parseTranslationUnit()

	var bag *diag.Bag
	switch r := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = r.Bag
	case *diag.BagReporter:
		bag = r.Bag
	}
	return Result{TU: p.b.TU, Bag: bag}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseTranslationUnit: основной цикл верхнего уровня: пока не EOF: внешнее объявление.
func (p *Parser) parseTranslationUnit() {
	for !p.at(token.EOF) {
		if p.opts.Enough() {
			return
		}
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		before := p.pos
		if _, _, ok := p.parseDeclaration(ctxFile); !ok {
			p.resyncTop()
		}
		if p.pos == before {
			p.advance() // гарантируем прогресс
		}
	}
}

// resyncTop: восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' или закрывающей '}' верхнего уровня.
func (p *Parser) resyncTop() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth <= 0 {
				p.advance()
				return
			}
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// parseIdent: ожидает Ident и интернирует его.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.b.Strings.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier")
	return source.NoStringID, p.getDiagnosticSpan(), false
}
