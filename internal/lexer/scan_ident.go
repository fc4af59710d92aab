package lexer

import (
	"fmt"

	"cbridge/internal/diag"
	"cbridge/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.Text(start)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// encodingPrefixLen returns the length of L/u/U/u8 when a quote follows it.
func (lx *Lexer) encodingPrefixLen() uint32 {
	switch lx.cursor.Peek() {
	case 'L', 'U':
		if q := lx.cursor.PeekAt(1); q == '"' || q == '\'' {
			return 1
		}
	case 'u':
		if q := lx.cursor.PeekAt(1); q == '"' || q == '\'' {
			return 1
		}
		if lx.cursor.PeekAt(1) == '8' {
			if q := lx.cursor.PeekAt(2); q == '"' || q == '\'' {
				return 2
			}
		}
	}
	return 0
}

// scanUnknown consumes one UTF-8 sequence that cannot start a token.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for b := lx.cursor.Peek(); b&0xC0 == 0x80; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.Text(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", text))
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}
