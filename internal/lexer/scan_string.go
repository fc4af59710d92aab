package lexer

import (
	"cbridge/internal/diag"
	"cbridge/internal/token"
)

// scanQuoted scans a character constant or string literal after an encoding
// prefix of prefixLen bytes. Escapes are only skipped here; decoding happens
// in internal/literal.
func (lx *Lexer) scanQuoted(prefixLen uint32) token.Token {
	start := lx.cursor.Mark()
	for range prefixLen {
		lx.cursor.Bump()
	}
	quote := lx.cursor.Bump()
	kind, code, what := token.StringLit, diag.LexUnterminatedString, "missing terminating '\"' character"
	if quote == '\'' {
		kind, code, what = token.CharLit, diag.LexUnterminatedChar, "missing terminating ' character"
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		case '\n':
			// перевод строки внутри литерала: не потребляем его
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(code, sp, what)
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
		case quote:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			text := lx.cursor.Text(start)
			if kind == token.CharLit && sp.Len() == prefixLen+2 {
				lx.errLex(diag.LexEmptyChar, sp, "empty character constant")
				return token.Token{Kind: token.Invalid, Span: sp, Text: text}
			}
			return token.Token{Kind: kind, Span: sp, Text: text}
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(code, sp, what)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.Text(start)}
}
