package lexer

import (
	"strings"

	"cbridge/internal/diag"
	"cbridge/internal/token"
)

// scanNumber consumes a preprocessing number: digits, letters, '.', and a
// sign right after an exponent marker (e, E, p, P). The token is IntLit unless
// it has a '.', a decimal exponent, or a hex 'p' exponent. Suffix validation
// happens in internal/literal when the value is decoded.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	hex := lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X')

	for {
		b := lx.cursor.Peek()
		switch {
		case isIdentContinueByte(b) || b == '.':
			lx.cursor.Bump()
			if (b == 'e' || b == 'E') && !hex || b == 'p' || b == 'P' {
				if s := lx.cursor.Peek(); s == '+' || s == '-' {
					lx.cursor.Bump()
				}
			}
			continue
		case b == '\'' && isHex(lx.cursor.PeekAt(1)):
			// C23 digit separator 1'000
			lx.cursor.Bump()
			continue
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.Text(start)
	kind := classifyNumber(text)
	if kind == token.Invalid {
		lx.errLex(diag.LexBadNumber, sp, "invalid numeric constant '"+text+"'")
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func classifyNumber(text string) token.Kind {
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "0x") {
		if len(lower) == 2 {
			return token.Invalid
		}
		if strings.ContainsAny(lower, ".p") {
			if !strings.Contains(lower, "p") {
				// шестнадцатеричной дроби нужна экспонента
				return token.Invalid
			}
			return token.FloatLit
		}
		return token.IntLit
	}
	if strings.Contains(lower, ".") || strings.ContainsAny(lower, "e") && !strings.HasPrefix(lower, "0b") {
		return token.FloatLit
	}
	return token.IntLit
}
