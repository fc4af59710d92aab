package lexer

import (
	"fmt"

	"cbridge/internal/diag"
	"cbridge/internal/token"
)

// Жадность: сначала 4/3-символьные, затем 2-символьные, затем 1-символьные.
// Digraphs (<: :> <% %> %: %:%:) map to the tokens they spell.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Text(start)}
	}

	switch {
	case lx.try("%:%:"):
		return emit(token.HashHash)
	case lx.try("..."):
		return emit(token.Ellipsis)
	case lx.try("<<="):
		return emit(token.ShlAssign)
	case lx.try(">>="):
		return emit(token.ShrAssign)
	case lx.try("->"):
		return emit(token.Arrow)
	case lx.try("++"):
		return emit(token.PlusPlus)
	case lx.try("--"):
		return emit(token.MinusMinus)
	case lx.try("<<"):
		return emit(token.Shl)
	case lx.try(">>"):
		return emit(token.Shr)
	case lx.try("<="):
		return emit(token.LtEq)
	case lx.try(">="):
		return emit(token.GtEq)
	case lx.try("=="):
		return emit(token.EqEq)
	case lx.try("!="):
		return emit(token.BangEq)
	case lx.try("&&"):
		return emit(token.AndAnd)
	case lx.try("||"):
		return emit(token.OrOr)
	case lx.try("+="):
		return emit(token.PlusAssign)
	case lx.try("-="):
		return emit(token.MinusAssign)
	case lx.try("*="):
		return emit(token.StarAssign)
	case lx.try("/="):
		return emit(token.SlashAssign)
	case lx.try("%="):
		return emit(token.PercentAssign)
	case lx.try("&="):
		return emit(token.AmpAssign)
	case lx.try("|="):
		return emit(token.PipeAssign)
	case lx.try("^="):
		return emit(token.CaretAssign)
	case lx.try("##"):
		return emit(token.HashHash)
	case lx.try("<:"):
		return emit(token.LBracket)
	case lx.try(":>"):
		return emit(token.RBracket)
	case lx.try("<%"):
		return emit(token.LBrace)
	case lx.try("%>"):
		return emit(token.RBrace)
	case lx.try("%:"):
		return emit(token.Hash)
	}

	// односимвольные
	ch := lx.cursor.Bump()
	switch ch {
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '.':
		return emit(token.Dot)
	case ',':
		return emit(token.Comma)
	case ';':
		return emit(token.Semicolon)
	case ':':
		return emit(token.Colon)
	case '?':
		return emit(token.Question)
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '^':
		return emit(token.Caret)
	case '~':
		return emit(token.Tilde)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '=':
		return emit(token.Assign)
	case '#':
		return emit(token.Hash)
	}

	tok := emit(token.Invalid)
	lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unexpected character %q", tok.Text))
	return tok
}

// try consumes s when the input continues with it.
func (lx *Lexer) try(s string) bool {
	for i := range len(s) {
		if lx.cursor.PeekAt(uint32(i)) != s[i] { // #nosec G115 -- operator spellings are short
			return false
		}
	}
	for range len(s) {
		lx.cursor.Bump()
	}
	return true
}
