package lexer

import (
	"cbridge/internal/diag"
	"cbridge/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - пробелы и табы коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment
// - /* ... */ -> TriviaBlockComment (без вложенности, как в C)
// - '#' в начале строки -> TriviaDirective до конца логической строки
// - "\\\n" (склейка строк) поглощается как пробел
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isSpace(b) || (b == '\\' && lx.cursor.PeekAt(1) == '\n'):
			for {
				if b2 := lx.cursor.Peek(); isSpace(b2) {
					lx.cursor.Bump()
					continue
				}
				if lx.cursor.Peek() == '\\' && lx.cursor.PeekAt(1) == '\n' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					continue
				}
				break
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue

		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			lx.lineStart = true
			continue

		case b == '/':
			if lx.scanCommentIntoHold() {
				continue
			}

		case b == '#' && lx.lineStart:
			lx.scanDirectiveIntoHold()
			continue
		}

		// нет больше trivia
		return
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.Text(start),
	})
}

// //... , /*...*/
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	switch lx.cursor.PeekAt(1) {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated /* comment")
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		return true
	}
	return false
}
