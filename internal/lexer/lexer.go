package lexer

import (
	"cbridge/internal/source"
	"cbridge/internal/token"
)

type Lexer struct {
	file      *source.File
	cursor    Cursor
	opts      Options
	look      *token.Token   // 1 элементный буфер для токена
	hold      []token.Trivia // накопленные leading trivia
	lineStart bool           // только пробелы/комментарии с начала строки
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		lineStart: true,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.takeHold()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		// префиксы L, u, U, u8 у символьных и строковых литералов
		if n := lx.encodingPrefixLen(); n > 0 {
			tok = lx.scanQuoted(n)
		} else {
			tok = lx.scanIdentOrKeyword()
		}
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanQuoted(0)
	case ch >= 0x80:
		tok = lx.scanUnknown()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	lx.lineStart = false
	tok.Leading = lx.takeHold()
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes to EOF; the EOF token is included.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, 64)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
