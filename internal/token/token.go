package token

import (
	"cbridge/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, character, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, CharLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a C keyword (GNU spellings included).
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAuto && t.Kind <= KwBuiltinVaArg
}

// IsPunctOrOp reports whether the token is a punctuator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= LParen && t.Kind <= HashHash
}

// IsAssignOp reports '=' and the compound assignment operators.
func (t Token) IsAssignOp() bool {
	return t.Kind >= Assign && t.Kind <= ShrAssign
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// AtLineStart reports whether a newline precedes the token or it opens the file.
func (t Token) AtLineStart() bool {
	if t.Span.Start == 0 {
		return true
	}
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline || tr.Kind == TriviaDirective {
			return true
		}
	}
	return false
}
