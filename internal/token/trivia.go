package token

import "cbridge/internal/source"

// Directive is a preprocessor line kept as trivia, e.g. `# 12 "x.h" 1`.
type Directive struct {
	Name    string // "line", "pragma", "include", ... ; "" for a bare linemarker
	Payload string
}

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDirective
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDirective:
		return "Directive"
	default:
		return "TriviaKind(?)"
	}
}

type Trivia struct {
	Kind      TriviaKind
	Span      source.Span
	Text      string
	Directive *Directive // только если Kind == TriviaDirective
}
