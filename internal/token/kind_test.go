package token_test

import (
	"testing"

	"cbridge/internal/source"
	"cbridge/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{File: 1, Start: 4, End: 4}}
}

func TestClassifiers(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.FloatLit, token.CharLit, token.StringLit} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.KwAuto, token.KwWhile, token.KwBool, token.KwBuiltinVaArg} {
		if !tok(k).IsKeyword() || tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be keyword only", k)
		}
	}
	for _, k := range []token.Kind{token.LParen, token.Ellipsis, token.ShrAssign, token.HashHash} {
		if !tok(k).IsPunctOrOp() || tok(k).IsKeyword() {
			t.Fatalf("%v should be punctuator only", k)
		}
	}
	if !tok(token.PercentAssign).IsAssignOp() || tok(token.EqEq).IsAssignOp() {
		t.Fatalf("assign classification broken")
	}
}

func TestLookupKeywordGNUSpellings(t *testing.T) {
	tests := map[string]token.Kind{
		"int":           token.KwInt,
		"__inline__":    token.KwInline,
		"__restrict":    token.KwRestrict,
		"__asm__":       token.KwAsm,
		"_Bool":         token.KwBool,
		"__alignof__":   token.KwAlignof,
		"__extension__": token.KwExtension,
	}
	for word, want := range tests {
		got, ok := token.LookupKeyword(word)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = %v, %v; want %v", word, got, ok, want)
		}
	}
	if _, ok := token.LookupKeyword("Int"); ok {
		t.Fatalf("keywords are case-sensitive")
	}
}

func TestKindString(t *testing.T) {
	if token.ShlAssign.String() != "<<=" || token.KwStruct.String() != "struct" || token.Ident.String() != "Ident" {
		t.Fatalf("unexpected names")
	}
}

func TestAtLineStart(t *testing.T) {
	first := token.Token{Kind: token.Ident, Span: source.Span{File: 1}}
	if !first.AtLineStart() {
		t.Fatalf("first token starts a line")
	}
	mid := token.Token{Kind: token.Ident, Span: source.Span{File: 1, Start: 3, End: 4},
		Leading: []token.Trivia{{Kind: token.TriviaSpace}}}
	if mid.AtLineStart() {
		t.Fatalf("space-only trivia is not a line start")
	}
	mid.Leading = append(mid.Leading, token.Trivia{Kind: token.TriviaNewline})
	if !mid.AtLineStart() {
		t.Fatalf("newline trivia marks a line start")
	}
}
