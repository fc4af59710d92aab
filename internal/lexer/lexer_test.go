package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"cbridge/internal/diag"
	"cbridge/internal/lexer"
	"cbridge/internal/source"
	"cbridge/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag, *source.File) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(input)))
	bag := diag.NewBag(0)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}, KeepLineMarkers: true})
	return lx, bag, file
}

func messages(bag *diag.Bag) []string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return out
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens проверяет последовательность токенов (без EOF)
func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, bag, _ := makeTestLexer(input)
	tokens := lx.All()
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\ndiags: %v",
			len(expected), len(tokens), input, tokensToString(tokens), messages(bag))
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func TestDeclarationTokens(t *testing.T) {
	toks := expectTokens(t, "int x = 2 + 3;",
		token.KwInt, token.Ident, token.Assign, token.IntLit, token.Plus, token.IntLit, token.Semicolon)
	if toks[1].Text != "x" || toks[1].Span.Start != 4 || toks[1].Span.End != 5 {
		t.Fatalf("unexpected ident %+v", toks[1])
	}
}

func TestPunctuatorsLongestMatch(t *testing.T) {
	expectTokens(t, "a->b ... <<= >>= ++ -- && || != == <= >= << >> |= ^= %= /= *= -= += &= ## ~ ?",
		token.Ident, token.Arrow, token.Ident, token.Ellipsis, token.ShlAssign, token.ShrAssign,
		token.PlusPlus, token.MinusMinus, token.AndAnd, token.OrOr, token.BangEq, token.EqEq,
		token.LtEq, token.GtEq, token.Shl, token.Shr, token.PipeAssign, token.CaretAssign,
		token.PercentAssign, token.SlashAssign, token.StarAssign, token.MinusAssign,
		token.PlusAssign, token.AmpAssign, token.HashHash, token.Tilde, token.Question)
}

func TestDigraphs(t *testing.T) {
	expectTokens(t, "<: :> <% %>", token.LBracket, token.RBracket, token.LBrace, token.RBrace)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"42u", token.IntLit},
		{"0x7fffffffffffffffULL", token.IntLit},
		{"0755", token.IntLit},
		{"1.5", token.FloatLit},
		{".5f", token.FloatLit},
		{"1e10", token.FloatLit},
		{"1E-3L", token.FloatLit},
		{"0x1.8p3", token.FloatLit},
		{"0x1p-2", token.FloatLit},
		{"1.", token.FloatLit},
	}
	for _, tt := range tests {
		lx, bag, _ := makeTestLexer(tt.in)
		tok := lx.Next()
		if tok.Kind != tt.kind || tok.Text != tt.in {
			t.Errorf("%q: got %v(%q), want %v", tt.in, tok.Kind, tok.Text, tt.kind)
		}
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics %v", tt.in, messages(bag))
		}
	}
}

func TestBadHexFloat(t *testing.T) {
	lx, bag, _ := makeTestLexer("0x1.8")
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatalf("expected LexBadNumber, got %v", messages(bag))
	}
}

func TestCharAndStringPrefixes(t *testing.T) {
	toks := expectTokens(t, `'a' L'b' u8"x" U"y" u'\'' "a\"b" L`,
		token.CharLit, token.CharLit, token.StringLit, token.StringLit, token.CharLit, token.StringLit, token.Ident)
	if toks[2].Text != `u8"x"` || toks[5].Text != `"a\"b"` {
		t.Fatalf("unexpected texts %v", tokensToString(toks))
	}
}

func TestUnterminatedLiterals(t *testing.T) {
	for _, in := range []string{"\"abc\nint", "'a\n", "\"abc"} {
		lx, bag, _ := makeTestLexer(in)
		if tok := lx.Next(); tok.Kind != token.Invalid {
			t.Errorf("%q: expected Invalid, got %v", in, tok.Kind)
		}
		if !bag.HasErrors() {
			t.Errorf("%q: expected an error", in)
		}
	}
	lx, bag, _ := makeTestLexer("''")
	lx.Next()
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexEmptyChar {
		t.Fatalf("expected empty char error, got %v", messages(bag))
	}
}

func TestCommentsBecomeTrivia(t *testing.T) {
	lx, bag, _ := makeTestLexer("/* a */ // b\nint")
	tok := lx.Next()
	if tok.Kind != token.KwInt {
		t.Fatalf("expected int, got %v", tok.Kind)
	}
	kinds := make([]token.TriviaKind, 0, len(tok.Leading))
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{token.TriviaBlockComment, token.TriviaSpace, token.TriviaLineComment, token.TriviaNewline}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("trivia = %v, want %v", kinds, want)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diags %v", messages(bag))
	}

	lx, bag, _ = makeTestLexer("/* open")
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", tok.Kind)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected unterminated comment error")
	}
}

func TestLineMarkersAreRecorded(t *testing.T) {
	src := "# 1 \"main.c\"\n# 40 \"/usr/include/stdio.h\" 1 3 4\nint a;\n#line 7 \"main.c\"\nint b;\n"
	lx, bag, file := makeTestLexer(src)
	toks := lx.All()
	if bag.Len() != 0 {
		t.Fatalf("unexpected diags %v", messages(bag))
	}
	if len(file.Markers) != 3 {
		t.Fatalf("markers = %+v", file.Markers)
	}
	a := toks[1] // a
	loc := file.Presumed(a.Span.Start)
	if loc.Filename != "/usr/include/stdio.h" || loc.Line != 40 || loc.Col != 5 {
		t.Fatalf("presumed a = %+v", loc)
	}
	b := toks[4]
	loc = file.Presumed(b.Span.Start)
	if loc.Filename != "main.c" || loc.Line != 7 {
		t.Fatalf("presumed b = %+v", loc)
	}
	if toks[0].Leading[0].Directive == nil || toks[0].Leading[0].Directive.Name != "" {
		t.Fatalf("expected bare linemarker directive trivia")
	}
}

func TestOtherDirectivesWarn(t *testing.T) {
	lx, bag, _ := makeTestLexer("#include <stdio.h>\n#pragma once\n  # define X 1\nint x; # not a directive")
	toks := lx.All()
	got := messages(bag)
	if len(got) != 2 {
		t.Fatalf("diags = %v", got)
	}
	if !strings.Contains(got[0], "'#include' ignored") || !strings.Contains(got[1], "'#define' ignored") {
		t.Fatalf("diags = %v", got)
	}
	// '#' не в начале строки: обычный токен
	if toks[3].Kind != token.Hash {
		t.Fatalf("expected Hash token, got %v", tokensToString(toks))
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("second peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("expected EOF")
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("EOF must be sticky")
	}
}

func TestUnknownCharacter(t *testing.T) {
	lx, bag, _ := makeTestLexer("int @ x ✓")
	toks := lx.All()
	if toks[1].Kind != token.Invalid || toks[3].Kind != token.Invalid || toks[3].Text != "✓" {
		t.Fatalf("tokens = %v", tokensToString(toks))
	}
	if bag.CountBySeverity(diag.SevError) != 2 {
		t.Fatalf("diags = %v", messages(bag))
	}
}
