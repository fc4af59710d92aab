package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cbridge/internal/source"
	"cbridge/internal/token"
)

type TokenOutput struct {
	Kind     string      `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Span     source.Span `json:"span"`
	Line     uint32      `json:"line,omitempty"`
	Col      uint32      `json:"col,omitempty"`
	Leading  []string    `json:"leading,omitempty"`
	Presumed string      `json:"presumed,omitempty"`
}

// triviaNames сворачивает leading trivia в имена; директивы печатаются как "#line".
func triviaNames(tok token.Token) []string {
	var out []string
	for _, tr := range tok.Leading {
		if tr.Kind == token.TriviaDirective && tr.Directive != nil {
			name := tr.Directive.Name
			if name == "" {
				name = "linemarker"
			}
			out = append(out, "#"+name)
			continue
		}
		out = append(out, tr.Kind.String())
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)

		// позиция после #line показывается, только если она отличается от физической
		if loc, ok := fs.Presumed(tok.Span.File, tok.Span.Start); ok && loc.Line != startPos.Line {
			fmt.Fprintf(w, " [%s:%d]", loc.Filename, loc.Line)
		}
		if leading := triviaNames(tok); len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: triviaNames(tok),
		}
		if fs != nil && tok.Span.IsValid() {
			pos, _ := fs.Resolve(tok.Span)
			out.Line, out.Col = pos.Line, pos.Col
			if loc, ok := fs.Presumed(tok.Span.File, tok.Span.Start); ok && loc.Line != pos.Line {
				out.Presumed = fmt.Sprintf("%s:%d:%d", loc.Filename, loc.Line, loc.Col)
			}
		}
		output = append(output, out)

		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
