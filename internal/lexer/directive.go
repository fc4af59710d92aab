package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"cbridge/internal/diag"
	"cbridge/internal/source"
	"cbridge/internal/token"
)

// scanDirectiveIntoHold consumes one logical directive line starting at '#'.
// Linemarkers and #line are recorded on the file; #pragma and #ident pass
// silently; anything else is reported because the input should already be
// preprocessed.
func (lx *Lexer) scanDirectiveIntoHold() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' && lx.cursor.PeekAt(1) == '\n' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.Text(start)

	body := strings.TrimSpace(strings.ReplaceAll(text[1:], "\\\n", " "))
	name, payload := splitDirective(body)
	dir := &token.Directive{Name: name, Payload: payload}
	lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaDirective, Span: sp, Text: text, Directive: dir})

	switch name {
	case "":
		if payload != "" {
			lx.lineMarker(sp, payload, true)
		}
	case "line":
		lx.lineMarker(sp, payload, false)
	case "pragma", "ident", "sccs":
	default:
		lx.warnLex(diag.LexDirectiveIgnored, sp,
			fmt.Sprintf("preprocessor directive '#%s' ignored; input is expected to be preprocessed", name))
	}
}

// splitDirective separates the directive name; a bare linemarker has no name.
func splitDirective(body string) (name, payload string) {
	if body == "" || isDec(body[0]) {
		return "", body
	}
	i := 0
	for i < len(body) && isIdentContinueByte(body[i]) {
		i++
	}
	return body[:i], strings.TrimSpace(body[i:])
}

// lineMarker parses `N ["file" [flags...]]`.
func (lx *Lexer) lineMarker(sp source.Span, payload string, gnu bool) {
	digits := payload
	rest := ""
	if i := strings.IndexAny(payload, " \t"); i >= 0 {
		digits, rest = payload[:i], strings.TrimSpace(payload[i:])
	}
	line, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		lx.errLex(diag.LexBadLineMarker, sp, "line directive requires a positive integer argument")
		return
	}
	filename := ""
	if rest != "" {
		name, ok := unquoteFilename(rest)
		if !ok {
			lx.errLex(diag.LexBadLineMarker, sp, "invalid filename for line marker directive")
			return
		}
		filename = name
	}
	if !gnu && line == 0 {
		lx.warnLex(diag.LexBadLineMarker, sp, "#line directive with zero argument is a GNU extension")
	}
	if !lx.opts.KeepLineMarkers {
		return
	}
	next := sp.End
	if lx.cursor.Peek() == '\n' {
		next++
	}
	lx.file.AddLineMarker(source.LineMarker{Offset: next, Line: uint32(line), Filename: filename})
}

// unquoteFilename reads the leading "..." and ignores trailing flags.
func unquoteFilename(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' {
		return "", false
	}
	var sb strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) {
				i++
				sb.WriteByte(s[i])
			}
		case '"':
			return sb.String(), true
		default:
			sb.WriteByte(s[i])
		}
	}
	return "", false
}
