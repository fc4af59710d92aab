package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sanity-io/litter"
	"gopkg.in/yaml.v3"

	"cbridge/cnode"
)

// ViewFormat выбирает сериализацию снимка дерева.
type ViewFormat uint8

const (
	ViewJSON ViewFormat = iota
	ViewYAML
	// ViewRaw печатает структуру как Go-литерал через litter.
	ViewRaw
)

// ParseViewFormat разбирает значение флага --format (кроме "text").
func ParseViewFormat(s string) (ViewFormat, error) {
	switch s {
	case "json":
		return ViewJSON, nil
	case "yaml", "yml":
		return ViewYAML, nil
	case "raw":
		return ViewRaw, nil
	}
	return 0, fmt.Errorf("unknown view format %q", s)
}

// WriteViews сериализует снимки; одиночный снимок пишется без обёртки-массива.
func WriteViews(w io.Writer, views []cnode.View, format ViewFormat) error {
	var v any = views
	if len(views) == 1 {
		v = views[0]
	}
	switch format {
	case ViewYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case ViewRaw:
		sq := litter.Options{
			StripPackageNames: true,
			HideZeroValues:    true,
			Separator:         " ",
		}
		_, err := io.WriteString(w, sq.Sdump(v)+"\n")
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// ColorFormatter раскрашивает заголовки другого Formatter в палитре clang:
// декларации зелёным, операторы фиолетовым, адреса жёлтым.
type ColorFormatter struct {
	inner            cnode.Formatter
	decl, stmt, addr *color.Color
}

func NewColorFormatter(inner cnode.Formatter, enabled bool) *ColorFormatter {
	if inner == nil {
		inner = cnode.NewTextFormatter()
	}
	f := &ColorFormatter{
		inner: inner,
		decl:  color.New(color.FgGreen, color.Bold),
		stmt:  color.New(color.FgMagenta, color.Bold),
		addr:  color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{f.decl, f.stmt, f.addr} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

func (f *ColorFormatter) FormatNode(n cnode.Node) string {
	line := f.inner.FormatNode(n)
	name, rest, ok := strings.Cut(line, " ")
	c := f.stmt
	if n.Family() == cnode.FamilyDecl {
		c = f.decl
	}
	if !ok {
		return c.Sprint(name)
	}
	if addr, tail, found := strings.Cut(rest, " "); found && strings.HasPrefix(addr, "0x") {
		return c.Sprint(name) + " " + f.addr.Sprint(addr) + " " + tail
	}
	return c.Sprint(name) + " " + rest
}

// PrettyDiagnostics печатает диагностики публичного API в том же виде, что и Pretty,
// но по уже разрешённым позициям: исходная строка берётся из Snippet.
func PrettyDiagnostics(w io.Writer, diags []cnode.Diagnostic, useColor bool) {
	p := newPalette(useColor)
	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}
		sev := p.info
		switch d.Severity {
		case cnode.SeverityError:
			sev = p.err
		case cnode.SeverityWarning:
			sev = p.warn
		}
		pos := "<command line>"
		if d.HasLocation {
			pos = d.Location.String()
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n", p.path.Sprint(pos), sev.Sprint(strings.ToUpper(d.Severity.String())), sev.Sprint(d.Code), d.Message)
		if d.HasLocation && d.Snippet != "" {
			pad, mark := underline(d.Snippet, d.Location.Column, d.Location.Column+d.Width)
			fmt.Fprintf(w, "%s %s\n", p.gutter.Sprint(" |"), d.Snippet)
			fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprint(" |"), pad, p.caret.Sprint(mark))
		}
		for _, n := range d.Notes {
			pos := "<command line>"
			if n.HasLocation {
				pos = n.Location.String()
			}
			fmt.Fprintf(w, "%s: %s %s\n", p.path.Sprint(pos), p.note.Sprint("note:"), n.Message)
		}
	}
}
