package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cbridge/internal/diag"
	"cbridge/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	note, fix       *color.Color
	path, gutter    *color.Color
	caret           *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgMagenta, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		fix:    color.New(color.FgGreen),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	// color.NoColor глобален, поэтому решение принимаем для каждого цвета отдельно
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.fix, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts, p)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "\n%d more diagnostic(s) not shown\n", n)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sev := p.severity(d.Severity)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprint(location(fs, d.Primary, opts.PathMode)),
		sev.Sprint(d.Severity.String()), sev.Sprint(d.Code.ID()), d.Message)
	snippet(w, fs, d.Primary, opts, p)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "%s: %s %s\n", p.path.Sprint(location(fs, n.Span, opts.PathMode)), p.note.Sprint("note:"), n.Msg)
			snippet(w, fs, n.Span, opts, p)
		}
	}
	if !opts.ShowFixes {
		return
	}
	for _, fx := range d.Fixes {
		fmt.Fprintf(w, "  %s %s\n", p.fix.Sprint("fix:"), fx.Title)
		if !opts.ShowPreview {
			continue
		}
		for _, e := range fx.Edits {
			pv, err := buildFixEditPreview(fs, e)
			if err != nil {
				continue
			}
			for _, l := range pv.before {
				fmt.Fprintf(w, "    %s %s\n", p.err.Sprint("-"), l)
			}
			for _, l := range pv.after {
				fmt.Fprintf(w, "    %s %s\n", p.fix.Sprint("+"), l)
			}
		}
	}
}

// location печатает path:line:col. При наличии #line-маркеров берётся
// presumed-позиция, как это делает компилятор.
func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	if fs == nil || !sp.IsValid() {
		return "<builtin>"
	}
	f := fs.Get(sp.File)
	if len(f.Markers) > 0 {
		loc := f.Presumed(sp.Start)
		return fmt.Sprintf("%s:%d:%d", loc.Filename, loc.Line, loc.Col)
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs, f, mode), start.Line, start.Col)
}

func formatPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	return f.FormatPath(mode.String(), fs.BaseDir())
}

// snippet печатает строку Span с опциональным контекстом и подчёркиванием.
// Отрицательный Context отключает вывод исходника.
func snippet(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, p palette) {
	if fs == nil || !sp.IsValid() || opts.Context < 0 {
		return
	}
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	lines, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		return
	}
	ctx := uint32(opts.Context) // #nosec G115 -- checked non-negative above
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, lines)
	width := len(strconv.FormatUint(uint64(last), 10))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		if ln != start.Line && ln == lines && text == "" {
			break
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), clip(text, opts.Width))
		if ln != start.Line {
			continue
		}
		endCol := end.Col
		if end.Line != start.Line {
			endCol = uint32(len(text)) + 1 // #nosec G115 -- line length bounded by file size
		}
		pad, mark := underline(text, start.Col, endCol)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), pad, p.caret.Sprint(mark))
	}
}

// underline строит отступ и метку ^~~ для байтовых колонок [startCol, endCol).
// Ширина считается по go-runewidth, табы сохраняются, чтобы терминал выровнял их так же.
func underline(line string, startCol, endCol uint32) (pad, mark string) {
	from := min(int(startCol)-1, len(line))
	from = max(from, 0)
	to := max(min(int(endCol)-1, len(line)), from)

	var sb strings.Builder
	for _, r := range line[:from] {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	n := runewidth.StringWidth(strings.ReplaceAll(line[from:to], "\t", " "))
	n = max(n, 1)
	return sb.String(), "^" + strings.Repeat("~", n-1)
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
