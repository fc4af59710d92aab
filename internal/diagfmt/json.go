package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cbridge/internal/diag"
	"cbridge/internal/source"
)

// LocationJSON: байтовый диапазон и, по запросу, строки и колонки.
// Presumed заполняется, когда #line перенаправляет позицию в другой файл или строку.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
	Presumed  string `json:"presumed,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the document JSON writes. Dropped counts both the
// diagnostics the Bag refused and those cut by JSONOpts.Max.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(span source.Span) LocationJSON {
	if b.fs == nil || !span.IsValid() {
		return LocationJSON{File: "<builtin>"}
	}
	f := b.fs.Get(span.File)
	loc := LocationJSON{
		File:      formatPath(b.fs, f, b.opts.PathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if !b.opts.IncludePositions {
		return loc
	}
	start, end := b.fs.Resolve(span)
	loc.StartLine, loc.StartCol = start.Line, start.Col
	loc.EndLine, loc.EndCol = end.Line, end.Col
	if len(f.Markers) > 0 {
		if p := f.Presumed(span.Start); p.Filename != f.Path || p.Line != start.Line {
			loc.Presumed = fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
		}
	}
	return loc
}

func (b jsonBuilder) fix(fx diag.Fix) FixJSON {
	out := FixJSON{Title: fx.Title}
	for _, e := range fx.Edits {
		ej := FixEditJSON{Location: b.location(e.Span), NewText: e.NewText}
		if b.opts.IncludePreviews {
			if pv, err := buildFixEditPreview(b.fs, e); err == nil {
				ej.BeforeLines, ej.AfterLines = pv.before, pv.after
			}
		}
		out.Edits = append(out.Edits, ej)
	}
	return out
}

func (b jsonBuilder) diagnostic(d diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: b.location(d.Primary),
	}
	// заметки с таймингами показываются всегда, иначе диагностика пуста
	if b.opts.IncludeNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: b.location(n.Span)})
		}
	}
	if b.opts.IncludeFixes {
		for _, fx := range d.Fixes {
			out.Fixes = append(out.Fixes, b.fix(fx))
		}
	}
	return out
}

// BuildDiagnosticsOutput converts bag without serializing it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) (DiagnosticsOutput, error) {
	items := bag.Items()
	shown := items
	if opts.Max > 0 && opts.Max < len(items) {
		shown = items[:opts.Max]
	}
	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(shown)),
		Count:       len(shown),
		Dropped:     bag.Dropped() + len(items) - len(shown),
	}
	for _, d := range shown {
		out.Diagnostics = append(out.Diagnostics, b.diagnostic(d))
	}
	return out, nil
}

// JSON writes bag as one indented DiagnosticsOutput document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(bag, fs, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
