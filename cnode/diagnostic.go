package cnode

import (
	"fmt"

	"cbridge/internal/diag"
	"cbridge/internal/source"
)

// Severity grades a Diagnostic.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "info"
}

// Diagnostic is one front-end message with its resolved position.
type Diagnostic struct {
	Severity    Severity
	Code        string // e.g. "SEM3014"
	Message     string
	Location    SourceLocation
	HasLocation bool
	// Snippet is the physical source line of the location and Width the
	// number of highlighted bytes on it, starting at Location.Column.
	Snippet string
	Width   uint32
	Notes   []DiagnosticNote
}

// DiagnosticNote is a secondary message attached to a Diagnostic.
type DiagnosticNote struct {
	Message     string
	Location    SourceLocation
	HasLocation bool
}

// String renders the clang one-line form: `file:line:col: error: message`.
func (d Diagnostic) String() string {
	pos := "<command line>"
	if d.HasLocation {
		pos = d.Location.String()
	}
	return fmt.Sprintf("%s: %s: %s", pos, d.Severity, d.Message)
}

func convertSeverity(sev diag.Severity) Severity {
	switch sev {
	case diag.SevError:
		return SeverityError
	case diag.SevWarning:
		return SeverityWarning
	}
	return SeverityInfo
}

// convertDiagnostics resolves every item of bag against fs.
func convertDiagnostics(items []diag.Diagnostic, fs *source.FileSet) []Diagnostic {
	if len(items) == 0 {
		return nil
	}
	out := make([]Diagnostic, 0, len(items))
	for i := range items {
		d := &items[i]
		pd := Diagnostic{
			Severity: convertSeverity(d.Severity),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		pd.Location, pd.HasLocation = presumed(fs, d.Primary)
		if pd.HasLocation {
			pd.Snippet, pd.Width = snippet(fs, d.Primary)
		}
		for _, n := range d.Notes {
			note := DiagnosticNote{Message: n.Msg}
			note.Location, note.HasLocation = presumed(fs, n.Span)
			pd.Notes = append(pd.Notes, note)
		}
		out = append(out, pd)
	}
	return out
}

func snippet(fs *source.FileSet, sp source.Span) (string, uint32) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	width := uint32(0)
	if end.Line == start.Line && end.Col > start.Col {
		width = end.Col - start.Col
	} else if n := uint32(len(line)); n >= start.Col { //nolint:gosec // G115: a source line fits in uint32.
		width = n - start.Col + 1
	}
	return line, max(width, 1)
}
