package diag

import (
	"fmt"
	"strings"

	"cbridge/internal/source"
)

// FormatShort renders one line per diagnostic, clang style:
// `path:line:col: error: message [SYN2001]`. Notes follow on their own lines
// when includeNotes is set. Spans without a file print as `<builtin>`.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := range diags {
		d := &diags[i]
		fmt.Fprintf(&sb, "%s: %s: %s [%s]\n", position(fs, d.Primary), strings.ToLower(d.Severity.String()), d.Message, d.Code.ID())
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(&sb, "%s: note: %s\n", position(fs, n.Span), n.Msg)
		}
	}
	return sb.String()
}

func position(fs *source.FileSet, sp source.Span) string {
	if fs == nil || !sp.IsValid() {
		return "<builtin>"
	}
	loc, ok := fs.Presumed(sp.File, sp.Start)
	if !ok {
		return "<builtin>"
	}
	return fmt.Sprintf("%s:%d:%d", loc.Filename, loc.Line, loc.Col)
}
