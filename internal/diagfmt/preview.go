package diagfmt

import (
	"bytes"
	"fmt"
	"strings"

	"cbridge/internal/diag"
	"cbridge/internal/source"
)

// fixEditPreview holds the whole lines touched by an edit, before and after.
type fixEditPreview struct {
	before []string
	after  []string
}

func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	if fs == nil || !edit.Span.IsValid() {
		return fixEditPreview{}, fmt.Errorf("edit %s has no source", edit.Span)
	}
	content := fs.Get(edit.Span.File).Content
	start, end := int(edit.Span.Start), int(edit.Span.End)
	if start > end || end > len(content) {
		return fixEditPreview{}, fmt.Errorf("edit %s is out of range", edit.Span)
	}

	// расширяем до целых строк
	lo := bytes.LastIndexByte(content[:start], '\n') + 1
	hi := len(content)
	if i := bytes.IndexByte(content[end:], '\n'); i >= 0 {
		hi = end + i
	}

	var after strings.Builder
	after.Write(content[lo:start])
	after.WriteString(edit.NewText)
	after.Write(content[end:hi])

	return fixEditPreview{
		before: previewLines(string(content[lo:hi])),
		after:  previewLines(after.String()),
	}, nil
}

func previewLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
