package source

import (
	"path/filepath"
	"slices"
	"strings"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false
	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

// buildLineIndex records the offset of every '\n'.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- file size checked by Add callers
		}
	}
	return out
}

// toLineCol maps an offset to a 1-based line and column.
// A newline byte belongs to the line it terminates.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число переводов строк строго до off = номер строки (0-based)
	line, _ := slices.BinarySearch(lineIdx, off)
	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1} // #nosec G115
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// relativePath falls back to the absolute path when target lies outside baseDir.
func relativePath(target, baseDir string) string {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return normalizePath(target)
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return normalizePath(target)
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absTarget)
	}
	return normalizePath(rel)
}
