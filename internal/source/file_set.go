package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves spans to positions.
type FileSet struct {
	files   []*File           // files[0] is a placeholder for NoFileID
	index   map[string]FileID // path -> latest id
	baseDir string            // базовая директория для относительных путей
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]*File, 1),
		index: make(map[string]FileID),
	}
}

// SetBaseDir sets the directory relative paths are reported against.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the base directory, falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores a file from normalized bytes, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, &File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return NoFileID, err
	}
	return fileSet.AddNormalized(path, content, 0), nil
}

// AddNormalized strips a UTF-8 BOM and CRLF line endings before Add.
func (fileSet *FileSet) AddNormalized(path string, content []byte, flags FileFlags) FileID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags)
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.AddNormalized(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	if id == NoFileID || int(id) >= len(fileSet.files) {
		panic(fmt.Sprintf("source: unknown file id %d", id))
	}
	return fileSet.files[id]
}

// Len returns the number of registered files.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files) - 1
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into physical line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Presumed resolves off inside file id through its line markers.
// ok is false when id does not name a file.
func (fileSet *FileSet) Presumed(id FileID, off uint32) (PresumedLoc, bool) {
	if id == NoFileID || int(id) >= len(fileSet.files) {
		return PresumedLoc{}, false
	}
	return fileSet.files[id].Presumed(off), true
}

// AddLineMarker records a #line style remap. Markers must arrive in offset order.
func (f *File) AddLineMarker(m LineMarker) {
	if n := len(f.Markers); n > 0 && f.Markers[n-1].Offset > m.Offset {
		panic(fmt.Sprintf("source: line marker at %d after %d", m.Offset, f.Markers[n-1].Offset))
	}
	f.Markers = append(f.Markers, m)
}

// Presumed maps a byte offset to the filename/line the directives claim.
func (f *File) Presumed(off uint32) PresumedLoc {
	lc := toLineCol(f.LineIdx, off)
	loc := PresumedLoc{Filename: f.Path, Line: lc.Line, Col: lc.Col}

	i := sort.Search(len(f.Markers), func(i int) bool { return f.Markers[i].Offset > off })
	if i == 0 {
		return loc
	}
	m := f.Markers[i-1]
	base := toLineCol(f.LineIdx, m.Offset).Line
	loc.Line = m.Line + (lc.Line - base)
	// имя файла наследуется от ближайшего маркера, где оно задано
	for j := i - 1; j >= 0; j-- {
		if f.Markers[j].Filename != "" {
			loc.Filename = f.Markers[j].Filename
			break
		}
	}
	return loc
}

// GetLine returns the 1-based physical line without its newline.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start > lenContent {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for diagnostics.
// mode: "absolute", "relative", "basename", "auto"
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return normalizePath(abs)
		}
		return f.Path
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		return relativePath(f.Path, baseDir)
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		// короткие и относительные пути как есть, иначе basename
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return filepath.Base(f.Path)
	default:
		return f.Path
	}
}
