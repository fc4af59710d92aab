package source

type (
	// FileID uniquely identifies a source file within a FileSet. IDs start at 1.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

// NoFileID marks spans that do not point into any file (synthesized nodes).
const NoFileID FileID = 0

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
	// Markers are #line / linemarker directives sorted by offset.
	Markers []LineMarker
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// LineMarker remaps physical lines starting after Offset.
// The physical line following the directive gets presumed line Line.
type LineMarker struct {
	Offset   uint32 // offset of the first byte after the directive line
	Line     uint32
	Filename string // empty keeps the previous presumed filename
}

// PresumedLoc is a position after applying line markers.
type PresumedLoc struct {
	Filename string
	Line     uint32
	Col      uint32
}
