package cnode

import (
	"strconv"

	"cbridge/internal/source"
)

// SourceLocation is a presumed position: #line directives and linemarkers
// already applied, so Filename and Line are what the preprocessor claims.
type SourceLocation struct {
	Filename string
	Line     uint32 // 1-based
	Column   uint32 // 1-based, in bytes
}

func (l SourceLocation) String() string {
	return l.Filename + ":" + strconv.FormatUint(uint64(l.Line), 10) + ":" + strconv.FormatUint(uint64(l.Column), 10)
}

// SourceRange spans the first and the last byte of a node.
type SourceRange struct {
	Begin SourceLocation
	End   SourceLocation
}

func presumed(fs *source.FileSet, sp source.Span) (SourceLocation, bool) {
	if fs == nil || !sp.IsValid() {
		return SourceLocation{}, false
	}
	loc, ok := fs.Presumed(sp.File, sp.Start)
	if !ok {
		return SourceLocation{}, false
	}
	return SourceLocation{Filename: loc.Filename, Line: loc.Line, Column: loc.Col}, true
}

func presumedRange(fs *source.FileSet, sp source.Span) (SourceRange, bool) {
	begin, ok := presumed(fs, sp)
	if !ok {
		return SourceRange{}, false
	}
	last := sp
	if sp.End > sp.Start {
		last.Start = sp.End - 1
	}
	end, _ := presumed(fs, last)
	return SourceRange{Begin: begin, End: end}, true
}
