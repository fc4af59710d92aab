package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetIDsStartAtOne(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.c", []byte("int a;"), 0)
	if id1 != 1 {
		t.Fatalf("expected first FileID to be 1, got %d", id1)
	}
	id2 := fs.Add("test.c", []byte("int b;"), 0)
	if id2 != 2 {
		t.Fatalf("expected second FileID to be 2, got %d", id2)
	}

	latest, ok := fs.GetLatest("test.c")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d", latest, ok, id2)
	}
	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "int a;" {
		t.Fatalf("first content = %q", got)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.c", []byte("\xEF\xBB\xBFa\r\nb\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileVirtual == 0 || f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	want := []uint32{1, 3}
	if len(f.LineIdx) != len(want) || f.LineIdx[0] != want[0] || f.LineIdx[1] != want[1] {
		t.Fatalf("LineIdx = %v, want %v", f.LineIdx, want)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.c", []byte("ab\ncd\n\nx"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // '\n' belongs to line 1
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.c", []byte("first\nsecond\nthird")))

	for n, want := range map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""} {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestPresumedFollowsLineMarkers(t *testing.T) {
	src := "int a;\n# 10 \"hdr.h\"\nint b;\nint c;\n#line 3\nint d;\n"
	fs := NewFileSet()
	id := fs.AddVirtual("main.c", []byte(src))
	f := fs.Get(id)

	offAfter := func(line uint32) uint32 { return f.LineIdx[line-1] + 1 }
	f.AddLineMarker(LineMarker{Offset: offAfter(2), Line: 10, Filename: "hdr.h"})
	f.AddLineMarker(LineMarker{Offset: offAfter(5), Line: 3})

	tests := []struct {
		off  uint32
		want PresumedLoc
	}{
		{0, PresumedLoc{"main.c", 1, 1}},
		{offAfter(2), PresumedLoc{"hdr.h", 10, 1}},
		{offAfter(3) + 4, PresumedLoc{"hdr.h", 11, 5}},
		{offAfter(5), PresumedLoc{"hdr.h", 3, 1}},
	}
	for _, tt := range tests {
		got, ok := fs.Presumed(id, tt.off)
		if !ok {
			t.Fatalf("Presumed(%d) not ok", tt.off)
		}
		if got != tt.want {
			t.Errorf("Presumed(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}

	if _, ok := fs.Presumed(NoFileID, 0); ok {
		t.Fatalf("Presumed on NoFileID must fail")
	}
}

func TestLoadReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.c")
	if err := os.WriteFile(path, []byte("int x;\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "int x;\n" || f.Flags&FileVirtual != 0 {
		t.Fatalf("unexpected file %+v", f)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.c")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFormatPathModes(t *testing.T) {
	f := &File{Path: "/very/long/path/that/goes/on/and/on/forever/file.c"}
	if got := f.FormatPath("basename", ""); got != "file.c" {
		t.Fatalf("basename = %q", got)
	}
	if got := f.FormatPath("auto", ""); got != "file.c" {
		t.Fatalf("auto = %q", got)
	}
	short := &File{Path: "a/b.c"}
	if got := short.FormatPath("auto", ""); got != "a/b.c" {
		t.Fatalf("auto short = %q", got)
	}
}
