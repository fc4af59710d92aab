package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cbridge/internal/diag"
	"cbridge/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("char *s = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.c", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 10, End: 30},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.c:1:11"},
		{"Relative path", PathModeRelative, "src/test.c:1:11"},
		{"Basename only", PathModeBasename, "test.c:1:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1002: Unterminated string literal") {
				t.Errorf("Expected header in output, got:\n%s", output)
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "test.c", "test.c:1:9"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/file.c", "file.c:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("int x = 42;\n"))
			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 8, End: 10}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			if !strings.HasPrefix(buf.String(), tt.expected) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.expected, buf.String())
			}
		})
	}
}

// TestPrettyCaret сверяет весь вывод: заголовок, строку исходника и подчёркивание.
func TestPrettyCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("int x = @;\nint y = 2;\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: 8, End: 9}, "unknown character '@'"))
	bag.Add(diag.New(diag.SevWarning, diag.SynUnexpectedToken, source.Span{File: fileID, Start: 15, End: 20}, "suspicious declaration"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	want := strings.Join([]string{
		"test.c:1:9: ERROR LEX1001: unknown character '@'",
		"1 | int x = @;",
		"  |         ^",
		"",
		"test.c:2:5: WARNING SYN2001: suspicious declaration",
		"2 | int y = 2;",
		"  |     ^~~~~",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("pretty output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("ctx.c", []byte("int a;\nint b\nint c;\n"))

	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.SynExpectSemicolon, source.Span{File: fileID, Start: 12, End: 12}, "expected ';'"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"ctx.c:2:6: ERROR SYN2002: expected ';'",
		"1 | int a;",
		"2 | int b",
		"  |      ^",
		"3 | int c;",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("context mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyNoSnippetForBuiltin(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.DrvNoInput, source.Span{}, "no input files"))

	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{})
	if got := buf.String(); got != "<builtin>: ERROR DRV4001: no input files\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("int main(void) { return 0 }\n"))

	primary := source.Span{File: fileID, Start: 24, End: 25}
	d := diag.New(diag.SevError, diag.SynExpectSemicolon, primary, "expected ';' after return statement").
		WithNote(source.Span{File: fileID, Start: 17, End: 23}, "statement starts here").
		WithFix("insert ';'", diag.FixEdit{Span: source.Span{File: fileID, Start: 25, End: 25}, NewText: ";"})

	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		Context:     -1,
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"test.c:1:25: ERROR SYN2002: expected ';' after return statement\n",
		"test.c:1:18: note: statement starts here\n",
		"  fix: insert ';'\n",
		"    - int main(void) { return 0 }\n",
		"    + int main(void) { return 0; }\n",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, " | ") {
		t.Fatalf("negative context must suppress snippets, got:\n%s", output)
	}
}

func TestPrettyLineMarkers(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("pp.i", []byte("# 40 \"orig.c\"\nint x = @;\n"))
	fs.Get(fileID).AddLineMarker(source.LineMarker{Offset: 14, Line: 40, Filename: "orig.c"})

	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: 22, End: 23}, "unknown character '@'"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: -1})
	if !strings.HasPrefix(buf.String(), "orig.c:40:9: ERROR") {
		t.Fatalf("expected presumed location, got:\n%s", buf.String())
	}
}

func TestUnderlineWideRunes(t *testing.T) {
	pad, mark := underline("s = \"日本\";", 5, 13)
	if pad != "    " {
		t.Fatalf("pad = %q", pad)
	}
	// кавычки по одной колонке, иероглифы по две
	if mark != "^~~~~~" {
		t.Fatalf("mark = %q", mark)
	}
	pad, _ = underline("\tx = 1;", 2, 3)
	if pad != "\t" {
		t.Fatalf("tab must be preserved, pad = %q", pad)
	}
}
