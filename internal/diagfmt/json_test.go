package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cbridge/internal/diag"
	"cbridge/internal/source"
)

func decodeOutput(t *testing.T, buf *bytes.Buffer) DiagnosticsOutput {
	t.Helper()
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	return output
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("int main(void) {\n\tchar *s = \"unterminated\n}")
	fileID := fs.AddVirtual("test.c", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 28, End: 41},
		"Unterminated string literal",
	))

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	output := decodeOutput(t, &buf)
	want := DiagnosticsOutput{
		Diagnostics: []DiagnosticJSON{{
			Severity: "ERROR",
			Code:     "LEX1002",
			Message:  "Unterminated string literal",
			Location: LocationJSON{
				File:      "test.c",
				StartByte: 28,
				EndByte:   41,
				StartLine: 2,
				StartCol:  12,
				EndLine:   2,
				EndCol:    25,
			},
		}},
		Count: 1,
	}
	if diff := cmp.Diff(want, output); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

// TestJSONWithNotesAndFixes проверяет JSON с заметками и исправлениями
func TestJSONWithNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("int x = 42"))

	d := diag.New(diag.SevError, diag.SynExpectSemicolon, source.Span{File: fileID, Start: 10, End: 10}, "expected ';' after top level declarator").
		WithNote(source.Span{File: fileID, Start: 4, End: 5}, "declarator is here").
		WithFix("insert ';'", diag.FixEdit{Span: source.Span{File: fileID, Start: 10, End: 10}, NewText: ";"})
	bag := diag.NewBag(10)
	bag.Add(d)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, IncludeNotes: true, IncludeFixes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	got := decodeOutput(t, &buf).Diagnostics[0]

	wantNotes := []NoteJSON{{
		Message:  "declarator is here",
		Location: LocationJSON{File: "test.c", StartByte: 4, EndByte: 5},
	}}
	if diff := cmp.Diff(wantNotes, got.Notes); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}
	wantFixes := []FixJSON{{
		Title: "insert ';'",
		Edits: []FixEditJSON{{
			Location: LocationJSON{File: "test.c", StartByte: 10, EndByte: 10},
			NewText:  ";",
		}},
	}}
	if diff := cmp.Diff(wantFixes, got.Fixes); diff != "" {
		t.Errorf("fixes mismatch (-want +got):\n%s", diff)
	}
}

// TestJSONWithoutNotes: без флагов заметки и исправления опускаются
func TestJSONWithoutNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("int x = 42"))

	d := diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 3}, "warning").
		WithNote(source.Span{File: fileID, Start: 4, End: 5}, "note").
		WithFix("fix", diag.FixEdit{Span: source.Span{File: fileID, Start: 0, End: 0}, NewText: "x"})
	bag := diag.NewBag(10)
	bag.Add(d)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	got := decodeOutput(t, &buf).Diagnostics[0]
	if got.Notes != nil || got.Fixes != nil {
		t.Fatalf("unexpected notes/fixes: %+v", got)
	}
	if got.Location.StartLine != 0 || got.Location.StartCol != 0 {
		t.Fatalf("positions must be omitted, got %+v", got.Location)
	}
}

// TestJSONMaxLimit проверяет ограничение количества диагностик
func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("int a; int b; int c;"))

	bag := diag.NewBag(10)
	for i := range uint32(5) {
		bag.Add(diag.New(diag.SevWarning, diag.SemaRedefinition, source.Span{File: fileID, Start: i, End: i + 1}, "warning"))
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 3}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	output := decodeOutput(t, &buf)
	if output.Count != 3 || len(output.Diagnostics) != 3 {
		t.Fatalf("Expected 3 diagnostics, got count=%d len=%d", output.Count, len(output.Diagnostics))
	}
	if output.Dropped != 2 {
		t.Fatalf("Expected dropped=2, got %d", output.Dropped)
	}
}

func TestJSONBuiltinLocation(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.DrvUnknownArgument, source.Span{}, "unknown argument: '-fbogus'"))

	output, err := BuildDiagnosticsOutput(bag, source.NewFileSet(), JSONOpts{IncludePositions: true})
	if err != nil {
		t.Fatalf("BuildDiagnosticsOutput: %v", err)
	}
	if got := output.Diagnostics[0].Location; got != (LocationJSON{File: "<builtin>"}) {
		t.Fatalf("location = %+v", got)
	}
}

func TestJSONFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("example.c", []byte("int a = 42 // missing semicolon"))

	insertSpan := source.Span{File: fileID, Start: 10, End: 10}
	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevError, diag.SynExpectSemicolon, insertSpan, "missing semicolon").
		WithFix("insert semicolon", diag.FixEdit{Span: insertSpan, NewText: ";"}))

	var buf bytes.Buffer
	opts := JSONOpts{PathMode: PathModeBasename, IncludeFixes: true, IncludePreviews: true}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	edit := decodeOutput(t, &buf).Diagnostics[0].Fixes[0].Edits[0]
	if diff := cmp.Diff([]string{"int a = 42 // missing semicolon"}, edit.BeforeLines); diff != "" {
		t.Errorf("before lines (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"int a = 42; // missing semicolon"}, edit.AfterLines); diff != "" {
		t.Errorf("after lines (-want +got):\n%s", diff)
	}
}

func TestJSONPresumedLocation(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("pp.i", []byte("# 40 \"orig.c\"\nint x = @;\n"))
	fs.Get(fileID).AddLineMarker(source.LineMarker{Offset: 14, Line: 40, Filename: "orig.c"})

	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: 22, End: 23}, "unknown character '@'"))

	output, err := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})
	if err != nil {
		t.Fatalf("BuildDiagnosticsOutput: %v", err)
	}
	loc := output.Diagnostics[0].Location
	if loc.StartLine != 2 || loc.StartCol != 9 || loc.Presumed != "orig.c:40:9" {
		t.Fatalf("location = %+v", loc)
	}
}
