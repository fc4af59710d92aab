package diag

import (
	"strings"
	"testing"

	"cbridge/internal/source"
)

func TestBagLimitKeepsErrorFlag(t *testing.T) {
	b := NewBag(1)
	if !b.Add(New(SevWarning, SemaImplicitFunctionDecl, source.Span{File: 1}, "w")) {
		t.Fatalf("first add must succeed")
	}
	if b.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 3}, "e")) {
		t.Fatalf("second add must hit the limit")
	}
	if b.Len() != 1 || b.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d", b.Len(), b.Dropped())
	}
	if !b.HasErrors() {
		t.Fatalf("dropped error still counts")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 9, End: 10}, "late"))
	b.Add(New(SevWarning, LexMultiChar, source.Span{File: 1, Start: 2, End: 4}, "warn"))
	b.Add(NewError(SemaRedefinition, source.Span{File: 1, Start: 2, End: 4}, "err"))
	b.Add(NewError(SemaRedefinition, source.Span{File: 1, Start: 2, End: 4}, "err again"))

	b.Sort()
	b.Dedup()
	got := make([]string, 0, b.Len())
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	want := "err,warn,late"
	if strings.Join(got, ",") != want {
		t.Fatalf("order = %v, want %s", got, want)
	}
	if b.CountBySeverity(SevError) != 2 || !b.HasWarnings() {
		t.Fatalf("unexpected counts")
	}
}

func TestPromoteReporter(t *testing.T) {
	bag := NewBag(0)
	werror := PromoteReporter{Next: BagReporter{Bag: bag}, WarningsAsErrors: true}
	ReportWarning(werror, SemaImplicitFunctionDecl, source.Span{File: 1}, "implicit").Emit()
	if !bag.HasErrors() {
		t.Fatalf("-Werror must promote warnings")
	}

	quiet := NewBag(0)
	w := PromoteReporter{Next: BagReporter{Bag: quiet}, SuppressWarnings: true}
	ReportWarning(w, SemaImplicitFunctionDecl, source.Span{File: 1}, "implicit").Emit()
	ReportError(w, SemaRedefinition, source.Span{File: 1}, "redef").Emit()
	if quiet.Len() != 1 || quiet.Items()[0].Severity != SevError {
		t.Fatalf("-w must drop warnings only, got %+v", quiet.Items())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(NewDedupReporter(BagReporter{Bag: bag}), SemaRedefinition, source.Span{File: 1, Start: 1, End: 2}, "redefinition of 'x'").
		WithNote(source.Span{File: 1}, "previous definition is here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("unexpected bag %+v", bag.Items())
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("int x\nint y;\n"))
	d := NewError(SynExpectSemicolon, source.Span{File: id, Start: 5, End: 5}, "expected ';' after top level declarator").
		WithNote(source.Span{}, "synthesized")
	got := FormatShort([]Diagnostic{d}, fs, true)
	want := "a.c:1:6: error: expected ';' after top level declarator [SYN2002]\n<builtin>: note: synthesized\n"
	if got != want {
		t.Fatalf("FormatShort =\n%q\nwant\n%q", got, want)
	}
}

func TestCodeIDs(t *testing.T) {
	if LexBadNumber.ID() != "LEX1005" || DrvUnusedArgument.ID() != "DRV4003" || Code(9999).ID() != "E0000" {
		t.Fatalf("unexpected ids")
	}
	if Code(9999).Title() != "Unknown error" {
		t.Fatalf("unknown title")
	}
}
