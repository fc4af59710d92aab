package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cbridge/internal/diag"
	"cbridge/internal/source"
	"cbridge/internal/trace"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestParseCommandLine(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ok.c", "int x = 2 + 3;\n")
	res, err := ParseCommandLine(context.Background(), []string{path, "-std=c11"}, DefaultOptions())
	if err != nil {
		t.Fatalf("ParseCommandLine: %v", err)
	}
	if res.Failed() {
		t.Fatalf("unexpected failure: %s", diag.FormatShort(res.Bag.Items(), res.FileSet, true))
	}
	first := res.Builder.Decls.FirstChild(res.Builder.TU)
	if got := res.Builder.Name(first); got != "x" {
		t.Fatalf("first decl = %q, want x", got)
	}
	var phases []string
	for _, p := range res.Timing.Phases {
		phases = append(phases, p.Name)
	}
	if diff := cmp.Diff([]string{"lex", "parse", "sema"}, phases); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCommandLineFailures(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		argv []string
		code diag.Code
	}{
		{"missing file", []string{filepath.Join(dir, "absent.c")}, diag.DrvLoadFile},
		{"bad flag", []string{writeFile(t, dir, "a.c", "int a;"), "-std=c3000"}, diag.DrvInvalidValue},
		{"syntax", []string{writeFile(t, dir, "b.c", "int x\nint y;")}, diag.SynExpectSemicolon},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ParseCommandLine(context.Background(), tc.argv, DefaultOptions())
			if err != nil {
				t.Fatalf("unexpected Go error: %v", err)
			}
			if !res.Failed() {
				t.Fatalf("expected failure")
			}
			found := false
			for _, d := range res.Bag.Items() {
				found = found || d.Code == tc.code
			}
			if !found {
				t.Fatalf("missing %s in:\n%s", tc.code.ID(), diag.FormatShort(res.Bag.Items(), res.FileSet, false))
			}
		})
	}
}

func TestWarningPolicies(t *testing.T) {
	src := []byte("int main(void) { int x = 0; x == 1; return 0; }\n")
	base := DefaultOptions()

	res, _ := ParseSource(context.Background(), "w.c", src, base)
	if res.Failed() || res.Bag.CountBySeverity(diag.SevWarning) == 0 {
		t.Fatalf("expected a warning and no error, got:\n%s", diag.FormatShort(res.Bag.Items(), res.FileSet, false))
	}

	quiet := base
	quiet.SuppressWarnings = true
	res, _ = ParseSource(context.Background(), "w.c", src, quiet)
	if res.Bag.Len() != 0 {
		t.Fatalf("-w should drop warnings, got:\n%s", diag.FormatShort(res.Bag.Items(), res.FileSet, false))
	}

	strict := base
	strict.WarningsAsErrors = true
	res, _ = ParseSource(context.Background(), "w.c", src, strict)
	if !res.Failed() {
		t.Fatalf("-Werror should turn warnings into errors")
	}
}

func TestErrorLimit(t *testing.T) {
	src := strings.Repeat("int f(void) { return undeclared; }\n", 10)
	opts := DefaultOptions()
	opts.ErrorLimit = 3
	res, err := ParseSource(context.Background(), "many.c", []byte(src), opts)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	if got := res.Bag.CountBySeverity(diag.SevError); got != 4 {
		t.Fatalf("expected 3 errors plus the limit notice, got %d:\n%s", got, diag.FormatShort(res.Bag.Items(), res.FileSet, false))
	}
	last := res.Bag.Items()[res.Bag.Len()-1]
	if last.Code != diag.DrvTooManyErrors {
		t.Fatalf("last diagnostic = %s, want %s", last.Code.ID(), diag.DrvTooManyErrors.ID())
	}
}

func TestParseHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseSource(ctx, "c.c", []byte("int x;"), DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseEmitsPhaseSpans(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := ParseSource(ctx, "t.c", []byte("int y;"), DefaultOptions()); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	var begins []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			begins = append(begins, ev.Name)
		}
	}
	if diff := cmp.Diff([]string{"unit:t.c", "lex", "parse", "sema"}, begins); diff != "" {
		t.Fatalf("span mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.c", "int b;\n")
	writeFile(t, dir, "a.c", "int a;\n")
	writeFile(t, dir, "sub/bad.c", "int x\nint y;\n")
	writeFile(t, dir, "notes.txt", "ignored\n")

	paths, err := CollectInputs([]string{dir})
	if err != nil {
		t.Fatalf("CollectInputs: %v", err)
	}
	want := []string{filepath.Join(dir, "a.c"), filepath.Join(dir, "b.c"), filepath.Join(dir, "sub", "bad.c")}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}

	var mu sync.Mutex
	final := map[string]Status{}
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		if ev.Status == StatusDone || ev.Status == StatusError {
			final[ev.File] = ev.Status
		}
	})
	results, err := ParseAll(context.Background(), paths, DefaultOptions(), BatchOptions{Jobs: 2, Sink: sink})
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	for i, res := range results {
		if res.File.Path != paths[i] {
			t.Fatalf("result %d is for %s, want %s", i, res.File.Path, paths[i])
		}
	}
	if results[0].Failed() || results[1].Failed() || !results[2].Failed() {
		t.Fatalf("unexpected failure pattern: %v %v %v", results[0].Failed(), results[1].Failed(), results[2].Failed())
	}
	wantStatus := map[string]Status{paths[0]: StatusDone, paths[1]: StatusDone, paths[2]: StatusError}
	if diff := cmp.Diff(wantStatus, final); diff != "" {
		t.Fatalf("final statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendTimingDiagnosticSurvivesFullBag(t *testing.T) {
	res, err := ParseSource(context.Background(), "t.c", []byte("int z;"), DefaultOptions())
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.DrvInfo, source.Span{}, "filler"))
	AppendTimingDiagnostic(bag, res.File.Path, res.Timing)

	if bag.Len() != 2 {
		t.Fatalf("timing diagnostic dropped, bag has %d items", bag.Len())
	}
	d := bag.Items()[1]
	if d.Code != diag.ObsTimings || d.Severity != diag.SevInfo || !strings.Contains(d.Notes[0].Msg, `"phases"`) {
		t.Fatalf("unexpected timing diagnostic: %+v", d)
	}
}

func TestParseSourceCommandLine(t *testing.T) {
	src := []byte("int f(void) { for (int i = 0; i < 3; i++) ; return 0; }\n")
	res, err := ParseSourceCommandLine(context.Background(), "mem.c", src, []string{"-std=c89"}, DefaultOptions())
	if err != nil {
		t.Fatalf("ParseSourceCommandLine: %v", err)
	}
	if !res.Options.Standard.IsC89() {
		t.Fatalf("-std=c89 not applied: %v", res.Options.Standard)
	}
	if res.Bag.CountBySeverity(diag.SevWarning) == 0 {
		t.Fatalf("expected a C89 for-declaration warning, got:\n%s", diag.FormatShort(res.Bag.Items(), res.FileSet, false))
	}

	res, _ = ParseSourceCommandLine(context.Background(), "mem.c", src, []string{"other.c"}, DefaultOptions())
	if !res.Failed() || res.Builder != nil {
		t.Fatalf("a second input must fail before parsing")
	}
}
