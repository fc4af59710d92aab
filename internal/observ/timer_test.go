package observ

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTimerRecordsPhasesInOrder(t *testing.T) {
	tm := NewTimer()
	lex := tm.Begin("lex")
	tm.End(lex, "42 tokens")
	parse := tm.Begin("parse")
	tm.End(parse, "")
	tm.End(99, "ignored")

	r := tm.Report()
	var names []string
	for _, p := range r.Phases {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"lex", "parse"}, names); diff != "" {
		t.Fatalf("phase order mismatch (-want +got):\n%s", diff)
	}
	if r.Phases[0].Note != "42 tokens" {
		t.Fatalf("note lost: %+v", r.Phases[0])
	}
	if !strings.Contains(r.Summary(), "total") {
		t.Fatalf("summary lacks total line:\n%s", r.Summary())
	}
}

func TestReportMergeSumsByName(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "lex", DurationMS: 1}, {Name: "parse", DurationMS: 2}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "parse", DurationMS: 4, Note: "x"}, {Name: "sema", DurationMS: 1}}}

	want := Report{TotalMS: 8, Phases: []PhaseReport{
		{Name: "lex", DurationMS: 1},
		{Name: "parse", DurationMS: 6},
		{Name: "sema", DurationMS: 1},
	}}
	if diff := cmp.Diff(want, a.Merge(b)); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
	if got := (Report{}).Merge(b); got.TotalMS != 5 || len(got.Phases) != 2 {
		t.Fatalf("merge into empty report: %+v", got)
	}
}

func TestNilTimerReport(t *testing.T) {
	var tm *Timer
	if r := tm.Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("nil timer should report nothing, got %+v", r)
	}
}
