package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		kind  Kind
		want  bool
	}{
		{LevelOff, ScopeDriver, KindSpanBegin, false},
		{LevelPhase, ScopePass, KindSpanBegin, true},
		{LevelPhase, ScopePass, KindPoint, false},
		{LevelPhase, ScopeNode, KindSpanBegin, false},
		{LevelDetail, ScopeUnit, KindPoint, true},
		{LevelDebug, ScopeNode, KindPoint, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope, tc.kind); got != tc.want {
			t.Errorf("%s.ShouldEmit(%s, %s) = %v, want %v", tc.level, tc.scope, tc.kind, got, tc.want)
		}
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("PHASE"); err != nil || l != LevelPhase {
		t.Fatalf("ParseLevel(PHASE) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}

func TestStartSpanNestsThroughContext(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	unit, ctx := StartSpan(ctx, ScopeUnit, "unit:a.c")
	pass, _ := StartSpan(ctx, ScopePass, "parse")
	pass.End("")
	unit.WithExtra("decls", "3").End("ok")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].Name != "parse" || events[1].ParentID != events[0].SpanID {
		t.Fatalf("parse span not nested under unit: %+v", events[1])
	}
	if events[3].Kind != KindSpanEnd || events[3].Extra["decls"] != "3" {
		t.Fatalf("unexpected end event: %+v", events[3])
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeDriver, name, "", 0)
	}
	got := ring.Snapshot()
	if len(got) != 2 || got[0].Name != "b" || got[1].Name != "c" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestStreamFormats(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	Point(st, ScopeUnit, "diagnostics", "2 warnings", 0)
	if !strings.Contains(buf.String(), `"name":"diagnostics"`) || !strings.HasSuffix(buf.String(), "\n") {
		t.Fatalf("unexpected ndjson: %q", buf.String())
	}

	buf.Reset()
	st = NewStreamTracer(&buf, LevelPhase, FormatText)
	Begin(st, ScopePass, "lex", 0).End("")
	out := buf.String()
	if !strings.Contains(out, "→ lex") || !strings.Contains(out, "← lex") {
		t.Fatalf("unexpected text trace: %q", out)
	}
}

func TestNopIsSilent(t *testing.T) {
	sp := Begin(Nop, ScopeDriver, "x", 0)
	if sp.ID() != 0 || sp.End("") != 0 {
		t.Fatalf("nop span should be inert")
	}
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should yield Nop")
	}
}

func TestEndCarriesElapsed(t *testing.T) {
	ring := NewRingTracer(4, LevelDebug)
	d := Begin(ring, ScopePass, "sema", 0).End("")
	events := ring.Snapshot()
	if len(events) != 2 || events[1].Elapsed != d {
		t.Fatalf("end event %+v, span returned %v", events, d)
	}
	if events[0].Elapsed != 0 {
		t.Fatalf("begin event must not carry a duration: %+v", events[0])
	}
}

func TestStartSpanWithoutTracerKeepsContext(t *testing.T) {
	ctx := context.Background()
	sp, got := StartSpan(ctx, ScopeUnit, "unit:x.c")
	if got != ctx || sp.ID() != 0 {
		t.Fatalf("disabled span must not derive a context")
	}
}
