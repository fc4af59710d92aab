package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"cbridge/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.c", "b.c"}, events).(*checkModel)

	m.apply(driver.Event{File: "a.c", Stage: driver.StageParse, Status: driver.StatusWorking})
	if got := m.units[0].state; got != stateParse {
		t.Fatalf("state = %s, want parsing", got)
	}
	m.apply(driver.Event{File: "a.c", Stage: driver.StageSema, Status: driver.StatusDone, Elapsed: 3 * time.Millisecond})
	m.apply(driver.Event{File: "b.c", Stage: driver.StageParse, Status: driver.StatusError})
	m.apply(driver.Event{File: "unknown.c", Stage: driver.StageLex, Status: driver.StatusWorking})

	if m.units[0].state != stateDone || m.units[1].state != stateFailed {
		t.Fatalf("units = %+v", m.units)
	}
	if done, failed := m.counts(); done != 2 || failed != 1 {
		t.Fatalf("counts = %d done, %d failed", done, failed)
	}
	view := m.View()
	for _, want := range []string{"a.c", "3.0 ms", "check 2/2, 1 failed"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view misses %q:\n%s", want, view)
		}
	}
}

func TestStateOf(t *testing.T) {
	tests := []struct {
		ev   driver.Event
		want unitState
	}{
		{driver.Event{Stage: driver.StageLex, Status: driver.StatusQueued}, stateQueued},
		{driver.Event{Stage: driver.StageLex, Status: driver.StatusWorking}, stateLex},
		{driver.Event{Stage: driver.StageSema, Status: driver.StatusWorking}, stateSema},
		{driver.Event{Stage: driver.StageParse, Status: driver.StatusDone}, stateDone},
		{driver.Event{Stage: driver.StageLex, Status: driver.StatusError}, stateFailed},
	}
	for _, tt := range tests {
		if got := stateOf(tt.ev); got != tt.want {
			t.Errorf("stateOf(%+v) = %s, want %s", tt.ev, got, tt.want)
		}
	}
}

func TestProgressModelQuitsWhenChannelCloses(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("check", []string{"a.c"}, events).(*checkModel)
	msg := m.next()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("msg = %T, want doneMsg", msg)
	}
	if _, cmd := m.Update(msg); cmd == nil || !m.finished {
		t.Fatalf("model did not finish: finished=%v", m.finished)
	}
	if !strings.HasPrefix(strings.TrimSpace(m.View()), "done: check") {
		t.Fatalf("view = %q", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short.c", 20); got != "short.c" {
		t.Errorf("short value changed: %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Errorf("narrow truncate = %q", got)
	}
	for _, in := range []string{"very/long/path/to/file.c", "日本語のファイル名.c"} {
		got := truncate(in, 10)
		if runewidth.StringWidth(got) > 10 || !strings.HasSuffix(got, "...") {
			t.Errorf("truncate(%q, 10) = %q", in, got)
		}
	}
}
