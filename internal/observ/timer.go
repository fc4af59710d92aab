package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed step of a unit: lex, parse, sema, project.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer records phases in the order they begin. Not safe for concurrent
// use: every unit gets its own Timer and reports are merged afterwards.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes the phase at idx; out-of-range indexes are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// PhaseReport: фаза в виде, пригодном для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report: итог по всем фазам.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report returns phases and their total in milliseconds.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Merge sums phases of other into r by name, keeping first-seen order.
// Notes are dropped: they describe a single unit.
func (r Report) Merge(other Report) Report {
	out := Report{TotalMS: r.TotalMS + other.TotalMS}
	index := make(map[string]int, len(r.Phases))
	for _, p := range r.Phases {
		index[p.Name] = len(out.Phases)
		out.Phases = append(out.Phases, PhaseReport{Name: p.Name, DurationMS: p.DurationMS})
	}
	for _, p := range other.Phases {
		if i, ok := index[p.Name]; ok {
			out.Phases[i].DurationMS += p.DurationMS
			continue
		}
		index[p.Name] = len(out.Phases)
		out.Phases = append(out.Phases, PhaseReport{Name: p.Name, DurationMS: p.DurationMS})
	}
	return out
}

// Summary renders the report as an aligned table.
func (r Report) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
