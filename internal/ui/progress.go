package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cbridge/internal/driver"
)

// unitState is where one translation unit is in the pipeline.
type unitState uint8

const (
	stateQueued unitState = iota
	stateLex
	stateParse
	stateSema
	stateDone
	stateFailed
)

var stateLabels = [...]string{
	stateQueued: "queued",
	stateLex:    "lexing",
	stateParse:  "parsing",
	stateSema:   "checking",
	stateDone:   "done",
	stateFailed: "error",
}

// доля работы, выполненной к началу стадии
var stateWeights = [...]float64{
	stateQueued: 0,
	stateLex:    0.1,
	stateParse:  0.4,
	stateSema:   0.8,
	stateDone:   1,
	stateFailed: 1,
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

func (s unitState) String() string { return stateLabels[s] }

func (s unitState) finished() bool { return s == stateDone || s == stateFailed }

func (s unitState) style() lipgloss.Style {
	switch s {
	case stateDone:
		return doneStyle
	case stateFailed:
		return failedStyle
	case stateQueued:
		return pendingStyle
	}
	return activeStyle
}

func stateOf(ev driver.Event) unitState {
	switch ev.Status {
	case driver.StatusDone:
		return stateDone
	case driver.StatusError:
		return stateFailed
	case driver.StatusWorking:
		switch ev.Stage {
		case driver.StageParse:
			return stateParse
		case driver.StageSema:
			return stateSema
		}
		return stateLex
	}
	return stateQueued
}

type unitRow struct {
	path    string
	state   unitState
	elapsed time.Duration
}

type checkModel struct {
	title    string
	events   <-chan driver.Event
	spin     spinner.Model
	bar      progress.Model
	units    []unitRow
	byPath   map[string]int
	width    int
	finished bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel renders per-unit progress of a driver.ParseAll batch
// fed through driver.ChannelSink. Closing the channel ends the program.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = activeStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &checkModel{
		title:  title,
		events: events,
		spin:   spin,
		bar:    bar,
		units:  make([]unitRow, len(files)),
		byPath: make(map[string]int, len(files)),
		width:  80,
	}
	for i, f := range files {
		m.units[i] = unitRow{path: f}
		m.byPath[f] = i
	}
	return m
}

func (m *checkModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

func (m *checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next waits for one event from the batch.
func (m *checkModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *checkModel) apply(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	u := &m.units[i]
	u.state = stateOf(ev)
	if u.state.finished() {
		u.elapsed = ev.Elapsed
	}

	total := 0.0
	for _, u := range m.units {
		total += stateWeights[u.state]
	}
	return m.bar.SetPercent(total / float64(len(m.units)))
}

func (m *checkModel) counts() (done, failed int) {
	for _, u := range m.units {
		switch u.state {
		case stateDone:
			done++
		case stateFailed:
			done++
			failed++
		}
	}
	return done, failed
}

func (m *checkModel) View() string {
	if len(m.units) == 0 {
		return ""
	}
	done, failed := m.counts()
	header := fmt.Sprintf("%s %d/%d", m.title, done, len(m.units))
	if failed > 0 {
		header += fmt.Sprintf(", %d failed", failed)
	}
	if m.finished {
		header = "done: " + header
	} else {
		header = m.spin.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-28, 20)
	for _, u := range m.units {
		fmt.Fprintf(&b, "  %s %s", u.state.style().Render(fmt.Sprintf("%10s", u.state)), truncate(u.path, nameWidth))
		if u.elapsed > 0 {
			b.WriteString(faintStyle.Render(fmt.Sprintf(" %.1f ms", float64(u.elapsed)/float64(time.Millisecond))))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.finished {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate clips value to width terminal cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
