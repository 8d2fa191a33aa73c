// Package ui renders pipeline progress in the terminal with Bubble Tea.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rillint/internal/pipeline"
)

const (
	defaultWidth = 80
	labelWidth   = 9
	minNameWidth = 20
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	findingsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	footerStyle   = lipgloss.NewStyle().Faint(true)

	statusStyles = map[pipeline.Status]lipgloss.Style{
		pipeline.StatusQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		pipeline.StatusWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		pipeline.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		pipeline.StatusCached:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		pipeline.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}

	stageVerbs = map[pipeline.Stage]string{
		pipeline.StageLoad:  "loading",
		pipeline.StageParse: "parsing",
		pipeline.StageLint:  "linting",
		pipeline.StageFix:   "fixing",
	}

	// доля файла, которая считается готовой на входе в стадию
	stageWeights = map[pipeline.Stage]float64{
		pipeline.StageLoad:  0.1,
		pipeline.StageParse: 0.4,
		pipeline.StageLint:  0.8,
	}
)

// fileRow is one line of the file list.
type fileRow struct {
	path     string
	stage    pipeline.Stage
	status   pipeline.Status
	findings int
}

func (r fileRow) finished() bool {
	switch r.status {
	case pipeline.StatusDone, pipeline.StatusCached, pipeline.StatusError:
		return true
	}
	return false
}

// label is the word shown in the status column.
func (r fileRow) label() string {
	if r.status == pipeline.StatusWorking {
		return stageVerbs[r.stage]
	}
	return string(r.status)
}

func (r fileRow) weight() float64 {
	if r.finished() {
		return 1
	}
	return stageWeights[r.stage]
}

type progressModel struct {
	title  string
	events <-chan pipeline.Event
	spin   spinner.Model
	bar    progress.Model
	rows   []fileRow
	byPath map[string]int
	// phase is the stage verb of the latest run-wide event.
	phase string
	width int
	done  bool
}

type (
	eventMsg pipeline.Event
	doneMsg  struct{}
)

// NewProgressModel returns a model that lists files and their stage while
// events arrive, and quits once the channel is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = defaultWidth - 4

	m := &progressModel{
		title:  title,
		events: events,
		spin:   spin,
		bar:    bar,
		rows:   make([]fileRow, len(files)),
		byPath: make(map[string]int, len(files)),
		width:  defaultWidth,
	}
	for i, file := range files {
		m.rows[i] = fileRow{path: file, status: pipeline.StatusQueued}
		m.byPath[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

// next waits for one event from the pipeline.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(pipeline.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// apply records ev and returns the command animating the bar.
func (m *progressModel) apply(ev pipeline.Event) tea.Cmd {
	if ev.File == "" {
		if ev.Status == pipeline.StatusWorking {
			m.phase = stageVerbs[ev.Stage]
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	row.stage, row.status = ev.Stage, ev.Status
	if ev.Status == pipeline.StatusDone || ev.Status == pipeline.StatusCached {
		row.findings = ev.Findings
	}
	return m.bar.SetPercent(m.fraction())
}

func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += r.weight()
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder

	header := m.title
	if m.phase != "" {
		header += " (" + m.phase + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spin.View() + " " + header
	}
	b.WriteString(headerStyle.Render(header) + "\n\n")

	nameWidth := max(m.width-labelWidth-6, minNameWidth)
	finished, findings := 0, 0
	for _, r := range m.rows {
		label := statusStyles[r.status].Render(fmt.Sprintf("%*s", labelWidth, r.label()))
		fmt.Fprintf(&b, "  %s  %s", label, truncate(r.path, nameWidth))
		if r.findings > 0 {
			b.WriteString(findingsStyle.Render(fmt.Sprintf("  %d", r.findings)))
		}
		b.WriteByte('\n')
		if r.finished() {
			finished++
		}
		findings += r.findings
	}

	b.WriteString("\n" + footerStyle.Render(fmt.Sprintf("%d/%d files, %d findings", finished, len(m.rows), findings)) + "\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate cuts value to width terminal cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
