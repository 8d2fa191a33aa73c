package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"go.followtheprocess.codes/test"

	"rillint/internal/pipeline"
)

func TestApplyTracksFiles(t *testing.T) {
	events := make(chan pipeline.Event)
	m := NewProgressModel("rillint check", []string{"src/a.rl", "src/b.rl"}, events).(*progressModel)

	m.apply(pipeline.Event{Stage: pipeline.StageLint, Status: pipeline.StatusWorking})
	m.apply(pipeline.Event{File: "src/a.rl", Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	m.apply(pipeline.Event{File: "src/b.rl", Stage: pipeline.StageLint, Status: pipeline.StatusCached, Findings: 3})
	m.apply(pipeline.Event{File: "unknown.rl", Stage: pipeline.StageLint, Status: pipeline.StatusDone})

	test.Equal(t, m.phase, "linting")
	test.Equal(t, m.rows[0].label(), "parsing")
	test.True(t, m.rows[1].finished())
	test.Equal(t, m.rows[1].findings, 3)
	test.True(t, math.Abs(m.fraction()-0.7) < 1e-9, test.Context("fraction %v", m.fraction()))

	view := m.View()
	for _, want := range []string{"rillint check (linting)", "src/a.rl", "cached", "1/2 files, 3 findings"} {
		test.True(t, strings.Contains(view, want), test.Context("view misses %q:\n%s", want, view))
	}
}

func TestDoneMsgQuits(t *testing.T) {
	events := make(chan pipeline.Event)
	close(events)
	m := NewProgressModel("check", []string{"a.rl"}, events)

	_, ok := m.(*progressModel).next()().(doneMsg)
	test.True(t, ok, test.Context("closed channel must yield doneMsg"))
	next, cmd := m.Update(doneMsg{})
	test.True(t, cmd != nil)
	test.True(t, next.(*progressModel).done)
	test.True(t, strings.Contains(next.View(), "done: check"), test.Context("final view:\n%s", next.View()))
}

func TestEmptyModel(t *testing.T) {
	m := NewProgressModel("check", nil, nil).(*progressModel)
	test.Equal(t, m.View(), "")
	test.Equal(t, m.fraction(), 0.0)
}

func TestTruncate(t *testing.T) {
	test.Equal(t, truncate("short", 10), "short")

	got := truncate("very/long/path/to/file.rl", 10)
	test.True(t, runewidth.StringWidth(got) <= 10 && strings.HasSuffix(got, "..."), test.Context("got %q", got))

	got = truncate("日本語のパス", 3)
	test.True(t, runewidth.StringWidth(got) <= 3, test.Context("got %q", got))
}
