package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.followtheprocess.codes/test"
	"go.uber.org/goleak"

	"rillint/internal/trace"
)

func TestLevelFiltersScopes(t *testing.T) {
	test.True(t, trace.LevelPhase.ShouldEmit(trace.ScopePhase))
	test.True(t, !trace.LevelPhase.ShouldEmit(trace.ScopeFile))
	test.True(t, trace.LevelDetail.ShouldEmit(trace.ScopeFile))
	test.True(t, !trace.LevelDetail.ShouldEmit(trace.ScopeCheck))
	test.True(t, trace.LevelDebug.ShouldEmit(trace.ScopeCheck))
	test.True(t, !trace.LevelOff.ShouldEmit(trace.ScopeRun))

	_, err := trace.ParseLevel("loud")
	test.Err(t, err)
	lvl, err := trace.ParseLevel("DETAIL")
	test.Ok(t, err)
	test.Equal(t, lvl, trace.LevelDetail)
}

func TestStreamTextNesting(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	ctx, run := trace.Start(ctx, trace.ScopeRun, "check")
	ctx, phase := trace.Start(ctx, trace.ScopePhase, "lint")
	_, file := trace.Start(ctx, trace.ScopeFile, "file:a.rl")
	_, check := trace.Start(ctx, trace.ScopeCheck, "check:needless_continue") // отфильтрован
	check.End("")
	file.WithExtra("findings", "2").End("")
	phase.End("")
	run.End("ok")
	test.Ok(t, tr.Close())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	test.Equal(t, len(lines), 6)
	_, rest, _ := strings.Cut(lines[2], "] ")
	test.Equal(t, rest, "    → file:a.rl")
	_, rest, _ = strings.Cut(lines[3], "] ")
	test.Equal(t, rest, "    ← file:a.rl {findings=2}")
	_, rest, _ = strings.Cut(lines[5], "] ")
	test.Equal(t, rest, "← check (ok)")
	test.True(t, !strings.Contains(buf.String(), "needless_continue"))
}

func TestChromeOutputIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelPhase, Format: trace.FormatChrome, Output: &buf})
	test.Ok(t, err)

	s := trace.Begin(tr, trace.ScopePhase, "lex+parse", 0)
	trace.Point(tr, trace.ScopePhase, "cache-miss", "a.rl", s.ID())
	s.End("")
	test.Ok(t, tr.Close())

	var doc struct {
		TraceEvents []struct {
			Name string `json:"name"`
			Ph   string `json:"ph"`
		} `json:"traceEvents"`
	}
	test.Ok(t, json.Unmarshal(buf.Bytes(), &doc), test.Context("output:\n%s", buf.String()))
	test.Equal(t, len(doc.TraceEvents), 3)
	test.Equal(t, doc.TraceEvents[0].Ph, "B")
	test.Equal(t, doc.TraceEvents[1].Ph, "i")
	test.Equal(t, doc.TraceEvents[2].Ph, "E")
	test.Equal(t, doc.TraceEvents[2].Name, "lex+parse")
}

func TestRingKeepsNewest(t *testing.T) {
	r := trace.NewRingTracer(3, trace.LevelPhase)
	for _, name := range []string{"load", "lex+parse", "expand", "lint", "fix"} {
		trace.Point(r, trace.ScopePhase, name, "", 0)
	}
	snap := r.Snapshot()
	test.Equal(t, len(snap), 3)
	test.Equal(t, snap[0].Name, "expand")
	test.Equal(t, snap[2].Name, "fix")
	test.True(t, snap[0].Seq < snap[2].Seq)

	var buf bytes.Buffer
	test.Ok(t, trace.DumpRing(r, &buf))
	test.Equal(t, strings.Count(buf.String(), "\n"), 3)
}

func TestErrorLevelOnlyRings(t *testing.T) {
	tr, err := trace.New(trace.Config{Level: trace.LevelError, Mode: trace.ModeStream})
	test.Ok(t, err)
	_, ok := tr.(*trace.RingTracer)
	test.True(t, ok)
}

func TestHeartbeatStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := trace.NewRingTracer(16, trace.LevelPhase)
	h := trace.StartHeartbeat(r, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	h.Stop()
	h.Stop()
	snap := r.Snapshot()
	test.True(t, len(snap) > 0)
	test.Equal(t, snap[0].Kind, trace.KindHeartbeat)
	test.True(t, strings.HasPrefix(snap[0].Detail, "#1 goroutines="), test.Context("detail %q", snap[0].Detail))

	var nilBeat *trace.Heartbeat
	nilBeat.Stop()
	test.True(t, trace.StartHeartbeat(trace.Nop, time.Millisecond) == nil)
}
