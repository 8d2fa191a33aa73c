package observ

import (
	"errors"
	"strings"
	"testing"

	"rillint/internal/diag"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	tm.End(idx, "3 files")
	if err := tm.Track("lint", func() error { return errors.New("boom") }); err == nil {
		t.Fatalf("Track must return fn's error")
	}
	tm.End(99, "ignored")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Note != "3 files" || report.Phases[1].Note != "failed" {
		t.Errorf("unexpected notes: %+v", report.Phases)
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:", "load", "// 3 files", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary misses %q:\n%s", want, summary)
		}
	}
}

func TestTimerDiagnostic(t *testing.T) {
	tm := NewTimer()
	tm.End(tm.Begin("lex+parse"), "")
	d := tm.Diagnostic()
	if d.Code != diag.ObsTimings || d.Severity != diag.SevInfo {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if len(d.Notes) != 1 || !strings.HasPrefix(d.Notes[0].Msg, "lex+parse: ") {
		t.Errorf("unexpected notes %+v", d.Notes)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if len(tm.Report().Phases) != 0 {
		t.Errorf("nil timer must report nothing")
	}
}
