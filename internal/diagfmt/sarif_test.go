package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"rillint/internal/diag"
	"rillint/internal/source"
)

func TestSarifLintFinding(t *testing.T) {
	fs := source.NewFileSetWithBase("/proj")
	bag, _ := assignBag(fs, "/proj/src/test.rl")

	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "rillint", ToolVersion: "0.1.0", InvocationArgs: []string{"check", "src"}}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("Invalid SARIF output: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "rillint" {
		t.Errorf("unexpected driver %+v", run.Tool.Driver)
	}
	if len(run.Tool.Driver.Rules) != 1 || run.Tool.Driver.Rules[0].ID != "suspicious_assignment_formatting" {
		t.Errorf("unexpected rules %+v", run.Tool.Driver.Rules)
	}
	if len(run.Invocations) != 1 || !run.Invocations[0].ExecutionSuccessful {
		t.Errorf("warnings must not fail the invocation: %+v", run.Invocations)
	}

	if len(run.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(run.Results))
	}
	res := run.Results[0]
	if res.Level != "warning" || res.RuleID != "suspicious_assignment_formatting" {
		t.Errorf("unexpected result %+v", res)
	}
	phys := res.Locations[0].Physical
	if phys.Artifact.URI != "src/test.rl" {
		t.Errorf("unexpected uri %q", phys.Artifact.URI)
	}
	if want := (sarifRegion{StartLine: 2, StartColumn: 11, EndLine: 2, EndColumn: 13}); phys.Region != want {
		t.Errorf("region = %+v, want %+v", phys.Region, want)
	}
	// заметка без span уходит в текст сообщения
	if len(res.Related) != 0 {
		t.Errorf("unexpected related locations %+v", res.Related)
	}
	if len(res.Fixes) != 1 || res.Fixes[0].Changes[0].Replacements[0].Inserted.Text != "-=" {
		t.Errorf("unexpected fixes %+v", res.Fixes)
	}
}

func TestSarifErrorFailsInvocation(t *testing.T) {
	fs := source.NewFileSetWithBase("/proj")
	fileID := fs.AddVirtual("/proj/a.rl", []byte("x\n"))
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "bad"))

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "rillint", InvocationArgs: []string{"check"}}); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("Invalid SARIF output: %v", err)
	}
	run := log.Runs[0]
	if run.Invocations[0].ExecutionSuccessful {
		t.Errorf("expected failed invocation")
	}
	if run.Tool.Driver.Rules[0].ID != "LEX1001" || run.Results[0].Level != "error" {
		t.Errorf("unexpected run %+v", run)
	}
}
