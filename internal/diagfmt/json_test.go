package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"rillint/internal/diag"
	"rillint/internal/fix"
	"rillint/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte(`fn main() {
	let x = "unterminated
}`)
	fileID := fs.AddVirtual("test.rl", content)

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 21, End: 33},
		"Unterminated string literal",
	)
	bag.Add(d)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	}

	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	// Парсим JSON чтобы убедиться что он валидный
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}

	if output.Count != 1 {
		t.Errorf("Expected count=1, got %d", output.Count)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}

	got := output.Diagnostics[0]
	if got.Severity != "ERROR" {
		t.Errorf("Expected severity=ERROR, got %s", got.Severity)
	}
	if got.Code != "LEX1002" {
		t.Errorf("Expected code=LEX1002, got %s", got.Code)
	}
	if got.Lint != "" {
		t.Errorf("Expected no lint name, got %s", got.Lint)
	}
	if got.Location.File != "test.rl" {
		t.Errorf("Expected file=test.rl, got %s", got.Location.File)
	}
	if got.Location.StartByte != 21 || got.Location.EndByte != 33 {
		t.Errorf("Expected bytes 21..33, got %d..%d", got.Location.StartByte, got.Location.EndByte)
	}
	// строка 2 начинается с таба на байте 12
	if got.Location.StartLine != 2 {
		t.Errorf("Expected start_line=2, got %d", got.Location.StartLine)
	}
	if got.Location.StartCol != 10 {
		t.Errorf("Expected start_col=10, got %d", got.Location.StartCol)
	}
}

func TestJSONLintWithNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("fn f() {\n    x =- 1;\n}\n")
	fileID := fs.AddVirtual("test.rl", content)
	op := source.Span{File: fileID, Start: 15, End: 17}

	bag := diag.NewBag(10)
	diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.LintSuspiciousAssignmentFormatting, op,
		"this looks like you are trying to use `-=`, but it is `= -`").
		WithLint("suspicious_assignment_formatting").
		WithNote(source.Span{}, "to remove this lint, use either `-=` or `= -`").
		WithNote(op, "operator is here").
		WithFixSuggestion(fix.ReplaceSpan("use `= -`", op, "= -", "=-",
			fix.WithApplicability(diag.FixApplicabilityManualReview))).
		WithFixSuggestion(fix.ReplaceSpan("use `-=`", op, "-=", "=-",
			fix.WithApplicability(diag.FixApplicabilityManualReview), fix.Preferred())).
		Emit()

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}
	got := output.Diagnostics[0]
	if got.Code != "LNT6001" || got.Lint != "suspicious_assignment_formatting" {
		t.Errorf("Unexpected code/lint: %s/%s", got.Code, got.Lint)
	}
	if got.Severity != "WARNING" {
		t.Errorf("Expected WARNING, got %s", got.Severity)
	}

	// Заметка без span не имеет location
	if len(got.Notes) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(got.Notes))
	}
	if got.Notes[0].Location != nil {
		t.Errorf("Expected spanless note to have no location, got %+v", got.Notes[0].Location)
	}
	if got.Notes[1].Location == nil || got.Notes[1].Location.StartCol != 7 {
		t.Errorf("Expected located note at col 7, got %+v", got.Notes[1].Location)
	}

	// Предпочтительный fix идёт первым
	if len(got.Fixes) != 2 {
		t.Fatalf("Expected 2 fixes, got %d", len(got.Fixes))
	}
	first := got.Fixes[0]
	if first.Title != "use `-=`" || !first.IsPreferred {
		t.Errorf("Expected preferred `-=` fix first, got %+v", first)
	}
	if first.Applicability != "manual-review" {
		t.Errorf("Expected applicability manual-review, got %s", first.Applicability)
	}
	if first.Kind != "quickfix" {
		t.Errorf("Expected kind quickfix, got %s", first.Kind)
	}
	if len(first.Edits) != 1 || first.Edits[0].NewText != "-=" || first.Edits[0].OldText != "=-" {
		t.Errorf("Unexpected edits: %+v", first.Edits)
	}
	if got.Fixes[1].IsPreferred {
		t.Errorf("Expected second fix not to be preferred")
	}
}

// TestJSONWithoutPositions проверяет JSON без позиций строк/колонок
func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rl", []byte("let x = 42"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevInfo, diag.LexUnknownChar, source.Span{File: fileID, Start: 4, End: 5}, "Info message"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	got := output.Diagnostics[0]
	// omitempty скрывает позиции
	if got.Location.StartLine != 0 {
		t.Errorf("Expected start_line to be omitted (0), got %d", got.Location.StartLine)
	}
	// Но байтовые позиции должны быть всегда
	if got.Location.StartByte != 4 {
		t.Errorf("Expected start_byte=4, got %d", got.Location.StartByte)
	}
}

// TestJSONMaxLimit проверяет ограничение количества диагностик
func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rl", []byte("test content"))

	bag := diag.NewBag(10)
	for i := range uint32(5) {
		bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: i, End: i + 1}, "Error message"))
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 3}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if output.Count != 3 {
		t.Errorf("Expected count=3 (limited), got %d", output.Count)
	}
	if bag.Len() != 5 {
		t.Errorf("Expected bag to stay untouched, got %d", bag.Len())
	}
}

// TestJSONPathModes проверяет различные режимы путей
func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/main.rl", []byte("test"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "Error"))

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/main.rl"},
		{"Relative", PathModeRelative, "src/main.rl"},
		{"Basename", PathModeBasename, "main.rl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := JSON(&buf, bag, fs, JSONOpts{PathMode: tt.pathMode}); err != nil {
				t.Fatalf("JSON() error: %v", err)
			}
			var output DiagnosticsOutput
			if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
				t.Fatalf("Invalid JSON output: %v", err)
			}
			if output.Diagnostics[0].Location.File != tt.expected {
				t.Errorf("Expected file=%s, got %s", tt.expected, output.Diagnostics[0].Location.File)
			}
		})
	}
}

func TestJSONFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("example.rl", []byte("let a = 42 // missing semicolon"))

	bag := diag.NewBag(2)
	insertSpan := source.Span{File: fileID, Start: 10, End: 10}
	d := diag.New(diag.SevWarning, diag.SynExpectSemicolon, insertSpan, "missing semicolon")
	d = d.WithFix("insert semicolon", diag.TextEdit{Span: insertSpan, NewText: ";"})
	bag.Add(d)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeFixes:     true,
		IncludePreviews:  true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	fixes := output.Diagnostics[0].Fixes
	if len(fixes) != 1 || len(fixes[0].Edits) != 1 {
		t.Fatalf("Expected 1 fix with 1 edit, got %+v", fixes)
	}

	editJSON := fixes[0].Edits[0]
	if len(editJSON.BeforeLines) != 1 || editJSON.BeforeLines[0] != "let a = 42 // missing semicolon" {
		t.Errorf("Unexpected before lines: %q", editJSON.BeforeLines)
	}
	if len(editJSON.AfterLines) != 1 || editJSON.AfterLines[0] != "let a = 42; // missing semicolon" {
		t.Errorf("Unexpected after lines: %q", editJSON.AfterLines)
	}
}

func TestJSONFixBuildError(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rl", []byte("x"))
	sp := source.Span{File: fileID, Start: 0, End: 1}

	bag := diag.NewBag(2)
	empty := diag.FixThunkFunc(func(diag.FixBuildContext) (diag.Fix, error) { return diag.Fix{}, nil })
	bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, sp, "lazy").
		WithFixSuggestion(diag.Fix{Title: "lazy fix", Thunk: empty}))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeFixes: true})
	fixes := out.Diagnostics[0].Fixes
	if len(fixes) != 1 {
		t.Fatalf("Expected 1 fix, got %d", len(fixes))
	}
	if fixes[0].BuildError == "" || len(fixes[0].Edits) != 0 {
		t.Errorf("Expected build error and no edits, got %+v", fixes[0])
	}
}
