package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"rillint/internal/diag"
	"rillint/internal/fix"
	"rillint/internal/source"
)

const assignSrc = "fn main() {\n    let x =- 1;\n}\n"

// assignBag returns a bag with one suspicious_assignment_formatting finding
// on `=-` (bytes 22..24, line 2 col 11).
func assignBag(fs *source.FileSet, name string) (*diag.Bag, source.Span) {
	fileID := fs.AddVirtual(name, []byte(assignSrc))
	op := source.Span{File: fileID, Start: 22, End: 24}
	bag := diag.NewBag(10)
	diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.LintSuspiciousAssignmentFormatting, op,
		"this looks like `-=`").
		WithLint("suspicious_assignment_formatting").
		WithNote(source.Span{}, "to remove this lint, use either `-=` or `= -`").
		WithFixSuggestion(fix.ReplaceSpan("use `-=`", op, "-=", "=-",
			fix.WithApplicability(diag.FixApplicabilityManualReview))).
		Emit()
	return bag, op
}

func TestPrettyExact(t *testing.T) {
	fs := source.NewFileSet()
	bag, _ := assignBag(fs, "test.rl")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})

	want := "test.rl:2:11: WARNING LNT6001 suspicious_assignment_formatting: this looks like `-=`\n" +
		"  2 |     let x =- 1;\n" +
		"    |           ^~\n" +
		"  note: to remove this lint, use either `-=` or `= -`\n" +
		"  fix #1: use `-=` [manual-review]\n" +
		"      test.rl:2:11 apply=\"-=\"\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	bag, _ := assignBag(fs, "/home/user/project/src/test.rl")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.rl:2:11"},
		{"Relative path", PathModeRelative, "src/test.rl:2:11"},
		{"Basename only", PathModeBasename, "test.rl:2:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			// Контекст 1: все три строки файла
			for _, line := range []string{"1 | fn main() {", "2 |     let x =- 1;", "3 | }"} {
				if !strings.Contains(output, line) {
					t.Errorf("Expected context line %q, got:\n%s", line, output)
				}
			}
			if strings.Contains(output, "note:") || strings.Contains(output, "fix #") {
				t.Errorf("notes and fixes must be hidden by default:\n%s", output)
			}
		})
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	bag, _ := assignBag(fs, "test.rl")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true, ShowPreview: true})
	output := buf.String()

	for _, want := range []string{"preview:", "-     let x =- 1;", "+     let x -= 1;"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output:\n%s", want, output)
		}
	}
}

func TestPrettyWidthTruncatesMessage(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rl", []byte("x\n"))
	bag := diag.NewBag(1)
	long := strings.Repeat("очень длинное сообщение ", 5)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, long))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Width: 20})
	header, _, _ := strings.Cut(buf.String(), "\n")

	if strings.Contains(header, long) {
		t.Errorf("message was not truncated: %q", header)
	}
	if !strings.HasSuffix(header, "…") {
		t.Errorf("expected ellipsis, got %q", header)
	}
}

func TestPrettyTabsAndWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	// таб раскрывается в 4 пробела, 日本 занимает 4 колонки
	fileID := fs.AddVirtual("test.rl", []byte("\t日本 = x\n"))
	// `=` на байте 8
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 8, End: 9}, "here"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if lines[1] != "  1 |     日本 = x" {
		t.Errorf("unexpected source line %q", lines[1])
	}
	if lines[2] != "    |          ^" {
		t.Errorf("unexpected caret line %q", lines[2])
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	bag, _ := assignBag(fs, "test.rl")
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: 0, Start: 0, End: 1}, "bad char"))

	var buf bytes.Buffer
	Short(&buf, bag, fs, PathModeBasename)

	want := "test.rl:2:11: warning[LNT6001] suspicious_assignment_formatting: this looks like `-=`\n" +
		"test.rl:1:1: error[LEX1001] Unknown character: bad char\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}
