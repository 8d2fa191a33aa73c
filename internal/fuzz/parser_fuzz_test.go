package fuzztests

import (
	"context"
	"testing"
	"time"

	"rillint/internal/diag"
	"rillint/internal/lint"
	"rillint/internal/lint/checks"
	"rillint/internal/parser"
	"rillint/internal/source"
	"rillint/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

// FuzzParserSpans parses arbitrary input and, when it parses cleanly,
// checks the span invariants and runs every lint at warn.
func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	reg := checks.Registry()
	levels := lint.NewLevels()
	for _, l := range reg.Lints() {
		levels.Set(l.Name, lint.Warn)
	}

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.rl", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(128)
		reporter := diag.BagReporter{Bag: bag}
		res := parser.ParseFile(fs, file, parser.Options{Reporter: reporter, MaxErrors: 128})
		if bag.HasErrors() {
			return
		}
		if err := testkit.CheckSpanInvariants(res.Tree, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}

		cx := lint.NewContext(fs, res.Tree, levels, reporter)
		lint.Walk(cx, reg)
		for _, d := range bag.Items() {
			if _, ok := fs.Text(d.Primary); !ok && d.Primary != (source.Span{}) {
				t.Fatalf("%s points outside the file: %v", d.Lint, d.Primary)
			}
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops that could be caused by
// malformed input or edge cases in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Add specific edge cases for error recovery
	f.Add([]byte("fn test() { let x = 1\nlet y = 2; }")) // missing semicolon
	f.Add([]byte("fn f() { { { { } } } }"))              // deeply nested blocks
	f.Add([]byte("fn f() { match x { } }"))              // empty match
	f.Add([]byte("macro m($a) { m!($a $a) } m!(1)"))     // runaway expansion
	f.Add([]byte("fn f() { g!( }"))                      // unterminated macro call
	f.Add([]byte("struct S{)B{}E"))                      // stray closer in field list

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		// Create a context with timeout to detect hangs
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		// Run parser in a goroutine
		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.rl", input)
			bag := diag.NewBag(128)
			_ = parser.ParseFile(fs, fs.Get(fileID), parser.Options{
				Reporter:  diag.BagReporter{Bag: bag},
				MaxErrors: 128,
			})
		}()

		// Wait for completion or timeout
		select {
		case <-done:
			// Parser completed successfully
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
