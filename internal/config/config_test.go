package config_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.followtheprocess.codes/test"

	"rillint/internal/config"
	"rillint/internal/diag"
	"rillint/internal/lint"
	"rillint/internal/lint/checks"
	"rillint/internal/source"
)

func parse(t *testing.T, content string) (*config.Config, *diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	cfg := config.Parse(fs, config.FileName, content, checks.Registry(), diag.BagReporter{Bag: bag})
	return cfg, bag, fs
}

func levelOf(t *testing.T, reg *lint.Registry, levels *lint.Levels, name string) lint.Level {
	t.Helper()
	l, ok := reg.Lookup(name)
	test.True(t, ok, test.Context("no lint %s", name))
	return levels.Of(l)
}

func TestParseLevelsMostSpecificWins(t *testing.T) {
	cfg, bag, _ := parse(t, `
[lints]
needless_continue = "deny"
pedantic = "warn"
all = "allow"

[check]
jobs = 4
cache = false

[output]
format = "json"
`)
	test.Equal(t, bag.Len(), 0)

	reg := checks.Registry()
	levels := cfg.Levels(reg)
	test.Equal(t, levelOf(t, reg, levels, "needless_continue"), lint.Deny)
	test.Equal(t, levelOf(t, reg, levels, "manual_string_new"), lint.Warn)
	test.Equal(t, levelOf(t, reg, levels, "bool_comparison"), lint.Allow)

	test.Equal(t, cfg.Check.Jobs, 4)
	test.True(t, !cfg.CacheEnabled())
	test.Equal(t, cfg.Output.Format, "json")
	test.Equal(t, cfg.Output.PathMode, "auto")
}

func TestParseReportsProblems(t *testing.T) {
	cfg, bag, fs := parse(t, `[lints]
needles_continue = "warn"
bool_comparison = "loud"

[check]
jbos = 2

[output]
color = "rainbow"
`)
	type want struct {
		code diag.Code
		line uint32
	}
	wants := []want{
		{diag.CfgUnknownKey, 6},
		{diag.CfgBadLevel, 3},
		{diag.CfgUnknownLint, 2},
		{diag.CfgBadValue, 9},
	}
	items := bag.Items()
	test.Equal(t, len(items), len(wants))
	for i, w := range wants {
		start, _ := fs.Resolve(items[i].Primary)
		test.Equal(t, items[i].Code, w.code, test.Context("diagnostic %d: %s", i, items[i].Message))
		test.Equal(t, start.Line, w.line, test.Context("diagnostic %d: %s", i, items[i].Message))
		test.Equal(t, items[i].Severity, diag.SevError)
	}
	test.Equal(t, items[2].Notes[0].Msg, `did you mean "needless_continue"?`)

	// плохие записи выброшены, остальное применяется
	test.Equal(t, len(cfg.Lints), 0)
	test.Equal(t, cfg.Output.Color, "auto")
}

func TestParseDecodeError(t *testing.T) {
	cfg, bag, _ := parse(t, "[lints\nx = 1\n")
	test.Equal(t, bag.Len(), 1)
	test.Equal(t, bag.Items()[0].Code, diag.CfgDecodeFailed)
	test.Equal(t, cfg.Output.Format, "pretty")
}

func TestApplyFlags(t *testing.T) {
	reg := checks.Registry()
	levels := lint.NewLevels()
	err := config.ApplyFlags(levels, reg, []string{"all"}, []string{"needless-continue"}, []string{"style"})
	test.Ok(t, err)
	test.Equal(t, levelOf(t, reg, levels, "needless_continue"), lint.Warn)
	test.Equal(t, levelOf(t, reg, levels, "iter_nth_zero"), lint.Deny)
	test.Equal(t, levelOf(t, reg, levels, "possible_missing_comma"), lint.Allow)

	err = config.ApplyFlags(levels, reg, nil, []string{"bool_comparisn"}, nil)
	test.True(t, errors.Is(err, config.ErrUnknownLint))
	test.True(t, strings.Contains(err.Error(), `did you mean "bool_comparison"?`), test.Context("got %v", err))
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, config.FileName)
	test.Ok(t, os.WriteFile(path, []byte("[lints]\n"), 0o600))
	deeper := filepath.Join(root, "src", "deeper")
	test.Ok(t, os.MkdirAll(deeper, 0o755))
	file := filepath.Join(deeper, "main.rl")
	test.Ok(t, os.WriteFile(file, []byte("fn main() {}\n"), 0o600))

	for _, start := range []string{deeper, file, root} {
		got, ok, err := config.Find(start)
		test.Ok(t, err)
		test.True(t, ok, test.Context("from %s", start))
		test.Equal(t, got, path)
	}
}

func TestLoadAndTemplateRoundTrip(t *testing.T) {
	reg := checks.Registry()
	var buf bytes.Buffer
	test.Ok(t, config.Write(&buf, config.Template(reg)))

	path := filepath.Join(t.TempDir(), config.FileName)
	test.Ok(t, os.WriteFile(path, buf.Bytes(), 0o600))

	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	cfg, err := config.Load(fs, path, reg, diag.BagReporter{Bag: bag})
	test.Ok(t, err)
	test.Equal(t, bag.Len(), 0, test.Context("written config:\n%s", buf.String()))
	test.Equal(t, cfg.Path, path)
	test.Equal(t, len(cfg.Lints), reg.Len())
	test.True(t, cfg.CacheEnabled())

	_, err = config.Load(fs, filepath.Join(t.TempDir(), "missing.toml"), reg, diag.NopReporter{})
	test.Err(t, err)
}
