// Package config loads rillint.toml: lint levels, check settings and output
// defaults. Problems inside the file are reported as CFG diagnostics that
// point into it; only I/O failures are Go errors.
package config

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"rillint/internal/diag"
	"rillint/internal/lint"
	"rillint/internal/source"
)

// FileName is the name Find looks for.
const FileName = "rillint.toml"

// ErrUnknownLint is returned for a lint or group name nobody registered.
var ErrUnknownLint = errors.New("unknown lint")

// Config is the decoded rillint.toml.
type Config struct {
	// Lints maps a lint name, a group name or "all" to allow, warn or deny.
	Lints  map[string]string `toml:"lints,omitempty"`
	Check  Check             `toml:"check"`
	Output Output            `toml:"output"`

	// Path is the file the config came from, empty for defaults.
	Path string `toml:"-"`
}

// Check is the [check] table.
type Check struct {
	Jobs           int      `toml:"jobs,omitempty"` // 0 = GOMAXPROCS
	MaxDiagnostics int      `toml:"max_diagnostics,omitempty"`
	Cache          *bool    `toml:"cache,omitempty"`
	Exclude        []string `toml:"exclude,omitempty"` // globs, matched under each checked root
}

// Output is the [output] table.
type Output struct {
	Format   string `toml:"format,omitempty"`    // pretty|short|json|sarif
	PathMode string `toml:"path_mode,omitempty"` // auto|relative|absolute|basename
	Color    string `toml:"color,omitempty"`     // auto|always|never
}

var (
	formats   = []string{"pretty", "short", "json", "sarif"}
	pathModes = []string{"auto", "relative", "absolute", "basename"}
	colors    = []string{"auto", "always", "never"}
)

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Lints:  map[string]string{},
		Output: Output{Format: "pretty", PathMode: "auto", Color: "auto"},
	}
}

// CacheEnabled reports whether [check].cache is on; it defaults to true.
func (c *Config) CacheEnabled() bool {
	return c.Check.Cache == nil || *c.Check.Cache
}

// Dir is the directory relative paths in the config resolve against.
func (c *Config) Dir() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// Find walks up from startDir to locate rillint.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path into fs and decodes it. Entries that fail validation are
// reported to r and dropped; the rest of the file still applies.
func Load(fs *source.FileSet, path string, reg *lint.Registry, r diag.Reporter) (*Config, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return decode(fs, id, reg, r), nil
}

// Parse decodes an in-memory config registered in fs under name.
func Parse(fs *source.FileSet, name, content string, reg *lint.Registry, r diag.Reporter) *Config {
	return decode(fs, fs.AddVirtual(name, []byte(content)), reg, r)
}

func decode(fs *source.FileSet, id source.FileID, reg *lint.Registry, r diag.Reporter) *Config {
	f := fs.Get(id)
	text := string(f.Content)
	cfg := Default()
	cfg.Path = f.Path

	meta, err := toml.Decode(text, cfg)
	if err != nil {
		line := 0
		var perr toml.ParseError
		if errors.As(err, &perr) {
			line = perr.Position.Line
		}
		diag.ReportError(r, diag.CfgDecodeFailed, lineSpan(f, id, line),
			fmt.Sprintf("cannot decode %s: %v", filepath.Base(f.Path), firstLine(err.Error()))).Emit()
		out := Default()
		out.Path = f.Path
		return out
	}

	reported := map[string]bool{}
	for _, key := range meta.Undecoded() {
		if len(key) > 1 && reported[key[:len(key)-1].String()] {
			reported[key.String()] = true
			continue
		}
		reported[key.String()] = true
		diag.ReportError(r, diag.CfgUnknownKey, lineSpan(f, id, keyLine(text, key)),
			fmt.Sprintf("unknown configuration key %q", key.String())).Emit()
	}

	valid := make(map[string]string, len(cfg.Lints))
	for _, name := range slices.Sorted(maps.Keys(cfg.Lints)) {
		level := cfg.Lints[name]
		sp := lineSpan(f, id, keyLine(text, toml.Key{"lints", name}))
		if _, ok := resolve(reg, name); !ok {
			b := diag.ReportError(r, diag.CfgUnknownLint, sp, fmt.Sprintf("unknown lint %q", name))
			if near := closest(reg, name); near != "" {
				b.WithNote(source.Span{}, fmt.Sprintf("did you mean %q?", near))
			}
			b.Emit()
			continue
		}
		if _, err := lint.ParseLevel(level); err != nil {
			diag.ReportError(r, diag.CfgBadLevel, sp, err.Error()).Emit()
			continue
		}
		valid[name] = level
	}
	cfg.Lints = valid

	checkChoice(r, f, id, text, toml.Key{"output", "format"}, &cfg.Output.Format, formats, "pretty")
	checkChoice(r, f, id, text, toml.Key{"output", "path_mode"}, &cfg.Output.PathMode, pathModes, "auto")
	checkChoice(r, f, id, text, toml.Key{"output", "color"}, &cfg.Output.Color, colors, "auto")
	if cfg.Check.Jobs < 0 {
		diag.ReportError(r, diag.CfgBadValue, lineSpan(f, id, keyLine(text, toml.Key{"check", "jobs"})),
			"check.jobs must not be negative").Emit()
		cfg.Check.Jobs = 0
	}
	if cfg.Check.MaxDiagnostics < 0 {
		diag.ReportError(r, diag.CfgBadValue, lineSpan(f, id, keyLine(text, toml.Key{"check", "max_diagnostics"})),
			"check.max_diagnostics must not be negative").Emit()
		cfg.Check.MaxDiagnostics = 0
	}
	return cfg
}

func checkChoice(r diag.Reporter, f *source.File, id source.FileID, text string, key toml.Key, val *string, allowed []string, def string) {
	if *val == "" {
		*val = def
		return
	}
	if slices.Contains(allowed, *val) {
		return
	}
	diag.ReportError(r, diag.CfgBadValue, lineSpan(f, id, keyLine(text, key)),
		fmt.Sprintf("%s must be one of %s, got %q", key.String(), strings.Join(allowed, ", "), *val)).Emit()
	*val = def
}

// Levels returns the lint levels the [lints] table sets: "all" first, then
// groups, then single lints, so the most specific entry wins.
func (c *Config) Levels(reg *lint.Registry) *lint.Levels {
	levels := lint.NewLevels()
	names := slices.Sorted(maps.Keys(c.Lints))
	slices.SortStableFunc(names, func(a, b string) int { return specificity(reg, a) - specificity(reg, b) })
	for _, name := range names {
		level, err := lint.ParseLevel(c.Lints[name])
		if err != nil {
			continue
		}
		lints, _ := resolve(reg, name)
		for _, l := range lints {
			levels.Set(l.Name, level)
		}
	}
	return levels
}

// ApplyFlags applies command-line overrides on top of levels: every --allow,
// then every --warn, then every --deny.
func ApplyFlags(levels *lint.Levels, reg *lint.Registry, allow, warn, deny []string) error {
	for _, set := range []struct {
		names []string
		level lint.Level
	}{{allow, lint.Allow}, {warn, lint.Warn}, {deny, lint.Deny}} {
		for _, name := range set.names {
			lints, ok := resolve(reg, name)
			if !ok {
				if near := closest(reg, name); near != "" {
					return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownLint, name, near)
				}
				return fmt.Errorf("%w %q", ErrUnknownLint, name)
			}
			for _, l := range lints {
				levels.Set(l.Name, set.level)
			}
		}
	}
	return nil
}

// Template is the config `rillint init` writes: every lint at its default.
func Template(reg *lint.Registry) *Config {
	cfg := Default()
	for _, l := range reg.Lints() {
		cfg.Lints[l.Name] = l.Default.String()
	}
	cache := true
	cfg.Check.Cache = &cache
	return cfg
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
