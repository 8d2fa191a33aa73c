package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rillint/internal/config"
	"rillint/internal/diag"
	"rillint/internal/diagfmt"
	"rillint/internal/driver"
	"rillint/internal/lint"
	"rillint/internal/lint/checks"
	"rillint/internal/source"
)

// settings is the merged view of rillint.toml and the command line:
// explicit flags win over the file, the file wins over defaults.
type settings struct {
	cfg      *config.Config
	registry *lint.Registry
	levels   *lint.Levels
	driver   driver.Options
	format   string
	pathMode diagfmt.PathMode

	// configErrors is set when rillint.toml had invalid entries; the run
	// goes on without them but exits with status 1.
	configErrors bool
}

func lintRegistry() *lint.Registry {
	return checks.Registry()
}

// addLintFlags registers the level override flags shared by check and fix.
func addLintFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("allow", "A", nil, "allow a lint or group (repeatable)")
	cmd.Flags().StringSliceP("warn", "W", nil, "warn on a lint or group (repeatable)")
	cmd.Flags().StringSliceP("deny", "D", nil, "deny a lint or group (repeatable)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=config or auto)")
}

func loadSettings(cmd *cobra.Command, paths []string) (*settings, error) {
	s := &settings{registry: lintRegistry()}

	if err := s.loadConfig(cmd, paths); err != nil {
		return nil, err
	}
	if err := s.applyColor(cmd); err != nil {
		return nil, err
	}

	s.levels = s.cfg.Levels(s.registry)
	if cmd.Flags().Lookup("allow") != nil {
		allow, _ := cmd.Flags().GetStringSlice("allow")
		warn, _ := cmd.Flags().GetStringSlice("warn")
		deny, _ := cmd.Flags().GetStringSlice("deny")
		if err := config.ApplyFlags(s.levels, s.registry, allow, warn, deny); err != nil {
			return nil, err
		}
	}

	maxDiagnostics := s.cfg.Check.MaxDiagnostics
	if flag := cmd.Root().PersistentFlags().Lookup("max-diagnostics"); flag != nil && flag.Changed {
		maxDiagnostics, _ = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	}
	if maxDiagnostics < 0 {
		return nil, fmt.Errorf("invalid max-diagnostics %d", maxDiagnostics)
	}

	jobs := s.cfg.Check.Jobs
	if flag := cmd.Flags().Lookup("jobs"); flag != nil && flag.Changed {
		jobs, _ = cmd.Flags().GetInt("jobs")
	}

	baseDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	s.driver = driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Registry:       s.registry,
		Levels:         s.levels,
		Exclude:        s.cfg.Check.Exclude,
		BaseDir:        baseDir,
		Cache:          s.openCache(cmd),
	}

	s.format = s.cfg.Output.Format
	if flag := cmd.Flags().Lookup("format"); flag != nil && flag.Changed {
		s.format = flag.Value.String()
	}
	if s.format == "" {
		s.format = "pretty"
	}

	mode := s.cfg.Output.PathMode
	if flag := cmd.Flags().Lookup("path-mode"); flag != nil && flag.Changed {
		mode = flag.Value.String()
	}
	s.pathMode, err = diagfmt.ParsePathMode(mode)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// loadConfig reads --config or the nearest rillint.toml above the first
// path. Problems in the file are printed to stderr right away.
func (s *settings) loadConfig(cmd *cobra.Command, paths []string) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		start := "."
		if len(paths) > 0 {
			start = paths[0]
		}
		found, ok, err := config.Find(start)
		if err != nil {
			return err
		}
		if !ok {
			s.cfg = config.Default()
			return nil
		}
		path = found
	}

	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	cfg, err := config.Load(fs, path, s.registry, diag.BagReporter{Bag: bag})
	if err != nil {
		return err
	}
	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:    useColor(cmd, os.Stderr),
			Context:  1,
			PathMode: diagfmt.PathModeAuto,
		})
		s.configErrors = bag.HasErrors()
	}
	s.cfg = cfg
	return nil
}

// applyColor lets [output].color decide when --color was not given.
func (s *settings) applyColor(cmd *cobra.Command) error {
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil && flag.Changed {
		return nil
	}
	mode, err := parseTristate("color", s.cfg.Output.Color)
	if err != nil {
		return err
	}
	color.NoColor = !colorFor(mode, os.Stdout)
	return nil
}

func (s *settings) openCache(cmd *cobra.Command) *driver.DiskCache {
	if cmd.Flags().Lookup("no-cache") == nil {
		return nil
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache || !s.cfg.CacheEnabled() {
		return nil
	}
	cache, err := driver.OpenDiskCache("rillint")
	if err != nil {
		// без кэша всё работает, только медленнее
		if !quiet(cmd) {
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		}
		return nil
	}
	return cache
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}
