package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rillint/internal/diag"
	"rillint/internal/diagfmt"
	"rillint/internal/pipeline"
	"rillint/internal/source"
	"rillint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.rl|directory>...",
	Short: "Lint rill source files",
	Long: `Check parses every .rl file under the given paths, runs the enabled lints
and reports what they find. Lint levels come from rillint.toml and the
--allow/--warn/--deny flags.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|relative|absolute|basename)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "show fix previews (implies --suggest)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	addLintFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseTristate("ui", uiValue)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	req := &pipeline.CheckRequest{Paths: args, Driver: s.driver}
	var res pipeline.CheckResult
	if s.format == "pretty" && shouldUseTUI(mode, quiet(cmd)) {
		files, err := req.Files()
		if err != nil {
			return err
		}
		res, err = runCheckWithUI(cmd.Context(), "checking", files, req)
		if err != nil {
			return err
		}
	} else {
		res, err = pipeline.Check(cmd.Context(), req)
		if err != nil {
			return err
		}
	}

	bag := res.Driver.Bag
	hasErrors := bag.HasErrors()
	machine := s.format == "json" || s.format == "sarif"
	if showTimings && machine {
		// в машинном выводе тайминги идут отдельной диагностикой
		withTimings := diag.NewBag(0)
		withTimings.Merge(bag)
		withTimings.Add(res.Driver.Timer.Diagnostic())
		bag = withTimings
	}

	out := diagOutput{
		format:    s.format,
		pathMode:  s.pathMode,
		color:     useColor(cmd, os.Stdout),
		withNotes: withNotes,
		fixes:     suggest || preview,
		preview:   preview,
		args:      os.Args[1:],
	}
	if err := out.write(bag, res.Driver.FileSet); err != nil {
		return err
	}

	if !machine && !quiet(cmd) {
		printSummary(res)
	}
	if showTimings && !machine {
		fmt.Fprint(os.Stderr, res.Driver.Timer.Summary())
		printStageTimings(os.Stderr, res.Timings)
	}

	if hasErrors || s.configErrors {
		return errFindings
	}
	return nil
}

type diagOutput struct {
	format    string
	pathMode  diagfmt.PathMode
	color     bool
	withNotes bool
	fixes     bool
	preview   bool
	args      []string
}

func (o diagOutput) write(bag *diag.Bag, fs *source.FileSet) error {
	switch o.format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, fs, diagfmt.PrettyOpts{
			Color:       o.color,
			Context:     2,
			PathMode:    o.pathMode,
			ShowNotes:   o.withNotes,
			ShowFixes:   o.fixes,
			ShowPreview: o.preview,
		})
	case "short":
		diagfmt.Short(os.Stdout, bag, fs, o.pathMode)
	case "json":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         o.pathMode,
			IncludeNotes:     o.withNotes,
			IncludeFixes:     o.fixes,
			IncludePreviews:  o.preview,
		}
		if err := diagfmt.JSON(os.Stdout, bag, fs, opts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "rillint",
			ToolVersion:    version.Plain(),
			InvocationArgs: o.args,
		}
		if err := diagfmt.Sarif(os.Stdout, bag, fs, meta); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", o.format)
	}
	return nil
}

// printSummary пишет итоговую строку в stderr, чтобы не мешать выводу.
func printSummary(res pipeline.CheckResult) {
	var errs, warns int
	for _, d := range res.Driver.Bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	cached := 0
	for _, f := range res.Driver.Files {
		if f.Cached {
			cached++
		}
	}
	line := fmt.Sprintf("checked %d file(s): %d error(s), %d warning(s)", len(res.Driver.Files), errs, warns)
	if cached > 0 {
		line += fmt.Sprintf(", %d cached", cached)
	}
	fmt.Fprintln(os.Stderr, line)
}
