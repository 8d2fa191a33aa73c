package main

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rillint/internal/fix"
	"rillint/internal/pipeline"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.rl|directory>...",
	Short: "Apply suggested fixes to rill source files",
	Long: `Fix runs the same checks as check and applies their suggestions in place.
By default the first preferred fix is applied; --all applies every fix that
is always safe, --id applies one fix by its identifier.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	addLintFlags(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := parseTristate("ui", uiValue)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	applyMode, err := applyModeOf(applyAll, applyOnceFlag, targetID)
	if err != nil {
		return err
	}

	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	req := &pipeline.FixRequest{
		Check: pipeline.CheckRequest{Paths: args, Driver: s.driver},
		Apply: fix.ApplyOptions{Mode: applyMode, TargetID: targetID},
	}

	var res pipeline.FixResult
	if shouldUseTUI(mode, quiet(cmd)) {
		files, ferr := req.Check.Files()
		if ferr != nil {
			return ferr
		}
		res, err = runFixWithUI(cmd.Context(), "fixing", files, req)
	} else {
		res, err = pipeline.Fix(cmd.Context(), req)
	}
	if err != nil && !errors.Is(err, fix.ErrNoFixes) {
		return fmt.Errorf("fix: %w", err)
	}
	if printErr := handleApplyResult(os.Stdout, res.Applied, err); printErr != nil {
		return printErr
	}
	if showTimings {
		printStageTimings(os.Stderr, res.Timings)
	}
	if s.configErrors {
		return errFindings
	}
	return nil
}

func applyModeOf(all, once bool, id string) (fix.ApplyMode, error) {
	switch {
	case id != "" && (all || once):
		return 0, fmt.Errorf("--id cannot be combined with --all or --once")
	case all && once:
		return 0, fmt.Errorf("--all and --once are mutually exclusive")
	case id != "":
		return fix.ApplyModeID, nil
	case all:
		return fix.ApplyModeAll, nil
	}
	return fix.ApplyModeOnce, nil
}

// handleApplyResult prints what was applied, which files changed and why
// the rest was skipped. ErrNoFixes is reported, not returned.
func handleApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}
	if applyErr != nil && !errors.Is(applyErr, fix.ErrNoFixes) {
		return applyErr
	}

	var b strings.Builder
	if len(res.Applied) > 0 {
		fmt.Fprintf(&b, "Applied %d fix(es):\n", len(res.Applied))
		for _, a := range res.Applied {
			fmt.Fprintf(&b, "  %s [%s]: %s (%d edits, %s)\n",
				a.Title, a.ID, cmp.Or(a.PrimaryPath, "(unknown location)"), a.EditCount, a.Applicability)
		}
	}
	if len(res.FileChanges) > 0 {
		b.WriteString("Updated files:\n")
		for _, c := range res.FileChanges {
			fmt.Fprintf(&b, "  %s (%d edits)\n", c.Path, c.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		b.WriteString("Skipped fixes:\n")
		for _, sk := range res.Skipped {
			b.WriteString("  ")
			if sk.Title != "" {
				b.WriteString(sk.Title + " ")
			}
			fmt.Fprintf(&b, "[%s]: %s\n", cmp.Or(sk.ID, "(unnamed)"), sk.Reason)
		}
	}
	switch {
	case len(res.Applied) > 0:
	case applyErr != nil:
		b.WriteString("No applicable fixes found.\n")
	default:
		b.WriteString("No fixes applied.\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}
