package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rillint/internal/diagfmt"
	"rillint/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.rl",
	Short: "Parse a rill source file and output its AST",
	Long:  `Parse expands macros in a rill source file and prints the resulting syntax tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var expandCmd = &cobra.Command{
	Use:   "expand file.rl",
	Short: "List the macro expansions of a rill source file",
	Long: `Expand parses a rill source file and prints every macro expansion with its
expansion context, call site and nesting depth.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := parseOne(cmd, args[0])
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatASTPretty(os.Stdout, result.Tree, result.FileSet, result.File.ID)
	case "json":
		err = diagfmt.FormatASTJSON(os.Stdout, result.Tree, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errFindings
	}
	return nil
}

func runExpand(cmd *cobra.Command, args []string) error {
	result, err := parseOne(cmd, args[0])
	if err != nil {
		return err
	}
	if err := diagfmt.FormatExpansions(os.Stdout, result.Expansions, result.FileSet); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errFindings
	}
	return nil
}

// parseOne parses path and prints its syntax diagnostics to stderr.
func parseOne(cmd *cobra.Command, path string) (*driver.ParseResult, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(path, maxDiagnostics)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		})
	}
	return result, nil
}
