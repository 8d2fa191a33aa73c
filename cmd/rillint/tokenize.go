package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rillint/internal/diagfmt"
	"rillint/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.rl",
	Short: "Tokenize a rill source file",
	Long: `Tokenize breaks a rill source file into tokens. The raw format shows the
lossless scanner view, including whitespace and comments.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|raw)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	// Выполняем токенизацию
	result, err := driver.Tokenize(filePath, driver.TokenizeOptions{
		MaxDiagnostics: maxDiagnostics,
		Raw:            format == "raw",
	})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if format == "raw" {
		return diagfmt.FormatRawTokens(os.Stdout, result.Raw)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		})
	}

	// Выводим токены в выбранном формате
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
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
