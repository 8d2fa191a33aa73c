package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rillint/internal/version"
)

// errFindings is returned when the run itself worked but reported errors;
// it only sets the exit status.
var errFindings = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:   "rillint",
	Short: "Lints for rill sources",
	Long: `rillint checks rill source files for suspicious formatting, needless code
and patterns with simpler equivalents, and can apply the suggested fixes.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

func init() {
	// Добавляем команды
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(lintsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0=config or unlimited)")
	rootCmd.PersistentFlags().String("config", "", "path to rillint.toml (default: search upwards from the first path)")

	rootCmd.PersistentFlags().String("trace", "", "write a trace to this file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson|chrome)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0=off)")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main runs the root command and exits with its status.
func main() {
	os.Exit(run())
}

func run() int {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Plain()

	err := rootCmd.ExecuteContext(context.Background())
	if perr := activeProfile.Stop(); perr != nil {
		fmt.Fprintf(os.Stderr, "rillint: %v\n", perr)
	}
	finishTracing(err)
	if err == nil {
		return 0
	}
	if !errors.Is(err, errFindings) {
		fmt.Fprintf(os.Stderr, "rillint: %v\n", err)
	}
	return 1
}

func setupRun(cmd *cobra.Command, _ []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	if err := setupProfiling(cmd); err != nil {
		return err
	}
	return setupTracing(cmd)
}
