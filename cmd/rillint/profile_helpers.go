package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rillint/internal/prof"
)

var activeProfile *prof.Session

// setupProfiling starts the profilers requested by the persistent flags;
// run stops them once the command returns.
func setupProfiling(cmd *cobra.Command) error {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if cpuProfile == "" && memProfile == "" && tracePath == "" {
		return nil
	}

	activeProfile, err = prof.Start(prof.Config{CPU: cpuProfile, Mem: memProfile, Trace: tracePath})
	return err
}
