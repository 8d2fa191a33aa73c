package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// tristate is the value of an auto|on|off switch such as --color or --ui.
type tristate uint8

const (
	switchAuto tristate = iota
	switchOn
	switchOff
)

// parseTristate reads a switch value. rillint.toml spells on/off as
// always/never, so both are accepted.
func parseTristate(name, value string) (tristate, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on", "always":
		return switchOn, nil
	case "off", "never":
		return switchOff, nil
	}
	return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", name, value)
}

// resolve returns the forced value, or auto when the switch is auto.
func (m tristate) resolve(auto bool) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return auto
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}

func colorFor(m tristate, f *os.File) bool {
	return m.resolve(isTerminal(f) && os.Getenv("NO_COLOR") == "")
}

// setupColor applies --color to fatih/color; an explicit flag wins over
// [output].color, which loadSettings applies later.
func setupColor(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := parseTristate("color", value)
	if err != nil {
		return err
	}
	color.NoColor = !colorFor(mode, os.Stdout)
	return nil
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	value, _ := cmd.Root().PersistentFlags().GetString("color")
	mode, err := parseTristate("color", value)
	return err == nil && colorFor(mode, f)
}

// shouldUseTUI: прогресс рисуется в stderr, поэтому в auto смотрим на него,
// а не на stdout с результатами.
func shouldUseTUI(mode tristate, quiet bool) bool {
	return mode.resolve(!quiet && isTerminal(os.Stderr))
}
