package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"rillint/internal/lint"
)

var lintsCmd = &cobra.Command{
	Use:   "lints",
	Short: "List the available lints and their effective levels",
	Long: `Lints prints every registered lint with the level it would run at, after
rillint.toml and the --allow/--warn/--deny flags are applied.`,
	Args: cobra.NoArgs,
	RunE: runLints,
}

func init() {
	lintsCmd.Flags().String("group", "", "only list lints of this group")
	lintsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	lintsCmd.Flags().StringSliceP("allow", "A", nil, "allow a lint or group (repeatable)")
	lintsCmd.Flags().StringSliceP("warn", "W", nil, "warn on a lint or group (repeatable)")
	lintsCmd.Flags().StringSliceP("deny", "D", nil, "deny a lint or group (repeatable)")
}

type lintRow struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Group   string `json:"group"`
	Level   string `json:"level"`
	Default string `json:"default"`
	Summary string `json:"summary"`
}

func runLints(cmd *cobra.Command, _ []string) error {
	group, err := cmd.Flags().GetString("group")
	if err != nil {
		return fmt.Errorf("failed to get group flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	s, err := loadSettings(cmd, nil)
	if err != nil {
		return err
	}

	var rows []lintRow
	for _, l := range s.registry.Lints() {
		if group != "" && !strings.EqualFold(string(l.Group), group) {
			continue
		}
		rows = append(rows, lintRow{
			Name:    l.Name,
			Code:    l.Code.ID(),
			Group:   string(l.Group),
			Level:   s.levels.Of(l).String(),
			Default: l.Default.String(),
			Summary: l.Summary,
		})
	}
	if len(rows) == 0 && group != "" {
		return fmt.Errorf("no lints in group %q", group)
	}

	switch format {
	case "pretty":
		renderLints(os.Stdout, rows)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if s.configErrors {
		return errFindings
	}
	return nil
}

var levelColors = map[string]*color.Color{
	lint.Allow.String(): color.New(color.Faint),
	lint.Warn.String():  color.New(color.FgYellow),
	lint.Deny.String():  color.New(color.FgRed, color.Bold),
}

func renderLints(w io.Writer, rows []lintRow) {
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r.Name))
	}
	name := color.New(color.Bold)
	for _, r := range rows {
		level := r.Level
		if c, ok := levelColors[level]; ok {
			level = c.Sprint(runewidth.FillRight(level, 5))
		}
		fmt.Fprintf(w, "%s  %s  %-11s %s  %s\n",
			name.Sprint(runewidth.FillRight(r.Name, width)),
			r.Code,
			r.Group,
			level,
			r.Summary)
	}
}
