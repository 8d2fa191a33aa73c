package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"rillint/internal/lint"
	"rillint/internal/version"
)

type versionPayload struct {
	Tool      string         `json:"tool"`
	Version   string         `json:"version"`
	GitCommit string         `json:"git_commit,omitempty"`
	BuildDate string         `json:"build_date,omitempty"`
	Lints     int            `json:"lints"`
	Groups    map[string]int `json:"groups"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show rillint build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newVersionPayload(lintRegistry().Lints())
		out := cmd.OutOrStdout()
		switch strings.ToLower(versionFormat) {
		case "pretty":
			_, err := fmt.Fprintf(out, "%s\n%d lints: %s\n", version.Describe(), p.Lints, groupSummary(p.Groups))
			return err
		case "json":
			return writeVersionJSON(out, p)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func newVersionPayload(lints []*lint.Lint) versionPayload {
	groups := make(map[string]int)
	for _, l := range lints {
		groups[string(l.Group)]++
	}
	return versionPayload{
		Tool:      "rillint",
		Version:   version.Version,
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
		Lints:     len(lints),
		Groups:    groups,
	}
}

// groupSummary renders "correctness 1, style 4" in group name order.
func groupSummary(groups map[string]int) string {
	parts := make([]string, 0, len(groups))
	for _, g := range slices.Sorted(maps.Keys(groups)) {
		parts = append(parts, fmt.Sprintf("%s %d", g, groups[g]))
	}
	return strings.Join(parts, ", ")
}

func writeVersionJSON(out io.Writer, p versionPayload) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
