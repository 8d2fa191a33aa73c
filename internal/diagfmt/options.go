package diagfmt

import "fmt"

// PathMode selects how a file path is printed in locations.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths and cuts long absolute
	// ones to the base name.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	// PathModeRelative prints paths relative to the FileSet base directory.
	PathModeRelative
	PathModeBasename
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

// String returns the mode name as accepted by ParsePathMode and
// source.File.FormatPath.
func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return pathModeNames[PathModeAuto]
}

// ParsePathMode parses a --path-mode value; empty means auto.
func ParsePathMode(value string) (PathMode, error) {
	if value == "" {
		return PathModeAuto, nil
	}
	for m, name := range pathModeNames {
		if name == value {
			return PathMode(m), nil
		}
	}
	return PathModeAuto, fmt.Errorf("invalid path mode %q (expected auto|absolute|relative|basename)", value)
}

// PrettyOpts configures the human-readable renderer.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown around a snippet.
	Context  int8
	PathMode PathMode
	// Width truncates messages; zero keeps them whole.
	Width       uint8
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	// IncludePositions adds line and column to every location.
	IncludePositions bool
	PathMode         PathMode
	// Max caps the printed diagnostics; the bag itself is untouched.
	Max             int
	IncludeNotes    bool
	IncludeFixes    bool
	IncludePreviews bool
}

// SarifRunMeta describes the tool invocation recorded in a SARIF run.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
