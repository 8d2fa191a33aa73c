package pipeline

import (
	"path/filepath"
	"slices"
	"strings"
)

// displayPath is how a file is named in progress events: relative to base
// when it sits under it, slash-separated either way.
func displayPath(path, base string) string {
	path = filepath.Clean(path)
	if base == "" {
		return filepath.ToSlash(path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func absBase(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ""
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// NormalizeProgressFiles maps files to their display names, sorted and
// without duplicates. Empty entries are dropped.
func NormalizeProgressFiles(files []string, baseDir string) []string {
	base := absBase(baseDir)
	out := make([]string, 0, len(files))
	for _, f := range files {
		if f != "" {
			out = append(out, displayPath(f, base))
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
