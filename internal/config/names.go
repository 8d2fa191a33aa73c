package config

import (
	"strings"

	"rillint/internal/lint"
)

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

// resolve expands "all", a group name or a lint name.
func resolve(reg *lint.Registry, name string) ([]*lint.Lint, bool) {
	name = normalize(name)
	if name == "all" {
		return reg.Lints(), true
	}
	if l, ok := reg.Lookup(name); ok {
		return []*lint.Lint{l}, true
	}
	var out []*lint.Lint
	for _, l := range reg.Lints() {
		if string(l.Group) == name {
			out = append(out, l)
		}
	}
	return out, len(out) > 0
}

func specificity(reg *lint.Registry, name string) int {
	name = normalize(name)
	switch {
	case name == "all":
		return 0
	case isLint(reg, name):
		return 2
	}
	return 1
}

func isLint(reg *lint.Registry, name string) bool {
	_, ok := reg.Lookup(name)
	return ok
}

// closest returns the registered lint nearest to name by edit distance, or
// "" when nothing is close.
func closest(reg *lint.Registry, name string) string {
	name = normalize(name)
	best, bestDist := "", len(name)/3+1
	for _, l := range reg.Lints() {
		if d := distance(name, l.Name); d < bestDist {
			best, bestDist = l.Name, d
		}
	}
	return best
}

// distance is the Levenshtein distance over bytes.
func distance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
