package config

import (
	"strings"

	"github.com/BurntSushi/toml"

	"rillint/internal/source"
)

// keyLine returns the 1-based line that defines key, 0 when not found.
// Dotted and inline forms are not tracked; they fall back to the file start.
func keyLine(text string, key toml.Key) int {
	if len(key) == 0 {
		return 0
	}
	table := strings.Join(key[:len(key)-1], ".")
	last := key[len(key)-1]
	cur := ""
	for i, line := range strings.Split(text, "\n") {
		t, _, _ := strings.Cut(line, "#")
		t = strings.TrimSpace(t)
		if strings.HasPrefix(t, "[") {
			cur = strings.TrimSpace(strings.Trim(t, "[]"))
			if len(key) == 1 && cur == last {
				return i + 1
			}
			continue
		}
		if cur != table {
			continue
		}
		name, _, ok := strings.Cut(t, "=")
		if ok && strings.Trim(strings.TrimSpace(name), `"'`) == last {
			return i + 1
		}
	}
	return 0
}

// lineSpan covers line of f without its newline; line 0 gives an empty
// span at the file start.
func lineSpan(f *source.File, id source.FileID, line int) source.Span {
	if line <= 0 {
		return source.Span{File: id}
	}
	var start, end uint32
	if line > 1 {
		if line-2 >= len(f.LineIdx) {
			return source.Span{File: id}
		}
		start = f.LineIdx[line-2] + 1
	}
	if line-1 < len(f.LineIdx) {
		end = f.LineIdx[line-1]
	} else {
		end = uint32(len(f.Content)) // #nosec G115 -- размер файла ограничен FileSet
	}
	return source.Span{File: id, Start: start, End: end}
}
