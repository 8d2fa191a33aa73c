package snippet

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reindent shifts a multi-line snippet so that its least indented line starts
// at column indent. Empty lines are kept as they are; with ignoreFirst the
// first line is neither measured nor moved (it usually continues a line of
// the caller). Space and tab indentation are normalised in separate passes,
// so a snippet mixing both keeps its relative layout.
func Reindent(s string, ignoreFirst bool, indent int) string {
	s = reindentWith(s, ignoreFirst, indent, ' ')
	s = reindentWith(s, ignoreFirst, indent, '\t')
	return reindentWith(s, ignoreFirst, indent, ' ')
}

func reindentWith(s string, ignoreFirst bool, indent int, ch byte) string {
	ls := lines(s)
	minIndent := -1
	for i, l := range ls {
		if (ignoreFirst && i == 0) || l == "" {
			continue
		}
		n := 0
		for n < len(l) && l[n] == ch {
			n++
		}
		if minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}
	minIndent = max(minIndent, 0)

	out := make([]string, len(ls))
	for i, l := range ls {
		switch {
		case (ignoreFirst && i == 0) || l == "":
			out[i] = l
		case minIndent > indent:
			out[i] = l[minIndent-indent:]
		default:
			out[i] = strings.Repeat(" ", indent-minIndent) + l
		}
	}
	return strings.Join(out, "\n")
}

// lines splits s at '\n', dropping a trailing '\r' from each line and the
// empty line after a final newline.
func lines(s string) []string {
	if s == "" {
		return nil
	}
	ls := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range ls {
		ls[i] = strings.TrimSuffix(l, "\r")
	}
	return ls
}

// WithoutBlockComments drops every line that opens or closes a block comment
// together with the lines between them. Nesting is counted per line, so a
// line holding a whole `/* ... */` opens a comment that never closes.
func WithoutBlockComments(ls []string) []string {
	var out []string
	nest := 0
	for _, l := range ls {
		if strings.Contains(l, "/*") {
			nest++
			continue
		} else if strings.Contains(l, "*/") {
			nest--
			continue
		}
		if nest == 0 {
			out = append(out, l)
		}
	}
	return out
}

// PositionBeforeRarrow returns the byte offset just past the last
// non-blank character before the final `->` in s:
//
//	fn into(self) -> () {}
//	             ^
func PositionBeforeRarrow(s string) (int, bool) {
	pos := strings.LastIndex(s, "->")
	if pos < 0 {
		return 0, false
	}
	for pos > 1 {
		r, size := utf8.DecodeLastRuneInString(s[:pos])
		if !unicode.IsSpace(r) {
			break
		}
		pos -= size
	}
	return pos, true
}
