package provenance

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"rillint/internal/scanner"
)

// ElseGap decides whether the text between the end of a then-block and the
// start of its else branch (`else` keyword included) hides the else. isBlock
// is true for `else {`, false for `else if`. It fires on:
//   - a blank line before the `else` or between the `else` and its branch;
//   - a block comment spanning or following a line break that runs straight
//     into the `else` or the branch;
//   - `else` and its branch on separate lines, unless the `else` itself
//     starts a line before a block (Allman braces) or the lines in between
//     hold only block comments (a formatter splits `else/*c*/if` that way).
//
// Any token other than whitespace, comments and the `else` keyword makes the
// shape untrusted and ElseGap returns false.
func ElseGap(src string, isBlock bool) bool {
	sc := scanner.New(src)
	lf := 0
	skipLF := false
	addLF := func(text string) {
		if n := scanner.CountNewlines(text); n != 0 {
			if skipLF {
				n--
				skipLF = false
			}
			lf += n
		}
	}

scanElse:
	for {
		tok, ok := sc.Next()
		if !ok {
			return false
		}
		switch {
		case tok.Kind == scanner.Whitespace:
			addLF(tok.Text)
		case tok.Kind == scanner.LineComment:
			skipLF = lf != 0
		case tok.Kind == scanner.BlockComment:
			if lf == 0 && strings.Contains(tok.Text, "\n") {
				lf = 1
			}
			skipLF = lf != 0
		case tok.Kind == scanner.Ident && tok.Text == "else":
			if skipLF || lf > 1 {
				return true
			}
			break scanElse
		default:
			return false
		}
	}

	allowLF := isBlock && lf != 0
	skipLF = false
	lf = 0
	for {
		tok, ok := sc.Next()
		if !ok {
			break
		}
		switch tok.Kind {
		case scanner.Whitespace:
			addLF(tok.Text)
		case scanner.BlockComment:
			skipLF = lf != 0
			allowLF = allowLF || skipLF
		case scanner.LineComment:
			return true
		default:
			return false
		}
	}
	limit := 0
	if allowLF {
		limit = 1
	}
	return skipLF || lf > limit
}

// SameLineGap reports whether src is whitespace that does not break the line,
// as between `}` and `{` in `if c {} {}`. Empty text qualifies.
func SameLineGap(src string) bool {
	for _, r := range src {
		if r == '\n' || !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// OpGlued reports whether src starts with first immediately followed by
// second and then whitespace: `=- 35` for ("=", "-").
func OpGlued(src, first, second string) bool {
	rest, ok := strings.CutPrefix(src, first)
	if !ok {
		return false
	}
	rest, ok = strings.CutPrefix(rest, second)
	if !ok {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsSpace(r)
}

// UnaryLikeBinary reports whether the binary operator op found at byte start
// of src is formatted like a unary one: whitespace before it, its operand
// glued after it (`a -b`). A following '/' (a comment) does not count as the
// operand. src is cut at its end by the caller.
func UnaryLikeBinary(src string, start int, op string) bool {
	if start <= 0 || start > len(src) {
		return false
	}
	pre, rest := src[:start], src[start:]
	stripped, ok := strings.CutPrefix(rest, op)
	if !ok {
		return false
	}
	r, size := utf8.DecodeRuneInString(stripped)
	if size == 0 || unicode.IsSpace(r) || r == '/' {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(pre)
	return unicode.IsSpace(last)
}
