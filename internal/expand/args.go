package expand

import "rillint/internal/token"

// SplitArgs cuts tokens at top-level commas. A trailing comma does not open
// an extra argument and an empty list has no arguments.
func SplitArgs(toks []token.Token) [][]token.Token {
	if len(toks) == 0 {
		return nil
	}
	var (
		args  [][]token.Token
		depth int
		start int
	)
	for i, t := range toks {
		switch {
		case t.IsOpen():
			depth++
		case t.IsClose():
			if depth > 0 {
				depth--
			}
		case t.Kind == token.Comma && depth == 0:
			args = append(args, toks[start:i])
			start = i + 1
		}
	}
	if start < len(toks) {
		args = append(args, toks[start:])
	}
	return args
}

// MatchingClose returns the index of the delimiter closing toks[open].
func MatchingClose(toks []token.Token, open int) (int, bool) {
	if open >= len(toks) || !toks[open].IsOpen() {
		return 0, false
	}
	depth := 0
	for i := open; i < len(toks); i++ {
		switch {
		case toks[i].IsOpen():
			depth++
		case toks[i].IsClose():
			depth--
			if depth == 0 {
				return i, true
			}
		case toks[i].Kind == token.EOF:
			return 0, false
		}
	}
	return 0, false
}
