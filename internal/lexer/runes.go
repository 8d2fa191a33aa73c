package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune декодирует руну под курсором; size 0 на EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	rest := lx.cursor.Rest()
	switch {
	case len(rest) == 0:
		return utf8.RuneError, 0
	case rest[0] < utf8.RuneSelf:
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

// bumpRune skips the rune under the cursor. Invalid UTF-8 advances one byte.
func (lx *Lexer) bumpRune() {
	if _, size := lx.peekRune(); size > 0 {
		lx.cursor.BumpN(uint32(size)) // #nosec G115 -- size <= utf8.UTFMax
	}
}

func isIdentStartByte(b byte) bool {
	return b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

// Non-ASCII identifiers follow unicode letters and digits.
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r)
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}
