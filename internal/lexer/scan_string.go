package lexer

import (
	"rillint/internal/diag"
	"rillint/internal/token"
)

// scanQuoted сканирует "..." / b"..." / b'.' после prefix байт префикса.
// Строки могут занимать несколько строк; escape-последовательности не валидируются.
func (lx *Lexer) scanQuoted(kind token.Kind, prefix uint32, quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(prefix + 1)
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch b {
		case quote:
			return lx.emit(kind, start)
		case '\\':
			lx.cursor.Bump()
		case '\n':
			if quote == '\'' {
				lx.cursor.Off--
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
				return lx.emit(token.Invalid, start)
			}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if quote == '\'' {
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	} else {
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	}
	return lx.emit(token.Invalid, start)
}

// rawStringAhead проверяет r"..." / r#"..."# начиная с off байт вперёд.
func (lx *Lexer) rawStringAhead(off uint32) bool {
	for lx.cursor.PeekAt(off) == '#' {
		off++
	}
	return lx.cursor.PeekAt(off) == '"'
}

func (lx *Lexer) scanRawString(kind token.Kind, prefix uint32) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(prefix)
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	lx.cursor.Bump() // '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			return lx.emit(kind, start)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string")
	return lx.emit(token.Invalid, start)
}

// scanCharOrLifetime отличает 'a' (символ) от 'a (метка цикла).
func (lx *Lexer) scanCharOrLifetime() token.Token {
	start := lx.cursor.Mark()
	next := lx.cursor.PeekAt(1)
	if next == '\\' {
		return lx.scanQuoted(token.CharLit, 0, '\'')
	}
	lx.cursor.Bump() // '\''
	r, sz := lx.peekRune()
	if sz == 0 {
		lx.errLex(diag.LexUnterminatedChar, lx.cursor.SpanFrom(start), "unterminated character literal")
		return lx.emit(token.Invalid, start)
	}
	afterOne := lx.cursor.Off + uint32(sz) // #nosec G115 -- sz <= 4
	if afterOne < lx.cursor.Limit && lx.file.Content[afterOne] == '\'' {
		lx.cursor.Off = afterOne + 1
		return lx.emit(token.CharLit, start)
	}
	if isIdentStartRune(r) {
		lx.bumpRune()
		lx.eatIdentContinue()
		return lx.emit(token.Lifetime, start)
	}
	lx.cursor.Reset(start)
	return lx.scanQuoted(token.CharLit, 0, '\'')
}
