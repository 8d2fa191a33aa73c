package lexer

import (
	"rillint/internal/diag"
	"rillint/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 1.0, 1e-3, 1.0e+10 и суффиксы (35u8, 1.5f32, 3isize).
// Суффикс остаётся частью Token.Text; тип по нему определяет пакет types.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			lx.cursor.BumpN(2)
			lx.eatDigits(func(b byte) bool { return b == '0' || b == '1' })
			return lx.finishNumber(start, kind)
		case 'o', 'O':
			lx.cursor.BumpN(2)
			lx.eatDigits(func(b byte) bool { return b >= '0' && b <= '7' })
			return lx.finishNumber(start, kind)
		case 'x', 'X':
			lx.cursor.BumpN(2)
			lx.eatDigits(isHex)
			return lx.finishNumber(start, kind)
		}
	}

	lx.eatDigits(isDec)

	// дробная часть: "1.5", "1." — но не "1..2" и не "1.max()"
	if lx.cursor.Peek() == '.' {
		next := lx.cursor.PeekAt(1)
		switch {
		case isDec(next):
			lx.cursor.Bump()
			lx.eatDigits(isDec)
			kind = token.FloatLit
		case next == '.' || isIdentStartByte(next) || next >= utf8RuneSelf:
		default:
			lx.cursor.Bump()
			kind = token.FloatLit
			return lx.emit(kind, start)
		}
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		sign := lx.cursor.PeekAt(1)
		digits := isDec(sign) || ((sign == '+' || sign == '-') && isDec(lx.cursor.PeekAt(2)))
		if digits {
			lx.cursor.Bump()
			if sign == '+' || sign == '-' {
				lx.cursor.Bump()
			}
			lx.eatDigits(isDec)
			kind = token.FloatLit
		} else if sign == '+' || sign == '-' {
			lx.cursor.BumpN(2)
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return lx.emit(token.Invalid, start)
		}
	}
	return lx.finishNumber(start, kind)
}

// finishNumber съедает суффикс и уточняет вид литерала по нему.
func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	suffixStart := lx.cursor.Off
	if isIdentStartByte(lx.cursor.Peek()) {
		lx.eatIdentContinue()
	}
	suffix := string(lx.file.Content[suffixStart:lx.cursor.Off])
	if suffix == "f32" || suffix == "f64" {
		kind = token.FloatLit
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) eatDigits(ok func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if lx.cursor.EOF() || (b != '_' && !ok(b)) {
			return
		}
		lx.cursor.Bump()
	}
}
