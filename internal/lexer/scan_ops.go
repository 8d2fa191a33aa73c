package lexer

import (
	"rillint/internal/diag"
	"rillint/internal/token"
)

type punct struct {
	text string
	kind token.Kind
}

// multiPunct is tried in order, so longer spellings come before their
// prefixes. `=-`, `=!` and `=*` are never glued: they are Assign followed by
// a unary operator, which suspicious_assignment_formatting looks at.
var multiPunct = []punct{
	{"..=", token.DotDotEq},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"..", token.DotDot},
	{"::", token.ColonColon},
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
}

var singlePunct = [utf8RuneSelf]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'?': token.Question,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'$': token.Dollar,
	'#': token.Hash,
	'_': token.Underscore,
}

// scanOperatorOrPunct takes the longest punctuation at the cursor. Anything
// else is one unknown character, consumed as a whole rune.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, p := range multiPunct {
		if lx.cursor.EatPrefix(p.text) {
			return lx.emit(p.kind, start)
		}
	}

	if ch := lx.cursor.Peek(); ch < utf8RuneSelf && singlePunct[ch] != token.Invalid {
		lx.cursor.Bump()
		return lx.emit(singlePunct[ch], start)
	}

	lx.bumpRune()
	if lx.cursor.Off == uint32(start) {
		lx.cursor.Bump()
	}
	lx.errLex(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "unknown character")
	return lx.emit(token.Invalid, start)
}
