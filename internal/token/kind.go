package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Lifetime is a loop label such as 'outer.
	Lifetime

	KwFn       // fn
	KwLet      // let
	KwConst    // const
	KwMut      // mut
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwFor      // for
	KwIn       // in
	KwLoop     // loop
	KwMatch    // match
	KwBreak    // break
	KwContinue // continue
	KwReturn   // return
	KwAs       // as
	KwStruct   // struct
	KwEnum     // enum
	KwMacro    // macro
	KwExtern   // extern
	KwUnsafe   // unsafe
	KwTrue     // true
	KwFalse    // false

	// IntLit represents an integer literal, suffix included (35u8).
	IntLit
	// FloatLit represents a float literal, suffix included (1.5f32).
	FloatLit
	// StringLit represents "...".
	StringLit
	// RawStringLit represents r"..." and r#"..."#.
	RawStringLit
	// ByteStringLit represents b"..." and br"...".
	ByteStringLit
	// ByteLit represents b'x'.
	ByteLit
	// CharLit represents 'x'.
	CharLit

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Shl           // <<
	Shr           // >>
	Amp           // &
	Pipe          // |
	Caret         // ^
	AndAnd        // &&
	OrOr          // ||
	Question      // ?
	Colon         // :
	ColonColon    // ::
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	DotDot        // ..
	DotDotEq      // ..=
	Arrow         // ->
	FatArrow      // =>
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
	Dollar        // $
	Hash          // #
	Underscore    // _
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	Lifetime:      "Lifetime",
	KwFn:          "fn",
	KwLet:         "let",
	KwConst:       "const",
	KwMut:         "mut",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwFor:         "for",
	KwIn:          "in",
	KwLoop:        "loop",
	KwMatch:       "match",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwReturn:      "return",
	KwAs:          "as",
	KwStruct:      "struct",
	KwEnum:        "enum",
	KwMacro:       "macro",
	KwExtern:      "extern",
	KwUnsafe:      "unsafe",
	KwTrue:        "true",
	KwFalse:       "false",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	RawStringLit:  "RawStringLit",
	ByteStringLit: "ByteStringLit",
	ByteLit:       "ByteLit",
	CharLit:       "CharLit",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
	ShlAssign:     "<<=",
	ShrAssign:     ">>=",
	EqEq:          "==",
	Bang:          "!",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	Shl:           "<<",
	Shr:           ">>",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	AndAnd:        "&&",
	OrOr:          "||",
	Question:      "?",
	Colon:         ":",
	ColonColon:    "::",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	DotDot:        "..",
	DotDotEq:      "..=",
	Arrow:         "->",
	FatArrow:      "=>",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Dollar:        "$",
	Hash:          "#",
	Underscore:    "_",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
