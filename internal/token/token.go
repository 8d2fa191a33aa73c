package token

import (
	"rillint/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, char or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, RawStringLit, ByteStringLit, ByteLit, CharLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= Underscore
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFn && t.Kind <= KwFalse
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsOpen reports whether the token opens a delimited group.
func (t Token) IsOpen() bool {
	return t.Kind == LParen || t.Kind == LBracket || t.Kind == LBrace
}

// IsClose reports whether the token closes a delimited group.
func (t Token) IsClose() bool {
	return t.Kind == RParen || t.Kind == RBracket || t.Kind == RBrace
}

// Closer returns the kind that closes an opening delimiter.
func Closer(open Kind) Kind {
	switch open {
	case LParen:
		return RParen
	case LBracket:
		return RBracket
	case LBrace:
		return RBrace
	default:
		return Invalid
	}
}

// HasNewlineBefore reports whether any leading trivia contains a line break.
func (t Token) HasNewlineBefore() bool {
	for _, tv := range t.Leading {
		switch tv.Kind {
		case TriviaNewline:
			return true
		case TriviaBlockComment:
			for i := 0; i < len(tv.Text); i++ {
				if tv.Text[i] == '\n' {
					return true
				}
			}
		}
	}
	return false
}
