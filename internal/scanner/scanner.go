// Package scanner splits raw source text into a lossless stream of coarse
// tokens. Whitespace and comments are tokens like any other, so callers can
// count line breaks and spot comments between two constructs. The scanner
// never fails: malformed input degrades into tokens that run to the end of
// the text.
package scanner

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a raw token.
type Kind uint8

const (
	Whitespace Kind = iota
	LineComment
	BlockComment
	Ident
	// Lifetime is a label such as 'outer.
	Lifetime
	// Literal covers numbers, strings and chars, including raw and byte forms.
	Literal
	// Punct is a single punctuation character.
	Punct
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "Whitespace"
	case LineComment:
		return "LineComment"
	case BlockComment:
		return "BlockComment"
	case Ident:
		return "Ident"
	case Lifetime:
		return "Lifetime"
	case Literal:
		return "Literal"
	case Punct:
		return "Punct"
	default:
		return "Unknown"
	}
}

// Token is one raw token with its text and byte offset in the scanned string.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %d %q", t.Kind, t.Offset, t.Text)
}

// Scanner is a restartable cursor over a string.
type Scanner struct {
	src string
	off int
}

// New returns a scanner positioned at the start of src.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

// Reset rewinds the scanner to the start of its input.
func (s *Scanner) Reset() {
	s.off = 0
}

// Next returns the next token; ok is false once the input is exhausted.
func (s *Scanner) Next() (tok Token, ok bool) {
	if s.off >= len(s.src) {
		return Token{}, false
	}
	start := s.off
	kind := s.scan()
	if s.off <= start {
		// на всякий случай: продвигаемся хотя бы на одну руну
		_, size := utf8.DecodeRuneInString(s.src[start:])
		s.off = start + size
	}
	return Token{Kind: kind, Text: s.src[start:s.off], Offset: start}, true
}

// Tokens yields (kind, text) pairs of src lazily.
func Tokens(src string) iter.Seq2[Kind, string] {
	return func(yield func(Kind, string) bool) {
		sc := New(src)
		for {
			tok, ok := sc.Next()
			if !ok || !yield(tok.Kind, tok.Text) {
				return
			}
		}
	}
}

// TokensWithOffsets yields tokens together with their starting byte offsets.
func TokensWithOffsets(src string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		sc := New(src)
		for {
			tok, ok := sc.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// CountNewlines returns the number of '\n' bytes in text.
func CountNewlines(text string) int {
	return strings.Count(text, "\n")
}

// HasIdent reports whether src contains at least one identifier token.
func HasIdent(src string) bool {
	for kind := range Tokens(src) {
		if kind == Ident {
			return true
		}
	}
	return false
}

func (s *Scanner) peek() byte {
	if s.off >= len(s.src) {
		return 0
	}
	return s.src[s.off]
}

func (s *Scanner) peekAt(n int) byte {
	if s.off+n >= len(s.src) {
		return 0
	}
	return s.src[s.off+n]
}

func (s *Scanner) peekRune() (rune, int) {
	if s.off >= len(s.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.src[s.off:])
}

func (s *Scanner) scan() Kind {
	r, size := s.peekRune()
	switch {
	case unicode.IsSpace(r):
		for s.off < len(s.src) {
			r, size := s.peekRune()
			if !unicode.IsSpace(r) {
				break
			}
			s.off += size
		}
		return Whitespace
	case r == '/' && s.peekAt(1) == '/':
		if i := strings.IndexByte(s.src[s.off:], '\n'); i >= 0 {
			s.off += i
		} else {
			s.off = len(s.src)
		}
		return LineComment
	case r == '/' && s.peekAt(1) == '*':
		s.scanBlockComment()
		return BlockComment
	case r == 'r' && (s.peekAt(1) == '"' || (s.peekAt(1) == '#' && s.rawHashesThenQuote(1))):
		s.off++
		s.scanRawString()
		return Literal
	case r == 'b' && s.peekAt(1) == 'r' && (s.peekAt(2) == '"' || s.peekAt(2) == '#'):
		s.off += 2
		s.scanRawString()
		return Literal
	case r == 'b' && s.peekAt(1) == '"':
		s.off++
		s.scanQuoted('"')
		return Literal
	case r == 'b' && s.peekAt(1) == '\'':
		s.off++
		s.scanQuoted('\'')
		return Literal
	case isIdentStart(r):
		s.off += size
		s.eatIdentContinue()
		return Ident
	case r >= '0' && r <= '9':
		s.scanNumber()
		return Literal
	case r == '"':
		s.scanQuoted('"')
		return Literal
	case r == '\'':
		return s.scanQuoteOrLifetime()
	case r < utf8.RuneSelf && (unicode.IsPunct(r) || unicode.IsSymbol(r)):
		s.off++
		return Punct
	default:
		s.off += size
		return Unknown
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *Scanner) eatIdentContinue() {
	for s.off < len(s.src) {
		r, size := s.peekRune()
		if !isIdentContinue(r) {
			return
		}
		s.off += size
	}
}

// scanBlockComment поддерживает вложенность; незакрытый комментарий идёт до EOF.
func (s *Scanner) scanBlockComment() {
	s.off += 2
	depth := 1
	for s.off < len(s.src) && depth > 0 {
		switch {
		case s.peek() == '/' && s.peekAt(1) == '*':
			s.off += 2
			depth++
		case s.peek() == '*' && s.peekAt(1) == '/':
			s.off += 2
			depth--
		default:
			s.off++
		}
	}
}

func (s *Scanner) rawHashesThenQuote(from int) bool {
	i := s.off + from
	for i < len(s.src) && s.src[i] == '#' {
		i++
	}
	return i < len(s.src) && s.src[i] == '"'
}

// scanRawString ожидает курсор на '#' или '"' после префикса r/br.
func (s *Scanner) scanRawString() {
	hashes := 0
	for s.peek() == '#' {
		hashes++
		s.off++
	}
	if s.peek() != '"' {
		return
	}
	s.off++
	closing := "\"" + strings.Repeat("#", hashes)
	if i := strings.Index(s.src[s.off:], closing); i >= 0 {
		s.off += i + len(closing)
		return
	}
	s.off = len(s.src)
}

// scanQuoted читает строку или символ с экранированием; без закрывающей кавычки — до EOF.
func (s *Scanner) scanQuoted(quote byte) {
	s.off++
	for s.off < len(s.src) {
		switch s.src[s.off] {
		case '\\':
			s.off += 2
		case quote:
			s.off++
			return
		default:
			s.off++
		}
	}
	s.off = len(s.src)
}

// scanQuoteOrLifetime различает 'a' (символ) и 'a (метка).
func (s *Scanner) scanQuoteOrLifetime() Kind {
	start := s.off
	s.off++ // '
	r, size := s.peekRune()
	switch {
	case r == '\\':
		s.off = start
		s.scanQuoted('\'')
		return Literal
	case size > 0 && s.off+size < len(s.src) && s.src[s.off+size] == '\'':
		s.off += size + 1
		return Literal
	case isIdentStart(r):
		s.off += size
		s.eatIdentContinue()
		return Lifetime
	default:
		return Punct
	}
}

func (s *Scanner) scanNumber() {
	if s.peek() == '0' && (s.peekAt(1) == 'x' || s.peekAt(1) == 'o' || s.peekAt(1) == 'b') {
		s.off += 2
		for isHexDigit(s.peek()) || s.peek() == '_' {
			s.off++
		}
		s.eatIdentContinue()
		return
	}
	s.eatDigits()
	// дробная часть: "1.5", но не "1..2" и не "1.foo"
	if s.peek() == '.' && s.peekAt(1) >= '0' && s.peekAt(1) <= '9' {
		s.off++
		s.eatDigits()
	}
	if s.peek() == 'e' || s.peek() == 'E' {
		next := s.peekAt(1)
		if next >= '0' && next <= '9' || (next == '+' || next == '-') && s.peekAt(2) >= '0' && s.peekAt(2) <= '9' {
			s.off += 2
			s.eatDigits()
		}
	}
	// суффикс: u32, f64, usize ...
	s.eatIdentContinue()
}

func (s *Scanner) eatDigits() {
	for {
		b := s.peek()
		if (b < '0' || b > '9') && b != '_' {
			return
		}
		s.off++
	}
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}
