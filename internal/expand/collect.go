package expand

import (
	"rillint/internal/token"
)

// Collect registers every top-level macro definition of toks so calls may
// precede definitions. Malformed headers are skipped; the parser reports
// them when it reaches the item.
func (e *Expander) Collect(toks []token.Token) {
	depth := 0
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.IsOpen():
			depth++
			continue
		case t.IsClose():
			depth--
			continue
		}
		if depth != 0 || t.Kind != token.KwMacro {
			continue
		}
		m, next, ok := ParseDefinition(toks, i)
		if !ok {
			continue
		}
		if i > 0 && toks[i-1].Kind == token.KwExtern {
			m.External = true
		}
		e.Define(m)
		i = next - 1
	}
}

// ParseDefinition reads `macro name($a, ...) { body }` starting at the
// `macro` keyword and returns the index after the closing brace.
func ParseDefinition(toks []token.Token, at int) (*Macro, int, bool) {
	i := at + 1
	if i >= len(toks) || toks[i].Kind != token.Ident {
		return nil, 0, false
	}
	m := &Macro{Name: toks[i].Text, NameSpan: toks[i].Span}
	i++
	if i >= len(toks) || toks[i].Kind != token.LParen {
		return nil, 0, false
	}
	i++
	for i < len(toks) && toks[i].Kind != token.RParen {
		if toks[i].Kind != token.Dollar || i+1 >= len(toks) || toks[i+1].Kind != token.Ident {
			return nil, 0, false
		}
		m.Params = append(m.Params, toks[i+1].Text)
		i += 2
		if i < len(toks) && toks[i].Kind == token.Comma {
			i++
		}
	}
	if i >= len(toks) {
		return nil, 0, false
	}
	i++
	closeIdx, ok := MatchingClose(toks, i)
	if !ok || toks[i].Kind != token.LBrace {
		return nil, 0, false
	}
	m.Body = toks[i+1 : closeIdx]
	m.BodySpan = toks[i].Span.Cover(toks[closeIdx].Span)
	return m, closeIdx + 1, true
}
