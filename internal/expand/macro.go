package expand

import (
	"rillint/internal/source"
	"rillint/internal/token"
)

// MaxDepth bounds nested expansions.
const MaxDepth = 64

// MaxTokens bounds the tokens all expansions of one file may produce.
// A macro that repeats its argument in a recursive call grows
// exponentially long before it gets deep.
const MaxTokens = 1 << 16

// BuiltinWithSpan names the builtin that re-spans tokens to a given token.
const BuiltinWithSpan = "with_span"

// Macro is one template definition.
type Macro struct {
	Name     string
	NameSpan source.Span
	Params   []string
	// Body holds the tokens between the outer braces.
	Body     []token.Token
	BodySpan source.Span
	External bool
}

func (m *Macro) paramIndex(name string) int {
	for i, p := range m.Params {
		if p == name {
			return i
		}
	}
	return -1
}

// Call is one invocation `name!(...)`, `name![...]` or `name!{...}`.
type Call struct {
	Name  token.Token
	Open  token.Token
	Close token.Token
	// Inner holds the tokens between the delimiters.
	Inner []token.Token
}

// Span covers the invocation in the context of its name token.
func (c Call) Span() source.Span {
	sp := c.Name.Span
	if c.Close.Span.File == sp.File && c.Close.Span.End >= sp.Start {
		sp.End = c.Close.Span.End
	}
	return sp
}

// Expansion records one successful expansion.
type Expansion struct {
	Ctxt     source.ContextID
	Macro    string
	CallSite source.Span
	Depth    uint32
	Tokens   []token.Token
}
