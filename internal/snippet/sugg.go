package snippet

import (
	"rillint/internal/ast"
	"rillint/internal/source"
)

// Sugg is expression text being assembled into a suggestion together with the
// precedence of its outermost operator.
type Sugg struct {
	Text string
	Prec ExprPosition
	// Unknown is set when Prec is a guess: some part of Text has a shape
	// PrecedenceOf does not know.
	Unknown bool
}

// Atom returns a suggestion that never needs parentheses.
func Atom(text string) Sugg { return Sugg{Text: text, Prec: PosPostfix} }

// SuggOf takes expr's text as seen from ctxt.
func SuggOf(fs *source.FileSet, tree *ast.Tree, expr ast.ExprID, ctxt source.ContextID, app *Applicability) Sugg {
	src, isMacroCall, ok := withContext(fs, tree.Exprs.Span(expr), ctxt, Placeholder, app)
	if !ok || isMacroCall {
		return Atom(src)
	}
	prec, known := PrecedenceOf(tree, expr)
	return Sugg{Text: src, Prec: prec, Unknown: !known}
}

// In returns the text ready to be placed at pos.
func (s Sugg) In(pos ExprPosition) string {
	if pos > s.Prec {
		return "(" + s.Text + ")"
	}
	return s.Text
}

func (s Sugg) String() string { return s.Text }

func (s Sugg) prefix(op string) Sugg {
	return Sugg{Text: op + s.In(PosPrefix), Prec: PosPrefix, Unknown: s.Unknown}
}

// Not negates a boolean suggestion: `!x`, `!(a && b)`.
func (s Sugg) Not() Sugg { return s.prefix("!") }

// Neg is arithmetic negation.
func (s Sugg) Neg() Sugg { return s.prefix("-") }

// Deref is `*s`.
func (s Sugg) Deref() Sugg { return s.prefix("*") }

// Addr is `&s`, or `&mut s` with mut.
func (s Sugg) Addr(mut bool) Sugg {
	if mut {
		return s.prefix("&mut ")
	}
	return s.prefix("&")
}

// Method appends a method call, parenthesizing the receiver as needed.
func (s Sugg) Method(call string) Sugg {
	return Sugg{Text: s.In(PosPostfix) + "." + call, Prec: PosPostfix, Unknown: s.Unknown}
}

// Binary joins lhs and rhs with op.
func Binary(op ast.BinaryOp, lhs, rhs Sugg) Sugg {
	pos := BinaryPosition(op)
	return Sugg{
		Text:    lhs.In(pos) + " " + op.String() + " " + rhs.In(pos+1),
		Prec:    pos,
		Unknown: lhs.Unknown || rhs.Unknown,
	}
}
