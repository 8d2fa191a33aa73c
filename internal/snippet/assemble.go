package snippet

import (
	"strings"

	"rillint/internal/source"
)

// Hint describes where a replacement comes from and where it goes. The zero
// Hint is a hand-made, always safe replacement put in a slot that needs no
// parentheses.
type Hint struct {
	// Applicability is the starting confidence; it only ever weakens.
	Applicability Applicability
	// Position is the slot the replacement lands in.
	Position ExprPosition
	// Prec is the precedence of the replacement's outermost operator. Zero
	// (PosParen) means the replacement is never parenthesized.
	Prec ExprPosition
	// From is the span the replacement text was taken from, if any.
	From source.Span
	// Generated marks text whose node the provenance engine flagged.
	Generated bool
	// Placeholders marks text holding Placeholder or similar stand-ins.
	Placeholders bool
	// UnknownPrec marks a Prec that is only a guess. Such a replacement is
	// not parenthesized and can only be reviewed by hand.
	UnknownPrec bool
}

// AssembleSuggestion finishes replacement for target: it wraps it in
// parentheses when Prec binds looser than Position, reindents a multi-line
// replacement to the line of target and computes the final applicability.
// Text copied across expansion contexts, from flagged nodes or into an
// expansion can only be reviewed by hand, and so can text whose precedence
// is a guess.
func AssembleSuggestion(fs *source.FileSet, target source.Span, replacement string, hint Hint) (string, Applicability) {
	app := hint.Applicability
	if hint.Generated || target.FromExpansion() {
		app = app.Weaker(ManualReview)
	}
	if hint.From != (source.Span{}) && hint.From.Ctxt != target.Ctxt {
		app = app.Weaker(ManualReview)
	}
	if hint.Placeholders || strings.Contains(replacement, Placeholder) {
		app = app.Weaker(HasPlaceholders)
	}

	if hint.UnknownPrec {
		app = app.Weaker(ManualReview)
	} else if hint.Prec != PosParen && hint.Position > hint.Prec {
		replacement = "(" + replacement + ")"
	}
	if strings.Contains(replacement, "\n") {
		indent, ok := fs.IndentOf(target)
		if !ok {
			app = app.Weaker(ManualReview)
		}
		replacement = Reindent(replacement, true, indent)
	}
	return replacement, app
}
