package fix

import (
	"rillint/internal/diag"
	"rillint/internal/source"
)

// Option adjusts a fix after its edits are built.
type Option func(*diag.Fix)

// WithApplicability sets how far the fix can be trusted.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) { f.Applicability = app }
}

func WithKind(kind diag.FixKind) Option {
	return func(f *diag.Fix) { f.Kind = kind }
}

// Preferred marks the suggestion `fix --once` should pick first.
func Preferred() Option {
	return func(f *diag.Fix) { f.IsPreferred = true }
}

// WithID sets the identifier `fix --id` selects by.
func WithID(id string) Option {
	return func(f *diag.Fix) { f.ID = id }
}

// RequireAll marks a fix that must not be applied on its own.
func RequireAll() Option {
	return func(f *diag.Fix) { f.RequiresAll = true }
}

func build(title string, edits []diag.TextEdit, opts []Option) diag.Fix {
	f := diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         edits,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// ReplaceSpan rewrites the text under span. expect, when not empty, must
// still be there when the fix is applied.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) diag.Fix {
	return build(title, []diag.TextEdit{{Span: span, NewText: newText, OldText: expect}}, opts)
}

// InsertText inserts text at an empty span. guard is checked like expect in
// ReplaceSpan, so it is usually empty.
func InsertText(title string, at source.Span, text, guard string, opts ...Option) diag.Fix {
	return ReplaceSpan(title, at.ShrinkToStart(), text, guard, opts...)
}

// Edits builds a fix out of several edits applied together, for example
// removing a block and re-adding its body elsewhere.
func Edits(title string, edits []diag.TextEdit, opts ...Option) diag.Fix {
	return build(title, edits, opts)
}
