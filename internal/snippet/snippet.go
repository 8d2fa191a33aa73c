// Package snippet turns spans back into source text fit for suggestions:
// it reindents blocks, walks expansion spans to the context a suggestion is
// written in, adds the parentheses a new position needs and tracks how much
// the result can be trusted.
package snippet

import (
	"fmt"
	"strings"
	"unicode"

	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/source"
)

// Applicability is the confidence in a suggestion.
type Applicability = diag.FixApplicability

const (
	AlwaysSafe         = diag.FixApplicabilityAlwaysSafe
	SafeWithHeuristics = diag.FixApplicabilitySafeWithHeuristics
	ManualReview       = diag.FixApplicabilityManualReview
	HasPlaceholders    = diag.FixApplicabilityHasPlaceholders
)

// Placeholder stands in for an expression whose text is unavailable.
const Placeholder = "(..)"

// Snippet returns the text under span, or def when it is unavailable.
func Snippet(fs *source.FileSet, span source.Span, def string) string {
	if src, ok := fs.Text(span); ok {
		return src
	}
	return def
}

// WithApplicability is Snippet that weakens *app: text from an expansion is
// at best ManualReview, and falling back to def leaves placeholders.
func WithApplicability(fs *source.FileSet, span source.Span, def string, app *Applicability) string {
	src, _ := withApplicability(fs, span, def, app)
	return src
}

func withApplicability(fs *source.FileSet, span source.Span, def string, app *Applicability) (string, bool) {
	if span.FromExpansion() {
		*app = app.Weaker(ManualReview)
	}
	src, ok := fs.Text(span)
	if !ok {
		if *app <= SafeWithHeuristics {
			*app = HasPlaceholders
		}
		return def, false
	}
	return src, true
}

// WithMacroCallsite returns the text of the outermost call site of span. Use
// it only when span cannot come from a macro argument.
func WithMacroCallsite(fs *source.FileSet, span source.Span, def string) string {
	return Snippet(fs, fs.Hygiene().SourceCallSite(span), def)
}

// WithContext walks span to outer before taking its text, so that a node
// expanded from `m!(x)` yields `m!(x)` rather than the expansion. When span
// cannot reach outer it came from a macro argument of a caller outside outer:
// the span is used as is and *app drops to ManualReview. The second result
// reports whether the text is a macro call.
func WithContext(fs *source.FileSet, span source.Span, outer source.ContextID, def string, app *Applicability) (string, bool) {
	src, isMacroCall, _ := withContext(fs, span, outer, def, app)
	return src, isMacroCall
}

func withContext(fs *source.FileSet, span source.Span, outer source.ContextID, def string, app *Applicability) (src string, isMacroCall, ok bool) {
	walked, reached := fs.Hygiene().WalkToContext(span, outer)
	if reached {
		isMacroCall = span.Ctxt != outer
		span = walked
	} else {
		*app = app.Weaker(ManualReview)
	}
	src, ok = withApplicability(fs, span, def, app)
	return src, isMacroCall, ok
}

// Indent returns the leading whitespace of span's line up to span.Start.
func Indent(fs *source.FileSet, span source.Span) (string, bool) {
	line, ok := fs.LineSpan(span)
	if !ok {
		return "", false
	}
	src, ok := fs.Text(line)
	if !ok {
		return "", false
	}
	return src[:len(src)-len(strings.TrimLeftFunc(src, unicode.IsSpace))], true
}

// Block returns the text of a block-like span with every line but the first
// reindented. With relativeTo set, the body lines up under the line of
// relativeTo; otherwise the least indented line goes to column zero.
func Block(fs *source.FileSet, span source.Span, def string, relativeTo *source.Span) string {
	return Reindent(Snippet(fs, span, def), true, indentOf(fs, relativeTo))
}

// BlockWithApplicability is Block with the rules of WithApplicability.
func BlockWithApplicability(fs *source.FileSet, span source.Span, def string, relativeTo *source.Span, app *Applicability) string {
	return Reindent(WithApplicability(fs, span, def, app), true, indentOf(fs, relativeTo))
}

func indentOf(fs *source.FileSet, span *source.Span) int {
	if span == nil {
		return 0
	}
	n, _ := fs.IndentOf(*span)
	return n
}

// ExprBlock renders expr as a block. Blocks keep their text (with extra
// appended), other expressions get wrapped in braces. Expressions from an
// expansion are replaced by their call site.
func ExprBlock(fs *source.FileSet, tree *ast.Tree, expr ast.ExprID, extra, def string, relativeTo *source.Span) string {
	span := tree.Exprs.Span(expr)
	code := Block(fs, span, def, relativeTo)
	switch {
	case span.FromExpansion():
		return fmt.Sprintf("{ %s }", WithMacroCallsite(fs, span, def))
	case tree.Exprs.Kind(expr) == ast.ExprBlock:
		return code + extra
	case extra == "":
		return fmt.Sprintf("{ %s }", code)
	}
	return fmt.Sprintf("{\n%s;\n%s\n}", code, extra)
}
