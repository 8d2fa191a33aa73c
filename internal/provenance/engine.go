package provenance

import (
	"rillint/internal/ast"
	"rillint/internal/source"
)

// Engine answers provenance questions about the nodes of one tree.
type Engine struct {
	FS   *source.FileSet
	Tree *ast.Tree
}

// New returns an engine over tree, whose files are held by fs.
func New(fs *source.FileSet, tree *ast.Tree) *Engine {
	return &Engine{FS: fs, Tree: tree}
}

// IsExpansionGenerated reports whether expr may have been produced by an
// expansion: its span carries an expansion context, its text does not fit its
// shape, or the text is unavailable. Zero-length spans count as generated.
func (e *Engine) IsExpansionGenerated(expr ast.ExprID) bool {
	start, end := ExprPattern(e.Tree, expr)
	return e.generated(e.Tree.Exprs.Span(expr), start, end)
}

// IsItemGenerated is IsExpansionGenerated for items.
func (e *Engine) IsItemGenerated(item ast.ItemID) bool {
	it := e.Tree.Items.Get(item)
	if it == nil {
		return true
	}
	start, end := ItemPattern(e.Tree, item)
	return e.generated(it.Span, start, end)
}

// IsTypeGenerated is IsExpansionGenerated for written types.
func (e *Engine) IsTypeGenerated(typ ast.TypeID) bool {
	t := e.Tree.Types.Get(typ)
	if t == nil {
		return true
	}
	start, end := TypePattern(e.Tree, typ)
	return e.generated(t.Span, start, end)
}

// IsPatGenerated is IsExpansionGenerated for binding patterns.
func (e *Engine) IsPatGenerated(pat ast.PatID) bool {
	p := e.Tree.Pats.Get(pat)
	if p == nil {
		return true
	}
	start, end := PatPattern(e.Tree, pat)
	return e.generated(p.Span, start, end)
}

func (e *Engine) generated(span source.Span, start, end Pat) bool {
	if span.FromExpansion() || span.Empty() {
		return true
	}
	return !SpanMatchesPattern(e.FS, span, start, end)
}

// IsSpanMatch reports whether span really covers a `match` expression.
func (e *Engine) IsSpanMatch(span source.Span) bool {
	return SpanMatchesPattern(e.FS, span, Str("match"), Str("}"))
}

// IsSpanIf reports whether span really covers an `if` expression.
func (e *Engine) IsSpanIf(span source.Span) bool {
	return SpanMatchesPattern(e.FS, span, Str("if"), Str("}"))
}
