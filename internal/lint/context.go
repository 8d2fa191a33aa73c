package lint

import (
	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/fix"
	"rillint/internal/provenance"
	"rillint/internal/source"
	"rillint/internal/types"
)

// Context is what a check sees of the file under analysis.
type Context struct {
	FS       *source.FileSet
	Tree     *ast.Tree
	Types    *types.Info
	Parents  *ast.Parents
	Engine   *provenance.Engine
	Levels   *Levels
	Reporter diag.Reporter
}

// NewContext prepares the derived tables (types, parents, provenance) for tree.
func NewContext(fs *source.FileSet, tree *ast.Tree, levels *Levels, r diag.Reporter) *Context {
	return &Context{
		FS:       fs,
		Tree:     tree,
		Types:    types.Check(tree),
		Parents:  ast.BuildParents(tree),
		Engine:   provenance.New(fs, tree),
		Levels:   levels,
		Reporter: r,
	}
}

// Hygiene returns the expansion contexts of the file set.
func (cx *Context) Hygiene() *source.Hygiene {
	return cx.FS.Hygiene()
}

// Enabled reports whether lint emits anything at its current level.
func (cx *Context) Enabled(lint *Lint) bool {
	return cx.Levels.Of(lint) != Allow
}

// Report starts a diagnostic for lint. The builder is nil when the lint is
// allowed; ReportBuilder methods accept a nil receiver.
func (cx *Context) Report(lint *Lint, span source.Span, msg string) *diag.ReportBuilder {
	level := cx.Levels.Of(lint)
	if level == Allow {
		return nil
	}
	return diag.NewReportBuilder(cx.Reporter, level.Severity(), lint.Code, span, msg).WithLint(lint.Name)
}

// Suggestion is one replacement offered with a lint diagnostic.
type Suggestion struct {
	Title         string
	Span          source.Span
	Text          string
	Applicability diag.FixApplicability
}

// Suggest attaches suggestions to b in order. The first one is preferred.
func (cx *Context) Suggest(b *diag.ReportBuilder, lint *Lint, suggestions ...Suggestion) *diag.ReportBuilder {
	if b == nil {
		return nil
	}
	for i, s := range suggestions {
		old, _ := cx.FS.Text(s.Span)
		opts := []fix.Option{
			fix.WithApplicability(s.Applicability),
			fix.WithID(fix.MakeLintFixID(lint.Name, s.Span, i)),
		}
		if i == 0 {
			opts = append(opts, fix.Preferred())
		}
		b = b.WithFixSuggestion(fix.ReplaceSpan(s.Title, s.Span, s.Text, old, opts...))
	}
	return b
}

// Text returns the source under span, "" when unavailable.
func (cx *Context) Text(span source.Span) string {
	src, _ := cx.FS.Text(span)
	return src
}

// Name returns an interned identifier.
func (cx *Context) Name(id source.StringID) string {
	return cx.Tree.Name(id)
}
