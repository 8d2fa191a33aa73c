package testkit

import (
	"testing"

	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/parser"
	"rillint/internal/source"
)

// Parsed bundles what a test needs after parsing one virtual file.
type Parsed struct {
	FS   *source.FileSet
	File *source.File
	Tree *ast.Tree
	Bag  *diag.Bag
}

// Parse parses src as "test.rl" and collects every diagnostic.
func Parse(t testing.TB, src string) Parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rl", []byte(src))
	bag := diag.NewBag(100)
	res := parser.ParseFile(fs, fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return Parsed{FS: fs, File: fs.Get(id), Tree: res.Tree, Bag: bag}
}

// ParseClean is Parse that fails the test on any diagnostic.
func ParseClean(t testing.TB, src string) Parsed {
	t.Helper()
	p := Parse(t, src)
	if p.Bag.Len() != 0 {
		for _, d := range p.Bag.Items() {
			t.Errorf("[%s] %s", d.Code.ID(), d.Message)
		}
		t.FailNow()
	}
	return p
}

// Exprs returns every expression of the tree in source order.
func (p Parsed) Exprs() []ast.ExprID {
	var out []ast.ExprID
	p.Tree.Inspect(func(n ast.Node) bool {
		if id, ok := n.Expr(); ok {
			out = append(out, id)
		}
		return true
	})
	return out
}

// FindExpr returns the first root-context expression whose text is text.
func (p Parsed) FindExpr(t testing.TB, text string) ast.ExprID {
	t.Helper()
	for _, id := range p.Exprs() {
		sp := p.Tree.Exprs.Span(id)
		if sp.Ctxt != source.RootContext {
			continue
		}
		if got, ok := p.FS.Text(sp); ok && got == text {
			return id
		}
	}
	t.Fatalf("no expression %q", text)
	return ast.NoExprID
}

// Text returns the source under span or fails the test.
func (p Parsed) Text(t testing.TB, span source.Span) string {
	t.Helper()
	src, ok := p.FS.Text(span)
	if !ok {
		t.Fatalf("no text for %v", span)
	}
	return src
}
