package parser

import (
	"testing"

	"go.followtheprocess.codes/test"

	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/source"
)

func TestMacroNodesCarryExpansionContext(t *testing.T) {
	tree, fs := parseClean(t, `macro add_one($a) { $a + 1 }
fn f() { let y = add_one!(x); }`)
	stmts := fnBody(t, tree)
	init := stmtExpr(t, tree, stmts[0])
	bin, ok := tree.Exprs.Binary(init)
	test.True(t, ok, test.Context("init is %s", tree.Exprs.Kind(init)))

	ctxt := tree.Exprs.Span(init).Ctxt
	test.True(t, ctxt != source.RootContext, test.Context("binary span should come from the expansion"))
	test.Equal(t, tree.Exprs.Span(bin.Left).Ctxt, source.RootContext)
	test.Equal(t, tree.Exprs.Span(bin.Right).Ctxt, ctxt)
	test.Equal(t, bin.OpSpan.Ctxt, ctxt)

	data, ok := fs.Hygiene().Data(ctxt)
	test.True(t, ok)
	test.Equal(t, data.Name, "add_one")
	test.Equal(t, data.Kind, source.ExpnMacro)
	test.Equal(t, data.Parent, source.RootContext)
	test.Equal(t, spanText(t, fs, data.CallSite), "add_one!(x)")

	// текст токенов тела указывает в определение макроса
	test.Equal(t, spanText(t, fs, bin.OpSpan), "+")
	test.Equal(t, spanText(t, fs, tree.Exprs.Span(bin.Left)), "x")
}

func TestWithSpanLooksHandWritten(t *testing.T) {
	tree, fs := parseClean(t, "fn f() { let y = with_span!(z, a + b); }")
	init := stmtExpr(t, tree, fnBody(t, tree)[0])
	test.Equal(t, tree.Exprs.Kind(init), ast.ExprBinary)
	sp := tree.Exprs.Span(init)
	test.Equal(t, sp.Ctxt, source.RootContext)
	test.Equal(t, spanText(t, fs, sp), "z")
	test.Equal(t, fs.Hygiene().Len(), 1)
}

func TestStatementMacroExpandsToSeveralStatements(t *testing.T) {
	tree, _ := parseClean(t, `macro two() { let a = 1; let b = 2; }
fn f() { two!(); c; }`)
	stmts := fnBody(t, tree)
	test.Equal(t, len(stmts), 3)
	for _, s := range stmts[:2] {
		st := tree.Stmts.Get(s)
		test.Equal(t, st.Kind, ast.StmtLet)
		test.True(t, st.Span.Ctxt != source.RootContext)
	}
	test.Equal(t, tree.Stmts.Get(stmts[2]).Span.Ctxt, source.RootContext)
}

func TestStatementMacroTakesTrailingSemicolon(t *testing.T) {
	tree, _ := parseClean(t, `macro inc($x) { $x += 1 }
fn f() { inc!(n); inc!{n} }`)
	stmts := fnBody(t, tree)
	test.Equal(t, len(stmts), 2)
	first, ok := tree.Stmts.Expr(stmts[0])
	test.True(t, ok)
	test.True(t, first.Semi)
	second, ok := tree.Stmts.Expr(stmts[1])
	test.True(t, ok)
	test.True(t, !second.Semi)
}

func TestNestedExpansionsFormAChain(t *testing.T) {
	_, fs := parseClean(t, `macro inner($a) { $a * 2 }
macro outer($b) { inner!($b) + 1 }
fn f() { let y = outer!(x); }`)
	exp := fs.Hygiene()
	test.Equal(t, exp.Len(), 3)

	outer, _ := exp.Data(1)
	inner, _ := exp.Data(2)
	test.Equal(t, outer.Name, "outer")
	test.Equal(t, inner.Name, "inner")
	test.Equal(t, inner.Parent, source.ContextID(1))
	test.Equal(t, inner.Depth, uint32(2))
	test.True(t, exp.IsAncestor(1, 2))
}

func TestMacroMayBeCalledBeforeDefinition(t *testing.T) {
	tree, _ := parseClean(t, "fn f() { let y = id!(1); }\nmacro id($a) { $a }")
	lit, ok := tree.Exprs.Lit(stmtExpr(t, tree, fnBody(t, tree)[0]))
	test.True(t, ok)
	test.Equal(t, lit.Text, "1")
}

func TestItemMacro(t *testing.T) {
	tree, fs := parseClean(t, "macro mk($n) { fn $n() {} }\nmk!{ g }")
	test.Equal(t, len(tree.Root), 2)
	test.Equal(t, tree.Items.Get(tree.Root[0]).Kind, ast.ItemMacro)
	fn := tree.Items.Get(tree.Root[1])
	test.Equal(t, fn.Kind, ast.ItemFn)
	test.Equal(t, tree.Name(fn.Name), "g")
	test.Equal(t, fn.NameSpan.Ctxt, source.RootContext)
	test.True(t, fn.Span.Ctxt != source.RootContext)
	test.Equal(t, spanText(t, fs, fn.NameSpan), "g")
}

func TestExternMacroMarksContext(t *testing.T) {
	_, fs := parseClean(t, "extern macro ext($a) { $a }\nfn f() { let y = ext!(1 + 2); let z = ext!(w.len()); }")
	hyg := fs.Hygiene()
	test.Equal(t, hyg.Len(), 3)
	d, _ := hyg.Data(1)
	test.True(t, d.External)
}

func TestMacroErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unknown", "fn f() { nope!(1); }", diag.ExpUnknownMacro},
		{"arg count", "macro m($a) { $a }\nfn f() { m!(1, 2); }", diag.ExpArgCount},
		{"unknown metavar", "macro m($a) { $b }\nfn f() { m!(1); }", diag.ExpUnknownMetavar},
		{"nested definition", "macro m() { macro n() {} }\nm!{}", diag.ExpMacroInsideMacro},
		{"trailing tokens", "macro m() { 1 2 }\nfn f() { let x = m!(); }", diag.ExpTrailingTokens},
		{"recursion", "macro r() { r!() }\nfn f() { r!(); }", diag.ExpRecursionLimit},
		{"bad builtin", "fn f() { with_span!(a b, c); }", diag.ExpBadBuiltinArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, bag := parseSource(t, tt.src)
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					found = true
				}
			}
			test.True(t, found, test.Context("want %s, got %s", tt.code.ID(), diagnosticsSummary(bag)))
		})
	}
}

func TestExpansionLog(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("log.rl", []byte("macro m($a) { $a }\nfn f() { m!(1); m!(2); }"))
	res := ParseFile(fs, fs.Get(id), Options{})
	log := res.Expander.Expansions()
	test.Equal(t, len(log), 2)
	test.Equal(t, log[0].Macro, "m")
	test.Equal(t, log[1].Depth, uint32(1))
	test.Equal(t, res.Errors, uint(0))
}
