package snippet_test

import (
	"testing"

	"go.followtheprocess.codes/test"

	"rillint/internal/ast"
	"rillint/internal/snippet"
	"rillint/internal/source"
	"rillint/internal/testkit"
)

const macroSrc = `macro double($a) { $a * 2 }
fn f(x: u8) { let y = double!(x); }`

// product returns the `$a * 2` node of the expansion.
func product(t *testing.T, p testkit.Parsed) ast.ExprID {
	t.Helper()
	for _, id := range p.Exprs() {
		if b, ok := p.Tree.Exprs.Binary(id); ok && b.Op == ast.BinMul {
			return id
		}
	}
	t.Fatalf("no product in the expansion")
	return ast.NoExprID
}

func TestSnippetFallsBackToDefault(t *testing.T) {
	p := testkit.ParseClean(t, "fn f() { x; }")
	span := p.Tree.Exprs.Span(p.FindExpr(t, "x"))
	test.Equal(t, snippet.Snippet(p.FS, span, ".."), "x")

	span.File = 42
	test.Equal(t, snippet.Snippet(p.FS, span, ".."), "..")

	app := snippet.AlwaysSafe
	test.Equal(t, snippet.WithApplicability(p.FS, span, "..", &app), "..")
	test.Equal(t, app, snippet.HasPlaceholders)

	app = snippet.ManualReview
	snippet.WithApplicability(p.FS, span, "..", &app)
	test.Equal(t, app, snippet.ManualReview)
}

func TestWithApplicabilityDowngradesExpansions(t *testing.T) {
	p := testkit.ParseClean(t, macroSrc)
	span := p.Tree.Exprs.Span(product(t, p))

	app := snippet.AlwaysSafe
	// узел выражения из раскрытия получает span своего последнего токена
	test.Equal(t, snippet.WithApplicability(p.FS, span, "..", &app), "2")
	test.Equal(t, app, snippet.ManualReview)
	test.Equal(t, snippet.WithMacroCallsite(p.FS, span, ".."), "double!(x)")
}

func TestWithContextReturnsTheMacroCall(t *testing.T) {
	p := testkit.ParseClean(t, macroSrc)
	span := p.Tree.Exprs.Span(product(t, p))

	app := snippet.AlwaysSafe
	src, isMacroCall := snippet.WithContext(p.FS, span, source.RootContext, "..", &app)
	test.Equal(t, src, "double!(x)")
	test.True(t, isMacroCall)
	test.Equal(t, app, snippet.AlwaysSafe)

	// аргумент уже в корневом контексте
	arg := p.Tree.Exprs.Span(p.FindExpr(t, "x"))
	src, isMacroCall = snippet.WithContext(p.FS, arg, source.RootContext, "..", &app)
	test.Equal(t, src, "x")
	test.True(t, !isMacroCall)
}

func TestWithContextFromArgumentIsManual(t *testing.T) {
	p := testkit.ParseClean(t, macroSrc)
	mul := product(t, p)
	arg := p.Tree.Exprs.Span(p.FindExpr(t, "x"))

	// x lives in the caller, it cannot be walked into the expansion
	app := snippet.AlwaysSafe
	src, isMacroCall := snippet.WithContext(p.FS, arg, p.Tree.Exprs.Span(mul).Ctxt, "..", &app)
	test.Equal(t, src, "x")
	test.True(t, !isMacroCall)
	test.Equal(t, app, snippet.ManualReview)
}

func TestExprParenthesizes(t *testing.T) {
	p := testkit.ParseClean(t, "fn f(a: u8, b: u8) { a + b; a * b; -a; a as u16; (a + b); a..b; }")
	cases := []struct {
		expr   string
		target snippet.ExprPosition
		want   string
	}{
		{"a + b", snippet.PosAddLhs, "a + b"},
		{"a + b", snippet.PosAddRhs, "(a + b)"},
		{"a + b", snippet.PosMulLhs, "(a + b)"},
		{"a + b", snippet.PosEqLhs, "a + b"},
		{"a * b", snippet.PosMulRhs, "(a * b)"},
		{"a * b", snippet.PosAddRhs, "a * b"},
		{"-a", snippet.PosPrefix, "-a"},
		{"-a", snippet.PosPostfix, "(-a)"},
		{"a as u16", snippet.PosPrefix, "(a as u16)"},
		{"a as u16", snippet.PosCast, "a as u16"},
		{"(a + b)", snippet.PosPostfix, "(a + b)"},
		{"a..b", snippet.PosOrLhs, "(a..b)"},
		{"a..b", snippet.PosParen, "a..b"},
	}
	for _, tc := range cases {
		app := snippet.AlwaysSafe
		got := snippet.Expr(p.FS, p.Tree, p.FindExpr(t, tc.expr), tc.target, source.RootContext, &app)
		test.Equal(t, got, tc.want, test.Context("%q at %s", tc.expr, tc.target))
		test.Equal(t, app, snippet.AlwaysSafe)
	}
}

func TestExprKeepsMacroCalls(t *testing.T) {
	p := testkit.ParseClean(t, macroSrc)
	app := snippet.AlwaysSafe
	got := snippet.Expr(p.FS, p.Tree, product(t, p), snippet.PosPostfix, source.RootContext, &app)
	test.Equal(t, got, "double!(x)")
}

func TestExprPlaceholder(t *testing.T) {
	p := testkit.ParseClean(t, "fn f() { x; }")
	id := p.FindExpr(t, "x")
	p.Tree.Exprs.Get(id).Span.File = 42
	app := snippet.AlwaysSafe
	test.Equal(t, snippet.Expr(p.FS, p.Tree, id, snippet.PosParen, source.RootContext, &app), snippet.Placeholder)
	test.Equal(t, app, snippet.HasPlaceholders)
}

func TestPositionOf(t *testing.T) {
	p := testkit.ParseClean(t, "fn f(a: u8, b: u8, v: Vec<u8>) { let z = a + b * 2; -v.len(); z = a as u32; }")
	parents := ast.BuildParents(p.Tree)
	cases := []struct {
		expr string
		want snippet.ExprPosition
	}{
		{"a", snippet.PosAddLhs},
		{"b * 2", snippet.PosAddRhs},
		{"b", snippet.PosMulLhs},
		{"2", snippet.PosMulRhs},
		{"a + b * 2", snippet.PosParen},
		{"v", snippet.PosPostfix},
		{"v.len()", snippet.PosPrefix},
		{"z", snippet.PosAssignmentLhs},
		{"a as u32", snippet.PosAssignmentRhs},
	}
	for _, tc := range cases {
		got := snippet.PositionOf(p.Tree, parents, p.FindExpr(t, tc.expr))
		test.Equal(t, got, tc.want, test.Context("position of %q", tc.expr))
	}
}

func TestSugg(t *testing.T) {
	p := testkit.ParseClean(t, "fn f(a: bool, b: bool) { a && b; a; }")
	app := snippet.AlwaysSafe
	and := snippet.SuggOf(p.FS, p.Tree, p.FindExpr(t, "a && b"), source.RootContext, &app)
	test.Equal(t, and.Not().String(), "!(a && b)")
	a := snippet.SuggOf(p.FS, p.Tree, p.FindExpr(t, "a"), source.RootContext, &app)
	test.Equal(t, a.Not().String(), "!a")
	test.Equal(t, a.Not().Not().String(), "!!a")
	test.Equal(t, snippet.Binary(ast.BinOr, and, a).String(), "a && b || a")
	test.Equal(t, snippet.Binary(ast.BinAnd, a, snippet.Binary(ast.BinOr, a, a)).String(), "a && (a || a)")
	test.Equal(t, and.Method("then(f)").String(), "(a && b).then(f)")
	test.Equal(t, snippet.Atom("x").Addr(true).Deref().String(), "*&mut x")
}

func TestAssembleSuggestion(t *testing.T) {
	src := "fn f(y: u8) {\n    let x = y;\n}"
	p := testkit.ParseClean(t, src)
	target := p.Tree.Exprs.Span(p.FindExpr(t, "y"))

	got, app := snippet.AssembleSuggestion(p.FS, target, "z", snippet.Hint{})
	test.Equal(t, got, "z")
	test.Equal(t, app, snippet.AlwaysSafe)

	got, _ = snippet.AssembleSuggestion(p.FS, target, "match y {\n    _ => 1,\n}", snippet.Hint{})
	test.Equal(t, got, "match y {\n        _ => 1,\n    }")

	got, _ = snippet.AssembleSuggestion(p.FS, target, "a + b", snippet.Hint{Position: snippet.PosMulLhs, Prec: snippet.PosAddLhs})
	test.Equal(t, got, "(a + b)")

	_, app = snippet.AssembleSuggestion(p.FS, target, "a", snippet.Hint{From: target.WithCtxt(1)})
	test.Equal(t, app, snippet.ManualReview)

	_, app = snippet.AssembleSuggestion(p.FS, target, "a", snippet.Hint{Generated: true, Applicability: snippet.SafeWithHeuristics})
	test.Equal(t, app, snippet.ManualReview)

	_, app = snippet.AssembleSuggestion(p.FS, target, "f"+snippet.Placeholder, snippet.Hint{})
	test.Equal(t, app, snippet.HasPlaceholders)

	got, app = snippet.AssembleSuggestion(p.FS, target, "a + b", snippet.Hint{
		Position:    snippet.PosMulLhs,
		Prec:        snippet.PosPostfix,
		UnknownPrec: true,
	})
	test.Equal(t, got, "a + b")
	test.Equal(t, app, snippet.ManualReview)
}

func TestUnknownShapeIsAGuess(t *testing.T) {
	p := testkit.ParseClean(t, "fn f() { x; }")
	x := p.FindExpr(t, "x")

	prec, known := snippet.PrecedenceOf(p.Tree, x)
	test.Equal(t, prec, snippet.PosPostfix)
	test.True(t, known)

	// узел восстановления после ошибки
	bad := p.Tree.Exprs.NewBad(p.Tree.Exprs.Span(x))
	prec, known = snippet.PrecedenceOf(p.Tree, bad)
	test.Equal(t, prec, snippet.PosPostfix)
	test.True(t, !known)

	app := snippet.AlwaysSafe
	sugg := snippet.SuggOf(p.FS, p.Tree, bad, source.RootContext, &app)
	test.True(t, sugg.Unknown)
	test.True(t, sugg.Not().Unknown)
	test.True(t, snippet.Binary(ast.BinAdd, snippet.Atom("1"), sugg).Unknown)
	test.True(t, !snippet.SuggOf(p.FS, p.Tree, x, source.RootContext, &app).Unknown)
	test.Equal(t, app, snippet.AlwaysSafe)

	test.Equal(t, snippet.Expr(p.FS, p.Tree, bad, snippet.PosPrefix, source.RootContext, &app), "x")
	test.Equal(t, app, snippet.ManualReview)
}

func TestBlockAndIndent(t *testing.T) {
	src := "fn f(c: bool) {\n    if c {\n        g();\n    }\n}"
	p := testkit.ParseClean(t, src)
	ifExpr := p.FindExpr(t, "if c {\n        g();\n    }")
	then, ok := p.Tree.Exprs.If(ifExpr)
	test.True(t, ok)
	blockSpan := p.Tree.Exprs.Span(then.Then)

	test.Equal(t, snippet.Block(p.FS, blockSpan, "..", nil), "{\n    g();\n}")
	ifSpan := p.Tree.Exprs.Span(ifExpr)
	test.Equal(t, snippet.Block(p.FS, blockSpan, "..", &ifSpan), "{\n        g();\n    }")

	indent, ok := snippet.Indent(p.FS, ifSpan)
	test.True(t, ok)
	test.Equal(t, indent, "    ")

	test.Equal(t, snippet.ExprBlock(p.FS, p.Tree, then.Then, "", "..", nil), "{\n    g();\n}")
	test.Equal(t, snippet.ExprBlock(p.FS, p.Tree, p.FindExpr(t, "c"), "", "..", nil), "{ c }")
}
