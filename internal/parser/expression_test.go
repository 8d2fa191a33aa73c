package parser

import (
	"slices"
	"testing"

	"go.followtheprocess.codes/test"

	"rillint/internal/ast"
	"rillint/internal/diag"
)

func TestExpressionShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mul binds tighter", "a + b * c", "(+ a (* b c))"},
		{"left assoc", "a - b - c", "(- (- a b) c)"},
		{"mul first", "a * b + c", "(+ (* a b) c)"},
		{"assign right assoc", "a = b = c", "(= a (= b c))"},
		{"assign then neg", "x =- 35", "(= x (- 35))"},
		{"compound", "x += 1", "(+= x 1)"},
		{"logical", "a && b || c", "(|| (&& a b) c)"},
		{"bit ops", "a | b ^ c & d", "(| a (^ b (& c d)))"},
		{"shift below add", "a << 1 + 2", "(<< a (+ 1 2))"},
		{"cast", "a as u8 + b", "(+ (as a u8) b)"},
		{"unary before compare", "!a == b", "(== (! a) b)"},
		{"deref assign", "*p = 1", "(= (* p) 1)"},
		{"addr mut", "&mut x", "(&mut x)"},
		{"double addr", "&&x", "(& (& x))"},
		{"tuple index", "t.0.1", "(.1 (.0 t))"},
		{"method", "v.iter().nth(0)", "(.nth() (.iter() v) 0)"},
		{"call try", "f(a, b)?", "(? (call f a b))"},
		{"index", "v[i + 1]", "(index v (+ i 1))"},
		{"paren", "(a + b) * c", "(* (paren (+ a b)) c)"},
		{"range", "a..b + 1", "(.. a (+ b 1))"},
		{"inclusive range", "0..=n", "(..= 0 n)"},
		{"path", "String::from(s)", "(call String::from s)"},
		{"tuple", "(a, b,)", "(tuple a b)"},
		{"array", "[1, 2, 3]", "(array 1 2 3)"},
		{"suffix literal", "35u8 + x", "(+ 35u8 x)"},
		{"neg literal", "-1i32", "(- 1i32)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := parseClean(t, "fn f() { "+tt.input+"; }")
			stmts := fnBody(t, tree)
			test.Equal(t, len(stmts), 1)
			test.Equal(t, sexpr(tree, stmtExpr(t, tree, stmts[0])), tt.want)
		})
	}
}

func TestChainedComparisonIsAnError(t *testing.T) {
	_, _, bag := parseSource(t, "fn f() { a < b < c; }")
	test.Equal(t, bag.Len(), 1, test.Context("diagnostics: %s", diagnosticsSummary(bag)))
	test.Equal(t, bag.Items()[0].Code, diag.SynChainedCompare)
}

func TestLiteralSuffix(t *testing.T) {
	tree, _ := parseClean(t, "fn f() { 35u8; 1.5f32; 0xffi64; 1e3; }")
	want := []struct {
		kind   ast.LitKind
		suffix string
	}{
		{ast.LitInt, "u8"},
		{ast.LitFloat, "f32"},
		{ast.LitInt, "i64"},
		{ast.LitFloat, ""},
	}
	stmts := fnBody(t, tree)
	test.Equal(t, len(stmts), len(want))
	for i, w := range want {
		lit, ok := tree.Exprs.Lit(stmtExpr(t, tree, stmts[i]))
		test.True(t, ok, test.Context("statement %d", i))
		test.Equal(t, lit.Kind, w.kind, test.Context("statement %d", i))
		test.Equal(t, lit.Suffix, w.suffix, test.Context("statement %d", i))
	}
}

func TestStructLiteralRestrictedInConditions(t *testing.T) {
	tree, _ := parseClean(t, "fn f() { if x == S { g(); } let s = S { a: 1, b }; }")
	stmts := fnBody(t, tree)
	test.Equal(t, len(stmts), 2)

	ifData, ok := tree.Exprs.If(stmtExpr(t, tree, stmts[0]))
	test.True(t, ok)
	test.Equal(t, sexpr(tree, ifData.Cond), "(== x S)")
	test.Equal(t, tree.Exprs.Kind(ifData.Then), ast.ExprBlock)

	lit, ok := tree.Exprs.Struct(stmtExpr(t, tree, stmts[1]))
	test.True(t, ok)
	test.Equal(t, len(lit.Fields), 2)
	test.True(t, !lit.Fields[0].Shorthand)
	test.True(t, lit.Fields[1].Shorthand)
}

func TestBlockLikeStatementsNeedNoSemicolon(t *testing.T) {
	tree, _ := parseClean(t, `fn f() {
	if a { b } c;
	while x { y; }
	loop { break; }
	match v { _ => {} }
	{ 1 }
	z
}`)
	stmts := fnBody(t, tree)
	kinds := make([]ast.ExprKind, 0, len(stmts))
	for _, s := range stmts {
		kinds = append(kinds, tree.Exprs.Kind(stmtExpr(t, tree, s)))
	}
	test.EqualFunc(t, kinds, []ast.ExprKind{
		ast.ExprIf, ast.ExprPath, ast.ExprWhile, ast.ExprLoop, ast.ExprMatch, ast.ExprBlock, ast.ExprPath,
	}, slices.Equal)

	tail, ok := tree.BlockTail(fnBodyExpr(t, tree))
	test.True(t, ok)
	test.Equal(t, sexpr(tree, tail), "z")
}

func TestMissingElseParsesTwoStatements(t *testing.T) {
	tree, fs := parseClean(t, "fn f() { if c { 1 } { 2 } }")
	stmts := fnBody(t, tree)
	test.Equal(t, len(stmts), 2)
	ifData, ok := tree.Exprs.If(stmtExpr(t, tree, stmts[0]))
	test.True(t, ok)
	test.True(t, !ifData.Else.IsValid())
	second := stmtExpr(t, tree, stmts[1])
	test.Equal(t, tree.Exprs.Kind(second), ast.ExprBlock)
	test.Equal(t, spanText(t, fs, tree.Exprs.Span(second)), "{ 2 }")
}

func TestIfElseChain(t *testing.T) {
	tree, fs := parseClean(t, "fn f() { if a { 1 } else if b { 2 } else { 3 } }")
	stmts := fnBody(t, tree)
	test.Equal(t, len(stmts), 1)
	outer, ok := tree.Exprs.If(stmtExpr(t, tree, stmts[0]))
	test.True(t, ok)
	test.Equal(t, spanText(t, fs, outer.ElseSpan), "else")
	test.Equal(t, tree.Exprs.Kind(outer.Else), ast.ExprIf)
	inner, _ := tree.Exprs.If(outer.Else)
	test.Equal(t, tree.Exprs.Kind(inner.Else), ast.ExprBlock)
	test.Equal(t, spanText(t, fs, tree.Exprs.Span(stmtExpr(t, tree, stmts[0]))),
		"if a { 1 } else if b { 2 } else { 3 }")
}

func TestLabelsAndJumps(t *testing.T) {
	tree, _ := parseClean(t, "fn f() { 'outer: loop { for i in 0..n { if i == 1 { continue 'outer; } break 'outer; } } }")
	stmts := fnBody(t, tree)
	loop, ok := tree.Exprs.Loop(stmtExpr(t, tree, stmts[0]))
	test.True(t, ok)
	test.True(t, loop.Label.IsSet())
	test.Equal(t, tree.Name(loop.Label.Name), "'outer")

	var jumps []string
	tree.Inspect(func(n ast.Node) bool {
		id, ok := n.Expr()
		if !ok {
			return true
		}
		if j, ok := tree.Exprs.Jump(id); ok {
			jumps = append(jumps, tree.Exprs.Kind(id).String()+" "+tree.Name(j.Label.Name))
		}
		return true
	})
	test.EqualFunc(t, jumps, []string{"Continue 'outer", "Break 'outer"}, slices.Equal)
}

func TestMatchArms(t *testing.T) {
	tree, _ := parseClean(t, "fn f() { match x { 0 => a, 1 | 2 => { b } Some(y) if y > 0 => c, _ => d } }")
	m, ok := tree.Exprs.Match(stmtExpr(t, tree, fnBody(t, tree)[0]))
	test.True(t, ok)
	test.Equal(t, len(m.Arms), 4)
	test.Equal(t, tree.Pats.Get(m.Arms[1].Pat).Kind, ast.PatOr)
	test.Equal(t, tree.Pats.Get(m.Arms[2].Pat).Kind, ast.PatTupleStruct)
	test.True(t, m.Arms[2].Guard.IsValid())
	test.Equal(t, tree.Pats.Get(m.Arms[3].Pat).Kind, ast.PatWild)
}

func TestClosure(t *testing.T) {
	tree, _ := parseClean(t, "fn f() { let g = |a, b: u8| a + b; let h = || 0; }")
	stmts := fnBody(t, tree)
	c, ok := tree.Exprs.Closure(stmtExpr(t, tree, stmts[0]))
	test.True(t, ok)
	test.Equal(t, len(c.Params), 2)
	test.True(t, c.Params[1].Type.IsValid())
	test.Equal(t, sexpr(tree, c.Body), "(+ a b)")

	c, ok = tree.Exprs.Closure(stmtExpr(t, tree, stmts[1]))
	test.True(t, ok)
	test.Equal(t, len(c.Params), 0)
}

func TestIfLet(t *testing.T) {
	tree, _ := parseClean(t, "fn f() { if let Some(x) = opt { x; } while let Some(y) = it.next() { y; } }")
	stmts := fnBody(t, tree)
	ifData, _ := tree.Exprs.If(stmtExpr(t, tree, stmts[0]))
	test.Equal(t, tree.Exprs.Kind(ifData.Cond), ast.ExprLet)
	loop, _ := tree.Exprs.Loop(stmtExpr(t, tree, stmts[1]))
	test.Equal(t, tree.Exprs.Kind(loop.Cond), ast.ExprLet)
}

func TestMissingSemicolonOffersFix(t *testing.T) {
	_, _, bag := parseSource(t, "fn f() { let x = 1 let y = 2; }")
	test.True(t, bag.Len() >= 1, test.Context("diagnostics: %s", diagnosticsSummary(bag)))
	d := bag.Items()[0]
	test.Equal(t, d.Code, diag.SynExpectSemicolon)
	test.Equal(t, len(d.Fixes), 1)
	test.Equal(t, d.Fixes[0].Edits[0].NewText, ";")
}

func TestRecoveryKeepsLaterItems(t *testing.T) {
	tree, _, bag := parseSource(t, "fn f() { let = ; } fn g() {}")
	test.True(t, bag.HasErrors())
	var names []string
	for _, it := range tree.Root {
		names = append(names, tree.Name(tree.Items.Get(it).Name))
	}
	test.EqualFunc(t, names, []string{"f", "g"}, slices.Equal)
}

func fnBodyExpr(t *testing.T, tree *ast.Tree) ast.ExprID {
	t.Helper()
	fn, ok := tree.Items.Fn(tree.Root[0])
	if !ok {
		t.Fatal("first item is not a function")
	}
	return fn.Body
}
