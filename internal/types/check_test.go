package types_test

import (
	"testing"

	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/parser"
	"rillint/internal/source"
	"rillint/internal/types"
)

func check(t *testing.T, src string) (*ast.Tree, *types.Info) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rl", []byte(src))
	bag := diag.NewBag(100)
	res := parser.ParseFile(fs, fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", src, bag.Items()[0].Message)
	}
	return res.Tree, types.Check(res.Tree)
}

// typeOfText returns the formatted type of the first expression whose source
// text equals text.
func typeOfText(t *testing.T, src, text string) string {
	t.Helper()
	tree, info := check(t, src)
	found := ""
	ok := false
	tree.Inspect(func(n ast.Node) bool {
		id, isExpr := n.Expr()
		if ok || !isExpr {
			return !ok
		}
		sp := tree.Exprs.Span(id)
		if sp.Ctxt == source.RootContext && src[sp.Start:sp.End] == text {
			found, ok = info.Format(id), true
			return false
		}
		return true
	})
	if !ok {
		t.Fatalf("no expression %q in %q", text, src)
	}
	return found
}

func TestCheckExpressionTypes(t *testing.T) {
	cases := []struct {
		name string
		src  string
		expr string
		want string
	}{
		{"unsigned sum", "fn f(a: u32, b: u32) { a + b < a; }", "a + b", "u32"},
		{"comparison", "fn f(a: u32, b: u32) { a + b < a; }", "a + b < a", "bool"},
		{"literal takes operand type", "fn f(a: u8) { a - 1; }", "1", "u8"},
		{"literal on the left", "fn f(a: u64) { 1 + a; }", "1", "u64"},
		{"unsuffixed literal", "fn f() { let x = 5; x; }", "5", "{integer}"},
		{"suffixed literal", "fn f() { 7i16; }", "7i16", "i16"},
		{"annotation steers literal", "fn f() { let x: usize = 3; }", "3", "usize"},
		{"into takes annotation", "fn f() { let s: String = \"\".into(); }", "\"\".into()", "String"},
		{"string from", "fn f() { String::from(\"\"); }", "String::from(\"\")", "String"},
		{"to_string", "fn f() { \"\".to_string(); }", "\"\".to_string()", "String"},
		{"string literal", "fn f() { \"x\"; }", "\"x\"", "&str"},
		{"byte literal", "fn f() { b'a'; }", "b'a'", "u8"},
		{"option unwrap", "fn f(o: Option<u8>) { o.unwrap(); }", "o.unwrap()", "u8"},
		{"ok_or", "fn f(o: Option<u8>) { o.ok_or(\"e\"); }", "o.ok_or(\"e\")", "Result<u8, &str>"},
		{"result ok", "fn f(r: Result<u8, String>) { r.ok(); }", "r.ok()", "Option<u8>"},
		{"iter nth", "fn f(v: Vec<u32>) { v.iter().nth(0); }", "v.iter().nth(0)", "Option<&u32>"},
		{"nth index is usize", "fn f(v: Vec<u32>) { v.iter().nth(0); }", "0", "usize"},
		{"some wraps", "fn f() { Some(1u8); }", "Some(1u8)", "Option<u8>"},
		{"field", "struct P { x: u16 }\nfn f(p: P) { p.x; }", "p.x", "u16"},
		{"tuple index", "fn f(t: (u8, bool)) { t.1; }", "t.1", "bool"},
		{"index", "fn f(a: [u32; 4]) { a[0]; }", "a[0]", "u32"},
		{"deref", "fn f(a: &u8) { *a; }", "*a", "u8"},
		{"addr of", "fn f(a: u8) { &a; }", "&a", "&u8"},
		{"cast", "fn f(a: u8) { a as u64; }", "a as u64", "u64"},
		{"call result", "fn g() -> bool { true }\nfn f() { g(); }", "g()", "bool"},
		{"tuple struct ctor", "struct W(u8);\nfn f() { W(1); }", "W(1)", "W"},
		{"ctor steers argument", "struct W(u8);\nfn f() { W(1); }", "1", "u8"},
		{"struct literal", "struct P { x: u8 }\nfn f() { P { x: 1 }; }", "P { x: 1 }", "P"},
		{"if unifies", "fn f(c: bool) { let v = if c { 1u8 } else { 2 }; }", "2", "u8"},
		{"block tail", "fn f() { let v = { 3u32 }; }", "{ 3u32 }", "u32"},
		{"unit block", "fn f() { let v = { 3u32; }; }", "{ 3u32; }", "()"},
		{"loop diverges", "fn f() { let v = loop {}; }", "loop {}", "!"},
		{"loop with break", "fn f() { let v = loop { break; }; }", "loop { break; }", "()"},
		{"try unwraps", "fn f(r: Result<u8, u8>) -> Result<u8, u8> { r?; r }", "r?", "u8"},
		{"range", "fn f() { 0..10u8; }", "0..10u8", "Iter<u8>"},
		{"question of unknown", "fn f() { g()?; }", "g()?", "_"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := typeOfText(t, tc.src, tc.expr); got != tc.want {
				t.Fatalf("type of %q = %s, want %s", tc.expr, got, tc.want)
			}
		})
	}
}

func TestCheckBindings(t *testing.T) {
	cases := []struct {
		name string
		src  string
		expr string
		want string
	}{
		{"let inferred", "fn f(a: u16) { let b = a; b; }", "b", "u16"},
		{"shadowing", "fn f(a: u16) { let a = true; a; }", "a", "bool"},
		{"if let some", "fn f(o: Option<char>) { if let Some(c) = o { c; } }", "c", "char"},
		{"match err", "fn f(r: Result<u8, String>) { match r { Ok(v) => {}, Err(e) => { e; } } }", "e", "String"},
		{"tuple pattern", "fn f(t: (u8, bool)) { let (a, b) = t; b; }", "b", "bool"},
		{"rest pattern", "fn f(t: (u8, bool, char)) { let (a, .., c) = t; c; }", "c", "char"},
		{"for over range", "fn f() { for i in 0..3usize { i; } }", "i", "usize"},
		{"for over vec ref", "fn f(v: &Vec<u8>) { for x in v { x; } }", "x", "&u8"},
		{"closure param", "fn f() { let g = |x: u32| x; }", "x", "u32"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := lastTypeOfText(t, tc.src, tc.expr); got != tc.want {
				t.Fatalf("type of %q = %s, want %s", tc.expr, got, tc.want)
			}
		})
	}
}

// lastTypeOfText is typeOfText for the last matching expression, so that
// uses are picked over earlier mentions of the same name.
func lastTypeOfText(t *testing.T, src, text string) string {
	t.Helper()
	tree, info := check(t, src)
	found := ""
	ok := false
	tree.Inspect(func(n ast.Node) bool {
		if id, isExpr := n.Expr(); isExpr {
			sp := tree.Exprs.Span(id)
			if src[sp.Start:sp.End] == text {
				found, ok = info.Format(id), true
			}
		}
		return true
	})
	if !ok {
		t.Fatalf("no expression %q in %q", text, src)
	}
	return found
}

func TestCheckSignatures(t *testing.T) {
	_, info := check(t, "fn add(a: u8, b: &str) -> Option<u8> { None }\nenum E { A, B(u8) }")
	sig, ok := info.Fn("add")
	if !ok || len(sig.Params) != 2 {
		t.Fatalf("signature of add: %+v, %v", sig, ok)
	}
	if got := info.Types.Format(sig.Ret); got != "Option<u8>" {
		t.Fatalf("return type %s", got)
	}
	if got := info.Types.Format(sig.Params[1]); got != "&str" {
		t.Fatalf("second param %s", got)
	}
	e, ok := info.Nominal("E")
	if !ok || info.Types.Kind(e) != types.KindEnum {
		t.Fatalf("enum E not registered")
	}
}

func TestCheckMacroBodies(t *testing.T) {
	src := "macro add($a, $b) { $a + $b }\nfn f(x: u32, y: u32) { add!(x, y) < x; }"
	tree, info := check(t, src)
	seen := false
	tree.Inspect(func(n ast.Node) bool {
		id, ok := n.Expr()
		if !ok {
			return true
		}
		if b, ok := tree.Exprs.Binary(id); ok && b.Op == ast.BinAdd {
			seen = true
			if got := info.Format(id); got != "u32" {
				t.Fatalf("expanded sum has type %s", got)
			}
		}
		return true
	})
	if !seen {
		t.Fatalf("expansion produced no sum")
	}
}
