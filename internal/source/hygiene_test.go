package source

import "testing"

// buildChain создаёт файл с двумя вложенными раскрытиями:
//
//	macro m($e) { n!($e, 0) }
//	macro n($a, $b) { f($a, $b) }
//	g(m!(1))
func buildChain(t *testing.T) (*FileSet, FileID, ContextID, ContextID) {
	t.Helper()
	fs := NewFileSet()
	src := "macro m($e) { n!($e, 0) }\nmacro n($a, $b) { f($a, $b) }\ng(m!(1))\n"
	id := fs.AddVirtual("chain.rl", []byte(src))
	h := fs.Hygiene()
	callM := Span{File: id, Start: 58, End: 63}
	outer := h.NewContext(ExpansionInfo{Kind: ExpnMacro, Name: "m", CallSite: callM, DefSite: Span{File: id, Start: 12, End: 25}})
	callN := Span{File: id, Start: 14, End: 23, Ctxt: outer}
	inner := h.NewContext(ExpansionInfo{Kind: ExpnMacro, Name: "n", CallSite: callN, DefSite: Span{File: id, Start: 42, End: 55}})
	return fs, id, outer, inner
}

func TestWalkToContextRootIdentity(t *testing.T) {
	h := NewHygiene()
	sp := Span{File: 3, Start: 10, End: 20}
	got, ok := h.WalkToContext(sp, RootContext)
	if !ok || got != sp {
		t.Fatalf("WalkToContext(root span, root) = %v, %v; want %v, true", got, ok, sp)
	}
}

func TestWalkToContextThroughNestedExpansions(t *testing.T) {
	fs, id, outer, inner := buildChain(t)
	h := fs.Hygiene()

	// вызов f(...) внутри n! раскрывается в контексте inner
	callF := Span{File: id, Start: 44, End: 53, Ctxt: inner}

	got, ok := h.WalkToContext(callF, RootContext)
	if !ok {
		t.Fatal("expected walk to root to succeed")
	}
	if want := (Span{File: id, Start: 58, End: 63}); got != want {
		t.Errorf("walk to root = %v, want %v", got, want)
	}
	if text, _ := fs.Text(got); text != "m!(1)" {
		t.Errorf("text at root = %q, want %q", text, "m!(1)")
	}

	got, ok = h.WalkToContext(callF, outer)
	if !ok || got.Ctxt != outer {
		t.Fatalf("walk to outer = %v, %v", got, ok)
	}
	if text, _ := fs.Text(got); text != "n!($e, 0)" {
		t.Errorf("text at outer = %q, want %q", text, "n!($e, 0)")
	}
}

func TestWalkToContextFailsForDivergentTarget(t *testing.T) {
	fs, id, outer, inner := buildChain(t)
	h := fs.Hygiene()

	// контекст-брат: другой вызов на верхнем уровне
	sibling := h.NewContext(ExpansionInfo{Kind: ExpnMacro, Name: "m", CallSite: Span{File: id, Start: 56, End: 57}})

	sp := Span{File: id, Start: 44, End: 53, Ctxt: inner}
	if _, ok := h.WalkToContext(sp, sibling); ok {
		t.Error("walk into a sibling context must fail")
	}
	// аргумент, написанный на верхнем уровне, не достигает outer
	arg := Span{File: id, Start: 61, End: 62}
	if _, ok := h.WalkToContext(arg, outer); ok {
		t.Error("walk from root to a child context must fail")
	}
	if _, ok := fs.TextAtContext(arg, outer); ok {
		t.Error("TextAtContext must abstain when the walk fails")
	}
}

func TestWalkToContextUnknownContext(t *testing.T) {
	h := NewHygiene()
	if _, ok := h.WalkToContext(Span{Ctxt: 42}, RootContext); ok {
		t.Error("unknown context must not resolve")
	}
}

func TestHygieneTree(t *testing.T) {
	fs, _, outer, inner := buildChain(t)
	h := fs.Hygiene()

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	if d := h.Depth(inner); d != 2 {
		t.Errorf("Depth(inner) = %d, want 2", d)
	}
	if p, ok := h.Parent(inner); !ok || p != outer {
		t.Errorf("Parent(inner) = %d, %v; want %d", p, ok, outer)
	}
	if _, ok := h.Parent(RootContext); ok {
		t.Error("root has no parent")
	}
	if !h.IsAncestor(RootContext, inner) || !h.IsAncestor(outer, inner) || !h.IsAncestor(inner, inner) {
		t.Error("IsAncestor must hold along the chain")
	}
	if h.IsAncestor(inner, outer) {
		t.Error("child is not an ancestor of its parent")
	}
	if c := h.CommonAncestor(inner, outer); c != outer {
		t.Errorf("CommonAncestor = %d, want %d", c, outer)
	}
	d, ok := h.Data(inner)
	if !ok || d.Name != "n" || d.Kind != ExpnMacro {
		t.Errorf("Data(inner) = %+v", d)
	}
}

func TestJoin(t *testing.T) {
	fs, id, outer, _ := buildChain(t)
	h := fs.Hygiene()

	a := Span{File: id, Start: 0, End: 5}
	b := Span{File: id, Start: 10, End: 12}
	if got := h.Join(a, b); got != (Span{File: id, Start: 0, End: 12}) {
		t.Errorf("same-context join = %v", got)
	}

	deep := Span{File: id, Start: 14, End: 16, Ctxt: outer}
	if got := h.Join(a, deep); got != deep {
		t.Errorf("join with a descendant context = %v, want %v", got, deep)
	}
	if got := h.Join(deep, a); got != deep {
		t.Errorf("join is not symmetric: %v", got)
	}

	other := h.NewContext(ExpansionInfo{Kind: ExpnMacro, Name: "m", CallSite: Span{File: id, Start: 56, End: 57}})
	sib := Span{File: id, Start: 20, End: 21, Ctxt: other}
	got := h.Join(deep, sib)
	if got.Ctxt != RootContext || got.Start != 56 || got.End != 63 {
		t.Errorf("join of siblings = %v, want root span 56-63", got)
	}
}

func TestInExternalExpansion(t *testing.T) {
	h := NewHygiene()
	ext := h.NewContext(ExpansionInfo{Kind: ExpnMacro, Name: "ext", External: true})
	local := h.NewContext(ExpansionInfo{Kind: ExpnMacro, Name: "local"})
	if !h.InExternalExpansion(Span{Ctxt: ext}) {
		t.Error("expected external expansion")
	}
	if h.InExternalExpansion(Span{Ctxt: local}) || h.InExternalExpansion(Span{}) {
		t.Error("local and root spans are not external")
	}
}
