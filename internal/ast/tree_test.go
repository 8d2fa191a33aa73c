package ast

import (
	"testing"

	"rillint/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatalf("empty arena must return nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("unexpected arena state id=%d", id)
	}
	for i, v := range a.All() {
		if i != 1 || *v != 7 {
			t.Fatalf("All yielded %d=%d", i, *v)
		}
	}
}

// buildSample строит `fn f() { a + b; }` вручную.
func buildSample(t *testing.T) (*Tree, ExprID, ExprID, ExprID) {
	t.Helper()
	tree := NewTree(1, nil, Hints{})
	sp := func(a, b uint32) source.Span { return source.Span{File: 1, Start: a, End: b} }
	pa := tree.Exprs.NewPath(sp(9, 10), ExprPathData{Segments: []PathSegment{{Name: tree.Strings.Intern("a"), Span: sp(9, 10)}}})
	pb := tree.Exprs.NewPath(sp(13, 14), ExprPathData{Segments: []PathSegment{{Name: tree.Strings.Intern("b"), Span: sp(13, 14)}}})
	bin := tree.Exprs.NewBinary(sp(9, 14), BinAdd, sp(11, 12), pa, pb)
	st := tree.Stmts.NewExpr(sp(9, 15), bin, true)
	body := tree.Exprs.NewBlock(sp(7, 17), ExprBlockData{Stmts: []StmtID{st}})
	fn := tree.Items.NewFn(sp(0, 17), tree.Strings.Intern("f"), sp(3, 4), FnData{Body: body})
	tree.PushItem(fn)
	return tree, bin, pa, body
}

func TestInspectVisitsInSourceOrder(t *testing.T) {
	tree, _, _, _ := buildSample(t)
	var kinds []string
	tree.Inspect(func(n Node) bool {
		if id, ok := n.Expr(); ok {
			kinds = append(kinds, tree.Exprs.Kind(id).String())
		}
		return true
	})
	want := []string{"Block", "Binary", "Path", "Path"}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visited %v, want %v", kinds, want)
		}
	}
}

func TestParents(t *testing.T) {
	tree, bin, pa, body := buildSample(t)
	parents := BuildParents(tree)
	if p, ok := parents.ParentExpr(pa); !ok || p != bin {
		t.Fatalf("parent of a = %d, want %d", p, bin)
	}
	n, ok := parents.Parent(ExprNode(bin))
	if _, isStmt := n.Stmt(); !ok || !isStmt {
		t.Fatalf("binary must sit in a statement, got %+v", n)
	}
	if _, ok := parents.ParentExpr(bin); ok {
		t.Fatalf("statement parent is not an expression")
	}
	n, _ = parents.Parent(ExprNode(body))
	if _, isItem := n.Item(); !isItem {
		t.Fatalf("fn body parent must be the item")
	}
	if _, ok := parents.Parent(ItemNode(tree.Root[0])); ok {
		t.Fatalf("top-level item has no parent")
	}
	if _, ok := tree.BlockTail(body); ok {
		t.Fatalf("statement with semicolon is not a tail")
	}
}

func TestPathName(t *testing.T) {
	tree := NewTree(1, nil, Hints{})
	segs := []PathSegment{{Name: tree.Strings.Intern("String")}, {Name: tree.Strings.Intern("from")}}
	if got := tree.PathName(segs); got != "String::from" {
		t.Fatalf("PathName = %q", got)
	}
	if BinAdd.String() != "+" || !BinLe.IsComparison() || BinSub.IsCommutative() {
		t.Fatalf("operator helpers broken")
	}
}
