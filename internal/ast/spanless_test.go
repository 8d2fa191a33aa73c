package ast

import (
	"testing"

	"rillint/internal/source"
)

func TestSpanlessEqIgnoresSpansAndParens(t *testing.T) {
	tree := NewTree(1, nil, Hints{})
	sp := func(a, b uint32) source.Span { return source.Span{File: 1, Start: a, End: b} }
	path := func(name string, at uint32) ExprID {
		return tree.Exprs.NewPath(sp(at, at+1), ExprPathData{Segments: []PathSegment{{Name: tree.Strings.InternIdent(name), Span: sp(at, at+1)}}})
	}
	a1, a2, b := path("a", 0), path("a", 10), path("b", 20)
	sum1 := tree.Exprs.NewBinary(sp(0, 5), BinAdd, sp(2, 3), a1, b)
	sum2 := tree.Exprs.NewBinary(sp(10, 15), BinAdd, sp(12, 13), a2, path("b", 14))
	paren := tree.Exprs.NewInner(ExprParen, sp(30, 37), sum2)

	if !tree.SpanlessEq(a1, a2) {
		t.Fatalf("a != a")
	}
	if tree.SpanlessEq(a1, b) {
		t.Fatalf("a == b")
	}
	if !tree.SpanlessEq(sum1, paren) {
		t.Fatalf("a + b != (a + b)")
	}
	diff := tree.Exprs.NewBinary(sp(40, 45), BinSub, sp(42, 43), a1, b)
	if tree.SpanlessEq(sum1, diff) {
		t.Fatalf("a + b == a - b")
	}
	if tree.SpanlessEq(NoExprID, NoExprID) {
		t.Fatalf("missing expressions must not compare equal")
	}
}

func TestSpanlessEqNormalizesIdentifiers(t *testing.T) {
	tree := NewTree(1, nil, Hints{})
	sp := source.Span{File: 1, Start: 0, End: 2}
	composed := tree.Exprs.NewPath(sp, ExprPathData{Segments: []PathSegment{{Name: tree.Strings.InternIdent("\u00e9")}}})
	decomposed := tree.Exprs.NewPath(sp, ExprPathData{Segments: []PathSegment{{Name: tree.Strings.InternIdent("e\u0301")}}})
	if !tree.SpanlessEq(composed, decomposed) {
		t.Fatalf("NFC-equal identifiers differ")
	}
}

func TestCanHaveSideEffects(t *testing.T) {
	tree, bin, pa, body := buildSample(t)
	if tree.CanHaveSideEffects(pa) || tree.CanHaveSideEffects(bin) {
		t.Fatalf("reads have no side effects")
	}
	if !tree.CanHaveSideEffects(body) {
		t.Fatalf("blocks are opaque")
	}
	call := tree.Exprs.NewCall(source.Span{File: 1}, pa, nil)
	neg := tree.Exprs.NewUnary(source.Span{File: 1}, UnNeg, source.Span{File: 1}, call)
	if !tree.CanHaveSideEffects(neg) {
		t.Fatalf("-f() may have side effects")
	}
}
