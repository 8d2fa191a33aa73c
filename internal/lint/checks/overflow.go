package checks

import (
	"rillint/internal/ast"
	"rillint/internal/lint"
	"rillint/internal/types"
)

// OverflowCheck flags C-style overflow tests on unsigned integers:
// `a + b < a`, `a > a + b`, `a < a - b` and `a - b > a`. The arithmetic
// panics before the comparison can see a wrapped value.
type OverflowCheck struct{}

func (OverflowCheck) Lints() []*lint.Lint { return []*lint.Lint{OverflowCheckConditional} }

func (OverflowCheck) CheckExpr(cx *lint.Context, id ast.ExprID) {
	e := cx.Tree.Exprs
	cmp, ok := e.Binary(id)
	if !ok {
		return
	}
	var lt, gt ast.ExprID
	switch cmp.Op {
	case ast.BinLt:
		lt, gt = cmp.Left, cmp.Right
	case ast.BinGt:
		lt, gt = cmp.Right, cmp.Left
	default:
		return
	}

	ctxt := e.Span(id).Ctxt
	var opLhs, opRhs, other ast.ExprID
	commutative := false
	if d, ok := e.Binary(lt); ok && d.Op == ast.BinAdd && e.Span(lt).Ctxt == ctxt {
		opLhs, opRhs, other, commutative = d.Left, d.Right, gt, true
	} else if d, ok := e.Binary(gt); ok && d.Op == ast.BinSub && e.Span(gt).Ctxt == ctxt {
		opLhs, opRhs, other = d.Left, d.Right, lt
	} else {
		return
	}

	if cx.Tree.CanHaveSideEffects(other) {
		return
	}
	typ := cx.Types.TypeOf(opLhs)
	if typ == types.NoTypeID || cx.Types.Types.Kind(typ) != types.KindUint {
		return
	}
	if cx.Types.TypeOf(opRhs) != typ || cx.Types.TypeOf(other) != typ {
		return
	}
	if cx.Hygiene().InExternalExpansion(e.Span(id)) {
		return
	}
	if !cx.Tree.SpanlessEq(opLhs, other) && !(commutative && cx.Tree.SpanlessEq(opRhs, other)) {
		return
	}
	cx.Report(OverflowCheckConditional, e.Span(id),
		"you are trying to use classic C overflow conditions that will fail in rill").Emit()
}
