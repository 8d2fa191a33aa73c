package snippet

import (
	"strings"

	"rillint/internal/ast"
	"rillint/internal/source"
)

// ExprPosition is the syntactic slot an expression sits in, ordered from the
// loosest binding to the tightest. A snippet needs parentheses in a position
// greater than its own precedence.
type ExprPosition uint8

const (
	// PosParen also covers return and break values, closure bodies and every
	// slot that is not an operand.
	PosParen ExprPosition = iota
	PosAssignmentRhs
	PosAssignmentLhs
	PosRangeLhs
	PosRangeRhs
	PosOrLhs
	PosOrRhs
	PosAndLhs
	PosAndRhs
	PosLet
	PosEqLhs
	PosEqRhs
	PosBitOrLhs
	PosBitOrRhs
	PosBitXorLhs
	PosBitXorRhs
	PosBitAndLhs
	PosBitAndRhs
	PosShiftLhs
	PosShiftRhs
	PosAddLhs
	PosAddRhs
	PosMulLhs
	PosMulRhs
	PosCast
	PosPrefix
	PosPostfix
)

var positionNames = [...]string{
	PosParen: "Paren", PosAssignmentRhs: "AssignmentRhs", PosAssignmentLhs: "AssignmentLhs",
	PosRangeLhs: "RangeLhs", PosRangeRhs: "RangeRhs", PosOrLhs: "OrLhs", PosOrRhs: "OrRhs",
	PosAndLhs: "AndLhs", PosAndRhs: "AndRhs", PosLet: "Let", PosEqLhs: "EqLhs", PosEqRhs: "EqRhs",
	PosBitOrLhs: "BitOrLhs", PosBitOrRhs: "BitOrRhs", PosBitXorLhs: "BitXorLhs", PosBitXorRhs: "BitXorRhs",
	PosBitAndLhs: "BitAndLhs", PosBitAndRhs: "BitAndRhs", PosShiftLhs: "ShiftLhs", PosShiftRhs: "ShiftRhs",
	PosAddLhs: "AddLhs", PosAddRhs: "AddRhs", PosMulLhs: "MulLhs", PosMulRhs: "MulRhs",
	PosCast: "Cast", PosPrefix: "Prefix", PosPostfix: "Postfix",
}

func (p ExprPosition) String() string {
	if int(p) < len(positionNames) {
		return positionNames[p]
	}
	return "Unknown"
}

// BinaryPosition returns the left operand position of op. The right operand
// position follows it.
func BinaryPosition(op ast.BinaryOp) ExprPosition {
	switch op {
	case ast.BinAdd, ast.BinSub:
		return PosAddLhs
	case ast.BinMul, ast.BinDiv, ast.BinRem:
		return PosMulLhs
	case ast.BinAnd:
		return PosAndLhs
	case ast.BinOr:
		return PosOrLhs
	case ast.BinBitXor:
		return PosBitXorLhs
	case ast.BinBitAnd:
		return PosBitAndLhs
	case ast.BinBitOr:
		return PosBitOrLhs
	case ast.BinShl, ast.BinShr:
		return PosShiftLhs
	}
	return PosEqLhs
}

// PositionOf returns the position of expr inside its parent expression;
// PosParen when the parent is not an expression.
func PositionOf(tree *ast.Tree, parents *ast.Parents, expr ast.ExprID) ExprPosition {
	parent, ok := parents.ParentExpr(expr)
	if !ok {
		return PosParen
	}
	e := tree.Exprs
	switch e.Kind(parent) {
	case ast.ExprBinary:
		b, _ := e.Binary(parent)
		pos := BinaryPosition(b.Op)
		if b.Left != expr {
			pos++
		}
		return pos
	case ast.ExprUnary, ast.ExprAddrOf:
		return PosPrefix
	case ast.ExprCast:
		return PosCast
	case ast.ExprAssign, ast.ExprAssignOp:
		a, _ := e.Assign(parent)
		if a.Left == expr {
			return PosAssignmentLhs
		}
		return PosAssignmentRhs
	case ast.ExprRange:
		r, _ := e.Range(parent)
		if r.Lo == expr {
			return PosRangeLhs
		}
		return PosRangeRhs
	case ast.ExprCall:
		if c, _ := e.Call(parent); c.Callee == expr {
			return PosPostfix
		}
	case ast.ExprMethodCall:
		if m, _ := e.MethodCall(parent); m.Receiver == expr {
			return PosPostfix
		}
	case ast.ExprIndex:
		if ix, _ := e.Index(parent); ix.Target == expr {
			return PosPostfix
		}
	case ast.ExprTry, ast.ExprField:
		return PosPostfix
	}
	return PosParen
}

// Precedence returns the highest position expr fits in without parentheses.
// Atoms and postfix expressions fit everywhere.
func Precedence(tree *ast.Tree, expr ast.ExprID) ExprPosition {
	pos, _ := PrecedenceOf(tree, expr)
	return pos
}

// PrecedenceOf is Precedence that also reports whether the kind of expr is
// known. Unknown kinds (recovery nodes) get PosPostfix, which is only a guess.
func PrecedenceOf(tree *ast.Tree, expr ast.ExprID) (ExprPosition, bool) {
	e := tree.Exprs
	switch e.Kind(expr) {
	case ast.ExprBinary:
		b, _ := e.Binary(expr)
		return BinaryPosition(b.Op), true
	case ast.ExprUnary, ast.ExprAddrOf:
		return PosPrefix, true
	case ast.ExprLet:
		return PosLet, true
	case ast.ExprCast:
		return PosCast, true
	case ast.ExprRange:
		return PosRangeLhs, true
	case ast.ExprClosure, ast.ExprBreak, ast.ExprReturn, ast.ExprAssign, ast.ExprAssignOp:
		return PosAssignmentRhs, true
	case ast.ExprLit, ast.ExprPath, ast.ExprCall, ast.ExprMethodCall, ast.ExprField,
		ast.ExprIndex, ast.ExprTry, ast.ExprParen, ast.ExprTuple, ast.ExprArray,
		ast.ExprRepeat, ast.ExprBlock, ast.ExprIf, ast.ExprWhile, ast.ExprLoop,
		ast.ExprFor, ast.ExprMatch, ast.ExprContinue, ast.ExprStruct:
		return PosPostfix, true
	}
	return PosPostfix, false
}

// Expr returns the text of expr as seen from ctxt, parenthesized when target
// binds tighter than expr. Unavailable text becomes Placeholder. Macro calls
// are returned untouched, and so are binary and cast expressions whose text
// already extends past their operands (they carry their own parentheses).
// Text of an unknown shape is returned as is and downgrades app to
// ManualReview.
func Expr(fs *source.FileSet, tree *ast.Tree, expr ast.ExprID, target ExprPosition, ctxt source.ContextID, app *Applicability) string {
	span := tree.Exprs.Span(expr)
	src, isMacroCall, ok := withContext(fs, span, ctxt, Placeholder, app)
	if !ok || isMacroCall {
		return src
	}
	if _, known := PrecedenceOf(tree, expr); !known {
		*app = app.Weaker(ManualReview)
		return src
	}
	if needsParen(tree, expr, src, target) {
		return "(" + src + ")"
	}
	return src
}

func needsParen(tree *ast.Tree, expr ast.ExprID, src string, target ExprPosition) bool {
	e := tree.Exprs
	span := e.Span(expr)
	switch e.Kind(expr) {
	case ast.ExprBinary:
		b, _ := e.Binary(expr)
		if wrapped(span, e.Span(b.Left), e.Span(b.Right)) {
			return false
		}
	case ast.ExprCast:
		c, _ := e.Cast(expr)
		var typeSpan source.Span
		if t := tree.Types.Get(c.Type); t != nil {
			typeSpan = t.Span
		}
		if wrapped(span, e.Span(c.Value), typeSpan) {
			return false
		}
	case ast.ExprUnary, ast.ExprAddrOf, ast.ExprLet:
		if strings.HasPrefix(src, "(") {
			return false
		}
	}
	return target > Precedence(tree, expr)
}

// wrapped reports whether span reaches past an operand of its own context.
func wrapped(span, lhs, rhs source.Span) bool {
	return (span.Ctxt == lhs.Ctxt && span.Start != lhs.Start) ||
		(span.Ctxt == rhs.Ctxt && span.End != rhs.End)
}
