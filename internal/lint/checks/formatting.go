package checks

import (
	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/lint"
	"rillint/internal/provenance"
	"rillint/internal/source"
)

// Formatting flags operators and `else` keywords whose layout suggests a
// different parse than the one the parser made.
type Formatting struct{}

func (Formatting) Lints() []*lint.Lint {
	return []*lint.Lint{
		SuspiciousAssignmentFormatting,
		SuspiciousUnaryOpFormatting,
		SuspiciousElseFormatting,
		PossibleMissingComma,
	}
}

func (Formatting) CheckBlock(cx *lint.Context, block ast.ExprID) {
	d, _ := cx.Tree.Exprs.Block(block)
	ctxt := cx.Tree.Exprs.Span(block).Ctxt
	for i := 1; i < len(d.Stmts); i++ {
		s1, ok := cx.Tree.Stmts.Expr(d.Stmts[i-1])
		if !ok || s1.Semi {
			continue
		}
		s2, ok := cx.Tree.Stmts.Expr(d.Stmts[i])
		if !ok {
			continue
		}
		checkMissingElse(cx, ctxt, s1.Expr, s2.Expr)
	}
}

func (Formatting) CheckExpr(cx *lint.Context, id ast.ExprID) {
	e := cx.Tree.Exprs
	ctxt := e.Span(id).Ctxt
	switch e.Kind(id) {
	case ast.ExprIf:
		d, _ := e.If(id)
		if d.Else.IsValid() {
			checkElse(cx, id, d)
		}
	case ast.ExprAssign:
		d, _ := e.Assign(id)
		checkAssign(cx, id, d)
	case ast.ExprBinary:
		d, _ := e.Binary(id)
		checkUnOp(cx, id, d)
	case ast.ExprArray, ast.ExprTuple:
		d, _ := e.List(id)
		for _, x := range d.Elems {
			checkMissingComma(cx, ctxt, x)
		}
	case ast.ExprCall:
		d, _ := e.Call(id)
		for _, x := range d.Args {
			checkMissingComma(cx, ctxt, x)
		}
	case ast.ExprMethodCall:
		d, _ := e.MethodCall(id)
		for _, x := range d.Args {
			checkMissingComma(cx, ctxt, x)
		}
	case ast.ExprParen:
		d, _ := e.Inner(id)
		checkMissingComma(cx, ctxt, d.Inner)
	}
}

// checkAssign catches `a =- b`, `a =* b` and `a =! b`.
func checkAssign(cx *lint.Context, assign ast.ExprID, d *ast.ExprAssignData) {
	e := cx.Tree.Exprs
	rhs, ok := e.Unary(d.Right)
	if !ok {
		return
	}
	sp := e.Span(assign)
	if e.Span(d.Right).Ctxt != sp.Ctxt || d.OpSpan.Ctxt != sp.Ctxt {
		return
	}
	op := rhs.Op.String()
	glued := cx.FS.CheckText(d.OpSpan.WithEnd(sp.End), func(src string) bool {
		return provenance.OpGlued(src, "=", op)
	})
	if !glued || cx.Hygiene().InExternalExpansion(sp) {
		return
	}
	lintSpan := source.Span{File: d.OpSpan.File, Start: d.OpSpan.Start, End: d.OpSpan.Start + 2, Ctxt: sp.Ctxt}
	b := cx.Report(SuspiciousAssignmentFormatting, lintSpan, "this looks similar to a compound assignment operator")
	cx.Suggest(b, SuspiciousAssignmentFormatting,
		lint.Suggestion{
			Title:         "reverse the characters",
			Span:          lintSpan,
			Text:          op + "=",
			Applicability: diag.FixApplicabilityManualReview,
		},
		lint.Suggestion{
			Title:         "separate the characters",
			Span:          cx.FS.WithTrailingWhitespace(lintSpan),
			Text:          "= " + op,
			Applicability: diag.FixApplicabilityManualReview,
		},
	).Emit()
}

// checkUnOp catches `a +- b` and `a &&! b`: a binary operator followed
// without a space by a unary one.
func checkUnOp(cx *lint.Context, bin ast.ExprID, d *ast.ExprBinaryData) {
	e := cx.Tree.Exprs
	rhs, ok := e.Unary(d.Right)
	if !ok {
		return
	}
	ctxt := e.Span(bin).Ctxt
	rhsSpan := e.Span(d.Right)
	if d.OpSpan.Ctxt != ctxt || rhsSpan.Ctxt != ctxt {
		return
	}
	binOp, unOp := d.Op.String(), rhs.Op.String()
	glued := cx.FS.CheckText(d.OpSpan.WithEnd(rhsSpan.End), func(src string) bool {
		return provenance.OpGlued(src, binOp, unOp)
	})
	if !glued || cx.Hygiene().InExternalExpansion(e.Span(bin)) {
		return
	}
	end := d.OpSpan.Start + uint32(len(binOp)+len(unOp)) // #nosec G115 -- операторы короткие
	span := source.Span{File: d.OpSpan.File, Start: d.OpSpan.Start, End: end, Ctxt: ctxt}
	app := diag.FixApplicabilityAlwaysSafe
	if ctxt != source.RootContext {
		app = diag.FixApplicabilityManualReview
	}
	b := cx.Report(SuspiciousUnaryOpFormatting, span,
		"this formatting makes the binary and unary operators look like a single operator")
	cx.Suggest(b, SuspiciousUnaryOpFormatting, lint.Suggestion{
		Title:         "add a space between",
		Span:          cx.FS.WithTrailingWhitespace(span),
		Text:          binOp + " " + unOp,
		Applicability: app,
	}).Emit()
}

// checkElse catches an `else` separated from its `if` or its branch by
// layout that hides it.
func checkElse(cx *lint.Context, ifExpr ast.ExprID, d *ast.ExprIfData) {
	e := cx.Tree.Exprs
	sp := e.Span(ifExpr)
	thenSpan, elseSpan := e.Span(d.Then), e.Span(d.Else)
	if thenSpan.Ctxt != sp.Ctxt || elseSpan.Ctxt != sp.Ctxt {
		return
	}
	isBlock := e.Kind(d.Else) == ast.ExprBlock
	gap := thenSpan.Between(elseSpan)
	hidden := cx.FS.CheckText(gap, func(src string) bool {
		return provenance.ElseGap(src, isBlock)
	})
	if !hidden || cx.Hygiene().InExternalExpansion(sp) {
		return
	}
	desc := "if"
	if isBlock {
		desc = "{..}"
	}
	cx.Report(SuspiciousElseFormatting, gap, "this is an `else "+desc+"` but the formatting might hide it").
		WithNote(source.Span{}, "to remove this lint, remove the `else` or remove the new line between `else` and `"+desc+"`").
		Emit()
}

// checkMissingElse catches `if a {} if b {}` and `if a {} {}` on one line.
func checkMissingElse(cx *lint.Context, ctxt source.ContextID, first, second ast.ExprID) {
	e := cx.Tree.Exprs
	if e.Kind(first) != ast.ExprIf {
		return
	}
	if k := e.Kind(second); k != ast.ExprIf && k != ast.ExprBlock {
		return
	}
	firstSpan, secondSpan := e.Span(first), e.Span(second)
	if firstSpan.Ctxt != ctxt || secondSpan.Ctxt != ctxt || !cx.Engine.IsSpanIf(firstSpan) {
		return
	}
	gap := firstSpan.Between(secondSpan)
	if !cx.FS.CheckText(gap, provenance.SameLineGap) {
		return
	}
	indent, _ := cx.FS.LineIndent(firstSpan)
	b := cx.Report(SuspiciousElseFormatting, gap, "this is formatted as though there should be an `else`")
	cx.Suggest(b, SuspiciousElseFormatting,
		lint.Suggestion{Title: "add an `else`", Span: gap, Text: " else ", Applicability: diag.FixApplicabilityManualReview},
		lint.Suggestion{Title: "add a line break", Span: gap, Text: "\n" + indent, Applicability: diag.FixApplicabilityManualReview},
	).Emit()
}

// checkMissingComma catches `[a -b]`, `(x &y)` and friends, descending
// through binary expressions of the same context.
func checkMissingComma(cx *lint.Context, ctxt source.ContextID, id ast.ExprID) {
	e := cx.Tree.Exprs
	d, ok := e.Binary(id)
	if !ok || e.Span(id).Ctxt != ctxt {
		return
	}
	switch d.Op {
	case ast.BinAnd, ast.BinMul, ast.BinSub, ast.BinBitAnd:
		reportMissingComma(cx, ctxt, id, d)
	}
	checkMissingComma(cx, ctxt, d.Left)
	checkMissingComma(cx, ctxt, d.Right)
}

func reportMissingComma(cx *lint.Context, ctxt source.ContextID, id ast.ExprID, d *ast.ExprBinaryData) {
	if d.OpSpan.Ctxt != ctxt {
		return
	}
	sp := cx.Tree.Exprs.Span(id)
	op := d.Op.String()
	unaryLike, ok := source.WithTextAndRange(cx.FS, d.OpSpan.WithEnd(sp.End), func(src string, start, end int) bool {
		return provenance.UnaryLikeBinary(src[:end], start, op)
	})
	if !ok || !unaryLike {
		return
	}
	lhs, ok := cx.Hygiene().WalkToContext(cx.Tree.Exprs.Span(d.Left), ctxt)
	if !ok || cx.Hygiene().InExternalExpansion(sp) {
		return
	}
	after := source.Span{File: d.OpSpan.File, Start: d.OpSpan.End, End: d.OpSpan.End, Ctxt: ctxt}
	b := cx.Report(PossibleMissingComma, d.OpSpan,
		"this is formatted like a unary operator, but it's parsed as a binary operator")
	cx.Suggest(b, PossibleMissingComma,
		lint.Suggestion{Title: "add a comma before", Span: lhs.ShrinkToEnd(), Text: ",", Applicability: diag.FixApplicabilityManualReview},
		lint.Suggestion{Title: "add a space after", Span: after, Text: " ", Applicability: diag.FixApplicabilityManualReview},
	).Emit()
}
