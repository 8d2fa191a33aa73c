package checks

import (
	"rillint/internal/ast"
	"rillint/internal/lint"
	"rillint/internal/snippet"
	"rillint/internal/types"
)

// BoolComparisonCheck flags `x == true`, `x != false` and their negated
// forms, suggesting `x` or `!x`.
type BoolComparisonCheck struct{}

func (BoolComparisonCheck) Lints() []*lint.Lint { return []*lint.Lint{BoolComparison} }

func (BoolComparisonCheck) CheckExpr(cx *lint.Context, id ast.ExprID) {
	e := cx.Tree.Exprs
	d, ok := e.Binary(id)
	if !ok || (d.Op != ast.BinEq && d.Op != ast.BinNe) {
		return
	}
	sp := e.Span(id)
	if sp.FromExpansion() || cx.Engine.IsExpansionGenerated(id) {
		return
	}
	other, lit, ok := boolOperand(cx.Tree, d.Left, d.Right)
	if !ok {
		return
	}
	if cx.Types.Types.Kind(cx.Types.TypeOf(other)) != types.KindBool {
		return
	}

	// `== true` и `!= false` ничего не меняют
	keep := lit == (d.Op == ast.BinEq)
	var msg string
	switch {
	case d.Op == ast.BinEq && lit:
		msg = "equality checks against true are unnecessary"
	case d.Op == ast.BinEq:
		msg = "equality checks against false can be replaced by a negation"
	case lit:
		msg = "inequality checks against true can be replaced by a negation"
	default:
		msg = "inequality checks against false are unnecessary"
	}

	app := snippet.AlwaysSafe
	sugg := snippet.SuggOf(cx.FS, cx.Tree, other, sp.Ctxt, &app)
	if !keep {
		sugg = sugg.Not()
	}
	text, app := snippet.AssembleSuggestion(cx.FS, sp, sugg.Text, snippet.Hint{
		Applicability: app,
		Position:      snippet.PositionOf(cx.Tree, cx.Parents, id),
		Prec:          sugg.Prec,
		From:          e.Span(other),
		UnknownPrec:   sugg.Unknown,
	})
	b := cx.Report(BoolComparison, sp, msg)
	cx.Suggest(b, BoolComparison, lint.Suggestion{
		Title:         "try simplifying it as shown",
		Span:          sp,
		Text:          text,
		Applicability: app,
	}).Emit()
}

// boolOperand splits a comparison into the operand under test and the bool
// literal it is compared with. A literal on both sides is left alone.
func boolOperand(tree *ast.Tree, left, right ast.ExprID) (other ast.ExprID, lit, ok bool) {
	l, lok := boolLit(tree, left)
	r, rok := boolLit(tree, right)
	switch {
	case lok && !rok:
		return right, l, true
	case rok && !lok:
		return left, r, true
	}
	return ast.NoExprID, false, false
}

func boolLit(tree *ast.Tree, id ast.ExprID) (value, ok bool) {
	lit, ok := tree.Exprs.Lit(id)
	if !ok || lit.Kind != ast.LitBool {
		return false, false
	}
	return lit.Text == "true", true
}
