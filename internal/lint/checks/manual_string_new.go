package checks

import (
	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/lint"
	"rillint/internal/types"
)

// ManualStringNewCheck flags `String::from("")`, `"".to_string()`,
// `"".to_owned()` and `"".into()` producing a String.
type ManualStringNewCheck struct{}

func (ManualStringNewCheck) Lints() []*lint.Lint { return []*lint.Lint{ManualStringNew} }

func (ManualStringNewCheck) CheckExpr(cx *lint.Context, id ast.ExprID) {
	e := cx.Tree.Exprs
	switch e.Kind(id) {
	case ast.ExprCall:
		d, _ := e.Call(id)
		p, ok := e.Path(d.Callee)
		if !ok || len(d.Args) != 1 || !isEmptyStr(cx.Tree, d.Args[0]) || len(p.Segments) < 2 {
			return
		}
		owner := cx.Name(p.Segments[len(p.Segments)-2].Name)
		last := cx.Name(p.Segments[len(p.Segments)-1].Name)
		if owner != "String" || last != "from" {
			return
		}
	case ast.ExprMethodCall:
		d, _ := e.MethodCall(id)
		if len(d.Args) != 0 || !isEmptyStr(cx.Tree, d.Receiver) {
			return
		}
		switch cx.Name(d.Name) {
		case "into", "to_string", "to_owned":
		default:
			return
		}
	default:
		return
	}

	sp := e.Span(id)
	if sp.FromExpansion() || cx.Types.KindOf(id) != types.KindString {
		return
	}
	b := cx.Report(ManualStringNew, sp, "empty String is being created manually")
	cx.Suggest(b, ManualStringNew, lint.Suggestion{
		Title:         "consider using",
		Span:          sp,
		Text:          "String::new()",
		Applicability: diag.FixApplicabilityAlwaysSafe,
	}).Emit()
}

func isEmptyStr(tree *ast.Tree, id ast.ExprID) bool {
	lit, ok := tree.Exprs.Lit(id)
	if !ok {
		return false
	}
	switch lit.Kind {
	case ast.LitStr:
		return lit.Text == `""`
	case ast.LitRawStr:
		return lit.Text == `r""` || lit.Text == `r#""#`
	}
	return false
}
