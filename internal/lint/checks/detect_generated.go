package checks

import (
	"rillint/internal/ast"
	"rillint/internal/lint"
	"rillint/internal/source"
)

// DetectGeneratedCheck reports every item, expression, type and pattern the
// provenance engine considers generated. It exists to test the engine.
type DetectGeneratedCheck struct{}

func (DetectGeneratedCheck) Lints() []*lint.Lint { return []*lint.Lint{DetectGenerated} }

func (DetectGeneratedCheck) CheckFile(cx *lint.Context) {
	t := cx.Tree
	report := func(span source.Span) {
		if !cx.Hygiene().InExternalExpansion(span) {
			cx.Report(DetectGenerated, span, "detected generated code").Emit()
		}
	}
	for id, item := range t.Items.Arena.All() {
		if cx.Engine.IsItemGenerated(ast.ItemID(id)) {
			report(item.Span)
		}
	}
	for id, expr := range t.Exprs.Arena.All() {
		if expr.Kind != ast.ExprBad && cx.Engine.IsExpansionGenerated(ast.ExprID(id)) {
			report(expr.Span)
		}
	}
	for id, typ := range t.Types.Arena.All() {
		if cx.Engine.IsTypeGenerated(ast.TypeID(id)) {
			report(typ.Span)
		}
	}
	for id, pat := range t.Pats.Arena.All() {
		if cx.Engine.IsPatGenerated(ast.PatID(id)) {
			report(pat.Span)
		}
	}
}
