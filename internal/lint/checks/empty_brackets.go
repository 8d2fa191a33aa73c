package checks

import (
	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/lint"
	"rillint/internal/scanner"
	"rillint/internal/source"
)

// EmptyWithBrackets flags `struct S {}`, `struct S();` and enum variants
// such as `A()` that could drop their brackets.
type EmptyWithBrackets struct{}

func (EmptyWithBrackets) Lints() []*lint.Lint {
	return []*lint.Lint{EmptyStructsWithBrackets, EmptyEnumVariantsWithBrackets}
}

func (EmptyWithBrackets) CheckItem(cx *lint.Context, id ast.ItemID) {
	if d, ok := cx.Tree.Items.Struct(id); ok {
		item := cx.Tree.Items.Get(id)
		afterName := item.Span.WithStart(item.NameSpan.End)
		if !emptyBrackets(cx, d, afterName) {
			return
		}
		b := cx.Report(EmptyStructsWithBrackets, afterName, "found empty brackets on struct declaration")
		cx.Suggest(b, EmptyStructsWithBrackets, lint.Suggestion{
			Title:         "remove the brackets",
			Span:          afterName,
			Text:          ";",
			Applicability: diag.FixApplicabilityManualReview,
		}).Emit()
		return
	}
	if d, ok := cx.Tree.Items.Enum(id); ok {
		for i := range d.Variants {
			v := &d.Variants[i]
			afterName := v.Span.WithStart(v.NameSpan.End)
			if !emptyBrackets(cx, v, afterName) {
				continue
			}
			b := cx.Report(EmptyEnumVariantsWithBrackets, afterName, "enum variant has empty brackets")
			cx.Suggest(b, EmptyEnumVariantsWithBrackets, lint.Suggestion{
				Title:         "remove the brackets",
				Span:          afterName,
				Text:          "",
				Applicability: diag.FixApplicabilityManualReview,
			}).Emit()
		}
	}
}

// emptyBrackets reports whether d has brackets, no fields and no identifier
// at all in the text after its name. Text that cannot be read never counts.
func emptyBrackets(cx *lint.Context, d *ast.VariantData, afterName source.Span) bool {
	if d.Shape == ast.ShapeUnit || len(d.Fields) != 0 {
		return false
	}
	noIdents, ok := source.WithText(cx.FS, afterName, func(src string) bool {
		return !scanner.HasIdent(src)
	})
	return ok && noIdents
}
