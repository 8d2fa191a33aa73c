package checks

import (
	"strings"

	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/lint"
	"rillint/internal/source"
)

// NeedlessContinueCheck flags a `continue` that is the last thing a loop
// body does on some path.
type NeedlessContinueCheck struct{}

func (NeedlessContinueCheck) Lints() []*lint.Lint { return []*lint.Lint{NeedlessContinue} }

func (NeedlessContinueCheck) CheckExpr(cx *lint.Context, id ast.ExprID) {
	e := cx.Tree.Exprs
	switch e.Kind(id) {
	case ast.ExprLoop, ast.ExprWhile, ast.ExprFor:
	default:
		return
	}
	sp := e.Span(id)
	if cx.Hygiene().InExternalExpansion(sp) {
		return
	}
	d, _ := e.Loop(id)
	c := continueFinder{cx: cx, label: d.Label, ctxt: sp.Ctxt}
	c.finalBlockStmt(d.Body)
}

type continueFinder struct {
	cx    *lint.Context
	label ast.Label
	ctxt  source.ContextID
}

func (c *continueFinder) finalBlockStmt(block ast.ExprID) {
	tree := c.cx.Tree
	d, ok := tree.Exprs.Block(block)
	if !ok || len(d.Stmts) == 0 || tree.Exprs.Span(block).Ctxt != c.ctxt {
		return
	}
	last := d.Stmts[len(d.Stmts)-1]
	st, ok := tree.Stmts.Expr(last)
	if !ok || tree.Stmts.Get(last).Span.Ctxt != c.ctxt {
		return
	}
	c.finalExpr(st.Expr, false)
}

func (c *continueFinder) finalExpr(id ast.ExprID, inMatch bool) {
	e := c.cx.Tree.Exprs
	if e.Span(id).Ctxt != c.ctxt {
		return
	}
	switch e.Kind(id) {
	case ast.ExprContinue:
		d, _ := e.Jump(id)
		if c.targets(d.Label) {
			c.report(id, inMatch)
		}
	case ast.ExprIf:
		d, _ := e.If(id)
		c.finalBlockStmt(d.Then)
		if d.Else.IsValid() {
			c.finalExpr(d.Else, false)
		}
	case ast.ExprMatch:
		d, _ := e.Match(id)
		for _, arm := range d.Arms {
			if arm.Span.Ctxt == c.ctxt {
				c.finalExpr(arm.Body, true)
			}
		}
	case ast.ExprBlock:
		c.finalBlockStmt(id)
	}
}

// targets reports whether a `continue` with dst continues the loop being
// checked. An unlabelled one always does.
func (c *continueFinder) targets(dst ast.Label) bool {
	switch {
	case !dst.IsSet():
		return true
	case !c.label.IsSet():
		return false
	}
	return dst.Name == c.label.Name
}

func (c *continueFinder) report(id ast.ExprID, inMatch bool) {
	cx := c.cx
	sp := cx.Tree.Exprs.Span(id)
	// захватываем пробелы слева и `;` справа
	removal, ok := cx.FS.ExpandRangeBy(sp, func(src string, start, end int) (int, int, bool) {
		if !strings.HasPrefix(src[start:end], "continue") {
			return 0, 0, false
		}
		prefix := src[:start]
		byLo := len(prefix) - len(strings.TrimRight(prefix, " \t\r\n"))
		suffix := src[end:]
		trimmed := strings.TrimLeft(suffix, " \t\r\n")
		byHi := 0
		if strings.HasPrefix(trimmed, ";") {
			byHi = len(suffix) - len(trimmed) + 1
		}
		return byLo, byHi, true
	})
	if !ok {
		return
	}
	text := ""
	if inMatch {
		text = " {}"
	}
	app := diag.FixApplicabilityAlwaysSafe
	if c.ctxt != source.RootContext {
		app = diag.FixApplicabilityManualReview
	}
	b := cx.Report(NeedlessContinue, sp, "this `continue` expression is redundant")
	cx.Suggest(b, NeedlessContinue, lint.Suggestion{
		Title:         "remove this",
		Span:          removal,
		Text:          text,
		Applicability: app,
	}).Emit()
}
