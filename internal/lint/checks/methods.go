package checks

import (
	"fmt"
	"strings"

	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/lint"
	"rillint/internal/snippet"
	"rillint/internal/source"
	"rillint/internal/types"
)

// Methods dispatches method calls to the lints about them.
type Methods struct{}

func (Methods) Lints() []*lint.Lint {
	return []*lint.Lint{IterNthZero, OrThenUnwrap, ManualOkOr, UnnecessaryLazyEvaluations}
}

// lazyMethods maps a method taking a closure to its eager twin.
var lazyMethods = map[string]string{
	"unwrap_or_else":     "unwrap_or",
	"or_else":            "or",
	"and_then":           "and",
	"get_or_insert_with": "get_or_insert",
	"ok_or_else":         "ok_or",
	"then":               "then_some",
}

func (Methods) CheckExpr(cx *lint.Context, id ast.ExprID) {
	call, ok := cx.Tree.Exprs.MethodCall(id)
	if !ok || cx.Tree.Exprs.Span(id).FromExpansion() {
		return
	}
	name := cx.Name(call.Name)
	switch {
	case name == "nth" && len(call.Args) == 1:
		checkIterNthZero(cx, id, call)
	case name == "unwrap" && len(call.Args) == 0:
		checkOrThenUnwrap(cx, id, call)
	case name == "map_or" && len(call.Args) == 2:
		checkManualOkOr(cx, id, call)
	case len(call.Args) == 1:
		if eager, ok := lazyMethods[name]; ok {
			checkLazyEval(cx, id, call, eager)
		}
	}
}

func checkIterNthZero(cx *lint.Context, id ast.ExprID, call *ast.ExprMethodCallData) {
	if cx.Types.KindOf(call.Receiver) != types.KindIter || !isIntZero(cx.Tree, call.Args[0]) {
		return
	}
	app := snippet.AlwaysSafe
	recv := snippet.WithApplicability(cx.FS, cx.Tree.Exprs.Span(call.Receiver), "..", &app)
	sp := cx.Tree.Exprs.Span(id)
	b := cx.Report(IterNthZero, sp, "called `.nth(0)` on an iterator, when `.next()` is equivalent")
	cx.Suggest(b, IterNthZero, lint.Suggestion{
		Title:         "try calling `.next()` instead of `.nth(0)`",
		Span:          sp,
		Text:          recv + ".next()",
		Applicability: app,
	}).Emit()
}

func checkOrThenUnwrap(cx *lint.Context, id ast.ExprID, unwrap *ast.ExprMethodCallData) {
	e := cx.Tree.Exprs
	or, ok := e.MethodCall(unwrap.Receiver)
	if !ok || cx.Name(or.Name) != "or" || len(or.Args) != 1 {
		return
	}
	var msg, ctor string
	switch cx.Types.KindOf(or.Receiver) {
	case types.KindOption:
		msg, ctor = "found `.or(Some(…)).unwrap()`", "Some"
	case types.KindResult:
		msg, ctor = "found `.or(Ok(…)).unwrap()`", "Ok"
	default:
		return
	}
	arg, ok := ctorArg(cx, or.Args[0], ctor)
	if !ok {
		return
	}
	app := snippet.AlwaysSafe
	val, _ := snippet.WithContext(cx.FS, e.Span(arg), source.RootContext, "..", &app)
	sp := e.Span(id).WithStart(or.NameSpan.Start)
	b := cx.Report(OrThenUnwrap, sp, msg)
	cx.Suggest(b, OrThenUnwrap, lint.Suggestion{
		Title:         "try",
		Span:          sp,
		Text:          "unwrap_or(" + val + ")",
		Applicability: app,
	}).Emit()
}

func checkManualOkOr(cx *lint.Context, id ast.ExprID, call *ast.ExprMethodCallData) {
	if cx.Types.KindOf(call.Receiver) != types.KindOption || cx.Engine.IsExpansionGenerated(id) {
		return
	}
	errArg, ok := ctorArg(cx, call.Args[0], "Err")
	if !ok || !isOkWrapping(cx, call.Args[1]) {
		return
	}
	e := cx.Tree.Exprs
	sp := e.Span(id)
	indent, ok := cx.FS.IndentOf(sp)
	if !ok {
		return
	}
	// аргументы из макросов берём текстом вызова, но уже не AlwaysSafe
	app := snippet.AlwaysSafe
	recv, _ := snippet.WithContext(cx.FS, e.Span(call.Receiver), sp.Ctxt, "..", &app)
	errText, _ := snippet.WithContext(cx.FS, e.Span(errArg), sp.Ctxt, "..", &app)
	b := cx.Report(ManualOkOr, sp, "this pattern reimplements `Option::ok_or`")
	cx.Suggest(b, ManualOkOr, lint.Suggestion{
		Title:         "replace with",
		Span:          sp,
		Text:          fmt.Sprintf("%s.ok_or(%s)", recv, snippet.Reindent(errText, true, indent+4)),
		Applicability: app,
	}).Emit()
}

// isOkWrapping accepts `Ok` and `|v| Ok(v)`.
func isOkWrapping(cx *lint.Context, id ast.ExprID) bool {
	e := cx.Tree.Exprs
	if isPathNamed(cx, id, "Ok") {
		return true
	}
	cl, ok := e.Closure(id)
	if !ok || len(cl.Params) != 1 {
		return false
	}
	param := cx.Tree.Pats.Get(cl.Params[0].Pat)
	if param == nil || param.Kind != ast.PatIdent {
		return false
	}
	arg, ok := ctorArg(cx, cl.Body, "Ok")
	if !ok {
		return false
	}
	p, ok := e.Path(arg)
	return ok && len(p.Segments) == 1 && p.Segments[0].Name == param.Name
}

func checkLazyEval(cx *lint.Context, id ast.ExprID, call *ast.ExprMethodCallData, eager string) {
	e := cx.Tree.Exprs
	cl, ok := e.Closure(call.Args[0])
	if !ok {
		return
	}
	kind := cx.Types.KindOf(call.Receiver)
	if (eager == "then_some") != (kind == types.KindBool) {
		return
	}
	var msg string
	switch kind {
	case types.KindBool:
		msg = "unnecessary closure used with `bool::then`"
	case types.KindOption:
		msg = "unnecessary closure used to substitute value for `Option::None`"
	case types.KindResult:
		msg = "unnecessary closure used to substitute value for `Result::Err`"
	default:
		return
	}
	if paramsUsed(cx, cl) || cx.Engine.IsExpansionGenerated(id) || !cheap(cx, cl.Body) {
		return
	}

	app := diag.FixApplicabilityAlwaysSafe
	for _, p := range cl.Params {
		pat := cx.Tree.Pats.Get(p.Pat)
		if pat == nil || (pat.Kind != ast.PatIdent && pat.Kind != ast.PatWild) {
			app = diag.FixApplicabilityManualReview
		}
	}
	if ret := cx.Tree.Types.Get(cl.Ret); ret != nil && ret.Kind != ast.TypeInfer {
		// без замыкания пропадает подсказка для вывода типов
		app = diag.FixApplicabilityManualReview
	}

	sp := e.Span(id)
	body := snippet.Snippet(cx.FS, e.Span(cl.Body), "..")
	b := cx.Report(UnnecessaryLazyEvaluations, sp, msg)
	cx.Suggest(b, UnnecessaryLazyEvaluations, lint.Suggestion{
		Title:         "use `" + eager + "` instead",
		Span:          sp.WithStart(call.NameSpan.Start),
		Text:          eager + "(" + body + ")",
		Applicability: app,
	}).Emit()
}

// paramsUsed reports whether the closure body mentions any name bound by
// its parameters.
func paramsUsed(cx *lint.Context, cl *ast.ExprClosureData) bool {
	bound := map[source.StringID]bool{}
	for _, p := range cl.Params {
		collectBindings(cx.Tree, p.Pat, bound)
	}
	if len(bound) == 0 {
		return false
	}
	used := false
	cx.Tree.InspectFrom(ast.ExprNode(cl.Body), func(n ast.Node) bool {
		id, ok := n.Expr()
		if !ok {
			return !used
		}
		if p, ok := cx.Tree.Exprs.Path(id); ok && len(p.Segments) == 1 && bound[p.Segments[0].Name] {
			used = true
		}
		return !used
	})
	return used
}

func collectBindings(tree *ast.Tree, id ast.PatID, out map[source.StringID]bool) {
	p := tree.Pats.Get(id)
	if p == nil {
		return
	}
	if p.Kind == ast.PatIdent {
		out[p.Name] = true
	}
	for _, el := range p.Elems {
		collectBindings(tree, el, out)
	}
}

// cheap reports whether evaluating id eagerly costs nothing and cannot
// panic: literals, names, field reads and constructors of those.
func cheap(cx *lint.Context, id ast.ExprID) bool {
	e := cx.Tree.Exprs
	switch e.Kind(id) {
	case ast.ExprLit, ast.ExprPath:
		return true
	case ast.ExprField:
		d, _ := e.Field(id)
		return cheap(cx, d.Target)
	case ast.ExprParen:
		d, _ := e.Inner(id)
		return cheap(cx, d.Inner)
	case ast.ExprAddrOf:
		d, _ := e.AddrOf(id)
		return cheap(cx, d.Operand)
	case ast.ExprUnary:
		d, _ := e.Unary(id)
		return d.Op == ast.UnNot && cheap(cx, d.Operand)
	case ast.ExprTuple, ast.ExprArray:
		d, _ := e.List(id)
		for _, x := range d.Elems {
			if !cheap(cx, x) {
				return false
			}
		}
		return true
	case ast.ExprBinary:
		d, _ := e.Binary(id)
		switch d.Op {
		case ast.BinAnd, ast.BinOr, ast.BinEq, ast.BinNe, ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe,
			ast.BinBitAnd, ast.BinBitOr, ast.BinBitXor:
			return cheap(cx, d.Left) && cheap(cx, d.Right)
		}
		return false
	case ast.ExprCall:
		d, _ := e.Call(id)
		for _, ctor := range []string{"Some", "Ok", "Err"} {
			if isPathNamed(cx, d.Callee, ctor) {
				for _, a := range d.Args {
					if !cheap(cx, a) {
						return false
					}
				}
				return true
			}
		}
	}
	return false
}

// ctorArg unwraps `Ctor(x)` and returns x.
func ctorArg(cx *lint.Context, id ast.ExprID, ctor string) (ast.ExprID, bool) {
	d, ok := cx.Tree.Exprs.Call(id)
	if !ok || len(d.Args) != 1 || !isPathNamed(cx, d.Callee, ctor) {
		return ast.NoExprID, false
	}
	return d.Args[0], true
}

// isPathNamed reports whether id is a path whose last segment is name:
// `Some`, `Option::Some`.
func isPathNamed(cx *lint.Context, id ast.ExprID, name string) bool {
	p, ok := cx.Tree.Exprs.Path(id)
	if !ok || len(p.Segments) == 0 {
		return false
	}
	return cx.Name(p.Segments[len(p.Segments)-1].Name) == name
}

func isIntZero(tree *ast.Tree, id ast.ExprID) bool {
	lit, ok := tree.Exprs.Lit(id)
	if !ok || lit.Kind != ast.LitInt {
		return false
	}
	digits := strings.TrimSuffix(lit.Text, lit.Suffix)
	digits = strings.ReplaceAll(digits, "_", "")
	if p := strings.ToLower(digits); strings.HasPrefix(p, "0x") || strings.HasPrefix(p, "0o") || strings.HasPrefix(p, "0b") {
		digits = digits[2:]
	}
	return digits != "" && strings.Trim(digits, "0") == ""
}
