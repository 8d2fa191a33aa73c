package parser

import (
	"fmt"
	"strings"
	"testing"

	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, src string) (*ast.Tree, *source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rl", []byte(src))
	bag := diag.NewBag(100)
	res := ParseFile(fs, fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return res.Tree, fs, bag
}

// parseClean parses src and fails the test on any diagnostic.
func parseClean(t *testing.T, src string) (*ast.Tree, *source.FileSet) {
	t.Helper()
	tree, fs, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(bag))
	}
	return tree, fs
}

// fnBody returns the statements of the first function of tree.
func fnBody(t *testing.T, tree *ast.Tree) []ast.StmtID {
	t.Helper()
	for _, it := range tree.Root {
		fn, ok := tree.Items.Fn(it)
		if !ok {
			continue
		}
		b, ok := tree.Exprs.Block(fn.Body)
		if !ok {
			t.Fatalf("function body is %s, not a block", tree.Exprs.Kind(fn.Body))
		}
		return b.Stmts
	}
	t.Fatal("no function in tree")
	return nil
}

// stmtExpr returns the expression of an expression statement or the
// initializer of a let statement.
func stmtExpr(t *testing.T, tree *ast.Tree, id ast.StmtID) ast.ExprID {
	t.Helper()
	if es, ok := tree.Stmts.Expr(id); ok {
		return es.Expr
	}
	if ls, ok := tree.Stmts.Let(id); ok {
		return ls.Init
	}
	t.Fatalf("statement %d has no expression", id)
	return ast.NoExprID
}

// sexpr renders the shape of an expression for compact assertions.
func sexpr(tree *ast.Tree, id ast.ExprID) string {
	e := tree.Exprs
	switch e.Kind(id) {
	case ast.ExprLit:
		d, _ := e.Lit(id)
		return d.Text
	case ast.ExprPath:
		d, _ := e.Path(id)
		return tree.PathName(d.Segments)
	case ast.ExprUnary:
		d, _ := e.Unary(id)
		return fmt.Sprintf("(%s %s)", d.Op, sexpr(tree, d.Operand))
	case ast.ExprAddrOf:
		d, _ := e.AddrOf(id)
		if d.Mut {
			return fmt.Sprintf("(&mut %s)", sexpr(tree, d.Operand))
		}
		return fmt.Sprintf("(& %s)", sexpr(tree, d.Operand))
	case ast.ExprBinary:
		d, _ := e.Binary(id)
		return fmt.Sprintf("(%s %s %s)", d.Op, sexpr(tree, d.Left), sexpr(tree, d.Right))
	case ast.ExprAssign:
		d, _ := e.Assign(id)
		return fmt.Sprintf("(= %s %s)", sexpr(tree, d.Left), sexpr(tree, d.Right))
	case ast.ExprAssignOp:
		d, _ := e.Assign(id)
		return fmt.Sprintf("(%s= %s %s)", d.Op, sexpr(tree, d.Left), sexpr(tree, d.Right))
	case ast.ExprCast:
		d, _ := e.Cast(id)
		return fmt.Sprintf("(as %s %s)", sexpr(tree, d.Value), tree.PathName(tree.Types.Get(d.Type).Path))
	case ast.ExprCall:
		d, _ := e.Call(id)
		parts := []string{"call", sexpr(tree, d.Callee)}
		for _, a := range d.Args {
			parts = append(parts, sexpr(tree, a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprMethodCall:
		d, _ := e.MethodCall(id)
		parts := []string{"." + tree.Name(d.Name) + "()", sexpr(tree, d.Receiver)}
		for _, a := range d.Args {
			parts = append(parts, sexpr(tree, a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprField:
		d, _ := e.Field(id)
		return fmt.Sprintf("(.%s %s)", tree.Name(d.Name), sexpr(tree, d.Target))
	case ast.ExprIndex:
		d, _ := e.Index(id)
		return fmt.Sprintf("(index %s %s)", sexpr(tree, d.Target), sexpr(tree, d.Index))
	case ast.ExprTry:
		d, _ := e.Inner(id)
		return fmt.Sprintf("(? %s)", sexpr(tree, d.Inner))
	case ast.ExprParen:
		d, _ := e.Inner(id)
		return fmt.Sprintf("(paren %s)", sexpr(tree, d.Inner))
	case ast.ExprRange:
		d, _ := e.Range(id)
		op := ".."
		if d.Inclusive {
			op = "..="
		}
		return fmt.Sprintf("(%s %s %s)", op, sexpr(tree, d.Lo), sexpr(tree, d.Hi))
	case ast.ExprTuple, ast.ExprArray:
		d, _ := e.List(id)
		parts := []string{strings.ToLower(e.Kind(id).String())}
		for _, x := range d.Elems {
			parts = append(parts, sexpr(tree, x))
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	if !id.IsValid() {
		return "_"
	}
	return strings.ToLower(e.Kind(id).String())
}

func spanText(t *testing.T, fs *source.FileSet, sp source.Span) string {
	t.Helper()
	text, ok := fs.Text(sp)
	if !ok {
		t.Fatalf("no text for span %s", sp)
	}
	return text
}
