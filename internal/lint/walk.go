package lint

import (
	"rillint/internal/ast"
)

type dispatch struct {
	files  []FileChecker
	items  []ItemChecker
	stmts  []StmtChecker
	blocks []BlockChecker
	exprs  []ExprChecker
}

// add registers c unless every lint it declares is allowed.
func (d *dispatch) add(cx *Context, c Check) {
	on := false
	for _, l := range c.Lints() {
		if cx.Enabled(l) {
			on = true
			break
		}
	}
	if !on {
		return
	}
	if f, ok := c.(FileChecker); ok {
		d.files = append(d.files, f)
	}
	if f, ok := c.(ItemChecker); ok {
		d.items = append(d.items, f)
	}
	if f, ok := c.(StmtChecker); ok {
		d.stmts = append(d.stmts, f)
	}
	if f, ok := c.(BlockChecker); ok {
		d.blocks = append(d.blocks, f)
	}
	if f, ok := c.(ExprChecker); ok {
		d.exprs = append(d.exprs, f)
	}
}

// Walk runs the checks of reg over cx.Tree in one pre-order traversal.
// For every node the checks are called in registry order.
func Walk(cx *Context, reg *Registry) {
	var d dispatch
	for _, c := range reg.checks {
		d.add(cx, c)
	}
	for _, f := range d.files {
		f.CheckFile(cx)
	}
	if len(d.items)+len(d.stmts)+len(d.blocks)+len(d.exprs) == 0 {
		return
	}
	cx.Tree.Inspect(func(n ast.Node) bool {
		switch n.Kind {
		case ast.NodeItem:
			id, _ := n.Item()
			for _, c := range d.items {
				c.CheckItem(cx, id)
			}
		case ast.NodeStmt:
			id, _ := n.Stmt()
			for _, c := range d.stmts {
				c.CheckStmt(cx, id)
			}
		case ast.NodeExpr:
			id, _ := n.Expr()
			if cx.Tree.Exprs.Kind(id) == ast.ExprBlock {
				for _, c := range d.blocks {
					c.CheckBlock(cx, id)
				}
			}
			for _, c := range d.exprs {
				c.CheckExpr(cx, id)
			}
		}
		return true
	})
}
