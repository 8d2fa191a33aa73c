package ast

// NodeKind tells which arena a Node points into.
type NodeKind uint8

const (
	NodeNone NodeKind = iota
	NodeItem
	NodeStmt
	NodeExpr
)

// Node is a reference to an item, statement or expression of a Tree.
type Node struct {
	Kind NodeKind
	ID   uint32
}

func ItemNode(id ItemID) Node { return Node{Kind: NodeItem, ID: uint32(id)} }
func StmtNode(id StmtID) Node { return Node{Kind: NodeStmt, ID: uint32(id)} }
func ExprNode(id ExprID) Node { return Node{Kind: NodeExpr, ID: uint32(id)} }

func (n Node) Item() (ItemID, bool) { return ItemID(n.ID), n.Kind == NodeItem }
func (n Node) Stmt() (StmtID, bool) { return StmtID(n.ID), n.Kind == NodeStmt }
func (n Node) Expr() (ExprID, bool) { return ExprID(n.ID), n.Kind == NodeExpr }

// ForEachChild calls fn for every direct child of n in source order.
func (t *Tree) ForEachChild(n Node, fn func(Node)) {
	expr := func(id ExprID) {
		if id.IsValid() {
			fn(ExprNode(id))
		}
	}
	switch n.Kind {
	case NodeItem:
		id := ItemID(n.ID)
		if f, ok := t.Items.Fn(id); ok {
			expr(f.Body)
		}
		if c, ok := t.Items.Const(id); ok {
			expr(c.Value)
		}
	case NodeStmt:
		id := StmtID(n.ID)
		if l, ok := t.Stmts.Let(id); ok {
			expr(l.Init)
			expr(l.Else)
		}
		if e, ok := t.Stmts.Expr(id); ok {
			expr(e.Expr)
		}
		if it, ok := t.Stmts.Item(id); ok {
			fn(ItemNode(it.Item))
		}
	case NodeExpr:
		t.forEachExprChild(ExprID(n.ID), expr, fn)
	}
}

func (t *Tree) forEachExprChild(id ExprID, expr func(ExprID), fn func(Node)) {
	e := t.Exprs
	switch e.Kind(id) {
	case ExprUnary:
		d, _ := e.Unary(id)
		expr(d.Operand)
	case ExprAddrOf:
		d, _ := e.AddrOf(id)
		expr(d.Operand)
	case ExprBinary:
		d, _ := e.Binary(id)
		expr(d.Left)
		expr(d.Right)
	case ExprAssign, ExprAssignOp:
		d, _ := e.Assign(id)
		expr(d.Left)
		expr(d.Right)
	case ExprCast:
		d, _ := e.Cast(id)
		expr(d.Value)
	case ExprCall:
		d, _ := e.Call(id)
		expr(d.Callee)
		for _, a := range d.Args {
			expr(a)
		}
	case ExprMethodCall:
		d, _ := e.MethodCall(id)
		expr(d.Receiver)
		for _, a := range d.Args {
			expr(a)
		}
	case ExprField:
		d, _ := e.Field(id)
		expr(d.Target)
	case ExprIndex:
		d, _ := e.Index(id)
		expr(d.Target)
		expr(d.Index)
	case ExprTry, ExprParen:
		d, _ := e.Inner(id)
		expr(d.Inner)
	case ExprTuple, ExprArray:
		d, _ := e.List(id)
		for _, x := range d.Elems {
			expr(x)
		}
	case ExprRepeat:
		d, _ := e.Repeat(id)
		expr(d.Elem)
		expr(d.Count)
	case ExprBlock:
		d, _ := e.Block(id)
		for _, s := range d.Stmts {
			fn(StmtNode(s))
		}
	case ExprIf:
		d, _ := e.If(id)
		expr(d.Cond)
		expr(d.Then)
		expr(d.Else)
	case ExprLet:
		d, _ := e.Let(id)
		expr(d.Init)
	case ExprWhile, ExprLoop, ExprFor:
		d, _ := e.Loop(id)
		expr(d.Cond)
		expr(d.Iter)
		expr(d.Body)
	case ExprMatch:
		d, _ := e.Match(id)
		expr(d.Scrutinee)
		for _, arm := range d.Arms {
			expr(arm.Guard)
			expr(arm.Body)
		}
	case ExprClosure:
		d, _ := e.Closure(id)
		expr(d.Body)
	case ExprBreak, ExprContinue, ExprReturn:
		d, _ := e.Jump(id)
		expr(d.Value)
	case ExprStruct:
		d, _ := e.Struct(id)
		expr(d.Path)
		for _, f := range d.Fields {
			expr(f.Value)
		}
		expr(d.Base)
	case ExprRange:
		d, _ := e.Range(id)
		expr(d.Lo)
		expr(d.Hi)
	}
}

// Inspect walks the tree depth-first in source order. fn returning false
// skips the children of that node.
func (t *Tree) Inspect(fn func(n Node) bool) {
	var visit func(Node)
	visit = func(n Node) {
		if fn(n) {
			t.ForEachChild(n, visit)
		}
	}
	for _, item := range t.Root {
		visit(ItemNode(item))
	}
}

// InspectFrom walks the subtree rooted at n.
func (t *Tree) InspectFrom(n Node, fn func(n Node) bool) {
	var visit func(Node)
	visit = func(n Node) {
		if fn(n) {
			t.ForEachChild(n, visit)
		}
	}
	visit(n)
}
