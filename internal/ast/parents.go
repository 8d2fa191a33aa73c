package ast

// Parents maps every node to the node that contains it.
type Parents struct {
	items []Node
	stmts []Node
	exprs []Node
}

// BuildParents walks t once and records parent links.
func BuildParents(t *Tree) *Parents {
	p := &Parents{
		items: make([]Node, t.Items.Arena.Len()+1),
		stmts: make([]Node, t.Stmts.Arena.Len()+1),
		exprs: make([]Node, t.Exprs.Arena.Len()+1),
	}
	var visit func(parent Node) func(Node)
	visit = func(parent Node) func(Node) {
		return func(child Node) {
			p.set(child, parent)
			t.ForEachChild(child, visit(child))
		}
	}
	for _, item := range t.Root {
		visit(Node{})(ItemNode(item))
	}
	return p
}

func (p *Parents) slot(n Node) *Node {
	var table []Node
	switch n.Kind {
	case NodeItem:
		table = p.items
	case NodeStmt:
		table = p.stmts
	case NodeExpr:
		table = p.exprs
	default:
		return nil
	}
	if int(n.ID) >= len(table) {
		return nil
	}
	return &table[n.ID]
}

func (p *Parents) set(child, parent Node) {
	if s := p.slot(child); s != nil {
		*s = parent
	}
}

// Parent returns the parent of n; false for top-level items.
func (p *Parents) Parent(n Node) (Node, bool) {
	s := p.slot(n)
	if s == nil || s.Kind == NodeNone {
		return Node{}, false
	}
	return *s, true
}

// ParentExpr returns the closest enclosing expression of an expression.
func (p *Parents) ParentExpr(id ExprID) (ExprID, bool) {
	n, ok := p.Parent(ExprNode(id))
	if !ok {
		return NoExprID, false
	}
	e, ok := n.Expr()
	return e, ok
}
