package ast

import "slices"

// SpanlessEq reports whether a and b are the same expression up to spans and
// expansion contexts. Identifiers compare by interned id; the parser interns
// them NFC-normalised, so `é` written either way is one name. Blocks, loops,
// closures and other expressions with statements never compare equal.
func (t *Tree) SpanlessEq(a, b ExprID) bool {
	if a == b {
		return a.IsValid()
	}
	if !a.IsValid() || !b.IsValid() {
		return false
	}
	e := t.Exprs
	// скобки не влияют на значение
	a, b = t.stripParens(a), t.stripParens(b)
	if e.Kind(a) != e.Kind(b) {
		return false
	}
	switch e.Kind(a) {
	case ExprLit:
		x, _ := e.Lit(a)
		y, _ := e.Lit(b)
		return x.Kind == y.Kind && x.Text == y.Text
	case ExprPath:
		x, _ := e.Path(a)
		y, _ := e.Path(b)
		return t.pathEq(x, y)
	case ExprUnary:
		x, _ := e.Unary(a)
		y, _ := e.Unary(b)
		return x.Op == y.Op && t.SpanlessEq(x.Operand, y.Operand)
	case ExprAddrOf:
		x, _ := e.AddrOf(a)
		y, _ := e.AddrOf(b)
		return x.Mut == y.Mut && t.SpanlessEq(x.Operand, y.Operand)
	case ExprBinary:
		x, _ := e.Binary(a)
		y, _ := e.Binary(b)
		return x.Op == y.Op && t.SpanlessEq(x.Left, y.Left) && t.SpanlessEq(x.Right, y.Right)
	case ExprCast:
		x, _ := e.Cast(a)
		y, _ := e.Cast(b)
		return t.SpanlessEq(x.Value, y.Value) && t.typeEq(x.Type, y.Type)
	case ExprCall:
		x, _ := e.Call(a)
		y, _ := e.Call(b)
		return t.SpanlessEq(x.Callee, y.Callee) && t.listEq(x.Args, y.Args)
	case ExprMethodCall:
		x, _ := e.MethodCall(a)
		y, _ := e.MethodCall(b)
		return x.Name == y.Name && t.SpanlessEq(x.Receiver, y.Receiver) &&
			t.typesEq(x.TypeArgs, y.TypeArgs) && t.listEq(x.Args, y.Args)
	case ExprField:
		x, _ := e.Field(a)
		y, _ := e.Field(b)
		return x.Name == y.Name && t.SpanlessEq(x.Target, y.Target)
	case ExprIndex:
		x, _ := e.Index(a)
		y, _ := e.Index(b)
		return t.SpanlessEq(x.Target, y.Target) && t.SpanlessEq(x.Index, y.Index)
	case ExprTry:
		x, _ := e.Inner(a)
		y, _ := e.Inner(b)
		return t.SpanlessEq(x.Inner, y.Inner)
	case ExprTuple, ExprArray:
		x, _ := e.List(a)
		y, _ := e.List(b)
		return t.listEq(x.Elems, y.Elems)
	case ExprRepeat:
		x, _ := e.Repeat(a)
		y, _ := e.Repeat(b)
		return t.SpanlessEq(x.Elem, y.Elem) && t.SpanlessEq(x.Count, y.Count)
	case ExprRange:
		x, _ := e.Range(a)
		y, _ := e.Range(b)
		return x.Inclusive == y.Inclusive && t.optEq(x.Lo, y.Lo) && t.optEq(x.Hi, y.Hi)
	case ExprStruct:
		x, _ := e.Struct(a)
		y, _ := e.Struct(b)
		if !t.SpanlessEq(x.Path, y.Path) || !t.optEq(x.Base, y.Base) || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Name != y.Fields[i].Name || !t.SpanlessEq(x.Fields[i].Value, y.Fields[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

func (t *Tree) stripParens(id ExprID) ExprID {
	for t.Exprs.Kind(id) == ExprParen {
		d, _ := t.Exprs.Inner(id)
		id = d.Inner
	}
	return id
}

func (t *Tree) optEq(a, b ExprID) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	return t.SpanlessEq(a, b)
}

func (t *Tree) listEq(a, b []ExprID) bool {
	return slices.EqualFunc(a, b, t.SpanlessEq)
}

func (t *Tree) pathEq(x, y *ExprPathData) bool {
	if !slices.EqualFunc(x.Segments, y.Segments, func(a, b PathSegment) bool { return a.Name == b.Name }) {
		return false
	}
	return x.GenericSeg == y.GenericSeg && t.typesEq(x.GenericArgs, y.GenericArgs)
}

func (t *Tree) typesEq(a, b []TypeID) bool {
	return slices.EqualFunc(a, b, t.typeEq)
}

func (t *Tree) typeEq(a, b TypeID) bool {
	x, y := t.Types.Get(a), t.Types.Get(b)
	if x == nil || y == nil {
		return x == y
	}
	if x.Kind != y.Kind || x.Mut != y.Mut {
		return false
	}
	if !slices.EqualFunc(x.Path, y.Path, func(a, b PathSegment) bool { return a.Name == b.Name }) {
		return false
	}
	if !t.typesEq(x.Args, y.Args) {
		return false
	}
	if x.Elem != NoTypeID || y.Elem != NoTypeID {
		if !t.typeEq(x.Elem, y.Elem) {
			return false
		}
	}
	return t.optEq(x.Len, y.Len)
}

// CanHaveSideEffects reports whether evaluating expr may do more than read
// values: calls, assignments, control flow and anything unknown count.
func (t *Tree) CanHaveSideEffects(expr ExprID) bool {
	if !expr.IsValid() {
		return false
	}
	e := t.Exprs
	switch e.Kind(expr) {
	case ExprLit, ExprPath:
		return false
	case ExprUnary, ExprAddrOf, ExprCast, ExprField, ExprParen, ExprBinary,
		ExprTuple, ExprArray, ExprRepeat, ExprRange, ExprStruct:
		effect := false
		t.ForEachChild(ExprNode(expr), func(n Node) {
			if id, ok := n.Expr(); ok && t.CanHaveSideEffects(id) {
				effect = true
			}
		})
		return effect
	}
	return true
}
