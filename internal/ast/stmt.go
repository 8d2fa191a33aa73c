package ast

import (
	"rillint/internal/source"
)

type StmtKind uint8

const (
	StmtLet StmtKind = iota
	// StmtExpr is an expression statement, with or without `;`.
	StmtExpr
	StmtItem
	// StmtEmpty is a lone `;`.
	StmtEmpty
)

func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtExpr:
		return "Expr"
	case StmtItem:
		return "Item"
	case StmtEmpty:
		return "Empty"
	}
	return "Unknown"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtLetData struct {
	Pat  PatID
	Type TypeID
	Init ExprID
	// Else is the diverging block of `let PAT = e else { ... };`.
	Else ExprID
}

type StmtExprData struct {
	Expr ExprID
	Semi bool
}

type StmtItemData struct {
	Item ItemID
}

type Stmts struct {
	Arena *Arena[Stmt]
	Lets  *Arena[StmtLetData]
	Exprs *Arena[StmtExprData]
	Items *Arena[StmtItemData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
		Lets:  NewArena[StmtLetData](capHint / 2),
		Exprs: NewArena[StmtExprData](capHint),
		Items: NewArena[StmtItemData](8),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewLet(span source.Span, data StmtLetData) StmtID {
	return s.new(StmtLet, span, s.Lets.Allocate(data))
}

func (s *Stmts) Let(id StmtID) (*StmtLetData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID, semi bool) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Expr: expr, Semi: semi}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewItem(span source.Span, item ItemID) StmtID {
	return s.new(StmtItem, span, s.Items.Allocate(StmtItemData{Item: item}))
}

func (s *Stmts) Item(id StmtID) (*StmtItemData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtItem {
		return nil, false
	}
	return s.Items.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, 0)
}
