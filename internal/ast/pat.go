package ast

import (
	"rillint/internal/source"
)

type PatKind uint8

const (
	PatWild PatKind = iota
	// PatIdent binds a name: x, mut x.
	PatIdent
	PatLit
	// PatPath matches a unit variant or constant: None, E::A.
	PatPath
	// PatTupleStruct is Some(x), E::B(a, b).
	PatTupleStruct
	PatTuple
	PatOr
	// PatRest is `..` inside tuple patterns.
	PatRest
)

type Pat struct {
	Kind PatKind
	Span source.Span
	Name source.StringID
	Mut  bool
	// Path is an ExprPath for PatPath and PatTupleStruct.
	Path ExprID
	// Lit is an ExprLit (possibly negated) for PatLit.
	Lit   ExprID
	Elems []PatID
}

type Pats struct {
	Arena *Arena[Pat]
}

func NewPats(capHint uint) *Pats {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Pats{Arena: NewArena[Pat](capHint)}
}

func (p *Pats) New(pat Pat) PatID {
	return PatID(p.Arena.Allocate(pat))
}

func (p *Pats) Get(id PatID) *Pat {
	return p.Arena.Get(uint32(id))
}
