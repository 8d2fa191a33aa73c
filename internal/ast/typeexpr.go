package ast

import (
	"rillint/internal/source"
)

type TypeKind uint8

const (
	// TypePath is a named type with optional generic arguments: u8, Option<T>.
	TypePath TypeKind = iota
	TypeRef
	TypeTuple
	TypeArray
	TypeSlice
	// TypeInfer is `_`.
	TypeInfer
	// TypeNever is `!`.
	TypeNever
)

// Type is a written type. Only the fields relevant to Kind are set.
type Type struct {
	Kind TypeKind
	Span source.Span
	// Path holds the segments of TypePath.
	Path []PathSegment
	Args []TypeID
	Elem TypeID
	Mut  bool
	Len  ExprID
}

type Types struct {
	Arena *Arena[Type]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Types{Arena: NewArena[Type](capHint)}
}

func (t *Types) New(typ Type) TypeID {
	return TypeID(t.Arena.Allocate(typ))
}

func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}
