package ast

import (
	"rillint/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemStruct
	ItemEnum
	ItemConst
	// ItemMacro is a template macro definition; its body lives in the expander.
	ItemMacro
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "Fn"
	case ItemStruct:
		return "Struct"
	case ItemEnum:
		return "Enum"
	case ItemConst:
		return "Const"
	case ItemMacro:
		return "Macro"
	}
	return "Unknown"
}

type Item struct {
	Kind     ItemKind
	Span     source.Span
	Name     source.StringID
	NameSpan source.Span
	Payload  PayloadID
}

type FnParam struct {
	Pat  PatID
	Type TypeID
	Span source.Span
}

type FnData struct {
	Params []FnParam
	Ret    TypeID
	Body   ExprID
}

// VariantShape is how a struct or enum variant declares its fields.
type VariantShape uint8

const (
	// ShapeUnit has no brackets at all: `struct S;`, `A`.
	ShapeUnit VariantShape = iota
	// ShapeTuple uses parentheses: `struct S(u8);`.
	ShapeTuple
	// ShapeNamed uses braces: `struct S { a: u8 }`.
	ShapeNamed
)

type FieldDef struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
	Span     source.Span
}

// VariantData describes a struct body or one enum variant.
type VariantData struct {
	Name     source.StringID
	NameSpan source.Span
	Shape    VariantShape
	Fields   []FieldDef
	// BodySpan covers the brackets, delimiters included; empty for ShapeUnit.
	BodySpan source.Span
	Span     source.Span
}

type EnumData struct {
	Variants []VariantData
}

type ConstData struct {
	Type  TypeID
	Value ExprID
}

type MacroData struct {
	Params   []source.StringID
	External bool
	BodySpan source.Span
}

type Items struct {
	Arena   *Arena[Item]
	Fns     *Arena[FnData]
	Structs *Arena[VariantData]
	Enums   *Arena[EnumData]
	Consts  *Arena[ConstData]
	Macros  *Arena[MacroData]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:   NewArena[Item](capHint),
		Fns:     NewArena[FnData](capHint),
		Structs: NewArena[VariantData](8),
		Enums:   NewArena[EnumData](8),
		Consts:  NewArena[ConstData](8),
		Macros:  NewArena[MacroData](8),
	}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) new(kind ItemKind, span source.Span, name source.StringID, nameSpan source.Span, payload uint32) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:     kind,
		Span:     span,
		Name:     name,
		NameSpan: nameSpan,
		Payload:  PayloadID(payload),
	}))
}

func (i *Items) NewFn(span source.Span, name source.StringID, nameSpan source.Span, data FnData) ItemID {
	return i.new(ItemFn, span, name, nameSpan, i.Fns.Allocate(data))
}

func (i *Items) Fn(id ItemID) (*FnData, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(it.Payload)), true
}

func (i *Items) NewStruct(span source.Span, data VariantData) ItemID {
	return i.new(ItemStruct, span, data.Name, data.NameSpan, i.Structs.Allocate(data))
}

func (i *Items) Struct(id ItemID) (*VariantData, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemStruct {
		return nil, false
	}
	return i.Structs.Get(uint32(it.Payload)), true
}

func (i *Items) NewEnum(span source.Span, name source.StringID, nameSpan source.Span, data EnumData) ItemID {
	return i.new(ItemEnum, span, name, nameSpan, i.Enums.Allocate(data))
}

func (i *Items) Enum(id ItemID) (*EnumData, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemEnum {
		return nil, false
	}
	return i.Enums.Get(uint32(it.Payload)), true
}

func (i *Items) NewConst(span source.Span, name source.StringID, nameSpan source.Span, data ConstData) ItemID {
	return i.new(ItemConst, span, name, nameSpan, i.Consts.Allocate(data))
}

func (i *Items) Const(id ItemID) (*ConstData, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemConst {
		return nil, false
	}
	return i.Consts.Get(uint32(it.Payload)), true
}

func (i *Items) NewMacro(span source.Span, name source.StringID, nameSpan source.Span, data MacroData) ItemID {
	return i.new(ItemMacro, span, name, nameSpan, i.Macros.Allocate(data))
}

func (i *Items) Macro(id ItemID) (*MacroData, bool) {
	it := i.Get(id)
	if it == nil || it.Kind != ItemMacro {
		return nil, false
	}
	return i.Macros.Get(uint32(it.Payload)), true
}
