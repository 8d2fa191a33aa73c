package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type: unknown, unresolved or not inferred.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindNever
	KindBool
	KindChar
	// KindStr is the unsized `str`; literals are `&str`.
	KindStr
	KindString
	KindInt
	KindUint
	KindFloat
	KindArray
	KindSlice
	KindVec
	KindReference
	KindTuple
	KindOption
	KindResult
	// KindIter is any iterator; Elem is the item type.
	KindIter
	KindStruct
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindNever:
		return "never"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindStr:
		return "str"
	case KindString:
		return "String"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindArray:
		return "array"
	case KindSlice:
		return "slice"
	case KindVec:
		return "Vec"
	case KindReference:
		return "reference"
	case KindTuple:
		return "tuple"
	case KindOption:
		return "Option"
	case KindResult:
		return "Result"
	case KindIter:
		return "iterator"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers/floats.
type Width uint8

const (
	// WidthAny is an unsuffixed literal whose width is not known yet.
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
	Width128 Width = 128
	// WidthSize is isize/usize.
	WidthSize Width = 255
)

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind Kind
	// Elem is the element of arrays, slices, Vec, references, iterators,
	// the Some type of Option and the Ok type of Result.
	Elem TypeID
	// Err is the error type of Result.
	Err     TypeID
	Count   uint32 // длина массива
	Width   Width  // для числовых примитивов
	Mutable bool   // для ссылок
	Payload uint32 // слот в таблице структур, перечислений или кортежей
}

// Descriptor helpers ---------------------------------------------------------

// MakeInt describes a signed integer of the given width (WidthAny for an
// unsuffixed literal).
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width}
}

// MakeArray describes `[T; n]`.
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

// MakeSlice describes `[T]`.
func MakeSlice(elem TypeID) Type {
	return Type{Kind: KindSlice, Elem: elem}
}

// MakeVec describes `Vec<T>`.
func MakeVec(elem TypeID) Type {
	return Type{Kind: KindVec, Elem: elem}
}

// MakeReference describes &T or &mut T depending on the mutable flag.
func MakeReference(elem TypeID, mutable bool) Type {
	return Type{Kind: KindReference, Elem: elem, Mutable: mutable}
}

// MakeOption describes `Option<T>`.
func MakeOption(elem TypeID) Type {
	return Type{Kind: KindOption, Elem: elem}
}

// MakeResult describes `Result<T, E>`.
func MakeResult(ok, err TypeID) Type {
	return Type{Kind: KindResult, Elem: ok, Err: err}
}

// MakeIter describes an iterator yielding elem.
func MakeIter(elem TypeID) Type {
	return Type{Kind: KindIter, Elem: elem}
}

// IsIntegral reports whether k is a signed or unsigned integer kind.
func (k Kind) IsIntegral() bool {
	return k == KindInt || k == KindUint
}

// IsNumeric reports whether k is an integer or float kind.
func (k Kind) IsNumeric() bool {
	return k.IsIntegral() || k == KindFloat
}
