package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Never   TypeID
	Bool    TypeID
	Char    TypeID
	Str     TypeID
	// StrRef is `&str`, the type of string literals.
	StrRef TypeID
	String TypeID
	// IntLit and FloatLit are unsuffixed literals not yet unified with a
	// concrete numeric type.
	IntLit   TypeID
	FloatLit TypeID
	Usize    TypeID
	U8       TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	structs  []StructInfo
	enums    []EnumInfo
	tuples   []TupleInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 64),
	}
	in.structs = append(in.structs, StructInfo{}) // reserve 0 as invalid sentinel
	in.enums = append(in.enums, EnumInfo{})
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Never = in.Intern(Type{Kind: KindNever})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Char = in.Intern(Type{Kind: KindChar})
	in.builtins.Str = in.Intern(Type{Kind: KindStr})
	in.builtins.StrRef = in.Intern(MakeReference(in.builtins.Str, false))
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.IntLit = in.Intern(MakeInt(WidthAny))
	in.builtins.FloatLit = in.Intern(MakeFloat(WidthAny))
	in.builtins.Usize = in.Intern(MakeUint(WidthSize))
	in.builtins.U8 = in.Intern(MakeUint(Width8))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind returns the kind of id, KindInvalid for unknown ids.
func (in *Interner) Kind(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

// Elem returns the element type of id, NoTypeID when there is none.
func (in *Interner) Elem(id TypeID) TypeID {
	tt, _ := in.Lookup(id)
	return tt.Elem
}

// Deref strips any number of references.
func (in *Interner) Deref(id TypeID) TypeID {
	for {
		tt, ok := in.Lookup(id)
		if !ok || tt.Kind != KindReference {
			return id
		}
		id = tt.Elem
	}
}

// IsLiteral reports whether id is a placeholder for an unsuffixed literal.
func (in *Interner) IsLiteral(id TypeID) bool {
	return id != NoTypeID && (id == in.builtins.IntLit || id == in.builtins.FloatLit)
}

// primitiveNames maps the names of built-in scalar types.
var primitiveNames = map[string]Type{
	"i8":     MakeInt(Width8),
	"i16":    MakeInt(Width16),
	"i32":    MakeInt(Width32),
	"i64":    MakeInt(Width64),
	"i128":   MakeInt(Width128),
	"isize":  MakeInt(WidthSize),
	"u8":     MakeUint(Width8),
	"u16":    MakeUint(Width16),
	"u32":    MakeUint(Width32),
	"u64":    MakeUint(Width64),
	"u128":   MakeUint(Width128),
	"usize":  MakeUint(WidthSize),
	"f32":    MakeFloat(Width32),
	"f64":    MakeFloat(Width64),
	"bool":   {Kind: KindBool},
	"char":   {Kind: KindChar},
	"str":    {Kind: KindStr},
	"String": {Kind: KindString},
}

// Primitive returns the TypeID of a built-in scalar type by name.
func (in *Interner) Primitive(name string) (TypeID, bool) {
	t, ok := primitiveNames[name]
	if !ok {
		return NoTypeID, false
	}
	return in.Intern(t), true
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Err     TypeID
	Count   uint32
	Width   Width
	Mutable bool
	Payload uint32
}
