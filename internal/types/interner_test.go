package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Unit == NoTypeID || b.Bool == NoTypeID || b.String == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	unit, _ := in.Lookup(b.Unit)
	if unit.Kind != KindUnit {
		t.Fatalf("expected unit kind, got %v", unit.Kind)
	}
	if in.Elem(b.StrRef) != b.Str {
		t.Fatalf("string literal type must be &str")
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	elem := in.Builtins().String
	arr1 := in.Intern(MakeArray(elem, 4))
	arr2 := in.Intern(MakeArray(elem, 4))
	if arr1 != arr2 {
		t.Fatalf("array types should be deduplicated")
	}
	if in.Intern(MakeArray(elem, 5)) == arr1 {
		t.Fatalf("array length is part of the identity")
	}
}

func TestReferenceMutabilityAffectsIdentity(t *testing.T) {
	in := NewInterner()
	elem := in.Builtins().U8
	mut := in.Intern(MakeReference(elem, true))
	imm := in.Intern(MakeReference(elem, false))
	if mut == imm {
		t.Fatalf("mutable and immutable references must differ")
	}
	ref := in.Intern(MakeReference(mut, false))
	if in.Deref(ref) != elem {
		t.Fatalf("Deref must strip every reference")
	}
}

func TestPrimitiveNames(t *testing.T) {
	in := NewInterner()
	for _, name := range []string{"u8", "u16", "u32", "u64", "u128", "usize", "i32", "f64", "bool", "char", "str", "String"} {
		id, ok := in.Primitive(name)
		if !ok {
			t.Fatalf("%s: not a primitive", name)
		}
		if got := in.Format(id); got != name {
			t.Fatalf("Format(%s) = %q", name, got)
		}
	}
	if _, ok := in.Primitive("Vec"); ok {
		t.Fatalf("Vec is not a primitive")
	}
}

func TestTupleRegistration(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if in.RegisterTuple(nil) != b.Unit {
		t.Fatalf("empty tuple must be unit")
	}
	t1 := in.RegisterTuple([]TypeID{b.U8, b.Bool})
	t2 := in.RegisterTuple([]TypeID{b.U8, b.Bool})
	if t1 != t2 {
		t.Fatalf("tuples with equal elements must share an id")
	}
	if in.RegisterTuple([]TypeID{b.Bool, b.U8}) == t1 {
		t.Fatalf("element order is part of the identity")
	}
	info, ok := in.TupleInfo(t1)
	if !ok || len(info.Elems) != 2 {
		t.Fatalf("tuple info missing: %+v", info)
	}
}

func TestNominalTypes(t *testing.T) {
	in := NewInterner()
	s := in.RegisterStruct("Point", sourceSpan())
	in.SetStructFields(s, []StructField{{Name: "x", Type: in.Builtins().Usize}})
	if typ, ok := in.FieldType(s, "x"); !ok || typ != in.Builtins().Usize {
		t.Fatalf("field x = %v, %v", typ, ok)
	}
	if _, ok := in.FieldType(s, "y"); ok {
		t.Fatalf("unexpected field y")
	}
	e := in.RegisterEnum("Dir", sourceSpan(), []string{"N", "S"})
	if in.Format(s) != "Point" || in.Format(e) != "Dir" {
		t.Fatalf("nominal names: %q %q", in.Format(s), in.Format(e))
	}
	other := in.RegisterStruct("Point", sourceSpan())
	if other == s {
		t.Fatalf("each declaration gets its own nominal type")
	}
}

func TestFormat(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	opt := in.Intern(MakeOption(b.StrRef))
	cases := []struct {
		id   TypeID
		want string
	}{
		{b.IntLit, "{integer}"},
		{b.FloatLit, "{float}"},
		{b.Unit, "()"},
		{in.Intern(MakeReference(b.String, true)), "&mut String"},
		{opt, "Option<&str>"},
		{in.Intern(MakeResult(b.U8, b.String)), "Result<u8, String>"},
		{in.Intern(MakeArray(b.U8, 3)), "[u8; 3]"},
		{in.Intern(MakeSlice(b.U8)), "[u8]"},
		{in.Intern(MakeVec(NoTypeID)), "Vec<_>"},
		{in.RegisterTuple([]TypeID{b.Char}), "(char,)"},
		{in.RegisterTuple([]TypeID{b.Char, b.Bool}), "(char, bool)"},
	}
	for _, tc := range cases {
		if got := in.Format(tc.id); got != tc.want {
			t.Errorf("Format = %q, want %q", got, tc.want)
		}
	}
}
