package source

import (
	"testing"

	"go.followtheprocess.codes/test"
)

func TestIntern(t *testing.T) {
	in := NewInterner()
	a := in.Intern("alpha")
	test.Equal(t, in.Intern("alpha"), a)
	test.True(t, a != NoStringID)
	test.Equal(t, in.Intern(""), NoStringID)

	s, ok := in.Lookup(a)
	test.True(t, ok)
	test.Equal(t, s, "alpha")

	s, ok = in.Lookup(NoStringID)
	test.True(t, ok)
	test.Equal(t, s, "")

	_, ok = in.Lookup(99)
	test.True(t, !ok)
	test.Equal(t, in.Len(), 2)
}

// TestInternIdentNFC: разные записи одного имени совпадают
func TestInternIdentNFC(t *testing.T) {
	in := NewInterner()
	composed := in.InternIdent("caf\u00e9")
	test.Equal(t, in.InternIdent("cafe\u0301"), composed)
	test.True(t, in.Intern("cafe\u0301") != composed, test.Context("plain Intern does not normalize"))
}
