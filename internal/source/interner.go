package source

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// StringID identifies an interned string; NoStringID is the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner maps names of one tree to small ids. It is not safe for
// concurrent use; every parsed file owns one.
type Interner struct {
	strs []string // strs[0] == ""
	ids  map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{strs: []string{""}, ids: map[string]StringID{"": NoStringID}}
}

// Intern returns the id of s, adding it on first sight. The stored copy
// does not keep the caller's buffer alive.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	s = strings.Clone(s)
	id := StringID(len(in.strs)) // #nosec G115 -- one file cannot hold 4G names
	in.strs = append(in.strs, s)
	in.ids[s] = id
	return id
}

// InternIdent interns an identifier in NFC form, so `café` spelled with a
// combining accent is the same name.
func (in *Interner) InternIdent(s string) StringID {
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	return in.Intern(s)
}

// Lookup returns the string for id; ok is false for ids this interner never
// handed out.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.strs) {
		return "", false
	}
	return in.strs[id], true
}

// Len counts interned strings, NoStringID included.
func (in *Interner) Len() int {
	return len(in.strs)
}
