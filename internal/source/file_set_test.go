package source

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"go.followtheprocess.codes/test"
)

func TestAddKeepsEveryVersion(t *testing.T) {
	fs := NewFileSet()
	first := fs.Add("src/../src/a.rl", []byte("fn a() {}"), 0)
	second := fs.Add("src/a.rl", []byte("fn b() {}"), 0)

	test.Equal(t, first, FileID(0))
	test.Equal(t, second, FileID(1))
	test.Equal(t, fs.Len(), 2)

	latest, ok := fs.GetLatest("./src/a.rl")
	test.True(t, ok)
	test.Equal(t, latest, second)
	test.Equal(t, string(fs.Get(first).Content), "fn a() {}")
	test.Equal(t, fs.Get(first).Path, "src/a.rl")

	f, ok := fs.GetByPath("src/a.rl")
	test.True(t, ok)
	test.Equal(t, f.ID, second)

	_, ok = fs.Lookup(7)
	test.True(t, !ok)
}

func TestLineIndex(t *testing.T) {
	tests := []struct {
		content string
		want    []uint32
	}{
		{"", []uint32{}},
		{"let x", []uint32{}},
		{"\n", []uint32{0}},
		{"a\nb\n", []uint32{1, 3}},
		{"a\n\n\nb", []uint32{1, 2, 3}},
	}
	for _, tt := range tests {
		fs := NewFileSet()
		f := fs.Get(fs.AddVirtual("x.rl", []byte(tt.content)))
		test.True(t, slices.Equal(f.LineIdx, tt.want), test.Context("content %q: got %v", tt.content, f.LineIdx))
		test.True(t, f.Flags&FileVirtual != 0)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	// "é" is two bytes; columns count bytes
	id := fs.AddVirtual("x.rl", []byte("fn main() {\n  é = 1;\n}\n"))

	tests := []struct {
		start, end uint32
		from, to   LineCol
	}{
		{0, 2, LineCol{1, 1}, LineCol{1, 3}},
		{11, 12, LineCol{1, 12}, LineCol{2, 1}},
		{14, 16, LineCol{2, 3}, LineCol{2, 5}},
		{22, 23, LineCol{3, 1}, LineCol{3, 2}},
	}
	for _, tt := range tests {
		from, to := fs.Resolve(Span{File: id, Start: tt.start, End: tt.end})
		test.Equal(t, from, tt.from, test.Context("start of %d..%d", tt.start, tt.end))
		test.Equal(t, to, tt.to, test.Context("end of %d..%d", tt.start, tt.end))
	}

	from, _ := fs.Resolve(Span{File: 9})
	test.Equal(t, from, LineCol{})
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.rl", []byte("one\ntwo\n\nfour")))

	test.Equal(t, f.GetLine(1), "one")
	test.Equal(t, f.GetLine(2), "two")
	test.Equal(t, f.GetLine(3), "")
	test.Equal(t, f.GetLine(4), "four")
	test.Equal(t, f.GetLine(0), "")
	test.Equal(t, f.GetLine(5), "")
}

func TestLoadNormalizes(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		flags FileFlags
	}{
		{"plain", "fn a() {}\n", "fn a() {}\n", 0},
		{"crlf", "a\r\nb\r\n", "a\nb\n", FileNormalizedCRLF},
		{"lone cr", "a\rb\n", "a\rb\n", 0},
		{"bom", "\xEF\xBB\xBFfn a() {}", "fn a() {}", FileHadBOM},
		{"bom and crlf", "\xEF\xBB\xBFa\r\n", "a\n", FileHadBOM | FileNormalizedCRLF},
		{"binary", "a\x00b", "a\x00b", FileBinary},
	}
	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".rl")
			test.Ok(t, os.WriteFile(path, []byte(tt.raw), 0o644))

			fs := NewFileSet()
			id, err := fs.Load(path)
			test.Ok(t, err)
			f := fs.Get(id)
			test.Equal(t, string(f.Content), tt.want)
			test.Equal(t, f.Flags, tt.flags)
			test.Equal(t, f.HasText(), tt.flags&FileBinary == 0)
			test.Equal(t, string(f.OnDisk(f.Content)), tt.raw)
		})
	}

	_, err := NewFileSet().Load(filepath.Join(dir, "missing.rl"))
	test.Err(t, err)
}

func TestFormatPath(t *testing.T) {
	base := t.TempDir()
	nested := filepath.Join(base, "src", "lib", "a.rl")
	outside := filepath.Join(filepath.Dir(base), "elsewhere", "b.rl")
	long := "/very/long/absolute/path/that/goes/on/and/on/c.rl"

	fs := NewFileSetWithBase(base)
	a := fs.Get(fs.Add(nested, nil, 0))
	b := fs.Get(fs.Add(outside, nil, 0))
	c := fs.Get(fs.Add(long, nil, 0))
	d := fs.Get(fs.Add("src/d.rl", nil, 0))

	test.Equal(t, a.FormatPath("relative", base), "src/lib/a.rl")
	test.Equal(t, b.FormatPath("relative", base), filepath.ToSlash(outside))
	test.Equal(t, a.FormatPath("basename", ""), "a.rl")
	test.Equal(t, c.FormatPath("auto", ""), "c.rl")
	test.Equal(t, d.FormatPath("auto", ""), "src/d.rl")
	test.Equal(t, d.FormatPath("bogus", ""), "src/d.rl")
	test.Equal(t, c.FormatPath("absolute", ""), long)
}
