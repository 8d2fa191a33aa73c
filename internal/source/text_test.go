package source

import (
	"strings"
	"testing"
)

func TestTextBoundaries(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.rl", []byte("let x = 1;\n"))

	if got, ok := fs.Text(Span{File: id, Start: 4, End: 5}); !ok || got != "x" {
		t.Errorf("Text = %q, %v", got, ok)
	}
	if got, ok := fs.Text(Span{File: id, Start: 3, End: 3}); !ok || got != "" {
		t.Errorf("zero-length span must give empty text, got %q, %v", got, ok)
	}
	if _, ok := fs.Text(Span{File: id, Start: 5, End: 100}); ok {
		t.Error("out of range span must fail")
	}
	if _, ok := fs.Text(Span{File: 9, Start: 0, End: 1}); ok {
		t.Error("unknown file must fail")
	}
}

func TestBinaryFileHasNoText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("blob.bin", []byte{'a', 0, 'b'})
	if fs.Get(id).Flags&FileBinary == 0 {
		t.Fatal("expected FileBinary flag")
	}
	if _, ok := fs.Text(Span{File: id, Start: 0, End: 1}); ok {
		t.Error("binary content must not produce text")
	}
	sp := Span{File: id, Start: 0, End: 1}
	if got := fs.WithTrailingWhitespace(sp); got != sp {
		t.Errorf("WithTrailingWhitespace on binary = %v", got)
	}
}

func TestWithTrailingWhitespace(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.rl", []byte("x =- \t 35;"))
	got := fs.WithTrailingWhitespace(Span{File: id, Start: 2, End: 4})
	if got.End != 7 {
		t.Errorf("End = %d, want 7", got.End)
	}
	// в конце файла расширять нечего
	end := Span{File: id, Start: 9, End: 10}
	if got := fs.WithTrailingWhitespace(end); got != end {
		t.Errorf("span at EOF changed: %v", got)
	}
}

func TestExpandRangeBy(t *testing.T) {
	fs := NewFileSet()
	src := "loop {\n    continue ;\n}"
	id := fs.AddVirtual("t.rl", []byte(src))
	start := uint32(strings.Index(src, "continue"))
	sp := Span{File: id, Start: start, End: start + 8}

	got, ok := fs.ExpandRangeBy(sp, func(src string, lo, hi int) (int, int, bool) {
		prefix := src[:lo]
		suffix := src[hi:]
		trimmed := strings.TrimLeft(suffix, " ")
		if !strings.HasPrefix(trimmed, ";") {
			return 0, 0, false
		}
		return len(prefix) - len(strings.TrimRight(prefix, " \n")), len(suffix) - len(trimmed) + 1, true
	})
	if !ok {
		t.Fatal("expansion failed")
	}
	if text, _ := fs.Text(got); text != "\n    continue ;" {
		t.Errorf("expanded text = %q", text)
	}

	if _, ok := fs.ExpandRangeBy(sp, func(string, int, int) (int, int, bool) { return 100, 0, true }); ok {
		t.Error("expansion past the file start must fail")
	}
}

func TestLineHelpers(t *testing.T) {
	fs := NewFileSet()
	src := "fn f() {\n    let x = ();\n\tg();\n}"
	id := fs.AddVirtual("t.rl", []byte(src))
	unit := uint32(strings.Index(src, "()"+";"))
	sp := Span{File: id, Start: unit, End: unit + 2}

	if indent, ok := fs.LineIndent(sp); !ok || indent != "    " {
		t.Errorf("LineIndent = %q, %v", indent, ok)
	}
	if n, _ := fs.IndentOf(sp); n != 4 {
		t.Errorf("IndentOf = %d", n)
	}
	first := fs.FirstLineOf(sp)
	if text, _ := fs.Text(first); text != "let x = ()" {
		t.Errorf("FirstLineOf text = %q", text)
	}
	line, _ := fs.LineSpan(sp)
	if text, _ := fs.Text(line); text != "    let x = " {
		t.Errorf("LineSpan text = %q", text)
	}
	g := uint32(strings.Index(src, "g()"))
	if indent, _ := fs.LineIndent(Span{File: id, Start: g, End: g + 1}); indent != "\t" {
		t.Errorf("tab indent = %q", indent)
	}
}

func TestTrimSpan(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.rl", []byte("(  a + b \n)"))
	got := fs.TrimSpan(Span{File: id, Start: 1, End: 10})
	if text, _ := fs.Text(got); text != "a + b" {
		t.Errorf("TrimSpan = %q", text)
	}
	blank := fs.TrimSpan(Span{File: id, Start: 1, End: 3})
	if !blank.Empty() {
		t.Errorf("blank span must shrink to empty, got %v", blank)
	}
}

func TestTextAtContext(t *testing.T) {
	fs := NewFileSet()
	src := "macro two() { 1 + 1 }\nlet y = two!();\n"
	id := fs.AddVirtual("t.rl", []byte(src))
	call := uint32(strings.Index(src, "two!()"))
	ctxt := fs.Hygiene().NewContext(ExpansionInfo{
		Kind:     ExpnMacro,
		Name:     "two",
		CallSite: Span{File: id, Start: call, End: call + 6},
	})
	body := Span{File: id, Start: 14, End: 19, Ctxt: ctxt}

	if text, ok := fs.TextAtContext(body, RootContext); !ok || text != "two!()" {
		t.Errorf("TextAtContext(root) = %q, %v", text, ok)
	}
	if text, ok := fs.TextAtContext(body, ctxt); !ok || text != "1 + 1" {
		t.Errorf("TextAtContext(own) = %q, %v", text, ok)
	}
}
