// Package provenance guesses whether a node was written by hand or produced
// by an expansion that lied about its spans. Every node shape implies some
// text its source must start and end with (a string literal starts and ends
// with a quote, a call ends with its last argument); a node whose text does
// not fit its shape cannot have been typed there.
package provenance

import (
	"strings"
	"unicode"

	"rillint/internal/ast"
	"rillint/internal/source"
)

// PatKind selects how a Pat matches.
type PatKind uint8

const (
	// PatStr matches an exact string.
	PatStr PatKind = iota
	// PatSym matches the text of an identifier or symbol.
	PatSym
	// PatNum matches a digit: decimal at the start, hex at the end
	// (suffixes like `u8` end in one).
	PatNum
)

// Pat is the text expected at one end of a node.
type Pat struct {
	Kind PatKind
	Text string
}

func Str(text string) Pat { return Pat{Kind: PatStr, Text: text} }
func Sym(name string) Pat { return Pat{Kind: PatSym, Text: name} }
func Num() Pat { return Pat{Kind: PatNum} }

func (p Pat) String() string {
	if p.Kind == PatNum {
		return "<digit>"
	}
	return p.Text
}

// none matches anything.
var none = Str("")

// SpanMatchesPattern reports whether the text under span starts with start
// and ends with end. Leading '(' and whitespace, trailing ')', ',' and
// whitespace are ignored since expansions often wrap their output in them.
// Unavailable text never matches.
func SpanMatchesPattern(fs *source.FileSet, span source.Span, start, end Pat) bool {
	src, ok := fs.Text(span)
	if !ok {
		return false
	}
	return TextMatchesPattern(src, start, end)
}

// TextMatchesPattern is SpanMatchesPattern on already extracted text.
func TextMatchesPattern(src string, start, end Pat) bool {
	head := strings.TrimLeftFunc(src, func(r rune) bool { return unicode.IsSpace(r) || r == '(' })
	tail := strings.TrimRightFunc(src, func(r rune) bool { return unicode.IsSpace(r) || r == ')' || r == ',' })
	return matchStart(head, start) && matchEnd(tail, end)
}

func matchStart(s string, p Pat) bool {
	if p.Kind == PatNum {
		return s != "" && s[0] >= '0' && s[0] <= '9'
	}
	return strings.HasPrefix(s, p.Text)
}

func matchEnd(s string, p Pat) bool {
	if p.Kind == PatNum {
		return s != "" && isHexDigit(s[len(s)-1])
	}
	return strings.HasSuffix(s, p.Text)
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

// LitPattern returns the patterns of a literal.
func LitPattern(lit *ast.ExprLitData) (start, end Pat) {
	switch lit.Kind {
	case ast.LitStr:
		return Str(`"`), Str(`"`)
	case ast.LitRawStr:
		if strings.HasPrefix(lit.Text, "r#") {
			return Str("r#"), Str("#")
		}
		return Str("r"), Str(`"`)
	case ast.LitByteStr:
		if strings.HasPrefix(lit.Text, "br") {
			return Str("br"), none
		}
		return Str(`b"`), Str(`"`)
	case ast.LitByte:
		return Str("b'"), Str("'")
	case ast.LitChar:
		return Str("'"), Str("'")
	case ast.LitInt:
		switch lit.Suffix {
		case "isize", "usize":
			return Num(), Str(lit.Suffix)
		}
		return Num(), Num()
	case ast.LitFloat:
		return Num(), none
	case ast.LitBool:
		if lit.Text == "true" {
			return Str("true"), Str("true")
		}
		return Str("false"), Str("false")
	}
	return none, none
}

// PathPattern returns the patterns of a path expression: its first segment
// and its last segment, or `>` after a turbofish.
func PathPattern(tree *ast.Tree, path *ast.ExprPathData) (start, end Pat) {
	if len(path.Segments) == 0 {
		return none, none
	}
	start = Sym(tree.Name(path.Segments[0].Name))
	if path.EndsWithGenerics() {
		return start, Str(">")
	}
	return start, Sym(tree.Name(path.Segments[len(path.Segments)-1].Name))
}

// ExprPattern returns the patterns implied by the shape of expr.
func ExprPattern(tree *ast.Tree, expr ast.ExprID) (start, end Pat) {
	e := tree.Exprs
	switch e.Kind(expr) {
	case ast.ExprLit:
		lit, _ := e.Lit(expr)
		return LitPattern(lit)

	case ast.ExprPath:
		p, _ := e.Path(expr)
		return PathPattern(tree, p)

	case ast.ExprUnary:
		u, _ := e.Unary(expr)
		_, end = ExprPattern(tree, u.Operand)
		return Str(u.Op.String()), end

	case ast.ExprAddrOf:
		a, _ := e.AddrOf(expr)
		_, end = ExprPattern(tree, a.Operand)
		return Str("&"), end

	case ast.ExprBinary:
		b, _ := e.Binary(expr)
		return between(tree, b.Left, b.Right)

	case ast.ExprAssign, ast.ExprAssignOp:
		a, _ := e.Assign(expr)
		return between(tree, a.Left, a.Right)

	case ast.ExprCast:
		c, _ := e.Cast(expr)
		start, _ = ExprPattern(tree, c.Value)
		return start, none

	case ast.ExprCall:
		c, _ := e.Call(expr)
		if len(c.Args) == 0 {
			start, _ = ExprPattern(tree, c.Callee)
			return start, Str("(")
		}
		return between(tree, c.Callee, c.Args[len(c.Args)-1])

	case ast.ExprMethodCall:
		m, _ := e.MethodCall(expr)
		if len(m.Args) == 0 {
			start, _ = ExprPattern(tree, m.Receiver)
			return start, Str("(")
		}
		return between(tree, m.Receiver, m.Args[len(m.Args)-1])

	case ast.ExprField:
		f, _ := e.Field(expr)
		start, _ = ExprPattern(tree, f.Target)
		return start, Sym(tree.Name(f.Name))

	case ast.ExprIndex:
		ix, _ := e.Index(expr)
		start, _ = ExprPattern(tree, ix.Target)
		return start, Str("]")

	case ast.ExprTry:
		in, _ := e.Inner(expr)
		start, _ = ExprPattern(tree, in.Inner)
		return start, Str("?")

	case ast.ExprParen:
		in, _ := e.Inner(expr)
		return ExprPattern(tree, in.Inner)

	case ast.ExprTuple:
		l, _ := e.List(expr)
		switch len(l.Elems) {
		case 0:
			// после обрезки скобок от `()` остаётся ")" в начале и "(" в конце
			return Str(")"), Str("(")
		case 1:
			return ExprPattern(tree, l.Elems[0])
		}
		return between(tree, l.Elems[0], l.Elems[len(l.Elems)-1])

	case ast.ExprArray, ast.ExprRepeat:
		return Str("["), Str("]")

	case ast.ExprBlock:
		b, _ := e.Block(expr)
		switch {
		case b.Label.IsSet():
			return Str("'"), Str("}")
		case b.Unsafe:
			return Str("unsafe"), Str("}")
		}
		return Str("{"), Str("}")

	case ast.ExprIf:
		return Str("if"), Str("}")

	case ast.ExprLet:
		l, _ := e.Let(expr)
		_, end = ExprPattern(tree, l.Init)
		return Str("let"), end

	case ast.ExprWhile, ast.ExprLoop, ast.ExprFor:
		l, _ := e.Loop(expr)
		if l.Label.IsSet() {
			return Str("'"), Str("}")
		}
		switch e.Kind(expr) {
		case ast.ExprWhile:
			return Str("while"), Str("}")
		case ast.ExprFor:
			return Str("for"), Str("}")
		}
		return Str("loop"), Str("}")

	case ast.ExprMatch:
		return Str("match"), Str("}")

	case ast.ExprClosure:
		c, _ := e.Closure(expr)
		_, end = ExprPattern(tree, c.Body)
		return Str("|"), end

	case ast.ExprBreak, ast.ExprContinue, ast.ExprReturn:
		return jumpPattern(tree, expr)

	case ast.ExprStruct:
		s, _ := e.Struct(expr)
		start, _ = ExprPattern(tree, s.Path)
		return start, Str("}")

	case ast.ExprRange:
		r, _ := e.Range(expr)
		start, end = Str(".."), Str("..")
		if r.Lo.IsValid() {
			start, _ = ExprPattern(tree, r.Lo)
		}
		if r.Hi.IsValid() {
			_, end = ExprPattern(tree, r.Hi)
		}
		return start, end
	}
	return none, none
}

func between(tree *ast.Tree, first, last ast.ExprID) (start, end Pat) {
	start, _ = ExprPattern(tree, first)
	_, end = ExprPattern(tree, last)
	return start, end
}

func jumpPattern(tree *ast.Tree, expr ast.ExprID) (start, end Pat) {
	j, _ := tree.Exprs.Jump(expr)
	var kw string
	switch tree.Exprs.Kind(expr) {
	case ast.ExprBreak:
		kw = "break"
	case ast.ExprContinue:
		kw = "continue"
	default:
		kw = "return"
	}
	switch {
	case j.Value.IsValid():
		_, end = ExprPattern(tree, j.Value)
		return Str(kw), end
	case j.Label.IsSet():
		return Str(kw), Sym(tree.Name(j.Label.Name))
	}
	return Str(kw), Str(kw)
}

// ItemPattern returns the patterns of an item declaration.
func ItemPattern(tree *ast.Tree, item ast.ItemID) (start, end Pat) {
	it := tree.Items.Get(item)
	if it == nil {
		return none, none
	}
	switch it.Kind {
	case ast.ItemFn:
		return Str("fn"), Str("}")
	case ast.ItemStruct:
		data, _ := tree.Items.Struct(item)
		if data.Shape == ast.ShapeNamed {
			return Str("struct"), Str("}")
		}
		return Str("struct"), Str(";")
	case ast.ItemEnum:
		return Str("enum"), Str("}")
	case ast.ItemConst:
		return Str("const"), Str(";")
	case ast.ItemMacro:
		data, _ := tree.Items.Macro(item)
		if data.External {
			return Str("extern"), Str("}")
		}
		return Str("macro"), Str("}")
	}
	return none, none
}

// TypePattern returns the patterns of a written type.
func TypePattern(tree *ast.Tree, typ ast.TypeID) (start, end Pat) {
	t := tree.Types.Get(typ)
	if t == nil {
		return none, none
	}
	switch t.Kind {
	case ast.TypePath:
		if len(t.Path) == 0 {
			return none, none
		}
		start = Sym(tree.Name(t.Path[0].Name))
		if len(t.Args) > 0 {
			return start, Str(">")
		}
		return start, Sym(tree.Name(t.Path[len(t.Path)-1].Name))
	case ast.TypeRef:
		_, end = TypePattern(tree, t.Elem)
		return Str("&"), end
	case ast.TypeTuple:
		if len(t.Args) == 0 {
			return Str(")"), Str("(")
		}
		start, _ = TypePattern(tree, t.Args[0])
		_, end = TypePattern(tree, t.Args[len(t.Args)-1])
		return start, end
	case ast.TypeArray, ast.TypeSlice:
		return Str("["), Str("]")
	case ast.TypeInfer:
		return Str("_"), Str("_")
	case ast.TypeNever:
		return Str("!"), Str("!")
	}
	return none, none
}

// PatPattern returns the patterns of a binding pattern.
func PatPattern(tree *ast.Tree, pat ast.PatID) (start, end Pat) {
	p := tree.Pats.Get(pat)
	if p == nil {
		return none, none
	}
	switch p.Kind {
	case ast.PatWild:
		return Str("_"), Str("_")
	case ast.PatRest:
		return Str(".."), Str("..")
	case ast.PatIdent:
		name := Sym(tree.Name(p.Name))
		if p.Mut {
			return Str("mut"), name
		}
		return name, name
	case ast.PatLit, ast.PatPath:
		id := p.Lit
		if p.Kind == ast.PatPath {
			id = p.Path
		}
		return ExprPattern(tree, id)
	case ast.PatTupleStruct:
		start, _ = ExprPattern(tree, p.Path)
		if len(p.Elems) == 0 {
			return start, Str("(")
		}
		_, end = PatPattern(tree, p.Elems[len(p.Elems)-1])
		return start, end
	case ast.PatTuple, ast.PatOr:
		if len(p.Elems) == 0 {
			return Str(")"), Str("(")
		}
		start, _ = PatPattern(tree, p.Elems[0])
		_, end = PatPattern(tree, p.Elems[len(p.Elems)-1])
		return start, end
	}
	return none, none
}
