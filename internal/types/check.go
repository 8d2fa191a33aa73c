package types

import (
	"strconv"
	"strings"

	"fortio.org/safecast"

	"rillint/internal/ast"
	"rillint/internal/source"
)

// FnSig is the resolved signature of a free function.
type FnSig struct {
	Params []TypeID
	Ret    TypeID
}

// Info holds the types resolved for one tree. It is local and best effort:
// expressions the resolver cannot type have NoTypeID.
type Info struct {
	Types *Interner

	tree     *ast.Tree
	exprs    []TypeID
	fns      map[string]FnSig
	nominals map[string]TypeID
	// variants maps "E::A" to the enum type.
	variants map[string]TypeID
}

// TypeOf returns the type of expr, NoTypeID when unknown.
func (info *Info) TypeOf(expr ast.ExprID) TypeID {
	if info == nil || int(expr) >= len(info.exprs) {
		return NoTypeID
	}
	return info.exprs[expr]
}

// KindOf returns the kind of expr's type with references stripped.
func (info *Info) KindOf(expr ast.ExprID) Kind {
	if info == nil {
		return KindInvalid
	}
	return info.Types.Kind(info.Types.Deref(info.TypeOf(expr)))
}

// Format renders the type of expr.
func (info *Info) Format(expr ast.ExprID) string {
	return info.Types.Format(info.TypeOf(expr))
}

// Fn returns the signature of a function by name.
func (info *Info) Fn(name string) (FnSig, bool) {
	sig, ok := info.fns[name]
	return sig, ok
}

// Nominal returns the struct or enum type registered under name.
func (info *Info) Nominal(name string) (TypeID, bool) {
	id, ok := info.nominals[name]
	return id, ok
}

// Check resolves the types of every expression reachable from tree's items.
func Check(tree *ast.Tree) *Info {
	info := &Info{
		Types:    NewInterner(),
		tree:     tree,
		exprs:    make([]TypeID, tree.Exprs.Arena.Len()+1),
		fns:      make(map[string]FnSig),
		nominals: make(map[string]TypeID),
		variants: make(map[string]TypeID),
	}
	c := &checker{info: info, in: info.Types, tree: tree}
	c.declare()
	for id, item := range tree.Items.Arena.All() {
		c.item(ast.ItemID(id), item)
	}
	return info
}

type scope map[source.StringID]TypeID

type checker struct {
	info   *Info
	in     *Interner
	tree   *ast.Tree
	scopes []scope
	// ret is the return type of the function being checked.
	ret TypeID
}

// declare registers nominal types first so that fields and signatures can
// refer to types declared later in the file.
func (c *checker) declare() {
	items := c.tree.Items
	for id, item := range items.Arena.All() {
		name := c.tree.Name(item.Name)
		switch item.Kind {
		case ast.ItemStruct:
			c.info.nominals[name] = c.in.RegisterStruct(name, item.Span)
		case ast.ItemEnum:
			data, _ := items.Enum(ast.ItemID(id))
			variants := make([]string, 0, len(data.Variants))
			for _, v := range data.Variants {
				variants = append(variants, c.tree.Name(v.Name))
			}
			typ := c.in.RegisterEnum(name, item.Span, variants)
			c.info.nominals[name] = typ
			for _, v := range variants {
				c.info.variants[name+"::"+v] = typ
			}
		}
	}
	for id, item := range items.Arena.All() {
		switch item.Kind {
		case ast.ItemStruct:
			data, _ := items.Struct(ast.ItemID(id))
			fields := make([]StructField, 0, len(data.Fields))
			for i, f := range data.Fields {
				name := strconv.Itoa(i)
				if data.Shape == ast.ShapeNamed {
					name = c.tree.Name(f.Name)
				}
				fields = append(fields, StructField{Name: name, Type: c.resolve(f.Type)})
			}
			c.in.SetStructFields(c.info.nominals[c.tree.Name(item.Name)], fields)
		case ast.ItemFn:
			data, _ := items.Fn(ast.ItemID(id))
			sig := FnSig{Ret: c.in.builtins.Unit}
			if data.Ret.IsValid() {
				sig.Ret = c.resolve(data.Ret)
			}
			for _, p := range data.Params {
				sig.Params = append(sig.Params, c.resolve(p.Type))
			}
			c.info.fns[c.tree.Name(item.Name)] = sig
		}
	}
}

func (c *checker) item(id ast.ItemID, item *ast.Item) {
	switch item.Kind {
	case ast.ItemFn:
		data, _ := c.tree.Items.Fn(id)
		sig := c.info.fns[c.tree.Name(item.Name)]
		c.push()
		for i, p := range data.Params {
			var typ TypeID
			if i < len(sig.Params) {
				typ = sig.Params[i]
			}
			c.bind(p.Pat, typ)
		}
		saved := c.ret
		c.ret = sig.Ret
		c.expr(data.Body, sig.Ret)
		c.ret = saved
		c.pop()
	case ast.ItemConst:
		data, _ := c.tree.Items.Const(id)
		c.expr(data.Value, c.resolve(data.Type))
	}
}

func (c *checker) push() { c.scopes = append(c.scopes, scope{}) }
func (c *checker) pop()  { c.scopes = c.scopes[:len(c.scopes)-1] }

func (c *checker) define(name source.StringID, typ TypeID) {
	if len(c.scopes) == 0 {
		c.push()
	}
	c.scopes[len(c.scopes)-1][name] = typ
}

func (c *checker) lookup(name source.StringID) (TypeID, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if typ, ok := c.scopes[i][name]; ok {
			return typ, true
		}
	}
	return NoTypeID, false
}

// resolve maps a written type to a TypeID.
func (c *checker) resolve(id ast.TypeID) TypeID {
	t := c.tree.Types.Get(id)
	if t == nil {
		return NoTypeID
	}
	switch t.Kind {
	case ast.TypePath:
		return c.resolvePath(t)
	case ast.TypeRef:
		return c.in.Intern(MakeReference(c.resolve(t.Elem), t.Mut))
	case ast.TypeTuple:
		elems := make([]TypeID, 0, len(t.Args))
		for _, a := range t.Args {
			elems = append(elems, c.resolve(a))
		}
		return c.in.RegisterTuple(elems)
	case ast.TypeSlice:
		return c.in.Intern(MakeSlice(c.resolve(t.Elem)))
	case ast.TypeArray:
		return c.in.Intern(MakeArray(c.resolve(t.Elem), c.arrayLen(t.Len)))
	case ast.TypeNever:
		return c.in.builtins.Never
	}
	return NoTypeID
}

func (c *checker) resolvePath(t *ast.Type) TypeID {
	if len(t.Path) == 0 {
		return NoTypeID
	}
	name := c.tree.Name(t.Path[len(t.Path)-1].Name)
	if prim, ok := c.in.Primitive(name); ok {
		return prim
	}
	arg := func(i int) TypeID {
		if i < len(t.Args) {
			return c.resolve(t.Args[i])
		}
		return NoTypeID
	}
	switch name {
	case "Option":
		return c.in.Intern(MakeOption(arg(0)))
	case "Result":
		return c.in.Intern(MakeResult(arg(0), arg(1)))
	case "Vec":
		return c.in.Intern(MakeVec(arg(0)))
	case "Box", "Rc", "Arc":
		return arg(0)
	}
	if typ, ok := c.info.nominals[name]; ok {
		return typ
	}
	return NoTypeID
}

func (c *checker) arrayLen(id ast.ExprID) uint32 {
	lit, ok := c.tree.Exprs.Lit(id)
	if !ok || lit.Kind != ast.LitInt {
		return 0
	}
	text := strings.ReplaceAll(strings.TrimSuffix(lit.Text, lit.Suffix), "_", "")
	n, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return 0
	}
	count, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0
	}
	return count
}

// bind introduces the names of pat with types taken from typ.
func (c *checker) bind(id ast.PatID, typ TypeID) {
	pat := c.tree.Pats.Get(id)
	if pat == nil {
		return
	}
	switch pat.Kind {
	case ast.PatIdent:
		c.define(pat.Name, typ)
	case ast.PatOr:
		for _, e := range pat.Elems {
			c.bind(e, typ)
		}
	case ast.PatTuple:
		var elems []TypeID
		if info, ok := c.in.TupleInfo(c.in.Deref(typ)); ok {
			elems = info.Elems
		}
		c.bindElems(pat.Elems, elems)
	case ast.PatTupleStruct:
		c.bindElems(pat.Elems, c.ctorFields(pat.Path, c.in.Deref(typ)))
	}
}

func (c *checker) bindElems(pats []ast.PatID, elems []TypeID) {
	rest := -1
	for i, p := range pats {
		if c.tree.Pats.Get(p).Kind == ast.PatRest {
			rest = i
			break
		}
	}
	for i, p := range pats {
		var typ TypeID
		switch {
		case rest < 0 || i < rest:
			if i < len(elems) {
				typ = elems[i]
			}
		case i > rest:
			// элементы после `..` считаются с конца
			if j := len(elems) - (len(pats) - i); j >= 0 && j < len(elems) {
				typ = elems[j]
			}
		}
		c.bind(p, typ)
	}
}

// ctorFields returns the payload types a tuple-struct pattern destructures.
func (c *checker) ctorFields(path ast.ExprID, scrutinee TypeID) []TypeID {
	p, ok := c.tree.Exprs.Path(path)
	if !ok || len(p.Segments) == 0 {
		return nil
	}
	last := c.tree.Name(p.Segments[len(p.Segments)-1].Name)
	tt, _ := c.in.Lookup(scrutinee)
	switch {
	case last == "Some" && tt.Kind == KindOption:
		return []TypeID{tt.Elem}
	case last == "Ok" && tt.Kind == KindResult:
		return []TypeID{tt.Elem}
	case last == "Err" && tt.Kind == KindResult:
		return []TypeID{tt.Err}
	}
	if typ, ok := c.info.nominals[last]; ok {
		if info, ok := c.in.StructInfo(typ); ok {
			out := make([]TypeID, 0, len(info.Fields))
			for _, f := range info.Fields {
				out = append(out, f.Type)
			}
			return out
		}
	}
	return nil
}

func (c *checker) record(id ast.ExprID, typ TypeID) TypeID {
	if int(id) < len(c.info.exprs) && id.IsValid() {
		c.info.exprs[id] = typ
	}
	return typ
}

// expr types id. expected is the type the context wants, NoTypeID if none;
// it only steers literals, `into` and constructors, it is never enforced.
func (c *checker) expr(id ast.ExprID, expected TypeID) TypeID {
	if !id.IsValid() {
		return NoTypeID
	}
	typ := c.record(id, c.exprKind(id, expected))
	if c.in.IsLiteral(typ) && expected != NoTypeID {
		if u := c.in.Unify(typ, c.in.Deref(expected)); u != NoTypeID && u != typ {
			c.settle(id, u)
			return u
		}
	}
	return typ
}

// settle replaces literal placeholders under id with the concrete typ.
func (c *checker) settle(id ast.ExprID, typ TypeID) {
	if !c.in.IsLiteral(c.info.TypeOf(id)) {
		return
	}
	c.record(id, typ)
	e := c.tree.Exprs
	switch e.Kind(id) {
	case ast.ExprParen:
		in, _ := e.Inner(id)
		c.settle(in.Inner, typ)
	case ast.ExprUnary:
		u, _ := e.Unary(id)
		c.settle(u.Operand, typ)
	case ast.ExprBinary:
		b, _ := e.Binary(id)
		if !b.Op.IsComparison() && b.Op != ast.BinAnd && b.Op != ast.BinOr {
			c.settle(b.Left, typ)
			if b.Op != ast.BinShl && b.Op != ast.BinShr {
				c.settle(b.Right, typ)
			}
		}
	case ast.ExprBlock:
		if tail, ok := c.tree.BlockTail(id); ok {
			c.settle(tail, typ)
		}
	case ast.ExprIf:
		d, _ := e.If(id)
		c.settle(d.Then, typ)
		c.settle(d.Else, typ)
	}
}

func (c *checker) exprKind(id ast.ExprID, expected TypeID) TypeID {
	e := c.tree.Exprs
	b := c.in.builtins
	switch e.Kind(id) {
	case ast.ExprLit:
		lit, _ := e.Lit(id)
		return c.literal(lit)

	case ast.ExprPath:
		return c.path(id)

	case ast.ExprUnary:
		u, _ := e.Unary(id)
		operand := c.expr(u.Operand, expected)
		if u.Op == ast.UnDeref {
			if c.in.Kind(operand) == KindReference {
				return c.in.Elem(operand)
			}
			return NoTypeID
		}
		if spec, ok := UnarySpecFor(u.Op); ok && spec.Operand&c.in.FamilyOf(operand) != 0 {
			return operand
		}
		return NoTypeID

	case ast.ExprAddrOf:
		a, _ := e.AddrOf(id)
		operand := c.expr(a.Operand, c.in.Elem(expected))
		if operand == NoTypeID {
			return NoTypeID
		}
		return c.in.Intern(MakeReference(operand, a.Mut))

	case ast.ExprBinary:
		return c.binary(id)

	case ast.ExprAssign, ast.ExprAssignOp:
		a, _ := e.Assign(id)
		left := c.expr(a.Left, NoTypeID)
		hint := left
		if e.Kind(id) == ast.ExprAssignOp && (a.Op == ast.BinShl || a.Op == ast.BinShr) {
			hint = NoTypeID
		}
		c.expr(a.Right, hint)
		return b.Unit

	case ast.ExprCast:
		d, _ := e.Cast(id)
		c.expr(d.Value, NoTypeID)
		return c.resolve(d.Type)

	case ast.ExprCall:
		return c.call(id, expected)

	case ast.ExprMethodCall:
		return c.methodCall(id, expected)

	case ast.ExprField:
		f, _ := e.Field(id)
		target := c.in.Deref(c.expr(f.Target, NoTypeID))
		name := c.tree.Name(f.Name)
		if typ, ok := c.in.FieldType(target, name); ok {
			return typ
		}
		if info, ok := c.in.TupleInfo(target); ok {
			if i, err := strconv.Atoi(name); err == nil && i < len(info.Elems) {
				return info.Elems[i]
			}
		}
		return NoTypeID

	case ast.ExprIndex:
		d, _ := e.Index(id)
		target := c.in.Deref(c.expr(d.Target, NoTypeID))
		idx := c.expr(d.Index, b.Usize)
		switch c.in.Kind(target) {
		case KindArray, KindSlice, KindVec:
			if c.in.Kind(idx) == KindIter {
				return c.in.Intern(MakeSlice(c.in.Elem(target)))
			}
			return c.in.Elem(target)
		case KindString, KindStr:
			return b.Str
		}
		return NoTypeID

	case ast.ExprTry:
		in, _ := e.Inner(id)
		inner := c.expr(in.Inner, NoTypeID)
		switch c.in.Kind(inner) {
		case KindOption, KindResult:
			return c.in.Elem(inner)
		}
		return NoTypeID

	case ast.ExprParen:
		in, _ := e.Inner(id)
		return c.expr(in.Inner, expected)

	case ast.ExprTuple:
		l, _ := e.List(id)
		var hints []TypeID
		if info, ok := c.in.TupleInfo(expected); ok {
			hints = info.Elems
		}
		elems := make([]TypeID, 0, len(l.Elems))
		for i, x := range l.Elems {
			var hint TypeID
			if i < len(hints) {
				hint = hints[i]
			}
			elems = append(elems, c.expr(x, hint))
		}
		return c.in.RegisterTuple(elems)

	case ast.ExprArray:
		l, _ := e.List(id)
		elem := c.in.Elem(expected)
		for _, x := range l.Elems {
			elem = c.in.Unify(elem, c.expr(x, elem))
		}
		if elem != NoTypeID && !c.in.IsLiteral(elem) {
			for _, x := range l.Elems {
				c.settle(x, elem)
			}
		}
		n, _ := safecast.Conv[uint32](len(l.Elems))
		return c.in.Intern(MakeArray(elem, n))

	case ast.ExprRepeat:
		r, _ := e.Repeat(id)
		elem := c.expr(r.Elem, c.in.Elem(expected))
		c.expr(r.Count, b.Usize)
		return c.in.Intern(MakeArray(elem, c.arrayLen(r.Count)))

	case ast.ExprBlock:
		return c.block(id, expected)

	case ast.ExprIf:
		return c.ifExpr(id, expected)

	case ast.ExprLet:
		l, _ := e.Let(id)
		init := c.expr(l.Init, NoTypeID)
		c.bind(l.Pat, init)
		return b.Bool

	case ast.ExprWhile, ast.ExprLoop, ast.ExprFor:
		return c.loop(id)

	case ast.ExprMatch:
		return c.match(id, expected)

	case ast.ExprClosure:
		cl, _ := e.Closure(id)
		c.push()
		for _, p := range cl.Params {
			c.bind(p.Pat, c.resolve(p.Type))
		}
		saved := c.ret
		c.ret = NoTypeID
		if cl.Ret.IsValid() {
			c.ret = c.resolve(cl.Ret)
		}
		c.expr(cl.Body, c.ret)
		c.ret = saved
		c.pop()
		return NoTypeID

	case ast.ExprBreak, ast.ExprContinue:
		j, _ := e.Jump(id)
		c.expr(j.Value, NoTypeID)
		return b.Never

	case ast.ExprReturn:
		j, _ := e.Jump(id)
		c.expr(j.Value, c.ret)
		return b.Never

	case ast.ExprStruct:
		return c.structLit(id)

	case ast.ExprRange:
		r, _ := e.Range(id)
		lo := c.expr(r.Lo, NoTypeID)
		hi := c.expr(r.Hi, lo)
		elem := c.in.Unify(lo, hi)
		if elem != NoTypeID && !c.in.IsLiteral(elem) {
			c.settle(r.Lo, elem)
			c.settle(r.Hi, elem)
		}
		return c.in.Intern(MakeIter(elem))
	}
	return NoTypeID
}

func (c *checker) literal(lit *ast.ExprLitData) TypeID {
	b := c.in.builtins
	switch lit.Kind {
	case ast.LitInt, ast.LitFloat:
		if lit.Suffix != "" {
			if typ, ok := c.in.Primitive(lit.Suffix); ok {
				return typ
			}
			return NoTypeID
		}
		if lit.Kind == ast.LitFloat {
			return b.FloatLit
		}
		return b.IntLit
	case ast.LitStr, ast.LitRawStr:
		return b.StrRef
	case ast.LitByteStr:
		return c.in.Intern(MakeReference(c.in.Intern(MakeSlice(b.U8)), false))
	case ast.LitByte:
		return b.U8
	case ast.LitChar:
		return b.Char
	case ast.LitBool:
		return b.Bool
	}
	return NoTypeID
}

func (c *checker) path(id ast.ExprID) TypeID {
	p, _ := c.tree.Exprs.Path(id)
	if len(p.Segments) == 1 {
		name := p.Segments[0].Name
		if typ, ok := c.lookup(name); ok {
			return typ
		}
		switch c.tree.Name(name) {
		case "None":
			return c.in.Intern(MakeOption(NoTypeID))
		}
		if typ, ok := c.info.nominals[c.tree.Name(name)]; ok && c.in.Kind(typ) == KindStruct {
			// unit struct
			return typ
		}
		return NoTypeID
	}
	if typ, ok := c.info.variants[c.tree.PathName(p.Segments)]; ok {
		return typ
	}
	return NoTypeID
}

func (c *checker) binary(id ast.ExprID) TypeID {
	d, _ := c.tree.Exprs.Binary(id)
	switch d.Op {
	case ast.BinAnd, ast.BinOr:
		c.expr(d.Left, c.in.builtins.Bool)
		c.expr(d.Right, c.in.builtins.Bool)
		return c.in.builtins.Bool
	case ast.BinShl, ast.BinShr:
		left := c.expr(d.Left, NoTypeID)
		c.expr(d.Right, NoTypeID)
		return c.in.BinaryResultType(d.Op, left, left)
	}
	left := c.expr(d.Left, NoTypeID)
	right := c.expr(d.Right, c.in.Deref(left))
	if c.in.IsLiteral(left) && !c.in.IsLiteral(right) {
		if u := c.in.Unify(left, c.in.Deref(right)); u != NoTypeID {
			c.settle(d.Left, u)
			left = u
		}
	}
	return c.in.BinaryResultType(d.Op, left, right)
}

func (c *checker) call(id ast.ExprID, expected TypeID) TypeID {
	e := c.tree.Exprs
	d, _ := e.Call(id)
	b := c.in.builtins
	p, isPath := e.Path(d.Callee)
	if !isPath {
		c.expr(d.Callee, NoTypeID)
		c.args(d.Args, nil)
		return NoTypeID
	}
	c.record(d.Callee, NoTypeID)
	name := c.tree.PathName(p.Segments)
	last := c.tree.Name(p.Segments[len(p.Segments)-1].Name)
	exp, _ := c.in.Lookup(c.in.Deref(expected))

	switch last {
	case "Some":
		var hint TypeID
		if exp.Kind == KindOption {
			hint = exp.Elem
		}
		args := c.args(d.Args, []TypeID{hint})
		return c.in.Intern(MakeOption(first(args)))
	case "Ok", "Err":
		var okType, errType TypeID
		if exp.Kind == KindResult {
			okType, errType = exp.Elem, exp.Err
		}
		if last == "Ok" {
			okType = first(c.args(d.Args, []TypeID{okType}))
		} else {
			errType = first(c.args(d.Args, []TypeID{errType}))
		}
		return c.in.Intern(MakeResult(okType, errType))
	}

	if len(p.Segments) >= 2 {
		owner := c.tree.Name(p.Segments[len(p.Segments)-2].Name)
		switch owner {
		case "String":
			c.args(d.Args, nil)
			switch last {
			case "new", "from", "with_capacity", "from_utf8_lossy":
				return b.String
			}
			return NoTypeID
		case "Vec":
			c.args(d.Args, nil)
			switch last {
			case "new", "with_capacity":
				if exp.Kind == KindVec {
					return c.in.Deref(expected)
				}
				return c.in.Intern(MakeVec(NoTypeID))
			}
			return NoTypeID
		}
		if typ, ok := c.info.variants[name]; ok {
			c.args(d.Args, nil)
			return typ
		}
	}
	if sig, ok := c.info.fns[name]; ok {
		c.args(d.Args, sig.Params)
		return sig.Ret
	}
	if typ, ok := c.info.nominals[last]; ok && c.in.Kind(typ) == KindStruct {
		var hints []TypeID
		if info, ok := c.in.StructInfo(typ); ok {
			for _, f := range info.Fields {
				hints = append(hints, f.Type)
			}
		}
		c.args(d.Args, hints)
		return typ
	}
	c.args(d.Args, nil)
	return NoTypeID
}

func first(ids []TypeID) TypeID {
	if len(ids) == 0 {
		return NoTypeID
	}
	return ids[0]
}

func (c *checker) args(args []ast.ExprID, hints []TypeID) []TypeID {
	out := make([]TypeID, 0, len(args))
	for i, a := range args {
		var hint TypeID
		if i < len(hints) {
			hint = hints[i]
		}
		out = append(out, c.expr(a, hint))
	}
	return out
}

func (c *checker) methodCall(id ast.ExprID, expected TypeID) TypeID {
	d, _ := c.tree.Exprs.MethodCall(id)
	recv := c.expr(d.Receiver, NoTypeID)
	name := c.tree.Name(d.Name)
	var hints []TypeID
	switch name {
	case "nth", "skip", "take", "step_by", "get", "truncate", "with_capacity":
		hints = []TypeID{c.in.builtins.Usize}
	case "unwrap_or", "push", "contains", "eq", "ne", "min", "max", "pow":
		// аргумент того же типа, что и элемент или получатель
		elem := c.in.Deref(recv)
		if k := c.in.Kind(elem); k == KindOption || k == KindResult || k == KindVec {
			elem = c.in.Elem(elem)
		}
		if name == "pow" {
			elem = c.in.Intern(MakeUint(Width32))
		}
		hints = []TypeID{elem}
	}
	args := c.args(d.Args, hints)
	return c.in.MethodResult(MethodCall{Recv: recv, Name: name, Args: args, Expected: expected})
}

func (c *checker) block(id ast.ExprID, expected TypeID) TypeID {
	d, _ := c.tree.Exprs.Block(id)
	tail, hasTail := c.tree.BlockTail(id)
	diverges := false
	c.push()
	defer c.pop()
	for _, st := range d.Stmts {
		if hasTail {
			if es, ok := c.tree.Stmts.Expr(st); ok && es.Expr == tail {
				return c.expr(tail, expected)
			}
		}
		if c.stmt(st) {
			diverges = true
		}
	}
	if diverges {
		return c.in.builtins.Never
	}
	return c.in.builtins.Unit
}

// stmt types one statement and reports whether it always diverges.
func (c *checker) stmt(id ast.StmtID) bool {
	st := c.tree.Stmts.Get(id)
	if st == nil {
		return false
	}
	switch st.Kind {
	case ast.StmtLet:
		l, _ := c.tree.Stmts.Let(id)
		var declared TypeID
		if l.Type.IsValid() {
			declared = c.resolve(l.Type)
		}
		init := c.expr(l.Init, declared)
		c.expr(l.Else, NoTypeID)
		typ := declared
		if typ == NoTypeID {
			typ = init
		}
		c.bind(l.Pat, typ)
	case ast.StmtExpr:
		es, _ := c.tree.Stmts.Expr(id)
		return c.in.Kind(c.expr(es.Expr, NoTypeID)) == KindNever
	}
	return false
}

func (c *checker) ifExpr(id ast.ExprID, expected TypeID) TypeID {
	d, _ := c.tree.Exprs.If(id)
	c.push()
	c.expr(d.Cond, c.in.builtins.Bool)
	then := c.expr(d.Then, expected)
	c.pop()
	if !d.Else.IsValid() {
		return c.in.builtins.Unit
	}
	hint := expected
	if hint == NoTypeID {
		hint = then
	}
	els := c.expr(d.Else, hint)
	typ := c.in.Unify(then, els)
	if typ != NoTypeID && !c.in.IsLiteral(typ) {
		c.settle(d.Then, typ)
		c.settle(d.Else, typ)
	}
	return typ
}

func (c *checker) loop(id ast.ExprID) TypeID {
	e := c.tree.Exprs
	d, _ := e.Loop(id)
	c.push()
	defer c.pop()
	switch e.Kind(id) {
	case ast.ExprWhile:
		c.expr(d.Cond, c.in.builtins.Bool)
	case ast.ExprFor:
		iter := c.in.Deref(c.expr(d.Iter, NoTypeID))
		var elem TypeID
		switch c.in.Kind(iter) {
		case KindIter:
			elem = c.in.Elem(iter)
		case KindVec, KindArray, KindSlice:
			elem = c.in.Elem(iter)
			if c.in.Kind(c.info.TypeOf(d.Iter)) == KindReference {
				elem = c.in.Intern(MakeReference(elem, false))
			}
		}
		c.bind(d.Pat, elem)
	}
	c.expr(d.Body, NoTypeID)
	if e.Kind(id) == ast.ExprLoop && !c.breaks(d.Body) {
		return c.in.builtins.Never
	}
	return c.in.builtins.Unit
}

// breaks reports whether body contains a break that may leave the loop.
func (c *checker) breaks(body ast.ExprID) bool {
	found := false
	depth := 0
	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		if found {
			return
		}
		id, ok := n.Expr()
		if !ok {
			c.tree.ForEachChild(n, visit)
			return
		}
		switch c.tree.Exprs.Kind(id) {
		case ast.ExprBreak:
			j, _ := c.tree.Exprs.Jump(id)
			if depth == 0 || j.Label.IsSet() {
				found = true
				return
			}
		case ast.ExprWhile, ast.ExprLoop, ast.ExprFor:
			depth++
			c.tree.ForEachChild(n, visit)
			depth--
			return
		case ast.ExprClosure:
			return
		}
		c.tree.ForEachChild(n, visit)
	}
	visit(ast.ExprNode(body))
	return found
}

func (c *checker) match(id ast.ExprID, expected TypeID) TypeID {
	d, _ := c.tree.Exprs.Match(id)
	scrutinee := c.expr(d.Scrutinee, NoTypeID)
	result := NoTypeID
	known := true
	for _, arm := range d.Arms {
		c.push()
		c.bind(arm.Pat, scrutinee)
		c.expr(arm.Guard, c.in.builtins.Bool)
		hint := expected
		if hint == NoTypeID {
			hint = result
		}
		typ := c.expr(arm.Body, hint)
		c.pop()
		if c.in.Kind(typ) == KindNever {
			continue
		}
		if result == NoTypeID {
			result = typ
			continue
		}
		if u := c.in.Unify(result, typ); u != NoTypeID {
			result = u
		} else {
			known = false
		}
	}
	if !known {
		return NoTypeID
	}
	if result == NoTypeID && len(d.Arms) > 0 {
		return c.in.builtins.Never
	}
	return result
}

func (c *checker) structLit(id ast.ExprID) TypeID {
	d, _ := c.tree.Exprs.Struct(id)
	var typ TypeID
	if p, ok := c.tree.Exprs.Path(d.Path); ok && len(p.Segments) > 0 {
		name := c.tree.Name(p.Segments[len(p.Segments)-1].Name)
		typ = c.info.nominals[name]
		if len(p.Segments) >= 2 {
			if v, ok := c.info.variants[c.tree.PathName(p.Segments)]; ok {
				typ = v
			}
		}
	}
	c.record(d.Path, NoTypeID)
	for _, f := range d.Fields {
		hint, _ := c.in.FieldType(typ, c.tree.Name(f.Name))
		c.expr(f.Value, hint)
	}
	c.expr(d.Base, typ)
	return typ
}
