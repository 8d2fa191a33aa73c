package ast

import (
	"rillint/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Lits     *Arena[ExprLitData]
	Paths    *Arena[ExprPathData]
	Unaries  *Arena[ExprUnaryData]
	AddrOfs  *Arena[ExprAddrOfData]
	Binaries *Arena[ExprBinaryData]
	Assigns  *Arena[ExprAssignData]
	Casts    *Arena[ExprCastData]
	Calls    *Arena[ExprCallData]
	Methods  *Arena[ExprMethodCallData]
	Fields   *Arena[ExprFieldData]
	Indices  *Arena[ExprIndexData]
	Inners   *Arena[ExprInnerData]
	Lists    *Arena[ExprListData]
	Repeats  *Arena[ExprRepeatData]
	Blocks   *Arena[ExprBlockData]
	Ifs      *Arena[ExprIfData]
	Lets     *Arena[ExprLetData]
	Loops    *Arena[ExprLoopData]
	Matches  *Arena[ExprMatchData]
	Closures *Arena[ExprClosureData]
	Jumps    *Arena[ExprJumpData]
	Structs  *Arena[ExprStructData]
	Ranges   *Arena[ExprRangeData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := max(capHint/8, 8)
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Lits:     NewArena[ExprLitData](capHint / 2),
		Paths:    NewArena[ExprPathData](capHint / 2),
		Unaries:  NewArena[ExprUnaryData](small),
		AddrOfs:  NewArena[ExprAddrOfData](small),
		Binaries: NewArena[ExprBinaryData](small),
		Assigns:  NewArena[ExprAssignData](small),
		Casts:    NewArena[ExprCastData](small),
		Calls:    NewArena[ExprCallData](small),
		Methods:  NewArena[ExprMethodCallData](small),
		Fields:   NewArena[ExprFieldData](small),
		Indices:  NewArena[ExprIndexData](small),
		Inners:   NewArena[ExprInnerData](small),
		Lists:    NewArena[ExprListData](small),
		Repeats:  NewArena[ExprRepeatData](small),
		Blocks:   NewArena[ExprBlockData](small),
		Ifs:      NewArena[ExprIfData](small),
		Lets:     NewArena[ExprLetData](small),
		Loops:    NewArena[ExprLoopData](small),
		Matches:  NewArena[ExprMatchData](small),
		Closures: NewArena[ExprClosureData](small),
		Jumps:    NewArena[ExprJumpData](small),
		Structs:  NewArena[ExprStructData](small),
		Ranges:   NewArena[ExprRangeData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Kind returns the kind of id, ExprBad for unknown ids.
func (e *Exprs) Kind(id ExprID) ExprKind {
	if x := e.Get(id); x != nil {
		return x.Kind
	}
	return ExprBad
}

// Span returns the span of id.
func (e *Exprs) Span(id ExprID) source.Span {
	if x := e.Get(id); x != nil {
		return x.Span
	}
	return source.Span{}
}

func payload[T any](e *Exprs, a *Arena[T], id ExprID, kinds ...ExprKind) (*T, bool) {
	x := e.Get(id)
	if x == nil {
		return nil, false
	}
	for _, k := range kinds {
		if x.Kind == k {
			return a.Get(uint32(x.Payload)), true
		}
	}
	return nil, false
}

func (e *Exprs) NewBad(span source.Span) ExprID {
	return e.new(ExprBad, span, 0)
}

func (e *Exprs) NewLit(span source.Span, data ExprLitData) ExprID {
	return e.new(ExprLit, span, e.Lits.Allocate(data))
}

func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) { return payload(e, e.Lits, id, ExprLit) }

func (e *Exprs) NewPath(span source.Span, data ExprPathData) ExprID {
	return e.new(ExprPath, span, e.Paths.Allocate(data))
}

func (e *Exprs) Path(id ExprID) (*ExprPathData, bool) { return payload(e, e.Paths, id, ExprPath) }

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, opSpan source.Span, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, OpSpan: opSpan, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) { return payload(e, e.Unaries, id, ExprUnary) }

func (e *Exprs) NewAddrOf(span source.Span, mut bool, operand ExprID) ExprID {
	return e.new(ExprAddrOf, span, e.AddrOfs.Allocate(ExprAddrOfData{Mut: mut, Operand: operand}))
}

func (e *Exprs) AddrOf(id ExprID) (*ExprAddrOfData, bool) {
	return payload(e, e.AddrOfs, id, ExprAddrOf)
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, opSpan source.Span, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, OpSpan: opSpan, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	return payload(e, e.Binaries, id, ExprBinary)
}

// NewAssign creates `l = r`; NewAssignOp creates `l op= r`.
func (e *Exprs) NewAssign(span source.Span, opSpan source.Span, left, right ExprID) ExprID {
	return e.new(ExprAssign, span, e.Assigns.Allocate(ExprAssignData{OpSpan: opSpan, Left: left, Right: right}))
}

func (e *Exprs) NewAssignOp(span source.Span, op BinaryOp, opSpan source.Span, left, right ExprID) ExprID {
	return e.new(ExprAssignOp, span, e.Assigns.Allocate(ExprAssignData{Op: op, OpSpan: opSpan, Left: left, Right: right}))
}

// Assign returns the payload of both plain and compound assignments.
func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	return payload(e, e.Assigns, id, ExprAssign, ExprAssignOp)
}

func (e *Exprs) NewCast(span source.Span, value ExprID, typ TypeID) ExprID {
	return e.new(ExprCast, span, e.Casts.Allocate(ExprCastData{Value: value, Type: typ}))
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) { return payload(e, e.Casts, id, ExprCast) }

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Callee: callee, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) { return payload(e, e.Calls, id, ExprCall) }

func (e *Exprs) NewMethodCall(span source.Span, data ExprMethodCallData) ExprID {
	return e.new(ExprMethodCall, span, e.Methods.Allocate(data))
}

func (e *Exprs) MethodCall(id ExprID) (*ExprMethodCallData, bool) {
	return payload(e, e.Methods, id, ExprMethodCall)
}

func (e *Exprs) NewField(span source.Span, target ExprID, name source.StringID, nameSpan source.Span) ExprID {
	return e.new(ExprField, span, e.Fields.Allocate(ExprFieldData{Target: target, Name: name, NameSpan: nameSpan}))
}

func (e *Exprs) Field(id ExprID) (*ExprFieldData, bool) { return payload(e, e.Fields, id, ExprField) }

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(ExprIndexData{Target: target, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) { return payload(e, e.Indices, id, ExprIndex) }

// NewInner creates a Try or Paren wrapper.
func (e *Exprs) NewInner(kind ExprKind, span source.Span, inner ExprID) ExprID {
	return e.new(kind, span, e.Inners.Allocate(ExprInnerData{Inner: inner}))
}

func (e *Exprs) Inner(id ExprID) (*ExprInnerData, bool) {
	return payload(e, e.Inners, id, ExprTry, ExprParen)
}

// NewList creates a Tuple or Array.
func (e *Exprs) NewList(kind ExprKind, span source.Span, elems []ExprID) ExprID {
	return e.new(kind, span, e.Lists.Allocate(ExprListData{Elems: elems}))
}

func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	return payload(e, e.Lists, id, ExprTuple, ExprArray)
}

func (e *Exprs) NewRepeat(span source.Span, elem, count ExprID) ExprID {
	return e.new(ExprRepeat, span, e.Repeats.Allocate(ExprRepeatData{Elem: elem, Count: count}))
}

func (e *Exprs) Repeat(id ExprID) (*ExprRepeatData, bool) {
	return payload(e, e.Repeats, id, ExprRepeat)
}

func (e *Exprs) NewBlock(span source.Span, data ExprBlockData) ExprID {
	return e.new(ExprBlock, span, e.Blocks.Allocate(data))
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) { return payload(e, e.Blocks, id, ExprBlock) }

func (e *Exprs) NewIf(span source.Span, data ExprIfData) ExprID {
	return e.new(ExprIf, span, e.Ifs.Allocate(data))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) { return payload(e, e.Ifs, id, ExprIf) }

func (e *Exprs) NewLet(span source.Span, pat PatID, init ExprID) ExprID {
	return e.new(ExprLet, span, e.Lets.Allocate(ExprLetData{Pat: pat, Init: init}))
}

func (e *Exprs) Let(id ExprID) (*ExprLetData, bool) { return payload(e, e.Lets, id, ExprLet) }

// NewLoop creates a While, Loop or For.
func (e *Exprs) NewLoop(kind ExprKind, span source.Span, data ExprLoopData) ExprID {
	return e.new(kind, span, e.Loops.Allocate(data))
}

func (e *Exprs) Loop(id ExprID) (*ExprLoopData, bool) {
	return payload(e, e.Loops, id, ExprWhile, ExprLoop, ExprFor)
}

func (e *Exprs) NewMatch(span source.Span, data ExprMatchData) ExprID {
	return e.new(ExprMatch, span, e.Matches.Allocate(data))
}

func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) { return payload(e, e.Matches, id, ExprMatch) }

func (e *Exprs) NewClosure(span source.Span, data ExprClosureData) ExprID {
	return e.new(ExprClosure, span, e.Closures.Allocate(data))
}

func (e *Exprs) Closure(id ExprID) (*ExprClosureData, bool) {
	return payload(e, e.Closures, id, ExprClosure)
}

// NewJump creates a Break, Continue or Return.
func (e *Exprs) NewJump(kind ExprKind, span source.Span, label Label, value ExprID) ExprID {
	return e.new(kind, span, e.Jumps.Allocate(ExprJumpData{Label: label, Value: value}))
}

func (e *Exprs) Jump(id ExprID) (*ExprJumpData, bool) {
	return payload(e, e.Jumps, id, ExprBreak, ExprContinue, ExprReturn)
}

func (e *Exprs) NewStruct(span source.Span, data ExprStructData) ExprID {
	return e.new(ExprStruct, span, e.Structs.Allocate(data))
}

func (e *Exprs) Struct(id ExprID) (*ExprStructData, bool) {
	return payload(e, e.Structs, id, ExprStruct)
}

func (e *Exprs) NewRange(span source.Span, data ExprRangeData) ExprID {
	return e.new(ExprRange, span, e.Ranges.Allocate(data))
}

func (e *Exprs) Range(id ExprID) (*ExprRangeData, bool) { return payload(e, e.Ranges, id, ExprRange) }
