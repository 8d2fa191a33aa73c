package ast

import (
	"rillint/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprBad is produced by error recovery.
	ExprBad ExprKind = iota
	ExprLit
	// ExprPath is a plain or qualified name: x, String::from, Vec::<u8>::new.
	ExprPath
	ExprUnary
	// ExprAddrOf is `&e` / `&mut e`.
	ExprAddrOf
	ExprBinary
	ExprAssign
	ExprAssignOp
	ExprCast
	ExprCall
	ExprMethodCall
	ExprField
	ExprIndex
	ExprTry
	ExprParen
	ExprTuple
	ExprArray
	ExprRepeat
	ExprBlock
	ExprIf
	// ExprLet is `let PAT = e` in `if`/`while` conditions.
	ExprLet
	ExprWhile
	ExprLoop
	ExprFor
	ExprMatch
	ExprClosure
	ExprBreak
	ExprContinue
	ExprReturn
	ExprStruct
	ExprRange
)

var exprKindNames = [...]string{
	ExprBad:        "Bad",
	ExprLit:        "Lit",
	ExprPath:       "Path",
	ExprUnary:      "Unary",
	ExprAddrOf:     "AddrOf",
	ExprBinary:     "Binary",
	ExprAssign:     "Assign",
	ExprAssignOp:   "AssignOp",
	ExprCast:       "Cast",
	ExprCall:       "Call",
	ExprMethodCall: "MethodCall",
	ExprField:      "Field",
	ExprIndex:      "Index",
	ExprTry:        "Try",
	ExprParen:      "Paren",
	ExprTuple:      "Tuple",
	ExprArray:      "Array",
	ExprRepeat:     "Repeat",
	ExprBlock:      "Block",
	ExprIf:         "If",
	ExprLet:        "Let",
	ExprWhile:      "While",
	ExprLoop:       "Loop",
	ExprFor:        "For",
	ExprMatch:      "Match",
	ExprClosure:    "Closure",
	ExprBreak:      "Break",
	ExprContinue:   "Continue",
	ExprReturn:     "Return",
	ExprStruct:     "Struct",
	ExprRange:      "Range",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Unknown"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BinaryOp enumerates binary operator kinds.
type BinaryOp uint8

const (
	// Арифметические
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinRem
	// Логические
	BinAnd
	BinOr
	// Битовые
	BinBitXor
	BinBitAnd
	BinBitOr
	BinShl
	BinShr
	// Сравнения
	BinEq
	BinLt
	BinLe
	BinNe
	BinGe
	BinGt
)

var binaryOpText = [...]string{
	BinAdd: "+", BinSub: "-", BinMul: "*", BinDiv: "/", BinRem: "%",
	BinAnd: "&&", BinOr: "||",
	BinBitXor: "^", BinBitAnd: "&", BinBitOr: "|", BinShl: "<<", BinShr: ">>",
	BinEq: "==", BinLt: "<", BinLe: "<=", BinNe: "!=", BinGe: ">=", BinGt: ">",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsComparison reports whether op is one of == != < <= > >=.
func (op BinaryOp) IsComparison() bool {
	return op >= BinEq && op <= BinGt
}

// IsCommutative reports whether swapping operands keeps the value.
func (op BinaryOp) IsCommutative() bool {
	switch op {
	case BinAdd, BinMul, BinAnd, BinOr, BinBitXor, BinBitAnd, BinBitOr, BinEq, BinNe:
		return true
	}
	return false
}

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	UnDeref UnaryOp = iota
	UnNot
	UnNeg
)

func (op UnaryOp) String() string {
	switch op {
	case UnDeref:
		return "*"
	case UnNot:
		return "!"
	case UnNeg:
		return "-"
	}
	return "?"
}

// LitKind classifies literal expressions.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitStr
	LitRawStr
	LitByteStr
	LitByte
	LitChar
	LitBool
)

// Label is an optional loop or block label.
type Label struct {
	Name source.StringID
	Span source.Span
}

// IsSet reports whether the label was written.
func (l Label) IsSet() bool { return l.Name != source.NoStringID }

type ExprLitData struct {
	Kind LitKind
	// Text is the literal as written, prefixes and suffix included.
	Text string
	// Suffix is the type suffix of numeric literals ("u8", "isize"), if any.
	Suffix string
}

type PathSegment struct {
	Name source.StringID
	Span source.Span
}

type ExprPathData struct {
	Segments []PathSegment
	// GenericArgs holds turbofish arguments (`Vec::<u8>`), GenericSeg the
	// index of the segment carrying them.
	GenericArgs []TypeID
	GenericSeg  int
	// GenericClose is the span of the closing '>' when GenericArgs is set.
	GenericClose source.Span
}

type ExprUnaryData struct {
	Op      UnaryOp
	OpSpan  source.Span
	Operand ExprID
}

type ExprAddrOfData struct {
	Mut     bool
	Operand ExprID
}

type ExprBinaryData struct {
	Op     BinaryOp
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

// ExprAssignData serves plain and compound assignment.
type ExprAssignData struct {
	// Op is meaningful for ExprAssignOp only.
	Op     BinaryOp
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

type ExprCastData struct {
	Value ExprID
	Type  TypeID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprMethodCallData struct {
	Receiver ExprID
	Name     source.StringID
	NameSpan source.Span
	TypeArgs []TypeID
	Args     []ExprID
}

// ExprFieldData covers named fields and tuple indices (`t.0`).
type ExprFieldData struct {
	Target   ExprID
	Name     source.StringID
	NameSpan source.Span
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

// ExprInnerData is the payload of single-child wrappers: Try and Paren.
type ExprInnerData struct {
	Inner ExprID
}

// ExprListData is the payload of tuples and arrays.
type ExprListData struct {
	Elems []ExprID
}

type ExprRepeatData struct {
	Elem  ExprID
	Count ExprID
}

type ExprBlockData struct {
	Stmts  []StmtID
	Label  Label
	Unsafe bool
}

type ExprIfData struct {
	Cond ExprID
	// Then is always an ExprBlock.
	Then ExprID
	// Else is an ExprBlock, an ExprIf or NoExprID.
	Else     ExprID
	ElseSpan source.Span // ключевое слово else
}

type ExprLetData struct {
	Pat  PatID
	Init ExprID
}

// ExprLoopData serves while, loop and for.
type ExprLoopData struct {
	Label Label
	// Cond is the while condition, NoExprID otherwise.
	Cond ExprID
	// Pat and Iter are set for for-loops.
	Pat  PatID
	Iter ExprID
	Body ExprID
}

type MatchArm struct {
	Pat   PatID
	Guard ExprID
	Body  ExprID
	Span  source.Span
}

type ExprMatchData struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

type ClosureParam struct {
	Pat  PatID
	Type TypeID
}

type ExprClosureData struct {
	Params []ClosureParam
	Ret    TypeID
	Body   ExprID
}

// ExprJumpData serves break, continue and return.
type ExprJumpData struct {
	Label Label
	Value ExprID
}

type FieldInit struct {
	Name      source.StringID
	NameSpan  source.Span
	Value     ExprID
	Shorthand bool
}

type ExprStructData struct {
	Path   ExprID
	Fields []FieldInit
	Base   ExprID
}

type ExprRangeData struct {
	Lo        ExprID
	Hi        ExprID
	Inclusive bool
}

// EndsWithGenerics reports whether the path text ends with `>`.
func (d *ExprPathData) EndsWithGenerics() bool {
	return len(d.GenericArgs) > 0 && d.GenericSeg == len(d.Segments)-1
}
