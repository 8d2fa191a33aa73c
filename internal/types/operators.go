package types

import "rillint/internal/ast"

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint32

const (
	FamilyNone FamilyMask = 0
	FamilyAny  FamilyMask = 1 << iota
	FamilyBool
	FamilySignedInt
	FamilyUnsignedInt
	FamilyFloat
	FamilyString
)

const (
	FamilyIntegral = FamilySignedInt | FamilyUnsignedInt
	FamilyNumeric  = FamilyIntegral | FamilyFloat
)

// BinaryResult describes how to derive the result type for an operator.
type BinaryResult uint8

const (
	BinaryResultUnknown BinaryResult = iota
	// BinaryResultLeft keeps the left operand type (shifts, String + &str).
	BinaryResultLeft
	BinaryResultBool
	// BinaryResultNumeric unifies both operands.
	BinaryResultNumeric
)

// BinaryFlags annotate special handling for binary operators.
type BinaryFlags uint16

const (
	BinaryFlagNone         BinaryFlags = 0
	BinaryFlagShortCircuit BinaryFlags = 1 << iota
	BinaryFlagCommutative
	BinaryFlagSameFamily
)

// BinarySpec lists operand families and expected result for an operation.
type BinarySpec struct {
	Left   FamilyMask
	Right  FamilyMask
	Result BinaryResult
	Flags  BinaryFlags
}

// UnaryResult indicates how to derive the resulting type.
type UnaryResult uint8

const (
	UnaryResultUnknown UnaryResult = iota
	UnaryResultSame
	UnaryResultDeref // *expr
)

// UnarySpec describes operand expectations for unary operators.
type UnarySpec struct {
	Operand FamilyMask
	Result  UnaryResult
}

var binarySpecTable = map[ast.BinaryOp][]BinarySpec{
	ast.BinAdd: {
		{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric, Flags: BinaryFlagCommutative},
		{Left: FamilyString, Right: FamilyString, Result: BinaryResultLeft},
	},
	ast.BinSub: {
		{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric},
	},
	ast.BinMul: {
		{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric, Flags: BinaryFlagCommutative},
	},
	ast.BinDiv: {
		{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric},
	},
	ast.BinRem: {
		{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric},
	},
	ast.BinBitAnd: {
		{Left: FamilyIntegral, Right: FamilyIntegral, Result: BinaryResultNumeric, Flags: BinaryFlagCommutative},
		{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagCommutative},
	},
	ast.BinBitOr: {
		{Left: FamilyIntegral, Right: FamilyIntegral, Result: BinaryResultNumeric, Flags: BinaryFlagCommutative},
		{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagCommutative},
	},
	ast.BinBitXor: {
		{Left: FamilyIntegral, Right: FamilyIntegral, Result: BinaryResultNumeric, Flags: BinaryFlagCommutative},
		{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagCommutative},
	},
	ast.BinShl: {
		{Left: FamilyIntegral, Right: FamilyIntegral, Result: BinaryResultLeft},
	},
	ast.BinShr: {
		{Left: FamilyIntegral, Right: FamilyIntegral, Result: BinaryResultLeft},
	},
	ast.BinAnd: {
		{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagShortCircuit},
	},
	ast.BinOr: {
		{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagShortCircuit},
	},
	ast.BinEq: {
		{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagSameFamily | BinaryFlagCommutative},
	},
	ast.BinNe: {
		{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagSameFamily | BinaryFlagCommutative},
	},
	ast.BinLt: {
		{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagSameFamily},
	},
	ast.BinLe: {
		{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagSameFamily},
	},
	ast.BinGt: {
		{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagSameFamily},
	},
	ast.BinGe: {
		{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool, Flags: BinaryFlagSameFamily},
	},
}

var unarySpecTable = map[ast.UnaryOp]UnarySpec{
	ast.UnNeg:   {Operand: FamilySignedInt | FamilyFloat, Result: UnaryResultSame},
	ast.UnNot:   {Operand: FamilyBool | FamilyIntegral, Result: UnaryResultSame},
	ast.UnDeref: {Operand: FamilyAny, Result: UnaryResultDeref},
}

// BinarySpecs returns operand rules for the given operator.
func BinarySpecs(op ast.BinaryOp) []BinarySpec {
	return binarySpecTable[op]
}

// UnarySpecFor returns operand/result hints for unary operators.
func UnarySpecFor(op ast.UnaryOp) (UnarySpec, bool) {
	spec, ok := unarySpecTable[op]
	return spec, ok
}

// FamilyOf classifies a type for operator lookup.
func (in *Interner) FamilyOf(id TypeID) FamilyMask {
	switch in.Kind(in.Deref(id)) {
	case KindBool:
		return FamilyBool
	case KindInt:
		return FamilySignedInt
	case KindUint:
		return FamilyUnsignedInt
	case KindFloat:
		return FamilyFloat
	case KindStr, KindString:
		return FamilyString
	case KindInvalid:
		return FamilyNone
	}
	return FamilyAny
}

// BinaryResultType derives the type of `l op r`. Unknown operands give
// NoTypeID unless the operator always yields bool.
func (in *Interner) BinaryResultType(op ast.BinaryOp, l, r TypeID) TypeID {
	specs := BinarySpecs(op)
	lf, rf := in.FamilyOf(l), in.FamilyOf(r)
	for _, spec := range specs {
		if spec.Result == BinaryResultBool && (spec.Left == FamilyAny || spec.Flags&BinaryFlagShortCircuit != 0 || spec.Left&lf != 0) {
			return in.builtins.Bool
		}
		if lf == FamilyNone || spec.Left&lf == 0 {
			continue
		}
		switch spec.Result {
		case BinaryResultLeft:
			return l
		case BinaryResultNumeric:
			if rf != FamilyNone && spec.Right&rf == 0 {
				continue
			}
			return in.Unify(l, r)
		}
	}
	return NoTypeID
}

// Unify picks the more concrete of two types: a literal placeholder gives
// way to a concrete numeric type of the same family. Different concrete
// types yield NoTypeID.
func (in *Interner) Unify(a, b TypeID) TypeID {
	switch {
	case a == b:
		return a
	case a == NoTypeID:
		return b
	case b == NoTypeID:
		return a
	case a == in.builtins.IntLit && in.Kind(b).IsIntegral(),
		a == in.builtins.FloatLit && in.Kind(b) == KindFloat:
		return b
	case b == in.builtins.IntLit && in.Kind(a).IsIntegral(),
		b == in.builtins.FloatLit && in.Kind(a) == KindFloat:
		return a
	case in.Kind(a) == KindNever:
		return b
	case in.Kind(b) == KindNever:
		return a
	}
	return NoTypeID
}
