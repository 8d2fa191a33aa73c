package parser

import (
	"rillint/internal/ast"
	"rillint/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1  // = += -= *= /= %= &= |= ^= <<= >>=
	precRange          = 2  // .. ..=
	precLogicalOr      = 3  // ||
	precLogicalAnd     = 4  // &&
	precComparison     = 5  // == != < <= > >=
	precBitwiseOr      = 6  // |
	precBitwiseXor     = 7  // ^
	precBitwiseAnd     = 8  // &
	precShift          = 9  // << >>
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
	precCast           = 12 // as
)

// getBinaryOperatorPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный)
func getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign,
		token.PercentAssign, token.AmpAssign, token.PipeAssign, token.CaretAssign, token.ShlAssign, token.ShrAssign:
		return precAssignment, true
	case token.DotDot, token.DotDotEq:
		return precRange, false
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.Shl, token.Shr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	case token.KwAs:
		return precCast, false
	default:
		return -1, false // не бинарный оператор
	}
}

// tokenKindToBinaryOp преобразует токен в тип бинарного оператора
func tokenKindToBinaryOp(kind token.Kind) ast.BinaryOp {
	switch kind {
	case token.Plus, token.PlusAssign:
		return ast.BinAdd
	case token.Minus, token.MinusAssign:
		return ast.BinSub
	case token.Star, token.StarAssign:
		return ast.BinMul
	case token.Slash, token.SlashAssign:
		return ast.BinDiv
	case token.Percent, token.PercentAssign:
		return ast.BinRem
	case token.Amp, token.AmpAssign:
		return ast.BinBitAnd
	case token.Pipe, token.PipeAssign:
		return ast.BinBitOr
	case token.Caret, token.CaretAssign:
		return ast.BinBitXor
	case token.Shl, token.ShlAssign:
		return ast.BinShl
	case token.Shr, token.ShrAssign:
		return ast.BinShr
	case token.AndAnd:
		return ast.BinAnd
	case token.OrOr:
		return ast.BinOr
	case token.EqEq:
		return ast.BinEq
	case token.BangEq:
		return ast.BinNe
	case token.Lt:
		return ast.BinLt
	case token.LtEq:
		return ast.BinLe
	case token.Gt:
		return ast.BinGt
	case token.GtEq:
		return ast.BinGe
	default:
		// Это не должно случаться, если таблица приоритетов корректна
		return ast.BinAdd
	}
}

// getUnaryOperator возвращает тип унарного оператора для токена
func getUnaryOperator(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.UnNeg, true
	case token.Bang:
		return ast.UnNot, true
	case token.Star:
		return ast.UnDeref, true
	default:
		return ast.UnNeg, false // не унарный оператор
	}
}

func isComparison(kind token.Kind) bool {
	p, _ := getBinaryOperatorPrec(kind)
	return p == precComparison
}
