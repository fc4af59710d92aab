package parser

import (
	"cbridge/internal/ast"
	"cbridge/internal/token"
)

// Таблица приоритетов бинарных операторов C.
// Чем больше число, тем выше приоритет.
const (
	precLogicalOr      = 1  // ||
	precLogicalAnd     = 2  // &&
	precBitwiseOr      = 3  // |
	precBitwiseXor     = 4  // ^
	precBitwiseAnd     = 5  // &
	precEquality       = 6  // == !=
	precComparison     = 7  // < <= > >=
	precShift          = 8  // << >>
	precAdditive       = 9  // + -
	precMultiplicative = 10 // * / %
)

// getBinaryOperatorPrec возвращает приоритет бинарного оператора или -1.
// Присваивание, ?: и запятая разбираются отдельно.
func getBinaryOperatorPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison
	case token.Shl, token.Shr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1
	}
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Star:    ast.BinaryMul,
	token.Slash:   ast.BinaryDiv,
	token.Percent: ast.BinaryRem,
	token.Plus:    ast.BinaryAdd,
	token.Minus:   ast.BinarySub,
	token.Shl:     ast.BinaryShl,
	token.Shr:     ast.BinaryShr,
	token.Lt:      ast.BinaryLT,
	token.Gt:      ast.BinaryGT,
	token.LtEq:    ast.BinaryLE,
	token.GtEq:    ast.BinaryGE,
	token.EqEq:    ast.BinaryEQ,
	token.BangEq:  ast.BinaryNE,
	token.Amp:     ast.BinaryAnd,
	token.Caret:   ast.BinaryXor,
	token.Pipe:    ast.BinaryOr,
	token.AndAnd:  ast.BinaryLAnd,
	token.OrOr:    ast.BinaryLOr,
}

// tokenKindToBinaryOp преобразует токен в бинарный оператор
func tokenKindToBinaryOp(kind token.Kind) ast.BinaryOp {
	return binaryOps[kind]
}

// assignOp: оператор присваивания для токена.
func assignOp(kind token.Kind) (ast.BinaryOp, bool) {
	switch kind {
	case token.Assign:
		return ast.BinaryAssign, true
	case token.StarAssign:
		return ast.BinaryMulAssign, true
	case token.SlashAssign:
		return ast.BinaryDivAssign, true
	case token.PercentAssign:
		return ast.BinaryRemAssign, true
	case token.PlusAssign:
		return ast.BinaryAddAssign, true
	case token.MinusAssign:
		return ast.BinarySubAssign, true
	case token.ShlAssign:
		return ast.BinaryShlAssign, true
	case token.ShrAssign:
		return ast.BinaryShrAssign, true
	case token.AmpAssign:
		return ast.BinaryAndAssign, true
	case token.CaretAssign:
		return ast.BinaryXorAssign, true
	case token.PipeAssign:
		return ast.BinaryOrAssign, true
	}
	return 0, false
}

// getUnaryOperator: префиксные операторы, кроме sizeof и приведения.
func getUnaryOperator(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.PlusPlus:
		return ast.UnaryPreInc, true
	case token.MinusMinus:
		return ast.UnaryPreDec, true
	case token.Amp:
		return ast.UnaryAddrOf, true
	case token.Star:
		return ast.UnaryDeref, true
	case token.Plus:
		return ast.UnaryPlus, true
	case token.Minus:
		return ast.UnaryMinus, true
	case token.Tilde:
		return ast.UnaryNot, true
	case token.Bang:
		return ast.UnaryLNot, true
	case token.KwExtension:
		return ast.UnaryExtension, true
	}
	return 0, false
}
