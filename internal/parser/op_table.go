package parser

import (
	"momo/internal/ast"
	"momo/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1  // = += -= ...
	precLogicalOr      = 2  // ||
	precLogicalAnd     = 3  // &&
	precBitwiseOr      = 4  // |
	precBitwiseXor     = 5  // ^
	precBitwiseAnd     = 6  // &
	precEquality       = 7  // == !=
	precComparison     = 8  // < <= > >=
	precShift          = 9  // << >>
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
)

// binaryPrec возвращает приоритет и правую ассоциативность оператора.
// -1 означает «не бинарный оператор».
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.AmpAssign, token.PipeAssign,
		token.CaretAssign, token.ShlAssign, token.ShrAssign:
		return precAssignment, true
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Shl, token.Shr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	default:
		return -1, false
	}
}

var binaryOps = map[token.Kind]ast.ExprBinaryOp{
	token.Plus:    ast.ExprBinaryAdd,
	token.Minus:   ast.ExprBinarySub,
	token.Star:    ast.ExprBinaryMul,
	token.Slash:   ast.ExprBinaryDiv,
	token.Percent: ast.ExprBinaryMod,
	token.Amp:     ast.ExprBinaryBitAnd,
	token.Pipe:    ast.ExprBinaryBitOr,
	token.Caret:   ast.ExprBinaryBitXor,
	token.Shl:     ast.ExprBinaryShiftLeft,
	token.Shr:     ast.ExprBinaryShiftRight,
	token.AndAnd:  ast.ExprBinaryLogicalAnd,
	token.OrOr:    ast.ExprBinaryLogicalOr,
	token.EqEq:    ast.ExprBinaryEq,
	token.BangEq:  ast.ExprBinaryNotEq,
	token.Lt:      ast.ExprBinaryLess,
	token.LtEq:    ast.ExprBinaryLessEq,
	token.Gt:      ast.ExprBinaryGreater,
	token.GtEq:    ast.ExprBinaryGreaterEq,
	token.Assign:  ast.ExprBinaryAssign,
}

var prefixOps = map[token.Kind]ast.ExprUnaryOp{
	token.Plus:       ast.ExprUnaryPlus,
	token.Minus:      ast.ExprUnaryMinus,
	token.Bang:       ast.ExprUnaryNot,
	token.Tilde:      ast.ExprUnaryBitNot,
	token.Amp:        ast.ExprUnaryAddr,
	token.Star:       ast.ExprUnaryDeref,
	token.PlusPlus:   ast.ExprUnaryInc,
	token.MinusMinus: ast.ExprUnaryDec,
}
