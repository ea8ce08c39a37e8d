package parser

import (
	"fmt"

	"momo/internal/ast"
	"momo/internal/diag"
	"momo/internal/symbols"
)

// evalConst сворачивает константное выражение с 32-битной арифметикой.
// Допустимы литералы, перечислители, константные глобалы, унарные - + ! ~
// и бинарные операторы кроме присваивания.
func (p *Parser) evalConst(e ast.ExprID) int32 {
	exprs := p.arenas.Exprs
	expr := exprs.Get(e)

	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := exprs.Literal(e)
		return lit.Value

	case ast.ExprIdent:
		id, _ := exprs.Ident(e)
		sym := p.table.Symbol(id.Symbol)
		if sym.Has(symbols.SymbolFlagConstant) {
			return sym.Value
		}
		p.fail(diag.SemaNotConstant, expr.Span, fmt.Sprintf("%s %s is not a compile-time constant", sym.Kind, sym.Name))

	case ast.ExprUnary:
		u, _ := exprs.Unary(e)
		switch u.Op {
		case ast.ExprUnaryPlus:
			return p.evalConst(u.Operand)
		case ast.ExprUnaryMinus:
			return -p.evalConst(u.Operand)
		case ast.ExprUnaryNot:
			return boolToInt(p.evalConst(u.Operand) == 0)
		case ast.ExprUnaryBitNot:
			return ^p.evalConst(u.Operand)
		}

	case ast.ExprBinary:
		b, _ := exprs.Binary(e)
		if b.Op == ast.ExprBinaryAssign {
			break
		}
		l, r := p.evalConst(b.Left), p.evalConst(b.Right)
		if v, ok := foldBinary(b.Op, l, r); ok {
			return v
		}
		p.fail(diag.SemaDivisionByZero, expr.Span, "division by zero in constant expression")
	}

	p.fail(diag.SemaNotConstant, expr.Span, "expression is not a compile-time constant")
	return 0
}

// foldBinary returns ok=false only for division or remainder by zero.
// && and || coerce operands with x >= 1, as the generated code does.
func foldBinary(op ast.ExprBinaryOp, l, r int32) (int32, bool) {
	switch op {
	case ast.ExprBinaryAdd:
		return l + r, true
	case ast.ExprBinarySub:
		return l - r, true
	case ast.ExprBinaryMul:
		return l * r, true
	case ast.ExprBinaryDiv:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case ast.ExprBinaryMod:
		if r == 0 {
			return 0, false
		}
		return l % r, true
	case ast.ExprBinaryBitAnd:
		return l & r, true
	case ast.ExprBinaryBitOr:
		return l | r, true
	case ast.ExprBinaryBitXor:
		return l ^ r, true
	case ast.ExprBinaryShiftLeft:
		return l << (r & 31), true
	case ast.ExprBinaryShiftRight:
		return l >> (r & 31), true
	case ast.ExprBinaryLogicalAnd:
		return boolToInt(l >= 1 && r >= 1), true
	case ast.ExprBinaryLogicalOr:
		return boolToInt(l >= 1 || r >= 1), true
	case ast.ExprBinaryEq:
		return boolToInt(l == r), true
	case ast.ExprBinaryNotEq:
		return boolToInt(l != r), true
	case ast.ExprBinaryLess:
		return boolToInt(l < r), true
	case ast.ExprBinaryLessEq:
		return boolToInt(l <= r), true
	case ast.ExprBinaryGreater:
		return boolToInt(l > r), true
	case ast.ExprBinaryGreaterEq:
		return boolToInt(l >= r), true
	}
	return 0, true
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
