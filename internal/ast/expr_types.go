package ast

import (
	"momo/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent represents a name reference.
	ExprIdent ExprKind = iota
	// ExprLit represents a numeric or boolean literal.
	ExprLit
	// ExprBinary represents a binary operator, assignment included.
	ExprBinary
	// ExprUnary represents a prefix operator.
	ExprUnary
	// ExprPostfix represents x++ and x--.
	ExprPostfix
	// ExprCall represents a direct or indirect call.
	ExprCall
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Identifier"
	case ExprLit:
		return "Literal"
	case ExprBinary:
		return "BinaryExpression"
	case ExprUnary:
		return "UnaryPrefixExpression"
	case ExprPostfix:
		return "UnaryPostfixExpression"
	case ExprCall:
		return "CallExpression"
	}
	return "Expression(?)"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// Арифметические
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	// Битовые
	ExprBinaryBitAnd
	ExprBinaryBitOr
	ExprBinaryBitXor
	ExprBinaryShiftLeft
	ExprBinaryShiftRight

	// Логические, без короткого замыкания
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr

	// Сравнения
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq

	// ExprBinaryAssign is plain '='; compound forms are desugared by the parser.
	ExprBinaryAssign
)

var binaryOpText = [...]string{
	ExprBinaryAdd:        "+",
	ExprBinarySub:        "-",
	ExprBinaryMul:        "*",
	ExprBinaryDiv:        "/",
	ExprBinaryMod:        "%",
	ExprBinaryBitAnd:     "&",
	ExprBinaryBitOr:      "|",
	ExprBinaryBitXor:     "^",
	ExprBinaryShiftLeft:  "<<",
	ExprBinaryShiftRight: ">>",
	ExprBinaryLogicalAnd: "&&",
	ExprBinaryLogicalOr:  "||",
	ExprBinaryEq:         "==",
	ExprBinaryNotEq:      "!=",
	ExprBinaryLess:       "<",
	ExprBinaryLessEq:     "<=",
	ExprBinaryGreater:    ">",
	ExprBinaryGreaterEq:  ">=",
	ExprBinaryAssign:     "=",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// ExprUnaryOp enumerates prefix operator kinds.
type ExprUnaryOp uint8

const (
	ExprUnaryPlus ExprUnaryOp = iota
	ExprUnaryMinus
	ExprUnaryNot
	ExprUnaryBitNot
	ExprUnaryAddr  // &x
	ExprUnaryDeref // *p
	ExprUnaryInc   // ++x
	ExprUnaryDec   // --x
)

var unaryOpText = [...]string{
	ExprUnaryPlus:   "+",
	ExprUnaryMinus:  "-",
	ExprUnaryNot:    "!",
	ExprUnaryBitNot: "~",
	ExprUnaryAddr:   "&",
	ExprUnaryDeref:  "*",
	ExprUnaryInc:    "++",
	ExprUnaryDec:    "--",
}

func (op ExprUnaryOp) String() string {
	if int(op) < len(unaryOpText) {
		return unaryOpText[op]
	}
	return "?"
}

// ExprPostfixOp is x++ or x--.
type ExprPostfixOp uint8

const (
	ExprPostfixInc ExprPostfixOp = iota
	ExprPostfixDec
)

func (op ExprPostfixOp) String() string {
	if op == ExprPostfixDec {
		return "--"
	}
	return "++"
}

// ExprLitKind enumerates literal kinds.
type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitHex
	ExprLitTrue
	ExprLitFalse
)

// ExprIdentData stores a name and the symbol it resolved to while parsing.
type ExprIdentData struct {
	Name   string
	Symbol SymbolID
}

// ExprLiteralData stores the literal text and its 32-bit value.
type ExprLiteralData struct {
	Kind  ExprLitKind
	Text  string
	Value int32
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprPostfixData struct {
	Op      ExprPostfixOp
	Operand ExprID
}

type ExprCallData struct {
	Target ExprID
	Args   []ExprID
}
