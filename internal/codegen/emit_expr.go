package codegen

import (
	"momo/internal/ast"
	"momo/internal/diag"
	"momo/internal/symbols"
	"momo/internal/wasm"
)

var binaryOpcodes = map[ast.ExprBinaryOp]wasm.Opcode{
	ast.ExprBinaryAdd:        wasm.OpI32Add,
	ast.ExprBinarySub:        wasm.OpI32Sub,
	ast.ExprBinaryMul:        wasm.OpI32Mul,
	ast.ExprBinaryDiv:        wasm.OpI32DivS,
	ast.ExprBinaryMod:        wasm.OpI32RemS,
	ast.ExprBinaryBitAnd:     wasm.OpI32And,
	ast.ExprBinaryBitOr:      wasm.OpI32Or,
	ast.ExprBinaryBitXor:     wasm.OpI32Xor,
	ast.ExprBinaryShiftLeft:  wasm.OpI32Shl,
	ast.ExprBinaryShiftRight: wasm.OpI32ShrS,
	ast.ExprBinaryEq:         wasm.OpI32Eq,
	ast.ExprBinaryNotEq:      wasm.OpI32Ne,
	ast.ExprBinaryLess:       wasm.OpI32LtS,
	ast.ExprBinaryLessEq:     wasm.OpI32LeS,
	ast.ExprBinaryGreater:    wasm.OpI32GtS,
	ast.ExprBinaryGreaterEq:  wasm.OpI32GeS,
	ast.ExprBinaryLogicalAnd: wasm.OpI32And,
	ast.ExprBinaryLogicalOr:  wasm.OpI32Or,
}

// emitValue lowers id leaving exactly one i32 on the stack.
func (fe *funcEmitter) emitValue(id ast.ExprID) error {
	exprs := fe.emitter.prog.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return fe.emitter.errorf(diag.GenUnknownNode, fe.fn.NameSpan, "missing expression %d", id)
	}
	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := exprs.Literal(id)
		fe.i32Const(lit.Value)
		return nil
	case ast.ExprIdent:
		ident, _ := exprs.Ident(id)
		return fe.emitIdent(expr, ident)
	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		if bin.Op == ast.ExprBinaryAssign {
			return fe.emitAssign(bin, true)
		}
		return fe.emitBinary(expr, bin)
	case ast.ExprUnary:
		un, _ := exprs.Unary(id)
		return fe.emitUnary(expr, un)
	case ast.ExprPostfix:
		pf, _ := exprs.PostfixOf(id)
		return fe.emitIncDec(pf.Operand, pf.Op == ast.ExprPostfixInc, true, true)
	case ast.ExprCall:
		call, _ := exprs.Call(id)
		void, err := fe.emitCall(id, call)
		if err != nil {
			return err
		}
		if void {
			return fe.emitter.errorf(diag.SemaVoidValue, expr.Span, "void call used as a value")
		}
		return nil
	}
	return fe.emitter.errorf(diag.GenUnknownNode, expr.Span, "cannot generate %s", expr.Kind)
}

func (fe *funcEmitter) emitIdent(expr *ast.Expr, ident *ast.ExprIdentData) error {
	e := fe.emitter
	sym := e.syms.Symbol(ident.Symbol)
	if sym == nil {
		return e.errorf(diag.SemaUndefinedSymbol, expr.Span, "%s is not defined", ident.Name)
	}
	switch {
	case sym.Kind == symbols.SymbolEnumerator:
		fe.i32Const(sym.Value)
	case sym.Kind == symbols.SymbolFunction:
		idx, err := fe.functionIndex(ident.Symbol, expr)
		if err != nil {
			return err
		}
		if err := fe.u32Const(idx); err != nil {
			return err
		}
	case sym.Has(symbols.SymbolFlagGlobal):
		fe.out.U8(wasm.OpGlobalGet)
		fe.out.ULEB128(e.globalIndex[ident.Symbol])
	case isIndirect(sym):
		if err := fe.slot(ident.Symbol, expr); err != nil {
			return err
		}
		fe.load()
		fe.load()
	default:
		if err := fe.slot(ident.Symbol, expr); err != nil {
			return err
		}
		fe.load()
	}
	return nil
}

// isIndirect reports whether the symbol's slot holds the address of its value.
func isIndirect(sym *symbols.Symbol) bool {
	return sym.Flags&(symbols.SymbolFlagAlias|symbols.SymbolFlagReference) != 0
}

// slot pushes the memory offset of a local variable or parameter.
func (fe *funcEmitter) slot(id ast.SymbolID, expr *ast.Expr) error {
	off, ok := fe.emitter.offsets[id]
	if !ok {
		return fe.emitter.errorf(diag.GenUnknownNode, expr.Span, "%s has no storage", fe.emitter.syms.Symbol(id).Name)
	}
	return fe.u32Const(off)
}

func (fe *funcEmitter) functionIndex(id ast.SymbolID, expr *ast.Expr) (uint32, error) {
	idx, ok := fe.emitter.funcIndex[id]
	if !ok {
		name := fe.emitter.syms.Symbol(id).Name
		return 0, fe.emitter.errorf(diag.GenUndefinedFunction, expr.Span, "function %s is declared but never defined", name)
	}
	return idx, nil
}

func (fe *funcEmitter) emitBinary(expr *ast.Expr, bin *ast.ExprBinaryData) error {
	op, ok := binaryOpcodes[bin.Op]
	if !ok {
		return fe.emitter.errorf(diag.GenUnknownNode, expr.Span, "unsupported operator %s", bin.Op)
	}
	logical := bin.Op == ast.ExprBinaryLogicalAnd || bin.Op == ast.ExprBinaryLogicalOr
	// обе стороны && и || вычисляются всегда, операнд истинен при >= 1
	for _, side := range []ast.ExprID{bin.Left, bin.Right} {
		if err := fe.emitValue(side); err != nil {
			return err
		}
		if logical {
			fe.i32Const(1)
			fe.out.U8(wasm.OpI32GeS)
		}
	}
	fe.out.U8(op)
	return nil
}

func (fe *funcEmitter) emitUnary(expr *ast.Expr, un *ast.ExprUnaryData) error {
	switch un.Op {
	case ast.ExprUnaryPlus:
		return fe.emitValue(un.Operand)
	case ast.ExprUnaryMinus, ast.ExprUnaryBitNot:
		fe.i32Const(0)
		if err := fe.emitValue(un.Operand); err != nil {
			return err
		}
		fe.out.U8(wasm.OpI32Sub)
		if un.Op == ast.ExprUnaryBitNot {
			fe.i32Const(1)
			fe.out.U8(wasm.OpI32Sub)
		}
		return nil
	case ast.ExprUnaryNot:
		if err := fe.emitValue(un.Operand); err != nil {
			return err
		}
		fe.out.U8(wasm.OpI32Eqz)
		return nil
	case ast.ExprUnaryAddr:
		return fe.emitAddress(un.Operand)
	case ast.ExprUnaryDeref:
		if err := fe.emitValue(un.Operand); err != nil {
			return err
		}
		fe.load()
		return nil
	case ast.ExprUnaryInc, ast.ExprUnaryDec:
		return fe.emitIncDec(un.Operand, un.Op == ast.ExprUnaryInc, false, true)
	}
	return fe.emitter.errorf(diag.GenUnknownNode, expr.Span, "unsupported operator %s", un.Op)
}
