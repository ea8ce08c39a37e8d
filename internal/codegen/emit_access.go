package codegen

import (
	"momo/internal/ast"
	"momo/internal/diag"
	"momo/internal/symbols"
	"momo/internal/wasm"
)

// emitAddress pushes the linear-memory address of an lvalue.
func (fe *funcEmitter) emitAddress(id ast.ExprID) error {
	e := fe.emitter
	exprs := e.prog.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return e.errorf(diag.GenUnknownNode, fe.fn.NameSpan, "missing expression %d", id)
	}
	switch expr.Kind {
	case ast.ExprIdent:
		ident, _ := exprs.Ident(id)
		sym := e.syms.Symbol(ident.Symbol)
		switch {
		case sym.Kind == symbols.SymbolFunction:
			idx, err := fe.functionIndex(ident.Symbol, expr)
			if err != nil {
				return err
			}
			return fe.u32Const(idx)
		case sym.Kind == symbols.SymbolEnumerator:
			return e.errorf(diag.GenNotAddressable, expr.Span, "cannot take the address of enumerator %s", sym.Name)
		case sym.Has(symbols.SymbolFlagGlobal):
			return e.errorf(diag.GenAddressOfGlobal, expr.Span, "cannot take the address of global %s", sym.Name)
		}
		if err := fe.slot(ident.Symbol, expr); err != nil {
			return err
		}
		if isIndirect(sym) {
			fe.load()
		}
		return nil
	case ast.ExprUnary:
		if un, _ := exprs.Unary(id); un.Op == ast.ExprUnaryDeref {
			return fe.emitValue(un.Operand)
		}
	}
	return e.errorf(diag.GenNotAddressable, expr.Span, "expression has no address")
}

// globalTarget returns the global slot when target names a top-level variable.
func (fe *funcEmitter) globalTarget(target ast.ExprID) (uint32, bool) {
	ident, ok := fe.emitter.prog.Exprs.Ident(target)
	if !ok {
		return 0, false
	}
	sym := fe.emitter.syms.Symbol(ident.Symbol)
	if sym == nil || sym.Kind != symbols.SymbolVar || !sym.Has(symbols.SymbolFlagGlobal) {
		return 0, false
	}
	return fe.emitter.globalIndex[ident.Symbol], true
}

// emitAssign stores the right side into the target. In value position the
// target is read back afterwards, so a = b = c stores the re-read b.
func (fe *funcEmitter) emitAssign(bin *ast.ExprBinaryData, wantValue bool) error {
	if g, ok := fe.globalTarget(bin.Left); ok {
		if err := fe.emitValue(bin.Right); err != nil {
			return err
		}
		fe.out.U8(wasm.OpGlobalSet)
		fe.out.ULEB128(g)
	} else {
		if err := fe.emitAddress(bin.Left); err != nil {
			return err
		}
		if err := fe.emitValue(bin.Right); err != nil {
			return err
		}
		fe.store()
	}
	if wantValue {
		return fe.emitValue(bin.Left)
	}
	return nil
}

// emitIncDec lowers ++/--. The operand is evaluated again for the new value,
// so side effects inside it happen more than once. Postfix forms undo the
// step on the re-read value to yield the old one.
func (fe *funcEmitter) emitIncDec(target ast.ExprID, inc, postfix, wantValue bool) error {
	step, undo := wasm.OpI32Add, wasm.OpI32Sub
	if !inc {
		step, undo = undo, step
	}

	if g, ok := fe.globalTarget(target); ok {
		fe.out.U8(wasm.OpGlobalGet)
		fe.out.ULEB128(g)
		fe.i32Const(1)
		fe.out.U8(step)
		fe.out.U8(wasm.OpGlobalSet)
		fe.out.ULEB128(g)
	} else {
		if err := fe.emitAddress(target); err != nil {
			return err
		}
		if err := fe.emitValue(target); err != nil {
			return err
		}
		fe.i32Const(1)
		fe.out.U8(step)
		fe.store()
	}
	if !wantValue {
		return nil
	}
	if err := fe.emitValue(target); err != nil {
		return err
	}
	if postfix {
		fe.i32Const(1)
		fe.out.U8(undo)
	}
	return nil
}
