package codegen

import (
	"momo/internal/ast"
	"momo/internal/diag"
	"momo/internal/symbols"
	"momo/internal/token"
	"momo/internal/wasm"
)

// emitCall lowers a direct or indirect call and reports whether it yields no value.
func (fe *funcEmitter) emitCall(id ast.ExprID, call *ast.ExprCallData) (bool, error) {
	e := fe.emitter
	expr := e.prog.Exprs.Get(id)
	ident, ok := e.prog.Exprs.Ident(call.Target)
	if !ok {
		return false, e.errorf(diag.SemaNotCallable, expr.Span, "call target is not a name")
	}
	callee := e.syms.Symbol(ident.Symbol)
	if callee == nil {
		return false, e.errorf(diag.SemaUndefinedSymbol, expr.Span, "%s is not defined", ident.Name)
	}

	if callee.Kind == symbols.SymbolFunction {
		idx, err := fe.functionIndex(ident.Symbol, expr)
		if err != nil {
			return false, err
		}
		if err := fe.emitArgs(call.Args, callee.Params); err != nil {
			return false, err
		}
		fe.out.U8(wasm.OpCall)
		fe.out.ULEB128(idx)
		return callee.Type.IsVoid(), nil
	}

	if !callee.Has(symbols.SymbolFlagFuncPtr) {
		return false, e.errorf(diag.SemaNotCallable, expr.Span, "%s is not a function", callee.Name)
	}
	sig, ok := e.matchSignature(callee.Type)
	if !ok {
		return false, e.errorf(diag.GenNoMatchingSignature, expr.Span, "no function matches the signature of %s (%s)", callee.Name, callee.Type)
	}
	if err := fe.emitArgs(call.Args, nil); err != nil {
		return false, err
	}
	if err := fe.emitValue(call.Target); err != nil {
		return false, err
	}
	fe.out.U8(wasm.OpCallIndirect)
	fe.out.ULEB128(sig)
	fe.out.U8(0) // таблица 0
	return callee.Type.Native == token.TyVoid, nil
}

// emitArgs pushes call arguments; reference parameters receive addresses.
func (fe *funcEmitter) emitArgs(args []ast.ExprID, params []ast.TypeDef) error {
	for i, arg := range args {
		var err error
		if i < len(params) && params[i].Kind == ast.TypeReference {
			err = fe.emitAddress(arg)
		} else {
			err = fe.emitValue(arg)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// matchSignature finds the first defined function whose result and parameter
// native types equal the pointer's.
func (e *Emitter) matchSignature(ptr ast.TypeDef) (uint32, bool) {
	for _, fn := range e.funcs {
		if fn.Result.Native != ptr.Native || len(fn.Params) != len(ptr.Params) {
			continue
		}
		same := true
		for i, prm := range fn.Params {
			if prm.Type.Native != ptr.Params[i] {
				same = false
				break
			}
		}
		if same {
			return e.funcIndex[fn.Symbol], true
		}
	}
	return 0, false
}
