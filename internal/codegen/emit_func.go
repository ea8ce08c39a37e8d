package codegen

import (
	"fmt"

	"fortio.org/safecast"

	"momo/internal/ast"
	"momo/internal/diag"
	"momo/internal/symbols"
	"momo/internal/wasm"
)

type funcEmitter struct {
	emitter *Emitter
	fn      *ast.FnDecl
	out     *wasm.Writer
}

func (e *Emitter) emitFunction(fn *ast.FnDecl) error {
	fe := &funcEmitter{emitter: e, fn: fn, out: e.out}
	size := e.out.ReserveULEB128()

	// каждому локалу и параметру: своя запись "1 x i32"
	n := len(fn.Locals) + len(fn.Params)
	groups, err := safeU32("local count", n)
	if err != nil {
		return err
	}
	e.out.ULEB128(groups)
	for range n {
		e.out.ULEB128(1)
		e.out.U8(wasm.TypeI32)
	}

	for i, prm := range fn.Params {
		off, err := e.allocate(prm.Symbol, "parameter")
		if err != nil {
			return err
		}
		local, err := safeU32("parameter index", i)
		if err != nil {
			return err
		}
		if err := fe.u32Const(off); err != nil {
			return err
		}
		fe.out.U8(wasm.OpLocalGet)
		fe.out.ULEB128(local)
		fe.store()
	}

	if err := fe.emitStmt(fn.Body); err != nil {
		return err
	}
	if !fn.Result.IsVoid() {
		fe.out.U8(wasm.OpUnreachable)
	}
	fe.out.U8(wasm.OpEnd)
	size.SetSince()
	return nil
}

func (fe *funcEmitter) emitStmt(id ast.StmtID) error {
	stmts := fe.emitter.prog.Stmts
	st := stmts.Get(id)
	if st == nil {
		return fe.emitter.errorf(diag.GenUnknownNode, fe.fn.NameSpan, "missing statement %d", id)
	}
	switch st.Kind {
	case ast.StmtBlock:
		block, _ := stmts.Block(id)
		return fe.emitBlock(block)
	case ast.StmtExpr:
		es, _ := stmts.Expr(id)
		return fe.emitExprStmt(es.Expr)
	case ast.StmtVar:
		decl, _ := stmts.Var(id)
		return fe.emitLocalVar(decl)
	case ast.StmtEnum:
		// значения перечислителей подставляются константами
		return nil
	case ast.StmtIf:
		ifs, _ := stmts.If(id)
		return fe.emitIf(ifs)
	case ast.StmtWhile:
		ws, _ := stmts.While(id)
		return fe.emitWhile(ws)
	case ast.StmtReturn:
		ret, _ := stmts.Return(id)
		if ret.Value.IsValid() {
			if err := fe.emitValue(ret.Value); err != nil {
				return err
			}
		}
		fe.out.U8(wasm.OpReturn)
		return nil
	case ast.StmtBreak, ast.StmtContinue:
		br, _ := stmts.Branch(id)
		depth := br.Depth
		if st.Kind == ast.StmtContinue {
			depth--
		}
		fe.out.U8(wasm.OpBr)
		fe.out.ULEB128(depth)
		fe.out.U8(wasm.OpUnreachable)
		return nil
	}
	return fe.emitter.errorf(diag.GenUnknownNode, st.Span, "cannot generate %s inside a function", st.Kind)
}

// emitBlock оборачивает в block/end только самостоятельные блоки; тела
// if/else/while уже лежат внутри своей метки.
func (fe *funcEmitter) emitBlock(block *ast.BlockStmt) error {
	wrap := false
	if sc := fe.emitter.syms.Scopes.Get(block.Scope); sc != nil {
		wrap = sc.Kind == symbols.ScopeBlock
	}
	if wrap {
		fe.out.U8(wasm.OpBlock)
		fe.out.U8(wasm.TypeEmpty)
	}
	for _, id := range block.Stmts {
		if err := fe.emitStmt(id); err != nil {
			return err
		}
	}
	if wrap {
		fe.out.U8(wasm.OpEnd)
	}
	return nil
}

func (fe *funcEmitter) emitLocalVar(decl *ast.VarDecl) error {
	off, err := fe.emitter.allocate(decl.Symbol, storageKind(decl.Type))
	if err != nil {
		return err
	}
	if err := fe.u32Const(off); err != nil {
		return err
	}
	switch {
	case decl.Type.Kind == ast.TypeReference:
		if err := fe.emitAddress(decl.Init); err != nil {
			return err
		}
	case decl.Init.IsValid():
		if err := fe.emitValue(decl.Init); err != nil {
			return err
		}
	default:
		fe.i32Const(0)
	}
	fe.store()
	return nil
}

// storageKind names what a local slot holds in the storage log.
func storageKind(t ast.TypeDef) string {
	switch t.Kind {
	case ast.TypePointer:
		return "pointer variable"
	case ast.TypeReference:
		return "alias"
	}
	return "variable"
}

func (fe *funcEmitter) emitIf(ifs *ast.IfStmt) error {
	if err := fe.emitValue(ifs.Cond); err != nil {
		return err
	}
	fe.out.U8(wasm.OpIf)
	fe.out.U8(wasm.TypeEmpty)
	if err := fe.emitStmt(ifs.Then); err != nil {
		return err
	}
	if ifs.Else.IsValid() {
		fe.out.U8(wasm.OpElse)
		if err := fe.emitStmt(ifs.Else); err != nil {
			return err
		}
	}
	fe.out.U8(wasm.OpEnd)
	return nil
}

// emitWhile: block { loop { cond; eqz; br_if 1; body; br 0 } }
func (fe *funcEmitter) emitWhile(ws *ast.WhileStmt) error {
	fe.out.U8(wasm.OpBlock)
	fe.out.U8(wasm.TypeEmpty)
	fe.out.U8(wasm.OpLoop)
	fe.out.U8(wasm.TypeEmpty)
	if err := fe.emitValue(ws.Cond); err != nil {
		return err
	}
	fe.out.U8(wasm.OpI32Eqz)
	fe.out.U8(wasm.OpBrIf)
	fe.out.ULEB128(1)
	if err := fe.emitStmt(ws.Body); err != nil {
		return err
	}
	fe.out.U8(wasm.OpBr)
	fe.out.ULEB128(0)
	fe.out.U8(wasm.OpUnreachable)
	fe.out.U8(wasm.OpEnd)
	fe.out.U8(wasm.OpEnd)
	return nil
}

// emitExprStmt evaluates an expression for its effects and leaves nothing on
// the stack.
func (fe *funcEmitter) emitExprStmt(id ast.ExprID) error {
	exprs := fe.emitter.prog.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return fe.emitter.errorf(diag.GenUnknownNode, fe.fn.NameSpan, "missing expression %d", id)
	}
	switch expr.Kind {
	case ast.ExprBinary:
		if bin, _ := exprs.Binary(id); bin.Op == ast.ExprBinaryAssign {
			return fe.emitAssign(bin, false)
		}
	case ast.ExprUnary:
		if un, _ := exprs.Unary(id); un.Op == ast.ExprUnaryInc || un.Op == ast.ExprUnaryDec {
			return fe.emitIncDec(un.Operand, un.Op == ast.ExprUnaryInc, false, false)
		}
	case ast.ExprPostfix:
		pf, _ := exprs.PostfixOf(id)
		return fe.emitIncDec(pf.Operand, pf.Op == ast.ExprPostfixInc, true, false)
	case ast.ExprCall:
		call, _ := exprs.Call(id)
		void, err := fe.emitCall(id, call)
		if err != nil {
			return err
		}
		if !void {
			fe.out.U8(wasm.OpDrop)
		}
		return nil
	}
	if err := fe.emitValue(id); err != nil {
		return err
	}
	fe.out.U8(wasm.OpDrop)
	return nil
}

func (fe *funcEmitter) i32Const(v int32) {
	fe.out.U8(wasm.OpI32Const)
	fe.out.LEB128(v)
}

// u32Const pushes a slot address or table index; both must fit a positive i32.
func (fe *funcEmitter) u32Const(v uint32) error {
	c, err := safecast.Conv[int32](v)
	if err != nil {
		return fmt.Errorf("constant %d out of i32 range: %w", v, err)
	}
	fe.i32Const(c)
	return nil
}

func (fe *funcEmitter) load() {
	fe.out.U8(wasm.OpI32Load)
	fe.out.ULEB128(wasm.I32Align)
	fe.out.ULEB128(0)
}

func (fe *funcEmitter) store() {
	fe.out.U8(wasm.OpI32Store)
	fe.out.ULEB128(wasm.I32Align)
	fe.out.ULEB128(0)
}
