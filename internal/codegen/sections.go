package codegen

import (
	"momo/internal/ast"
	"momo/internal/symbols"
	"momo/internal/wasm"
)

// beginSection пишет id и резервирует размер секции.
func (e *Emitter) beginSection(id wasm.SectionID) wasm.Patch {
	e.out.U8(byte(id))
	return e.out.ReserveULEB128()
}

// Type: one signature per defined function, so the signature index of a
// function equals its function index.
func (e *Emitter) emitTypeSection() error {
	size := e.beginSection(wasm.SectionType)
	count := e.out.ReserveULEB128()
	for _, fn := range e.funcs {
		params, err := safeU32("parameter count", len(fn.Params))
		if err != nil {
			return err
		}
		e.out.U8(wasm.TypeFunc)
		e.out.ULEB128(params)
		for range fn.Params {
			e.out.U8(wasm.TypeI32)
		}
		if fn.Result.IsVoid() {
			e.out.ULEB128(0)
		} else {
			e.out.ULEB128(1)
			e.out.U8(wasm.TypeI32)
		}
	}
	count.Set(e.funcCount)
	size.SetSince()
	return nil
}

func (e *Emitter) emitFunctionSection() error {
	size := e.beginSection(wasm.SectionFunction)
	count := e.out.ReserveULEB128()
	for _, fn := range e.funcs {
		e.out.ULEB128(e.funcIndex[fn.Symbol])
	}
	count.Set(e.funcCount)
	size.SetSince()
	return nil
}

// Table: a single funcref table holding every function, for call_indirect.
func (e *Emitter) emitTableSection() error {
	size := e.beginSection(wasm.SectionTable)
	count := e.out.ReserveULEB128()
	e.out.U8(wasm.TypeAnyFunc)
	e.out.ULEB128(1) // limits: min и max
	e.out.ULEB128(e.funcCount)
	e.out.ULEB128(e.funcCount)
	count.Set(1)
	size.SetSince()
	return nil
}

// Memory: minimum page count stays a placeholder until every slot is
// allocated by the code section.
func (e *Emitter) emitMemorySection() error {
	size := e.beginSection(wasm.SectionMemory)
	e.out.ULEB128(1) // одна память
	e.out.ULEB128(0) // limits: только min
	e.memPages = e.out.ReserveULEB128()
	e.memPages.Set(1)
	size.SetSince()
	return nil
}

func (e *Emitter) emitGlobalSection() error {
	size := e.beginSection(wasm.SectionGlobal)
	count := e.out.ReserveULEB128()
	for _, id := range e.globals {
		e.out.U8(wasm.TypeI32)
		e.out.U8(1) // mutable
		e.out.U8(wasm.OpI32Const)
		e.out.LEB128(e.syms.Symbol(id).Value)
		e.out.U8(wasm.OpEnd)
	}
	n, err := safeU32("global count", len(e.globals))
	if err != nil {
		return err
	}
	count.Set(n)
	size.SetSince()
	return nil
}

// Export: every exported function by name, then the linear memory.
func (e *Emitter) emitExportSection() error {
	size := e.beginSection(wasm.SectionExport)
	count := e.out.ReserveULEB128()
	var n uint32
	for _, fn := range e.funcs {
		if !e.exported(fn) {
			continue
		}
		e.out.Name(fn.Name)
		e.out.U8(wasm.ExternalFunction)
		e.out.ULEB128(e.funcIndex[fn.Symbol])
		n++
	}
	e.out.Name("memory")
	e.out.U8(wasm.ExternalMemory)
	e.out.U8(0)
	count.Set(n + 1)
	size.SetSince()
	return nil
}

func (e *Emitter) exported(fn *ast.FnDecl) bool {
	return fn.Extern || e.syms.Symbol(fn.Symbol).Has(symbols.SymbolFlagExported)
}

// Element: one active segment at offset 0 listing functions in index order.
func (e *Emitter) emitElementSection() error {
	size := e.beginSection(wasm.SectionElement)
	e.out.ULEB128(1) // один сегмент
	e.out.U8(0)      // таблица 0
	e.out.U8(wasm.OpI32Const)
	e.out.LEB128(0)
	e.out.U8(wasm.OpEnd)
	e.out.ULEB128(e.funcCount)
	for _, fn := range e.funcs {
		e.out.ULEB128(e.funcIndex[fn.Symbol])
	}
	size.SetSince()
	return nil
}

func (e *Emitter) emitCodeSection() error {
	size := e.beginSection(wasm.SectionCode)
	count := e.out.ReserveULEB128()
	for _, fn := range e.funcs {
		if err := e.emitFunction(fn); err != nil {
			return err
		}
	}
	count.Set(e.funcCount)
	size.SetSince()
	return nil
}
