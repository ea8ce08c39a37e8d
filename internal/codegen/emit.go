package codegen

import (
	"fmt"
	"math"

	"fortio.org/safecast"

	"momo/internal/ast"
	"momo/internal/diag"
	"momo/internal/source"
	"momo/internal/symbols"
	"momo/internal/wasm"
)

// Options configure module emission.
type Options struct {
	Reporter diag.Reporter // может быть nil: тогда логи игнорируем
}

// Emitter lowers one resolved program into a WebAssembly MVP module.
type Emitter struct {
	prog  *ast.Builder
	syms  *symbols.Table
	opts  Options
	out   *wasm.Writer
	funcs []*ast.FnDecl

	funcCount   uint32
	funcIndex   map[ast.SymbolID]uint32
	globalIndex map[ast.SymbolID]uint32
	globals     []ast.SymbolID
	offsets     map[ast.SymbolID]uint32
	nextOffset  uint32
	memPages    wasm.Patch // min страниц памяти, известен после секции кода
}

// Generate encodes prog as a module. The first failure aborts emission and is
// returned as *diag.Error; no partial module is produced.
func Generate(prog *ast.Builder, syms *symbols.Table, opts Options) ([]byte, error) {
	e := &Emitter{
		prog:        prog,
		syms:        syms,
		opts:        opts,
		out:         wasm.NewWriter(256),
		funcIndex:   make(map[ast.SymbolID]uint32),
		globalIndex: make(map[ast.SymbolID]uint32),
		offsets:     make(map[ast.SymbolID]uint32),
	}
	if prog == nil || syms == nil {
		return nil, fmt.Errorf("codegen: nil program")
	}
	if err := e.prepareFunctions(); err != nil {
		return nil, err
	}
	if err := e.prepareGlobals(); err != nil {
		return nil, err
	}

	e.out.Raw(wasm.Magic[:])
	e.out.Raw(wasm.Version[:])
	sections := []func() error{
		e.emitTypeSection,
		e.emitFunctionSection,
		e.emitTableSection,
		e.emitMemorySection,
		e.emitGlobalSection,
		e.emitExportSection,
		e.emitElementSection,
		e.emitCodeSection,
	}
	for _, emit := range sections {
		if err := emit(); err != nil {
			return nil, err
		}
	}
	e.memPages.Set(memoryPages(e.nextOffset))
	return e.out.Bytes(), nil
}

// memoryPages returns how many pages hold size bytes of slots, at least one.
func memoryPages(size uint32) uint32 {
	pages := size / wasm.PageSize
	if size%wasm.PageSize != 0 {
		pages++
	}
	return max(pages, 1)
}

// prepareFunctions нумерует функции с телом в порядке объявления.
func (e *Emitter) prepareFunctions() error {
	for _, id := range e.prog.Program.Stmts {
		fn, ok := e.prog.Stmts.Fn(id)
		if !ok || fn.IsPrototype() {
			continue
		}
		idx, err := safeU32("function index", len(e.funcs))
		if err != nil {
			return err
		}
		e.funcIndex[fn.Symbol] = idx
		e.funcs = append(e.funcs, fn)
		e.funcCount = idx + 1
	}
	return nil
}

// prepareGlobals assigns global slots to top-level variables and enumerators.
func (e *Emitter) prepareGlobals() error {
	add := func(sym ast.SymbolID) error {
		idx, err := safeU32("global index", len(e.globals))
		if err != nil {
			return err
		}
		e.globalIndex[sym] = idx
		e.globals = append(e.globals, sym)
		return nil
	}
	for _, id := range e.prog.Program.Stmts {
		st := e.prog.Stmts.Get(id)
		if st == nil {
			continue
		}
		switch st.Kind {
		case ast.StmtVar:
			decl, _ := e.prog.Stmts.Var(id)
			if err := add(decl.Symbol); err != nil {
				return err
			}
		case ast.StmtEnum:
			decl, _ := e.prog.Stmts.Enum(id)
			for _, m := range decl.Members {
				if err := add(m.Symbol); err != nil {
					return err
				}
			}
		case ast.StmtFn:
		default:
			return e.errorf(diag.GenUnknownNode, st.Span, "unexpected %s at top level", st.Kind)
		}
	}
	return nil
}

// allocate выдаёт следующий 4-байтовый слот линейной памяти. Slot addresses
// are encoded as i32.const, so the last slot must start below MaxInt32.
func (e *Emitter) allocate(sym ast.SymbolID, what string) (uint32, error) {
	s := e.syms.Symbol(sym)
	if e.nextOffset > math.MaxInt32-4 {
		return 0, e.errorf(diag.GenMemoryExhausted, s.Span, "no memory left for %s %s", what, s.Name)
	}
	off := e.nextOffset
	e.offsets[sym] = off
	e.nextOffset += 4
	e.info(s.Span, fmt.Sprintf("Store %s %s in memory at %d", what, s.Name, off))
	return off, nil
}

func (e *Emitter) info(sp source.Span, msg string) {
	if e.opts.Reporter != nil {
		e.opts.Reporter.Report(diag.GenInfo, diag.SevInfo, sp, msg, nil)
	}
}

// errorf reports a fatal generator error and returns it as *diag.Error.
func (e *Emitter) errorf(code diag.Code, sp source.Span, format string, args ...any) error {
	d := diag.NewError(code, sp, fmt.Sprintf(format, args...))
	if e.opts.Reporter != nil {
		e.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
	return diag.AsError(d)
}

func safeU32(what string, n int) (uint32, error) {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0, fmt.Errorf("%s %d out of range: %w", what, n, err)
	}
	return v, nil
}
