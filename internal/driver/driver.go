package driver

import (
	"context"
	"fmt"

	"momo/internal/ast"
	"momo/internal/codegen"
	"momo/internal/diag"
	"momo/internal/lexer"
	"momo/internal/observ"
	"momo/internal/parser"
	"momo/internal/runner"
	"momo/internal/source"
	"momo/internal/symbols"
	"momo/internal/token"
)

// DefaultEntry is the function executed when Options.Execute is set.
const DefaultEntry = "main"

// Options control one compilation.
type Options struct {
	Reporter      diag.Reporter // получает логи и ошибки; может быть nil
	Execute       bool          // run the module after a successful build
	Entry         string        // exported function to execute, DefaultEntry when empty
	MaxDepth      int           // parser nesting limit, parser.DefaultMaxDepth when zero
	EnableTimings bool
	Cache         *DiskCache
}

// Result collects every artifact of a compilation. Fields for phases that
// did not run are nil.
type Result struct {
	FileSet  *source.FileSet
	File     *source.File
	Tokens   []token.Token
	Program  *ast.Builder
	Symbols  *symbols.Table
	Bytes    []byte
	Dump     []string
	CacheHit bool
	Timings  *observ.Report
	Exec     *runner.Result
}

// Compile builds src, named name in diagnostics, into a module.
func Compile(ctx context.Context, src []byte, name string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return compile(ctx, fs, fs.Get(id), opts)
}

// CompileFile loads path from disk and builds it.
func CompileFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		d := diag.NewError(diag.IOLoadFileError, source.Span{}, fmt.Sprintf("cannot read %s: %v", path, err))
		if opts.Reporter != nil {
			opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, nil)
		}
		return nil, diag.AsError(d)
	}
	return compile(ctx, fs, fs.Get(id), opts)
}

func compile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*Result, error) {
	c := &compilation{
		ctx:  ctx,
		opts: opts,
		res:  &Result{FileSet: fs, File: file},
	}
	if opts.EnableTimings {
		c.timer = observ.NewTimer()
	}
	err := c.run()
	if c.timer != nil {
		report := c.timer.Report()
		c.res.Timings = &report
		reportTimings(opts.Reporter, file.Path, report)
	}
	return c.res, err
}

// compilation carries the state of one pipeline run; nothing is shared
// between compilations.
type compilation struct {
	ctx   context.Context
	opts  Options
	res   *Result
	timer *observ.Timer
	cur   int // индекс текущей фазы в timer
}

func (c *compilation) run() error {
	file := c.res.File

	if err := c.phase("lex", func() error {
		c.res.Tokens = lexer.Scan(file, lexer.Options{Reporter: c.opts.Reporter})
		c.items(len(c.res.Tokens))
		return nil
	}); err != nil {
		return err
	}

	if err := c.phase("parse", func() error {
		parsed, err := parser.ParseFile(file, c.res.Tokens, parser.Options{
			Reporter: c.opts.Reporter,
			MaxDepth: c.opts.MaxDepth,
		})
		if err != nil {
			return err
		}
		c.res.Program = parsed.Builder
		c.res.Symbols = parsed.Symbols
		c.items(len(parsed.Builder.Program.Stmts))
		return nil
	}); err != nil {
		return err
	}

	if err := c.phase("codegen", c.generate); err != nil {
		return err
	}
	c.res.Dump = HexDump(c.res.Bytes)

	if !c.opts.Execute {
		return nil
	}
	return c.phase("execute", func() error {
		entry := c.opts.Entry
		if entry == "" {
			entry = DefaultEntry
		}
		out, err := runner.Run(c.ctx, c.res.Bytes, entry)
		if err != nil {
			return err
		}
		c.res.Exec = out
		return nil
	})
}

// generate consults the disk cache before running the generator.
func (c *compilation) generate() error {
	key := cacheKey(c.res.File)
	if c.opts.Cache != nil {
		var payload DiskPayload
		hit, err := c.opts.Cache.Get(key, &payload)
		if err == nil && hit && payload.Valid() {
			payload.replay(c.opts.Reporter, c.res.File)
			c.res.Bytes = payload.Module
			c.res.CacheHit = true
			c.items(len(payload.Module))
			return nil
		}
	}
	rec := &logRecorder{}
	rep := diag.MultiReporter{c.opts.Reporter, rec}
	out, err := codegen.Generate(c.res.Program, c.res.Symbols, codegen.Options{Reporter: rep})
	if err != nil {
		return err
	}
	c.res.Bytes = out
	c.items(len(out))
	if c.opts.Cache != nil {
		// сбой записи в кэш не ломает сборку
		_ = c.opts.Cache.Put(key, newDiskPayload(c.res.File, out, rec.logs))
	}
	return nil
}

// phase runs fn as a timed pipeline step after checking for cancellation.
func (c *compilation) phase(name string, fn func() error) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	c.cur = -1
	if c.timer != nil {
		c.cur = c.timer.Begin(name)
	}
	err := fn()
	if c.timer != nil {
		note := ""
		if err != nil {
			note = "failed"
		}
		c.timer.End(c.cur, note)
	}
	return err
}

// items records the output size of the running phase.
func (c *compilation) items(n int) {
	if c.timer != nil {
		c.timer.SetItems(c.cur, n)
	}
}
