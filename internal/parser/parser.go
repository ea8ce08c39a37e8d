package parser

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"momo/internal/ast"
	"momo/internal/diag"
	"momo/internal/source"
	"momo/internal/symbols"
	"momo/internal/token"
)

// DefaultMaxDepth bounds statement and expression nesting.
const DefaultMaxDepth = 256

type Options struct {
	Reporter diag.Reporter
	MaxDepth int // 0 means DefaultMaxDepth
}

// Result is the resolved tree of one file.
type Result struct {
	Builder *ast.Builder
	Program *ast.Program
	Symbols *symbols.Table
}

// Parser: состояние парсера на один файл
type Parser struct {
	file     *source.File
	size     uint32 // длина содержимого file
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	res      *symbols.Resolver
	table    *symbols.Table
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
	depth    int
	fn       *fnState // nil вне тела функции
}

// fnState collects per-function facts while its body is parsed.
type fnState struct {
	name    string
	result  ast.TypeDef
	locals  []ast.SymbolID
	returns int
}

// bailout carries the first fatal diagnostic up to ParseFile.
type bailout struct {
	d diag.Diagnostic
}

// ParseFile parses and resolves one file. The first error stops parsing; it is
// reported to opts.Reporter and returned as *diag.Error.
func ParseFile(file *source.File, toks []token.Token, opts Options) (res *Result, err error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return nil, fmt.Errorf("%s: file too large: %w", file.Path, err)
	}
	whole := source.Span{File: file.ID, Start: 0, End: size}
	table := symbols.NewTable(symbols.Hints{}, whole)
	p := &Parser{
		file:   file,
		size:   size,
		toks:   toks,
		arenas: ast.NewBuilder(ast.Hints{Stmts: uint(len(toks)/4 + 1), Exprs: uint(len(toks)/2 + 1)}),
		res:    symbols.NewResolver(table),
		table:  table,
		opts:   opts,
	}
	p.lastSpan = source.Span{File: file.ID}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			res, err = nil, diag.AsError(b.d)
		}
	}()

	p.arenas.Program.Scope = table.Global
	p.parseProgram()
	return &Result{Builder: p.arenas, Program: &p.arenas.Program, Symbols: table}, nil
}

// parseProgram: верхний уровень: декларации до конца потока.
func (p *Parser) parseProgram() {
	for !p.at(token.EOF) {
		if p.eat(token.Semicolon) {
			continue
		}
		if id := p.parseStatement(); id.IsValid() {
			p.arenas.PushTop(id)
		}
	}
}

// peek returns the current token; past the end it synthesises EOF.
func (p *Parser) peek() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	end := p.lastSpan.End
	if p.size > 0 {
		end = p.size
	}
	return token.Token{Kind: token.EOF, Span: source.Span{File: p.file.ID, Start: end, End: end}}
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return token.Token{Kind: token.EOF}
}

// advance: съедает текущий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect: ожидаем конкретный токен, иначе фатальная ошибка.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.failUnexpected(code, what)
	return token.Token{}
}

func (p *Parser) failUnexpected(code diag.Code, what string) {
	tok := p.peek()
	if tok.Kind == token.EOF {
		p.fail(code, tok.Span, fmt.Sprintf("expected %s but reached end of input", what))
	}
	p.fail(code, tok.Span, fmt.Sprintf("expected %s but got %q at %d:%d", what, tok.Text, tok.Line, tok.Col))
}

// fail reports a fatal diagnostic and unwinds to ParseFile.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string) {
	p.failWith(diag.NewError(code, sp, msg))
}

func (p *Parser) failWith(d diag.Diagnostic) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
	panic(bailout{d: d})
}

func (p *Parser) info(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevInfo, sp, msg, nil)
	}
}

// enter guards recursion depth; callers defer the returned func.
func (p *Parser) enter() func() {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		p.fail(diag.SynNestingTooDeep, p.peek().Span, fmt.Sprintf("nesting deeper than %d levels", p.opts.MaxDepth))
	}
	return func() { p.depth-- }
}

// spanFrom covers everything from start up to the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return start
	}
	return start.Cover(p.lastSpan)
}

// declare registers sym in the current scope, turning conflicts into diagnostics.
func (p *Parser) declare(sym symbols.Symbol) ast.SymbolID {
	id, err := p.res.Declare(sym)
	if err == nil {
		return id
	}
	var conflict *symbols.ConflictError
	if !errors.As(err, &conflict) {
		p.fail(diag.UnknownCode, sym.Span, err.Error())
	}
	d := diag.NewError(conflict.Code, sym.Span, conflict.Error())
	if prev := p.table.Symbol(conflict.Previous); prev != nil {
		d = d.WithNote(prev.Span, "previous declaration is here")
	}
	p.failWith(d)
	return ast.NoSymbolID
}
