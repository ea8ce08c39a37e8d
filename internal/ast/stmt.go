package ast

import (
	"momo/internal/source"
)

// StmtKind enumerates statement and declaration nodes.
type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtExpr
	StmtVar
	StmtFn
	StmtEnum
	StmtIf
	StmtWhile
	StmtReturn
	StmtBreak
	StmtContinue
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "BlockStatement"
	case StmtExpr:
		return "ExpressionStatement"
	case StmtVar:
		return "VariableDeclaration"
	case StmtFn:
		return "FunctionDeclaration"
	case StmtEnum:
		return "EnumDeclaration"
	case StmtIf:
		return "IfStatement"
	case StmtWhile:
		return "WhileStatement"
	case StmtReturn:
		return "ReturnStatement"
	case StmtBreak:
		return "BreakStatement"
	case StmtContinue:
		return "ContinueStatement"
	}
	return "Statement(?)"
}

// Stmt represents a statement node in the AST.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
	Scope ScopeID
}

type ExprStmt struct {
	Expr ExprID
}

type VarDecl struct {
	Name     string
	NameSpan source.Span
	Type     TypeDef
	Init     ExprID // NoExprID: zero-initialized
	Symbol   SymbolID
	Global   bool
	Extern   bool
}

type Param struct {
	Name   string
	Span   source.Span
	Type   TypeDef
	Symbol SymbolID
}

type FnDecl struct {
	Name     string
	NameSpan source.Span
	Result   TypeDef
	Params   []Param
	Body     StmtID // NoStmtID for a prototype
	Scope    ScopeID
	Symbol   SymbolID
	Extern   bool
	Locals   []SymbolID // variables declared anywhere in the body, in order
}

// IsPrototype reports whether the declaration carries no body.
func (f *FnDecl) IsPrototype() bool { return !f.Body.IsValid() }

type Enumerator struct {
	Name   string
	Span   source.Span
	Value  ExprID // NoExprID: previous + 1
	Symbol SymbolID
}

type EnumDecl struct {
	Name    string
	Members []Enumerator
}

type IfStmt struct {
	Cond ExprID
	Then StmtID // always a block
	Else StmtID // block or NoStmtID
}

type WhileStmt struct {
	Cond ExprID
	Body StmtID // always a block
}

type ReturnStmt struct {
	Value     ExprID
	Synthetic bool // inserted by the parser, not written in source
}

// BranchStmt is the payload of break and continue.
type BranchStmt struct {
	Depth uint32 // scopes crossed up to and including the loop body
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena     *Arena[Stmt]
	Blocks    *Arena[BlockStmt]
	ExprStmts *Arena[ExprStmt]
	Vars      *Arena[VarDecl]
	Fns       *Arena[FnDecl]
	Enums     *Arena[EnumDecl]
	Ifs       *Arena[IfStmt]
	Whiles    *Arena[WhileStmt]
	Returns   *Arena[ReturnStmt]
	Branches  *Arena[BranchStmt]
}

// NewStmts creates a new Stmts with per-kind arenas preallocated using capHint.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Blocks:    NewArena[BlockStmt](capHint),
		ExprStmts: NewArena[ExprStmt](capHint),
		Vars:      NewArena[VarDecl](capHint),
		Fns:       NewArena[FnDecl](capHint / 4),
		Enums:     NewArena[EnumDecl](capHint / 8),
		Ifs:       NewArena[IfStmt](capHint),
		Whiles:    NewArena[WhileStmt](capHint / 4),
		Returns:   NewArena[ReturnStmt](capHint / 4),
		Branches:  NewArena[BranchStmt](capHint / 8),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

// Get returns the statement with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID, scope ScopeID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(BlockStmt{Stmts: stmts, Scope: scope}))
}

func (s *Stmts) Block(id StmtID) (*BlockStmt, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.ExprStmts.Allocate(ExprStmt{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.ExprStmts.Get(p), true
}

func (s *Stmts) NewVar(span source.Span, decl VarDecl) StmtID {
	return s.new(StmtVar, span, s.Vars.Allocate(decl))
}

func (s *Stmts) Var(id StmtID) (*VarDecl, bool) {
	p, ok := s.payload(id, StmtVar)
	if !ok {
		return nil, false
	}
	return s.Vars.Get(p), true
}

func (s *Stmts) NewFn(span source.Span, decl FnDecl) StmtID {
	return s.new(StmtFn, span, s.Fns.Allocate(decl))
}

func (s *Stmts) Fn(id StmtID) (*FnDecl, bool) {
	p, ok := s.payload(id, StmtFn)
	if !ok {
		return nil, false
	}
	return s.Fns.Get(p), true
}

func (s *Stmts) NewEnum(span source.Span, decl EnumDecl) StmtID {
	return s.new(StmtEnum, span, s.Enums.Allocate(decl))
}

func (s *Stmts) Enum(id StmtID) (*EnumDecl, bool) {
	p, ok := s.payload(id, StmtEnum)
	if !ok {
		return nil, false
	}
	return s.Enums.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*IfStmt, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(WhileStmt{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) (*WhileStmt, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID, synthetic bool) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(ReturnStmt{Value: value, Synthetic: synthetic}))
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

// NewBranch creates a break (StmtBreak) or continue (StmtContinue) statement.
func (s *Stmts) NewBranch(kind StmtKind, span source.Span, depth uint32) StmtID {
	return s.new(kind, span, s.Branches.Allocate(BranchStmt{Depth: depth}))
}

func (s *Stmts) Branch(id StmtID) (*BranchStmt, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtBreak && st.Kind != StmtContinue) {
		return nil, false
	}
	return s.Branches.Get(uint32(st.Payload)), true
}
