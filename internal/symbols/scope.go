package symbols

import (
	"momo/internal/ast"
	"momo/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // top-level declarations
	ScopeFunction           // function body, owns parameters and locals
	ScopeBlock              // standalone { ... }
	ScopeIf                 // then-branch
	ScopeElse               // else-branch
	ScopeWhile              // loop body
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeIf:
		return "if"
	case ScopeElse:
		return "else"
	case ScopeWhile:
		return "while"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent back-reference.
type Scope struct {
	Kind       ScopeKind
	Parent     ScopeID
	Owner      ast.StmtID
	Span       source.Span
	Names      map[string]SymbolID
	Symbols    []SymbolID // declaration order
	Children   []ScopeID
	LocalIndex uint32 // next local slot, used on function scopes only
}
