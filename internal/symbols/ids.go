package symbols

import "momo/internal/ast"

// ScopeID identifies a scope in the resolver arena.
type ScopeID = ast.ScopeID

// SymbolID identifies a symbol inside the resolver arena.
type SymbolID = ast.SymbolID

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID = ast.NoScopeID
	// NoSymbolID marks the absence of a symbol reference.
	NoSymbolID = ast.NoSymbolID
)
