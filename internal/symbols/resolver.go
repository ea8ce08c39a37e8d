package symbols

import (
	"fmt"

	"momo/internal/ast"
	"momo/internal/source"
)

// Resolver drives scope management for the parser: a stack of live scopes
// on top of a Table.
type Resolver struct {
	table *Table
	stack []ScopeID
}

// NewResolver starts with the table's global scope as the current one.
func NewResolver(table *Table) *Resolver {
	r := &Resolver{
		table: table,
		stack: make([]ScopeID, 0, 8),
	}
	r.stack = append(r.stack, table.Global)
	return r
}

// Table returns the underlying table.
func (r *Resolver) Table() *Table { return r.table }

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// AtTopLevel reports whether the current scope is the global one.
func (r *Resolver) AtTopLevel() bool {
	return r.CurrentScope() == r.table.Global
}

// Enter creates a child scope, pushes it onto the stack, and returns its ID.
func (r *Resolver) Enter(kind ScopeKind, owner ast.StmtID, span source.Span) ScopeID {
	scope := r.table.Scopes.New(kind, r.CurrentScope(), owner, span)
	r.stack = append(r.stack, scope)
	return scope
}

// Leave pops the current scope, which must be expected.
func (r *Resolver) Leave(expected ScopeID) {
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	if expected.IsValid() && top != expected {
		panic(fmt.Sprintf("scope mismatch: leaving %d, top is %d", expected, top))
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// SetOwner records the statement that owns scope once its ID is known.
func (r *Resolver) SetOwner(scope ScopeID, owner ast.StmtID) {
	if sc := r.table.Scopes.Get(scope); sc != nil {
		sc.Owner = owner
	}
}

// Declare installs sym into the current scope.
func (r *Resolver) Declare(sym Symbol) (SymbolID, error) {
	return r.table.Declare(r.CurrentScope(), sym)
}

// Lookup resolves name from the current scope outward.
func (r *Resolver) Lookup(name string) (SymbolID, bool) {
	return r.table.Lookup(r.CurrentScope(), name)
}

// LoopDepth returns the number of scopes from the current one up to and
// including the nearest while body.
func (r *Resolver) LoopDepth() (uint32, bool) {
	_, hops, ok := r.table.Enclosing(r.CurrentScope(), ScopeWhile)
	return hops, ok
}

// Function returns the innermost live function scope.
func (r *Resolver) Function() (ScopeID, bool) {
	return r.table.EnclosingFunction(r.CurrentScope())
}
