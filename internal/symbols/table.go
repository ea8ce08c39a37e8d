package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"momo/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas for one compilation.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Global  ScopeID
}

// NewTable builds a fresh table and its global scope.
func NewTable(h Hints, span source.Span) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	t := &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
	}
	t.Global = t.Scopes.New(ScopeGlobal, NoScopeID, 0, span)
	return t
}

// Symbol is a shortcut for t.Symbols.Get.
func (t *Table) Symbol(id SymbolID) *Symbol { return t.Symbols.Get(id) }

// Lookup finds name starting at scope and walking the parent chain.
func (t *Table) Lookup(scope ScopeID, name string) (SymbolID, bool) {
	for id := scope; id.IsValid(); {
		sc := t.Scopes.Get(id)
		if sc == nil {
			break
		}
		if sym, ok := sc.Names[name]; ok {
			return sym, true
		}
		id = sc.Parent
	}
	return NoSymbolID, false
}

// LookupLocal finds name in scope only.
func (t *Table) LookupLocal(scope ScopeID, name string) (SymbolID, bool) {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return NoSymbolID, false
	}
	sym, ok := sc.Names[name]
	return sym, ok
}

// Enclosing returns the nearest scope of the given kind, counting the scopes
// crossed on the way, the found one included.
func (t *Table) Enclosing(scope ScopeID, kind ScopeKind) (ScopeID, uint32, bool) {
	var hops uint32
	for id := scope; id.IsValid(); {
		sc := t.Scopes.Get(id)
		if sc == nil {
			break
		}
		hops++
		if sc.Kind == kind {
			return id, hops, true
		}
		if sc.Kind == ScopeFunction {
			// циклы не пересекают границу функции
			break
		}
		id = sc.Parent
	}
	return NoScopeID, 0, false
}

// EnclosingFunction returns the function scope that contains scope.
func (t *Table) EnclosingFunction(scope ScopeID) (ScopeID, bool) {
	for id := scope; id.IsValid(); {
		sc := t.Scopes.Get(id)
		if sc == nil {
			break
		}
		if sc.Kind == ScopeFunction {
			return id, true
		}
		id = sc.Parent
	}
	return NoScopeID, false
}
