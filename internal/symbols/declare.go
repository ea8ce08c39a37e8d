package symbols

import (
	"fmt"

	"momo/internal/diag"
)

// ConflictError describes a declaration clashing with an existing symbol.
type ConflictError struct {
	Code     diag.Code
	Name     string
	Previous SymbolID
}

func (e *ConflictError) Error() string {
	switch e.Code {
	case diag.SemaConflictingTypes:
		return fmt.Sprintf("conflicting types for %q", e.Name)
	case diag.SemaRedefinition:
		return fmt.Sprintf("redefinition of %q", e.Name)
	default:
		return fmt.Sprintf("%q is already declared in this scope", e.Name)
	}
}

// Declare installs sym into scope. A function prototype may be completed by
// a definition with the same signature; in that case the prototype's ID is
// returned and its record is updated in place.
func (t *Table) Declare(scope ScopeID, sym Symbol) (SymbolID, error) {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return NoSymbolID, fmt.Errorf("declare %q: invalid scope %d", sym.Name, scope)
	}
	if prevID, ok := sc.Names[sym.Name]; ok {
		return t.redeclare(prevID, &sym)
	}

	sym.Scope = scope
	if sym.Kind == SymbolVar || sym.Kind == SymbolParam {
		if fn, ok := t.EnclosingFunction(scope); ok {
			fs := t.Scopes.Get(fn)
			sym.Index = fs.LocalIndex
			fs.LocalIndex++
		}
	}
	id := t.Symbols.New(&sym)
	sc.Names[sym.Name] = id
	sc.Symbols = append(sc.Symbols, id)
	return id, nil
}

func (t *Table) redeclare(prevID SymbolID, next *Symbol) (SymbolID, error) {
	prev := t.Symbols.Get(prevID)
	conflict := func(code diag.Code) (SymbolID, error) {
		return NoSymbolID, &ConflictError{Code: code, Name: next.Name, Previous: prevID}
	}
	if prev.Kind != SymbolFunction || next.Kind != SymbolFunction {
		return conflict(diag.SemaDuplicateSymbol)
	}
	if !SameSignature(prev.Type, prev.Params, next.Type, next.Params) {
		return conflict(diag.SemaConflictingTypes)
	}
	nextIsProto := next.Has(SymbolFlagPrototype)
	switch {
	case nextIsProto:
		// повторный прототип ничего не меняет
	case prev.Has(SymbolFlagPrototype):
		prev.Flags &^= SymbolFlagPrototype
		prev.Flags |= next.Flags & SymbolFlagExported
		prev.Decl = next.Decl
		prev.Span = next.Span
		prev.Params = next.Params
	default:
		return conflict(diag.SemaRedefinition)
	}
	return prevID, nil
}
