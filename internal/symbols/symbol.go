package symbols

import (
	"slices"

	"momo/internal/ast"
	"momo/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVar
	SymbolParam
	SymbolFunction
	SymbolEnumerator
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "variable"
	case SymbolParam:
		return "parameter"
	case SymbolFunction:
		return "function"
	case SymbolEnumerator:
		return "enumerator"
	default:
		return "invalid"
	}
}

// SymbolFlags encode storage attributes for quick checks.
type SymbolFlags uint16

const (
	SymbolFlagGlobal SymbolFlags = 1 << iota
	SymbolFlagPointer
	SymbolFlagAlias
	SymbolFlagReference
	SymbolFlagFuncPtr
	SymbolFlagExported
	SymbolFlagPrototype
	SymbolFlagConstant // Value holds a folded constant
)

var flagLabels = []struct {
	flag  SymbolFlags
	label string
}{
	{SymbolFlagGlobal, "global"},
	{SymbolFlagPointer, "pointer"},
	{SymbolFlagAlias, "alias"},
	{SymbolFlagReference, "reference"},
	{SymbolFlagFuncPtr, "funcptr"},
	{SymbolFlagExported, "exported"},
	{SymbolFlagPrototype, "prototype"},
	{SymbolFlagConstant, "constant"},
}

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	for _, fl := range flagLabels {
		if f&fl.flag != 0 {
			labels = append(labels, fl.label)
		}
	}
	return labels
}

// Symbol describes a declared entity.
type Symbol struct {
	Kind  SymbolKind
	Name  string
	Span  source.Span
	Type  ast.TypeDef // variable type or function result
	Flags SymbolFlags
	Scope ScopeID
	Decl  ast.StmtID

	// Index is the local slot for variables and parameters, assigned at
	// registration in function order.
	Index uint32
	// Value is the folded constant of enumerators and global initializers.
	Value int32
	// AliasOf is the initializer lvalue of a '&' variable.
	AliasOf ast.ExprID
	// Params is the parameter type list of a function.
	Params []ast.TypeDef
}

// Has reports whether all bits of f are set.
func (s *Symbol) Has(f SymbolFlags) bool { return s.Flags&f == f }

// SameSignature reports whether two functions agree on result and parameter types.
func SameSignature(result ast.TypeDef, params []ast.TypeDef, otherResult ast.TypeDef, otherParams []ast.TypeDef) bool {
	if !sameType(result, otherResult) || len(params) != len(otherParams) {
		return false
	}
	for i := range params {
		if !sameType(params[i], otherParams[i]) {
			return false
		}
	}
	return true
}

func sameType(a, b ast.TypeDef) bool {
	return a.Kind == b.Kind && a.Native == b.Native && a.Depth == b.Depth && slices.Equal(a.Params, b.Params)
}
