package ast

import (
	"strings"

	"momo/internal/token"
)

// TypeKind distinguishes the declaration shapes a type can take.
type TypeKind uint8

const (
	// TypePlain is a bare native type: int x
	TypePlain TypeKind = iota
	// TypePointer is one or more leading '*': int **p
	TypePointer
	// TypeReference is a leading '&': int &r = x
	TypeReference
	// TypeFuncPtr is a function pointer: int (*fp)(int, int)
	TypeFuncPtr
)

// TypeDef describes the declared type of a variable, parameter or function.
type TypeDef struct {
	Kind   TypeKind
	Native token.Kind   // token.TyInt ... token.TyBool
	Depth  uint8        // pointer depth for TypePointer
	Params []token.Kind // parameter types for TypeFuncPtr
}

// IsVoid reports whether the type produces no value.
func (t TypeDef) IsVoid() bool {
	return t.Kind == TypePlain && t.Native == token.TyVoid
}

func (t TypeDef) String() string {
	var sb strings.Builder
	sb.WriteString(nativeName(t.Native))
	switch t.Kind {
	case TypePointer:
		sb.WriteString(strings.Repeat("*", int(t.Depth)))
	case TypeReference:
		sb.WriteString("&")
	case TypeFuncPtr:
		sb.WriteString("(*)(")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(nativeName(p))
		}
		sb.WriteString(")")
	}
	return sb.String()
}

func nativeName(k token.Kind) string {
	switch k {
	case token.TyInt:
		return "int"
	case token.TyI32:
		return "i32"
	case token.TyI64:
		return "i64"
	case token.TyFloat:
		return "float"
	case token.TyF32:
		return "f32"
	case token.TyF64:
		return "f64"
	case token.TyVoid:
		return "void"
	case token.TyBool:
		return "bool"
	}
	return "?"
}
