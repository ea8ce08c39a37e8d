package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the token stream.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents a decimal literal, e.g. 42.
	IntLit
	// HexLit represents a hexadecimal literal, e.g. 0xff.
	HexLit

	KwEnum     // enum
	KwImport   // import
	KwExtern   // extern
	KwBreak    // break
	KwContinue // continue
	KwDo       // do
	KwElse     // else
	KwFor      // for
	KwIf       // if
	KwReturn   // return
	KwWhile    // while
	KwTrue     // true
	KwFalse    // false

	TyInt   // int
	TyI32   // i32
	TyI64   // i64
	TyFloat // float
	TyF32   // f32
	TyF64   // f64
	TyVoid  // void
	TyBool  // bool

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Semicolon // ;

	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=

	OrOr       // ||
	AndAnd     // &&
	EqEq       // ==
	BangEq     // !=
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Amp        // &
	Pipe       // |
	Tilde      // ~
	Caret      // ^
	Shl        // <<
	Shr        // >>
	Bang       // !
	MinusMinus // --
	PlusPlus   // ++
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	IntLit:        "IntLit",
	HexLit:        "HexLit",
	KwEnum:        "KwEnum",
	KwImport:      "KwImport",
	KwExtern:      "KwExtern",
	KwBreak:       "KwBreak",
	KwContinue:    "KwContinue",
	KwDo:          "KwDo",
	KwElse:        "KwElse",
	KwFor:         "KwFor",
	KwIf:          "KwIf",
	KwReturn:      "KwReturn",
	KwWhile:       "KwWhile",
	KwTrue:        "KwTrue",
	KwFalse:       "KwFalse",
	TyInt:         "TyInt",
	TyI32:         "TyI32",
	TyI64:         "TyI64",
	TyFloat:       "TyFloat",
	TyF32:         "TyF32",
	TyF64:         "TyF64",
	TyVoid:        "TyVoid",
	TyBool:        "TyBool",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	Comma:         "Comma",
	Semicolon:     "Semicolon",
	Assign:        "Assign",
	PlusAssign:    "PlusAssign",
	MinusAssign:   "MinusAssign",
	StarAssign:    "StarAssign",
	SlashAssign:   "SlashAssign",
	PercentAssign: "PercentAssign",
	AmpAssign:     "AmpAssign",
	PipeAssign:    "PipeAssign",
	CaretAssign:   "CaretAssign",
	ShlAssign:     "ShlAssign",
	ShrAssign:     "ShrAssign",
	OrOr:          "OrOr",
	AndAnd:        "AndAnd",
	EqEq:          "EqEq",
	BangEq:        "BangEq",
	Lt:            "Lt",
	LtEq:          "LtEq",
	Gt:            "Gt",
	GtEq:          "GtEq",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Percent:       "Percent",
	Amp:           "Amp",
	Pipe:          "Pipe",
	Tilde:         "Tilde",
	Caret:         "Caret",
	Shl:           "Shl",
	Shr:           "Shr",
	Bang:          "Bang",
	MinusMinus:    "MinusMinus",
	PlusPlus:      "PlusPlus",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsType reports whether k names a native type.
func (k Kind) IsType() bool {
	return k >= TyInt && k <= TyBool
}

// IsKeyword reports whether k is a reserved word (types excluded).
func (k Kind) IsKeyword() bool {
	return k >= KwEnum && k <= KwFalse
}

// CompoundBase maps a compound assignment to its binary operator.
// Returns Invalid for anything else.
func (k Kind) CompoundBase() Kind {
	switch k {
	case PlusAssign:
		return Plus
	case MinusAssign:
		return Minus
	case StarAssign:
		return Star
	case SlashAssign:
		return Slash
	case PercentAssign:
		return Percent
	case AmpAssign:
		return Amp
	case PipeAssign:
		return Pipe
	case CaretAssign:
		return Caret
	case ShlAssign:
		return Shl
	case ShrAssign:
		return Shr
	default:
		return Invalid
	}
}
