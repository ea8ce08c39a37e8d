package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo           Code = 1000
	LexLenientLiteral Code = 1001
	LexBadHexLiteral  Code = 1002

	// Синтаксические
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectType       Code = 2003
	SynExpectExpression Code = 2004
	SynExpectSemicolon  Code = 2005
	SynNestingTooDeep   Code = 2006
	SynFnNotAllowed     Code = 2007
	SynUnclosedBrace    Code = 2008

	// Семантические
	SemaUndefinedSymbol       Code = 3001
	SemaDuplicateSymbol       Code = 3002
	SemaConflictingTypes      Code = 3003
	SemaRedefinition          Code = 3004
	SemaReturnOutsideFunction Code = 3005
	SemaBreakOutsideLoop      Code = 3006
	SemaContinueOutsideLoop   Code = 3007
	SemaMissingReturn         Code = 3008
	SemaNotConstant           Code = 3009
	SemaDivisionByZero        Code = 3010
	SemaNotAssignable         Code = 3011
	SemaNotCallable           Code = 3012
	SemaArgCount              Code = 3013
	SemaVoidValue             Code = 3014

	// Генерация кода
	GenInfo                Code = 4000
	GenUnknownNode         Code = 4001
	GenNoMatchingSignature Code = 4002
	GenUndefinedFunction   Code = 4003
	GenAddressOfGlobal     Code = 4004
	GenNotAddressable      Code = 4005
	GenMemoryExhausted     Code = 4006

	// Ввод-вывод и проект
	IOLoadFileError   Code = 5001
	ProjInvalidConfig Code = 5002
	ObsTimings        Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:               "Unknown error",
	LexInfo:                   "Lexical information",
	LexLenientLiteral:         "Numeric literal with embedded '-'",
	LexBadHexLiteral:          "Malformed hexadecimal literal",
	SynUnexpectedToken:        "Unexpected token",
	SynExpectIdentifier:       "Expected identifier",
	SynExpectType:             "Expected type",
	SynExpectExpression:       "Expected expression",
	SynExpectSemicolon:        "Expected semicolon",
	SynNestingTooDeep:         "Nesting too deep",
	SynFnNotAllowed:           "Function declaration not allowed here",
	SynUnclosedBrace:          "Unclosed brace",
	SemaUndefinedSymbol:       "Undefined symbol",
	SemaDuplicateSymbol:       "Duplicate symbol",
	SemaConflictingTypes:      "Conflicting types",
	SemaRedefinition:          "Redefinition",
	SemaReturnOutsideFunction: "Return outside function",
	SemaBreakOutsideLoop:      "Break outside loop",
	SemaContinueOutsideLoop:   "Continue outside loop",
	SemaMissingReturn:         "Missing return in function",
	SemaNotConstant:           "Expression is not constant",
	SemaDivisionByZero:        "Division by zero in constant expression",
	SemaNotAssignable:         "Expression is not assignable",
	SemaNotCallable:           "Expression is not callable",
	SemaArgCount:              "Wrong number of arguments",
	SemaVoidValue:             "Void value used as expression",
	GenInfo:                   "Code generation information",
	GenUnknownNode:            "Unknown node kind",
	GenNoMatchingSignature:    "No matching function signature",
	GenUndefinedFunction:      "Function declared but never defined",
	GenAddressOfGlobal:        "Cannot take address of global",
	GenNotAddressable:         "Expression is not addressable",
	GenMemoryExhausted:        "Static memory exhausted",
	IOLoadFileError:           "I/O error",
	ProjInvalidConfig:         "Invalid project configuration",
	ObsTimings:                "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
