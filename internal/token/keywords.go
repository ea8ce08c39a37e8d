package token

var keywords = map[string]Kind{
	"enum":     KwEnum,
	"import":   KwImport,
	"extern":   KwExtern,
	"break":    KwBreak,
	"continue": KwContinue,
	"do":       KwDo,
	"else":     KwElse,
	"for":      KwFor,
	"if":       KwIf,
	"return":   KwReturn,
	"while":    KwWhile,
	"true":     KwTrue,
	"false":    KwFalse,
}

var types = map[string]Kind{
	"int":   TyInt,
	"i32":   TyI32,
	"i64":   TyI64,
	"float": TyFloat,
	"f32":   TyF32,
	"f64":   TyF64,
	"void":  TyVoid,
	"bool":  TyBool,
}

// LookupKeyword возвращает тип и bool если это ключевое слово или имя типа.
// Ключевые слова регистрозависимые: только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	if k, ok := keywords[ident]; ok {
		return k, true
	}
	k, ok := types[ident]
	return k, ok
}
