package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"let":      KwLet,
	"const":    KwConst,
	"mut":      KwMut,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"loop":     KwLoop,
	"match":    KwMatch,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"as":       KwAs,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"macro":    KwMacro,
	"extern":   KwExtern,
	"unsafe":   KwUnsafe,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns the keyword spellings, used by the expander to tell
// metavariable names apart from reserved words.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
