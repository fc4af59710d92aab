package token

var keywords = map[string]Kind{
	"auto":     KwAuto,
	"break":    KwBreak,
	"case":     KwCase,
	"char":     KwChar,
	"const":    KwConst,
	"continue": KwContinue,
	"default":  KwDefault,
	"do":       KwDo,
	"double":   KwDouble,
	"else":     KwElse,
	"enum":     KwEnum,
	"extern":   KwExtern,
	"float":    KwFloat,
	"for":      KwFor,
	"goto":     KwGoto,
	"if":       KwIf,
	"inline":   KwInline,
	"int":      KwInt,
	"long":     KwLong,
	"register": KwRegister,
	"restrict": KwRestrict,
	"return":   KwReturn,
	"short":    KwShort,
	"signed":   KwSigned,
	"sizeof":   KwSizeof,
	"static":   KwStatic,
	"struct":   KwStruct,
	"switch":   KwSwitch,
	"typedef":  KwTypedef,
	"union":    KwUnion,
	"unsigned": KwUnsigned,
	"void":     KwVoid,
	"volatile": KwVolatile,
	"while":    KwWhile,

	"_Bool":          KwBool,
	"_Alignof":       KwAlignof,
	"_Alignas":       KwAlignas,
	"_Noreturn":      KwNoreturn,
	"_Static_assert": KwStaticAssert,
	"_Thread_local":  KwThreadLocal,

	// GNU spellings
	"__inline":         KwInline,
	"__inline__":       KwInline,
	"__restrict":       KwRestrict,
	"__restrict__":     KwRestrict,
	"__const":          KwConst,
	"__const__":        KwConst,
	"__volatile":       KwVolatile,
	"__volatile__":     KwVolatile,
	"__signed":         KwSigned,
	"__signed__":       KwSigned,
	"__alignof":        KwAlignof,
	"__alignof__":      KwAlignof,
	"__thread":         KwThreadLocal,
	"__int128":         KwInt128,
	"__attribute":      KwAttribute,
	"__attribute__":    KwAttribute,
	"__extension__":    KwExtension,
	"asm":              KwAsm,
	"__asm":            KwAsm,
	"__asm__":          KwAsm,
	"__builtin_va_arg": KwBuiltinVaArg,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
