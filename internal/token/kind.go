package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier or typedef name.
	Ident
	// IntLit is an integer constant with optional u/l suffixes.
	IntLit
	// FloatLit is a floating constant, decimal or hexadecimal.
	FloatLit
	// CharLit is a character constant with an optional L/u/U/u8 prefix.
	CharLit
	// StringLit is a string literal with an optional encoding prefix.
	StringLit

	KwAuto
	KwBreak
	KwCase
	KwChar
	KwConst
	KwContinue
	KwDefault
	KwDo
	KwDouble
	KwElse
	KwEnum
	KwExtern
	KwFloat
	KwFor
	KwGoto
	KwIf
	KwInline
	KwInt
	KwLong
	KwRegister
	KwRestrict
	KwReturn
	KwShort
	KwSigned
	KwSizeof
	KwStatic
	KwStruct
	KwSwitch
	KwTypedef
	KwUnion
	KwUnsigned
	KwVoid
	KwVolatile
	KwWhile
	KwBool         // _Bool
	KwAlignof      // _Alignof, __alignof__
	KwAlignas      // _Alignas
	KwNoreturn     // _Noreturn
	KwStaticAssert // _Static_assert
	KwThreadLocal  // _Thread_local, __thread
	KwInt128       // __int128
	KwAttribute    // __attribute__
	KwExtension    // __extension__
	KwAsm          // asm, __asm__
	KwBuiltinVaArg // __builtin_va_arg

	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }
	Dot      // .
	Arrow    // ->
	Ellipsis // ...
	Comma    // ,
	Semicolon
	Colon
	Question

	PlusPlus   // ++
	MinusMinus // --
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	Bang
	Shl // <<
	Shr // >>
	Lt
	LtEq
	Gt
	GtEq
	EqEq
	BangEq
	AndAnd
	OrOr

	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign

	Hash     // # outside a directive line
	HashHash // ##
)

var kindNames = [...]string{
	Invalid: "Invalid", EOF: "EOF", Ident: "Ident",
	IntLit: "IntLit", FloatLit: "FloatLit", CharLit: "CharLit", StringLit: "StringLit",
	KwAuto: "auto", KwBreak: "break", KwCase: "case", KwChar: "char", KwConst: "const",
	KwContinue: "continue", KwDefault: "default", KwDo: "do", KwDouble: "double",
	KwElse: "else", KwEnum: "enum", KwExtern: "extern", KwFloat: "float", KwFor: "for",
	KwGoto: "goto", KwIf: "if", KwInline: "inline", KwInt: "int", KwLong: "long",
	KwRegister: "register", KwRestrict: "restrict", KwReturn: "return", KwShort: "short",
	KwSigned: "signed", KwSizeof: "sizeof", KwStatic: "static", KwStruct: "struct",
	KwSwitch: "switch", KwTypedef: "typedef", KwUnion: "union", KwUnsigned: "unsigned",
	KwVoid: "void", KwVolatile: "volatile", KwWhile: "while", KwBool: "_Bool",
	KwAlignof: "_Alignof", KwAlignas: "_Alignas", KwNoreturn: "_Noreturn",
	KwStaticAssert: "_Static_assert", KwThreadLocal: "_Thread_local", KwInt128: "__int128",
	KwAttribute: "__attribute__", KwExtension: "__extension__", KwAsm: "asm", KwBuiltinVaArg: "__builtin_va_arg",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", LBrace: "{", RBrace: "}",
	Dot: ".", Arrow: "->", Ellipsis: "...", Comma: ",", Semicolon: ";", Colon: ":",
	Question: "?", PlusPlus: "++", MinusMinus: "--", Plus: "+", Minus: "-", Star: "*",
	Slash: "/", Percent: "%", Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", Bang: "!",
	Shl: "<<", Shr: ">>", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=", EqEq: "==",
	BangEq: "!=", AndAnd: "&&", OrOr: "||", Assign: "=", PlusAssign: "+=",
	MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=", PercentAssign: "%=",
	AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=", ShlAssign: "<<=",
	ShrAssign: ">>=", Hash: "#", HashHash: "##",
}

// String returns the keyword or punctuator spelling, or the class name for
// identifiers and literals.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
