package types

import (
	"fmt"
	"strings"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the C type classes.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBuiltin
	KindPointer
	KindConstantArray
	KindIncompleteArray
	KindFunctionProto
	KindFunctionNoProto
	KindRecord
	KindEnum
	KindTypedef
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindBuiltin:
		return "Builtin"
	case KindPointer:
		return "Pointer"
	case KindConstantArray:
		return "ConstantArray"
	case KindIncompleteArray:
		return "IncompleteArray"
	case KindFunctionProto:
		return "FunctionProto"
	case KindFunctionNoProto:
		return "FunctionNoProto"
	case KindRecord:
		return "Record"
	case KindEnum:
		return "Enum"
	case KindTypedef:
		return "Typedef"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// BuiltinKind lists the arithmetic and special builtin types.
type BuiltinKind uint8

const (
	BuiltinNone BuiltinKind = iota
	Void
	Bool
	Char // plain char, signed on the modelled target
	SChar
	UChar
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LongLong
	ULongLong
	Int128
	UInt128
	Float
	Double
	LongDouble
	VaList // __builtin_va_list
)

var builtinNames = [...]string{
	BuiltinNone: "<none>",
	Void:        "void",
	Bool:        "_Bool",
	Char:        "char",
	SChar:       "signed char",
	UChar:       "unsigned char",
	Short:       "short",
	UShort:      "unsigned short",
	Int:         "int",
	UInt:        "unsigned int",
	Long:        "long",
	ULong:       "unsigned long",
	LongLong:    "long long",
	ULongLong:   "unsigned long long",
	Int128:      "__int128",
	UInt128:     "unsigned __int128",
	Float:       "float",
	Double:      "double",
	LongDouble:  "long double",
	VaList:      "__builtin_va_list",
}

func (b BuiltinKind) String() string {
	if int(b) < len(builtinNames) {
		return builtinNames[b]
	}
	return fmt.Sprintf("BuiltinKind(%d)", b)
}

// Qualifiers is the cvr mask carried by QualType.
type Qualifiers uint8

const (
	Const Qualifiers = 1 << iota
	Volatile
	Restrict
)

func (q Qualifiers) String() string {
	parts := make([]string, 0, 3)
	if q&Const != 0 {
		parts = append(parts, "const")
	}
	if q&Volatile != 0 {
		parts = append(parts, "volatile")
	}
	if q&Restrict != 0 {
		parts = append(parts, "restrict")
	}
	return strings.Join(parts, " ")
}

// QualType pairs a type with its top-level qualifiers.
type QualType struct {
	ID    TypeID
	Quals Qualifiers
}

// IsNull reports a missing type.
func (q QualType) IsNull() bool { return q.ID == NoTypeID }

// With adds qualifiers.
func (q QualType) With(quals Qualifiers) QualType {
	q.Quals |= quals
	return q
}

// Unqualified drops top-level qualifiers.
func (q QualType) Unqualified() QualType {
	return QualType{ID: q.ID}
}

// Type is a compact descriptor. Elem is the pointee, array element, function
// result or typedef underlying type depending on Kind.
type Type struct {
	Kind    Kind
	Builtin BuiltinKind
	Elem    QualType
	Count   uint64 // constant array size
	Payload uint32 // slot in fns / tags / typedefs
}
