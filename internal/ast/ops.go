package ast

import "fmt"

// UnaryOp is a unary operator opcode.
type UnaryOp uint8

const (
	UnaryPostInc UnaryOp = iota
	UnaryPostDec
	UnaryPreInc
	UnaryPreDec
	UnaryAddrOf
	UnaryDeref
	UnaryPlus
	UnaryMinus
	UnaryNot
	UnaryLNot
	UnaryReal
	UnaryImag
	UnaryExtension
)

var unaryNames = [...]string{
	UnaryPostInc:   "++",
	UnaryPostDec:   "--",
	UnaryPreInc:    "++",
	UnaryPreDec:    "--",
	UnaryAddrOf:    "&",
	UnaryDeref:     "*",
	UnaryPlus:      "+",
	UnaryMinus:     "-",
	UnaryNot:       "~",
	UnaryLNot:      "!",
	UnaryReal:      "__real",
	UnaryImag:      "__imag",
	UnaryExtension: "__extension__",
}

// String returns the operator spelling.
func (op UnaryOp) String() string {
	if int(op) < len(unaryNames) {
		return unaryNames[op]
	}
	return fmt.Sprintf("UnaryOp(%d)", op)
}

// IsPostfix reports x++ and x--.
func (op UnaryOp) IsPostfix() bool { return op == UnaryPostInc || op == UnaryPostDec }

// IsIncDec reports the four increment and decrement forms.
func (op UnaryOp) IsIncDec() bool { return op <= UnaryPreDec }

// BinaryOp is a binary operator opcode, ordered by precedence groups.
type BinaryOp uint8

const (
	BinaryMul BinaryOp = iota
	BinaryDiv
	BinaryRem
	BinaryAdd
	BinarySub
	BinaryShl
	BinaryShr
	BinaryLT
	BinaryGT
	BinaryLE
	BinaryGE
	BinaryEQ
	BinaryNE
	BinaryAnd
	BinaryXor
	BinaryOr
	BinaryLAnd
	BinaryLOr
	BinaryAssign
	BinaryMulAssign
	BinaryDivAssign
	BinaryRemAssign
	BinaryAddAssign
	BinarySubAssign
	BinaryShlAssign
	BinaryShrAssign
	BinaryAndAssign
	BinaryXorAssign
	BinaryOrAssign
	BinaryComma
)

var binaryNames = [...]string{
	BinaryMul:       "*",
	BinaryDiv:       "/",
	BinaryRem:       "%",
	BinaryAdd:       "+",
	BinarySub:       "-",
	BinaryShl:       "<<",
	BinaryShr:       ">>",
	BinaryLT:        "<",
	BinaryGT:        ">",
	BinaryLE:        "<=",
	BinaryGE:        ">=",
	BinaryEQ:        "==",
	BinaryNE:        "!=",
	BinaryAnd:       "&",
	BinaryXor:       "^",
	BinaryOr:        "|",
	BinaryLAnd:      "&&",
	BinaryLOr:       "||",
	BinaryAssign:    "=",
	BinaryMulAssign: "*=",
	BinaryDivAssign: "/=",
	BinaryRemAssign: "%=",
	BinaryAddAssign: "+=",
	BinarySubAssign: "-=",
	BinaryShlAssign: "<<=",
	BinaryShrAssign: ">>=",
	BinaryAndAssign: "&=",
	BinaryXorAssign: "^=",
	BinaryOrAssign:  "|=",
	BinaryComma:     ",",
}

// String returns the operator spelling.
func (op BinaryOp) String() string {
	if int(op) < len(binaryNames) {
		return binaryNames[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", op)
}

func (op BinaryOp) IsAssignment() bool         { return op >= BinaryAssign && op <= BinaryOrAssign }
func (op BinaryOp) IsCompoundAssignment() bool { return op > BinaryAssign && op <= BinaryOrAssign }
func (op BinaryOp) IsComparison() bool         { return op >= BinaryLT && op <= BinaryNE }
func (op BinaryOp) IsLogical() bool            { return op == BinaryLAnd || op == BinaryLOr }
func (op BinaryOp) IsShift() bool              { return op == BinaryShl || op == BinaryShr }
func (op BinaryOp) IsBitwise() bool            { return op >= BinaryAnd && op <= BinaryOr }

var compoundBase = [...]BinaryOp{
	BinaryMulAssign: BinaryMul,
	BinaryDivAssign: BinaryDiv,
	BinaryRemAssign: BinaryRem,
	BinaryAddAssign: BinaryAdd,
	BinarySubAssign: BinarySub,
	BinaryShlAssign: BinaryShl,
	BinaryShrAssign: BinaryShr,
	BinaryAndAssign: BinaryAnd,
	BinaryXorAssign: BinaryXor,
	BinaryOrAssign:  BinaryOr,
}

// Underlying maps `a op= b` to `op`.
func (op BinaryOp) Underlying() BinaryOp {
	if !op.IsCompoundAssignment() {
		return op
	}
	return compoundBase[op]
}

// CastKind classifies conversions performed by cast expressions.
type CastKind uint8

const (
	CastNoOp CastKind = iota
	CastLValueToRValue
	CastArrayToPointerDecay
	CastFunctionToPointerDecay
	CastIntegralCast
	CastIntegralToFloating
	CastFloatingToIntegral
	CastFloatingCast
	CastNullToPointer
	CastBitCast
	CastIntegralToPointer
	CastPointerToIntegral
	CastIntegralToBoolean
	CastFloatingToBoolean
	CastPointerToBoolean
	CastToVoid
	CastToUnion
)

var castNames = [...]string{
	CastNoOp:                   "NoOp",
	CastLValueToRValue:         "LValueToRValue",
	CastArrayToPointerDecay:    "ArrayToPointerDecay",
	CastFunctionToPointerDecay: "FunctionToPointerDecay",
	CastIntegralCast:           "IntegralCast",
	CastIntegralToFloating:     "IntegralToFloating",
	CastFloatingToIntegral:     "FloatingToIntegral",
	CastFloatingCast:           "FloatingCast",
	CastNullToPointer:          "NullToPointer",
	CastBitCast:                "BitCast",
	CastIntegralToPointer:      "IntegralToPointer",
	CastPointerToIntegral:      "PointerToIntegral",
	CastIntegralToBoolean:      "IntegralToBoolean",
	CastFloatingToBoolean:      "FloatingToBoolean",
	CastPointerToBoolean:       "PointerToBoolean",
	CastToVoid:                 "ToVoid",
	CastToUnion:                "ToUnion",
}

func (k CastKind) String() string {
	if int(k) < len(castNames) {
		return castNames[k]
	}
	return fmt.Sprintf("CastKind(%d)", k)
}

// TraitKind selects sizeof or _Alignof.
type TraitKind uint8

const (
	TraitSizeOf TraitKind = iota
	TraitAlignOf
)

func (k TraitKind) String() string {
	if k == TraitAlignOf {
		return "alignof"
	}
	return "sizeof"
}

// StorageClass is the written storage-class specifier of a function or variable.
type StorageClass uint8

const (
	SCNone StorageClass = iota
	SCExtern
	SCStatic
	SCAuto
	SCRegister
)

func (sc StorageClass) String() string {
	switch sc {
	case SCNone:
		return "none"
	case SCExtern:
		return "extern"
	case SCStatic:
		return "static"
	case SCAuto:
		return "auto"
	case SCRegister:
		return "register"
	}
	return fmt.Sprintf("StorageClass(%d)", sc)
}

// ValueKind is the value category of an expression.
type ValueKind uint8

const (
	RValue ValueKind = iota
	LValue
)

// PredefinedKind names __func__ and its GNU spellings.
type PredefinedKind uint8

const (
	PredefFunc PredefinedKind = iota
	PredefFunction
	PredefPrettyFunction
)

func (k PredefinedKind) String() string {
	switch k {
	case PredefFunction:
		return "__FUNCTION__"
	case PredefPrettyFunction:
		return "__PRETTY_FUNCTION__"
	}
	return "__func__"
}
