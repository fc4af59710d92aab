package types

// builtinOf resolves enums to their integer type and returns the builtin kind.
func (in *Interner) builtinOf(q QualType) BuiltinKind {
	tt, _ := in.Underlying(q)
	switch tt.Kind {
	case KindBuiltin:
		return tt.Builtin
	case KindEnum:
		return in.builtinOf(in.tags[tt.Payload].IntType)
	default:
		return BuiltinNone
	}
}

// BuiltinOf exposes the builtin kind of q after desugaring; enums map to
// their underlying integer type.
func (in *Interner) BuiltinOf(q QualType) BuiltinKind {
	return in.builtinOf(q)
}

func isIntegerBuiltin(b BuiltinKind) bool { return b >= Bool && b <= UInt128 }
func isFloatBuiltin(b BuiltinKind) bool   { return b >= Float && b <= LongDouble }

// IsVoid reports void.
func (in *Interner) IsVoid(q QualType) bool {
	tt, _ := in.Underlying(q)
	return tt.Kind == KindBuiltin && tt.Builtin == Void
}

// IsInteger reports integer types, enums included.
func (in *Interner) IsInteger(q QualType) bool { return isIntegerBuiltin(in.builtinOf(q)) }

// IsFloating reports real floating types.
func (in *Interner) IsFloating(q QualType) bool { return isFloatBuiltin(in.builtinOf(q)) }

// IsArithmetic reports integer or floating.
func (in *Interner) IsArithmetic(q QualType) bool {
	b := in.builtinOf(q)
	return isIntegerBuiltin(b) || isFloatBuiltin(b)
}

// IsPointer reports pointer types.
func (in *Interner) IsPointer(q QualType) bool { return in.KindOf(q) == KindPointer }

// IsScalar reports arithmetic or pointer types.
func (in *Interner) IsScalar(q QualType) bool { return in.IsArithmetic(q) || in.IsPointer(q) }

// IsArray reports both array kinds.
func (in *Interner) IsArray(q QualType) bool { return isArrayKind(in.KindOf(q)) }

// IsFunction reports both function kinds.
func (in *Interner) IsFunction(q QualType) bool { return isFuncKind(in.KindOf(q)) }

// IsRecord reports struct and union types.
func (in *Interner) IsRecord(q QualType) bool { return in.KindOf(q) == KindRecord }

// IsSigned reports whether an integer type is signed.
func (in *Interner) IsSigned(q QualType) bool {
	switch in.builtinOf(q) {
	case Char, SChar, Short, Int, Long, LongLong, Int128:
		return true
	}
	return false
}

// IsComplete reports whether objects of q have a known size.
func (in *Interner) IsComplete(q QualType) bool {
	tt, _ := in.Underlying(q)
	switch tt.Kind {
	case KindBuiltin:
		return tt.Builtin != Void
	case KindIncompleteArray, KindFunctionProto, KindFunctionNoProto, KindInvalid:
		return false
	case KindConstantArray:
		return in.IsComplete(tt.Elem)
	case KindRecord, KindEnum:
		return in.tags[tt.Payload].Complete
	}
	return true
}

// Rank is the integer conversion rank.
func Rank(b BuiltinKind) int {
	switch b {
	case Bool:
		return 1
	case Char, SChar, UChar:
		return 2
	case Short, UShort:
		return 3
	case Int, UInt:
		return 4
	case Long, ULong:
		return 5
	case LongLong, ULongLong:
		return 6
	case Int128, UInt128:
		return 7
	}
	return 0
}

// ToUnsigned maps a signed integer kind to its unsigned counterpart.
func ToUnsigned(b BuiltinKind) BuiltinKind {
	switch b {
	case Char, SChar:
		return UChar
	case Short:
		return UShort
	case Int:
		return UInt
	case Long:
		return ULong
	case LongLong:
		return ULongLong
	case Int128:
		return UInt128
	}
	return b
}

func isSignedBuiltin(b BuiltinKind) bool {
	switch b {
	case Char, SChar, Short, Int, Long, LongLong, Int128:
		return true
	}
	return false
}

// Promote applies the integer promotions. Non-integer types are returned
// unchanged (qualifiers dropped).
func (in *Interner) Promote(q QualType) QualType {
	b := in.builtinOf(q)
	if !isIntegerBuiltin(b) {
		return q.Unqualified()
	}
	if Rank(b) < Rank(Int) {
		return in.builtins.Q(Int)
	}
	if in.KindOf(q) == KindEnum {
		return in.builtins.Q(b)
	}
	return q.Unqualified()
}

// UsualArithmetic returns the common type of two arithmetic operands.
func (in *Interner) UsualArithmetic(a, b QualType) QualType {
	ba, bb := in.builtinOf(a), in.builtinOf(b)
	switch {
	case ba == LongDouble || bb == LongDouble:
		return in.builtins.Q(LongDouble)
	case ba == Double || bb == Double:
		return in.builtins.Q(Double)
	case ba == Float || bb == Float:
		return in.builtins.Q(Float)
	}
	pa, pb := in.builtinOf(in.Promote(a)), in.builtinOf(in.Promote(b))
	if pa == pb {
		return in.builtins.Q(pa)
	}
	sa, sb := isSignedBuiltin(pa), isSignedBuiltin(pb)
	if sa == sb {
		if Rank(pa) >= Rank(pb) {
			return in.builtins.Q(pa)
		}
		return in.builtins.Q(pb)
	}
	signed, unsigned := pa, pb
	if !sa {
		signed, unsigned = pb, pa
	}
	if Rank(unsigned) >= Rank(signed) {
		return in.builtins.Q(unsigned)
	}
	if builtinSize(signed) > builtinSize(unsigned) {
		return in.builtins.Q(signed)
	}
	return in.builtins.Q(ToUnsigned(signed))
}

// DecayedParam adjusts a parameter type: arrays become pointers to their
// element and functions become pointers to function.
func (in *Interner) DecayedParam(q QualType) QualType {
	tt, quals := in.Underlying(q)
	switch tt.Kind {
	case KindConstantArray, KindIncompleteArray:
		return in.Pointer(tt.Elem).With(quals)
	case KindFunctionProto, KindFunctionNoProto:
		return in.Pointer(q)
	}
	return q
}
