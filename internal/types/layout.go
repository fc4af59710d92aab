package types

// Sizes follow the LP64 data model.
func builtinSize(b BuiltinKind) uint64 {
	switch b {
	case Bool, Char, SChar, UChar:
		return 1
	case Short, UShort:
		return 2
	case Int, UInt, Float:
		return 4
	case Long, ULong, LongLong, ULongLong, Double, VaList:
		return 8
	case Int128, UInt128, LongDouble:
		return 16
	}
	return 0
}

// PointerSize is the width of data pointers in bytes.
const PointerSize = 8

// BitWidth returns the size of an integer type in bits.
func (in *Interner) BitWidth(q QualType) uint {
	return uint(builtinSize(in.builtinOf(q)) * 8)
}

// SizeOf returns the object size of q in bytes and whether it is known.
func (in *Interner) SizeOf(q QualType) (uint64, bool) {
	size, _, ok := in.layout(q)
	return size, ok
}

// AlignOf returns the alignment of q in bytes.
func (in *Interner) AlignOf(q QualType) (uint64, bool) {
	_, align, ok := in.layout(q)
	return align, ok
}

func (in *Interner) layout(q QualType) (size, align uint64, ok bool) {
	tt, _ := in.Underlying(q)
	switch tt.Kind {
	case KindBuiltin:
		if tt.Builtin == Void {
			return 1, 1, true // GNU extension, sizeof(void) == 1
		}
		s := builtinSize(tt.Builtin)
		return s, s, true
	case KindPointer:
		return PointerSize, PointerSize, true
	case KindConstantArray:
		es, ea, eok := in.layout(tt.Elem)
		return es * tt.Count, ea, eok
	case KindEnum:
		return in.layout(in.tags[tt.Payload].IntType)
	case KindRecord:
		return in.recordLayout(&in.tags[tt.Payload])
	case KindFunctionProto, KindFunctionNoProto:
		return 1, 1, true // GNU extension
	}
	return 0, 0, false
}

func (in *Interner) recordLayout(info *TagInfo) (size, align uint64, ok bool) {
	if !info.Complete {
		return 0, 0, false
	}
	align = 1
	var off, bitOff uint64
	for i, f := range info.Fields {
		fs, fa, fok := in.layout(f.Type)
		if !fok && i == len(info.Fields)-1 && in.KindOf(f.Type) == KindIncompleteArray {
			// flexible array member
			_, fa, fok = in.layout(in.MustLookup(in.Canonical(f.Type).ID).Elem)
			fs = 0
		}
		if !fok {
			return 0, 0, false
		}
		if fa > align {
			align = fa
		}
		if info.Kind == TagUnion {
			if fs > size {
				size = fs
			}
			continue
		}
		if f.BitWidth >= 0 {
			unit := fs * 8
			w := uint64(f.BitWidth)
			if w == 0 || bitOff%unit+w > unit {
				bitOff = alignUp(bitOff, unit)
			}
			bitOff += w
			off = (bitOff + 7) / 8
			continue
		}
		off = alignUp(off, fa) + fs
		bitOff = off * 8
	}
	if info.Kind == TagUnion {
		return alignUp(size, align), align, true
	}
	return alignUp(off, align), align, true
}

func alignUp(v, a uint64) uint64 {
	if a == 0 {
		return v
	}
	return (v + a - 1) / a * a
}
