package types

// Desugar strips one level of typedef sugar, merging qualifiers.
func (in *Interner) Desugar(q QualType) QualType {
	for {
		tt, ok := in.Lookup(q.ID)
		if !ok || tt.Kind != KindTypedef {
			return q
		}
		q = QualType{ID: tt.Elem.ID, Quals: q.Quals | tt.Elem.Quals}
	}
}

// Canonical removes every typedef, including those nested in derived types.
func (in *Interner) Canonical(q QualType) QualType {
	q = in.Desugar(q)
	tt, ok := in.Lookup(q.ID)
	if !ok {
		return q
	}
	switch tt.Kind {
	case KindPointer:
		return in.Pointer(in.Canonical(tt.Elem)).With(q.Quals)
	case KindConstantArray:
		return in.ConstantArray(in.Canonical(tt.Elem), tt.Count).With(q.Quals)
	case KindIncompleteArray:
		return in.IncompleteArray(in.Canonical(tt.Elem)).With(q.Quals)
	case KindFunctionNoProto:
		return in.FunctionNoProto(in.Canonical(tt.Elem)).With(q.Quals)
	case KindFunctionProto:
		fn := in.fns[tt.Payload]
		params := make([]QualType, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = in.Canonical(p).Unqualified()
		}
		return in.FunctionProto(in.Canonical(fn.Result), params, fn.Variadic).With(q.Quals)
	default:
		return q
	}
}

// Same reports canonical type identity including qualifiers.
func (in *Interner) Same(a, b QualType) bool {
	return in.Canonical(a) == in.Canonical(b)
}

// KindOf returns the canonical kind of q.
func (in *Interner) KindOf(q QualType) Kind {
	tt, ok := in.Lookup(in.Desugar(q).ID)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// Underlying returns the canonical descriptor.
func (in *Interner) Underlying(q QualType) (Type, Qualifiers) {
	q = in.Desugar(q)
	tt, _ := in.Lookup(q.ID)
	return tt, q.Quals
}

// Pointee returns the pointee of a pointer type.
func (in *Interner) Pointee(q QualType) (QualType, bool) {
	tt, _ := in.Underlying(q)
	if tt.Kind != KindPointer {
		return QualType{}, false
	}
	return tt.Elem, true
}

// Element returns the element of an array type.
func (in *Interner) Element(q QualType) (QualType, bool) {
	tt, _ := in.Underlying(q)
	if tt.Kind != KindConstantArray && tt.Kind != KindIncompleteArray {
		return QualType{}, false
	}
	return tt.Elem, true
}

// Result returns the result type of a function type.
func (in *Interner) Result(q QualType) (QualType, bool) {
	tt, _ := in.Underlying(q)
	if tt.Kind != KindFunctionProto && tt.Kind != KindFunctionNoProto {
		return QualType{}, false
	}
	return tt.Elem, true
}

// Compatible implements a pragmatic subset of C type compatibility used for
// redeclarations and pointer assignment checks.
func (in *Interner) Compatible(a, b QualType) bool {
	a, b = in.Canonical(a), in.Canonical(b)
	if a == b {
		return true
	}
	if a.Quals != b.Quals {
		return false
	}
	ta, _ := in.Lookup(a.ID)
	tb, _ := in.Lookup(b.ID)
	switch {
	case ta.Kind == KindPointer && tb.Kind == KindPointer:
		return in.Compatible(ta.Elem, tb.Elem)
	case isArrayKind(ta.Kind) && isArrayKind(tb.Kind):
		if ta.Kind == KindConstantArray && tb.Kind == KindConstantArray && ta.Count != tb.Count {
			return false
		}
		return in.Compatible(ta.Elem, tb.Elem)
	case isFuncKind(ta.Kind) && isFuncKind(tb.Kind):
		if !in.Compatible(ta.Elem, tb.Elem) {
			return false
		}
		if ta.Kind == KindFunctionNoProto || tb.Kind == KindFunctionNoProto {
			return true
		}
		fa, fb := in.fns[ta.Payload], in.fns[tb.Payload]
		if fa.Variadic != fb.Variadic || len(fa.Params) != len(fb.Params) {
			return false
		}
		for i := range fa.Params {
			if !in.Compatible(fa.Params[i].Unqualified(), fb.Params[i].Unqualified()) {
				return false
			}
		}
		return true
	case ta.Kind == KindEnum && tb.Kind == KindBuiltin:
		return in.tags[ta.Payload].IntType.ID == b.ID
	case tb.Kind == KindEnum && ta.Kind == KindBuiltin:
		return in.tags[tb.Payload].IntType.ID == a.ID
	}
	return false
}

func isArrayKind(k Kind) bool { return k == KindConstantArray || k == KindIncompleteArray }
func isFuncKind(k Kind) bool  { return k == KindFunctionProto || k == KindFunctionNoProto }

// CanonicalizeAll interns the canonical form of every type, so that later
// Canonical calls only read. Types created along the way are visited too.
func (in *Interner) CanonicalizeAll() {
	for id := 1; id < len(in.types); id++ {
		in.Canonical(QualType{ID: TypeID(id)}) //nolint:gosec // G115: bounded by internRaw.
	}
}
