package cnode

import (
	"cbridge/internal/ast"
	"cbridge/internal/types"
)

// TypeKind is the class of a type as written, before typedefs are looked
// through.
type TypeKind uint8

const (
	TypeInvalid         = TypeKind(types.KindInvalid)
	TypeBuiltin         = TypeKind(types.KindBuiltin)
	TypePointer         = TypeKind(types.KindPointer)
	TypeConstantArray   = TypeKind(types.KindConstantArray)
	TypeIncompleteArray = TypeKind(types.KindIncompleteArray)
	TypeFunctionProto   = TypeKind(types.KindFunctionProto)
	TypeFunctionNoProto = TypeKind(types.KindFunctionNoProto)
	TypeRecord          = TypeKind(types.KindRecord)
	TypeEnum            = TypeKind(types.KindEnum)
	TypeTypedef         = TypeKind(types.KindTypedef)
)

func (k TypeKind) String() string { return types.Kind(k).String() }

// Qualifiers is the const/volatile/restrict mask of a QualType.
type Qualifiers uint8

const (
	QualConst    = Qualifiers(types.Const)
	QualVolatile = Qualifiers(types.Volatile)
	QualRestrict = Qualifiers(types.Restrict)
)

// String lists the set qualifiers in declaration order.
func (q Qualifiers) String() string { return types.Qualifiers(q).String() }

// QualType is a type handle plus its top-level qualifiers. Like node
// handles it is only valid while its Unit is open.
type QualType struct {
	unit *Unit
	q    types.QualType
}

// IsNull reports a missing type, e.g. the type of a statement.
func (t QualType) IsNull() bool { return t.unit == nil || t.q.IsNull() }

func (t QualType) Qualifiers() Qualifiers { return Qualifiers(t.q.Quals) }
func (t QualType) IsConst() bool          { return t.q.Quals&types.Const != 0 }
func (t QualType) IsVolatile() bool       { return t.q.Quals&types.Volatile != 0 }
func (t QualType) IsRestrict() bool       { return t.q.Quals&types.Restrict != 0 }

// Unqualified drops top-level qualifiers.
func (t QualType) Unqualified() QualType { return QualType{t.unit, t.q.Unqualified()} }

func (t QualType) interner(op string) *types.Interner {
	if t.unit == nil {
		misuse(op, "null type")
	}
	return t.unit.builder(op).Types
}

// String spells the type the way diagnostics print it: "const char *".
func (t QualType) String() string {
	if t.IsNull() {
		return "<null type>"
	}
	return t.interner("QualType.String").Spell(t.q)
}

// CanonicalString spells the type with every typedef expanded.
func (t QualType) CanonicalString() string {
	return t.Canonical().String()
}

// TypeKind is the class of this exact type; a typedef reports TypeTypedef.
func (t QualType) TypeKind() TypeKind {
	tt, ok := t.interner("QualType.TypeKind").Lookup(t.q.ID)
	if !ok {
		return TypeInvalid
	}
	return TypeKind(tt.Kind)
}

// CanonicalKind is the class after looking through typedefs.
func (t QualType) CanonicalKind() TypeKind {
	return TypeKind(t.interner("QualType.CanonicalKind").KindOf(t.q))
}

// Desugar strips typedef sugar off the top of the type only.
func (t QualType) Desugar() QualType {
	return QualType{t.unit, t.interner("QualType.Desugar").Desugar(t.q)}
}

// Canonical removes typedefs at every level.
func (t QualType) Canonical() QualType {
	return QualType{t.unit, t.interner("QualType.Canonical").Canonical(t.q)}
}

// Equal is canonical identity including qualifiers.
func (t QualType) Equal(o QualType) bool {
	if t.IsNull() || o.IsNull() {
		return t.IsNull() == o.IsNull()
	}
	if t.unit != o.unit {
		return false
	}
	return t.Canonical().q == o.Canonical().q
}

func (t QualType) IsInteger() bool { return t.interner("QualType.IsInteger").IsInteger(t.q) }
func (t QualType) IsSigned() bool  { return t.interner("QualType.IsSigned").IsSigned(t.q) }
func (t QualType) IsPointer() bool { return t.interner("QualType.IsPointer").IsPointer(t.q) }
func (t QualType) IsVoid() bool    { return t.interner("QualType.IsVoid").IsVoid(t.q) }

// Pointee is the pointed-to type of a pointer.
func (t QualType) Pointee() (QualType, bool) {
	p, ok := t.interner("QualType.Pointee").Pointee(t.q)
	return QualType{t.unit, p}, ok
}

// Element is the element type of an array.
func (t QualType) Element() (QualType, bool) {
	e, ok := t.interner("QualType.Element").Element(t.q)
	return QualType{t.unit, e}, ok
}

// ArraySize is the element count of a constant array.
func (t QualType) ArraySize() (uint64, bool) {
	tt, _ := t.interner("QualType.ArraySize").Underlying(t.q)
	if tt.Kind != types.KindConstantArray {
		return 0, false
	}
	return tt.Count, true
}

// ResultType is the return type of a function type.
func (t QualType) ResultType() (QualType, bool) {
	r, ok := t.interner("QualType.ResultType").Result(t.q)
	return QualType{t.unit, r}, ok
}

// ParamTypes lists the parameter types of a prototyped function type; K&R
// function types have none.
func (t QualType) ParamTypes() []QualType {
	in := t.interner("QualType.ParamTypes")
	fn, ok := in.FnInfo(in.Desugar(t.q).ID)
	if !ok {
		return nil
	}
	out := make([]QualType, len(fn.Params))
	for i, p := range fn.Params {
		out[i] = QualType{t.unit, p}
	}
	return out
}

// IsVariadic reports a prototype ending in `...`.
func (t QualType) IsVariadic() bool {
	in := t.interner("QualType.IsVariadic")
	fn, ok := in.FnInfo(in.Desugar(t.q).ID)
	return ok && fn.Variadic
}

// Size is sizeof in bytes; incomplete types have none.
func (t QualType) Size() (uint64, bool) { return t.interner("QualType.Size").SizeOf(t.q) }

// Align is _Alignof in bytes.
func (t QualType) Align() (uint64, bool) { return t.interner("QualType.Align").AlignOf(t.q) }

// Decl is the declaration behind a record, enum or typedef type.
func (t QualType) Decl() (Decl, bool) {
	in := t.interner("QualType.Decl")
	var id uint32
	if info, ok := in.Tag(t.q.ID); ok {
		id = info.Decl
	} else if info, ok := in.Typedef(t.q.ID); ok {
		id = info.Decl
	}
	h := declHandle(t.unit, ast.DeclID(id))
	return Decl{h}, !h.IsNull()
}
