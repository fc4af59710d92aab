package cnode

import (
	"fmt"
	"slices"

	"cbridge/internal/ast"
	"cbridge/internal/types"
)

// Decl is a handle to any declaration.
type Decl struct{ Handle }

func (Decl) accepts(h Handle) bool { return h.family == FamilyDecl }
func (Decl) wrap(h Handle) Decl    { return Decl{h} }

func (d Decl) AsDecl() Decl { return d }
func (Decl) isDecl()        {}

// Kind is the runtime kind of d.
func (d Decl) Kind() DeclKind {
	_, n := d.decl("Decl.Kind")
	return DeclKind(n.Kind)
}

// IsUsed reports declarations referenced by an evaluated expression.
func (d Decl) IsUsed() bool {
	_, n := d.decl("Decl.IsUsed")
	return n.Flags&ast.DeclUsed != 0
}

// NextDecl continues the forward sibling chain of the enclosing context.
func (d Decl) NextDecl() (Decl, bool) {
	_, n := d.decl("Decl.NextDecl")
	return optDecl(d.unit, n.Next)
}

// DeclContext returns the semantic parent. The translation unit has none.
func (d Decl) DeclContext() (DeclContext, bool) {
	_, n := d.decl("Decl.DeclContext")
	if !n.Parent.IsValid() {
		return DeclContext{}, false
	}
	return DeclContext{}.wrap(declHandle(d.unit, n.Parent)), true
}

// PreviousDecl returns the previous declaration of the same entity.
func (d Decl) PreviousDecl() (Decl, bool) {
	_, n := d.decl("Decl.PreviousDecl")
	return optDecl(d.unit, n.Prev)
}

// Redecls returns the redeclaration chain ending at d, oldest first.
func (d Decl) Redecls() []Decl {
	var out []Decl
	for cur, ok := d, true; ok; cur, ok = cur.PreviousDecl() {
		out = append(out, cur)
	}
	slices.Reverse(out)
	return out
}

func optDecl(u *Unit, id ast.DeclID) (Decl, bool) {
	if !id.IsValid() {
		return Decl{}, false
	}
	return Decl{declHandle(u, id)}, true
}

// contextDecls collects a context's children by walking the forward chain.
func contextDecls(h Handle, op string) []Decl {
	b, _ := h.decl(op)
	var out []Decl
	for id := b.Decls.FirstChild(h.declID()); id.IsValid(); id = b.Decls.NextSibling(id) {
		out = append(out, Decl{declHandle(h.unit, id)})
	}
	return out
}

func firstDecl(h Handle, op string) (Decl, bool) {
	b, _ := h.decl(op)
	return optDecl(h.unit, b.Decls.FirstChild(h.declID()))
}

// DeclContext is a declaration owning child declarations: the translation
// unit, functions, records and enums.
type DeclContext struct{ Decl }

func (DeclContext) accepts(h Handle) bool {
	k, ok := h.declKind()
	return ok && k.IsDeclContext()
}
func (DeclContext) wrap(h Handle) DeclContext { return DeclContext{Decl{h}} }

// Decls returns the children in source order.
func (c DeclContext) Decls() []Decl { return contextDecls(c.Handle, "DeclContext.Decls") }

// FirstDecl starts the sibling chain; continue with Decl.NextDecl.
func (c DeclContext) FirstDecl() (Decl, bool) { return firstDecl(c.Handle, "DeclContext.FirstDecl") }

// TranslationUnitDecl is the root context of a Unit.
type TranslationUnitDecl struct{ Decl }

func (TranslationUnitDecl) accepts(h Handle) bool {
	return declIn(h, ast.DeclTranslationUnit, ast.DeclTranslationUnit)
}
func (TranslationUnitDecl) wrap(h Handle) TranslationUnitDecl { return TranslationUnitDecl{Decl{h}} }

func (t TranslationUnitDecl) Decls() []Decl {
	return contextDecls(t.Handle, "TranslationUnitDecl.Decls")
}
func (t TranslationUnitDecl) FirstDecl() (Decl, bool) {
	return firstDecl(t.Handle, "TranslationUnitDecl.FirstDecl")
}

// StaticAssertDecl is _Static_assert at file or block scope.
type StaticAssertDecl struct{ Decl }

func (StaticAssertDecl) accepts(h Handle) bool {
	return declIn(h, ast.DeclStaticAssert, ast.DeclStaticAssert)
}
func (StaticAssertDecl) wrap(h Handle) StaticAssertDecl { return StaticAssertDecl{Decl{h}} }

func (s StaticAssertDecl) AssertExpr() Expr {
	b, _ := s.decl("StaticAssertDecl.AssertExpr")
	return exprOf(s.unit, b.Decls.StaticAssert(s.declID()).Cond)
}

// Message is absent for the C23 one-argument form.
func (s StaticAssertDecl) Message() (StringLiteral, bool) {
	b, _ := s.decl("StaticAssertDecl.Message")
	return optStmt[StringLiteral](s.unit, b.Decls.StaticAssert(s.declID()).Message)
}

// NamedDecl is a declaration with a name; the name is empty for anonymous
// records, enums and unnamed parameters.
type NamedDecl struct{ Decl }

func (NamedDecl) accepts(h Handle) bool   { return declIn(h, ast.FirstNamedDecl, ast.LastNamedDecl) }
func (NamedDecl) wrap(h Handle) NamedDecl { return NamedDecl{Decl{h}} }
func (n NamedDecl) Name() string {
	b, _ := n.decl("NamedDecl.Name")
	return b.Name(n.declID())
}

// LabelDecl is the declaration behind a label and the gotos naming it.
type LabelDecl struct{ NamedDecl }

func (LabelDecl) accepts(h Handle) bool   { return declIn(h, ast.DeclLabel, ast.DeclLabel) }
func (LabelDecl) wrap(h Handle) LabelDecl { return LabelDecl{NamedDecl{}.wrap(h)} }

// Stmt is the labelled statement; absent only for labels that were never
// defined.
func (l LabelDecl) Stmt() (LabelStmt, bool) {
	b, _ := l.decl("LabelDecl.Stmt")
	return optStmt[LabelStmt](l.unit, b.Decls.Label(l.declID()).Stmt)
}

// TypeDecl declares a type: typedefs and tags.
type TypeDecl struct{ NamedDecl }

func (TypeDecl) accepts(h Handle) bool  { return declIn(h, ast.FirstTypeDecl, ast.LastTypeDecl) }
func (TypeDecl) wrap(h Handle) TypeDecl { return TypeDecl{NamedDecl{}.wrap(h)} }

// TypedefDecl is `typedef T name;`.
type TypedefDecl struct{ TypeDecl }

func (TypedefDecl) accepts(h Handle) bool     { return declIn(h, ast.DeclTypedef, ast.DeclTypedef) }
func (TypedefDecl) wrap(h Handle) TypedefDecl { return TypedefDecl{TypeDecl{}.wrap(h)} }

// UnderlyingType is the aliased type.
func (t TypedefDecl) UnderlyingType() QualType {
	b, _ := t.decl("TypedefDecl.UnderlyingType")
	return QualType{t.unit, b.Decls.Typedef(t.declID()).Underlying}
}

// TypeForDecl is the typedef's own sugar type.
func (t TypedefDecl) TypeForDecl() QualType {
	_, n := t.decl("TypedefDecl.TypeForDecl")
	return QualType{t.unit, n.Type}
}

// TagDecl is a struct, union or enum declaration.
type TagDecl struct{ TypeDecl }

func (TagDecl) accepts(h Handle) bool { return declIn(h, ast.FirstTagDecl, ast.LastTagDecl) }
func (TagDecl) wrap(h Handle) TagDecl { return TagDecl{TypeDecl{}.wrap(h)} }

// TagKindName is "struct", "union" or "enum".
func (t TagDecl) TagKindName() string {
	b, n := t.decl("TagDecl.TagKindName")
	if n.Kind == ast.DeclEnum {
		return types.TagEnum.String()
	}
	return b.Decls.Record(t.declID()).Tag.String()
}

// IsCompleteDefinition reports a tag declared with its body.
func (t TagDecl) IsCompleteDefinition() bool {
	b, n := t.decl("TagDecl.IsCompleteDefinition")
	if n.Kind == ast.DeclEnum {
		return b.Decls.Enum(t.declID()).Complete
	}
	return b.Decls.Record(t.declID()).Complete
}

// TypeForDecl is the record or enum type the tag declares.
func (t TagDecl) TypeForDecl() QualType {
	b, n := t.decl("TagDecl.TypeForDecl")
	if n.Kind == ast.DeclEnum {
		return QualType{t.unit, b.Decls.Enum(t.declID()).TagType}
	}
	return QualType{t.unit, b.Decls.Record(t.declID()).TagType}
}

// RecordDecl is a struct or union.
type RecordDecl struct{ TagDecl }

func (RecordDecl) accepts(h Handle) bool    { return declIn(h, ast.DeclRecord, ast.DeclRecord) }
func (RecordDecl) wrap(h Handle) RecordDecl { return RecordDecl{TagDecl{}.wrap(h)} }

func (r RecordDecl) data(op string) *ast.RecordData {
	b, _ := r.decl(op)
	return b.Decls.Record(r.declID())
}

func (r RecordDecl) IsStruct() bool { return r.data("RecordDecl.IsStruct").Tag == types.TagStruct }
func (r RecordDecl) IsUnion() bool  { return r.data("RecordDecl.IsUnion").Tag == types.TagUnion }

// IsAnonymousStructOrUnion reports an unnamed member record whose fields are
// injected into the enclosing record.
func (r RecordDecl) IsAnonymousStructOrUnion() bool {
	return r.data("RecordDecl.IsAnonymousStructOrUnion").Anonymous
}

func (r RecordDecl) Decls() []Decl { return contextDecls(r.Handle, "RecordDecl.Decls") }
func (r RecordDecl) FirstDecl() (Decl, bool) {
	return firstDecl(r.Handle, "RecordDecl.FirstDecl")
}

// Fields returns the fields in declaration order, skipping nested tags.
func (r RecordDecl) Fields() []FieldDecl {
	var out []FieldDecl
	for _, d := range contextDecls(r.Handle, "RecordDecl.Fields") {
		if f, ok := As[FieldDecl](d); ok {
			out = append(out, f)
		}
	}
	return out
}

// FirstField is absent for records without fields.
func (r RecordDecl) FirstField() (FieldDecl, bool) {
	b, _ := r.decl("RecordDecl.FirstField")
	for id := b.Decls.FirstChild(r.declID()); id.IsValid(); id = b.Decls.NextSibling(id) {
		if b.Decls.Get(id).Kind == ast.DeclField {
			return FieldDecl{}.wrap(declHandle(r.unit, id)), true
		}
	}
	return FieldDecl{}, false
}

// EnumDecl is an enum.
type EnumDecl struct{ TagDecl }

func (EnumDecl) accepts(h Handle) bool  { return declIn(h, ast.DeclEnum, ast.DeclEnum) }
func (EnumDecl) wrap(h Handle) EnumDecl { return EnumDecl{TagDecl{}.wrap(h)} }

func (e EnumDecl) Decls() []Decl           { return contextDecls(e.Handle, "EnumDecl.Decls") }
func (e EnumDecl) FirstDecl() (Decl, bool) { return firstDecl(e.Handle, "EnumDecl.FirstDecl") }

// Enumerators returns the constants in declaration order.
func (e EnumDecl) Enumerators() []EnumConstantDecl {
	decls := contextDecls(e.Handle, "EnumDecl.Enumerators")
	out := make([]EnumConstantDecl, 0, len(decls))
	for _, d := range decls {
		out = append(out, EnumConstantDecl{}.wrap(d.Handle))
	}
	return out
}

// IntegerType is the underlying integer type; null until the enum is complete.
func (e EnumDecl) IntegerType() QualType {
	b, _ := e.decl("EnumDecl.IntegerType")
	return QualType{e.unit, b.Decls.Enum(e.declID()).IntType}
}

// ValueDecl is a declaration that has a type and names a value.
type ValueDecl struct{ NamedDecl }

func (ValueDecl) accepts(h Handle) bool   { return declIn(h, ast.FirstValueDecl, ast.LastValueDecl) }
func (ValueDecl) wrap(h Handle) ValueDecl { return ValueDecl{NamedDecl{}.wrap(h)} }

// Type is the declared type.
func (v ValueDecl) Type() QualType {
	_, n := v.decl("ValueDecl.Type")
	return QualType{v.unit, n.Type}
}

// EnumConstantDecl is one enumerator.
type EnumConstantDecl struct{ ValueDecl }

func (EnumConstantDecl) accepts(h Handle) bool {
	return declIn(h, ast.DeclEnumConstant, ast.DeclEnumConstant)
}
func (EnumConstantDecl) wrap(h Handle) EnumConstantDecl { return EnumConstantDecl{ValueDecl{}.wrap(h)} }

func (e EnumConstantDecl) HasInitExpr() bool {
	b, _ := e.decl("EnumConstantDecl.HasInitExpr")
	return b.Decls.EnumConstant(e.declID()).Init.IsValid()
}

// InitExpr is the written `= value`.
func (e EnumConstantDecl) InitExpr() (Expr, bool) {
	b, _ := e.decl("EnumConstantDecl.InitExpr")
	return optStmt[Expr](e.unit, b.Decls.EnumConstant(e.declID()).Init)
}

// Value is the evaluated constant.
func (e EnumConstantDecl) Value() Int {
	b, n := e.decl("EnumConstantDecl.Value")
	return projectInt(b.Decls.EnumConstant(e.declID()).Value, b.Types.IsSigned(n.Type))
}

// DeclaratorDecl is a value declared through a declarator: fields,
// functions and variables.
type DeclaratorDecl struct{ ValueDecl }

func (DeclaratorDecl) accepts(h Handle) bool {
	return declIn(h, ast.FirstDeclaratorDecl, ast.LastDeclaratorDecl)
}
func (DeclaratorDecl) wrap(h Handle) DeclaratorDecl { return DeclaratorDecl{ValueDecl{}.wrap(h)} }

// FieldDecl is a struct or union member.
type FieldDecl struct{ DeclaratorDecl }

func (FieldDecl) accepts(h Handle) bool   { return declIn(h, ast.DeclField, ast.DeclField) }
func (FieldDecl) wrap(h Handle) FieldDecl { return FieldDecl{DeclaratorDecl{}.wrap(h)} }

func (f FieldDecl) data(op string) *ast.FieldData {
	b, _ := f.decl(op)
	return b.Decls.Field(f.declID())
}

func (f FieldDecl) HasBitWidth() bool {
	return f.data("FieldDecl.HasBitWidth").BitWidth.IsValid()
}

// BitWidth is the width expression of a bit-field.
func (f FieldDecl) BitWidth() (Expr, bool) {
	return optStmt[Expr](f.unit, f.data("FieldDecl.BitWidth").BitWidth)
}

// BitWidthValue is the evaluated width of a bit-field.
func (f FieldDecl) BitWidthValue() (uint32, bool) {
	fd := f.data("FieldDecl.BitWidthValue")
	return fd.Width, fd.BitWidth.IsValid()
}

// Index is the position among the record's fields.
func (f FieldDecl) Index() int { return int(f.data("FieldDecl.Index").Index) }

// Parent is the record that declares the field.
func (f FieldDecl) Parent() RecordDecl {
	_, n := f.decl("FieldDecl.Parent")
	return RecordDecl{}.wrap(declHandle(f.unit, n.Parent))
}

// FunctionDecl is a function declaration or definition.
type FunctionDecl struct{ DeclaratorDecl }

func (FunctionDecl) accepts(h Handle) bool      { return declIn(h, ast.DeclFunction, ast.DeclFunction) }
func (FunctionDecl) wrap(h Handle) FunctionDecl { return FunctionDecl{DeclaratorDecl{}.wrap(h)} }

func (f FunctionDecl) data(op string) (*ast.Builder, *ast.FunctionData) {
	b, _ := f.decl(op)
	return b, b.Decls.Function(f.declID())
}

func (f FunctionDecl) NumParams() int {
	_, fd := f.data("FunctionDecl.NumParams")
	return int(fd.Params.Count)
}

// Param returns the i-th parameter; i must be in [0, NumParams).
func (f FunctionDecl) Param(i int) ParmVarDecl {
	b, fd := f.data("FunctionDecl.Param")
	checkIndex("FunctionDecl.Param", i, int(fd.Params.Count))
	return ParmVarDecl{}.wrap(declHandle(f.unit, b.Decls.Param(fd.Params, uint32(i)))) //nolint:gosec // G115: i checked above.
}

func (f FunctionDecl) Params() []ParmVarDecl {
	b, fd := f.data("FunctionDecl.Params")
	out := make([]ParmVarDecl, fd.Params.Count)
	for i := range out {
		out[i] = ParmVarDecl{}.wrap(declHandle(f.unit, b.Decls.Param(fd.Params, uint32(i)))) //nolint:gosec // G115: bounded by Count.
	}
	return out
}

func (f FunctionDecl) ReturnType() QualType {
	rt, _ := f.Type().ResultType()
	return rt
}

// HasBody reports whether this declaration is the definition.
func (f FunctionDecl) HasBody() bool {
	_, fd := f.data("FunctionDecl.HasBody")
	return fd.Body.IsValid()
}

func (f FunctionDecl) Body() (CompoundStmt, bool) {
	_, fd := f.data("FunctionDecl.Body")
	return optStmt[CompoundStmt](f.unit, fd.Body)
}

// IsDefinition is HasBody under clang's name.
func (f FunctionDecl) IsDefinition() bool { return f.HasBody() }

// Definition finds the defining declaration among f and its previous
// declarations.
func (f FunctionDecl) Definition() (FunctionDecl, bool) {
	for _, d := range f.Redecls() {
		if fn, ok := As[FunctionDecl](d); ok && fn.HasBody() {
			return fn, true
		}
	}
	return FunctionDecl{}, false
}

func (f FunctionDecl) StorageClass() StorageClass {
	_, fd := f.data("FunctionDecl.StorageClass")
	return StorageClass(fd.Storage)
}

func (f FunctionDecl) IsVariadic() bool { return f.Type().IsVariadic() }

func (f FunctionDecl) IsInline() bool {
	_, fd := f.data("FunctionDecl.IsInline")
	return fd.Inline
}

// HasPrototype reports a function written with a parameter type list.
func (f FunctionDecl) HasPrototype() bool {
	_, fd := f.data("FunctionDecl.HasPrototype")
	return fd.HasPrototype
}

// Decls returns parameters, locals and labels owned by the function.
func (f FunctionDecl) Decls() []Decl { return contextDecls(f.Handle, "FunctionDecl.Decls") }
func (f FunctionDecl) FirstDecl() (Decl, bool) {
	return firstDecl(f.Handle, "FunctionDecl.FirstDecl")
}

// VarDecl is a variable at file or block scope.
type VarDecl struct{ DeclaratorDecl }

func (VarDecl) accepts(h Handle) bool { return declIn(h, ast.FirstVarDecl, ast.LastVarDecl) }
func (VarDecl) wrap(h Handle) VarDecl { return VarDecl{DeclaratorDecl{}.wrap(h)} }

func (v VarDecl) data(op string) *ast.VarData {
	b, _ := v.decl(op)
	return b.Decls.Var(v.declID())
}

func (v VarDecl) StorageClass() StorageClass {
	return StorageClass(v.data("VarDecl.StorageClass").Storage)
}

// HasInit reports an initializer; it is true exactly when Init succeeds.
func (v VarDecl) HasInit() bool { return v.data("VarDecl.HasInit").Init.IsValid() }

func (v VarDecl) Init() (Expr, bool) {
	return optStmt[Expr](v.unit, v.data("VarDecl.Init").Init)
}

// IsFileScope reports variables declared outside any function.
func (v VarDecl) IsFileScope() bool { return v.data("VarDecl.IsFileScope").FileScope }

// HasGlobalStorage reports static storage duration.
func (v VarDecl) HasGlobalStorage() bool {
	vd := v.data("VarDecl.HasGlobalStorage")
	return vd.FileScope || vd.Storage == ast.SCStatic || vd.Storage == ast.SCExtern
}

// ParmVarDecl is a function parameter.
type ParmVarDecl struct{ VarDecl }

func (ParmVarDecl) accepts(h Handle) bool     { return declIn(h, ast.DeclParmVar, ast.DeclParmVar) }
func (ParmVarDecl) wrap(h Handle) ParmVarDecl { return ParmVarDecl{VarDecl{}.wrap(h)} }

// Index is the parameter position.
func (p ParmVarDecl) Index() int { return int(p.data("ParmVarDecl.Index").Index) }

// StorageClass is the written storage-class specifier of a function or
// variable. SCNone is a regular value, not a default for other kinds.
type StorageClass uint8

const (
	SCNone     = StorageClass(ast.SCNone)
	SCExtern   = StorageClass(ast.SCExtern)
	SCStatic   = StorageClass(ast.SCStatic)
	SCAuto     = StorageClass(ast.SCAuto)
	SCRegister = StorageClass(ast.SCRegister)
)

// String returns "none", "extern", "static", "auto" or "register".
func (sc StorageClass) String() string { return ast.StorageClass(sc).String() }

// StorageClassOf answers for a generic declaration. Declarations other than
// functions and variables carry no storage class and yield an error wrapping
// ErrKindMismatch.
func StorageClassOf(d Decl) (StorageClass, error) {
	switch n := d.Specific().(type) {
	case FunctionDecl:
		return n.StorageClass(), nil
	case VarDecl:
		return n.StorageClass(), nil
	case ParmVarDecl:
		return n.StorageClass(), nil
	}
	return SCNone, fmt.Errorf("%w: %s declaration has no storage class", ErrKindMismatch, d.KindName())
}

