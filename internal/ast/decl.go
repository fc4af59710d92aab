package ast

import (
	"cbridge/internal/apint"
	"cbridge/internal/source"
	"cbridge/internal/types"
)

// DeclFlags carries per-declaration bits.
type DeclFlags uint8

const (
	DeclImplicit DeclFlags = 1 << iota
	DeclInvalid
	DeclUsed
	DeclReferenced
)

// Decl is the common header of every declaration.
//
// Decls that live in a decl context are chained through Next; contexts keep
// First and Last so appends are O(1) and iteration runs forward only.
// Decls grouped by one DeclStmt are linked backwards through GroupPrev.
type Decl struct {
	Kind      DeclKind
	Flags     DeclFlags
	Loc       source.Span // name location, or the start for unnamed decls
	Span      source.Span
	Name      source.StringID
	Type      types.QualType
	Parent    DeclID // semantic decl context
	Next      DeclID
	Prev      DeclID // previous redeclaration of the same entity
	GroupPrev DeclID
	First     DeclID // decl contexts only
	Last      DeclID
	Payload   PayloadID
}

// IsImplicit reports compiler-synthesized declarations.
func (d *Decl) IsImplicit() bool { return d.Flags&DeclImplicit != 0 }

// FunctionData is the payload of DeclFunction.
type FunctionData struct {
	Params       List // into Decls.Params
	Body         StmtID
	Storage      StorageClass
	Inline       bool
	HasPrototype bool // written with a parameter type list
}

// VarData is the payload of DeclVar and DeclParmVar.
type VarData struct {
	Storage   StorageClass
	Init      StmtID
	FileScope bool
	Index     uint32 // parameter position for DeclParmVar
}

// FieldData is the payload of DeclField.
type FieldData struct {
	BitWidth StmtID
	Width    uint32
	Index    uint32
}

// RecordData is the payload of DeclRecord.
type RecordData struct {
	Tag       types.TagKind
	TagType   types.QualType
	Complete  bool
	Anonymous bool // unnamed member record that injects its fields
}

// EnumData is the payload of DeclEnum.
type EnumData struct {
	TagType  types.QualType
	IntType  types.QualType
	Complete bool
}

// EnumConstantData is the payload of DeclEnumConstant.
type EnumConstantData struct {
	Init  StmtID
	Value apint.APInt
}

// TypedefData is the payload of DeclTypedef; Decl.Type holds the typedef
// sugar type itself.
type TypedefData struct {
	Underlying types.QualType
}

// LabelData is the payload of DeclLabel.
type LabelData struct {
	Stmt StmtID
}

// StaticAssertData is the payload of DeclStaticAssert.
type StaticAssertData struct {
	Cond    StmtID
	Message StmtID
}

// Decls manages allocation of declarations.
type Decls struct {
	Arena         *Arena[Decl]
	Functions     *Arena[FunctionData]
	Vars          *Arena[VarData]
	Fields        *Arena[FieldData]
	Records       *Arena[RecordData]
	Enums         *Arena[EnumData]
	EnumConstants *Arena[EnumConstantData]
	Typedefs      *Arena[TypedefData]
	Labels        *Arena[LabelData]
	StaticAsserts *Arena[StaticAssertData]
	Params        *Arena[DeclID]
}

// NewDecls creates per-kind arenas with capHint capacity (1<<7 when zero).
func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Decls{
		Arena:         NewArena[Decl](capHint),
		Functions:     NewArena[FunctionData](capHint / 4),
		Vars:          NewArena[VarData](capHint),
		Fields:        NewArena[FieldData](capHint / 4),
		Records:       NewArena[RecordData](capHint / 8),
		Enums:         NewArena[EnumData](capHint / 8),
		EnumConstants: NewArena[EnumConstantData](capHint / 4),
		Typedefs:      NewArena[TypedefData](capHint / 4),
		Labels:        NewArena[LabelData](capHint / 8),
		StaticAsserts: NewArena[StaticAssertData](0),
		Params:        NewArena[DeclID](capHint),
	}
}

// New allocates a bare declaration header.
func (d *Decls) New(kind DeclKind, loc, span source.Span, name source.StringID, ty types.QualType) DeclID {
	return DeclID(d.Arena.Allocate(Decl{
		Kind: kind,
		Loc:  loc,
		Span: span,
		Name: name,
		Type: ty,
	}))
}

// Get returns the declaration header or nil.
func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

// Len returns the number of allocated declarations.
func (d *Decls) Len() uint32 { return d.Arena.Len() }

// NewFunction allocates a FunctionDecl together with its payload.
func (d *Decls) NewFunction(loc, span source.Span, name source.StringID, ty types.QualType, data FunctionData) DeclID {
	id := d.New(DeclFunction, loc, span, name, ty)
	d.Get(id).Payload = PayloadID(d.Functions.Allocate(data))
	return id
}

// NewVar allocates a VarDecl or ParmVarDecl.
func (d *Decls) NewVar(kind DeclKind, loc, span source.Span, name source.StringID, ty types.QualType, data VarData) DeclID {
	id := d.New(kind, loc, span, name, ty)
	d.Get(id).Payload = PayloadID(d.Vars.Allocate(data))
	return id
}

func (d *Decls) NewField(loc, span source.Span, name source.StringID, ty types.QualType, data FieldData) DeclID {
	id := d.New(DeclField, loc, span, name, ty)
	d.Get(id).Payload = PayloadID(d.Fields.Allocate(data))
	return id
}

func (d *Decls) NewRecord(loc, span source.Span, name source.StringID, data RecordData) DeclID {
	id := d.New(DeclRecord, loc, span, name, data.TagType)
	d.Get(id).Payload = PayloadID(d.Records.Allocate(data))
	return id
}

func (d *Decls) NewEnum(loc, span source.Span, name source.StringID, data EnumData) DeclID {
	id := d.New(DeclEnum, loc, span, name, data.TagType)
	d.Get(id).Payload = PayloadID(d.Enums.Allocate(data))
	return id
}

func (d *Decls) NewEnumConstant(loc, span source.Span, name source.StringID, ty types.QualType, data EnumConstantData) DeclID {
	id := d.New(DeclEnumConstant, loc, span, name, ty)
	d.Get(id).Payload = PayloadID(d.EnumConstants.Allocate(data))
	return id
}

func (d *Decls) NewTypedef(loc, span source.Span, name source.StringID, data TypedefData) DeclID {
	id := d.New(DeclTypedef, loc, span, name, types.QualType{})
	d.Get(id).Payload = PayloadID(d.Typedefs.Allocate(data))
	return id
}

func (d *Decls) NewLabel(loc source.Span, name source.StringID) DeclID {
	id := d.New(DeclLabel, loc, loc, name, types.QualType{})
	d.Get(id).Payload = PayloadID(d.Labels.Allocate(LabelData{}))
	return id
}

func (d *Decls) NewStaticAssert(span source.Span, data StaticAssertData) DeclID {
	id := d.New(DeclStaticAssert, span, span, source.NoStringID, types.QualType{})
	d.Get(id).Payload = PayloadID(d.StaticAsserts.Allocate(data))
	return id
}

func (d *Decls) payload(id DeclID, kind DeclKind) uint32 {
	decl := d.Get(id)
	if decl == nil || decl.Kind != kind {
		return 0
	}
	return uint32(decl.Payload)
}

// Function returns the payload of a FunctionDecl or nil.
func (d *Decls) Function(id DeclID) *FunctionData {
	return d.Functions.Get(d.payload(id, DeclFunction))
}

// Var returns the payload of a VarDecl or ParmVarDecl or nil.
func (d *Decls) Var(id DeclID) *VarData {
	decl := d.Get(id)
	if decl == nil || (decl.Kind != DeclVar && decl.Kind != DeclParmVar) {
		return nil
	}
	return d.Vars.Get(uint32(decl.Payload))
}

func (d *Decls) Field(id DeclID) *FieldData {
	return d.Fields.Get(d.payload(id, DeclField))
}

func (d *Decls) Record(id DeclID) *RecordData {
	return d.Records.Get(d.payload(id, DeclRecord))
}

func (d *Decls) Enum(id DeclID) *EnumData {
	return d.Enums.Get(d.payload(id, DeclEnum))
}

func (d *Decls) EnumConstant(id DeclID) *EnumConstantData {
	return d.EnumConstants.Get(d.payload(id, DeclEnumConstant))
}

func (d *Decls) Typedef(id DeclID) *TypedefData {
	return d.Typedefs.Get(d.payload(id, DeclTypedef))
}

func (d *Decls) Label(id DeclID) *LabelData {
	return d.Labels.Get(d.payload(id, DeclLabel))
}

func (d *Decls) StaticAssert(id DeclID) *StaticAssertData {
	return d.StaticAsserts.Get(d.payload(id, DeclStaticAssert))
}

// AddParams stores params contiguously and returns their window.
func (d *Decls) AddParams(params []DeclID) List {
	if len(params) == 0 {
		return List{}
	}
	var out List
	for i, p := range params {
		idx := d.Params.Allocate(p)
		if i == 0 {
			out.Start = idx
		}
	}
	out.Count = mustU32(len(params))
	return out
}

// Param returns the i-th element of a parameter window.
func (d *Decls) Param(l List, i uint32) DeclID {
	if i >= l.Count {
		return NoDeclID
	}
	return *d.Params.Get(l.Start + i)
}

// AddToContext appends child at the end of ctx's sibling chain.
func (d *Decls) AddToContext(ctx, child DeclID) {
	c := d.Get(ctx)
	ch := d.Get(child)
	ch.Parent = ctx
	ch.Next = NoDeclID
	if c.Last.IsValid() {
		d.Get(c.Last).Next = child
	} else {
		c.First = child
	}
	c.Last = child
}

// FirstChild starts the forward walk of a decl context.
func (d *Decls) FirstChild(ctx DeclID) DeclID {
	if c := d.Get(ctx); c != nil {
		return c.First
	}
	return NoDeclID
}

// NextSibling continues the forward walk; NoDeclID terminates it.
func (d *Decls) NextSibling(id DeclID) DeclID {
	if c := d.Get(id); c != nil {
		return c.Next
	}
	return NoDeclID
}
