package ast

import (
	"math/big"

	"cbridge/internal/apint"
	"cbridge/internal/literal"
	"cbridge/internal/source"
	"cbridge/internal/types"
)

// StmtFlags carries per-node bits.
type StmtFlags uint8

const (
	StmtImplicit StmtFlags = 1 << iota
	StmtInvalid
)

// Stmt is the common header of statements and expressions.
//
// Prev links a statement to its predecessor inside the enclosing compound
// body; compounds store only the tail, so bodies iterate in reverse.
type Stmt struct {
	Kind    StmtKind
	Flags   StmtFlags
	Value   ValueKind // expressions only
	Span    source.Span
	OpLoc   source.Span // operator or keyword location
	Type    types.QualType
	Prev    StmtID
	Payload PayloadID
}

// IsImplicit reports compiler-synthesized nodes.
func (s *Stmt) IsImplicit() bool { return s.Flags&StmtImplicit != 0 }

type CompoundData struct {
	Last  StmtID
	Count uint32
}

type DeclStmtData struct {
	Last  DeclID // via Decl.GroupPrev
	Count uint32
}

type IfData struct {
	Cond, Then, Else StmtID
	ElseLoc          source.Span
}

// LoopData serves while, do and switch (Cond, Body) and for (all four).
type LoopData struct {
	Init, Cond, Inc, Body StmtID
}

type CaseData struct {
	LHS, RHS, Sub StmtID
}

type LabelStmtData struct {
	Decl DeclID
	Sub  StmtID
}

type GotoData struct {
	Label DeclID
}

type ReturnData struct {
	Value StmtID
}

type IntegerData struct {
	Value apint.APInt
}

type FloatData struct {
	Value *big.Float
	Exact bool
}

type CharData struct {
	Encoding literal.Encoding
	Value    uint32
}

type StringData struct {
	Value literal.String
}

type PredefinedData struct {
	Kind PredefinedKind
	Name StmtID // the synthesized string literal
}

type DeclRefData struct {
	Decl DeclID
}

type UnaryData struct {
	Op  UnaryOp
	Sub StmtID
}

type BinaryData struct {
	Op       BinaryOp
	LHS, RHS StmtID
	// compound assignment only
	ComputationLHSType    types.QualType
	ComputationResultType types.QualType
}

type ConditionalData struct {
	Cond, True, False StmtID
}

type CastData struct {
	Kind    CastKind
	Sub     StmtID
	Written types.QualType // C-style casts
}

type CallData struct {
	Callee StmtID
	Args   List
}

type MemberData struct {
	Base   StmtID
	Member DeclID
	Arrow  bool
}

type SubscriptData struct {
	LHS, RHS StmtID
}

type InitListData struct {
	Inits List
}

type TraitData struct {
	Kind    TraitKind
	ArgType types.QualType
	ArgExpr StmtID
}

type VAArgData struct {
	Sub     StmtID
	Written types.QualType
}

type CompoundLiteralData struct {
	Init      StmtID
	FileScope bool
}

// Stmts manages allocation of statements and expressions.
type Stmts struct {
	Arena        *Arena[Stmt]
	Compounds    *Arena[CompoundData]
	DeclStmts    *Arena[DeclStmtData]
	Ifs          *Arena[IfData]
	Loops        *Arena[LoopData]
	Cases        *Arena[CaseData]
	LabelStmts   *Arena[LabelStmtData]
	Gotos        *Arena[GotoData]
	Returns      *Arena[ReturnData]
	Integers     *Arena[IntegerData]
	Floats       *Arena[FloatData]
	Chars        *Arena[CharData]
	Strings      *Arena[StringData]
	Predefineds  *Arena[PredefinedData]
	DeclRefs     *Arena[DeclRefData]
	Unaries      *Arena[UnaryData]
	Binaries     *Arena[BinaryData]
	Conditionals *Arena[ConditionalData]
	Casts        *Arena[CastData]
	Calls        *Arena[CallData]
	Members      *Arena[MemberData]
	Subscripts   *Arena[SubscriptData]
	InitLists    *Arena[InitListData]
	Traits       *Arena[TraitData]
	VAArgs       *Arena[VAArgData]
	CompoundLits *Arena[CompoundLiteralData]
	Exprs        *Arena[StmtID] // call arguments and initializer lists
}

// NewStmts creates per-kind arenas with capHint capacity (1<<8 when zero).
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 8
	return &Stmts{
		Arena:        NewArena[Stmt](capHint),
		Compounds:    NewArena[CompoundData](small),
		DeclStmts:    NewArena[DeclStmtData](small),
		Ifs:          NewArena[IfData](small),
		Loops:        NewArena[LoopData](small),
		Cases:        NewArena[CaseData](small),
		LabelStmts:   NewArena[LabelStmtData](0),
		Gotos:        NewArena[GotoData](0),
		Returns:      NewArena[ReturnData](small),
		Integers:     NewArena[IntegerData](capHint / 4),
		Floats:       NewArena[FloatData](0),
		Chars:        NewArena[CharData](small),
		Strings:      NewArena[StringData](small),
		Predefineds:  NewArena[PredefinedData](0),
		DeclRefs:     NewArena[DeclRefData](capHint / 4),
		Unaries:      NewArena[UnaryData](small),
		Binaries:     NewArena[BinaryData](capHint / 4),
		Conditionals: NewArena[ConditionalData](0),
		Casts:        NewArena[CastData](capHint / 4),
		Calls:        NewArena[CallData](small),
		Members:      NewArena[MemberData](small),
		Subscripts:   NewArena[SubscriptData](small),
		InitLists:    NewArena[InitListData](0),
		Traits:       NewArena[TraitData](0),
		VAArgs:       NewArena[VAArgData](0),
		CompoundLits: NewArena[CompoundLiteralData](0),
		Exprs:        NewArena[StmtID](capHint / 4),
	}
}

// New allocates a bare header; callers attach the payload.
func (s *Stmts) New(kind StmtKind, span source.Span) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:  kind,
		Span:  span,
		OpLoc: span.ZeroideToStart(),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) Len() uint32 { return s.Arena.Len() }

func (s *Stmts) attach(id StmtID, payload uint32) StmtID {
	s.Get(id).Payload = PayloadID(payload)
	return id
}

func (s *Stmts) NewNull(span source.Span) StmtID { return s.New(StmtNull, span) }

// NewCompound builds a compound body; items are linked through Stmt.Prev.
func (s *Stmts) NewCompound(span source.Span, items []StmtID) StmtID {
	data := CompoundData{Count: mustU32(len(items))}
	var prev StmtID
	for _, it := range items {
		s.Get(it).Prev = prev
		prev = it
	}
	data.Last = prev
	return s.attach(s.New(StmtCompound, span), s.Compounds.Allocate(data))
}

// NewDeclStmt groups decls; they are linked through Decl.GroupPrev.
func (s *Stmts) NewDeclStmt(span source.Span, decls *Decls, group []DeclID) StmtID {
	data := DeclStmtData{Count: mustU32(len(group))}
	var prev DeclID
	for _, d := range group {
		decls.Get(d).GroupPrev = prev
		prev = d
	}
	data.Last = prev
	return s.attach(s.New(StmtDecl, span), s.DeclStmts.Allocate(data))
}

func (s *Stmts) NewIf(span source.Span, data IfData) StmtID {
	return s.attach(s.New(StmtIf, span), s.Ifs.Allocate(data))
}

// NewLoop builds while, do, for and switch statements.
func (s *Stmts) NewLoop(kind StmtKind, span source.Span, data LoopData) StmtID {
	return s.attach(s.New(kind, span), s.Loops.Allocate(data))
}

// NewCase builds case and default labels.
func (s *Stmts) NewCase(kind StmtKind, span source.Span, data CaseData) StmtID {
	return s.attach(s.New(kind, span), s.Cases.Allocate(data))
}

func (s *Stmts) NewLabel(span source.Span, data LabelStmtData) StmtID {
	return s.attach(s.New(StmtLabel, span), s.LabelStmts.Allocate(data))
}

func (s *Stmts) NewGoto(span source.Span, label DeclID) StmtID {
	return s.attach(s.New(StmtGoto, span), s.Gotos.Allocate(GotoData{Label: label}))
}

func (s *Stmts) NewReturn(span source.Span, value StmtID) StmtID {
	return s.attach(s.New(StmtReturn, span), s.Returns.Allocate(ReturnData{Value: value}))
}

// NewExpr allocates an expression header with its type and category.
func (s *Stmts) NewExpr(kind StmtKind, span source.Span, ty types.QualType, vk ValueKind) StmtID {
	id := s.New(kind, span)
	st := s.Get(id)
	st.Type = ty
	st.Value = vk
	return id
}

func (s *Stmts) NewInteger(span source.Span, ty types.QualType, v apint.APInt) StmtID {
	return s.attach(s.NewExpr(ExprIntegerLiteral, span, ty, RValue), s.Integers.Allocate(IntegerData{Value: v}))
}

func (s *Stmts) NewFloat(span source.Span, ty types.QualType, data FloatData) StmtID {
	return s.attach(s.NewExpr(ExprFloatingLiteral, span, ty, RValue), s.Floats.Allocate(data))
}

func (s *Stmts) NewChar(span source.Span, ty types.QualType, data CharData) StmtID {
	return s.attach(s.NewExpr(ExprCharacterLiteral, span, ty, RValue), s.Chars.Allocate(data))
}

// NewString builds a string literal; string literals are lvalues.
func (s *Stmts) NewString(span source.Span, ty types.QualType, v literal.String) StmtID {
	return s.attach(s.NewExpr(ExprStringLiteral, span, ty, LValue), s.Strings.Allocate(StringData{Value: v}))
}

func (s *Stmts) NewPredefined(span source.Span, ty types.QualType, data PredefinedData) StmtID {
	return s.attach(s.NewExpr(ExprPredefined, span, ty, LValue), s.Predefineds.Allocate(data))
}

func (s *Stmts) NewDeclRef(span source.Span, ty types.QualType, vk ValueKind, decl DeclID) StmtID {
	return s.attach(s.NewExpr(ExprDeclRef, span, ty, vk), s.DeclRefs.Allocate(DeclRefData{Decl: decl}))
}

func (s *Stmts) NewParen(span source.Span, sub StmtID) StmtID {
	inner := s.Get(sub)
	return s.attach(s.NewExpr(ExprParen, span, inner.Type, inner.Value), s.Unaries.Allocate(UnaryData{Sub: sub}))
}

func (s *Stmts) NewUnary(span, opLoc source.Span, ty types.QualType, vk ValueKind, data UnaryData) StmtID {
	id := s.attach(s.NewExpr(ExprUnaryOperator, span, ty, vk), s.Unaries.Allocate(data))
	s.Get(id).OpLoc = opLoc
	return id
}

// NewBinary builds BinaryOperator or, for compound assignment opcodes,
// CompoundAssignOperator.
func (s *Stmts) NewBinary(span, opLoc source.Span, ty types.QualType, vk ValueKind, data BinaryData) StmtID {
	kind := ExprBinaryOperator
	if data.Op.IsCompoundAssignment() {
		kind = ExprCompoundAssignOperator
	}
	id := s.attach(s.NewExpr(kind, span, ty, vk), s.Binaries.Allocate(data))
	s.Get(id).OpLoc = opLoc
	return id
}

func (s *Stmts) NewConditional(span source.Span, ty types.QualType, data ConditionalData) StmtID {
	return s.attach(s.NewExpr(ExprConditionalOperator, span, ty, RValue), s.Conditionals.Allocate(data))
}

// NewImplicitCast wraps sub; the cast spans the same source as sub.
func (s *Stmts) NewImplicitCast(ty types.QualType, kind CastKind, sub StmtID) StmtID {
	inner := s.Get(sub)
	vk := RValue
	if kind == CastNoOp {
		vk = inner.Value
	}
	id := s.attach(s.NewExpr(ExprImplicitCast, inner.Span, ty, vk), s.Casts.Allocate(CastData{Kind: kind, Sub: sub}))
	s.Get(id).Flags |= StmtImplicit
	return id
}

func (s *Stmts) NewCStyleCast(span source.Span, ty types.QualType, data CastData) StmtID {
	return s.attach(s.NewExpr(ExprCStyleCast, span, ty, RValue), s.Casts.Allocate(data))
}

func (s *Stmts) NewCall(span source.Span, ty types.QualType, callee StmtID, args []StmtID) StmtID {
	data := CallData{Callee: callee, Args: s.AddExprs(args)}
	return s.attach(s.NewExpr(ExprCall, span, ty, RValue), s.Calls.Allocate(data))
}

func (s *Stmts) NewMember(span, opLoc source.Span, ty types.QualType, vk ValueKind, data MemberData) StmtID {
	id := s.attach(s.NewExpr(ExprMember, span, ty, vk), s.Members.Allocate(data))
	s.Get(id).OpLoc = opLoc
	return id
}

func (s *Stmts) NewSubscript(span source.Span, ty types.QualType, data SubscriptData) StmtID {
	return s.attach(s.NewExpr(ExprArraySubscript, span, ty, LValue), s.Subscripts.Allocate(data))
}

func (s *Stmts) NewInitList(span source.Span, ty types.QualType, inits []StmtID) StmtID {
	data := InitListData{Inits: s.AddExprs(inits)}
	return s.attach(s.NewExpr(ExprInitList, span, ty, RValue), s.InitLists.Allocate(data))
}

func (s *Stmts) NewImplicitValueInit(span source.Span, ty types.QualType) StmtID {
	id := s.NewExpr(ExprImplicitValueInit, span, ty, RValue)
	s.Get(id).Flags |= StmtImplicit
	return id
}

func (s *Stmts) NewTrait(span source.Span, ty types.QualType, data TraitData) StmtID {
	return s.attach(s.NewExpr(ExprUnaryExprOrTypeTrait, span, ty, RValue), s.Traits.Allocate(data))
}

func (s *Stmts) NewVAArg(span source.Span, ty types.QualType, data VAArgData) StmtID {
	return s.attach(s.NewExpr(ExprVAArg, span, ty, RValue), s.VAArgs.Allocate(data))
}

func (s *Stmts) NewCompoundLiteral(span source.Span, ty types.QualType, data CompoundLiteralData) StmtID {
	return s.attach(s.NewExpr(ExprCompoundLiteral, span, ty, LValue), s.CompoundLits.Allocate(data))
}

// NewStmtExpr wraps a compound statement used as a GNU statement expression.
func (s *Stmts) NewStmtExpr(span source.Span, ty types.QualType, body StmtID) StmtID {
	return s.attach(s.NewExpr(ExprStmt, span, ty, RValue), s.Unaries.Allocate(UnaryData{Sub: body}))
}

// AddExprs stores list contiguously and returns its window.
func (s *Stmts) AddExprs(list []StmtID) List {
	if len(list) == 0 {
		return List{}
	}
	var out List
	for i, e := range list {
		idx := s.Exprs.Allocate(e)
		if i == 0 {
			out.Start = idx
		}
	}
	out.Count = mustU32(len(list))
	return out
}

// ExprAt returns the i-th element of a list window.
func (s *Stmts) ExprAt(l List, i uint32) StmtID {
	if i >= l.Count {
		return NoStmtID
	}
	return *s.Exprs.Get(l.Start + i)
}
