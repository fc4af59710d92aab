package cnode

import (
	"cbridge/internal/ast"
	"cbridge/internal/literal"
)

// Expr is a handle to any expression.
type Expr struct{ Stmt }

func (Expr) accepts(h Handle) bool { return stmtIn(h, ast.FirstExpr, ast.LastExpr) }
func (Expr) wrap(h Handle) Expr    { return Expr{Stmt{h}} }

func exprOf(u *Unit, id ast.StmtID) Expr { return Expr{Stmt{stmtHandle(u, id)}} }

// Type is the type of the expression's value.
func (e Expr) Type() QualType {
	_, n := e.stmt("Expr.Type")
	return QualType{e.unit, n.Type}
}

// IsLValue reports an lvalue; everything else is an rvalue.
func (e Expr) IsLValue() bool {
	_, n := e.stmt("Expr.IsLValue")
	return n.Value == ast.LValue
}

// IgnoreParenImpCasts strips parentheses and implicit casts.
func (e Expr) IgnoreParenImpCasts() Expr {
	b, _ := e.stmt("Expr.IgnoreParenImpCasts")
	return exprOf(e.unit, b.Stmts.IgnoreParenImpCasts(e.stmtID()))
}

// IntegerLiteral is an integer constant.
type IntegerLiteral struct{ Expr }

func (IntegerLiteral) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprIntegerLiteral, ast.ExprIntegerLiteral)
}
func (IntegerLiteral) wrap(h Handle) IntegerLiteral { return IntegerLiteral{Expr{}.wrap(h)} }

// Value projects the literal, reading it with its type's signedness.
func (l IntegerLiteral) Value() Int {
	b, n := l.stmt("IntegerLiteral.Value")
	return projectInt(b.Stmts.Integer(l.stmtID()).Value, b.Types.IsSigned(n.Type))
}

// FloatingLiteral is a floating constant.
type FloatingLiteral struct{ Expr }

func (FloatingLiteral) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprFloatingLiteral, ast.ExprFloatingLiteral)
}
func (FloatingLiteral) wrap(h Handle) FloatingLiteral { return FloatingLiteral{Expr{}.wrap(h)} }

// Value is the nearest float64; long double literals lose precision.
func (l FloatingLiteral) Value() float64 {
	b, _ := l.stmt("FloatingLiteral.Value")
	v := b.Stmts.Float(l.stmtID()).Value
	if v == nil {
		return 0
	}
	f, _ := v.Float64()
	return f
}

// IsExact reports a literal represented exactly in its own type.
func (l FloatingLiteral) IsExact() bool {
	b, _ := l.stmt("FloatingLiteral.IsExact")
	return b.Stmts.Float(l.stmtID()).Exact
}

// Encoding is the prefix of a character or string literal.
type Encoding uint8

const (
	EncodingAscii = Encoding(literal.EncAscii) // no prefix
	EncodingWide  = Encoding(literal.EncWide)  // L
	EncodingUTF8  = Encoding(literal.EncUTF8)  // u8
	EncodingUTF16 = Encoding(literal.EncUTF16) // u
	EncodingUTF32 = Encoding(literal.EncUTF32) // U
)

func (e Encoding) String() string {
	switch literal.Encoding(e) {
	case literal.EncWide:
		return "wide"
	case literal.EncUTF8:
		return "utf8"
	case literal.EncUTF16:
		return "utf16"
	case literal.EncUTF32:
		return "utf32"
	}
	return "ascii"
}

// CharacterLiteral is a character constant.
type CharacterLiteral struct{ Expr }

func (CharacterLiteral) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprCharacterLiteral, ast.ExprCharacterLiteral)
}
func (CharacterLiteral) wrap(h Handle) CharacterLiteral { return CharacterLiteral{Expr{}.wrap(h)} }

func (l CharacterLiteral) CharKind() Encoding {
	b, _ := l.stmt("CharacterLiteral.CharKind")
	return Encoding(b.Stmts.Char(l.stmtID()).Encoding)
}

// Value is the code unit value.
func (l CharacterLiteral) Value() uint32 {
	b, _ := l.stmt("CharacterLiteral.Value")
	return b.Stmts.Char(l.stmtID()).Value
}

// StringLiteral is a string constant after concatenation of adjacent
// literals, without the terminating null.
type StringLiteral struct{ Expr }

func (StringLiteral) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprStringLiteral, ast.ExprStringLiteral)
}
func (StringLiteral) wrap(h Handle) StringLiteral { return StringLiteral{Expr{}.wrap(h)} }

func (l StringLiteral) data(op string) literal.String {
	b, _ := l.stmt(op)
	return b.Stmts.String(l.stmtID()).Value
}

// String decodes the literal into a Go string.
func (l StringLiteral) String() string { return l.data("StringLiteral.String").Text() }

// Bytes is the literal in its target layout, little-endian code units.
func (l StringLiteral) Bytes() []byte { return l.data("StringLiteral.Bytes").Bytes() }

func (l StringLiteral) StringKind() Encoding {
	return Encoding(l.data("StringLiteral.StringKind").Encoding)
}

// Length is the number of code units.
func (l StringLiteral) Length() int { return l.data("StringLiteral.Length").Len() }

// PredefinedExpr is __func__ or one of its GNU spellings.
type PredefinedExpr struct{ Expr }

func (PredefinedExpr) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprPredefined, ast.ExprPredefined)
}
func (PredefinedExpr) wrap(h Handle) PredefinedExpr { return PredefinedExpr{Expr{}.wrap(h)} }

// IdentKindName is "__func__", "__FUNCTION__" or "__PRETTY_FUNCTION__".
func (p PredefinedExpr) IdentKindName() string {
	b, _ := p.stmt("PredefinedExpr.IdentKindName")
	return b.Stmts.Predefined(p.stmtID()).Kind.String()
}

// FunctionName is the synthesized string holding the function name.
func (p PredefinedExpr) FunctionName() (StringLiteral, bool) {
	b, _ := p.stmt("PredefinedExpr.FunctionName")
	return optStmt[StringLiteral](p.unit, b.Stmts.Predefined(p.stmtID()).Name)
}

// DeclRefExpr names a variable, function, parameter or enumerator.
type DeclRefExpr struct{ Expr }

func (DeclRefExpr) accepts(h Handle) bool     { return stmtIn(h, ast.ExprDeclRef, ast.ExprDeclRef) }
func (DeclRefExpr) wrap(h Handle) DeclRefExpr { return DeclRefExpr{Expr{}.wrap(h)} }

func (r DeclRefExpr) Decl() ValueDecl {
	b, _ := r.stmt("DeclRefExpr.Decl")
	return ValueDecl{}.wrap(declHandle(r.unit, b.Stmts.DeclRef(r.stmtID()).Decl))
}

// ParenExpr is `(sub)`.
type ParenExpr struct{ Expr }

func (ParenExpr) accepts(h Handle) bool   { return stmtIn(h, ast.ExprParen, ast.ExprParen) }
func (ParenExpr) wrap(h Handle) ParenExpr { return ParenExpr{Expr{}.wrap(h)} }

func (p ParenExpr) SubExpr() Expr {
	b, _ := p.stmt("ParenExpr.SubExpr")
	return exprOf(p.unit, b.Stmts.Unary(p.stmtID()).Sub)
}

// UnaryOpcode is the operator of a UnaryOperator.
type UnaryOpcode uint8

const (
	UOPostInc   = UnaryOpcode(ast.UnaryPostInc)
	UOPostDec   = UnaryOpcode(ast.UnaryPostDec)
	UOPreInc    = UnaryOpcode(ast.UnaryPreInc)
	UOPreDec    = UnaryOpcode(ast.UnaryPreDec)
	UOAddrOf    = UnaryOpcode(ast.UnaryAddrOf)
	UODeref     = UnaryOpcode(ast.UnaryDeref)
	UOPlus      = UnaryOpcode(ast.UnaryPlus)
	UOMinus     = UnaryOpcode(ast.UnaryMinus)
	UONot       = UnaryOpcode(ast.UnaryNot)
	UOLNot      = UnaryOpcode(ast.UnaryLNot)
	UOReal      = UnaryOpcode(ast.UnaryReal)
	UOImag      = UnaryOpcode(ast.UnaryImag)
	UOExtension = UnaryOpcode(ast.UnaryExtension)
)

// String is the operator spelling.
func (op UnaryOpcode) String() string { return ast.UnaryOp(op).String() }

// UnaryOperator is a prefix or postfix operator applied to one operand.
type UnaryOperator struct{ Expr }

func (UnaryOperator) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprUnaryOperator, ast.ExprUnaryOperator)
}
func (UnaryOperator) wrap(h Handle) UnaryOperator { return UnaryOperator{Expr{}.wrap(h)} }

func (u UnaryOperator) data(op string) *ast.UnaryData {
	b, _ := u.stmt(op)
	return b.Stmts.Unary(u.stmtID())
}

func (u UnaryOperator) Opcode() UnaryOpcode { return UnaryOpcode(u.data("UnaryOperator.Opcode").Op) }
func (u UnaryOperator) OpcodeStr() string   { return u.data("UnaryOperator.OpcodeStr").Op.String() }
func (u UnaryOperator) IsPostfix() bool     { return u.data("UnaryOperator.IsPostfix").Op.IsPostfix() }
func (u UnaryOperator) IsPrefix() bool      { return !u.IsPostfix() }
func (u UnaryOperator) SubExpr() Expr       { return exprOf(u.unit, u.data("UnaryOperator.SubExpr").Sub) }

// BinaryOpcode is the operator of a BinaryOperator.
type BinaryOpcode uint8

const (
	BOMul       = BinaryOpcode(ast.BinaryMul)
	BODiv       = BinaryOpcode(ast.BinaryDiv)
	BORem       = BinaryOpcode(ast.BinaryRem)
	BOAdd       = BinaryOpcode(ast.BinaryAdd)
	BOSub       = BinaryOpcode(ast.BinarySub)
	BOShl       = BinaryOpcode(ast.BinaryShl)
	BOShr       = BinaryOpcode(ast.BinaryShr)
	BOLT        = BinaryOpcode(ast.BinaryLT)
	BOGT        = BinaryOpcode(ast.BinaryGT)
	BOLE        = BinaryOpcode(ast.BinaryLE)
	BOGE        = BinaryOpcode(ast.BinaryGE)
	BOEQ        = BinaryOpcode(ast.BinaryEQ)
	BONE        = BinaryOpcode(ast.BinaryNE)
	BOAnd       = BinaryOpcode(ast.BinaryAnd)
	BOXor       = BinaryOpcode(ast.BinaryXor)
	BOOr        = BinaryOpcode(ast.BinaryOr)
	BOLAnd      = BinaryOpcode(ast.BinaryLAnd)
	BOLOr       = BinaryOpcode(ast.BinaryLOr)
	BOAssign    = BinaryOpcode(ast.BinaryAssign)
	BOMulAssign = BinaryOpcode(ast.BinaryMulAssign)
	BODivAssign = BinaryOpcode(ast.BinaryDivAssign)
	BORemAssign = BinaryOpcode(ast.BinaryRemAssign)
	BOAddAssign = BinaryOpcode(ast.BinaryAddAssign)
	BOSubAssign = BinaryOpcode(ast.BinarySubAssign)
	BOShlAssign = BinaryOpcode(ast.BinaryShlAssign)
	BOShrAssign = BinaryOpcode(ast.BinaryShrAssign)
	BOAndAssign = BinaryOpcode(ast.BinaryAndAssign)
	BOXorAssign = BinaryOpcode(ast.BinaryXorAssign)
	BOOrAssign  = BinaryOpcode(ast.BinaryOrAssign)
	BOComma     = BinaryOpcode(ast.BinaryComma)
)

// String is the operator spelling.
func (op BinaryOpcode) String() string { return ast.BinaryOp(op).String() }

// BinaryOperator is an infix operator; compound assignments are the
// CompoundAssignOperator subtype.
type BinaryOperator struct{ Expr }

func (BinaryOperator) accepts(h Handle) bool {
	return stmtIn(h, ast.FirstBinaryOperator, ast.LastBinaryOperator)
}
func (BinaryOperator) wrap(h Handle) BinaryOperator { return BinaryOperator{Expr{}.wrap(h)} }

func (o BinaryOperator) data(op string) *ast.BinaryData {
	b, _ := o.stmt(op)
	return b.Stmts.Binary(o.stmtID())
}

func (o BinaryOperator) Opcode() BinaryOpcode {
	return BinaryOpcode(o.data("BinaryOperator.Opcode").Op)
}
func (o BinaryOperator) OpcodeStr() string { return o.data("BinaryOperator.OpcodeStr").Op.String() }
func (o BinaryOperator) LHS() Expr         { return exprOf(o.unit, o.data("BinaryOperator.LHS").LHS) }
func (o BinaryOperator) RHS() Expr         { return exprOf(o.unit, o.data("BinaryOperator.RHS").RHS) }

// IsAssignmentOp reports `=` and the compound assignments.
func (o BinaryOperator) IsAssignmentOp() bool {
	return o.data("BinaryOperator.IsAssignmentOp").Op.IsAssignment()
}

func (o BinaryOperator) IsCompoundAssignmentOp() bool {
	return o.data("BinaryOperator.IsCompoundAssignmentOp").Op.IsCompoundAssignment()
}

// IsComparisonOp reports the relational and equality operators.
func (o BinaryOperator) IsComparisonOp() bool {
	return o.data("BinaryOperator.IsComparisonOp").Op.IsComparison()
}

// OpLoc is the position of the operator token.
func (o BinaryOperator) OpLoc() (SourceLocation, bool) {
	_, n := o.stmt("BinaryOperator.OpLoc")
	return presumed(o.unit.fs, n.OpLoc)
}

// CompoundAssignOperator is `a op= b`.
type CompoundAssignOperator struct{ BinaryOperator }

func (CompoundAssignOperator) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprCompoundAssignOperator, ast.ExprCompoundAssignOperator)
}
func (CompoundAssignOperator) wrap(h Handle) CompoundAssignOperator {
	return CompoundAssignOperator{BinaryOperator{}.wrap(h)}
}

// ComputationLHSType is the type the left operand is converted to for `op`.
func (o CompoundAssignOperator) ComputationLHSType() QualType {
	return QualType{o.unit, o.data("CompoundAssignOperator.ComputationLHSType").ComputationLHSType}
}

// ComputationResultType is the type `op` is evaluated in.
func (o CompoundAssignOperator) ComputationResultType() QualType {
	return QualType{o.unit, o.data("CompoundAssignOperator.ComputationResultType").ComputationResultType}
}

// ConditionalOperator is `cond ? t : f`.
type ConditionalOperator struct{ Expr }

func (ConditionalOperator) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprConditionalOperator, ast.ExprConditionalOperator)
}
func (ConditionalOperator) wrap(h Handle) ConditionalOperator {
	return ConditionalOperator{Expr{}.wrap(h)}
}

func (c ConditionalOperator) data(op string) *ast.ConditionalData {
	b, _ := c.stmt(op)
	return b.Stmts.Conditional(c.stmtID())
}

func (c ConditionalOperator) Cond() Expr {
	return exprOf(c.unit, c.data("ConditionalOperator.Cond").Cond)
}
func (c ConditionalOperator) TrueExpr() Expr {
	return exprOf(c.unit, c.data("ConditionalOperator.TrueExpr").True)
}
func (c ConditionalOperator) FalseExpr() Expr {
	return exprOf(c.unit, c.data("ConditionalOperator.FalseExpr").False)
}

// CastKind classifies the conversion a cast performs.
type CastKind uint8

const (
	CKNoOp                   = CastKind(ast.CastNoOp)
	CKLValueToRValue         = CastKind(ast.CastLValueToRValue)
	CKArrayToPointerDecay    = CastKind(ast.CastArrayToPointerDecay)
	CKFunctionToPointerDecay = CastKind(ast.CastFunctionToPointerDecay)
	CKIntegralCast           = CastKind(ast.CastIntegralCast)
	CKIntegralToFloating     = CastKind(ast.CastIntegralToFloating)
	CKFloatingToIntegral     = CastKind(ast.CastFloatingToIntegral)
	CKFloatingCast           = CastKind(ast.CastFloatingCast)
	CKNullToPointer          = CastKind(ast.CastNullToPointer)
	CKBitCast                = CastKind(ast.CastBitCast)
	CKIntegralToPointer      = CastKind(ast.CastIntegralToPointer)
	CKPointerToIntegral      = CastKind(ast.CastPointerToIntegral)
	CKIntegralToBoolean      = CastKind(ast.CastIntegralToBoolean)
	CKFloatingToBoolean      = CastKind(ast.CastFloatingToBoolean)
	CKPointerToBoolean       = CastKind(ast.CastPointerToBoolean)
	CKToVoid                 = CastKind(ast.CastToVoid)
	CKToUnion                = CastKind(ast.CastToUnion)
)

// String is the clang cast kind name ("LValueToRValue").
func (k CastKind) String() string { return ast.CastKind(k).String() }

// CastExpr is an implicit or explicit conversion.
type CastExpr struct{ Expr }

func (CastExpr) accepts(h Handle) bool  { return stmtIn(h, ast.FirstCastExpr, ast.LastCastExpr) }
func (CastExpr) wrap(h Handle) CastExpr { return CastExpr{Expr{}.wrap(h)} }

func (c CastExpr) data(op string) *ast.CastData {
	b, _ := c.stmt(op)
	return b.Stmts.Cast(c.stmtID())
}

func (c CastExpr) CastKind() CastKind   { return CastKind(c.data("CastExpr.CastKind").Kind) }
func (c CastExpr) CastKindName() string { return c.data("CastExpr.CastKindName").Kind.String() }
func (c CastExpr) SubExpr() Expr        { return exprOf(c.unit, c.data("CastExpr.SubExpr").Sub) }

// ImplicitCastExpr is a conversion inserted by semantic analysis.
type ImplicitCastExpr struct{ CastExpr }

func (ImplicitCastExpr) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprImplicitCast, ast.ExprImplicitCast)
}
func (ImplicitCastExpr) wrap(h Handle) ImplicitCastExpr { return ImplicitCastExpr{CastExpr{}.wrap(h)} }

// ExplicitCastExpr is a cast written in the source.
type ExplicitCastExpr struct{ CastExpr }

func (ExplicitCastExpr) accepts(h Handle) bool {
	return stmtIn(h, ast.FirstExplicitCastExpr, ast.LastExplicitCastExpr)
}
func (ExplicitCastExpr) wrap(h Handle) ExplicitCastExpr { return ExplicitCastExpr{CastExpr{}.wrap(h)} }

// TypeAsWritten is the type named in the cast.
func (c ExplicitCastExpr) TypeAsWritten() QualType {
	return QualType{c.unit, c.data("ExplicitCastExpr.TypeAsWritten").Written}
}

// CStyleCastExpr is `(T)expr`.
type CStyleCastExpr struct{ ExplicitCastExpr }

func (CStyleCastExpr) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprCStyleCast, ast.ExprCStyleCast)
}
func (CStyleCastExpr) wrap(h Handle) CStyleCastExpr {
	return CStyleCastExpr{ExplicitCastExpr{}.wrap(h)}
}

// CallExpr is a function call.
type CallExpr struct{ Expr }

func (CallExpr) accepts(h Handle) bool  { return stmtIn(h, ast.ExprCall, ast.ExprCall) }
func (CallExpr) wrap(h Handle) CallExpr { return CallExpr{Expr{}.wrap(h)} }

func (c CallExpr) data(op string) (*ast.Builder, *ast.CallData) {
	b, _ := c.stmt(op)
	return b, b.Stmts.Call(c.stmtID())
}

func (c CallExpr) Callee() Expr {
	_, cd := c.data("CallExpr.Callee")
	return exprOf(c.unit, cd.Callee)
}

func (c CallExpr) NumArgs() int {
	_, cd := c.data("CallExpr.NumArgs")
	return int(cd.Args.Count)
}

// Arg returns the i-th argument; i must be in [0, NumArgs).
func (c CallExpr) Arg(i int) Expr {
	b, cd := c.data("CallExpr.Arg")
	checkIndex("CallExpr.Arg", i, int(cd.Args.Count))
	return exprOf(c.unit, b.Stmts.ExprAt(cd.Args, uint32(i))) //nolint:gosec // G115: i checked above.
}

func (c CallExpr) Args() []Expr {
	b, cd := c.data("CallExpr.Args")
	return exprList(c.unit, b, cd.Args)
}

// DirectCallee is the called function when the callee names one directly.
func (c CallExpr) DirectCallee() (FunctionDecl, bool) {
	ref, ok := As[DeclRefExpr](c.Callee().IgnoreParenImpCasts())
	if !ok {
		return FunctionDecl{}, false
	}
	return As[FunctionDecl](ref.Decl())
}

func exprList(u *Unit, b *ast.Builder, l ast.List) []Expr {
	out := make([]Expr, l.Count)
	for i := range out {
		out[i] = exprOf(u, b.Stmts.ExprAt(l, uint32(i))) //nolint:gosec // G115: bounded by Count.
	}
	return out
}

// MemberExpr is `base.member` or `base->member`.
type MemberExpr struct{ Expr }

func (MemberExpr) accepts(h Handle) bool    { return stmtIn(h, ast.ExprMember, ast.ExprMember) }
func (MemberExpr) wrap(h Handle) MemberExpr { return MemberExpr{Expr{}.wrap(h)} }

func (m MemberExpr) data(op string) *ast.MemberData {
	b, _ := m.stmt(op)
	return b.Stmts.Member(m.stmtID())
}

func (m MemberExpr) Base() Expr { return exprOf(m.unit, m.data("MemberExpr.Base").Base) }

func (m MemberExpr) MemberDecl() FieldDecl {
	return FieldDecl{}.wrap(declHandle(m.unit, m.data("MemberExpr.MemberDecl").Member))
}

func (m MemberExpr) IsArrow() bool { return m.data("MemberExpr.IsArrow").Arrow }

// ArraySubscriptExpr is `lhs[rhs]`.
type ArraySubscriptExpr struct{ Expr }

func (ArraySubscriptExpr) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprArraySubscript, ast.ExprArraySubscript)
}
func (ArraySubscriptExpr) wrap(h Handle) ArraySubscriptExpr {
	return ArraySubscriptExpr{Expr{}.wrap(h)}
}

func (a ArraySubscriptExpr) data(op string) (*ast.Builder, *ast.SubscriptData) {
	b, _ := a.stmt(op)
	return b, b.Stmts.Subscript(a.stmtID())
}

func (a ArraySubscriptExpr) LHS() Expr {
	_, sd := a.data("ArraySubscriptExpr.LHS")
	return exprOf(a.unit, sd.LHS)
}

func (a ArraySubscriptExpr) RHS() Expr {
	_, sd := a.data("ArraySubscriptExpr.RHS")
	return exprOf(a.unit, sd.RHS)
}

// Base is the pointer operand, which is RHS for the `i[p]` spelling.
func (a ArraySubscriptExpr) Base() Expr {
	b, sd := a.data("ArraySubscriptExpr.Base")
	if b.Types.IsPointer(b.Stmts.Get(sd.LHS).Type) {
		return exprOf(a.unit, sd.LHS)
	}
	return exprOf(a.unit, sd.RHS)
}

// Idx is the integer operand.
func (a ArraySubscriptExpr) Idx() Expr {
	b, sd := a.data("ArraySubscriptExpr.Idx")
	if b.Types.IsPointer(b.Stmts.Get(sd.LHS).Type) {
		return exprOf(a.unit, sd.RHS)
	}
	return exprOf(a.unit, sd.LHS)
}

// InitListExpr is a braced initializer.
type InitListExpr struct{ Expr }

func (InitListExpr) accepts(h Handle) bool      { return stmtIn(h, ast.ExprInitList, ast.ExprInitList) }
func (InitListExpr) wrap(h Handle) InitListExpr { return InitListExpr{Expr{}.wrap(h)} }

func (l InitListExpr) data(op string) (*ast.Builder, ast.List) {
	b, _ := l.stmt(op)
	return b, b.Stmts.InitList(l.stmtID()).Inits
}

func (l InitListExpr) NumInits() int {
	_, inits := l.data("InitListExpr.NumInits")
	return int(inits.Count)
}

// Init returns the i-th initializer; i must be in [0, NumInits).
func (l InitListExpr) Init(i int) Expr {
	b, inits := l.data("InitListExpr.Init")
	checkIndex("InitListExpr.Init", i, int(inits.Count))
	return exprOf(l.unit, b.Stmts.ExprAt(inits, uint32(i))) //nolint:gosec // G115: i checked above.
}

func (l InitListExpr) Inits() []Expr {
	b, inits := l.data("InitListExpr.Inits")
	return exprList(l.unit, b, inits)
}

// ImplicitValueInitExpr zero-initializes an element the list left out.
type ImplicitValueInitExpr struct{ Expr }

func (ImplicitValueInitExpr) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprImplicitValueInit, ast.ExprImplicitValueInit)
}
func (ImplicitValueInitExpr) wrap(h Handle) ImplicitValueInitExpr {
	return ImplicitValueInitExpr{Expr{}.wrap(h)}
}

// TraitKind selects sizeof or _Alignof.
type TraitKind uint8

const (
	TraitSizeOf  = TraitKind(ast.TraitSizeOf)
	TraitAlignOf = TraitKind(ast.TraitAlignOf)
)

func (k TraitKind) String() string { return ast.TraitKind(k).String() }

// UnaryExprOrTypeTraitExpr is sizeof or _Alignof applied to a type or an
// expression.
type UnaryExprOrTypeTraitExpr struct{ Expr }

func (UnaryExprOrTypeTraitExpr) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprUnaryExprOrTypeTrait, ast.ExprUnaryExprOrTypeTrait)
}
func (UnaryExprOrTypeTraitExpr) wrap(h Handle) UnaryExprOrTypeTraitExpr {
	return UnaryExprOrTypeTraitExpr{Expr{}.wrap(h)}
}

func (t UnaryExprOrTypeTraitExpr) data(op string) *ast.TraitData {
	b, _ := t.stmt(op)
	return b.Stmts.Trait(t.stmtID())
}

func (t UnaryExprOrTypeTraitExpr) TraitKind() TraitKind {
	return TraitKind(t.data("UnaryExprOrTypeTraitExpr.TraitKind").Kind)
}

// IsArgumentType reports the `sizeof(T)` form.
func (t UnaryExprOrTypeTraitExpr) IsArgumentType() bool {
	return !t.data("UnaryExprOrTypeTraitExpr.IsArgumentType").ArgExpr.IsValid()
}

func (t UnaryExprOrTypeTraitExpr) ArgumentType() (QualType, bool) {
	td := t.data("UnaryExprOrTypeTraitExpr.ArgumentType")
	if td.ArgExpr.IsValid() {
		return QualType{}, false
	}
	return QualType{t.unit, td.ArgType}, true
}

func (t UnaryExprOrTypeTraitExpr) ArgumentExpr() (Expr, bool) {
	return optStmt[Expr](t.unit, t.data("UnaryExprOrTypeTraitExpr.ArgumentExpr").ArgExpr)
}

// TypeOfArgument is the written type or the type of the operand.
func (t UnaryExprOrTypeTraitExpr) TypeOfArgument() QualType {
	if e, ok := t.ArgumentExpr(); ok {
		return e.Type()
	}
	qt, _ := t.ArgumentType()
	return qt
}

// VAArgExpr is va_arg(ap, T).
type VAArgExpr struct{ Expr }

func (VAArgExpr) accepts(h Handle) bool   { return stmtIn(h, ast.ExprVAArg, ast.ExprVAArg) }
func (VAArgExpr) wrap(h Handle) VAArgExpr { return VAArgExpr{Expr{}.wrap(h)} }

func (v VAArgExpr) data(op string) *ast.VAArgData {
	b, _ := v.stmt(op)
	return b.Stmts.VAArg(v.stmtID())
}

func (v VAArgExpr) SubExpr() Expr { return exprOf(v.unit, v.data("VAArgExpr.SubExpr").Sub) }

func (v VAArgExpr) WrittenType() QualType {
	return QualType{v.unit, v.data("VAArgExpr.WrittenType").Written}
}

// CompoundLiteralExpr is `(T){ ... }`.
type CompoundLiteralExpr struct{ Expr }

func (CompoundLiteralExpr) accepts(h Handle) bool {
	return stmtIn(h, ast.ExprCompoundLiteral, ast.ExprCompoundLiteral)
}
func (CompoundLiteralExpr) wrap(h Handle) CompoundLiteralExpr {
	return CompoundLiteralExpr{Expr{}.wrap(h)}
}

func (c CompoundLiteralExpr) Initializer() Expr {
	b, _ := c.stmt("CompoundLiteralExpr.Initializer")
	return exprOf(c.unit, b.Stmts.CompoundLiteral(c.stmtID()).Init)
}

func (c CompoundLiteralExpr) IsFileScope() bool {
	b, _ := c.stmt("CompoundLiteralExpr.IsFileScope")
	return b.Stmts.CompoundLiteral(c.stmtID()).FileScope
}

// StmtExpr is the GNU `({ ... })` statement expression.
type StmtExpr struct{ Expr }

func (StmtExpr) accepts(h Handle) bool  { return stmtIn(h, ast.ExprStmt, ast.ExprStmt) }
func (StmtExpr) wrap(h Handle) StmtExpr { return StmtExpr{Expr{}.wrap(h)} }

func (s StmtExpr) SubStmt() CompoundStmt {
	b, _ := s.stmt("StmtExpr.SubStmt")
	return CompoundStmt{}.wrap(stmtHandle(s.unit, b.Stmts.Unary(s.stmtID()).Sub))
}
