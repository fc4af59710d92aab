package cnode

import "cbridge/internal/ast"

// castable is satisfied by every handle type: accepts checks a runtime kind
// against the type's kind range, wrap builds the handle value.
type castable[K any] interface {
	Node
	accepts(h Handle) bool
	wrap(h Handle) K
}

// As down-casts n to the handle type K. It succeeds iff the runtime kind of
// n is K or one of its subtypes; a null n always fails.
//
//	if bin, ok := cnode.As[cnode.BinaryOperator](init); ok { ... }
func As[K castable[K]](n Node) (K, bool) {
	var k K
	if n == nil {
		return k, false
	}
	h := n.handle()
	if h.IsNull() || !k.accepts(h) {
		return k, false
	}
	return k.wrap(h), true
}

// Is reports whether As[K](n) would succeed.
func Is[K castable[K]](n Node) bool {
	_, ok := As[K](n)
	return ok
}

func (h Handle) declKind() (ast.DeclKind, bool) {
	if h.family != FamilyDecl {
		return 0, false
	}
	_, d := h.decl("As")
	return d.Kind, true
}

func (h Handle) stmtKind() (ast.StmtKind, bool) {
	if h.family != FamilyStmt {
		return 0, false
	}
	_, s := h.stmt("As")
	return s.Kind, true
}

func declIn(h Handle, lo, hi ast.DeclKind) bool {
	k, ok := h.declKind()
	return ok && k >= lo && k <= hi
}

func stmtIn(h Handle, lo, hi ast.StmtKind) bool {
	k, ok := h.stmtKind()
	return ok && k >= lo && k <= hi
}

// DeclNode is the sealed set of declaration handle types returned by
// Decl.Specific.
type DeclNode interface {
	Node
	AsDecl() Decl
	isDecl()
}

// StmtNode is the sealed set of statement and expression handle types
// returned by Stmt.Specific.
type StmtNode interface {
	Node
	AsStmt() Stmt
	isStmt()
}

// Specific returns d as its most specific handle type, for exhaustive type
// switches.
func (d Decl) Specific() DeclNode {
	h := d.Handle
	switch d.Kind() {
	case KindTranslationUnitDecl:
		return TranslationUnitDecl{}.wrap(h)
	case KindStaticAssertDecl:
		return StaticAssertDecl{}.wrap(h)
	case KindLabelDecl:
		return LabelDecl{}.wrap(h)
	case KindTypedefDecl:
		return TypedefDecl{}.wrap(h)
	case KindRecordDecl:
		return RecordDecl{}.wrap(h)
	case KindEnumDecl:
		return EnumDecl{}.wrap(h)
	case KindEnumConstantDecl:
		return EnumConstantDecl{}.wrap(h)
	case KindFieldDecl:
		return FieldDecl{}.wrap(h)
	case KindFunctionDecl:
		return FunctionDecl{}.wrap(h)
	case KindVarDecl:
		return VarDecl{}.wrap(h)
	case KindParmVarDecl:
		return ParmVarDecl{}.wrap(h)
	}
	return d
}

// Specific returns s as its most specific handle type.
func (s Stmt) Specific() StmtNode {
	h := s.Handle
	switch s.Kind() {
	case KindNullStmt:
		return NullStmt{}.wrap(h)
	case KindCompoundStmt:
		return CompoundStmt{}.wrap(h)
	case KindDeclStmt:
		return DeclStmt{}.wrap(h)
	case KindIfStmt:
		return IfStmt{}.wrap(h)
	case KindWhileStmt:
		return WhileStmt{}.wrap(h)
	case KindDoStmt:
		return DoStmt{}.wrap(h)
	case KindForStmt:
		return ForStmt{}.wrap(h)
	case KindSwitchStmt:
		return SwitchStmt{}.wrap(h)
	case KindCaseStmt:
		return CaseStmt{}.wrap(h)
	case KindDefaultStmt:
		return DefaultStmt{}.wrap(h)
	case KindBreakStmt:
		return BreakStmt{}.wrap(h)
	case KindContinueStmt:
		return ContinueStmt{}.wrap(h)
	case KindGotoStmt:
		return GotoStmt{}.wrap(h)
	case KindLabelStmt:
		return LabelStmt{}.wrap(h)
	case KindReturnStmt:
		return ReturnStmt{}.wrap(h)
	case KindIntegerLiteral:
		return IntegerLiteral{}.wrap(h)
	case KindFloatingLiteral:
		return FloatingLiteral{}.wrap(h)
	case KindCharacterLiteral:
		return CharacterLiteral{}.wrap(h)
	case KindStringLiteral:
		return StringLiteral{}.wrap(h)
	case KindPredefinedExpr:
		return PredefinedExpr{}.wrap(h)
	case KindDeclRefExpr:
		return DeclRefExpr{}.wrap(h)
	case KindParenExpr:
		return ParenExpr{}.wrap(h)
	case KindUnaryOperator:
		return UnaryOperator{}.wrap(h)
	case KindBinaryOperator:
		return BinaryOperator{}.wrap(h)
	case KindCompoundAssignOperator:
		return CompoundAssignOperator{}.wrap(h)
	case KindConditionalOperator:
		return ConditionalOperator{}.wrap(h)
	case KindImplicitCastExpr:
		return ImplicitCastExpr{}.wrap(h)
	case KindCStyleCastExpr:
		return CStyleCastExpr{}.wrap(h)
	case KindCallExpr:
		return CallExpr{}.wrap(h)
	case KindMemberExpr:
		return MemberExpr{}.wrap(h)
	case KindArraySubscriptExpr:
		return ArraySubscriptExpr{}.wrap(h)
	case KindInitListExpr:
		return InitListExpr{}.wrap(h)
	case KindImplicitValueInitExpr:
		return ImplicitValueInitExpr{}.wrap(h)
	case KindUnaryExprOrTypeTraitExpr:
		return UnaryExprOrTypeTraitExpr{}.wrap(h)
	case KindVAArgExpr:
		return VAArgExpr{}.wrap(h)
	case KindCompoundLiteralExpr:
		return CompoundLiteralExpr{}.wrap(h)
	case KindStmtExpr:
		return StmtExpr{}.wrap(h)
	}
	return s
}

// specific upgrades a handle of either family to its most specific type.
func specific(h Handle) Node {
	switch h.family {
	case FamilyDecl:
		return Decl{h}.Specific()
	case FamilyStmt:
		return Stmt{h}.Specific()
	}
	return nil
}
