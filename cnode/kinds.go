package cnode

import "cbridge/internal/ast"

// DeclKind tags the runtime class of a declaration. Values equal the front
// end's own kinds, and every abstract class is a contiguous range.
type DeclKind uint8

const (
	KindTranslationUnitDecl = DeclKind(ast.DeclTranslationUnit)
	KindStaticAssertDecl    = DeclKind(ast.DeclStaticAssert)
	KindLabelDecl           = DeclKind(ast.DeclLabel)
	KindTypedefDecl         = DeclKind(ast.DeclTypedef)
	KindRecordDecl          = DeclKind(ast.DeclRecord)
	KindEnumDecl            = DeclKind(ast.DeclEnum)
	KindEnumConstantDecl    = DeclKind(ast.DeclEnumConstant)
	KindFieldDecl           = DeclKind(ast.DeclField)
	KindFunctionDecl        = DeclKind(ast.DeclFunction)
	KindVarDecl             = DeclKind(ast.DeclVar)
	KindParmVarDecl         = DeclKind(ast.DeclParmVar)
)

// String returns the clang decl kind name ("Var", "ParmVar").
func (k DeclKind) String() string { return ast.DeclKind(k).String() }

func (k DeclKind) in(lo, hi ast.DeclKind) bool {
	return ast.DeclKind(k) >= lo && ast.DeclKind(k) <= hi
}

// IsNamed reports NamedDecl kinds.
func (k DeclKind) IsNamed() bool { return k.in(ast.FirstNamedDecl, ast.LastNamedDecl) }

// IsValue reports ValueDecl kinds.
func (k DeclKind) IsValue() bool { return k.in(ast.FirstValueDecl, ast.LastValueDecl) }

// IsType reports TypeDecl kinds.
func (k DeclKind) IsType() bool { return k.in(ast.FirstTypeDecl, ast.LastTypeDecl) }

// IsContext reports kinds that own a chain of child declarations.
func (k DeclKind) IsContext() bool { return ast.DeclKind(k).IsDeclContext() }

// StmtKind tags the runtime class of a statement or expression.
type StmtKind uint8

const (
	KindNullStmt                 = StmtKind(ast.StmtNull)
	KindCompoundStmt             = StmtKind(ast.StmtCompound)
	KindDeclStmt                 = StmtKind(ast.StmtDecl)
	KindIfStmt                   = StmtKind(ast.StmtIf)
	KindWhileStmt                = StmtKind(ast.StmtWhile)
	KindDoStmt                   = StmtKind(ast.StmtDo)
	KindForStmt                  = StmtKind(ast.StmtFor)
	KindSwitchStmt               = StmtKind(ast.StmtSwitch)
	KindCaseStmt                 = StmtKind(ast.StmtCase)
	KindDefaultStmt              = StmtKind(ast.StmtDefault)
	KindBreakStmt                = StmtKind(ast.StmtBreak)
	KindContinueStmt             = StmtKind(ast.StmtContinue)
	KindGotoStmt                 = StmtKind(ast.StmtGoto)
	KindLabelStmt                = StmtKind(ast.StmtLabel)
	KindReturnStmt               = StmtKind(ast.StmtReturn)
	KindIntegerLiteral           = StmtKind(ast.ExprIntegerLiteral)
	KindFloatingLiteral          = StmtKind(ast.ExprFloatingLiteral)
	KindCharacterLiteral         = StmtKind(ast.ExprCharacterLiteral)
	KindStringLiteral            = StmtKind(ast.ExprStringLiteral)
	KindPredefinedExpr           = StmtKind(ast.ExprPredefined)
	KindDeclRefExpr              = StmtKind(ast.ExprDeclRef)
	KindParenExpr                = StmtKind(ast.ExprParen)
	KindUnaryOperator            = StmtKind(ast.ExprUnaryOperator)
	KindBinaryOperator           = StmtKind(ast.ExprBinaryOperator)
	KindCompoundAssignOperator   = StmtKind(ast.ExprCompoundAssignOperator)
	KindConditionalOperator      = StmtKind(ast.ExprConditionalOperator)
	KindImplicitCastExpr         = StmtKind(ast.ExprImplicitCast)
	KindCStyleCastExpr           = StmtKind(ast.ExprCStyleCast)
	KindCallExpr                 = StmtKind(ast.ExprCall)
	KindMemberExpr               = StmtKind(ast.ExprMember)
	KindArraySubscriptExpr       = StmtKind(ast.ExprArraySubscript)
	KindInitListExpr             = StmtKind(ast.ExprInitList)
	KindImplicitValueInitExpr    = StmtKind(ast.ExprImplicitValueInit)
	KindUnaryExprOrTypeTraitExpr = StmtKind(ast.ExprUnaryExprOrTypeTrait)
	KindVAArgExpr                = StmtKind(ast.ExprVAArg)
	KindCompoundLiteralExpr      = StmtKind(ast.ExprCompoundLiteral)
	KindStmtExpr                 = StmtKind(ast.ExprStmt)
)

// String returns the clang statement class name ("CompoundStmt").
func (k StmtKind) String() string { return ast.StmtKind(k).String() }

func (k StmtKind) in(lo, hi ast.StmtKind) bool {
	return ast.StmtKind(k) >= lo && ast.StmtKind(k) <= hi
}

// IsExpr reports expression kinds.
func (k StmtKind) IsExpr() bool { return ast.StmtKind(k).IsExpr() }

// IsSwitchCase reports case and default labels.
func (k StmtKind) IsSwitchCase() bool { return k.in(ast.FirstSwitchCase, ast.LastSwitchCase) }

// IsCast reports implicit and explicit casts.
func (k StmtKind) IsCast() bool { return k.in(ast.FirstCastExpr, ast.LastCastExpr) }

// DeclKinds lists every declaration kind in tag order.
func DeclKinds() []DeclKind {
	out := make([]DeclKind, ast.DeclKindCount)
	for i := range out {
		out[i] = DeclKind(i) //nolint:gosec // G115: bounded by DeclKindCount.
	}
	return out
}

// StmtKinds lists every statement and expression kind in tag order.
func StmtKinds() []StmtKind {
	out := make([]StmtKind, ast.StmtKindCount)
	for i := range out {
		out[i] = StmtKind(i) //nolint:gosec // G115: bounded by StmtKindCount.
	}
	return out
}
