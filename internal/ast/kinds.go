package ast

import "fmt"

// DeclKind enumerates declaration classes. The order keeps every abstract
// class a contiguous range so subtype checks are two comparisons.
type DeclKind uint8

const (
	DeclTranslationUnit DeclKind = iota
	DeclStaticAssert
	DeclLabel
	DeclTypedef
	DeclRecord
	DeclEnum
	DeclEnumConstant
	DeclField
	DeclFunction
	DeclVar
	DeclParmVar

	declKindCount
)

// Abstract declaration classes as inclusive ranges.
const (
	FirstNamedDecl      = DeclLabel
	LastNamedDecl       = DeclParmVar
	FirstTypeDecl       = DeclTypedef
	LastTypeDecl        = DeclEnum
	FirstTagDecl        = DeclRecord
	LastTagDecl         = DeclEnum
	FirstValueDecl      = DeclEnumConstant
	LastValueDecl       = DeclParmVar
	FirstDeclaratorDecl = DeclField
	LastDeclaratorDecl  = DeclParmVar
	FirstVarDecl        = DeclVar
	LastVarDecl         = DeclParmVar
)

var declKindNames = [...]string{
	DeclTranslationUnit: "TranslationUnit",
	DeclStaticAssert:    "StaticAssert",
	DeclLabel:           "Label",
	DeclTypedef:         "Typedef",
	DeclRecord:          "Record",
	DeclEnum:            "Enum",
	DeclEnumConstant:    "EnumConstant",
	DeclField:           "Field",
	DeclFunction:        "Function",
	DeclVar:             "Var",
	DeclParmVar:         "ParmVar",
}

// String returns the short kind name ("Var", "ParmVar").
func (k DeclKind) String() string {
	if k < declKindCount {
		return declKindNames[k]
	}
	return fmt.Sprintf("DeclKind(%d)", k)
}

// DeclKindCount is the number of concrete declaration kinds.
const DeclKindCount = int(declKindCount)

// IsDeclContext reports kinds that own a child declaration chain.
func (k DeclKind) IsDeclContext() bool {
	switch k {
	case DeclTranslationUnit, DeclFunction, DeclRecord, DeclEnum:
		return true
	}
	return false
}

// StmtKind enumerates statement and expression classes with the same
// contiguous-range layout as DeclKind.
type StmtKind uint8

const (
	StmtNull StmtKind = iota
	StmtCompound
	StmtDecl
	StmtIf
	StmtWhile
	StmtDo
	StmtFor
	StmtSwitch
	StmtCase
	StmtDefault
	StmtBreak
	StmtContinue
	StmtGoto
	StmtLabel
	StmtReturn

	ExprIntegerLiteral
	ExprFloatingLiteral
	ExprCharacterLiteral
	ExprStringLiteral
	ExprPredefined
	ExprDeclRef
	ExprParen
	ExprUnaryOperator
	ExprBinaryOperator
	ExprCompoundAssignOperator
	ExprConditionalOperator
	ExprImplicitCast
	ExprCStyleCast
	ExprCall
	ExprMember
	ExprArraySubscript
	ExprInitList
	ExprImplicitValueInit
	ExprUnaryExprOrTypeTrait
	ExprVAArg
	ExprCompoundLiteral
	ExprStmt

	stmtKindCount
)

// Abstract statement classes as inclusive ranges.
const (
	FirstSwitchCase       = StmtCase
	LastSwitchCase        = StmtDefault
	FirstExpr             = ExprIntegerLiteral
	LastExpr              = ExprStmt
	FirstBinaryOperator   = ExprBinaryOperator
	LastBinaryOperator    = ExprCompoundAssignOperator
	FirstCastExpr         = ExprImplicitCast
	LastCastExpr          = ExprCStyleCast
	FirstExplicitCastExpr = ExprCStyleCast
	LastExplicitCastExpr  = ExprCStyleCast
)

var stmtKindNames = [...]string{
	StmtNull:                   "NullStmt",
	StmtCompound:               "CompoundStmt",
	StmtDecl:                   "DeclStmt",
	StmtIf:                     "IfStmt",
	StmtWhile:                  "WhileStmt",
	StmtDo:                     "DoStmt",
	StmtFor:                    "ForStmt",
	StmtSwitch:                 "SwitchStmt",
	StmtCase:                   "CaseStmt",
	StmtDefault:                "DefaultStmt",
	StmtBreak:                  "BreakStmt",
	StmtContinue:               "ContinueStmt",
	StmtGoto:                   "GotoStmt",
	StmtLabel:                  "LabelStmt",
	StmtReturn:                 "ReturnStmt",
	ExprIntegerLiteral:         "IntegerLiteral",
	ExprFloatingLiteral:        "FloatingLiteral",
	ExprCharacterLiteral:       "CharacterLiteral",
	ExprStringLiteral:          "StringLiteral",
	ExprPredefined:             "PredefinedExpr",
	ExprDeclRef:                "DeclRefExpr",
	ExprParen:                  "ParenExpr",
	ExprUnaryOperator:          "UnaryOperator",
	ExprBinaryOperator:         "BinaryOperator",
	ExprCompoundAssignOperator: "CompoundAssignOperator",
	ExprConditionalOperator:    "ConditionalOperator",
	ExprImplicitCast:           "ImplicitCastExpr",
	ExprCStyleCast:             "CStyleCastExpr",
	ExprCall:                   "CallExpr",
	ExprMember:                 "MemberExpr",
	ExprArraySubscript:         "ArraySubscriptExpr",
	ExprInitList:               "InitListExpr",
	ExprImplicitValueInit:      "ImplicitValueInitExpr",
	ExprUnaryExprOrTypeTrait:   "UnaryExprOrTypeTraitExpr",
	ExprVAArg:                  "VAArgExpr",
	ExprCompoundLiteral:        "CompoundLiteralExpr",
	ExprStmt:                   "StmtExpr",
}

// String returns the class name ("CompoundStmt", "BinaryOperator").
func (k StmtKind) String() string {
	if k < stmtKindCount {
		return stmtKindNames[k]
	}
	return fmt.Sprintf("StmtKind(%d)", k)
}

// StmtKindCount is the number of concrete statement kinds.
const StmtKindCount = int(stmtKindCount)

// IsExpr reports expression kinds.
func (k StmtKind) IsExpr() bool { return k >= FirstExpr && k <= LastExpr }
