package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedChar         Code = 1003
	LexUnterminatedBlockComment Code = 1004
	LexBadNumber                Code = 1005
	LexEmptyChar                Code = 1006
	LexBadEscape                Code = 1007
	LexMultiChar                Code = 1008
	LexDirectiveIgnored         Code = 1009
	LexBadLineMarker            Code = 1010

	// Синтаксические
	SynInfo                  Code = 2000
	SynUnexpectedToken       Code = 2001
	SynExpectSemicolon       Code = 2002
	SynExpectIdentifier      Code = 2003
	SynExpectExpression      Code = 2004
	SynExpectType            Code = 2005
	SynUnclosedParen         Code = 2006
	SynUnclosedBrace         Code = 2007
	SynUnclosedBracket       Code = 2008
	SynExpectDeclarator      Code = 2009
	SynDuplicateSpecifier    Code = 2010
	SynInvalidSpecifiers     Code = 2011
	SynMissingTypeSpecifier  Code = 2012
	SynUnsupported           Code = 2013
	SynEmptyDeclaration      Code = 2014
	SynExpectColon           Code = 2015
	SynParamListMismatch     Code = 2016
	SynFunctionDefNotAllowed Code = 2017

	// Семантические
	SemaInfo                 Code = 3000
	SemaUndeclaredIdent      Code = 3001
	SemaImplicitFunctionDecl Code = 3002
	SemaRedefinition         Code = 3003
	SemaConflictingTypes     Code = 3004
	SemaIncompatibleTypes    Code = 3005
	SemaIncompatiblePointer  Code = 3006
	SemaIntPointerConversion Code = 3007
	SemaNotAssignable        Code = 3008
	SemaNoMember             Code = 3009
	SemaMemberBaseNotRecord  Code = 3010
	SemaSubscriptNotArray    Code = 3011
	SemaNotCallable          Code = 3012
	SemaArgCount             Code = 3013
	SemaIncompleteType       Code = 3014
	SemaUndeclaredLabel      Code = 3015
	SemaLabelRedefinition    Code = 3016
	SemaBreakOutsideLoop     Code = 3017
	SemaContinueOutsideLoop  Code = 3018
	SemaCaseOutsideSwitch    Code = 3019
	SemaNotConstant          Code = 3020
	SemaVoidReturnValue      Code = 3021
	SemaMissingReturnValue   Code = 3022
	SemaIntLiteralTooLarge   Code = 3023
	SemaStaticAssertFailed   Code = 3024
	SemaInvalidOperands      Code = 3025
	SemaUnknownTypeName      Code = 3026
	SemaTagMismatch          Code = 3027
	SemaInvalidStorageClass  Code = 3028
	SemaDuplicateCase        Code = 3029
	SemaNotAnLValue          Code = 3030
	SemaIntLiteralImplicitly Code = 3031
	SemaBitFieldWidth        Code = 3032
	SemaExcessInitializers   Code = 3033
	SemaTentativeArray       Code = 3034
	SemaUndefinedInternal    Code = 3035

	// Драйвер
	DrvInfo            Code = 4000
	DrvNoInput         Code = 4001
	DrvUnknownArgument Code = 4002
	DrvUnusedArgument  Code = 4003
	DrvInvalidValue    Code = 4004
	DrvLoadFile        Code = 4005
	DrvTooManyErrors   Code = 4006

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedChar:         "Unterminated character constant",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexEmptyChar:                "Empty character constant",
		LexBadEscape:                "Unknown escape sequence",
		LexMultiChar:                "Multi-character character constant",
		LexDirectiveIgnored:         "Preprocessor directive ignored",
		LexBadLineMarker:            "Malformed line directive",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectSemicolon:          "Missing semicolon",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectExpression:         "Expected expression",
		SynExpectType:               "Expected type",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynUnclosedBracket:          "Unclosed bracket",
		SynExpectDeclarator:         "Expected declarator",
		SynDuplicateSpecifier:       "Duplicate declaration specifier",
		SynInvalidSpecifiers:        "Invalid combination of specifiers",
		SynMissingTypeSpecifier:     "Type specifier missing",
		SynUnsupported:              "Unsupported construct",
		SynEmptyDeclaration:         "Declaration does not declare anything",
		SynExpectColon:              "Expected ':'",
		SynParamListMismatch:        "Parameter list mismatch",
		SynFunctionDefNotAllowed:    "Function definition is not allowed here",
		SemaInfo:                    "Semantic information",
		SemaUndeclaredIdent:         "Use of undeclared identifier",
		SemaImplicitFunctionDecl:    "Implicit declaration of function",
		SemaRedefinition:            "Redefinition",
		SemaConflictingTypes:        "Conflicting types",
		SemaIncompatibleTypes:       "Incompatible types",
		SemaIncompatiblePointer:     "Incompatible pointer types",
		SemaIntPointerConversion:    "Incompatible integer/pointer conversion",
		SemaNotAssignable:           "Expression is not assignable",
		SemaNoMember:                "No member with that name",
		SemaMemberBaseNotRecord:     "Member reference base is not a structure or union",
		SemaSubscriptNotArray:       "Subscripted value is not an array or pointer",
		SemaNotCallable:             "Called object is not a function",
		SemaArgCount:                "Wrong number of arguments",
		SemaIncompleteType:          "Incomplete type",
		SemaUndeclaredLabel:         "Use of undeclared label",
		SemaLabelRedefinition:       "Redefinition of label",
		SemaBreakOutsideLoop:        "'break' not in loop or switch",
		SemaContinueOutsideLoop:     "'continue' not in loop",
		SemaCaseOutsideSwitch:       "Case label not within a switch",
		SemaNotConstant:             "Expression is not an integer constant expression",
		SemaVoidReturnValue:         "Void function returns a value",
		SemaMissingReturnValue:      "Non-void function does not return a value",
		SemaIntLiteralTooLarge:      "Integer literal is too large",
		SemaStaticAssertFailed:      "Static assertion failed",
		SemaInvalidOperands:         "Invalid operands",
		SemaUnknownTypeName:         "Unknown type name",
		SemaTagMismatch:             "Tag kind mismatch",
		SemaInvalidStorageClass:     "Invalid storage class",
		SemaDuplicateCase:           "Duplicate case value",
		SemaNotAnLValue:             "Operand is not an lvalue",
		SemaIntLiteralImplicitly:    "Integer literal implicitly unsigned",
		SemaBitFieldWidth:           "Invalid bit-field width",
		SemaExcessInitializers:      "Excess elements in initializer",
		SemaTentativeArray:          "Tentative array definition",
		SemaUndefinedInternal:       "Internal function never defined",
		DrvInfo:                     "Driver information",
		DrvNoInput:                  "No input files",
		DrvUnknownArgument:          "Unknown argument",
		DrvUnusedArgument:           "Argument unused during compilation",
		DrvInvalidValue:             "Invalid value for argument",
		DrvLoadFile:                 "Cannot load input file",
		DrvTooManyErrors:            "Too many errors emitted",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("DRV%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
