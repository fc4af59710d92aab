package sema

import (
	"math/big"

	"cbridge/internal/apint"
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/literal"
	"cbridge/internal/source"
	"cbridge/internal/token"
	"cbridge/internal/types"
)

// errorExpr stands in for an expression that failed to analyse.
func (s *Sema) errorExpr(sp source.Span) ast.StmtID {
	id := s.b.Stmts.NewExpr(ast.ExprDeclRef, sp, s.bi.Q(types.Int), ast.RValue)
	s.b.Stmts.Get(id).Payload = ast.PayloadID(s.b.Stmts.DeclRefs.Allocate(ast.DeclRefData{}))
	s.b.Stmts.Get(id).Flags |= ast.StmtInvalid
	return id
}

// ActOnError is the placeholder the parser uses for an operand it could
// not parse; the syntax error is already reported.
func (s *Sema) ActOnError(sp source.Span) ast.StmtID { return s.errorExpr(sp) }

// IsInvalid reports error placeholders.
func (s *Sema) IsInvalid(e ast.StmtID) bool {
	st := s.expr(e)
	return st == nil || st.Flags&ast.StmtInvalid != 0
}

func (s *Sema) intCandidates(lit literal.Int) []types.BuiltinKind {
	decimal := lit.Radix == 10
	switch {
	case lit.Suffix.Unsigned && lit.Suffix.Long == 2:
		return []types.BuiltinKind{types.ULongLong}
	case lit.Suffix.Unsigned && lit.Suffix.Long == 1:
		return []types.BuiltinKind{types.ULong, types.ULongLong}
	case lit.Suffix.Unsigned:
		return []types.BuiltinKind{types.UInt, types.ULong, types.ULongLong}
	case lit.Suffix.Long == 2 && decimal:
		return []types.BuiltinKind{types.LongLong}
	case lit.Suffix.Long == 2:
		return []types.BuiltinKind{types.LongLong, types.ULongLong}
	case lit.Suffix.Long == 1 && decimal:
		return []types.BuiltinKind{types.Long, types.LongLong}
	case lit.Suffix.Long == 1:
		return []types.BuiltinKind{types.Long, types.ULong, types.LongLong, types.ULongLong}
	case decimal && s.opts.Standard.IsC89():
		return []types.BuiltinKind{types.Int, types.Long, types.ULong}
	case decimal:
		return []types.BuiltinKind{types.Int, types.Long, types.LongLong}
	}
	return []types.BuiltinKind{types.Int, types.UInt, types.Long, types.ULong, types.LongLong, types.ULongLong}
}

// ActOnIntegerLiteral decodes an integer token and picks its type.
func (s *Sema) ActOnIntegerLiteral(tok token.Token) ast.StmtID {
	lit, err := literal.DecodeInt(tok.Text)
	if err != nil {
		s.errorf(diag.LexBadNumber, tok.Span, "%s", err.Error())
		return s.errorExpr(tok.Span)
	}
	active := lit.Value.ActiveBits()
	for _, k := range s.intCandidates(lit) {
		q := s.bi.Q(k)
		width := uint32(s.tys.BitWidth(q)) //nolint:gosec // G115: builtin widths are small.
		limit := width
		if s.tys.IsSigned(q) {
			limit--
		}
		if active <= limit {
			return s.b.Stmts.NewInteger(tok.Span, q, lit.Value.ZExt(width))
		}
	}
	q := s.bi.Q(types.ULongLong)
	if active <= 64 {
		s.warnf(diag.SemaIntLiteralImplicitly, tok.Span, "integer literal is too large to be represented in a signed integer type, interpreting as unsigned")
	} else {
		s.errorf(diag.SemaIntLiteralTooLarge, tok.Span, "integer literal is too large to be represented in any integer type")
	}
	return s.b.Stmts.NewInteger(tok.Span, q, lit.Value.ZExt(64))
}

// ActOnFloatLiteral decodes a floating token.
func (s *Sema) ActOnFloatLiteral(tok token.Token) ast.StmtID {
	lit, err := literal.DecodeFloat(tok.Text)
	if err != nil {
		s.errorf(diag.LexBadNumber, tok.Span, "%s", err.Error())
		return s.errorExpr(tok.Span)
	}
	q, prec := s.bi.Q(types.Double), uint(53)
	switch lit.Suffix {
	case literal.FloatF:
		q, prec = s.bi.Q(types.Float), 24
	case literal.FloatL:
		q, prec = s.bi.Q(types.LongDouble), 64
	}
	v, acc, err := lit.Value(prec)
	if err != nil {
		s.errorf(diag.LexBadNumber, tok.Span, "%s", err.Error())
		return s.errorExpr(tok.Span)
	}
	if v.IsInf() {
		s.warnf(diag.LexBadNumber, tok.Span, "magnitude of floating-point constant too large for type '%s'; maximum is used", s.spell(q))
	}
	return s.b.Stmts.NewFloat(tok.Span, q, ast.FloatData{Value: v, Exact: acc == big.Exact})
}

func (s *Sema) reportProblems(tok token.Token, problems []literal.Problem) {
	for _, p := range problems {
		sp := tok.Span
		if p.Offset > 0 && uint32(p.Offset) < sp.Len() { //nolint:gosec // G115: offset inside token.
			sp = source.Span{File: sp.File, Start: sp.Start + uint32(p.Offset), End: sp.Start + uint32(p.Offset) + 1} //nolint:gosec // G115: offset inside token.
		}
		s.warnf(diag.LexBadEscape, sp, "%s", p.Msg)
	}
}

func (s *Sema) charType(enc literal.Encoding) types.QualType {
	switch enc {
	case literal.EncWide:
		return s.bi.Q(types.Int)
	case literal.EncUTF16:
		return s.bi.Q(types.UShort)
	case literal.EncUTF32:
		return s.bi.Q(types.UInt)
	case literal.EncUTF8:
		return s.bi.Q(types.UChar)
	}
	return s.bi.Q(types.Int)
}

// ActOnCharLiteral decodes a character constant.
func (s *Sema) ActOnCharLiteral(tok token.Token) ast.StmtID {
	ch, problems, err := literal.DecodeChar(tok.Text)
	s.reportProblems(tok, problems)
	if err != nil {
		s.errorf(diag.LexBadEscape, tok.Span, "%s", err.Error())
		return s.errorExpr(tok.Span)
	}
	return s.b.Stmts.NewChar(tok.Span, s.charType(ch.Encoding), ast.CharData{Encoding: ch.Encoding, Value: ch.Value})
}

func (s *Sema) stringElem(enc literal.Encoding) types.QualType {
	switch enc {
	case literal.EncWide:
		return s.bi.Q(types.Int)
	case literal.EncUTF16:
		return s.bi.Q(types.UShort)
	case literal.EncUTF32:
		return s.bi.Q(types.UInt)
	}
	return s.bi.Q(types.Char)
}

// ActOnStringLiteral concatenates adjacent string tokens.
func (s *Sema) ActOnStringLiteral(toks []token.Token) ast.StmtID {
	span := toks[0].Span.Cover(toks[len(toks)-1].Span)
	parts := make([]literal.String, 0, len(toks))
	for _, tok := range toks {
		str, problems, err := literal.DecodeString(tok.Text)
		s.reportProblems(tok, problems)
		if err != nil {
			s.errorf(diag.LexBadEscape, tok.Span, "%s", err.Error())
			return s.errorExpr(span)
		}
		parts = append(parts, str)
	}
	str, err := literal.Concat(parts...)
	if err != nil {
		s.errorf(diag.LexBadEscape, span, "%s", err.Error())
		return s.errorExpr(span)
	}
	return s.newString(span, str)
}

func (s *Sema) newString(span source.Span, str literal.String) ast.StmtID {
	ty := s.tys.ConstantArray(s.stringElem(str.Encoding), uint64(str.Len())+1)
	return s.b.Stmts.NewString(span, ty, str)
}

// intLiteral synthesizes an int-typed literal.
func (s *Sema) intLiteral(sp source.Span, q types.QualType, v uint64) ast.StmtID {
	width := uint32(s.tys.BitWidth(q)) //nolint:gosec // G115: builtin widths are small.
	return s.b.Stmts.NewInteger(sp, q, apint.FromUint64(64, v).Trunc(width))
}

func stringOf(text string) literal.String {
	units := make([]uint32, len(text))
	for i := range len(text) {
		units[i] = uint32(text[i])
	}
	return literal.String{Encoding: literal.EncAscii, Units: units}
}
