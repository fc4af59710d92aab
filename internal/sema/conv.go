package sema

import (
	"fmt"

	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/source"
	"cbridge/internal/types"
)

func (s *Sema) expr(id ast.StmtID) *ast.Stmt { return s.b.Stmts.Get(id) }

func (s *Sema) typeOf(id ast.StmtID) types.QualType { return s.b.Stmts.Get(id).Type }

func (s *Sema) spanOf(id ast.StmtID) source.Span { return s.b.Stmts.Get(id).Span }

func (s *Sema) isLValue(id ast.StmtID) bool { return s.b.Stmts.Get(id).Value == ast.LValue }

func (s *Sema) implicitCast(e ast.StmtID, ty types.QualType, kind ast.CastKind) ast.StmtID {
	return s.b.Stmts.NewImplicitCast(ty, kind, e)
}

// DecayAndLoad applies array-to-pointer, function-to-pointer and
// lvalue-to-rvalue conversions.
func (s *Sema) DecayAndLoad(e ast.StmtID) ast.StmtID {
	st := s.expr(e)
	if st == nil || st.Flags&ast.StmtInvalid != 0 {
		return e
	}
	ty := st.Type
	switch {
	case s.tys.IsArray(ty):
		elem, _ := s.tys.Element(ty)
		return s.implicitCast(e, s.tys.Pointer(elem), ast.CastArrayToPointerDecay)
	case s.tys.IsFunction(ty):
		return s.implicitCast(e, s.tys.Pointer(ty), ast.CastFunctionToPointerDecay)
	case st.Value == ast.LValue && !s.tys.IsVoid(ty):
		return s.implicitCast(e, ty.Unqualified(), ast.CastLValueToRValue)
	}
	return e
}

// UsualUnary is DecayAndLoad followed by integer promotion.
func (s *Sema) UsualUnary(e ast.StmtID) ast.StmtID {
	e = s.DecayAndLoad(e)
	ty := s.typeOf(e)
	if s.tys.IsInteger(ty) {
		if p := s.tys.Promote(ty); !s.tys.Same(p, ty.Unqualified()) {
			return s.implicitCast(e, p, ast.CastIntegralCast)
		}
	}
	return e
}

// defaultArgPromotion applies the promotions for variadic and
// unprototyped arguments.
func (s *Sema) defaultArgPromotion(e ast.StmtID) ast.StmtID {
	e = s.UsualUnary(e)
	if s.tys.BuiltinOf(s.typeOf(e)) == types.Float {
		return s.implicitCast(e, s.bi.Q(types.Double), ast.CastFloatingCast)
	}
	return e
}

// IsNullPointerConstant reports 0, (void *)0 and friends.
func (s *Sema) IsNullPointerConstant(e ast.StmtID) bool {
	e = s.b.Stmts.IgnoreParenImpCasts(e)
	st := s.expr(e)
	if st == nil {
		return false
	}
	if st.Kind == ast.ExprCStyleCast {
		pointee, ok := s.tys.Pointee(st.Type)
		if ok && s.tys.IsVoid(pointee) && pointee.Quals == 0 {
			return s.IsNullPointerConstant(s.b.Stmts.Cast(e).Sub)
		}
	}
	if !s.tys.IsInteger(st.Type) {
		return false
	}
	v, ok := s.EvaluateInt(e)
	return ok && v.Bits == 0
}

// castKind picks the conversion from one scalar type to another.
func (s *Sema) castKind(e ast.StmtID, from, to types.QualType) ast.CastKind {
	switch {
	case s.tys.IsVoid(to):
		return ast.CastToVoid
	case s.tys.BuiltinOf(to) == types.Bool && s.tys.KindOf(to) == types.KindBuiltin:
		switch {
		case s.tys.IsPointer(from):
			return ast.CastPointerToBoolean
		case s.tys.IsFloating(from):
			return ast.CastFloatingToBoolean
		case s.tys.BuiltinOf(from) == types.Bool:
			return ast.CastNoOp
		}
		return ast.CastIntegralToBoolean
	case s.tys.IsInteger(to):
		switch {
		case s.tys.IsInteger(from):
			return ast.CastIntegralCast
		case s.tys.IsFloating(from):
			return ast.CastFloatingToIntegral
		case s.tys.IsPointer(from):
			return ast.CastPointerToIntegral
		}
	case s.tys.IsFloating(to):
		if s.tys.IsFloating(from) {
			return ast.CastFloatingCast
		}
		return ast.CastIntegralToFloating
	case s.tys.IsPointer(to):
		switch {
		case s.tys.IsPointer(from):
			pf, _ := s.tys.Pointee(from)
			pt, _ := s.tys.Pointee(to)
			if s.tys.Same(pf.Unqualified(), pt.Unqualified()) {
				return ast.CastNoOp
			}
			return ast.CastBitCast
		case s.IsNullPointerConstant(e):
			return ast.CastNullToPointer
		case s.tys.IsInteger(from):
			return ast.CastIntegralToPointer
		}
	case s.tys.IsRecord(to):
		if info, ok := s.tys.Tag(s.tys.Canonical(to).ID); ok && info.Kind == types.TagUnion && !s.tys.Same(from.Unqualified(), to.Unqualified()) {
			return ast.CastToUnion
		}
	}
	return ast.CastNoOp
}

// ImpCastTo converts an rvalue expression to ty, inserting a cast only when
// the types differ.
func (s *Sema) ImpCastTo(e ast.StmtID, ty types.QualType) ast.StmtID {
	from := s.typeOf(e)
	if s.tys.Same(from.Unqualified(), ty.Unqualified()) {
		return e
	}
	return s.implicitCast(e, ty.Unqualified(), s.castKind(e, from, ty))
}

// AssignContext selects the wording of conversion diagnostics.
type AssignContext uint8

const (
	AssignAssigning AssignContext = iota
	AssignInitializing
	AssignPassing
	AssignReturning
)

func (c AssignContext) describe(dst, src string) string {
	switch c {
	case AssignInitializing:
		return fmt.Sprintf("initializing '%s' with an expression of type '%s'", dst, src)
	case AssignPassing:
		return fmt.Sprintf("passing '%s' to parameter of type '%s'", src, dst)
	case AssignReturning:
		return fmt.Sprintf("returning '%s' from a function with result type '%s'", src, dst)
	}
	return fmt.Sprintf("assigning to '%s' from '%s'", dst, src)
}

// CheckAssignment converts e for storage into an object of type dst.
func (s *Sema) CheckAssignment(dst types.QualType, e ast.StmtID, ctx AssignContext) ast.StmtID {
	if s.expr(e).Flags&ast.StmtInvalid != 0 {
		return e
	}
	e = s.DecayAndLoad(e)
	src := s.typeOf(e)
	sp := s.spanOf(e)
	switch {
	case s.tys.IsArithmetic(dst) && s.tys.IsArithmetic(src):
		return s.ImpCastTo(e, dst)
	case s.tys.BuiltinOf(dst) == types.Bool && s.tys.IsPointer(src):
		return s.ImpCastTo(e, dst)
	case s.tys.IsPointer(dst) && s.tys.IsPointer(src):
		s.checkPointerAssign(dst, src, sp, ctx)
		return s.ImpCastTo(e, dst)
	case s.tys.IsPointer(dst) && s.IsNullPointerConstant(e):
		return s.implicitCast(e, dst.Unqualified(), ast.CastNullToPointer)
	case s.tys.IsPointer(dst) && s.tys.IsInteger(src):
		s.warnf(diag.SemaIntPointerConversion, sp, "incompatible integer to pointer conversion %s", ctx.describe(s.spell(dst.Unqualified()), s.spell(src)))
		return s.implicitCast(e, dst.Unqualified(), ast.CastIntegralToPointer)
	case s.tys.IsInteger(dst) && s.tys.IsPointer(src):
		s.warnf(diag.SemaIntPointerConversion, sp, "incompatible pointer to integer conversion %s", ctx.describe(s.spell(dst.Unqualified()), s.spell(src)))
		return s.implicitCast(e, dst.Unqualified(), ast.CastPointerToIntegral)
	case s.tys.Compatible(dst.Unqualified(), src.Unqualified()):
		return e
	}
	s.errorf(diag.SemaIncompatibleTypes, sp, "incompatible types %s", ctx.describe(s.spell(dst.Unqualified()), s.spell(src)))
	return e
}

func (s *Sema) checkPointerAssign(dst, src types.QualType, sp source.Span, ctx AssignContext) {
	pd, _ := s.tys.Pointee(dst)
	ps, _ := s.tys.Pointee(src)
	cd, cs := s.tys.Canonical(pd), s.tys.Canonical(ps)
	if cs.Quals&^cd.Quals != 0 {
		s.warnf(diag.SemaIncompatiblePointer, sp, "%s discards qualifiers", ctx.describe(s.spell(dst.Unqualified()), s.spell(src)))
		return
	}
	if s.tys.IsVoid(cd) || s.tys.IsVoid(cs) {
		return
	}
	if !s.tys.Compatible(cd.Unqualified(), cs.Unqualified()) {
		s.warnf(diag.SemaIncompatiblePointer, sp, "incompatible pointer types %s", ctx.describe(s.spell(dst.Unqualified()), s.spell(src)))
	}
}

// CheckCondition converts a controlling expression to an rvalue scalar.
func (s *Sema) CheckCondition(e ast.StmtID) ast.StmtID {
	if !e.IsValid() || s.expr(e).Flags&ast.StmtInvalid != 0 {
		return e
	}
	e = s.DecayAndLoad(e)
	if ty := s.typeOf(e); !s.tys.IsScalar(ty) {
		s.errorf(diag.SemaIncompatibleTypes, s.spanOf(e), "statement requires expression of scalar type ('%s' invalid)", s.spell(ty))
	}
	return e
}
