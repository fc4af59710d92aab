package sema

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/source"
	"cbridge/internal/types"
)

// ActOnIdentifier resolves a name used as a primary expression.
// callee is true when the name is immediately followed by '('.
func (s *Sema) ActOnIdentifier(name string, sp source.Span, callee bool) ast.StmtID {
	id := s.b.Strings.Intern(name)
	decl, _ := s.lookupOrdinary(id)
	if !decl.IsValid() {
		if callee {
			decl = s.implicitFunction(id, name, sp)
		} else {
			s.errorf(diag.SemaUndeclaredIdent, sp, "use of undeclared identifier '%s'", name)
			return s.errorExpr(sp)
		}
	}
	d := s.b.Decls.Get(decl)
	d.Flags |= ast.DeclReferenced | ast.DeclUsed
	switch d.Kind {
	case ast.DeclTypedef:
		s.errorf(diag.SynExpectExpression, sp, "unexpected type name '%s': expected expression", name)
		return s.errorExpr(sp)
	case ast.DeclEnumConstant:
		return s.b.Stmts.NewDeclRef(sp, d.Type, ast.RValue, decl)
	}
	return s.b.Stmts.NewDeclRef(sp, d.Type, ast.LValue, decl)
}

// implicitFunction declares `int name()` for a call to an undeclared name.
func (s *Sema) implicitFunction(id source.StringID, name string, sp source.Span) ast.DeclID {
	if s.opts.Standard.IsC89() {
		s.warnf(diag.SemaImplicitFunctionDecl, sp, "implicit declaration of function '%s'", name)
	} else {
		s.warnf(diag.SemaImplicitFunctionDecl, sp, "call to undeclared function '%s'; ISO C99 and later do not support implicit function declarations", name)
	}
	ty := s.tys.FunctionNoProto(s.bi.Q(types.Int))
	fn := s.b.Decls.NewFunction(source.Span{}, source.Span{}, id, ty, ast.FunctionData{Storage: ast.SCExtern})
	s.b.Decls.Get(fn).Flags |= ast.DeclImplicit
	s.b.Decls.AddToContext(s.b.TU, fn)
	s.fileScope().ordinary[id] = fn
	return fn
}

// ActOnPredefined builds __func__ and its GNU spellings.
func (s *Sema) ActOnPredefined(kind ast.PredefinedKind, sp source.Span) ast.StmtID {
	fname := ""
	if s.fn != nil {
		fname = s.b.Name(s.fn.decl)
	} else {
		s.warnf(diag.SemaUndeclaredIdent, sp, "predefined identifier is only valid inside function")
	}
	if kind == ast.PredefPrettyFunction && s.fn != nil {
		fname = s.prettyFunction(s.fn.decl)
	}
	str := s.newString(sp, stringOf(fname))
	s.b.Stmts.Get(str).Flags |= ast.StmtImplicit
	ty := s.typeOf(str)
	elem, _ := s.tys.Element(ty)
	arr := s.tys.ConstantArray(elem.With(types.Const), uint64(len(fname))+1)
	return s.b.Stmts.NewPredefined(sp, arr, ast.PredefinedData{Kind: kind, Name: str})
}

func (s *Sema) prettyFunction(fn ast.DeclID) string {
	d := s.b.Decls.Get(fn)
	result, _ := s.tys.Result(d.Type)
	out := s.spell(result) + " " + s.b.Name(fn) + "("
	if info, ok := s.tys.FnInfo(d.Type.ID); ok {
		for i, p := range info.Params {
			if i > 0 {
				out += ", "
			}
			out += s.spell(p)
		}
		if info.Variadic {
			if len(info.Params) > 0 {
				out += ", "
			}
			out += "..."
		}
	}
	return out + ")"
}

// ActOnParen wraps sub in a ParenExpr.
func (s *Sema) ActOnParen(sp source.Span, sub ast.StmtID) ast.StmtID {
	id := s.b.Stmts.NewParen(sp, sub)
	if s.IsInvalid(sub) {
		s.b.Stmts.Get(id).Flags |= ast.StmtInvalid
	}
	return id
}

// checkModifiable reports non-lvalues and const objects.
func (s *Sema) checkModifiable(e ast.StmtID, opSpan source.Span) bool {
	st := s.expr(e)
	if st.Flags&ast.StmtInvalid != 0 {
		return false
	}
	if st.Value != ast.LValue {
		s.errorf(diag.SemaNotAssignable, st.Span, "expression is not assignable")
		return false
	}
	if s.tys.Canonical(st.Type).Quals&types.Const != 0 {
		s.errorf(diag.SemaNotAssignable, st.Span, "cannot assign to variable with const-qualified type '%s'", s.spell(st.Type))
		return false
	}
	if s.tys.IsArray(st.Type) {
		s.errorf(diag.SemaNotAssignable, st.Span, "array type '%s' is not assignable", s.spell(st.Type))
		return false
	}
	return true
}

// ActOnUnary builds a unary operator node.
func (s *Sema) ActOnUnary(op ast.UnaryOp, opSpan source.Span, sub ast.StmtID) ast.StmtID {
	span := opSpan.Cover(s.spanOf(sub))
	if s.IsInvalid(sub) {
		return s.errorExpr(span)
	}
	ty, vk := s.bi.Q(types.Int), ast.RValue
	switch op {
	case ast.UnaryAddrOf:
		st := s.expr(sub)
		if st.Value != ast.LValue && !s.tys.IsFunction(st.Type) {
			s.errorf(diag.SemaNotAnLValue, st.Span, "cannot take the address of an rvalue of type '%s'", s.spell(st.Type))
			return s.errorExpr(span)
		}
		ty = s.tys.Pointer(st.Type)
	case ast.UnaryDeref:
		sub = s.UsualUnary(sub)
		pointee, ok := s.tys.Pointee(s.typeOf(sub))
		if !ok {
			s.errorf(diag.SemaInvalidOperands, s.spanOf(sub), "indirection requires pointer operand ('%s' invalid)", s.spell(s.typeOf(sub)))
			return s.errorExpr(span)
		}
		ty, vk = pointee, ast.LValue
	case ast.UnaryPlus, ast.UnaryMinus:
		sub = s.UsualUnary(sub)
		if !s.tys.IsArithmetic(s.typeOf(sub)) {
			return s.invalidUnary(op, sub, span)
		}
		ty = s.typeOf(sub)
	case ast.UnaryNot:
		sub = s.UsualUnary(sub)
		if !s.tys.IsInteger(s.typeOf(sub)) {
			return s.invalidUnary(op, sub, span)
		}
		ty = s.typeOf(sub)
	case ast.UnaryLNot:
		sub = s.DecayAndLoad(sub)
		if !s.tys.IsScalar(s.typeOf(sub)) {
			return s.invalidUnary(op, sub, span)
		}
	case ast.UnaryPreInc, ast.UnaryPreDec, ast.UnaryPostInc, ast.UnaryPostDec:
		st := s.expr(sub)
		if !s.tys.IsScalar(st.Type) {
			return s.invalidUnary(op, sub, span)
		}
		if !s.checkModifiable(sub, opSpan) {
			return s.errorExpr(span)
		}
		ty = st.Type.Unqualified()
	case ast.UnaryExtension, ast.UnaryReal, ast.UnaryImag:
		st := s.expr(sub)
		ty, vk = st.Type, st.Value
	}
	return s.b.Stmts.NewUnary(span, opSpan, ty, vk, ast.UnaryData{Op: op, Sub: sub})
}

func (s *Sema) invalidUnary(op ast.UnaryOp, sub ast.StmtID, span source.Span) ast.StmtID {
	s.errorf(diag.SemaInvalidOperands, span, "invalid argument type '%s' to unary expression '%s'", s.spell(s.typeOf(sub)), op)
	return s.errorExpr(span)
}

func (s *Sema) invalidBinary(lhs, rhs ast.StmtID, span source.Span) ast.StmtID {
	s.errorf(diag.SemaInvalidOperands, span, "invalid operands to binary expression ('%s' and '%s')", s.spell(s.typeOf(lhs)), s.spell(s.typeOf(rhs)))
	return s.errorExpr(span)
}

// arith applies the usual arithmetic conversions to both operands.
func (s *Sema) arith(lhs, rhs ast.StmtID) (ast.StmtID, ast.StmtID, types.QualType) {
	common := s.tys.UsualArithmetic(s.typeOf(lhs), s.typeOf(rhs))
	return s.ImpCastTo(lhs, common), s.ImpCastTo(rhs, common), common
}

// ActOnBinary builds BinaryOperator and CompoundAssignOperator nodes.
func (s *Sema) ActOnBinary(op ast.BinaryOp, opSpan source.Span, lhs, rhs ast.StmtID) ast.StmtID {
	span := s.spanOf(lhs).Cover(s.spanOf(rhs))
	if s.IsInvalid(lhs) || s.IsInvalid(rhs) {
		return s.errorExpr(span)
	}
	switch {
	case op == ast.BinaryAssign:
		if !s.checkModifiable(lhs, opSpan) {
			return s.errorExpr(span)
		}
		lt := s.typeOf(lhs).Unqualified()
		rhs = s.CheckAssignment(lt, rhs, AssignAssigning)
		return s.b.Stmts.NewBinary(span, opSpan, lt, ast.RValue, ast.BinaryData{Op: op, LHS: lhs, RHS: rhs})
	case op.IsCompoundAssignment():
		return s.compoundAssign(op, opSpan, span, lhs, rhs)
	case op == ast.BinaryComma:
		rhs = s.DecayAndLoad(rhs)
		return s.b.Stmts.NewBinary(span, opSpan, s.typeOf(rhs), ast.RValue, ast.BinaryData{Op: op, LHS: lhs, RHS: rhs})
	case op.IsLogical():
		lhs, rhs = s.DecayAndLoad(lhs), s.DecayAndLoad(rhs)
		if !s.tys.IsScalar(s.typeOf(lhs)) || !s.tys.IsScalar(s.typeOf(rhs)) {
			return s.invalidBinary(lhs, rhs, span)
		}
		return s.b.Stmts.NewBinary(span, opSpan, s.bi.Q(types.Int), ast.RValue, ast.BinaryData{Op: op, LHS: lhs, RHS: rhs})
	}

	lhs, rhs = s.UsualUnary(lhs), s.UsualUnary(rhs)
	lt, rt := s.typeOf(lhs), s.typeOf(rhs)
	var ty types.QualType
	switch {
	case op == ast.BinaryMul || op == ast.BinaryDiv:
		if !s.tys.IsArithmetic(lt) || !s.tys.IsArithmetic(rt) {
			return s.invalidBinary(lhs, rhs, span)
		}
		lhs, rhs, ty = s.arith(lhs, rhs)
	case op == ast.BinaryRem || op.IsBitwise():
		if !s.tys.IsInteger(lt) || !s.tys.IsInteger(rt) {
			return s.invalidBinary(lhs, rhs, span)
		}
		lhs, rhs, ty = s.arith(lhs, rhs)
	case op.IsShift():
		if !s.tys.IsInteger(lt) || !s.tys.IsInteger(rt) {
			return s.invalidBinary(lhs, rhs, span)
		}
		ty = lt
	case op == ast.BinaryAdd || op == ast.BinarySub:
		var ok bool
		lhs, rhs, ty, ok = s.additive(op, lhs, rhs)
		if !ok {
			return s.invalidBinary(lhs, rhs, span)
		}
	case op.IsComparison():
		var ok bool
		lhs, rhs, ok = s.comparison(lhs, rhs, span)
		if !ok {
			return s.invalidBinary(lhs, rhs, span)
		}
		ty = s.bi.Q(types.Int)
	}
	return s.b.Stmts.NewBinary(span, opSpan, ty, ast.RValue, ast.BinaryData{Op: op, LHS: lhs, RHS: rhs})
}

func (s *Sema) additive(op ast.BinaryOp, lhs, rhs ast.StmtID) (ast.StmtID, ast.StmtID, types.QualType, bool) {
	lt, rt := s.typeOf(lhs), s.typeOf(rhs)
	switch {
	case s.tys.IsArithmetic(lt) && s.tys.IsArithmetic(rt):
		l, r, ty := s.arith(lhs, rhs)
		return l, r, ty, true
	case s.tys.IsPointer(lt) && s.tys.IsInteger(rt):
		return lhs, rhs, lt, true
	case op == ast.BinaryAdd && s.tys.IsInteger(lt) && s.tys.IsPointer(rt):
		return lhs, rhs, rt, true
	case op == ast.BinarySub && s.tys.IsPointer(lt) && s.tys.IsPointer(rt):
		return lhs, rhs, s.bi.Q(types.Long), true
	}
	return lhs, rhs, types.QualType{}, false
}

func (s *Sema) comparison(lhs, rhs ast.StmtID, span source.Span) (ast.StmtID, ast.StmtID, bool) {
	lt, rt := s.typeOf(lhs), s.typeOf(rhs)
	switch {
	case s.tys.IsArithmetic(lt) && s.tys.IsArithmetic(rt):
		l, r, _ := s.arith(lhs, rhs)
		return l, r, true
	case s.tys.IsPointer(lt) && s.tys.IsPointer(rt):
		pl, _ := s.tys.Pointee(lt)
		pr, _ := s.tys.Pointee(rt)
		switch {
		case s.tys.IsVoid(pl):
			rhs = s.ImpCastTo(rhs, lt)
		case s.tys.IsVoid(pr):
			lhs = s.ImpCastTo(lhs, rt)
		case !s.tys.Compatible(pl.Unqualified(), pr.Unqualified()):
			s.warnf(diag.SemaIncompatiblePointer, span, "comparison of distinct pointer types ('%s' and '%s')", s.spell(lt), s.spell(rt))
			rhs = s.ImpCastTo(rhs, lt)
		}
		return lhs, rhs, true
	case s.tys.IsPointer(lt) && s.IsNullPointerConstant(rhs):
		return lhs, s.implicitCast(rhs, lt, ast.CastNullToPointer), true
	case s.tys.IsPointer(rt) && s.IsNullPointerConstant(lhs):
		return s.implicitCast(lhs, rt, ast.CastNullToPointer), rhs, true
	case s.tys.IsPointer(lt) && s.tys.IsInteger(rt):
		s.warnf(diag.SemaIntPointerConversion, span, "comparison between pointer and integer ('%s' and '%s')", s.spell(lt), s.spell(rt))
		return lhs, s.implicitCast(rhs, lt, ast.CastIntegralToPointer), true
	case s.tys.IsInteger(lt) && s.tys.IsPointer(rt):
		s.warnf(diag.SemaIntPointerConversion, span, "comparison between pointer and integer ('%s' and '%s')", s.spell(lt), s.spell(rt))
		return s.implicitCast(lhs, rt, ast.CastIntegralToPointer), rhs, true
	}
	return lhs, rhs, false
}

func (s *Sema) compoundAssign(op ast.BinaryOp, opSpan, span source.Span, lhs, rhs ast.StmtID) ast.StmtID {
	if !s.checkModifiable(lhs, opSpan) {
		return s.errorExpr(span)
	}
	lt := s.typeOf(lhs).Unqualified()
	rhs = s.UsualUnary(rhs)
	rt := s.typeOf(rhs)
	base := op.Underlying()
	var comp types.QualType
	switch {
	case (base == ast.BinaryAdd || base == ast.BinarySub) && s.tys.IsPointer(lt) && s.tys.IsInteger(rt):
		comp = lt
	case base.IsShift():
		if !s.tys.IsInteger(lt) || !s.tys.IsInteger(rt) {
			return s.invalidBinary(lhs, rhs, span)
		}
		comp = s.tys.Promote(lt)
	case base == ast.BinaryRem || base.IsBitwise():
		if !s.tys.IsInteger(lt) || !s.tys.IsInteger(rt) {
			return s.invalidBinary(lhs, rhs, span)
		}
		comp = s.tys.UsualArithmetic(lt, rt)
		rhs = s.ImpCastTo(rhs, comp)
	default:
		if !s.tys.IsArithmetic(lt) || !s.tys.IsArithmetic(rt) {
			return s.invalidBinary(lhs, rhs, span)
		}
		comp = s.tys.UsualArithmetic(lt, rt)
		rhs = s.ImpCastTo(rhs, comp)
	}
	return s.b.Stmts.NewBinary(span, opSpan, lt, ast.RValue, ast.BinaryData{
		Op:                    op,
		LHS:                   lhs,
		RHS:                   rhs,
		ComputationLHSType:    comp,
		ComputationResultType: comp,
	})
}

// ActOnConditional builds `c ? t : f`.
func (s *Sema) ActOnConditional(cond, t, f ast.StmtID) ast.StmtID {
	span := s.spanOf(cond).Cover(s.spanOf(f))
	if s.IsInvalid(cond) || s.IsInvalid(t) || s.IsInvalid(f) {
		return s.errorExpr(span)
	}
	cond = s.CheckCondition(cond)
	t, f = s.DecayAndLoad(t), s.DecayAndLoad(f)
	tt, ft := s.typeOf(t), s.typeOf(f)
	var ty types.QualType
	switch {
	case s.tys.IsArithmetic(tt) && s.tys.IsArithmetic(ft):
		t, f, ty = s.arith(t, f)
	case s.tys.IsVoid(tt) && s.tys.IsVoid(ft):
		ty = s.bi.Q(types.Void)
	case s.tys.IsPointer(tt) && s.IsNullPointerConstant(f):
		ty = tt
		f = s.implicitCast(f, tt, ast.CastNullToPointer)
	case s.tys.IsPointer(ft) && s.IsNullPointerConstant(t):
		ty = ft
		t = s.implicitCast(t, ft, ast.CastNullToPointer)
	case s.tys.IsPointer(tt) && s.tys.IsPointer(ft):
		pt, _ := s.tys.Pointee(tt)
		pf, _ := s.tys.Pointee(ft)
		switch {
		case s.tys.IsVoid(pt):
			ty = s.tys.Pointer(pt.With(pf.Quals))
		case s.tys.IsVoid(pf):
			ty = s.tys.Pointer(pf.With(pt.Quals))
		default:
			if !s.tys.Compatible(pt.Unqualified(), pf.Unqualified()) {
				s.warnf(diag.SemaIncompatiblePointer, span, "pointer type mismatch ('%s' and '%s')", s.spell(tt), s.spell(ft))
			}
			ty = s.tys.Pointer(pt.With(pf.Quals))
		}
		t, f = s.ImpCastTo(t, ty), s.ImpCastTo(f, ty)
	case s.tys.Same(tt.Unqualified(), ft.Unqualified()):
		ty = tt.Unqualified()
	default:
		s.errorf(diag.SemaIncompatibleTypes, span, "incompatible operand types ('%s' and '%s')", s.spell(tt), s.spell(ft))
		return s.errorExpr(span)
	}
	return s.b.Stmts.NewConditional(span, ty, ast.ConditionalData{Cond: cond, True: t, False: f})
}

// ActOnCall checks arguments against the callee's prototype.
func (s *Sema) ActOnCall(callee ast.StmtID, args []ast.StmtID, rparen source.Span) ast.StmtID {
	span := s.spanOf(callee).Cover(rparen)
	if s.IsInvalid(callee) {
		return s.errorExpr(span)
	}
	callee = s.UsualUnary(callee)
	fnTy, ok := s.tys.Pointee(s.typeOf(callee))
	if !ok || !s.tys.IsFunction(fnTy) {
		s.errorf(diag.SemaNotCallable, s.spanOf(callee), "called object type '%s' is not a function or function pointer", s.spell(s.typeOf(callee)))
		return s.errorExpr(span)
	}
	result, _ := s.tys.Result(fnTy)
	info, proto := s.tys.FnInfo(s.tys.Canonical(fnTy).ID)
	out := make([]ast.StmtID, len(args))
	for i, a := range args {
		switch {
		case s.IsInvalid(a):
			out[i] = a
		case proto && i < len(info.Params):
			out[i] = s.CheckAssignment(info.Params[i], a, AssignPassing)
		default:
			out[i] = s.defaultArgPromotion(a)
		}
	}
	if proto {
		switch {
		case len(args) < len(info.Params):
			s.errorf(diag.SemaArgCount, rparen, "too few arguments to function call, expected %d, have %d", len(info.Params), len(args))
		case len(args) > len(info.Params) && !info.Variadic:
			s.errorf(diag.SemaArgCount, s.spanOf(args[len(info.Params)]), "too many arguments to function call, expected %d, have %d", len(info.Params), len(args))
		}
	}
	if !s.tys.IsVoid(result) && !s.tys.IsComplete(result) {
		s.errorf(diag.SemaIncompleteType, span, "calling function with incomplete return type '%s'", s.spell(result))
	}
	return s.b.Stmts.NewCall(span, result.Unqualified(), callee, out)
}

// ActOnSubscript builds a[i]; either operand may be the pointer.
func (s *Sema) ActOnSubscript(base, idx ast.StmtID, rbracket source.Span) ast.StmtID {
	span := s.spanOf(base).Cover(rbracket)
	if s.IsInvalid(base) || s.IsInvalid(idx) {
		return s.errorExpr(span)
	}
	base, idx = s.UsualUnary(base), s.UsualUnary(idx)
	bt, it := s.typeOf(base), s.typeOf(idx)
	var elem types.QualType
	switch {
	case s.tys.IsPointer(bt) && s.tys.IsInteger(it):
		elem, _ = s.tys.Pointee(bt)
	case s.tys.IsInteger(bt) && s.tys.IsPointer(it):
		elem, _ = s.tys.Pointee(it)
	default:
		s.errorf(diag.SemaSubscriptNotArray, s.spanOf(base), "subscripted value is not an array, pointer, or vector")
		return s.errorExpr(span)
	}
	return s.b.Stmts.NewSubscript(span, elem, ast.SubscriptData{LHS: base, RHS: idx})
}

// ActOnMember builds s.f and p->f.
func (s *Sema) ActOnMember(base ast.StmtID, arrow bool, opSpan source.Span, name string, nameSpan source.Span) ast.StmtID {
	span := s.spanOf(base).Cover(nameSpan)
	if s.IsInvalid(base) {
		return s.errorExpr(span)
	}
	recTy := s.typeOf(base)
	vk := s.expr(base).Value
	if arrow {
		base = s.UsualUnary(base)
		pointee, ok := s.tys.Pointee(s.typeOf(base))
		if !ok {
			s.errorf(diag.SemaMemberBaseNotRecord, s.spanOf(base), "member reference type '%s' is not a pointer", s.spell(s.typeOf(base)))
			return s.errorExpr(span)
		}
		recTy, vk = pointee, ast.LValue
	}
	info, ok := s.tys.Tag(s.tys.Canonical(recTy).ID)
	if !ok || info.Kind == types.TagEnum {
		s.errorf(diag.SemaMemberBaseNotRecord, s.spanOf(base), "member reference base type '%s' is not a structure or union", s.spell(recTy))
		return s.errorExpr(span)
	}
	if !info.Complete {
		s.errorf(diag.SemaIncompleteType, s.spanOf(base), "incomplete definition of type '%s'", s.spell(recTy))
		return s.errorExpr(span)
	}
	path := s.findField(ast.DeclID(info.Decl), s.b.Strings.Intern(name))
	if len(path) == 0 {
		s.errorf(diag.SemaNoMember, nameSpan, "no member named '%s' in '%s'", name, s.spell(recTy.Unqualified()))
		return s.errorExpr(span)
	}
	quals := s.tys.Canonical(recTy).Quals
	cur := base
	for i, field := range path {
		fty := s.b.Decls.Get(field).Type.With(quals)
		fieldSpan := nameSpan
		if i < len(path)-1 {
			fieldSpan = s.spanOf(base)
		}
		cur = s.b.Stmts.NewMember(s.spanOf(base).Cover(fieldSpan), opSpan, fty, vk, ast.MemberData{Base: cur, Member: field, Arrow: arrow && i == 0})
		if i < len(path)-1 {
			s.b.Stmts.Get(cur).Flags |= ast.StmtImplicit
		}
		s.b.Decls.Get(field).Flags |= ast.DeclReferenced
	}
	return cur
}

// findField returns the chain of fields reaching name, descending through
// anonymous struct and union members.
func (s *Sema) findField(record ast.DeclID, name source.StringID) []ast.DeclID {
	for d := s.b.Decls.FirstChild(record); d.IsValid(); d = s.b.Decls.NextSibling(d) {
		decl := s.b.Decls.Get(d)
		if decl.Kind != ast.DeclField {
			continue
		}
		if decl.Name == name && name != source.NoStringID {
			return []ast.DeclID{d}
		}
		if decl.Name == source.NoStringID {
			if info, ok := s.tys.Tag(s.tys.Canonical(decl.Type).ID); ok && info.Kind != types.TagEnum {
				if sub := s.findField(ast.DeclID(info.Decl), name); len(sub) > 0 {
					return append([]ast.DeclID{d}, sub...)
				}
			}
		}
	}
	return nil
}

// ActOnCast builds a C-style cast `(ty)sub`.
func (s *Sema) ActOnCast(lparen source.Span, ty types.QualType, sub ast.StmtID) ast.StmtID {
	span := lparen.Cover(s.spanOf(sub))
	if s.IsInvalid(sub) {
		return s.errorExpr(span)
	}
	if s.tys.IsVoid(ty) {
		return s.b.Stmts.NewCStyleCast(span, ty, ast.CastData{Kind: ast.CastToVoid, Sub: sub, Written: ty})
	}
	sub = s.DecayAndLoad(sub)
	from := s.typeOf(sub)
	switch {
	case s.tys.IsScalar(ty) && s.tys.IsScalar(from):
		if s.tys.IsFloating(ty) && s.tys.IsPointer(from) || s.tys.IsPointer(ty) && s.tys.IsFloating(from) {
			s.errorf(diag.SemaIncompatibleTypes, span, "pointer cannot be cast to or from type '%s'", s.spell(ty))
			return s.errorExpr(span)
		}
	case s.tys.IsRecord(ty) && s.tys.Same(ty.Unqualified(), from.Unqualified()):
	case s.castKind(sub, from, ty) == ast.CastToUnion:
	default:
		s.errorf(diag.SemaIncompatibleTypes, span, "operand of type '%s' where arithmetic or pointer type is required", s.spell(from))
		return s.errorExpr(span)
	}
	kind := s.castKind(sub, from, ty)
	return s.b.Stmts.NewCStyleCast(span, ty.Unqualified(), ast.CastData{Kind: kind, Sub: sub, Written: ty})
}

// ActOnTraitType builds sizeof(type) or _Alignof(type).
func (s *Sema) ActOnTraitType(kind ast.TraitKind, span source.Span, ty types.QualType) ast.StmtID {
	s.checkTraitOperand(kind, span, ty)
	return s.b.Stmts.NewTrait(span, s.bi.Q(types.ULong), ast.TraitData{Kind: kind, ArgType: ty})
}

// ActOnTraitExpr builds sizeof expr; the operand is not evaluated.
func (s *Sema) ActOnTraitExpr(kind ast.TraitKind, span source.Span, e ast.StmtID) ast.StmtID {
	if !s.IsInvalid(e) {
		s.checkTraitOperand(kind, span, s.typeOf(e))
	}
	return s.b.Stmts.NewTrait(span, s.bi.Q(types.ULong), ast.TraitData{Kind: kind, ArgExpr: e})
}

func (s *Sema) checkTraitOperand(kind ast.TraitKind, span source.Span, ty types.QualType) {
	if s.tys.IsFunction(ty) {
		s.warnf(diag.SemaIncompleteType, span, "invalid application of '%s' to a function type", kind)
		return
	}
	if s.tys.IsVoid(ty) {
		s.warnf(diag.SemaIncompleteType, span, "invalid application of '%s' to a void type", kind)
		return
	}
	if !s.tys.IsComplete(ty) {
		s.errorf(diag.SemaIncompleteType, span, "invalid application of '%s' to an incomplete type '%s'", kind, s.spell(ty))
	}
}

// ActOnVAArg builds __builtin_va_arg(ap, ty).
func (s *Sema) ActOnVAArg(span source.Span, ap ast.StmtID, ty types.QualType) ast.StmtID {
	if !s.IsInvalid(ap) {
		if !s.tys.Same(s.typeOf(ap).Unqualified(), s.bi.Q(types.VaList)) {
			s.errorf(diag.SemaIncompatibleTypes, s.spanOf(ap), "first argument to 'va_arg' is of type '%s' and not 'va_list'", s.spell(s.typeOf(ap)))
		}
	}
	return s.b.Stmts.NewVAArg(span, ty.Unqualified(), ast.VAArgData{Sub: ap, Written: ty})
}

// ActOnStmtExpr types a GNU statement expression by its last statement.
func (s *Sema) ActOnStmtExpr(span source.Span, body ast.StmtID) ast.StmtID {
	ty := s.bi.Q(types.Void)
	if last := s.b.Stmts.BodyTail(body); last.IsValid() {
		if st := s.expr(last); st.Kind.IsExpr() && st.Flags&ast.StmtInvalid == 0 {
			ty = st.Type.Unqualified()
		}
	}
	return s.b.Stmts.NewStmtExpr(span, ty, body)
}
