package sema

import (
	"strconv"

	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/source"
	"cbridge/internal/types"
)

// ActOnNull builds `;`.
func (s *Sema) ActOnNull(sp source.Span) ast.StmtID {
	return s.b.Stmts.NewNull(sp)
}

// ActOnCompound builds `{ ... }`; scopes are managed by the caller.
func (s *Sema) ActOnCompound(span source.Span, items []ast.StmtID) ast.StmtID {
	return s.b.Stmts.NewCompound(span, items)
}

// ActOnDeclStmt groups the declarations of one block-scope declaration.
func (s *Sema) ActOnDeclStmt(span source.Span, group []ast.DeclID) ast.StmtID {
	return s.b.Stmts.NewDeclStmt(span, s.b.Decls, group)
}

// ActOnExprStmt finishes an expression used as a statement.
func (s *Sema) ActOnExprStmt(e ast.StmtID) ast.StmtID {
	if st := s.expr(e); st.Kind == ast.ExprBinaryOperator && !s.IsInvalid(e) {
		switch op := s.b.Stmts.Binary(e).Op; {
		case op == ast.BinaryEQ || op == ast.BinaryNE:
			s.warnf(diag.SemaInfo, st.OpLoc, "equality comparison result unused")
		case op.IsComparison():
			s.warnf(diag.SemaInfo, st.OpLoc, "relational comparison result unused")
		}
	}
	return e
}

// ActOnIf builds if and if/else.
func (s *Sema) ActOnIf(kw source.Span, cond, then ast.StmtID, elseLoc source.Span, els ast.StmtID) ast.StmtID {
	span := kw.Cover(s.spanOf(then))
	if els.IsValid() {
		span = span.Cover(s.spanOf(els))
	}
	return s.b.Stmts.NewIf(span, ast.IfData{Cond: s.CheckCondition(cond), Then: then, Else: els, ElseLoc: elseLoc})
}

// EnterLoop and ExitLoop bracket loop bodies for break and continue.
func (s *Sema) EnterLoop() {
	if s.fn != nil {
		s.fn.loops++
	}
}

func (s *Sema) ExitLoop() {
	if s.fn != nil {
		s.fn.loops--
	}
}

// ActOnWhile builds a while loop.
func (s *Sema) ActOnWhile(kw source.Span, cond, body ast.StmtID) ast.StmtID {
	return s.b.Stmts.NewLoop(ast.StmtWhile, kw.Cover(s.spanOf(body)), ast.LoopData{Cond: s.CheckCondition(cond), Body: body})
}

// ActOnDo builds do/while; end covers the closing parenthesis.
func (s *Sema) ActOnDo(kw source.Span, body, cond ast.StmtID, end source.Span) ast.StmtID {
	return s.b.Stmts.NewLoop(ast.StmtDo, kw.Cover(end), ast.LoopData{Cond: s.CheckCondition(cond), Body: body})
}

// ActOnFor builds a for loop; init is a DeclStmt or expression.
func (s *Sema) ActOnFor(kw source.Span, init, cond, inc, body ast.StmtID) ast.StmtID {
	if cond.IsValid() {
		cond = s.CheckCondition(cond)
	}
	if init.IsValid() && s.expr(init).Kind == ast.StmtDecl {
		s.checkForDecls(init)
	}
	data := ast.LoopData{Init: init, Cond: cond, Inc: inc, Body: body}
	return s.b.Stmts.NewLoop(ast.StmtFor, kw.Cover(s.spanOf(body)), data)
}

func (s *Sema) checkForDecls(init ast.StmtID) {
	for d := s.b.Stmts.GroupTail(init); d.IsValid(); d = s.b.Decls.GroupPrevOf(d) {
		decl := s.b.Decls.Get(d)
		v := s.b.Decls.Var(d)
		if decl.Kind != ast.DeclVar || v.Storage == ast.SCStatic || v.Storage == ast.SCExtern {
			s.errorf(diag.SemaInvalidStorageClass, decl.Loc, "declaration of non-local variable in 'for' loop")
		}
	}
}

// ActOnStartSwitch checks the controlling expression and opens the
// case collection for the body.
func (s *Sema) ActOnStartSwitch(cond ast.StmtID) ast.StmtID {
	ty := s.bi.Q(types.Int)
	if !s.IsInvalid(cond) {
		cond = s.UsualUnary(cond)
		ty = s.typeOf(cond)
		if !s.tys.IsInteger(ty) {
			s.errorf(diag.SemaIncompatibleTypes, s.spanOf(cond), "statement requires expression of integer type ('%s' invalid)", s.spell(ty))
		}
	}
	if s.fn != nil {
		s.fn.switches = append(s.fn.switches, &switchState{cond: ty, values: make(map[uint64]source.Span)})
	}
	return cond
}

// ActOnFinishSwitch builds the switch once its body is parsed.
func (s *Sema) ActOnFinishSwitch(kw source.Span, cond, body ast.StmtID) ast.StmtID {
	if s.fn != nil && len(s.fn.switches) > 0 {
		s.fn.switches = s.fn.switches[:len(s.fn.switches)-1]
	}
	return s.b.Stmts.NewLoop(ast.StmtSwitch, kw.Cover(s.spanOf(body)), ast.LoopData{Cond: cond, Body: body})
}

func (s *Sema) currentSwitch() *switchState {
	if s.fn == nil || len(s.fn.switches) == 0 {
		return nil
	}
	return s.fn.switches[len(s.fn.switches)-1]
}

// ActOnCase builds `case lhs:` or the GNU range `case lhs ... rhs:`.
func (s *Sema) ActOnCase(kw source.Span, lhs, rhs, sub ast.StmtID) ast.StmtID {
	span := kw.Cover(s.spanOf(sub))
	sw := s.currentSwitch()
	if sw == nil {
		s.errorf(diag.SemaCaseOutsideSwitch, kw, "'case' statement not in switch statement")
		return sub
	}
	lo, ok := s.caseValue(sw, lhs)
	if !ok {
		return s.b.Stmts.NewCase(ast.StmtCase, span, ast.CaseData{LHS: lhs, RHS: rhs, Sub: sub})
	}
	hi := lo
	if rhs.IsValid() {
		if hi, ok = s.caseValue(sw, rhs); !ok {
			hi = lo
		}
		if lessThan(hi, lo) {
			s.warnf(diag.SemaDuplicateCase, s.spanOf(lhs).Cover(s.spanOf(rhs)), "empty case range specified")
		}
	}
	sp := s.spanOf(lhs)
	for v, n := lo.Bits, 0; ; v++ {
		if prev, dup := sw.values[v]; dup {
			diag.ReportError(s.reporter, diag.SemaDuplicateCase, sp, "duplicate case value '"+caseText(Value{Bits: v, Unsigned: lo.Unsigned})+"'").
				WithNote(prev, "previous case defined here").
				Emit()
			break
		}
		sw.values[v] = sp
		// диапазоны ограничены, чтобы не раздувать таблицу
		if v == hi.Bits || n > 1<<12 {
			break
		}
		n++
	}
	return s.b.Stmts.NewCase(ast.StmtCase, span, ast.CaseData{LHS: lhs, RHS: rhs, Sub: sub})
}

func (s *Sema) caseValue(sw *switchState, e ast.StmtID) (Value, bool) {
	if s.IsInvalid(e) {
		return Value{}, false
	}
	v, ok := s.EvaluateInt(e)
	if !ok {
		s.errorf(diag.SemaNotConstant, s.spanOf(e), "expression is not an integer constant expression")
		return Value{}, false
	}
	return s.normalize(v.Bits, sw.cond), true
}

func lessThan(a, b Value) bool {
	if a.Unsigned {
		return a.Bits < b.Bits
	}
	return a.Int64() < b.Int64()
}

func caseText(v Value) string {
	if v.Unsigned {
		return strconv.FormatUint(v.Bits, 10)
	}
	return strconv.FormatInt(v.Int64(), 10)
}

// ActOnDefault builds `default:`.
func (s *Sema) ActOnDefault(kw source.Span, sub ast.StmtID) ast.StmtID {
	sw := s.currentSwitch()
	if sw == nil {
		s.errorf(diag.SemaCaseOutsideSwitch, kw, "'default' statement not in switch statement")
		return sub
	}
	if sw.hasDflt {
		diag.ReportError(s.reporter, diag.SemaDuplicateCase, kw, "multiple default labels in one switch").
			WithNote(sw.dfltSpan, "previous case defined here").
			Emit()
	}
	sw.hasDflt, sw.dfltSpan = true, kw
	return s.b.Stmts.NewCase(ast.StmtDefault, kw.Cover(s.spanOf(sub)), ast.CaseData{Sub: sub})
}

// ActOnBreak builds `break;`.
func (s *Sema) ActOnBreak(sp source.Span) ast.StmtID {
	if s.fn == nil || (s.fn.loops == 0 && len(s.fn.switches) == 0) {
		s.errorf(diag.SemaBreakOutsideLoop, sp, "'break' statement not in loop or switch statement")
	}
	return s.b.Stmts.New(ast.StmtBreak, sp)
}

// ActOnContinue builds `continue;`.
func (s *Sema) ActOnContinue(sp source.Span) ast.StmtID {
	if s.fn == nil || s.fn.loops == 0 {
		s.errorf(diag.SemaContinueOutsideLoop, sp, "'continue' statement not in loop statement")
	}
	return s.b.Stmts.New(ast.StmtContinue, sp)
}

// label finds or creates the function-local label name.
func (s *Sema) label(name source.StringID, sp source.Span) ast.DeclID {
	if id, ok := s.fn.labels[name]; ok {
		return id
	}
	id := s.b.Decls.NewLabel(sp, name)
	s.b.Decls.AddToContext(s.fn.decl, id)
	s.fn.labels[name] = id
	return id
}

// ActOnGoto builds `goto name;`; unresolved labels are reported when the
// function body ends.
func (s *Sema) ActOnGoto(span source.Span, name source.StringID, nameSpan source.Span) ast.StmtID {
	if s.fn == nil {
		return s.b.Stmts.NewGoto(span, ast.NoDeclID)
	}
	l := s.label(name, nameSpan)
	s.b.Decls.Get(l).Flags |= ast.DeclUsed
	s.fn.gotos = append(s.fn.gotos, pendingGoto{label: l, span: nameSpan})
	return s.b.Stmts.NewGoto(span, l)
}

// ActOnLabel builds `name: sub`.
func (s *Sema) ActOnLabel(name source.StringID, nameSpan source.Span, sub ast.StmtID) ast.StmtID {
	span := nameSpan.Cover(s.spanOf(sub))
	if s.fn == nil {
		return sub
	}
	l := s.label(name, nameSpan)
	ld := s.b.Decls.Label(l)
	if ld.Stmt.IsValid() {
		diag.ReportError(s.reporter, diag.SemaLabelRedefinition, nameSpan, "redefinition of label '"+s.name(name)+"'").
			WithNote(s.b.Decls.Get(l).Loc, "previous definition is here").
			Emit()
		return sub
	}
	d := s.b.Decls.Get(l)
	d.Loc, d.Span = nameSpan, nameSpan
	id := s.b.Stmts.NewLabel(span, ast.LabelStmtData{Decl: l, Sub: sub})
	ld.Stmt = id
	return id
}

// ActOnReturn builds `return;` and `return e;`.
func (s *Sema) ActOnReturn(span source.Span, value ast.StmtID) ast.StmtID {
	if s.fn == nil {
		return s.b.Stmts.NewReturn(span, value)
	}
	name := s.b.Name(s.fn.decl)
	isVoid := s.tys.IsVoid(s.fn.result)
	switch {
	case value.IsValid() && isVoid:
		if !s.IsInvalid(value) && !s.tys.IsVoid(s.typeOf(value)) {
			s.errorf(diag.SemaVoidReturnValue, s.spanOf(value), "void function '%s' should not return a value", name)
		}
	case value.IsValid():
		value = s.CheckAssignment(s.fn.result, value, AssignReturning)
	case !isVoid:
		if s.opts.Standard.IsC89() {
			s.warnf(diag.SemaMissingReturnValue, span, "non-void function '%s' should return a value", name)
		} else {
			s.errorf(diag.SemaMissingReturnValue, span, "non-void function '%s' should return a value", name)
		}
	}
	return s.b.Stmts.NewReturn(span, value)
}
