package cnode

import (
	"slices"

	"cbridge/internal/ast"
)

// Stmt is a handle to any statement, expressions included.
type Stmt struct{ Handle }

func (Stmt) accepts(h Handle) bool { return h.family == FamilyStmt }
func (Stmt) wrap(h Handle) Stmt    { return Stmt{h} }

func (s Stmt) AsStmt() Stmt { return s }
func (Stmt) isStmt()        {}

// Kind is the runtime kind of s.
func (s Stmt) Kind() StmtKind {
	_, n := s.stmt("Stmt.Kind")
	return StmtKind(n.Kind)
}

func optStmt[K castable[K]](u *Unit, id ast.StmtID) (K, bool) {
	var k K
	if !id.IsValid() {
		return k, false
	}
	return k.wrap(stmtHandle(u, id)), true
}

func stmtOf(u *Unit, id ast.StmtID) Stmt { return Stmt{stmtHandle(u, id)} }

// NullStmt is a lone `;`.
type NullStmt struct{ Stmt }

func (NullStmt) accepts(h Handle) bool  { return stmtIn(h, ast.StmtNull, ast.StmtNull) }
func (NullStmt) wrap(h Handle) NullStmt { return NullStmt{Stmt{h}} }

// CompoundStmt is a `{ ... }` block.
type CompoundStmt struct{ Stmt }

func (CompoundStmt) accepts(h Handle) bool      { return stmtIn(h, ast.StmtCompound, ast.StmtCompound) }
func (CompoundStmt) wrap(h Handle) CompoundStmt { return CompoundStmt{Stmt{h}} }

// Size is the number of statements in the block.
func (c CompoundStmt) Size() int {
	b, _ := c.stmt("CompoundStmt.Size")
	return int(b.Stmts.Compound(c.stmtID()).Count)
}

// ReverseBody returns the statements last to first, the order the arena
// links them in.
func (c CompoundStmt) ReverseBody() []Stmt {
	b, _ := c.stmt("CompoundStmt.ReverseBody")
	out := make([]Stmt, 0, b.Stmts.Compound(c.stmtID()).Count)
	for id := b.Stmts.BodyTail(c.stmtID()); id.IsValid(); id = b.Stmts.PrevSibling(id) {
		out = append(out, stmtOf(c.unit, id))
	}
	return out
}

// Body returns the statements in source order.
func (c CompoundStmt) Body() []Stmt {
	out := c.ReverseBody()
	slices.Reverse(out)
	return out
}

// BodyBack is the last statement of the block.
func (c CompoundStmt) BodyBack() (Stmt, bool) {
	b, _ := c.stmt("CompoundStmt.BodyBack")
	return optStmt[Stmt](c.unit, b.Stmts.BodyTail(c.stmtID()))
}

// DeclStmt groups the declarations of one declaration statement.
type DeclStmt struct{ Stmt }

func (DeclStmt) accepts(h Handle) bool  { return stmtIn(h, ast.StmtDecl, ast.StmtDecl) }
func (DeclStmt) wrap(h Handle) DeclStmt { return DeclStmt{Stmt{h}} }

// ReverseDecls returns the declarations last to first.
func (d DeclStmt) ReverseDecls() []Decl {
	b, _ := d.stmt("DeclStmt.ReverseDecls")
	out := make([]Decl, 0, b.Stmts.DeclStmt(d.stmtID()).Count)
	for id := b.Stmts.GroupTail(d.stmtID()); id.IsValid(); id = b.Decls.GroupPrevOf(id) {
		out = append(out, Decl{declHandle(d.unit, id)})
	}
	return out
}

// Decls returns the declarations in source order.
func (d DeclStmt) Decls() []Decl {
	out := d.ReverseDecls()
	slices.Reverse(out)
	return out
}

func (d DeclStmt) IsSingleDecl() bool {
	b, _ := d.stmt("DeclStmt.IsSingleDecl")
	return b.Stmts.DeclStmt(d.stmtID()).Count == 1
}

// SingleDecl is present when the statement declares exactly one entity.
func (d DeclStmt) SingleDecl() (Decl, bool) {
	b, _ := d.stmt("DeclStmt.SingleDecl")
	ds := b.Stmts.DeclStmt(d.stmtID())
	if ds.Count != 1 {
		return Decl{}, false
	}
	return optDecl(d.unit, ds.Last)
}

// IfStmt is if/else.
type IfStmt struct{ Stmt }

func (IfStmt) accepts(h Handle) bool { return stmtIn(h, ast.StmtIf, ast.StmtIf) }
func (IfStmt) wrap(h Handle) IfStmt  { return IfStmt{Stmt{h}} }

func (s IfStmt) data(op string) *ast.IfData {
	b, _ := s.stmt(op)
	return b.Stmts.If(s.stmtID())
}

func (s IfStmt) Cond() Expr { return exprOf(s.unit, s.data("IfStmt.Cond").Cond) }
func (s IfStmt) Then() Stmt { return stmtOf(s.unit, s.data("IfStmt.Then").Then) }

// HasElseStorage reports an else branch.
func (s IfStmt) HasElseStorage() bool { return s.data("IfStmt.HasElseStorage").Else.IsValid() }

func (s IfStmt) Else() (Stmt, bool) { return optStmt[Stmt](s.unit, s.data("IfStmt.Else").Else) }

// ElseLoc is the position of the else keyword.
func (s IfStmt) ElseLoc() (SourceLocation, bool) {
	return presumed(s.unit.fs, s.data("IfStmt.ElseLoc").ElseLoc)
}

func loopData(s Stmt, op string) *ast.LoopData {
	b, _ := s.stmt(op)
	return b.Stmts.Loop(s.stmtID())
}

// WhileStmt is while (cond) body.
type WhileStmt struct{ Stmt }

func (WhileStmt) accepts(h Handle) bool   { return stmtIn(h, ast.StmtWhile, ast.StmtWhile) }
func (WhileStmt) wrap(h Handle) WhileStmt { return WhileStmt{Stmt{h}} }

func (s WhileStmt) Cond() Expr { return exprOf(s.unit, loopData(s.Stmt, "WhileStmt.Cond").Cond) }
func (s WhileStmt) Body() Stmt { return stmtOf(s.unit, loopData(s.Stmt, "WhileStmt.Body").Body) }

// DoStmt is do body while (cond);.
type DoStmt struct{ Stmt }

func (DoStmt) accepts(h Handle) bool { return stmtIn(h, ast.StmtDo, ast.StmtDo) }
func (DoStmt) wrap(h Handle) DoStmt  { return DoStmt{Stmt{h}} }

func (s DoStmt) Body() Stmt { return stmtOf(s.unit, loopData(s.Stmt, "DoStmt.Body").Body) }
func (s DoStmt) Cond() Expr { return exprOf(s.unit, loopData(s.Stmt, "DoStmt.Cond").Cond) }

// ForStmt is for (init; cond; inc) body; every clause may be empty.
type ForStmt struct{ Stmt }

func (ForStmt) accepts(h Handle) bool { return stmtIn(h, ast.StmtFor, ast.StmtFor) }
func (ForStmt) wrap(h Handle) ForStmt { return ForStmt{Stmt{h}} }

func (s ForStmt) Init() (Stmt, bool) {
	return optStmt[Stmt](s.unit, loopData(s.Stmt, "ForStmt.Init").Init)
}

func (s ForStmt) Cond() (Expr, bool) {
	return optStmt[Expr](s.unit, loopData(s.Stmt, "ForStmt.Cond").Cond)
}

func (s ForStmt) Inc() (Expr, bool) {
	return optStmt[Expr](s.unit, loopData(s.Stmt, "ForStmt.Inc").Inc)
}

func (s ForStmt) Body() Stmt { return stmtOf(s.unit, loopData(s.Stmt, "ForStmt.Body").Body) }

// SwitchStmt is switch (cond) body.
type SwitchStmt struct{ Stmt }

func (SwitchStmt) accepts(h Handle) bool    { return stmtIn(h, ast.StmtSwitch, ast.StmtSwitch) }
func (SwitchStmt) wrap(h Handle) SwitchStmt { return SwitchStmt{Stmt{h}} }

func (s SwitchStmt) Cond() Expr { return exprOf(s.unit, loopData(s.Stmt, "SwitchStmt.Cond").Cond) }
func (s SwitchStmt) Body() Stmt { return stmtOf(s.unit, loopData(s.Stmt, "SwitchStmt.Body").Body) }

// SwitchCase is a case or default label.
type SwitchCase struct{ Stmt }

func (SwitchCase) accepts(h Handle) bool {
	return stmtIn(h, ast.FirstSwitchCase, ast.LastSwitchCase)
}
func (SwitchCase) wrap(h Handle) SwitchCase { return SwitchCase{Stmt{h}} }

func (s SwitchCase) data(op string) *ast.CaseData {
	b, _ := s.stmt(op)
	return b.Stmts.Case(s.stmtID())
}

// SubStmt is the labelled statement.
func (s SwitchCase) SubStmt() Stmt { return stmtOf(s.unit, s.data("SwitchCase.SubStmt").Sub) }

// CaseStmt is `case lhs:` or the GNU range `case lhs ... rhs:`.
type CaseStmt struct{ SwitchCase }

func (CaseStmt) accepts(h Handle) bool  { return stmtIn(h, ast.StmtCase, ast.StmtCase) }
func (CaseStmt) wrap(h Handle) CaseStmt { return CaseStmt{SwitchCase{}.wrap(h)} }

func (s CaseStmt) LHS() Expr { return exprOf(s.unit, s.data("CaseStmt.LHS").LHS) }

// RHS is the upper bound of a case range.
func (s CaseStmt) RHS() (Expr, bool) { return optStmt[Expr](s.unit, s.data("CaseStmt.RHS").RHS) }

// DefaultStmt is `default:`.
type DefaultStmt struct{ SwitchCase }

func (DefaultStmt) accepts(h Handle) bool     { return stmtIn(h, ast.StmtDefault, ast.StmtDefault) }
func (DefaultStmt) wrap(h Handle) DefaultStmt { return DefaultStmt{SwitchCase{}.wrap(h)} }

// BreakStmt is `break;`.
type BreakStmt struct{ Stmt }

func (BreakStmt) accepts(h Handle) bool   { return stmtIn(h, ast.StmtBreak, ast.StmtBreak) }
func (BreakStmt) wrap(h Handle) BreakStmt { return BreakStmt{Stmt{h}} }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ Stmt }

func (ContinueStmt) accepts(h Handle) bool      { return stmtIn(h, ast.StmtContinue, ast.StmtContinue) }
func (ContinueStmt) wrap(h Handle) ContinueStmt { return ContinueStmt{Stmt{h}} }

// GotoStmt is `goto label;`.
type GotoStmt struct{ Stmt }

func (GotoStmt) accepts(h Handle) bool  { return stmtIn(h, ast.StmtGoto, ast.StmtGoto) }
func (GotoStmt) wrap(h Handle) GotoStmt { return GotoStmt{Stmt{h}} }

func (s GotoStmt) Label() LabelDecl {
	b, _ := s.stmt("GotoStmt.Label")
	return LabelDecl{}.wrap(declHandle(s.unit, b.Stmts.Goto(s.stmtID()).Label))
}

// LabelStmt is `name: stmt`.
type LabelStmt struct{ Stmt }

func (LabelStmt) accepts(h Handle) bool   { return stmtIn(h, ast.StmtLabel, ast.StmtLabel) }
func (LabelStmt) wrap(h Handle) LabelStmt { return LabelStmt{Stmt{h}} }

func (s LabelStmt) Decl() LabelDecl {
	b, _ := s.stmt("LabelStmt.Decl")
	return LabelDecl{}.wrap(declHandle(s.unit, b.Stmts.LabelStmt(s.stmtID()).Decl))
}

func (s LabelStmt) Name() string { return s.Decl().Name() }

func (s LabelStmt) SubStmt() Stmt {
	b, _ := s.stmt("LabelStmt.SubStmt")
	return stmtOf(s.unit, b.Stmts.LabelStmt(s.stmtID()).Sub)
}

// ReturnStmt is `return [value];`.
type ReturnStmt struct{ Stmt }

func (ReturnStmt) accepts(h Handle) bool    { return stmtIn(h, ast.StmtReturn, ast.StmtReturn) }
func (ReturnStmt) wrap(h Handle) ReturnStmt { return ReturnStmt{Stmt{h}} }

func (s ReturnStmt) HasRetValue() bool {
	b, _ := s.stmt("ReturnStmt.HasRetValue")
	return b.Stmts.Return(s.stmtID()).Value.IsValid()
}

func (s ReturnStmt) RetValue() (Expr, bool) {
	b, _ := s.stmt("ReturnStmt.RetValue")
	return optStmt[Expr](s.unit, b.Stmts.Return(s.stmtID()).Value)
}
