package ast

import (
	"testing"

	"cbridge/internal/source"
	"cbridge/internal/types"
)

func TestContextChainIsForward(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	var want []DeclID
	for _, name := range []string{"a", "b", "c"} {
		id := b.Decls.NewVar(DeclVar, source.Span{}, source.Span{}, b.Strings.Intern(name), b.Types.Builtins().Q(types.Int), VarData{FileScope: true})
		b.Decls.AddToContext(b.TU, id)
		want = append(want, id)
	}
	var got []DeclID
	for d := b.Decls.FirstChild(b.TU); d.IsValid(); d = b.Decls.NextSibling(d) {
		got = append(got, d)
		if b.Decls.Get(d).Parent != b.TU {
			t.Fatalf("decl %d has parent %d", d, b.Decls.Get(d).Parent)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d children, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("child %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestCompoundBodyIsReverseLinked(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	items := []StmtID{
		b.Stmts.NewNull(source.Span{}),
		b.Stmts.NewReturn(source.Span{}, NoStmtID),
		b.Stmts.NewNull(source.Span{}),
	}
	c := b.Stmts.NewCompound(source.Span{}, items)
	if n := b.Stmts.Compound(c).Count; n != 3 {
		t.Fatalf("count = %d", n)
	}
	i := len(items) - 1
	for s := b.Stmts.BodyTail(c); s.IsValid(); s = b.Stmts.PrevSibling(s) {
		if s != items[i] {
			t.Fatalf("reverse step %d = %d, want %d", i, s, items[i])
		}
		i--
	}
	if i != -1 {
		t.Fatalf("reverse walk stopped early at %d", i)
	}
}

func TestKindRangesAndNames(t *testing.T) {
	if DeclParmVar.String() != "ParmVar" || DeclFunction.String() != "Function" {
		t.Fatalf("unexpected decl names %q %q", DeclParmVar, DeclFunction)
	}
	if ExprCompoundAssignOperator.String() != "CompoundAssignOperator" {
		t.Fatalf("unexpected stmt name %q", ExprCompoundAssignOperator)
	}
	for k := DeclKind(0); int(k) < DeclKindCount; k++ {
		if declKindNames[k] == "" {
			t.Errorf("decl kind %d has no name", k)
		}
	}
	for k := StmtKind(0); int(k) < StmtKindCount; k++ {
		if stmtKindNames[k] == "" {
			t.Errorf("stmt kind %d has no name", k)
		}
	}
	if !(FirstVarDecl >= FirstDeclaratorDecl && LastVarDecl <= LastDeclaratorDecl) {
		t.Fatalf("VarDecl range must nest inside DeclaratorDecl")
	}
	if !(FirstCastExpr >= FirstExpr && LastCastExpr <= LastExpr) {
		t.Fatalf("CastExpr range must nest inside Expr")
	}
	if BinaryAddAssign.Underlying() != BinaryAdd || BinaryOrAssign.Underlying() != BinaryOr {
		t.Fatalf("compound assignment mapping broken")
	}
}

func TestCompoundAssignmentUnderlying(t *testing.T) {
	for op := BinaryMulAssign; op <= BinaryOrAssign; op++ {
		base := op.Underlying()
		if base.IsAssignment() || base.IsComparison() || base.IsLogical() {
			t.Errorf("%s maps to %s", op, base)
			continue
		}
		if got := base.String() + "="; got != op.String() {
			t.Errorf("%s maps to %s", op, base)
		}
	}
	for _, op := range []BinaryOp{BinaryAndAssign, BinaryXorAssign, BinaryOrAssign} {
		if !op.Underlying().IsBitwise() {
			t.Errorf("%s must be bitwise", op)
		}
	}
	if BinaryAssign.Underlying() != BinaryAssign || BinaryLT.Underlying() != BinaryLT {
		t.Error("non-compound operators must map to themselves")
	}
}

func TestListWindows(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	a := b.Stmts.NewNull(source.Span{})
	c := b.Stmts.NewNull(source.Span{})
	l := b.Stmts.AddExprs([]StmtID{a, c})
	if l.Count != 2 || b.Stmts.ExprAt(l, 0) != a || b.Stmts.ExprAt(l, 1) != c {
		t.Fatalf("unexpected window %+v", l)
	}
	if b.Stmts.ExprAt(l, 2) != NoStmtID {
		t.Fatalf("out of range must yield NoStmtID")
	}
	if empty := b.Stmts.AddExprs(nil); empty.Count != 0 {
		t.Fatalf("empty window has count %d", empty.Count)
	}
}
