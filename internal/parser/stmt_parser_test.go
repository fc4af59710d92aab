package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"cbridge/internal/ast"
	"cbridge/internal/diag"
)

func TestFunctionBodyStatements(t *testing.T) {
	b := mustParse(t, `
int f(int n) {
	int s = 0;
	for (int i = 0; i < n; i++) s += i;
	while (n) n--;
	do { s++; } while (s < 10);
	switch (n) { case 1: break; case 2 ... 4: s = 3; break; default: s = 2; }
	if (s) goto out; else s = 1;
	;
out:
	return s;
}
`)
	fn := findDecl(b, "f")
	body := b.Decls.Function(fn).Body
	got := bodyKinds(b, body)
	want := []ast.StmtKind{
		ast.StmtDecl, ast.StmtFor, ast.StmtWhile, ast.StmtDo,
		ast.StmtSwitch, ast.StmtIf, ast.StmtNull, ast.StmtLabel,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("body kinds mismatch (-want +got):\n%s", diff)
	}

	label := b.Stmts.BodyTail(body)
	sub := b.Stmts.LabelStmt(label).Sub
	if k := b.Stmts.Get(sub).Kind; k != ast.StmtReturn {
		t.Fatalf("labelled statement = %v, want ReturnStmt", k)
	}
}

func TestForInitDeclarationScope(t *testing.T) {
	_, bag := parseSource(t, `
void f(void) {
	for (int i = 0; i < 3; i++) {}
	i = 1;
}
`)
	if !hasCode(bag, diag.SemaUndeclaredIdent) {
		t.Fatalf("loop variable leaked out of the for statement: %s", diagnosticsSummary(bag))
	}
}

func TestExpressionForms(t *testing.T) {
	b := mustParse(t, `
struct P { int x; struct P *next; };
int g(int, int);
void f(struct P *p, int a[4]) {
	int v = a[1] + p->next->x * 2;
	v = (v > 0) ? v : -v;
	v = g(v, sizeof(struct P)) , v << 1;
	v = (int)p->x + sizeof v + _Alignof(long);
	v = ((struct P){ 1, 0 }).x;
	v = ({ int t = v; t + 1; });
	(void)__func__;
}
`)
	fn := findDecl(b, "f")
	got := bodyKinds(b, b.Decls.Function(fn).Body)
	want := []ast.StmtKind{
		ast.StmtDecl,
		ast.ExprBinaryOperator, ast.ExprBinaryOperator, ast.ExprBinaryOperator,
		ast.ExprBinaryOperator, ast.ExprBinaryOperator, ast.ExprCStyleCast,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("body kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestPrecedence(t *testing.T) {
	b := mustParse(t, "int v = 1 + 2 * 3 - 4 << 1 == 14 && 1 || 0;")
	init := b.Stmts.IgnoreParenImpCasts(b.Decls.Var(findDecl(b, "v")).Init)
	if k := b.Stmts.Get(init).Kind; k != ast.ExprBinaryOperator {
		t.Fatalf("init kind = %v", k)
	}
	// верхний оператор: ||, слева от него &&
	top := b.Stmts.Binary(init)
	if top.Op != ast.BinaryLOr {
		t.Fatalf("top operator = %v, want ||", top.Op)
	}
	if op := b.Stmts.Binary(b.Stmts.IgnoreParenImpCasts(top.LHS)).Op; op != ast.BinaryLAnd {
		t.Fatalf("lhs operator = %v, want &&", op)
	}
}

func TestStatementErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"break outside loop", "void f(void) { break; }", diag.SemaBreakOutsideLoop},
		{"case outside switch", "void f(void) { case 1: ; }", diag.SemaCaseOutsideSwitch},
		{"undeclared label", "void f(void) { goto nowhere; }", diag.SemaUndeclaredLabel},
		{"missing while", "void f(void) { do ; }", diag.SynUnexpectedToken},
		{"unclosed paren", "void f(int x) { if (x { } }", diag.SynUnclosedParen},
		{"declaration as substatement", "void f(int x) { if (x) int y; }", diag.SynExpectExpression},
		{"missing expression", "void f(void) { int x = 1 + ; }", diag.SynExpectExpression},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseSource(t, tt.src)
			if !hasCode(bag, tt.code) {
				t.Fatalf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}
