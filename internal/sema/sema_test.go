package sema_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/lexer"
	"cbridge/internal/parser"
	"cbridge/internal/sema"
	"cbridge/internal/source"
)

func analyze(t *testing.T, src string, std sema.Standard) (*ast.Builder, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(src)))
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	s := sema.New(b, sema.Options{Reporter: reporter, Standard: std})
	parser.ParseFile(lexer.New(file, lexer.Options{Reporter: reporter}), s, parser.Options{MaxErrors: 100, Reporter: reporter})
	return b, bag
}

func summary(bag *diag.Bag) string {
	lines := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		lines = append(lines, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(lines, "; ")
}

func clean(t *testing.T, src string) *ast.Builder {
	t.Helper()
	b, bag := analyze(t, src, sema.StdGNU17)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", summary(bag))
	}
	return b
}

func lookup(b *ast.Builder, name string) ast.DeclID {
	found := ast.NoDeclID
	for d := b.Decls.FirstChild(b.TU); d.IsValid(); d = b.Decls.NextSibling(d) {
		if b.Name(d) == name {
			found = d
		}
	}
	return found
}

func castChain(b *ast.Builder, e ast.StmtID) []string {
	var out []string
	for b.Stmts.Get(e).Kind == ast.ExprImplicitCast {
		c := b.Stmts.Cast(e)
		out = append(out, c.Kind.String())
		e = c.Sub
	}
	return append(out, b.Stmts.Get(e).Kind.String())
}

func TestImplicitCasts(t *testing.T) {
	b := clean(t, `
int f(char c, int *p, int a[3]) {
	double d = c;
	p = a;
	p = 0;
	return c + 1;
}
`)
	fn := lookup(b, "f")
	body := b.Decls.Function(fn).Body
	var items []ast.StmtID
	for s := b.Stmts.BodyTail(body); s.IsValid(); s = b.Stmts.PrevSibling(s) {
		items = append([]ast.StmtID{s}, items...)
	}

	d := b.Stmts.DeclStmt(items[0]).Last
	if got := castChain(b, b.Decls.Var(d).Init); !cmp.Equal(got, []string{"IntegralToFloating", "LValueToRValue", "DeclRefExpr"}) {
		t.Errorf("double d = c: %v", got)
	}
	if got := castChain(b, b.Stmts.Binary(items[1]).RHS); !cmp.Equal(got, []string{"LValueToRValue", "DeclRefExpr"}) {
		t.Errorf("p = a (param already decayed): %v", got)
	}
	if got := castChain(b, b.Stmts.Binary(items[2]).RHS); !cmp.Equal(got, []string{"NullToPointer", "IntegerLiteral"}) {
		t.Errorf("p = 0: %v", got)
	}
	ret := b.Stmts.Return(items[3]).Value
	if got := castChain(b, b.Stmts.Binary(ret).LHS); !cmp.Equal(got, []string{"IntegralCast", "LValueToRValue", "DeclRefExpr"}) {
		t.Errorf("c + 1: %v", got)
	}
}

func TestUsualArithmeticConversions(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2.0", "double"},
		{"1u + 1", "unsigned int"},
		{"1L + 1u", "long"},
		{"'a' + 'b'", "int"},
		{"1.0f * 2", "float"},
		{"1 < 2", "int"},
		{"sizeof(int)", "unsigned long"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			b := clean(t, "void f(void) { "+tt.expr+"; }")
			body := b.Decls.Function(lookup(b, "f")).Body
			e := b.Stmts.BodyTail(body)
			if got := b.Types.Spell(b.Stmts.Get(e).Type); got != tt.want {
				t.Fatalf("type of %s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestTagRedeclaration(t *testing.T) {
	b := clean(t, `
struct S;
struct S *p;
struct S { int a; };
struct S s;
`)
	var tags []ast.DeclID
	for d := b.Decls.FirstChild(b.TU); d.IsValid(); d = b.Decls.NextSibling(d) {
		if b.Decls.Get(d).Kind == ast.DeclRecord {
			tags = append(tags, d)
		}
	}
	if len(tags) != 2 {
		t.Fatalf("record decls = %d, want 2", len(tags))
	}
	def := b.Decls.Get(tags[1])
	if def.Prev != tags[0] {
		t.Fatalf("definition does not link to the forward declaration")
	}
	if b.Decls.Get(tags[0]).Type != def.Type {
		t.Fatalf("redeclarations must share one type")
	}
	if got := b.Types.Spell(b.Decls.Get(lookup(b, "s")).Type); got != "struct S" {
		t.Fatalf("s has type %q", got)
	}
}

func TestEnumIntegerType(t *testing.T) {
	b := clean(t, `
enum U { A, B };
enum N { C = -1 };
enum W { D = 0x100000000 };
`)
	tests := map[string]string{"U": "unsigned int", "N": "int", "W": "unsigned long"}
	for name, want := range tests {
		if got := b.Types.Spell(b.Decls.Enum(lookup(b, name)).IntType); got != want {
			t.Errorf("enum %s integer type = %q, want %q", name, got, want)
		}
	}
}

func TestVariableMerging(t *testing.T) {
	b := clean(t, `
extern int arr[];
int arr[4];
int f(int);
int f(int x) { return x; }
`)
	if got := b.Types.Spell(b.Decls.Get(lookup(b, "arr")).Type); got != "int [4]" {
		t.Fatalf("arr = %q", got)
	}
	def := lookup(b, "f")
	if !b.Decls.Get(def).Prev.IsValid() {
		t.Fatalf("definition of f does not link to its prototype")
	}
}

func TestStringInitializerSizesArray(t *testing.T) {
	b := clean(t, `char s[] = "abc"; char t[8] = "hi";`)
	if got := b.Types.Spell(b.Decls.Get(lookup(b, "s")).Type); got != "char [4]" {
		t.Fatalf("s = %q", got)
	}
	if got := b.Types.Spell(b.Decls.Get(lookup(b, "t")).Type); got != "char [8]" {
		t.Fatalf("t = %q", got)
	}
}

func TestBuiltinVaList(t *testing.T) {
	clean(t, `
int sum(int n, ...) {
	__builtin_va_list ap;
	int v = __builtin_va_arg(ap, int);
	return n + v;
}
`)
}

func TestImplicitFunctionDeclaration(t *testing.T) {
	b, bag := analyze(t, "int main(void) { return foo(1); }", sema.StdGNU17)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", summary(bag))
	}
	if !hasCode(bag, diag.SemaImplicitFunctionDecl) {
		t.Fatalf("expected implicit declaration warning, got %s", summary(bag))
	}
	foo := lookup(b, "foo")
	if !foo.IsValid() || !b.Decls.Get(foo).IsImplicit() {
		t.Fatalf("implicit declaration of foo not recorded at file scope")
	}
}

func TestReturnChecksByStandard(t *testing.T) {
	_, bag := analyze(t, "int f(void) { return; }", sema.StdC89)
	if bag.HasErrors() || !hasCode(bag, diag.SemaMissingReturnValue) {
		t.Fatalf("C89: want warning only, got %s", summary(bag))
	}
	_, bag = analyze(t, "int f(void) { return; }", sema.StdC99)
	if !bag.HasErrors() {
		t.Fatalf("C99: want error, got %s", summary(bag))
	}
}

func TestSemanticErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"redefinition", "int x = 1; int x = 2;", diag.SemaRedefinition},
		{"conflicting types", "int f(int); long f(int);", diag.SemaConflictingTypes},
		{"undeclared", "int f(void) { return y; }", diag.SemaUndeclaredIdent},
		{"void return value", "void g(void) { return 1; }", diag.SemaVoidReturnValue},
		{"duplicate case", "void f(int n) { switch (n) { case 1: case 1: ; } }", diag.SemaDuplicateCase},
		{"case range overlap", "void f(int n) { switch (n) { case 1 ... 5: case 3: ; } }", diag.SemaDuplicateCase},
		{"no member", "struct S { int a; } s; int g(void) { return s.b; }", diag.SemaNoMember},
		{"const assign", "const int c = 1; void f(void) { c = 2; }", diag.SemaNotAssignable},
		{"label redefinition", "void f(void) { a: ; a: ; }", diag.SemaLabelRedefinition},
		{"tag mismatch", "struct T; union T *u;", diag.SemaTagMismatch},
		{"incomplete variable", "struct Q q;\nvoid f(void) { struct R r; }", diag.SemaIncompleteType},
		{"bit-field too wide", "struct B { char c : 9; };", diag.SemaBitFieldWidth},
		{"excess elements", "int a[2] = {1, 2, 3};", diag.SemaExcessInitializers},
		{"non-constant global", "int g; int h = g;", diag.SemaNotConstant},
		{"continue in switch", "void f(int n) { switch (n) { default: continue; } }", diag.SemaContinueOutsideLoop},
		{"or-assign on double", "double d; void f(void) { d |= 1; }", diag.SemaInvalidOperands},
		{"xor-assign on double", "double d; void f(void) { d ^= 1; }", diag.SemaInvalidOperands},
		{"and-assign with double", "int i; void f(void) { i &= 1.5; }", diag.SemaInvalidOperands},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := analyze(t, tt.src, sema.StdGNU17)
			if !hasCode(bag, tt.code) {
				t.Fatalf("expected %s, got %s", tt.code.ID(), summary(bag))
			}
		})
	}
}

func TestConstantEvaluation(t *testing.T) {
	b := clean(t, `
enum { K = (1 << 4) | 3, L = K * 2 - 1, M = sizeof(long) / 2, N = -K % 5, O = 3 > 2 ? 7 : 9 };
`)
	var values []int64
	for d := b.Decls.FirstChild(b.TU); d.IsValid(); d = b.Decls.NextSibling(d) {
		if b.Decls.Get(d).Kind != ast.DeclEnum {
			continue
		}
		for c := b.Decls.FirstChild(d); c.IsValid(); c = b.Decls.NextSibling(c) {
			values = append(values, b.Decls.EnumConstant(c).Value.SExtValue())
		}
	}
	if diff := cmp.Diff([]int64{19, 37, 4, -4, 7}, values); diff != "" {
		t.Fatalf("enumerator values (-want +got):\n%s", diff)
	}
}

func TestBitwiseCompoundAssignOnIntegers(t *testing.T) {
	clean(t, "unsigned u; void f(void) { u |= 1; u ^= 2; u &= 3; u <<= 1; }")
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestEndOfUnitChecks(t *testing.T) {
	b, bag := analyze(t, `
int tentative[];
int completed[];
int completed[4];
static int helper(void);
static int unused(void);
int g(void) { return helper(); }
`, sema.StdGNU17)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", summary(bag))
	}
	if !hasCode(bag, diag.SemaTentativeArray) || !hasCode(bag, diag.SemaUndefinedInternal) {
		t.Fatalf("missing end-of-unit warnings: %s", summary(bag))
	}
	if n := bag.CountBySeverity(diag.SevWarning); n != 2 {
		t.Fatalf("expected exactly 2 warnings, got %d: %s", n, summary(bag))
	}
	if got := b.Types.Spell(b.Decls.Get(lookup(b, "tentative")).Type); got != "int [1]" {
		t.Fatalf("tentative array type = %q, want int [1]", got)
	}
}
