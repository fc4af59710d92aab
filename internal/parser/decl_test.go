package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cbridge/internal/ast"
	"cbridge/internal/diag"
)

func TestDeclaratorTypes(t *testing.T) {
	tests := []struct {
		src  string
		name string
		want string
	}{
		{"int *a[3];", "a", "int *[3]"},
		{"int (*p)[3];", "p", "int (*)[3]"},
		{"int m[2][3];", "m", "int [2][3]"},
		{"char **argv;", "argv", "char **"},
		{"const int *const cp;", "cp", "const int *const"},
		{"int f(void);", "f", "int (void)"},
		{"int g();", "g", "int ()"},
		{"int (*fp)(int, char);", "fp", "int (*)(int, char)"},
		{"int printf(const char *, ...);", "printf", "int (const char *, ...)"},
		{"void (*signal(int, void (*)(int)))(int);", "signal", "void (*(int, void (*)(int)))(int)"},
		{"unsigned long long big;", "big", "unsigned long long"},
		{"typedef int T; T *tp;", "tp", "T *"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			b := mustParse(t, tt.src)
			id := findDecl(b, tt.name)
			if !id.IsValid() {
				t.Fatalf("declaration %q not found", tt.name)
			}
			if got := b.Types.Spell(b.Decls.Get(id).Type); got != tt.want {
				t.Fatalf("type of %s = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestParamDecay(t *testing.T) {
	b := mustParse(t, "void f(int a[], char s[8], int g(void));")
	fn := findDecl(b, "f")
	if got := b.Types.Spell(b.Decls.Get(fn).Type); got != "void (int *, char *, int (*)(void))" {
		t.Fatalf("type = %q", got)
	}
	if n := b.Decls.Function(fn).Params.Count; n != 3 {
		t.Fatalf("params = %d, want 3", n)
	}
}

func TestTypedefNameVersusExpression(t *testing.T) {
	b := mustParse(t, `
typedef int T;
int V;
void f(void) {
	T * x;
	int y = 1;
	V * y;
}
`)
	fn := findDecl(b, "f")
	got := bodyKinds(b, b.Decls.Function(fn).Body)
	want := []ast.StmtKind{ast.StmtDecl, ast.StmtDecl, ast.ExprBinaryOperator}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("body kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTagDeclarations(t *testing.T) {
	b := mustParse(t, `
struct S { int a : 3; unsigned : 0; union { int u; float f; }; struct S *next; };
enum E { A, B = 5, C };
struct S s;
`)
	s := findDecl(b, "S")
	if rec := b.Decls.Record(s); rec == nil || !rec.Complete {
		t.Fatalf("struct S is not a complete record")
	}
	var fields []string
	for _, d := range childrenOf(b, s) {
		if b.Decls.Get(d).Kind == ast.DeclField {
			fields = append(fields, b.Name(d))
		}
	}
	if diff := cmp.Diff([]string{"a", "", "", "next"}, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	values := map[string]int64{}
	for _, d := range childrenOf(b, findDecl(b, "E")) {
		if ec := b.Decls.EnumConstant(d); ec != nil {
			values[b.Name(d)] = ec.Value.SExtValue()
		}
	}
	if diff := cmp.Diff(map[string]int64{"A": 0, "B": 5, "C": 6}, values); diff != "" {
		t.Fatalf("enumerators mismatch (-want +got):\n%s", diff)
	}
}

func TestDesignatedInitializer(t *testing.T) {
	b := mustParse(t, `
struct P { int x, y; };
struct P p = { .y = 2, .x = 1 };
int arr[] = { [4] = 1, 2 };
`)
	p := findDecl(b, "p")
	init := b.Decls.Var(p).Init
	if k := b.Stmts.Get(init).Kind; k != ast.ExprInitList {
		t.Fatalf("init kind = %v", k)
	}
	if n := b.Stmts.InitList(init).Inits.Count; n != 2 {
		t.Fatalf("inits = %d, want 2", n)
	}
	arr := findDecl(b, "arr")
	if got := b.Types.Spell(b.Decls.Get(arr).Type); got != "int [6]" {
		t.Fatalf("arr type = %q, want int [6]", got)
	}
}

func TestKRFunctionDefinition(t *testing.T) {
	b := mustParse(t, "int add(a, b) int a; long b; { return a + b; }")
	fn := findDecl(b, "add")
	data := b.Decls.Function(fn)
	if data.HasPrototype {
		t.Fatalf("K&R definition must not have a prototype")
	}
	if data.Params.Count != 2 {
		t.Fatalf("params = %d", data.Params.Count)
	}
	second := b.Decls.Param(data.Params, 1)
	if got := b.Types.Spell(b.Decls.Get(second).Type); got != "long" {
		t.Fatalf("b has type %q", got)
	}
}

func TestStaticAssert(t *testing.T) {
	mustParse(t, `_Static_assert(sizeof(int) == 4, "int is 32 bits");`)

	_, bag := parseSource(t, `_Static_assert(1 == 2, "nope");`)
	if !hasCode(bag, diag.SemaStaticAssertFailed) {
		t.Fatalf("expected static assertion failure, got %s", diagnosticsSummary(bag))
	}
	if !strings.Contains(diagnosticsSummary(bag), "nope") {
		t.Fatalf("message not carried: %s", diagnosticsSummary(bag))
	}
}

func TestDeclarationErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"missing semicolon", "int x\nint y;", diag.SynExpectSemicolon},
		{"nested function", "void f(void) { void g(void) {} }", diag.SynFunctionDefNotAllowed},
		{"anonymous tag reference", "struct;", diag.SynExpectIdentifier},
		{"identifier list in prototype", "int h(a, b);", diag.SynParamListMismatch},
		{"void not alone", "int k(void, int);", diag.SynParamListMismatch},
		{"unclosed brace", "struct S { int a;", diag.SynUnclosedBrace},
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

func TestMissingSemicolonOffersFix(t *testing.T) {
	_, bag := parseSource(t, "int x\n")
	for _, d := range bag.Items() {
		if d.Code != diag.SynExpectSemicolon {
			continue
		}
		if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != ";" {
			t.Fatalf("expected an insert-';' fix, got %+v", d.Fixes)
		}
		return
	}
	t.Fatalf("no semicolon diagnostic: %s", diagnosticsSummary(bag))
}

func TestRecoveryContinuesAfterError(t *testing.T) {
	b, bag := parseSource(t, "int x = ;\nint y;\n")
	if !hasCode(bag, diag.SynExpectExpression) {
		t.Fatalf("expected an expression error, got %s", diagnosticsSummary(bag))
	}
	if !findDecl(b, "y").IsValid() {
		t.Fatalf("declaration after the error was lost")
	}
}

func TestMaxErrorsStopsParsing(t *testing.T) {
	_, bag := parseSourceWithOptions(t, "int = ; int = ; int = ; int = ;", Options{MaxErrors: 2})
	if n := bag.CountBySeverity(diag.SevError); n != 2 {
		t.Fatalf("errors = %d, want 2: %s", n, diagnosticsSummary(bag))
	}
}
