package cnode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parse(t *testing.T, src string, opts ...Option) *Unit {
	t.Helper()
	u, err := ParseSource(context.Background(), "test.c", []byte(src), opts...)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(func() { _ = u.Close() })
	return u
}

func mustAs[K castable[K]](t *testing.T, n Node) K {
	t.Helper()
	k, ok := As[K](n)
	if !ok {
		var zero K
		t.Fatalf("%s is not a %T", n.KindName(), zero)
	}
	return k
}

func names(decls []Decl) []string {
	out := make([]string, 0, len(decls))
	for _, d := range decls {
		if nd, ok := As[NamedDecl](d); ok {
			out = append(out, nd.Name())
		}
	}
	return out
}

func lookup(t *testing.T, u *Unit, name string) Decl {
	t.Helper()
	for _, d := range u.Decls() {
		if nd, ok := As[NamedDecl](d); ok && nd.Name() == name {
			return d
		}
	}
	t.Fatalf("no file-scope declaration %q", name)
	return Decl{}
}

func body(t *testing.T, u *Unit, fn string) []Stmt {
	t.Helper()
	f := mustAs[FunctionDecl](t, lookup(t, u, fn))
	b, ok := f.Body()
	if !ok {
		t.Fatalf("%s has no body", fn)
	}
	return b.Body()
}

func TestVarWithBinaryInitializer(t *testing.T) {
	u := parse(t, "int x = 2 + 3;")
	decls := u.Decls()
	if len(decls) != 1 {
		t.Fatalf("decls = %v, want one", names(decls))
	}
	x := mustAs[VarDecl](t, decls[0])
	if x.Name() != "x" || x.Type().String() != "int" {
		t.Fatalf("got %s '%s'", x.Name(), x.Type())
	}
	if !x.IsFileScope() || x.StorageClass() != SCNone {
		t.Fatalf("file scope %v, storage %s", x.IsFileScope(), x.StorageClass())
	}
	loc, ok := x.Location()
	if !ok || loc != (SourceLocation{Filename: "test.c", Line: 1, Column: 5}) {
		t.Fatalf("location = %v (%v)", loc, ok)
	}

	init, ok := x.Init()
	if !ok || !x.HasInit() {
		t.Fatalf("x has no initializer")
	}
	add := mustAs[BinaryOperator](t, init.IgnoreParenImpCasts())
	if add.Opcode() != BOAdd || add.OpcodeStr() != "+" || add.IsAssignmentOp() {
		t.Fatalf("opcode = %s", add.OpcodeStr())
	}
	lhs := mustAs[IntegerLiteral](t, add.LHS().IgnoreParenImpCasts())
	rhs := mustAs[IntegerLiteral](t, add.RHS().IgnoreParenImpCasts())
	if lhs.Value().Int64() != 2 || rhs.Value().Int64() != 3 {
		t.Fatalf("operands = %s, %s", lhs.Value(), rhs.Value())
	}
	if !lhs.Value().Signed() || add.Type().String() != "int" {
		t.Fatalf("literal signed %v, sum type %s", lhs.Value().Signed(), add.Type())
	}
}

func TestIfElse(t *testing.T) {
	u := parse(t, `
int f(int a) {
	if (a)
		return 1;
	else
		return 2;
}
int g(int a) {
	if (a)
		return 1;
	return 0;
}
`)
	ifs := mustAs[IfStmt](t, body(t, u, "f")[0])
	if !ifs.HasElseStorage() {
		t.Fatalf("if/else lost its else")
	}
	cond := mustAs[DeclRefExpr](t, ifs.Cond().IgnoreParenImpCasts())
	param := mustAs[ParmVarDecl](t, cond.Decl())
	if param.Name() != "a" || param.Index() != 0 {
		t.Fatalf("condition refers to %s #%d", param.Name(), param.Index())
	}
	then := mustAs[ReturnStmt](t, ifs.Then())
	v, ok := then.RetValue()
	if !ok || mustAs[IntegerLiteral](t, v.IgnoreParenImpCasts()).Value().Int64() != 1 {
		t.Fatalf("then branch does not return 1")
	}
	els, ok := ifs.Else()
	if !ok {
		t.Fatalf("Else absent")
	}
	v, _ = mustAs[ReturnStmt](t, els).RetValue()
	if mustAs[IntegerLiteral](t, v.IgnoreParenImpCasts()).Value().Int64() != 2 {
		t.Fatalf("else branch does not return 2")
	}

	plain := mustAs[IfStmt](t, body(t, u, "g")[0])
	if _, ok := plain.Else(); ok || plain.HasElseStorage() {
		t.Fatalf("if without else reports an else branch")
	}
}

func TestImplicitDeclarationHasNoLocation(t *testing.T) {
	u := parse(t, "int main(void) { return foo(1); }")
	foo := lookup(t, u, "foo")
	if !foo.IsImplicit() {
		t.Fatalf("foo is not implicit")
	}
	if loc, ok := foo.Location(); ok {
		t.Fatalf("implicit foo has location %v", loc)
	}
	if _, ok := foo.Range(); ok {
		t.Fatalf("implicit foo has a range")
	}
	if _, ok := u.Decl().Location(); ok {
		t.Fatalf("translation unit has a location")
	}
	if r, ok := u.Decl().Range(); ok {
		t.Fatalf("translation unit has a range %v", r)
	}

	ret := mustAs[ReturnStmt](t, body(t, u, "main")[0])
	v, _ := ret.RetValue()
	call := mustAs[CallExpr](t, v.IgnoreParenImpCasts())
	callee, ok := call.DirectCallee()
	if !ok || !Same(callee, foo) {
		t.Fatalf("DirectCallee = %v (%v), want foo", callee, ok)
	}
	if call.NumArgs() != 1 || len(call.Args()) != 1 {
		t.Fatalf("NumArgs = %d", call.NumArgs())
	}

	var warned bool
	for _, d := range u.Diagnostics() {
		warned = warned || (d.Severity == SeverityWarning && strings.Contains(d.Message, "foo"))
	}
	if !warned {
		t.Fatalf("no implicit declaration warning in %v", u.Diagnostics())
	}
}

func TestSiblingChain(t *testing.T) {
	u := parse(t, "int a; int b; int c;")
	var got []string
	d, ok := u.Decl().FirstDecl()
	for ok {
		got = append(got, mustAs[NamedDecl](t, d).Name())
		d, ok = d.NextDecl()
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("forward chain mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(got, names(u.Decls())); diff != "" {
		t.Fatalf("Decls disagrees with the chain (-chain +Decls):\n%s", diff)
	}
}

func TestReverseBodyRoundTrip(t *testing.T) {
	u := parse(t, "void f(void) { int a; a = 1; ; a++; return; }")
	f := mustAs[FunctionDecl](t, lookup(t, u, "f"))
	c, _ := f.Body()
	fwd, rev := c.Body(), c.ReverseBody()
	if len(fwd) != c.Size() || len(rev) != c.Size() || c.Size() != 5 {
		t.Fatalf("sizes: body %d, reverse %d, Size %d", len(fwd), len(rev), c.Size())
	}
	for i := range fwd {
		if !Same(fwd[i], rev[len(rev)-1-i]) {
			t.Fatalf("element %d differs between Body and ReverseBody", i)
		}
	}
	kinds := make([]string, len(fwd))
	for i, s := range fwd {
		kinds[i] = s.KindName()
	}
	want := []string{"DeclStmt", "BinaryOperator", "NullStmt", "UnaryOperator", "ReturnStmt"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("body kinds (-want +got):\n%s", diff)
	}
	back, ok := c.BodyBack()
	if !ok || !Same(back, fwd[4]) {
		t.Fatalf("BodyBack is not the last statement")
	}
}

func TestDownCasts(t *testing.T) {
	u := parse(t, "int f(int p) { int v = p * 2; return v; }")
	f := lookup(t, u, "f")
	if !Is[FunctionDecl](f) || !Is[DeclContext](f) || Is[VarDecl](f) {
		t.Fatalf("function lattice broken")
	}
	param := mustAs[FunctionDecl](t, f).Param(0)

	tests := []struct {
		name string
		ok   bool
		cast func(Node) bool
	}{
		{"ParmVarDecl", true, Is[ParmVarDecl]},
		{"VarDecl", true, Is[VarDecl]},
		{"DeclaratorDecl", true, Is[DeclaratorDecl]},
		{"ValueDecl", true, Is[ValueDecl]},
		{"NamedDecl", true, Is[NamedDecl]},
		{"Decl", true, Is[Decl]},
		{"FieldDecl", false, Is[FieldDecl]},
		{"FunctionDecl", false, Is[FunctionDecl]},
		{"TypeDecl", false, Is[TypeDecl]},
		{"Stmt", false, Is[Stmt]},
		{"Expr", false, Is[Expr]},
	}
	for _, tt := range tests {
		if got := tt.cast(param); got != tt.ok {
			t.Errorf("ParmVarDecl as %s = %v, want %v", tt.name, got, tt.ok)
		}
	}

	decl := mustAs[DeclStmt](t, body(t, u, "f")[0])
	v, ok := decl.SingleDecl()
	if !ok {
		t.Fatalf("DeclStmt is not single")
	}
	init, _ := mustAs[VarDecl](t, v).Init()
	mul := init.IgnoreParenImpCasts()
	if !Is[BinaryOperator](mul) || !Is[Expr](mul) || !Is[Stmt](mul) {
		t.Fatalf("binary operator lattice broken")
	}
	if Is[CompoundAssignOperator](mul) || Is[CastExpr](mul) || Is[Decl](mul) {
		t.Fatalf("binary operator accepted by an unrelated kind")
	}

	self := mustAs[VarDecl](t, param)
	if !Same(self, param) {
		t.Fatalf("self cast changed identity")
	}
	switch param.Specific().(type) {
	case ParmVarDecl:
	default:
		t.Fatalf("Specific of a parameter is %T", param.Specific())
	}
}

func TestHasInitMatchesInit(t *testing.T) {
	u := parse(t, "int a; int b = 1; static int c; extern int d; int e[2] = {1, 2};")
	for _, d := range u.Decls() {
		v := mustAs[VarDecl](t, d)
		_, ok := v.Init()
		if ok != v.HasInit() {
			t.Errorf("%s: HasInit %v, Init present %v", v.Name(), v.HasInit(), ok)
		}
	}
	e := mustAs[VarDecl](t, lookup(t, u, "e"))
	init, _ := e.Init()
	list := mustAs[InitListExpr](t, init)
	if list.NumInits() != 2 || len(list.Inits()) != 2 {
		t.Fatalf("NumInits = %d", list.NumInits())
	}
	if n, ok := e.Type().ArraySize(); !ok || n != 2 {
		t.Fatalf("ArraySize = %d (%v)", n, ok)
	}
}

func TestIntegerLiteralProjection(t *testing.T) {
	u := parse(t, `
unsigned int u = 0xFFFFFFFFu;
unsigned long long m = 0xFFFFFFFFFFFFFFFFull;
long long big = 9223372036854775807LL;
enum E { A = -1, B };
`)
	literal := func(name string) Int {
		init, ok := mustAs[VarDecl](t, lookup(t, u, name)).Init()
		if !ok {
			t.Fatalf("%s has no initializer", name)
		}
		return mustAs[IntegerLiteral](t, init.IgnoreParenImpCasts()).Value()
	}
	if v := literal("u"); v.Signed() || v.Uint64() != 0xFFFFFFFF || v.Int64() != 0xFFFFFFFF {
		t.Errorf("0xFFFFFFFFu = %s signed=%v int64=%d", v, v.Signed(), v.Int64())
	}
	if v := literal("m"); v.Signed() || v.Uint64() != 0xFFFFFFFFFFFFFFFF || v.FitsInt64() {
		t.Errorf("0xFFFFFFFFFFFFFFFFull = %s signed=%v", v, v.Signed())
	}
	if v := literal("big"); !v.Signed() || v.Int64() != 9223372036854775807 {
		t.Errorf("LLONG_MAX = %s signed=%v", v, v.Signed())
	}

	e := mustAs[EnumDecl](t, lookup(t, u, "E"))
	var values []int64
	for _, c := range e.Enumerators() {
		values = append(values, c.Value().Int64())
	}
	if diff := cmp.Diff([]int64{-1, 0}, values); diff != "" {
		t.Fatalf("enumerators (-want +got):\n%s", diff)
	}
}

func TestStorageClassOf(t *testing.T) {
	u := parse(t, "static int s; extern int e; int plain; typedef int T; static void f(void) {}")
	tests := []struct {
		name string
		want StorageClass
	}{
		{"s", SCStatic},
		{"e", SCExtern},
		{"plain", SCNone},
		{"f", SCStatic},
	}
	for _, tt := range tests {
		got, err := StorageClassOf(lookup(t, u, tt.name))
		if err != nil || got != tt.want {
			t.Errorf("%s: got %s, %v; want %s", tt.name, got, err, tt.want)
		}
	}
	if _, err := StorageClassOf(lookup(t, u, "T")); !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("typedef storage class error = %v, want ErrKindMismatch", err)
	}
}

func TestUseAfterClosePanics(t *testing.T) {
	u, err := ParseSource(context.Background(), "test.c", []byte("int x;"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	x := mustAs[VarDecl](t, u.Decls()[0])
	if err := u.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := u.Close(); err != nil || !u.Closed() {
		t.Fatalf("second Close = %v, closed %v", err, u.Closed())
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		var merr *MisuseError
		if !ok || !errors.As(err, &merr) {
			t.Fatalf("recovered %v, want *MisuseError", r)
		}
	}()
	_ = x.Name()
	t.Fatalf("Name after Close did not panic")
}

func TestParamIndexOutOfRangePanics(t *testing.T) {
	u := parse(t, "void f(int a) {}")
	f := mustAs[FunctionDecl](t, lookup(t, u, "f"))
	defer func() {
		if _, ok := recover().(*MisuseError); !ok {
			t.Fatalf("Param(1) did not panic with *MisuseError")
		}
	}()
	f.Param(1)
}

func TestParseErrors(t *testing.T) {
	_, err := ParseSource(context.Background(), "bad.c", []byte("int x = ;"))
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("err = %v, want ErrParseFailed", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || len(perr.Errors()) == 0 {
		t.Fatalf("ParseError carries no errors: %v", err)
	}
	first := perr.Errors()[0]
	if !first.HasLocation || first.Location.Filename != "bad.c" || first.Location.Line != 1 {
		t.Fatalf("first error at %v (%v)", first.Location, first.HasLocation)
	}

	_, err = ParseSource(context.Background(), "w.c", []byte("int main(void) { return foo(); }"), WithWarningsAsErrors())
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("-Werror: err = %v", err)
	}

	_, err = ParseSource(context.Background(), "s.c", []byte("int x;"), WithStandard("c2049"))
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("bad standard: err = %v", err)
	}
}

func TestParseFromCommandLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit.c")
	if err := os.WriteFile(path, []byte("int main(void) { for (int i = 0; i < 3; i++) ; return 0; }\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	u, err := Parse(context.Background(), []string{path, "-std=c99"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer u.Close()
	if u.Path() != path {
		t.Fatalf("Path = %q, want %q", u.Path(), path)
	}
	loop := mustAs[ForStmt](t, body(t, u, "main")[0])
	if _, ok := loop.Init(); !ok {
		t.Fatalf("for loop lost its init")
	}
	if _, ok := loop.Inc(); !ok {
		t.Fatalf("for loop lost its increment")
	}

	_, err = Parse(context.Background(), []string{filepath.Join(t.TempDir(), "missing.c")})
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("missing file: err = %v", err)
	}
}

func TestLineDirectivesShapeLocations(t *testing.T) {
	u := parse(t, "#line 100 \"virtual.c\"\nint y;\n")
	loc, ok := lookup(t, u, "y").Location()
	if !ok || loc.Filename != "virtual.c" || loc.Line != 100 || loc.Column != 5 {
		t.Fatalf("location = %v (%v)", loc, ok)
	}
}

func TestRecordsAndTypes(t *testing.T) {
	u := parse(t, `
typedef struct point { int x; unsigned flags : 3; } point_t;
const char *name;
int get(point_t *p) { return p->x; }
`)
	rec := mustAs[RecordDecl](t, lookup(t, u, "point"))
	if !rec.IsStruct() || rec.IsUnion() || !rec.IsCompleteDefinition() {
		t.Fatalf("struct point: struct %v union %v complete %v", rec.IsStruct(), rec.IsUnion(), rec.IsCompleteDefinition())
	}
	fields := rec.Fields()
	if len(fields) != 2 || fields[0].Name() != "x" || fields[0].HasBitWidth() {
		t.Fatalf("fields = %v", len(fields))
	}
	if w, ok := fields[1].BitWidthValue(); !ok || w != 3 {
		t.Fatalf("flags width = %d (%v)", w, ok)
	}
	if !Same(fields[1].Parent(), rec) {
		t.Fatalf("field parent is not the record")
	}

	td := mustAs[TypedefDecl](t, lookup(t, u, "point_t"))
	if td.UnderlyingType().String() != "struct point" {
		t.Fatalf("underlying = %s", td.UnderlyingType())
	}
	if d, ok := td.UnderlyingType().Decl(); !ok || !Same(d, rec) {
		t.Fatalf("underlying type does not lead back to the record")
	}

	name := mustAs[VarDecl](t, lookup(t, u, "name")).Type()
	pointee, ok := name.Pointee()
	if !ok || name.String() != "const char *" || !pointee.IsConst() || name.IsConst() {
		t.Fatalf("name: %s, pointee %s", name, pointee)
	}

	ret := mustAs[ReturnStmt](t, body(t, u, "get")[0])
	v, _ := ret.RetValue()
	m := mustAs[MemberExpr](t, v.IgnoreParenImpCasts())
	if !m.IsArrow() || !Same(m.MemberDecl(), fields[0]) {
		t.Fatalf("p->x does not resolve to field x")
	}

	param := mustAs[FunctionDecl](t, lookup(t, u, "get")).Param(0)
	pt, _ := param.Type().Pointee()
	if pt.TypeKind() != TypeTypedef || pt.CanonicalKind() != TypeRecord {
		t.Fatalf("pointee kinds: %s / %s", pt.TypeKind(), pt.CanonicalKind())
	}
	if !pt.Equal(td.UnderlyingType()) {
		t.Fatalf("point_t and struct point are not the same canonical type")
	}
}
