package parser

import (
	"fmt"
	"strings"
	"testing"

	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/lexer"
	"cbridge/internal/sema"
	"cbridge/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.Builder, *diag.Bag) {
	return parseSourceWithOptions(t, input, Options{})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) (*ast.Builder, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(input)))

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	s := sema.New(builder, sema.Options{Reporter: reporter})

	if opts.MaxErrors == 0 {
		opts.MaxErrors = 100
	}
	opts.Reporter = reporter

	result := ParseFile(lx, s, opts)
	if result.Bag == nil {
		result.Bag = bag
	}
	return builder, result.Bag
}

// mustParse разбирает вход и падает на любой ошибке.
func mustParse(t *testing.T, input string) *ast.Builder {
	t.Helper()
	b, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return b
}

// findDecl ищет объявление верхнего уровня по имени (последнее из редеклараций).
func findDecl(b *ast.Builder, name string) ast.DeclID {
	found := ast.NoDeclID
	for d := b.Decls.FirstChild(b.TU); d.IsValid(); d = b.Decls.NextSibling(d) {
		if b.Name(d) == name {
			found = d
		}
	}
	return found
}

func childrenOf(b *ast.Builder, ctx ast.DeclID) []ast.DeclID {
	var out []ast.DeclID
	for d := b.Decls.FirstChild(ctx); d.IsValid(); d = b.Decls.NextSibling(d) {
		out = append(out, d)
	}
	return out
}

// bodyKinds: виды элементов составного оператора в прямом порядке.
func bodyKinds(b *ast.Builder, body ast.StmtID) []ast.StmtKind {
	var rev []ast.StmtKind
	for s := b.Stmts.BodyTail(body); s.IsValid(); s = b.Stmts.PrevSibling(s) {
		rev = append(rev, b.Stmts.Get(s).Kind)
	}
	out := make([]ast.StmtKind, len(rev))
	for i, k := range rev {
		out[len(rev)-1-i] = k
	}
	return out
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
