package cnode

import (
	"context"
	"sync/atomic"

	"cbridge/internal/ast"
	"cbridge/internal/driver"
	"cbridge/internal/source"
	"cbridge/internal/trace"
)

// Unit is one parsed translation unit. It owns every node reachable from it;
// handles stay valid until Close.
type Unit struct {
	b      *ast.Builder
	fs     *source.FileSet
	path   string
	diags  []Diagnostic
	closed atomic.Bool
}

// Parse runs the front end over argv: argv[0] is the input file, the rest
// are compiler flags. Any error diagnostic yields a *ParseError carrying all
// diagnostics; warnings of a successful parse are kept in Unit.Diagnostics.
func Parse(ctx context.Context, argv []string, opts ...Option) (*Unit, error) {
	cfg, base, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	ctx = withTracer(ctx, cfg)
	path := ""
	if len(argv) > 0 {
		path = argv[0]
	}
	res, err := driver.ParseCommandLine(ctx, append(argv[:len(argv):len(argv)], cfg.args...), base)
	return finish(path, res, err)
}

// ParseSource parses src as if it were the file name.
func ParseSource(ctx context.Context, name string, src []byte, opts ...Option) (*Unit, error) {
	cfg, base, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	ctx = withTracer(ctx, cfg)
	res, err := driver.ParseSourceCommandLine(ctx, name, src, cfg.args, base)
	return finish(name, res, err)
}

func resolve(opts []Option) (*config, driver.Options, error) {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}
	base, err := cfg.driverOptions()
	if err != nil {
		return nil, base, &ParseError{Err: err}
	}
	return cfg, base, nil
}

func withTracer(ctx context.Context, cfg *config) context.Context {
	if cfg.tracer == nil {
		return ctx
	}
	return trace.WithTracer(ctx, cfg.tracer)
}

func finish(path string, res *driver.ParseResult, err error) (*Unit, error) {
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	res.Bag.Sort()
	diags := convertDiagnostics(res.Bag.Items(), res.FileSet)
	if res.Failed() {
		return nil, &ParseError{Path: path, Diagnostics: diags}
	}
	if res.File != nil {
		path = res.File.Path
	}
	// после этого интернер только читается, обход можно вести из любых горутин
	res.Builder.Types.CanonicalizeAll()
	return &Unit{b: res.Builder, fs: res.FileSet, path: path, diags: diags}, nil
}

// Close ends the session. Every handle derived from u becomes invalid and
// panics on use. Close is idempotent.
func (u *Unit) Close() error {
	if u.closed.Swap(true) {
		return nil
	}
	u.b = nil
	u.fs = nil
	return nil
}

// Closed reports whether Close was called.
func (u *Unit) Closed() bool { return u.closed.Load() }

// Path is the primary input file as the front end saw it.
func (u *Unit) Path() string { return u.path }

// Diagnostics returns the warnings and remarks of the parse.
func (u *Unit) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), u.diags...)
}

// Decl returns the translation unit declaration, the root context.
func (u *Unit) Decl() TranslationUnitDecl {
	b := u.builder("Unit.Decl")
	return TranslationUnitDecl{Decl: Decl{Handle{unit: u, family: FamilyDecl, index: uint32(b.TU)}}}
}

// Decls returns the top-level declarations in source order.
func (u *Unit) Decls() []Decl {
	return u.Decl().Decls()
}

// Stats counts the nodes held by the unit.
func (u *Unit) Stats() (decls, stmts int) {
	b := u.builder("Unit.Stats")
	return int(b.Decls.Len()), int(b.Stmts.Len())
}

func (u *Unit) builder(op string) *ast.Builder {
	if u == nil {
		misuse(op, "nil unit")
	}
	if u.closed.Load() {
		misuse(op, "unit is closed")
	}
	return u.b
}
