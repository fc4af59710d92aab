package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"fortio.org/safecast"

	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/lexer"
	"cbridge/internal/observ"
	"cbridge/internal/parser"
	"cbridge/internal/sema"
	"cbridge/internal/source"
	"cbridge/internal/trace"
)

// ParseResult is one parsed translation unit. Builder is nil when the unit
// never reached the parser (bad argv, unreadable input); Bag then explains why.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Bag     *diag.Bag
	Options Options
	Timing  observ.Report

	onStage func(Stage) // set by ParseAll
}

func (r *ParseResult) stage(st Stage) {
	if r.onStage != nil {
		r.onStage(st)
	}
}

// Failed reports whether any error-severity diagnostic was produced.
func (r *ParseResult) Failed() bool {
	return r == nil || r.Bag.HasErrors() || r.Builder == nil
}

// ParseCommandLine parses argv (input file plus compiler flags) on top of
// base and runs the front end. The returned error is reserved for
// cancellation; every source or argv problem lands in the result's Bag.
func ParseCommandLine(ctx context.Context, argv []string, base Options) (*ParseResult, error) {
	res, input, rep := fromArgs(argv, base)
	if res.Bag.HasErrors() {
		return res, nil
	}
	return res, res.load(ctx, input, rep)
}

// ParseSourceCommandLine is ParseCommandLine for an in-memory buffer: name
// stands in for the input file and flags carry the remaining options.
func ParseSourceCommandLine(ctx context.Context, name string, src []byte, flags []string, base Options) (*ParseResult, error) {
	argv := make([]string, 0, len(flags)+1)
	argv = append(argv, name)
	res, _, rep := fromArgs(append(argv, flags...), base)
	if res.Bag.HasErrors() {
		return res, nil
	}
	return res, res.run(ctx, res.FileSet.AddVirtual(name, src), rep)
}

// fromArgs resolves argv and replays its diagnostics through the reporter
// chain of the resulting options, so -w and -Werror apply to them too.
func fromArgs(argv []string, base Options) (*ParseResult, string, diag.Reporter) {
	argBag := diag.NewBag(0)
	args := ParseArgs(argv, base, diag.BagReporter{Bag: argBag})

	res := newResult(args.Options)
	rep := reporterFor(res.Bag, args.Options)
	for _, d := range argBag.Items() {
		rep.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
	}
	return res, args.Input, rep
}

// ParseFile parses the file at path with opts.
func ParseFile(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	res := newResult(opts)
	return res, res.load(ctx, path, reporterFor(res.Bag, opts))
}

// ParseSource parses an in-memory buffer registered under name.
func ParseSource(ctx context.Context, name string, src []byte, opts Options) (*ParseResult, error) {
	res := newResult(opts)
	id := res.FileSet.AddVirtual(name, src)
	return res, res.run(ctx, id, reporterFor(res.Bag, opts))
}

func newResult(opts Options) *ParseResult {
	return &ParseResult{FileSet: source.NewFileSet(), Bag: diag.NewBag(0), Options: opts}
}

// reporterFor builds bag ← error limit ← dedup ← -w/-Werror promotion.
// Repeats are dropped before they count against the limit.
func reporterFor(bag *diag.Bag, opts Options) diag.Reporter {
	return diag.PromoteReporter{
		Next:             diag.NewDedupReporter(newLimitReporter(diag.BagReporter{Bag: bag}, opts.ErrorLimit)),
		SuppressWarnings: opts.SuppressWarnings,
		WarningsAsErrors: opts.WarningsAsErrors,
	}
}

func (r *ParseResult) load(ctx context.Context, path string, rep diag.Reporter) error {
	id, err := r.FileSet.Load(path)
	if err != nil {
		msg := fmt.Sprintf("cannot read '%s': %v", path, err)
		if errors.Is(err, fs.ErrNotExist) {
			msg = fmt.Sprintf("no such file or directory: '%s'", path)
		}
		rep.Report(diag.DrvLoadFile, diag.SevError, source.Span{}, msg, nil, nil)
		return nil
	}
	return r.run(ctx, id, rep)
}

// run drives lex → parse → sema over one file, tracing and timing each phase.
func (r *ParseResult) run(ctx context.Context, id source.FileID, rep diag.Reporter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.File = r.FileSet.Get(id)
	timer := observ.NewTimer()
	defer func() { r.Timing = timer.Report() }()

	unitSpan, ctx := trace.StartSpan(ctx, trace.ScopeUnit, "unit:"+r.File.Path)
	defer unitSpan.End("")

	r.stage(StageLex)
	lexSpan, _ := trace.StartSpan(ctx, trace.ScopePass, "lex")
	idx := timer.Begin("lex")
	lx := lexer.New(r.File, lexer.Options{Reporter: rep, KeepLineMarkers: true})
	toks := lx.All()
	timer.End(idx, strconv.Itoa(len(toks))+" tokens")
	lexSpan.WithExtra("tokens", strconv.Itoa(len(toks))).End("")
	if err := ctx.Err(); err != nil {
		return err
	}

	b := ast.NewBuilder(ast.Hints{Stmts: hintFor(len(toks))}, nil)
	s := sema.New(b, sema.Options{Reporter: rep, Standard: r.Options.Standard})

	r.stage(StageParse)
	parseSpan, _ := trace.StartSpan(ctx, trace.ScopePass, "parse")
	idx = timer.Begin("parse")
	parser.ParseTokens(toks, s, parser.Options{MaxErrors: r.Options.ErrorLimit, Reporter: rep})
	timer.End(idx, "")
	parseSpan.WithExtra("decls", strconv.FormatUint(uint64(b.Decls.Len()), 10)).
		WithExtra("stmts", strconv.FormatUint(uint64(b.Stmts.Len()), 10)).End("")
	if err := ctx.Err(); err != nil {
		return err
	}

	r.stage(StageSema)
	semaSpan, _ := trace.StartSpan(ctx, trace.ScopePass, "sema")
	idx = timer.Begin("sema")
	s.Finish()
	timer.End(idx, "")
	semaSpan.End("")

	r.Builder = b
	trace.Point(trace.FromContext(ctx), trace.ScopeUnit, "diagnostics",
		fmt.Sprintf("%d errors, %d warnings", r.Bag.CountBySeverity(diag.SevError), r.Bag.CountBySeverity(diag.SevWarning)),
		unitSpan.ID())
	return nil
}

// hintFor sizes the statement arena from the token count: roughly one node
// per two tokens in typical preprocessed C.
func hintFor(tokens int) uint {
	if tokens < 512 {
		return 0
	}
	hint, err := safecast.Conv[uint](tokens / 2)
	if err != nil {
		return 0
	}
	return hint
}
