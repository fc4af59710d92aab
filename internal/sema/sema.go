// Package sema builds the typed C AST. The parser drives it through the
// ActOn* entry points, one per recognised construct, the way a C front-end
// keeps syntax and semantics in lockstep.
package sema

import (
	"fmt"

	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/source"
	"cbridge/internal/types"
)

// Standard selects the language dialect.
type Standard uint8

const (
	StdGNU17 Standard = iota
	StdC89
	StdGNU89
	StdC99
	StdGNU99
	StdC11
	StdGNU11
	StdC17
	StdC23
)

// IsC89 reports the pre-C99 dialects.
func (s Standard) IsC89() bool { return s == StdC89 || s == StdGNU89 }

// Options configure a semantic pass over one translation unit.
type Options struct {
	Reporter diag.Reporter
	Standard Standard
}

// Sema holds scopes and per-function state while the parser runs.
type Sema struct {
	b        *ast.Builder
	tys      *types.Interner
	bi       types.Builtins
	reporter diag.Reporter
	opts     Options

	scope  *Scope
	curCtx ast.DeclID // decl context receiving new declarations

	fn *funcState

	vaList ast.DeclID
}

// funcState tracks the function body being analysed.
type funcState struct {
	decl     ast.DeclID
	result   types.QualType
	labels   map[source.StringID]ast.DeclID
	gotos    []pendingGoto
	loops    int
	switches []*switchState
}

type pendingGoto struct {
	label ast.DeclID
	span  source.Span
}

type switchState struct {
	cond     types.QualType
	values   map[uint64]source.Span
	hasDflt  bool
	dfltSpan source.Span
}

// New creates a Sema bound to builder with the file scope open.
func New(b *ast.Builder, opts Options) *Sema {
	s := &Sema{
		b:        b,
		tys:      b.Types,
		bi:       b.Types.Builtins(),
		reporter: opts.Reporter,
		opts:     opts,
		curCtx:   b.TU,
	}
	s.scope = newScope(nil, ScopeFile)
	return s
}

// Builder exposes the arenas being filled.
func (s *Sema) Builder() *ast.Builder { return s.b }

// Types exposes the type interner.
func (s *Sema) Types() *types.Interner { return s.tys }

// Standard returns the selected dialect.
func (s *Sema) Standard() Standard { return s.opts.Standard }

// AtFileScope reports whether no block is open.
func (s *Sema) AtFileScope() bool { return s.scope.kind == ScopeFile }

func (s *Sema) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	if s.reporter == nil {
		return
	}
	s.reporter.Report(code, diag.SevError, sp, fmt.Sprintf(format, args...), nil, nil)
}

func (s *Sema) warnf(code diag.Code, sp source.Span, format string, args ...any) {
	if s.reporter == nil {
		return
	}
	s.reporter.Report(code, diag.SevWarning, sp, fmt.Sprintf(format, args...), nil, nil)
}

// errorNote reports an error with a note pointing at a previous declaration.
func (s *Sema) errorNote(code diag.Code, sp source.Span, msg string, prev ast.DeclID) {
	b := diag.ReportError(s.reporter, code, sp, msg)
	if d := s.b.Decls.Get(prev); d != nil && d.Loc.IsValid() {
		b = b.WithNote(d.Loc, "previous declaration is here")
	}
	b.Emit()
}

func (s *Sema) name(id source.StringID) string {
	return s.b.Strings.MustLookup(id)
}

func (s *Sema) spell(q types.QualType) string {
	return s.tys.Spell(q)
}

// addToContext appends decl to the current decl context.
func (s *Sema) addToContext(decl ast.DeclID) {
	s.b.Decls.AddToContext(s.curCtx, decl)
}

// Finish closes the file scope and runs end-of-unit checks: tentative
// array definitions get one element, and static functions that are used
// but never defined are reported.
func (s *Sema) Finish() {
	for s.scope.parent != nil {
		s.scope = s.scope.parent
	}

	decls := s.b.Decls
	superseded := make(map[ast.DeclID]bool)
	for id := decls.FirstChild(s.b.TU); id.IsValid(); id = decls.NextSibling(id) {
		if prev := decls.Get(id).Prev; prev.IsValid() {
			superseded[prev] = true
		}
	}
	for id := decls.FirstChild(s.b.TU); id.IsValid(); id = decls.NextSibling(id) {
		if superseded[id] {
			continue
		}
		switch decls.Get(id).Kind {
		case ast.DeclVar:
			s.finishTentative(id)
		case ast.DeclFunction:
			s.finishInternal(id)
		}
	}
}

func (s *Sema) finishTentative(id ast.DeclID) {
	d := s.b.Decls.Get(id)
	if s.tys.KindOf(d.Type) != types.KindIncompleteArray {
		return
	}
	for r := id; r.IsValid(); r = s.b.Decls.Get(r).Prev {
		v := s.b.Decls.Var(r)
		if v == nil || v.Init.IsValid() || v.Storage == ast.SCExtern {
			return
		}
	}
	elem, _ := s.tys.Element(d.Type)
	s.warnf(diag.SemaTentativeArray, d.Loc, "tentative array definition assumed to have one element")
	d.Type = s.tys.ConstantArray(elem, 1).With(d.Type.Quals)
}

func (s *Sema) finishInternal(id ast.DeclID) {
	static, used := false, false
	for r := id; r.IsValid(); r = s.b.Decls.Get(r).Prev {
		fn := s.b.Decls.Function(r)
		if fn == nil || fn.Body.IsValid() {
			return
		}
		static = static || fn.Storage == ast.SCStatic
		used = used || s.b.Decls.Get(r).Flags&ast.DeclUsed != 0
	}
	if static && used {
		d := s.b.Decls.Get(id)
		s.warnf(diag.SemaUndefinedInternal, d.Loc, "function '%s' has internal linkage but is not defined", s.name(d.Name))
	}
}
