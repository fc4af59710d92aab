package ast

import (
	"cbridge/internal/source"
	"cbridge/internal/types"
)

type Hints struct{ Decls, Stmts uint }

// Builder owns every arena of one translation unit.
type Builder struct {
	Decls   *Decls
	Stmts   *Stmts
	Strings *source.Interner
	Types   *types.Interner
	TU      DeclID
}

// NewBuilder creates the arenas and the TranslationUnitDecl root.
func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Decls == 0 {
		hints.Decls = 1 << 7
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	b := &Builder{
		Decls:   NewDecls(hints.Decls),
		Stmts:   NewStmts(hints.Stmts),
		Strings: strings,
		Types:   types.NewInterner(),
	}
	b.TU = b.Decls.New(DeclTranslationUnit, source.Span{}, source.Span{}, source.NoStringID, types.QualType{})
	b.Decls.Get(b.TU).Flags |= DeclImplicit
	return b
}

// Name resolves a declaration name.
func (b *Builder) Name(id DeclID) string {
	d := b.Decls.Get(id)
	if d == nil {
		return ""
	}
	return b.Strings.MustLookup(d.Name)
}
