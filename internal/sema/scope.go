package sema

import (
	"cbridge/internal/ast"
	"cbridge/internal/source"
)

// ScopeKind distinguishes file, block and prototype scopes.
type ScopeKind uint8

const (
	ScopeFile ScopeKind = iota
	ScopeBlock
	ScopePrototype
)

// Scope has separate namespaces for ordinary identifiers and tags;
// labels live in funcState.
type Scope struct {
	parent   *Scope
	kind     ScopeKind
	ordinary map[source.StringID]ast.DeclID
	tags     map[source.StringID]ast.DeclID
}

func newScope(parent *Scope, kind ScopeKind) *Scope {
	return &Scope{
		parent:   parent,
		kind:     kind,
		ordinary: make(map[source.StringID]ast.DeclID),
		tags:     make(map[source.StringID]ast.DeclID),
	}
}

// PushScope opens a nested scope.
func (s *Sema) PushScope(kind ScopeKind) {
	s.scope = newScope(s.scope, kind)
}

// PopScope closes the innermost scope.
func (s *Sema) PopScope() {
	if s.scope.parent != nil {
		s.scope = s.scope.parent
	}
}

// lookupOrdinary searches enclosing scopes.
func (s *Sema) lookupOrdinary(name source.StringID) (ast.DeclID, *Scope) {
	for sc := s.scope; sc != nil; sc = sc.parent {
		if id, ok := sc.ordinary[name]; ok {
			return id, sc
		}
	}
	return ast.NoDeclID, nil
}

func (s *Sema) lookupTag(name source.StringID, onlyCurrent bool) (ast.DeclID, *Scope) {
	for sc := s.scope; sc != nil; sc = sc.parent {
		if id, ok := sc.tags[name]; ok {
			return id, sc
		}
		if onlyCurrent {
			break
		}
	}
	return ast.NoDeclID, nil
}

func (s *Sema) fileScope() *Scope {
	sc := s.scope
	for sc.parent != nil {
		sc = sc.parent
	}
	return sc
}

// IsTypeName reports whether name currently denotes a typedef.
// The parser relies on this to split declarations from expressions.
func (s *Sema) IsTypeName(name string) bool {
	id := s.b.Strings.Intern(name)
	d, _ := s.lookupOrdinary(id)
	if !d.IsValid() {
		return name == "__builtin_va_list"
	}
	return s.b.Decls.Get(d).Kind == ast.DeclTypedef
}

// LookupTypedef resolves a typedef name; __builtin_va_list is created on
// first use.
func (s *Sema) LookupTypedef(name string) (ast.DeclID, bool) {
	id := s.b.Strings.Intern(name)
	d, _ := s.lookupOrdinary(id)
	if d.IsValid() && s.b.Decls.Get(d).Kind == ast.DeclTypedef {
		return d, true
	}
	if name == "__builtin_va_list" {
		return s.builtinVaList(), true
	}
	return ast.NoDeclID, false
}
