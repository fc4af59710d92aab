package cnode

import (
	"fmt"

	"cbridge/internal/ast"
)

// Family names the arena a handle indexes. Expressions share the statement
// arena.
type Family uint8

const (
	FamilyNone Family = iota
	FamilyDecl
	FamilyStmt
)

func (f Family) String() string {
	switch f {
	case FamilyDecl:
		return "decl"
	case FamilyStmt:
		return "stmt"
	}
	return "none"
}

// Handle is a reference to one node: its unit, arena and 1-based index.
// Handles are comparable; equal handles denote the same node. The zero
// Handle is null and every accessor on it panics.
type Handle struct {
	unit   *Unit
	family Family
	index  uint32
}

// IsNull reports the zero handle.
func (h Handle) IsNull() bool { return h.unit == nil || h.index == 0 }

// Family reports which arena h indexes.
func (h Handle) Family() Family { return h.family }

// Unit returns the owning unit.
func (h Handle) Unit() *Unit { return h.unit }

// ID is a stable per-unit number for dumps: the family in the high bits,
// the arena index in the low ones.
func (h Handle) ID() uint64 { return uint64(h.family)<<32 | uint64(h.index) }

func (h Handle) String() string {
	if h.IsNull() {
		return "<null>"
	}
	return fmt.Sprintf("%s#%d", h.family, h.index)
}

func (h Handle) handle() Handle { return h }

func (h Handle) builder(op string) *ast.Builder {
	if h.IsNull() {
		misuse(op, "null handle")
	}
	return h.unit.builder(op)
}

func (h Handle) decl(op string) (*ast.Builder, *ast.Decl) {
	b := h.builder(op)
	if h.family != FamilyDecl {
		misuse(op, "%s is not a declaration", h)
	}
	return b, b.Decls.Get(ast.DeclID(h.index))
}

func (h Handle) stmt(op string) (*ast.Builder, *ast.Stmt) {
	b := h.builder(op)
	if h.family != FamilyStmt {
		misuse(op, "%s is not a statement", h)
	}
	return b, b.Stmts.Get(ast.StmtID(h.index))
}

func (h Handle) declID() ast.DeclID { return ast.DeclID(h.index) }
func (h Handle) stmtID() ast.StmtID { return ast.StmtID(h.index) }

// KindName is the clang name of the node's runtime class: "Var",
// "Function" for declarations, "IfStmt", "BinaryOperator" for statements.
func (h Handle) KindName() string {
	switch h.family {
	case FamilyDecl:
		_, d := h.decl("KindName")
		return d.Kind.String()
	case FamilyStmt:
		_, s := h.stmt("KindName")
		return s.Kind.String()
	}
	misuse("KindName", "null handle")
	return ""
}

// IsImplicit reports nodes synthesized by the compiler.
func (h Handle) IsImplicit() bool {
	if h.family == FamilyDecl {
		_, d := h.decl("IsImplicit")
		return d.IsImplicit()
	}
	_, s := h.stmt("IsImplicit")
	return s.IsImplicit()
}

// Location is the presumed position of the node: the name of a named
// declaration, the start of anything else. It is absent for nodes without
// a source position.
func (h Handle) Location() (SourceLocation, bool) {
	if h.family == FamilyDecl {
		_, d := h.decl("Location")
		return presumed(h.unit.fs, d.Loc)
	}
	_, s := h.stmt("Location")
	return presumed(h.unit.fs, s.Span)
}

// Range is the presumed extent of the node.
func (h Handle) Range() (SourceRange, bool) {
	if h.family == FamilyDecl {
		_, d := h.decl("Range")
		return presumedRange(h.unit.fs, d.Span)
	}
	_, s := h.stmt("Range")
	return presumedRange(h.unit.fs, s.Span)
}

// Children returns the direct children in source order, each as its most
// specific handle type.
func (h Handle) Children() []Node {
	if h.family == FamilyDecl {
		return declChildren(Decl{h})
	}
	return stmtChildren(Stmt{h})
}

// Node is implemented by every handle type.
type Node interface {
	KindName() string
	IsImplicit() bool
	Location() (SourceLocation, bool)
	Range() (SourceRange, bool)
	Children() []Node
	Family() Family
	ID() uint64
	handle() Handle
}

// Same reports whether a and b denote the same node, whatever their static
// handle types.
func Same(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.handle() == b.handle()
}

func declHandle(u *Unit, id ast.DeclID) Handle {
	if !id.IsValid() {
		return Handle{}
	}
	return Handle{unit: u, family: FamilyDecl, index: uint32(id)}
}

func stmtHandle(u *Unit, id ast.StmtID) Handle {
	if !id.IsValid() {
		return Handle{}
	}
	return Handle{unit: u, family: FamilyStmt, index: uint32(id)}
}
