package sema

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/source"
	"cbridge/internal/types"
)

// TypeSpecWidth counts short/long keywords.
type TypeSpecWidth uint8

const (
	WidthNone TypeSpecWidth = iota
	WidthShort
	WidthLong
	WidthLongLong
)

// TypeSpecSign records signed/unsigned keywords.
type TypeSpecSign uint8

const (
	SignNone TypeSpecSign = iota
	SignSigned
	SignUnsigned
)

// TypeSpecBase is the base keyword of a type specifier.
type TypeSpecBase uint8

const (
	BaseNone TypeSpecBase = iota
	BaseVoid
	BaseBool
	BaseChar
	BaseInt
	BaseInt128
	BaseFloat
	BaseDouble
	BaseTypedef // typedef name, see DeclSpec.Named
	BaseTag     // struct/union/enum, see DeclSpec.Tag
)

// DeclSpec accumulates declaration specifiers as the parser reads them.
type DeclSpec struct {
	Span        source.Span
	Storage     ast.StorageClass
	StorageSpan source.Span
	Typedef     bool
	Inline      bool
	Noreturn    bool
	ThreadLocal bool
	Quals       types.Qualifiers

	Base  TypeSpecBase
	Width TypeSpecWidth
	Sign  TypeSpecSign

	Named       ast.DeclID // typedef decl for BaseTypedef
	Tag         ast.DeclID // tag decl for BaseTag
	TagDefined  bool       // the specifier carried a body
	TagOwned    bool       // the specifier created ds.Tag
	TypeofType  types.QualType
	invalidSeen bool
	intWarned   bool
}

// HasTypeSpecifier reports whether any type keyword was seen.
func (ds *DeclSpec) HasTypeSpecifier() bool {
	return ds.Base != BaseNone || ds.Width != WidthNone || ds.Sign != SignNone || !ds.TypeofType.IsNull()
}

// SetBase records a base type keyword, reporting duplicates.
func (s *Sema) SetBase(ds *DeclSpec, base TypeSpecBase, sp source.Span) {
	if ds.Base != BaseNone {
		s.errorf(diag.SynDuplicateSpecifier, sp, "cannot combine with previous '%s' declaration specifier", baseName(ds.Base))
		ds.invalidSeen = true
		return
	}
	ds.Base = base
	ds.Span = ds.Span.Cover(sp)
}

// SetWidth records short/long.
func (s *Sema) SetWidth(ds *DeclSpec, w TypeSpecWidth, sp source.Span) {
	switch {
	case ds.Width == WidthNone:
		ds.Width = w
	case ds.Width == WidthLong && w == WidthLong:
		ds.Width = WidthLongLong
	case ds.Width == WidthLongLong && w == WidthLong:
		s.errorf(diag.SynInvalidSpecifiers, sp, "'long long long' is invalid")
		ds.invalidSeen = true
	default:
		s.errorf(diag.SynDuplicateSpecifier, sp, "cannot combine with previous width specifier")
		ds.invalidSeen = true
	}
	ds.Span = ds.Span.Cover(sp)
}

// SetSign records signed/unsigned.
func (s *Sema) SetSign(ds *DeclSpec, sign TypeSpecSign, sp source.Span) {
	if ds.Sign != SignNone && ds.Sign != sign {
		s.errorf(diag.SynInvalidSpecifiers, sp, "cannot combine 'signed' and 'unsigned'")
		ds.invalidSeen = true
		return
	}
	ds.Sign = sign
	ds.Span = ds.Span.Cover(sp)
}

// SetStorage records a storage-class specifier or typedef.
func (s *Sema) SetStorage(ds *DeclSpec, sc ast.StorageClass, isTypedef bool, sp source.Span) {
	if ds.Storage != ast.SCNone || ds.Typedef {
		s.errorf(diag.SynDuplicateSpecifier, sp, "cannot combine with previous storage class specifier")
		return
	}
	ds.Storage = sc
	ds.Typedef = isTypedef
	ds.StorageSpan = sp
	ds.Span = ds.Span.Cover(sp)
}

func baseName(b TypeSpecBase) string {
	switch b {
	case BaseVoid:
		return "void"
	case BaseBool:
		return "_Bool"
	case BaseChar:
		return "char"
	case BaseInt:
		return "int"
	case BaseInt128:
		return "__int128"
	case BaseFloat:
		return "float"
	case BaseDouble:
		return "double"
	case BaseTypedef:
		return "type-name"
	case BaseTag:
		return "tag"
	}
	return "none"
}

// SpecType resolves the accumulated specifiers into a qualified type.
func (s *Sema) SpecType(ds *DeclSpec) types.QualType {
	q := s.specBase(ds)
	return q.With(ds.Quals)
}

func (s *Sema) specBase(ds *DeclSpec) types.QualType {
	if !ds.TypeofType.IsNull() {
		return ds.TypeofType
	}
	bad := func(msg string) types.QualType {
		if !ds.invalidSeen {
			s.errorf(diag.SynInvalidSpecifiers, ds.Span, "%s", msg)
			ds.invalidSeen = true
		}
		return s.bi.Q(types.Int)
	}
	switch ds.Base {
	case BaseTypedef, BaseTag:
		if ds.Width != WidthNone || ds.Sign != SignNone {
			return bad("cannot combine type name with width or sign specifiers")
		}
		if ds.Base == BaseTypedef {
			return s.b.Decls.Get(ds.Named).Type
		}
		return s.b.Decls.Get(ds.Tag).Type
	case BaseVoid, BaseBool:
		if ds.Width != WidthNone || ds.Sign != SignNone {
			return bad("invalid combination of type specifiers with '" + baseName(ds.Base) + "'")
		}
		if ds.Base == BaseVoid {
			return s.bi.Q(types.Void)
		}
		return s.bi.Q(types.Bool)
	case BaseFloat:
		if ds.Width != WidthNone || ds.Sign != SignNone {
			return bad("invalid combination of type specifiers with 'float'")
		}
		return s.bi.Q(types.Float)
	case BaseDouble:
		if ds.Sign != SignNone || (ds.Width != WidthNone && ds.Width != WidthLong) {
			return bad("invalid combination of type specifiers with 'double'")
		}
		if ds.Width == WidthLong {
			return s.bi.Q(types.LongDouble)
		}
		return s.bi.Q(types.Double)
	case BaseChar:
		if ds.Width != WidthNone {
			return bad("invalid combination of type specifiers with 'char'")
		}
		switch ds.Sign {
		case SignSigned:
			return s.bi.Q(types.SChar)
		case SignUnsigned:
			return s.bi.Q(types.UChar)
		}
		return s.bi.Q(types.Char)
	case BaseInt128:
		if ds.Width != WidthNone {
			return bad("invalid combination of type specifiers with '__int128'")
		}
		if ds.Sign == SignUnsigned {
			return s.bi.Q(types.UInt128)
		}
		return s.bi.Q(types.Int128)
	}
	// int, or nothing but width/sign keywords
	if ds.Base == BaseNone && ds.Width == WidthNone && ds.Sign == SignNone {
		if !s.opts.Standard.IsC89() && !ds.intWarned {
			s.warnf(diag.SynMissingTypeSpecifier, ds.Span, "type specifier missing, defaults to 'int'")
			ds.intWarned = true
		}
	}
	unsigned := ds.Sign == SignUnsigned
	var k types.BuiltinKind
	switch ds.Width {
	case WidthShort:
		k = types.Short
	case WidthLong:
		k = types.Long
	case WidthLongLong:
		k = types.LongLong
	default:
		k = types.Int
	}
	if unsigned {
		k = types.ToUnsigned(k)
	}
	return s.bi.Q(k)
}

// ChunkKind classifies declarator type operators.
type ChunkKind uint8

const (
	ChunkPointer ChunkKind = iota
	ChunkArray
	ChunkFunction
)

// Chunk is one type operator of a declarator.
type Chunk struct {
	Kind     ChunkKind
	Span     source.Span
	Quals    types.Qualifiers // pointer qualifiers, or array [const N] in params
	Size     ast.StmtID       // array bound, NoStmtID for []
	Params   []ast.DeclID
	Variadic bool
	HasProto bool // false for f() and K&R identifier lists
}

// Declarator describes the declared entity. Chunks are stored in the order
// they wrap the specifier type: for `int *a[3]` that is pointer, then array.
type Declarator struct {
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span
	Chunks   []Chunk
	Asm      bool
}

// IsFunction reports whether the declared entity itself is a function.
func (d *Declarator) IsFunction() bool {
	return len(d.Chunks) > 0 && d.Chunks[len(d.Chunks)-1].Kind == ChunkFunction
}

// FunctionChunk returns the outermost function chunk, if any.
func (d *Declarator) FunctionChunk() *Chunk {
	if !d.IsFunction() {
		return nil
	}
	return &d.Chunks[len(d.Chunks)-1]
}

// DeclaratorType applies every chunk of d to base.
func (s *Sema) DeclaratorType(base types.QualType, d *Declarator) types.QualType {
	t := base
	for i := range d.Chunks {
		c := &d.Chunks[i]
		switch c.Kind {
		case ChunkPointer:
			t = s.tys.Pointer(t).With(c.Quals)
		case ChunkArray:
			t = s.arrayType(t, c)
		case ChunkFunction:
			t = s.functionType(t, c)
		}
	}
	return t
}

func (s *Sema) arrayType(elem types.QualType, c *Chunk) types.QualType {
	if s.tys.IsFunction(elem) {
		s.errorf(diag.SemaIncompatibleTypes, c.Span, "declared as array of functions of type '%s'", s.spell(elem))
	}
	if !c.Size.IsValid() {
		return s.tys.IncompleteArray(elem)
	}
	v, ok := s.EvaluateInt(c.Size)
	if !ok {
		s.errorf(diag.SemaNotConstant, s.b.Stmts.Get(c.Size).Span, "array size is not an integer constant expression")
		return s.tys.IncompleteArray(elem)
	}
	if v.Negative() {
		s.errorf(diag.SemaIncompatibleTypes, s.b.Stmts.Get(c.Size).Span, "array has negative size")
		return s.tys.IncompleteArray(elem)
	}
	return s.tys.ConstantArray(elem, v.Bits)
}

func (s *Sema) functionType(result types.QualType, c *Chunk) types.QualType {
	if s.tys.IsArray(result) || s.tys.IsFunction(result) {
		s.errorf(diag.SemaIncompatibleTypes, c.Span, "function cannot return %s type '%s'", kindWord(s.tys.KindOf(result)), s.spell(result))
	}
	if !c.HasProto {
		return s.tys.FunctionNoProto(result)
	}
	params := make([]types.QualType, len(c.Params))
	for i, p := range c.Params {
		params[i] = s.b.Decls.Get(p).Type.Unqualified()
	}
	return s.tys.FunctionProto(result, params, c.Variadic)
}

func kindWord(k types.Kind) string {
	switch k {
	case types.KindConstantArray, types.KindIncompleteArray:
		return "array"
	default:
		return "function"
	}
}
