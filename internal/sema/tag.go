package sema

import (
	"cbridge/internal/ast"
	"cbridge/internal/diag"
	"cbridge/internal/source"
	"cbridge/internal/types"
)

// TagUse says how a struct, union or enum specifier is written.
type TagUse uint8

const (
	TagReference   TagUse = iota // struct S *p;
	TagDeclaration               // struct S;
	TagDefinition                // struct S { ... }
)

// ActOnTag resolves or creates the tag declaration for a specifier. owned
// reports whether a new declaration was created for it.
func (s *Sema) ActOnTag(kind types.TagKind, name source.StringID, nameSpan, kwSpan source.Span, use TagUse) (id ast.DeclID, owned bool) {
	if name == source.NoStringID {
		return s.newTag(kind, name, nameSpan, kwSpan), true
	}
	if use == TagReference {
		if prev, _ := s.lookupTag(name, false); prev.IsValid() {
			s.checkTagKind(prev, kind, nameSpan)
			return prev, false
		}
		if s.scope.kind == ScopePrototype {
			s.warnf(diag.SemaTagMismatch, nameSpan, "declaration of '%s %s' will not be visible outside of this function", kind, s.name(name))
		}
		if kind == types.TagEnum {
			s.warnf(diag.SemaIncompleteType, nameSpan, "ISO C forbids forward references to 'enum' types")
		}
		id = s.newTag(kind, name, nameSpan, kwSpan)
		s.scope.tags[name] = id
		return id, true
	}

	prev, _ := s.lookupTag(name, true)
	switch {
	case !prev.IsValid():
		id = s.newTag(kind, name, nameSpan, kwSpan)
	case !s.checkTagKind(prev, kind, nameSpan):
		id = s.newTag(kind, name, nameSpan, kwSpan)
	case use == TagDefinition && s.tagComplete(prev):
		s.errorNote(diag.SemaRedefinition, nameSpan, "redefinition of '"+s.name(name)+"'", s.tagDefinition(prev))
		id = s.newTag(kind, name, nameSpan, kwSpan)
	default:
		id = s.redeclTag(prev, nameSpan, kwSpan)
	}
	s.scope.tags[name] = id
	return id, true
}

func (s *Sema) checkTagKind(prev ast.DeclID, kind types.TagKind, sp source.Span) bool {
	if s.tagKind(prev) == kind {
		return true
	}
	s.errorNote(diag.SemaTagMismatch, sp, "use of '"+s.b.Name(prev)+"' with tag type that does not match previous declaration", prev)
	return false
}

func (s *Sema) tagKind(id ast.DeclID) types.TagKind {
	if r := s.b.Decls.Record(id); r != nil {
		return r.Tag
	}
	return types.TagEnum
}

func (s *Sema) tagInfo(id ast.DeclID) *types.TagInfo {
	info, _ := s.tys.Tag(s.b.Decls.Get(id).Type.ID)
	return info
}

func (s *Sema) tagComplete(id ast.DeclID) bool {
	return s.tagInfo(id).Complete
}

// tagDefinition is the declaration currently owning the tag type.
func (s *Sema) tagDefinition(id ast.DeclID) ast.DeclID {
	return ast.DeclID(s.tagInfo(id).Decl)
}

func (s *Sema) newTag(kind types.TagKind, name source.StringID, nameSpan, kwSpan source.Span) ast.DeclID {
	loc, span := kwSpan, kwSpan
	if nameSpan.IsValid() {
		loc, span = nameSpan, kwSpan.Cover(nameSpan)
	}
	text := ""
	if name != source.NoStringID {
		text = s.name(name)
	}
	var id ast.DeclID
	if kind == types.TagEnum {
		id = s.b.Decls.NewEnum(loc, span, name, ast.EnumData{IntType: s.bi.Q(types.UInt)})
		ty := s.tys.NewEnum(text, uint32(id))
		s.b.Decls.Enum(id).TagType = ty
		s.b.Decls.Get(id).Type = ty
	} else {
		id = s.b.Decls.NewRecord(loc, span, name, ast.RecordData{Tag: kind})
		ty := s.tys.NewRecord(kind, text, uint32(id))
		s.b.Decls.Record(id).TagType = ty
		s.b.Decls.Get(id).Type = ty
	}
	s.addToContext(id)
	return id
}

// redeclTag adds another declaration of an existing tag type.
func (s *Sema) redeclTag(prev ast.DeclID, nameSpan, kwSpan source.Span) ast.DeclID {
	pd := s.b.Decls.Get(prev)
	span := kwSpan.Cover(nameSpan)
	var id ast.DeclID
	if r := s.b.Decls.Record(prev); r != nil {
		id = s.b.Decls.NewRecord(nameSpan, span, pd.Name, ast.RecordData{Tag: r.Tag, TagType: r.TagType, Complete: r.Complete})
	} else {
		e := s.b.Decls.Enum(prev)
		id = s.b.Decls.NewEnum(nameSpan, span, pd.Name, ast.EnumData{TagType: e.TagType, IntType: e.IntType, Complete: e.Complete})
	}
	s.b.Decls.Get(id).Prev = prev
	s.addToContext(id)
	return id
}

// ActOnStartTagBody makes tag the context for members and returns the
// context to restore when the body ends.
func (s *Sema) ActOnStartTagBody(tag ast.DeclID) ast.DeclID {
	s.tagInfo(tag).Decl = uint32(tag)
	saved := s.curCtx
	s.curCtx = tag
	return saved
}

// ActOnField adds a member to the record being defined.
func (s *Sema) ActOnField(ds *DeclSpec, d *Declarator, bitWidth ast.StmtID) ast.DeclID {
	if ds.Storage != ast.SCNone || ds.Typedef {
		s.errorf(diag.SemaInvalidStorageClass, ds.StorageSpan, "type name does not allow storage class to be specified")
	}
	ty := s.DeclaratorType(s.SpecType(ds), d)
	loc := d.NameSpan
	if !loc.IsValid() {
		loc = ds.Span.ZeroideToEnd()
		if bitWidth.IsValid() {
			loc = s.spanOf(bitWidth).ZeroideToStart()
		}
	}
	span := s.declSpan(ds, d)
	if bitWidth.IsValid() {
		span = span.Cover(s.spanOf(bitWidth))
	}
	label := "anonymous bit-field"
	if d.Name != source.NoStringID {
		label = "'" + s.name(d.Name) + "'"
	}
	if s.tys.IsFunction(ty) {
		s.errorf(diag.SemaIncompatibleTypes, loc, "field %s declared as a function", label)
		ty = s.tys.Pointer(ty)
	}
	data := ast.FieldData{BitWidth: bitWidth}
	if bitWidth.IsValid() {
		data.Width = s.bitFieldWidth(ty, bitWidth, label, d.Name != source.NoStringID)
		bitWidth = s.ImpCastTo(s.DecayAndLoad(bitWidth), s.bi.Q(types.Int))
		data.BitWidth = bitWidth
	}
	id := s.b.Decls.NewField(loc, span, d.Name, ty, data)
	s.addToContext(id)
	return id
}

func (s *Sema) bitFieldWidth(ty types.QualType, e ast.StmtID, label string, named bool) uint32 {
	sp := s.spanOf(e)
	if !s.tys.IsInteger(ty) {
		s.errorf(diag.SemaBitFieldWidth, sp, "bit-field %s has non-integral type '%s'", label, s.spell(ty))
		return 0
	}
	if s.IsInvalid(e) {
		return 0
	}
	v, ok := s.EvaluateInt(e)
	switch {
	case !ok:
		s.errorf(diag.SemaNotConstant, sp, "integer constant expression must have integer type")
		return 0
	case v.Negative():
		s.errorf(diag.SemaBitFieldWidth, sp, "bit-field %s has negative width (%d)", label, v.Int64())
		return 0
	case v.Bits == 0 && named:
		s.errorf(diag.SemaBitFieldWidth, sp, "named bit-field %s has zero width", label)
		return 0
	case v.Bits > uint64(s.tys.BitWidth(ty)):
		s.errorf(diag.SemaBitFieldWidth, sp, "width of bit-field %s (%d bits) exceeds the width of its type (%d bits)", label, v.Bits, s.tys.BitWidth(ty))
		return uint32(s.tys.BitWidth(ty)) //nolint:gosec // G115: builtin widths fit.
	}
	return uint32(v.Bits)
}

// ActOnAnonymousMember turns `struct { ... };` inside a record into an
// unnamed field whose members are found through the enclosing record.
func (s *Sema) ActOnAnonymousMember(ds *DeclSpec) ast.DeclID {
	rec := s.b.Decls.Record(ds.Tag)
	rec.Anonymous = true
	ty := s.SpecType(ds)
	loc := s.b.Decls.Get(ds.Tag).Loc
	id := s.b.Decls.NewField(loc, ds.Span, source.NoStringID, ty, ast.FieldData{})
	s.b.Decls.Get(id).Flags |= ast.DeclImplicit
	s.addToContext(id)
	return id
}

// ActOnFinishRecord validates the members, computes the layout view of the
// record type and restores the saved context.
func (s *Sema) ActOnFinishRecord(rec, saved ast.DeclID, rbrace source.Span) {
	s.curCtx = saved
	d := s.b.Decls.Get(rec)
	d.Span = d.Span.Cover(rbrace)
	data := s.b.Decls.Record(rec)
	var fields []types.Field
	var ids []ast.DeclID
	for c := s.b.Decls.FirstChild(rec); c.IsValid(); c = s.b.Decls.NextSibling(c) {
		if s.b.Decls.Get(c).Kind == ast.DeclField {
			ids = append(ids, c)
		}
	}
	seen := make(map[source.StringID]ast.DeclID, len(ids))
	for i, c := range ids {
		fd := s.b.Decls.Get(c)
		f := s.b.Decls.Field(c)
		f.Index = uint32(i) //nolint:gosec // G115: member count is small.
		if fd.Name != source.NoStringID {
			if prev, dup := seen[fd.Name]; dup {
				s.errorNote(diag.SemaRedefinition, fd.Loc, "duplicate member '"+s.name(fd.Name)+"'", prev)
			}
			seen[fd.Name] = c
		}
		switch {
		case s.tys.KindOf(fd.Type) == types.KindIncompleteArray:
			if i != len(ids)-1 {
				s.errorf(diag.SemaIncompleteType, fd.Loc, "flexible array member '%s' with type '%s' is not at the end of %s", s.name(fd.Name), s.spell(fd.Type), data.Tag)
			} else if len(ids) == 1 {
				s.errorf(diag.SemaIncompleteType, fd.Loc, "flexible array member '%s' not allowed in otherwise empty %s", s.name(fd.Name), data.Tag)
			}
		case !s.tys.IsComplete(fd.Type):
			s.errorf(diag.SemaIncompleteType, fd.Loc, "field has incomplete type '%s'", s.spell(fd.Type))
			fd.Type = s.bi.Q(types.Int)
		}
		width := -1
		if f.BitWidth.IsValid() {
			width = int(f.Width)
		}
		name := ""
		if fd.Name != source.NoStringID {
			name = s.name(fd.Name)
		}
		fields = append(fields, types.Field{Name: name, Type: fd.Type, BitWidth: width})
	}
	if len(ids) == 0 {
		s.warnf(diag.SemaIncompleteType, d.Loc, "empty %s is a GNU extension", data.Tag)
	}
	s.tys.CompleteRecord(data.TagType.ID, fields)
	data.Complete = true
}

// ActOnEnumConstant declares the next enumerator. prev is the preceding
// enumerator of the same enum, if any.
func (s *Sema) ActOnEnumConstant(enum, prev ast.DeclID, name source.StringID, nameSpan source.Span, init ast.StmtID) ast.DeclID {
	var v Value
	switch {
	case init.IsValid() && !s.IsInvalid(init):
		ev, ok := s.EvaluateInt(init)
		if !ok {
			s.errorf(diag.SemaNotConstant, s.spanOf(init), "expression is not an integer constant expression")
		}
		v = ev
	case prev.IsValid():
		pv := s.b.Decls.EnumConstant(prev).Value
		if s.tys.IsSigned(s.b.Decls.Get(prev).Type) {
			v = Value{Bits: uint64(pv.SExtValue()) + 1}
		} else {
			v = Value{Bits: pv.ZExtValue() + 1, Unsigned: true}
		}
		if !v.Unsigned && v.Bits == 1<<63 {
			s.warnf(diag.SemaIntLiteralTooLarge, nameSpan, "overflow in enumeration value")
		}
	}
	ty := s.enumeratorType(v)
	width := uint32(s.tys.BitWidth(ty)) //nolint:gosec // G115: builtin widths fit.
	span := nameSpan
	if init.IsValid() {
		span = span.Cover(s.spanOf(init))
		init = s.ImpCastTo(s.DecayAndLoad(init), ty)
	}
	if old, ok := s.scope.ordinary[name]; ok {
		s.errorNote(diag.SemaRedefinition, nameSpan, "redefinition of enumerator '"+s.name(name)+"'", old)
	}
	id := s.b.Decls.NewEnumConstant(nameSpan, span, name, ty, ast.EnumConstantData{Init: init, Value: v.APInt(width)})
	s.b.Decls.AddToContext(enum, id)
	s.scope.ordinary[name] = id
	return id
}

// enumeratorType is int when the value fits, else the smallest of long and
// unsigned long holding it.
func (s *Sema) enumeratorType(v Value) types.QualType {
	n := v.Int64()
	switch {
	case !v.Unsigned && n >= -1<<31 && n < 1<<31:
		return s.bi.Q(types.Int)
	case v.Unsigned && v.Bits < 1<<31:
		return s.bi.Q(types.Int)
	case !v.Unsigned || v.Bits < 1<<63:
		return s.bi.Q(types.Long)
	}
	return s.bi.Q(types.ULong)
}

// ActOnFinishEnum picks the enum's integer type and completes it.
func (s *Sema) ActOnFinishEnum(enum, saved ast.DeclID, rbrace source.Span) {
	s.curCtx = saved
	d := s.b.Decls.Get(enum)
	d.Span = d.Span.Cover(rbrace)
	negative, wide := false, false
	for c := s.b.Decls.FirstChild(enum); c.IsValid(); c = s.b.Decls.NextSibling(c) {
		ec := s.b.Decls.EnumConstant(c)
		if ec == nil {
			continue
		}
		signed := s.tys.IsSigned(s.b.Decls.Get(c).Type)
		if signed && ec.Value.IsNegative() {
			negative = true
		}
		if !s.tys.Same(s.b.Decls.Get(c).Type, s.bi.Q(types.Int)) {
			wide = true
		}
	}
	var it types.QualType
	switch {
	case wide && negative:
		it = s.bi.Q(types.Long)
	case wide:
		it = s.bi.Q(types.ULong)
	case negative:
		it = s.bi.Q(types.Int)
	default:
		it = s.bi.Q(types.UInt)
	}
	data := s.b.Decls.Enum(enum)
	data.IntType = it
	data.Complete = true
	s.tys.CompleteEnum(data.TagType.ID, it)
}
