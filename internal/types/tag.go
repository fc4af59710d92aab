package types

import (
	"fmt"

	"fortio.org/safecast"
)

// TagKind distinguishes struct, union and enum tags.
type TagKind uint8

const (
	TagStruct TagKind = iota
	TagUnion
	TagEnum
)

func (k TagKind) String() string {
	switch k {
	case TagStruct:
		return "struct"
	case TagUnion:
		return "union"
	case TagEnum:
		return "enum"
	default:
		return fmt.Sprintf("TagKind(%d)", k)
	}
}

// Field is one member of a record, as seen by layout.
type Field struct {
	Name     string
	Type     QualType
	BitWidth int // -1 when not a bit-field
}

// TagInfo is the nominal payload for record and enum types.
type TagInfo struct {
	Kind     TagKind
	Name     string // empty for anonymous tags
	Decl     uint32 // owning declaration id in the AST
	Complete bool
	Fields   []Field
	IntType  QualType // enum underlying integer type
}

// TypedefInfo is the nominal payload for typedef types.
type TypedefInfo struct {
	Name string
	Decl uint32
}

func (in *Interner) newTagSlot(info TagInfo) uint32 {
	in.tags = append(in.tags, info)
	slot, err := safecast.Conv[uint32](len(in.tags) - 1)
	if err != nil {
		panic(fmt.Errorf("tag overflow: %w", err))
	}
	return slot
}

// NewRecord creates a fresh struct or union type bound to decl.
func (in *Interner) NewRecord(kind TagKind, name string, decl uint32) QualType {
	slot := in.newTagSlot(TagInfo{Kind: kind, Name: name, Decl: decl})
	return QualType{ID: in.internRaw(Type{Kind: KindRecord, Payload: slot})}
}

// NewEnum creates a fresh enum type bound to decl; its integer type
// defaults to unsigned int until CompleteEnum runs.
func (in *Interner) NewEnum(name string, decl uint32) QualType {
	slot := in.newTagSlot(TagInfo{Kind: TagEnum, Name: name, Decl: decl, IntType: in.builtins.Q(UInt)})
	return QualType{ID: in.internRaw(Type{Kind: KindEnum, Payload: slot})}
}

// Tag returns the tag payload of a record or enum type.
func (in *Interner) Tag(id TypeID) (*TagInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || (tt.Kind != KindRecord && tt.Kind != KindEnum) {
		return nil, false
	}
	return &in.tags[tt.Payload], true
}

// CompleteRecord stores the member list and marks the record complete.
func (in *Interner) CompleteRecord(id TypeID, fields []Field) {
	info, ok := in.Tag(id)
	if !ok {
		panic(fmt.Sprintf("types: %d is not a tag type", id))
	}
	info.Fields = fields
	info.Complete = true
}

// CompleteEnum fixes the underlying integer type and marks the enum complete.
func (in *Interner) CompleteEnum(id TypeID, intType QualType) {
	info, ok := in.Tag(id)
	if !ok {
		panic(fmt.Sprintf("types: %d is not a tag type", id))
	}
	info.IntType = intType
	info.Complete = true
}

// NewTypedef creates the sugar type naming underlying.
func (in *Interner) NewTypedef(name string, decl uint32, underlying QualType) QualType {
	in.typedefs = append(in.typedefs, TypedefInfo{Name: name, Decl: decl})
	slot, err := safecast.Conv[uint32](len(in.typedefs) - 1)
	if err != nil {
		panic(fmt.Errorf("typedef overflow: %w", err))
	}
	return QualType{ID: in.internRaw(Type{Kind: KindTypedef, Elem: underlying, Payload: slot})}
}

// Typedef returns the typedef payload.
func (in *Interner) Typedef(id TypeID) (*TypedefInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypedef {
		return nil, false
	}
	return &in.typedefs[tt.Payload], true
}
