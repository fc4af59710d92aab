package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the builtin types.
type Builtins struct {
	ids [VaList + 1]TypeID
}

// Get returns the TypeID of a builtin kind.
func (b Builtins) Get(k BuiltinKind) TypeID {
	return b.ids[k]
}

// Q returns an unqualified QualType for a builtin.
func (b Builtins) Q(k BuiltinKind) QualType {
	return QualType{ID: b.ids[k]}
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Records, enums and typedefs are nominal: each declaration gets its own id.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	fnIndex  map[string]TypeID
	builtins Builtins
	fns      []FnInfo
	tags     []TagInfo
	typedefs []TypedefInfo
}

// NewInterner constructs an interner seeded with builtin types.
func NewInterner() *Interner {
	in := &Interner{
		types:   make([]Type, 1, 64), // types[0] = invalid
		index:   make(map[typeKey]TypeID, 64),
		fnIndex: make(map[string]TypeID),
	}
	in.fns = append(in.fns, FnInfo{})
	in.tags = append(in.tags, TagInfo{})
	in.typedefs = append(in.typedefs, TypedefInfo{})
	for k := Void; k <= VaList; k++ {
		in.builtins.ids[k] = in.Intern(Type{Kind: KindBuiltin, Builtin: k})
	}
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided structural descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	id := in.internRaw(t)
	in.index[key] = id
	return id
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	in.types = append(in.types, t)
	return TypeID(lenTypes)
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("types: invalid TypeID %d", id))
	}
	return tt
}

// Len returns the number of interned types, the invalid slot excluded.
func (in *Interner) Len() int {
	return len(in.types) - 1
}

type typeKey Type

// Pointer returns pointer-to-pointee.
func (in *Interner) Pointer(pointee QualType) QualType {
	return QualType{ID: in.Intern(Type{Kind: KindPointer, Elem: pointee})}
}

// ConstantArray returns elem[count].
func (in *Interner) ConstantArray(elem QualType, count uint64) QualType {
	return QualType{ID: in.Intern(Type{Kind: KindConstantArray, Elem: elem, Count: count})}
}

// IncompleteArray returns elem[].
func (in *Interner) IncompleteArray(elem QualType) QualType {
	return QualType{ID: in.Intern(Type{Kind: KindIncompleteArray, Elem: elem})}
}

// FnInfo stores metadata for function types.
type FnInfo struct {
	Params   []QualType
	Result   QualType
	Variadic bool
}

// FunctionProto creates or finds a prototyped function type.
func (in *Interner) FunctionProto(result QualType, params []QualType, variadic bool) QualType {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d.%d:%v", result.ID, result.Quals, variadic)
	for _, p := range params {
		fmt.Fprintf(&sb, ",%d.%d", p.ID, p.Quals)
	}
	key := sb.String()
	if id, ok := in.fnIndex[key]; ok {
		return QualType{ID: id}
	}
	in.fns = append(in.fns, FnInfo{Params: append([]QualType(nil), params...), Result: result, Variadic: variadic})
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	id := in.internRaw(Type{Kind: KindFunctionProto, Elem: result, Payload: slot})
	in.fnIndex[key] = id
	return QualType{ID: id}
}

// FunctionNoProto returns the K&R style `result ()` type.
func (in *Interner) FunctionNoProto(result QualType) QualType {
	return QualType{ID: in.Intern(Type{Kind: KindFunctionNoProto, Elem: result})}
}

// FnInfo retrieves function type metadata; no-proto functions have none.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunctionProto {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}
