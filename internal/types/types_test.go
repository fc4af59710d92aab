package types

import "testing"

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	p1 := in.Pointer(b.Q(Int))
	p2 := in.Pointer(b.Q(Int))
	if p1 != p2 {
		t.Fatalf("expected identical pointer types, got %v and %v", p1, p2)
	}
	cp := in.Pointer(b.Q(Int).With(Const))
	if cp == p1 {
		t.Fatalf("pointer to const int must differ from pointer to int")
	}
	f1 := in.FunctionProto(b.Q(Int), []QualType{b.Q(Int)}, false)
	f2 := in.FunctionProto(b.Q(Int), []QualType{b.Q(Int)}, false)
	if f1 != f2 {
		t.Fatalf("expected identical function types")
	}
	if f3 := in.FunctionProto(b.Q(Int), []QualType{b.Q(Int)}, true); f3 == f1 {
		t.Fatalf("variadic function must differ")
	}
}

func TestNominalTypesAreDistinct(t *testing.T) {
	in := NewInterner()
	s1 := in.NewRecord(TagStruct, "S", 1)
	s2 := in.NewRecord(TagStruct, "S", 2)
	if s1 == s2 {
		t.Fatalf("records from different declarations must differ")
	}
	td := in.NewTypedef("myint", 3, in.Builtins().Q(Int))
	if in.Same(td, in.Builtins().Q(Int)) == false {
		t.Fatalf("typedef must be canonically int")
	}
}

func TestSpell(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	fn := in.FunctionProto(b.Q(Int), []QualType{b.Q(Int)}, false)
	cases := []struct {
		q    QualType
		want string
	}{
		{b.Q(Int), "int"},
		{b.Q(ULong), "unsigned long"},
		{in.Pointer(b.Q(Char).With(Const)), "const char *"},
		{in.Pointer(in.Pointer(b.Q(Char))), "char **"},
		{in.Pointer(b.Q(Int)).With(Const), "int *const"},
		{in.Pointer(in.Pointer(b.Q(Int)).With(Const)), "int *const *"},
		{in.ConstantArray(b.Q(Int), 3), "int [3]"},
		{in.IncompleteArray(b.Q(Char)), "char []"},
		{in.Pointer(in.ConstantArray(b.Q(Int), 3)), "int (*)[3]"},
		{fn, "int (int)"},
		{in.Pointer(fn), "int (*)(int)"},
		{in.FunctionProto(b.Q(Void), nil, false), "void (void)"},
		{in.FunctionNoProto(b.Q(Int)), "int ()"},
		{in.FunctionProto(b.Q(Int), []QualType{in.Pointer(b.Q(Char).With(Const))}, true), "int (const char *, ...)"},
		{in.NewRecord(TagStruct, "S", 1), "struct S"},
		{in.NewRecord(TagUnion, "", 2), "union (anonymous)"},
		{in.NewTypedef("size_t", 4, b.Q(ULong)), "size_t"},
	}
	for _, tc := range cases {
		if got := in.Spell(tc.q); got != tc.want {
			t.Errorf("Spell = %q, want %q", got, tc.want)
		}
	}
}

func TestUsualArithmetic(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	cases := []struct {
		a, b, want BuiltinKind
	}{
		{Char, Short, Int},
		{Int, UInt, UInt},
		{Long, UInt, Long},
		{LongLong, ULong, ULongLong},
		{Int, Double, Double},
		{Float, Long, Float},
		{UShort, Bool, Int},
		{ULong, Int, ULong},
	}
	for _, tc := range cases {
		got := in.BuiltinOf(in.UsualArithmetic(b.Q(tc.a), b.Q(tc.b)))
		if got != tc.want {
			t.Errorf("UsualArithmetic(%s, %s) = %s, want %s", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLayout(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	rec := in.NewRecord(TagStruct, "S", 1)
	if _, ok := in.SizeOf(rec); ok {
		t.Fatalf("incomplete record must have no size")
	}
	in.CompleteRecord(rec.ID, []Field{
		{Name: "c", Type: b.Q(Char), BitWidth: -1},
		{Name: "i", Type: b.Q(Int), BitWidth: -1},
		{Name: "p", Type: in.Pointer(b.Q(Void)), BitWidth: -1},
	})
	if size, _ := in.SizeOf(rec); size != 16 {
		t.Fatalf("sizeof(struct S) = %d, want 16", size)
	}
	if align, _ := in.AlignOf(rec); align != 8 {
		t.Fatalf("alignof(struct S) = %d, want 8", align)
	}
	if size, _ := in.SizeOf(in.ConstantArray(b.Q(Short), 5)); size != 10 {
		t.Fatalf("sizeof(short[5]) = %d", size)
	}
	bits := in.NewRecord(TagStruct, "B", 2)
	in.CompleteRecord(bits.ID, []Field{
		{Name: "a", Type: b.Q(UInt), BitWidth: 3},
		{Name: "b", Type: b.Q(UInt), BitWidth: 5},
	})
	if size, _ := in.SizeOf(bits); size != 4 {
		t.Fatalf("sizeof(struct B) = %d, want 4", size)
	}
}

func TestCompatibleAndDecay(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	proto := in.FunctionProto(b.Q(Int), []QualType{b.Q(Int)}, false)
	noproto := in.FunctionNoProto(b.Q(Int))
	if !in.Compatible(proto, noproto) {
		t.Fatalf("prototype must be compatible with a no-prototype declaration")
	}
	if in.Compatible(in.ConstantArray(b.Q(Int), 2), in.ConstantArray(b.Q(Int), 3)) {
		t.Fatalf("arrays with different sizes are incompatible")
	}
	if !in.Compatible(in.ConstantArray(b.Q(Int), 2), in.IncompleteArray(b.Q(Int))) {
		t.Fatalf("incomplete array must be compatible")
	}
	if got := in.Spell(in.DecayedParam(in.ConstantArray(b.Q(Char), 4))); got != "char *" {
		t.Fatalf("decayed array = %q", got)
	}
	if got := in.Spell(in.DecayedParam(proto)); got != "int (*)(int)" {
		t.Fatalf("decayed function = %q", got)
	}
}

func TestCanonicalizeAllMakesCanonicalReadOnly(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	td := in.NewTypedef("myint", 1, b.Q(Int))
	in.Pointer(in.Pointer(td))
	in.FunctionProto(td, []QualType{in.Pointer(td)}, false)

	in.CanonicalizeAll()
	n := in.Len()
	for id := 1; id <= n; id++ {
		in.Canonical(QualType{ID: TypeID(id), Quals: Const})
	}
	if in.Len() != n {
		t.Fatalf("Canonical interned %d new types after CanonicalizeAll", in.Len()-n)
	}
	if got := in.SpellCanonical(in.Pointer(td)); got != "int *" {
		t.Fatalf("SpellCanonical = %q, want %q", got, "int *")
	}
}
