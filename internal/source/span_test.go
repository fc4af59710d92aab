package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}

	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("Cover = %v", got)
	}
	// чужой файл не расширяет
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Fatalf("foreign Cover = %v", got)
	}
	if got := (Span{}).Cover(a); got != a {
		t.Fatalf("invalid receiver Cover = %v", got)
	}
	if got := a.Cover(Span{}); got != a {
		t.Fatalf("invalid arg Cover = %v", got)
	}
}

func TestSpanZeroide(t *testing.T) {
	s := Span{File: 3, Start: 5, End: 9}
	if z := s.ZeroideToStart(); !z.Empty() || z.Start != 5 {
		t.Fatalf("ZeroideToStart = %v", z)
	}
	if z := s.ZeroideToEnd(); !z.Empty() || z.Start != 9 {
		t.Fatalf("ZeroideToEnd = %v", z)
	}
	if s.Len() != 4 || !s.IsValid() || (Span{}).IsValid() {
		t.Fatalf("Len/IsValid mismatch")
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID lookup = %q, %v", s, ok)
	}
	a := in.Intern("main")
	b := in.InternBytes([]byte("main"))
	if a != b || a == NoStringID {
		t.Fatalf("expected stable id, got %d and %d", a, b)
	}
	if in.MustLookup(a) != "main" || in.Len() != 2 {
		t.Fatalf("unexpected interner state %v", in.Snapshot())
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Fatalf("unknown id must not resolve")
	}
}
