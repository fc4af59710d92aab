package apint

import (
	"errors"
	"math"
	"testing"
)

func TestParseRadixes(t *testing.T) {
	tests := []struct {
		digits string
		radix  uint32
		want   uint64
		active uint32
	}{
		{"0", 10, 0, 0},
		{"42", 10, 42, 6},
		{"755", 8, 0o755, 9},
		{"ff", 16, 255, 8},
		{"FFFFFFFFFFFFFFFF", 16, math.MaxUint64, 64},
		{"101", 2, 5, 3},
		{"1'000", 10, 1000, 10},
	}
	for _, tt := range tests {
		v, err := Parse(tt.digits, tt.radix)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.digits, err)
		}
		if v.ZExtValue() != tt.want || v.ActiveBits() != tt.active {
			t.Errorf("Parse(%q) = %d (active %d), want %d (active %d)", tt.digits, v.ZExtValue(), v.ActiveBits(), tt.want, tt.active)
		}
	}
	if _, err := Parse("19", 8); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if _, err := Parse("", 10); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestWideLiteral(t *testing.T) {
	v, err := Parse("340282366920938463463374607431768211455", 10) // 2^128-1
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.ActiveBits() != 128 || v.IsIntN(64) {
		t.Fatalf("active bits = %d", v.ActiveBits())
	}
	if got := v.String(); got != "340282366920938463463374607431768211455" {
		t.Fatalf("String = %s", got)
	}
	if v.Trunc(64).ZExtValue() != math.MaxUint64 {
		t.Fatalf("Trunc(64) lost bits")
	}
}

func TestSignExtension(t *testing.T) {
	m := FromInt64(32, -1)
	if !m.IsNegative() || m.ZExtValue() != math.MaxUint32 {
		t.Fatalf("FromInt64(32,-1) = %x", m.ZExtValue())
	}
	if m.SExtValue() != -1 {
		t.Fatalf("SExtValue = %d", m.SExtValue())
	}
	if m.SExt(96).Text(10, true) != "-1" || m.ZExt(96).Text(10, true) != "4294967295" {
		t.Fatalf("extension to 96 bits broken: %s / %s", m.SExt(96).Text(16, false), m.ZExt(96).Text(16, false))
	}
	if v := FromInt64(64, math.MinInt64); v.SExtValue() != math.MinInt64 || v.MinSignedBits() != 64 {
		t.Fatalf("MinInt64 round trip")
	}
	if FromUint64(16, 0x1_ffff).ZExtValue() != 0xffff {
		t.Fatalf("FromUint64 must truncate")
	}
}

func TestFitsPredicates(t *testing.T) {
	max63 := FromUint64(64, math.MaxInt64)
	if !max63.IsSignedIntN(64) || !max63.IsIntN(63) {
		t.Fatalf("MaxInt64 should fit signed 64")
	}
	umax := FromUint64(64, math.MaxUint64)
	if umax.IsIntN(63) {
		t.Fatalf("MaxUint64 needs 64 bits")
	}
	if umax.Cmp(max63) <= 0 || max63.Cmp(umax) >= 0 || umax.Cmp(umax.ZExt(128)) != 0 {
		t.Fatalf("Cmp mismatch")
	}
}

func TestText(t *testing.T) {
	v := FromUint64(32, 0xdead)
	if v.Text(16, false) != "dead" || v.Text(2, false) != "1101111010101101" {
		t.Fatalf("Text = %s", v.Text(16, false))
	}
	if Zero(8).String() != "0" || !Zero(8).IsZero() {
		t.Fatalf("zero formatting")
	}
}
