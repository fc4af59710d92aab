package cnode

import (
	"math"
	"testing"

	"cbridge/internal/apint"
)

func TestProjectInt(t *testing.T) {
	tests := []struct {
		name       string
		bits       apint.APInt
		signedType bool
		wantSigned bool
		wantInt    int64
		wantUint   uint64
		wantText   string
		fits       bool
	}{
		{"int -5", apint.FromInt64(32, -5), true, true, -5, math.MaxUint64 - 4, "-5", true},
		{"int max", apint.FromInt64(32, math.MaxInt32), true, true, math.MaxInt32, math.MaxInt32, "2147483647", true},
		{"long long min", apint.FromInt64(64, math.MinInt64), true, true, math.MinInt64, 1 << 63, "-9223372036854775808", true},
		{"unsigned char max", apint.FromUint64(8, math.MaxUint8), false, false, math.MaxUint8, math.MaxUint8, "255", true},
		{"unsigned short max", apint.FromUint64(16, math.MaxUint16), false, false, math.MaxUint16, math.MaxUint16, "65535", true},
		{"unsigned int max", apint.FromUint64(32, math.MaxUint32), false, false, math.MaxUint32, math.MaxUint32, "4294967295", true},
		{"unsigned long long max", apint.FromUint64(64, math.MaxUint64), false, false, -1, math.MaxUint64, "18446744073709551615", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := projectInt(tt.bits, tt.signedType)
			if v.Signed() != tt.wantSigned {
				t.Fatalf("Signed = %v, want %v", v.Signed(), tt.wantSigned)
			}
			if v.Int64() != tt.wantInt {
				t.Fatalf("Int64 = %d, want %d", v.Int64(), tt.wantInt)
			}
			if v.Uint64() != tt.wantUint {
				t.Fatalf("Uint64 = %d, want %d", v.Uint64(), tt.wantUint)
			}
			if v.String() != tt.wantText {
				t.Fatalf("String = %q, want %q", v.String(), tt.wantText)
			}
			if v.FitsInt64() != tt.fits {
				t.Fatalf("FitsInt64 = %v, want %v", v.FitsInt64(), tt.fits)
			}
			if v.Big().String() != tt.wantText {
				t.Fatalf("Big = %s, want %s", v.Big(), tt.wantText)
			}
		})
	}
}
