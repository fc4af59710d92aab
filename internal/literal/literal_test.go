package literal

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeInt(t *testing.T) {
	tests := []struct {
		text   string
		want   uint64
		radix  uint32
		suffix IntSuffix
	}{
		{"0", 0, 10, IntSuffix{}},
		{"42", 42, 10, IntSuffix{}},
		{"0755", 0o755, 8, IntSuffix{}},
		{"0x7fffffffffffffffULL", math.MaxInt64, 16, IntSuffix{Unsigned: true, Long: 2}},
		{"18446744073709551615u", math.MaxUint64, 10, IntSuffix{Unsigned: true}},
		{"10lu", 10, 10, IntSuffix{Unsigned: true, Long: 1}},
		{"0b1010", 10, 2, IntSuffix{}},
		{"1'000'000", 1000000, 10, IntSuffix{}},
	}
	for _, tt := range tests {
		got, err := DecodeInt(tt.text)
		if err != nil {
			t.Fatalf("DecodeInt(%q): %v", tt.text, err)
		}
		if got.Value.ZExtValue() != tt.want || got.Radix != tt.radix || got.Suffix != tt.suffix {
			t.Errorf("DecodeInt(%q) = %d r%d %+v", tt.text, got.Value.ZExtValue(), got.Radix, got.Suffix)
		}
	}
}

func TestDecodeIntErrors(t *testing.T) {
	tests := map[string]string{
		"08":    "invalid digit '8' in octal constant",
		"12lL":  "invalid suffix 'lL' on integer constant",
		"1uu":   "invalid suffix 'uu' on integer constant",
		"12abc": "invalid suffix 'abc' on integer constant",
	}
	for text, want := range tests {
		_, err := DecodeInt(text)
		if err == nil || err.Error() != want {
			t.Errorf("DecodeInt(%q) error = %v, want %q", text, err, want)
		}
	}
}

func TestDecodeFloat(t *testing.T) {
	tests := []struct {
		text   string
		suffix FloatSuffix
		want   float64
	}{
		{"1.5", FloatNone, 1.5},
		{".25f", FloatF, 0.25},
		{"1e3L", FloatL, 1000},
		{"0x1.8p3", FloatNone, 12},
		{"0x1p-2f", FloatF, 0.25},
		{"2.", FloatNone, 2},
	}
	for _, tt := range tests {
		f, err := DecodeFloat(tt.text)
		if err != nil {
			t.Fatalf("DecodeFloat(%q): %v", tt.text, err)
		}
		v, _, err := f.Value(53)
		if err != nil {
			t.Fatalf("Value(%q): %v", tt.text, err)
		}
		got, _ := v.Float64()
		if f.Suffix != tt.suffix || got != tt.want {
			t.Errorf("DecodeFloat(%q) = %v suffix %d", tt.text, got, f.Suffix)
		}
	}
}

func TestFloatPrecisionIsReported(t *testing.T) {
	f, err := DecodeFloat("0.1f")
	if err != nil {
		t.Fatalf("DecodeFloat: %v", err)
	}
	v, acc, err := f.Value(24)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	got, _ := v.Float64()
	if got != float64(float32(0.1)) {
		t.Fatalf("float precision value = %v", got)
	}
	if acc == 0 {
		t.Fatalf("0.1 is not exact in binary")
	}
}

func TestDecodeChar(t *testing.T) {
	tests := []struct {
		text string
		enc  Encoding
		want uint32
	}{
		{`'a'`, EncAscii, 'a'},
		{`'\n'`, EncAscii, '\n'},
		{`'\0'`, EncAscii, 0},
		{`'\x41'`, EncAscii, 'A'},
		{`'\377'`, EncAscii, 0xffffffff},
		{`L'é'`, EncWide, 0xe9},
		{`u'€'`, EncUTF16, 0x20ac},
		{`U'\U0001F600'`, EncUTF32, 0x1F600},
		{`u8'x'`, EncUTF8, 'x'},
	}
	for _, tt := range tests {
		c, problems, err := DecodeChar(tt.text)
		if err != nil {
			t.Fatalf("DecodeChar(%s): %v", tt.text, err)
		}
		if len(problems) != 0 {
			t.Errorf("DecodeChar(%s): problems %v", tt.text, problems)
		}
		if c.Encoding != tt.enc || c.Value != tt.want {
			t.Errorf("DecodeChar(%s) = %v %#x, want %v %#x", tt.text, c.Encoding, c.Value, tt.enc, tt.want)
		}
	}
}

func TestDecodeCharMulti(t *testing.T) {
	c, problems, err := DecodeChar(`'ab'`)
	if err != nil {
		t.Fatalf("DecodeChar: %v", err)
	}
	if !c.Multi || c.Value != 'a'<<8|'b' {
		t.Fatalf("got %+v", c)
	}
	if len(problems) != 1 || !strings.Contains(problems[0].Msg, "multi-character") {
		t.Fatalf("problems = %v", problems)
	}
	if _, _, err := DecodeChar(`'\x'`); err == nil {
		t.Fatalf("expected error for empty hex escape")
	}
	_, problems, _ = DecodeChar(`'\q'`)
	if len(problems) != 1 || !strings.Contains(problems[0].Msg, "unknown escape") {
		t.Fatalf("problems = %v", problems)
	}
}

func TestDecodeStringAndConcat(t *testing.T) {
	a, _, err := DecodeString(`"hi\t"`)
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	b, _, err := DecodeString(`L"é"`)
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	if a.Text() != "hi\t" || a.Len() != 3 {
		t.Fatalf("a = %q len %d", a.Text(), a.Len())
	}
	joined, err := Concat(a, b)
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	if joined.Encoding != EncWide || joined.Text() != "hi\té" {
		t.Fatalf("joined = %v %q", joined.Encoding, joined.Text())
	}
	if diff := cmp.Diff([]uint32{'h', 'i', '\t', 0xe9}, joined.Units); diff != "" {
		t.Fatalf("units mismatch (-want +got):\n%s", diff)
	}
	if got := len(joined.Bytes()); got != 16 {
		t.Fatalf("wide bytes = %d", got)
	}

	u16, _, _ := DecodeString(`u"x"`)
	if _, err := Concat(b, u16); err == nil {
		t.Fatalf("mixing L and u prefixes must fail")
	}
}
