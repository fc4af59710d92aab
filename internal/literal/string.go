package literal

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// String is a decoded string literal without the implicit terminator.
type String struct {
	Encoding Encoding
	Units    []uint32
}

// DecodeString decodes one literal token. Adjacent literals are
// concatenated by the caller with Concat.
func DecodeString(text string) (String, []Problem, error) {
	enc, body := splitPrefix(text)
	prefix := len(text) - len(body)
	if len(body) < 2 || body[0] != '"' || body[len(body)-1] != '"' {
		return String{}, nil, fmt.Errorf("malformed string literal %s", text)
	}
	units, problems, err := decodeUnits(body[1:len(body)-1], enc, prefix+1)
	if err != nil {
		return String{}, problems, err
	}
	return String{Encoding: enc, Units: units}, problems, nil
}

// Concat joins adjacent literals. Plain literals adopt the prefix of a
// prefixed neighbour; two different prefixes are an error.
func Concat(parts ...String) (String, error) {
	out := String{}
	for _, p := range parts {
		switch {
		case p.Encoding == EncAscii || p.Encoding == out.Encoding:
		case out.Encoding == EncAscii:
			out.Encoding = p.Encoding
		default:
			return String{}, fmt.Errorf("unsupported non-standard concatenation of string literals")
		}
	}
	for _, p := range parts {
		if p.Encoding == out.Encoding || out.Encoding == EncAscii || out.Encoding == EncUTF8 {
			out.Units = append(out.Units, p.Units...)
			continue
		}
		// байты обычной строки перекодируются в кодировку соседа
		out.Units = append(out.Units, widen(p.Units, out.Encoding)...)
	}
	return out, nil
}

func widen(bytes []uint32, enc Encoding) []uint32 {
	raw := make([]byte, len(bytes))
	for i, b := range bytes {
		raw[i] = byte(b) //nolint:gosec // G115: narrow units are bytes.
	}
	var out []uint32
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		raw = raw[size:]
		if enc == EncUTF16 {
			if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
				out = append(out, uint32(r1), uint32(r2)) //nolint:gosec // G115: surrogates are positive.
				continue
			}
		}
		out = append(out, uint32(r)) //nolint:gosec // G115: rune is non-negative.
	}
	return out
}

// Len is the number of code units, terminator excluded.
func (s String) Len() int { return len(s.Units) }

// Bytes returns the literal in its target byte layout (little-endian units).
func (s String) Bytes() []byte {
	w := s.Encoding.UnitBytes()
	out := make([]byte, 0, len(s.Units)*w)
	for _, u := range s.Units {
		for k := range w {
			out = append(out, byte(u>>(8*k))) //nolint:gosec // G115: byte extraction.
		}
	}
	return out
}

// Text renders the literal as a Go string: bytes for narrow literals,
// decoded code points for wide ones.
func (s String) Text() string {
	switch s.Encoding {
	case EncAscii, EncUTF8:
		return string(s.Bytes())
	case EncUTF16:
		u16 := make([]uint16, len(s.Units))
		for i, u := range s.Units {
			u16[i] = uint16(u) //nolint:gosec // G115: UTF-16 units.
		}
		return string(utf16.Decode(u16))
	default:
		rs := make([]rune, len(s.Units))
		for i, u := range s.Units {
			rs[i] = rune(u) //nolint:gosec // G115: UTF-32 units.
		}
		return string(rs)
	}
}
