package literal

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// Encoding is the literal prefix.
type Encoding uint8

const (
	EncAscii Encoding = iota // no prefix
	EncWide                  // L
	EncUTF8                  // u8
	EncUTF16                 // u
	EncUTF32                 // U
)

func (e Encoding) String() string {
	switch e {
	case EncWide:
		return "Wide"
	case EncUTF8:
		return "UTF8"
	case EncUTF16:
		return "UTF16"
	case EncUTF32:
		return "UTF32"
	default:
		return "Ascii"
	}
}

// UnitBytes is the width of one code unit for the encoding.
func (e Encoding) UnitBytes() int {
	switch e {
	case EncWide, EncUTF32:
		return 4
	case EncUTF16:
		return 2
	default:
		return 1
	}
}

// Char is a decoded character constant.
type Char struct {
	Encoding Encoding
	Value    uint32
	Multi    bool // more than one code unit, e.g. 'ab'
}

// Problem is a non-fatal issue found while decoding.
type Problem struct {
	Offset int // byte offset inside the token text
	Msg    string
}

func splitPrefix(text string) (Encoding, string) {
	switch {
	case len(text) >= 2 && text[:2] == "u8":
		return EncUTF8, text[2:]
	case text[0] == 'L':
		return EncWide, text[1:]
	case text[0] == 'u':
		return EncUTF16, text[1:]
	case text[0] == 'U':
		return EncUTF32, text[1:]
	default:
		return EncAscii, text
	}
}

// DecodeChar decodes 'c', L'c', u'c', U'c', u8'c'.
func DecodeChar(text string) (Char, []Problem, error) {
	enc, body := splitPrefix(text)
	prefix := len(text) - len(body)
	if len(body) < 3 || body[0] != '\'' || body[len(body)-1] != '\'' {
		return Char{}, nil, fmt.Errorf("malformed character constant %s", text)
	}
	units, problems, err := decodeUnits(body[1:len(body)-1], enc, prefix+1)
	if err != nil {
		return Char{}, problems, err
	}
	out := Char{Encoding: enc}
	switch {
	case len(units) == 0:
		return Char{}, problems, fmt.Errorf("empty character constant")
	case len(units) == 1:
		out.Value = units[0]
	case enc == EncAscii:
		// 'ab' == ('a'<<8)|'b', старшие байты отбрасываются
		out.Multi = true
		for _, u := range units {
			out.Value = out.Value<<8 | (u & 0xff)
		}
		problems = append(problems, Problem{Offset: 0, Msg: "multi-character character constant"})
	default:
		out.Multi = true
		out.Value = units[0]
		problems = append(problems, Problem{Offset: 0, Msg: "extraneous characters in character constant ignored"})
	}
	if enc == EncAscii && !out.Multi {
		// обычный char знаковый: '\xff' == -1 после расширения до int
		out.Value = uint32(int32(int8(out.Value))) //nolint:gosec // G115: sign extension of char.
	}
	return out, problems, nil
}

// decodeUnits turns the body between quotes into code units of enc.
// base is the offset of body inside the token, for Problem offsets.
func decodeUnits(body string, enc Encoding, base int) ([]uint32, []Problem, error) {
	var (
		units    []uint32
		problems []Problem
	)
	maxUnit := uint64(1)<<(8*enc.UnitBytes()) - 1
	for i := 0; i < len(body); {
		ch := body[i]
		if ch != '\\' {
			r, size := utf8.DecodeRuneInString(body[i:])
			i += size
			units = appendRune(units, r, size, body[i-size:i], enc)
			continue
		}
		start := i
		i++
		if i >= len(body) {
			return nil, problems, fmt.Errorf("incomplete escape sequence")
		}
		esc := body[i]
		i++
		switch esc {
		case 'n':
			units = append(units, '\n')
		case 't':
			units = append(units, '\t')
		case 'r':
			units = append(units, '\r')
		case 'a':
			units = append(units, 7)
		case 'b':
			units = append(units, '\b')
		case 'f':
			units = append(units, '\f')
		case 'v':
			units = append(units, '\v')
		case 'e', 'E':
			units = append(units, 27)
			problems = append(problems, Problem{Offset: base + start, Msg: "use of non-standard escape character '\\" + string(esc) + "'"})
		case '\\', '\'', '"', '?':
			units = append(units, uint32(esc))
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v := uint64(esc - '0')
			for n := 1; n < 3 && i < len(body) && body[i] >= '0' && body[i] <= '7'; n++ {
				v = v*8 + uint64(body[i]-'0')
				i++
			}
			if v > maxUnit {
				problems = append(problems, Problem{Offset: base + start, Msg: "octal escape sequence out of range"})
				v &= maxUnit
			}
			units = append(units, uint32(v)) //nolint:gosec // G115: masked to the unit width.
		case 'x':
			var v uint64
			digits := 0
			for i < len(body) && isDigitIn(body[i], 16) {
				v = v*16 + uint64(hexVal(body[i]))
				if v > 0xffffffff {
					v = 0xffffffff + 1
				}
				i++
				digits++
			}
			if digits == 0 {
				return nil, problems, fmt.Errorf("\\x used with no following hex digits")
			}
			if v > maxUnit {
				problems = append(problems, Problem{Offset: base + start, Msg: "hex escape sequence out of range"})
				v &= maxUnit
			}
			units = append(units, uint32(v)) //nolint:gosec // G115: masked to the unit width.
		case 'u', 'U':
			n := 4
			if esc == 'U' {
				n = 8
			}
			if i+n > len(body) {
				return nil, problems, fmt.Errorf("incomplete universal character name")
			}
			var v uint32
			for k := range n {
				c := body[i+k]
				if !isDigitIn(c, 16) {
					return nil, problems, fmt.Errorf("incomplete universal character name")
				}
				v = v*16 + hexVal(c)
			}
			i += n
			if v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
				return nil, problems, fmt.Errorf("invalid universal character")
			}
			var buf [utf8.UTFMax]byte
			size := utf8.EncodeRune(buf[:], rune(v))
			units = appendRune(units, rune(v), size, string(buf[:size]), enc)
		default:
			problems = append(problems, Problem{Offset: base + start, Msg: "unknown escape sequence '\\" + string(esc) + "'"})
			units = append(units, uint32(esc))
		}
	}
	return units, problems, nil
}

// appendRune encodes one source character in the literal's encoding.
func appendRune(units []uint32, r rune, size int, raw string, enc Encoding) []uint32 {
	switch enc {
	case EncAscii, EncUTF8:
		for k := range size {
			units = append(units, uint32(raw[k]))
		}
	case EncUTF16:
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			return append(units, uint32(r1), uint32(r2)) //nolint:gosec // G115: surrogates are positive.
		}
		units = append(units, uint32(r)) //nolint:gosec // G115: rune is non-negative.
	default:
		units = append(units, uint32(r)) //nolint:gosec // G115: rune is non-negative.
	}
	return units
}

func hexVal(b byte) uint32 {
	switch {
	case b >= '0' && b <= '9':
		return uint32(b - '0')
	case b >= 'a' && b <= 'f':
		return uint32(b-'a') + 10
	default:
		return uint32(b-'A') + 10
	}
}
