package literal

import (
	"fmt"
	"strings"

	"cbridge/internal/apint"
)

// IntSuffix is the decoded u/l/ll suffix.
type IntSuffix struct {
	Unsigned bool
	Long     uint8 // 0, 1 (l), 2 (ll)
}

// Int is a decoded integer constant.
type Int struct {
	Value  apint.APInt
	Radix  uint32
	Suffix IntSuffix
}

// DecodeInt splits text into radix, digits and suffix and parses the value.
func DecodeInt(text string) (Int, error) {
	body, radix := text, uint32(10)
	switch {
	case len(body) > 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X'):
		body, radix = body[2:], 16
	case len(body) > 2 && body[0] == '0' && (body[1] == 'b' || body[1] == 'B'):
		body, radix = body[2:], 2
	case len(body) > 1 && body[0] == '0':
		radix = 8
	}

	end := 0
	for end < len(body) && (isDigitIn(body[end], radix) || body[end] == '\'') {
		end++
	}
	digits, rest := body[:end], body[end:]
	if digits == "" {
		return Int{}, fmt.Errorf("invalid integer constant '%s'", text)
	}
	suffix, ok := parseIntSuffix(rest)
	if !ok {
		if radix == 8 && len(rest) > 0 && rest[0] >= '8' && rest[0] <= '9' {
			return Int{}, fmt.Errorf("invalid digit '%c' in octal constant", rest[0])
		}
		return Int{}, fmt.Errorf("invalid suffix '%s' on integer constant", rest)
	}
	v, err := apint.Parse(digits, radix)
	if err != nil {
		return Int{}, fmt.Errorf("invalid integer constant '%s': %w", text, err)
	}
	return Int{Value: v, Radix: radix, Suffix: suffix}, nil
}

func isDigitIn(b byte, radix uint32) bool {
	switch radix {
	case 2:
		return b == '0' || b == '1'
	case 8:
		return b >= '0' && b <= '7'
	case 16:
		return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
	default:
		return b >= '0' && b <= '9'
	}
}

// parseIntSuffix accepts u, l, ll in either order and any case; "lL" is rejected.
func parseIntSuffix(s string) (IntSuffix, bool) {
	var out IntSuffix
	seenU, seenL := false, false
	for len(s) > 0 {
		switch {
		case s[0] == 'u' || s[0] == 'U':
			if seenU {
				return IntSuffix{}, false
			}
			seenU, out.Unsigned = true, true
			s = s[1:]
		case strings.HasPrefix(s, "ll") || strings.HasPrefix(s, "LL"):
			if seenL {
				return IntSuffix{}, false
			}
			seenL, out.Long = true, 2
			s = s[2:]
		case s[0] == 'l' || s[0] == 'L':
			if seenL {
				return IntSuffix{}, false
			}
			seenL, out.Long = true, 1
			s = s[1:]
		default:
			return IntSuffix{}, false
		}
	}
	return out, true
}
