package literal

import (
	"fmt"
	"math/big"
	"strings"
)

// FloatSuffix is the decoded f/l suffix.
type FloatSuffix uint8

const (
	FloatNone FloatSuffix = iota
	FloatF
	FloatL
)

// Float is a decoded floating constant; Mantissa keeps the spelling
// without suffix or digit separators.
type Float struct {
	Mantissa string
	Hex      bool
	Suffix   FloatSuffix
}

// DecodeFloat strips the suffix and validates the spelling.
func DecodeFloat(text string) (Float, error) {
	body := strings.ReplaceAll(text, "'", "")
	out := Float{Hex: len(body) > 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X')}
	switch last := body[len(body)-1]; {
	case last == 'f' || last == 'F':
		if !out.Hex || strings.ContainsAny(body, "pP") {
			out.Suffix, body = FloatF, body[:len(body)-1]
		}
	case last == 'l' || last == 'L':
		out.Suffix, body = FloatL, body[:len(body)-1]
	}
	out.Mantissa = body

	f := new(big.Float)
	if _, _, err := f.Parse(body, 0); err != nil {
		return Float{}, fmt.Errorf("invalid floating constant '%s'", text)
	}
	return out, nil
}

// Value rounds the constant to prec mantissa bits (24, 53, 64 ...).
// Accuracy reports whether rounding happened.
func (f Float) Value(prec uint) (*big.Float, big.Accuracy, error) {
	v, _, err := big.ParseFloat(f.Mantissa, 0, prec, big.ToNearestEven)
	if err != nil {
		return nil, big.Exact, err
	}
	return v, v.Acc(), nil
}
