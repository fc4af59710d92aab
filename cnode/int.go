package cnode

import (
	"math/big"

	"cbridge/internal/apint"
)

// Int is an integer constant projected to 64 bits. Signed values that fit in
// int64 are sign-extended; every other value is zero-extended, so an unsigned
// maximum such as 0xFFFFFFFFu reads back as its true uint64 value.
type Int struct {
	bits       apint.APInt
	signed     bool // sign-extended to 64 bits
	signedType bool
}

func projectInt(v apint.APInt, signedType bool) Int {
	return Int{bits: v, signed: signedType && v.IsSignedIntN(64), signedType: signedType}
}

// Signed reports whether the value was sign-extended.
func (i Int) Signed() bool { return i.signed }

// Width is the bit width of the literal's type.
func (i Int) Width() uint32 { return i.bits.Width() }

// Int64 returns the value; for zero-extended values above MaxInt64 it is the
// two's complement reinterpretation.
func (i Int) Int64() int64 {
	if i.signed {
		return i.bits.SExtValue()
	}
	return int64(i.bits.ZExtValue()) //nolint:gosec // G115: documented reinterpretation.
}

// Uint64 returns the value; negative signed values wrap.
func (i Int) Uint64() uint64 {
	if i.signed {
		return uint64(i.bits.SExtValue()) //nolint:gosec // G115: documented reinterpretation.
	}
	return i.bits.ZExtValue()
}

// FitsInt64 reports whether Int64 returns the exact value.
func (i Int) FitsInt64() bool {
	return i.signed || i.bits.IsIntN(63)
}

// Big returns the exact value, including widths beyond 64 bits.
func (i Int) Big() *big.Int {
	v, _ := new(big.Int).SetString(i.String(), 10)
	return v
}

func (i Int) String() string { return i.bits.Text(10, i.signedType) }
