// Package apint holds fixed-width arbitrary precision integers, the storage
// form of integer literal values in the AST. Limbs are base-2^32
// little-endian and bits above Width are always zero.
package apint

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

var (
	// ErrParse indicates a digit outside the radix.
	ErrParse = errors.New("invalid digit in integer literal")
	// ErrEmpty indicates a literal with no digits.
	ErrEmpty = errors.New("integer literal has no digits")
)

// APInt is an integer of Width bits with no signedness of its own; callers
// decide whether the top bit is a sign.
type APInt struct {
	width uint32
	limbs []uint32
}

func limbCount(width uint32) int {
	return int((width + 31) / 32)
}

// Zero returns a zero value of the given width.
func Zero(width uint32) APInt {
	if width == 0 {
		panic("apint: zero width")
	}
	return APInt{width: width, limbs: make([]uint32, limbCount(width))}
}

// FromUint64 truncates v to width bits.
func FromUint64(width uint32, v uint64) APInt {
	a := Zero(width)
	a.limbs[0] = uint32(v) //nolint:gosec // G115: truncation is intentional (low limb).
	if len(a.limbs) > 1 {
		a.limbs[1] = uint32(v >> 32) //nolint:gosec // G115: truncation is intentional (high limb).
	}
	a.clearUnused()
	return a
}

// FromInt64 stores v in two's complement at width bits.
func FromInt64(width uint32, v int64) APInt {
	a := FromUint64(width, uint64(v)) //nolint:gosec // G115: two's complement reinterpretation.
	if v < 0 {
		for i := 2; i < len(a.limbs); i++ {
			a.limbs[i] = ^uint32(0)
		}
		a.clearUnused()
	}
	return a
}

// Parse reads digits in radix 2, 8, 10 or 16 (no prefix, no suffix).
// The result is as wide as needed, rounded up to whole limbs, at least 32.
func Parse(digits string, radix uint32) (APInt, error) {
	if digits == "" {
		return APInt{}, ErrEmpty
	}
	limbs := []uint32{}
	for i := range len(digits) {
		ch := digits[i]
		if ch == '\'' {
			continue
		}
		d, ok := digitValue(ch, radix)
		if !ok {
			return APInt{}, fmt.Errorf("%w: %q", ErrParse, ch)
		}
		limbs = mulAddSmall(limbs, radix, d)
	}
	if len(limbs) == 0 {
		limbs = []uint32{0}
	}
	return APInt{width: uint32(len(limbs)) * 32, limbs: limbs}, nil //nolint:gosec // G115: bounded by literal length.
}

func digitValue(ch byte, radix uint32) (uint32, bool) {
	var d uint32
	switch {
	case ch >= '0' && ch <= '9':
		d = uint32(ch - '0')
	case ch >= 'a' && ch <= 'f':
		d = uint32(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		d = uint32(ch-'A') + 10
	default:
		return 0, false
	}
	return d, d < radix
}

// mulAddSmall computes limbs*m + a, growing the slice when it carries out.
func mulAddSmall(limbs []uint32, m, a uint32) []uint32 {
	carry := uint64(a)
	for i := range limbs {
		prod := uint64(limbs[i])*uint64(m) + carry
		limbs[i] = uint32(prod) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
		carry = prod >> 32
	}
	if carry != 0 {
		limbs = append(limbs, uint32(carry)) //nolint:gosec // G115: carry fits in one limb.
	}
	return limbs
}

// Width returns the bit width.
func (a APInt) Width() uint32 { return a.width }

// IsZero reports whether every bit is clear.
func (a APInt) IsZero() bool {
	for _, l := range a.limbs {
		if l != 0 {
			return false
		}
	}
	return true
}

// ActiveBits is the number of bits up to and including the highest set bit.
func (a APInt) ActiveBits() uint32 {
	for i := len(a.limbs) - 1; i >= 0; i-- {
		if a.limbs[i] != 0 {
			return uint32(i*32 + bits.Len32(a.limbs[i])) //nolint:gosec // G115: bounded by width.
		}
	}
	return 0
}

// Bit reports bit i (0 = least significant).
func (a APInt) Bit(i uint32) bool {
	if i >= a.width {
		return false
	}
	return a.limbs[i/32]&(1<<(i%32)) != 0
}

// IsNegative reports whether the sign bit (Width-1) is set.
func (a APInt) IsNegative() bool {
	return a.Bit(a.width - 1)
}

// MinSignedBits is the smallest width holding the value as signed.
func (a APInt) MinSignedBits() uint32 {
	if a.IsNegative() {
		return a.Not().ActiveBits() + 1
	}
	return a.ActiveBits() + 1
}

// Not flips every bit inside Width.
func (a APInt) Not() APInt {
	out := APInt{width: a.width, limbs: make([]uint32, len(a.limbs))}
	for i, l := range a.limbs {
		out.limbs[i] = ^l
	}
	out.clearUnused()
	return out
}

// Trunc keeps the low width bits.
func (a APInt) Trunc(width uint32) APInt {
	out := Zero(width)
	copy(out.limbs, a.limbs)
	out.clearUnused()
	return out
}

// ZExt widens with zero bits; narrower widths truncate.
func (a APInt) ZExt(width uint32) APInt {
	return a.Trunc(width)
}

// SExt widens copying the sign bit; narrower widths truncate.
func (a APInt) SExt(width uint32) APInt {
	if width <= a.width || !a.IsNegative() {
		return a.Trunc(width)
	}
	out := Zero(width)
	for i := range out.limbs {
		out.limbs[i] = ^uint32(0)
	}
	copy(out.limbs, a.limbs)
	// биты исходного верхнего лимба выше width уже нули, заполняем их единицами
	if rem := a.width % 32; rem != 0 {
		out.limbs[len(a.limbs)-1] |= ^uint32(0) << rem
	}
	out.clearUnused()
	return out
}

// ZExtValue returns the low 64 bits zero-extended.
func (a APInt) ZExtValue() uint64 {
	v := uint64(a.limbs[0])
	if len(a.limbs) > 1 {
		v |= uint64(a.limbs[1]) << 32
	}
	return v
}

// SExtValue returns the value sign-extended from Width to 64 bits.
// Widths above 64 are truncated to their low 64 bits.
func (a APInt) SExtValue() int64 {
	if a.width >= 64 {
		return int64(a.ZExtValue()) //nolint:gosec // G115: two's complement reinterpretation.
	}
	return int64(a.SExt(64).ZExtValue()) //nolint:gosec // G115: two's complement reinterpretation.
}

// IsIntN reports whether the unsigned value fits in n bits.
func (a APInt) IsIntN(n uint32) bool {
	return a.ActiveBits() <= n
}

// IsSignedIntN reports whether the value read as signed fits in n bits.
func (a APInt) IsSignedIntN(n uint32) bool {
	return a.MinSignedBits() <= n
}

// Cmp compares unsigned values regardless of width.
func (a APInt) Cmp(b APInt) int {
	n := max(len(a.limbs), len(b.limbs))
	for i := n - 1; i >= 0; i-- {
		var av, bv uint32
		if i < len(a.limbs) {
			av = a.limbs[i]
		}
		if i < len(b.limbs) {
			bv = b.limbs[i]
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return 0
}

// Text formats the value in radix 2..16; signed reads the top bit as a sign.
func (a APInt) Text(radix uint32, signed bool) string {
	if radix < 2 || radix > 16 {
		panic(fmt.Sprintf("apint: bad radix %d", radix))
	}
	neg := signed && a.IsNegative()
	mag := a
	if neg {
		mag = a.Not().addOne()
	}
	limbs := append([]uint32(nil), mag.limbs...)
	var digits []byte
	for !allZero(limbs) {
		var rem uint64
		for i := len(limbs) - 1; i >= 0; i-- {
			cur := rem<<32 | uint64(limbs[i])
			limbs[i] = uint32(cur / uint64(radix)) //nolint:gosec // G115: quotient fits in uint32.
			rem = cur % uint64(radix)
		}
		digits = append(digits, "0123456789abcdef"[rem])
	}
	if len(digits) == 0 {
		return "0"
	}
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte(digits[i])
	}
	return sb.String()
}

// String formats as unsigned decimal.
func (a APInt) String() string {
	return a.Text(10, false)
}

func (a APInt) addOne() APInt {
	out := APInt{width: a.width, limbs: append([]uint32(nil), a.limbs...)}
	for i := range out.limbs {
		out.limbs[i]++
		if out.limbs[i] != 0 {
			break
		}
	}
	out.clearUnused()
	return out
}

func (a *APInt) clearUnused() {
	if rem := a.width % 32; rem != 0 {
		a.limbs[len(a.limbs)-1] &= (uint32(1) << rem) - 1
	}
}

func allZero(limbs []uint32) bool {
	for _, l := range limbs {
		if l != 0 {
			return false
		}
	}
	return true
}
