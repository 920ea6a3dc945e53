// Package bignum implements an arbitrary-precision sign-magnitude integer.
//
// The representation follows the textbook multi-precision algorithms
// (Ammeraal-style schoolbook arithmetic and Knuth normalized long
// division): a sign flag plus a little-endian slice of 32-bit digits,
// digit 0 least significant, radix B = 2^32. Every exported operation
// restores the two canonical-form invariants before returning:
//
//	len(digits) == 0  =>  negative == false   (unique zero representation)
//	len(digits) > 0   =>  digits[len-1] != 0   (no trailing zero digit)
//
// Go has no small-buffer-optimization union the way the C++ original
// does (inline 2-digit storage promoted to heap above that); a plain
// slice is used throughout instead, a lower-memory-efficiency substitute
// that preserves the same semantics.
package bignum

import "math/bits"

// digitBits is the width of one magnitude digit; B = 2^digitBits.
const digitBits = 32

// Int is a sign-magnitude arbitrary-precision integer. The zero value is
// the integer zero and is ready to use.
type Int struct {
	negative bool
	digits   []uint32 // little-endian, canonical: no trailing zero digit
}

// zero reports whether x is the canonical zero representation.
func (x *Int) zero() bool { return len(x.digits) == 0 }

// canonicalize trims trailing zero digits and forces the sign of zero to
// positive, restoring both bignum invariants.
func (x *Int) canonicalize() *Int {
	n := len(x.digits)
	for n > 0 && x.digits[n-1] == 0 {
		n--
	}
	x.digits = x.digits[:n]
	if n == 0 {
		x.negative = false
	}
	return x
}

// clone returns a deep copy; bignum heap storage is owned exclusively by
// one instance, so every mutator that must not alias its operand copies
// via clone first.
func (x *Int) clone() *Int {
	d := make([]uint32, len(x.digits))
	copy(d, x.digits)
	return &Int{negative: x.negative, digits: d}
}

// Clone returns an independent deep copy of x.
func (x *Int) Clone() *Int { return x.clone() }

// Zero returns a new bignum with value 0.
func Zero() *Int { return &Int{} }

// FromInt64 constructs a bignum from a signed 64-bit integer. The
// unsigned absolute value is computed as `0 - v` under two's-complement
// wraparound so that math.MinInt64 does not overflow during negation.
func FromInt64(v int64) *Int {
	neg := v < 0
	u := uint64(0 - uint64(v))
	if !neg {
		u = uint64(v)
	}
	return fromUint64Signed(u, neg)
}

// FromUint64 constructs a non-negative bignum from an unsigned 64-bit
// integer.
func FromUint64(v uint64) *Int { return fromUint64Signed(v, false) }

func fromUint64Signed(u uint64, neg bool) *Int {
	x := &Int{negative: neg}
	lo := uint32(u)
	hi := uint32(u >> digitBits)
	if hi != 0 {
		x.digits = []uint32{lo, hi}
	} else if lo != 0 {
		x.digits = []uint32{lo}
	}
	return x.canonicalize()
}

// FromFloat64 truncates the integer part of v towards zero. It
// reproduces the reference accumulation `v += factor*(x mod B); x /=
// B; factor *= B` rather than relying on a direct float-to-bignum
// conversion, so that values far outside int64 range are handled
// exactly like §4.1 specifies.
func FromFloat64(v float64) *Int {
	neg := v < 0
	if neg {
		v = -v
	}
	v = truncWhole(v)

	result := Zero()
	factor := FromUint64(1)
	const wordSpan = 4294967296.0 // 2^32, matches digit radix B
	for v >= 1 {
		word := v
		for word >= wordSpan {
			word -= wordSpan * float64(uint64(word/wordSpan))
		}
		chunk := uint64(word)
		result = Add(result, Mul(factor, FromUint64(chunk)))
		v = truncWhole(v / wordSpan)
		factor = Mul(factor, FromUint64(1<<32))
	}
	result.negative = neg && !result.zero()
	return result.canonicalize()
}

// truncWhole truncates v toward zero without pulling in the math
// package's Trunc for this one call site.
func truncWhole(v float64) float64 {
	if v < 0 {
		return -truncWhole(-v)
	}
	return float64(uint64(v))
}

// FromSignedBytes builds a bignum from a sign flag and a big-endian
// base-256 magnitude, one byte per digit: v = v*256 + byte for each byte
// left to right. The reference source multiplies by 16 instead of 256,
// which is a bug; base 256 big-endian matches how self-describing wire
// formats deliver big-integer magnitudes.
func FromSignedBytes(negative bool, data []byte) *Int {
	result := Zero()
	base := FromUint64(256)
	for _, b := range data {
		result = Add(Mul(result, base), FromUint64(uint64(b)))
	}
	result.negative = negative && !result.zero()
	return result.canonicalize()
}

// Sign returns -1, 0, or +1.
func (x *Int) Sign() int {
	if x.zero() {
		return 0
	}
	if x.negative {
		return -1
	}
	return 1
}

// IsZero reports whether x is the canonical zero value.
func (x *Int) IsZero() bool { return x.zero() }

// BitLen returns the number of bits in the magnitude, 0 for zero.
func (x *Int) BitLen() int {
	n := len(x.digits)
	if n == 0 {
		return 0
	}
	return (n-1)*digitBits + bits.Len32(x.digits[n-1])
}

// cmpMagnitude orders by length then digit-by-digit from the most
// significant digit.
func cmpMagnitude(a, b []uint32) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Cmp orders x against y: sign first, then magnitude via cmpMagnitude,
// with the magnitude comparison's result negated when both operands are
// negative.
func Cmp(x, y *Int) int {
	sx, sy := x.Sign(), y.Sign()
	if sx != sy {
		if sx < sy {
			return -1
		}
		return 1
	}
	if sx == 0 {
		return 0
	}
	c := cmpMagnitude(x.digits, y.digits)
	if sx < 0 {
		return -c
	}
	return c
}

// Neg returns -x as a new bignum.
func Neg(x *Int) *Int {
	r := x.clone()
	if !r.zero() {
		r.negative = !x.negative
	}
	return r
}

// Abs returns |x| as a new bignum.
func Abs(x *Int) *Int {
	r := x.clone()
	r.negative = false
	return r
}
