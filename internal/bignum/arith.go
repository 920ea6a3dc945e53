package bignum

// addMagnitude adds two magnitudes digit-by-digit, carry detected by
// wrap-around comparison (`sum < carry`).
func addMagnitude(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]uint32, len(a)+1)
	var carry uint32
	i := 0
	for ; i < len(b); i++ {
		sum := a[i] + b[i] + carry
		if carry == 1 {
			carry = boolToDigit(sum <= a[i])
		} else {
			carry = boolToDigit(sum < a[i])
		}
		out[i] = sum
	}
	for ; i < len(a); i++ {
		sum := a[i] + carry
		carry = boolToDigit(sum < a[i])
		out[i] = sum
	}
	out[len(a)] = carry
	return out
}

func boolToDigit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// subMagnitude computes a-b assuming |a| >= |b| (the minuend is always
// the larger magnitude), borrow detected by `diff > minuend`.
func subMagnitude(a, b []uint32) []uint32 {
	out := make([]uint32, len(a))
	var borrow uint32
	for i := range a {
		var bi uint32
		if i < len(b) {
			bi = b[i]
		}
		diff := a[i] - bi - borrow
		if borrow == 1 {
			borrow = boolToDigit(diff >= a[i])
		} else {
			borrow = boolToDigit(diff > a[i])
		}
		out[i] = diff
	}
	return out
}

// Add returns x+y. Opposite signs delegate to magnitude subtraction,
// choosing the larger magnitude as minuend and flipping the result's
// sign when the smaller-magnitude operand supplied the "larger" sign.
func Add(x, y *Int) *Int {
	if x.negative == y.negative {
		r := &Int{negative: x.negative, digits: addMagnitude(x.digits, y.digits)}
		return r.canonicalize()
	}
	c := cmpMagnitude(x.digits, y.digits)
	if c == 0 {
		return Zero()
	}
	if c > 0 {
		r := &Int{negative: x.negative, digits: subMagnitude(x.digits, y.digits)}
		return r.canonicalize()
	}
	r := &Int{negative: y.negative, digits: subMagnitude(y.digits, x.digits)}
	return r.canonicalize()
}

// Sub returns x-y.
func Sub(x, y *Int) *Int { return Add(x, Neg(y)) }

// DDproduct splits each 32-bit operand into high/low 16-bit halves,
// forms the four half-digit products, and combines them into the
// 64-bit result split as (hi, lo) 32-bit digits. This is the single hot
// primitive every multiplication path routes through for an individual
// 32x32 digit product.
func DDproduct(a, b uint32) (hi, lo uint32) {
	const half = 1 << 16
	x1, x0 := a>>16, a&(half-1)
	y1, y0 := b>>16, b&(half-1)

	p00 := uint64(x0) * uint64(y0)
	p01 := uint64(x0) * uint64(y1)
	p10 := uint64(x1) * uint64(y0)
	p11 := uint64(x1) * uint64(y1)

	mid := p01 + p10
	full := p00 + (mid << 16) + (p11 << 32)

	return uint32(full >> 32), uint32(full)
}

// mulSingleDigit scales every digit of a by a single word w, threading
// the running carry through DDproduct.
func mulSingleDigit(a []uint32, w uint32) []uint32 {
	out := make([]uint32, len(a)+1)
	var carry uint32
	for i, ai := range a {
		hi, lo := DDproduct(ai, w)
		sum := lo + carry
		if sum < lo {
			hi++
		}
		out[i] = sum
		carry = hi
	}
	out[len(a)] = carry
	return out
}

// mulMagnitude is the general O(m*n) schoolbook product: column i
// accumulates x[j]*y[i-j] for every valid j, with overflow propagated
// into the next column. Columns are accumulated in 64-bit lanes (the
// carry/sumHi/sumLo triple folded into one wider integer) and only
// normalized back into 32-bit digits once all contributions to a column
// are in, which keeps the per-column addition from silently wrapping.
func mulMagnitude(a, b []uint32) []uint32 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]uint32, len(a)+len(b))
	var carry uint64
	lanes := make([]uint64, len(a)+len(b))
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			hi, lo := DDproduct(ai, bj)
			lanes[i+j] += uint64(lo)
			lanes[i+j+1] += uint64(hi)
		}
	}
	for i := range lanes {
		lanes[i] += carry
		out[i] = uint32(lanes[i])
		carry = lanes[i] >> 32
	}
	for carry != 0 {
		out = append(out, uint32(carry))
		carry >>= 32
	}
	return out
}

// fftThreshold is the digit length above which Mul delegates to
// github.com/remyoudompheng/bigfft instead of the schoolbook path. It is
// a variable, not a constant, so tests can force either path on small
// operands.
var fftThreshold = 96

// SetFFTThreshold overrides the digit length above which Mul routes through
// the FFT path, returning the previous value. Exposed for the CLI's
// --fft-threshold flag; most callers should leave the default alone.
func SetFFTThreshold(n int) int {
	old := fftThreshold
	fftThreshold = n
	return old
}

// Mul returns x*y. Three paths: both single-digit (a
// native 32x32 multiply, promoted to DDproduct on overflow), one
// single-digit operand (mulSingleDigit), or the general schoolbook
// product — routed through the FFT path above fftThreshold.
func Mul(x, y *Int) *Int {
	if x.zero() || y.zero() {
		return Zero()
	}
	sign := x.negative != y.negative

	var mag []uint32
	switch {
	case len(x.digits) == 1 && len(y.digits) == 1:
		a0, b0 := x.digits[0], y.digits[0]
		product := a0 * b0
		if a0 != 0 && product/a0 != b0 {
			hi, lo := DDproduct(a0, b0)
			mag = []uint32{lo, hi}
		} else {
			mag = []uint32{product}
		}
	case len(x.digits) == 1:
		mag = mulSingleDigit(y.digits, x.digits[0])
	case len(y.digits) == 1:
		mag = mulSingleDigit(x.digits, y.digits[0])
	case len(x.digits) > fftThreshold || len(y.digits) > fftThreshold:
		mag = mulFFT(x.digits, y.digits)
	default:
		mag = mulMagnitude(x.digits, y.digits)
	}

	r := &Int{negative: sign, digits: mag}
	return r.canonicalize()
}
