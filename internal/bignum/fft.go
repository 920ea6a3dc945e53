package bignum

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"
)

// mulFFT multiplies two magnitudes via github.com/remyoudompheng/bigfft,
// which implements Schönhage-Strassen-style FFT multiplication on top
// of math/big.Int — asymptotically faster than the O(m*n) schoolbook
// path above fftThreshold digits. Both magnitudes are
// little-endian uint32 digit slices identical to math/big.Int's own
// internal word representation on a 32-bit Word build, but big.Int
// does not expose that layout portably, so the bridge goes through
// big.Int's public byte-oriented constructor instead.
func mulFFT(a, b []uint32) []uint32 {
	x := magnitudeToBig(a)
	y := magnitudeToBig(b)
	product := bigfft.Mul(x, y)
	return bigToMagnitude(product)
}

func magnitudeToBig(digits []uint32) *big.Int {
	buf := make([]byte, len(digits)*4)
	for i, d := range digits {
		off := (len(digits) - 1 - i) * 4
		buf[off] = byte(d >> 24)
		buf[off+1] = byte(d >> 16)
		buf[off+2] = byte(d >> 8)
		buf[off+3] = byte(d)
	}
	return new(big.Int).SetBytes(buf)
}

// bigToMagnitude converts a big.Int's big-endian byte magnitude back
// into little-endian 32-bit digits: byte i from the end of buf lands in
// digit i/4 at bit offset 8*(i%4).
func bigToMagnitude(v *big.Int) []uint32 {
	buf := v.Bytes()
	digits := make([]uint32, (len(buf)+3)/4)
	for i := 0; i < len(buf); i++ {
		byteFromEnd := len(buf) - 1 - i
		digits[i/4] |= uint32(buf[byteFromEnd]) << (8 * uint(i%4))
	}
	return trimZeros(digits)
}
