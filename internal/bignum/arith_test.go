package bignum

import "testing"

func TestAddSubRoundTrip(t *testing.T) {
	vals := []int64{0, 1, -1, 999999999, -999999999, 1 << 50, -(1 << 50)}
	for _, a := range vals {
		for _, b := range vals {
			x, y := FromInt64(a), FromInt64(b)
			sum := Add(x, y)
			back := Sub(sum, y)
			if Cmp(back, x) != 0 {
				t.Errorf("Sub(Add(%d,%d),%d) = %s, want %d", a, b, b, back.String(), a)
			}
		}
	}
}

func TestMulAgainstSchoolbookAndFFT(t *testing.T) {
	old := fftThreshold
	defer func() { fftThreshold = old }()

	a := Pow(FromUint64(7), 400)
	b := Pow(FromUint64(13), 350)

	fftThreshold = 1 << 30 // force schoolbook
	schoolbook := Mul(a, b)

	fftThreshold = 1 // force FFT
	viaFFT := Mul(a, b)

	if Cmp(schoolbook, viaFFT) != 0 {
		t.Fatalf("schoolbook and FFT multiplication disagree:\n%s\nvs\n%s", schoolbook.String(), viaFFT.String())
	}
}

func TestDDproductAgainstUint64(t *testing.T) {
	cases := []uint32{0, 1, 2, 0xFFFFFFFF, 0x80000000, 0x12345678, 0xDEADBEEF}
	for _, a := range cases {
		for _, b := range cases {
			hi, lo := DDproduct(a, b)
			want := uint64(a) * uint64(b)
			got := uint64(hi)<<32 | uint64(lo)
			if got != want {
				t.Errorf("DDproduct(%#x,%#x) = %#x, want %#x", a, b, got, want)
			}
		}
	}
}

func TestMulSignAndZero(t *testing.T) {
	if !Mul(Zero(), FromInt64(5)).zero() {
		t.Error("0 * 5 must be zero")
	}
	if Mul(FromInt64(-3), FromInt64(4)).Sign() != -1 {
		t.Error("-3 * 4 must be negative")
	}
	if Mul(FromInt64(-3), FromInt64(-4)).Sign() != 1 {
		t.Error("-3 * -4 must be positive")
	}
}

func TestMulCommutative(t *testing.T) {
	a := Pow(FromUint64(3), 200)
	b := Pow(FromUint64(5), 150)
	if Cmp(Mul(a, b), Mul(b, a)) != 0 {
		t.Error("multiplication is not commutative")
	}
}

func TestShiftRoundTrip(t *testing.T) {
	x := Pow(FromUint64(2), 300)
	for _, k := range []uint{0, 1, 17, 32, 33, 64, 97} {
		shifted := Lsh(x, k)
		back := Rsh(shifted, k)
		if Cmp(back, x) != 0 {
			t.Errorf("Rsh(Lsh(x,%d),%d) != x", k, k)
		}
	}
}

func TestRshTruncatesLowBits(t *testing.T) {
	x := FromUint64(0b1011)
	got := Rsh(x, 1)
	if got.String() != "5" {
		t.Errorf("Rsh(0b1011,1) = %s, want 5", got.String())
	}
}

func TestBitwiseOps(t *testing.T) {
	a := FromUint64(0b1100)
	b := FromUint64(0b1010)
	if Or(a, b).String() != "14" {
		t.Errorf("Or = %s, want 14", Or(a, b).String())
	}
	if Xor(a, b).String() != "6" {
		t.Errorf("Xor = %s, want 6", Xor(a, b).String())
	}
	if And(a, b).String() != "8" {
		t.Errorf("And = %s, want 8", And(a, b).String())
	}
}

func TestBitwiseIgnoresSign(t *testing.T) {
	// bitwise operators act on magnitude only; a negative operand's sign
	// never propagates into the result.
	a := FromInt64(-12)
	b := FromInt64(10)
	if Or(a, b).Sign() < 0 {
		t.Error("Or must not produce a negative result from a negative operand")
	}
}
