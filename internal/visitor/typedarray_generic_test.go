package visitor

import (
	"reflect"
	"testing"
)

func TestNewTypedArrayMatchesHandWrittenLiteral(t *testing.T) {
	cases := []struct {
		name string
		got  TypedArray
		want TypedArray
	}{
		{"u8", NewTypedArray([]uint8{7, 8, 9}), TypedArray{Kind: KindU8, U8: []uint8{7, 8, 9}}},
		{"u16", NewTypedArray([]uint16{7, 8, 9}), TypedArray{Kind: KindU16, U16: []uint16{7, 8, 9}}},
		{"u32", NewTypedArray([]uint32{7, 8, 9}), TypedArray{Kind: KindU32, U32: []uint32{7, 8, 9}}},
		{"u64", NewTypedArray([]uint64{7, 8, 9}), TypedArray{Kind: KindU64, U64: []uint64{7, 8, 9}}},
		{"i8", NewTypedArray([]int8{-1, 0, 1}), TypedArray{Kind: KindI8, I8: []int8{-1, 0, 1}}},
		{"i16", NewTypedArray([]int16{-1, 0, 1}), TypedArray{Kind: KindI16, I16: []int16{-1, 0, 1}}},
		{"i32", NewTypedArray([]int32{-1, 0, 1}), TypedArray{Kind: KindI32, I32: []int32{-1, 0, 1}}},
		{"i64", NewTypedArray([]int64{-1, 0, 1}), TypedArray{Kind: KindI64, I64: []int64{-1, 0, 1}}},
		{"f32", NewTypedArray([]float32{1.5, 2.5}), TypedArray{Kind: KindF32, F32: []float32{1.5, 2.5}}},
		{"f64", NewTypedArray([]float64{1.5, 2.5}), TypedArray{Kind: KindF64, F64: []float64{1.5, 2.5}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.got.Kind != c.want.Kind {
				t.Fatalf("Kind = %v, want %v", c.got.Kind, c.want.Kind)
			}
			if c.got.Len() != c.want.Len() {
				t.Fatalf("Len() = %d, want %d", c.got.Len(), c.want.Len())
			}
			// Every unrelated field must stay at its zero value, same as the
			// hand-written literal: NewTypedArray must not populate more than
			// one slice.
			if !reflect.DeepEqual(c.got, c.want) {
				t.Errorf("NewTypedArray(...) = %+v, want %+v", c.got, c.want)
			}
		})
	}
}

func TestNewTypedArrayEmptySlice(t *testing.T) {
	// A nil slice still takes its element kind from T and has length zero.
	got := NewTypedArray([]uint8(nil))
	if got.Kind != KindU8 || got.Len() != 0 {
		t.Errorf("NewTypedArray(nil) = %+v, want zero-length KindU8", got)
	}
}
