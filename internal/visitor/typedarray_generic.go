package visitor

import "golang.org/x/exp/constraints"

// NewTypedArray builds a TypedArray from a homogeneous Go slice, picking
// Kind and the populated field by T instead of requiring the caller to
// know the TypedArray struct's field layout. It produces exactly the same
// value a hand-written per-kind literal would; internal/cursorvisitor's
// AdvanceTypedArray expansion can't tell the two apart.
func NewTypedArray[T constraints.Integer | constraints.Float](values []T) TypedArray {
	switch v := any(values).(type) {
	case []uint8:
		return TypedArray{Kind: KindU8, U8: v}
	case []uint16:
		return TypedArray{Kind: KindU16, U16: v}
	case []uint32:
		return TypedArray{Kind: KindU32, U32: v}
	case []uint64:
		return TypedArray{Kind: KindU64, U64: v}
	case []int8:
		return TypedArray{Kind: KindI8, I8: v}
	case []int16:
		return TypedArray{Kind: KindI16, I16: v}
	case []int32:
		return TypedArray{Kind: KindI32, I32: v}
	case []int64:
		return TypedArray{Kind: KindI64, I64: v}
	case []float32:
		return TypedArray{Kind: KindF32, F32: v}
	case []float64:
		return TypedArray{Kind: KindF64, F64: v}
	default:
		return TypedArray{}
	}
}
