// Package visitor defines the push-style protocol a wire decoder drives:
// one method per parse event, each returning a bool that tells the decoder
// whether to keep pushing (true) or stop (false). internal/cursorvisitor is
// the one implementation the rest of the core depends on; internal/domdecoder
// is a second, independent implementation used as a materializing
// collaborator.
package visitor

import "eventcore/internal/semtag"

// Context carries byte/line/column provenance from the decoder, threaded
// through every visitor call and surfaced unchanged by Cursor.Context.
type Context struct {
	Byte   int64
	Line   int
	Column int
}

// ElementKind identifies the element type of a TypedArray call.
type ElementKind int

const (
	KindU8 ElementKind = iota
	KindU16
	KindU32
	KindU64
	KindI8
	KindI16
	KindI32
	KindI64
	KindHalf
	KindF32
	KindF64
)

// TypedArray is the span handed to Visitor.TypedArray: a homogeneous run of
// elements delivered as one call instead of one event per element. Exactly
// one of the typed slices is populated, selected by Kind.
type TypedArray struct {
	Kind ElementKind
	U8   []uint8
	U16  []uint16
	U32  []uint32
	U64  []uint64
	I8   []int8
	I16  []int16
	I32  []int32
	I64  []int64
	Half []uint16 // IEEE binary16 bits; no native Go float16 type
	F32  []float32
	F64  []float64
}

// Len reports the element count regardless of which slice is populated.
func (t TypedArray) Len() int {
	switch t.Kind {
	case KindU8:
		return len(t.U8)
	case KindU16:
		return len(t.U16)
	case KindU32:
		return len(t.U32)
	case KindU64:
		return len(t.U64)
	case KindI8:
		return len(t.I8)
	case KindI16:
		return len(t.I16)
	case KindI32:
		return len(t.I32)
	case KindI64:
		return len(t.I64)
	case KindHalf:
		return len(t.Half)
	case KindF32:
		return len(t.F32)
	case KindF64:
		return len(t.F64)
	default:
		return 0
	}
}

// Visitor is the abstract push interface decoders drive. Every method
// returns true to keep pushing, false to stop — the push-to-pull bridge in
// internal/cursorvisitor relies entirely on this stop-signal convention
// instead of coroutines.
type Visitor interface {
	BeginObject(length int, tag semtag.Tag, ctx Context) bool
	EndObject(ctx Context) bool
	BeginArray(length int, tag semtag.Tag, ctx Context) bool
	EndArray(ctx Context) bool
	Name(value string, ctx Context) bool
	Null(tag semtag.Tag, ctx Context) bool
	Bool(value bool, tag semtag.Tag, ctx Context) bool
	Int64(value int64, tag semtag.Tag, ctx Context) bool
	Uint64(value uint64, tag semtag.Tag, ctx Context) bool
	Half(bits uint16, tag semtag.Tag, ctx Context) bool
	Double(value float64, tag semtag.Tag, ctx Context) bool
	String(value string, tag semtag.Tag, ctx Context) bool
	ByteString(value []byte, tag semtag.Tag, ctx Context) bool
	ByteStringExt(value []byte, extTag uint64, ctx Context) bool
	TypedArray(arr TypedArray, tag semtag.Tag, ctx Context) bool
	BeginMultiDim(shape []uint64, tag semtag.Tag, ctx Context) bool
	EndMultiDim(ctx Context) bool
	Flush() bool
}
