// Package domdecoder implements visitor.Visitor to materialize a tree
// Value: a worked "DOM decoder" collaborator. Its multi-dim and typed-array
// materialization mirrors the shape the cursor's expansion produces; no
// test outside this package compares the two. It does no schema validation and
// exposes no mutation API, per the Non-goals.
package domdecoder

import (
	"eventcore/internal/semtag"
	"eventcore/internal/visitor"
)

// ValueKind discriminates a materialized Value.
type ValueKind int

const (
	Object ValueKind = iota
	Array
	StringVal
	ByteStringVal
	NullVal
	BoolVal
	Int64Val
	Uint64Val
	HalfVal
	DoubleVal
)

// Value is one materialized node of the DOM tree, carrying its originating
// semantic tag and ext tag alongside the payload.
type Value struct {
	Kind    ValueKind
	Tag     semtag.Tag
	ExtTag  uint64
	Str     string
	Bytes   []byte
	Bool    bool
	Int64   int64
	Uint64  uint64
	Half    uint16
	Double  float64
	Members []Member // Object only, insertion order preserved
	Items   []*Value // Array only
}

// Member is one object key/value pair.
type Member struct {
	Name  string
	Value *Value
}

// Decoder builds a Value tree from a push sequence. Use Root after driving
// a decoder to completion to retrieve the materialized top-level value.
type Decoder struct {
	stack    []*frame
	pendingName string
	hasPendingName bool
	root     *Value
}

type frame struct {
	container *Value
}

// New returns a Decoder ready to receive visitor calls.
func New() *Decoder { return &Decoder{} }

// Root returns the fully materialized top-level value once decoding has
// finished. Returns nil if nothing has been decoded yet.
func (d *Decoder) Root() *Value { return d.root }

func (d *Decoder) top() *frame {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}

func (d *Decoder) attach(v *Value) bool {
	f := d.top()
	if f == nil {
		d.root = v
		return true
	}
	switch f.container.Kind {
	case Array:
		f.container.Items = append(f.container.Items, v)
	case Object:
		if !d.hasPendingName {
			// shouldn't happen for a well-formed push sequence; treat as a
			// positional value with an empty key rather than panicking.
			f.container.Members = append(f.container.Members, Member{Value: v})
			return true
		}
		f.container.Members = append(f.container.Members, Member{Name: d.pendingName, Value: v})
		d.hasPendingName = false
	}
	return true
}

func (d *Decoder) BeginObject(length int, tag semtag.Tag, ctx visitor.Context) bool {
	v := &Value{Kind: Object, Tag: tag}
	d.attach(v)
	d.stack = append(d.stack, &frame{container: v})
	return true
}

func (d *Decoder) EndObject(ctx visitor.Context) bool {
	d.stack = d.stack[:len(d.stack)-1]
	return true
}

func (d *Decoder) BeginArray(length int, tag semtag.Tag, ctx visitor.Context) bool {
	v := &Value{Kind: Array, Tag: tag}
	d.attach(v)
	d.stack = append(d.stack, &frame{container: v})
	return true
}

func (d *Decoder) EndArray(ctx visitor.Context) bool {
	d.stack = d.stack[:len(d.stack)-1]
	return true
}

func (d *Decoder) Name(value string, ctx visitor.Context) bool {
	d.pendingName = value
	d.hasPendingName = true
	return true
}

func (d *Decoder) Null(tag semtag.Tag, ctx visitor.Context) bool {
	return d.attach(&Value{Kind: NullVal, Tag: tag})
}

func (d *Decoder) Bool(value bool, tag semtag.Tag, ctx visitor.Context) bool {
	return d.attach(&Value{Kind: BoolVal, Bool: value, Tag: tag})
}

func (d *Decoder) Int64(value int64, tag semtag.Tag, ctx visitor.Context) bool {
	return d.attach(&Value{Kind: Int64Val, Int64: value, Tag: tag})
}

func (d *Decoder) Uint64(value uint64, tag semtag.Tag, ctx visitor.Context) bool {
	return d.attach(&Value{Kind: Uint64Val, Uint64: value, Tag: tag})
}

func (d *Decoder) Half(bits uint16, tag semtag.Tag, ctx visitor.Context) bool {
	return d.attach(&Value{Kind: HalfVal, Half: bits, Tag: tag})
}

func (d *Decoder) Double(value float64, tag semtag.Tag, ctx visitor.Context) bool {
	return d.attach(&Value{Kind: DoubleVal, Double: value, Tag: tag})
}

func (d *Decoder) String(value string, tag semtag.Tag, ctx visitor.Context) bool {
	return d.attach(&Value{Kind: StringVal, Str: value, Tag: tag})
}

func (d *Decoder) ByteString(value []byte, tag semtag.Tag, ctx visitor.Context) bool {
	return d.attach(&Value{Kind: ByteStringVal, Bytes: value, Tag: tag})
}

func (d *Decoder) ByteStringExt(value []byte, extTag uint64, ctx visitor.Context) bool {
	return d.attach(&Value{Kind: ByteStringVal, Bytes: value, Tag: semtag.Ext, ExtTag: extTag})
}

// TypedArray materializes every element individually as an Array of
// scalars — the DOM has no compact typed-array representation, matching
// the Non-goals' "no DOM mutation APIs" stance that the DOM is a plain
// read-only materialization, not a second tier of specialized storage.
func (d *Decoder) TypedArray(arr visitor.TypedArray, tag semtag.Tag, ctx visitor.Context) bool {
	v := &Value{Kind: Array, Tag: tag}
	d.attach(v)
	for i := 0; i < arr.Len(); i++ {
		v.Items = append(v.Items, typedElement(arr, i, tag))
	}
	return true
}

func typedElement(arr visitor.TypedArray, i int, tag semtag.Tag) *Value {
	switch arr.Kind {
	case visitor.KindU8:
		return &Value{Kind: Uint64Val, Uint64: uint64(arr.U8[i]), Tag: tag}
	case visitor.KindU16:
		return &Value{Kind: Uint64Val, Uint64: uint64(arr.U16[i]), Tag: tag}
	case visitor.KindU32:
		return &Value{Kind: Uint64Val, Uint64: uint64(arr.U32[i]), Tag: tag}
	case visitor.KindU64:
		return &Value{Kind: Uint64Val, Uint64: arr.U64[i], Tag: tag}
	case visitor.KindI8:
		return &Value{Kind: Int64Val, Int64: int64(arr.I8[i]), Tag: tag}
	case visitor.KindI16:
		return &Value{Kind: Int64Val, Int64: int64(arr.I16[i]), Tag: tag}
	case visitor.KindI32:
		return &Value{Kind: Int64Val, Int64: int64(arr.I32[i]), Tag: tag}
	case visitor.KindI64:
		return &Value{Kind: Int64Val, Int64: arr.I64[i], Tag: tag}
	case visitor.KindHalf:
		return &Value{Kind: HalfVal, Half: arr.Half[i], Tag: tag}
	case visitor.KindF32:
		return &Value{Kind: DoubleVal, Double: float64(arr.F32[i]), Tag: tag}
	case visitor.KindF64:
		return &Value{Kind: DoubleVal, Double: arr.F64[i], Tag: tag}
	default:
		return &Value{Kind: NullVal}
	}
}

// BeginMultiDim materializes the shape/body pair directly as the length-2
// array the expanded cursor form also produces, so a DOM-decoded document
// and a cursor-replayed one stay structurally equivalent.
func (d *Decoder) BeginMultiDim(shape []uint64, tag semtag.Tag, ctx visitor.Context) bool {
	outer := &Value{Kind: Array, Tag: tag}
	d.attach(outer)
	shapeVal := &Value{Kind: Array}
	for _, s := range shape {
		shapeVal.Items = append(shapeVal.Items, &Value{Kind: Uint64Val, Uint64: s})
	}
	outer.Items = append(outer.Items, shapeVal)
	d.stack = append(d.stack, &frame{container: outer})
	return true
}

func (d *Decoder) EndMultiDim(ctx visitor.Context) bool {
	d.stack = d.stack[:len(d.stack)-1]
	return true
}

func (d *Decoder) Flush() bool { return true }
