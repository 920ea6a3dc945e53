// Package cursorvisitor implements the push-to-pull bridge: a
// visitor.Visitor that captures every incoming call as an event.Event,
// holds expansion state for typed arrays and multi-dimensional shapes, and
// tells the pushing decoder to stop as soon as the configured predicate
// accepts an event. internal/cursor drives it from the pull side.
package cursorvisitor

import (
	"eventcore/internal/event"
	"eventcore/internal/semtag"
	"eventcore/internal/visitor"
)

// Predicate decides whether an event should be surfaced to the puller.
// Returning true means "accept" — which, inverted, is the stop signal
// reported back to the pushing decoder.
type Predicate func(e event.Event, ctx visitor.Context) bool

// AcceptAll is the default predicate: every event is surfaced.
func AcceptAll(event.Event, visitor.Context) bool { return true }

// ExpansionMode tracks which compound-event expansion, if any, is in
// progress. At most one of TD and Shape is meaningful at a time.
type ExpansionMode int

const (
	Idle ExpansionMode = iota
	ExpandingTypedArray
	ExpandingMultiDim
	ExpandingShape
)

// CursorVisitor is the one visitor.Visitor implementation the pull-style
// Cursor depends on. Each visitor method stores its call as LastEvent,
// evaluates Predicate, and returns !Predicate(...) upstream — false (stop)
// when the predicate accepts, true (keep pushing) otherwise. This
// inversion is the entire coroutine-free suspension mechanism: the pushing
// decoder's own call stack is the continuation.
type CursorVisitor struct {
	Predicate Predicate

	LastEvent event.Event
	lastCtx   visitor.Context

	mode  ExpansionMode
	td    visitor.TypedArray
	tdTag semtag.Tag
	shape []uint64
	shTag semtag.Tag
	index int

	decoderDone bool
	decoderErr  error
}

// New returns a CursorVisitor with the default accept-all predicate.
func New() *CursorVisitor {
	return &CursorVisitor{Predicate: AcceptAll}
}

// NewWithPredicate returns a CursorVisitor filtering through p.
func NewWithPredicate(p Predicate) *CursorVisitor {
	if p == nil {
		p = AcceptAll
	}
	return &CursorVisitor{Predicate: p}
}

// Mode reports the current expansion state.
func (c *CursorVisitor) Mode() ExpansionMode { return c.mode }

// InExpansion reports whether a typed-array expansion still has elements,
// or a shape expansion still has dimensions, left to emit. The closing
// EndArray that follows the last one is not counted, and the
// ExpandingMultiDim step before the shape's BeginArray reports false.
func (c *CursorVisitor) InExpansion() bool {
	switch c.mode {
	case ExpandingTypedArray:
		return c.index < c.td.Len()
	case ExpandingShape:
		return c.index < len(c.shape)
	default:
		return false
	}
}

// accept stores e as LastEvent and evaluates Predicate, returning the
// stop-signal value every visitor.Visitor method returns upstream.
func (c *CursorVisitor) accept(e event.Event, ctx visitor.Context) bool {
	c.LastEvent = e
	c.lastCtx = ctx
	return !c.Predicate(e, ctx)
}

func (c *CursorVisitor) BeginObject(length int, tag semtag.Tag, ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.BeginObject, Tag: tag, Length: length}, ctx)
}

func (c *CursorVisitor) EndObject(ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.EndObject}, ctx)
}

func (c *CursorVisitor) BeginArray(length int, tag semtag.Tag, ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.BeginArray, Tag: tag, Length: length}, ctx)
}

func (c *CursorVisitor) EndArray(ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.EndArray}, ctx)
}

func (c *CursorVisitor) Name(value string, ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.Name, StringView: value, Tag: semtag.None}, ctx)
}

func (c *CursorVisitor) Null(tag semtag.Tag, ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.Null, Tag: tag}, ctx)
}

func (c *CursorVisitor) Bool(value bool, tag semtag.Tag, ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.Bool, BoolVal: value, Tag: tag}, ctx)
}

func (c *CursorVisitor) Int64(value int64, tag semtag.Tag, ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.Int64, Int64Val: value, Tag: tag}, ctx)
}

func (c *CursorVisitor) Uint64(value uint64, tag semtag.Tag, ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.Uint64, Uint64Val: value, Tag: tag}, ctx)
}

func (c *CursorVisitor) Half(bits uint16, tag semtag.Tag, ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.Half, HalfBits: bits, Tag: tag}, ctx)
}

func (c *CursorVisitor) Double(value float64, tag semtag.Tag, ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.Double, DoubleVal: value, Tag: tag}, ctx)
}

func (c *CursorVisitor) String(value string, tag semtag.Tag, ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.String, StringView: value, Tag: tag}, ctx)
}

func (c *CursorVisitor) ByteString(value []byte, tag semtag.Tag, ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.ByteString, ByteView: value, Tag: tag}, ctx)
}

func (c *CursorVisitor) ByteStringExt(value []byte, extTag uint64, ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.ByteString, ByteView: value, Tag: semtag.Ext, ExtTag: extTag}, ctx)
}

// TypedArray begins expansion: it sets the expansion mode, captures the
// view, and emits a synthetic BeginArray — itself run through the
// predicate.
func (c *CursorVisitor) TypedArray(arr visitor.TypedArray, tag semtag.Tag, ctx visitor.Context) bool {
	c.mode = ExpandingTypedArray
	c.td = arr
	c.tdTag = tag
	c.index = 0
	return c.accept(event.Event{Kind: event.BeginArray, Tag: tag, Length: arr.Len()}, ctx)
}

// AdvanceTypedArray emits the next element of an in-progress typed-array
// expansion as a scalar event, or the closing EndArray once all elements
// have been emitted. Driven by Cursor.Next, never by the decoder directly.
func (c *CursorVisitor) AdvanceTypedArray(ctx visitor.Context) bool {
	if c.index >= c.td.Len() {
		c.mode = Idle
		return c.accept(event.Event{Kind: event.EndArray}, ctx)
	}
	i := c.index
	c.index++
	switch c.td.Kind {
	case visitor.KindU8:
		return c.accept(event.Event{Kind: event.Uint64, Uint64Val: uint64(c.td.U8[i]), Tag: c.tdTag}, ctx)
	case visitor.KindU16:
		return c.accept(event.Event{Kind: event.Uint64, Uint64Val: uint64(c.td.U16[i]), Tag: c.tdTag}, ctx)
	case visitor.KindU32:
		return c.accept(event.Event{Kind: event.Uint64, Uint64Val: uint64(c.td.U32[i]), Tag: c.tdTag}, ctx)
	case visitor.KindU64:
		return c.accept(event.Event{Kind: event.Uint64, Uint64Val: c.td.U64[i], Tag: c.tdTag}, ctx)
	case visitor.KindI8:
		return c.accept(event.Event{Kind: event.Int64, Int64Val: int64(c.td.I8[i]), Tag: c.tdTag}, ctx)
	case visitor.KindI16:
		return c.accept(event.Event{Kind: event.Int64, Int64Val: int64(c.td.I16[i]), Tag: c.tdTag}, ctx)
	case visitor.KindI32:
		return c.accept(event.Event{Kind: event.Int64, Int64Val: int64(c.td.I32[i]), Tag: c.tdTag}, ctx)
	case visitor.KindI64:
		return c.accept(event.Event{Kind: event.Int64, Int64Val: c.td.I64[i], Tag: c.tdTag}, ctx)
	case visitor.KindHalf:
		return c.accept(event.Event{Kind: event.Half, HalfBits: c.td.Half[i], Tag: c.tdTag}, ctx)
	case visitor.KindF32:
		return c.accept(event.Event{Kind: event.Double, DoubleVal: float64(c.td.F32[i]), Tag: c.tdTag}, ctx)
	case visitor.KindF64:
		return c.accept(event.Event{Kind: event.Double, DoubleVal: c.td.F64[i], Tag: c.tdTag}, ctx)
	default:
		c.mode = Idle
		return c.accept(event.Event{Kind: event.EndArray}, ctx)
	}
}

// BeginMultiDim starts the shape-then-body expansion: an outer length-2
// array wraps the shape array and the body array.
func (c *CursorVisitor) BeginMultiDim(shape []uint64, tag semtag.Tag, ctx visitor.Context) bool {
	c.mode = ExpandingMultiDim
	c.shape = shape
	c.shTag = tag
	c.index = 0
	return c.accept(event.Event{Kind: event.BeginArray, Tag: tag, Length: 2}, ctx)
}

// AdvanceMultiDim walks from the ExpandingMultiDim state through
// ExpandingShape and back to Idle, emitting the shape's own BeginArray,
// each dimension as a uint64, then its EndArray. The caller's decoder
// resumes pushing the body array's real events once this returns to Idle.
func (c *CursorVisitor) AdvanceMultiDim(ctx visitor.Context) bool {
	switch c.mode {
	case ExpandingMultiDim:
		c.mode = ExpandingShape
		return c.accept(event.Event{Kind: event.BeginArray, Length: len(c.shape)}, ctx)
	case ExpandingShape:
		if c.index < len(c.shape) {
			v := c.shape[c.index]
			c.index++
			return c.accept(event.Event{Kind: event.Uint64, Uint64Val: v}, ctx)
		}
		c.mode = Idle
		return c.accept(event.Event{Kind: event.EndArray}, ctx)
	default:
		c.mode = Idle
		return c.accept(event.Event{Kind: event.EndArray}, ctx)
	}
}

// EndMultiDim emits the closing EndArray for the outer length-2 wrapper,
// after the upstream decoder has pushed the body array's own events.
func (c *CursorVisitor) EndMultiDim(ctx visitor.Context) bool {
	return c.accept(event.Event{Kind: event.EndArray}, ctx)
}

func (c *CursorVisitor) Flush() bool { return true }

// MarkDone records that the decoder reached end-of-input, optionally with
// an error. Decoder errors are sticky: once set, Done() stays true.
func (c *CursorVisitor) MarkDone(err error) {
	c.decoderDone = true
	c.decoderErr = err
}

func (c *CursorVisitor) Done() bool     { return c.decoderDone && !c.InExpansion() }
func (c *CursorVisitor) Err() error     { return c.decoderErr }
func (c *CursorVisitor) Context() visitor.Context { return c.lastCtx }

// Dump forwards the current event to sink and reports whether it took
// the bulk path: when entering typed-array expansion for
// the first time (index == 0, right after the synthetic BeginArray), it
// calls the sink's bulk TypedArray once instead of replaying the
// BeginArray and waiting for per-element replay — an optimization that
// keeps the downstream replay compact. Otherwise it replays LastEvent
// as-is, including mid-expansion scalar events.
func (c *CursorVisitor) Dump(sink visitor.Visitor, ctx visitor.Context) (bulk bool) {
	if c.AtExpansionStart() {
		sink.TypedArray(c.td, c.tdTag, ctx)
		return true
	}
	replayEvent(c.LastEvent, sink, ctx)
	return false
}

// replayEvent forwards a single captured event to sink via the matching
// visitor method.
func replayEvent(e event.Event, sink visitor.Visitor, ctx visitor.Context) bool {
	switch e.Kind {
	case event.BeginObject:
		return sink.BeginObject(e.Length, e.Tag, ctx)
	case event.EndObject:
		return sink.EndObject(ctx)
	case event.BeginArray:
		return sink.BeginArray(e.Length, e.Tag, ctx)
	case event.EndArray:
		return sink.EndArray(ctx)
	case event.Name:
		return sink.Name(e.StringView, ctx)
	case event.String:
		return sink.String(e.StringView, e.Tag, ctx)
	case event.ByteString:
		if e.Tag == semtag.Ext {
			return sink.ByteStringExt(e.ByteView, e.ExtTag, ctx)
		}
		return sink.ByteString(e.ByteView, e.Tag, ctx)
	case event.Null:
		return sink.Null(e.Tag, ctx)
	case event.Bool:
		return sink.Bool(e.BoolVal, e.Tag, ctx)
	case event.Int64:
		return sink.Int64(e.Int64Val, e.Tag, ctx)
	case event.Uint64:
		return sink.Uint64(e.Uint64Val, e.Tag, ctx)
	case event.Half:
		return sink.Half(e.HalfBits, e.Tag, ctx)
	case event.Double:
		return sink.Double(e.DoubleVal, e.Tag, ctx)
	default:
		return true
	}
}
