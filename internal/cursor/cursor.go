// Package cursor implements the pull-style façade over a cursorvisitor.CursorVisitor:
// done/current/next/read_to, array_expected, and context, plus a
// composable FilterView. Nothing here spawns a goroutine; the core stays
// single-threaded.
package cursor

import (
	"eventcore/internal/cursorvisitor"
	"eventcore/internal/event"
	"eventcore/internal/streamerr"
	"eventcore/internal/visitor"
)

// Decoder is the abstract push-side collaborator a Cursor drives. Step
// pushes events into v, one visitor call at a time, until v's own return
// value tells it to stop (an event was accepted) or there is no more
// input. The decoder owns where it left off between Step calls — that
// suspended position, not a goroutine, is the coroutine-free continuation
// this package relies on.
type Decoder interface {
	// Step returns more=false once the decoder has no further input to
	// produce; more=true means it stopped only because v signalled stop.
	Step(v visitor.Visitor) (more bool, err error)
}

// Cursor is the pull-style façade over one Decoder, bridged through a
// cursorvisitor.CursorVisitor.
type Cursor struct {
	decoder Decoder
	cv      *cursorvisitor.CursorVisitor

	suppressBulk bool
	digest       *digestAccumulator
}

// New constructs a Cursor over decoder with the default accept-all
// predicate.
func New(decoder Decoder) *Cursor {
	return &Cursor{decoder: decoder, cv: cursorvisitor.New()}
}

// NewWithPredicate constructs a Cursor filtering through p from the start.
func NewWithPredicate(decoder Decoder, p cursorvisitor.Predicate) *Cursor {
	return &Cursor{decoder: decoder, cv: cursorvisitor.NewWithPredicate(p)}
}

// Done reports true once the decoder has signalled end-of-input (or a
// decoder error occurred) and no expansion events remain to synthesize.
func (c *Cursor) Done() bool { return c.cv.Done() }

// Current returns the last captured event. The second return value is
// false when the cursor is Done(), an explicit ok flag instead of
// undefined behavior.
func (c *Cursor) Current() (event.Event, bool) {
	if c.Done() {
		return event.Event{}, false
	}
	return c.cv.LastEvent, true
}

// Context returns byte/line/column provenance from the underlying decoder
// at the point of the last captured event.
func (c *Cursor) Context() visitor.Context { return c.cv.Context() }

// Next advances by one event: if an expansion is active it pulls the next
// synthetic event without re-entering the decoder; otherwise it drives the
// decoder one step. Decoder errors are sticky — once one occurs, Done()
// stays true.
func (c *Cursor) Next() error {
	if c.cv.Done() {
		return nil
	}
	switch c.cv.Mode() {
	case cursorvisitor.ExpandingTypedArray:
		c.cv.AdvanceTypedArray(c.cv.Context())
		c.absorbCurrent()
		return nil
	case cursorvisitor.ExpandingMultiDim, cursorvisitor.ExpandingShape:
		c.cv.AdvanceMultiDim(c.cv.Context())
		c.absorbCurrent()
		return nil
	default:
		more, err := c.decoder.Step(c.cv)
		if err != nil {
			c.cv.MarkDone(err)
			return err
		}
		if !more {
			c.cv.MarkDone(nil)
			return nil
		}
		c.absorbCurrent()
		return nil
	}
}

// absorbCurrent folds LastEvent into the running digest, for a digesting
// Cursor, every time Next produces a new current event. This is what makes
// Digest() correct for both ReadTo and a caller driving Next directly.
func (c *Cursor) absorbCurrent() {
	if c.digest != nil {
		c.digest.absorb(c.cv.LastEvent)
	}
}

// ArrayExpected checks that the current event is begin_array or
// byte_string — the latter lets callers treat a binary blob as a byte
// sequence — returning a not_vector error otherwise.
func (c *Cursor) ArrayExpected() error {
	e, ok := c.Current()
	if !ok || (e.Kind != event.BeginArray && e.Kind != event.ByteString) {
		return streamerr.New(streamerr.NotVector, "current event is not begin_array or byte_string")
	}
	return nil
}

// ReadTo forwards the current event and, when it is begin_object or
// begin_array, the entire balanced sub-tree, to sink. As a dump
// optimization, a typed-array expansion reached for the first time is
// forwarded as a single bulk TypedArray call rather than element by
// element; the suppressed per-element replay is still walked internally
// (via Next, which is also where digest absorption happens) so depth
// tracking and the digest both stay correct.
func (c *Cursor) ReadTo(sink visitor.Visitor) error {
	e, ok := c.Current()
	if !ok {
		return nil
	}
	c.forward(sink)

	if !cursorvisitor.CurrentIsBeginOf(e) {
		return nil
	}

	depth := 1
	for depth > 0 {
		if err := c.Next(); err != nil {
			return err
		}
		cur, ok := c.Current()
		if !ok {
			break
		}
		switch {
		case cursorvisitor.CurrentIsBeginOf(cur):
			depth++
		case cursorvisitor.CurrentIsEndOf(cur):
			depth--
		}
		c.forward(sink)
	}
	return nil
}

// forward dumps the current event to sink unless it is a per-element replay
// of a typed array already sent in bulk.
func (c *Cursor) forward(sink visitor.Visitor) {
	if c.suppressBulk {
		if c.cv.Mode() != cursorvisitor.ExpandingTypedArray {
			c.suppressBulk = false
		}
		return
	}
	if c.cv.Dump(sink, c.cv.Context()) {
		c.suppressBulk = true
	}
}
