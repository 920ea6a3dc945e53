package cursor

import (
	"encoding/binary"
	"hash"
	"math"

	"golang.org/x/crypto/blake2b"

	"eventcore/internal/cursorvisitor"
	"eventcore/internal/event"
)

// digestAccumulator folds the canonical byte representation of every event
// a digesting Cursor produces via Next into a running blake2b-256 hash.
type digestAccumulator struct {
	h     hash.Hash
	sum   []byte
	done  bool
	depth int
}

// NewDigestingCursor behaves exactly like New, except every event Next
// produces is also folded into a running blake2b-256 digest, retrievable
// afterward with Digest — whether the caller drives the cursor through
// ReadTo or a plain Next loop.
func NewDigestingCursor(decoder Decoder) *Cursor {
	h, _ := blake2b.New256(nil)
	c := New(decoder)
	c.digest = &digestAccumulator{h: h}
	return c
}

// Digest returns the running digest once a digesting Cursor has walked a
// complete balanced sub-tree (its outermost end_object/end_array has been
// produced); nil before that.
func (c *Cursor) Digest() []byte {
	if c.digest == nil || !c.digest.done {
		return nil
	}
	return c.digest.sum
}

func (d *digestAccumulator) absorb(e event.Event) {
	var buf [10]byte
	buf[0] = byte(e.Kind)
	buf[1] = byte(e.Tag)
	binary.LittleEndian.PutUint64(buf[2:], e.ExtTag)
	d.h.Write(buf[:])

	switch e.Kind {
	case event.Bool:
		if e.BoolVal {
			d.h.Write([]byte{1})
		} else {
			d.h.Write([]byte{0})
		}
	case event.Int64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(e.Int64Val))
		d.h.Write(b[:])
	case event.Uint64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], e.Uint64Val)
		d.h.Write(b[:])
	case event.Half:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], e.HalfBits)
		d.h.Write(b[:])
	case event.Double:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(e.DoubleVal))
		d.h.Write(b[:])
	case event.Name, event.String:
		d.h.Write([]byte(e.StringView))
	case event.ByteString:
		d.h.Write(e.ByteView)
	}

	switch {
	case cursorvisitor.CurrentIsBeginOf(e):
		d.depth++
	case cursorvisitor.CurrentIsEndOf(e):
		d.depth--
		if d.depth == 0 {
			d.maybeFinish()
		}
	}
}

// maybeFinish snapshots the running sum when the outermost
// end_object/end_array of a balanced sub-tree has been absorbed; inner End
// events do not finish the digest.
func (d *digestAccumulator) maybeFinish() {
	d.sum = d.h.Sum(nil)
	d.done = true
}
