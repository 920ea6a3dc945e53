package provenance

import (
	"context"

	"eventcore/internal/cursor"
	"eventcore/internal/event"
	"eventcore/internal/semtag"
)

// Recorder accumulates scalar counts for a single decoding pass and
// writes them to a Store when the pass completes. Either call Observe once
// per event while walking a Cursor yourself, or let Walk drain one.
type Recorder struct {
	store *Store
	sess  *Session
}

// Begin opens a new session against store for the named source and
// returns a Recorder over it.
func Begin(ctx context.Context, store *Store, source string) (*Recorder, error) {
	sess, err := store.BeginSession(ctx, source)
	if err != nil {
		return nil, err
	}
	return &Recorder{store: store, sess: sess}, nil
}

// Observe inspects e's tag and updates the running scalar counts.
func (r *Recorder) Observe(e event.Event) {
	switch e.Tag {
	case semtag.BigInteger:
		r.sess.BigIntegerCount++
	case semtag.BigDecimal:
		r.sess.BigDecimalCount++
	}
}

// Walk drains c to completion, calling Observe for every event it
// produces. It is a convenience for the common case where provenance
// is the only consumer of the cursor.
func (r *Recorder) Walk(c *cursor.Cursor) error {
	for !c.Done() {
		if e, ok := c.Current(); ok {
			r.Observe(e)
		}
		if err := c.Next(); err != nil {
			return err
		}
	}
	return nil
}

// Finish records digest (nil if none was computed) and writes the final
// session row.
func (r *Recorder) Finish(ctx context.Context, digest []byte) error {
	r.sess.Digest = digest
	return r.store.Finish(ctx, r.sess)
}

// Session returns the in-progress session record.
func (r *Recorder) Session() *Session {
	return r.sess
}
