package cursor

import (
	"eventcore/internal/cursorvisitor"
	"eventcore/internal/event"
	"eventcore/internal/visitor"
)

// FilterView composes one predicate onto an existing Cursor. On
// construction and after every Next, it advances the underlying cursor
// until Done or the predicate accepts. Filter chains: fv.Filter(p1).Filter(p2)
// accepts exactly the events satisfying p1 ∧ p2, so "cursor | p1 | p2"
// composes the way a reader would expect.
type FilterView struct {
	cursor *Cursor
	pred   cursorvisitor.Predicate
}

// NewFilterView wraps c, surfacing only events p accepts.
func NewFilterView(c *Cursor, p cursorvisitor.Predicate) *FilterView {
	if p == nil {
		p = cursorvisitor.AcceptAll
	}
	fv := &FilterView{cursor: c, pred: p}
	fv.skipRejected()
	return fv
}

// Filter returns the pipe cursor | this | p, a new FilterView over the same
// underlying Cursor accepting events satisfying both predicates.
func (fv *FilterView) Filter(p cursorvisitor.Predicate) *FilterView {
	outer := fv.pred
	combined := func(e event.Event, ctx visitor.Context) bool {
		return outer(e, ctx) && p(e, ctx)
	}
	return NewFilterView(fv.cursor, combined)
}

func (fv *FilterView) skipRejected() {
	for !fv.cursor.Done() {
		e, ok := fv.cursor.Current()
		if !ok {
			return
		}
		if fv.pred(e, fv.cursor.Context()) {
			return
		}
		if err := fv.cursor.Next(); err != nil {
			return
		}
	}
}

func (fv *FilterView) Done() bool                   { return fv.cursor.Done() }
func (fv *FilterView) Current() (event.Event, bool) { return fv.cursor.Current() }
func (fv *FilterView) Context() visitor.Context      { return fv.cursor.Context() }

func (fv *FilterView) Next() error {
	if err := fv.cursor.Next(); err != nil {
		return err
	}
	fv.skipRejected()
	return nil
}

func (fv *FilterView) ReadTo(sink visitor.Visitor) error { return fv.cursor.ReadTo(sink) }
func (fv *FilterView) ArrayExpected() error              { return fv.cursor.ArrayExpected() }
