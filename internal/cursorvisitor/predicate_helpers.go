package cursorvisitor

import "eventcore/internal/event"

// AtExpansionStart reports whether the current event is the synthetic
// BeginArray that opened a typed-array expansion and no element has been
// consumed yet — the point at which Dump takes its bulk-forward path.
func (c *CursorVisitor) AtExpansionStart() bool {
	return c.mode == ExpandingTypedArray && c.index == 0
}

// CurrentIsBeginOf reports whether LastEvent opens a compound value.
func CurrentIsBeginOf(e event.Event) bool {
	return e.Kind == event.BeginObject || e.Kind == event.BeginArray
}

// CurrentIsEndOf reports whether e closes a compound value.
func CurrentIsEndOf(e event.Event) bool {
	return e.Kind == event.EndObject || e.Kind == event.EndArray
}
