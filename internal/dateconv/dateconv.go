// Package dateconv implements date_time/epoch_time semantic-tag
// conversions layered on internal/event's Get[T] accessors: parsing a
// date_time string view with golang-sql/civil, interpreting an
// epoch_time numeric scalar as Unix seconds, and formatting a time.Time
// back into the canonical date_time textual form with ncruces/go-strftime.
package dateconv

import (
	"time"

	"github.com/golang-sql/civil"
	"github.com/ncruces/go-strftime"

	"eventcore/internal/event"
	"eventcore/internal/semtag"
	"eventcore/internal/streamerr"
)

// outputPattern is the strftime pattern used to render a time.Time back
// into the textual form a date_time-tagged string event carries on the
// wire, mirroring how an encoder would render it.
const outputPattern = "%Y-%m-%dT%H:%M:%SZ"

func init() {
	event.RegisterTimeConverter(ToTime)
}

// ToTime converts e to a time.Time when its semantic tag is date_time or
// epoch_time. Any other tag/kind combination fails with
// streamerr.NotDateTime.
func ToTime(e event.Event) (time.Time, error) {
	switch e.Tag {
	case semtag.DateTime:
		return parseDateTime(e)
	case semtag.EpochTime:
		return parseEpochTime(e)
	default:
		return time.Time{}, streamerr.New(streamerr.NotDateTime, "event tag "+e.Tag.String()+" is not date_time or epoch_time")
	}
}

func parseDateTime(e event.Event) (time.Time, error) {
	if e.Kind != event.String {
		return time.Time{}, streamerr.New(streamerr.NotDateTime, "date_time tag requires a string-kind event")
	}
	if dt, err := civil.ParseDateTime(e.StringView); err == nil {
		return dt.In(time.UTC), nil
	}
	if d, err := civil.ParseDate(e.StringView); err == nil {
		return d.In(time.UTC), nil
	}
	return time.Time{}, streamerr.New(streamerr.NotDateTime, "malformed date_time string: "+e.StringView)
}

func parseEpochTime(e event.Event) (time.Time, error) {
	switch e.Kind {
	case event.Int64:
		return time.Unix(e.Int64Val, 0).UTC(), nil
	case event.Uint64:
		return time.Unix(int64(e.Uint64Val), 0).UTC(), nil
	case event.Double:
		sec := int64(e.DoubleVal)
		nsec := int64((e.DoubleVal - float64(sec)) * 1e9)
		return time.Unix(sec, nsec).UTC(), nil
	default:
		return time.Time{}, streamerr.New(streamerr.NotDateTime, "epoch_time tag requires an int64, uint64, or double event")
	}
}

// FormatDateTime renders t in the canonical wire textual form a
// date_time-tagged string event carries, using ncruces/go-strftime instead
// of time.Format so the pattern matches the rest of the wire-format
// tooling's strftime-style conventions.
func FormatDateTime(t time.Time) string {
	return strftime.Format(outputPattern, t.UTC())
}
