package dateconv

import (
	"testing"
	"time"

	"eventcore/internal/event"
	"eventcore/internal/semtag"
)

func TestToTimeEpochSeconds(t *testing.T) {
	e := event.Event{Kind: event.Int64, Int64Val: 0, Tag: semtag.EpochTime}
	got, err := ToTime(e)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Unix(0, 0).UTC()) {
		t.Errorf("ToTime(epoch 0) = %v, want unix epoch", got)
	}
}

func TestToTimeEpochFractional(t *testing.T) {
	e := event.Event{Kind: event.Double, DoubleVal: 1.5, Tag: semtag.EpochTime}
	got, err := ToTime(e)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Unix(1, 5e8).UTC()
	if !got.Equal(want) {
		t.Errorf("ToTime(epoch 1.5) = %v, want %v", got, want)
	}
}

func TestToTimeDateTimeString(t *testing.T) {
	e := event.Event{Kind: event.String, StringView: "2024-03-15T10:30:00", Tag: semtag.DateTime}
	got, err := ToTime(e)
	if err != nil {
		t.Fatal(err)
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 15 {
		t.Errorf("ToTime(date_time) = %v, want 2024-03-15", got)
	}
}

func TestToTimeWrongTagFails(t *testing.T) {
	e := event.Event{Kind: event.String, StringView: "hello", Tag: semtag.None}
	if _, err := ToTime(e); err == nil {
		t.Fatal("expected not_date_time error for a plain string")
	}
}

func TestFormatDateTimeRoundTrip(t *testing.T) {
	tm := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	got := FormatDateTime(tm)
	want := "2024-03-15T10:30:00Z"
	if got != want {
		t.Errorf("FormatDateTime = %q, want %q", got, want)
	}
}

// TestEventGetTimeUsesRegisteredConverter exercises event.Get[time.Time]
// from this package, whose init registers ToTime as the converter — the
// path a caller holding only an event.Event and no direct dateconv import
// actually takes.
func TestEventGetTimeUsesRegisteredConverter(t *testing.T) {
	e := event.Event{Kind: event.Int64, Int64Val: 0, Tag: semtag.EpochTime}
	got, err := event.Get[time.Time](e)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Unix(0, 0).UTC()) {
		t.Errorf("event.Get[time.Time](epoch 0) = %v, want unix epoch", got)
	}
}
