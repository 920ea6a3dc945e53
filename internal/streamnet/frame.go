// Package streamnet carries a decoding session's event stream over a
// websocket connection: a Relay drains a Cursor and writes one JSON frame
// per event, and a Source reads those frames back and replays them onto
// whatever visitor.Visitor a receiving Cursor is built over.
package streamnet

import (
	"eventcore/internal/event"
	"eventcore/internal/semtag"
)

// frame is the wire representation of one event.Event. Only the fields
// relevant to Kind are populated; the rest are left at their zero value
// and ignored by the receiving side.
type frame struct {
	Kind      string `json:"kind"`
	Tag       string `json:"tag,omitempty"`
	ExtTag    uint64 `json:"ext_tag,omitempty"`
	Length    int    `json:"length,omitempty"`
	Bool      bool   `json:"bool,omitempty"`
	Int64     int64  `json:"int64,omitempty"`
	Uint64    uint64 `json:"uint64,omitempty"`
	Half      uint16 `json:"half,omitempty"`
	Double    float64 `json:"double,omitempty"`
	Str       string `json:"str,omitempty"`
	Bytes     []byte `json:"bytes,omitempty"`
}

var kindNames = map[event.Kind]string{
	event.BeginObject: "begin_object",
	event.EndObject:   "end_object",
	event.BeginArray:  "begin_array",
	event.EndArray:    "end_array",
	event.Name:        "name",
	event.String:      "string",
	event.ByteString:  "byte_string",
	event.Null:        "null",
	event.Bool:        "bool",
	event.Int64:       "int64",
	event.Uint64:      "uint64",
	event.Half:        "half",
	event.Double:      "double",
}

var namesToKind = func() map[string]event.Kind {
	m := make(map[string]event.Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

var tagNames = map[semtag.Tag]string{
	semtag.None:        "none",
	semtag.BigInteger:  "big_integer",
	semtag.BigDecimal:  "big_decimal",
	semtag.DateTime:    "date_time",
	semtag.EpochTime:   "epoch_time",
	semtag.Ext:         "ext",
	semtag.Base16:      "base16",
	semtag.Base64:      "base64",
	semtag.Base64URL:   "base64url",
	semtag.RowMajor:    "row_major",
	semtag.ColumnMajor: "column_major",
}

var namesToTag = func() map[string]semtag.Tag {
	m := make(map[string]semtag.Tag, len(tagNames))
	for t, name := range tagNames {
		m[name] = t
	}
	return m
}()

func frameFromEvent(e event.Event) frame {
	f := frame{
		Kind:   kindNames[e.Kind],
		Tag:    tagNames[e.Tag],
		ExtTag: e.ExtTag,
		Length: e.Length,
		Bool:   e.BoolVal,
		Int64:  e.Int64Val,
		Uint64: e.Uint64Val,
		Half:   e.HalfBits,
		Double: e.DoubleVal,
	}
	switch e.Kind {
	case event.Name, event.String:
		f.Str = e.StringView
	case event.ByteString:
		f.Bytes = e.ByteView
	}
	return f
}

func (f frame) toEvent() event.Event {
	e := event.Event{
		Kind:      namesToKind[f.Kind],
		Tag:       namesToTag[f.Tag],
		ExtTag:    f.ExtTag,
		Length:    f.Length,
		BoolVal:   f.Bool,
		Int64Val:  f.Int64,
		Uint64Val: f.Uint64,
		HalfBits:  f.Half,
		DoubleVal: f.Double,
	}
	switch e.Kind {
	case event.Name, event.String:
		e.StringView = f.Str
	case event.ByteString:
		e.ByteView = f.Bytes
	}
	return e
}
