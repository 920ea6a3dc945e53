package streamnet

import (
	stderrors "errors"
	"io"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"eventcore/internal/event"
	"eventcore/internal/semtag"
	"eventcore/internal/visitor"
)

// Source reads frames off a websocket connection and replays each one as
// a single push onto whatever visitor.Visitor a Cursor drives it with. It
// implements cursor.Decoder, so the receiving side of a Relay is just
// cursor.New(streamnet.NewSource(conn)).
type Source struct {
	conn *websocket.Conn
}

// NewSource wraps conn, an already-established websocket connection
// (from Dial or Accept), as a cursor.Decoder.
func NewSource(conn *websocket.Conn) *Source {
	return &Source{conn: conn}
}

// Step reads frames and pushes them onto v until v signals stop (a push
// returns false) or the connection is exhausted, matching cursor.Decoder
// and the stop-on-false convention every other Decoder in this module
// honors.
func (s *Source) Step(v visitor.Visitor) (more bool, err error) {
	for {
		var f frame
		if err := s.conn.ReadJSON(&f); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return false, nil
			}
			if stderrors.Is(err, io.EOF) {
				return false, nil
			}
			return false, errors.Wrap(err, "streamnet: read frame")
		}
		if !replayFrame(f, v) {
			return true, nil
		}
	}
}

func replayFrame(f frame, v visitor.Visitor) bool {
	e := f.toEvent()
	tag := e.Tag
	ctx := visitor.Context{}

	switch e.Kind {
	case event.BeginObject:
		return v.BeginObject(e.Length, tag, ctx)
	case event.EndObject:
		return v.EndObject(ctx)
	case event.BeginArray:
		return v.BeginArray(e.Length, tag, ctx)
	case event.EndArray:
		return v.EndArray(ctx)
	case event.Name:
		return v.Name(e.StringView, ctx)
	case event.String:
		return v.String(e.StringView, tag, ctx)
	case event.ByteString:
		if tag == semtag.Ext {
			return v.ByteStringExt(e.ByteView, e.ExtTag, ctx)
		}
		return v.ByteString(e.ByteView, tag, ctx)
	case event.Null:
		return v.Null(tag, ctx)
	case event.Bool:
		return v.Bool(e.BoolVal, tag, ctx)
	case event.Int64:
		return v.Int64(e.Int64Val, tag, ctx)
	case event.Uint64:
		return v.Uint64(e.Uint64Val, tag, ctx)
	case event.Half:
		return v.Half(e.HalfBits, tag, ctx)
	case event.Double:
		return v.Double(e.DoubleVal, tag, ctx)
	default:
		return true
	}
}
