package streamnet

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"eventcore/internal/cursor"
)

// upgrader uses a permissive CheckOrigin default; a relay is meant to sit
// behind a trusted proxy, not be exposed directly.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Relay drains a Cursor and writes one JSON frame per event to a
// websocket connection.
type Relay struct {
	conn *websocket.Conn
}

// Dial connects to a relay endpoint as a client.
func Dial(url string) (*Relay, error) {
	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "streamnet: dial")
	}
	return &Relay{conn: conn}, nil
}

// Accept upgrades an incoming HTTP request to a websocket connection and
// wraps it as a Relay, for use inside an http.HandlerFunc.
func Accept(w http.ResponseWriter, r *http.Request) (*Relay, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, errors.Wrap(err, "streamnet: upgrade")
	}
	return &Relay{conn: conn}, nil
}

// Close closes the underlying connection.
func (r *Relay) Close() error {
	r.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return r.conn.Close()
}

// Send pulls c to exhaustion, writing one JSON frame per event.
func (r *Relay) Send(c *cursor.Cursor) error {
	for {
		if err := c.Next(); err != nil {
			return errors.Wrap(err, "streamnet: cursor advance")
		}
		if c.Done() {
			return nil
		}
		e, ok := c.Current()
		if !ok {
			continue
		}
		if err := r.conn.WriteJSON(frameFromEvent(e)); err != nil {
			return errors.Wrap(err, "streamnet: write frame")
		}
	}
}
