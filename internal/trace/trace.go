// Package trace formats a Cursor's event-by-event walk as indented,
// human-readable text, one line per event instead of a whole report
// document.
package trace

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"eventcore/internal/cursor"
	"eventcore/internal/dateconv"
	"eventcore/internal/event"
	"eventcore/internal/semtag"
)

const indentUnit = "  "

var kindColor = map[event.Kind]string{
	event.BeginObject: "\x1b[36m",
	event.EndObject:   "\x1b[36m",
	event.BeginArray:  "\x1b[35m",
	event.EndArray:    "\x1b[35m",
	event.Name:        "\x1b[33m",
	event.String:      "\x1b[32m",
	event.ByteString:  "\x1b[32m",
	event.Null:        "\x1b[90m",
	event.Bool:        "\x1b[34m",
	event.Int64:       "\x1b[34m",
	event.Uint64:      "\x1b[34m",
	event.Half:        "\x1b[34m",
	event.Double:      "\x1b[34m",
}

const colorReset = "\x1b[0m"

// Formatter writes a textual trace of a Cursor's events to w, one line
// per event, indented to reflect container nesting.
type Formatter struct {
	w      io.Writer
	color  bool
	depth  int
}

// New builds a Formatter over w. Color is enabled only when w is a
// terminal.
func New(w io.Writer) *Formatter {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Formatter{w: w, color: color}
}

// NewColored builds a Formatter over w with color forced to the given
// value, for a caller that buffers trace output before it reaches the real
// terminal (so w itself is never an *os.File New could probe).
func NewColored(w io.Writer, color bool) *Formatter {
	return &Formatter{w: w, color: color}
}

// Walk drains c, writing one formatted line per event.
func (f *Formatter) Walk(c *cursor.Cursor) error {
	for {
		if err := c.Next(); err != nil {
			return err
		}
		if c.Done() {
			return nil
		}
		e, ok := c.Current()
		if !ok {
			continue
		}
		f.WriteEvent(e)
	}
}

// WriteEvent formats and writes a single event, for callers driving their
// own cursor loop alongside the trace (cmd/eventcore dump also feeds each
// event to a provenance Recorder from the same loop).
func (f *Formatter) WriteEvent(e event.Event) { f.writeEvent(e) }

func (f *Formatter) writeEvent(e event.Event) {
	if e.Kind == event.EndObject || e.Kind == event.EndArray {
		f.depth--
	}

	indent := ""
	for i := 0; i < f.depth; i++ {
		indent += indentUnit
	}

	line := indent + f.describe(e)
	if f.color {
		if c, ok := kindColor[e.Kind]; ok {
			line = c + line + colorReset
		}
	}
	fmt.Fprintln(f.w, line)

	if e.Kind == event.BeginObject || e.Kind == event.BeginArray {
		f.depth++
	}
}

func (f *Formatter) describe(e event.Event) string {
	if e.Tag == semtag.DateTime || e.Tag == semtag.EpochTime {
		if t, err := dateconv.ToTime(e); err == nil {
			return dateconv.FormatDateTime(t)
		}
	}
	switch e.Kind {
	case event.BeginObject:
		return fmt.Sprintf("{ # %s members", humanize.Comma(int64(e.Length)))
	case event.EndObject:
		return "}"
	case event.BeginArray:
		return fmt.Sprintf("[ # %s elements", humanize.Comma(int64(e.Length)))
	case event.EndArray:
		return "]"
	case event.Name:
		return e.StringView + ":"
	case event.String:
		return fmt.Sprintf("%q", e.StringView)
	case event.ByteString:
		return fmt.Sprintf("<%s>", humanize.Bytes(uint64(len(e.ByteView))))
	case event.Null:
		return "null"
	case event.Bool:
		return fmt.Sprintf("%t", e.BoolVal)
	case event.Int64:
		return humanize.Comma(e.Int64Val)
	case event.Uint64:
		return humanize.Comma(int64(e.Uint64Val))
	case event.Half, event.Double:
		v, _ := event.Get[float64](e)
		return fmt.Sprintf("%g", v)
	default:
		return e.Kind.String()
	}
}
