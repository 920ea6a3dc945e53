// Package explorer implements the interactive line-oriented cursor
// explorer: a scanner reading commands against an Stdin/Stdout pair,
// rather than a full readline implementation. When stdin is a real
// terminal it goes one step further and switches the terminal into raw
// mode so a single keystroke (n, d, c, q) acts immediately.
package explorer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"eventcore/internal/cursor"
	"eventcore/internal/trace"
)

// Explorer drives a Cursor interactively: n/next advances one event,
// d/dump walks and prints every remaining event through to the end of the
// input, q/quit exits.
type Explorer struct {
	cursor *cursor.Cursor
	out    io.Writer
	trace  *trace.Formatter
	quit   bool
}

// New builds an Explorer over c, reading commands from in and writing
// output and prompts to out.
func New(c *cursor.Cursor, out io.Writer) *Explorer {
	return &Explorer{cursor: c, out: out, trace: trace.New(out)}
}

// Run reads commands from in until q/quit or EOF. If in is a terminal, it
// puts it into raw mode for single-keystroke commands and restores the
// saved termios before returning.
func (x *Explorer) Run(in io.Reader) error {
	fmt.Fprintln(x.out, "eventcore cursor explorer | n(ext), d(ump), c(ontext), q(uit)")

	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return x.runRaw(f)
	}
	return x.runLines(in)
}

// runLines is the portable fallback: one command per line, matching the
// teacher's own bufio.Scanner REPL shape exactly.
func (x *Explorer) runLines(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(x.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := x.dispatch(strings.TrimSpace(scanner.Text())); err != nil {
			return err
		}
		if x.quit {
			return nil
		}
	}
}

// runRaw reads one keystroke at a time off f once it has been switched into
// raw mode, falling back to runLines if raw mode can't be established (a
// non-Linux platform, or an ioctl failure on an unusual terminal).
func (x *Explorer) runRaw(f *os.File) error {
	rm, err := enableRawMode(int(f.Fd()))
	if err != nil || rm == nil {
		return x.runLines(f)
	}
	defer rm.restore()

	buf := make([]byte, 1)
	for {
		fmt.Fprint(x.out, "> ")
		n, err := f.Read(buf)
		if err != nil {
			return nil
		}
		if n == 0 {
			continue
		}
		fmt.Fprintln(x.out)
		if err := x.dispatch(string(buf[0])); err != nil {
			return err
		}
		if x.quit {
			return nil
		}
	}
}

func (x *Explorer) dispatch(cmd string) error {
	switch cmd {
	case "q", "quit":
		x.quit = true
		return nil
	case "n", "next":
		return x.next()
	case "d", "dump":
		return x.dump()
	case "c", "context":
		x.printContext()
		return nil
	case "":
		// ignore blank lines
		return nil
	default:
		fmt.Fprintf(x.out, "unrecognized command: %q\n", cmd)
		return nil
	}
}

func (x *Explorer) next() error {
	if x.cursor.Done() {
		fmt.Fprintln(x.out, "(done)")
		return nil
	}
	if err := x.cursor.Next(); err != nil {
		return err
	}
	if x.cursor.Done() {
		fmt.Fprintln(x.out, "(done)")
		return nil
	}
	e, ok := x.cursor.Current()
	if !ok {
		fmt.Fprintln(x.out, "(no current event)")
		return nil
	}
	fmt.Fprintf(x.out, "%s\n", e.Kind)
	return nil
}

func (x *Explorer) dump() error {
	if x.cursor.Done() {
		fmt.Fprintln(x.out, "(done)")
		return nil
	}
	return x.trace.Walk(x.cursor)
}

func (x *Explorer) printContext() {
	ctx := x.cursor.Context()
	fmt.Fprintf(x.out, "byte %d, line %d, column %d\n", ctx.Byte, ctx.Line, ctx.Column)
}
