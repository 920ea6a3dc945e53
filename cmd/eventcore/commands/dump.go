// cmd/eventcore/commands/dump.go
package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"eventcore/internal/cursor"
	"eventcore/internal/provenance"
	"eventcore/internal/trace"
	"eventcore/internal/wirejson"
)

// DumpCommand decodes and traces one or more files, one cursor per file,
// processed concurrently when more than one path is given. Recognized
// flags, which may appear anywhere before the file paths:
//
//	--record <dsn>   record each session to a provenance store
//	--digest         print the blake2b sub-tree digest after each file
func DumpCommand(args []string) error {
	var recordDSN string
	var digest bool
	var paths []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--record":
			if i+1 >= len(args) {
				return fmt.Errorf("--record requires a dsn argument")
			}
			i++
			recordDSN = args[i]
		case "--digest":
			digest = true
		default:
			paths = append(paths, args[i])
		}
	}

	if len(paths) == 0 {
		return fmt.Errorf("usage: eventcore dump [--record <dsn>] [--digest] <file...>")
	}

	var store *provenance.Store
	if recordDSN != "" {
		backend, dsn, err := splitDSN(recordDSN)
		if err != nil {
			return err
		}
		store, err = provenance.Open(backend, dsn)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Migrate(context.Background()); err != nil {
			return err
		}
	}

	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	g, ctx := errgroup.WithContext(context.Background())
	var stdoutMu sync.Mutex
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return dumpOne(ctx, path, store, digest, color, &stdoutMu)
		})
	}
	return g.Wait()
}

// dumpOne decodes path fully before touching the real stdout: every goroutine
// writes its header and trace lines into a private buffer, then flushes that
// buffer to os.Stdout as one block under stdoutMu. One cursor per file is
// fully sequential internally, but stdout is a single shared sink, so the
// per-file blocks still need serializing against each other. color is
// resolved once against the real os.Stdout, since the buffer itself is
// never a terminal trace.New could detect.
func dumpOne(ctx context.Context, path string, store *provenance.Store, wantDigest, color bool, stdoutMu *sync.Mutex) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var c *cursor.Cursor
	if wantDigest {
		c = cursor.NewDigestingCursor(wirejson.New(f))
	} else {
		c = cursor.New(wirejson.New(f))
	}

	var buf bytes.Buffer
	defer func() {
		stdoutMu.Lock()
		defer stdoutMu.Unlock()
		os.Stdout.Write(buf.Bytes())
	}()

	formatter := trace.NewColored(&buf, color)

	var rec *provenance.Recorder
	if store != nil {
		rec, err = provenance.Begin(ctx, store, path)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(&buf, "==> %s\n", path)
	for !c.Done() {
		if err := c.Next(); err != nil {
			return err
		}
		if c.Done() {
			break
		}
		e, ok := c.Current()
		if !ok {
			continue
		}
		formatter.WriteEvent(e)
		if rec != nil {
			rec.Observe(e)
		}
	}

	if wantDigest {
		if sum := c.Digest(); sum != nil {
			fmt.Fprintf(&buf, "digest: %x\n", sum)
		}
	}

	if rec != nil {
		if err := rec.Finish(ctx, c.Digest()); err != nil {
			return err
		}
	}
	return nil
}

// splitDSN reads the scheme prefix off dsn to choose a provenance backend
// name, the same scheme-prefix convention database connection strings use.
// Drivers that expect a bare path or host string (sqlite, mysql) get the
// scheme stripped; drivers that parse their own URL form (postgres,
// sqlserver) get the dsn back unchanged.
func splitDSN(dsn string) (backend, rest string, err error) {
	idx := strings.Index(dsn, "://")
	if idx < 0 {
		return "", "", fmt.Errorf("dsn %q must be of the form backend://...", dsn)
	}
	scheme := dsn[:idx]
	switch scheme {
	case "sqlite3", "sqlite", "mysql":
		return scheme, dsn[idx+len("://"):], nil
	case "postgres", "postgresql":
		return "postgres", dsn, nil
	case "sqlserver", "mssql":
		return "sqlserver", dsn, nil
	default:
		return "", "", fmt.Errorf("dsn %q: unrecognized backend scheme %q", dsn, scheme)
	}
}
