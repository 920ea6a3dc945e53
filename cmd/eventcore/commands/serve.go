// cmd/eventcore/commands/serve.go
package commands

import (
	"fmt"
	"net/http"
	"os"

	"eventcore/internal/cursor"
	"eventcore/internal/streamnet"
	"eventcore/internal/wirejson"
)

// ServeCommand starts a one-shot websocket relay for a single file:
// "eventcore serve <addr> <file>" listens on addr and, for every
// connection, decodes file and relays its events as streamnet frames.
func ServeCommand(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: eventcore serve <addr> <file>")
	}
	addr, path := args[0], args[1]

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		f, err := os.Open(path)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer f.Close()

		relay, err := streamnet.Accept(w, r)
		if err != nil {
			return
		}
		defer relay.Close()

		c := cursor.New(wirejson.New(f))
		if err := relay.Send(c); err != nil {
			fmt.Fprintf(os.Stderr, "serve: %v\n", err)
		}
	})

	fmt.Printf("eventcore serve: relaying %s on %s\n", path, addr)
	return http.ListenAndServe(addr, nil)
}
