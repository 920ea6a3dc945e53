// cmd/eventcore/commands/explore.go
package commands

import (
	"fmt"
	"os"

	"eventcore/internal/cursor"
	"eventcore/internal/explorer"
	"eventcore/internal/wirejson"
)

// ExploreCommand opens an interactive cursor explorer over a single file.
func ExploreCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: eventcore explore <file>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	c := cursor.New(wirejson.New(f))
	x := explorer.New(c, os.Stdout)
	return x.Run(os.Stdin)
}
