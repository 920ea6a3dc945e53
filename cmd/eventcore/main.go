// cmd/eventcore/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"eventcore/cmd/eventcore/commands"
	"eventcore/internal/bignum"
)

const version = "0.1.0"

var commandAliases = map[string]string{
	"d": "dump",
	"s": "serve",
	"x": "explore",
	"v": "version",
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches a single command and returns the process exit code,
// separated from main so testscript can drive it as an in-process binary.
func run(args []string) int {
	args, err := applyFFTThreshold(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	if len(args) == 0 {
		showUsage()
		return 0
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		showUsage()
		return 0
	case "--version", "-v", "version":
		fmt.Printf("eventcore %s\n", version)
		return 0
	case "dump":
		if err := commands.DumpCommand(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "dump: %v\n", err)
			return 1
		}
		return 0
	case "serve":
		if err := commands.ServeCommand(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "serve: %v\n", err)
			return 1
		}
		return 0
	case "explore":
		if err := commands.ExploreCommand(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "explore: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		showUsage()
		return 1
	}
}

// applyFFTThreshold pulls a leading "--fft-threshold <n>" or
// "--fft-threshold=<n>" off args, if present, and applies it to
// bignum.SetFFTThreshold before any subcommand runs.
func applyFFTThreshold(args []string) ([]string, error) {
	if len(args) == 0 {
		return args, nil
	}
	arg := args[0]
	var raw string
	var rest []string
	switch {
	case arg == "--fft-threshold":
		if len(args) < 2 {
			return nil, fmt.Errorf("--fft-threshold requires a value")
		}
		raw, rest = args[1], args[2:]
	case strings.HasPrefix(arg, "--fft-threshold="):
		raw, rest = strings.TrimPrefix(arg, "--fft-threshold="), args[1:]
	default:
		return args, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("--fft-threshold: %v", err)
	}
	bignum.SetFFTThreshold(n)
	return rest, nil
}

func showUsage() {
	fmt.Println("eventcore - event-stream core CLI")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  eventcore --fft-threshold <n> ...  Override the bignum FFT-multiply digit threshold")
	fmt.Println("  eventcore dump <file...>           Decode and trace one or more files     (alias: d)")
	fmt.Println("    --record <dsn>                    Record the session to a provenance store")
	fmt.Println("    --digest                          Print the blake2b sub-tree digest")
	fmt.Println("  eventcore serve <addr> <file>       Relay a file over a websocket           (alias: s)")
	fmt.Println("  eventcore explore <file>            Open the interactive cursor explorer    (alias: x)")
	fmt.Println("  eventcore version                   Show version                            (alias: v)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  eventcore dump testdata/sample.json")
	fmt.Println("  eventcore dump --record sqlite://sessions.db a.json b.json")
	fmt.Println("  eventcore serve :8080 sample.json")
}
