package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	New(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) error
	Export(ctx context.Context, format string) error
	Import(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the journal CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	- help             — show available commands
//	- new | n          — record a new thought
//	- list | l         — list thoughts grouped by day
//	- show [id]        — show a single thought (interactive id prompt)
//	- delete [id]      — delete a thought
//	- count            — report how many thoughts are stored
//	- export [format]  — export as md, csv, json or archive (default)
//	- import           — replace the journal from an archive string
//	- exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cbt %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: (n)ew, (l)ist, show, delete, count, export [md|csv|json|archive], import, exit")

		case "n", "new":
			_ = a.New(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx, firstArg(args))

		case "delete", "del":
			_ = a.Delete(ctx, firstArg(args))

		case "count":
			_ = a.Count(ctx)

		case "export":
			format := "archive"
			if len(args) > 0 {
				format = args[0]
			}
			_ = a.Export(ctx, format)

		case "import":
			_ = a.Import(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
