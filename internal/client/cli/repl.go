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
	isOnline() bool
	List(ctx context.Context) error
	Local(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Publish(ctx context.Context) error
	PublishAt(ctx context.Context, id string) error
	Update(ctx context.Context, id string) error
	Expire(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, ref string) error
	Summarize(ctx context.Context, id string) error
}

// runREPL starts a simple read–eval–print loop for the pastelog CLI.
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
//   - help             — show available commands
//   - (l)ist           — list live records
//   - local            — list records from the mirror only
//   - get <id>         — show a single record
//   - publish          — publish a new record (interactive)
//   - put <id>         — publish at a chosen identifier
//   - update <id>      — edit an existing record
//   - expire <id>      — mark a record expired
//   - delete <id>      — delete a record
//   - import <gist>    — import a GitHub gist
//   - summary <id>     — summarize a record
//   - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("plog> %s > ", statusFn()))
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

		needArg := func(usage string) (string, bool) {
			if len(args) == 0 {
				printlnFn("Usage: " + usage)
				return "", false
			}
			return args[0], true
		}

		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, local, get, publish, put, update, expire, delete, import, summary, exit")
			if !a.isOnline() {
				printlnFn("Currently offline: listings come from the local mirror.")
			}

		case "l", "list":
			_ = a.List(ctx)

		case "local":
			_ = a.Local(ctx)

		case "get", "show":
			if id, ok := needArg("get <id>"); ok {
				_ = a.Show(ctx, id)
			}

		case "publish", "add":
			_ = a.Publish(ctx)

		case "put":
			if id, ok := needArg("put <id>"); ok {
				_ = a.PublishAt(ctx, id)
			}

		case "update":
			if id, ok := needArg("update <id>"); ok {
				_ = a.Update(ctx, id)
			}

		case "expire":
			if id, ok := needArg("expire <id>"); ok {
				_ = a.Expire(ctx, id)
			}

		case "delete":
			if id, ok := needArg("delete <id>"); ok {
				_ = a.Delete(ctx, id)
			}

		case "import":
			if ref, ok := needArg("import <gist id or url>"); ok {
				_ = a.Import(ctx, ref)
			}

		case "summary":
			if id, ok := needArg("summary <id>"); ok {
				_ = a.Summarize(ctx, id)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
