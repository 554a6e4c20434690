// Package cli provides the interactive pastelog command-line client.
//
// It wires configuration, the local mirror, the remote gateway, and an
// interactive REPL that supports online/offline operation. Typical flow:
// open the mirror, start a background connectivity watcher, and execute
// user commands.
//
// Key features:
//   - List records (remote with mirror resync, or mirror-only when offline)
//   - Show / publish / update / expire / delete records
//   - Import GitHub gists as new records
//   - Summarize a record's contents
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
