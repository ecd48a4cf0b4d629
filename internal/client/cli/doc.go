// Package cli provides the interactive storyfeed command-line client.
//
// It wires configuration, the local session database, the API client and
// the sync services into an interactive REPL. Typical flow: restore the
// persisted session, load the shared story list, then execute user
// commands.
//
// Key features:
//   - Login / Signup / Logout with a session that survives restarts
//   - Browse the shared story list, submit and delete own stories
//   - Favorite / unfavorite stories and list favorites
//
// The REPL is started via App.Run(ctx), which blocks until the user
// exits. See App and runREPL for details.
package cli
