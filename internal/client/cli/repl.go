package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can provide
// a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	ShowStories(ctx context.Context) error
	Submit(ctx context.Context) error
	Delete(ctx context.Context) error
	Favorite(ctx context.Context) error
	Unfavorite(ctx context.Context) error
	ShowFavorites(ctx context.Context) error
	ShowMyStories(ctx context.Context) error
	Profile(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the storyfeed CLI.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Commands available to anonymous users: help, login, signup, stories,
// exit. Logged-in users additionally get: submit, delete, fav, unfav,
// favorites, mine, profile, logout.
//
// Any errors returned by command handlers are ignored here; handlers
// print their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("storyfeed (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (s)tories, submit, delete, fav, unfav, favorites, mine, profile, logout, exit")
			} else {
				printlnFn("Available commands: (s)tories, login, signup, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup", "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "s", "stories":
			_ = a.ShowStories(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "fav":
			_ = a.Favorite(ctx)

		case "unfav":
			_ = a.Unfavorite(ctx)

		case "favorites":
			_ = a.ShowFavorites(ctx)

		case "mine", "mystories":
			_ = a.ShowMyStories(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
