package cli

import (
	"context"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. On success the session
// is persisted, so the next start of the CLI resumes it without a login.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, username, password)
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn("Welcome, " + user.Name + "!")
	return nil
}

// Register prompts for account details and creates a new account. A
// successful signup behaves like a login: the session is set and
// persisted.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.session.Register(ctx, username, password, name)
	if err != nil {
		printlnFn("Signup failed:", err.Error())
		return err
	}

	printlnFn("Welcome, " + user.Name + "!")
	return nil
}

// Logout drops the persisted session and the in-memory user.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	printlnFn("Logged out.")
	return nil
}
