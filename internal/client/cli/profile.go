package cli

import "context"

// Profile prints the current user's account details.
func (a *App) Profile(ctx context.Context) error {
	user := a.session.Current()
	if user == nil {
		printlnFn("Please login first.")
		return nil
	}

	printlnFn("Name: " + user.Name)
	printlnFn("Username: " + user.Username)
	printlnFn("Account Created: " + user.CreatedAt.Format("2006-01-02"))
	return nil
}
