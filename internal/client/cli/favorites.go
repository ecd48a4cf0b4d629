package cli

import (
	"context"
	"os"
)

// Favorite marks a story as a favorite of the current user.
func (a *App) Favorite(ctx context.Context) error {
	user := a.session.Current()
	if user == nil {
		printlnFn("Please login first.")
		return nil
	}

	id, err := getSimpleText(a.reader, "Enter story id to favorite", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.favorites.Add(ctx, user, id); err != nil {
		printlnFn("Favorite failed:", err.Error())
		return err
	}
	return nil
}

// Unfavorite removes a story from the current user's favorites.
func (a *App) Unfavorite(ctx context.Context) error {
	user := a.session.Current()
	if user == nil {
		printlnFn("Please login first.")
		return nil
	}

	id, err := getSimpleText(a.reader, "Enter story id to unfavorite", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.favorites.Remove(ctx, user, id); err != nil {
		printlnFn("Unfavorite failed:", err.Error())
		return err
	}
	return nil
}

// ShowFavorites prints the current user's favorited stories.
func (a *App) ShowFavorites(ctx context.Context) error {
	user := a.session.Current()
	if user == nil {
		printlnFn("Please login first.")
		return nil
	}

	if len(user.Favorites) == 0 {
		printlnFn("You have yet to favorite any stories.")
		return nil
	}
	for _, st := range user.Favorites {
		printlnFn(a.formatStory(st))
	}
	return nil
}
