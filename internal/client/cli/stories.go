package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/storyfeed/internal/client/client"
	"github.com/dmitrijs2005/storyfeed/internal/client/models"
)

// formatStory renders one story line. The leading star mirrors the
// favorite state for the current user.
func (a *App) formatStory(st *models.Story) string {
	star := " "
	if a.favorites.IsFavorite(a.session.Current(), st.ID) {
		star = "*"
	}
	return fmt.Sprintf("[%s] %s  %s (%s) by %s, posted by %s",
		star, st.ID, st.Title, st.Hostname(), st.Author, st.Username)
}

// ShowStories refreshes the shared story list from the server and prints
// it, newest first.
func (a *App) ShowStories(ctx context.Context) error {
	stories, err := a.catalog.LoadAll(ctx)
	if err != nil {
		printlnFn("Could not load stories:", err.Error())
		return err
	}
	for _, st := range stories {
		printlnFn(a.formatStory(st))
	}
	return nil
}

// Submit collects story fields and posts a new story. The story appears
// at the top of the list once the server has acknowledged it.
func (a *App) Submit(ctx context.Context) error {
	user := a.session.Current()
	if user == nil {
		printlnFn("Please login first.")
		return nil
	}

	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	author, err := getSimpleText(a.reader, "Enter author", os.Stdout)
	if err != nil {
		return err
	}
	url, err := getSimpleText(a.reader, "Enter URL", os.Stdout)
	if err != nil {
		return err
	}

	st, err := a.catalog.AddStory(ctx, user, client.NewStory{Title: title, Author: author, URL: url})
	if err != nil {
		printlnFn("Submit failed:", err.Error())
		return err
	}

	printlnFn("Submitted as " + st.ID)
	return nil
}

// Delete removes one of the current user's own stories.
func (a *App) Delete(ctx context.Context) error {
	user := a.session.Current()
	if user == nil {
		printlnFn("Please login first.")
		return nil
	}

	id, err := getSimpleText(a.reader, "Enter story id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.catalog.RemoveStory(ctx, user, id); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}

	printlnFn("Deleted.")
	return nil
}

// ShowMyStories prints the stories authored by the current user.
func (a *App) ShowMyStories(ctx context.Context) error {
	user := a.session.Current()
	if user == nil {
		printlnFn("Please login first.")
		return nil
	}

	if len(user.OwnStories) == 0 {
		printlnFn("You have yet to add any stories.")
		return nil
	}
	for _, st := range user.OwnStories {
		printlnFn(a.formatStory(st))
	}
	return nil
}
