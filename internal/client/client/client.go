package client

import (
	"context"

	"github.com/dmitrijs2005/storyfeed/internal/client/models"
)

// NewStory carries the user-supplied fields of a story submission.
// The server assigns the ID, the owner and the creation timestamp.
type NewStory struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// Client is the remote API surface the sync services consume.
// Implementations must return the package sentinel errors
// (ErrUnauthorized, ErrValidation, ErrNotFound, ErrUnavailable) so
// callers can branch with errors.Is.
type Client interface {
	Close() error
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, username, password, name string) (*models.User, error)
	FetchUser(ctx context.Context, token, username string) (*models.User, error)
	ListStories(ctx context.Context) ([]*models.Story, error)
	CreateStory(ctx context.Context, story NewStory) (*models.Story, error)
	DeleteStory(ctx context.Context, storyID string) error
	SetFavorite(ctx context.Context, storyID string, favorite bool) error
	Ping(ctx context.Context) error
}
