package services

import (
	"context"

	"github.com/dmitrijs2005/storyfeed/internal/client/client"
	"github.com/dmitrijs2005/storyfeed/internal/client/models"
)

// fakeClient implements client.Client for unit tests. Each method returns
// the configured value/error and records its last arguments.
type fakeClient struct {
	CloseErr error

	LoginUser *models.User
	LoginErr  error

	RegisterUser *models.User
	RegisterErr  error

	FetchUserRet *models.User
	FetchUserErr error

	ListStoriesRet []*models.Story
	ListStoriesErr error

	CreateStoryRet *models.Story
	CreateStoryErr error

	DeleteStoryErr error

	SetFavoriteErr   error
	SetFavoriteCalls int

	PingErr error

	LastLoginUsername string
	LastLoginPassword string

	LastRegisterUsername string
	LastRegisterName     string

	LastFetchToken    string
	LastFetchUsername string

	LastCreateStory client.NewStory

	LastDeletedID string

	LastFavoriteID    string
	LastFavoriteState bool
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Login(ctx context.Context, username, password string) (*models.User, error) {
	f.LastLoginUsername = username
	f.LastLoginPassword = password
	return f.LoginUser, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, username, password, name string) (*models.User, error) {
	f.LastRegisterUsername = username
	f.LastRegisterName = name
	return f.RegisterUser, f.RegisterErr
}

func (f *fakeClient) FetchUser(ctx context.Context, token, username string) (*models.User, error) {
	f.LastFetchToken = token
	f.LastFetchUsername = username
	return f.FetchUserRet, f.FetchUserErr
}

func (f *fakeClient) ListStories(ctx context.Context) ([]*models.Story, error) {
	return f.ListStoriesRet, f.ListStoriesErr
}

func (f *fakeClient) CreateStory(ctx context.Context, story client.NewStory) (*models.Story, error) {
	f.LastCreateStory = story
	return f.CreateStoryRet, f.CreateStoryErr
}

func (f *fakeClient) DeleteStory(ctx context.Context, storyID string) error {
	f.LastDeletedID = storyID
	return f.DeleteStoryErr
}

func (f *fakeClient) SetFavorite(ctx context.Context, storyID string, favorite bool) error {
	f.SetFavoriteCalls++
	f.LastFavoriteID = storyID
	f.LastFavoriteState = favorite
	return f.SetFavoriteErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }
