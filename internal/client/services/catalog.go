package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storyfeed/internal/client/client"
	"github.com/dmitrijs2005/storyfeed/internal/client/models"
)

// CatalogService owns the canonical local snapshot of the shared story
// collection, ordered most-recent-first. Membership always reflects the
// last server acknowledgment: AddStory prepends only after the server
// returned the created story, RemoveStory deletes only after the server
// confirmed the delete.
//
// AddStory and RemoveStory require an authenticated user; calling them
// with a nil user is a programming error and panics.
type CatalogService interface {
	LoadAll(ctx context.Context) ([]*models.Story, error)
	Stories() []*models.Story
	Get(storyID string) *models.Story
	AddStory(ctx context.Context, user *models.User, story client.NewStory) (*models.Story, error)
	RemoveStory(ctx context.Context, user *models.User, storyID string) error
}

type catalogService struct {
	client  client.Client
	stories []*models.Story
}

func NewCatalogService(client client.Client) CatalogService {
	return &catalogService{client: client}
}

// LoadAll replaces the local snapshot wholesale with the server's list.
func (s *catalogService) LoadAll(ctx context.Context) ([]*models.Story, error) {
	stories, err := s.client.ListStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stories: %w", err)
	}
	s.stories = stories
	return stories, nil
}

func (s *catalogService) Stories() []*models.Story {
	return s.stories
}

func (s *catalogService) Get(storyID string) *models.Story {
	for _, st := range s.stories {
		if st.ID == storyID {
			return st
		}
	}
	return nil
}

func (s *catalogService) AddStory(ctx context.Context, user *models.User, story client.NewStory) (*models.Story, error) {
	if user == nil {
		panic("catalog: AddStory called without an authenticated user")
	}

	created, err := s.client.CreateStory(ctx, story)
	if err != nil {
		return nil, fmt.Errorf("add story: %w", err)
	}

	s.stories = append([]*models.Story{created}, s.stories...)
	user.OwnStories = append([]*models.Story{created}, user.OwnStories...)
	return created, nil
}

func (s *catalogService) RemoveStory(ctx context.Context, user *models.User, storyID string) error {
	if user == nil {
		panic("catalog: RemoveStory called without an authenticated user")
	}

	if err := s.client.DeleteStory(ctx, storyID); err != nil {
		return fmt.Errorf("remove story: %w", err)
	}

	s.stories = withoutStory(s.stories, storyID)
	user.OwnStories = withoutStory(user.OwnStories, storyID)
	// A deleted story must not survive in any cached view.
	user.Favorites = withoutStory(user.Favorites, storyID)
	return nil
}

func withoutStory(stories []*models.Story, storyID string) []*models.Story {
	out := stories[:0]
	for _, st := range stories {
		if st.ID != storyID {
			out = append(out, st)
		}
	}
	return out
}
