package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storyfeed/internal/client/client"
	"github.com/dmitrijs2005/storyfeed/internal/client/models"
)

// FavoritesService maintains the (user, story) favorite relation. The
// user's favorites list holds references into the catalog snapshot, never
// copies, so a story deleted from the catalog cannot linger as a stale
// duplicate.
type FavoritesService interface {
	Add(ctx context.Context, user *models.User, storyID string) error
	Remove(ctx context.Context, user *models.User, storyID string) error
	IsFavorite(user *models.User, storyID string) bool
}

type favoritesService struct {
	client  client.Client
	catalog CatalogService
}

func NewFavoritesService(client client.Client, catalog CatalogService) FavoritesService {
	return &favoritesService{client: client, catalog: catalog}
}

// IsFavorite is a pure local lookup. Anonymous callers are legal and
// always get false.
func (s *favoritesService) IsFavorite(user *models.User, storyID string) bool {
	if user == nil {
		return false
	}
	for _, st := range user.Favorites {
		if st.ID == storyID {
			return true
		}
	}
	return false
}

// Add marks the story as a favorite of the user. Adding an existing
// favorite is a no-op.
func (s *favoritesService) Add(ctx context.Context, user *models.User, storyID string) error {
	if user == nil {
		return client.ErrUnauthorized
	}
	if s.IsFavorite(user, storyID) {
		return nil
	}

	st := s.catalog.Get(storyID)
	if st == nil {
		return fmt.Errorf("favorite %s: %w", storyID, client.ErrNotFound)
	}

	if err := s.client.SetFavorite(ctx, storyID, true); err != nil {
		return fmt.Errorf("favorite %s: %w", storyID, err)
	}

	user.Favorites = append(user.Favorites, st)
	return nil
}

// Remove unmarks the story. Removing a story that is not favorited is a
// no-op.
func (s *favoritesService) Remove(ctx context.Context, user *models.User, storyID string) error {
	if user == nil {
		return client.ErrUnauthorized
	}
	if !s.IsFavorite(user, storyID) {
		return nil
	}

	if err := s.client.SetFavorite(ctx, storyID, false); err != nil {
		return fmt.Errorf("unfavorite %s: %w", storyID, err)
	}

	user.Favorites = withoutStory(user.Favorites, storyID)
	return nil
}
