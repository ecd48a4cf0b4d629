package devserver

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrUserExists   = errors.New("username already taken")
	ErrUnknownUser  = errors.New("unknown user")
	ErrUnknownStory = errors.New("unknown story")
	ErrNotOwner     = errors.New("not the story owner")
)

// User is a stored account. Favorites holds story IDs in the order they
// were favorited.
type User struct {
	Username     string
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
	Favorites    []string
}

// Story is one stored feed entry.
type Story struct {
	ID        string
	Title     string
	Author    string
	URL       string
	Username  string
	CreatedAt time.Time
}

// Store is the in-memory backing state of the development server. Unlike
// the client core, HTTP handlers run concurrently, so every access goes
// through the mutex.
type Store struct {
	mu      sync.RWMutex
	users   map[string]*User
	stories []*Story // newest first
}

func NewStore() *Store {
	return &Store{users: make(map[string]*User)}
}

func (s *Store) CreateUser(username, name string, passwordHash []byte) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return nil, ErrUserExists
	}
	u := &User{
		Username:     username,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[username] = u
	return u, nil
}

func (s *Store) GetUser(username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, ErrUnknownUser
	}
	return u, nil
}

// AddStory prepends the story so listings come out newest first.
func (s *Store) AddStory(st *Story) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stories = append([]*Story{st}, s.stories...)
}

func (s *Store) ListStories() []*Story {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Story, len(s.stories))
	copy(out, s.stories)
	return out
}

func (s *Store) GetStory(id string) (*Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, st := range s.stories {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, ErrUnknownStory
}

// DeleteStory removes the story if username owns it, and scrubs its ID
// from every user's favorites so no dangling reference survives.
func (s *Store) DeleteStory(id, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, st := range s.stories {
		if st.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownStory
	}
	if s.stories[idx].Username != username {
		return ErrNotOwner
	}

	s.stories = append(s.stories[:idx], s.stories[idx+1:]...)
	for _, u := range s.users {
		u.Favorites = withoutID(u.Favorites, id)
	}
	return nil
}

// SetFavorite records or removes the (user, story) favorite relation.
// Both directions are idempotent.
func (s *Store) SetFavorite(username, storyID string, favorite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return ErrUnknownUser
	}
	found := false
	for _, st := range s.stories {
		if st.ID == storyID {
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownStory
	}

	if !favorite {
		u.Favorites = withoutID(u.Favorites, storyID)
		return nil
	}
	for _, id := range u.Favorites {
		if id == storyID {
			return nil
		}
	}
	u.Favorites = append(u.Favorites, storyID)
	return nil
}

// OwnStories returns the stories authored by username, newest first.
func (s *Store) OwnStories(username string) []*Story {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Story
	for _, st := range s.stories {
		if st.Username == username {
			out = append(out, st)
		}
	}
	return out
}

// FavoriteStories resolves the user's favorite IDs against the current
// story list, in favoriting order.
func (s *Store) FavoriteStories(username string) []*Story {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil
	}
	var out []*Story
	for _, id := range u.Favorites {
		for _, st := range s.stories {
			if st.ID == id {
				out = append(out, st)
				break
			}
		}
	}
	return out
}

func withoutID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
