// Package services contains the application services of the storyfeed
// client: session lifecycle, the shared story catalog, and the per-user
// favorites view. All remote calls go through client.Client; local state
// is mutated only after the server has confirmed the operation
// (write-through), so a failed call never leaves anything to roll back.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storyfeed/internal/client/client"
	"github.com/dmitrijs2005/storyfeed/internal/client/models"
	"github.com/dmitrijs2005/storyfeed/internal/client/repositories/session"
)

// SessionService owns the single current-user slot and the persisted
// session credential.
//
// Contract:
//   - Login/Register: authenticate against the server, persist
//     {token, username}, then set the current user.
//   - Restore: rebuild the session from persisted credentials on startup;
//     a rejected token yields an anonymous session, not an error.
//   - Logout: clear the persisted credentials, then the current user.
//   - Current: the authenticated user, nil when anonymous.
type SessionService interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, username, password, name string) (*models.User, error)
	Restore(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	Current() *models.User
}

type sessionService struct {
	client   client.Client
	sessions session.Repository
	current  *models.User
}

func NewSessionService(client client.Client, sessions session.Repository) SessionService {
	return &sessionService{client: client, sessions: sessions}
}

func (s *sessionService) Current() *models.User {
	return s.current
}

// activate persists the issued credentials and only then installs the
// user as current, so a persistence failure leaves the session untouched.
func (s *sessionService) activate(ctx context.Context, u *models.User) error {
	if err := s.sessions.Set(ctx, u.Token, u.Username); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.current = u
	return nil
}

func (s *sessionService) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if err := s.activate(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *sessionService) Register(ctx context.Context, username, password, name string) (*models.User, error) {
	u, err := s.client.Register(ctx, username, password, name)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	if err := s.activate(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Restore rebuilds the session from the persisted credentials. It returns
// (nil, nil) when no credentials are stored or when the server rejects the
// token — an expired session is a normal startup condition, not a fault.
// The stale credentials are deliberately left in place in the latter case.
func (s *sessionService) Restore(ctx context.Context) (*models.User, error) {
	creds, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if creds == nil {
		return nil, nil
	}

	u, err := s.client.FetchUser(ctx, creds.Token, creds.Username)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return nil, nil
		}
		return nil, fmt.Errorf("restore session: %w", err)
	}

	s.current = u
	return u, nil
}

// Logout clears the persisted credentials before dropping the current
// user, so a subsequent restore can never observe a half-cleared session.
func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.current = nil
	return nil
}
