package session

import "context"

// Credentials is the persisted session: the opaque token issued at login
// and the username it belongs to.
type Credentials struct {
	Token    string
	Username string
}

// Repository stores at most one set of credentials across restarts.
// Get returns (nil, nil) when no complete session is stored; a token
// without a username (or vice versa) counts as absent.
type Repository interface {
	Get(ctx context.Context) (*Credentials, error)
	Set(ctx context.Context, token, username string) error
	Clear(ctx context.Context) error
}
