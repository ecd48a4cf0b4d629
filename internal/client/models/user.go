package models

import "time"

// User is the authenticated account as the server reports it.
// OwnStories and Favorites reference stories from the shared catalog by
// identity; they are views, not independent copies.
//
// Token is the opaque credential issued at login. It is never part of the
// server's user payload and is filled in by the session service.
type User struct {
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	Token      string    `json:"-"`
	OwnStories []*Story  `json:"stories"`
	Favorites  []*Story  `json:"favorites"`
}
