package models

import (
	"strings"
	"time"
)

// Story is one entry of the shared feed. The ID is assigned by the server;
// Username identifies the owner and never changes after creation.
type Story struct {
	ID        string    `json:"storyId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Hostname extracts the host part of the story URL for display,
// e.g. "http://www.example.com/a/b" -> "example.com". Malformed URLs
// degrade to their first path segment rather than failing.
func (s *Story) Hostname() string {
	host := s.URL
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.Index(host, "/"); i >= 0 {
		host = host[:i]
	}
	host = strings.TrimPrefix(host, "www.")
	return host
}
