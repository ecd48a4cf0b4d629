package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/storyfeed/internal/client/models"
)

// HTTPClient talks JSON over HTTP to the storyfeed API. After a successful
// Login, Register or FetchUser it keeps the issued bearer token and attaches
// it to every subsequent request.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Token returns the currently held session credential, empty if anonymous.
func (c *HTTPClient) Token() string {
	return c.token
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.User, error) {
	var resp authResponse
	req := credentialsRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/login", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	resp.User.Token = resp.Token
	return resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password, name string) (*models.User, error) {
	var resp authResponse
	req := credentialsRequest{Username: username, Password: password, Name: name}
	if err := c.do(ctx, http.MethodPost, "/api/signup", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	resp.User.Token = resp.Token
	return resp.User, nil
}

func (c *HTTPClient) FetchUser(ctx context.Context, token, username string) (*models.User, error) {
	prev := c.token
	c.token = token

	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(username), nil, &user); err != nil {
		c.token = prev
		return nil, err
	}
	user.Token = token
	return &user, nil
}

func (c *HTTPClient) ListStories(ctx context.Context) ([]*models.Story, error) {
	var stories []*models.Story
	if err := c.do(ctx, http.MethodGet, "/api/stories", nil, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (c *HTTPClient) CreateStory(ctx context.Context, story NewStory) (*models.Story, error) {
	var created models.Story
	if err := c.do(ctx, http.MethodPost, "/api/stories", story, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) DeleteStory(ctx context.Context, storyID string) error {
	return c.do(ctx, http.MethodDelete, "/api/stories/"+url.PathEscape(storyID), nil, nil)
}

func (c *HTTPClient) SetFavorite(ctx context.Context, storyID string, favorite bool) error {
	path := "/api/stories/" + url.PathEscape(storyID) + "/favorite"
	method := http.MethodPost
	if !favorite {
		method = http.MethodDelete
	}
	return c.do(ctx, method, path, nil, nil)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do performs one request/response round trip. A nil 'out' discards the
// response body; a nil 'in' sends no body. Transport failures map to
// ErrUnavailable, HTTP error statuses to the package sentinels.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapStatus(resp.StatusCode, resp.Body)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapStatus(code int, body io.Reader) error {
	var er errorResponse
	_ = json.NewDecoder(body).Decode(&er)
	msg := er.Error
	if msg == "" {
		msg = http.StatusText(code)
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	default:
		return fmt.Errorf("unexpected status %d: %s", code, msg)
	}
}
