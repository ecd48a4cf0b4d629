// Package devserver implements the storyfeed API contract as a small
// in-memory development server. It exists so the CLI client can be run
// and tested end to end without production infrastructure; state does
// not survive a restart.
package devserver

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Server wires the HTTP routes to the in-memory store and issues JWT
// bearer tokens.
type Server struct {
	store    *Store
	secret   []byte
	tokenTTL time.Duration
}

func NewServer(store *Store, secret []byte, tokenTTL time.Duration) *Server {
	return &Server{store: store, secret: secret, tokenTTL: tokenTTL}
}

// Router builds the gin engine with all API routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	s.RegisterRoutes(router)
	return router
}

func (s *Server) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/signup", s.signup)
		api.POST("/login", s.login)
		api.GET("/stories", s.listStories)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		authed := api.Group("")
		authed.Use(s.authMiddleware())
		{
			authed.GET("/users/:username", s.getUser)
			authed.POST("/stories", s.createStory)
			authed.DELETE("/stories/:id", s.deleteStory)
			authed.POST("/stories/:id/favorite", s.favorite)
			authed.DELETE("/stories/:id/favorite", s.unfavorite)
		}
	}
}

const userKey = "username"

// authMiddleware validates the bearer token and stores the authenticated
// username in the request context.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		username, err := usernameFromToken(token, s.secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if _, err := s.store.GetUser(username); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}

		c.Set(userKey, username)
		c.Next()
	}
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user, err := s.store.CreateUser(strings.TrimSpace(req.Username), strings.TrimSpace(req.Name), hash)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.issueToken(c, user)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.store.GetUser(req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	s.issueToken(c, user)
}

func (s *Server) issueToken(c *gin.Context, user *User) {
	token, err := generateToken(user.Username, s.secret, s.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": s.userResponse(user.Username)})
}

func (s *Server) getUser(c *gin.Context) {
	username := c.Param("username")
	if username != c.GetString(userKey) {
		c.JSON(http.StatusForbidden, gin.H{"error": "token does not match user"})
		return
	}

	c.JSON(http.StatusOK, s.userResponse(username))
}

func (s *Server) listStories(c *gin.Context) {
	stories := s.store.ListStories()

	resp := make([]StoryResponse, len(stories))
	for i, st := range stories {
		resp[i] = storyToResponse(st)
	}
	c.JSON(http.StatusOK, resp)
}

type createStoryRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

func (s *Server) createStory(c *gin.Context) {
	var req createStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	req.URL = strings.TrimSpace(req.URL)
	if req.Title == "" || req.Author == "" || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, author and url are required"})
		return
	}
	if u, err := url.Parse(req.URL); err != nil || u.Scheme == "" || u.Host == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed url"})
		return
	}

	story := &Story{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Author:    req.Author,
		URL:       req.URL,
		Username:  c.GetString(userKey),
		CreatedAt: time.Now().UTC(),
	}
	s.store.AddStory(story)

	c.JSON(http.StatusCreated, storyToResponse(story))
}

func (s *Server) deleteStory(c *gin.Context) {
	err := s.store.DeleteStory(c.Param("id"), c.GetString(userKey))
	switch {
	case errors.Is(err, ErrUnknownStory):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) favorite(c *gin.Context) {
	s.setFavorite(c, true)
}

func (s *Server) unfavorite(c *gin.Context) {
	s.setFavorite(c, false)
}

func (s *Server) setFavorite(c *gin.Context, favorite bool) {
	err := s.store.SetFavorite(c.GetString(userKey), c.Param("id"), favorite)
	switch {
	case errors.Is(err, ErrUnknownStory):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusNoContent)
	}
}

// StoryResponse and UserResponse mirror the wire shapes the client
// unmarshals into its models.
type StoryResponse struct {
	StoryID   string    `json:"storyId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserResponse struct {
	Username  string          `json:"username"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"createdAt"`
	Stories   []StoryResponse `json:"stories"`
	Favorites []StoryResponse `json:"favorites"`
}

func storyToResponse(st *Story) StoryResponse {
	return StoryResponse{
		StoryID:   st.ID,
		Title:     st.Title,
		Author:    st.Author,
		URL:       st.URL,
		Username:  st.Username,
		CreatedAt: st.CreatedAt,
	}
}

func (s *Server) userResponse(username string) UserResponse {
	user, err := s.store.GetUser(username)
	if err != nil {
		return UserResponse{Username: username}
	}

	own := s.store.OwnStories(username)
	favs := s.store.FavoriteStories(username)

	resp := UserResponse{
		Username:  user.Username,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		Stories:   make([]StoryResponse, len(own)),
		Favorites: make([]StoryResponse, len(favs)),
	}
	for i, st := range own {
		resp.Stories[i] = storyToResponse(st)
	}
	for i, st := range favs {
		resp.Favorites[i] = storyToResponse(st)
	}
	return resp
}
