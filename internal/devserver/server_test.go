package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	srv := NewServer(NewStore(), []byte("test-secret"), time.Hour)
	return srv, srv.Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type authBody struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func signupUser(t *testing.T, router *gin.Engine, username, password, name string) authBody {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/signup", "", gin.H{
		"username": username, "password": password, "name": name,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp authBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func submitStory(t *testing.T, router *gin.Engine, token, title, author, url string) StoryResponse {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/stories", token, gin.H{
		"title": title, "author": author, "url": url,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var st StoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.NotEmpty(t, st.StoryID)
	return st
}

func TestSignup_ReturnsTokenAndUser(t *testing.T) {
	_, router := newTestServer(t)

	resp := signupUser(t, router, "ana", "secret", "Ana")
	require.Equal(t, "ana", resp.User.Username)
	require.Equal(t, "Ana", resp.User.Name)
	require.Empty(t, resp.User.Stories)
	require.Empty(t, resp.User.Favorites)
}

func TestSignup_DuplicateUsername_Conflict(t *testing.T) {
	_, router := newTestServer(t)
	signupUser(t, router, "ana", "secret", "Ana")

	w := doJSON(t, router, http.MethodPost, "/api/signup", "", gin.H{
		"username": "ana", "password": "other", "name": "Other",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestSignup_MissingFields_BadRequest(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/signup", "", gin.H{"username": "ana"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_GoodAndBadCredentials(t *testing.T) {
	_, router := newTestServer(t)
	signupUser(t, router, "ana", "secret", "Ana")

	w := doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{
		"username": "ana", "password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{
		"username": "ana", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{
		"username": "nobody", "password": "secret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthedRoutes_RejectMissingOrGarbageToken(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/stories", "", gin.H{"title": "x"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/stories", "not-a-jwt", gin.H{"title": "x"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateStory_AppearsNewestFirst(t *testing.T) {
	_, router := newTestServer(t)
	auth := signupUser(t, router, "ana", "secret", "Ana")

	submitStory(t, router, auth.Token, "First", "Ana", "http://example.com/1")
	second := submitStory(t, router, auth.Token, "Second", "Ana", "http://example.com/2")

	w := doJSON(t, router, http.MethodGet, "/api/stories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stories []StoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stories))
	require.Len(t, stories, 2)
	require.Equal(t, second.StoryID, stories[0].StoryID)
	require.Equal(t, "ana", stories[0].Username)
}

func TestCreateStory_RejectsBlankAndMalformedInput(t *testing.T) {
	_, router := newTestServer(t)
	auth := signupUser(t, router, "ana", "secret", "Ana")

	w := doJSON(t, router, http.MethodPost, "/api/stories", auth.Token, gin.H{
		"title": "  ", "author": "Ana", "url": "http://example.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/stories", auth.Token, gin.H{
		"title": "T", "author": "Ana", "url": "not a url",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteStory_OwnerOnly(t *testing.T) {
	_, router := newTestServer(t)
	ana := signupUser(t, router, "ana", "secret", "Ana")
	bo := signupUser(t, router, "bo", "secret", "Bo")
	st := submitStory(t, router, ana.Token, "Mine", "Ana", "http://example.com")

	w := doJSON(t, router, http.MethodDelete, "/api/stories/"+st.StoryID, bo.Token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/stories/"+st.StoryID, ana.Token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/stories/"+st.StoryID, ana.Token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoriteFlow_ReflectedInProfile(t *testing.T) {
	_, router := newTestServer(t)
	ana := signupUser(t, router, "ana", "secret", "Ana")
	bo := signupUser(t, router, "bo", "secret", "Bo")
	st := submitStory(t, router, ana.Token, "Nice", "Ana", "http://example.com")

	w := doJSON(t, router, http.MethodPost, "/api/stories/"+st.StoryID+"/favorite", bo.Token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/users/bo", bo.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Len(t, profile.Favorites, 1)
	require.Equal(t, st.StoryID, profile.Favorites[0].StoryID)

	w = doJSON(t, router, http.MethodDelete, "/api/stories/"+st.StoryID+"/favorite", bo.Token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/users/bo", bo.Token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Empty(t, profile.Favorites)
}

func TestFavorite_UnknownStory_NotFound(t *testing.T) {
	_, router := newTestServer(t)
	ana := signupUser(t, router, "ana", "secret", "Ana")

	w := doJSON(t, router, http.MethodPost, "/api/stories/missing/favorite", ana.Token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteStory_ScrubsFavorites(t *testing.T) {
	_, router := newTestServer(t)
	ana := signupUser(t, router, "ana", "secret", "Ana")
	bo := signupUser(t, router, "bo", "secret", "Bo")
	st := submitStory(t, router, ana.Token, "Gone soon", "Ana", "http://example.com")

	w := doJSON(t, router, http.MethodPost, "/api/stories/"+st.StoryID+"/favorite", bo.Token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/stories/"+st.StoryID, ana.Token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/users/bo", bo.Token, nil)
	var profile UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Empty(t, profile.Favorites)
}

func TestGetUser_TokenMustMatchPath(t *testing.T) {
	_, router := newTestServer(t)
	ana := signupUser(t, router, "ana", "secret", "Ana")
	signupUser(t, router, "bo", "secret", "Bo")

	w := doJSON(t, router, http.MethodGet, "/api/users/bo", ana.Token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealth_IsPublic(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
