package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyloom.com/storyloom/engine"
	"storyloom.com/storyloom/routes"
	"storyloom.com/storyloom/store"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st := store.NewMemory()
	eng := engine.New(st, nil, log.New(io.Discard, "", 0))

	router := mux.NewRouter()
	routes.CreateAuthRoutes(st, testSecret, router)
	routes.CreateUserRoutes(st, eng, testSecret, router)
	routes.CreateStoryRoutes(eng, testSecret, router)
	routes.CreateChapterRoutes(eng, testSecret, router)
	routes.CreateNotificationRoutes(eng, testSecret, router)
	routes.CreateAnnouncementRoutes(eng, testSecret, router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func registerUser(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()

	resp, body := doJSON(t, srv, "POST", "/auth/register", "", map[string]any{
		"username":     username,
		"display_name": username,
		"email":        username + "@example.com",
		"password":     "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token, ok := body["token"].(string)
	require.True(t, ok, "register response should carry a token")
	return token
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "aria")

	resp, body := doJSON(t, srv, "POST", "/auth/login", "", map[string]any{
		"username": "aria",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, _ = doJSON(t, srv, "POST", "/auth/login", "", map[string]any{
		"username": "aria",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDuplicateUsernameRejected(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "aria")

	resp, _ := doJSON(t, srv, "POST", "/auth/register", "", map[string]any{
		"username": "aria",
		"email":    "other@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateStoryRequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, srv, "POST", "/stories", "", map[string]any{"title": "Ashfall"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStoryLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "aria")

	resp, story := doJSON(t, srv, "POST", "/stories", token, map[string]any{
		"title": "Ashfall",
		"genre": "fantasy",
		"tags":  []string{"dragons"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	storyID := int64(story["id"].(float64))

	// Drafts are invisible to anonymous browsers.
	resp, _ = doJSON(t, srv, "GET", fmt.Sprintf("/stories/%d", storyID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Publishing a chapter without publishing the story is a conflict.
	resp, _ = doJSON(t, srv, "POST", fmt.Sprintf("/stories/%d/chapters", storyID), token, map[string]any{
		"title":   "One",
		"content": "it begins",
		"publish": true,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The combined path publishes story and first chapter together.
	resp, chapter := doJSON(t, srv, "POST", fmt.Sprintf("/stories/%d/chapters", storyID), token, map[string]any{
		"title":             "One",
		"content":           "it begins",
		"publish":           true,
		"publish_story_too": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	chapterID := int64(chapter["id"].(float64))

	resp, fetched := doJSON(t, srv, "GET", fmt.Sprintf("/stories/%d", storyID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, fetched["is_published"])

	// Anonymous views are accepted.
	resp, _ = doJSON(t, srv, "POST", fmt.Sprintf("/chapters/%d/view", chapterID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Likes are not.
	resp, _ = doJSON(t, srv, "POST", fmt.Sprintf("/chapters/%d/like", chapterID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	reader := registerUser(t, srv, "bren")
	resp, likeBody := doJSON(t, srv, "POST", fmt.Sprintf("/chapters/%d/like", chapterID), reader, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, likeBody["liked"])
}

func TestFollowAndNotificationFlow(t *testing.T) {
	srv := newTestServer(t)
	author := registerUser(t, srv, "aria")
	follower := registerUser(t, srv, "bren")

	// bren follows aria (user ID 1).
	resp, body := doJSON(t, srv, "POST", "/users/1/follow", follower, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["following"])

	resp, story := doJSON(t, srv, "POST", "/stories", author, map[string]any{"title": "Ashfall"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	storyID := int64(story["id"].(float64))

	resp, _ = doJSON(t, srv, "POST", fmt.Sprintf("/stories/%d/chapters", storyID), author, map[string]any{
		"title":             "One",
		"content":           "words",
		"publish":           true,
		"publish_story_too": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, count := doJSON(t, srv, "GET", "/notifications/unread-count", follower, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), count["unread_count"])

	resp, _ = doJSON(t, srv, "POST", "/notifications/read-all", follower, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, count = doJSON(t, srv, "GET", "/notifications/unread-count", follower, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), count["unread_count"])
}

func TestDeleteStoryForbiddenForStranger(t *testing.T) {
	srv := newTestServer(t)
	author := registerUser(t, srv, "aria")
	stranger := registerUser(t, srv, "bren")

	resp, story := doJSON(t, srv, "POST", "/stories", author, map[string]any{"title": "Ashfall"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	storyID := int64(story["id"].(float64))

	resp, _ = doJSON(t, srv, "DELETE", fmt.Sprintf("/stories/%d", storyID), stranger, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
