package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h, err := New()
	require.NoError(t, err)
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func TestSpecIsServedAsJSON(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, SpecPath, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)

	for _, path := range []string{
		"/users", "/users/{user_id}", "/users/{user_id}/friends", "/users/{user_id}/friends/{friend_id}",
		"/users/{user_id}/mutual-friends/{other_id}", "/users/{user_id}/posts",
		"/posts", "/posts/{post_id}", "/posts/{post_id}/like", "/posts/{post_id}/likes",
		"/posts/{post_id}/comments", "/posts/{post_id}/comments/{comment_id}",
		"/comments", "/comments/{comment_id}", "/comments/{comment_id}/like", "/comments/{comment_id}/likes",
	} {
		assert.Contains(t, doc.Paths, path)
	}
	assert.Contains(t, doc.Paths["/posts/{post_id}/like"], "delete")
}

func TestUIAndRedirect(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), SpecPath)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/docs/", w.Header().Get("Location"))
}

func TestToJSONNormalizesKeys(t *testing.T) {
	out, err := toJSON([]byte("responses:\n  200: ok\n  404: missing\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"responses":{"200":"ok","404":"missing"}}`, string(out))

	_, err = toJSON([]byte("a: [unclosed"))
	assert.Error(t, err)
}
