package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/mocks"
)

func newCSRFRouter(sessions *mocks.MockSessionStore, sessionID string) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if sessionID != "" {
			c.Set(sessionContextKey, sessionID)
		}
		c.Next()
	})
	r.Use(CSRFMiddleware(sessions))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "ok"}) }
	r.GET("/read", ok)
	r.POST("/write", ok)
	return r
}

func TestCSRFMiddleware(t *testing.T) {
	sessions := mocks.NewMockSessionStore()
	token, err := sessions.EnsureCSRF(context.Background(), "sess-1")
	require.NoError(t, err)

	t.Run("reads skip the check", func(t *testing.T) {
		r := newCSRFRouter(sessions, "sess-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/read", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("write with the right token passes", func(t *testing.T) {
		r := newCSRFRouter(sessions, "sess-1")
		req := httptest.NewRequest(http.MethodPost, "/write", nil)
		req.Header.Set("X-CSRF-Token", token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("write without a token is forbidden", func(t *testing.T) {
		r := newCSRFRouter(sessions, "sess-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "mismatch")
	})

	t.Run("wrong token is forbidden", func(t *testing.T) {
		r := newCSRFRouter(sessions, "sess-1")
		req := httptest.NewRequest(http.MethodPost, "/write", nil)
		req.Header.Set("X-CSRF-Token", "stolen")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("session without a token yet is forbidden", func(t *testing.T) {
		r := newCSRFRouter(sessions, "sess-fresh")
		req := httptest.NewRequest(http.MethodPost, "/write", nil)
		req.Header.Set("X-CSRF-Token", token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "missing")
	})

	t.Run("no session at all is forbidden", func(t *testing.T) {
		r := newCSRFRouter(sessions, "")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
