package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// CSRFMiddleware requires mutating requests to echo the session's CSRF
// token in the X-CSRF-Token header.
func CSRFMiddleware(sessions domain.SessionStore) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		sessionID := SessionID(c)
		if sessionID == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "No session"})
			c.Abort()
			return
		}

		expected, err := sessions.CSRF(c.Request.Context(), sessionID)
		if err != nil || expected == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "CSRF token missing"})
			c.Abort()
			return
		}

		got := c.GetHeader("X-CSRF-Token")
		if subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
			c.JSON(http.StatusForbidden, gin.H{"error": "CSRF token mismatch"})
			c.Abort()
			return
		}

		c.Next()
	})
}
