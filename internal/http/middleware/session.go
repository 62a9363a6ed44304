package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

const sessionContextKey = "session_id"

// SessionCookieMW pins every browser to a session id cookie and makes sure
// a CSRF token exists for it. It runs on every route, authenticated or not.
type SessionCookieMW struct {
	sessions   domain.SessionStore
	cookieName string
	secure     bool
	maxAge     int
}

// NewSessionCookieMW creates the session cookie middleware.
func NewSessionCookieMW(sessions domain.SessionStore, cookieName string, secure bool, maxAgeSeconds int) *SessionCookieMW {
	return &SessionCookieMW{
		sessions:   sessions,
		cookieName: cookieName,
		secure:     secure,
		maxAge:     maxAgeSeconds,
	}
}

// Handler returns the middleware.
func (mw *SessionCookieMW) Handler() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		sessionID, err := c.Cookie(mw.cookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(mw.cookieName, sessionID, mw.maxAge, "/", "", mw.secure, true)
		}
		c.Set(sessionContextKey, sessionID)

		// Expose the CSRF token so the front-end can echo it back on
		// mutating requests.
		csrf, err := mw.sessions.EnsureCSRF(c.Request.Context(), sessionID)
		if err != nil {
			log.Printf("CSRF_ENSURE_FAILED: session_id=%s error=%v", sessionID, err)
		} else {
			c.Header("X-CSRF-Token", csrf)
		}

		c.Next()
	})
}

// SessionID returns the session id the cookie middleware stored, or "".
func SessionID(c *gin.Context) string {
	sessionID, _ := c.Get(sessionContextKey)
	if s, ok := sessionID.(string); ok {
		return s
	}
	return ""
}
