package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// AuthMW bundles the dependencies the route guards need.
type AuthMW struct {
	sessions  domain.SessionStore
	inspector domain.TokenInspector
	tracker   domain.IdleTracker
}

// NewAuthMW creates the auth middleware wrapper.
func NewAuthMW(sessions domain.SessionStore, inspector domain.TokenInspector, tracker domain.IdleTracker) *AuthMW {
	return &AuthMW{sessions: sessions, inspector: inspector, tracker: tracker}
}

// WithAuth returns the authenticated-route middleware.
func (mw *AuthMW) WithAuth() gin.HandlerFunc {
	return AuthMiddleware(mw.sessions, mw.inspector, mw.tracker)
}

// WithCSRF returns the CSRF check for mutating verbs.
func (mw *AuthMW) WithCSRF() gin.HandlerFunc {
	return CSRFMiddleware(mw.sessions)
}
