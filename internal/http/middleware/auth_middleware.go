package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// AuthMiddleware gates authenticated routes. The session cookie middleware
// must have run first. A session whose idle timer fired gets a 401 with a
// timeout reason so the front-end can land on /login?reason=timeout; a
// valid request counts as activity and resets the idle timer.
func AuthMiddleware(sessions domain.SessionStore, inspector domain.TokenInspector, tracker domain.IdleTracker) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		sessionID := SessionID(c)
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No session"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()

		if timedOut, err := sessions.ConsumeTimeout(ctx, sessionID); err == nil && timedOut {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session timed out", "reason": "timeout", "redirect": domain.RouteLogin + "?reason=timeout"})
			c.Abort()
			return
		}

		pair, err := sessions.Tokens(ctx, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}

		claims, err := inspector.Inspect(pair.AccessToken)
		if err != nil {
			switch err {
			case domain.ErrTokenExpired:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		tracker.Touch(sessionID)

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Set("access_token", pair.AccessToken)

		c.Next()
	})
}
