package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/http/middleware"
)

// AuthHandlers handles login, signup, logout, refresh, the current-user
// probe and the OAuth redirect legs.
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginRequest represents a credential login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest represents an account creation request.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := h.authSvc.Login(c.Request.Context(), middleware.SessionID(c), req.Email, req.Password)
	if err != nil {
		switch domain.StatusOf(err) {
		case http.StatusUnauthorized:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case http.StatusForbidden:
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is not allowed to sign in"})
		case http.StatusTooManyRequests:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts, please wait"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"route": route}})
}

// Signup handles POST /auth/signup.
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := h.authSvc.Signup(c.Request.Context(), middleware.SessionID(c), req.Email, req.Password)
	if err != nil {
		switch domain.StatusOf(err) {
		case http.StatusConflict:
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		case http.StatusUnprocessableEntity:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid email or password"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Signup failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"route": route}})
}

// Logout handles POST /auth/logout. Always succeeds: local state is
// cleared even when the upstream invalidation fails.
func (h *AuthHandlers) Logout(c *gin.Context) {
	_ = h.authSvc.Logout(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Logged out successfully"}})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	err := h.authSvc.Refresh(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired", "redirect": domain.RouteLogin})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Token refreshed"}})
}

// Me handles GET /auth/me: validates the persisted token against the
// remote API and returns the current user.
func (h *AuthHandlers) Me(c *gin.Context) {
	user, err := h.authSvc.CurrentUser(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":               user.ID,
			"email":            user.Email,
			"role":             user.Role,
			"onboarding_state": user.OnboardingState,
			"phone_verified":   user.PhoneVerified,
			"first_name":       user.FirstName,
			"last_name":        user.LastName,
			"avatar_url":       user.AvatarURL,
		},
	})
}

// OAuthBegin handles GET /auth/oauth/:provider. The from=signup query marks
// signup intent, which is persisted server-side before the redirect.
func (h *AuthHandlers) OAuthBegin(c *gin.Context) {
	provider := c.Param("provider")
	fromSignup := c.Query("from") == "signup"

	url, err := h.authSvc.BeginOAuth(c.Request.Context(), middleware.SessionID(c), provider, fromSignup)
	if err != nil {
		if err == domain.ErrProviderNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown provider"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start sign-in"})
		return
	}

	c.Redirect(http.StatusFound, url)
}

// OAuthCallback handles GET and POST /auth/callback (Apple posts the form
// back). It finishes the exchange and redirects to the decided route.
func (h *AuthHandlers) OAuthCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" {
		state = c.PostForm("state")
	}
	if code == "" {
		code = c.PostForm("code")
	}

	route, err := h.authSvc.CompleteOAuth(c.Request.Context(), middleware.SessionID(c), state, code)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, route)
	case err == domain.ErrAlreadyProcessed, err == domain.ErrFlowInFlight:
		// Duplicate notification for a session that is already signed in.
		c.Redirect(http.StatusFound, domain.RouteDashboard)
	case err == domain.ErrOAuthStateInvalid:
		c.Redirect(http.StatusFound, domain.RouteLogin+"?error=oauth_state")
	default:
		c.Redirect(http.StatusFound, domain.RouteLogin+"?error=oauth")
	}
}
