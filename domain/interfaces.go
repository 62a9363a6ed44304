package domain

import (
	"context"
	"time"
)

// BackendClient is the typed client for the remote G3MS REST API. All
// business logic lives behind it; the gateway only orchestrates calls.
type BackendClient interface {
	// Auth
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Signup(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, accessToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetCurrentUser(ctx context.Context, accessToken string) (*User, error)
	GoogleAuth(ctx context.Context, providerToken string) (*AuthResult, error)
	AppleAuth(ctx context.Context, providerToken string) (*AuthResult, error)

	// Onboarding
	SetRole(ctx context.Context, accessToken string, role Role) error
	SetBirthdate(ctx context.Context, accessToken string, birthdate time.Time) error
	SendPhoneOTP(ctx context.Context, accessToken, phone string) error
	VerifyPhoneOTP(ctx context.Context, accessToken, phone, code string) error
	CreateGuardianRequest(ctx context.Context, accessToken string, req *GuardianRequest) error
	ApproveGuardian(ctx context.Context, approvalID string) error
	GetOnboardingStatus(ctx context.Context, accessToken string) (OnboardingState, error)

	// Drops and lookups
	GetDropTemplates(ctx context.Context) ([]LookupItem, error)
	GetDropVideos(ctx context.Context) ([]LookupItem, error)
	GetTopics(ctx context.Context) ([]LookupItem, error)
	GetSchools(ctx context.Context) ([]LookupItem, error)
	GetGrades(ctx context.Context) ([]LookupItem, error)
	GetEducatorDrops(ctx context.Context, accessToken string) ([]Drop, error)
	CreateDrop(ctx context.Context, accessToken, title string, form *DropFormData) (*Drop, error)
	PublishDrop(ctx context.Context, accessToken, dropID string) (*Drop, error)
}

// SessionStore persists per-browser-session state: tokens, the CSRF token,
// the OAuth signup intent and the idle-timeout marker.
type SessionStore interface {
	SaveTokens(ctx context.Context, sessionID string, pair TokenPair) error
	Tokens(ctx context.Context, sessionID string) (TokenPair, error)
	ClearTokens(ctx context.Context, sessionID string) error
	EnsureCSRF(ctx context.Context, sessionID string) (string, error)
	CSRF(ctx context.Context, sessionID string) (string, error)
	SetSignupIntent(ctx context.Context, sessionID string, fromSignup bool) error
	TakeSignupIntent(ctx context.Context, sessionID string) (bool, error)
	MarkTimeout(ctx context.Context, sessionID string) error
	ConsumeTimeout(ctx context.Context, sessionID string) (bool, error)
}

// IdleTracker enforces the idle-timeout window per browser session.
type IdleTracker interface {
	Start(sessionID string)
	Touch(sessionID string)
	End(sessionID string)
}

// OAuthProvider is a redirect-based external sign-in provider.
type OAuthProvider interface {
	Name() string
	AuthCodeURL(state string) string
	// ExchangeCode trades the callback code for the provider token the
	// remote API accepts in its google/apple exchange endpoints.
	ExchangeCode(ctx context.Context, code string) (string, error)
}

// DropDataStore is the cross-navigation scratch storage for drop pre-fill
// data. Implementations must tolerate storage being unavailable without
// surfacing errors beyond logging.
type DropDataStore interface {
	Set(ctx context.Context, sessionID string, data *DropFormData) error
	Get(ctx context.Context, sessionID string) (*DropFormData, error)
	Clear(ctx context.Context, sessionID string) error
	MarkFlow(ctx context.Context, sessionID string) error
	InFlow(ctx context.Context, sessionID string) (bool, error)
}

// AuthService owns authentication state and the post-auth redirect decision.
type AuthService interface {
	Login(ctx context.Context, sessionID, email, password string) (string, error)
	Signup(ctx context.Context, sessionID, email, password string) (string, error)
	BeginOAuth(ctx context.Context, sessionID, provider string, fromSignup bool) (string, error)
	CompleteOAuth(ctx context.Context, sessionID, state, code string) (string, error)
	Logout(ctx context.Context, sessionID string) error
	Refresh(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string) (*User, error)
	PostAuthFlow(ctx context.Context, sessionID string, fromSignup bool) (string, error)
}

// StepInput carries whatever the current wizard step collected.
type StepInput struct {
	Email     string           `json:"email,omitempty"`
	Password  string           `json:"password,omitempty"`
	Role      Role             `json:"role,omitempty"`
	Birthdate string           `json:"birthdate,omitempty"` // YYYY-MM-DD
	Phone     string           `json:"phone,omitempty"`
	Code      string           `json:"code,omitempty"`
	Guardian  *GuardianRequest `json:"guardian,omitempty"`
}

// StepResult is the outcome of a successful step submission.
type StepResult struct {
	Next        SignupStep
	CloseWizard bool // email-password hands over to the post-auth flow
	Route       string
}

// StepError pairs the underlying failure with the user-facing copy the
// wizard renders inline for the step that failed.
type StepError struct {
	Step  SignupStep
	Copy  string
	Cause error
}

func (e *StepError) Error() string { return e.Copy }
func (e *StepError) Unwrap() error { return e.Cause }

// SignupFlowService sequences account creation through the server-driven
// onboarding status machine.
type SignupFlowService interface {
	Advance(ctx context.Context, sessionID string) (SignupStep, error)
	Submit(ctx context.Context, sessionID string, step SignupStep, in StepInput) (*StepResult, error)
	Validate(step SignupStep, in StepInput) bool
	Progress(step SignupStep, adult bool) float64
}

// TokenClaims are the claims the gateway reads out of a backend-issued
// access token without calling home.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// TokenInspector parses and validates backend-issued access tokens locally.
type TokenInspector interface {
	Inspect(token string) (*TokenClaims, error)
}
