package domain

import (
	"errors"
	"fmt"
)

// Session errors
var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrSessionTimeout = errors.New("session timed out")
	ErrFlowInFlight   = errors.New("post-auth flow already running")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// OAuth errors
var (
	ErrProviderNotFound  = errors.New("oauth provider not configured")
	ErrOAuthStateInvalid = errors.New("oauth state invalid or expired")
	ErrAlreadyProcessed  = errors.New("oauth session already processed")
)

// Scratch storage errors
var (
	ErrScratchNotFound = errors.New("no drop data stored")
)

// APIError is the structured form of a remote API failure. The original
// front-end encoded HTTP status codes inside error message strings and
// matched on substrings; carrying the status as a field removes that
// coupling while keeping every mapping the UI relied on.
type APIError struct {
	Status  int    // HTTP status returned by the remote API
	Code    string // machine-readable kind, when the API provides one
	Message string // human-readable detail from the API body
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// StatusOf extracts the remote status code from err, or 0 when err is not
// an APIError. Callers branch on this instead of substring matching.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthenticated reports whether err means the remote session died.
// Any such failure mid-wizard resets the flow to credential capture.
func IsUnauthenticated(err error) bool {
	return StatusOf(err) == 401 || errors.Is(err, ErrNotLoggedIn)
}
