package domain

import "time"

// AuditEventType tags security-relevant events in the gateway log.
type AuditEventType string

const (
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserSignupEvent       AuditEventType = "USER_SIGNUP"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"
	OAuthBeginEvent       AuditEventType = "OAUTH_BEGIN"
	OAuthCompleteEvent    AuditEventType = "OAUTH_COMPLETE"
	OAuthFailureEvent     AuditEventType = "OAUTH_FAILED"
	SessionTimeoutEvent   AuditEventType = "SESSION_TIMEOUT"
	TokenRefreshEvent     AuditEventType = "TOKEN_REFRESHED"
	GuardianRequestEvent  AuditEventType = "GUARDIAN_REQUESTED"
	GuardianApproveEvent  AuditEventType = "GUARDIAN_APPROVED"
)

// AuditEvent is a loggable record of something a user did.
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	SessionID string         `json:"session_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Success   bool           `json:"success"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
}

// NewAuditEvent creates an event stamped with the current time.
func NewAuditEvent(eventType AuditEventType, sessionID string) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError marks the event failed and records the cause.
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field.
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}
