package domain

import "time"

// Role is the platform role a user picks during onboarding.
type Role string

const (
	RoleStudent  Role = "student"
	RoleEducator Role = "educator"
	RoleBrand    Role = "brand"
	RoleCreator  Role = "creator"
)

// Valid reports whether the role is one the platform recognises.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleEducator, RoleBrand, RoleCreator:
		return true
	}
	return false
}

// User is the cached copy of the identity owned by the remote API.
// It is refreshed after every state-changing onboarding call.
type User struct {
	ID              string
	Email           string
	Role            Role
	OnboardingState OnboardingState
	PhoneVerified   bool
	FirstName       string
	LastName        string
	AvatarURL       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TokenPair holds the first-party tokens issued by the remote API.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionRecord is everything the gateway keeps per browser session.
type SessionRecord struct {
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	CSRFToken    string    `json:"csrf_token,omitempty"`
	SignupIntent bool      `json:"signup_intent,omitempty"`
	TimedOut     bool      `json:"timed_out,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthResult is what the remote API returns on a successful credential
// or OAuth exchange.
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// OAuthContinuation is the state persisted across the OAuth redirect:
// the provider discards local context, so intent must survive server-side.
type OAuthContinuation struct {
	Provider   string    `json:"provider"`
	FromSignup bool      `json:"from_signup"`
	SessionID  string    `json:"session_id"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// DropFormData is the loosely-typed pre-fill bag captured on the marketing
// funnel before the user authenticates.
type DropFormData struct {
	DropType     string            `json:"drop_type,omitempty"`
	Grade        string            `json:"grade,omitempty"`
	Subject      string            `json:"subject,omitempty"`
	RTITier      string            `json:"rti_tier,omitempty"`
	LearningGoal string            `json:"learning_goal,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// Empty reports whether nothing was captured.
func (d *DropFormData) Empty() bool {
	return d == nil || (d.DropType == "" && d.Grade == "" && d.Subject == "" &&
		d.RTITier == "" && d.LearningGoal == "" && len(d.Extra) == 0)
}

// GuardianRequest is the consent request sent on behalf of an under-13 student.
type GuardianRequest struct {
	StudentFirstName string `json:"student_first_name"`
	StudentLastName  string `json:"student_last_name"`
	ParentFirstName  string `json:"parent_first_name"`
	ParentLastName   string `json:"parent_last_name"`
	ParentPhone      string `json:"parent_phone"`
}

// Complete reports whether all five fields were provided.
func (g *GuardianRequest) Complete() bool {
	return g != nil && g.StudentFirstName != "" && g.StudentLastName != "" &&
		g.ParentFirstName != "" && g.ParentLastName != "" && g.ParentPhone != ""
}

// Drop is an educator-created learning challenge as returned by the remote API.
type Drop struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	DropType     string `json:"drop_type"`
	Grade        string `json:"grade"`
	Subject      string `json:"subject"`
	RTITier      string `json:"rti_tier,omitempty"`
	LearningGoal string `json:"learning_goal,omitempty"`
	VideoID      string `json:"video_id,omitempty"`
	Published    bool   `json:"published"`
}

// LookupItem is a generic id/name pair from the read-only lookup endpoints
// (schools, grades, topics, drop templates, videos).
type LookupItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
