// Package backend implements the typed HTTP client for the remote G3MS
// REST API. All persistence, payment, video and SMS logic lives behind it;
// the gateway only calls these operations and interprets the results.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// Client implements domain.BackendClient.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a backend client. Every request carries the given timeout so
// a hung upstream call cannot leave the caller waiting forever.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// envelope is the response shape the API uses for both outcomes.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		// A non-JSON body is tolerated; the status code still decides.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &domain.APIError{Status: resp.StatusCode, Code: env.Code, Message: msg}
	}

	if out != nil {
		data := env.Data
		if data == nil {
			data = raw
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

type userPayload struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	OnboardingState string    `json:"onboarding_state"`
	PhoneVerified   bool      `json:"phone_verified"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	AvatarURL       string    `json:"avatar_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p *userPayload) toDomain() *domain.User {
	return &domain.User{
		ID:              p.ID,
		Email:           p.Email,
		Role:            domain.Role(p.Role),
		OnboardingState: domain.OnboardingState(p.OnboardingState),
		PhoneVerified:   p.PhoneVerified,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		AvatarURL:       p.AvatarURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

type authResultPayload struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	User         userPayload `json:"user"`
}

func (p *authResultPayload) toDomain() *domain.AuthResult {
	return &domain.AuthResult{
		User:         p.User.toDomain(),
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresIn:    p.ExpiresIn,
	}
}

// Login implements domain.BackendClient.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	var out authResultPayload
	err := c.do(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// Signup implements domain.BackendClient.
func (c *Client) Signup(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	var out authResultPayload
	err := c.do(ctx, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// Logout implements domain.BackendClient.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", accessToken, nil, nil)
}

// RefreshToken implements domain.BackendClient.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	var out struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/refresh", "", map[string]string{
		"refresh_token": refreshToken,
	}, &out)
	if err != nil {
		return nil, err
	}
	// Some deployments rotate the refresh token, some do not.
	if out.RefreshToken == "" {
		out.RefreshToken = refreshToken
	}
	return &domain.TokenPair{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}, nil
}

// GetCurrentUser implements domain.BackendClient.
func (c *Client) GetCurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	var out userPayload
	if err := c.do(ctx, http.MethodGet, "/auth/me", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// GoogleAuth implements domain.BackendClient: exchanges the provider token
// for first-party tokens.
func (c *Client) GoogleAuth(ctx context.Context, providerToken string) (*domain.AuthResult, error) {
	return c.providerAuth(ctx, "/auth/google", providerToken)
}

// AppleAuth implements domain.BackendClient.
func (c *Client) AppleAuth(ctx context.Context, providerToken string) (*domain.AuthResult, error) {
	return c.providerAuth(ctx, "/auth/apple", providerToken)
}

func (c *Client) providerAuth(ctx context.Context, path, providerToken string) (*domain.AuthResult, error) {
	var out authResultPayload
	err := c.do(ctx, http.MethodPost, path, "", map[string]string{"token": providerToken}, &out)
	if err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// SetRole implements domain.BackendClient.
func (c *Client) SetRole(ctx context.Context, accessToken string, role domain.Role) error {
	return c.do(ctx, http.MethodPost, "/onboarding/role", accessToken, map[string]string{
		"role": string(role),
	}, nil)
}

// SetBirthdate implements domain.BackendClient.
func (c *Client) SetBirthdate(ctx context.Context, accessToken string, birthdate time.Time) error {
	return c.do(ctx, http.MethodPost, "/onboarding/birthdate", accessToken, map[string]string{
		"birthdate": birthdate.Format("2006-01-02"),
	}, nil)
}

// SendPhoneOTP implements domain.BackendClient.
func (c *Client) SendPhoneOTP(ctx context.Context, accessToken, phone string) error {
	return c.do(ctx, http.MethodPost, "/onboarding/phone/send", accessToken, map[string]string{
		"phone": phone,
	}, nil)
}

// VerifyPhoneOTP implements domain.BackendClient.
func (c *Client) VerifyPhoneOTP(ctx context.Context, accessToken, phone, code string) error {
	return c.do(ctx, http.MethodPost, "/onboarding/phone/verify", accessToken, map[string]string{
		"phone": phone,
		"code":  code,
	}, nil)
}

// CreateGuardianRequest implements domain.BackendClient.
func (c *Client) CreateGuardianRequest(ctx context.Context, accessToken string, req *domain.GuardianRequest) error {
	return c.do(ctx, http.MethodPost, "/onboarding/guardian", accessToken, req, nil)
}

// ApproveGuardian implements domain.BackendClient. The approval link lands
// on the guardian's device with no session, so no token is sent.
func (c *Client) ApproveGuardian(ctx context.Context, approvalID string) error {
	return c.do(ctx, http.MethodPost, "/guardian/approve/"+approvalID, "", nil, nil)
}

// GetOnboardingStatus implements domain.BackendClient.
func (c *Client) GetOnboardingStatus(ctx context.Context, accessToken string) (domain.OnboardingState, error) {
	var out struct {
		State string `json:"state"`
	}
	if err := c.do(ctx, http.MethodGet, "/onboarding/status", accessToken, nil, &out); err != nil {
		return "", err
	}
	return domain.OnboardingState(out.State), nil
}

func (c *Client) lookup(ctx context.Context, path string) ([]domain.LookupItem, error) {
	var out []domain.LookupItem
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDropTemplates implements domain.BackendClient.
func (c *Client) GetDropTemplates(ctx context.Context) ([]domain.LookupItem, error) {
	return c.lookup(ctx, "/drops/templates")
}

// GetDropVideos implements domain.BackendClient.
func (c *Client) GetDropVideos(ctx context.Context) ([]domain.LookupItem, error) {
	return c.lookup(ctx, "/drops/videos")
}

// GetTopics implements domain.BackendClient.
func (c *Client) GetTopics(ctx context.Context) ([]domain.LookupItem, error) {
	return c.lookup(ctx, "/topics")
}

// GetSchools implements domain.BackendClient.
func (c *Client) GetSchools(ctx context.Context) ([]domain.LookupItem, error) {
	return c.lookup(ctx, "/schools")
}

// GetGrades implements domain.BackendClient.
func (c *Client) GetGrades(ctx context.Context) ([]domain.LookupItem, error) {
	return c.lookup(ctx, "/grades")
}

// GetEducatorDrops implements domain.BackendClient.
func (c *Client) GetEducatorDrops(ctx context.Context, accessToken string) ([]domain.Drop, error) {
	var out []domain.Drop
	if err := c.do(ctx, http.MethodGet, "/educator/drops", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDrop implements domain.BackendClient.
func (c *Client) CreateDrop(ctx context.Context, accessToken, title string, form *domain.DropFormData) (*domain.Drop, error) {
	payload := map[string]any{"title": title}
	if form != nil {
		payload["drop_type"] = form.DropType
		payload["grade"] = form.Grade
		payload["subject"] = form.Subject
		payload["rti_tier"] = form.RTITier
		payload["learning_goal"] = form.LearningGoal
		for k, v := range form.Extra {
			payload[k] = v
		}
	}
	var out domain.Drop
	if err := c.do(ctx, http.MethodPost, "/drops", accessToken, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublishDrop implements domain.BackendClient.
func (c *Client) PublishDrop(ctx context.Context, accessToken, dropID string) (*domain.Drop, error) {
	var out domain.Drop
	if err := c.do(ctx, http.MethodPost, "/drops/"+dropID+"/publish", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
