package mocks

import (
	"context"
	"time"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// MockBackendClient implements domain.BackendClient for testing
type MockBackendClient struct {
	LoginFunc                 func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	SignupFunc                func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	LogoutFunc                func(ctx context.Context, accessToken string) error
	RefreshTokenFunc          func(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	GetCurrentUserFunc        func(ctx context.Context, accessToken string) (*domain.User, error)
	GoogleAuthFunc            func(ctx context.Context, providerToken string) (*domain.AuthResult, error)
	AppleAuthFunc             func(ctx context.Context, providerToken string) (*domain.AuthResult, error)
	SetRoleFunc               func(ctx context.Context, accessToken string, role domain.Role) error
	SetBirthdateFunc          func(ctx context.Context, accessToken string, birthdate time.Time) error
	SendPhoneOTPFunc          func(ctx context.Context, accessToken, phone string) error
	VerifyPhoneOTPFunc        func(ctx context.Context, accessToken, phone, code string) error
	CreateGuardianRequestFunc func(ctx context.Context, accessToken string, req *domain.GuardianRequest) error
	ApproveGuardianFunc       func(ctx context.Context, approvalID string) error
	GetOnboardingStatusFunc   func(ctx context.Context, accessToken string) (domain.OnboardingState, error)
	GetDropTemplatesFunc      func(ctx context.Context) ([]domain.LookupItem, error)
	GetDropVideosFunc         func(ctx context.Context) ([]domain.LookupItem, error)
	GetTopicsFunc             func(ctx context.Context) ([]domain.LookupItem, error)
	GetSchoolsFunc            func(ctx context.Context) ([]domain.LookupItem, error)
	GetGradesFunc             func(ctx context.Context) ([]domain.LookupItem, error)
	GetEducatorDropsFunc      func(ctx context.Context, accessToken string) ([]domain.Drop, error)
	CreateDropFunc            func(ctx context.Context, accessToken, title string, form *domain.DropFormData) (*domain.Drop, error)
	PublishDropFunc           func(ctx context.Context, accessToken, dropID string) (*domain.Drop, error)
}

// NewMockBackendClient creates a new MockBackendClient with default behaviors
func NewMockBackendClient() *MockBackendClient {
	return &MockBackendClient{}
}

func defaultAuthResult(email string) *domain.AuthResult {
	return &domain.AuthResult{
		User: &domain.User{
			ID:              "user-1",
			Email:           email,
			Role:            domain.RoleStudent,
			OnboardingState: domain.OnboardingReady,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		},
		AccessToken:  "mock_access_token",
		RefreshToken: "mock_refresh_token",
		ExpiresIn:    900,
	}
}

func (m *MockBackendClient) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return defaultAuthResult(email), nil
}

func (m *MockBackendClient) Signup(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, email, password)
	}
	res := defaultAuthResult(email)
	res.User.OnboardingState = domain.OnboardingPendingRole
	return res, nil
}

func (m *MockBackendClient) Logout(ctx context.Context, accessToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, accessToken)
	}
	return nil
}

func (m *MockBackendClient) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return &domain.TokenPair{AccessToken: "new_mock_access_token", RefreshToken: "new_mock_refresh_token"}, nil
}

func (m *MockBackendClient) GetCurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	if m.GetCurrentUserFunc != nil {
		return m.GetCurrentUserFunc(ctx, accessToken)
	}
	return defaultAuthResult("test@example.com").User, nil
}

func (m *MockBackendClient) GoogleAuth(ctx context.Context, providerToken string) (*domain.AuthResult, error) {
	if m.GoogleAuthFunc != nil {
		return m.GoogleAuthFunc(ctx, providerToken)
	}
	return defaultAuthResult("google@example.com"), nil
}

func (m *MockBackendClient) AppleAuth(ctx context.Context, providerToken string) (*domain.AuthResult, error) {
	if m.AppleAuthFunc != nil {
		return m.AppleAuthFunc(ctx, providerToken)
	}
	return defaultAuthResult("apple@example.com"), nil
}

func (m *MockBackendClient) SetRole(ctx context.Context, accessToken string, role domain.Role) error {
	if m.SetRoleFunc != nil {
		return m.SetRoleFunc(ctx, accessToken, role)
	}
	return nil
}

func (m *MockBackendClient) SetBirthdate(ctx context.Context, accessToken string, birthdate time.Time) error {
	if m.SetBirthdateFunc != nil {
		return m.SetBirthdateFunc(ctx, accessToken, birthdate)
	}
	return nil
}

func (m *MockBackendClient) SendPhoneOTP(ctx context.Context, accessToken, phone string) error {
	if m.SendPhoneOTPFunc != nil {
		return m.SendPhoneOTPFunc(ctx, accessToken, phone)
	}
	return nil
}

func (m *MockBackendClient) VerifyPhoneOTP(ctx context.Context, accessToken, phone, code string) error {
	if m.VerifyPhoneOTPFunc != nil {
		return m.VerifyPhoneOTPFunc(ctx, accessToken, phone, code)
	}
	return nil
}

func (m *MockBackendClient) CreateGuardianRequest(ctx context.Context, accessToken string, req *domain.GuardianRequest) error {
	if m.CreateGuardianRequestFunc != nil {
		return m.CreateGuardianRequestFunc(ctx, accessToken, req)
	}
	return nil
}

func (m *MockBackendClient) ApproveGuardian(ctx context.Context, approvalID string) error {
	if m.ApproveGuardianFunc != nil {
		return m.ApproveGuardianFunc(ctx, approvalID)
	}
	return nil
}

func (m *MockBackendClient) GetOnboardingStatus(ctx context.Context, accessToken string) (domain.OnboardingState, error) {
	if m.GetOnboardingStatusFunc != nil {
		return m.GetOnboardingStatusFunc(ctx, accessToken)
	}
	return domain.OnboardingReady, nil
}

func (m *MockBackendClient) GetDropTemplates(ctx context.Context) ([]domain.LookupItem, error) {
	if m.GetDropTemplatesFunc != nil {
		return m.GetDropTemplatesFunc(ctx)
	}
	return []domain.LookupItem{{ID: "tpl-1", Name: "Quiz Drop"}}, nil
}

func (m *MockBackendClient) GetDropVideos(ctx context.Context) ([]domain.LookupItem, error) {
	if m.GetDropVideosFunc != nil {
		return m.GetDropVideosFunc(ctx)
	}
	return []domain.LookupItem{{ID: "vid-1", Name: "Intro Video"}}, nil
}

func (m *MockBackendClient) GetTopics(ctx context.Context) ([]domain.LookupItem, error) {
	if m.GetTopicsFunc != nil {
		return m.GetTopicsFunc(ctx)
	}
	return []domain.LookupItem{{ID: "top-1", Name: "Math"}}, nil
}

func (m *MockBackendClient) GetSchools(ctx context.Context) ([]domain.LookupItem, error) {
	if m.GetSchoolsFunc != nil {
		return m.GetSchoolsFunc(ctx)
	}
	return []domain.LookupItem{{ID: "sch-1", Name: "Lincoln High"}}, nil
}

func (m *MockBackendClient) GetGrades(ctx context.Context) ([]domain.LookupItem, error) {
	if m.GetGradesFunc != nil {
		return m.GetGradesFunc(ctx)
	}
	return []domain.LookupItem{{ID: "gr-9", Name: "9th Grade"}}, nil
}

func (m *MockBackendClient) GetEducatorDrops(ctx context.Context, accessToken string) ([]domain.Drop, error) {
	if m.GetEducatorDropsFunc != nil {
		return m.GetEducatorDropsFunc(ctx, accessToken)
	}
	return []domain.Drop{}, nil
}

func (m *MockBackendClient) CreateDrop(ctx context.Context, accessToken, title string, form *domain.DropFormData) (*domain.Drop, error) {
	if m.CreateDropFunc != nil {
		return m.CreateDropFunc(ctx, accessToken, title, form)
	}
	return &domain.Drop{ID: "drop-1", Title: title}, nil
}

func (m *MockBackendClient) PublishDrop(ctx context.Context, accessToken, dropID string) (*domain.Drop, error) {
	if m.PublishDropFunc != nil {
		return m.PublishDropFunc(ctx, accessToken, dropID)
	}
	return &domain.Drop{ID: dropID, Published: true}, nil
}

// Compile-time interface compliance verification
var _ domain.BackendClient = (*MockBackendClient)(nil)
