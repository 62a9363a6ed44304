package mocks

import (
	"context"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// MockAuthService implements domain.AuthService for handler tests
type MockAuthService struct {
	LoginFunc         func(ctx context.Context, sessionID, email, password string) (string, error)
	SignupFunc        func(ctx context.Context, sessionID, email, password string) (string, error)
	BeginOAuthFunc    func(ctx context.Context, sessionID, provider string, fromSignup bool) (string, error)
	CompleteOAuthFunc func(ctx context.Context, sessionID, state, code string) (string, error)
	LogoutFunc        func(ctx context.Context, sessionID string) error
	RefreshFunc       func(ctx context.Context, sessionID string) error
	CurrentUserFunc   func(ctx context.Context, sessionID string) (*domain.User, error)
	PostAuthFlowFunc  func(ctx context.Context, sessionID string, fromSignup bool) (string, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Login(ctx context.Context, sessionID, email, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, sessionID, email, password)
	}
	return domain.RouteDashboard, nil
}

func (m *MockAuthService) Signup(ctx context.Context, sessionID, email, password string) (string, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, sessionID, email, password)
	}
	return domain.RouteOnboardingRole, nil
}

func (m *MockAuthService) BeginOAuth(ctx context.Context, sessionID, provider string, fromSignup bool) (string, error) {
	if m.BeginOAuthFunc != nil {
		return m.BeginOAuthFunc(ctx, sessionID, provider, fromSignup)
	}
	return "https://provider.example.com/authorize?state=mock", nil
}

func (m *MockAuthService) CompleteOAuth(ctx context.Context, sessionID, state, code string) (string, error) {
	if m.CompleteOAuthFunc != nil {
		return m.CompleteOAuthFunc(ctx, sessionID, state, code)
	}
	return domain.RouteDashboard, nil
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) Refresh(ctx context.Context, sessionID string) error {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, sessionID)
	}
	return &domain.User{
		ID:              "user-1",
		Email:           "test@example.com",
		Role:            domain.RoleStudent,
		OnboardingState: domain.OnboardingReady,
	}, nil
}

func (m *MockAuthService) PostAuthFlow(ctx context.Context, sessionID string, fromSignup bool) (string, error) {
	if m.PostAuthFlowFunc != nil {
		return m.PostAuthFlowFunc(ctx, sessionID, fromSignup)
	}
	return domain.RouteDashboard, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
