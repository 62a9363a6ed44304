package mocks

import (
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// MockTokenInspector implements domain.TokenInspector for testing
type MockTokenInspector struct {
	InspectFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenInspector creates a new MockTokenInspector with default behaviors
func NewMockTokenInspector() *MockTokenInspector {
	return &MockTokenInspector{}
}

func (m *MockTokenInspector) Inspect(token string) (*domain.TokenClaims, error) {
	if m.InspectFunc != nil {
		return m.InspectFunc(token)
	}
	return &domain.TokenClaims{UserID: "user-1", Role: string(domain.RoleStudent)}, nil
}

var _ domain.TokenInspector = (*MockTokenInspector)(nil)
