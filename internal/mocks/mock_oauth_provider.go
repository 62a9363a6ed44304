package mocks

import (
	"context"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// MockOAuthProvider implements domain.OAuthProvider for testing
type MockOAuthProvider struct {
	NameValue       string
	AuthCodeURLFunc func(state string) string
	ExchangeFunc    func(ctx context.Context, code string) (string, error)
}

// NewMockOAuthProvider creates a provider that answers to the given name
func NewMockOAuthProvider(name string) *MockOAuthProvider {
	return &MockOAuthProvider{NameValue: name}
}

func (m *MockOAuthProvider) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "google"
}

func (m *MockOAuthProvider) AuthCodeURL(state string) string {
	if m.AuthCodeURLFunc != nil {
		return m.AuthCodeURLFunc(state)
	}
	return "https://provider.example.com/authorize?state=" + state
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return "mock_provider_token", nil
}

// Compile-time interface compliance verification
var _ domain.OAuthProvider = (*MockOAuthProvider)(nil)
