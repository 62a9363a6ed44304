package mocks

import (
	"context"
	"sync"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// MockSessionStore implements domain.SessionStore for testing. Without
// overrides it behaves as a working in-memory store, so service tests can
// exercise save/read/clear round trips without Redis.
type MockSessionStore struct {
	SaveTokensFunc       func(ctx context.Context, sessionID string, pair domain.TokenPair) error
	TokensFunc           func(ctx context.Context, sessionID string) (domain.TokenPair, error)
	ClearTokensFunc      func(ctx context.Context, sessionID string) error
	EnsureCSRFFunc       func(ctx context.Context, sessionID string) (string, error)
	CSRFFunc             func(ctx context.Context, sessionID string) (string, error)
	SetSignupIntentFunc  func(ctx context.Context, sessionID string, fromSignup bool) error
	TakeSignupIntentFunc func(ctx context.Context, sessionID string) (bool, error)
	MarkTimeoutFunc      func(ctx context.Context, sessionID string) error
	ConsumeTimeoutFunc   func(ctx context.Context, sessionID string) (bool, error)

	mu      sync.Mutex
	records map[string]*domain.SessionRecord
}

// NewMockSessionStore creates a new MockSessionStore with default behaviors
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{records: make(map[string]*domain.SessionRecord)}
}

func (m *MockSessionStore) record(sessionID string) *domain.SessionRecord {
	rec, ok := m.records[sessionID]
	if !ok {
		rec = &domain.SessionRecord{}
		m.records[sessionID] = rec
	}
	return rec
}

// Record returns a copy of the stored record for assertions.
func (m *MockSessionStore) Record(sessionID string) domain.SessionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.record(sessionID)
}

func (m *MockSessionStore) SaveTokens(ctx context.Context, sessionID string, pair domain.TokenPair) error {
	if m.SaveTokensFunc != nil {
		return m.SaveTokensFunc(ctx, sessionID, pair)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.record(sessionID)
	rec.AccessToken = pair.AccessToken
	rec.RefreshToken = pair.RefreshToken
	rec.TimedOut = false
	return nil
}

func (m *MockSessionStore) Tokens(ctx context.Context, sessionID string) (domain.TokenPair, error) {
	if m.TokensFunc != nil {
		return m.TokensFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.record(sessionID)
	if rec.AccessToken == "" {
		return domain.TokenPair{}, domain.ErrNotLoggedIn
	}
	return domain.TokenPair{AccessToken: rec.AccessToken, RefreshToken: rec.RefreshToken}, nil
}

func (m *MockSessionStore) ClearTokens(ctx context.Context, sessionID string) error {
	if m.ClearTokensFunc != nil {
		return m.ClearTokensFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.record(sessionID)
	rec.AccessToken = ""
	rec.RefreshToken = ""
	return nil
}

func (m *MockSessionStore) EnsureCSRF(ctx context.Context, sessionID string) (string, error) {
	if m.EnsureCSRFFunc != nil {
		return m.EnsureCSRFFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.record(sessionID)
	if rec.CSRFToken == "" {
		rec.CSRFToken = "mock_csrf_token"
	}
	return rec.CSRFToken, nil
}

func (m *MockSessionStore) CSRF(ctx context.Context, sessionID string) (string, error) {
	if m.CSRFFunc != nil {
		return m.CSRFFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record(sessionID).CSRFToken, nil
}

func (m *MockSessionStore) SetSignupIntent(ctx context.Context, sessionID string, fromSignup bool) error {
	if m.SetSignupIntentFunc != nil {
		return m.SetSignupIntentFunc(ctx, sessionID, fromSignup)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(sessionID).SignupIntent = fromSignup
	return nil
}

func (m *MockSessionStore) TakeSignupIntent(ctx context.Context, sessionID string) (bool, error) {
	if m.TakeSignupIntentFunc != nil {
		return m.TakeSignupIntentFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.record(sessionID)
	v := rec.SignupIntent
	rec.SignupIntent = false
	return v, nil
}

func (m *MockSessionStore) MarkTimeout(ctx context.Context, sessionID string) error {
	if m.MarkTimeoutFunc != nil {
		return m.MarkTimeoutFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.record(sessionID)
	rec.AccessToken = ""
	rec.RefreshToken = ""
	rec.CSRFToken = ""
	rec.TimedOut = true
	return nil
}

func (m *MockSessionStore) ConsumeTimeout(ctx context.Context, sessionID string) (bool, error) {
	if m.ConsumeTimeoutFunc != nil {
		return m.ConsumeTimeoutFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.record(sessionID)
	v := rec.TimedOut
	rec.TimedOut = false
	return v, nil
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*MockSessionStore)(nil)
