package mocks

import (
	"sync"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// MockIdleTracker implements domain.IdleTracker for testing
type MockIdleTracker struct {
	StartFunc func(sessionID string)
	TouchFunc func(sessionID string)
	EndFunc   func(sessionID string)

	mu      sync.Mutex
	Started []string
	Touched []string
	Ended   []string
}

// NewMockIdleTracker creates a new MockIdleTracker with default behaviors
func NewMockIdleTracker() *MockIdleTracker {
	return &MockIdleTracker{}
}

func (m *MockIdleTracker) Start(sessionID string) {
	if m.StartFunc != nil {
		m.StartFunc(sessionID)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Started = append(m.Started, sessionID)
}

func (m *MockIdleTracker) Touch(sessionID string) {
	if m.TouchFunc != nil {
		m.TouchFunc(sessionID)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Touched = append(m.Touched, sessionID)
}

func (m *MockIdleTracker) End(sessionID string) {
	if m.EndFunc != nil {
		m.EndFunc(sessionID)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ended = append(m.Ended, sessionID)
}

// Compile-time interface compliance verification
var _ domain.IdleTracker = (*MockIdleTracker)(nil)
